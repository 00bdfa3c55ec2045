package game

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/fracmole/internal/problemgen"
	"github.com/abhisek/fracmole/internal/router"
	"github.com/abhisek/fracmole/internal/screen"
	"github.com/abhisek/fracmole/internal/screens/summary"
	sess "github.com/abhisek/fracmole/internal/session"
	"github.com/abhisek/fracmole/internal/store"
	"github.com/abhisek/fracmole/internal/ui/components"
	"github.com/abhisek/fracmole/internal/ui/layout"
)

const (
	tickInterval  = 250 * time.Millisecond
	feedbackDelay = 1500 * time.Millisecond

	// maxGenerateAttempts bounds regeneration when a question fails validation.
	maxGenerateAttempts = 3
)

// GameScreen runs one game: a fixed number of timed rounds.
type GameScreen struct {
	state     *sess.SessionState
	generator *problemgen.Generator
	repo      store.GameRepo
	logger    *zap.Logger
	grid      components.MoleGrid
	input     components.TextInput
	now       func() time.Time
	errMsg    string
}

var _ screen.Screen = (*GameScreen)(nil)
var _ screen.KeyHintProvider = (*GameScreen)(nil)
var _ screen.StatusProvider = (*GameScreen)(nil)

// New creates a GameScreen. repo may be nil, in which case the game is
// not saved.
func New(generator *problemgen.Generator, repo store.GameRepo, cfg sess.Config, logger *zap.Logger) *GameScreen {
	if logger == nil {
		logger = zap.NewNop()
	}
	g := &GameScreen{
		generator: generator,
		repo:      repo,
		logger:    logger,
		now:       time.Now,
	}
	g.state = sess.NewSessionState(cfg, uuid.New().String(), g.now())
	g.logger = logger.With(zap.String("session_id", g.state.SessionID))
	return g
}

func (g *GameScreen) Init() tea.Cmd {
	g.logger.Info("game started",
		zap.String("mode", string(g.state.Config.Mode)),
		zap.Int("rounds", g.state.Config.Rounds))
	return tea.Batch(g.nextQuestion(), tickCmd())
}

func (g *GameScreen) Title() string {
	if g.state.Config.Mode == sess.ModeTyped {
		return "Type the Answer"
	}
	return "Whack the Answer"
}

func (g *GameScreen) Status() string {
	round := max(g.state.Round, 1)
	return fmt.Sprintf("Score %d   Round %d/%d", g.state.Score, round, g.state.Config.Rounds)
}

func (g *GameScreen) KeyHints() []layout.KeyHint {
	if g.state.ShowingQuitConfirm {
		return []layout.KeyHint{
			{Key: "Y", Description: "End game"},
			{Key: "N", Description: "Keep going"},
		}
	}
	switch g.state.Phase {
	case sess.PhaseFeedback:
		return []layout.KeyHint{
			{Key: "any key", Description: "Continue"},
		}
	case sess.PhaseAsking:
		if g.state.Config.Mode == sess.ModeTyped {
			return []layout.KeyHint{
				{Key: "Enter", Description: "Submit"},
				{Key: "Esc", Description: "Quit"},
			}
		}
		return []layout.KeyHint{
			{Key: "1-4", Description: "Whack"},
			{Key: "←↑↓→", Description: "Aim"},
			{Key: "Enter", Description: "Whack"},
			{Key: "Esc", Description: "Quit"},
		}
	}
	return []layout.KeyHint{{Key: "Esc", Description: "Quit"}}
}

func (g *GameScreen) View(width, height int) string {
	if g.errMsg != "" {
		return renderError(width, g.errMsg)
	}
	if g.state.ShowingQuitConfirm {
		return renderQuitConfirm(width)
	}
	switch g.state.Phase {
	case sess.PhaseAsking:
		return g.renderQuestionView(width)
	case sess.PhaseFeedback:
		return g.renderFeedback(width)
	}
	return renderLoading(width)
}

func (g *GameScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case questionReadyMsg:
		return g.handleQuestionReady(msg)

	case timerTickMsg:
		return g.handleTimerTick()

	case feedbackDoneMsg:
		return g.handleFeedbackDone(msg)

	case tea.KeyMsg:
		return g.handleKey(msg)
	}

	if g.state.Phase == sess.PhaseAsking && g.state.Config.Mode == sess.ModeTyped {
		var cmd tea.Cmd
		g.input, cmd = g.input.Update(msg)
		return g, cmd
	}
	return g, nil
}

// nextQuestion generates a question off the update loop. Questions that
// fail validation are regenerated a bounded number of times.
func (g *GameScreen) nextQuestion() tea.Cmd {
	gen := g.generator
	logger := g.logger
	return func() tea.Msg {
		if gen == nil {
			return questionReadyMsg{Err: errors.New("no question generator configured")}
		}
		var verr *problemgen.ValidationError
		for attempt := 0; attempt < maxGenerateAttempts; attempt++ {
			q := gen.Generate()
			if verr = problemgen.Validate(q); verr == nil {
				return questionReadyMsg{Question: q}
			}
			logger.Warn("generated question failed validation",
				zap.String("question", q.Text),
				zap.String("validator", verr.Validator),
				zap.String("reason", verr.Message))
		}
		return questionReadyMsg{Err: fmt.Errorf("generate question: %w", verr)}
	}
}

func (g *GameScreen) handleQuestionReady(msg questionReadyMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		g.logger.Error("question generation failed", zap.Error(msg.Err))
		g.errMsg = msg.Err.Error()
		return g, nil
	}
	if g.state.Phase == sess.PhaseFinished {
		return g, nil
	}

	q := msg.Question
	sess.StartRound(g.state, q, g.now())
	g.logger.Debug("round started",
		zap.Int("round", g.state.Round),
		zap.String("question", q.Text),
		zap.Strings("options", q.OptionStrings()))

	if g.state.Config.Mode == sess.ModeTyped {
		g.input = components.NewTextInput("a/b", true, 12)
		return g, g.input.Init()
	}
	g.grid = components.NewMoleGrid(q.OptionStrings(), q.CorrectIndex())
	return g, nil
}

func (g *GameScreen) handleTimerTick() (screen.Screen, tea.Cmd) {
	if g.state.Phase == sess.PhaseFinished || g.errMsg != "" {
		return g, nil
	}
	if sess.CheckTimeout(g.state, g.now()) {
		g.grid.Reveal()
		g.logRound()
		return g, tea.Batch(tickCmd(), g.feedbackTimer())
	}
	return g, tickCmd()
}

func (g *GameScreen) handleFeedbackDone(msg feedbackDoneMsg) (screen.Screen, tea.Cmd) {
	if g.state.Phase != sess.PhaseFeedback || msg.Round != g.state.Round {
		return g, nil
	}
	if g.state.ShowingQuitConfirm {
		return g, nil
	}
	if sess.AdvanceRound(g.state, g.now()) {
		return g, g.nextQuestion()
	}
	return g, g.finish()
}

func (g *GameScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	// Error state: any key goes back.
	if g.errMsg != "" {
		return g, func() tea.Msg { return router.PopScreenMsg{} }
	}

	if g.state.ShowingQuitConfirm {
		switch key {
		case "y", "Y":
			g.state.ShowingQuitConfirm = false
			g.state.Quit = true
			sess.Finish(g.state, g.now())
			return g, g.finish()
		case "n", "N", "esc":
			g.state.ShowingQuitConfirm = false
		}
		return g, nil
	}

	if key == "esc" {
		g.state.ShowingQuitConfirm = true
		return g, nil
	}

	switch g.state.Phase {
	case sess.PhaseFeedback:
		round := g.state.Round
		return g, func() tea.Msg { return feedbackDoneMsg{Round: round} }

	case sess.PhaseAsking:
		if g.state.Config.Mode == sess.ModeTyped {
			return g.handleTypedKey(msg)
		}
		return g.handleMoleKey(msg)
	}
	return g, nil
}

func (g *GameScreen) handleMoleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	g.grid, cmd = g.grid.Update(msg)
	if !g.grid.Whacked {
		return g, cmd
	}

	if _, err := sess.HandleChoice(g.state, g.grid.ChosenIndex, g.now()); err != nil {
		g.logger.Warn("whack rejected", zap.Error(err))
		return g, cmd
	}
	g.grid.Reveal()
	g.logRound()
	return g, tea.Batch(cmd, g.feedbackTimer())
}

func (g *GameScreen) handleTypedKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if msg.String() != "enter" {
		var cmd tea.Cmd
		g.input, cmd = g.input.Update(msg)
		return g, cmd
	}

	value := g.input.Value()
	if value == "" {
		return g, nil
	}
	res, err := sess.HandleTyped(g.state, value, g.now())
	if err != nil {
		g.logger.Warn("answer rejected", zap.Error(err))
		return g, nil
	}
	g.input.Submit(res.Correct)
	g.logRound()
	return g, g.feedbackTimer()
}

// finish builds the summary, saves the game, and swaps in the summary
// screen.
func (g *GameScreen) finish() tea.Cmd {
	sum := sess.BuildSummary(g.state)
	repo := g.repo
	logger := g.logger
	logger.Info("game finished",
		zap.Int("score", sum.Score),
		zap.Int("max_score", sum.MaxScore),
		zap.Int("correct", sum.Correct),
		zap.Int("rounds", sum.Rounds),
		zap.Bool("quit", sum.Quit),
		zap.Duration("duration", sum.Duration()))

	return func() tea.Msg {
		var saveErr error
		if repo != nil {
			if saveErr = repo.SaveGame(context.Background(), store.GameFromSummary(sum)); saveErr != nil {
				logger.Error("save game failed", zap.Error(saveErr))
			}
		}
		return router.ReplaceScreenMsg{Screen: summary.New(sum, saveErr)}
	}
}

func (g *GameScreen) feedbackTimer() tea.Cmd {
	round := g.state.Round
	return tea.Tick(feedbackDelay, func(time.Time) tea.Msg {
		return feedbackDoneMsg{Round: round}
	})
}

func (g *GameScreen) logRound() {
	res := g.state.LastResult()
	if res == nil {
		return
	}
	fields := []zap.Field{
		zap.Int("round", res.Number),
		zap.Bool("correct", res.Correct),
		zap.Bool("timed_out", res.TimedOut),
		zap.Int("delta", res.Delta),
		zap.Int("score", g.state.Score),
		zap.Duration("elapsed", res.Elapsed),
	}
	if res.Chosen != nil {
		fields = append(fields, zap.Stringer("chosen", res.Chosen))
	}
	g.logger.Debug("round scored", fields...)
}

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return timerTickMsg(t)
	})
}
