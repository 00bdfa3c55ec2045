package game

import (
	"context"
	"strconv"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/fracmole/internal/problemgen"
	"github.com/abhisek/fracmole/internal/router"
	"github.com/abhisek/fracmole/internal/screens/summary"
	sess "github.com/abhisek/fracmole/internal/session"
	"github.com/abhisek/fracmole/internal/store"
)

// mockRepo implements store.GameRepo for testing.
type mockRepo struct {
	saved []*store.GameRecord
}

func (m *mockRepo) SaveGame(_ context.Context, g *store.GameRecord) error {
	m.saved = append(m.saved, g)
	return nil
}
func (m *mockRepo) RecentGames(context.Context, int) ([]store.GameRecord, error) { return nil, nil }
func (m *mockRepo) GameRounds(context.Context, string) ([]store.RoundRecord, error) {
	return nil, nil
}
func (m *mockRepo) Totals(context.Context) (store.Totals, error) { return store.Totals{}, nil }
func (m *mockRepo) Reset(context.Context) error                   { return nil }

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

// testClock is a settable clock for the screen.
type testClock struct {
	t time.Time
}

func (c *testClock) now() time.Time          { return c.t }
func (c *testClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func testGameScreen(mode sess.Mode, rounds int) (*GameScreen, *mockRepo, *testClock) {
	cfg := sess.DefaultConfig()
	cfg.Mode = mode
	cfg.Rounds = rounds

	gen := problemgen.New(problemgen.DefaultConfig(), problemgen.WithSeed(7))
	repo := &mockRepo{}
	clock := &testClock{t: time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)}

	g := New(gen, repo, cfg, nil)
	g.now = clock.now
	return g, repo, clock
}

// startRound runs the question generator synchronously and delivers it.
func startRound(t *testing.T, g *GameScreen) *problemgen.Question {
	t.Helper()
	msg, ok := g.nextQuestion()().(questionReadyMsg)
	if !ok {
		t.Fatal("nextQuestion did not return questionReadyMsg")
	}
	if msg.Err != nil {
		t.Fatalf("generate: %v", msg.Err)
	}
	g.Update(msg)
	if g.state.Phase != sess.PhaseAsking {
		t.Fatalf("phase = %v, want asking", g.state.Phase)
	}
	return msg.Question
}

func whack(idx int) tea.KeyPressMsg {
	return keyPress(rune('1' + idx))
}

func wrongIndex(q *problemgen.Question) int {
	return (q.CorrectIndex() + 1) % len(q.Options)
}

func TestGameScreen_Title(t *testing.T) {
	g, _, _ := testGameScreen(sess.ModeMoles, 10)
	if g.Title() != "Whack the Answer" {
		t.Errorf("Title = %q", g.Title())
	}
	g, _, _ = testGameScreen(sess.ModeTyped, 10)
	if g.Title() != "Type the Answer" {
		t.Errorf("Title = %q", g.Title())
	}
}

func TestGameScreen_InitReturnsCmd(t *testing.T) {
	g, _, _ := testGameScreen(sess.ModeMoles, 10)
	if g.Init() == nil {
		t.Error("expected Init to return a command")
	}
	if !strings.Contains(g.View(80, 24), "Digging holes") {
		t.Error("expected loading view before the first question")
	}
}

func TestGameScreen_WhackCorrect(t *testing.T) {
	g, _, clock := testGameScreen(sess.ModeMoles, 10)
	q := startRound(t, g)

	clock.advance(time.Second)
	_, cmd := g.Update(whack(q.CorrectIndex()))
	if cmd == nil {
		t.Error("expected feedback timer command")
	}

	if g.state.Phase != sess.PhaseFeedback {
		t.Fatalf("phase = %v, want feedback", g.state.Phase)
	}
	if g.state.Score != 3 {
		t.Errorf("score = %d, want 3", g.state.Score)
	}
	res := g.state.LastResult()
	if !res.Correct || res.Elapsed != time.Second {
		t.Errorf("result = %+v", res)
	}
	if !strings.Contains(g.View(80, 24), "Correct") {
		t.Error("expected correct feedback in view")
	}
	if g.Status() != "Score 3   Round 1/10" {
		t.Errorf("Status = %q", g.Status())
	}
}

func TestGameScreen_WhackWrongFloorsScore(t *testing.T) {
	g, _, _ := testGameScreen(sess.ModeMoles, 10)
	q := startRound(t, g)

	g.Update(whack(wrongIndex(q)))

	if g.state.Score != 0 {
		t.Errorf("score = %d, want 0", g.state.Score)
	}
	if g.state.LastResult().Correct {
		t.Error("expected a miss")
	}
	if !strings.Contains(g.View(80, 24), "Missed") {
		t.Error("expected miss feedback in view")
	}
}

func TestGameScreen_ArrowAndEnter(t *testing.T) {
	g, _, _ := testGameScreen(sess.ModeMoles, 10)
	startRound(t, g)

	g.Update(specialKey(tea.KeyRight))
	g.Update(specialKey(tea.KeyEnter))

	res := g.state.LastResult()
	if res == nil || res.Chosen == nil {
		t.Fatal("expected a whack on Enter")
	}
	if *res.Chosen != g.state.Results[0].Question.Options[1] {
		t.Errorf("chosen = %s, want option 2", res.Chosen)
	}
}

func TestGameScreen_Timeout(t *testing.T) {
	g, _, clock := testGameScreen(sess.ModeMoles, 10)
	startRound(t, g)

	clock.advance(4 * time.Second)
	g.Update(timerTickMsg(clock.t))
	if g.state.Phase != sess.PhaseAsking {
		t.Fatal("timed out too early")
	}

	clock.advance(time.Second)
	g.Update(timerTickMsg(clock.t))
	if g.state.Phase != sess.PhaseFeedback {
		t.Fatalf("phase = %v, want feedback", g.state.Phase)
	}
	res := g.state.LastResult()
	if !res.TimedOut || g.state.Score != 0 {
		t.Errorf("result = %+v, score = %d", res, g.state.Score)
	}
	if !strings.Contains(g.View(80, 24), "Too slow") {
		t.Error("expected timeout feedback in view")
	}
}

func TestGameScreen_FeedbackAdvances(t *testing.T) {
	g, _, _ := testGameScreen(sess.ModeMoles, 10)
	q := startRound(t, g)
	g.Update(whack(q.CorrectIndex()))

	// Any key ends feedback early.
	_, cmd := g.Update(keyPress('x'))
	if cmd == nil {
		t.Fatal("expected feedbackDone command")
	}
	done := cmd()
	_, cmd = g.Update(done)
	if cmd == nil {
		t.Fatal("expected next question command")
	}
	if g.state.Phase != sess.PhaseWaiting {
		t.Fatalf("phase = %v, want waiting", g.state.Phase)
	}

	// The auto timer for round 1 fires late and is ignored.
	g.Update(cmd())
	if g.state.Round != 2 {
		t.Fatalf("round = %d, want 2", g.state.Round)
	}
	g.Update(feedbackDoneMsg{Round: 1})
	if g.state.Phase != sess.PhaseAsking {
		t.Errorf("stale feedbackDone changed phase to %v", g.state.Phase)
	}
}

func TestGameScreen_FullGameSaves(t *testing.T) {
	g, repo, clock := testGameScreen(sess.ModeMoles, 2)

	var cmd tea.Cmd
	for round := 1; round <= 2; round++ {
		q := startRound(t, g)
		clock.advance(time.Second)
		g.Update(whack(q.CorrectIndex()))
		_, cmd = g.Update(feedbackDoneMsg{Round: round})
	}

	if g.state.Phase != sess.PhaseFinished {
		t.Fatalf("phase = %v, want finished", g.state.Phase)
	}
	if cmd == nil {
		t.Fatal("expected finish command")
	}
	msg, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatal("expected ReplaceScreenMsg")
	}
	if _, ok := msg.Screen.(*summary.SummaryScreen); !ok {
		t.Errorf("replacement screen = %T, want summary", msg.Screen)
	}

	if len(repo.saved) != 1 {
		t.Fatalf("saved games = %d, want 1", len(repo.saved))
	}
	rec := repo.saved[0]
	if rec.Score != 6 || rec.MaxScore != 6 || rec.Correct != 2 || len(rec.RoundDetails) != 2 {
		t.Errorf("saved = %+v", rec)
	}
	if rec.ID != g.state.SessionID {
		t.Errorf("saved ID = %q, want session ID", rec.ID)
	}
}

func TestGameScreen_QuitConfirm(t *testing.T) {
	g, repo, _ := testGameScreen(sess.ModeMoles, 10)
	startRound(t, g)

	g.Update(specialKey(tea.KeyEscape))
	if !g.state.ShowingQuitConfirm {
		t.Fatal("expected quit confirm")
	}
	if !strings.Contains(g.View(80, 24), "End game early?") {
		t.Error("expected quit dialog in view")
	}

	g.Update(keyPress('n'))
	if g.state.ShowingQuitConfirm || g.state.Phase != sess.PhaseAsking {
		t.Fatal("expected to resume the round")
	}

	g.Update(specialKey(tea.KeyEscape))
	_, cmd := g.Update(keyPress('y'))
	if cmd == nil {
		t.Fatal("expected finish command")
	}
	if _, ok := cmd().(router.ReplaceScreenMsg); !ok {
		t.Error("expected ReplaceScreenMsg")
	}
	if !g.state.Quit || g.state.Phase != sess.PhaseFinished {
		t.Errorf("quit = %v, phase = %v", g.state.Quit, g.state.Phase)
	}
	if len(repo.saved) != 1 || !repo.saved[0].Quit {
		t.Error("expected the quit game to be saved")
	}
}

func TestGameScreen_Typed(t *testing.T) {
	g, _, _ := testGameScreen(sess.ModeTyped, 10)
	q := startRound(t, g)

	// Enter on empty input is ignored.
	g.Update(specialKey(tea.KeyEnter))
	if g.state.Phase != sess.PhaseAsking {
		t.Fatal("empty input should not be scored")
	}

	for _, r := range q.CorrectAnswer.String() {
		g.Update(keyPress(r))
	}
	g.Update(specialKey(tea.KeyEnter))

	if g.state.Phase != sess.PhaseFeedback {
		t.Fatalf("phase = %v, want feedback", g.state.Phase)
	}
	res := g.state.LastResult()
	if !res.Correct || res.Input != q.CorrectAnswer.String() {
		t.Errorf("result = %+v", res)
	}
}

func TestGameScreen_TypedUnsimplifiedIsCorrect(t *testing.T) {
	g, _, _ := testGameScreen(sess.ModeTyped, 10)
	q := startRound(t, g)

	// Doubling both parts keeps the value.
	a := q.CorrectAnswer
	typed := strconv.FormatInt(a.Num()*2, 10) + "/" + strconv.FormatInt(a.Den()*2, 10)
	for _, r := range typed {
		g.Update(keyPress(r))
	}
	g.Update(specialKey(tea.KeyEnter))

	if !g.state.LastResult().Correct {
		t.Errorf("typed %q for %s should be correct", typed, a)
	}
}

func TestGameScreen_KeyHints(t *testing.T) {
	g, _, _ := testGameScreen(sess.ModeMoles, 10)
	startRound(t, g)
	if hints := g.KeyHints(); len(hints) != 4 {
		t.Errorf("mole hints = %d, want 4", len(hints))
	}
	g.Update(specialKey(tea.KeyEscape))
	if hints := g.KeyHints(); len(hints) != 2 || hints[0].Key != "Y" {
		t.Errorf("quit hints = %+v", hints)
	}
}

func TestGameScreen_NoGenerator(t *testing.T) {
	g := New(nil, nil, sess.DefaultConfig(), nil)
	msg := g.nextQuestion()()
	g.Update(msg)
	if !strings.Contains(g.View(80, 24), "Error") {
		t.Error("expected error view")
	}
	_, cmd := g.Update(keyPress('x'))
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected any key to pop")
	}
}
