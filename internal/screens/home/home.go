package home

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/fracmole/internal/problemgen"
	"github.com/abhisek/fracmole/internal/router"
	"github.com/abhisek/fracmole/internal/screen"
	"github.com/abhisek/fracmole/internal/screens/game"
	"github.com/abhisek/fracmole/internal/screens/history"
	sess "github.com/abhisek/fracmole/internal/session"
	"github.com/abhisek/fracmole/internal/store"
	"github.com/abhisek/fracmole/internal/ui/components"
	"github.com/abhisek/fracmole/internal/ui/theme"
)

type totalsLoadedMsg struct {
	Totals store.Totals
	Err    error
}

// HomeScreen is the main home screen of the application.
type HomeScreen struct {
	menu    components.Menu
	repo    store.GameRepo
	cfg     sess.Config
	logger  *zap.Logger
	totals  store.Totals
	loadErr string
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen. repo may be nil, which hides history.
func New(generator *problemgen.Generator, repo store.GameRepo, cfg sess.Config, logger *zap.Logger) *HomeScreen {
	if logger == nil {
		logger = zap.NewNop()
	}

	startGame := func(mode sess.Mode) func() tea.Cmd {
		return func() tea.Cmd {
			c := cfg
			c.Mode = mode
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: game.New(generator, repo, c, logger)}
			}
		}
	}

	items := []components.MenuItem{
		{Label: "WHACK MOLES", Action: startGame(sess.ModeMoles)},
		{Label: "TYPE ANSWERS", Action: startGame(sess.ModeTyped)},
		{Label: "HISTORY", Disabled: repo == nil, Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: history.New(repo)}
			}
		}},
		{Label: "EXIT GAME", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	// Start on the configured mode.
	menu := components.NewMenu(items)
	if cfg.Mode == sess.ModeTyped {
		menu.Selected = 1
	}

	return &HomeScreen{
		menu:   menu,
		repo:   repo,
		cfg:    cfg,
		logger: logger,
	}
}

// Init loads lifetime totals. It runs again whenever the router returns
// to the home screen.
func (h *HomeScreen) Init() tea.Cmd {
	if h.repo == nil {
		return nil
	}
	repo := h.repo
	return func() tea.Msg {
		t, err := repo.Totals(context.Background())
		return totalsLoadedMsg{Totals: t, Err: err}
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(totalsLoadedMsg); ok {
		if msg.Err != nil {
			h.logger.Warn("load totals failed", zap.Error(msg.Err))
			h.loadErr = msg.Err.Error()
			return h, nil
		}
		h.totals = msg.Totals
		h.loadErr = ""
		return h, nil
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	compact := height < 22 || width < 70
	cw := components.ContentWidth(width)

	var sections []string
	sections = append(sections, renderTitle(cw, compact))
	if !compact {
		sections = append(sections, renderMascotBox(mascotFor(h.totals.Games, h.totals.BestScore, h.cfg.MaxScore()), cw))
	}
	sections = append(sections, renderStatsBar(h.totals, cw, compact))
	if h.loadErr != "" {
		sections = append(sections, lipgloss.NewStyle().
			Foreground(theme.Error).
			Width(cw).
			Align(lipgloss.Center).
			Render("Could not load stats: "+h.loadErr))
	}

	var menu string
	if compact {
		menu = h.menu.PlainView()
	} else {
		menu = h.menu.View(buttonWidth)
	}
	sections = append(sections, lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Render(menu))

	return components.CabinetFrame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
