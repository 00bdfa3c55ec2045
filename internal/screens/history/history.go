package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/fracmole/internal/router"
	"github.com/abhisek/fracmole/internal/screen"
	"github.com/abhisek/fracmole/internal/store"
	"github.com/abhisek/fracmole/internal/ui/layout"
	"github.com/abhisek/fracmole/internal/ui/theme"
)

// recentLimit is the number of games listed.
const recentLimit = 20

type historyLoadedMsg struct {
	Games []store.GameRecord
	Err   error
}

type roundsLoadedMsg struct {
	GameID string
	Rounds []store.RoundRecord
	Err    error
}

// HistoryScreen lists past games. Enter expands a game into its rounds.
type HistoryScreen struct {
	repo     store.GameRepo
	games    []store.GameRecord
	rounds   map[string][]store.RoundRecord
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(repo store.GameRepo) *HistoryScreen {
	return &HistoryScreen{
		repo:     repo,
		rounds:   make(map[string][]store.RoundRecord),
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo := s.repo
	return func() tea.Msg {
		games, err := repo.RecentGames(context.Background(), recentLimit)
		return historyLoadedMsg{Games: games, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Rounds"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.games = msg.Games
		}
		s.loaded = true
		return s, nil

	case roundsLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.rounds[msg.GameID] = msg.Rounds
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.games)-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			if len(s.games) == 0 {
				return s, nil
			}
			s.expanded[s.selected] = !s.expanded[s.selected]
			return s, s.loadRounds(s.games[s.selected].ID)
		}
	}
	return s, nil
}

func (s *HistoryScreen) loadRounds(gameID string) tea.Cmd {
	if _, ok := s.rounds[gameID]; ok {
		return nil
	}
	repo := s.repo
	return func() tea.Msg {
		rounds, err := repo.GameRounds(context.Background(), gameID)
		return roundsLoadedMsg{GameID: gameID, Rounds: rounds, Err: err}
	}
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return layout.Centered(lipgloss.NewStyle().Foreground(theme.Error), width,
			fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return layout.Centered(lipgloss.NewStyle().Foreground(theme.TextDim), width,
			"\n\n  Loading history...")
	}
	if len(s.games) == 0 {
		return layout.Centered(lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true), width,
			"\n\n  No games yet. Go whack some moles!")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, g := range s.games {
		d := g.FinishedAt.Sub(g.StartedAt)
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}
		quit := ""
		if g.Quit {
			quit = "  (quit)"
		}
		line := fmt.Sprintf("%s%s  %-5s  %2d/%-2d  %d of %d correct  %d:%02d%s",
			prefix, g.FinishedAt.Format("Jan 02 15:04"), g.Mode,
			g.Score, g.MaxScore, g.Correct, g.Rounds,
			int(d.Minutes()), int(d.Seconds())%60, quit)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			b.WriteString(s.renderRounds(g.ID, width))
		}
	}

	return b.String()
}

func (s *HistoryScreen) renderRounds(gameID string, width int) string {
	rounds, ok := s.rounds[gameID]
	dim := lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true)
	if !ok {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, dim.Render("    Loading rounds...")) + "\n"
	}
	if len(rounds) == 0 {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, dim.Render("    No rounds recorded")) + "\n"
	}

	var b strings.Builder
	for _, r := range rounds {
		mark, color := "✗", theme.Error
		switch {
		case r.Correct:
			mark, color = "✓", theme.Success
		case r.TimedOut:
			mark, color = "⏱", theme.Accent
		}
		chosen := r.ChosenAnswer
		if chosen == "" {
			chosen = "-"
		}
		line := fmt.Sprintf("    %2d. %-20s %s %-6s (answer %s)",
			r.Number, strings.TrimSuffix(r.QuestionText, " = ?"), mark, chosen, r.CorrectAnswer)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(color).Render(line)))
		b.WriteString("\n")
	}
	return b.String()
}
