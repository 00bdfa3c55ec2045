package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/fracmole/internal/router"
	"github.com/abhisek/fracmole/internal/screen"
	"github.com/abhisek/fracmole/internal/session"
	"github.com/abhisek/fracmole/internal/ui/layout"
	"github.com/abhisek/fracmole/internal/ui/theme"
)

// SummaryScreen displays the result of a finished game.
type SummaryScreen struct {
	summary *session.Summary
	saveErr error
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen. saveErr is shown when the game could
// not be stored.
func New(summary *session.Summary, saveErr error) *SummaryScreen {
	return &SummaryScreen{summary: summary, saveErr: saveErr}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Game Over"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Home"},
		{Key: "Esc", Description: "Home"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc", "q":
			return s, func() tea.Msg { return router.PopToRootMsg{} }
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary
	if sum == nil {
		return ""
	}

	var b strings.Builder

	title := "Game complete!"
	if sum.Quit {
		title = "Game ended early"
	}
	b.WriteString(layout.Centered(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true), width, title))
	b.WriteString("\n\n")

	b.WriteString(layout.Centered(lipgloss.NewStyle().Foreground(theme.Accent).Bold(true), width,
		fmt.Sprintf("Final score: %d / %d", sum.Score, sum.MaxScore)))
	b.WriteString("\n")
	b.WriteString(layout.Centered(lipgloss.NewStyle().Foreground(theme.Text), width, sum.Verdict()))
	b.WriteString("\n\n")

	d := sum.Duration()
	statsLine := fmt.Sprintf("Rounds: %d        Correct: %d        Time: %d:%02d",
		sum.Rounds, sum.Correct, int(d.Minutes()), int(d.Seconds())%60)
	b.WriteString(layout.Centered(lipgloss.NewStyle().Foreground(theme.TextDim), width, statsLine))
	b.WriteString("\n\n")

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(min(width-8, 50), 0)))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n")

	for _, r := range sum.Results {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, renderRound(r)))
		b.WriteString("\n")
	}

	if s.saveErr != nil {
		b.WriteString("\n")
		b.WriteString(layout.Centered(lipgloss.NewStyle().Foreground(theme.Error), width,
			fmt.Sprintf("This game was not saved: %v", s.saveErr)))
	}

	return b.String()
}

// renderRound renders one line of the round breakdown.
func renderRound(r session.RoundResult) string {
	text := ""
	if r.Question != nil {
		text = strings.TrimSuffix(r.Question.Text, " = ?")
	}

	var outcome string
	var style lipgloss.Style
	switch {
	case r.Correct:
		outcome = "✓"
		style = lipgloss.NewStyle().Foreground(theme.Success)
	case r.TimedOut:
		outcome = "⏱"
		style = lipgloss.NewStyle().Foreground(theme.Accent)
	default:
		outcome = "✗"
		style = lipgloss.NewStyle().Foreground(theme.Error)
	}

	answer := ""
	switch {
	case r.Chosen != nil:
		answer = r.Chosen.String()
	case r.Input != "":
		answer = r.Input
	case r.TimedOut:
		answer = "-"
	}

	return style.Render(fmt.Sprintf("%2d. %-18s %s %-8s %+d", r.Number, text, outcome, answer, r.Delta))
}
