package game

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	sess "github.com/abhisek/fracmole/internal/session"
	"github.com/abhisek/fracmole/internal/ui/components"
	"github.com/abhisek/fracmole/internal/ui/layout"
	"github.com/abhisek/fracmole/internal/ui/theme"
)

// renderQuestionView renders the active round: timer, question, and input.
func (g *GameScreen) renderQuestionView(width int) string {
	state := g.state
	q := state.CurrentQuestion
	if q == nil {
		return renderLoading(width)
	}

	var b strings.Builder

	remaining := sess.Remaining(state, g.now())
	pct := 0.0
	if state.Config.RoundTime > 0 {
		pct = float64(remaining) / float64(state.Config.RoundTime)
	}
	bar := components.ProgressBar{
		Label:        fmt.Sprintf("%4.1fs", remaining.Seconds()),
		Percent:      pct,
		Width:        min(width-8, 50),
		LowThreshold: 0.3,
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
	b.WriteString("\n\n")

	b.WriteString(layout.Centered(lipgloss.NewStyle().Foreground(theme.Text).Bold(true), width, q.Text))
	b.WriteString("\n\n")

	if state.Config.Mode == sess.ModeTyped {
		b.WriteString(layout.Centered(lipgloss.NewStyle(), width, "Answer: "+g.input.View()))
		b.WriteString("\n\n")
		b.WriteString(layout.Centered(lipgloss.NewStyle().Foreground(theme.TextDim), width,
			"Type the answer as a/b and press Enter"))
		return b.String()
	}

	b.WriteString(g.grid.View(width))
	b.WriteString("\n")
	b.WriteString(layout.Centered(lipgloss.NewStyle().Foreground(theme.TextDim), width,
		"Whack the mole holding the answer (1-4)"))
	return b.String()
}

// renderFeedback renders the outcome of the last round.
func (g *GameScreen) renderFeedback(width int) string {
	res := g.state.LastResult()
	if res == nil {
		return renderLoading(width)
	}

	var b strings.Builder
	b.WriteString("\n")

	switch {
	case res.Correct:
		b.WriteString(layout.Centered(theme.Correct, width, fmt.Sprintf("Whack! Correct! +%d", res.Delta)))
	case res.TimedOut:
		b.WriteString(layout.Centered(lipgloss.NewStyle().Foreground(theme.Accent).Bold(true), width,
			"Too slow! The mole got away."))
	default:
		msg := "Missed!"
		if res.Delta < 0 {
			msg = fmt.Sprintf("Missed! %d", res.Delta)
		}
		b.WriteString(layout.Centered(theme.Incorrect, width, msg))
	}
	b.WriteString("\n\n")

	if q := res.Question; q != nil {
		b.WriteString(layout.Centered(lipgloss.NewStyle().Foreground(theme.Text), width,
			fmt.Sprintf("%s  →  %s", strings.TrimSuffix(q.Text, "?"), q.CorrectAnswer)))
		b.WriteString("\n\n")
		if g.state.Config.Mode == sess.ModeMoles {
			b.WriteString(g.grid.View(width))
			b.WriteString("\n")
		} else if res.Input != "" {
			b.WriteString(layout.Centered(lipgloss.NewStyle().Foreground(theme.TextDim), width,
				"You typed: "+g.input.View()))
			b.WriteString("\n\n")
		}
	}

	b.WriteString(layout.Centered(theme.Hint, width, "Press any key to continue..."))
	return b.String()
}

// renderQuitConfirm renders the quit confirmation dialog.
func renderQuitConfirm(width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(layout.Centered(lipgloss.NewStyle().Foreground(theme.Text).Bold(true), width, "End game early?"))
	b.WriteString("\n")
	b.WriteString(layout.Centered(lipgloss.NewStyle().Foreground(theme.TextDim), width, "Your score so far will be saved."))
	b.WriteString("\n\n")
	b.WriteString(layout.Centered(lipgloss.NewStyle().Foreground(theme.Success), width, "[Y] Yes, end game"))
	b.WriteString("\n")
	b.WriteString(layout.Centered(lipgloss.NewStyle().Foreground(theme.Primary), width, "[N] No, keep going"))
	return b.String()
}

func renderLoading(width int) string {
	return layout.Centered(lipgloss.NewStyle().Foreground(theme.TextDim), width, "\n\n\n  Digging holes...")
}

func renderError(width int, errMsg string) string {
	return layout.Centered(lipgloss.NewStyle().Foreground(theme.Error), width,
		fmt.Sprintf("\n\n\n  Error: %s\n\n  Press any key to go back.", errMsg))
}
