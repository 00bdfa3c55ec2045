package home

import (
	"fmt"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/fracmole/internal/store"
	"github.com/abhisek/fracmole/internal/ui/theme"
)

const arcadeTitleFull = ` ___ ___  _   ___ __  __  ___  _    ___
| __| _ \/_\ / __|  \/  |/ _ \| |  | __|
| _||   / _ \ (__| |\/| | (_) | |__| _|
|_| |_|_\/_/ \_\___|_|  |_|\___/|____|___|`

const arcadeTitleCompact = "F · R · A · C · M · O · L · E"

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 22

// renderTitle returns the styled title block or compact fallback.
func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Accent).
		Bold(true)

	title := arcadeTitleFull
	if compact {
		title = arcadeTitleCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(title))
}

// renderStatsBar renders lifetime stats in a bordered box matching content width.
func renderStatsBar(t store.Totals, cw int, compact bool) string {
	bestStyle := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	gamesStyle := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)
	accStyle := lipgloss.NewStyle().Foreground(theme.Success).Bold(true)

	var stats string
	if compact {
		stats = fmt.Sprintf("%s %s %s",
			bestStyle.Render(fmt.Sprintf("★%d", t.BestScore)),
			gamesStyle.Render(fmt.Sprintf("#%d", t.Games)),
			accStyle.Render(fmt.Sprintf("%.0f%%", t.Accuracy())),
		)
	} else {
		stats = fmt.Sprintf("%s  %s  %s",
			bestStyle.Render(fmt.Sprintf("★ BEST %d", t.BestScore)),
			gamesStyle.Render(fmt.Sprintf("# %d GAMES", t.Games)),
			accStyle.Render(fmt.Sprintf("%.0f%% HITS", t.Accuracy())),
		)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Secondary).
		Width(cw - 2). // account for border chars
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(stats)
}

// renderMascotBox renders the mascot centered in a box matching content width.
func renderMascotBox(variant MascotVariant, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(RenderMascot(variant))
}
