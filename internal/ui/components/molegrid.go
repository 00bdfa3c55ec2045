package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/fracmole/internal/ui/theme"
)

// moleCols is the number of holes per row.
const moleCols = 2

// MoleGrid shows the answer options as moles popping out of a 2x2 grid of
// holes. A mole is whacked with its number key, or by moving the mallet
// with the arrow keys and pressing Enter or Space.
type MoleGrid struct {
	Options      []string
	CorrectIndex int
	Selected     int

	// Whacked is set once a mole has been hit. ChosenIndex is -1 until then.
	Whacked     bool
	ChosenIndex int

	// Revealed shows which mole held the answer.
	Revealed bool
}

// NewMoleGrid creates a grid with the mallet over the first mole.
func NewMoleGrid(options []string, correctIndex int) MoleGrid {
	return MoleGrid{
		Options:      options,
		CorrectIndex: correctIndex,
		ChosenIndex:  -1,
	}
}

// Update moves the mallet or whacks a mole. Input is ignored once whacked.
func (m MoleGrid) Update(msg tea.Msg) (MoleGrid, tea.Cmd) {
	if m.Whacked || m.Revealed {
		return m, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	n := len(m.Options)
	switch key := kmsg.String(); key {
	case "left", "h":
		if m.Selected%moleCols > 0 {
			m.Selected--
		}
	case "right", "l":
		if m.Selected%moleCols < moleCols-1 && m.Selected+1 < n {
			m.Selected++
		}
	case "up", "k":
		if m.Selected-moleCols >= 0 {
			m.Selected -= moleCols
		}
	case "down", "j":
		if m.Selected+moleCols < n {
			m.Selected += moleCols
		}
	case "enter", "space":
		m.whack(m.Selected)
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			if idx := int(key[0] - '1'); idx < n {
				m.Selected = idx
				m.whack(idx)
			}
		}
	}

	return m, nil
}

func (m *MoleGrid) whack(idx int) {
	m.Whacked = true
	m.ChosenIndex = idx
}

// Reveal marks the grid as finished so View highlights the answer.
func (m *MoleGrid) Reveal() {
	m.Revealed = true
}

// IsCorrect returns true if the whacked mole held the answer.
func (m MoleGrid) IsCorrect() bool {
	return m.Whacked && m.ChosenIndex == m.CorrectIndex
}

// View renders the grid at the given total width.
func (m MoleGrid) View(width int) string {
	cardWidth := min(max(width/moleCols-4, 12), 24)

	var rows []string
	for start := 0; start < len(m.Options); start += moleCols {
		var cards []string
		for i := start; i < min(start+moleCols, len(m.Options)); i++ {
			cards = append(cards, m.renderMole(i, cardWidth), "  ")
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}

	grid := lipgloss.JoinVertical(lipgloss.Center, rows...)
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, grid)
}

func (m MoleGrid) renderMole(i, cardWidth int) string {
	label := fmt.Sprintf("(%d)", i+1)
	face := "  ʕ•ᴥ•ʔ"
	body := fmt.Sprintf("%s\n%s\n%s", label, face, m.Options[i])

	style := theme.MoleCard.Width(cardWidth)
	switch {
	case m.Revealed && i == m.CorrectIndex:
		style = style.BorderForeground(theme.Success).Foreground(theme.Success).Bold(true)
	case m.Revealed && i == m.ChosenIndex:
		style = style.BorderForeground(theme.Error).Foreground(theme.Error).Bold(true)
	case m.Revealed:
		style = style.Foreground(theme.TextDim).BorderForeground(theme.Border)
	case i == m.Selected:
		style = theme.MoleCardSelected.Width(cardWidth)
	}
	card := style.Render(body)
	hole := lipgloss.NewStyle().Foreground(theme.Hole).Render(strings.Repeat("▀", lipgloss.Width(card)))
	return lipgloss.JoinVertical(lipgloss.Center, card, hole)
}
