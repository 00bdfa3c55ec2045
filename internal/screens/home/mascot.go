package home

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/fracmole/internal/ui/theme"
)

// MascotVariant selects which mascot art to display.
type MascotVariant int

const (
	MascotIdle     MascotVariant = iota // Default brown mole
	MascotChampion                      // Gold crown, best score is a champion verdict
	MascotSleepy                        // No games played yet
)

const mascotIdle = `   ___
 ( •ᴥ• )
/|  ½  |\
▔▔▔▔▔▔▔▔▔`

const mascotChampion = `  ♛♛♛
 ( ★ᴥ★ )
/|  ½  |\
▔▔▔▔▔▔▔▔▔`

const mascotSleepy = `   ___   z
 ( -ᴥ- ) z
/|  ½  |\
▔▔▔▔▔▔▔▔▔`

// RenderMascot returns the mascot ASCII art for the given variant.
func RenderMascot(v MascotVariant) string {
	art := mascotIdle
	fg := theme.Mole

	switch v {
	case MascotChampion:
		art = mascotChampion
		fg = theme.Accent
	case MascotSleepy:
		art = mascotSleepy
		fg = theme.TextDim
	}

	return lipgloss.NewStyle().
		Foreground(fg).
		Render(art)
}

// mascotFor picks the mascot for the player's record.
func mascotFor(games, best, maxScore int) MascotVariant {
	switch {
	case games == 0:
		return MascotSleepy
	case maxScore > 0 && best*10 >= maxScore*9:
		return MascotChampion
	default:
		return MascotIdle
	}
}
