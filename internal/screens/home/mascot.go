package home

import (
	"charm.land/lipgloss/v2"

	"github.com/sjostromVilgot/Facta-sub000/internal/ui/theme"
)

// MascotVariant selects which mascot art to display.
type MascotVariant int

const (
	MascotIdle        MascotVariant = iota
	MascotCelebrating               // level-up or streak milestone
	MascotAlert                     // streak just restarted
)

const mascotIdle = ` ,___,
 (O,O)
 /)__)
--"-"--`

const mascotCelebrating = `\,___,/
 (^,^)
 /)__)
--"-"--`

const mascotAlert = ` ,___,
 (o,O) ?
 /)__)
--"-"--`

// RenderMascot returns the owl for the given variant.
func RenderMascot(v MascotVariant) string {
	art, fg := mascotIdle, theme.Primary
	switch v {
	case MascotCelebrating:
		art, fg = mascotCelebrating, theme.Gold
	case MascotAlert:
		art, fg = mascotAlert, theme.Accent
	}
	return lipgloss.NewStyle().Foreground(fg).Render(art)
}
