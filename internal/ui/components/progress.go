package components

import (
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/sjostromVilgot/Facta-sub000/internal/ui/theme"
)

// Bar draws frac (clamped to [0, 1]) as a width-cell bar in fill, or in
// the secondary colour when fill is nil.
func Bar(frac float64, width int, fill color.Color) string {
	if fill == nil {
		fill = theme.Secondary
	}
	width = max(width, 4)
	n := int(float64(width) * min(max(frac, 0), 1))

	done := lipgloss.NewStyle().Background(fill).Render(strings.Repeat(" ", n))
	todo := lipgloss.NewStyle().Background(theme.Border).Render(strings.Repeat(" ", width-n))
	return done + todo
}

// LabeledBar puts label in front of a bar so the pair is width cells wide.
func LabeledBar(label string, frac float64, width int, fill color.Color) string {
	label = theme.Body.Render(label) + "  "
	return label + Bar(frac, width-lipgloss.Width(label), fill)
}
