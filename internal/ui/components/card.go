package components

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/sjostromVilgot/Facta-sub000/internal/ui/theme"
)

// ContentWidth returns the inner width shared by every section of a screen
// so that stacked boxes line up.
func ContentWidth(frameWidth int) int {
	return min(max(frameWidth-6, 20), 64)
}

// Frame wraps content in a rounded border and centres it in the area.
func Frame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Primary).
		Width(width-2).
		Height(height-2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

// Card renders content in a bordered box of width cw. A nil accent uses the
// neutral border colour.
func Card(content string, cw int, accent color.Color) string {
	if accent == nil {
		accent = theme.Border
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accent).
		Width(cw-2).
		Padding(1, 2).
		Render(content)
}

// Center centres s in a block of width cw.
func Center(s string, cw int) string {
	return lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Render(s)
}

// Banner is a single highlighted line, used for level-ups and turn changes.
func Banner(text string, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Bold(true).
		Foreground(theme.BgDark).
		Background(theme.Gold).
		Render(text)
}
