// Package theme holds Facta's colours and shared text styles.
package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

var (
	Primary   = lipgloss.Color("#7C6CF2")
	Secondary = lipgloss.Color("#2BB3A3")
	Accent    = lipgloss.Color("#F2A33A")
	Gold      = lipgloss.Color("#F5CB42")
	Success   = lipgloss.Color("#3DBE6A")
	Error     = lipgloss.Color("#E8505B")
	Text      = lipgloss.Color("#F4F1EA")
	TextDim   = lipgloss.Color("#9A98A6")
	BgDark    = lipgloss.Color("#16141F")
	BgCard    = lipgloss.Color("#221F2E")
	Border    = lipgloss.Color("#3A3648")
)

// CategoryColors tints fact cards by category. Unknown categories use Secondary.
var CategoryColors = map[string]color.Color{
	"Animals":    lipgloss.Color("#8BC34A"),
	"Culture":    lipgloss.Color("#EC7CB4"),
	"Food":       lipgloss.Color("#F39A4C"),
	"Geography":  lipgloss.Color("#3CC7B8"),
	"History":    lipgloss.Color("#D9793A"),
	"Science":    lipgloss.Color("#4DB2E8"),
	"Space":      lipgloss.Color("#A08CF0"),
	"Technology": lipgloss.Color("#D47FE6"),
}

func CategoryColor(category string) color.Color {
	if c, ok := CategoryColors[category]; ok {
		return c
	}
	return Secondary
}

func fg(c color.Color) lipgloss.Style { return lipgloss.NewStyle().Foreground(c) }

var (
	Title    = fg(Primary).Bold(true).Align(lipgloss.Center)
	Subtitle = fg(TextDim).Align(lipgloss.Center)
	Body     = fg(Text)
	Hint     = fg(TextDim).Italic(true)

	Selected  = fg(Primary).Bold(true)
	Correct   = fg(Success).Bold(true)
	Incorrect = fg(Error).Bold(true)
	Warning   = fg(Accent).Bold(true)
)
