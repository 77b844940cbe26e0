// Package layout draws the frame around every screen: a header bar with the
// player's level and streak, the screen body and a footer of key hints.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/sjostromVilgot/Facta-sub000/internal/ui/theme"
)

// Smallest terminal the frame is drawn in.
const (
	MinWidth  = 60
	MinHeight = 20
)

type KeyHint struct {
	Key         string
	Description string
}

// HeaderStats is shown at the right of the header. Level 0 hides it.
type HeaderStats struct {
	Level  int
	Streak int
}

var bar = lipgloss.NewStyle().
	Background(theme.BgCard).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(theme.Border)

// Fits reports whether a width x height terminal can hold the frame.
func Fits(width, height int) bool {
	return width >= MinWidth && height >= MinHeight
}

// TooSmall fills the terminal with a request to resize it.
func TooSmall(width, height int) string {
	msg := fmt.Sprintf("Facta needs at least %dx%d.\n\nThis terminal is %dx%d.",
		MinWidth, MinHeight, width, height)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, theme.Body.Render(msg))
}

// Header puts the app name on the left, title in the middle and stats on
// the right.
func Header(title string, stats HeaderStats, width int) string {
	name := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(" ✦ Facta")
	mid := theme.Body.Render(title)

	var right string
	if stats.Level > 0 {
		days := "days"
		if stats.Streak == 1 {
			days = "day"
		}
		right = lipgloss.NewStyle().Foreground(theme.Gold).Render(fmt.Sprintf("Lv %d", stats.Level)) + "  " +
			lipgloss.NewStyle().Foreground(theme.Accent).Render(fmt.Sprintf("🔥 %d %s ", stats.Streak, days))
	}

	inner := max(width-bar.GetHorizontalFrameSize(), 0)
	// Centre the title on the bar, not on the space left between the sides.
	pad1 := max(inner/2-lipgloss.Width(mid)/2-lipgloss.Width(name), 1)
	pad2 := max(inner-lipgloss.Width(name)-pad1-lipgloss.Width(mid)-lipgloss.Width(right), 1)

	line := name + strings.Repeat(" ", pad1) + mid + strings.Repeat(" ", pad2) + right
	return bar.Width(width).Render(line)
}

// Footer lists hints as "Key description" pairs.
func Footer(hints []KeyHint, width int) string {
	key := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	var b strings.Builder
	b.WriteString(" ")
	for i, h := range hints {
		if i > 0 {
			b.WriteString("  ·  ")
		}
		b.WriteString(key.Render(h.Key) + " " + theme.Hint.Render(h.Description))
	}
	return bar.Width(width).Render(b.String())
}

// Compose stacks header, body and footer into a width x height frame. body
// is called with the height left between the bars.
func Compose(width, height int, header, footer string, body func(w, h int) string) string {
	h := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := lipgloss.NewStyle().Width(width).Height(h).MaxHeight(h).Render(body(width, h))
	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}
