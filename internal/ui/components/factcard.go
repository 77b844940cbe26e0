package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/sjostromVilgot/Facta-sub000/internal/content"
	"github.com/sjostromVilgot/Facta-sub000/internal/ui/theme"
)

// FactCard renders a fact tinted by its category. A favourite gets a star
// next to the category.
func FactCard(f content.Fact, cw int, favorite bool) string {
	tint := theme.CategoryColor(f.Category)
	inner := cw - 6

	head := lipgloss.NewStyle().Foreground(tint).Bold(true).Render(strings.ToUpper(f.Category))
	if favorite {
		head += "  " + lipgloss.NewStyle().Foreground(theme.Gold).Render("★")
	}

	title := f.Title
	if f.Emoji != "" {
		title = f.Emoji + "  " + title
	}

	lines := []string{
		head,
		"",
		lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Width(inner).Render(title),
		"",
		lipgloss.NewStyle().Foreground(theme.Text).Width(inner).Render(f.Body),
	}
	if f.Source != "" {
		lines = append(lines, "", lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Width(inner).Render("Source: "+f.Source))
	}
	return Card(strings.Join(lines, "\n"), cw, tint)
}
