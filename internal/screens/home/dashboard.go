package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/sjostromVilgot/Facta-sub000/internal/ui/theme"
)

const titleFull = ` ███████╗ █████╗  ██████╗████████╗ █████╗
 ██╔════╝██╔══██╗██╔════╝╚══██╔══╝██╔══██╗
 █████╗  ███████║██║        ██║   ███████║
 ██╔══╝  ██╔══██║██║        ██║   ██╔══██║
 ██║     ██║  ██║╚██████╗   ██║   ██║  ██║
 ╚═╝     ╚═╝  ╚═╝ ╚═════╝   ╚═╝   ╚═╝  ╚═╝`

const titleCompact = "F · A · C · T · A"

func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().Foreground(theme.Gold).Bold(true)
	art := titleFull
	if compact {
		art = titleCompact
	}
	return lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Render(style.Render(art))
}

// dashboard is the numbers shown in the stats bar.
type dashboard struct {
	level, xpToNext int
	streak          int
	nextMilestone   int
	factsRead       int
}

// renderStatsBar renders the dashboard in a double-bordered box of width cw.
func renderStatsBar(d dashboard, cw int, compact bool) string {
	levelStyle := lipgloss.NewStyle().Foreground(theme.Gold).Bold(true)
	streakStyle := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	readStyle := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)

	var stats string
	if compact {
		stats = fmt.Sprintf("%s %s %s",
			levelStyle.Render(fmt.Sprintf("★%d", d.level)),
			streakStyle.Render(fmt.Sprintf("🔥%d", d.streak)),
			readStyle.Render(fmt.Sprintf("📖%d", d.factsRead)),
		)
	} else {
		stats = fmt.Sprintf("%s  %s  %s",
			levelStyle.Render(fmt.Sprintf("★ LEVEL %d", d.level)),
			streakStyle.Render(fmt.Sprintf("🔥 %d DAY STREAK", d.streak)),
			readStyle.Render(fmt.Sprintf("📖 %d READ", d.factsRead)),
		)
	}

	var sub string
	if d.nextMilestone > 0 {
		sub = fmt.Sprintf("%d XP to level %d · %d days to the next streak bonus",
			d.xpToNext, d.level+1, d.nextMilestone-d.streak)
	} else {
		sub = fmt.Sprintf("%d XP to level %d", d.xpToNext, d.level+1)
	}
	if !compact {
		stats += "\n" + lipgloss.NewStyle().Foreground(theme.TextDim).Render(sub)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Secondary).
		Width(cw-2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(stats)
}

// renderMenu renders menu items as text lines with the selected one
// highlighted. Disabled items show their hint instead of a cursor.
func renderMenu(labels, hints []string, selected int, disabled func(int) bool, cw int) string {
	var lines []string
	for i, label := range labels {
		var line string
		switch {
		case disabled(i):
			line = lipgloss.NewStyle().Foreground(theme.TextDim).Render("   " + label + "  " + hints[i])
		case i == selected:
			line = lipgloss.NewStyle().
				Foreground(theme.BgDark).
				Background(theme.Gold).
				Bold(true).
				Render(" ▸ " + label + " ")
		default:
			line = lipgloss.NewStyle().Foreground(theme.Text).Render("   " + label)
		}
		lines = append(lines, line)
	}
	block := lipgloss.NewStyle().Align(lipgloss.Left).Render(strings.Join(lines, "\n"))
	return lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Render(block)
}

func renderMascotBox(v MascotVariant, cw int) string {
	return lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Render(RenderMascot(v))
}

// renderFrame wraps content in a double-border frame, centred in the area.
func renderFrame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(width-2).
		Height(height-2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}
