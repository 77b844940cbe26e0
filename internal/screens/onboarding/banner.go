package onboarding

import (
	"charm.land/lipgloss/v2"

	"github.com/sjostromVilgot/Facta-sub000/internal/ui/theme"
)

const bannerArt = `
 ███████╗ █████╗  ██████╗████████╗ █████╗
 ██╔════╝██╔══██╗██╔════╝╚══██╔══╝██╔══██╗
 █████╗  ███████║██║        ██║   ███████║
 ██╔══╝  ██╔══██║██║        ██║   ██╔══██║
 ██║     ██║  ██║╚██████╗   ██║   ██║  ██║
 ╚═╝     ╚═╝  ╚═╝ ╚═════╝   ╚═╝   ╚═╝  ╚═╝`

const bannerCompact = "F A C T A"

// RenderBanner returns the FACTA banner, or a compact line below 46 columns.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().Foreground(theme.Gold).Bold(true)
	if width < 46 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
