package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mlplay/internal/ui/theme"
)

const bannerArt = `
 ███╗   ███╗██╗     ██████╗ ██╗      █████╗ ██╗   ██╗
 ████╗ ████║██║     ██╔══██╗██║     ██╔══██╗╚██╗ ██╔╝
 ██╔████╔██║██║     ██████╔╝██║     ███████║ ╚████╔╝
 ██║╚██╔╝██║██║     ██╔═══╝ ██║     ██╔══██║  ╚██╔╝
 ██║ ╚═╝ ██║███████╗██║     ███████╗██║  ██║   ██║
 ╚═╝     ╚═╝╚══════╝╚═╝     ╚══════╝╚═╝  ╚═╝   ╚═╝`

const bannerCompact = "M L P L A Y"

// RenderBanner returns the MLPLAY banner styled in the primary color.
// Uses a compact fallback for terminals narrower than 56 columns.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < 56 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
