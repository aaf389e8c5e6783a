package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathwhiz/internal/ui/theme"
)

const bannerArt = `
 ███╗   ███╗ █████╗ ████████╗██╗  ██╗██╗    ██╗██╗  ██╗██╗███████╗
 ████╗ ████║██╔══██╗╚══██╔══╝██║  ██║██║    ██║██║  ██║██║╚══███╔╝
 ██╔████╔██║███████║   ██║   ███████║██║ █╗ ██║███████║██║  ███╔╝
 ██║╚██╔╝██║██╔══██║   ██║   ██╔══██║██║███╗██║██╔══██║██║ ███╔╝
 ██║ ╚═╝ ██║██║  ██║   ██║   ██║  ██║╚███╔███╔╝██║  ██║██║███████╗
 ╚═╝     ╚═╝╚═╝  ╚═╝   ╚═╝   ╚═╝  ╚═╝ ╚══╝╚══╝ ╚═╝  ╚═╝╚═╝╚══════╝`

const bannerCompact = "M A T H W H I Z"

// bannerWidth is the widest line of bannerArt plus a margin.
const bannerWidth = 70

// RenderBanner returns the MATHWHIZ banner styled in the primary color.
// Uses a compact fallback for terminals narrower than the art.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < bannerWidth {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
