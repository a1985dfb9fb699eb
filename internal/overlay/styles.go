package overlay

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/hay-kot/veil/internal/styles"
)

// Frame layout constants.
const (
	frameMargin      = 4  // columns kept free around a default frame
	frameMinWidth    = 20 // smallest usable frame width
	frameSlideFactor = 10 // default frames slide in from 1/frameSlideFactor of the screen height
	closeGlyph       = "✕"
)

// Styles used for frame chrome and the backdrop.
var (
	frameStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(styles.ColorBlue).
			Padding(0, 1)

	drawerStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), true, false, false, false).
			BorderForeground(styles.ColorBlue).
			Padding(0, 1)

	frameTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(styles.ColorBlue)

	frameCloseStyle = lipgloss.NewStyle().
			Foreground(styles.ColorGray)

	frameHelpStyle = lipgloss.NewStyle().
			Foreground(styles.ColorGray).
			MarginTop(1)

	backdropStyle = lipgloss.NewStyle().
			Foreground(styles.ColorGray).
			Faint(true)
)

func chromeStyle(v Variant) lipgloss.Style {
	if v == VariantDrawer {
		return drawerStyle
	}
	return frameStyle
}
