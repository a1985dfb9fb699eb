// Package styles provides the shared lipgloss palette for veil's CLI and TUI.
package styles

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// Tokyo Night color palette.
var (
	ColorGreen  = lipgloss.Color("#9ece6a")
	ColorYellow = lipgloss.Color("#e0af68")
	ColorBlue   = lipgloss.Color("#7aa2f7")
	ColorGray   = lipgloss.Color("#565f89")
	ColorWhite  = lipgloss.Color("#c0caf5")
	ColorRed    = lipgloss.Color("#f38ba8")
	ColorDark   = lipgloss.Color("#1a1b26")
)

// Banner ASCII art for the demo header.
const Banner = `
 ╦  ╦╔═╗╦╦
 ╚╗╔╝║╣ ║║
  ╚╝ ╚═╝╩╩═╝`

// BannerStyle styles the ASCII art banner.
var BannerStyle = lipgloss.NewStyle().
	Foreground(ColorBlue).
	Bold(true)

// HelpStyle styles key help text.
var HelpStyle = lipgloss.NewStyle().
	Foreground(ColorGray)

// FormTheme returns the huh theme used by forms rendered inside overlays.
func FormTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Base = t.Focused.Base.BorderForeground(ColorGray)
	t.Focused.Title = t.Focused.Title.Foreground(ColorBlue).Bold(true)
	t.Focused.Description = t.Focused.Description.Foreground(ColorGray)
	t.Focused.FocusedButton = t.Focused.FocusedButton.Foreground(ColorDark).Background(ColorBlue)
	t.Focused.BlurredButton = t.Focused.BlurredButton.Foreground(ColorWhite).Background(ColorGray)
	t.Focused.ErrorMessage = t.Focused.ErrorMessage.Foreground(ColorRed)

	t.Blurred = t.Focused
	t.Blurred.Base = t.Blurred.Base.BorderStyle(lipgloss.HiddenBorder())

	return t
}
