package demo

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/hay-kot/veil/internal/styles"
)

var (
	greetingBodyStyle = lipgloss.NewStyle().
				Foreground(styles.ColorDark).
				Background(styles.ColorGreen).
				Padding(0, 1)

	labelStyle = lipgloss.NewStyle().Bold(true)

	buttonStyle = lipgloss.NewStyle().
			Foreground(styles.ColorWhite).
			Background(styles.ColorGray).
			Padding(0, 2)

	buttonActiveStyle = buttonStyle.
				Foreground(styles.ColorDark).
				Background(styles.ColorBlue).
				Bold(true)

	headerStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(styles.ColorGray).
			PaddingBottom(1)

	responseTitleStyle = lipgloss.NewStyle().
				Foreground(styles.ColorYellow).
				Bold(true)

	responseStyle = lipgloss.NewStyle().
			Foreground(styles.ColorWhite).
			PaddingLeft(2)

	errorStyle = lipgloss.NewStyle().Foreground(styles.ColorRed)
)
