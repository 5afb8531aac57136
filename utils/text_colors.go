package utils

import "github.com/charmbracelet/lipgloss"

const (
	colorRed    = lipgloss.Color("1")
	colorYellow = lipgloss.Color("3")
)

// TextColor renders s in the given colour. The ANSI sequences are dropped
// when stdout is not a terminal.
func TextColor(color lipgloss.Color, s string) string {
	return lipgloss.NewStyle().Foreground(color).Render(s)
}

func TextRed(s string) string {
	return lipgloss.NewStyle().Bold(true).Foreground(colorRed).Render(s)
}

func TextYellow(s string) string {
	return TextColor(colorYellow, s)
}
