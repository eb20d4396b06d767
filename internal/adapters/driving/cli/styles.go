package cli

import "github.com/charmbracelet/lipgloss"

// Output styles for command results.
var (
	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A6E3A1")) // Green

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F38BA8")) // Red

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C7086")) // Medium gray

	headerStyle = lipgloss.NewStyle().
			Bold(true)
)
