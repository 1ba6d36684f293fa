package tui

import "github.com/charmbracelet/lipgloss"

const (
	taskColor   = "#EF4444"
	breakColor  = "#10B981"
	urgentColor = "#F59E0B"
	dimColor    = "#6B7280"
)

var (
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(dimColor)).
			Padding(1, 3)

	headingStyle = lipgloss.NewStyle().Bold(true)

	timerStyle = lipgloss.NewStyle().Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(dimColor))

	noticeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(urgentColor)).
			Bold(true)
)

func kindColor(isBreak bool) lipgloss.Color {
	if isBreak {
		return lipgloss.Color(breakColor)
	}
	return lipgloss.Color(taskColor)
}
