package render

import "github.com/charmbracelet/lipgloss"

// Severity palette. Matches the classic traffic-light banding used for
// terminal resource monitors.
const (
	ColorLow    = lipgloss.Color("2") // green
	ColorMedium = lipgloss.Color("3") // yellow
	ColorHigh   = lipgloss.Color("1") // red

	ColorTitle = lipgloss.Color("15")
	ColorMuted = lipgloss.Color("244")
)

var (
	titleStyle = lipgloss.NewStyle().Foreground(ColorTitle).Bold(true)
	mutedStyle = lipgloss.NewStyle().Foreground(ColorMuted)
)

// SeverityColor returns the display color for a severity band.
func SeverityColor(s Severity) lipgloss.Color {
	switch s {
	case SeverityHigh:
		return ColorHigh
	case SeverityMedium:
		return ColorMedium
	default:
		return ColorLow
	}
}

// SeverityStyle returns a foreground style for a severity band.
func SeverityStyle(s Severity) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(SeverityColor(s))
}

// barStyle renders the filled bar segment in reverse video so the bar
// reads as a solid block of the severity color.
func barStyle(s Severity) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(SeverityColor(s)).Reverse(true)
}
