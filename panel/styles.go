package panel

import "github.com/charmbracelet/lipgloss"

// Color Constants
const (
	DefaultAccentColor   = "#7D56F4"
	DefaultErrorColor    = "#FF5555"
	DefaultSuccessColor  = "#04B575"
	DefaultTextColor     = "#FAFAFA"
	DefaultSecondaryText = "#CCCCCC"
	DefaultMutedText     = "#666666"
	DefaultBorderColor   = "#874BFD"
)

type Styles struct {
	Title     lipgloss.Style
	Label     lipgloss.Style
	Value     lipgloss.Style
	Captured  lipgloss.Style
	Released  lipgloss.Style
	Tooltip   lipgloss.Style
	Help      lipgloss.Style
	Error     lipgloss.Style
	Container lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Foreground(lipgloss.Color(DefaultTextColor)).
			Background(lipgloss.Color(DefaultAccentColor)).
			Padding(0, 1).
			Bold(true),
		Label: lipgloss.NewStyle().
			Foreground(lipgloss.Color(DefaultSuccessColor)).
			Bold(true),
		Value: lipgloss.NewStyle().
			Foreground(lipgloss.Color(DefaultTextColor)),
		Captured: lipgloss.NewStyle().
			Foreground(lipgloss.Color(DefaultSuccessColor)).
			Bold(true),
		Released: lipgloss.NewStyle().
			Foreground(lipgloss.Color(DefaultMutedText)).
			Bold(true),
		Tooltip: lipgloss.NewStyle().
			Foreground(lipgloss.Color(DefaultSecondaryText)).
			Italic(true),
		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262")).
			Margin(1, 0, 0, 0),
		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color(DefaultErrorColor)).
			Bold(true),
		Container: lipgloss.NewStyle().
			Padding(1, 2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(DefaultBorderColor)),
	}
}
