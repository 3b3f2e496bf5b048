package runplan

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title      lipgloss.Style
	header     lipgloss.Style
	key        lipgloss.Style
	detail     lipgloss.Style
	success    lipgloss.Style
	warning    lipgloss.Style
	muted      lipgloss.Style
	section    lipgloss.Style
	empty      lipgloss.Style
	barBracket lipgloss.Style
	barFill    lipgloss.Style
	barEmpty   lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:      lipgloss.NewStyle().Bold(true),
		header:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		key:        lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Width(10),
		detail:     lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		success:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("78")),
		warning:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		muted:      lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		section:    lipgloss.NewStyle().MarginTop(1),
		empty:      lipgloss.NewStyle().Faint(true),
		barBracket: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		barFill:    lipgloss.NewStyle().Foreground(lipgloss.Color("159")),
		barEmpty:   lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	}
}
