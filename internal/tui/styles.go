package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorPrimary = lipgloss.Color("39")
	colorAccent  = lipgloss.Color("212")
	colorMuted   = lipgloss.Color("241")
	colorDanger  = lipgloss.Color("196")
	colorOK      = lipgloss.Color("42")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			MarginBottom(1)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorAccent)

	labelStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	focusedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	strategicStyle = lipgloss.NewStyle().
			Foreground(colorDanger)

	okStyle = lipgloss.NewStyle().
		Foreground(colorOK)

	helpStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			MarginTop(1)

	reportStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorPrimary).
			Padding(0, 1)
)
