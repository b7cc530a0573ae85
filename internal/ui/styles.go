package ui

import "charm.land/lipgloss/v2"

var (
	primary = lipgloss.Color("62")
	accent  = lipgloss.Color("212")
	success = lipgloss.Color("82")
	muted   = lipgloss.Color("240")
	normal  = lipgloss.Color("252")
)

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(primary)
	optionStyle    = lipgloss.NewStyle().Foreground(normal)
	cursorStyle    = lipgloss.NewStyle().Foreground(accent).Bold(true)
	checkStyle     = lipgloss.NewStyle().Foreground(success)
	helpStyle      = lipgloss.NewStyle().Foreground(muted).Italic(true)
	highlightStyle = lipgloss.NewStyle().Foreground(accent).Bold(true).Underline(true)

	borderStyle = lipgloss.NewStyle().
			BorderLeft(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(primary).
			MarginTop(1).
			MarginBottom(1).
			PaddingLeft(2).
			PaddingRight(2)
)
