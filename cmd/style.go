package cmd

import "github.com/charmbracelet/lipgloss"

var (
	styleDir    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	styleFile   = lipgloss.NewStyle()
	styleKind   = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Width(5)
	styleHeader = lipgloss.NewStyle().Bold(true).Underline(true)
	styleError  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)
