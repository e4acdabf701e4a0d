package main

import "github.com/charmbracelet/lipgloss"

var (
	primary     = lipgloss.Color("#101F38")
	accent      = lipgloss.Color("#8BC34A")
	muted       = lipgloss.Color("#6b7280")
	destructive = lipgloss.Color("#e53935")

	titleStyle       = lipgloss.NewStyle().Bold(true).Foreground(accent)
	descriptionStyle = lipgloss.NewStyle().Foreground(muted)
	labelStyle       = lipgloss.NewStyle().Bold(true)
	focusedStyle     = lipgloss.NewStyle().Foreground(accent).Bold(true)
	errorStyle       = lipgloss.NewStyle().Foreground(destructive)
	helpStyle        = lipgloss.NewStyle().Foreground(muted).Italic(true)
	stepDoneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Background(accent).Padding(0, 1)
	stepTodoStyle    = lipgloss.NewStyle().Foreground(muted).Background(lipgloss.Color("#e1e4e8")).Padding(0, 1)
	frameStyle       = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(primary).Padding(1, 2)
)
