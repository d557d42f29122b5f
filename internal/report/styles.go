package report

import "github.com/charmbracelet/lipgloss"

type style = lipgloss.Style

const (
	checkMark = "✓"
	crossMark = "✗"
	skipMark  = "-"
)

var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	successStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	failureStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	skippedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	durationStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)
