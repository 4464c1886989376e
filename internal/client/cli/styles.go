package cli

import "github.com/charmbracelet/lipgloss"

// Terminal accents. Everything degrades to plain text on dumb terminals,
// lipgloss handles the detection.
var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	// Answer provenance badges: green for answers grounded in uploaded
	// documents, blue for the general-knowledge fallback.
	ragBadgeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	wikiBadgeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
)
