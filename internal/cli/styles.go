package cli

import "github.com/charmbracelet/lipgloss"

const (
	colorSuccess = lipgloss.Color("#10B981")
	colorError   = lipgloss.Color("#EF4444")
	colorMuted   = lipgloss.Color("#6B7280")
)

var (
	// SuccessStyle marks completed work, e.g. "Execute binary:" and "Success.".
	SuccessStyle = lipgloss.NewStyle().Foreground(colorSuccess)

	// ErrorStyle marks fatal messages.
	ErrorStyle = lipgloss.NewStyle().Bold(true).Foreground(colorError)

	// MutedStyle is for secondary text.
	MutedStyle = lipgloss.NewStyle().Foreground(colorMuted)
)
