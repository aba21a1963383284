package output

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles holds all lipgloss styles for text output
var Styles = struct {
	// Report components
	Header    lipgloss.Style
	Label     lipgloss.Style
	Value     lipgloss.Style
	Address   lipgloss.Style
	Timestamp lipgloss.Style
	Muted     lipgloss.Style

	// Status
	Success lipgloss.Style
	Warning lipgloss.Style
	Danger  lipgloss.Style

	// TUI styles
	Title     lipgloss.Style
	StatusBar lipgloss.Style
	Selected  lipgloss.Style
	Help      lipgloss.Style
}{
	Header:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
	Label:     lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
	Value:     lipgloss.NewStyle().Bold(true),
	Address:   lipgloss.NewStyle().Foreground(lipgloss.Color("33")), // Blue
	Timestamp: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
	Muted:     lipgloss.NewStyle().Foreground(lipgloss.Color("243")),

	Success: lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true),  // Green
	Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true), // Orange
	Danger:  lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true), // Red

	Title:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")).Padding(0, 1),
	StatusBar: lipgloss.NewStyle().Background(lipgloss.Color("236")).Foreground(lipgloss.Color("252")).Padding(0, 1),
	Selected:  lipgloss.NewStyle().Background(lipgloss.Color("236")).Foreground(lipgloss.Color("39")),
	Help:      lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
}

// CountStyle colors a counter: danger when it reached the threshold,
// warning when non-zero.
func CountStyle(count, threshold int) lipgloss.Style {
	if threshold > 0 && count >= threshold {
		return Styles.Danger
	}
	if count > 0 {
		return Styles.Warning
	}
	return Styles.Value
}

// StatusText returns styled status text
func StatusText(hasOffenders bool) string {
	if hasOffenders {
		return Styles.Danger.Render("BURSTS DETECTED")
	}
	return Styles.Success.Render("OK")
}
