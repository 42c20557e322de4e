package style

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/pterm/pterm"
)

// Common styles from the built-in sheet
var (
	TitleStyle   = Get("title")
	MutedStyle   = Get("muted")
	SuccessStyle = Get("success")
	ErrorStyle   = Get("error")
	WarningStyle = Get("warning")
	InfoStyle    = Get("info")
	PathStyle    = Get("path")
	HashStyle    = Get("hash")
	ProfileStyle = Get("profile")
)

// Operation indicators
var (
	SuccessIndicator = SuccessStyle.Render("✓")
	ErrorIndicator   = ErrorStyle.Render("✗")
	WarningIndicator = WarningStyle.Render("!")
	InfoIndicator    = InfoStyle.Render("•")
	PendingIndicator = MutedStyle.Render("○")
)

// ErrorPrefix is the styled "Error:" label printed before fatal errors.
func ErrorPrefix() string {
	return pterm.NewStyle(pterm.FgRed, pterm.Bold).Sprint("Error:")
}

// WarningPrefix is the styled label printed before warnings.
func WarningPrefix() string {
	return pterm.NewStyle(pterm.FgYellow, pterm.Bold).Sprint("Warning:")
}

func Indent(s string, level int) string {
	return lipgloss.NewStyle().PaddingLeft(level * 2).Render(s)
}

func Bold(s string) string {
	return lipgloss.NewStyle().Bold(true).Render(s)
}
