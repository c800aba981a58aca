// Package tui provides the terminal code-editor panel for ojpreview.
package tui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ojroom/preview/internal/errors"
)

// Styles holds every lipgloss style the panel uses, derived from a Theme.
type Styles struct {
	theme Theme

	Header   lipgloss.Style
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Hint     lipgloss.Style

	Panel        lipgloss.Style
	PanelFocused lipgloss.Style
	PanelLabel   lipgloss.Style

	StatusBar  lipgloss.Style
	StatusKey  lipgloss.Style
	StatusDesc lipgloss.Style

	Feedback lipgloss.Style
	Error    lipgloss.Style
}

// NewStyles builds the style set for theme.
func NewStyles(theme Theme) Styles {
	return Styles{
		theme: theme,

		Header: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 2),

		Title: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true),

		Subtitle: lipgloss.NewStyle().
			Foreground(theme.TextDim),

		Hint: lipgloss.NewStyle().
			Foreground(theme.TextMute).
			Italic(true),

		Panel: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),

		PanelFocused: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Accent).
			Padding(0, 1),

		PanelLabel: lipgloss.NewStyle().
			Foreground(theme.Secondary).
			Bold(true),

		StatusBar: lipgloss.NewStyle().
			Foreground(theme.TextMute),

		StatusKey: lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Bold(true),

		StatusDesc: lipgloss.NewStyle().
			Foreground(theme.TextMute),

		Feedback: lipgloss.NewStyle().
			Foreground(theme.Secondary).
			Italic(true),

		Error: lipgloss.NewStyle().
			Foreground(theme.Error).
			Bold(true),
	}
}

// Theme returns the theme the styles were built from.
func (s Styles) Theme() Theme {
	return s.theme
}

// FormatError returns a styled error message with additional context.
// Route errors carry their HTTP status.
func FormatError(err error) string {
	if err == nil {
		return ""
	}
	theme := ResolveTheme(DefaultThemeName)
	errStyle := lipgloss.NewStyle().Foreground(theme.Error)
	dimStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	var sb strings.Builder
	sb.WriteString(errStyle.Render(fmt.Sprintf("✗ %v", err)))

	if status := errors.GetHTTPStatus(err); status > 0 {
		sb.WriteString(dimStyle.Render(fmt.Sprintf("\n  HTTP Status: %d", status)))
	}
	return sb.String()
}

// PrintError prints a styled error message to stderr.
func PrintError(err error) {
	if err == nil {
		return
	}
	fmt.Fprintln(os.Stderr, FormatError(err))
}
