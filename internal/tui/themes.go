package tui

import (
	"sort"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines the color scheme for the editor panel
type Theme struct {
	Name        string
	Description string

	// Base colors
	Surface lipgloss.Color
	Border  lipgloss.Color

	// Accent colors
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color
	Warning   lipgloss.Color
	Error     lipgloss.Color

	// Text colors
	Text     lipgloss.Color
	TextDim  lipgloss.Color
	TextMute lipgloss.Color
}

// DefaultThemeName is used when the configured theme is unknown.
const DefaultThemeName = "tokyonight"

var themes = map[string]Theme{
	"tokyonight": {
		Name:        "tokyonight",
		Description: "Tokyo Night - Dark theme with blue accents",
		Surface:     lipgloss.Color("#24283b"),
		Border:      lipgloss.Color("#414868"),
		Primary:     lipgloss.Color("#7aa2f7"),
		Secondary:   lipgloss.Color("#9ece6a"),
		Accent:      lipgloss.Color("#bb9af7"),
		Warning:     lipgloss.Color("#e0af68"),
		Error:       lipgloss.Color("#f7768e"),
		Text:        lipgloss.Color("#c0caf5"),
		TextDim:     lipgloss.Color("#565f89"),
		TextMute:    lipgloss.Color("#3b4261"),
	},
	"catppuccin": {
		Name:        "catppuccin",
		Description: "Catppuccin Mocha - Warm dark theme with pastel colors",
		Surface:     lipgloss.Color("#313244"),
		Border:      lipgloss.Color("#45475a"),
		Primary:     lipgloss.Color("#89b4fa"),
		Secondary:   lipgloss.Color("#a6e3a1"),
		Accent:      lipgloss.Color("#cba6f7"),
		Warning:     lipgloss.Color("#f9e2af"),
		Error:       lipgloss.Color("#f38ba8"),
		Text:        lipgloss.Color("#cdd6f4"),
		TextDim:     lipgloss.Color("#6c7086"),
		TextMute:    lipgloss.Color("#45475a"),
	},
	"nord": {
		Name:        "nord",
		Description: "Nord - Arctic-inspired theme with cool tones",
		Surface:     lipgloss.Color("#3b4252"),
		Border:      lipgloss.Color("#4c566a"),
		Primary:     lipgloss.Color("#88c0d0"),
		Secondary:   lipgloss.Color("#a3be8c"),
		Accent:      lipgloss.Color("#b48ead"),
		Warning:     lipgloss.Color("#ebcb8b"),
		Error:       lipgloss.Color("#bf616a"),
		Text:        lipgloss.Color("#eceff4"),
		TextDim:     lipgloss.Color("#7b88a1"),
		TextMute:    lipgloss.Color("#4c566a"),
	},
	"light": {
		Name:        "light",
		Description: "Light - Dark text on bright terminals",
		Surface:     lipgloss.Color("#e9e9ed"),
		Border:      lipgloss.Color("#a8aecb"),
		Primary:     lipgloss.Color("#2e7de9"),
		Secondary:   lipgloss.Color("#587539"),
		Accent:      lipgloss.Color("#9854f1"),
		Warning:     lipgloss.Color("#8c6c3e"),
		Error:       lipgloss.Color("#f52a65"),
		Text:        lipgloss.Color("#3760bf"),
		TextDim:     lipgloss.Color("#6172b0"),
		TextMute:    lipgloss.Color("#a1a6c5"),
	},
}

// ThemeByName returns a theme by its name
func ThemeByName(name string) (Theme, bool) {
	t, ok := themes[name]
	return t, ok
}

// ResolveTheme returns the named theme, or the default one when the name is
// unknown.
func ResolveTheme(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return themes[DefaultThemeName]
}

// ThemeNames returns the sorted theme names for selection
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
