package render

import (
	"fmt"
	"os"
	"strings"
)

// Glamour standard styles accepted by Options.Style. Any other value is
// treated as a path to a JSON style file.
const (
	StyleDark    = "dark"
	StyleLight   = "light"
	StyleNoTTY   = "notty"
	StyleASCII   = "ascii"
	StyleDracula = "dracula"
)

// StyleInfo contains information about a style for display purposes.
type StyleInfo struct {
	Name        string
	Description string
}

// AvailableStyles returns the built-in terminal styles.
func AvailableStyles() []StyleInfo {
	return []StyleInfo{
		{Name: StyleDark, Description: "Dark theme (default)"},
		{Name: StyleLight, Description: "Light theme for bright terminals"},
		{Name: StyleDracula, Description: "Dracula color scheme"},
		{Name: StyleNoTTY, Description: "Plain text (no styling)"},
		{Name: StyleASCII, Description: "ASCII-only output"},
	}
}

// IsBuiltinStyle returns true if style names a built-in glamour style.
func IsBuiltinStyle(style string) bool {
	for _, s := range AvailableStyles() {
		if s.Name == style {
			return true
		}
	}
	return false
}

// StyleNames returns just the style names for selection.
func StyleNames() []string {
	styles := AvailableStyles()
	names := make([]string, len(styles))
	for i, s := range styles {
		names[i] = s.Name
	}
	return names
}

// CheckStyle reports whether style can be loaded: a built-in name or an
// existing JSON style file.
func CheckStyle(style string) error {
	if IsBuiltinStyle(style) {
		return nil
	}
	if info, err := os.Stat(style); err == nil && !info.IsDir() {
		return nil
	}
	return fmt.Errorf("unknown terminal style %q: use one of %s or a JSON style file",
		style, strings.Join(StyleNames(), ", "))
}
