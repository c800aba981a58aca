package render

import (
	"os"

	"github.com/ojroom/preview/internal/config"
)

// OptionsFromConfig maps the markdown section of cfg onto Options.
func OptionsFromConfig(cfg config.Config) Options {
	opts := DefaultOptions()
	md := cfg.Markdown
	// Only apply non-zero strings from config
	if md.Prefix != "" {
		opts.Prefix = md.Prefix
	}
	if md.Style != "" {
		opts.Style = md.Style
	}
	// These booleans always overwrite defaults since they have explicit defaults in config
	opts.Math = md.Math
	opts.Sanitize = md.Sanitize
	opts.EnableEmoji = md.EnableEmoji
	opts.PreserveNewLines = md.PreserveNewLines

	// Environment variable takes highest precedence for style
	if style := os.Getenv("GLAMOUR_STYLE"); style != "" {
		opts.Style = style
	}
	return opts
}
