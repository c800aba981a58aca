// Package render implements the restricted markdown preview pipeline.
//
// Markdown is parsed with goldmark (GFM and MathJax notation enabled), the
// resulting AST is filtered so that only flat styled blocks survive, and the
// filtered document is emitted as sanitized HTML, as a Tree, or as styled
// terminal text.
package render

// DefaultPrefix is the class prefix used when Options.Prefix is empty.
const DefaultPrefix = "md"

// Options configures the pipeline output.
type Options struct {
	// Prefix is prepended to every emitted class name (prefix-block, prefix-li, ...).
	Prefix string

	// ClassName is an extra qualifier added to the container element.
	ClassName string

	// Math enables $inline$ and $$display$$ math notation.
	Math bool

	// Sanitize runs emitted HTML through the preview sanitizer policy.
	Sanitize bool

	// Width is the word wrap width for terminal output (default: 80)
	Width int

	// Style is the glamour style for terminal output: "dark", "light", "notty", ... or a JSON path
	Style string

	// EnableEmoji converts :emoji: to unicode characters in terminal output
	EnableEmoji bool

	// PreserveNewLines keeps original line breaks in terminal output
	PreserveNewLines bool
}

// DefaultOptions returns the default configuration.
func DefaultOptions() Options {
	return Options{
		Prefix:           DefaultPrefix,
		Math:             true,
		Sanitize:         true,
		Width:            80,
		Style:            StyleDark,
		EnableEmoji:      true,
		PreserveNewLines: true,
	}
}

// WithPrefix returns Options with the specified class prefix.
func (o Options) WithPrefix(prefix string) Options {
	o.Prefix = prefix
	return o
}

// WithClassName returns Options with the specified container qualifier.
func (o Options) WithClassName(className string) Options {
	o.ClassName = className
	return o
}

// WithMath returns Options with math notation enabled/disabled.
func (o Options) WithMath(enabled bool) Options {
	o.Math = enabled
	return o
}

// WithSanitize returns Options with HTML sanitizing enabled/disabled.
func (o Options) WithSanitize(enabled bool) Options {
	o.Sanitize = enabled
	return o
}

// WithWidth returns Options with the specified width.
func (o Options) WithWidth(width int) Options {
	o.Width = width
	return o
}

// WithStyle returns Options with the specified style.
func (o Options) WithStyle(style string) Options {
	o.Style = style
	return o
}

// WithEmoji returns Options with emoji support enabled/disabled.
func (o Options) WithEmoji(enabled bool) Options {
	o.EnableEmoji = enabled
	return o
}

// WithPreserveNewLines returns Options with newline preservation enabled/disabled.
func (o Options) WithPreserveNewLines(enabled bool) Options {
	o.PreserveNewLines = enabled
	return o
}

func (o Options) prefix() string {
	if o.Prefix == "" {
		return DefaultPrefix
	}
	return o.Prefix
}

// class joins the prefix and a suffix: class("li") == "md-li".
func (o Options) class(suffix string) string {
	return o.prefix() + "-" + suffix
}
