// Package editor defines the contract between the code editor widget and
// the suggestion feature: cursor queries, text insertion and a pluggable
// provider that produces the suggested text.
package editor

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// ErrNoCursor is returned when the widget has no cursor to anchor a
// suggestion to. Nothing is inserted in that case.
var ErrNoCursor = errors.New("editor has no cursor")

// ErrNoSuggestion is returned by providers that have nothing to offer.
var ErrNoSuggestion = errors.New("no suggestion available")

// Position is a cursor location. Line and Column are 1-based.
type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// Widget is the part of a code editor the suggestion feature relies on.
type Widget interface {
	// CursorPosition reports the cursor location; false means there is none.
	CursorPosition() (Position, bool)
	// InsertSuggestion inserts text as new lines after line.
	InsertSuggestion(line int, text string)
}

// SuggestionProvider produces suggestion text for a cursor line.
type SuggestionProvider interface {
	Suggest(ctx context.Context, line int, source string) (string, error)
}

// ProviderFunc adapts a function to SuggestionProvider.
type ProviderFunc func(ctx context.Context, line int, source string) (string, error)

// Suggest calls f.
func (f ProviderFunc) Suggest(ctx context.Context, line int, source string) (string, error) {
	return f(ctx, line, source)
}

// Suggestion is a formatted block ready to insert after Line.
type Suggestion struct {
	Line int
	Text string
}

// Injector asks a provider for a suggestion at the widget's cursor and
// inserts it as a comment block below the cursor line.
type Injector struct {
	provider      SuggestionProvider
	widget        Widget
	commentPrefix string
	logger        *zap.Logger
}

// InjectorOption configures an Injector.
type InjectorOption func(*Injector)

// WithCommentPrefix sets the line comment marker used for inserted blocks.
func WithCommentPrefix(prefix string) InjectorOption {
	return func(i *Injector) {
		i.commentPrefix = prefix
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *zap.Logger) InjectorOption {
	return func(i *Injector) {
		if logger != nil {
			i.logger = logger
		}
	}
}

// NewInjector creates an Injector for widget backed by provider.
func NewInjector(provider SuggestionProvider, widget Widget, opts ...InjectorOption) *Injector {
	i := &Injector{
		provider:      provider,
		widget:        widget,
		commentPrefix: "//",
		logger:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Suggest asks the provider for a suggestion at pos and formats it. It does
// not touch the widget.
func (i *Injector) Suggest(ctx context.Context, pos Position, source string) (Suggestion, error) {
	text, err := i.provider.Suggest(ctx, pos.Line, source)
	if err != nil {
		return Suggestion{}, fmt.Errorf("suggest for line %d: %w", pos.Line, err)
	}
	return Suggestion{Line: pos.Line, Text: CommentBlock(text, i.commentPrefix)}, nil
}

// Apply inserts a prepared suggestion into the widget.
func (i *Injector) Apply(s Suggestion) {
	i.widget.InsertSuggestion(s.Line, s.Text)
	i.logger.Debug("suggestion inserted",
		zap.Int("line", s.Line),
		zap.Int("lines", strings.Count(s.Text, "\n")+1),
	)
}

// Inject reads the cursor, asks for a suggestion and inserts it. Without a
// cursor it returns ErrNoCursor and leaves the widget untouched.
func (i *Injector) Inject(ctx context.Context, source string) (Suggestion, error) {
	pos, ok := i.widget.CursorPosition()
	if !ok {
		i.logger.Debug("suggestion skipped: no cursor")
		return Suggestion{}, ErrNoCursor
	}
	s, err := i.Suggest(ctx, pos, source)
	if err != nil {
		return Suggestion{}, err
	}
	i.Apply(s)
	return s, nil
}

// CommentBlock prefixes every line of text with prefix and a space. Blank
// lines get the bare prefix.
func CommentBlock(text, prefix string) string {
	text = strings.TrimRight(text, "\n")
	if prefix == "" {
		return text
	}
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		if strings.TrimSpace(l) == "" {
			lines[i] = prefix
			continue
		}
		lines[i] = prefix + " " + l
	}
	return strings.Join(lines, "\n")
}
