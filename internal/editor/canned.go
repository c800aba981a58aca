package editor

import (
	"context"
)

// DefaultSuggestions is the demo text used by the canned provider.
var DefaultSuggestions = []string{
	"Consider checking the input bounds before this loop.",
	"This branch looks unreachable for the given constraints.",
	"A prefix sum would avoid recomputing this range.",
	"Watch for integer overflow when multiplying here.",
	"Reading input with a buffered reader is faster for large cases.",
}

// CannedProvider returns fixed text picked by line number modulo the number
// of suggestions. It stands in for a real analysis backend.
type CannedProvider struct {
	Suggestions []string
}

// NewCannedProvider returns a provider over suggestions, or over
// DefaultSuggestions when none are given.
func NewCannedProvider(suggestions ...string) *CannedProvider {
	if len(suggestions) == 0 {
		suggestions = DefaultSuggestions
	}
	return &CannedProvider{Suggestions: suggestions}
}

// Suggest implements SuggestionProvider.
func (p *CannedProvider) Suggest(ctx context.Context, line int, _ string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	n := len(p.Suggestions)
	if n == 0 {
		return "", ErrNoSuggestion
	}
	idx := line % n
	if idx < 0 {
		idx += n
	}
	return p.Suggestions[idx], nil
}
