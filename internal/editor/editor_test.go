package editor

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeWidget records inserts and reports a fixed cursor.
type fakeWidget struct {
	pos     Position
	hasPos  bool
	inserts []Suggestion
}

func (w *fakeWidget) CursorPosition() (Position, bool) { return w.pos, w.hasPos }

func (w *fakeWidget) InsertSuggestion(line int, text string) {
	w.inserts = append(w.inserts, Suggestion{Line: line, Text: text})
}

func TestCannedProviderPicksByLine(t *testing.T) {
	p := NewCannedProvider("zero", "one", "two")
	ctx := context.Background()

	tests := []struct {
		line int
		want string
	}{
		{0, "zero"},
		{1, "one"},
		{2, "two"},
		{3, "zero"},
		{7, "one"},
		{-1, "two"},
	}
	for _, tt := range tests {
		got, err := p.Suggest(ctx, tt.line, "")
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "line %d", tt.line)
	}
}

func TestCannedProviderDefaultsAndEmpty(t *testing.T) {
	p := NewCannedProvider()
	assert.Equal(t, DefaultSuggestions, p.Suggestions)

	empty := &CannedProvider{}
	_, err := empty.Suggest(context.Background(), 1, "")
	assert.ErrorIs(t, err, ErrNoSuggestion)
}

func TestCannedProviderHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewCannedProvider().Suggest(ctx, 1, "")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestInjectorInsertsCommentBlock(t *testing.T) {
	w := &fakeWidget{pos: Position{Line: 4, Column: 2}, hasPos: true}
	inj := NewInjector(NewCannedProvider("first\nsecond"), w, WithCommentPrefix("#"))

	s, err := inj.Inject(context.Background(), "source")
	require.NoError(t, err)

	assert.Equal(t, Suggestion{Line: 4, Text: "# first\n# second"}, s)
	require.Len(t, w.inserts, 1)
	assert.Equal(t, s, w.inserts[0])
}

func TestInjectorWithoutCursorIsNoop(t *testing.T) {
	w := &fakeWidget{}
	called := false
	provider := ProviderFunc(func(ctx context.Context, line int, source string) (string, error) {
		called = true
		return "x", nil
	})

	_, err := NewInjector(provider, w).Inject(context.Background(), "")
	assert.ErrorIs(t, err, ErrNoCursor)
	assert.False(t, called, "provider should not be asked without a cursor")
	assert.Empty(t, w.inserts)
}

func TestInjectorProviderError(t *testing.T) {
	w := &fakeWidget{pos: Position{Line: 1, Column: 1}, hasPos: true}
	boom := errors.New("backend down")
	provider := ProviderFunc(func(ctx context.Context, line int, source string) (string, error) {
		return "", boom
	})

	_, err := NewInjector(provider, w).Inject(context.Background(), "")
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "line 1")
	assert.Empty(t, w.inserts)
}

func TestInjectorPassesLineAndSource(t *testing.T) {
	w := &fakeWidget{pos: Position{Line: 9, Column: 1}, hasPos: true}
	var gotLine int
	var gotSource string
	provider := ProviderFunc(func(ctx context.Context, line int, source string) (string, error) {
		gotLine, gotSource = line, source
		return "ok", nil
	})

	_, err := NewInjector(provider, w).Inject(context.Background(), "int main() {}")
	require.NoError(t, err)
	assert.Equal(t, 9, gotLine)
	assert.Equal(t, "int main() {}", gotSource)
}

func TestCommentBlock(t *testing.T) {
	assert.Equal(t, "// a\n//\n// b", CommentBlock("a\n\nb\n", "//"))
	assert.Equal(t, "raw", CommentBlock("raw", ""))
}

func newFocusedTextarea(value string) *textarea.Model {
	ta := textarea.New()
	ta.SetValue(value)
	ta.Focus()
	return &ta
}

func TestTextareaWidgetCursorPosition(t *testing.T) {
	ta := textarea.New()
	ta.SetValue("first\nsecond\nthird")
	w := NewTextareaWidget(&ta)

	_, ok := w.CursorPosition()
	assert.False(t, ok, "blurred textarea has no cursor")

	ta.Focus()
	pos, ok := w.CursorPosition()
	require.True(t, ok)
	assert.Equal(t, 3, pos.Line)

	ta.CursorUp()
	ta.SetCursor(2)
	pos, ok = w.CursorPosition()
	require.True(t, ok)
	assert.Equal(t, Position{Line: 2, Column: 3}, pos)
}

func TestTextareaWidgetInsertSuggestion(t *testing.T) {
	ta := newFocusedTextarea("a\nb\nc")
	ta.CursorUp()
	w := NewTextareaWidget(ta)

	w.InsertSuggestion(2, "// x\n// y")

	assert.Equal(t, "a\nb\n// x\n// y\nc", ta.Value())
	pos, ok := w.CursorPosition()
	require.True(t, ok)
	assert.Equal(t, 2, pos.Line, "cursor stays on its line")
}

func TestTextareaWidgetInsertAboveCursorShiftsIt(t *testing.T) {
	ta := newFocusedTextarea("a\nb\nc")
	w := NewTextareaWidget(ta)

	w.InsertSuggestion(1, "// x")

	assert.Equal(t, "a\n// x\nb\nc", ta.Value())
	pos, ok := w.CursorPosition()
	require.True(t, ok)
	assert.Equal(t, 4, pos.Line)
}

func TestTextareaWidgetKeepsCursorOnWrappedLines(t *testing.T) {
	long := strings.TrimSpace(strings.Repeat("word ", 120))
	ta := textarea.New()
	ta.CharLimit = 0
	ta.ShowLineNumbers = false
	ta.SetWidth(12)
	ta.SetValue(strings.Join([]string{long, long, long, long}, "\n"))
	ta.Focus()
	for i := 0; i < 1000 && ta.Line() > 2; i++ {
		ta.CursorUp()
	}
	require.Equal(t, 2, ta.Line())

	w := NewTextareaWidget(&ta)
	w.InsertSuggestion(1, "// hint")

	assert.Equal(t, 5, ta.LineCount())
	pos, ok := w.CursorPosition()
	require.True(t, ok)
	assert.Equal(t, 4, pos.Line, "cursor follows its line past every wrapped row")
}

func TestTextareaWidgetClampsLine(t *testing.T) {
	ta := newFocusedTextarea("only")
	w := NewTextareaWidget(ta)

	w.InsertSuggestion(99, "// end")
	assert.Equal(t, "only\n// end", ta.Value())

	w.InsertSuggestion(-3, "// start")
	assert.Equal(t, "// start\nonly\n// end", ta.Value())
}

func TestInjectorOverTextarea(t *testing.T) {
	ta := newFocusedTextarea("int main() {\n  return 0;\n}")
	ta.CursorUp()
	ta.CursorUp()
	w := NewTextareaWidget(ta)

	inj := NewInjector(NewCannedProvider("zero", "one"), w)
	s, err := inj.Inject(context.Background(), ta.Value())
	require.NoError(t, err)

	assert.Equal(t, 1, s.Line)
	assert.Equal(t, "int main() {\n// one\n  return 0;\n}", ta.Value())
}
