package editor

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
)

// TextareaWidget implements Widget over a bubbles textarea. The textarea is
// held by pointer so the widget follows the model through bubbletea updates.
type TextareaWidget struct {
	ta *textarea.Model
}

// NewTextareaWidget wraps ta.
func NewTextareaWidget(ta *textarea.Model) *TextareaWidget {
	return &TextareaWidget{ta: ta}
}

// CursorPosition implements Widget. A blurred textarea has no cursor.
func (w *TextareaWidget) CursorPosition() (Position, bool) {
	if w.ta == nil || !w.ta.Focused() {
		return Position{}, false
	}
	li := w.ta.LineInfo()
	return Position{
		Line:   w.ta.Line() + 1,
		Column: li.StartColumn + li.ColumnOffset + 1,
	}, true
}

// InsertSuggestion implements Widget. Lines out of range are clamped; the
// cursor stays where it was.
func (w *TextareaWidget) InsertSuggestion(line int, text string) {
	if w.ta == nil || text == "" {
		return
	}

	row := w.ta.Line()
	li := w.ta.LineInfo()
	col := li.StartColumn + li.ColumnOffset

	lines := strings.Split(w.ta.Value(), "\n")
	at := min(max(line, 0), len(lines))

	out := make([]string, 0, len(lines)+strings.Count(text, "\n")+1)
	out = append(out, lines[:at]...)
	out = append(out, strings.Split(text, "\n")...)
	out = append(out, lines[at:]...)

	w.ta.SetValue(strings.Join(out, "\n"))

	// SetValue leaves the cursor at the end of the buffer.
	if at <= row {
		row += strings.Count(text, "\n") + 1
	}
	w.moveTo(row, col)
}

// moveTo walks the cursor up to row. CursorUp moves one visual line, so a
// soft-wrapped row takes several steps; every step either changes the
// visual position or leaves the cursor on the first line, which bounds the
// walk by the buffer length.
func (w *TextareaWidget) moveTo(row, col int) {
	for steps := w.ta.Length() + w.ta.LineCount(); w.ta.Line() > row && steps > 0; steps-- {
		w.ta.CursorUp()
	}
	w.ta.SetCursor(col)
}
