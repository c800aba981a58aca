package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/ojroom/preview/internal/editor"
	"github.com/ojroom/preview/internal/render"
)

type focusPane int

const (
	focusEditor focusPane = iota
	focusPreview
)

// Message types for the panel
type (
	suggestionMsg struct {
		suggestion editor.Suggestion
		err        error
	}
	savedMsg struct {
		err error
	}
	feedbackClearMsg struct{}
)

// PanelConfig configures the editor panel.
type PanelConfig struct {
	// Source is the initial editor buffer.
	Source string
	// Statement is the markdown shown in the preview pane.
	Statement string
	// Title is shown in the header, typically the file name.
	Title string

	Theme           string
	ShowLineNumbers bool
	CharLimit       int
	CommentPrefix   string
	RenderOptions   render.Options

	Provider editor.SuggestionProvider
	// Save persists the buffer on ctrl+s. Nil disables saving.
	Save func(content string) error
	// Copy writes to the system clipboard. Defaults to clipboard.WriteAll.
	Copy func(content string) error

	Logger         *zap.Logger
	SuggestTimeout time.Duration
}

// PanelModel is the bubbletea model for the code editor with a rendered
// problem statement next to it.
type PanelModel struct {
	cfg    PanelConfig
	logger *zap.Logger
	styles Styles

	editor   *textarea.Model
	widget   *editor.TextareaWidget
	injector *editor.Injector
	preview  viewport.Model

	focus    focusPane
	feedback string
	err      error
	dirty    bool
	ready    bool

	feedbackTimeout time.Duration

	width  int
	height int
}

// NewPanelModel creates the panel model.
func NewPanelModel(cfg PanelConfig) PanelModel {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Provider == nil {
		cfg.Provider = editor.NewCannedProvider()
	}
	if cfg.Copy == nil {
		cfg.Copy = clipboard.WriteAll
	}
	if cfg.CommentPrefix == "" {
		cfg.CommentPrefix = "//"
	}
	if cfg.SuggestTimeout <= 0 {
		cfg.SuggestTimeout = 5 * time.Second
	}
	if cfg.RenderOptions.Style == "" {
		cfg.RenderOptions = render.DefaultOptions()
	}

	styles := NewStyles(ResolveTheme(cfg.Theme))

	ta := textarea.New()
	ta.Placeholder = "Write your solution here..."
	ta.ShowLineNumbers = cfg.ShowLineNumbers
	ta.CharLimit = cfg.CharLimit
	ta.MaxHeight = 0
	ta.SetValue(cfg.Source)
	ta.Focus()

	ta.FocusedStyle.CursorLine = lipgloss.NewStyle().Background(styles.Theme().Surface)
	ta.FocusedStyle.Base = lipgloss.NewStyle().Foreground(styles.Theme().Text)
	ta.FocusedStyle.Placeholder = lipgloss.NewStyle().Foreground(styles.Theme().TextDim)
	ta.BlurredStyle = ta.FocusedStyle
	ta.BlurredStyle.CursorLine = lipgloss.NewStyle()

	widget := editor.NewTextareaWidget(&ta)
	injector := editor.NewInjector(cfg.Provider, widget,
		editor.WithCommentPrefix(cfg.CommentPrefix),
		editor.WithLogger(cfg.Logger),
	)

	return PanelModel{
		cfg:             cfg,
		logger:          cfg.Logger,
		styles:          styles,
		editor:          &ta,
		widget:          widget,
		injector:        injector,
		feedbackTimeout: 3 * time.Second,
	}
}

// Value returns the current editor buffer.
func (m PanelModel) Value() string {
	return m.editor.Value()
}

// Init initializes the model
func (m PanelModel) Init() tea.Cmd {
	return textarea.Blink
}

// Update handles messages and updates the model
func (m PanelModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "tab":
			m.toggleFocus()
			return m, nil

		case "ctrl+g":
			pos, ok := m.widget.CursorPosition()
			if !ok {
				m.feedback = "No cursor: focus the editor to request a suggestion"
				return m, clearFeedback(m.feedbackTimeout)
			}
			m.feedback = fmt.Sprintf("Asking for a suggestion at line %d...", pos.Line)
			return m, m.requestSuggestion(pos)

		case "ctrl+y":
			if err := m.cfg.Copy(m.editor.Value()); err != nil {
				m.feedback = fmt.Sprintf("Failed to copy: %v", err)
			} else {
				m.feedback = "Copied buffer to clipboard"
			}
			return m, clearFeedback(m.feedbackTimeout)

		case "ctrl+s":
			if m.cfg.Save == nil {
				m.feedback = "Nothing to save to: no file was given"
				return m, clearFeedback(m.feedbackTimeout)
			}
			return m, m.save()
		}

		if m.focus == focusEditor {
			before := m.editor.Value()
			*m.editor, cmd = m.editor.Update(msg)
			if m.editor.Value() != before {
				m.dirty = true
			}
		} else {
			m.preview, cmd = m.preview.Update(msg)
		}
		return m, cmd

	case suggestionMsg:
		if msg.err != nil {
			m.err = msg.err
			m.logger.Warn("suggestion failed", zap.Error(msg.err))
			return m, nil
		}
		m.err = nil
		m.injector.Apply(msg.suggestion)
		m.dirty = true
		m.feedback = fmt.Sprintf("Inserted suggestion below line %d", msg.suggestion.Line)
		return m, clearFeedback(m.feedbackTimeout)

	case savedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.logger.Error("save failed", zap.Error(msg.err))
			return m, nil
		}
		m.err = nil
		m.dirty = false
		m.feedback = "Saved"
		return m, clearFeedback(m.feedbackTimeout)

	case feedbackClearMsg:
		m.feedback = ""
		return m, nil
	}

	if m.focus == focusEditor {
		*m.editor, cmd = m.editor.Update(msg)
		cmds = append(cmds, cmd)
	}
	m.preview, cmd = m.preview.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m *PanelModel) toggleFocus() {
	if m.focus == focusEditor {
		m.focus = focusPreview
		m.editor.Blur()
		return
	}
	m.focus = focusEditor
	m.editor.Focus()
}

func (m PanelModel) requestSuggestion(pos editor.Position) tea.Cmd {
	injector := m.injector
	source := m.editor.Value()
	timeout := m.cfg.SuggestTimeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		s, err := injector.Suggest(ctx, pos, source)
		return suggestionMsg{suggestion: s, err: err}
	}
}

func (m PanelModel) save() tea.Cmd {
	save := m.cfg.Save
	content := m.editor.Value()
	return func() tea.Msg {
		return savedMsg{err: save(content)}
	}
}

// clearFeedback returns a command that clears the feedback message after a delay
func clearFeedback(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return feedbackClearMsg{}
	})
}

// layout sizes both panes from the window size.
func (m *PanelModel) layout() {
	headerHeight := 3 // Header panel with border
	statusHeight := 1
	borders := 2

	paneHeight := max(m.height-headerHeight-statusHeight-borders-1, 3)
	half := m.width / 2
	editorWidth := max(half-4, 10)
	previewWidth := max(m.width-half-4, 10)

	m.editor.SetWidth(editorWidth)
	m.editor.SetHeight(paneHeight)

	if !m.ready {
		m.preview = viewport.New(previewWidth, paneHeight)
		m.ready = true
	} else {
		m.preview.Width = previewWidth
		m.preview.Height = paneHeight
	}
	m.preview.SetContent(m.renderStatement(previewWidth))
}

// renderStatement renders the problem statement in its restricted form.
func (m PanelModel) renderStatement(width int) string {
	if strings.TrimSpace(m.cfg.Statement) == "" {
		return m.styles.Hint.Render("No problem statement loaded.")
	}
	out, err := render.Markdown(m.cfg.Statement, m.cfg.RenderOptions.WithWidth(width))
	if err != nil {
		m.logger.Warn("statement render failed", zap.Error(err))
		return render.Plain(m.cfg.Statement, m.cfg.RenderOptions)
	}
	if out == "" {
		return m.styles.Hint.Render("The statement has no previewable content.")
	}
	return out
}

// View renders the panel
func (m PanelModel) View() string {
	if !m.ready {
		return m.styles.Hint.Render("  Initializing...")
	}

	contentWidth := max(m.width-2, 10)

	title := m.cfg.Title
	if title == "" {
		title = "scratch"
	}
	if m.dirty {
		title += " •"
	}
	header := m.styles.Header.Width(contentWidth).Render(lipgloss.JoinHorizontal(lipgloss.Center,
		m.styles.Title.Render("✦ ojpreview"),
		m.styles.Hint.Render("  •  "),
		m.styles.Subtitle.Render(title),
	))

	editorStyle, previewStyle := m.styles.Panel, m.styles.Panel
	if m.focus == focusEditor {
		editorStyle = m.styles.PanelFocused
	} else {
		previewStyle = m.styles.PanelFocused
	}
	panes := lipgloss.JoinHorizontal(lipgloss.Top,
		editorStyle.Render(m.editor.View()),
		previewStyle.Render(m.preview.View()),
	)

	return lipgloss.JoinVertical(lipgloss.Left, header, panes, m.renderStatusBar())
}

func (m PanelModel) renderStatusBar() string {
	if m.err != nil {
		return m.styles.Error.Render("✗ " + m.err.Error())
	}
	if m.feedback != "" {
		return m.styles.Feedback.Render(m.feedback)
	}

	items := []struct{ key, desc string }{
		{"ctrl+g", "suggest"},
		{"ctrl+y", "copy"},
		{"ctrl+s", "save"},
		{"tab", "switch pane"},
		{"esc", "quit"},
	}
	parts := make([]string, 0, len(items))
	for _, it := range items {
		parts = append(parts, m.styles.StatusKey.Render(it.key)+" "+m.styles.StatusDesc.Render(it.desc))
	}
	return m.styles.StatusBar.Render(strings.Join(parts, "  "))
}

// RunPanel starts the editor panel and blocks until it exits. It returns
// the final buffer.
func RunPanel(cfg PanelConfig) (string, error) {
	p := tea.NewProgram(NewPanelModel(cfg), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return "", err
	}
	if pm, ok := final.(PanelModel); ok {
		return pm.Value(), nil
	}
	return "", nil
}
