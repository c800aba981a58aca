package commands

import (
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/ojroom/preview/internal/tui"
)

// TUIInterface defines the methods required from the TUI package.
type TUIInterface interface {
	RunPanel(cfg tui.PanelConfig) (string, error)
}

// Dependencies holds the external dependencies for the commands.
// This allows for dependency injection and easier testing.
type Dependencies struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer

	// TUI is the terminal user interface.
	TUI TUIInterface

	// Logger overrides the logger built from flags when set.
	Logger *zap.Logger
}

// DefaultTUI is the production implementation of TUIInterface.
type DefaultTUI struct{}

func (d *DefaultTUI) RunPanel(cfg tui.PanelConfig) (string, error) {
	return tui.RunPanel(cfg)
}

// NewDependencies creates a new Dependencies struct with default implementations.
func NewDependencies() *Dependencies {
	return &Dependencies{
		In:  os.Stdin,
		Out: os.Stdout,
		Err: os.Stderr,
		TUI: &DefaultTUI{},
	}
}

func (d *Dependencies) withDefaults() *Dependencies {
	defaults := NewDependencies()
	if d == nil {
		return defaults
	}
	out := *d
	if out.In == nil {
		out.In = defaults.In
	}
	if out.Out == nil {
		out.Out = defaults.Out
	}
	if out.Err == nil {
		out.Err = defaults.Err
	}
	if out.TUI == nil {
		out.TUI = defaults.TUI
	}
	return &out
}
