package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ojroom/preview/internal/editor"
	"github.com/ojroom/preview/internal/render"
	"github.com/ojroom/preview/internal/tui"
)

func newEditCmd(a *app) *cobra.Command {
	var statement string
	cmd := &cobra.Command{
		Use:   "edit [file]",
		Short: "Open the code editor panel",
		Long: `Edit opens a terminal code editor next to a rendered problem statement.

Keys:
  ctrl+g  insert a suggestion below the cursor line
  ctrl+y  copy the buffer to the clipboard
  ctrl+s  save the buffer to [file]
  tab     switch between editor and statement
  esc     quit`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.panelConfig(args, statement)
			if err != nil {
				return err
			}
			_, err = a.deps.TUI.RunPanel(cfg)
			return err
		},
	}
	cmd.Flags().StringVarP(&statement, "statement", "s", "", "Markdown file shown in the preview pane")
	return cmd
}

func (a *app) panelConfig(args []string, statementPath string) (tui.PanelConfig, error) {
	cfg := tui.PanelConfig{
		Theme:           a.cfg.Editor.Theme,
		ShowLineNumbers: a.cfg.Editor.ShowLineNumbers,
		CharLimit:       a.cfg.Editor.CharLimit,
		CommentPrefix:   a.cfg.Editor.CommentPrefix,
		RenderOptions:   render.OptionsFromConfig(a.cfg),
		Provider:        editor.NewCannedProvider(),
		Logger:          a.logger,
	}

	if len(args) > 0 {
		path := args[0]
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			cfg.Source = string(data)
		case errors.Is(err, fs.ErrNotExist):
			a.logger.Debug("editing new file", zap.String("path", path))
		default:
			return cfg, fmt.Errorf("failed to read file: %w", err)
		}
		cfg.Title = filepath.Base(path)
		cfg.Save = func(content string) error {
			return os.WriteFile(path, []byte(content), 0o644)
		}
	}

	if statementPath != "" {
		data, err := os.ReadFile(statementPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read statement: %w", err)
		}
		cfg.Statement = string(data)
	}
	return cfg, nil
}
