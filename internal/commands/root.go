// Package commands provides CLI commands for ojpreview.
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ojroom/preview/internal/config"
	"github.com/ojroom/preview/internal/render"
	"github.com/ojroom/preview/internal/tui"
)

var (
	// Version info (set at build time)
	Version   = "0.1.0"
	BuildTime = "unknown"
)

// app carries the state shared by every subcommand of one invocation.
type app struct {
	deps *Dependencies

	verbose    bool
	configPath string

	cfg    config.Config
	logger *zap.Logger
}

// NewRootCmd creates the root command with all subcommands attached.
func NewRootCmd(deps *Dependencies) *cobra.Command {
	a := &app{deps: deps.withDefaults(), logger: zap.NewNop()}

	root := &cobra.Command{
		Use:   "ojpreview",
		Short: "Restricted markdown preview for problem statements",
		Long: `ojpreview renders problem statements and comments the way the judge
shows them: headings and lists flattened into styled blocks, with images,
code blocks and tables removed.

Examples:
  ojpreview render statement.md            Render to restricted HTML
  cat statement.md | ojpreview render -f terminal
  ojpreview serve --addr :9000             Start the preview server
  ojpreview edit main.cpp --statement statement.md
  ojpreview config init                    Write the default config`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if v, _ := cmd.Flags().GetBool("version"); v {
				fmt.Fprintf(cmd.OutOrStdout(), "ojpreview %s (built %s)\n", Version, BuildTime)
				return nil
			}
			return cmd.Help()
		},
	}
	root.SetIn(a.deps.In)
	root.SetOut(a.deps.Out)
	root.SetErr(a.deps.Err)

	root.PersistentFlags().BoolVar(&a.verbose, "verbose", false, "Enable debug logging")
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "Config file (default ~/.ojpreview/config.json)")
	root.Flags().BoolP("version", "v", false, "Show version and exit")

	root.AddCommand(newRenderCmd(a))
	root.AddCommand(newServeCmd(a))
	root.AddCommand(newEditCmd(a))
	root.AddCommand(newConfigCmd(a))
	return root
}

// init loads configuration and builds the logger.
func (a *app) init() error {
	var err error
	if a.configPath != "" {
		a.cfg, err = config.Load(a.configPath)
	} else {
		a.cfg, err = config.LoadConfig()
	}
	if err != nil {
		return err
	}
	if err := config.CheckConfigValidity(a.cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if a.deps.Logger != nil {
		a.logger = a.deps.Logger
	} else {
		zcfg := zap.NewProductionConfig()
		if a.verbose || a.cfg.Verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		a.logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
	}

	// A bad style only breaks terminal output, which falls back to plain text.
	if err := render.CheckStyle(render.OptionsFromConfig(a.cfg).Style); err != nil {
		a.logger.Warn("terminal style unavailable", zap.Error(err))
		fmt.Fprintln(a.deps.Err, warningLine("⚠ "+err.Error()))
	}
	return nil
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd(NewDependencies()).Execute(); err != nil {
		tui.PrintError(err)
		os.Exit(1)
	}
}
