package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ojroom/preview/internal/config"
	"github.com/ojroom/preview/internal/render"
)

type renderFlags struct {
	format    string
	className string
	prefix    string
	width     int
	output    string
	noMath    bool
}

func newRenderCmd(a *app) *cobra.Command {
	f := &renderFlags{}
	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render markdown in its restricted preview form",
		Long: `Render reads markdown from a file, or from stdin when the file is "-"
or omitted, and prints its restricted form.

Formats:
  html      container markup with styled blocks (default)
  tree      indented outline of the visual tree
  json      the visual tree as JSON
  terminal  styled terminal output`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if f.prefix != "" {
				if err := config.ValidateClassPrefix(f.prefix); err != nil {
					return fmt.Errorf("invalid --prefix: %w", err)
				}
			}
			path := ""
			if len(args) > 0 {
				path = args[0]
			}
			src, err := readInput(path, cmd.InOrStdin())
			if err == errNoInput {
				return cmd.Help()
			}
			if err != nil {
				return err
			}
			return a.runRender(cmd, f, src)
		},
	}
	cmd.Flags().StringVarP(&f.format, "format", "f", "html", "Output format: html, tree, json, terminal")
	cmd.Flags().StringVar(&f.className, "class", "", "Extra class for the container")
	cmd.Flags().StringVar(&f.prefix, "prefix", "", "Class prefix (default from config)")
	cmd.Flags().IntVarP(&f.width, "width", "w", 0, "Wrap width for terminal output (default terminal width)")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "Write output to file")
	cmd.Flags().BoolVar(&f.noMath, "no-math", false, "Treat $...$ as plain text")
	return cmd
}

func (a *app) renderOptions(f *renderFlags, out io.Writer) render.Options {
	opts := render.OptionsFromConfig(a.cfg)
	if f.prefix != "" {
		opts = opts.WithPrefix(f.prefix)
	}
	if f.className != "" {
		opts = opts.WithClassName(f.className)
	}
	if f.noMath {
		opts = opts.WithMath(false)
	}
	width := f.width
	if width <= 0 {
		width = terminalWidth(out, 80)
	}
	return opts.WithWidth(width)
}

func (a *app) runRender(cmd *cobra.Command, f *renderFlags, src string) error {
	out := cmd.OutOrStdout()
	opts := a.renderOptions(f, out)

	var result string
	switch f.format {
	case "html":
		result = render.HTML(src, opts) + "\n"
	case "tree":
		result = Outline(render.BuildTree(src, opts))
	case "json":
		data, err := json.MarshalIndent(render.BuildTree(src, opts), "", "  ")
		if err != nil {
			return fmt.Errorf("encode tree: %w", err)
		}
		result = string(data) + "\n"
	case "terminal":
		rendered, err := render.Markdown(src, opts)
		if err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), warningLine(fmt.Sprintf("⚠ Styled output failed, falling back to plain text: %v", err)))
			rendered = render.Plain(src, opts) + "\n"
		}
		result = rendered
	default:
		return fmt.Errorf("unknown format %q (want html, tree, json or terminal)", f.format)
	}

	a.logger.Debug("rendered",
		zap.String("format", f.format),
		zap.Int("input_bytes", len(src)),
		zap.Int("output_bytes", len(result)),
	)
	return writeOutput(f.output, out, cmd.ErrOrStderr(), result)
}

// Outline formats a visual tree as an indented outline, one node per line.
func Outline(n *render.Node) string {
	var sb strings.Builder
	writeOutline(&sb, n, 0)
	return sb.String()
}

func writeOutline(sb *strings.Builder, n *render.Node, depth int) {
	sb.WriteString(strings.Repeat("  ", depth))
	sb.WriteString(string(n.Kind))
	switch n.Kind {
	case render.KindContainer:
		if n.Class != "" {
			sb.WriteString(" ." + n.Class)
		}
	case render.KindList:
		if n.Ordered {
			sb.WriteString(" ordered start=" + strconv.Itoa(n.Start))
		}
	case render.KindMath:
		if n.Display {
			sb.WriteString(" display")
		}
	}
	if n.Text != "" {
		sb.WriteString(" " + strconv.Quote(n.Text))
	}
	sb.WriteByte('\n')
	for _, c := range n.Children {
		writeOutline(sb, c, depth+1)
	}
}
