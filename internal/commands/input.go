package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

var (
	colorSuccess = lipgloss.Color("#9ece6a")
	colorWarning = lipgloss.Color("#e0af68")
)

// errNoInput is returned when there is neither a file argument nor piped stdin.
var errNoInput = fmt.Errorf("no input: pass a file or pipe markdown on stdin")

// readInput reads path, or in when path is empty or "-". An interactive
// terminal on stdin counts as no input.
func readInput(path string, in io.Reader) (string, error) {
	if path != "" && path != "-" {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read file: %w", err)
		}
		return string(data), nil
	}
	if path == "" && isTerminal(in) {
		return "", errNoInput
	}
	data, err := io.ReadAll(in)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(data), nil
}

// writeOutput writes content to path, or to out when path is empty.
func writeOutput(path string, out, status io.Writer, content string) error {
	if path == "" {
		_, err := io.WriteString(out, content)
		return err
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	fmt.Fprintln(status, successLine(fmt.Sprintf("✓ Saved to %s", path)))
	return nil
}

func successLine(s string) string {
	return lipgloss.NewStyle().Foreground(colorSuccess).Render(s)
}

func warningLine(s string) string {
	return lipgloss.NewStyle().Foreground(colorWarning).Render(s)
}

func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// terminalWidth returns the width of out when it is a terminal, or fallback.
func terminalWidth(out io.Writer, fallback int) int {
	f, ok := out.(*os.File)
	if !ok {
		return fallback
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return fallback
	}
	return width
}
