package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ojroom/preview/internal/config"
	"github.com/ojroom/preview/internal/render"
	"github.com/ojroom/preview/internal/tui"
)

type fakeTUI struct {
	cfg    tui.PanelConfig
	called bool
}

func (f *fakeTUI) RunPanel(cfg tui.PanelConfig) (string, error) {
	f.cfg = cfg
	f.called = true
	return cfg.Source, nil
}

// run executes the root command with args against an isolated HOME.
func run(t *testing.T, stdin string, deps *Dependencies, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("GLAMOUR_STYLE", "")

	var out, errOut bytes.Buffer
	if deps == nil {
		deps = &Dependencies{}
	}
	deps.In = strings.NewReader(stdin)
	deps.Out = &out
	deps.Err = &errOut
	deps.Logger = zap.NewNop()

	cmd := NewRootCmd(deps)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCmd(nil)
	assert.Equal(t, "ojpreview", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)

	names := make([]string, 0)
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"render", "serve", "edit", "config"} {
		assert.Contains(t, names, want)
	}
}

func TestVersionFlag(t *testing.T) {
	out, _, err := run(t, "", nil, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "ojpreview "+Version)
}

func TestRenderHTMLFromStdin(t *testing.T) {
	src := "# Title\n\nSome text with `code`."
	out, _, err := run(t, src, nil, "render", "-")
	require.NoError(t, err)

	want := render.New(render.DefaultOptions()).HTML(render.Request{Text: src})
	assert.Equal(t, want+"\n", out)
}

func TestRenderFromFileWithClassAndPrefix(t *testing.T) {
	path := filepath.Join(t.TempDir(), "statement.md")
	require.NoError(t, os.WriteFile(path, []byte("- a\n- b"), 0o644))

	out, _, err := run(t, "", nil, "render", path, "--class", "statement", "--prefix", "oj")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, `<div class="oj-markdown statement">`))
	assert.Contains(t, out, `<div class="oj-block oj-list">`)
	assert.Equal(t, 2, strings.Count(out, `<span class="oj-li">`))
}

func TestRenderRejectsBadPrefix(t *testing.T) {
	for _, prefix := range []string{"oj.md", "oj:md", `a"b`} {
		t.Run(prefix, func(t *testing.T) {
			out, _, err := run(t, "# T", nil, "render", "-", "--prefix", prefix)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid --prefix")
			assert.Empty(t, out)
		})
	}
}

func TestRenderTreeOutline(t *testing.T) {
	out, _, err := run(t, "# Title\n\nSome text with `code`.\n\n![x](y.png)", nil, "render", "-", "-f", "tree")
	require.NoError(t, err)

	want := strings.Join([]string{
		"container",
		"  heading",
		`    text "Title"`,
		"  paragraph",
		`    text "Some text with "`,
		`    inline-code "code"`,
		`    text "."`,
		"",
	}, "\n")
	assert.Equal(t, want, out)
}

func TestRenderJSON(t *testing.T) {
	out, _, err := run(t, "1. one\n2. two", nil, "render", "-", "--format", "json")
	require.NoError(t, err)

	var tree render.Node
	require.NoError(t, json.Unmarshal([]byte(out), &tree))
	require.Len(t, tree.Children, 1)
	assert.Equal(t, render.KindList, tree.Children[0].Kind)
	assert.True(t, tree.Children[0].Ordered)
	assert.Equal(t, 1, tree.Children[0].Start)
}

func TestRenderTerminal(t *testing.T) {
	t.Setenv("OJPREVIEW_MARKDOWN_STYLE", "notty")
	out, _, err := run(t, "# Hello\n\n```\nhidden()\n```", nil, "render", "-", "-f", "terminal", "-w", "60")
	require.NoError(t, err)
	assert.Contains(t, out, "Hello")
	assert.NotContains(t, out, "hidden()")
}

func TestRenderOutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.html")
	out, errOut, err := run(t, "text", nil, "render", "-", "-o", path)
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Contains(t, errOut, "Saved to")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `<div class="md-block">text</div>`)
}

func TestRenderUnknownFormat(t *testing.T) {
	_, _, err := run(t, "x", nil, "render", "-", "-f", "pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown format")
}

func TestRenderMissingFile(t *testing.T) {
	_, _, err := run(t, "", nil, "render", filepath.Join(t.TempDir(), "missing.md"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read file")
}

func TestOutline(t *testing.T) {
	tree := &render.Node{Kind: render.KindContainer, Class: "q", Children: []*render.Node{
		{Kind: render.KindList, Ordered: true, Start: 3},
		{Kind: render.KindMath, Display: true, Text: "x^2"},
	}}
	assert.Equal(t, "container .q\n  list ordered start=3\n  math display \"x^2\"\n", Outline(tree))
}

func TestEditBuildsPanelConfig(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "main.cpp")
	statement := filepath.Join(dir, "statement.md")
	require.NoError(t, os.WriteFile(src, []byte("int main() {}"), 0o644))
	require.NoError(t, os.WriteFile(statement, []byte("# Two Sum"), 0o644))

	fake := &fakeTUI{}
	_, _, err := run(t, "", &Dependencies{TUI: fake}, "edit", src, "--statement", statement)
	require.NoError(t, err)

	require.True(t, fake.called)
	assert.Equal(t, "int main() {}", fake.cfg.Source)
	assert.Equal(t, "# Two Sum", fake.cfg.Statement)
	assert.Equal(t, "main.cpp", fake.cfg.Title)
	assert.Equal(t, "//", fake.cfg.CommentPrefix)
	assert.Equal(t, "tokyonight", fake.cfg.Theme)
	require.NotNil(t, fake.cfg.Save)
	require.NotNil(t, fake.cfg.Provider)

	require.NoError(t, fake.cfg.Save("int main() { return 0; }"))
	data, err := os.ReadFile(src)
	require.NoError(t, err)
	assert.Equal(t, "int main() { return 0; }", string(data))
}

func TestEditNewFileAndScratch(t *testing.T) {
	fake := &fakeTUI{}
	path := filepath.Join(t.TempDir(), "new.go")
	_, _, err := run(t, "", &Dependencies{TUI: fake}, "edit", path)
	require.NoError(t, err)
	assert.Empty(t, fake.cfg.Source)
	assert.NotNil(t, fake.cfg.Save)

	fake = &fakeTUI{}
	_, _, err = run(t, "", &Dependencies{TUI: fake}, "edit")
	require.NoError(t, err)
	assert.Nil(t, fake.cfg.Save)
	assert.Empty(t, fake.cfg.Title)
}

func TestEditMissingStatement(t *testing.T) {
	fake := &fakeTUI{}
	_, _, err := run(t, "", &Dependencies{TUI: fake}, "edit", "--statement", filepath.Join(t.TempDir(), "nope.md"))
	require.Error(t, err)
	assert.False(t, fake.called)
}

func TestConfigShow(t *testing.T) {
	out, _, err := run(t, "", nil, "config", "show")
	require.NoError(t, err)

	var cfg config.Config
	require.NoError(t, json.Unmarshal([]byte(out), &cfg))
	assert.Equal(t, config.DefaultConfig(), cfg)
}

func TestConfigHelpListsStyles(t *testing.T) {
	out, _, err := run(t, "", nil, "config", "--help")
	require.NoError(t, err)
	for _, st := range render.AvailableStyles() {
		assert.Contains(t, out, st.Name)
		assert.Contains(t, out, st.Description)
	}
	assert.Contains(t, out, "markdown.style")
}

func TestUnknownStyleWarns(t *testing.T) {
	t.Setenv("OJPREVIEW_MARKDOWN_STYLE", "solarized")
	out, errOut, err := run(t, "text", nil, "render", "-")
	require.NoError(t, err, "html output does not need the terminal style")
	assert.Contains(t, out, `<div class="md-block">text</div>`)
	assert.Contains(t, errOut, `unknown terminal style "solarized"`)

	t.Setenv("OJPREVIEW_MARKDOWN_STYLE", "ascii")
	_, errOut, err = run(t, "text", nil, "render", "-")
	require.NoError(t, err)
	assert.NotContains(t, errOut, "unknown terminal style")
}

func TestConfigInitAndPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg", "config.json")

	out, _, err := run(t, "", nil, "--config", path, "config", "path")
	require.NoError(t, err)
	assert.Equal(t, path+"\n", out)

	_, errOut, err := run(t, "", nil, "--config", path, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, errOut, "Wrote")
	_, err = os.Stat(path)
	require.NoError(t, err)

	_, _, err = run(t, "", nil, "--config", path, "config", "init")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, _, err = run(t, "", nil, "--config", path, "config", "init", "--force")
	require.NoError(t, err)
}

func TestInvalidConfigIsRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"markdown": {"prefix": "has space"}}`), 0o600))

	_, _, err := run(t, "x", nil, "--config", path, "render", "-")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}
