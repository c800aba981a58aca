package render

import (
	"testing"

	"github.com/ojroom/preview/internal/config"
)

func TestOptionsFromConfig(t *testing.T) {
	t.Setenv("GLAMOUR_STYLE", "")

	cfg := config.DefaultConfig()
	cfg.Markdown.Prefix = "oj"
	cfg.Markdown.Math = false
	cfg.Markdown.Style = "light"

	opts := OptionsFromConfig(cfg)

	if opts.Prefix != "oj" {
		t.Errorf("expected prefix oj, got %s", opts.Prefix)
	}
	if opts.Math {
		t.Error("expected math to be disabled")
	}
	if !opts.Sanitize {
		t.Error("expected sanitize to stay enabled")
	}
	if opts.Style != "light" {
		t.Errorf("expected style light, got %s", opts.Style)
	}
	if opts.Width != 80 {
		t.Errorf("expected default width 80, got %d", opts.Width)
	}
}

func TestOptionsFromConfig_EmptyStringsKeepDefaults(t *testing.T) {
	t.Setenv("GLAMOUR_STYLE", "")

	cfg := config.DefaultConfig()
	cfg.Markdown.Prefix = ""
	cfg.Markdown.Style = ""

	opts := OptionsFromConfig(cfg)
	if opts.Prefix != DefaultPrefix {
		t.Errorf("expected prefix %s, got %s", DefaultPrefix, opts.Prefix)
	}
	if opts.Style != StyleDark {
		t.Errorf("expected style %s, got %s", StyleDark, opts.Style)
	}
}
