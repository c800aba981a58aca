// Package config handles configuration for ojpreview.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/viper"
)

// MarkdownConfig configures the preview pipeline and terminal rendering
type MarkdownConfig struct {
	Prefix           string `json:"prefix" mapstructure:"prefix"`                       // Class prefix: prefix-block, prefix-li, ...
	Math             bool   `json:"math" mapstructure:"math"`                           // Enable $math$ notation
	Sanitize         bool   `json:"sanitize" mapstructure:"sanitize"`                   // Run HTML output through the sanitizer
	Style            string `json:"style" mapstructure:"style"`                         // "dark", "light", or path to JSON theme
	EnableEmoji      bool   `json:"enable_emoji" mapstructure:"enable_emoji"`           // Convert :emoji: to unicode
	PreserveNewLines bool   `json:"preserve_newlines" mapstructure:"preserve_newlines"` // Preserve original line breaks
}

// ServerConfig configures the HTTP preview server
type ServerConfig struct {
	Addr string `json:"addr" mapstructure:"addr"`
	// MaxBodyBytes caps request bodies accepted by the render endpoints.
	MaxBodyBytes int64 `json:"max_body_bytes" mapstructure:"max_body_bytes"`
	// ReadTimeout is in seconds.
	ReadTimeout int `json:"read_timeout" mapstructure:"read_timeout"`
}

// EditorConfig configures the terminal code-editor panel
type EditorConfig struct {
	Theme           string `json:"theme" mapstructure:"theme"`
	ShowLineNumbers bool   `json:"show_line_numbers" mapstructure:"show_line_numbers"`
	CommentPrefix   string `json:"comment_prefix" mapstructure:"comment_prefix"` // Prefix for injected suggestion lines
	CharLimit       int    `json:"char_limit" mapstructure:"char_limit"`
}

// Config represents the user configuration
type Config struct {
	// Verbose enables debug logging.
	Verbose  bool           `json:"verbose" mapstructure:"verbose"`
	Markdown MarkdownConfig `json:"markdown" mapstructure:"markdown"`
	Server   ServerConfig   `json:"server" mapstructure:"server"`
	Editor   EditorConfig   `json:"editor" mapstructure:"editor"`
}

// ConfigOption describes one configuration key, its default and meaning.
type ConfigOption struct {
	Key     string
	Default any
	Comment string
}

// GetConfigOptions returns the default configuration options and their meanings.
// This is the single source of truth for default values.
func GetConfigOptions() []ConfigOption {
	return []ConfigOption{
		{Key: "verbose", Default: false, Comment: "Enable debug logging"},

		{Key: "markdown.prefix", Default: "md", Comment: "Class prefix for preview markup"},
		{Key: "markdown.math", Default: true, Comment: "Enable $inline$ and $$display$$ math"},
		{Key: "markdown.sanitize", Default: true, Comment: "Sanitize emitted HTML"},
		{Key: "markdown.style", Default: "dark", Comment: "Terminal style: dark, light, notty, ascii, dracula, or a JSON path"},
		{Key: "markdown.enable_emoji", Default: true, Comment: "Convert :emoji: in terminal output"},
		{Key: "markdown.preserve_newlines", Default: true, Comment: "Keep line breaks in terminal output"},

		{Key: "server.addr", Default: ":8080", Comment: "HTTP listen address for the preview server"},
		{Key: "server.max_body_bytes", Default: int64(1 << 20), Comment: "Largest request body accepted by render endpoints"},
		{Key: "server.read_timeout", Default: 15, Comment: "HTTP read timeout in seconds"},

		{Key: "editor.theme", Default: "tokyonight", Comment: "Editor panel color theme"},
		{Key: "editor.show_line_numbers", Default: true, Comment: "Show line numbers in the editor"},
		{Key: "editor.comment_prefix", Default: "//", Comment: "Line comment prefix used for injected suggestions"},
		{Key: "editor.char_limit", Default: 0, Comment: "Maximum editor buffer size in characters (0 = unlimited)"},
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	cfg, _ := decode(newViper())
	return cfg
}

func newViper() *viper.Viper {
	v := viper.New()
	for _, o := range GetConfigOptions() {
		v.SetDefault(o.Key, o.Default)
	}
	return v
}

func decode(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

// GetConfigDir returns the configuration directory path
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	return filepath.Join(home, ".ojpreview"), nil
}

// EnsureConfigDir creates the configuration directory if it doesn't exist
func EnsureConfigDir() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(configDir, 0o700); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return configDir, nil
}

// GetConfigPath returns the path to the config file
func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.json"), nil
}

// Load resolves configuration with precedence: defaults < file < env.
// An empty path means the standard location; a missing file is not an error.
func Load(path string) (Config, error) {
	v := newViper()

	if path == "" {
		p, err := GetConfigPath()
		if err != nil {
			return DefaultConfig(), err
		}
		path = p
	}
	v.SetConfigFile(path)
	v.SetConfigType(configType(path))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return DefaultConfig(), fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Environment variables: OJPREVIEW_MARKDOWN_STYLE etc.
	v.SetEnvPrefix("ojpreview")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg, err := decode(v)
	if err != nil {
		return DefaultConfig(), err
	}
	return cfg, nil
}

// LoadConfig loads the configuration from the standard location
func LoadConfig() (Config, error) {
	return Load("")
}

func configType(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml"
	case ".toml":
		return "toml"
	default:
		return "json"
	}
}

// SaveConfig saves the configuration to the standard location
func SaveConfig(cfg Config) error {
	configDir, err := EnsureConfigDir()
	if err != nil {
		return err
	}
	return SaveConfigTo(filepath.Join(configDir, "config.json"), cfg)
}

// SaveConfigTo writes cfg as JSON to path, creating its directory.
func SaveConfigTo(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ClassToken is a single CSS class name as the preview markup emits it.
// The HTML sanitizer admits class attributes built from these tokens only.
const ClassToken = `-?[A-Za-z_][A-Za-z0-9_-]*`

var classPrefixPattern = regexp.MustCompile(`^` + ClassToken + `$`)

// ValidateClassPrefix reports whether prefix can stand in front of
// "-block", "-li" and the other preview class suffixes.
func ValidateClassPrefix(prefix string) error {
	if strings.TrimSpace(prefix) == "" {
		return errors.New("markdown.prefix is required")
	}
	if !classPrefixPattern.MatchString(prefix) {
		return fmt.Errorf("markdown.prefix %q must be a bare class name (letters, digits, '-' and '_')", prefix)
	}
	return nil
}

// CheckConfigValidity reports every invalid setting at once.
func CheckConfigValidity(cfg Config) error {
	var errs []error
	if err := ValidateClassPrefix(cfg.Markdown.Prefix); err != nil {
		errs = append(errs, err)
	}
	if strings.TrimSpace(cfg.Markdown.Style) == "" {
		errs = append(errs, errors.New("markdown.style is required"))
	}
	if strings.TrimSpace(cfg.Server.Addr) == "" {
		errs = append(errs, errors.New("server.addr is required"))
	}
	if cfg.Server.MaxBodyBytes <= 0 {
		errs = append(errs, errors.New("server.max_body_bytes must be greater than 0"))
	}
	if cfg.Server.ReadTimeout <= 0 {
		errs = append(errs, errors.New("server.read_timeout must be greater than 0"))
	}
	if cfg.Editor.CharLimit < 0 {
		errs = append(errs, errors.New("editor.char_limit must not be negative"))
	}
	return errors.Join(errs...)
}
