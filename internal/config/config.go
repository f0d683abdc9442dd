// Package config provides configuration types and defaults for helixdojo.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/zjrosen/helixdojo/internal/log"
)

// Config holds all configuration options for helixdojo.
type Config struct {
	Editor     EditorConfig    `mapstructure:"editor"`
	Challenges ChallengeConfig `mapstructure:"challenges"`
	UI         UIConfig        `mapstructure:"ui"`
	Log        LogConfig       `mapstructure:"log"`
	Tracing    TracingConfig   `mapstructure:"tracing"`
}

// EditorConfig holds engine options.
type EditorConfig struct {
	IndentWidth int `mapstructure:"indent_width"` // spaces added by > and removed by <
}

// ChallengeConfig controls where extra challenge packs come from.
type ChallengeConfig struct {
	Dir           string        `mapstructure:"dir"`            // directory of *.yaml packs, empty disables
	Watch         bool          `mapstructure:"watch"`          // reload packs when files change
	WatchDebounce time.Duration `mapstructure:"watch_debounce"` // quiet period before reloading
}

// UIConfig holds user interface configuration options.
type UIConfig struct {
	ShowTarget    bool   `mapstructure:"show_target"`
	ShowKeyGuide  bool   `mapstructure:"show_key_guide"`
	MarkdownStyle string `mapstructure:"markdown_style"` // "dark" (default) or "light"
}

// LogConfig holds debug log options.
type LogConfig struct {
	Path string `mapstructure:"path"`
}

// TracingConfig holds span export options.
type TracingConfig struct {
	// Enabled controls whether sessions record spans.
	Enabled bool `mapstructure:"enabled"`

	// Exporter is one of "none", "file", "stdout", "otlp".
	Exporter string `mapstructure:"exporter"`

	// FilePath is the JSONL output for the file exporter.
	FilePath string `mapstructure:"file_path"`

	// OTLPEndpoint is the collector address for the otlp exporter.
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`

	// SampleRate is the fraction of attempts sampled, 0.0 to 1.0.
	SampleRate float64 `mapstructure:"sample_rate"`
}

// Limits for editor.indent_width.
const (
	MinIndentWidth = 1
	MaxIndentWidth = 16
)

// DefaultLogPath is the debug log written when --debug is set.
const DefaultLogPath = "debug.log"

// DefaultTracesFilePath returns the default file exporter output.
func DefaultTracesFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "helixdojo", "traces", "traces.jsonl")
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		Editor: EditorConfig{
			IndentWidth: 4,
		},
		Challenges: ChallengeConfig{
			Watch:         true,
			WatchDebounce: 300 * time.Millisecond,
		},
		UI: UIConfig{
			ShowTarget:    true,
			ShowKeyGuide:  false,
			MarkdownStyle: "dark",
		},
		Log: LogConfig{
			Path: DefaultLogPath,
		},
		Tracing: TracingConfig{
			Enabled:      false,
			Exporter:     "file",
			FilePath:     "", // derived at runtime
			OTLPEndpoint: "localhost:4317",
			SampleRate:   1.0,
		},
	}
}

// Validate checks every section.
func Validate(cfg Config) error {
	if err := ValidateEditor(cfg.Editor); err != nil {
		return err
	}
	if err := ValidateChallenges(cfg.Challenges); err != nil {
		return err
	}
	if err := ValidateUI(cfg.UI); err != nil {
		return err
	}
	return ValidateTracing(cfg.Tracing)
}

// ValidateEditor checks engine options.
func ValidateEditor(editor EditorConfig) error {
	if editor.IndentWidth < MinIndentWidth || editor.IndentWidth > MaxIndentWidth {
		return fmt.Errorf("editor.indent_width must be between %d and %d, got %d",
			MinIndentWidth, MaxIndentWidth, editor.IndentWidth)
	}
	return nil
}

// ValidateChallenges checks pack options.
func ValidateChallenges(ch ChallengeConfig) error {
	if ch.WatchDebounce < 0 {
		return fmt.Errorf("challenges.watch_debounce must not be negative, got %s", ch.WatchDebounce)
	}
	if ch.Dir == "" {
		return nil
	}
	info, err := os.Stat(ch.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // created later by the user; loading treats it as empty
		}
		return fmt.Errorf("challenges.dir: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("challenges.dir must be a directory, got file %q", ch.Dir)
	}
	return nil
}

// ValidateUI checks presentation options.
func ValidateUI(ui UIConfig) error {
	switch ui.MarkdownStyle {
	case "", "dark", "light":
		return nil
	default:
		return fmt.Errorf("ui.markdown_style must be \"dark\" or \"light\", got %q", ui.MarkdownStyle)
	}
}

// ValidateTracing checks span export options.
func ValidateTracing(tracing TracingConfig) error {
	if tracing.SampleRate < 0.0 || tracing.SampleRate > 1.0 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", tracing.SampleRate)
	}

	if tracing.Exporter != "" {
		switch tracing.Exporter {
		case "none", "file", "stdout", "otlp":
		default:
			return fmt.Errorf("tracing.exporter must be \"none\", \"file\", \"stdout\", or \"otlp\", got %q", tracing.Exporter)
		}
	}

	if tracing.Enabled && tracing.Exporter == "otlp" && tracing.OTLPEndpoint == "" {
		return fmt.Errorf("tracing.otlp_endpoint is required when exporter is \"otlp\"")
	}

	return nil
}

// DefaultConfigTemplate returns the commented YAML written on first run.
func DefaultConfigTemplate() string {
	return `# helixdojo configuration

# Editor engine
editor:
  indent_width: 4   # spaces added by > and removed by < (1-16)

# Challenge packs
# Every *.yaml file in dir is loaded on top of the built-in catalog.
# A pack entry with the same id as a built-in challenge replaces it.
challenges:
  # dir: ~/.config/helixdojo/challenges
  watch: true            # reload packs when files change
  watch_debounce: 300ms  # quiet period before reloading

# Pack file format:
#   challenges:
#     - id: swap-words
#       name: Swap Words
#       description: Swap the two words.
#       difficulty: easy       # easy, medium, hard
#       category: change       # movement, selection, change, surround, multicursor
#       initial: "world hello"
#       target: "hello world"
#       hints: ["Select a word with e", "Yank with y"]
#       optimal_keystrokes: 8

# UI settings
ui:
  show_target: true       # show the target text beside the buffer
  show_key_guide: false   # show the key guide panel on start
  # markdown_style: dark  # Markdown rendering style: "dark" (default) or "light"

# Debug log, written only with --debug or HELIXDOJO_DEBUG=1
log:
  path: debug.log

# Span export for practice sessions
# tracing:
#   enabled: false                 # Enable/disable tracing (default: false)
#   exporter: file                 # Export backend: none, file, stdout, otlp (default: file)
#   file_path: ~/.config/helixdojo/traces/traces.jsonl
#   otlp_endpoint: localhost:4317  # OTLP collector endpoint (for otlp exporter)
#   sample_rate: 1.0               # Sampling rate 0.0-1.0 (default: 1.0)
`
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
