package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	require.Equal(t, 4, cfg.Editor.IndentWidth)
	require.Empty(t, cfg.Challenges.Dir)
	require.True(t, cfg.Challenges.Watch)
	require.Equal(t, 300*time.Millisecond, cfg.Challenges.WatchDebounce)
	require.True(t, cfg.UI.ShowTarget)
	require.False(t, cfg.UI.ShowKeyGuide)
	require.Equal(t, "dark", cfg.UI.MarkdownStyle)
	require.Equal(t, DefaultLogPath, cfg.Log.Path)
	require.False(t, cfg.Tracing.Enabled)
	require.Equal(t, "file", cfg.Tracing.Exporter)
	require.Equal(t, 1.0, cfg.Tracing.SampleRate)

	require.NoError(t, Validate(cfg), "defaults must validate")
}

func TestValidateEditor(t *testing.T) {
	tests := []struct {
		width   int
		wantErr bool
	}{
		{width: 1},
		{width: 4},
		{width: 16},
		{width: 0, wantErr: true},
		{width: 17, wantErr: true},
		{width: -2, wantErr: true},
	}
	for _, tt := range tests {
		err := ValidateEditor(EditorConfig{IndentWidth: tt.width})
		if tt.wantErr {
			require.ErrorContains(t, err, "editor.indent_width", "width %d", tt.width)
		} else {
			require.NoError(t, err, "width %d", tt.width)
		}
	}
}

func TestValidateChallenges(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "pack.yaml")
	require.NoError(t, os.WriteFile(file, []byte("challenges: []"), 0o600))

	require.NoError(t, ValidateChallenges(ChallengeConfig{}))
	require.NoError(t, ValidateChallenges(ChallengeConfig{Dir: dir}))
	require.NoError(t, ValidateChallenges(ChallengeConfig{Dir: filepath.Join(dir, "later")}), "missing dir is allowed")

	err := ValidateChallenges(ChallengeConfig{Dir: file})
	require.ErrorContains(t, err, "must be a directory")

	err = ValidateChallenges(ChallengeConfig{WatchDebounce: -time.Second})
	require.ErrorContains(t, err, "watch_debounce")
}

func TestValidateUI(t *testing.T) {
	require.NoError(t, ValidateUI(UIConfig{}))
	require.NoError(t, ValidateUI(UIConfig{MarkdownStyle: "light"}))
	require.ErrorContains(t, ValidateUI(UIConfig{MarkdownStyle: "neon"}), "ui.markdown_style")
}

func TestValidateTracing(t *testing.T) {
	tests := []struct {
		name    string
		cfg     TracingConfig
		wantErr string
	}{
		{name: "zero value", cfg: TracingConfig{}},
		{name: "file without path", cfg: TracingConfig{Enabled: true, Exporter: "file", SampleRate: 1}},
		{name: "stdout", cfg: TracingConfig{Enabled: true, Exporter: "stdout", SampleRate: 0.5}},
		{name: "rate too high", cfg: TracingConfig{SampleRate: 1.5}, wantErr: "sample_rate"},
		{name: "rate negative", cfg: TracingConfig{SampleRate: -0.1}, wantErr: "sample_rate"},
		{name: "unknown exporter", cfg: TracingConfig{Exporter: "jaeger"}, wantErr: "tracing.exporter"},
		{name: "otlp without endpoint", cfg: TracingConfig{Enabled: true, Exporter: "otlp"}, wantErr: "otlp_endpoint"},
		{name: "otlp disabled", cfg: TracingConfig{Exporter: "otlp"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTracing(tt.cfg)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestValidate_ReportsFirstError(t *testing.T) {
	cfg := Defaults()
	cfg.Editor.IndentWidth = 0
	cfg.UI.MarkdownStyle = "neon"

	err := Validate(cfg)
	require.ErrorContains(t, err, "editor.indent_width")
}

func TestDefaultConfigTemplate_MatchesDefaults(t *testing.T) {
	v := viper.New()
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(strings.NewReader(DefaultConfigTemplate())))

	var cfg Config
	require.NoError(t, v.Unmarshal(&cfg))

	defaults := Defaults()
	require.Equal(t, defaults.Editor, cfg.Editor)
	require.Equal(t, defaults.Challenges.Watch, cfg.Challenges.Watch)
	require.Equal(t, defaults.Challenges.WatchDebounce, cfg.Challenges.WatchDebounce)
	require.Equal(t, defaults.UI.ShowTarget, cfg.UI.ShowTarget)
	require.Equal(t, defaults.UI.ShowKeyGuide, cfg.UI.ShowKeyGuide)
	require.Equal(t, defaults.Log, cfg.Log)
}

func TestWriteDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "helixdojo", "config.yaml")

	require.NoError(t, WriteDefaultConfig(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, DefaultConfigTemplate(), string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestDefaultTracesFilePath(t *testing.T) {
	t.Setenv("HOME", "/home/tester")
	require.Equal(t, filepath.Join("/home/tester", ".config", "helixdojo", "traces", "traces.jsonl"), DefaultTracesFilePath())
}
