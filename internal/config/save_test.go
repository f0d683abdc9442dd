package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveSetting_CreatesNewFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "nested", "config.yaml")

	require.NoError(t, SaveSetting(configPath, "ui.show_target", false))

	data, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Equal(t, "ui:\n  show_target: false\n", string(data))
}

func TestSaveSetting_PreservesCommentsAndKeys(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600))

	require.NoError(t, SaveSetting(configPath, "ui.show_key_guide", true))

	data, err := os.ReadFile(configPath)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "# helixdojo configuration")
	assert.Contains(t, content, "indent_width: 4")
	assert.Contains(t, content, "show_key_guide: true")
	assert.Contains(t, content, "# show the key guide panel on start")
	assert.NotContains(t, content, "show_key_guide: false")

	// The saved file still loads through viper.
	v := viper.New()
	v.SetConfigFile(configPath)
	require.NoError(t, v.ReadInConfig())
	var cfg Config
	require.NoError(t, v.Unmarshal(&cfg))
	assert.True(t, cfg.UI.ShowKeyGuide)
	assert.True(t, cfg.UI.ShowTarget)
	assert.Equal(t, 4, cfg.Editor.IndentWidth)
}

func TestSaveSetting_AddsMissingSections(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("editor:\n  indent_width: 2\n"), 0o600))

	require.NoError(t, SaveSetting(configPath, "challenges.dir", "/packs"))

	data, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Equal(t, "editor:\n  indent_width: 2\nchallenges:\n  dir: /packs\n", string(data))
}

func TestSaveSetting_Errors(t *testing.T) {
	dir := t.TempDir()

	scalar := filepath.Join(dir, "scalar.yaml")
	require.NoError(t, os.WriteFile(scalar, []byte("ui: plain\n"), 0o600))
	err := SaveSetting(scalar, "ui.show_target", true)
	require.ErrorContains(t, err, "ui is not a mapping")

	broken := filepath.Join(dir, "broken.yaml")
	require.NoError(t, os.WriteFile(broken, []byte("ui: [\n"), 0o600))
	require.ErrorContains(t, SaveSetting(broken, "ui.show_target", true), "parsing config")

	require.Error(t, SaveSetting(filepath.Join(dir, "x.yaml"), "ui..show", true))
}

func TestSaveSetting_LeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, SaveSetting(configPath, "log.path", "out.log"))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.False(t, strings.HasPrefix(e.Name(), ".helixdojo.yaml.tmp"), e.Name())
	}
}
