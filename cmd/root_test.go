package cmd

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/regexlens/internal/config"
)

// isolate points HOME and the working directory at an empty temp dir so no
// real config file is picked up.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Chdir(dir)
	return dir
}

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// execute runs the root command with fresh package state.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cfgFile, configUsed, themeSet, configForce = "", "", "", false
	cfg = config.Config{}

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return out.String(), err
}

func TestLoadConfig_Defaults(t *testing.T) {
	isolate(t)

	loaded, used, err := loadConfig("")
	require.NoError(t, err)

	assert.Empty(t, used)
	assert.Equal(t, config.Defaults(), loaded)
}

func TestLoadConfig_ExplicitFile(t *testing.T) {
	dir := isolate(t)
	path := writeConfig(t, dir, `
engine:
  size_limit: 500
subject:
  path: notes.txt
  watch: false
  debounce: 250ms
ui:
  initial_pattern: '\d+'
theme:
  preset: high-contrast
  colors:
    pattern:
      literal: "#FF0000"
    "match.background": "#222222"
`)

	loaded, used, err := loadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, path, used)
	assert.Equal(t, 500, loaded.Engine.SizeLimit)
	assert.Equal(t, 100, loaded.Engine.MaxRecursionDepth, "unset keys keep defaults")
	assert.Equal(t, "notes.txt", loaded.Subject.Path)
	assert.False(t, loaded.Subject.Watch)
	assert.Equal(t, 250*time.Millisecond, loaded.Subject.Debounce)
	assert.True(t, loaded.UI.ShowCaptures)
	assert.Equal(t, `\d+`, loaded.UI.InitialPattern)
	assert.Equal(t, "high-contrast", loaded.Theme.Preset)

	colors := loaded.Theme.FlattenedColors()
	assert.Equal(t, "#FF0000", colors["pattern.literal"])
	assert.Equal(t, "#222222", colors["match.background"])
}

func TestLoadConfig_LocalFileWins(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".regexlens"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(dir, localConfigPath), []byte("engine:\n  size_limit: 42\n"), 0o600))

	userDir := filepath.Join(dir, ".config", "regexlens")
	require.NoError(t, os.MkdirAll(userDir, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(userDir, "config.yaml"), []byte("engine:\n  size_limit: 7\n"), 0o600))

	loaded, used, err := loadConfig("")
	require.NoError(t, err)
	assert.Equal(t, localConfigPath, used)
	assert.Equal(t, 42, loaded.Engine.SizeLimit)
}

func TestLoadConfig_UserFile(t *testing.T) {
	dir := isolate(t)
	userDir := filepath.Join(dir, ".config", "regexlens")
	require.NoError(t, os.MkdirAll(userDir, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(userDir, "config.yaml"), []byte("ui:\n  show_help: false\n"), 0o600))

	loaded, used, err := loadConfig("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(userDir, "config.yaml"), used)
	assert.False(t, loaded.UI.ShowHelp)
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	dir := isolate(t)

	_, _, err := loadConfig(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config")
}

func TestLoadConfig_Invalid(t *testing.T) {
	dir := isolate(t)
	path := writeConfig(t, dir, "engine:\n  max_recursion_depth: 5\n")

	_, _, err := loadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
	assert.Contains(t, err.Error(), "max_recursion_depth")
}

func TestReadSubject_File(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "subject.txt"), []byte("hello\nworld"), 0o600))

	text, file, err := readSubject("subject.txt", strings.NewReader("ignored"), true)
	require.NoError(t, err)
	assert.Equal(t, "hello\nworld", text)
	assert.True(t, filepath.IsAbs(file), "file path is made absolute for watching")
	assert.Equal(t, "subject.txt", filepath.Base(file))
}

func TestReadSubject_MissingFile(t *testing.T) {
	isolate(t)

	_, _, err := readSubject("nope.txt", strings.NewReader(""), false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading subject")
}

func TestReadSubject_Stdin(t *testing.T) {
	tests := []struct {
		name  string
		path  string
		piped bool
		want  string
	}{
		{name: "dash reads stdin", path: "-", piped: false, want: "from stdin"},
		{name: "piped without path", path: "", piped: true, want: "from stdin"},
		{name: "terminal without path", path: "", piped: false, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, file, err := readSubject(tt.path, strings.NewReader("from stdin"), tt.piped)
			require.NoError(t, err)
			assert.Equal(t, tt.want, text)
			assert.Empty(t, file, "stdin is never watched")
		})
	}
}

func TestThemesCmd_List(t *testing.T) {
	isolate(t)

	out, err := execute(t, "themes")
	require.NoError(t, err)

	assert.Contains(t, out, "Presets:")
	assert.Contains(t, out, "* default")
	assert.Contains(t, out, "catppuccin-mocha")
	assert.Contains(t, out, "high-contrast")
	assert.Contains(t, out, "■■■■■■")
	assert.Contains(t, out, "Color tokens:")
	assert.Contains(t, out, "pattern.class.bracketed")
	assert.Contains(t, out, "match.background")
}

func TestThemesCmd_MarksConfiguredPreset(t *testing.T) {
	dir := isolate(t)
	path := writeConfig(t, dir, "theme:\n  preset: catppuccin-mocha\n")

	out, err := execute(t, "themes", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "* catppuccin-mocha")
	assert.NotContains(t, out, "* default")
}

func TestThemesCmd_Set(t *testing.T) {
	dir := isolate(t)
	path := writeConfig(t, dir, "# keep me\nengine:\n  size_limit: 900\n")

	out, err := execute(t, "themes", "--config", path, "--set", "high-contrast")
	require.NoError(t, err)
	assert.Contains(t, out, "Theme set to high-contrast")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# keep me")

	loaded, _, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "high-contrast", loaded.Theme.Preset)
	assert.Equal(t, 900, loaded.Engine.SizeLimit)
}

func TestThemesCmd_SetUnknown(t *testing.T) {
	isolate(t)

	_, err := execute(t, "themes", "--set", "solarized")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown theme preset "solarized"`)
}

func TestConfigCmd_PrintsEffectiveConfig(t *testing.T) {
	dir := isolate(t)
	path := writeConfig(t, dir, "engine:\n  size_limit: 1234\n")

	out, err := execute(t, "config", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "# loaded from "+path)
	assert.Contains(t, out, "size_limit: 1234")
	assert.Contains(t, out, "max_recursion_depth: 100")
}

func TestConfigInitCmd(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "nested", "config.yaml")

	out, err := execute(t, "config", "init", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote "+path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfigTemplate(), string(data))

	// The written template loads cleanly
	loaded, _, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, config.Defaults().Engine, loaded.Engine)

	_, err = execute(t, "config", "init", "--config", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, err = execute(t, "config", "init", "--config", path, "--force")
	require.NoError(t, err)
}
