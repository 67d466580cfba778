package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDefaults_AreValid(t *testing.T) {
	cfg := Defaults()
	require.NoError(t, cfg.Validate())
	require.Equal(t, 100_000, cfg.Engine.SizeLimit)
	require.Equal(t, 100, cfg.Engine.MaxRecursionDepth)
	require.True(t, cfg.Subject.Watch)
	require.Equal(t, 100*time.Millisecond, cfg.Subject.Debounce)
	require.True(t, cfg.UI.ShowCaptures)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"negative size limit", func(c *Config) { c.Engine.SizeLimit = -1 }, "engine.size_limit"},
		{"zero size limit uses default", func(c *Config) { c.Engine.SizeLimit = 0 }, ""},
		{"recursion too small", func(c *Config) { c.Engine.MaxRecursionDepth = 5 }, "engine.max_recursion_depth"},
		{"recursion too large", func(c *Config) { c.Engine.MaxRecursionDepth = 5000 }, "engine.max_recursion_depth"},
		{"recursion zero", func(c *Config) { c.Engine.MaxRecursionDepth = 0 }, ""},
		{"recursion bounds", func(c *Config) { c.Engine.MaxRecursionDepth = 1000 }, ""},
		{"negative debounce", func(c *Config) { c.Subject.Debounce = -time.Second }, "subject.debounce"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestMarshal_RoundTripsThroughViper(t *testing.T) {
	cfg := Defaults()
	cfg.UI.InitialPattern = `(\w+)@(\w+)`
	cfg.Theme.Preset = "high-contrast"

	out, err := Marshal(cfg)
	require.NoError(t, err)
	require.Contains(t, string(out), "debounce: 100ms")
	require.Contains(t, string(out), "size_limit: 100000")

	loaded := loadConfigFromYAML(t, string(out))
	require.Equal(t, cfg.Engine, loaded.Engine)
	require.Equal(t, cfg.Subject, loaded.Subject)
	require.Equal(t, cfg.UI, loaded.UI)
	require.Equal(t, "high-contrast", loaded.Theme.Preset)
}

func TestDefaultConfigTemplate_ParsesToDefaults(t *testing.T) {
	var raw map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(DefaultConfigTemplate()), &raw))

	cfg := loadConfigFromYAML(t, DefaultConfigTemplate())
	defaults := Defaults()
	require.Equal(t, defaults.Engine, cfg.Engine)
	require.Equal(t, defaults.Subject, cfg.Subject)
	require.Equal(t, defaults.UI, cfg.UI)
}

func TestWriteDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	require.NoError(t, WriteDefaultConfig(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, DefaultConfigTemplate(), string(data))
}

func TestFlattenedColors(t *testing.T) {
	theme := ThemeConfig{
		Colors: map[string]any{
			"pattern": map[string]any{
				"literal": "#FF0000",
				"class": map[any]any{
					"perl": "#00FF00",
				},
			},
			"class.range":      "#0000FF",
			"match.background": 4,
		},
	}

	require.Equal(t, map[string]string{
		"pattern.literal":    "#FF0000",
		"pattern.class.perl": "#00FF00",
		"class.range":        "#0000FF",
		"match.background":   "4",
	}, theme.FlattenedColors())
}
