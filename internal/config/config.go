// Package config provides configuration types and defaults for regexlens.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/zjrosen/regexlens/internal/log"
)

// Config holds all configuration options for regexlens.
type Config struct {
	Engine  EngineConfig  `mapstructure:"engine" yaml:"engine"`
	Subject SubjectConfig `mapstructure:"subject" yaml:"subject"`
	UI      UIConfig      `mapstructure:"ui" yaml:"ui"`
	Theme   ThemeConfig   `mapstructure:"theme" yaml:"theme"`
}

// EngineConfig bounds the resources a compiled pattern may use.
type EngineConfig struct {
	// SizeLimit is the maximum number of compiled program instructions.
	// Patterns above it are reported as too large. 0 uses the built-in default.
	SizeLimit int `mapstructure:"size_limit" yaml:"size_limit"`

	// MaxRecursionDepth bounds recursion while compiling the matcher.
	// 0 uses the built-in default; otherwise it must be within 10..1000.
	MaxRecursionDepth int `mapstructure:"max_recursion_depth" yaml:"max_recursion_depth"`
}

// SubjectConfig controls where the subject text comes from.
type SubjectConfig struct {
	Path     string        `mapstructure:"path" yaml:"path"`         // file to read; "-" or empty reads stdin when piped
	Watch    bool          `mapstructure:"watch" yaml:"watch"`       // reload the file when it changes on disk
	Debounce time.Duration `mapstructure:"debounce" yaml:"debounce"` // quiet period before a reload
}

// UIConfig holds user interface configuration options.
type UIConfig struct {
	ShowCaptures   bool   `mapstructure:"show_captures" yaml:"show_captures"`
	ShowHelp       bool   `mapstructure:"show_help" yaml:"show_help"`
	InitialPattern string `mapstructure:"initial_pattern" yaml:"initial_pattern"`
}

// ThemeConfig holds all theme customization options.
type ThemeConfig struct {
	// Preset loads a built-in theme as the base (optional).
	// Valid values: "default", "catppuccin-mocha", "high-contrast"
	Preset string `mapstructure:"preset" yaml:"preset,omitempty"`

	// Colors allows overriding individual color tokens.
	// Supports both nested YAML structure and dot notation.
	// Example YAML:
	//   colors:
	//     pattern:
	//       literal: "#FF0000"
	// Or quoted dot notation:
	//   colors:
	//     "pattern.literal": "#FF0000"
	Colors map[string]any `mapstructure:"colors" yaml:"colors,omitempty"`
}

// FlattenedColors returns the Colors map flattened to dot-notation keys.
// This handles both nested YAML structures and already-flat keys.
func (t ThemeConfig) FlattenedColors() map[string]string {
	result := make(map[string]string)
	flattenColors("", t.Colors, result)
	return result
}

// flattenColors recursively flattens a nested map into dot-notation keys.
func flattenColors(prefix string, m map[string]any, result map[string]string) {
	for k, v := range m {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}

		switch val := v.(type) {
		case string:
			result[key] = val
		case int:
			// Unquoted ANSI palette indexes decode as numbers
			result[key] = fmt.Sprint(val)
		case map[string]any:
			flattenColors(key, val, result)
		case map[any]any:
			// YAML sometimes produces map[any]any instead of map[string]any
			converted := make(map[string]any)
			for mk, mv := range val {
				if strKey, ok := mk.(string); ok {
					converted[strKey] = mv
				}
			}
			flattenColors(key, converted, result)
		}
	}
}

// Defaults returns the default configuration.
func Defaults() Config {
	return Config{
		Engine: EngineConfig{
			SizeLimit:         100_000,
			MaxRecursionDepth: 100,
		},
		Subject: SubjectConfig{
			Watch:    true,
			Debounce: 100 * time.Millisecond,
		},
		UI: UIConfig{
			ShowCaptures: true,
			ShowHelp:     true,
		},
	}
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.Engine.SizeLimit < 0 {
		return fmt.Errorf("engine.size_limit must not be negative, got %d", c.Engine.SizeLimit)
	}
	if d := c.Engine.MaxRecursionDepth; d != 0 && (d < 10 || d > 1000) {
		return fmt.Errorf("engine.max_recursion_depth must be 0 or between 10 and 1000, got %d", d)
	}
	if c.Subject.Debounce < 0 {
		return fmt.Errorf("subject.debounce must not be negative, got %s", c.Subject.Debounce)
	}
	return nil
}

// Marshal renders cfg as YAML.
func Marshal(cfg Config) ([]byte, error) {
	out, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("marshaling config: %w", err)
	}
	return out, nil
}

// DefaultConfigPath returns the user config location,
// ~/.config/regexlens/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "regexlens", "config.yaml")
}

// DefaultConfigTemplate returns the commented YAML written for new users.
func DefaultConfigTemplate() string {
	return `# regexlens configuration

# Limits applied when compiling a pattern
engine:
  size_limit: 100000        # Max compiled program size; larger patterns report "pattern too large"
  max_recursion_depth: 100  # Matcher compile recursion bound (10-1000)

# Subject text
subject:
  # path: ./sample.txt      # File to test against (can also be given as an argument)
  watch: true               # Reload the file when it changes
  debounce: 100ms           # Quiet period before reloading

# UI settings
ui:
  show_captures: true       # Show the capture groups panel
  show_help: true           # Show the key help footer
  # initial_pattern: '\w+'

# Theme configuration
# Use a preset theme or customize individual colors
theme:
  # Use a preset (run 'regexlens themes' to see available presets):
  # preset: catppuccin-mocha
  #
  # Available presets:
  #   default           - Terminal ANSI palette
  #   catppuccin-mocha  - Warm, cozy dark theme
  #   high-contrast     - High contrast for accessibility
  #
  # Override specific colors with hex values or ANSI indexes (works with or without preset):
  # colors:
  #   pattern.literal: "#F9E2AF"
  #   pattern.group: "2"
  #   match.background: "#45475A"
`
}

// WriteDefaultConfig creates a config file with default settings.
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
