// Package styles contains Lip Gloss style definitions.
package styles

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// styleRebuilders holds callbacks to rebuild styles in other packages.
// This avoids import cycles (styles can't import highlight, but highlight can register).
var styleRebuilders []func()

// RegisterStyleRebuilder adds a callback that will be called after ApplyTheme
// updates colors. Use this to rebuild styles in packages that depend on styles.
func RegisterStyleRebuilder(fn func()) {
	styleRebuilders = append(styleRebuilders, fn)
}

// ThemeConfig mirrors config.ThemeConfig to avoid circular imports.
type ThemeConfig struct {
	Preset string
	Colors map[string]string
}

// ApplyTheme applies a complete theme configuration.
// Order of application:
// 1. Start with default colors
// 2. Apply preset (if specified)
// 3. Apply individual color overrides
// 4. Rebuild all Style objects
func ApplyTheme(cfg ThemeConfig) error {
	colors := maps.Clone(DefaultPreset.Colors)

	if cfg.Preset != "" && cfg.Preset != "default" {
		preset, ok := Presets[cfg.Preset]
		if !ok {
			return fmt.Errorf("unknown theme preset: %s", cfg.Preset)
		}
		maps.Copy(colors, preset.Colors)
	}

	for key, value := range cfg.Colors {
		token := ColorToken(key)
		if !isValidToken(token) {
			return fmt.Errorf("unknown color token: %s", key)
		}
		if !IsValidColor(value) {
			return fmt.Errorf("invalid color for %s: %s", key, value)
		}
		colors[token] = value
	}

	applyColors(colors)
	rebuildStyles()

	return nil
}

func applyColors(colors map[ColorToken]string) {
	// Same color for both modes
	makeColor := func(c string) lipgloss.AdaptiveColor {
		return lipgloss.AdaptiveColor{Light: c, Dark: c}
	}

	targets := map[ColorToken]*lipgloss.AdaptiveColor{
		TokenPatternEmpty:          &PatternEmptyColor,
		TokenPatternFlags:          &PatternFlagsColor,
		TokenPatternLiteral:        &PatternLiteralColor,
		TokenPatternDot:            &PatternDotColor,
		TokenPatternAssertion:      &PatternAssertionColor,
		TokenPatternClassUnicode:   &PatternClassUnicodeColor,
		TokenPatternClassPerl:      &PatternClassPerlColor,
		TokenPatternClassBracketed: &PatternClassBracketedColor,
		TokenPatternRepetition:     &PatternRepetitionColor,
		TokenPatternGroup:          &PatternGroupColor,
		TokenPatternAlternation:    &PatternAlternationColor,

		TokenClassLiteral: &ClassLiteralColor,
		TokenClassRange:   &ClassRangeColor,
		TokenClassASCII:   &ClassASCIIColor,
		TokenClassUnicode: &ClassUnicodeColor,
		TokenClassPerl:    &ClassPerlColor,

		TokenMatchBackground: &MatchBackgroundColor,
		TokenErrorMarker:     &ErrorMarkerColor,
		TokenStatusError:     &StatusErrorColor,
		TokenStatusSuccess:   &StatusSuccessColor,
		TokenBorderDefault:   &BorderDefaultColor,
		TokenBorderFocus:     &BorderFocusColor,
		TokenTextMuted:       &TextMutedColor,
	}

	for token, target := range targets {
		if c, ok := colors[token]; ok {
			*target = makeColor(c)
		}
	}
}

// rebuildStyles recreates all Style objects with updated colors.
// This is necessary because lipgloss.Style objects capture colors at creation time.
func rebuildStyles() {
	StatusErrorStyle = lipgloss.NewStyle().Foreground(StatusErrorColor).Bold(true)
	StatusSuccessStyle = lipgloss.NewStyle().Foreground(StatusSuccessColor)
	ErrorMarkerStyle = lipgloss.NewStyle().Foreground(ErrorMarkerColor).Bold(true)
	MutedStyle = lipgloss.NewStyle().Foreground(TextMutedColor)
	TitleStyle = lipgloss.NewStyle().Foreground(BorderFocusColor).Bold(true)

	// Call registered rebuilders
	for _, fn := range styleRebuilders {
		fn()
	}
}

func isValidToken(token ColorToken) bool {
	return slices.Contains(AllTokens(), token)
}

// IsValidColor reports whether s is a #RGB/#RRGGBB hex color or an ANSI
// palette index (0-255).
func IsValidColor(s string) bool {
	if n, err := strconv.Atoi(s); err == nil {
		return n >= 0 && n <= 255
	}
	return isValidHexColor(s)
}

func isValidHexColor(s string) bool {
	if !strings.HasPrefix(s, "#") {
		return false
	}
	hex := s[1:]
	if len(hex) != 3 && len(hex) != 6 {
		return false
	}
	_, err := strconv.ParseUint(hex, 16, 64)
	return err == nil
}
