// Package styles contains Lip Gloss style definitions.
package styles

import "slices"

// Preset represents a complete color theme.
type Preset struct {
	Name        string
	Description string
	Colors      map[ColorToken]string
}

// Presets contains all built-in theme presets.
var Presets = map[string]Preset{
	"default":          DefaultPreset,
	"catppuccin-mocha": CatppuccinMochaPreset,
	"high-contrast":    HighContrastPreset,
}

// PresetNames returns the preset names in sorted order.
func PresetNames() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// DefaultPreset uses the terminal's ANSI palette for syntax colors.
var DefaultPreset = Preset{
	Name:        "default",
	Description: "Terminal ANSI palette",
	Colors: map[ColorToken]string{
		TokenPatternEmpty:          "13",
		TokenPatternFlags:          "14",
		TokenPatternLiteral:        "3",
		TokenPatternDot:            "7",
		TokenPatternAssertion:      "9",
		TokenPatternClassUnicode:   "11",
		TokenPatternClassPerl:      "5",
		TokenPatternClassBracketed: "6",
		TokenPatternRepetition:     "10",
		TokenPatternGroup:          "2",
		TokenPatternAlternation:    "4",

		TokenClassLiteral: "3",
		TokenClassRange:   "6",
		TokenClassASCII:   "4",
		TokenClassUnicode: "11",
		TokenClassPerl:    "2",

		TokenMatchBackground: "1",
		TokenErrorMarker:     "#FF8787",

		TokenStatusError:   "#FF8787",
		TokenStatusSuccess: "#73F59F",

		TokenBorderDefault: "#696969",
		TokenBorderFocus:   "#FFFFFF",

		TokenTextMuted: "#696969",
	},
}

// CatppuccinMochaPreset is the Catppuccin Mocha (dark) theme.
// Colors from: https://catppuccin.com/palette
var CatppuccinMochaPreset = Preset{
	Name:        "catppuccin-mocha",
	Description: "Catppuccin Mocha - warm, cozy dark theme",
	Colors: map[ColorToken]string{
		TokenPatternEmpty:          "#F5C2E7", // pink
		TokenPatternFlags:          "#94E2D5", // teal
		TokenPatternLiteral:        "#F9E2AF", // yellow
		TokenPatternDot:            "#CDD6F4", // text
		TokenPatternAssertion:      "#F38BA8", // red
		TokenPatternClassUnicode:   "#FAB387", // peach
		TokenPatternClassPerl:      "#CBA6F7", // mauve
		TokenPatternClassBracketed: "#89DCEB", // sky
		TokenPatternRepetition:     "#A6E3A1", // green
		TokenPatternGroup:          "#89B4FA", // blue
		TokenPatternAlternation:    "#B4BEFE", // lavender

		TokenClassLiteral: "#F9E2AF", // yellow
		TokenClassRange:   "#74C7EC", // sapphire
		TokenClassASCII:   "#89B4FA", // blue
		TokenClassUnicode: "#FAB387", // peach
		TokenClassPerl:    "#CBA6F7", // mauve

		TokenMatchBackground: "#45475A", // surface1
		TokenErrorMarker:     "#F38BA8", // red

		TokenStatusError:   "#F38BA8", // red
		TokenStatusSuccess: "#A6E3A1", // green

		TokenBorderDefault: "#6C7086", // overlay0
		TokenBorderFocus:   "#CDD6F4", // text

		TokenTextMuted: "#6C7086", // overlay0
	},
}

// HighContrastPreset maximizes contrast for accessibility.
var HighContrastPreset = Preset{
	Name:        "high-contrast",
	Description: "High contrast for accessibility",
	Colors: map[ColorToken]string{
		TokenPatternEmpty:          "#FF00FF",
		TokenPatternFlags:          "#00FFFF",
		TokenPatternLiteral:        "#FFFF00",
		TokenPatternDot:            "#FFFFFF",
		TokenPatternAssertion:      "#FF0000",
		TokenPatternClassUnicode:   "#FFA500",
		TokenPatternClassPerl:      "#FF00FF",
		TokenPatternClassBracketed: "#00FFFF",
		TokenPatternRepetition:     "#00FF00",
		TokenPatternGroup:          "#00FF00",
		TokenPatternAlternation:    "#5C5CFF",

		TokenClassLiteral: "#FFFF00",
		TokenClassRange:   "#00FFFF",
		TokenClassASCII:   "#5C5CFF",
		TokenClassUnicode: "#FFA500",
		TokenClassPerl:    "#00FF00",

		TokenMatchBackground: "#0000FF",
		TokenErrorMarker:     "#FF0000",

		TokenStatusError:   "#FF0000",
		TokenStatusSuccess: "#00FF00",

		TokenBorderDefault: "#FFFFFF",
		TokenBorderFocus:   "#FFFF00",

		TokenTextMuted: "#C0C0C0",
	},
}
