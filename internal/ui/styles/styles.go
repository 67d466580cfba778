// Package styles contains Lip Gloss style definitions.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Pattern syntax colors (ANSI palette so the defaults follow the terminal theme)
	PatternEmptyColor          = lipgloss.AdaptiveColor{Light: "13", Dark: "13"} // light magenta
	PatternFlagsColor          = lipgloss.AdaptiveColor{Light: "14", Dark: "14"} // light cyan
	PatternLiteralColor        = lipgloss.AdaptiveColor{Light: "3", Dark: "3"}   // yellow
	PatternDotColor            = lipgloss.AdaptiveColor{Light: "7", Dark: "7"}   // white
	PatternAssertionColor      = lipgloss.AdaptiveColor{Light: "9", Dark: "9"}   // light red
	PatternClassUnicodeColor   = lipgloss.AdaptiveColor{Light: "11", Dark: "11"} // light yellow
	PatternClassPerlColor      = lipgloss.AdaptiveColor{Light: "5", Dark: "5"}   // magenta
	PatternClassBracketedColor = lipgloss.AdaptiveColor{Light: "6", Dark: "6"}   // cyan
	PatternRepetitionColor     = lipgloss.AdaptiveColor{Light: "10", Dark: "10"} // light green
	PatternGroupColor          = lipgloss.AdaptiveColor{Light: "2", Dark: "2"}   // green
	PatternAlternationColor    = lipgloss.AdaptiveColor{Light: "4", Dark: "4"}   // blue

	// Bracketed class item colors
	ClassLiteralColor = lipgloss.AdaptiveColor{Light: "3", Dark: "3"}
	ClassRangeColor   = lipgloss.AdaptiveColor{Light: "6", Dark: "6"}
	ClassASCIIColor   = lipgloss.AdaptiveColor{Light: "4", Dark: "4"}
	ClassUnicodeColor = lipgloss.AdaptiveColor{Light: "11", Dark: "11"}
	ClassPerlColor    = lipgloss.AdaptiveColor{Light: "2", Dark: "2"}

	// Subject match background
	MatchBackgroundColor = lipgloss.AdaptiveColor{Light: "1", Dark: "1"}

	// Error underline drawn beneath the pattern
	ErrorMarkerColor = lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF8787"}

	// Semantic color names - Status
	StatusSuccessColor = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	StatusErrorColor   = lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF8787"}

	// Semantic color names - Border
	BorderDefaultColor = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#696969"} // Unfocused borders
	BorderFocusColor   = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#FFFFFF"}

	// Hints, help text, footers
	TextMutedColor = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#696969"}
)

// Styles derived from the colors above. They are rebuilt by ApplyTheme.
var (
	StatusErrorStyle   lipgloss.Style
	StatusSuccessStyle lipgloss.Style
	ErrorMarkerStyle   lipgloss.Style
	MutedStyle         lipgloss.Style
	TitleStyle         lipgloss.Style
)

func init() {
	rebuildStyles()
}
