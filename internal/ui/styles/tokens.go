// Package styles contains Lip Gloss style definitions.
package styles

// ColorToken represents a named, themeable color.
type ColorToken string

// Color tokens organized by category.
// These are the keys users can override in their config.
const (
	// Pattern syntax, one token per node kind
	TokenPatternEmpty          ColorToken = "pattern.empty"
	TokenPatternFlags          ColorToken = "pattern.flags"
	TokenPatternLiteral        ColorToken = "pattern.literal"
	TokenPatternDot            ColorToken = "pattern.dot"
	TokenPatternAssertion      ColorToken = "pattern.assertion"
	TokenPatternClassUnicode   ColorToken = "pattern.class.unicode"
	TokenPatternClassPerl      ColorToken = "pattern.class.perl"
	TokenPatternClassBracketed ColorToken = "pattern.class.bracketed"
	TokenPatternRepetition     ColorToken = "pattern.repetition"
	TokenPatternGroup          ColorToken = "pattern.group"
	TokenPatternAlternation    ColorToken = "pattern.alternation"

	// Items inside a bracketed class
	TokenClassLiteral ColorToken = "class.literal"
	TokenClassRange   ColorToken = "class.range"
	TokenClassASCII   ColorToken = "class.ascii"
	TokenClassUnicode ColorToken = "class.unicode"
	TokenClassPerl    ColorToken = "class.perl"

	// Subject matches and error markers
	TokenMatchBackground ColorToken = "match.background"
	TokenErrorMarker     ColorToken = "error.marker"

	// Status line
	TokenStatusError   ColorToken = "status.error"
	TokenStatusSuccess ColorToken = "status.success"

	// Borders
	TokenBorderDefault ColorToken = "border.default"
	TokenBorderFocus   ColorToken = "border.focus"

	// Text
	TokenTextMuted ColorToken = "text.muted"
)

// AllTokens returns all valid color tokens for validation.
func AllTokens() []ColorToken {
	return []ColorToken{
		TokenPatternEmpty,
		TokenPatternFlags,
		TokenPatternLiteral,
		TokenPatternDot,
		TokenPatternAssertion,
		TokenPatternClassUnicode,
		TokenPatternClassPerl,
		TokenPatternClassBracketed,
		TokenPatternRepetition,
		TokenPatternGroup,
		TokenPatternAlternation,

		TokenClassLiteral,
		TokenClassRange,
		TokenClassASCII,
		TokenClassUnicode,
		TokenClassPerl,

		TokenMatchBackground,
		TokenErrorMarker,

		TokenStatusError,
		TokenStatusSuccess,

		TokenBorderDefault,
		TokenBorderFocus,

		TokenTextMuted,
	}
}
