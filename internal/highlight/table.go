// Package highlight turns syntax trees and matches into per-byte style
// overlays and composes overlays into styled text.
package highlight

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/regexlens/internal/pattern"
	"github.com/zjrosen/regexlens/internal/ui/styles"
)

// ColorTable maps node kinds and class item kinds to foreground colors.
// A nil entry passes the inherited style through unchanged.
type ColorTable struct {
	Nodes [pattern.NumKinds]lipgloss.TerminalColor
	Items [pattern.NumItemKinds]lipgloss.TerminalColor
}

// DefaultTable returns the built-in ANSI color assignment.
func DefaultTable() ColorTable {
	var t ColorTable

	t.Nodes[pattern.KindEmpty] = lipgloss.Color("13")       // light magenta
	t.Nodes[pattern.KindFlags] = lipgloss.Color("14")       // light cyan
	t.Nodes[pattern.KindLiteral] = lipgloss.Color("3")      // yellow
	t.Nodes[pattern.KindDot] = lipgloss.Color("7")          // white
	t.Nodes[pattern.KindAssertion] = lipgloss.Color("9")    // light red
	t.Nodes[pattern.KindClassUnicode] = lipgloss.Color("11") // light yellow
	t.Nodes[pattern.KindClassPerl] = lipgloss.Color("5")    // magenta
	t.Nodes[pattern.KindClassBracketed] = lipgloss.Color("6")
	t.Nodes[pattern.KindRepetition] = lipgloss.Color("10")
	t.Nodes[pattern.KindGroup] = lipgloss.Color("2")
	t.Nodes[pattern.KindAlternation] = lipgloss.Color("4")
	t.Nodes[pattern.KindConcat] = nil

	t.Items[pattern.ItemEmpty] = nil
	t.Items[pattern.ItemLiteral] = lipgloss.Color("3")
	t.Items[pattern.ItemRange] = lipgloss.Color("6")
	t.Items[pattern.ItemASCII] = lipgloss.Color("4")
	t.Items[pattern.ItemUnicode] = lipgloss.Color("11")
	t.Items[pattern.ItemPerl] = lipgloss.Color("2")
	t.Items[pattern.ItemBracketed] = nil
	t.Items[pattern.ItemUnion] = nil

	return t
}

// TableFromTheme builds a table from the current theme colors. Call it again
// after styles.ApplyTheme to pick up overrides.
func TableFromTheme() ColorTable {
	var t ColorTable

	t.Nodes[pattern.KindEmpty] = styles.PatternEmptyColor
	t.Nodes[pattern.KindFlags] = styles.PatternFlagsColor
	t.Nodes[pattern.KindLiteral] = styles.PatternLiteralColor
	t.Nodes[pattern.KindDot] = styles.PatternDotColor
	t.Nodes[pattern.KindAssertion] = styles.PatternAssertionColor
	t.Nodes[pattern.KindClassUnicode] = styles.PatternClassUnicodeColor
	t.Nodes[pattern.KindClassPerl] = styles.PatternClassPerlColor
	t.Nodes[pattern.KindClassBracketed] = styles.PatternClassBracketedColor
	t.Nodes[pattern.KindRepetition] = styles.PatternRepetitionColor
	t.Nodes[pattern.KindGroup] = styles.PatternGroupColor
	t.Nodes[pattern.KindAlternation] = styles.PatternAlternationColor

	t.Items[pattern.ItemLiteral] = styles.ClassLiteralColor
	t.Items[pattern.ItemRange] = styles.ClassRangeColor
	t.Items[pattern.ItemASCII] = styles.ClassASCIIColor
	t.Items[pattern.ItemUnicode] = styles.ClassUnicodeColor
	t.Items[pattern.ItemPerl] = styles.ClassPerlColor

	return t
}
