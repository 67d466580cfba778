// Package pattern parses and compiles regular expressions for regexlens.
//
// The parser produces a syntax tree whose every node carries the byte span it
// was parsed from, which is what the highlighter and the error locator work
// on. The compiler is independent of the parser and wraps coregex.
package pattern

import "fmt"

// Position is a location in a pattern string.
type Position struct {
	Offset int // byte offset, 0-based
	Line   int // line number, 1-based
	Column int // character column, 1-based
}

// Span is a half-open range [Start, End) of a pattern string.
type Span struct {
	Start Position
	End   Position
}

// Len returns the span length in bytes.
func (s Span) Len() int {
	return s.End.Offset - s.Start.Offset
}

// IsEmpty reports whether the span covers no bytes.
func (s Span) IsEmpty() bool {
	return s.End.Offset <= s.Start.Offset
}

// Contains reports whether other lies within s.
func (s Span) Contains(other Span) bool {
	return s.Start.Offset <= other.Start.Offset && other.End.Offset <= s.End.Offset
}

func (s Span) String() string {
	return fmt.Sprintf("%d..%d", s.Start.Offset, s.End.Offset)
}

// Kind identifies the variant of a Node.
type Kind int

const (
	KindEmpty Kind = iota
	KindFlags
	KindLiteral
	KindDot
	KindAssertion
	KindClassUnicode
	KindClassPerl
	KindClassBracketed
	KindRepetition
	KindGroup
	KindAlternation
	KindConcat

	// NumKinds is the number of node kinds; tables indexed by Kind use it as length.
	NumKinds
)

func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindFlags:
		return "flags"
	case KindLiteral:
		return "literal"
	case KindDot:
		return "dot"
	case KindAssertion:
		return "assertion"
	case KindClassUnicode:
		return "class-unicode"
	case KindClassPerl:
		return "class-perl"
	case KindClassBracketed:
		return "class-bracketed"
	case KindRepetition:
		return "repetition"
	case KindGroup:
		return "group"
	case KindAlternation:
		return "alternation"
	case KindConcat:
		return "concat"
	default:
		return "unknown"
	}
}

// AssertionKind is the flavor of a zero-width assertion.
type AssertionKind int

const (
	AssertStartLine       AssertionKind = iota // ^
	AssertEndLine                              // $
	AssertStartText                            // \A
	AssertEndText                              // \z
	AssertWordBoundary                         // \b
	AssertNotWordBoundary                      // \B
)

// PerlClass is one of the \d, \s, \w shorthand classes.
type PerlClass int

const (
	PerlDigit PerlClass = iota
	PerlSpace
	PerlWord
)

// RepetitionOp is the operator of a repetition.
type RepetitionOp int

const (
	RepeatZeroOrOne  RepetitionOp = iota // ?
	RepeatZeroOrMore                     // *
	RepeatOneOrMore                      // +
	RepeatRange                          // {n}, {n,}, {n,m}
)

// GroupKind distinguishes capturing from non-capturing groups.
type GroupKind int

const (
	GroupCapture GroupKind = iota
	GroupNamed
	GroupNonCapturing
)

// Flag is a single item of a flag set: one of 'i', 'm', 's', 'U', or '-' for negation.
type Flag struct {
	Span Span
	Char rune
}

// FlagSet is the flags of a "(?flags)" or "(?flags:...)" construct.
type FlagSet struct {
	Span  Span
	Items []Flag
}

// Node is a syntax tree node. Kind selects which of the payload fields are
// meaningful; Sub holds ordered children for composite kinds.
type Node struct {
	Kind Kind
	Span Span
	Sub  []*Node

	// KindLiteral
	Rune    rune
	Escaped bool

	// KindAssertion
	Assertion AssertionKind

	// KindClassPerl, KindClassUnicode, KindClassBracketed
	Negated bool
	Perl    PerlClass
	Name    string // unicode class name, or capture name for GroupNamed

	// KindClassBracketed
	Class *ClassItem

	// KindRepetition
	Op       RepetitionOp
	OpSpan   Span
	Min, Max int // Max is -1 when unbounded
	Greedy   bool

	// KindGroup
	Group    GroupKind
	Index    int // capture index, 1-based
	NameSpan Span

	// KindFlags, and KindGroup with GroupNonCapturing
	Flags *FlagSet
}

// ItemKind identifies the variant of a ClassItem.
type ItemKind int

const (
	ItemEmpty ItemKind = iota
	ItemLiteral
	ItemRange
	ItemASCII
	ItemUnicode
	ItemPerl
	ItemBracketed
	ItemUnion

	// NumItemKinds is the number of class item kinds.
	NumItemKinds
)

func (k ItemKind) String() string {
	switch k {
	case ItemEmpty:
		return "empty"
	case ItemLiteral:
		return "literal"
	case ItemRange:
		return "range"
	case ItemASCII:
		return "ascii"
	case ItemUnicode:
		return "unicode"
	case ItemPerl:
		return "perl"
	case ItemBracketed:
		return "bracketed"
	case ItemUnion:
		return "union"
	default:
		return "unknown"
	}
}

// ClassItem is an element of a bracketed character class.
type ClassItem struct {
	Kind ItemKind
	Span Span

	// ItemLiteral uses Lo; ItemRange uses Lo and Hi.
	Lo, Hi rune

	// ItemASCII, ItemUnicode
	Name string
	// ItemASCII, ItemUnicode, ItemPerl, ItemBracketed
	Negated bool
	// ItemPerl
	Perl PerlClass

	// ItemBracketed
	Class *ClassItem
	// ItemUnion
	Items []*ClassItem
}

// AST is the result of a successful parse.
type AST struct {
	Pattern  string
	Root     *Node
	Captures int      // number of capture groups
	Names    []string // capture names indexed by capture index - 1 ("" when unnamed)
}
