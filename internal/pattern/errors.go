package pattern

import "fmt"

// ErrorKind classifies a parse error.
type ErrorKind int

const (
	ErrTrailingBackslash ErrorKind = iota
	ErrEscapeInvalid
	ErrClassUnclosed
	ErrClassRangeInvalid
	ErrClassNameUnknown
	ErrGroupUnclosed
	ErrGroupUnopened
	ErrGroupNameInvalid
	ErrGroupNameDuplicate
	ErrRepetitionMissing
	ErrRepetitionNested
	ErrRepetitionCountInvalid
	ErrFlagUnrecognized
	ErrFlagRepeatedNegation
	ErrFlagDanglingNegation
	ErrFlagUnexpectedEOF
	ErrUnsupported
	ErrNestLimitExceeded
	ErrInvalidUTF8
)

// String returns the user-facing message for the error kind.
func (k ErrorKind) String() string {
	switch k {
	case ErrTrailingBackslash:
		return "trailing backslash at end of expression"
	case ErrEscapeInvalid:
		return "invalid escape sequence"
	case ErrClassUnclosed:
		return "missing closing ]"
	case ErrClassRangeInvalid:
		return "invalid character class range"
	case ErrClassNameUnknown:
		return "unknown character class name"
	case ErrGroupUnclosed:
		return "missing closing )"
	case ErrGroupUnopened:
		return "unexpected )"
	case ErrGroupNameInvalid:
		return "invalid named capture"
	case ErrGroupNameDuplicate:
		return "duplicate capture group name"
	case ErrRepetitionMissing:
		return "missing argument to repetition operator"
	case ErrRepetitionNested:
		return "invalid nested repetition operator"
	case ErrRepetitionCountInvalid:
		return "invalid repeat count"
	case ErrFlagUnrecognized:
		return "unrecognized flag"
	case ErrFlagRepeatedNegation:
		return "flag negation repeated"
	case ErrFlagDanglingNegation:
		return "flag negation without any flag"
	case ErrFlagUnexpectedEOF:
		return "expected flag but got end of pattern"
	case ErrUnsupported:
		return "invalid or unsupported Perl syntax"
	case ErrNestLimitExceeded:
		return "expression nests too deeply"
	case ErrInvalidUTF8:
		return "invalid UTF-8"
	default:
		return "unknown parse error"
	}
}

// ParseError is a parse failure with the span of the offending construct and,
// for some kinds, the span of a related earlier construct.
type ParseError struct {
	Kind      ErrorKind
	Span      Span
	Auxiliary *Span
	Pattern   string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("regex parse error at %d:%d: %s: `%s`",
		e.Span.Start.Line, e.Span.Start.Column, e.Kind, e.Snippet())
}

// Snippet returns the pattern text under the primary span.
func (e *ParseError) Snippet() string {
	start, end := e.Span.Start.Offset, e.Span.End.Offset
	if start < 0 || end > len(e.Pattern) || start > end {
		return ""
	}
	return e.Pattern[start:end]
}

// PositionAt converts a byte offset of s into a Position. Offsets past the end
// of s are clamped to len(s).
func PositionAt(s string, offset int) Position {
	offset = max(0, min(offset, len(s)))
	pos := advance(s, Position{Line: 1, Column: 1}, offset)
	pos.Offset = offset
	return pos
}

// SpanOf returns the Span of the byte range [start, end) of s.
func SpanOf(s string, start, end int) Span {
	return Span{Start: PositionAt(s, start), End: PositionAt(s, end)}
}
