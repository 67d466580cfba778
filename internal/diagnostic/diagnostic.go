// Package diagnostic maps pattern errors to messages and marker rectangles
// positioned under the rendered pattern input.
package diagnostic

import (
	"errors"

	"github.com/mattn/go-runewidth"

	"github.com/zjrosen/regexlens/internal/pattern"
)

// Point is a screen coordinate.
type Point struct {
	X, Y int
}

// Rect is a screen rectangle.
type Rect struct {
	X, Y          int
	Width, Height int
}

// Kind classifies a diagnostic for display.
type Kind int

const (
	KindNone Kind = iota
	KindSyntax
	KindTooBig
	KindOther
)

const (
	// MessageTooBig is shown when the compiled pattern exceeds the size ceiling.
	MessageTooBig = "pattern too large"
	// MessageUnknown is shown for failures with no finer classification.
	MessageUnknown = "unknown error occurred"
)

// Diagnostic is the display form of a pattern error.
type Diagnostic struct {
	Kind    Kind
	Message string
	// Spans are the error spans in pattern coordinates, primary first.
	Spans []pattern.Span
	// Markers are the rectangles under Spans, one per span.
	Markers []Rect
}

// OK reports whether there is nothing to show.
func (d Diagnostic) OK() bool {
	return d.Kind == KindNone
}

// Locate builds the diagnostic for err. origin is the position of the input
// field such that column 1 of the pattern is drawn at origin.X+1 on row
// origin.Y; markers go on the row below.
//
// Size-limit failures carry no markers since the offending construct may
// span the whole pattern.
func Locate(err error, origin Point) Diagnostic {
	if err == nil {
		return Diagnostic{}
	}

	var perr *pattern.ParseError
	if errors.As(err, &perr) {
		return syntaxDiagnostic(perr, origin)
	}

	var cerr *pattern.CompileError
	if errors.As(err, &cerr) {
		switch cerr.Kind {
		case pattern.CompileSyntax:
			if cerr.Syntax != nil {
				return syntaxDiagnostic(cerr.Syntax, origin)
			}
		case pattern.CompileTooBig:
			return Diagnostic{Kind: KindTooBig, Message: MessageTooBig}
		}
	}
	return Diagnostic{Kind: KindOther, Message: MessageUnknown}
}

func syntaxDiagnostic(perr *pattern.ParseError, origin Point) Diagnostic {
	d := Diagnostic{Kind: KindSyntax, Message: perr.Kind.String()}
	d.Spans = append(d.Spans, perr.Span)
	if perr.Auxiliary != nil {
		d.Spans = append(d.Spans, *perr.Auxiliary)
	}
	for _, span := range d.Spans {
		d.Markers = append(d.Markers, Marker(span, origin))
	}
	return d
}

// Marker returns the one-row rectangle under span, at least one column wide.
func Marker(span pattern.Span, origin Point) Rect {
	return Rect{
		X:      origin.X + span.Start.Column,
		Y:      origin.Y + 1,
		Width:  max(1, span.End.Column-span.Start.Column),
		Height: 1,
	}
}

// CellMarker is like Marker but measures in terminal cells, so characters
// that render two cells wide in text widen and shift the rectangle.
func CellMarker(text string, span pattern.Span, origin Point) Rect {
	start := max(0, min(span.Start.Offset, len(text)))
	end := max(start, min(span.End.Offset, len(text)))
	return Rect{
		X:      origin.X + 1 + runewidth.StringWidth(text[:start]),
		Y:      origin.Y + 1,
		Width:  max(1, runewidth.StringWidth(text[start:end])),
		Height: 1,
	}
}
