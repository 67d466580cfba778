// Package session owns the current pattern and everything derived from it.
//
// Every call to SetPattern discards the previous tree, matcher, error and
// overlay and recomputes them from scratch, so readers always observe results
// derived from a single pattern string.
package session

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/regexlens/internal/diagnostic"
	"github.com/zjrosen/regexlens/internal/highlight"
	"github.com/zjrosen/regexlens/internal/log"
	"github.com/zjrosen/regexlens/internal/pattern"
)

// State is the outcome of the latest recompute.
type State int

const (
	StateEmpty State = iota
	StateValid
	StateParseInvalid
	StateCompileInvalid
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateValid:
		return "valid"
	case StateParseInvalid:
		return "parse-invalid"
	case StateCompileInvalid:
		return "compile-invalid"
	default:
		return "unknown"
	}
}

// Session is the pattern façade used by the presentation layer.
type Session struct {
	compiler pattern.Compiler
	painter  *highlight.Painter
	matchBg  lipgloss.TerminalColor

	pattern    string
	state      State
	tree       *pattern.AST
	parseErr   error
	matcher    *pattern.Matcher
	compileErr error
	overlay    []lipgloss.Style
}

// New creates a session holding the empty pattern.
func New(compiler pattern.Compiler, painter *highlight.Painter) *Session {
	if painter == nil {
		painter = highlight.NewPainter(highlight.DefaultTable())
	}
	s := &Session{
		compiler: compiler,
		painter:  painter,
		matchBg:  lipgloss.Color("1"),
	}
	s.SetPattern("")
	return s
}

// SetMatchBackground sets the background used to mark matches in the subject.
func (s *Session) SetMatchBackground(c lipgloss.TerminalColor) {
	if c != nil {
		s.matchBg = c
	}
}

// SetPainter replaces the painter and repaints the current pattern.
func (s *Session) SetPainter(p *highlight.Painter) {
	if p == nil {
		return
	}
	s.painter = p
	s.SetPattern(s.pattern)
}

// SetPattern installs a new pattern and recomputes all derived state.
func (s *Session) SetPattern(text string) {
	start := time.Now()

	tree, parseErr := pattern.Parse(text)
	matcher, compileErr := s.compiler.Compile(text)

	s.pattern = text
	s.tree = tree
	s.parseErr = parseErr
	s.matcher = matcher
	s.compileErr = compileErr
	s.overlay = nil
	if parseErr == nil {
		s.overlay = s.painter.Paint(tree)
	}

	switch {
	case parseErr != nil:
		s.state = StateParseInvalid
	case compileErr != nil:
		s.state = StateCompileInvalid
	case text == "":
		s.state = StateEmpty
	default:
		s.state = StateValid
	}

	log.Debug(log.CatPattern, "recompute",
		"state", s.state,
		"len", len(text),
		"took", time.Since(start))
}

// Pattern returns the current pattern string.
func (s *Session) Pattern() string { return s.pattern }

// State returns the outcome of the latest recompute.
func (s *Session) State() State { return s.state }

// Tree returns the syntax tree, or nil if parsing failed.
func (s *Session) Tree() *pattern.AST { return s.tree }

// Matcher returns the compiled matcher, or nil if compiling failed.
//
// The matcher is kept even when parsing failed since the two are computed
// independently.
func (s *Session) Matcher() *pattern.Matcher { return s.matcher }

// Err returns the error to display. A parse error wins over a compile error.
func (s *Session) Err() error {
	if s.parseErr != nil {
		return s.parseErr
	}
	return s.compileErr
}

// PatternSegments returns the pattern text with its syntax colors. On a parse
// failure the text is returned unstyled.
func (s *Session) PatternSegments() []highlight.Segment {
	return highlight.Compose(s.pattern, s.overlay)
}

// SubjectSegments returns subject with every match marked. While the pattern
// is in error the subject is returned unstyled.
func (s *Session) SubjectSegments(subject string) []highlight.Segment {
	return highlight.Compose(subject, highlight.Matches(s.liveMatcher(), subject, s.matchBg))
}

// liveMatcher returns the matcher only when there is no error to display, so
// matches are never shown alongside a diagnostic.
func (s *Session) liveMatcher() *pattern.Matcher {
	if s.Err() != nil {
		return nil
	}
	return s.matcher
}

// Diagnostic locates the current error relative to origin.
func (s *Session) Diagnostic(origin diagnostic.Point) diagnostic.Diagnostic {
	return diagnostic.Locate(s.Err(), origin)
}

// Status returns a one-line summary: the error message, or the match count.
func (s *Session) Status(subject string) string {
	if err := s.Err(); err != nil {
		return diagnostic.Locate(err, diagnostic.Point{}).Message
	}
	if s.state == StateEmpty || s.matcher == nil {
		return ""
	}
	n := len(s.matcher.Locations(subject))
	if n == 1 {
		return "1 match"
	}
	return fmt.Sprintf("%d matches", n)
}

// Captures returns every match of the current matcher in subject, or nil while
// the pattern is in error.
func (s *Session) Captures(subject string) []pattern.Match {
	m := s.liveMatcher()
	if m == nil {
		return nil
	}
	return m.FindAll(subject)
}

// CapturesDump formats the captures of every match, one group per line.
func (s *Session) CapturesDump(subject string) string {
	matches := s.Captures(subject)
	if len(matches) == 0 {
		return ""
	}
	var sb strings.Builder
	for i, m := range matches {
		if i > 0 {
			sb.WriteByte('\n')
		}
		fmt.Fprintf(&sb, "match %d", i)
		for _, g := range m.Groups {
			sb.WriteByte('\n')
			sb.WriteString(formatGroup(g, subject))
		}
	}
	return sb.String()
}

func formatGroup(g pattern.Group, subject string) string {
	label := fmt.Sprintf("  %d", g.Index)
	if g.Name != "" {
		label += " <" + g.Name + ">"
	}
	if !g.Matched {
		return label + ": -"
	}
	return fmt.Sprintf("%s: [%d,%d) %q", label, g.Start, g.End, g.Text(subject))
}

