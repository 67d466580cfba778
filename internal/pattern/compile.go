package pattern

import (
	"errors"
	"fmt"
	"regexp/syntax"
	"strings"

	"github.com/coregx/coregex"
	"github.com/coregx/coregex/nfa"
)

const (
	// DefaultSizeLimit is the default ceiling on compiled program instructions.
	DefaultSizeLimit = 100_000
	// DefaultMaxRecursionDepth is the default NFA compilation recursion limit.
	DefaultMaxRecursionDepth = 100
)

// CompileErrorKind classifies a compile error.
type CompileErrorKind int

const (
	CompileSyntax CompileErrorKind = iota
	CompileTooBig
	CompileOther
)

func (k CompileErrorKind) String() string {
	switch k {
	case CompileSyntax:
		return "syntax"
	case CompileTooBig:
		return "too big"
	default:
		return "other"
	}
}

// CompileError is a failure to build a Matcher. Syntax is set for
// CompileSyntax and carries the located offending construct.
type CompileError struct {
	Kind   CompileErrorKind
	Syntax *ParseError
	Err    error
}

func (e *CompileError) Error() string {
	switch e.Kind {
	case CompileSyntax:
		if e.Syntax != nil {
			return "compile: " + e.Syntax.Error()
		}
	case CompileTooBig:
		return fmt.Sprintf("compile: pattern too large: %v", e.Err)
	}
	return fmt.Sprintf("compile: %v", e.Err)
}

func (e *CompileError) Unwrap() error {
	return e.Err
}

// Compiler builds Matchers under a resource ceiling. The zero value uses the
// package defaults.
type Compiler struct {
	// SizeLimit is the maximum number of instructions of the compiled program.
	SizeLimit int
	// MaxRecursionDepth bounds recursion in the matcher's NFA compiler (10-1000).
	MaxRecursionDepth int
}

// Compile compiles s independently of Parse. The returned error, if any, is
// a *CompileError.
func (c Compiler) Compile(s string) (*Matcher, error) {
	re, err := syntax.Parse(s, syntax.Perl)
	if err != nil {
		return nil, classify(s, err)
	}
	if pe := duplicateName(s, re.CapNames()); pe != nil {
		return nil, &CompileError{Kind: CompileSyntax, Syntax: pe, Err: pe}
	}
	prog, err := syntax.Compile(re.Simplify())
	if err != nil {
		return nil, classify(s, err)
	}
	if limit := c.sizeLimit(); len(prog.Inst) > limit {
		return nil, &CompileError{
			Kind: CompileTooBig,
			Err:  fmt.Errorf("program has %d instructions, limit is %d", len(prog.Inst), limit),
		}
	}

	cfg := coregex.DefaultConfig()
	if c.MaxRecursionDepth > 0 {
		cfg.MaxRecursionDepth = c.MaxRecursionDepth
	}
	rx, err := coregex.CompileWithConfig(s, cfg)
	if err != nil {
		return nil, classify(s, err)
	}
	return &Matcher{re: rx, names: rx.SubexpNames()}, nil
}

func (c Compiler) sizeLimit() int {
	if c.SizeLimit > 0 {
		return c.SizeLimit
	}
	return DefaultSizeLimit
}

func classify(pattern string, err error) *CompileError {
	if errors.Is(err, nfa.ErrTooComplex) {
		return &CompileError{Kind: CompileTooBig, Err: err}
	}
	var se *syntax.Error
	if errors.As(err, &se) {
		if se.Code == syntax.ErrLarge {
			return &CompileError{Kind: CompileTooBig, Err: err}
		}
		return &CompileError{Kind: CompileSyntax, Syntax: locateSyntax(pattern, se), Err: err}
	}
	return &CompileError{Kind: CompileOther, Err: err}
}

// duplicateName reports the second use of a capture name in names, which
// regexp/syntax accepts but Parse does not. The span is the repeated name and
// the auxiliary span its first use.
func duplicateName(pattern string, names []string) *ParseError {
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if name == "" {
			continue
		}
		if !seen[name] {
			seen[name] = true
			continue
		}
		pe := &ParseError{
			Kind:    ErrGroupNameDuplicate,
			Span:    SpanOf(pattern, 0, len(pattern)),
			Pattern: pattern,
		}
		if offs := namedGroupOffsets(pattern, name); len(offs) >= 2 {
			pe.Span = SpanOf(pattern, offs[1], offs[1]+len(name))
			first := SpanOf(pattern, offs[0], offs[0]+len(name))
			pe.Auxiliary = &first
		}
		return pe
	}
	return nil
}

// namedGroupOffsets returns the offsets of name in each "(?P<name>" or
// "(?<name>" opener of pattern.
func namedGroupOffsets(pattern, name string) []int {
	needle := "<" + name + ">"
	var offs []int
	for i := 0; i < len(pattern); {
		j := strings.Index(pattern[i:], needle)
		if j < 0 {
			break
		}
		j += i
		if before := pattern[:j]; strings.HasSuffix(before, "(?") || strings.HasSuffix(before, "(?P") {
			offs = append(offs, j+1)
		}
		i = j + 1
	}
	return offs
}

// locateSyntax turns a regexp/syntax error into a ParseError whose span is the
// first occurrence of the offending text, or the whole pattern if not found.
func locateSyntax(pattern string, se *syntax.Error) *ParseError {
	start, end := 0, len(pattern)
	if se.Expr != "" {
		if i := strings.Index(pattern, se.Expr); i >= 0 {
			start, end = i, i+len(se.Expr)
		}
	}
	return &ParseError{
		Kind:    syntaxKind(se.Code),
		Span:    SpanOf(pattern, start, end),
		Pattern: pattern,
	}
}

func syntaxKind(code syntax.ErrorCode) ErrorKind {
	switch code {
	case syntax.ErrInvalidCharClass:
		return ErrClassNameUnknown
	case syntax.ErrInvalidCharRange:
		return ErrClassRangeInvalid
	case syntax.ErrInvalidEscape:
		return ErrEscapeInvalid
	case syntax.ErrInvalidNamedCapture:
		return ErrGroupNameInvalid
	case syntax.ErrInvalidRepeatOp:
		return ErrRepetitionNested
	case syntax.ErrInvalidRepeatSize:
		return ErrRepetitionCountInvalid
	case syntax.ErrInvalidUTF8:
		return ErrInvalidUTF8
	case syntax.ErrMissingBracket:
		return ErrClassUnclosed
	case syntax.ErrMissingParen:
		return ErrGroupUnclosed
	case syntax.ErrMissingRepeatArgument:
		return ErrRepetitionMissing
	case syntax.ErrTrailingBackslash:
		return ErrTrailingBackslash
	case syntax.ErrUnexpectedParen:
		return ErrGroupUnopened
	case syntax.ErrNestingDepth:
		return ErrNestLimitExceeded
	default:
		return ErrUnsupported
	}
}

// Matcher is a compiled pattern.
type Matcher struct {
	re    *coregex.Regex
	names []string
}

// String returns the source pattern.
func (m *Matcher) String() string {
	return m.re.String()
}

// NumGroups returns the number of groups including group 0.
func (m *Matcher) NumGroups() int {
	return m.re.NumSubexp() + 1
}

// Locations returns the group-0 span of every non-overlapping match in subject.
func (m *Matcher) Locations(subject string) [][2]int {
	idx := m.re.FindAllStringIndex(subject, -1)
	locs := make([][2]int, 0, len(idx))
	for _, loc := range idx {
		locs = append(locs, [2]int{loc[0], loc[1]})
	}
	return locs
}

// FindAll returns the capture groups of every non-overlapping match in subject.
func (m *Matcher) FindAll(subject string) []Match {
	all := m.re.FindAllStringSubmatchIndex(subject, -1)
	matches := make([]Match, 0, len(all))
	for _, idx := range all {
		groups := make([]Group, 0, len(idx)/2)
		for i := 0; 2*i+1 < len(idx); i++ {
			g := Group{Index: i, Start: idx[2*i], End: idx[2*i+1]}
			if i < len(m.names) {
				g.Name = m.names[i]
			}
			g.Matched = g.Start >= 0 && g.End >= g.Start
			groups = append(groups, g)
		}
		matches = append(matches, Match{Groups: groups})
	}
	return matches
}

// Match is one match occurrence. Groups[0] is the whole match.
type Match struct {
	Groups []Group
}

// Span returns the byte range of the whole match.
func (m Match) Span() (start, end int) {
	if len(m.Groups) == 0 {
		return 0, 0
	}
	return m.Groups[0].Start, m.Groups[0].End
}

// Group is one capture group of a match. Start and End are -1 when the group
// did not participate.
type Group struct {
	Index   int
	Name    string
	Start   int
	End     int
	Matched bool
}

// Text returns the group's text in subject, or "" if it did not participate.
func (g Group) Text(subject string) string {
	if !g.Matched || g.End > len(subject) {
		return ""
	}
	return subject[g.Start:g.End]
}
