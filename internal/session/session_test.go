package session

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/zjrosen/regexlens/internal/diagnostic"
	"github.com/zjrosen/regexlens/internal/highlight"
	"github.com/zjrosen/regexlens/internal/pattern"
)

func newSession() *Session {
	return New(pattern.Compiler{}, highlight.NewPainter(highlight.DefaultTable()))
}

func TestSession_UnclosedGroup(t *testing.T) {
	s := newSession()
	s.SetPattern("(")

	assert.Equal(t, StateParseInvalid, s.State())
	assert.Nil(t, s.Tree())
	assert.Nil(t, s.Matcher())
	require.Error(t, s.Err())

	for _, seg := range s.PatternSegments() {
		assert.Equal(t, lipgloss.NoColor{}, seg.Style.GetForeground(), "pattern is unstyled on parse failure")
	}

	d := s.Diagnostic(diagnostic.Point{})
	assert.Equal(t, diagnostic.KindSyntax, d.Kind)
	require.Len(t, d.Markers, 1)
	assert.Equal(t, diagnostic.Rect{X: 1, Y: 1, Width: 1, Height: 1}, d.Markers[0])

	for _, seg := range s.SubjectSegments("abc") {
		assert.Equal(t, lipgloss.NoColor{}, seg.Style.GetBackground(), "no matches without a matcher")
	}
	assert.Equal(t, "missing closing )", s.Status("abc"))
}

func TestSession_ValidPattern(t *testing.T) {
	s := newSession()
	bg := lipgloss.Color("1")
	s.SetMatchBackground(bg)
	s.SetPattern("a+")

	assert.Equal(t, StateValid, s.State())
	require.NoError(t, s.Err())
	require.NotNil(t, s.Tree())
	require.NotNil(t, s.Matcher())

	table := highlight.DefaultTable()
	segs := s.PatternSegments()
	require.Len(t, segs, 2)
	assert.Equal(t, table.Nodes[pattern.KindLiteral], segs[0].Style.GetForeground())
	assert.Equal(t, table.Nodes[pattern.KindRepetition], segs[1].Style.GetForeground())

	subject := s.SubjectSegments("aaab")
	require.Len(t, subject, 4)
	for i := 0; i < 3; i++ {
		assert.Equal(t, bg, subject[i].Style.GetBackground(), "offset %d", i)
	}
	assert.Equal(t, lipgloss.NoColor{}, subject[3].Style.GetBackground())

	assert.True(t, s.Diagnostic(diagnostic.Point{}).OK())
	assert.Equal(t, "1 match", s.Status("aaab"))
	assert.Equal(t, "2 matches", s.Status("aaba"))
}

func TestSession_Empty(t *testing.T) {
	s := newSession()
	assert.Equal(t, StateEmpty, s.State())
	assert.Empty(t, s.Pattern())
	assert.NoError(t, s.Err())
	assert.Empty(t, s.PatternSegments())
	assert.True(t, s.Diagnostic(diagnostic.Point{}).OK())
	assert.Empty(t, s.Status("abc"))
}

func TestSession_CompileInvalid(t *testing.T) {
	s := New(pattern.Compiler{SizeLimit: 5}, nil)
	s.SetPattern("a{50}")

	assert.Equal(t, StateCompileInvalid, s.State())
	assert.NotNil(t, s.Tree(), "tree survives a compile failure")
	assert.Nil(t, s.Matcher())

	d := s.Diagnostic(diagnostic.Point{})
	assert.Equal(t, diagnostic.KindTooBig, d.Kind)
	assert.Empty(t, d.Markers)
	assert.Equal(t, diagnostic.MessageTooBig, s.Status("aaa"))

	segs := s.PatternSegments()
	assert.NotEqual(t, lipgloss.NoColor{}, segs[0].Style.GetForeground(), "pattern still painted")
}

func TestSession_RecomputeReplacesState(t *testing.T) {
	s := newSession()
	s.SetPattern("a(")
	require.Equal(t, StateParseInvalid, s.State())

	s.SetPattern("a")
	assert.Equal(t, StateValid, s.State())
	assert.NoError(t, s.Err())
	assert.True(t, s.Diagnostic(diagnostic.Point{}).OK())

	s.SetPattern("")
	assert.Equal(t, StateEmpty, s.State())
}

func TestSession_Captures(t *testing.T) {
	s := newSession()
	s.SetPattern(`(?P<word>\w)(\d)?`)

	matches := s.Captures("a1b")
	require.Len(t, matches, 2)
	assert.Equal(t, "word", matches[0].Groups[1].Name)
	assert.Equal(t, "a", matches[0].Groups[1].Text("a1b"))
	assert.True(t, matches[0].Groups[2].Matched)
	assert.False(t, matches[1].Groups[2].Matched)

	dump := s.CapturesDump("a1b")
	assert.Contains(t, dump, "match 0")
	assert.Contains(t, dump, `1 <word>: [0,1) "a"`)
	assert.Contains(t, dump, "2: -")
}

func TestSession_CapturesWithoutMatcher(t *testing.T) {
	s := newSession()
	s.SetPattern("[")
	assert.Nil(t, s.Captures("abc"))
	assert.Empty(t, s.CapturesDump("abc"))
}

// A parse error hides matches even if a matcher was built for the pattern.
func TestSession_ParseErrorHidesLiveMatcher(t *testing.T) {
	s := newSession()
	s.SetPattern("(?P<n>a)")
	require.NotNil(t, s.Matcher())

	s.parseErr = &pattern.ParseError{Kind: pattern.ErrGroupNameDuplicate, Pattern: s.pattern}
	s.state = StateParseInvalid

	assert.Nil(t, s.Captures("aaa"))
	assert.Empty(t, s.CapturesDump("aaa"))
	for _, seg := range s.SubjectSegments("aaa") {
		assert.Equal(t, lipgloss.NoColor{}, seg.Style.GetBackground())
	}
	assert.Equal(t, "duplicate capture group name", s.Status("aaa"))
}

func TestSession_DuplicateNameIsParseInvalid(t *testing.T) {
	s := newSession()
	s.SetPattern("(?P<n>a)|(?P<n>b)")

	assert.Equal(t, StateParseInvalid, s.State())
	assert.Nil(t, s.Matcher())
	assert.Nil(t, s.Captures("ab"))
	require.Len(t, s.Diagnostic(diagnostic.Point{}).Markers, 2)
}

func TestSession_SetPainterRepaints(t *testing.T) {
	s := newSession()
	s.SetPattern("a")

	var table highlight.ColorTable
	table.Nodes[pattern.KindLiteral] = lipgloss.Color("#ff0000")
	s.SetPainter(highlight.NewPainter(table))

	assert.Equal(t, lipgloss.Color("#ff0000"), s.PatternSegments()[0].Style.GetForeground())
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "empty", StateEmpty.String())
	assert.Equal(t, "valid", StateValid.String())
	assert.Equal(t, "parse-invalid", StateParseInvalid.String())
	assert.Equal(t, "compile-invalid", StateCompileInvalid.String())
}

// Results depend only on the latest pattern, never on edit history.
func TestProperty_NoHistory(t *testing.T) {
	alphabet := []rune{'a', 'b', '(', ')', '[', ']', '*', '+', '?', '|', '\\', 'd', '{', '}', '1', ','}
	patternGen := rapid.Custom(func(t *rapid.T) string {
		runes := rapid.SliceOfN(rapid.SampledFrom(alphabet), 0, 12).Draw(t, "runes")
		return string(runes)
	})

	rapid.Check(t, func(t *rapid.T) {
		history := rapid.SliceOfN(patternGen, 0, 5).Draw(t, "history")
		final := patternGen.Draw(t, "final")

		edited := newSession()
		for _, p := range history {
			edited.SetPattern(p)
		}
		edited.SetPattern(final)

		fresh := newSession()
		fresh.SetPattern(final)

		if edited.State() != fresh.State() {
			t.Fatalf("state %v after history, %v fresh", edited.State(), fresh.State())
		}
		if edited.Status("ab(a)b") != fresh.Status("ab(a)b") {
			t.Fatalf("status differs for %q", final)
		}
		a, b := edited.Diagnostic(diagnostic.Point{}), fresh.Diagnostic(diagnostic.Point{})
		if a.Kind != b.Kind || a.Message != b.Message || len(a.Markers) != len(b.Markers) {
			t.Fatalf("diagnostic differs for %q", final)
		}
	})
}
