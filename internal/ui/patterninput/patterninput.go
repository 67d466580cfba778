// Package patterninput provides a single-line text input that renders
// pre-highlighted segments and scrolls horizontally to keep the cursor visible.
package patterninput

import (
	"iter"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"

	"github.com/zjrosen/regexlens/internal/highlight"
	"github.com/zjrosen/regexlens/internal/ui/styles"
)

// Response reports what an Update changed.
type Response struct {
	Value  bool // the text was edited
	Cursor bool // the cursor moved
}

// Model is a single-line text input. It does not highlight on its own; the
// owner supplies styled segments for the current value through SetSegments.
type Model struct {
	value       string
	cursor      int // byte offset, always on a grapheme boundary
	scroll      int // first visible display column
	focused     bool
	width       int
	placeholder string
	segments    []highlight.Segment
}

// New creates a new pattern input model.
func New() Model {
	return Model{width: 40}
}

// Value returns the current text value.
func (m Model) Value() string {
	return m.value
}

// SetValue sets the text value and clamps cursor.
func (m *Model) SetValue(v string) {
	m.value = v
	m.segments = nil
	m.SetCursor(m.cursor)
}

// Cursor returns the cursor's byte offset into Value.
func (m Model) Cursor() int {
	return m.cursor
}

// SetCursor sets the cursor position, clamped to the value and moved back to
// the nearest grapheme boundary.
func (m *Model) SetCursor(pos int) {
	pos = max(0, min(pos, len(m.value)))
	boundary := 0
	for b := range graphemeBoundaries(m.value) {
		if b > pos {
			break
		}
		boundary = b
	}
	m.cursor = boundary
	m.keepCursorVisible()
}

// VisualCursor returns the display column of the cursor within the value.
func (m Model) VisualCursor() int {
	return runewidth.StringWidth(m.value[:m.cursor])
}

// ScrollOffset returns the first visible display column.
func (m Model) ScrollOffset() int {
	return m.scroll
}

// Focused returns whether the input is focused.
func (m Model) Focused() bool {
	return m.focused
}

// Focus focuses the input.
func (m *Model) Focus() {
	m.focused = true
}

// Blur removes focus from the input.
func (m *Model) Blur() {
	m.focused = false
}

// SetWidth sets the display width.
func (m *Model) SetWidth(w int) {
	m.width = max(w, 1)
	m.keepCursorVisible()
}

// Width returns the display width.
func (m Model) Width() int {
	return m.width
}

// SetPlaceholder sets the placeholder text.
func (m *Model) SetPlaceholder(p string) {
	m.placeholder = p
}

// SetSegments installs the styled form of the current value. Segments that
// do not spell out the value are ignored and the value is drawn unstyled.
func (m *Model) SetSegments(segs []highlight.Segment) {
	m.segments = segs
}

// Update handles key and paste messages.
func (m Model) Update(msg tea.Msg) (Model, Response) {
	if !m.focused {
		return m, Response{}
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, Response{}
	}

	oldValue, oldCursor := m.value, m.cursor

	switch keyMsg.Type {
	case tea.KeyLeft:
		if keyMsg.Alt {
			m.cursor = prevWordStart(m.value, m.cursor)
		} else {
			m.cursor = prevBoundary(m.value, m.cursor)
		}
	case tea.KeyRight:
		if keyMsg.Alt {
			m.cursor = nextWordEnd(m.value, m.cursor)
		} else {
			m.cursor = nextBoundary(m.value, m.cursor)
		}
	case tea.KeyCtrlF:
		m.cursor = nextWordEnd(m.value, m.cursor)
	case tea.KeyCtrlB:
		m.cursor = prevWordStart(m.value, m.cursor)
	case tea.KeyHome, tea.KeyCtrlA:
		m.cursor = 0
	case tea.KeyEnd, tea.KeyCtrlE:
		m.cursor = len(m.value)
	case tea.KeyBackspace:
		prev := prevBoundary(m.value, m.cursor)
		m.value = m.value[:prev] + m.value[m.cursor:]
		m.cursor = prev
	case tea.KeyDelete:
		next := nextBoundary(m.value, m.cursor)
		m.value = m.value[:m.cursor] + m.value[next:]
	case tea.KeyCtrlW:
		prev := prevWordStart(m.value, m.cursor)
		m.value = m.value[:prev] + m.value[m.cursor:]
		m.cursor = prev
	case tea.KeyCtrlK:
		m.value = m.value[:m.cursor]
	case tea.KeyCtrlU:
		m.value = m.value[m.cursor:]
		m.cursor = 0
	case tea.KeyRunes:
		// Alt+f/b is what macOS sends for option+arrow
		if keyMsg.Alt && !keyMsg.Paste && len(keyMsg.Runes) == 1 {
			switch keyMsg.Runes[0] {
			case 'f':
				m.cursor = nextWordEnd(m.value, m.cursor)
				return m.respond(oldValue, oldCursor)
			case 'b':
				m.cursor = prevWordStart(m.value, m.cursor)
				return m.respond(oldValue, oldCursor)
			}
		}
		m.insert(singleLine(keyMsg.Runes))
	case tea.KeySpace:
		m.insert(" ")
	}

	return m.respond(oldValue, oldCursor)
}

func (m Model) respond(oldValue string, oldCursor int) (Model, Response) {
	m.SetCursor(m.cursor)
	resp := Response{Value: m.value != oldValue, Cursor: m.cursor != oldCursor}
	if resp.Value {
		m.segments = nil
	}
	return m, resp
}

func (m *Model) insert(s string) {
	m.value = m.value[:m.cursor] + s + m.value[m.cursor:]
	m.cursor += len(s)
}

// singleLine drops line breaks from typed or pasted text.
func singleLine(runes []rune) string {
	var sb strings.Builder
	for _, r := range runes {
		if r == '\n' || r == '\r' {
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

func (m *Model) keepCursorVisible() {
	col := m.VisualCursor()
	if col < m.scroll {
		m.scroll = col
	}
	// The cursor cell itself needs a column
	if col >= m.scroll+m.width {
		m.scroll = col - m.width + 1
	}
	m.scroll = max(m.scroll, 0)
}

// View renders the visible window of the input.
func (m Model) View() string {
	if m.value == "" {
		if m.focused {
			return lipgloss.NewStyle().Reverse(true).Render(" ")
		}
		if m.placeholder != "" {
			return styles.MutedStyle.Render(styles.TruncateString(m.placeholder, m.width))
		}
		return ""
	}

	segs := m.segments
	if !spells(segs, m.value) {
		segs = highlight.Compose(m.value, nil)
	}
	if m.focused {
		segs = withCursor(segs, m.cursor)
	}

	line := highlight.Render(segs)
	if m.scroll > 0 || ansi.StringWidth(line) > m.width {
		line = ansi.Cut(line, m.scroll, m.scroll+m.width)
	}
	return line
}

// withCursor returns a copy of segs with the character at offset drawn in
// reverse video, or a reversed blank appended when offset is at the end.
func withCursor(segs []highlight.Segment, offset int) []highlight.Segment {
	out := make([]highlight.Segment, len(segs), len(segs)+1)
	copy(out, segs)
	for i := range out {
		if out[i].Offset == offset {
			out[i].Style = out[i].Style.Reverse(true)
			return out
		}
	}
	return append(out, highlight.Segment{Rune: ' ', Offset: offset, Style: lipgloss.NewStyle().Reverse(true)})
}

func spells(segs []highlight.Segment, s string) bool {
	if len(segs) == 0 {
		return false
	}
	i := 0
	for _, seg := range segs {
		if seg.Offset != i || !strings.HasPrefix(s[i:], string(seg.Rune)) {
			return false
		}
		i += len(string(seg.Rune))
	}
	return i == len(s)
}

// graphemeBoundaries yields every grapheme cluster boundary of s, 0 and
// len(s) included.
func graphemeBoundaries(s string) iter.Seq[int] {
	return func(yield func(int) bool) {
		if !yield(0) {
			return
		}
		pos := 0
		state := -1
		rest := s
		for len(rest) > 0 {
			var cluster string
			cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
			pos += len(cluster)
			if !yield(pos) {
				return
			}
		}
	}
}

func prevBoundary(s string, pos int) int {
	prev := 0
	for b := range graphemeBoundaries(s) {
		if b >= pos {
			break
		}
		prev = b
	}
	return prev
}

func nextBoundary(s string, pos int) int {
	for b := range graphemeBoundaries(s) {
		if b > pos {
			return b
		}
	}
	return len(s)
}

// nextWordEnd finds the position after the next word from pos.
// Skips non-word characters first, then skips word characters.
func nextWordEnd(s string, pos int) int {
	n := len(s)
	for pos < n && !isWordChar(s[pos]) {
		pos++
	}
	for pos < n && isWordChar(s[pos]) {
		pos++
	}
	return pos
}

// prevWordStart finds the position at the start of the previous word from pos.
// Skips non-word characters backward first, then skips word characters backward.
func prevWordStart(s string, pos int) int {
	for pos > 0 && !isWordChar(s[pos-1]) {
		pos--
	}
	for pos > 0 && isWordChar(s[pos-1]) {
		pos--
	}
	return pos
}

// isWordChar returns true if c is a word character (alphanumeric or underscore).
func isWordChar(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '_'
}
