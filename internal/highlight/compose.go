package highlight

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
)

// Segment is one character of a composed string with its style.
type Segment struct {
	Rune   rune
	Offset int // byte offset of the character's first byte
	Style  lipgloss.Style
}

// Compose pairs every character of s with the overlay entry at its first
// byte. Bytes past the end of overlay get the zero style.
func Compose(s string, overlay []lipgloss.Style) []Segment {
	segs := make([]Segment, 0, utf8.RuneCountInString(s))
	for i, r := range s {
		var style lipgloss.Style
		if i < len(overlay) {
			style = overlay[i]
		}
		segs = append(segs, Segment{Rune: r, Offset: i, Style: style})
	}
	return segs
}

// Lines splits segments at newlines. The newline characters are dropped; a
// trailing newline yields a final empty line.
func Lines(segs []Segment) [][]Segment {
	lines := [][]Segment{nil}
	for _, seg := range segs {
		if seg.Rune == '\n' {
			lines = append(lines, nil)
			continue
		}
		lines[len(lines)-1] = append(lines[len(lines)-1], seg)
	}
	return lines
}

// Render renders a run of segments, coalescing neighbors that share colors
// and reverse video.
func Render(segs []Segment) string {
	var sb strings.Builder
	var run strings.Builder
	for i, seg := range segs {
		if i > 0 && !sameColors(segs[i-1].Style, seg.Style) {
			sb.WriteString(segs[i-1].Style.Render(run.String()))
			run.Reset()
		}
		run.WriteRune(seg.Rune)
	}
	if run.Len() > 0 {
		sb.WriteString(segs[len(segs)-1].Style.Render(run.String()))
	}
	return sb.String()
}

// RenderLines composes s with overlay and renders it line by line.
func RenderLines(s string, overlay []lipgloss.Style) []string {
	lines := Lines(Compose(s, overlay))
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = Render(line)
	}
	return out
}

func sameColors(a, b lipgloss.Style) bool {
	return a.GetForeground() == b.GetForeground() &&
		a.GetBackground() == b.GetBackground() &&
		a.GetReverse() == b.GetReverse()
}
