package highlight

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/regexlens/internal/pattern"
)

// Matches returns a style overlay for subject in which every byte inside the
// whole-match span of a match of m has background bg. It returns nil when m
// is nil.
func Matches(m *pattern.Matcher, subject string, bg lipgloss.TerminalColor) []lipgloss.Style {
	if m == nil {
		return nil
	}
	overlay := make([]lipgloss.Style, len(subject))
	for _, loc := range m.Locations(subject) {
		for i := max(loc[0], 0); i < min(loc[1], len(overlay)); i++ {
			overlay[i] = overlay[i].Background(bg)
		}
	}
	return overlay
}
