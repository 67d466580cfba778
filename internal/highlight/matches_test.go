package highlight

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/regexlens/internal/pattern"
)

func TestMatches_MarksEachOccurrence(t *testing.T) {
	m, err := pattern.Compiler{}.Compile("X")
	require.NoError(t, err)

	bg := lipgloss.Color("1")
	overlay := Matches(m, "aXbXc", bg)
	require.Len(t, overlay, 5)

	for i, s := range overlay {
		if i == 1 || i == 3 {
			assert.Equal(t, bg, s.GetBackground(), "offset %d", i)
		} else {
			assert.Equal(t, lipgloss.NoColor{}, s.GetBackground(), "offset %d", i)
		}
	}
}

func TestMatches_WholeMatchOnly(t *testing.T) {
	m, err := pattern.Compiler{}.Compile("a+")
	require.NoError(t, err)

	bg := lipgloss.Color("1")
	overlay := Matches(m, "aaab", bg)
	for i := 0; i < 3; i++ {
		assert.Equal(t, bg, overlay[i].GetBackground())
	}
	assert.Equal(t, lipgloss.NoColor{}, overlay[3].GetBackground())
	assert.Equal(t, lipgloss.NoColor{}, overlay[0].GetForeground(), "background only")
}

func TestMatches_NilMatcher(t *testing.T) {
	assert.Nil(t, Matches(nil, "abc", lipgloss.Color("1")))
}
