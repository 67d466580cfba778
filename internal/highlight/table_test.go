package highlight

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/regexlens/internal/pattern"
	"github.com/zjrosen/regexlens/internal/ui/styles"
)

func TestTableFromTheme_FollowsOverrides(t *testing.T) {
	t.Cleanup(func() { _ = styles.ApplyTheme(styles.ThemeConfig{}) })

	require.NoError(t, styles.ApplyTheme(styles.ThemeConfig{
		Colors: map[string]string{"pattern.group": "#ABCDEF"},
	}))
	table := TableFromTheme()

	assert.Equal(t, lipgloss.AdaptiveColor{Light: "#ABCDEF", Dark: "#ABCDEF"}, table.Nodes[pattern.KindGroup])
	assert.Nil(t, table.Nodes[pattern.KindConcat], "concatenations pass through")
	assert.Nil(t, table.Items[pattern.ItemUnion])
}

func TestTableFromTheme_DefaultMatchesDefaultTable(t *testing.T) {
	t.Cleanup(func() { _ = styles.ApplyTheme(styles.ThemeConfig{}) })
	require.NoError(t, styles.ApplyTheme(styles.ThemeConfig{}))

	themed := TableFromTheme()
	builtin := DefaultTable()
	for k := range pattern.NumKinds {
		if builtin.Nodes[k] == nil {
			assert.Nil(t, themed.Nodes[k], "kind %v", k)
			continue
		}
		ac, ok := themed.Nodes[k].(lipgloss.AdaptiveColor)
		require.True(t, ok, "kind %v", k)
		assert.Equal(t, string(builtin.Nodes[k].(lipgloss.Color)), ac.Dark, "kind %v", k)
	}
}
