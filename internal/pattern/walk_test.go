package pattern

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWalk_PreOrder(t *testing.T) {
	ast, err := Parse(`(a|[x-z\d])+`)
	require.NoError(t, err)

	var visited []string
	Walk(ast.Root, VisitorFuncs{
		Node: func(n *Node) { visited = append(visited, n.Kind.String()) },
		Item: func(item *ClassItem) { visited = append(visited, "item:"+item.Kind.String()) },
	})

	assert.Equal(t, []string{
		"repetition",
		"group",
		"alternation",
		"literal",
		"class-bracketed",
		"item:union",
		"item:range",
		"item:perl",
	}, visited)
}

func TestWalk_Nil(t *testing.T) {
	calls := 0
	Walk(nil, VisitorFuncs{Node: func(*Node) { calls++ }})
	assert.Zero(t, calls)
}

func TestWalk_DeepNesting(t *testing.T) {
	depth := DefaultNestLimit
	ast, err := Parse(strings.Repeat("(", depth) + "a" + strings.Repeat(")", depth))
	require.NoError(t, err)

	groups := 0
	Walk(ast.Root, VisitorFuncs{Node: func(n *Node) {
		if n.Kind == KindGroup {
			groups++
		}
	}})
	assert.Equal(t, depth, groups)
}
