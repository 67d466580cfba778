package highlight

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/regexlens/internal/pattern"
)

// Painter colors pattern text by the structure of its syntax tree.
type Painter struct {
	Table ColorTable
}

// NewPainter creates a painter using table.
func NewPainter(table ColorTable) *Painter {
	return &Painter{Table: table}
}

// Paint returns a style overlay with one entry per byte of tree.Pattern.
//
// Nodes are visited in pre-order and each one overwrites the foreground of
// every byte in its span, so a node's color wins over all of its ancestors'
// inside its own span. Class items are painted the same way, nested inside
// their bracketed class.
func (p *Painter) Paint(tree *pattern.AST) []lipgloss.Style {
	if tree == nil {
		return nil
	}
	overlay := make([]lipgloss.Style, len(tree.Pattern))
	pattern.Walk(tree.Root, &paintVisitor{overlay: overlay, table: &p.Table})
	return overlay
}

type paintVisitor struct {
	overlay []lipgloss.Style
	table   *ColorTable
}

func (v *paintVisitor) VisitNode(n *pattern.Node) {
	if int(n.Kind) < 0 || n.Kind >= pattern.NumKinds {
		return
	}
	v.paint(n.Span, v.table.Nodes[n.Kind])
}

func (v *paintVisitor) VisitClassItem(item *pattern.ClassItem) {
	if int(item.Kind) < 0 || item.Kind >= pattern.NumItemKinds {
		return
	}
	v.paint(item.Span, v.table.Items[item.Kind])
}

func (v *paintVisitor) paint(span pattern.Span, color lipgloss.TerminalColor) {
	if color == nil {
		return
	}
	start := max(span.Start.Offset, 0)
	end := min(span.End.Offset, len(v.overlay))
	for i := start; i < end; i++ {
		v.overlay[i] = v.overlay[i].Foreground(color)
	}
}
