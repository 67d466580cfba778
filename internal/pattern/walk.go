package pattern

// Visitor receives the nodes and class items of a tree in pre-order.
type Visitor interface {
	VisitNode(n *Node)
	VisitClassItem(item *ClassItem)
}

// Walk visits root and its descendants in pre-order: a node before its
// children, children left to right. The class of a bracketed class is visited
// right after the class node. Walk uses an explicit stack, so deeply nested
// trees do not grow the goroutine stack.
func Walk(root *Node, v Visitor) {
	if root == nil {
		return
	}
	type frame struct {
		node *Node
		item *ClassItem
	}
	stack := []frame{{node: root}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if f.item != nil {
			v.VisitClassItem(f.item)
			switch f.item.Kind {
			case ItemBracketed:
				if f.item.Class != nil {
					stack = append(stack, frame{item: f.item.Class})
				}
			case ItemUnion:
				for i := len(f.item.Items) - 1; i >= 0; i-- {
					stack = append(stack, frame{item: f.item.Items[i]})
				}
			}
			continue
		}

		v.VisitNode(f.node)
		if f.node.Kind == KindClassBracketed && f.node.Class != nil {
			stack = append(stack, frame{item: f.node.Class})
		}
		for i := len(f.node.Sub) - 1; i >= 0; i-- {
			stack = append(stack, frame{node: f.node.Sub[i]})
		}
	}
}

// VisitorFuncs adapts plain functions to a Visitor; nil fields are skipped.
type VisitorFuncs struct {
	Node func(*Node)
	Item func(*ClassItem)
}

func (f VisitorFuncs) VisitNode(n *Node) {
	if f.Node != nil {
		f.Node(n)
	}
}

func (f VisitorFuncs) VisitClassItem(item *ClassItem) {
	if f.Item != nil {
		f.Item(item)
	}
}
