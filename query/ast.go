package query

// Node is the interface implemented by all expression tree nodes. The tree
// is a closed sum of three shapes: Leaf, Not and BinOpExpr.
type Node interface {
	node() // marker method
}

// Leaf is a fault name occurring in the expression. Each textual occurrence
// produces its own Leaf; nodes are never shared between subtrees.
type Leaf struct {
	Name string
}

func (*Leaf) node() {}

// Not negates its child expression.
type Not struct {
	Child Node
}

func (*Not) node() {}

// BinOpExpr joins two subexpressions with an infix operator. Left/right
// order is significant: it records the left-associative grouping and fixes
// the order in which leaf parameters are later emitted.
type BinOpExpr struct {
	Op    BinaryOp
	Left  Node
	Right Node
}

func (*BinOpExpr) node() {}

// FaultNames returns the leaf names of the tree in depth-first left-to-right
// order, one entry per textual occurrence.
func FaultNames(n Node) []string {
	var names []string
	collectFaultNames(n, &names)
	return names
}

func collectFaultNames(n Node, out *[]string) {
	switch n := n.(type) {
	case *Leaf:
		*out = append(*out, n.Name)
	case *Not:
		collectFaultNames(n.Child, out)
	case *BinOpExpr:
		collectFaultNames(n.Left, out)
		collectFaultNames(n.Right, out)
	}
}
