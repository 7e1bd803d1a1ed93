package search

// Action records the transition that produced a node. Its two components are
// problem-defined: (row, column) for the constructive assignment formulation,
// the pair of swapped positions for the local assignment formulation, and the
// (removed, added) vertices for the graph partition formulation.
//
// The zero Action on a root node carries no meaning; consult Action only when
// Parent is non-nil.
type Action struct {
	A int
	B int
}

// Node is one vertex of the implicit search tree: a state plus path-cost and
// parent-link metadata. Nodes are immutable after construction; a child holds
// a read-only reference to its parent that is used only for path
// reconstruction. The parent links form a tree rooted at the initial node, so
// no cycle handling is needed.
//
// Cost is the cumulative cost accumulated along the path from the initial
// node. For neighborhood formulations it is the full evaluation of the
// (always complete) state, so it may decrease from parent to child.
type Node[S any] struct {
	State  S
	Action Action
	Cost   float64
	Parent *Node[S]
}

// NewNode creates a root node with no parent.
func NewNode[S any](state S, cost float64) *Node[S] {
	return &Node[S]{State: state, Cost: cost}
}

// Child creates a successor of n with the given state, action, and cumulative
// cost. The child shares nothing with the parent except the parent reference.
func (n *Node[S]) Child(state S, action Action, cost float64) *Node[S] {
	return &Node[S]{State: state, Action: action, Cost: cost, Parent: n}
}

// Depth returns the number of transitions between n and its root.
func (n *Node[S]) Depth() int {
	d := 0
	for cur := n.Parent; cur != nil; cur = cur.Parent {
		d++
	}
	return d
}

// Path returns the nodes from the root to n, in order. The root comes first
// and n last.
func (n *Node[S]) Path() []*Node[S] {
	var rev []*Node[S]
	for cur := n; cur != nil; cur = cur.Parent {
		rev = append(rev, cur)
	}
	for i, j := 0, len(rev)-1; i < j; i, j = i+1, j-1 {
		rev[i], rev[j] = rev[j], rev[i]
	}
	return rev
}

// Actions returns the actions applied along the path from the root to n, in
// order. The root contributes nothing, so a node at depth d yields d actions.
func (n *Node[S]) Actions() []Action {
	path := n.Path()
	actions := make([]Action, 0, len(path)-1)
	for _, nd := range path[1:] {
		actions = append(actions, nd.Action)
	}
	return actions
}
