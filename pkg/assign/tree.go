package assign

import (
	"fmt"
	"iter"
	"slices"
	"strconv"
	"strings"

	"github.com/matzehuels/searchspace/pkg/search"
)

// Unassigned marks a row slot that has not been given a column yet.
const Unassigned = -1

// Assignment is the state of the tree-construction formulation: a partial
// assignment of columns to rows. A column index appears in at most one slot,
// and Free always holds exactly the columns absent from Rows, so the number
// of unassigned rows equals the number of free columns at every node.
type Assignment struct {
	// Rows[i] is the column assigned to row i, or Unassigned.
	Rows []int

	// Free lists the columns not yet used, in ascending order.
	Free []int
}

// Complete reports whether every row slot has been filled.
func (a Assignment) Complete() bool {
	return !slices.Contains(a.Rows, Unassigned)
}

// TreeProblem is the tree-construction assignment formulation: the search
// starts from an empty assignment and fills one (row, column) cell per
// transition. Any unassigned row may be filled at any depth, so a node with
// k unassigned rows has k² successors and the same complete assignment is
// reachable via up to k! expansion orders. Graph-search consumers should
// deduplicate on [TreeProblem.StateKey], which depends on the state alone.
//
// The cost matrix is immutable context shared by every node; nodes carry
// only their partial assignment.
type TreeProblem struct {
	costs Matrix
	n     int
}

// NewTreeProblem validates the cost matrix and returns the formulation.
func NewTreeProblem(costs Matrix) (*TreeProblem, error) {
	if err := costs.Validate(); err != nil {
		return nil, fmt.Errorf("tree assignment: %w", err)
	}
	return &TreeProblem{costs: costs, n: len(costs)}, nil
}

// Size returns the matrix dimension n.
func (p *TreeProblem) Size() int { return p.n }

// Initial returns the root node: every row unassigned, every column free,
// zero cost.
func (p *TreeProblem) Initial() *search.Node[Assignment] {
	rows := make([]int, p.n)
	for i := range rows {
		rows[i] = Unassigned
	}
	free := make([]int, p.n)
	for i := range free {
		free[i] = i
	}
	return search.NewNode(Assignment{Rows: rows, Free: free}, 0)
}

// Successors yields one child per (unassigned row, free column) pair. Each
// child fills that row with that column, drops the column from its free set,
// and extends the cumulative cost by the matrix entry. Children are computed
// lazily, one per pull.
func (p *TreeProblem) Successors(n *search.Node[Assignment]) iter.Seq[*search.Node[Assignment]] {
	return func(yield func(*search.Node[Assignment]) bool) {
		state := n.State
		for row, col := range state.Rows {
			if col != Unassigned {
				continue
			}
			for fi, c := range state.Free {
				childRows := slices.Clone(state.Rows)
				childRows[row] = c
				childFree := slices.Concat(state.Free[:fi], state.Free[fi+1:])

				child := n.Child(
					Assignment{Rows: childRows, Free: childFree},
					search.Action{A: row, B: c},
					n.Cost+p.costs[row][c],
				)
				if !yield(child) {
					return
				}
			}
		}
	}
}

// GoalTest reports whether the assignment is complete.
func (p *TreeProblem) GoalTest(n *search.Node[Assignment]) bool {
	return n.State.Complete()
}

// NodeValue returns the cumulative cost plus an admissible lower bound on
// the cost of completing the assignment, making best-first search optimal.
func (p *TreeProblem) NodeValue(n *search.Node[Assignment]) float64 {
	return n.Cost + p.heuristic(n.State)
}

// StateKey returns a stable identity for the partial assignment. The free
// set is fully determined by the filled slots, so the slots alone identify
// the state regardless of the order they were filled in.
func (p *TreeProblem) StateKey(n *search.Node[Assignment]) string {
	return slotKey(n.State.Rows)
}

// heuristic sums, for every unassigned row, the cheapest entry of that row
// restricted to the still-free columns. Relaxing the each-column-used-once
// constraint means the bound never overestimates the true completion cost.
//
// An unassigned row with no free columns left cannot occur when the
// Assignment invariants hold (unassigned rows always equal free columns in
// number); encountering one means the caller constructed a corrupt state,
// and heuristic panics rather than returning a fabricated bound.
func (p *TreeProblem) heuristic(state Assignment) float64 {
	bound := 0.0
	for row, col := range state.Rows {
		if col != Unassigned {
			continue
		}
		if len(state.Free) == 0 {
			panic(fmt.Sprintf("assign: unassigned row %d has no candidate columns", row))
		}
		rowMin := p.costs[row][state.Free[0]]
		for _, c := range state.Free[1:] {
			if v := p.costs[row][c]; v < rowMin {
				rowMin = v
			}
		}
		bound += rowMin
	}
	return bound
}

// slotKey renders a slice of column indices (with Unassigned markers) as a
// compact stable string, e.g. "2,-,0,-".
func slotKey(slots []int) string {
	var b strings.Builder
	for i, c := range slots {
		if i > 0 {
			b.WriteByte(',')
		}
		if c == Unassigned {
			b.WriteByte('-')
		} else {
			b.WriteString(strconv.Itoa(c))
		}
	}
	return b.String()
}
