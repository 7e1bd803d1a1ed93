package search

import (
	"iter"
	"strconv"
)

// lineProblem is a minimal constructive fixture: states are integers from
// start to limit, successors are s+1 and s+2 at unit step cost, and the goal
// is an exact target. The same state is reachable via many step orders, which
// exercises dedup.
type lineProblem struct {
	start  int
	limit  int
	target int
}

func (p *lineProblem) Initial() *Node[int] {
	return NewNode(p.start, 0)
}

func (p *lineProblem) Successors(n *Node[int]) iter.Seq[*Node[int]] {
	return func(yield func(*Node[int]) bool) {
		for _, step := range []int{1, 2} {
			next := n.State + step
			if next > p.limit {
				continue
			}
			if !yield(n.Child(next, Action{A: n.State, B: next}, n.Cost+1)) {
				return
			}
		}
	}
}

func (p *lineProblem) GoalTest(n *Node[int]) bool {
	return n.State == p.target
}

func (p *lineProblem) StateKey(n *Node[int]) string {
	return strconv.Itoa(n.State)
}

// boundedLine adds an admissible completion bound to lineProblem: at least
// ceil(remaining/2) unit steps are still needed.
type boundedLine struct {
	lineProblem
}

func (p *boundedLine) NodeValue(n *Node[int]) float64 {
	remaining := p.target - n.State
	if remaining < 0 {
		remaining = 0
	}
	return n.Cost + float64((remaining+1)/2)
}

// valleyProblem is a minimal neighborhood fixture: states are integers in
// [0, width], every state is complete with cost (x-center)², and neighbors
// are x±1. There is no goal state.
type valleyProblem struct {
	width  int
	center int
}

func (p *valleyProblem) cost(x int) float64 {
	d := float64(x - p.center)
	return d * d
}

func (p *valleyProblem) Initial() *Node[int] {
	return NewNode(0, p.cost(0))
}

func (p *valleyProblem) Successors(n *Node[int]) iter.Seq[*Node[int]] {
	return func(yield func(*Node[int]) bool) {
		for _, next := range []int{n.State - 1, n.State + 1} {
			if next < 0 || next > p.width {
				continue
			}
			if !yield(n.Child(next, Action{A: n.State, B: next}, p.cost(next))) {
				return
			}
		}
	}
}

func (p *valleyProblem) GoalTest(*Node[int]) bool { return false }
