package assign

import (
	"fmt"
	"iter"
	"math/rand/v2"
	"slices"

	"github.com/matzehuels/searchspace/pkg/search"
)

// LocalProblem is the neighborhood assignment formulation. Its state is a
// full permutation of 0..n-1 (a total row→column bijection) at every node,
// including the initial node and every successor. Neighbors differ by one
// pairwise swap, and each neighbor's cost is derived from its parent's in
// constant time:
//
//	new = old − c[p0][σ(p0)] − c[p1][σ(p1)] + c[p0][σ(p1)] + c[p1][σ(p0)]
//
// rather than recomputed from scratch. There is no goal state: GoalTest is
// always false and the consuming algorithm's own budget ends the search.
//
// The random source is injected and seedable; the formulation is not safe
// for concurrent use because the source is not.
type LocalProblem struct {
	costs   Matrix
	n       int
	rng     *rand.Rand
	initial []int
}

// NewLocalProblem validates the cost matrix and returns a formulation whose
// initial node is a uniformly random permutation drawn from rng. Matrices
// smaller than 2×2 are rejected with ErrTooSmall: no swap pair exists.
// A nil rng uses a fixed-seed source.
func NewLocalProblem(costs Matrix, rng *rand.Rand) (*LocalProblem, error) {
	if err := costs.Validate(); err != nil {
		return nil, fmt.Errorf("local assignment: %w", err)
	}
	if len(costs) < 2 {
		return nil, fmt.Errorf("local assignment: %w", ErrTooSmall)
	}
	if rng == nil {
		rng = search.NewRand(1)
	}
	return &LocalProblem{
		costs:   costs,
		n:       len(costs),
		rng:     rng,
		initial: RandomAssignment(len(costs), rng),
	}, nil
}

// NewLocalProblemAt is NewLocalProblem with an explicit starting
// permutation, useful for resuming a search or pinning down a test scenario.
func NewLocalProblemAt(costs Matrix, initial []int, rng *rand.Rand) (*LocalProblem, error) {
	p, err := NewLocalProblem(costs, rng)
	if err != nil {
		return nil, err
	}
	if !isPermutation(initial, p.n) {
		return nil, fmt.Errorf("local assignment: %w", ErrNotPermutation)
	}
	p.initial = slices.Clone(initial)
	return p, nil
}

// Size returns the matrix dimension n.
func (p *LocalProblem) Size() int { return p.n }

// Initial returns the starting node with its cost computed from scratch.
func (p *LocalProblem) Initial() *search.Node[[]int] {
	return search.NewNode(slices.Clone(p.initial), p.costs.Cost(p.initial))
}

// Successors yields one child per unordered pair of distinct positions,
// n(n-1)/2 in total, each with the pair's columns swapped and the cost
// updated incrementally. Children are computed lazily, one per pull.
func (p *LocalProblem) Successors(n *search.Node[[]int]) iter.Seq[*search.Node[[]int]] {
	return func(yield func(*search.Node[[]int]) bool) {
		for p0 := 0; p0 < p.n; p0++ {
			for p1 := p0 + 1; p1 < p.n; p1++ {
				if !yield(p.swapped(n, p0, p1)) {
					return
				}
			}
		}
	}
}

// RandomSuccessor draws one of the n(n-1)/2 position pairs uniformly (two
// independent draws, retried until distinct) and applies the same
// incremental update as Successors.
func (p *LocalProblem) RandomSuccessor(n *search.Node[[]int]) (*search.Node[[]int], error) {
	p0 := p.rng.IntN(p.n)
	p1 := p0
	for p1 == p0 {
		p1 = p.rng.IntN(p.n)
	}
	return p.swapped(n, p0, p1), nil
}

// RandomNode generates an independent uniformly random permutation and
// computes its cost from scratch.
func (p *LocalProblem) RandomNode() (*search.Node[[]int], error) {
	perm := RandomAssignment(p.n, p.rng)
	return search.NewNode(perm, p.costs.Cost(perm)), nil
}

// GoalTest always reports false; the formulation has no terminal state.
func (p *LocalProblem) GoalTest(*search.Node[[]int]) bool { return false }

// StateKey returns a stable identity for the permutation.
func (p *LocalProblem) StateKey(n *search.Node[[]int]) string {
	return slotKey(n.State)
}

// swapped builds the child produced by exchanging the columns at positions
// p0 and p1, with the O(1) cost delta.
func (p *LocalProblem) swapped(n *search.Node[[]int], p0, p1 int) *search.Node[[]int] {
	perm := n.State
	cost := n.Cost -
		p.costs[p0][perm[p0]] - p.costs[p1][perm[p1]] +
		p.costs[p0][perm[p1]] + p.costs[p1][perm[p0]]

	child := slices.Clone(perm)
	child[p0], child[p1] = child[p1], child[p0]
	return n.Child(child, search.Action{A: p0, B: p1}, cost)
}

func isPermutation(perm []int, n int) bool {
	if len(perm) != n {
		return false
	}
	seen := make([]bool, n)
	for _, c := range perm {
		if c < 0 || c >= n || seen[c] {
			return false
		}
		seen[c] = true
	}
	return true
}
