package partition

import (
	"fmt"
	"iter"
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/matzehuels/searchspace/pkg/search"
)

// LocalProblem is the neighborhood bipartition formulation. Its state is a
// vertex subset P; every successor removes exactly one vertex from P and
// adds exactly one vertex from the complement, so |P| is invariant across
// the whole search.
//
// Every node's cost is the cut size of that node's own partition, the
// post-swap cut. Enumerated and randomly sampled successors score the same
// way; the package tests pin that down for both paths.
//
// GoalTest is always false: the owning algorithm's budget ends the search.
type LocalProblem struct {
	g       Graph
	rng     *rand.Rand
	initial VertexSet
}

// NewLocalProblem returns a formulation whose initial node is a random
// half-sized partition drawn from rng. A nil rng uses a fixed-seed source.
func NewLocalProblem(g Graph, rng *rand.Rand) (*LocalProblem, error) {
	if g.N < 2 {
		return nil, fmt.Errorf("local partition: %w", ErrNoVertices)
	}
	if rng == nil {
		rng = search.NewRand(1)
	}
	return &LocalProblem{g: g, rng: rng, initial: g.RandomPartition(rng)}, nil
}

// NewLocalProblemAt is NewLocalProblem with an explicit starting partition.
// Vertices outside the universe are rejected; the size of the subset is
// otherwise unconstrained and will simply be preserved by every transition.
func NewLocalProblemAt(g Graph, initial VertexSet, rng *rand.Rand) (*LocalProblem, error) {
	p, err := NewLocalProblem(g, rng)
	if err != nil {
		return nil, err
	}
	for v := range initial {
		if v < 0 || v >= g.N {
			return nil, fmt.Errorf("local partition: vertex %d: %w", v, ErrVertexRange)
		}
	}
	p.initial = initial.Clone()
	return p, nil
}

// Graph returns the immutable context shared by every node.
func (p *LocalProblem) Graph() Graph { return p.g }

// Initial returns the starting node with its cut computed from scratch.
func (p *LocalProblem) Initial() *search.Node[VertexSet] {
	return search.NewNode(p.initial.Clone(), float64(p.g.CutSize(p.initial)))
}

// Successors yields one child per (member, non-member) vertex pair: the
// member leaves the partition and the non-member joins it. Enumeration
// order is ascending on both sides so runs are reproducible; children are
// computed lazily, one per pull.
func (p *LocalProblem) Successors(n *search.Node[VertexSet]) iter.Seq[*search.Node[VertexSet]] {
	return func(yield func(*search.Node[VertexSet]) bool) {
		inside := n.State.Members()
		outside := p.complement(n.State)
		for _, v := range inside {
			for _, w := range outside {
				if !yield(p.swapped(n, v, w)) {
					return
				}
			}
		}
	}
}

// RandomSuccessor picks one member and one non-member uniformly at random
// and swaps their membership.
func (p *LocalProblem) RandomSuccessor(n *search.Node[VertexSet]) (*search.Node[VertexSet], error) {
	inside := n.State.Members()
	outside := p.complement(n.State)
	if len(inside) == 0 || len(outside) == 0 {
		return nil, fmt.Errorf("local partition: no swap pair: %w", search.ErrNoSuccessors)
	}
	v := inside[p.rng.IntN(len(inside))]
	w := outside[p.rng.IntN(len(outside))]
	return p.swapped(n, v, w), nil
}

// RandomNode generates an independent random half-sized partition with its
// cut computed from scratch.
func (p *LocalProblem) RandomNode() (*search.Node[VertexSet], error) {
	part := p.g.RandomPartition(p.rng)
	return search.NewNode(part, float64(p.g.CutSize(part))), nil
}

// GoalTest always reports false; the formulation has no terminal state.
func (p *LocalProblem) GoalTest(*search.Node[VertexSet]) bool { return false }

// NodeValue bounds a node by its own cut, so bound-based search prunes any
// swap that does not improve on the best partition seen and descends
// greedily.
func (p *LocalProblem) NodeValue(n *search.Node[VertexSet]) float64 { return n.Cost }

// StateKey returns a stable identity for the partition: its sorted members.
func (p *LocalProblem) StateKey(n *search.Node[VertexSet]) string {
	members := n.State.Members()
	var b strings.Builder
	for i, v := range members {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(v))
	}
	return b.String()
}

// swapped builds the child whose partition drops v and adds w, scored with
// the child's own (post-swap) cut.
func (p *LocalProblem) swapped(n *search.Node[VertexSet], v, w int) *search.Node[VertexSet] {
	part := n.State.Clone()
	delete(part, v)
	part[w] = true
	return n.Child(part, search.Action{A: v, B: w}, float64(p.g.CutSize(part)))
}

// complement returns the vertices outside the set in ascending order.
func (p *LocalProblem) complement(s VertexSet) []int {
	out := make([]int, 0, p.g.N-len(s))
	for v := 0; v < p.g.N; v++ {
		if !s[v] {
			out = append(out, v)
		}
	}
	return out
}
