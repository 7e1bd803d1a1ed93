package partition

import (
	"errors"
	"fmt"
	"maps"
	"math/rand/v2"
	"slices"
)

var (
	// ErrNoVertices is returned when a graph is built with fewer than two
	// vertices; no bipartition exists.
	ErrNoVertices = errors.New("graph needs at least two vertices")

	// ErrVertexRange is returned when an edge endpoint falls outside the
	// vertex universe.
	ErrVertexRange = errors.New("edge endpoint outside vertex range")

	// ErrSelfLoop is returned when an edge joins a vertex to itself.
	ErrSelfLoop = errors.New("self-loops are not allowed")
)

// Edge is an undirected edge between two vertices of the fixed universe.
type Edge struct {
	U int
	V int
}

// Graph is a fixed vertex universe 0..N-1 with an undirected edge list.
// Both are constructed once and treated as immutable context shared by every
// node in a search run. Parallel edges are permitted; each one contributes
// to the cut independently.
type Graph struct {
	N     int
	Edges []Edge
}

// NewGraph validates the vertex count and edge list and returns the graph.
func NewGraph(n int, edges []Edge) (Graph, error) {
	if n < 2 {
		return Graph{}, ErrNoVertices
	}
	for _, e := range edges {
		if e.U < 0 || e.U >= n || e.V < 0 || e.V >= n {
			return Graph{}, fmt.Errorf("edge (%d,%d): %w", e.U, e.V, ErrVertexRange)
		}
		if e.U == e.V {
			return Graph{}, fmt.Errorf("edge (%d,%d): %w", e.U, e.V, ErrSelfLoop)
		}
	}
	return Graph{N: n, Edges: slices.Clone(edges)}, nil
}

// RandomGraph generates a graph on n vertices where each of the n(n-1)/2
// possible edges is present independently with probability prob.
func RandomGraph(n int, prob float64, rng *rand.Rand) (Graph, error) {
	var edges []Edge
	for u := 0; u < n; u++ {
		for v := u + 1; v < n; v++ {
			if rng.Float64() < prob {
				edges = append(edges, Edge{U: u, V: v})
			}
		}
	}
	return NewGraph(n, edges)
}

// VertexSet is one side of a bipartition: the subset P of the vertex
// universe. Sets are never mutated after a node is built; successors clone.
type VertexSet map[int]bool

// NewVertexSet builds a set from explicit members.
func NewVertexSet(members ...int) VertexSet {
	s := make(VertexSet, len(members))
	for _, v := range members {
		s[v] = true
	}
	return s
}

// Clone returns an independent copy of the set.
func (s VertexSet) Clone() VertexSet {
	return maps.Clone(s)
}

// Members returns the vertices of the set in ascending order.
func (s VertexSet) Members() []int {
	return slices.Sorted(maps.Keys(s))
}

// CutSize counts the edges of g with exactly one endpoint in p: the
// canonical cost of the bipartition (p, V∖p). Lower is better.
func (g Graph) CutSize(p VertexSet) int {
	cuts := 0
	for _, e := range g.Edges {
		if p[e.U] != p[e.V] {
			cuts++
		}
	}
	return cuts
}

// RandomPartition draws a uniformly random subset of size ⌊N/2⌋ from the
// vertex universe: a shuffled vertex list truncated to its first half.
func (g Graph) RandomPartition(rng *rand.Rand) VertexSet {
	order := make([]int, g.N)
	for i := range order {
		order[i] = i
	}
	rng.Shuffle(g.N, func(i, j int) {
		order[i], order[j] = order[j], order[i]
	})
	return NewVertexSet(order[:g.N/2]...)
}
