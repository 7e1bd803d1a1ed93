package search

import (
	"errors"
	"iter"
	"math"
	"math/rand/v2"
)

var (
	// ErrNoSolution is returned by exhaustive searches that empty their
	// frontier without ever satisfying the goal test.
	ErrNoSolution = errors.New("search: no solution")

	// ErrNoSuccessors is returned by [Sample] when the node has an empty
	// neighborhood, so no successor can be drawn.
	ErrNoSuccessors = errors.New("search: node has no successors")

	// ErrNoRestart is returned by [Restart] when the formulation does not
	// implement [Restarter].
	ErrNoRestart = errors.New("search: formulation cannot generate random nodes")
)

// Problem is the required capability set every formulation provides.
// The search algorithms hold a Problem, repeatedly ask it for successors and
// goal tests, and decide which nodes to keep exploring; the dependency is
// strictly one-directional.
type Problem[S any] interface {
	// Initial returns the root node the search starts from.
	Initial() *Node[S]

	// Successors returns the direct successors of n as a lazy, finite
	// sequence. Each element is computed on demand; callers may stop
	// pulling at any point.
	Successors(n *Node[S]) iter.Seq[*Node[S]]

	// GoalTest reports whether n is an accepted solution. Neighborhood
	// formulations with no natural terminal state always report false;
	// their owning algorithm's budget governs termination.
	GoalTest(n *Node[S]) bool
}

// Evaluator is an optional capability: an estimate of the best achievable
// cost from n onward, used for ordering and pruning by informed and
// bound-based algorithms. Formulations without useful bounds simply do not
// implement it; [Value] then disables pruning.
type Evaluator[S any] interface {
	NodeValue(n *Node[S]) float64
}

// Sampler is an optional capability: draw one successor of n at random
// without enumerating the rest. Stochastic local search needs exactly one
// cheap neighbor per iteration.
type Sampler[S any] interface {
	RandomSuccessor(n *Node[S]) (*Node[S], error)
}

// Restarter is an optional capability: generate an independent random valid
// state from the formulation's own construction rule, used to restart or
// diversify local search. The returned node need not be a successor of any
// existing node.
type Restarter[S any] interface {
	RandomNode() (*Node[S], error)
}

// StateKeyer is an optional capability: a stable identity key for a node's
// state. Graph-search variants that deduplicate by state key on this value
// alone, never on path identity, so the same state reached via different
// expansion orders collapses to one entry.
type StateKeyer[S any] interface {
	StateKey(n *Node[S]) string
}

// Value returns the formulation's estimate for n, or the weakest possible
// bound (negative infinity, which never prunes anything under minimization)
// when the formulation does not implement [Evaluator].
func Value[S any](p Problem[S], n *Node[S]) float64 {
	if ev, ok := p.(Evaluator[S]); ok {
		return ev.NodeValue(n)
	}
	return math.Inf(-1)
}

// Sample draws one random successor of n. Formulations implementing
// [Sampler] are consulted directly; otherwise a uniform draw over the
// enumerated successor sequence is made via reservoir sampling, costing one
// full enumeration but no materialized fan-out.
func Sample[S any](p Problem[S], n *Node[S], rng *rand.Rand) (*Node[S], error) {
	if s, ok := p.(Sampler[S]); ok {
		return s.RandomSuccessor(n)
	}

	var pick *Node[S]
	seen := 0
	for child := range p.Successors(n) {
		seen++
		if rng.IntN(seen) == 0 {
			pick = child
		}
	}
	if pick == nil {
		return nil, ErrNoSuccessors
	}
	return pick, nil
}

// Restart returns an independently generated random node, or ErrNoRestart if
// the formulation does not implement [Restarter].
func Restart[S any](p Problem[S]) (*Node[S], error) {
	if r, ok := p.(Restarter[S]); ok {
		return r.RandomNode()
	}
	return nil, ErrNoRestart
}
