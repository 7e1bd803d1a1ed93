// Package search provides a generic state-space search toolkit: a node type
// with parent links for path reconstruction, a capability-based problem
// contract, and a set of consuming algorithms (best-first, beam,
// branch-and-bound, hill climbing, simulated annealing, local beam).
//
// # Architecture
//
// A problem formulation implements [Problem] and, optionally, the capability
// interfaces [Evaluator], [Sampler], [Restarter], and [StateKeyer]. The
// algorithms only ever call through these interfaces; formulations never call
// back into the algorithms. Missing capabilities fall back to safe defaults:
// [Value] returns the weakest possible bound (never prunes) and [Sample]
// draws uniformly from the enumerated successor sequence.
//
// # Successor sequences
//
// Successors are exposed as iter.Seq values: lazy, finite, and computed one
// child per pull. Width-limited consumers (beam search) stop pulling early
// and the unread tail is never materialized. Callers must not assume a
// sequence can be resumed after breaking out of it; re-invoking Successors
// yields a fresh sequence.
//
// # Determinism
//
// Every randomized operation draws from an explicitly injected *rand.Rand.
// Given a fixed seed, a search run is reproducible bit for bit.
//
// # Choosing an algorithm
//
// Constructive (tree) formulations with a meaningful goal test suit
// [BestFirst] and [Beam]. Neighborhood formulations over complete candidate
// states (goal test always false) suit [HillClimbing], [Annealer],
// [LocalBeam], and [BranchAndBound]; those compare cumulative costs between
// neighbors and stop on their own budgets.
package search
