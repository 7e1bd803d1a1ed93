// Package assign formulates the weighted bipartite assignment problem for
// the search toolkit: given an n×n cost matrix whose rows are agents and
// columns are tasks, find a row→column bijection with minimal total cost.
//
// Two formulations are provided:
//
//   - [TreeProblem] builds a complete assignment one cell at a time. It
//     carries an admissible lower-bound heuristic (the sum over unassigned
//     rows of each row's cheapest remaining column), so informed searches
//     like best-first find provably optimal assignments.
//   - [LocalProblem] searches the space of complete permutations through
//     pairwise swaps, with O(1) incremental cost updates per neighbor. It
//     has no goal state; the consuming algorithm's budget ends the search.
//
// [Hungarian] solves the same problem exactly in O(n³) and serves as the
// reference baseline the search results are compared against.
package assign
