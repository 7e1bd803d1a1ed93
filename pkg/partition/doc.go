// Package partition formulates the graph bipartition problem for the search
// toolkit: split a fixed vertex universe into two sides so that as few edges
// as possible cross between them. The cost of a candidate partition is its
// cut size, the number of edges with exactly one endpoint inside.
//
// [LocalProblem] is a neighborhood formulation over vertex subsets. Every
// transition swaps one member out and one non-member in, so the subset size
// is constant from the initial partition onward; balance is an emergent
// property of the transition rule, not a checked data invariant. A caller
// that mutates a state outside the defined transitions can break it.
//
// [ToDOT] and [RenderSVG] visualize a partitioned graph with Graphviz,
// coloring the two sides and dashing the crossing edges.
package partition
