// Package pkg provides the core libraries for searchspace.
//
// # Overview
//
// Searchspace separates the description of a combinatorial problem from the
// algorithm that explores it. The pkg directory is organized into five main
// areas:
//
//  1. [search] - Algorithm-facing contract (Problem, Node) and the search
//     algorithms themselves
//  2. [assign] - Assignment problem formulations and the exact Hungarian
//     baseline
//  3. [partition] - Graph bipartition formulation and Graphviz rendering
//  4. [experiment] - Sweep configuration and the comparison runner
//  5. [cache] / [observability] - Result caching backends and event hooks
//
// # Architecture
//
// The typical data flow through searchspace:
//
//	TOML/JSON sweep config
//	         ↓
//	    [experiment] package (generate instance, derive random streams)
//	         ↓
//	    [assign] / [partition] packages (problem formulations)
//	         ↓
//	    [search] package (best-first, beam, local and bound-based search)
//	         ↓
//	    Report (tabulated by the CLI, served over HTTP)
//
// # Quick Start
//
// Formulate an assignment instance and solve it optimally:
//
//	import (
//	    "context"
//	    "github.com/matzehuels/searchspace/pkg/assign"
//	    "github.com/matzehuels/searchspace/pkg/search"
//	)
//
//	m := assign.RandomMatrix(8, search.NewRand(1))
//	p, _ := assign.NewTreeProblem(m)
//	goal, _ := search.BestFirst[assign.Assignment]{Dedupe: true}.Solve(context.Background(), p)
package pkg
