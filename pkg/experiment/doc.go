// Package experiment runs comparison sweeps: one generated problem
// instance, several search algorithms, one report. It is the programmatic
// core behind the CLI's compare command and the HTTP API.
//
// A sweep is described by a [Config], typically loaded from a TOML file:
//
//	[problem]
//	kind = "assignment"
//	size = 8
//	seed = 42
//
//	[[algorithms]]
//	name = "annealing"
//	initial_temp = 1.5
//
//	[[algorithms]]
//	name = "hill-climbing"
//
// The [Runner] generates the instance deterministically from the seed,
// solves it with every configured algorithm (each on its own derived random
// stream, so results cache independently), and for assignment problems
// computes the exact Hungarian baseline, memoized through the cache layer.
package experiment
