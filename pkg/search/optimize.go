package search

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"slices"
)

// Default parameters for the optimization algorithms. They mirror the values
// the CLI exposes as flag defaults.
const (
	DefaultAnnealIterations = 5000
	DefaultCoolingRate      = 0.95
	DefaultBeamWidth        = 2
)

// HillClimbing repeatedly moves to the lowest-cost successor until no
// successor improves on the current node (a local optimum) or the step
// budget runs out. It enumerates the full neighborhood at every step, so it
// suits neighborhood formulations whose states are always complete.
type HillClimbing[S any] struct {
	// MaxSteps caps the number of moves. 0 means run to a local optimum.
	MaxSteps int

	// Progress, when non-nil, is called after every accepted move.
	Progress Progress
}

// Solve returns the first local optimum reached from the initial node.
// Cancelling ctx returns the best node found so far.
func (h HillClimbing[S]) Solve(ctx context.Context, p Problem[S]) (*Node[S], error) {
	cur := p.Initial()
	steps, generated := 0, 0

	for {
		if ctx.Err() != nil {
			return cur, nil
		}

		var best *Node[S]
		for child := range p.Successors(cur) {
			generated++
			if best == nil || child.Cost < best.Cost {
				best = child
			}
		}
		if best == nil || best.Cost >= cur.Cost {
			return cur, nil
		}

		cur = best
		steps++
		if h.Progress != nil {
			h.Progress(steps, generated, cur.Cost)
		}
		if h.MaxSteps > 0 && steps >= h.MaxSteps {
			return cur, nil
		}
	}
}

// Annealer implements simulated annealing over a neighborhood formulation.
// Each iteration draws one random successor ([Sample]); improving moves are
// always taken, worsening moves are taken with probability exp(-Δ/T). The
// temperature decays geometrically by CoolingRate every TempLength
// iterations. An InitialTemp of zero degrades to greedy stochastic descent,
// which is a useful baseline in its own right.
type Annealer[S any] struct {
	// InitialTemp is the starting temperature. 0 means greedy descent.
	InitialTemp float64

	// CoolingRate multiplies the temperature after each stage.
	// Values outside (0, 1] fall back to DefaultCoolingRate.
	CoolingRate float64

	// TempLength is the number of iterations per temperature stage.
	// Values below 1 are treated as 1.
	TempLength int

	// Iterations is the total iteration budget.
	// Values below 1 fall back to DefaultAnnealIterations.
	Iterations int

	// Rand is the random source for both neighbor sampling fallback and
	// acceptance decisions. A nil Rand uses a fixed-seed source so runs
	// stay reproducible by default.
	Rand *rand.Rand

	// Progress, when non-nil, is called whenever the best cost improves.
	Progress Progress
}

// Solve returns the best node observed during the annealing run. The run
// ends when the iteration budget is spent, the neighborhood turns out to be
// empty, or ctx is cancelled; all three return the best node seen.
func (a Annealer[S]) Solve(ctx context.Context, p Problem[S]) (*Node[S], error) {
	rng := a.Rand
	if rng == nil {
		rng = rand.New(rand.NewPCG(1, 1^0xdeadbeef))
	}
	cooling := a.CoolingRate
	if cooling <= 0 || cooling > 1 {
		cooling = DefaultCoolingRate
	}
	tempLength := max(a.TempLength, 1)
	iterations := a.Iterations
	if iterations < 1 {
		iterations = DefaultAnnealIterations
	}

	cur := p.Initial()
	best := cur
	temp := a.InitialTemp

	for i := range iterations {
		if ctx.Err() != nil {
			return best, nil
		}

		succ, err := Sample(p, cur, rng)
		if errors.Is(err, ErrNoSuccessors) {
			return best, nil
		}
		if err != nil {
			return best, err
		}

		delta := succ.Cost - cur.Cost
		if delta < 0 || (temp > 0 && rng.Float64() < math.Exp(-delta/temp)) {
			cur = succ
		}
		if cur.Cost < best.Cost {
			best = cur
			if a.Progress != nil {
				a.Progress(i+1, i+1, best.Cost)
			}
		}

		if (i+1)%tempLength == 0 {
			temp *= cooling
		}
	}

	return best, nil
}

// LocalBeam keeps a pool of Width candidate nodes and replaces the pool each
// iteration with the Width lowest-cost successors pooled across all
// candidates. The pool is seeded from the initial node plus random restarts
// when the formulation implements [Restarter].
type LocalBeam[S any] struct {
	// Width is the pool size. Values below 1 fall back to DefaultBeamWidth.
	Width int

	// MaxSteps caps the number of pool replacements. 0 means run until the
	// pooled successors stop improving on the pool.
	MaxSteps int

	// Progress, when non-nil, is called after every pool replacement.
	Progress Progress
}

// Solve returns the lowest-cost node from the final pool. Cancelling ctx
// returns the best node found so far.
func (l LocalBeam[S]) Solve(ctx context.Context, p Problem[S]) (*Node[S], error) {
	width := l.Width
	if width < 1 {
		width = DefaultBeamWidth
	}

	pool := []*Node[S]{p.Initial()}
	for len(pool) < width {
		n, err := Restart(p)
		if err != nil {
			break // no restart capability; run with a smaller pool
		}
		pool = append(pool, n)
	}

	best := cheapest(pool)
	steps, generated := 0, 0

	for {
		if ctx.Err() != nil {
			return best, nil
		}

		var children []*Node[S]
		for _, n := range pool {
			for child := range p.Successors(n) {
				generated++
				children = append(children, child)
			}
		}
		if len(children) == 0 {
			return best, nil
		}

		slices.SortStableFunc(children, func(a, b *Node[S]) int {
			switch {
			case a.Cost < b.Cost:
				return -1
			case a.Cost > b.Cost:
				return 1
			default:
				return 0
			}
		})
		if len(children) > width {
			children = children[:width]
		}

		if children[0].Cost >= best.Cost {
			return best, nil
		}
		best = children[0]
		pool = children
		steps++
		if l.Progress != nil {
			l.Progress(steps, generated, best.Cost)
		}
		if l.MaxSteps > 0 && steps >= l.MaxSteps {
			return best, nil
		}
	}
}

// BranchAndBound explores the successor graph depth-first, keeping the
// lowest-cost node seen and pruning any subtree whose formulation value
// (a lower bound when the formulation implements [Evaluator]) cannot beat
// it. Like the other optimization algorithms it assumes complete-state
// formulations: every node is a candidate answer.
//
// On formulations without an [Evaluator] every bound is the weakest one and
// nothing is ever pruned, so a DepthLimit is required for the search to
// terminate on goalless neighborhood formulations.
type BranchAndBound[S any] struct {
	// DepthLimit caps the recursion depth. 0 means unbounded.
	DepthLimit int

	// Limit caps the number of expansions. 0 means unbounded.
	Limit int

	// Progress, when non-nil, is called after every expansion with the
	// pruned-subtree count in the generated slot.
	Progress Progress
}

// Solve returns the lowest-cost node discovered. Cancelling ctx returns the
// best node found so far.
func (b BranchAndBound[S]) Solve(ctx context.Context, p Problem[S]) (*Node[S], error) {
	type frame struct {
		node  *Node[S]
		depth int
	}

	best := p.Initial()
	stack := []frame{{node: best, depth: 0}}
	expanded, pruned := 0, 0

	for len(stack) > 0 {
		if ctx.Err() != nil {
			return best, nil
		}

		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		// best may have improved since this node was pushed.
		if top.node != best && Value(p, top.node) >= best.Cost {
			pruned++
			continue
		}
		if b.Limit > 0 && expanded >= b.Limit {
			return best, nil
		}
		expanded++

		for child := range p.Successors(top.node) {
			if child.Cost < best.Cost {
				best = child
			} else if Value(p, child) >= best.Cost {
				pruned++
				continue
			}
			if b.DepthLimit == 0 || top.depth+1 < b.DepthLimit {
				stack = append(stack, frame{node: child, depth: top.depth + 1})
			}
		}

		if b.Progress != nil {
			b.Progress(expanded, pruned, best.Cost)
		}
	}

	return best, nil
}

func cheapest[S any](nodes []*Node[S]) *Node[S] {
	best := nodes[0]
	for _, n := range nodes[1:] {
		if n.Cost < best.Cost {
			best = n
		}
	}
	return best
}
