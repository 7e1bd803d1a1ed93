package experiment

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/searchspace/pkg/assign"
	"github.com/matzehuels/searchspace/pkg/cache"
	"github.com/matzehuels/searchspace/pkg/observability"
	"github.com/matzehuels/searchspace/pkg/partition"
	"github.com/matzehuels/searchspace/pkg/search"
)

// Runner executes comparison sweeps with caching. Both the CLI and the HTTP
// API use it, so the caching and logging logic lives in one place.
//
// The Runner is stateless apart from the cache and logger; concurrent calls
// to Run with different configs are safe as long as the cache backend is.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching (NullCache), a
// nil keyer uses the default key layout, and a nil logger uses the default
// logger.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Report is the outcome of one sweep.
type Report struct {
	// RunID uniquely identifies this execution.
	RunID string `json:"run_id"`

	// Problem echoes the validated problem configuration.
	Problem ProblemConfig `json:"problem"`

	// ProblemHash identifies the generated instance; cache keys derive
	// from it.
	ProblemHash string `json:"problem_hash"`

	// InitialCost is the cost of the shared starting state every
	// neighborhood algorithm improves from.
	InitialCost float64 `json:"initial_cost"`

	// Baseline is the exact Hungarian solution (assignment sweeps only).
	Baseline *Baseline `json:"baseline,omitempty"`

	// Results holds one entry per configured algorithm, in config order.
	Results []Result `json:"results"`
}

// Baseline is the exact reference solution for an assignment instance.
type Baseline struct {
	Assignment []int   `json:"assignment"`
	Cost       float64 `json:"cost"`
	Cached     bool    `json:"cached,omitempty"`
}

// Result is one algorithm's outcome. Solution is the best state found: the
// row to column permutation for assignment sweeps, the sorted partition
// members for partition sweeps.
type Result struct {
	Label     string        `json:"label"`
	Algorithm string        `json:"algorithm"`
	Cost      float64       `json:"cost"`
	Solution  []int         `json:"solution,omitempty"`
	Expanded  int           `json:"expanded"`
	Generated int           `json:"generated"`
	Duration  time.Duration `json:"duration"`
	Cached    bool          `json:"cached,omitempty"`
	Err       string        `json:"error,omitempty"`
}

// Run validates cfg, generates the problem instance from its seed, and
// solves it with every configured algorithm. Each algorithm draws from its
// own derived random stream, so cached results stay valid no matter which
// subset of the sweep is re-run.
func (r *Runner) Run(ctx context.Context, cfg Config) (*Report, error) {
	if err := cfg.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	report := &Report{
		RunID:   uuid.NewString(),
		Problem: cfg.Problem,
	}

	start := time.Now()
	var err error
	switch cfg.Problem.Kind {
	case KindAssignment:
		err = r.runAssignment(ctx, cfg, report)
	case KindPartition:
		err = r.runPartition(ctx, cfg, report)
	}
	if err != nil {
		return nil, err
	}

	r.Logger.Info("sweep complete",
		"run_id", report.RunID,
		"kind", cfg.Problem.Kind,
		"algorithms", len(report.Results),
		"duration", time.Since(start).Round(time.Millisecond))
	return report, nil
}

func (r *Runner) runAssignment(ctx context.Context, cfg Config, report *Report) error {
	rng := search.NewRand(cfg.Problem.Seed)
	m := assign.RandomMatrix(cfg.Problem.Size, rng)

	data, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("hash instance: %w", err)
	}
	report.ProblemHash = cache.Hash(data)

	// Shared starting permutation so the neighborhood algorithms compete
	// from the same state.
	initial := assign.RandomAssignment(cfg.Problem.Size, rng)
	report.InitialCost = m.Cost(initial)

	baseline, err := r.baseline(ctx, m, report.ProblemHash)
	if err != nil {
		return err
	}
	report.Baseline = baseline

	r.Logger.Info("generated assignment instance",
		"size", cfg.Problem.Size,
		"seed", cfg.Problem.Seed,
		"initial_cost", report.InitialCost,
		"optimal_cost", baseline.Cost)

	for i, ac := range cfg.Algorithms {
		algRng := algorithmRand(cfg.Problem.Seed, ac, i)
		var res Result
		if treeOnly[ac.Name] {
			p, err := assign.NewTreeProblem(m)
			if err != nil {
				return err
			}
			res = solve(ctx, r, cfg.Problem, ac, i, p, algRng,
				func(n *search.Node[assign.Assignment]) []int { return n.State.Rows })
		} else {
			p, err := assign.NewLocalProblemAt(m, initial, algRng)
			if err != nil {
				return err
			}
			res = solve(ctx, r, cfg.Problem, ac, i, p, algRng,
				func(n *search.Node[[]int]) []int { return n.State })
		}
		report.Results = append(report.Results, res)
	}
	return nil
}

func (r *Runner) runPartition(ctx context.Context, cfg Config, report *Report) error {
	rng := search.NewRand(cfg.Problem.Seed)
	g, err := partition.RandomGraph(cfg.Problem.Size, cfg.Problem.EdgeProb, rng)
	if err != nil {
		return fmt.Errorf("generate graph: %w", err)
	}

	data, err := json.Marshal(g)
	if err != nil {
		return fmt.Errorf("hash instance: %w", err)
	}
	report.ProblemHash = cache.Hash(data)

	initial := g.RandomPartition(rng)
	report.InitialCost = float64(g.CutSize(initial))

	r.Logger.Info("generated partition instance",
		"vertices", g.N,
		"edges", len(g.Edges),
		"seed", cfg.Problem.Seed,
		"initial_cut", report.InitialCost)

	for i, ac := range cfg.Algorithms {
		algRng := algorithmRand(cfg.Problem.Seed, ac, i)
		p, err := partition.NewLocalProblemAt(g, initial, algRng)
		if err != nil {
			return err
		}
		report.Results = append(report.Results, solve(ctx, r, cfg.Problem, ac, i, p, algRng,
			func(n *search.Node[partition.VertexSet]) []int { return n.State.Members() }))
	}
	return nil
}

// baseline returns the exact Hungarian solution, memoized through the cache.
func (r *Runner) baseline(ctx context.Context, m assign.Matrix, problemHash string) (*Baseline, error) {
	key := r.Keyer.BaselineKey(problemHash)

	if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
		var b Baseline
		if json.Unmarshal(data, &b) == nil {
			observability.Cache().OnCacheHit(ctx, "baseline")
			b.Cached = true
			return &b, nil
		}
	}
	observability.Cache().OnCacheMiss(ctx, "baseline")

	assignment, cost, err := assign.Hungarian(m)
	if err != nil {
		return nil, err
	}
	b := &Baseline{Assignment: assignment, Cost: cost}

	if data, err := json.Marshal(b); err == nil {
		if err := r.Cache.Set(ctx, key, data, 0); err == nil {
			observability.Cache().OnCacheSet(ctx, "baseline", len(data))
		}
	}
	return b, nil
}

// algorithmRand derives the random stream for one algorithm entry. Each
// entry gets an independent stream (problem seed, entry position) unless the
// config pins an explicit seed.
func algorithmRand(problemSeed uint64, ac AlgorithmConfig, index int) *rand.Rand {
	seed := ac.Seed
	if seed == 0 {
		seed = problemSeed + uint64(index) + 1
	}
	return search.NewRand(seed)
}

// solve runs one algorithm on one formulation, consulting the result cache
// first. It is a free function because Go methods cannot carry their own
// type parameters.
func solve[S any](ctx context.Context, r *Runner, pc ProblemConfig, ac AlgorithmConfig, index int, p search.Problem[S], rng *rand.Rand, extract func(*search.Node[S]) []int) Result {
	seed := ac.Seed
	if seed == 0 {
		seed = pc.Seed + uint64(index) + 1
	}
	key := r.Keyer.ResultKey(problemResultHash(pc, ac), ac.Label, seed)

	if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
		var res Result
		if json.Unmarshal(data, &res) == nil {
			observability.Cache().OnCacheHit(ctx, "result")
			res.Cached = true
			r.Logger.Debug("result from cache", "algorithm", ac.Label, "cost", res.Cost)
			return res
		}
	}
	observability.Cache().OnCacheMiss(ctx, "result")

	hooks := observability.Search()
	hooks.OnSearchStart(ctx, ac.Label, pc.Kind)
	start := time.Now()

	expanded, generated := 0, 0
	progress := func(e, g int, best float64) {
		expanded, generated = e, g
		hooks.OnImprove(ctx, ac.Label, best)
	}

	var node *search.Node[S]
	var err error
	switch ac.Name {
	case AlgoHillClimbing:
		node, err = search.HillClimbing[S]{MaxSteps: ac.MaxSteps, Progress: progress}.Solve(ctx, p)
	case AlgoAnnealing:
		node, err = search.Annealer[S]{
			InitialTemp: ac.InitialTemp,
			CoolingRate: ac.CoolingRate,
			TempLength:  ac.TempLength,
			Iterations:  ac.Iterations,
			Rand:        rng,
			Progress:    progress,
		}.Solve(ctx, p)
	case AlgoLocalBeam:
		node, err = search.LocalBeam[S]{Width: ac.Width, MaxSteps: ac.MaxSteps, Progress: progress}.Solve(ctx, p)
	case AlgoBranchAndBound:
		node, err = search.BranchAndBound[S]{DepthLimit: ac.DepthLimit, Limit: ac.Limit, Progress: progress}.Solve(ctx, p)
	case AlgoBestFirst:
		node, err = search.BestFirst[S]{Limit: ac.Limit, Dedupe: true, Progress: progress}.Solve(ctx, p)
	case AlgoBeam:
		node, err = search.Beam[S]{Width: ac.Width, Limit: ac.Limit, Progress: progress}.Solve(ctx, p)
	}

	duration := time.Since(start)
	res := Result{
		Label:     ac.Label,
		Algorithm: ac.Name,
		Expanded:  expanded,
		Generated: generated,
		Duration:  duration,
	}
	if err != nil {
		res.Err = err.Error()
	} else {
		res.Cost = node.Cost
		res.Solution = extract(node)
	}

	hooks.OnSearchComplete(ctx, ac.Label, res.Cost, expanded, duration, err)
	r.Logger.Info("solved",
		"algorithm", ac.Label,
		"cost", res.Cost,
		"expanded", expanded,
		"duration", duration.Round(time.Millisecond),
		"error", res.Err)

	if err == nil {
		if data, merr := json.Marshal(res); merr == nil {
			if r.Cache.Set(ctx, key, data, 0) == nil {
				observability.Cache().OnCacheSet(ctx, "result", len(data))
			}
		}
	}
	return res
}

// problemResultHash folds the problem identity and the algorithm parameters
// into the hash a result key is built from, so changed parameters never hit
// a stale entry.
func problemResultHash(pc ProblemConfig, ac AlgorithmConfig) string {
	data, _ := json.Marshal(struct {
		Problem   ProblemConfig   `json:"problem"`
		Algorithm AlgorithmConfig `json:"algorithm"`
	}{pc, ac})
	return cache.Hash(data)
}
