package experiment

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Problem kinds.
const (
	KindAssignment = "assignment"
	KindPartition  = "partition"
)

// Algorithm names accepted in configs and on the CLI.
const (
	AlgoHillClimbing   = "hill-climbing"
	AlgoAnnealing      = "annealing"
	AlgoLocalBeam      = "local-beam"
	AlgoBranchAndBound = "branch-and-bound"
	AlgoBestFirst      = "best-first"
	AlgoBeam           = "beam"
)

// Configuration errors.
var (
	ErrUnknownKind      = errors.New("unknown problem kind")
	ErrUnknownAlgorithm = errors.New("unknown algorithm")
	ErrNoAlgorithms     = errors.New("no algorithms configured")
	ErrBadSize          = errors.New("problem size must be at least 2")
	ErrBadEdgeProb      = errors.New("edge probability must be in [0, 1]")
	ErrNeedsGoal        = errors.New("algorithm requires a goal-directed formulation")
)

// treeOnly marks the algorithms that need a goal test and therefore run on
// the tree-construction assignment formulation. Everything else runs on the
// neighborhood formulations.
var treeOnly = map[string]bool{
	AlgoBestFirst: true,
	AlgoBeam:      true,
}

var knownAlgorithms = map[string]bool{
	AlgoHillClimbing:   true,
	AlgoAnnealing:      true,
	AlgoLocalBeam:      true,
	AlgoBranchAndBound: true,
	AlgoBestFirst:      true,
	AlgoBeam:           true,
}

// Config describes one comparison sweep. It decodes from TOML and
// serializes to JSON for API requests.
type Config struct {
	Problem    ProblemConfig     `toml:"problem" json:"problem"`
	Algorithms []AlgorithmConfig `toml:"algorithms" json:"algorithms"`
}

// ProblemConfig describes the generated problem instance.
type ProblemConfig struct {
	// Kind is "assignment" or "partition".
	Kind string `toml:"kind" json:"kind"`

	// Size is the matrix dimension or the vertex count.
	Size int `toml:"size" json:"size"`

	// Seed drives instance generation; a fixed seed reproduces the
	// instance and every algorithm's trajectory exactly.
	Seed uint64 `toml:"seed" json:"seed"`

	// EdgeProb is the edge probability for partition instances.
	EdgeProb float64 `toml:"edge_prob" json:"edge_prob,omitempty"`
}

// AlgorithmConfig selects one algorithm and its parameters. Zero-valued
// parameters fall back to the algorithm's defaults.
type AlgorithmConfig struct {
	Name string `toml:"name" json:"name"`

	// Width applies to beam and local-beam.
	Width int `toml:"width" json:"width,omitempty"`

	// Iterations, InitialTemp, TempLength, and CoolingRate apply to
	// annealing. An InitialTemp of 0 anneals greedily.
	Iterations  int     `toml:"iterations" json:"iterations,omitempty"`
	InitialTemp float64 `toml:"initial_temp" json:"initial_temp,omitempty"`
	TempLength  int     `toml:"temp_length" json:"temp_length,omitempty"`
	CoolingRate float64 `toml:"cooling_rate" json:"cooling_rate,omitempty"`

	// DepthLimit applies to branch-and-bound. Zero picks a default that
	// suits the problem kind, since the neighborhood formulations need a
	// depth limit to terminate.
	DepthLimit int `toml:"depth_limit" json:"depth_limit,omitempty"`

	// MaxSteps applies to hill-climbing and local-beam.
	MaxSteps int `toml:"max_steps" json:"max_steps,omitempty"`

	// Limit caps expansions for best-first, beam, and branch-and-bound.
	Limit int `toml:"limit" json:"limit,omitempty"`

	// Seed overrides the derived per-algorithm random stream. Leave zero
	// to derive one from the problem seed and the algorithm's position.
	Seed uint64 `toml:"seed" json:"seed,omitempty"`

	// Label distinguishes multiple entries of the same algorithm in the
	// report; defaults to Name.
	Label string `toml:"label" json:"label,omitempty"`
}

// Load reads and decodes a TOML experiment file.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode config %s: %w", path, err)
	}
	return cfg, nil
}

// ValidateAndSetDefaults checks the config and fills in defaults: size 8,
// edge probability 0.5, seed 1, and labels equal to algorithm names.
func (c *Config) ValidateAndSetDefaults() error {
	switch c.Problem.Kind {
	case KindAssignment, KindPartition:
	case "":
		c.Problem.Kind = KindAssignment
	default:
		return fmt.Errorf("%w: %q", ErrUnknownKind, c.Problem.Kind)
	}

	if c.Problem.Size == 0 {
		c.Problem.Size = 8
	}
	if c.Problem.Size < 2 {
		return fmt.Errorf("%w: got %d", ErrBadSize, c.Problem.Size)
	}
	if c.Problem.Seed == 0 {
		c.Problem.Seed = 1
	}
	if c.Problem.Kind == KindPartition {
		if c.Problem.EdgeProb == 0 {
			c.Problem.EdgeProb = 0.5
		}
		if c.Problem.EdgeProb < 0 || c.Problem.EdgeProb > 1 {
			return fmt.Errorf("%w: got %v", ErrBadEdgeProb, c.Problem.EdgeProb)
		}
	}

	if len(c.Algorithms) == 0 {
		return ErrNoAlgorithms
	}
	for i := range c.Algorithms {
		a := &c.Algorithms[i]
		if !knownAlgorithms[a.Name] {
			return fmt.Errorf("%w: %q", ErrUnknownAlgorithm, a.Name)
		}
		if treeOnly[a.Name] && c.Problem.Kind != KindAssignment {
			return fmt.Errorf("%w: %q on kind %q", ErrNeedsGoal, a.Name, c.Problem.Kind)
		}
		if a.Name == AlgoBranchAndBound && a.DepthLimit == 0 {
			// The partition bound prunes aggressively, so it affords a
			// much deeper dive than the unbounded assignment swaps.
			if c.Problem.Kind == KindPartition {
				a.DepthLimit = 100
			} else {
				a.DepthLimit = 4
			}
		}
		if a.Label == "" {
			a.Label = a.Name
		}
	}
	return nil
}
