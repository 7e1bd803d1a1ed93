package experiment

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sweep.toml")
	content := `
[problem]
kind = "partition"
size = 10
seed = 42
edge_prob = 0.3

[[algorithms]]
name = "annealing"
initial_temp = 2.0
iterations = 1000

[[algorithms]]
name = "hill-climbing"
label = "greedy"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Problem.Kind != KindPartition {
		t.Errorf("kind = %q, want partition", cfg.Problem.Kind)
	}
	if cfg.Problem.Size != 10 || cfg.Problem.Seed != 42 {
		t.Errorf("problem = %+v, want size 10 seed 42", cfg.Problem)
	}
	if len(cfg.Algorithms) != 2 {
		t.Fatalf("got %d algorithms, want 2", len(cfg.Algorithms))
	}
	if cfg.Algorithms[0].InitialTemp != 2.0 || cfg.Algorithms[0].Iterations != 1000 {
		t.Errorf("annealing params = %+v", cfg.Algorithms[0])
	}
	if cfg.Algorithms[1].Label != "greedy" {
		t.Errorf("label = %q, want greedy", cfg.Algorithms[1].Label)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Error("Load() accepted a missing file")
	}
}

func TestValidateDefaults(t *testing.T) {
	cfg := Config{Algorithms: []AlgorithmConfig{{Name: AlgoHillClimbing}}}

	if err := cfg.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults() error = %v", err)
	}
	if cfg.Problem.Kind != KindAssignment {
		t.Errorf("default kind = %q, want assignment", cfg.Problem.Kind)
	}
	if cfg.Problem.Size != 8 {
		t.Errorf("default size = %d, want 8", cfg.Problem.Size)
	}
	if cfg.Problem.Seed != 1 {
		t.Errorf("default seed = %d, want 1", cfg.Problem.Seed)
	}
	if cfg.Algorithms[0].Label != AlgoHillClimbing {
		t.Errorf("default label = %q, want the algorithm name", cfg.Algorithms[0].Label)
	}
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr error
	}{
		{
			"unknown kind",
			Config{
				Problem:    ProblemConfig{Kind: "tsp"},
				Algorithms: []AlgorithmConfig{{Name: AlgoAnnealing}},
			},
			ErrUnknownKind,
		},
		{
			"unknown algorithm",
			Config{Algorithms: []AlgorithmConfig{{Name: "tabu"}}},
			ErrUnknownAlgorithm,
		},
		{
			"no algorithms",
			Config{},
			ErrNoAlgorithms,
		},
		{
			"size too small",
			Config{
				Problem:    ProblemConfig{Size: 1},
				Algorithms: []AlgorithmConfig{{Name: AlgoAnnealing}},
			},
			ErrBadSize,
		},
		{
			"edge probability out of range",
			Config{
				Problem:    ProblemConfig{Kind: KindPartition, EdgeProb: 1.5},
				Algorithms: []AlgorithmConfig{{Name: AlgoAnnealing}},
			},
			ErrBadEdgeProb,
		},
		{
			"goal-directed algorithm on partition",
			Config{
				Problem:    ProblemConfig{Kind: KindPartition},
				Algorithms: []AlgorithmConfig{{Name: AlgoBestFirst}},
			},
			ErrNeedsGoal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.ValidateAndSetDefaults(); !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateAndSetDefaults() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
