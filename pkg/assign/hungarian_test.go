package assign

import (
	"math"
	"testing"

	"github.com/matzehuels/searchspace/pkg/search"
)

func TestHungarianKnownCases(t *testing.T) {
	tests := []struct {
		name     string
		m        Matrix
		wantCost float64
	}{
		{
			name:     "diagonal optimum",
			m:        Matrix{{1, 5}, {5, 1}},
			wantCost: 2,
		},
		{
			name:     "anti-diagonal optimum",
			m:        Matrix{{5, 1}, {1, 5}},
			wantCost: 2,
		},
		{
			name: "classic 3x3",
			m: Matrix{
				{4, 1, 3},
				{2, 0, 5},
				{3, 2, 2},
			},
			wantCost: 5,
		},
		{
			name:     "single cell",
			m:        Matrix{{7}},
			wantCost: 7,
		},
		{
			name: "negative entries",
			m: Matrix{
				{-1, 2},
				{3, -4},
			},
			wantCost: -5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assignment, cost, err := Hungarian(tt.m)
			if err != nil {
				t.Fatalf("Hungarian() error = %v", err)
			}
			if cost != tt.wantCost {
				t.Errorf("cost = %v, want %v", cost, tt.wantCost)
			}
			if !isPermutation(assignment, len(tt.m)) {
				t.Errorf("assignment %v is not a permutation", assignment)
			}
			if c := tt.m.Cost(assignment); c != cost {
				t.Errorf("reported cost %v disagrees with assignment cost %v", cost, c)
			}
		})
	}
}

func TestHungarianMatchesBruteForce(t *testing.T) {
	for _, seed := range []uint64{1, 2, 3, 4, 5} {
		for n := 2; n <= 6; n++ {
			m := RandomMatrix(n, search.NewRand(seed))
			_, cost, err := Hungarian(m)
			if err != nil {
				t.Fatalf("seed %d n=%d: Hungarian() error = %v", seed, n, err)
			}
			if optimum := bruteForceOptimum(m); math.Abs(cost-optimum) > 1e-9 {
				t.Errorf("seed %d n=%d: Hungarian cost %v, brute force %v", seed, n, cost, optimum)
			}
		}
	}
}

func TestHungarianRejectsInvalidMatrix(t *testing.T) {
	if _, _, err := Hungarian(Matrix{}); err == nil {
		t.Error("Hungarian() accepted an empty matrix")
	}
	if _, _, err := Hungarian(Matrix{{1, 2}, {3}}); err == nil {
		t.Error("Hungarian() accepted a ragged matrix")
	}
}
