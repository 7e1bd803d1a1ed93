package assign

import (
	"errors"
	"testing"

	"github.com/matzehuels/searchspace/pkg/search"
)

func TestMatrixValidate(t *testing.T) {
	tests := []struct {
		name    string
		m       Matrix
		wantErr error
	}{
		{"valid 2x2", Matrix{{1, 2}, {3, 4}}, nil},
		{"valid 1x1", Matrix{{1}}, nil},
		{"empty", Matrix{}, ErrEmptyMatrix},
		{"nil", nil, ErrEmptyMatrix},
		{"ragged", Matrix{{1, 2}, {3}}, ErrRaggedMatrix},
		{"wide", Matrix{{1, 2, 3}, {4, 5, 6}}, ErrNotSquare},
		{"tall", Matrix{{1}, {2}, {3}}, ErrNotSquare},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.m.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestMatrixCost(t *testing.T) {
	m := Matrix{{1, 5}, {5, 1}}

	tests := []struct {
		perm []int
		want float64
	}{
		{[]int{0, 1}, 2},
		{[]int{1, 0}, 10},
	}
	for _, tt := range tests {
		if got := m.Cost(tt.perm); got != tt.want {
			t.Errorf("Cost(%v) = %v, want %v", tt.perm, got, tt.want)
		}
	}
}

func TestRandomMatrixShape(t *testing.T) {
	m := RandomMatrix(5, search.NewRand(1))
	if err := m.Validate(); err != nil {
		t.Fatalf("generated matrix invalid: %v", err)
	}
	if len(m) != 5 {
		t.Errorf("matrix size = %d, want 5", len(m))
	}
}

func TestRandomMatrixDeterministic(t *testing.T) {
	a := RandomMatrix(4, search.NewRand(42))
	b := RandomMatrix(4, search.NewRand(42))
	for i := range a {
		for j := range a[i] {
			if a[i][j] != b[i][j] {
				t.Fatalf("same seed produced different matrices at (%d,%d)", i, j)
			}
		}
	}
}

func TestRandomAssignmentIsPermutation(t *testing.T) {
	for _, n := range []int{1, 2, 5, 10} {
		perm := RandomAssignment(n, search.NewRand(uint64(n)))
		if !isPermutation(perm, n) {
			t.Errorf("RandomAssignment(%d) = %v is not a permutation", n, perm)
		}
	}
}
