package assign

import (
	"errors"
	"math/rand/v2"
)

var (
	// ErrEmptyMatrix is returned when a cost matrix has no rows.
	ErrEmptyMatrix = errors.New("cost matrix is empty")

	// ErrNotSquare is returned when a cost matrix has a different number of
	// rows and columns.
	ErrNotSquare = errors.New("cost matrix must be square")

	// ErrRaggedMatrix is returned when the rows of a cost matrix have
	// inconsistent lengths.
	ErrRaggedMatrix = errors.New("cost matrix rows have inconsistent lengths")

	// ErrTooSmall is returned when a swap neighborhood is requested over
	// fewer than two positions; no valid swap exists.
	ErrTooSmall = errors.New("assignment needs at least two rows to swap")

	// ErrNotPermutation is returned when an explicit initial assignment is
	// not a permutation of the column indices.
	ErrNotPermutation = errors.New("initial assignment is not a permutation")
)

// Matrix is an n×n real-valued cost matrix. Row indices are agents (sources)
// and column indices are tasks (targets); no symmetry is assumed. A Matrix is
// treated as immutable once constructed and is shared structurally by every
// node of a search run.
type Matrix [][]float64

// Validate checks that the matrix is non-empty, square, and not ragged.
// Formulation constructors call this before any search begins; malformed
// matrices are never silently coerced.
func (m Matrix) Validate() error {
	if len(m) == 0 {
		return ErrEmptyMatrix
	}
	n := len(m)
	for _, row := range m {
		if len(row) != len(m[0]) {
			return ErrRaggedMatrix
		}
	}
	if len(m[0]) != n {
		return ErrNotSquare
	}
	return nil
}

// Cost returns the from-scratch total cost of a complete assignment:
// the sum of m[row][perm[row]] over all rows. perm must be a permutation of
// the column indices; Cost does not re-validate it.
func (m Matrix) Cost(perm []int) float64 {
	total := 0.0
	for row, col := range perm {
		total += m[row][col]
	}
	return total
}

// RandomMatrix generates an n×n cost matrix with entries drawn from the
// standard normal distribution. Negative entries are intentional: they keep
// the admissible heuristic honest (a cheapest-remaining bound over strictly
// positive costs would hide sign-handling bugs).
func RandomMatrix(n int, rng *rand.Rand) Matrix {
	m := make(Matrix, n)
	for i := range m {
		m[i] = make([]float64, n)
		for j := range m[i] {
			m[i][j] = rng.NormFloat64()
		}
	}
	return m
}

// RandomAssignment returns a uniformly random permutation of 0..n-1 using a
// Fisher-Yates shuffle over the injected source.
func RandomAssignment(n int, rng *rand.Rand) []int {
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	rng.Shuffle(n, func(i, j int) {
		perm[i], perm[j] = perm[j], perm[i]
	})
	return perm
}
