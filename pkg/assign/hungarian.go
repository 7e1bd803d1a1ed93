package assign

import (
	"fmt"
	"math"
)

// Hungarian solves the assignment problem exactly using the Kuhn-Munkres
// algorithm with potentials (the Jonker-Volgenant formulation), in O(n³)
// time. It returns the optimal row→column assignment and its total cost.
//
// The search formulations in this package explore the same problem
// heuristically; Hungarian is the reference baseline their results are
// measured against.
func Hungarian(costs Matrix) ([]int, float64, error) {
	if err := costs.Validate(); err != nil {
		return nil, 0, fmt.Errorf("hungarian: %w", err)
	}
	n := len(costs)
	const inf = math.MaxFloat64 / 2

	// 1-indexed internals keep the index arithmetic clean; column 0 is the
	// virtual column augmenting paths start from.
	u := make([]float64, n+1)   // row potentials
	v := make([]float64, n+1)   // column potentials
	p := make([]int, n+1)       // p[j] = row currently assigned to column j
	way := make([]int, n+1)     // way[j] = previous column on the augmenting path
	minv := make([]float64, n+1)
	used := make([]bool, n+1)

	for i := 1; i <= n; i++ {
		p[0] = i
		j0 := 0
		for j := 0; j <= n; j++ {
			minv[j] = inf
			used[j] = false
		}

		for {
			used[j0] = true
			i0 := p[j0]
			delta := inf
			j1 := 0

			for j := 1; j <= n; j++ {
				if used[j] {
					continue
				}
				cur := costs[i0-1][j-1] - u[i0] - v[j]
				if cur < minv[j] {
					minv[j] = cur
					way[j] = j0
				}
				if minv[j] < delta {
					delta = minv[j]
					j1 = j
				}
			}

			for j := 0; j <= n; j++ {
				if used[j] {
					u[p[j]] += delta
					v[j] -= delta
				} else {
					minv[j] -= delta
				}
			}

			j0 = j1
			if p[j0] == 0 {
				break
			}
		}

		// Augment along the stored path.
		for j0 != 0 {
			j1 := way[j0]
			p[j0] = p[j1]
			j0 = j1
		}
	}

	assignment := make([]int, n)
	for j := 1; j <= n; j++ {
		assignment[p[j]-1] = j - 1
	}
	return assignment, costs.Cost(assignment), nil
}
