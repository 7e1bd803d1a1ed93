package assign

import (
	"context"
	"math"
	"testing"

	"github.com/matzehuels/searchspace/pkg/search"
)

// forEachPermutation invokes fn with every permutation of 0..n-1, for the
// brute-force reference optima the formulation tests compare against.
func forEachPermutation(n int, fn func(perm []int)) {
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	var recurse func(k int)
	recurse = func(k int) {
		if k == n {
			fn(perm)
			return
		}
		for i := k; i < n; i++ {
			perm[k], perm[i] = perm[i], perm[k]
			recurse(k + 1)
			perm[k], perm[i] = perm[i], perm[k]
		}
	}
	recurse(0)
}

func bruteForceOptimum(m Matrix) float64 {
	best := math.Inf(1)
	forEachPermutation(len(m), func(perm []int) {
		if c := m.Cost(perm); c < best {
			best = c
		}
	})
	return best
}

func TestTreeProblemRejectsInvalidMatrix(t *testing.T) {
	if _, err := NewTreeProblem(Matrix{{1, 2}, {3}}); err == nil {
		t.Error("NewTreeProblem() accepted a ragged matrix")
	}
}

func TestTreeProblemInitial(t *testing.T) {
	p, err := NewTreeProblem(Matrix{{1, 5}, {5, 1}})
	if err != nil {
		t.Fatalf("NewTreeProblem() error = %v", err)
	}

	root := p.Initial()
	if root.Cost != 0 {
		t.Errorf("root cost = %v, want 0", root.Cost)
	}
	if root.State.Complete() {
		t.Error("root state reports complete")
	}
	if got := len(root.State.Free); got != 2 {
		t.Errorf("root has %d free columns, want 2", got)
	}
	if p.GoalTest(root) {
		t.Error("GoalTest(root) = true, want false")
	}
}

func TestTreeProblemRootBound(t *testing.T) {
	// Cheapest entry per row is 1, so the root bound is 2: the cost of the
	// optimal assignment (0,0) and (1,1).
	p, err := NewTreeProblem(Matrix{{1, 5}, {5, 1}})
	if err != nil {
		t.Fatalf("NewTreeProblem() error = %v", err)
	}

	if got := p.NodeValue(p.Initial()); got != 2 {
		t.Errorf("NodeValue(root) = %v, want 2", got)
	}
}

func TestTreeProblemBranching(t *testing.T) {
	// A node with k unassigned rows has exactly k² successors.
	p, err := NewTreeProblem(RandomMatrix(3, search.NewRand(1)))
	if err != nil {
		t.Fatalf("NewTreeProblem() error = %v", err)
	}

	root := p.Initial()
	depth1Count := 0
	var firstChild *search.Node[Assignment]
	for child := range p.Successors(root) {
		depth1Count++
		if firstChild == nil {
			firstChild = child
		}
	}
	if depth1Count != 9 {
		t.Errorf("root has %d successors, want 9", depth1Count)
	}

	depth2Count := 0
	for range p.Successors(firstChild) {
		depth2Count++
	}
	if depth2Count != 4 {
		t.Errorf("depth-1 node has %d successors, want 4", depth2Count)
	}
}

func TestTreeProblemChildCosts(t *testing.T) {
	m := RandomMatrix(4, search.NewRand(5))
	p, err := NewTreeProblem(m)
	if err != nil {
		t.Fatalf("NewTreeProblem() error = %v", err)
	}

	for child := range p.Successors(p.Initial()) {
		row := child.Action.A
		col := child.Action.B
		if child.Cost != m[row][col] {
			t.Errorf("child (%d,%d) cost = %v, want %v", row, col, child.Cost, m[row][col])
		}
		if child.State.Rows[row] != col {
			t.Errorf("child (%d,%d) did not record the assignment", row, col)
		}
		if len(child.State.Free) != 3 {
			t.Errorf("child free set has %d columns, want 3", len(child.State.Free))
		}
	}
}

func TestTreeProblemGoal(t *testing.T) {
	p, err := NewTreeProblem(Matrix{{1, 5}, {5, 1}})
	if err != nil {
		t.Fatalf("NewTreeProblem() error = %v", err)
	}

	goal := search.NewNode(Assignment{Rows: []int{0, 1}}, 2)
	if !p.GoalTest(goal) {
		t.Error("GoalTest(complete) = false, want true")
	}

	partial := search.NewNode(Assignment{Rows: []int{0, Unassigned}, Free: []int{1}}, 1)
	if p.GoalTest(partial) {
		t.Error("GoalTest(partial) = true, want false")
	}
}

func TestTreeProblemBoundIsAdmissible(t *testing.T) {
	// The root bound must never exceed the true optimum, including on
	// matrices with negative entries.
	for _, seed := range []uint64{1, 2, 3, 4, 5} {
		for n := 2; n <= 5; n++ {
			m := RandomMatrix(n, search.NewRand(seed))
			p, err := NewTreeProblem(m)
			if err != nil {
				t.Fatalf("NewTreeProblem() error = %v", err)
			}

			bound := p.NodeValue(p.Initial())
			optimum := bruteForceOptimum(m)
			if bound > optimum+1e-9 {
				t.Errorf("seed %d n=%d: root bound %v exceeds optimum %v", seed, n, bound, optimum)
			}
		}
	}
}

func TestTreeProblemStateKeyIgnoresFillOrder(t *testing.T) {
	m := RandomMatrix(3, search.NewRand(1))
	p, err := NewTreeProblem(m)
	if err != nil {
		t.Fatalf("NewTreeProblem() error = %v", err)
	}

	root := p.Initial()

	// Fill (0,1) then (1,0), and (1,0) then (0,1); the states coincide.
	var viaRowZero, viaRowOne *search.Node[Assignment]
	for a := range p.Successors(root) {
		if a.Action.A == 0 && a.Action.B == 1 {
			for b := range p.Successors(a) {
				if b.Action.A == 1 && b.Action.B == 0 {
					viaRowZero = b
				}
			}
		}
		if a.Action.A == 1 && a.Action.B == 0 {
			for b := range p.Successors(a) {
				if b.Action.A == 0 && b.Action.B == 1 {
					viaRowOne = b
				}
			}
		}
	}
	if viaRowZero == nil || viaRowOne == nil {
		t.Fatal("expected both fill orders to be generated")
	}
	if p.StateKey(viaRowZero) != p.StateKey(viaRowOne) {
		t.Errorf("StateKey differs across fill orders: %q vs %q",
			p.StateKey(viaRowZero), p.StateKey(viaRowOne))
	}
	if viaRowZero.Cost != viaRowOne.Cost {
		t.Errorf("cost differs across fill orders: %v vs %v", viaRowZero.Cost, viaRowOne.Cost)
	}
}

func TestBestFirstMatchesBruteForce(t *testing.T) {
	for _, seed := range []uint64{7, 8, 9} {
		for n := 2; n <= 5; n++ {
			m := RandomMatrix(n, search.NewRand(seed))
			p, err := NewTreeProblem(m)
			if err != nil {
				t.Fatalf("NewTreeProblem() error = %v", err)
			}

			goal, err := (search.BestFirst[Assignment]{Dedupe: true}).Solve(context.Background(), p)
			if err != nil {
				t.Fatalf("seed %d n=%d: Solve() error = %v", seed, n, err)
			}

			optimum := bruteForceOptimum(m)
			if math.Abs(goal.Cost-optimum) > 1e-9 {
				t.Errorf("seed %d n=%d: best-first cost %v, brute force %v", seed, n, goal.Cost, optimum)
			}
			if !goal.State.Complete() {
				t.Errorf("seed %d n=%d: goal state incomplete", seed, n)
			}
		}
	}
}

func TestBeamOnTreeProblem(t *testing.T) {
	// Beam search must return a complete assignment even when width
	// pruning costs it optimality.
	m := RandomMatrix(5, search.NewRand(13))
	p, err := NewTreeProblem(m)
	if err != nil {
		t.Fatalf("NewTreeProblem() error = %v", err)
	}

	goal, err := (search.Beam[Assignment]{Width: 3}).Solve(context.Background(), p)
	if err != nil {
		t.Fatalf("Solve() error = %v", err)
	}
	if !goal.State.Complete() {
		t.Error("beam returned an incomplete assignment")
	}
	if optimum := bruteForceOptimum(m); goal.Cost < optimum-1e-9 {
		t.Errorf("beam cost %v beats the brute-force optimum %v", goal.Cost, optimum)
	}
}
