package search

import (
	"context"
	"errors"
	"testing"
)

func TestBestFirstFindsOptimalPath(t *testing.T) {
	// Reaching 7 from 0 in steps of 1 and 2 needs at least four steps.
	p := &boundedLine{lineProblem{start: 0, limit: 7, target: 7}}

	n, err := BestFirst[int]{}.Solve(context.Background(), p)
	if err != nil {
		t.Fatalf("Solve() error = %v", err)
	}
	if n.State != 7 {
		t.Errorf("goal state = %d, want 7", n.State)
	}
	if n.Cost != 4 {
		t.Errorf("goal cost = %v, want 4", n.Cost)
	}
}

func TestBestFirstWithoutEvaluator(t *testing.T) {
	// Every node carries the weakest bound, so expansion degenerates to
	// insertion order. Unit step costs keep the first goal found cheapest.
	p := &lineProblem{start: 0, limit: 7, target: 7}

	n, err := BestFirst[int]{}.Solve(context.Background(), p)
	if err != nil {
		t.Fatalf("Solve() error = %v", err)
	}
	if n.Cost != 4 {
		t.Errorf("goal cost = %v, want 4", n.Cost)
	}
}

func TestBestFirstNoSolution(t *testing.T) {
	// The target sits beyond the reachable range.
	p := &boundedLine{lineProblem{start: 0, limit: 5, target: 9}}

	if _, err := (BestFirst[int]{}).Solve(context.Background(), p); !errors.Is(err, ErrNoSolution) {
		t.Errorf("Solve() error = %v, want ErrNoSolution", err)
	}
}

func TestBestFirstExpansionLimit(t *testing.T) {
	p := &boundedLine{lineProblem{start: 0, limit: 30, target: 30}}

	if _, err := (BestFirst[int]{Limit: 2}).Solve(context.Background(), p); !errors.Is(err, ErrNoSolution) {
		t.Errorf("Solve() error = %v, want ErrNoSolution at the expansion limit", err)
	}
}

func TestBestFirstDedupe(t *testing.T) {
	p := &boundedLine{lineProblem{start: 0, limit: 12, target: 12}}

	count := func(dedupe bool) int {
		expanded := 0
		progress := func(e, g int, best float64) { expanded = e }
		if _, err := (BestFirst[int]{Dedupe: dedupe, Progress: progress}).Solve(context.Background(), p); err != nil {
			t.Fatalf("Solve(dedupe=%v) error = %v", dedupe, err)
		}
		return expanded
	}

	plain := count(false)
	deduped := count(true)
	if deduped >= plain {
		t.Errorf("deduped expansions = %d, want fewer than %d", deduped, plain)
	}
	// With dedup each of the 13 states is expanded at most once.
	if deduped > 13 {
		t.Errorf("deduped expansions = %d, want at most one per state", deduped)
	}
}

func TestBestFirstCancelled(t *testing.T) {
	p := &boundedLine{lineProblem{start: 0, limit: 30, target: 30}}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := (BestFirst[int]{}).Solve(ctx, p); !errors.Is(err, context.Canceled) {
		t.Errorf("Solve() error = %v, want context.Canceled", err)
	}
}

func TestBeamFindsGoal(t *testing.T) {
	p := &boundedLine{lineProblem{start: 0, limit: 9, target: 9}}

	n, err := Beam[int]{Width: 2}.Solve(context.Background(), p)
	if err != nil {
		t.Fatalf("Solve() error = %v", err)
	}
	if n.State != 9 {
		t.Errorf("goal state = %d, want 9", n.State)
	}
	if n.Cost != 5 {
		t.Errorf("goal cost = %v, want 5", n.Cost)
	}
}

func TestBeamWidthBoundsFrontier(t *testing.T) {
	p := &boundedLine{lineProblem{start: 0, limit: 9, target: 9}}

	// Width 1 is pure greedy; the bound still leads it to the goal here.
	n, err := Beam[int]{Width: 1}.Solve(context.Background(), p)
	if err != nil {
		t.Fatalf("Solve() error = %v", err)
	}
	if n.State != 9 {
		t.Errorf("goal state = %d, want 9", n.State)
	}
}

func TestFrontierOrdering(t *testing.T) {
	p := &boundedLine{lineProblem{start: 0, limit: 9, target: 9}}

	fr := &frontier[int]{}
	root := p.Initial()
	a := root.Child(3, Action{}, 5)
	b := root.Child(6, Action{}, 1)
	c := root.Child(9, Action{}, 3)
	for _, n := range []*Node[int]{a, b, c} {
		pushValued[int](fr, p, n)
	}

	fr.truncate(2)
	if fr.Len() != 2 {
		t.Fatalf("truncate left %d items, want 2", fr.Len())
	}

	// b has the lowest bound (cost 1, remaining 2), so it must survive and
	// pop first.
	first := fr.items[0]
	for _, it := range fr.items[1:] {
		if it.value < first.value {
			first = it
		}
	}
	if first.node != b {
		t.Errorf("lowest-valued survivor state = %d, want 6", first.node.State)
	}
}
