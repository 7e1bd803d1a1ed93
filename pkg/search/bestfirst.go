package search

import (
	"container/heap"
	"context"
)

// Progress receives periodic updates during a search: the number of nodes
// expanded so far, the number of nodes generated, and the best cost or bound
// seen. Algorithms invoke it synchronously; keep implementations cheap.
type Progress func(expanded, generated int, best float64)

// BestFirst expands the frontier node with the lowest formulation value
// first. With an admissible [Evaluator] (a lower bound on completion cost)
// the first goal popped is optimal. Without one, every node carries the
// weakest bound and expansion degenerates to insertion order.
//
// The zero value searches exhaustively as a tree search. Set Dedupe to
// collapse states reached via redundant expansion orders; this requires the
// formulation to implement [StateKeyer] and keys on state alone, never on
// path identity.
type BestFirst[S any] struct {
	// Limit caps the number of expansions. 0 means unbounded.
	Limit int

	// Dedupe skips nodes whose state key has already been expanded.
	Dedupe bool

	// Progress, when non-nil, is called after every expansion.
	Progress Progress
}

// Solve runs the search until a goal node is popped, the frontier empties
// (ErrNoSolution), the expansion limit is hit (ErrNoSolution), or ctx is
// cancelled (the context error).
func (b BestFirst[S]) Solve(ctx context.Context, p Problem[S]) (*Node[S], error) {
	keyer, _ := p.(StateKeyer[S])
	useKeys := b.Dedupe && keyer != nil

	fr := &frontier[S]{}
	heap.Init(fr)
	pushValued(fr, p, p.Initial())

	closed := make(map[string]struct{})
	expanded, generated := 0, 0

	for fr.Len() > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		n := heap.Pop(fr).(*valued[S])
		if useKeys {
			key := keyer.StateKey(n.node)
			if _, dup := closed[key]; dup {
				continue
			}
			closed[key] = struct{}{}
		}

		if p.GoalTest(n.node) {
			return n.node, nil
		}

		if b.Limit > 0 && expanded >= b.Limit {
			return nil, ErrNoSolution
		}
		expanded++

		for child := range p.Successors(n.node) {
			generated++
			pushValued(fr, p, child)
		}

		if b.Progress != nil {
			b.Progress(expanded, generated, n.value)
		}
	}

	return nil, ErrNoSolution
}

// Beam is a width-limited best-first search: after each expansion the
// frontier is truncated to the Width lowest-valued nodes and the tail is
// discarded unread. It trades completeness for memory; a goal reachable only
// through a pruned node is never found.
type Beam[S any] struct {
	// Width is the maximum frontier size. Values below 1 are treated as 1.
	Width int

	// Limit caps the number of expansions. 0 means unbounded.
	Limit int

	// Progress, when non-nil, is called after every expansion.
	Progress Progress
}

// Solve runs the beam search. Error semantics match [BestFirst.Solve].
func (b Beam[S]) Solve(ctx context.Context, p Problem[S]) (*Node[S], error) {
	width := b.Width
	if width < 1 {
		width = 1
	}

	fr := &frontier[S]{}
	heap.Init(fr)
	pushValued(fr, p, p.Initial())

	expanded, generated := 0, 0

	for fr.Len() > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		n := heap.Pop(fr).(*valued[S])
		if p.GoalTest(n.node) {
			return n.node, nil
		}

		if b.Limit > 0 && expanded >= b.Limit {
			return nil, ErrNoSolution
		}
		expanded++

		for child := range p.Successors(n.node) {
			generated++
			pushValued(fr, p, child)
		}
		fr.truncate(width)

		if b.Progress != nil {
			b.Progress(expanded, generated, n.value)
		}
	}

	return nil, ErrNoSolution
}

// =============================================================================
// Frontier - Priority Queue
// =============================================================================

// valued pairs a node with its cached formulation value so the value is
// computed once per node, not once per heap comparison.
type valued[S any] struct {
	node  *Node[S]
	value float64
	seq   int // insertion order, breaks ties deterministically
}

type frontier[S any] struct {
	items []*valued[S]
	seq   int
}

func pushValued[S any](fr *frontier[S], p Problem[S], n *Node[S]) {
	fr.seq++
	heap.Push(fr, &valued[S]{node: n, value: Value(p, n), seq: fr.seq})
}

func (f *frontier[S]) Len() int { return len(f.items) }

func (f *frontier[S]) Less(i, j int) bool {
	if f.items[i].value != f.items[j].value {
		return f.items[i].value < f.items[j].value
	}
	return f.items[i].seq < f.items[j].seq
}

func (f *frontier[S]) Swap(i, j int) { f.items[i], f.items[j] = f.items[j], f.items[i] }

func (f *frontier[S]) Push(x any) { f.items = append(f.items, x.(*valued[S])) }

func (f *frontier[S]) Pop() any {
	old := f.items
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	f.items = old[:n-1]
	return item
}

// truncate drops all but the width lowest-valued entries.
func (f *frontier[S]) truncate(width int) {
	if len(f.items) <= width {
		return
	}
	kept := make([]*valued[S], 0, width)
	for range width {
		kept = append(kept, heap.Pop(f).(*valued[S]))
	}
	f.items = kept
	heap.Init(f)
}
