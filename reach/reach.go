package reach

import (
	"fmt"

	"github.com/katalvlaran/roadpath/roadgraph"
)

// walker encapsulates mutable BFS state.
type walker struct {
	graph Graph
	opts  Options
	queue []roadgraph.NodeID
	res   *Result
}

// From walks every node reachable from start along directed arcs.
// Returns ErrGraphNil, ErrStartInvalid, ErrOptionViolation, the context's
// error on cancellation, or any OnVisit error.
func From(g Graph, start roadgraph.NodeID, opts ...Option) (*Result, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}

	n := g.NodeCount()
	if start < 1 || int(start) > n {
		return nil, fmt.Errorf("%w: %d not in [1, %d]", ErrStartInvalid, start, n)
	}

	w := &walker{
		graph: g,
		opts:  o,
		queue: make([]roadgraph.NodeID, 0, 64),
		res: &Result{
			Start:  start,
			Depth:  make([]int32, n+1),
			Parent: make([]roadgraph.NodeID, n+1),
		},
	}
	for i := range w.res.Depth {
		w.res.Depth[i] = -1
	}

	w.enqueue(start, 0, 0)

	return w.res, w.loop()
}

// enqueue marks id seen at depth d with the given parent.
func (w *walker) enqueue(id roadgraph.NodeID, d int32, parent roadgraph.NodeID) {
	w.res.Depth[id] = d
	w.res.Parent[id] = parent
	w.queue = append(w.queue, id)
}

// loop processes the queue until empty, error, or cancellation.
func (w *walker) loop() error {
	for head := 0; head < len(w.queue); head++ {
		select {
		case <-w.opts.Ctx.Done():
			return w.opts.Ctx.Err()
		default:
		}

		u := w.queue[head]
		d := w.res.Depth[u]
		w.res.Order = append(w.res.Order, u)
		if err := w.opts.OnVisit(u, int(d)); err != nil {
			return fmt.Errorf("reach: OnVisit error at %d: %w", u, err)
		}

		if w.opts.MaxDepth > 0 && int(d)+1 > w.opts.MaxDepth {
			continue
		}
		for _, a := range w.graph.Neighbors(u) {
			if a.To < 1 || int(a.To) >= len(w.res.Depth) || w.res.Depth[a.To] >= 0 {
				continue
			}
			w.enqueue(a.To, d+1, u)
		}
	}

	return nil
}
