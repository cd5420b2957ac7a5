package astar

import (
	"fmt"
	"math"
	"slices"

	"github.com/katalvlaran/roadpath/frontier"
	"github.com/katalvlaran/roadpath/heuristic"
	"github.com/katalvlaran/roadpath/roadgraph"
	"github.com/katalvlaran/roadpath/visited"
)

// Engine answers shortest-path queries on one graph. It holds no per-query
// state, so a single Engine may serve concurrent Solve calls.
type Engine struct {
	g    Graph
	opts Options
}

// New validates the configuration and returns an Engine bound to g.
// Without options the engine behaves as Dijkstra.
func New(g Graph, opts ...Option) (*Engine, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Heuristic == nil {
		return nil, ErrNilHeuristic
	}

	return &Engine{g: g, opts: cfg}, nil
}

// Name returns the engine label.
func (e *Engine) Name() string { return e.opts.Name }

// Graph returns the graph the engine searches.
func (e *Engine) Graph() Graph { return e.g }

// Solve computes a minimum-cost path from start to goal.
//
// An unreachable goal yields Found == false with a nil error. Errors are
// reserved for invalid IDs and data that breaks the non-negative weight
// precondition.
func (e *Engine) Solve(start, goal roadgraph.NodeID) (Result, error) {
	// 1) Validate endpoints against the dense ID range.
	n := e.g.NodeCount()
	if err := checkNode(start, n); err != nil {
		return Result{Cost: Unreachable}, fmt.Errorf("start: %w", err)
	}
	if err := checkNode(goal, n); err != nil {
		return Result{Cost: Unreachable}, fmt.Errorf("goal: %w", err)
	}

	// 2) Trivial query: no frontier, no expansion.
	if start == goal {
		return Result{Cost: 0, Path: []roadgraph.NodeID{start}, Found: true}, nil
	}

	// 3) Fresh per-call state, then run.
	r := newRunner(e.g, e.opts, n, goal)
	r.seed(start)

	return r.process()
}

// AStar solves one query with the haversine heuristic over g's coordinates.
// Later options override the defaults, including the heuristic.
//
// A graph that reports Stats with some, but not all, nodes lacking coordinates
// is refused with ErrMissingCoords. A graph with no coordinates at all is fine:
// every estimate is then zero.
func AStar(g SpatialGraph, start, goal roadgraph.NodeID, opts ...Option) (Result, error) {
	if g == nil {
		return Result{Cost: Unreachable}, ErrNilGraph
	}
	if s, ok := g.(statsSource); ok {
		if st := s.Stats(); st.MissingCoords > 0 && st.MissingCoords < st.Nodes {
			return Result{Cost: Unreachable}, fmt.Errorf("%w: %d of %d", ErrMissingCoords, st.MissingCoords, st.Nodes)
		}
	}
	base := []Option{WithName(NameAStar), WithHeuristic(heuristic.Haversine(g))}
	e, err := New(g, append(base, opts...)...)
	if err != nil {
		return Result{Cost: Unreachable}, err
	}

	return e.Solve(start, goal)
}

type statsSource interface {
	Stats() roadgraph.Stats
}

// Dijkstra solves one query with the zero heuristic.
func Dijkstra(g Graph, start, goal roadgraph.NodeID, opts ...Option) (Result, error) {
	e, err := New(g, opts...)
	if err != nil {
		return Result{Cost: Unreachable}, err
	}

	return e.Solve(start, goal)
}

func checkNode(id roadgraph.NodeID, n int) error {
	if id < 1 || int(id) > n {
		return fmt.Errorf("%w: %d not in [1, %d]", ErrInvalidNode, id, n)
	}
	return nil
}

// runner holds the mutable state for a single search.
//
// g-scores are lazy: g[v] is meaningful only when v == start or pred[v] != 0.
// ID 0 is never a node, so pred doubles as the "has a recorded cost" flag.
type runner struct {
	graph  Graph
	opts   Options
	goal   roadgraph.NodeID
	start  roadgraph.NodeID
	g      []int64            // best known cost from start
	pred   []roadgraph.NodeID // predecessor on the best known path
	closed *visited.Set       // finalized nodes
	open   frontier.Queue     // lazy-deletion frontier keyed by f = g + h
	res    Result
}

func newRunner(g Graph, opts Options, n int, goal roadgraph.NodeID) *runner {
	return &runner{
		graph:  g,
		opts:   opts,
		goal:   goal,
		g:      make([]int64, n+1),
		pred:   make([]roadgraph.NodeID, n+1),
		closed: visited.New(n),
		open:   opts.NewQueue(min(n, 1<<16)),
		res:    Result{Cost: Unreachable},
	}
}

// known reports whether v has a recorded g-score.
func (r *runner) known(v roadgraph.NodeID) bool {
	return v == r.start || r.pred[v] != 0
}

// seed records g(start) = 0 and pushes start with priority h(start, goal).
func (r *runner) seed(start roadgraph.NodeID) {
	r.start = start
	r.g[start] = 0
	r.push(start, 0)
}

func (r *runner) push(v roadgraph.NodeID, g int64) {
	r.open.Push(v, float64(g)+r.opts.Heuristic(v, r.goal))
	r.res.Pushes++
}

// process is the main loop. It pops the best entry, stops at the goal, skips
// stale duplicates and otherwise finalizes the node and relaxes its arcs.
func (r *runner) process() (Result, error) {
	for {
		// 1) Empty frontier: the goal is unreachable.
		top, ok := r.open.Pop()
		if !ok {
			return r.res, nil
		}
		u := top.Node

		// 2) Goal test on pop, before the stale check.
		if u == r.goal {
			r.res.Cost = r.g[u]
			r.res.Path = r.path()
			r.res.Found = true
			return r.res, nil
		}

		// 3) Lazy deletion.
		if r.closed.Contains(u) {
			r.res.StalePops++
			continue
		}

		// 4) Finalize u.
		r.closed.Add(u)
		r.res.Expansions++
		if r.opts.OnExpand != nil {
			r.opts.OnExpand(u, r.g[u])
		}

		// 5) Relax outgoing arcs.
		if err := r.relax(u); err != nil {
			return Result{Cost: Unreachable}, err
		}
	}
}

// relax pushes an extra frontier entry for every neighbor whose tentative
// cost strictly improves. Existing entries are never updated in place.
func (r *runner) relax(u roadgraph.NodeID) error {
	gu := r.g[u]
	for _, a := range r.graph.Neighbors(u) {
		v := a.To
		if v < 1 || int(v) >= len(r.pred) {
			return fmt.Errorf("%w: arc %d→%d leaves the graph", ErrInvalidNode, u, v)
		}
		if r.closed.Contains(v) {
			continue
		}
		if a.Weight < 0 {
			return fmt.Errorf("%w: %d→%d weight=%d", ErrNegativeWeight, u, v, a.Weight)
		}
		if a.Weight > math.MaxInt64-gu {
			return fmt.Errorf("%w: %d→%d", ErrCostOverflow, u, v)
		}

		tentative := gu + a.Weight
		if r.known(v) && tentative >= r.g[v] {
			continue
		}
		r.g[v] = tentative
		r.pred[v] = u
		if r.opts.OnRelax != nil {
			r.opts.OnRelax(u, v, tentative)
		}
		r.push(v, tentative)
	}

	return nil
}

// path follows predecessors from goal back to start and reverses them.
func (r *runner) path() []roadgraph.NodeID {
	var p []roadgraph.NodeID
	for v := r.goal; ; v = r.pred[v] {
		p = append(p, v)
		if v == r.start {
			break
		}
	}
	slices.Reverse(p)

	return p
}
