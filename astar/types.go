package astar

import (
	"errors"

	"github.com/katalvlaran/roadpath/frontier"
	"github.com/katalvlaran/roadpath/heuristic"
	"github.com/katalvlaran/roadpath/roadgraph"
)

// Sentinel errors returned by the engine.
var (
	// ErrNilGraph indicates that a nil graph was passed to New.
	ErrNilGraph = errors.New("astar: graph is nil")

	// ErrInvalidNode indicates a start or goal outside [1, NodeCount()].
	ErrInvalidNode = errors.New("astar: invalid node")

	// ErrNegativeWeight indicates that relaxation met an arc with weight < 0.
	ErrNegativeWeight = errors.New("astar: negative edge weight encountered")

	// ErrCostOverflow indicates that a path cost no longer fits in int64.
	ErrCostOverflow = errors.New("astar: path cost overflows int64")

	// ErrMissingCoords indicates an AStar call on a graph where only some nodes
	// have coordinates; the rest would sit at (0°, 0°) and break the estimate.
	ErrMissingCoords = errors.New("astar: graph has nodes without coordinates")

	// ErrNilHeuristic indicates WithHeuristic(nil).
	ErrNilHeuristic = errors.New("astar: heuristic is nil")
)

// Unreachable is the Result.Cost reported when no path exists.
const Unreachable int64 = -1

// Default engine names, used as labels by reporting and metrics.
const (
	NameAStar    = "astar"
	NameDijkstra = "dijkstra"
)

// Graph is the read-only view the engine needs from a graph store.
// *roadgraph.Graph satisfies it.
type Graph interface {
	NodeCount() int
	Neighbors(id roadgraph.NodeID) []roadgraph.Arc
}

// SpatialGraph is a Graph that can also place its nodes on the globe, which is
// what the haversine heuristic needs.
type SpatialGraph interface {
	Graph
	heuristic.CoordSource
}

// Result is the outcome of one Solve call.
//
// Found == false means the goal is unreachable from the start; Cost is then
// Unreachable and Path is empty. It is a normal outcome, never an error.
type Result struct {
	Cost       int64              // optimal path cost, or Unreachable
	Path       []roadgraph.NodeID // start..goal inclusive; nil when unreachable
	Expansions int                // nodes finalized (popped and not stale)
	Pushes     int                // frontier insertions, seed included
	StalePops  int                // entries discarded by lazy deletion
	Found      bool
}

// Options configures an Engine.
type Options struct {
	Name      string
	Heuristic heuristic.Func
	NewQueue  func(capacity int) frontier.Queue // capacity is a sizing hint
	OnExpand  func(node roadgraph.NodeID, g int64)
	OnRelax   func(from, to roadgraph.NodeID, g int64)
}

// Option represents a functional option for configuring an Engine.
type Option func(*Options)

// WithHeuristic sets the h(n) estimate. It must be admissible for the result
// to be optimal. A nil function makes New fail with ErrNilHeuristic.
func WithHeuristic(h heuristic.Func) Option {
	return func(o *Options) {
		o.Heuristic = h
	}
}

// WithName labels the engine for reports and metrics.
func WithName(name string) Option {
	return func(o *Options) {
		o.Name = name
	}
}

// WithFrontier replaces the default binary heap with another Queue.
func WithFrontier(newQueue func(capacity int) frontier.Queue) Option {
	return func(o *Options) {
		if newQueue != nil {
			o.NewQueue = newQueue
		}
	}
}

// WithOnExpand registers a hook called each time a node is finalized, with
// its optimal cost from the start.
func WithOnExpand(fn func(node roadgraph.NodeID, g int64)) Option {
	return func(o *Options) {
		o.OnExpand = fn
	}
}

// WithOnRelax registers a hook called each time an arc improves the
// tentative cost of its target.
func WithOnRelax(fn func(from, to roadgraph.NodeID, g int64)) Option {
	return func(o *Options) {
		o.OnRelax = fn
	}
}

// DefaultOptions returns the Dijkstra configuration: zero heuristic and a
// binary-heap frontier.
func DefaultOptions() Options {
	return Options{
		Name:      NameDijkstra,
		Heuristic: heuristic.Zero,
		NewQueue: func(capacity int) frontier.Queue {
			return frontier.NewHeap(capacity)
		},
	}
}
