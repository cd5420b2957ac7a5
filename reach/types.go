// Package reach answers "which nodes can this node get to at all?" with a
// breadth-first walk over directed arcs, and groups the graph into weakly or
// strongly connected components.
//
// All of them ignore weights. They are cheap pre-checks for the shortest-path
// engines: a goal outside the start's reach set is unreachable whatever the
// heuristic, two nodes in different weak components can never be joined, and
// two nodes in the same strong component must always be.
package reach

import (
	"context"
	"errors"
	"fmt"

	"github.com/katalvlaran/roadpath/roadgraph"
)

// Sentinel errors.
var (
	// ErrGraphNil is returned if a nil graph is passed.
	ErrGraphNil = errors.New("reach: graph is nil")

	// ErrStartInvalid is returned when the start ID is outside [1, NodeCount()].
	ErrStartInvalid = errors.New("reach: start node invalid")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("reach: invalid option supplied")
)

// Graph is the read-only view reach walks. *roadgraph.Graph satisfies it.
type Graph interface {
	NodeCount() int
	Neighbors(id roadgraph.NodeID) []roadgraph.Arc
}

// Option configures From.
type Option func(*Options)

// Options holds parameters and callbacks for From.
type Options struct {
	// Ctx allows cancellation; checked once per dequeued node.
	Ctx context.Context

	// OnVisit is called when a node is dequeued. Returning an error aborts
	// the walk and the error is propagated.
	OnVisit func(id roadgraph.NodeID, depth int) error

	// MaxDepth, if > 0, stops the walk beyond this many hops.
	MaxDepth int

	err error
}

// DefaultOptions returns no depth limit, a background context and a no-op hook.
func DefaultOptions() Options {
	return Options{
		Ctx:     context.Background(),
		OnVisit: func(roadgraph.NodeID, int) error { return nil },
	}
}

// WithContext sets a custom context for cancellation.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithOnVisit registers a visit hook.
func WithOnVisit(fn func(id roadgraph.NodeID, depth int) error) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnVisit = fn
		}
	}
}

// WithMaxDepth limits the walk to d hops.
//
//	d > 0: limit to depth d
//	d == 0: no limit
//	d < 0: ErrOptionViolation
func WithMaxDepth(d int) Option {
	return func(o *Options) {
		if d < 0 {
			o.err = fmt.Errorf("%w: MaxDepth cannot be negative (%d)", ErrOptionViolation, d)
			return
		}
		o.MaxDepth = d
	}
}

// Result is the outcome of From.
//
// Depth and Parent are indexed by node ID; Depth is -1 and Parent is 0 for
// nodes the walk never reached.
type Result struct {
	Start  roadgraph.NodeID
	Order  []roadgraph.NodeID
	Depth  []int32
	Parent []roadgraph.NodeID
}

// Reached reports whether id was visited.
func (r *Result) Reached(id roadgraph.NodeID) bool {
	return id >= 0 && int(id) < len(r.Depth) && r.Depth[id] >= 0
}

// Count returns the number of visited nodes, start included.
func (r *Result) Count() int { return len(r.Order) }

// PathTo returns the fewest-hops path from Start to dest.
func (r *Result) PathTo(dest roadgraph.NodeID) ([]roadgraph.NodeID, error) {
	if !r.Reached(dest) {
		return nil, fmt.Errorf("reach: no path to %d", dest)
	}
	path := make([]roadgraph.NodeID, r.Depth[dest]+1)
	for i, cur := len(path)-1, dest; i >= 0; i, cur = i-1, r.Parent[cur] {
		path[i] = cur
	}

	return path, nil
}
