package roadgraph

import (
	"fmt"
	"slices"
)

// pendingArc is an arc waiting for Build; seq preserves insertion order so
// DuplicateLastWins can be applied after sorting.
type pendingArc struct {
	from, to NodeID
	weight   int64
	seq      int
}

// Builder accumulates nodes and arcs and freezes them into a Graph.
// A Builder is not safe for concurrent use and can be built only once.
type Builder struct {
	opts     options
	coords   []Coord
	hasCoord []bool
	pending  []pendingArc
	built    bool
	nextSeq  int
}

// NewBuilder prepares a graph with nodeCount nodes (IDs 1..nodeCount).
// It returns ErrBadNodeCount for a negative count.
//
// Complexity: O(nodeCount) to allocate the coordinate table.
func NewBuilder(nodeCount int, opts ...Option) (*Builder, error) {
	if nodeCount < 0 {
		return nil, fmt.Errorf("%w: %d", ErrBadNodeCount, nodeCount)
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return &Builder{
		opts:     o,
		coords:   make([]Coord, nodeCount+1),
		hasCoord: make([]bool, nodeCount+1),
	}, nil
}

// NodeCount returns the node count fixed at construction.
func (b *Builder) NodeCount() int {
	return len(b.coords) - 1
}

func (b *Builder) check(id NodeID) error {
	if id < 1 || int(id) > b.NodeCount() {
		return fmt.Errorf("%w: %d not in [1, %d]", ErrInvalidNode, id, b.NodeCount())
	}
	return nil
}

// SetCoord assigns the coordinate of node id. Setting it twice keeps the last value.
func (b *Builder) SetCoord(id NodeID, c Coord) error {
	if b.built {
		return ErrBuilderUsed
	}
	if err := b.check(id); err != nil {
		return err
	}
	b.coords[id] = c
	b.hasCoord[id] = true

	return nil
}

// AddArc records the directed arc from→to with weight w.
// Both endpoints must be valid and w must be non-negative.
func (b *Builder) AddArc(from, to NodeID, w int64) error {
	if b.built {
		return ErrBuilderUsed
	}
	if err := b.check(from); err != nil {
		return fmt.Errorf("arc source: %w", err)
	}
	if err := b.check(to); err != nil {
		return fmt.Errorf("arc target: %w", err)
	}
	if w < 0 {
		return fmt.Errorf("%w: %d→%d weight=%d", ErrNegativeWeight, from, to, w)
	}
	b.pending = append(b.pending, pendingArc{from: from, to: to, weight: w, seq: b.nextSeq})
	b.nextSeq++

	return nil
}

// Build sorts the pending arcs, collapses duplicates according to the policy,
// and lays everything out in CSR form. The Builder cannot be used afterwards.
//
// Complexity: O(V + E log E) time, O(V + E) space.
func (b *Builder) Build() (*Graph, error) {
	if b.built {
		return nil, ErrBuilderUsed
	}
	b.built = true
	n := b.NodeCount()

	// 1) Order by (from, to, seq) so duplicates are adjacent and in insertion order.
	slices.SortFunc(b.pending, func(x, y pendingArc) int {
		switch {
		case x.from != y.from:
			return int(x.from) - int(y.from)
		case x.to != y.to:
			return int(x.to) - int(y.to)
		default:
			return x.seq - y.seq
		}
	})

	// 2) Collapse runs of the same (from, to) pair.
	arcs := make([]Arc, 0, len(b.pending))
	sources := make([]NodeID, 0, len(b.pending))
	for i := 0; i < len(b.pending); {
		p := b.pending[i]
		w := p.weight
		j := i + 1
		for ; j < len(b.pending) && b.pending[j].from == p.from && b.pending[j].to == p.to; j++ {
			switch b.opts.policy {
			case DuplicateMinWins:
				w = min(w, b.pending[j].weight)
			default:
				w = b.pending[j].weight
			}
		}
		arcs = append(arcs, Arc{To: p.to, Weight: w})
		sources = append(sources, p.from)
		i = j
	}

	// 3) Prefix sums over out-degrees give the CSR offsets.
	offsets := make([]int, n+2)
	for _, s := range sources {
		offsets[s+1]++
	}
	stats := Stats{
		Nodes:         n,
		Arcs:          len(arcs),
		ArcsAdded:     len(b.pending),
		DuplicateArcs: len(b.pending) - len(arcs),
		Policy:        b.opts.policy,
	}
	for u := 1; u <= n+1; u++ {
		if u <= n && offsets[u+1] > stats.MaxOutDegree {
			stats.MaxOutDegree = offsets[u+1]
		}
		offsets[u] += offsets[u-1]
	}

	for i, a := range arcs {
		if i == 0 || a.Weight < stats.MinWeight {
			stats.MinWeight = a.Weight
		}
		if a.Weight > stats.MaxWeight {
			stats.MaxWeight = a.Weight
		}
	}
	for id := 1; id <= n; id++ {
		if !b.hasCoord[id] {
			stats.MissingCoords++
		}
	}

	g := &Graph{
		offsets: offsets,
		arcs:    arcs,
		coords:  b.coords,
		stats:   stats,
	}
	b.pending = nil
	b.hasCoord = nil

	return g, nil
}
