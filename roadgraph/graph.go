package roadgraph

import (
	"fmt"
	"sort"
)

// Graph is an immutable directed road network. Build one with NewBuilder or
// Load; the zero value is an empty graph with no nodes.
type Graph struct {
	offsets []int   // len NodeCount()+2; arcs of u are arcs[offsets[u]:offsets[u+1]]
	arcs    []Arc   // grouped by source, sorted by target
	coords  []Coord // len NodeCount()+1; coords[0] unused
	stats   Stats
}

// NodeCount returns the number of nodes; valid IDs are 1..NodeCount().
// Complexity: O(1).
func (g *Graph) NodeCount() int {
	if len(g.coords) == 0 {
		return 0
	}
	return len(g.coords) - 1
}

// EdgeCount returns the number of stored arcs (after duplicate collapse).
// Complexity: O(1).
func (g *Graph) EdgeCount() int {
	return len(g.arcs)
}

// Valid reports whether id is inside [1, NodeCount()].
func (g *Graph) Valid(id NodeID) bool {
	return id >= 1 && int(id) <= g.NodeCount()
}

// Check returns ErrInvalidNode, annotated with id and the valid range, when id
// is not a node of g.
func (g *Graph) Check(id NodeID) error {
	if g.Valid(id) {
		return nil
	}
	return fmt.Errorf("%w: %d not in [1, %d]", ErrInvalidNode, id, g.NodeCount())
}

// Neighbors returns the outgoing arcs of u, sorted by target ID. The slice
// aliases the graph's storage and must be treated as read-only; its capacity
// is clipped so an append by the caller cannot overwrite another node's arcs.
// An invalid u yields nil.
//
// Complexity: O(1).
func (g *Graph) Neighbors(u NodeID) []Arc {
	if !g.Valid(u) {
		return nil
	}
	lo, hi := g.offsets[u], g.offsets[u+1]

	return g.arcs[lo:hi:hi]
}

// OutDegree returns the number of outgoing arcs of u (0 for invalid IDs).
func (g *Graph) OutDegree(u NodeID) int {
	if !g.Valid(u) {
		return 0
	}
	return g.offsets[u+1] - g.offsets[u]
}

// Coordinates returns the fixed-point coordinate of u. An invalid u yields the
// zero Coord.
func (g *Graph) Coordinates(u NodeID) Coord {
	if !g.Valid(u) {
		return Coord{}
	}
	return g.coords[u]
}

// EdgeCost returns the weight of the arc u→v. The boolean is false when no such
// arc exists, which callers treat as an infinite cost. It is meant for
// reporting; the search engines never call it.
//
// Complexity: O(log deg(u)).
func (g *Graph) EdgeCost(u, v NodeID) (int64, bool) {
	arcs := g.Neighbors(u)
	i := sort.Search(len(arcs), func(i int) bool { return arcs[i].To >= v })
	if i < len(arcs) && arcs[i].To == v {
		return arcs[i].Weight, true
	}

	return 0, false
}

// Stats returns the counters collected while the graph was built.
func (g *Graph) Stats() Stats {
	return g.stats
}
