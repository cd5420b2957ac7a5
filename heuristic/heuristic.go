// Package heuristic supplies the h(n) estimates used by the A* engine.
//
// A heuristic must never exceed the true remaining cost (admissible) and should
// satisfy h(u) ≤ w(u,v) + h(v) for every arc (consistent). Haversine meets both
// whenever arc weights are road lengths in meters, because no road between two
// points is shorter than the great circle through them. Zero turns A* into
// Dijkstra.
package heuristic

import (
	"github.com/katalvlaran/roadpath/geo"
	"github.com/katalvlaran/roadpath/roadgraph"
)

// EarthRadiusMeters is the mean Earth radius used by Haversine.
const EarthRadiusMeters = geo.EarthRadiusMeters

// Func estimates the cost of the cheapest path from one node to another.
type Func func(from, to roadgraph.NodeID) float64

// CoordSource resolves a node ID to its fixed-point coordinate.
// *roadgraph.Graph satisfies it.
type CoordSource interface {
	Coordinates(id roadgraph.NodeID) roadgraph.Coord
}

// Haversine returns the great-circle distance in meters between the two nodes'
// coordinates, as reported by src.
func Haversine(src CoordSource) Func {
	return func(from, to roadgraph.NodeID) float64 {
		if from == to {
			return 0
		}
		return geo.Haversine(src.Coordinates(from), src.Coordinates(to))
	}
}

// Zero is the null heuristic.
func Zero(_, _ roadgraph.NodeID) float64 { return 0 }

// Scaled multiplies h by factor. A factor above 1 trades optimality for fewer
// expansions (weighted A*); below 1 it stays admissible but expands more.
func Scaled(h Func, factor float64) Func {
	return func(from, to roadgraph.NodeID) float64 {
		return h(from, to) * factor
	}
}
