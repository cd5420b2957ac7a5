package roadgraph

import (
	"math"

	"github.com/katalvlaran/roadpath/geo"
)

// NearestNode returns the node whose coordinate is closest (great-circle) to
// the given position in degrees. It returns false for an empty graph.
//
// This is a linear scan, O(V); it is meant for resolving a handful of query
// points per run, not for per-request spatial indexing.
func (g *Graph) NearestNode(lat, lon float64) (NodeID, bool) {
	n := g.NodeCount()
	if n == 0 {
		return 0, false
	}
	target := geo.FromDegrees(lat, lon)

	best := NodeID(0)
	bestDist := math.Inf(1)
	for id := 1; id <= n; id++ {
		d := geo.Haversine(target, g.coords[id])
		if d < bestDist {
			best, bestDist = NodeID(id), d
		}
	}

	return best, true
}
