package heuristic_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/roadpath/astar"
	"github.com/katalvlaran/roadpath/builder"
	"github.com/katalvlaran/roadpath/geo"
	"github.com/katalvlaran/roadpath/heuristic"
	"github.com/katalvlaran/roadpath/roadgraph"
)

// coordMap is a CoordSource backed by a plain map.
type coordMap map[roadgraph.NodeID]roadgraph.Coord

func (m coordMap) Coordinates(id roadgraph.NodeID) roadgraph.Coord { return m[id] }

func TestHaversine_KnownDistance(t *testing.T) {
	src := coordMap{
		1: geo.FromDegrees(39.952583, -75.165222), // Philadelphia
		2: geo.FromDegrees(40.712776, -74.005974), // New York
	}
	h := heuristic.Haversine(src)
	assert.InDelta(t, 129_600, h(1, 2), 1_500)
	assert.Equal(t, h(1, 2), h(2, 1))
	assert.Zero(t, h(1, 1))
}

func TestHaversine_OneDegreeOfLatitude(t *testing.T) {
	src := coordMap{1: geo.FromDegrees(0, 0), 2: geo.FromDegrees(1, 0)}
	want := heuristic.EarthRadiusMeters * math.Pi / 180
	assert.InDelta(t, want, heuristic.Haversine(src)(1, 2), 0.5)
}

func TestZero(t *testing.T) {
	assert.Zero(t, heuristic.Zero(1, 99))
}

func TestScaled(t *testing.T) {
	h := heuristic.Scaled(func(_, _ roadgraph.NodeID) float64 { return 10 }, 0.5)
	assert.Equal(t, 5.0, h(1, 2))
}

// On networks whose weights are never shorter than the great circle, the
// haversine estimate must not exceed the true shortest-path cost.
func TestHaversine_NeverOverestimates(t *testing.T) {
	ctors := map[string]builder.Constructor{
		"grid":      builder.Grid(8, 8),
		"geometric": builder.RandomGeometric(120, 4),
	}
	for name, ctor := range ctors {
		t.Run(name, func(t *testing.T) {
			g, err := builder.Build(ctor, builder.WithSeed(7), builder.WithDetour(1, 1.6), builder.WithOneWayRatio(0.2))
			require.NoError(t, err)
			h := heuristic.Haversine(g)

			goals := []roadgraph.NodeID{1, roadgraph.NodeID(g.NodeCount() / 2), roadgraph.NodeID(g.NodeCount())}
			for _, goal := range goals {
				for u := roadgraph.NodeID(1); int(u) <= g.NodeCount(); u++ {
					res, err := astar.Dijkstra(g, u, goal)
					require.NoError(t, err)
					if !res.Found {
						continue
					}
					assert.LessOrEqual(t, h(u, goal), float64(res.Cost)+1e-6, "h(%d,%d)", u, goal)
				}
			}
		})
	}
}

// Consistency: h(u) ≤ w(u,v) + h(v) across every arc.
func TestHaversine_Consistent(t *testing.T) {
	g, err := builder.Build(builder.RandomGeometric(200, 5), builder.WithSeed(3), builder.WithDetour(1, 1.3))
	require.NoError(t, err)
	h := heuristic.Haversine(g)
	goal := roadgraph.NodeID(17)
	for u := roadgraph.NodeID(1); int(u) <= g.NodeCount(); u++ {
		for _, a := range g.Neighbors(u) {
			assert.LessOrEqual(t, h(u, goal), float64(a.Weight)+h(a.To, goal)+1e-6)
		}
	}
}
