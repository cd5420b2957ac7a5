package builder_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/roadpath/builder"
	"github.com/katalvlaran/roadpath/geo"
	"github.com/katalvlaran/roadpath/roadgraph"
)

func TestGrid_Shape(t *testing.T) {
	g, err := builder.Build(builder.Grid(3, 4))
	require.NoError(t, err)
	assert.Equal(t, 12, g.NodeCount())
	// 3 rows × 3 horizontal roads + 2 × 4 vertical roads, both directions.
	assert.Equal(t, 2*(9+8), g.EdgeCount())

	// Row-major: 1 has a right neighbor 2 and an upper neighbor 5.
	_, ok := g.EdgeCost(1, 2)
	assert.True(t, ok)
	_, ok = g.EdgeCost(1, 5)
	assert.True(t, ok)
	_, ok = g.EdgeCost(4, 5) // row wrap is not a road
	assert.False(t, ok)
}

func TestGrid_WeightsFollowSpacing(t *testing.T) {
	g, err := builder.Build(builder.Grid(2, 2), builder.WithSpacing(100))
	require.NoError(t, err)
	w, ok := g.EdgeCost(1, 3)
	require.True(t, ok)
	assert.InDelta(t, 100, float64(w), 1)
	back, ok := g.EdgeCost(3, 1)
	require.True(t, ok)
	assert.Equal(t, w, back)
}

func TestBuild_WeightsNeverUndercutGreatCircle(t *testing.T) {
	g, err := builder.Build(builder.RandomGeometric(80, 3), builder.WithSeed(4), builder.WithDetour(1, 3))
	require.NoError(t, err)
	for u := roadgraph.NodeID(1); int(u) <= g.NodeCount(); u++ {
		for _, a := range g.Neighbors(u) {
			d := geo.Haversine(g.Coordinates(u), g.Coordinates(a.To))
			assert.GreaterOrEqual(t, float64(a.Weight), d)
			assert.LessOrEqual(t, float64(a.Weight), math.Ceil(d*3))
		}
	}
}

func TestBuild_Deterministic(t *testing.T) {
	opts := []builder.Option{builder.WithSeed(77), builder.WithDetour(1, 2), builder.WithOneWayRatio(0.3)}
	a, err := builder.Build(builder.RandomGeometric(60, 4), opts...)
	require.NoError(t, err)
	b, err := builder.Build(builder.RandomGeometric(60, 4), opts...)
	require.NoError(t, err)

	require.Equal(t, a.NodeCount(), b.NodeCount())
	require.Equal(t, a.EdgeCount(), b.EdgeCount())
	for u := roadgraph.NodeID(1); int(u) <= a.NodeCount(); u++ {
		assert.Equal(t, a.Coordinates(u), b.Coordinates(u))
		assert.Equal(t, a.Neighbors(u), b.Neighbors(u))
	}

	c, err := builder.Build(builder.RandomGeometric(60, 4), builder.WithSeed(78))
	require.NoError(t, err)
	assert.NotEqual(t, a.Coordinates(1), c.Coordinates(1))
}

func TestBuild_OneWayRatio(t *testing.T) {
	two, err := builder.Build(builder.Grid(6, 6))
	require.NoError(t, err)
	all, err := builder.Build(builder.Grid(6, 6), builder.WithOneWayRatio(1))
	require.NoError(t, err)
	assert.Equal(t, two.EdgeCount(), 2*all.EdgeCount())

	for u := roadgraph.NodeID(1); int(u) <= all.NodeCount(); u++ {
		for _, a := range all.Neighbors(u) {
			_, back := all.EdgeCost(a.To, u)
			assert.False(t, back, "%d↔%d should be one-way", u, a.To)
		}
	}
}

func TestRandomGeometric_Degree(t *testing.T) {
	g, err := builder.Build(builder.RandomGeometric(50, 3), builder.WithSeed(9))
	require.NoError(t, err)
	for u := roadgraph.NodeID(1); int(u) <= g.NodeCount(); u++ {
		assert.GreaterOrEqual(t, g.OutDegree(u), 3, "node %d", u)
	}
}

func TestPath(t *testing.T) {
	g, err := builder.Build(builder.Path(5), builder.WithSpacing(1000))
	require.NoError(t, err)
	assert.Equal(t, 5, g.NodeCount())
	assert.Equal(t, 8, g.EdgeCount())
	w, ok := g.EdgeCost(2, 3)
	require.True(t, ok)
	assert.InDelta(t, 1000, float64(w), 2)

	single, err := builder.Build(builder.Path(1))
	require.NoError(t, err)
	assert.Equal(t, 1, single.NodeCount())
	assert.Zero(t, single.EdgeCount())
}

func TestIslands(t *testing.T) {
	g, err := builder.Build(builder.Islands(builder.Grid(2, 3), builder.Path(4)))
	require.NoError(t, err)
	assert.Equal(t, 10, g.NodeCount())

	for u := roadgraph.NodeID(1); u <= 6; u++ {
		for _, a := range g.Neighbors(u) {
			assert.LessOrEqual(t, a.To, roadgraph.NodeID(6))
		}
	}
	for u := roadgraph.NodeID(7); u <= 10; u++ {
		for _, a := range g.Neighbors(u) {
			assert.Greater(t, a.To, roadgraph.NodeID(6))
		}
	}
	// The second island lies east of the first.
	assert.Greater(t, g.Coordinates(7).Lon, g.Coordinates(3).Lon)
}

func TestConstructorErrors(t *testing.T) {
	cases := []struct {
		name string
		ctor builder.Constructor
		want error
	}{
		{"grid rows", builder.Grid(0, 3), builder.ErrTooFewVertices},
		{"grid cols", builder.Grid(3, -1), builder.ErrTooFewVertices},
		{"path", builder.Path(0), builder.ErrTooFewVertices},
		{"geometric n", builder.RandomGeometric(1, 1), builder.ErrTooFewVertices},
		{"geometric k zero", builder.RandomGeometric(5, 0), builder.ErrInvalidNeighbors},
		{"geometric k too big", builder.RandomGeometric(5, 5), builder.ErrInvalidNeighbors},
		{"islands nil", builder.Islands(nil, builder.Path(2)), builder.ErrNilConstructor},
		{"islands inner", builder.Islands(builder.Path(2), builder.Grid(0, 0)), builder.ErrTooFewVertices},
		{"nil", nil, builder.ErrNilConstructor},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := builder.Build(tc.ctor)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestOptionPanics(t *testing.T) {
	assert.Panics(t, func() { builder.WithSpacing(0) })
	assert.Panics(t, func() { builder.WithDetour(0.9, 1.2) })
	assert.Panics(t, func() { builder.WithDetour(1.5, 1.2) })
	assert.Panics(t, func() { builder.WithOneWayRatio(1.1) })
	assert.Panics(t, func() { builder.WithOrigin(91, 0) })
	assert.NotPanics(t, func() { builder.WithDetour(1, 1) })
}

func TestWithOrigin(t *testing.T) {
	g, err := builder.Build(builder.Path(2), builder.WithOrigin(51.5, -0.12))
	require.NoError(t, err)
	lat, lon := g.Coordinates(1).Degrees()
	assert.InDelta(t, 51.5, lat, 1e-6)
	assert.InDelta(t, -0.12, lon, 1e-6)
}
