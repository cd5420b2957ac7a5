package roadgraph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/roadpath/roadgraph"
)

func TestBuilder_NegativeNodeCount(t *testing.T) {
	_, err := roadgraph.NewBuilder(-1)
	assert.ErrorIs(t, err, roadgraph.ErrBadNodeCount)
}

func TestBuilder_RejectsInvalidEndpoints(t *testing.T) {
	b, err := roadgraph.NewBuilder(2)
	require.NoError(t, err)

	assert.ErrorIs(t, b.AddArc(0, 1, 1), roadgraph.ErrInvalidNode)
	assert.ErrorIs(t, b.AddArc(1, 3, 1), roadgraph.ErrInvalidNode)
	assert.ErrorIs(t, b.SetCoord(3, roadgraph.Coord{}), roadgraph.ErrInvalidNode)
}

func TestBuilder_RejectsNegativeWeight(t *testing.T) {
	b, err := roadgraph.NewBuilder(2)
	require.NoError(t, err)

	err = b.AddArc(1, 2, -5)
	assert.ErrorIs(t, err, roadgraph.ErrNegativeWeight)
	assert.Contains(t, err.Error(), "1→2")
}

func TestBuilder_DuplicateLastWins(t *testing.T) {
	b, err := roadgraph.NewBuilder(2)
	require.NoError(t, err)
	require.NoError(t, b.AddArc(1, 2, 7))
	require.NoError(t, b.AddArc(1, 2, 3))
	require.NoError(t, b.AddArc(1, 2, 9))
	g, err := b.Build()
	require.NoError(t, err)

	w, ok := g.EdgeCost(1, 2)
	require.True(t, ok)
	assert.Equal(t, int64(9), w)
	assert.Equal(t, 1, g.EdgeCount())
	assert.Equal(t, 2, g.Stats().DuplicateArcs)
	assert.Equal(t, 3, g.Stats().ArcsAdded)
}

func TestBuilder_DuplicateMinWins(t *testing.T) {
	b, err := roadgraph.NewBuilder(2, roadgraph.WithDuplicatePolicy(roadgraph.DuplicateMinWins))
	require.NoError(t, err)
	require.NoError(t, b.AddArc(1, 2, 7))
	require.NoError(t, b.AddArc(1, 2, 3))
	require.NoError(t, b.AddArc(1, 2, 9))
	g, err := b.Build()
	require.NoError(t, err)

	w, ok := g.EdgeCost(1, 2)
	require.True(t, ok)
	assert.Equal(t, int64(3), w)
	assert.Equal(t, roadgraph.DuplicateMinWins, g.Stats().Policy)
}

func TestBuilder_OppositeDirectionsAreDistinct(t *testing.T) {
	b, err := roadgraph.NewBuilder(2)
	require.NoError(t, err)
	require.NoError(t, b.AddArc(1, 2, 4))
	require.NoError(t, b.AddArc(2, 1, 6))
	g, err := b.Build()
	require.NoError(t, err)

	assert.Equal(t, 2, g.EdgeCount())
	w, _ := g.EdgeCost(2, 1)
	assert.Equal(t, int64(6), w)
}

func TestBuilder_UnsortedInputIsGroupedPerNode(t *testing.T) {
	b, err := roadgraph.NewBuilder(5)
	require.NoError(t, err)
	require.NoError(t, b.AddArc(5, 1, 1))
	require.NoError(t, b.AddArc(2, 4, 1))
	require.NoError(t, b.AddArc(2, 3, 1))
	require.NoError(t, b.AddArc(1, 5, 1))
	g, err := b.Build()
	require.NoError(t, err)

	assert.Equal(t, []roadgraph.Arc{{To: 5, Weight: 1}}, g.Neighbors(1))
	assert.Equal(t, []roadgraph.Arc{{To: 3, Weight: 1}, {To: 4, Weight: 1}}, g.Neighbors(2))
	assert.Empty(t, g.Neighbors(3))
	assert.Empty(t, g.Neighbors(4))
	assert.Equal(t, []roadgraph.Arc{{To: 1, Weight: 1}}, g.Neighbors(5))
}

func TestBuilder_SingleUse(t *testing.T) {
	b, err := roadgraph.NewBuilder(1)
	require.NoError(t, err)
	_, err = b.Build()
	require.NoError(t, err)

	_, err = b.Build()
	assert.ErrorIs(t, err, roadgraph.ErrBuilderUsed)
	assert.ErrorIs(t, b.AddArc(1, 1, 0), roadgraph.ErrBuilderUsed)
}

func TestBuilder_EmptyGraph(t *testing.T) {
	b, err := roadgraph.NewBuilder(0)
	require.NoError(t, err)
	g, err := b.Build()
	require.NoError(t, err)
	assert.Equal(t, 0, g.NodeCount())
	assert.Equal(t, 0, g.EdgeCount())
}

func TestParseDuplicatePolicy(t *testing.T) {
	p, err := roadgraph.ParseDuplicatePolicy("MIN")
	require.NoError(t, err)
	assert.Equal(t, roadgraph.DuplicateMinWins, p)

	p, err = roadgraph.ParseDuplicatePolicy("")
	require.NoError(t, err)
	assert.Equal(t, roadgraph.DuplicateLastWins, p)
	assert.Equal(t, "last", p.String())

	_, err = roadgraph.ParseDuplicatePolicy("sum")
	assert.ErrorIs(t, err, roadgraph.ErrUnknownPolicy)
}
