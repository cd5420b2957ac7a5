package analysis_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/roadpath/analysis"
)

func sampleRecords() []analysis.Record {
	return []analysis.Record{
		{
			Scenario: "hop", Map: "tiny", From: "Manhattan", To: "ManhattanNeighbour",
			Start: 1, Goal: 2, AStarCost: 6, DijkstraCost: 6,
			AStarExpansions: 1, DijkstraExpansions: 1,
			AStarTime: 1500 * time.Microsecond, DijkstraTime: 2 * time.Millisecond,
			Status: analysis.StatusOK, PathLine: "1 - (6) - 2",
		},
		{
			Scenario: "sea", Map: "islands", From: "IslandA", To: "IslandB",
			Start: 1, Goal: 3, AStarCost: -1, DijkstraCost: -1,
			AStarExpansions: 2, DijkstraExpansions: 2, Improvement: 0,
			Status: analysis.StatusUnreachable,
		},
		{
			Scenario: "liar", Map: "tiny", AStarCost: 5, DijkstraCost: 6,
			AStarExpansions: 3, DijkstraExpansions: 4, Improvement: 25,
			Status: analysis.StatusCostMismatch,
		},
	}
}

func openStore(t *testing.T) *analysis.Store {
	t.Helper()
	s, err := analysis.OpenStore(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_SaveAndRecords(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	id := analysis.NewRunID()

	require.NoError(t, s.Save(ctx, id, sampleRecords()))

	got, err := s.Records(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, sampleRecords(), got)

	none, err := s.Records(ctx, "no-such-run")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestStore_Runs(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	first, second := analysis.NewRunID(), analysis.NewRunID()
	require.NotEqual(t, first, second)
	require.NoError(t, s.Save(ctx, first, sampleRecords()))
	time.Sleep(2 * time.Millisecond)
	require.NoError(t, s.Save(ctx, second, sampleRecords()[:1]))

	runs, err := s.Runs(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	assert.Equal(t, second, runs[0].ID, "newest first")
	assert.Equal(t, 1, runs[0].Records)
	assert.Equal(t, 0, runs[0].Failed)

	assert.Equal(t, first, runs[1].ID)
	assert.Equal(t, 3, runs[1].Records)
	assert.Equal(t, 1, runs[1].Failed)
	assert.False(t, runs[1].CreatedAt.After(runs[0].CreatedAt))
}

func TestStore_DuplicateRunRollsBack(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	id := analysis.NewRunID()

	require.NoError(t, s.Save(ctx, id, sampleRecords()[:1]))
	err := s.Save(ctx, id, sampleRecords())
	require.Error(t, err)

	got, err := s.Records(ctx, id)
	require.NoError(t, err)
	assert.Len(t, got, 1, "the failed save left nothing behind")
}

func TestStore_EmptyRun(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	require.NoError(t, s.Save(ctx, "empty", nil))

	runs, err := s.Runs(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, 0, runs[0].Records)
}
