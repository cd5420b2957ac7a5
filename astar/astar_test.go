package astar_test

import (
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/roadpath/astar"
	"github.com/katalvlaran/roadpath/builder"
	"github.com/katalvlaran/roadpath/frontier"
	"github.com/katalvlaran/roadpath/heuristic"
	"github.com/katalvlaran/roadpath/roadgraph"
)

// diamond builds 1→2 (5), 2→3 (5), 1→3 (20), 3→4 (1) plus extra isolated nodes.
func diamond(t testing.TB, extra int) *roadgraph.Graph {
	t.Helper()
	b, err := roadgraph.NewBuilder(4 + extra)
	require.NoError(t, err)
	require.NoError(t, b.AddArc(1, 2, 5))
	require.NoError(t, b.AddArc(2, 3, 5))
	require.NoError(t, b.AddArc(1, 3, 20))
	require.NoError(t, b.AddArc(3, 4, 1))
	g, err := b.Build()
	require.NoError(t, err)

	return g
}

// arcGraph is a hand-written Graph that bypasses the store's validation.
type arcGraph struct {
	n   int
	adj map[roadgraph.NodeID][]roadgraph.Arc
}

func (a arcGraph) NodeCount() int { return a.n }
func (a arcGraph) Neighbors(id roadgraph.NodeID) []roadgraph.Arc { return a.adj[id] }

// solvers runs every test against both engines.
var solvers = map[string]func(g *roadgraph.Graph, s, t roadgraph.NodeID) (astar.Result, error){
	"astar": func(g *roadgraph.Graph, s, t roadgraph.NodeID) (astar.Result, error) {
		return astar.AStar(g, s, t)
	},
	"dijkstra": func(g *roadgraph.Graph, s, t roadgraph.NodeID) (astar.Result, error) {
		return astar.Dijkstra(g, s, t)
	},
}

func TestSolve_ConcreteScenario(t *testing.T) {
	g := diamond(t, 0)
	for name, solve := range solvers {
		t.Run(name, func(t *testing.T) {
			res, err := solve(g, 1, 4)
			require.NoError(t, err)
			assert.True(t, res.Found)
			assert.Equal(t, int64(11), res.Cost)
			assert.Equal(t, []roadgraph.NodeID{1, 2, 3, 4}, res.Path)
			assert.Equal(t, 3, res.Expansions)
			assert.Equal(t, 5, res.Pushes)
		})
	}
}

func TestSolve_Identity(t *testing.T) {
	g := diamond(t, 0)
	for name, solve := range solvers {
		t.Run(name, func(t *testing.T) {
			for id := roadgraph.NodeID(1); id <= 4; id++ {
				res, err := solve(g, id, id)
				require.NoError(t, err)
				assert.True(t, res.Found)
				assert.Zero(t, res.Cost)
				assert.Equal(t, []roadgraph.NodeID{id}, res.Path)
				assert.Zero(t, res.Expansions)
			}
		})
	}
}

func TestSolve_UnreachableIsNotAnError(t *testing.T) {
	g := diamond(t, 1) // node 5 has no arcs
	for name, solve := range solvers {
		t.Run(name, func(t *testing.T) {
			res, err := solve(g, 1, 5)
			require.NoError(t, err)
			assert.False(t, res.Found)
			assert.Equal(t, astar.Unreachable, res.Cost)
			assert.Empty(t, res.Path)
			// Every node reachable from 1 is finalized; 3's first entry goes stale.
			assert.Equal(t, 4, res.Expansions)
			assert.Equal(t, 1, res.StalePops)

			res, err = solve(g, 4, 1) // against arc direction
			require.NoError(t, err)
			assert.False(t, res.Found)
		})
	}
}

func TestSolve_DisconnectedComponents(t *testing.T) {
	g, err := builder.Build(builder.Islands(builder.Grid(4, 4), builder.Grid(3, 3)), builder.WithSeed(1))
	require.NoError(t, err)
	for name, solve := range solvers {
		t.Run(name, func(t *testing.T) {
			res, err := solve(g, 1, roadgraph.NodeID(g.NodeCount()))
			require.NoError(t, err)
			assert.False(t, res.Found)
			assert.Equal(t, astar.Unreachable, res.Cost)
			assert.Empty(t, res.Path)
		})
	}
}

func TestSolve_InvalidNode(t *testing.T) {
	g := diamond(t, 0)
	cases := []struct {
		name        string
		start, goal roadgraph.NodeID
		prefix      string
	}{
		{"zero start", 0, 4, "start: "},
		{"negative start", -3, 4, "start: "},
		{"goal past end", 1, 5, "goal: "},
		{"zero goal", 1, 0, "goal: "},
	}
	for name, solve := range solvers {
		for _, tc := range cases {
			t.Run(name+"/"+tc.name, func(t *testing.T) {
				res, err := solve(g, tc.start, tc.goal)
				require.ErrorIs(t, err, astar.ErrInvalidNode)
				assert.Contains(t, err.Error(), tc.prefix)
				assert.Equal(t, astar.Unreachable, res.Cost)
			})
		}
	}
}

func TestNew_Validation(t *testing.T) {
	_, err := astar.New(nil)
	assert.ErrorIs(t, err, astar.ErrNilGraph)

	_, err = astar.AStar(nil, 1, 2)
	assert.ErrorIs(t, err, astar.ErrNilGraph)

	_, err = astar.New(diamond(t, 0), astar.WithHeuristic(nil))
	assert.ErrorIs(t, err, astar.ErrNilHeuristic)
}

func TestEngine_Name(t *testing.T) {
	g := diamond(t, 0)
	e, err := astar.New(g)
	require.NoError(t, err)
	assert.Equal(t, astar.NameDijkstra, e.Name())

	e, err = astar.New(g, astar.WithName("bidir"))
	require.NoError(t, err)
	assert.Equal(t, "bidir", e.Name())
	assert.Same(t, g, e.Graph())
}

func TestSolve_NegativeWeightFailsFast(t *testing.T) {
	g := arcGraph{n: 3, adj: map[roadgraph.NodeID][]roadgraph.Arc{
		1: {{To: 2, Weight: 4}},
		2: {{To: 3, Weight: -2}},
	}}
	_, err := astar.Dijkstra(g, 1, 3)
	require.ErrorIs(t, err, astar.ErrNegativeWeight)
	assert.Contains(t, err.Error(), "2→3")
}

func TestSolve_ArcOutsideGraph(t *testing.T) {
	g := arcGraph{n: 2, adj: map[roadgraph.NodeID][]roadgraph.Arc{
		1: {{To: 7, Weight: 1}},
	}}
	_, err := astar.Dijkstra(g, 1, 2)
	assert.ErrorIs(t, err, astar.ErrInvalidNode)
}

func TestSolve_CostOverflow(t *testing.T) {
	g := arcGraph{n: 3, adj: map[roadgraph.NodeID][]roadgraph.Arc{
		1: {{To: 2, Weight: math.MaxInt64 - 1}},
		2: {{To: 3, Weight: 2}},
	}}
	_, err := astar.Dijkstra(g, 1, 3)
	assert.ErrorIs(t, err, astar.ErrCostOverflow)
}

func TestSolve_ZeroWeightArcs(t *testing.T) {
	g := arcGraph{n: 4, adj: map[roadgraph.NodeID][]roadgraph.Arc{
		1: {{To: 2, Weight: 0}, {To: 3, Weight: 1}},
		2: {{To: 3, Weight: 0}, {To: 1, Weight: 0}},
		3: {{To: 4, Weight: 0}},
	}}
	res, err := astar.Dijkstra(g, 1, 4)
	require.NoError(t, err)
	assert.Equal(t, int64(0), res.Cost)
	assert.Equal(t, []roadgraph.NodeID{1, 2, 3, 4}, res.Path)
}

func TestSolve_Hooks(t *testing.T) {
	g := diamond(t, 0)
	var expanded []roadgraph.NodeID
	var costs []int64
	relaxed := map[[2]roadgraph.NodeID]int64{}

	res, err := astar.Dijkstra(g, 1, 4,
		astar.WithOnExpand(func(n roadgraph.NodeID, cost int64) {
			expanded = append(expanded, n)
			costs = append(costs, cost)
		}),
		astar.WithOnRelax(func(from, to roadgraph.NodeID, cost int64) {
			relaxed[[2]roadgraph.NodeID{from, to}] = cost
		}),
	)
	require.NoError(t, err)
	assert.Equal(t, []roadgraph.NodeID{1, 2, 3}, expanded)
	assert.Equal(t, []int64{0, 5, 10}, costs)
	assert.Len(t, expanded, res.Expansions)
	assert.Equal(t, map[[2]roadgraph.NodeID]int64{
		{1, 2}: 5, {1, 3}: 20, {2, 3}: 10, {3, 4}: 11,
	}, relaxed)
}

func TestSolve_ListFrontierAgrees(t *testing.T) {
	g, err := builder.Build(builder.RandomGeometric(150, 4), builder.WithSeed(11), builder.WithDetour(1, 1.5))
	require.NoError(t, err)
	list := astar.WithFrontier(func(int) frontier.Queue { return &frontier.List{} })

	for _, pair := range [][2]roadgraph.NodeID{{1, 150}, {20, 90}, {77, 3}} {
		want, err := astar.AStar(g, pair[0], pair[1])
		require.NoError(t, err)
		got, err := astar.AStar(g, pair[0], pair[1], list)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestSolve_CustomHeuristicOverridesHaversine(t *testing.T) {
	g := diamond(t, 0)
	res, err := astar.AStar(g, 1, 4, astar.WithHeuristic(heuristic.Zero))
	require.NoError(t, err)
	want, err := astar.Dijkstra(g, 1, 4)
	require.NoError(t, err)
	assert.Equal(t, want, res)
}

func TestAStar_PartialCoordinatesRefused(t *testing.T) {
	// Node 4 has no coordinate, so it would sit at (0°, 0°).
	b, err := roadgraph.NewBuilder(4)
	require.NoError(t, err)
	for id, lat := range map[roadgraph.NodeID]int32{1: 40783100, 2: 40783110, 3: 40783120} {
		require.NoError(t, b.SetCoord(id, roadgraph.Coord{Lon: -73971200, Lat: lat}))
	}
	require.NoError(t, b.AddArc(1, 2, 100))
	require.NoError(t, b.AddArc(2, 4, 100))
	require.NoError(t, b.AddArc(4, 3, 10))
	require.NoError(t, b.AddArc(1, 3, 500))
	g, err := b.Build()
	require.NoError(t, err)

	res, err := astar.AStar(g, 1, 3)
	require.ErrorIs(t, err, astar.ErrMissingCoords)
	assert.False(t, res.Found)
	assert.Equal(t, astar.Unreachable, res.Cost)

	want, err := astar.Dijkstra(g, 1, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(210), want.Cost)
	assert.Equal(t, []roadgraph.NodeID{1, 2, 4, 3}, want.Path)
}

func TestAStar_NoCoordinatesAgreesWithDijkstra(t *testing.T) {
	g := diamond(t, 2)
	require.Equal(t, g.NodeCount(), g.Stats().MissingCoords)

	got, err := astar.AStar(g, 1, 4)
	require.NoError(t, err)
	want, err := astar.Dijkstra(g, 1, 4)
	require.NoError(t, err)
	assert.Equal(t, want.Cost, got.Cost)
	assert.Equal(t, want.Path, got.Path)
}

func TestEngine_ConcurrentSolve(t *testing.T) {
	g, err := builder.Build(builder.Grid(12, 12), builder.WithSeed(5), builder.WithDetour(1, 1.2))
	require.NoError(t, err)
	e, err := astar.New(g, astar.WithHeuristic(heuristic.Haversine(g)))
	require.NoError(t, err)

	want, err := e.Solve(1, 144)
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := e.Solve(1, 144)
			if err == nil && got.Cost != want.Cost {
				err = errors.New("cost mismatch under concurrency")
			}
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		assert.NoError(t, err)
	}
}
