package analysis

import (
	"fmt"
	"time"

	"github.com/katalvlaran/roadpath/astar"
	"github.com/katalvlaran/roadpath/metrics"
	"github.com/katalvlaran/roadpath/reach"
	"github.com/katalvlaran/roadpath/roadgraph"
)

// Status classifies a comparison.
type Status string

const (
	// StatusOK: both engines found the same optimal cost.
	StatusOK Status = "OK"
	// StatusCostMismatch: the engines disagree on cost or reachability.
	StatusCostMismatch Status = "COST_MISMATCH"
	// StatusUnreachable: no path, and none was expected.
	StatusUnreachable Status = "UNREACHABLE"
	// StatusNoPath: no path, although the endpoints share a component.
	StatusNoPath Status = "NO_PATH"
	// StatusPhantomPath: a path was found between nodes expected to be apart.
	StatusPhantomPath Status = "PHANTOM_PATH"
	// StatusMissedPath: no path between nodes that can reach each other.
	StatusMissedPath Status = "MISSED_PATH"
	// StatusIdentity: start and goal are the same node.
	StatusIdentity Status = "IDENTITY"
	// StatusError: the scenario could not run (missing city, bad map...).
	StatusError Status = "ERROR"
)

// Run is one engine's side of a comparison.
type Run struct {
	Cost       int64
	Found      bool
	Expansions int
	Pushes     int
	Elapsed    time.Duration
	Path       []roadgraph.NodeID
}

// Comparison is the outcome of Compare.
type Comparison struct {
	Start, Goal       roadgraph.NodeID
	AStar             Run
	Dijkstra          Run
	Improvement       float64 // % fewer expansions for A*, relative to Dijkstra
	ExpectUnreachable bool
	ExpectReachable   bool
	Status            Status
}

// CompareOption configures Compare.
type CompareOption func(*compareConfig)

type compareConfig struct {
	expectUnreachable bool
	components        *reach.Components
	strong            *reach.Components
	metrics           *metrics.Collector
}

// ExpectUnreachable declares that the pair should have no path.
func ExpectUnreachable() CompareOption {
	return func(c *compareConfig) { c.expectUnreachable = true }
}

// WithComponents derives the expectation from weak components: endpoints in
// different components are expected to be unreachable.
func WithComponents(comps *reach.Components) CompareOption {
	return func(c *compareConfig) { c.components = comps }
}

// WithStrongComponents derives the opposite expectation: endpoints in the
// same strong component must be joined by a path.
func WithStrongComponents(comps *reach.Components) CompareOption {
	return func(c *compareConfig) { c.strong = comps }
}

// WithMetrics records both runs on m.
func WithMetrics(m *metrics.Collector) CompareOption {
	return func(c *compareConfig) { c.metrics = m }
}

// Compare solves start→goal with A* and with Dijkstra, timing each.
func Compare(g astar.SpatialGraph, start, goal roadgraph.NodeID, opts ...CompareOption) (Comparison, error) {
	var cfg compareConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	as, err := timed(cfg.metrics, astar.NameAStar, func() (astar.Result, error) {
		return astar.AStar(g, start, goal)
	})
	if err != nil {
		return Comparison{}, fmt.Errorf("analysis: astar %d→%d: %w", start, goal, err)
	}
	dj, err := timed(cfg.metrics, astar.NameDijkstra, func() (astar.Result, error) {
		return astar.Dijkstra(g, start, goal)
	})
	if err != nil {
		return Comparison{}, fmt.Errorf("analysis: dijkstra %d→%d: %w", start, goal, err)
	}

	c := Comparison{
		Start:             start,
		Goal:              goal,
		AStar:             as,
		Dijkstra:          dj,
		Improvement:       Improvement(as.Expansions, dj.Expansions),
		ExpectUnreachable: cfg.expectUnreachable,
	}
	if cfg.components != nil && !cfg.components.Connected(start, goal) {
		c.ExpectUnreachable = true
	}
	if cfg.strong != nil && cfg.strong.Connected(start, goal) {
		c.ExpectReachable = true
	}
	c.Status = classify(c)

	return c, nil
}

// Improvement returns 100·(dijkstra−astar)/dijkstra, or 0 when Dijkstra
// expanded nothing.
func Improvement(astarExpansions, dijkstraExpansions int) float64 {
	if dijkstraExpansions <= 0 {
		return 0
	}
	return 100 * float64(dijkstraExpansions-astarExpansions) / float64(dijkstraExpansions)
}

func classify(c Comparison) Status {
	switch {
	case c.AStar.Found != c.Dijkstra.Found || c.AStar.Cost != c.Dijkstra.Cost:
		return StatusCostMismatch
	case c.Start == c.Goal:
		return StatusIdentity
	case c.AStar.Found && c.ExpectUnreachable:
		return StatusPhantomPath
	case !c.AStar.Found && c.ExpectReachable:
		return StatusMissedPath
	case !c.AStar.Found && c.ExpectUnreachable:
		return StatusUnreachable
	case !c.AStar.Found:
		return StatusNoPath
	default:
		return StatusOK
	}
}

func timed(m *metrics.Collector, name string, solve func() (astar.Result, error)) (Run, error) {
	t0 := time.Now()
	res, err := solve()
	d := time.Since(t0)
	if m != nil {
		m.Observe(name, res, err, d)
	}
	if err != nil {
		return Run{}, err
	}

	return Run{
		Cost:       res.Cost,
		Found:      res.Found,
		Expansions: res.Expansions,
		Pushes:     res.Pushes,
		Elapsed:    d,
		Path:       res.Path,
	}, nil
}
