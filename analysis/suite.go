package analysis

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/katalvlaran/roadpath/metrics"
	"github.com/katalvlaran/roadpath/reach"
	"github.com/katalvlaran/roadpath/report"
	"github.com/katalvlaran/roadpath/roadgraph"
)

// Record is the flat, storable outcome of one scenario.
type Record struct {
	Scenario           string
	Map                string
	From               string
	To                 string
	Start              roadgraph.NodeID
	Goal               roadgraph.NodeID
	AStarCost          int64
	DijkstraCost       int64
	AStarExpansions    int
	DijkstraExpansions int
	AStarTime          time.Duration
	DijkstraTime       time.Duration
	Improvement        float64
	Status             Status
	Error              string
	PathLine           string
}

// Suite runs scenarios against maps on disk.
type Suite struct {
	MapsDir      string
	Scenarios    []Scenario
	GraphOptions []roadgraph.Option
	Logger       *slog.Logger
	Metrics      *metrics.Collector

	// OutDir, when set, receives one path file per scenario.
	OutDir string
}

// Run executes every scenario. Maps missing from MapsDir are skipped with a
// warning; a map that fails to load yields an ERROR record per scenario.
// ctx is checked between scenarios only.
func (s *Suite) Run(ctx context.Context) ([]Record, error) {
	log := s.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if s.OutDir != "" {
		if err := os.MkdirAll(s.OutDir, 0o755); err != nil {
			return nil, fmt.Errorf("analysis: create %s: %w", s.OutDir, err)
		}
	}

	var records []Record
	for _, group := range groupByMap(s.Scenarios) {
		if err := ctx.Err(); err != nil {
			return records, err
		}
		mapName := group[0].Map
		base := filepath.Join(s.MapsDir, mapName)
		if !roadgraph.Exists(base) {
			log.Warn("skipping map", "map", mapName, "dir", s.MapsDir)
			continue
		}

		t0 := time.Now()
		g, err := roadgraph.Load(base, s.GraphOptions...)
		if err != nil {
			log.Error("map load failed", "map", mapName, "error", err)
			for _, sc := range group {
				records = append(records, errorRecord(sc, err))
			}
			continue
		}
		st := g.Stats()
		log.Info("map loaded", "map", mapName, "nodes", st.Nodes, "arcs", st.Arcs, "elapsed", time.Since(t0))
		if s.Metrics != nil {
			s.Metrics.SetGraph(st)
		}
		comps := components{weak: reach.Weak(g), strong: reach.Strong(g)}

		for _, sc := range group {
			if err := ctx.Err(); err != nil {
				return records, err
			}
			rec := s.runOne(g, comps, sc)
			log.Info("scenario done", "scenario", sc.Name, "status", rec.Status,
				"astar_expansions", rec.AStarExpansions, "dijkstra_expansions", rec.DijkstraExpansions,
				"improvement", fmt.Sprintf("%.2f%%", rec.Improvement))
			records = append(records, rec)
		}
	}

	return records, nil
}

type components struct {
	weak, strong *reach.Components
}

func (s *Suite) runOne(g *roadgraph.Graph, comps components, sc Scenario) Record {
	start, err := Resolve(g, sc.From)
	if err != nil {
		return errorRecord(sc, fmt.Errorf("from: %w", err))
	}
	goal, err := Resolve(g, sc.To)
	if err != nil {
		return errorRecord(sc, fmt.Errorf("to: %w", err))
	}

	opts := []CompareOption{
		WithComponents(comps.weak),
		WithStrongComponents(comps.strong),
		WithMetrics(s.Metrics),
	}
	if sc.ExpectUnreachable {
		opts = append(opts, ExpectUnreachable())
	}
	c, err := Compare(g, start, goal, opts...)
	if err != nil {
		return errorRecord(sc, err)
	}

	rec := Record{
		Scenario:           sc.Name,
		Map:                sc.Map,
		From:               sc.From.String(),
		To:                 sc.To.String(),
		Start:              start,
		Goal:               goal,
		AStarCost:          c.AStar.Cost,
		DijkstraCost:       c.Dijkstra.Cost,
		AStarExpansions:    c.AStar.Expansions,
		DijkstraExpansions: c.Dijkstra.Expansions,
		AStarTime:          c.AStar.Elapsed,
		DijkstraTime:       c.Dijkstra.Elapsed,
		Improvement:        c.Improvement,
		Status:             c.Status,
		PathLine:           report.PathLine(g, c.AStar.Path),
	}
	if s.OutDir != "" {
		name := filepath.Join(s.OutDir, "solution_"+fileSafe(sc.Name)+".txt")
		if err := report.WritePathFile(name, g, c.AStar.Path); err != nil {
			rec.Error = err.Error()
		}
	}

	return rec
}

func errorRecord(sc Scenario, err error) Record {
	return Record{
		Scenario:     sc.Name,
		Map:          sc.Map,
		From:         sc.From.String(),
		To:           sc.To.String(),
		AStarCost:    -1,
		DijkstraCost: -1,
		Status:       StatusError,
		Error:        err.Error(),
	}
}

// groupByMap keeps the first-seen order of maps and of scenarios within each.
func groupByMap(scs []Scenario) [][]Scenario {
	idx := make(map[string]int)
	var groups [][]Scenario
	for _, sc := range scs {
		i, ok := idx[sc.Map]
		if !ok {
			i = len(groups)
			idx[sc.Map] = i
			groups = append(groups, nil)
		}
		groups[i] = append(groups[i], sc)
	}
	return groups
}

func fileSafe(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			return r
		default:
			return '_'
		}
	}, name)
}

// Failed reports whether any record signals a correctness problem.
func Failed(records []Record) bool {
	for _, r := range records {
		switch r.Status {
		case StatusCostMismatch, StatusPhantomPath, StatusMissedPath:
			return true
		}
	}
	return false
}

// ErrFailed is returned by commands when Failed(records) holds.
var ErrFailed = errors.New("analysis: engines disagree")
