// Command roadpath loads a DIMACS road map, finds the cheapest route between
// two node IDs and writes it as a path line.
//
//	roadpath [flags] <start_id> <goal_id> <map> <output_file>
//
// <map> is the base name shared by <map>.gr and <map>.co (optionally
// gzip-compressed). It is tried as given first, then under -maps-dir.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/katalvlaran/roadpath/astar"
	"github.com/katalvlaran/roadpath/config"
	"github.com/katalvlaran/roadpath/heuristic"
	"github.com/katalvlaran/roadpath/report"
	"github.com/katalvlaran/roadpath/roadgraph"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return 1
	}
	cfg, err := LoadConfig(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		if !errors.Is(err, errUsage) {
			fmt.Fprintln(stderr, usageLine)
		}
		return 2
	}
	logger, err := cfg.Logger(stderr)
	if err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return 2
	}
	graphOpts, err := cfg.GraphOptions(logger)
	if err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return 2
	}

	base := cfg.Map
	if !roadgraph.Exists(base) {
		base = cfg.MapPath(cfg.Map)
	}
	fmt.Fprintf(stdout, "Loading graph from %s...\n", base)
	g, err := roadgraph.Load(base, graphOpts...)
	if err != nil {
		fmt.Fprintf(stderr, "Error loading graph: %v\n", err)
		return 1
	}

	fmt.Fprintf(stdout, "Computing route from %d to %d...\n", cfg.Start, cfg.Goal)
	var engine *astar.Engine
	if cfg.Algorithm == astar.NameDijkstra {
		engine, err = astar.New(g)
	} else {
		engine, err = astar.New(g, astar.WithName(astar.NameAStar), astar.WithHeuristic(heuristic.Haversine(g)))
	}
	if err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return 1
	}

	t0 := time.Now()
	res, err := engine.Solve(cfg.Start, cfg.Goal)
	elapsed := time.Since(t0)
	if err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return 1
	}
	logger.Debug("search finished", "engine", engine.Name(), "expansions", res.Expansions,
		"pushes", res.Pushes, "stale_pops", res.StalePops, "elapsed", elapsed)

	summary := report.Summary{Nodes: g.NodeCount(), Arcs: g.Stats().ArcsAdded, Result: res, Elapsed: elapsed}
	if err := summary.Write(stdout); err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return 1
	}
	if !res.Found {
		return 0
	}

	if err := report.WritePathFile(cfg.Output, g, res.Path); err != nil {
		fmt.Fprintln(stderr, "Error writing output file:", err)
		return 1
	}
	fmt.Fprintf(stdout, "Solution saved to %s\n", cfg.Output)
	if cfg.Polyline {
		fmt.Fprintf(stdout, "Polyline: %s\n", report.Polyline(g, res.Path))
	}

	return 0
}
