package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"

	"github.com/katalvlaran/roadpath/astar"
	"github.com/katalvlaran/roadpath/config"
	"github.com/katalvlaran/roadpath/roadgraph"
)

const usageLine = "usage: roadpath [flags] <start_id> <goal_id> <map> <output_file>"

var errUsage = errors.New(usageLine)

// Config is the resolved command line of one solve.
type Config struct {
	config.Config

	Algorithm string
	Polyline  bool

	Start  roadgraph.NodeID
	Goal   roadgraph.NodeID
	Map    string
	Output string
}

// LoadConfig resolves env and flags, then the four positional arguments.
func LoadConfig(args []string, stderr io.Writer) (Config, error) {
	cfg := Config{Config: config.FromEnv()}

	flagSet := flag.NewFlagSet("roadpath", flag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.Usage = func() {
		fmt.Fprintln(stderr, usageLine)
		flagSet.PrintDefaults()
	}
	cfg.BindCommon(flagSet)
	flagSet.StringVar(&cfg.MapsDir, "maps-dir", cfg.MapsDir, "directory searched for <map> when it is not found as given")
	flagSet.StringVar(&cfg.Algorithm, "algorithm", astar.NameAStar, "search engine: astar|dijkstra")
	flagSet.BoolVar(&cfg.Polyline, "polyline", false, "also print the path as an encoded polyline")

	if err := flagSet.Parse(args); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	if cfg.Algorithm != astar.NameAStar && cfg.Algorithm != astar.NameDijkstra {
		return Config{}, fmt.Errorf("%w: algorithm %q", config.ErrInvalid, cfg.Algorithm)
	}

	rest := flagSet.Args()
	if len(rest) != 4 {
		return Config{}, errUsage
	}
	start, err := parseNode(rest[0])
	if err != nil {
		return Config{}, err
	}
	goal, err := parseNode(rest[1])
	if err != nil {
		return Config{}, err
	}
	cfg.Start, cfg.Goal = start, goal
	cfg.Map, cfg.Output = rest[2], rest[3]

	return cfg, nil
}

func parseNode(s string) (roadgraph.NodeID, error) {
	v, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("node IDs must be integers: %q", s)
	}
	return roadgraph.NodeID(v), nil
}
