package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/katalvlaran/roadpath/config"
)

// Config is the resolved command line of one analysis invocation.
type Config struct {
	config.Config

	OutDir  string // path files, one per scenario
	CSVPath string
	NoStore bool
	List    bool   // list stored runs and exit
	Show    string // print a stored run and exit
	Only    string // run only scenarios on this map
}

// LoadConfig resolves env, then flags.
func LoadConfig(args []string, stderr io.Writer) (Config, error) {
	cfg := Config{Config: config.FromEnv()}

	flagSet := flag.NewFlagSet("roadpath-analyze", flag.ContinueOnError)
	flagSet.SetOutput(stderr)
	cfg.BindCommon(flagSet)
	cfg.BindStore(flagSet)
	flagSet.StringVar(&cfg.MapsDir, "maps-dir", cfg.MapsDir, "directory holding the benchmark maps")
	flagSet.StringVar(&cfg.OutDir, "out", "", "write solution_<scenario>.txt files here")
	flagSet.StringVar(&cfg.CSVPath, "csv", "", "also write the records as CSV to this file")
	flagSet.BoolVar(&cfg.NoStore, "no-store", false, "do not save the run to the database")
	flagSet.BoolVar(&cfg.List, "list", false, "list stored runs and exit")
	flagSet.StringVar(&cfg.Show, "show", "", "print the stored run with this ID and exit")
	flagSet.StringVar(&cfg.Only, "only", "", "run only the scenarios of this map")

	if err := flagSet.Parse(args); err != nil {
		return Config{}, err
	}
	if flagSet.NArg() > 0 {
		return Config{}, fmt.Errorf("%w: unexpected arguments %v", config.ErrInvalid, flagSet.Args())
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	if cfg.List && cfg.Show != "" {
		return Config{}, fmt.Errorf("%w: -list and -show are exclusive", config.ErrInvalid)
	}

	return cfg, nil
}
