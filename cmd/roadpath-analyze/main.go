// Command roadpath-analyze runs the A*-versus-Dijkstra benchmark over the
// DIMACS maps found in -maps-dir, prints a table, and stores the run.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/katalvlaran/roadpath/analysis"
	"github.com/katalvlaran/roadpath/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
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
		return 2
	}
	logger, err := cfg.Logger(stderr)
	if err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return 2
	}

	if cfg.List || cfg.Show != "" {
		if err := browse(ctx, cfg, stdout); err != nil {
			fmt.Fprintln(stderr, "Error:", err)
			return 1
		}
		return 0
	}

	graphOpts, err := cfg.GraphOptions(logger)
	if err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return 2
	}
	scenarios := analysis.DefaultScenarios()
	if cfg.Only != "" {
		scenarios = filterMap(scenarios, cfg.Only)
	}
	suite := &analysis.Suite{
		MapsDir:      cfg.MapsDir,
		Scenarios:    scenarios,
		GraphOptions: graphOpts,
		Logger:       logger,
		OutDir:       cfg.OutDir,
	}

	t0 := time.Now()
	records, err := suite.Run(ctx)
	if err != nil {
		logger.Warn("analysis interrupted", "error", err, "records", len(records))
	}
	logger.Info("analysis finished", "records", len(records), "elapsed", time.Since(t0))
	if len(records) == 0 {
		fmt.Fprintf(stderr, "No scenarios ran: no benchmark maps found in %s\n", cfg.MapsDir)
		return 1
	}

	fmt.Fprintln(stdout, analysis.RenderTable(records))

	if cfg.CSVPath != "" {
		if err := writeCSVFile(cfg.CSVPath, records); err != nil {
			fmt.Fprintln(stderr, "Error:", err)
			return 1
		}
	}
	if !cfg.NoStore {
		id, err := save(ctx, cfg.DBPath, records)
		if err != nil {
			fmt.Fprintln(stderr, "Error:", err)
			return 1
		}
		fmt.Fprintf(stdout, "Run %s saved to %s\n", id, cfg.DBPath)
	}

	if analysis.Failed(records) {
		fmt.Fprintln(stderr, "Error:", analysis.ErrFailed)
		return 1
	}
	return 0
}

func filterMap(scs []analysis.Scenario, name string) []analysis.Scenario {
	var out []analysis.Scenario
	for _, sc := range scs {
		if sc.Map == name {
			out = append(out, sc)
		}
	}
	return out
}

func writeCSVFile(path string, records []analysis.Record) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return analysis.WriteCSV(f, records)
}

func save(ctx context.Context, dbPath string, records []analysis.Record) (string, error) {
	st, err := analysis.OpenStore(dbPath)
	if err != nil {
		return "", err
	}
	defer st.Close()

	id := analysis.NewRunID()
	if err := st.Save(ctx, id, records); err != nil {
		return "", err
	}
	return id, nil
}

func browse(ctx context.Context, cfg Config, stdout io.Writer) error {
	st, err := analysis.OpenStore(cfg.DBPath)
	if err != nil {
		return err
	}
	defer st.Close()

	if cfg.Show != "" {
		records, err := st.Records(ctx, cfg.Show)
		if err != nil {
			return err
		}
		if len(records) == 0 {
			return fmt.Errorf("no records for run %q", cfg.Show)
		}
		fmt.Fprintln(stdout, analysis.RenderTable(records))
		return nil
	}

	runs, err := st.Runs(ctx)
	if err != nil {
		return err
	}
	for _, r := range runs {
		fmt.Fprintf(stdout, "%s  %s  records=%d failed=%d\n",
			r.ID, r.CreatedAt.Format(time.RFC3339), r.Records, r.Failed)
	}
	return nil
}
