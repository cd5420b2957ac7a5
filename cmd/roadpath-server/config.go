package main

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/katalvlaran/roadpath/config"
)

const defaultShutdownTimeout = 10 * time.Second

// Config is the resolved command line of the server.
type Config struct {
	config.Config

	ShutdownTimeout time.Duration
}

// LoadConfig resolves env, then flags. A map is required.
func LoadConfig(args []string, stderr io.Writer) (Config, error) {
	cfg := Config{Config: config.FromEnv(), ShutdownTimeout: defaultShutdownTimeout}

	flagSet := flag.NewFlagSet("roadpath-server", flag.ContinueOnError)
	flagSet.SetOutput(stderr)
	cfg.BindCommon(flagSet)
	cfg.BindMaps(flagSet)
	cfg.BindServer(flagSet)
	flagSet.DurationVar(&cfg.ShutdownTimeout, "shutdown-timeout", cfg.ShutdownTimeout, "grace period for in-flight requests")

	if err := flagSet.Parse(args); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	if cfg.Map == "" {
		return Config{}, fmt.Errorf("%w: no map given (use -map or %s)", config.ErrInvalid, config.EnvMap)
	}
	if cfg.Addr == "" {
		return Config{}, fmt.Errorf("%w: empty listen address", config.ErrInvalid)
	}
	if cfg.ShutdownTimeout <= 0 {
		return Config{}, fmt.Errorf("%w: shutdown timeout %s", config.ErrInvalid, cfg.ShutdownTimeout)
	}

	return cfg, nil
}
