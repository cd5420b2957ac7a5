// Package config resolves runtime settings shared by the roadpath commands.
//
// Precedence, lowest first: built-in defaults, a .env file, ROADPATH_*
// environment variables, command-line flags.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"github.com/katalvlaran/roadpath/roadgraph"
)

// Environment keys.
const (
	EnvMapsDir    = "ROADPATH_MAPS_DIR"
	EnvMap        = "ROADPATH_MAP"
	EnvAddr       = "ROADPATH_ADDR"
	EnvDBPath     = "ROADPATH_DB_PATH"
	EnvLogLevel   = "ROADPATH_LOG_LEVEL"
	EnvLogFormat  = "ROADPATH_LOG_FORMAT"
	EnvDuplicates = "ROADPATH_DUPLICATES"
)

const (
	defaultMapsDir   = "maps"
	defaultAddr      = "127.0.0.1:8095"
	defaultDBName    = "roadpath.db"
	defaultLogLevel  = "info"
	defaultLogFormat = "text"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid value")

// Config is the resolved settings of one process.
type Config struct {
	MapsDir    string // directory holding <name>.gr / <name>.co
	Map        string // default map base name or path
	Addr       string // HTTP listen address
	DBPath     string // SQLite file for analysis runs
	LogLevel   string // debug|info|warn|error
	LogFormat  string // text|json
	Duplicates string // last|min
}

// LoadDotEnv loads the given .env files (".env" when none are named) into
// the process environment. Missing files are not an error; variables that
// are already set win.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("config: load %s: %w", f, err)
		}
	}
	return nil
}

// FromEnv returns defaults overridden by ROADPATH_* variables.
func FromEnv() Config {
	return Config{
		MapsDir:    envOrDefault(EnvMapsDir, defaultMapsDir),
		Map:        os.Getenv(EnvMap),
		Addr:       envOrDefault(EnvAddr, defaultAddr),
		DBPath:     envOrDefault(EnvDBPath, defaultDBName),
		LogLevel:   envOrDefault(EnvLogLevel, defaultLogLevel),
		LogFormat:  envOrDefault(EnvLogFormat, defaultLogFormat),
		Duplicates: envOrDefault(EnvDuplicates, roadgraph.DuplicateLastWins.String()),
	}
}

// BindCommon registers the flags every command understands, defaulting to
// the current values of c.
func (c *Config) BindCommon(flagSet *flag.FlagSet) {
	flagSet.StringVar(&c.LogLevel, "log-level", c.LogLevel, "log level: debug|info|warn|error")
	flagSet.StringVar(&c.LogFormat, "log-format", c.LogFormat, "log format: text|json")
	flagSet.StringVar(&c.Duplicates, "duplicates", c.Duplicates, "duplicate arc policy: last|min")
}

// BindMaps registers -maps-dir and -map.
func (c *Config) BindMaps(flagSet *flag.FlagSet) {
	flagSet.StringVar(&c.MapsDir, "maps-dir", c.MapsDir, "directory holding DIMACS maps")
	flagSet.StringVar(&c.Map, "map", c.Map, "map base name (resolved against maps-dir) or path")
}

// BindServer registers -addr.
func (c *Config) BindServer(flagSet *flag.FlagSet) {
	flagSet.StringVar(&c.Addr, "addr", c.Addr, "HTTP listen address")
}

// BindStore registers -db.
func (c *Config) BindStore(flagSet *flag.FlagSet) {
	flagSet.StringVar(&c.DBPath, "db", c.DBPath, "path to SQLite database")
}

// Validate normalizes and checks c.
func (c *Config) Validate() error {
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	c.LogFormat = strings.ToLower(strings.TrimSpace(c.LogFormat))
	c.Addr = strings.TrimSpace(c.Addr)

	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("%w: log format %q", ErrInvalid, c.LogFormat)
	}
	if _, err := c.DuplicatePolicy(); err != nil {
		return err
	}
	return nil
}

// DuplicatePolicy parses c.Duplicates.
func (c *Config) DuplicatePolicy() (roadgraph.DuplicatePolicy, error) {
	p, err := roadgraph.ParseDuplicatePolicy(c.Duplicates)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return p, nil
}

// MapPath resolves name against MapsDir unless it is already a path.
func (c *Config) MapPath(name string) string {
	if name == "" || filepath.IsAbs(name) || strings.ContainsRune(name, filepath.Separator) {
		return name
	}
	return filepath.Join(c.MapsDir, name)
}

// GraphOptions returns the loader options implied by c.
func (c *Config) GraphOptions(logger *slog.Logger) ([]roadgraph.Option, error) {
	p, err := c.DuplicatePolicy()
	if err != nil {
		return nil, err
	}
	return []roadgraph.Option{roadgraph.WithDuplicatePolicy(p), roadgraph.WithLogger(logger)}, nil
}

// ParseLevel maps a level name to slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("%w: log level %q", ErrInvalid, s)
	}
	return l, nil
}

// NewLogger builds a text or JSON slog logger writing to w.
func NewLogger(w io.Writer, level, format string) (*slog.Logger, error) {
	l, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: l}
	switch strings.ToLower(format) {
	case "", "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("%w: log format %q", ErrInvalid, format)
	}
}

// Logger builds the logger described by c.
func (c *Config) Logger(w io.Writer) (*slog.Logger, error) {
	return NewLogger(w, c.LogLevel, c.LogFormat)
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
