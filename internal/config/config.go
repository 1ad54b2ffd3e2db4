// Package config loads setlist settings from a TOML file, a .env file and
// the process environment, in that order of precedence (last wins).
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// Store drivers.
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverMemgraph = "memgraph"
)

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("config: invalid configuration")

type ServerConfig struct {
	Addr string `toml:"addr"`
}

type SQLiteConfig struct {
	Path string `toml:"path"`
}

type MemgraphConfig struct {
	URI      string `toml:"uri"`
	User     string `toml:"user"`
	Password string `toml:"password"`
}

type StoreConfig struct {
	Driver   string         `toml:"driver"`
	SQLite   SQLiteConfig   `toml:"sqlite"`
	Memgraph MemgraphConfig `toml:"memgraph"`
}

// PlannerConfig bounds the work of one request and the parallelism of
// batch requests.
type PlannerConfig struct {
	MaxSongs int `toml:"max_songs"`
	Workers  int `toml:"workers"`
}

// DisplayConfig holds presentation defaults; Top == 0 shows everything.
type DisplayConfig struct {
	Top    int  `toml:"top"`
	Unique bool `toml:"unique"`
}

type Config struct {
	Server  ServerConfig  `toml:"server"`
	Store   StoreConfig   `toml:"store"`
	Planner PlannerConfig `toml:"planner"`
	Display DisplayConfig `toml:"display"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Server: ServerConfig{Addr: ":8080"},
		Store: StoreConfig{
			Driver:   DriverSQLite,
			SQLite:   SQLiteConfig{Path: "setlist.db"},
			Memgraph: MemgraphConfig{URI: "bolt://localhost:7687"},
		},
		Planner: PlannerConfig{MaxSongs: 200, Workers: 4},
		Display: DisplayConfig{Top: 10},
	}
}

// Load reads the TOML file at path over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	return cfg, nil
}

// Resolve builds the effective configuration: defaults, then the TOML file at
// path (skipped when path is empty), then .env, then the environment.
func Resolve(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		var err error
		if cfg, err = Load(path); err != nil {
			return nil, err
		}
	}

	// A missing .env is normal outside development.
	_ = godotenv.Load()

	if err := FromEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// FromEnv overrides cfg with any of the SETLIST_* and MEMGRAPH_* variables
// that are set.
func FromEnv(cfg *Config) error {
	setString(&cfg.Server.Addr, "SETLIST_ADDR")
	setString(&cfg.Store.Driver, "SETLIST_STORE_DRIVER")
	setString(&cfg.Store.SQLite.Path, "SETLIST_SQLITE_PATH")
	setString(&cfg.Store.Memgraph.URI, "MEMGRAPH_URI")
	setString(&cfg.Store.Memgraph.User, "MEMGRAPH_USER")
	setString(&cfg.Store.Memgraph.Password, "MEMGRAPH_PASSWORD")

	if err := setInt(&cfg.Planner.MaxSongs, "SETLIST_MAX_SONGS"); err != nil {
		return err
	}
	if err := setInt(&cfg.Planner.Workers, "SETLIST_WORKERS"); err != nil {
		return err
	}

	return setInt(&cfg.Display.Top, "SETLIST_TOP")
}

// Validate rejects settings no component can run with.
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case DriverMemory:
	case DriverSQLite:
		if c.Store.SQLite.Path == "" {
			return fmt.Errorf("%w: store.sqlite.path is empty", ErrInvalid)
		}
	case DriverMemgraph:
		if c.Store.Memgraph.URI == "" {
			return fmt.Errorf("%w: store.memgraph.uri is empty", ErrInvalid)
		}
	default:
		return fmt.Errorf("%w: unknown store driver %q", ErrInvalid, c.Store.Driver)
	}

	if c.Planner.MaxSongs <= 0 {
		return fmt.Errorf("%w: planner.max_songs must be positive", ErrInvalid)
	}
	if c.Planner.Workers <= 0 {
		return fmt.Errorf("%w: planner.workers must be positive", ErrInvalid)
	}
	if c.Display.Top < 0 {
		return fmt.Errorf("%w: display.top must not be negative", ErrInvalid)
	}

	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%w: %s=%q is not an integer", ErrInvalid, key, v)
	}
	*dst = n

	return nil
}
