// Package config loads the settings shared by the CLI and the HTTP function.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

// Config is the whole configuration file.
type Config struct {
	// InputsDir holds one day<N>.txt file per day.
	InputsDir string `yaml:"inputs_dir"`
	// Workers is the number of grid row bands classified at once.
	Workers int `yaml:"workers"`

	Logging Logging `yaml:"logging"`
	Results Results `yaml:"results"`
	Server  Server  `yaml:"server"`
}

// Logging configures the zap logger.
type Logging struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, console
}

// Results selects where answers are recorded.
type Results struct {
	Backend  string         `yaml:"backend"` // none, sqlite, bigquery
	SQLite   SQLiteConfig   `yaml:"sqlite"`
	BigQuery BigQueryConfig `yaml:"bigquery"`
}

type SQLiteConfig struct {
	Path string `yaml:"path"`
}

type BigQueryConfig struct {
	Project  string `yaml:"project"`
	Dataset  string `yaml:"dataset"`
	Table    string `yaml:"table"`
	Location string `yaml:"location"`
}

// Server configures the HTTP function when run locally.
type Server struct {
	Port      string `yaml:"port"`
	LocalOnly bool   `yaml:"local_only"`
	// MaxBodyBytes caps the size of a request body.
	MaxBodyBytes int64 `yaml:"max_body_bytes"`
}

// Backends lists the supported results backends.
var Backends = []string{"none", "sqlite", "bigquery"}

var levels = []string{"debug", "info", "warn", "error"}
var formats = []string{"json", "console"}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		InputsDir: "inputs",
		Workers:   1,
		Logging: Logging{
			Level:  "info",
			Format: "console",
		},
		Results: Results{
			Backend: "none",
			SQLite: SQLiteConfig{
				Path: "data/answers.db",
			},
			BigQuery: BigQueryConfig{
				Dataset:  "aoc",
				Table:    "answers",
				Location: "US",
			},
		},
		Server: Server{
			Port:         "8080",
			MaxBodyBytes: 1 << 20,
		},
	}
}

// Load reads the YAML file at path over the defaults and then applies environment
// overrides. An empty path, or a path that does not exist, leaves the defaults in place.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to path as YAML.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() error {
	if dir := os.Getenv("AOC_INPUTS_DIR"); dir != "" {
		c.InputsDir = dir
	}
	if level := os.Getenv("AOC_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
	if backend := os.Getenv("AOC_RESULTS_BACKEND"); backend != "" {
		c.Results.Backend = backend
	}
	if path := os.Getenv("AOC_SQLITE_PATH"); path != "" {
		c.Results.SQLite.Path = path
	}
	if project := os.Getenv("AOC_BQ_PROJECT"); project != "" {
		c.Results.BigQuery.Project = project
	}
	if port := os.Getenv("PORT"); port != "" {
		c.Server.Port = port
	}
	if localOnly := os.Getenv("LOCAL_ONLY"); localOnly != "" {
		v, err := strconv.ParseBool(localOnly)
		if err != nil {
			return fmt.Errorf("LOCAL_ONLY: %w", err)
		}
		c.Server.LocalOnly = v
	}
	return nil
}

// Validate reports every problem with the configuration at once.
func (c *Config) Validate() error {
	var err error
	if c.Workers < 0 {
		err = multierr.Append(err, fmt.Errorf("workers must not be negative, got %d", c.Workers))
	}
	if !slices.Contains(levels, strings.ToLower(c.Logging.Level)) {
		err = multierr.Append(err, fmt.Errorf("invalid log level %q (valid: %v)", c.Logging.Level, levels))
	}
	if !slices.Contains(formats, c.Logging.Format) {
		err = multierr.Append(err, fmt.Errorf("invalid log format %q (valid: %v)", c.Logging.Format, formats))
	}
	if c.Server.MaxBodyBytes <= 0 {
		err = multierr.Append(err, fmt.Errorf("server.max_body_bytes must be positive, got %d", c.Server.MaxBodyBytes))
	}

	switch c.Results.Backend {
	case "none":
	case "sqlite":
		if c.Results.SQLite.Path == "" {
			err = multierr.Append(err, errors.New("results.sqlite.path is required for the sqlite backend"))
		}
	case "bigquery":
		bq := c.Results.BigQuery
		if bq.Project == "" {
			err = multierr.Append(err, errors.New("results.bigquery.project is required (set AOC_BQ_PROJECT)"))
		}
		if bq.Dataset == "" || bq.Table == "" {
			err = multierr.Append(err, errors.New("results.bigquery.dataset and table are required"))
		}
	default:
		err = multierr.Append(err, fmt.Errorf("invalid results backend %q (valid: %v)", c.Results.Backend, Backends))
	}
	return err
}
