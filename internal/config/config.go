// Package config loads CLI settings from an optional .env file and ALMANAC_*
// environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/katalvlaran/almanac/remap"
)

// Prefix is prepended to every environment variable name.
const Prefix = "ALMANAC"

// Defaults. Struct tag defaults below must stay in sync with these.
const (
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "console"
	DefaultStrategy      = "sweep"
	DefaultOverlapPolicy = "reject"
	DefaultWorkers       = 4
)

// ErrInvalid indicates a value that parsed but is out of range.
var ErrInvalid = errors.New("config: invalid value")

// Config holds every setting the CLI reads from the environment.
type Config struct {
	// LogLevel: trace, debug, info, warn, error.
	// Env: ALMANAC_LOG_LEVEL (default: info)
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// LogFormat: console or json.
	// Env: ALMANAC_LOG_FORMAT (default: console)
	LogFormat string `envconfig:"LOG_FORMAT" default:"console"`

	// Strategy: sweep or fixpoint.
	// Env: ALMANAC_STRATEGY (default: sweep)
	Strategy string `envconfig:"STRATEGY" default:"sweep"`

	// OverlapPolicy: reject or first.
	// Env: ALMANAC_OVERLAP_POLICY (default: reject)
	OverlapPolicy string `envconfig:"OVERLAP_POLICY" default:"reject"`

	// Workers bounds the brute-force goroutines.
	// Env: ALMANAC_WORKERS (default: 4)
	Workers int `envconfig:"WORKERS" default:"4"`

	// ExpectStages, when > 0, requires exactly that many maps.
	// Env: ALMANAC_EXPECT_STAGES (default: 0, disabled)
	ExpectStages int `envconfig:"EXPECT_STAGES" default:"0"`
}

// Load reads envPath (".env" if empty; a missing file is skipped) and then
// the environment. Variables already set in the environment win over the file.
func Load(envPath string) (Config, error) {
	if envPath == "" {
		envPath = ".env"
	}
	if _, err := os.Stat(envPath); err == nil {
		if err = godotenv.Load(envPath); err != nil {
			return Config{}, fmt.Errorf("config: load %s: %w", envPath, err)
		}
	} else if !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("config: stat %s: %w", envPath, err)
	}

	return LoadFromEnv()
}

// LoadFromEnv reads ALMANAC_* variables only.
func LoadFromEnv() (Config, error) {
	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	cfg.LogFormat = strings.ToLower(cfg.LogFormat)

	return cfg, cfg.Validate()
}

// Validate checks enumerations and ranges.
func (c Config) Validate() error {
	if _, err := remap.ParseStrategy(c.Strategy); err != nil {
		return fmt.Errorf("%w: strategy: %w", ErrInvalid, err)
	}
	if _, err := remap.ParseOverlapPolicy(c.OverlapPolicy); err != nil {
		return fmt.Errorf("%w: overlap policy: %w", ErrInvalid, err)
	}
	if c.LogFormat != "console" && c.LogFormat != "json" {
		return fmt.Errorf("%w: log format %q", ErrInvalid, c.LogFormat)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers %d", ErrInvalid, c.Workers)
	}
	if c.ExpectStages < 0 {
		return fmt.Errorf("%w: expect stages %d", ErrInvalid, c.ExpectStages)
	}

	return nil
}

// RemapOptions translates the strategy and overlap policy into remap options.
func (c Config) RemapOptions() ([]remap.Option, error) {
	s, err := remap.ParseStrategy(c.Strategy)
	if err != nil {
		return nil, err
	}
	p, err := remap.ParseOverlapPolicy(c.OverlapPolicy)
	if err != nil {
		return nil, err
	}

	return []remap.Option{remap.WithStrategy(s), remap.WithOverlapPolicy(p)}, nil
}
