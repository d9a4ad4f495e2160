// Package config loads and validates simulation run configuration.
//
// Load order: Default, then a YAML file, then STRINGNET_* environment
// variables, then command-line overrides applied by the caller, then
// Validate.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/stringnet/estimator"
	"github.com/katalvlaran/stringnet/lattice"
	"github.com/katalvlaran/stringnet/update"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "STRINGNET_"

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config is one simulation run.
type Config struct {
	Lx     int     `yaml:"lx" env:"LX" validate:"gte=2"`
	Ly     int     `yaml:"ly" env:"LY" validate:"gte=2"`
	Tuning float64 `yaml:"tuning" env:"TUNING" validate:"gt=0"`
	// UpdateKind is "local" or "walk".
	UpdateKind string `yaml:"update_kind" env:"UPDATE_KIND" validate:"required"`
	Seed       int64  `yaml:"seed" env:"SEED"`

	Equilibrate bool `yaml:"equilibrate" env:"EQUILIBRATE"`
	// EquilibrationUpdates of 0 means Lx·Ly.
	EquilibrationUpdates  int `yaml:"equilibration_updates" env:"EQUILIBRATION_UPDATES" validate:"gte=0"`
	Bins                  int `yaml:"bins" env:"BINS" validate:"gte=1"`
	MeasurementsPerBin    int `yaml:"measurements_per_bin" env:"MEASUREMENTS_PER_BIN" validate:"gte=1"`
	UpdatesPerMeasurement int `yaml:"updates_per_measurement" env:"UPDATES_PER_MEASUREMENT" validate:"gte=1"`

	// Initial is "blank", "striped" or "staggered".
	Initial    string   `yaml:"initial" env:"INITIAL" validate:"required"`
	Estimators []string `yaml:"estimators" env:"ESTIMATORS" envSeparator:"," validate:"dive,required"`

	// ResultsDB is a SQLite path; empty logs results instead.
	ResultsDB string `yaml:"results_db" env:"RESULTS_DB"`
	// CheckpointDir is a Badger directory; empty disables checkpoints.
	CheckpointDir string `yaml:"checkpoint_dir" env:"CHECKPOINT_DIR"`
	// MetricsAddr serves Prometheus /metrics when set, e.g. ":9090".
	MetricsAddr string `yaml:"metrics_addr" env:"METRICS_ADDR" validate:"omitempty,hostname_port"`
}

// Default returns a small, valid configuration.
func Default() Config {
	return Config{
		Lx:                    8,
		Ly:                    8,
		Tuning:                1,
		UpdateKind:            update.Local.String(),
		Seed:                  1,
		Equilibrate:           true,
		Bins:                  10,
		MeasurementsPerBin:    100,
		UpdatesPerMeasurement: 64,
		Initial:               string(lattice.InitialBlank),
		Estimators: []string{
			estimator.NameTotalLinkCount,
			estimator.NameWindingCount,
		},
	}
}

// Load returns Default overlaid with the YAML file at path and the
// environment. An empty path skips the file. The result is not validated.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := ApplyEnv(&cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// ApplyEnv overrides cfg with any STRINGNET_* variables that are set.
func ApplyEnv(cfg *Config) error {
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}

	return nil
}

// EquilibrationSteps resolves the 0 default of EquilibrationUpdates.
func (c Config) EquilibrationSteps() int {
	if !c.Equilibrate {
		return 0
	}
	if c.EquilibrationUpdates == 0 {
		return c.Lx * c.Ly
	}

	return c.EquilibrationUpdates
}

var validate = validator.New()

// Validate checks field ranges and the domain constraints that tags cannot
// express. Every failure wraps ErrInvalidConfig.
func (c Config) Validate() error {
	// 1. Struct tags
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	// 2. Lattice shape
	if err := lattice.ValidateSize(c.Lx, c.Ly); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	// 3. Tuning must be a finite positive weight
	if math.IsInf(c.Tuning, 0) || math.IsNaN(c.Tuning) {
		return fmt.Errorf("%w: tuning %v is not finite", ErrInvalidConfig, c.Tuning)
	}

	// 4. Named choices
	if _, err := update.ParseKind(c.UpdateKind); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if !contains(lattice.Initials(), c.Initial) {
		return fmt.Errorf("%w: initial %q, want one of %s",
			ErrInvalidConfig, c.Initial, strings.Join(lattice.Initials(), ", "))
	}
	seen := make(map[string]bool, len(c.Estimators))
	for _, name := range c.Estimators {
		if !contains(estimator.Names(), name) {
			return fmt.Errorf("%w: estimator %q, want one of %s",
				ErrInvalidConfig, name, strings.Join(estimator.Names(), ", "))
		}
		if seen[name] {
			return fmt.Errorf("%w: estimator %q listed twice", ErrInvalidConfig, name)
		}
		seen[name] = true
	}

	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}

	return false
}
