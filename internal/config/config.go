// SPDX-License-Identifier: MIT

// Package config loads and validates the YAML run configuration of the
// lvmcmc command.
//
// Priority: environment > file > defaults. Validation uses struct tags
// (go-playground/validator) plus cross-field checks (unique parameter names,
// known correlation targets).
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Environment overrides.
const (
	EnvSteps       = "LVMCMC_STEPS"
	EnvSeed        = "LVMCMC_SEED"
	EnvLogLevel    = "LVMCMC_LOG_LEVEL"
	EnvMetricsAddr = "LVMCMC_METRICS_ADDR"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid")

var validate = validator.New()

// ParameterConfig declares one parameter.
type ParameterConfig struct {
	Name          string   `yaml:"name" validate:"required"`
	Start         float64  `yaml:"start"`
	Error         float64  `yaml:"error" validate:"gte=0"`
	RelativeError float64  `yaml:"relative_error" validate:"gte=0"`
	Lower         *float64 `yaml:"lower"`
	Upper         *float64 `yaml:"upper"`
	Fixed         bool     `yaml:"fixed"`
}

// CorrelationConfig declares a prior correlation between two named parameters.
type CorrelationConfig struct {
	A     string  `yaml:"a" validate:"required"`
	B     string  `yaml:"b" validate:"required,nefield=A"`
	Value float64 `yaml:"value" validate:"gte=-1,lte=1"`
}

// AdaptationConfig enables error-scaling adaptation when Interval > 0.
type AdaptationConfig struct {
	Interval int     `yaml:"interval" validate:"gte=0"`
	Target   float64 `yaml:"target" validate:"gte=0,lt=1"`
}

// SamplerConfig drives the engine.
type SamplerConfig struct {
	Steps           int              `yaml:"steps" validate:"gte=1"`
	BurnIn          int              `yaml:"burn_in" validate:"gte=0"`
	Thin            int              `yaml:"thin" validate:"gte=1"`
	Seed            uint64           `yaml:"seed"`
	Betas           []float64        `yaml:"betas" validate:"omitempty,dive,gte=0"`
	SwapInterval    int              `yaml:"swap_interval" validate:"gte=1"`
	Concurrency     int              `yaml:"concurrency" validate:"gte=0"`
	LimitPolicy     string           `yaml:"limit_policy" validate:"oneof=none reflect constrain"`
	RandomizedStart bool             `yaml:"randomized_start"`
	ErrorScaling    float64          `yaml:"error_scaling" validate:"gt=0"`
	Adaptation      AdaptationConfig `yaml:"adaptation"`
	// FreeFactorization keeps correlations between free parameters when
	// fixed ones are present (see param.WithFreeFactorization).
	FreeFactorization bool `yaml:"free_factorization"`
}

// ObjectiveConfig selects a built-in objective.
type ObjectiveConfig struct {
	Kind        string    `yaml:"kind" validate:"required,oneof=quadratic rosenbrock bimodal correlated"`
	Centre      []float64 `yaml:"centre"`
	Width       float64   `yaml:"width" validate:"gte=0"`
	Separation  float64   `yaml:"separation" validate:"gte=0"`
	Scale       float64   `yaml:"scale" validate:"gte=0"`
	Correlation float64   `yaml:"correlation" validate:"gt=-1,lt=1"`
}

// LogConfig configures the zap backend.
type LogConfig struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" validate:"oneof=console json"`
}

// MetricsConfig enables the Prometheus endpoint when Addr is set.
type MetricsConfig struct {
	Addr string `yaml:"addr" validate:"omitempty,hostname_port"`
}

// RunConfig is the whole file.
type RunConfig struct {
	Parameters   []ParameterConfig   `yaml:"parameters" validate:"required,min=1,dive"`
	Correlations []CorrelationConfig `yaml:"correlations" validate:"dive"`
	Sampler      SamplerConfig       `yaml:"sampler"`
	Objective    ObjectiveConfig     `yaml:"objective"`
	Log          LogConfig           `yaml:"log"`
	Metrics      MetricsConfig       `yaml:"metrics"`
}

// Default returns a RunConfig with every non-parameter field set.
func Default() RunConfig {
	return RunConfig{
		Sampler: SamplerConfig{
			Steps:        10000,
			BurnIn:       1000,
			Thin:         1,
			Seed:         1,
			Betas:        []float64{1},
			SwapInterval: 1,
			LimitPolicy:  "none",
			ErrorScaling: 1,
		},
		Objective: ObjectiveConfig{Kind: "quadratic", Width: 1},
		Log:       LogConfig{Level: "info", Format: "console"},
	}
}

// Load reads path over the defaults, applies environment overrides and
// validates the result.
func Load(path string) (RunConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return RunConfig{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg, err := decode(data)
	if err != nil {
		return RunConfig{}, err
	}
	if err = applyEnv(&cfg); err != nil {
		return RunConfig{}, err
	}
	if err = cfg.Validate(); err != nil {
		return RunConfig{}, err
	}

	return cfg, nil
}

// Parse decodes YAML over the defaults and validates it. No environment
// overrides are applied.
func Parse(data []byte) (RunConfig, error) {
	cfg, err := decode(data)
	if err != nil {
		return RunConfig{}, err
	}
	if err = cfg.Validate(); err != nil {
		return RunConfig{}, err
	}

	return cfg, nil
}

// decode rejects unknown keys so typos do not silently fall back to defaults.
func decode(data []byte) (RunConfig, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return RunConfig{}, fmt.Errorf("config: parse: %w", err)
	}

	return cfg, nil
}

func applyEnv(cfg *RunConfig) error {
	if v := os.Getenv(EnvSteps); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: %s: %w", EnvSteps, err)
		}
		cfg.Sampler.Steps = n
	}
	if v := os.Getenv(EnvSeed); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("config: %s: %w", EnvSeed, err)
		}
		cfg.Sampler.Seed = n
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv(EnvMetricsAddr); v != "" {
		cfg.Metrics.Addr = v
	}

	return nil
}

// Validate runs tag validation and cross-field checks.
func (c RunConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if a := c.Sampler.Adaptation; a.Interval > 0 && !(a.Target > 0) {
		return fmt.Errorf("%w: adaptation needs a target in (0, 1)", ErrInvalid)
	}
	seen := make(map[string]bool, len(c.Parameters))
	for _, p := range c.Parameters {
		if seen[p.Name] {
			return fmt.Errorf("%w: duplicate parameter %q", ErrInvalid, p.Name)
		}
		seen[p.Name] = true
		if p.Lower != nil && p.Upper != nil && *p.Lower > *p.Upper {
			return fmt.Errorf("%w: parameter %q: lower %g above upper %g", ErrInvalid, p.Name, *p.Lower, *p.Upper)
		}
	}
	for _, cr := range c.Correlations {
		if !seen[cr.A] || !seen[cr.B] {
			return fmt.Errorf("%w: correlation %s/%s names an unknown parameter", ErrInvalid, cr.A, cr.B)
		}
	}

	return nil
}
