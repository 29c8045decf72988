// Package config loads provost settings from provost.yaml, a .env file and
// PROVOST_* environment variables, in increasing order of precedence.
package config

import (
	"fmt"

	"github.com/alexanderramin/provost/internal/domain"
)

type Config struct {
	DBPath   string         `mapstructure:"db_path"`
	Log      LogConfig      `mapstructure:"log"`
	Batch    BatchConfig    `mapstructure:"batch"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
	Policies PoliciesConfig `mapstructure:"policies"`
}

// LogConfig controls the slog use-case observer. Evaluators never log.
type LogConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Level   string `mapstructure:"level"`
}

type BatchConfig struct {
	Concurrency int `mapstructure:"concurrency"`
}

// MetricsConfig names a Prometheus textfile written after batch runs.
// Empty disables the export.
type MetricsConfig struct {
	File string `mapstructure:"file"`
}

// PoliciesConfig holds the institutional policies the evaluators take as
// explicit parameters.
type PoliciesConfig struct {
	Standing   domain.AcademicStandingPolicy `mapstructure:"standing"`
	Sap        domain.SapPolicy              `mapstructure:"sap"`
	Graduation domain.GraduationPolicyConfig `mapstructure:"graduation"`
	Honors     domain.LatinHonorsConfig      `mapstructure:"honors"`
}

const (
	DefaultBatchConcurrency = 4
	DefaultLogLevel         = "info"
)

var validLogLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

// Validate rejects settings no component can run with. Policy values are
// not checked here; the evaluators apply their own fallbacks.
func (c *Config) Validate() error {
	if c.DBPath == "" {
		return fmt.Errorf("db_path is required")
	}
	if c.Batch.Concurrency < 1 {
		return fmt.Errorf("batch.concurrency must be at least 1, got %d", c.Batch.Concurrency)
	}
	if !validLogLevels[c.Log.Level] {
		return fmt.Errorf("log.level: invalid value %q", c.Log.Level)
	}
	for i, tier := range c.Policies.Standing.Tiers {
		if tier.MinCreditsCompleted < 0 {
			return fmt.Errorf("policies.standing.tiers[%d].min_credits_completed must not be negative", i)
		}
	}
	return nil
}
