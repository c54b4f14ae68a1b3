package pipeline

import (
	"github.com/kbukum/opflow/operator"
	"github.com/kbukum/opflow/validation"
)

// DefaultIDPrefix prefixes generated pipeline ids.
const DefaultIDPrefix = "pipeline"

// Config tunes an Executor.
type Config struct {
	// HistoryCapacity bounds the execution history.
	HistoryCapacity int `yaml:"history_capacity" mapstructure:"history_capacity"`
	// MaxIterations caps REC.
	MaxIterations int `yaml:"max_iterations" mapstructure:"max_iterations"`
	// IDPrefix prefixes generated pipeline ids.
	IDPrefix string `yaml:"id_prefix" mapstructure:"id_prefix"`
}

// ApplyDefaults fills zero values.
func (c *Config) ApplyDefaults() {
	if c.HistoryCapacity == 0 {
		c.HistoryCapacity = DefaultHistoryCapacity
	}
	if c.MaxIterations == 0 {
		c.MaxIterations = operator.DefaultMaxIterations
	}
	if c.IDPrefix == "" {
		c.IDPrefix = DefaultIDPrefix
	}
}

// Validate checks the configuration after defaults are applied.
func (c *Config) Validate() error {
	v := validation.New().
		Range("history_capacity", c.HistoryCapacity, 1, 100000).
		Range("max_iterations", c.MaxIterations, 1, 1000000)
	if appErr := v.Validate(); appErr != nil {
		return appErr
	}
	return nil
}
