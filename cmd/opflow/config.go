package main

import (
	"fmt"

	"github.com/kbukum/opflow/config"
	"github.com/kbukum/opflow/observability"
	"github.com/kbukum/opflow/pipeline"
	"github.com/kbukum/opflow/version"
)

const serviceName = "opflow"

// AppConfig is the configuration of the opflow command.
//
//	name: opflow
//	logging:
//	  level: info
//	pipeline:
//	  history_capacity: 100
//	  max_iterations: 100
//	tracing:
//	  enabled: true
//	  endpoint: localhost:4318
type AppConfig struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`
	Pipeline             pipeline.Config            `yaml:"pipeline" mapstructure:"pipeline"`
	Tracing              observability.TracerConfig `yaml:"tracing" mapstructure:"tracing"`
	Metrics              observability.MeterConfig  `yaml:"metrics" mapstructure:"metrics"`
}

// ApplyDefaults fills zero values, including the telemetry identity.
func (c *AppConfig) ApplyDefaults() {
	if c.Version == "" {
		c.Version = version.Short()
	}
	c.ServiceConfig.ApplyDefaults()
	c.Pipeline.ApplyDefaults()

	tracing := observability.DefaultTracerConfig(c.Name)
	if c.Tracing.ServiceName == "" {
		c.Tracing.ServiceName = tracing.ServiceName
	}
	if c.Tracing.ServiceVersion == "" {
		c.Tracing.ServiceVersion = c.versionOr(tracing.ServiceVersion)
	}
	if c.Tracing.Environment == "" {
		c.Tracing.Environment = c.Environment
	}
	if c.Tracing.Endpoint == "" {
		c.Tracing.Endpoint = tracing.Endpoint
	}
	if c.Tracing.SampleRate == 0 {
		c.Tracing.SampleRate = tracing.SampleRate
	}

	metrics := observability.DefaultMeterConfig(c.Name)
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = metrics.ServiceName
	}
	if c.Metrics.ServiceVersion == "" {
		c.Metrics.ServiceVersion = c.versionOr(metrics.ServiceVersion)
	}
	if c.Metrics.Environment == "" {
		c.Metrics.Environment = c.Environment
	}
	if c.Metrics.Endpoint == "" {
		c.Metrics.Endpoint = metrics.Endpoint
	}
	if c.Metrics.Interval == 0 {
		c.Metrics.Interval = metrics.Interval
	}
}

func (c *AppConfig) versionOr(def string) string {
	if c.Version != "" {
		return c.Version
	}
	return def
}

// Validate checks the whole configuration.
func (c *AppConfig) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	if err := c.Pipeline.Validate(); err != nil {
		return fmt.Errorf("pipeline: %w", err)
	}
	if c.Tracing.SampleRate < 0 || c.Tracing.SampleRate > 1 {
		return fmt.Errorf("tracing.sample_rate must be between 0 and 1 (got: %v)", c.Tracing.SampleRate)
	}
	return nil
}

// loadConfig reads the config file, .env file and OPFLOW_ variables.
func loadConfig(opts globalOptions) (*AppConfig, error) {
	var cfg AppConfig
	var loaderOpts []config.LoaderOption
	if opts.configFile != "" {
		loaderOpts = append(loaderOpts, config.WithConfigFile(opts.configFile))
	}
	if opts.envFile != "" {
		loaderOpts = append(loaderOpts, config.WithEnvFile(opts.envFile))
	}
	if err := config.LoadConfig(serviceName, &cfg, loaderOpts...); err != nil {
		return nil, err
	}
	if opts.logLevel != "" {
		cfg.Logging.Level = opts.logLevel
	}
	return &cfg, nil
}
