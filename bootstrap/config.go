package bootstrap

import (
	"github.com/kbukum/opflow/config"
)

// Config is the interface constraint for command configuration types.
// Any struct that embeds config.ServiceConfig (value embedding) and
// overrides ApplyDefaults/Validate satisfies it.
//
// Example:
//
//	type RunConfig struct {
//	    config.ServiceConfig `yaml:",inline" mapstructure:",squash"`
//	    Pipeline pipeline.Config `yaml:"pipeline" mapstructure:"pipeline"`
//	}
//
//	app, err := bootstrap.NewApp[*RunConfig](&cfg)
type Config interface {
	GetServiceConfig() *config.ServiceConfig
	ApplyDefaults()
	Validate() error
}
