// Package config loads opflow configuration from a YAML file, a .env file
// and the environment.
//
// Values are layered in this order, later sources winning: the YAML file,
// then variables carrying the OPFLOW_ prefix (including those loaded from
// .env). OPFLOW_PIPELINE_HISTORY_CAPACITY sets pipeline.history_capacity.
//
// # Usage
//
//	var cfg AppConfig
//	err := config.LoadConfig("opflow", &cfg, config.WithConfigFile(path))
package config
