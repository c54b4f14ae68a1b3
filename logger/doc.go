// Package logger provides structured logging for opflow using zerolog.
//
// Loggers are created explicitly and passed to the components that need
// them; there is no process-wide logger. Nop returns a logger that
// discards everything, which is the default for embedded use.
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "json"
//	  output: "stderr"
//
// # Usage
//
//	log := logger.New(&cfg.Logging, "opflow").WithComponent("pipeline")
//	log.Warn("operator not registered", logger.Fields(logger.FieldOperator, "ZZZ"))
package logger
