// Package validation checks pipeline definitions and configuration.
//
// Struct tag validation uses go-playground/validator with an extra
// `operator` tag that accepts well-formed operator symbols:
//
//	type Step struct {
//	    Operator string `validate:"required,operator"`
//	}
//	err := validation.Validate(step)
//
// Programmatic checks collect field errors before failing once:
//
//	v := validation.New()
//	v.Range("history_capacity", cfg.HistoryCapacity, 1, 10000)
//	err := v.Validate()
package validation
