// Package errors provides the structured error type shared by the pipeline
// runtime. Every AppError carries a machine-readable code and a fatal flag
// that tells the executor whether the enclosing pipeline must abort.
package errors
