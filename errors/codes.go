package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Operator errors
const (
	// ErrCodeUnknownOperator indicates no handler is registered for a symbol.
	ErrCodeUnknownOperator ErrorCode = "UNKNOWN_OPERATOR"
	// ErrCodeHandlerFault indicates an operator handler failed or panicked.
	ErrCodeHandlerFault ErrorCode = "HANDLER_FAULT"
	// ErrCodeNotConverged indicates a fixed-point iteration hit its cap.
	ErrCodeNotConverged ErrorCode = "NOT_CONVERGED"
)

// Definition errors
const (
	// ErrCodeInvalidPipeline indicates a pipeline definition is malformed.
	ErrCodeInvalidPipeline ErrorCode = "INVALID_PIPELINE"
	// ErrCodeInvalidExpression indicates an expression failed to compile.
	ErrCodeInvalidExpression ErrorCode = "INVALID_EXPRESSION"
	// ErrCodeInvalidInput indicates the input is invalid.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
)

// ErrCodeInternal indicates an unexpected internal failure.
const ErrCodeInternal ErrorCode = "INTERNAL_ERROR"

var fatalCodes = map[ErrorCode]bool{
	ErrCodeHandlerFault:      true,
	ErrCodeInvalidPipeline:   true,
	ErrCodeInternal:          true,
	ErrCodeUnknownOperator:   false,
	ErrCodeNotConverged:      false,
	ErrCodeInvalidExpression: false,
}

// IsFatalCode returns true if an error with this code aborts the pipeline
// it occurred in.
func IsFatalCode(code ErrorCode) bool {
	return fatalCodes[code]
}
