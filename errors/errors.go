package errors

import (
	stderrors "errors"
	"fmt"
)

// AppError is the unified application error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Fatal indicates the enclosing pipeline cannot continue.
	Fatal bool `json:"fatal"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetails merges the provided details into the error and returns the receiver.
func (e *AppError) WithDetails(details map[string]any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError, classifying it from its code.
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Fatal:   IsFatalCode(code),
	}
}

// --- Constructors ---

// UnknownOperator creates a new AppError for a symbol with no registered handler.
func UnknownOperator(symbol string) *AppError {
	return &AppError{
		Code: ErrCodeUnknownOperator, Message: fmt.Sprintf("No handler registered for operator %q.", symbol),
		Details: map[string]any{"operator": symbol},
	}
}

// HandlerFault creates a new AppError for a handler that failed.
func HandlerFault(symbol string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeHandlerFault, Message: fmt.Sprintf("Operator %s failed.", symbol),
		Fatal: true, Details: map[string]any{"operator": symbol}, Cause: cause,
	}
}

// NotConverged creates a new AppError for an iteration that exhausted its cap.
func NotConverged(iterations int) *AppError {
	return &AppError{
		Code: ErrCodeNotConverged, Message: fmt.Sprintf("No fixed point reached after %d iterations.", iterations),
		Details: map[string]any{"iterations": iterations},
	}
}

// InvalidPipeline creates a new AppError for a malformed pipeline definition.
func InvalidPipeline(reason string) *AppError {
	return &AppError{
		Code: ErrCodeInvalidPipeline, Message: fmt.Sprintf("Invalid pipeline: %s", reason),
		Fatal: true,
	}
}

// InvalidExpression creates a new AppError for an expression that does not compile.
func InvalidExpression(source string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeInvalidExpression, Message: "The expression could not be compiled.",
		Details: map[string]any{"expression": source}, Cause: cause,
	}
}

// InvalidInput creates a new AppError for invalid input.
func InvalidInput(field, reason string) *AppError {
	details := make(map[string]any)
	if field != "" {
		details["field"] = field
	}
	return &AppError{
		Code: ErrCodeInvalidInput, Message: fmt.Sprintf("Invalid input: %s", reason),
		Details: details,
	}
}

// Internal creates a new AppError for an unexpected failure.
func Internal(cause error) *AppError {
	return &AppError{
		Code: ErrCodeInternal, Message: "An unexpected error occurred.",
		Fatal: true, Cause: cause,
	}
}

// IsAppError checks if an error is an AppError.
func IsAppError(err error) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr)
}

// AsAppError converts an error to an AppError if possible.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// HasCode reports whether err is an AppError with the given code.
func HasCode(err error, code ErrorCode) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Code == code
}
