package errors

// Report is the JSON structure written by the command line tool when a
// pipeline fails.
type Report struct {
	Error ReportBody `json:"error"`
}

// ReportBody contains the error details.
type ReportBody struct {
	Code    ErrorCode      `json:"code"`
	Message string         `json:"message"`
	Fatal   bool           `json:"fatal"`
	Details map[string]any `json:"details,omitempty"`
	Cause   string         `json:"cause,omitempty"`
}

// ToReport converts an AppError to a Report for JSON serialization.
func (e *AppError) ToReport() Report {
	body := ReportBody{
		Code:    e.Code,
		Message: e.Message,
		Fatal:   e.Fatal,
		Details: e.Details,
	}
	if e.Cause != nil {
		body.Cause = e.Cause.Error()
	}
	return Report{Error: body}
}

// ReportOf converts any error to a Report. Errors that are not AppErrors
// are reported as internal.
func ReportOf(err error) Report {
	if appErr, ok := AsAppError(err); ok {
		return appErr.ToReport()
	}
	return Internal(err).ToReport()
}
