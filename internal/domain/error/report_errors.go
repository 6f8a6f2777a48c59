package error

import "errors"

// Report domain errors.
var (
	// ErrReportNotFound is returned when no report exists and none could be generated.
	ErrReportNotFound = errors.New("report not found")

	// ErrInvalidReportPeriod is returned when year or month is out of range.
	ErrInvalidReportPeriod = errors.New("year must be 1900-2100 and month 1-12")

	// ErrUnsupportedExportFormat is returned for unknown export formats.
	ErrUnsupportedExportFormat = errors.New("unsupported export format")

	// ErrUnsupportedPayloadVersion is returned when a stored payload has a newer schema than this build knows.
	ErrUnsupportedPayloadVersion = errors.New("unsupported report payload schema version")
)

// ReportErrorCode defines error codes for report and analytics errors.
// Format: RPT-XXYYYY where XX is category and YYYY is specific error.
type ReportErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidReportPeriod     ReportErrorCode = "RPT-010001"
	ErrCodeUnsupportedExportFormat ReportErrorCode = "RPT-010002"

	// Lookup errors (02XXXX)
	ErrCodeReportNotFound ReportErrorCode = "RPT-020001"
	ErrCodeNoData         ReportErrorCode = "RPT-020002"

	// Storage errors (03XXXX)
	ErrCodeUnsupportedPayloadVersion ReportErrorCode = "RPT-030001"

	// Internal errors (99XXXX)
	ErrCodeReportInternalError ReportErrorCode = "RPT-990001"
)

// ReportError represents a report error with code and message.
type ReportError struct {
	Code    ReportErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ReportError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ReportError) Unwrap() error {
	return e.Err
}

// NewReportError creates a new ReportError with the given code and message.
func NewReportError(code ReportErrorCode, message string, err error) *ReportError {
	return &ReportError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
