package error

import "errors"

// Goal domain errors.
var (
	// ErrGoalNotFound is returned when a goal is not found in the system.
	ErrGoalNotFound = errors.New("goal not found")

	// ErrInvalidTargetAmount is returned when the target amount is zero or negative.
	ErrInvalidTargetAmount = errors.New("invalid target amount")

	// ErrInvalidGoalName is returned when the goal name is not 2-100 characters long.
	ErrInvalidGoalName = errors.New("goal name must be 2-100 characters")

	// ErrInvalidGoalType is returned when the goal type is unknown.
	ErrInvalidGoalType = errors.New("goal type must be 'saving' or 'expense_limit'")

	// ErrInvalidGoalPeriod is returned when the goal period is unknown.
	ErrInvalidGoalPeriod = errors.New("goal period must be 'monthly', 'yearly' or 'custom'")

	// ErrInvalidGoalDates is returned when a custom end date is not after the start date.
	ErrInvalidGoalDates = errors.New("end date must be after start date")

	// ErrInvalidGoalTransition is returned when a status change is not allowed from the current status.
	ErrInvalidGoalTransition = errors.New("goal status transition not allowed")
)

// GoalErrorCode defines error codes for goal errors.
// Format: GOL-XXYYYY where XX is category and YYYY is specific error.
type GoalErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeGoalNotFound        GoalErrorCode = "GOL-010001"
	ErrCodeInvalidTargetAmount GoalErrorCode = "GOL-010002"
	ErrCodeInvalidGoalName     GoalErrorCode = "GOL-010003"
	ErrCodeInvalidGoalType     GoalErrorCode = "GOL-010004"
	ErrCodeInvalidGoalPeriod   GoalErrorCode = "GOL-010005"
	ErrCodeInvalidGoalDates    GoalErrorCode = "GOL-010006"
	ErrCodeMissingGoalFields   GoalErrorCode = "GOL-010007"

	// Lifecycle errors (02XXXX)
	ErrCodeInvalidGoalTransition GoalErrorCode = "GOL-020001"
)

// GoalError represents a goal error with code and message.
type GoalError struct {
	Code    GoalErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *GoalError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *GoalError) Unwrap() error {
	return e.Err
}

// NewGoalError creates a new GoalError with the given code and message.
func NewGoalError(code GoalErrorCode, message string, err error) *GoalError {
	return &GoalError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
