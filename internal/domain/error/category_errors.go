package error

import "errors"

// Category domain errors.
var (
	ErrCategoryNotFound      = errors.New("category not found")
	ErrCategoryNameExists    = errors.New("category with this name and type already exists")
	ErrInvalidCategoryName   = errors.New("category name must be 1-50 characters")
	ErrInvalidCategoryType   = errors.New("category type must be 'income' or 'expense'")
	ErrDefaultCategoryDelete = errors.New("default categories cannot be deleted")
	ErrCategoryInUse         = errors.New("category is referenced by transactions")
)

// CategoryErrorCode defines error codes for category errors.
// Format: CAT-XXYYYY where XX is category and YYYY is specific error.
type CategoryErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidCategoryName   CategoryErrorCode = "CAT-010001"
	ErrCodeInvalidCategoryType   CategoryErrorCode = "CAT-010002"
	ErrCodeMissingCategoryFields CategoryErrorCode = "CAT-010003"

	// State errors (02XXXX)
	ErrCodeCategoryNotFound      CategoryErrorCode = "CAT-020001"
	ErrCodeCategoryNameExists    CategoryErrorCode = "CAT-020002"
	ErrCodeDefaultCategoryDelete CategoryErrorCode = "CAT-020003"
	ErrCodeCategoryInUse         CategoryErrorCode = "CAT-020004"
)

// CategoryError represents a category error with code and message.
type CategoryError struct {
	Code    CategoryErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *CategoryError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *CategoryError) Unwrap() error {
	return e.Err
}

// NewCategoryError creates a new CategoryError with the given code and message.
func NewCategoryError(code CategoryErrorCode, message string, err error) *CategoryError {
	return &CategoryError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
