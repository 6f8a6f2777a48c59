package error

import "errors"

// Transaction domain errors.
var (
	// ErrTransactionNotFound is returned when a transaction is not found.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrInvalidTransactionType is returned when the type is neither income nor expense.
	ErrInvalidTransactionType = errors.New("invalid transaction type")

	// ErrInvalidTransactionAmount is returned when the amount is not positive, too large
	// or has more than two fractional digits.
	ErrInvalidTransactionAmount = errors.New("invalid transaction amount")

	// ErrInvalidTransactionDate is returned when the date is malformed or out of range.
	ErrInvalidTransactionDate = errors.New("invalid transaction date")

	// ErrCategoryNotFoundForTransaction is returned when the referenced category does not exist.
	ErrCategoryNotFoundForTransaction = errors.New("category not found")

	// ErrCategoryTypeMismatch is returned when the category type differs from the transaction type.
	ErrCategoryTypeMismatch = errors.New("category type does not match transaction type")

	// ErrDescriptionTooLong is returned when the description exceeds the maximum length.
	ErrDescriptionTooLong = errors.New("description too long")
)

// TransactionErrorCode defines error codes for transaction errors.
// Format: TXN-XXYYYY where XX is category and YYYY is specific error.
type TransactionErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidTransactionType   TransactionErrorCode = "TXN-010001"
	ErrCodeInvalidTransactionDate   TransactionErrorCode = "TXN-010002"
	ErrCodeInvalidTransactionAmount TransactionErrorCode = "TXN-010003"
	ErrCodeDescriptionTooLong       TransactionErrorCode = "TXN-010004"
	ErrCodeMissingTransactionFields TransactionErrorCode = "TXN-010005"
	ErrCodeCategoryTypeMismatch     TransactionErrorCode = "TXN-010006"

	// Lookup errors (02XXXX)
	ErrCodeTransactionNotFound TransactionErrorCode = "TXN-020001"
	ErrCodeTxnCategoryNotFound TransactionErrorCode = "TXN-020002"
)

// TransactionError represents a transaction error with code and message.
type TransactionError struct {
	Code    TransactionErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *TransactionError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *TransactionError) Unwrap() error {
	return e.Err
}

// NewTransactionError creates a new TransactionError with the given code and message.
func NewTransactionError(code TransactionErrorCode, message string, err error) *TransactionError {
	return &TransactionError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
