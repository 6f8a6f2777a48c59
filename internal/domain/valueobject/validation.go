package valueobject

import (
	"errors"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

var (
	emailPattern    = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
	spaces          = regexp.MustCompile(`\s+`)

	// MaxAmount is the largest amount a NUMERIC(12,2) column can hold.
	MaxAmount = decimal.RequireFromString("9999999999.99")
)

// Validation errors. Use cases wrap them into their domain error codes.
var (
	ErrAmountNotPositive = errors.New("amount must be greater than 0")
	ErrAmountTooLarge    = errors.New("amount is too large")
	ErrAmountPrecision   = errors.New("amount can have at most 2 decimal places")
	ErrDateFormat        = errors.New("date must use the YYYY-MM-DD format")
	ErrDateInFuture      = errors.New("date cannot be in the future")
	ErrDateTooOld        = errors.New("date is too far in the past")
	ErrYearOutOfRange    = errors.New("year must be between 1900 and 2100")
	ErrMonthOutOfRange   = errors.New("month must be between 1 and 12")
)

// IsValidEmail reports whether s looks like an e-mail address.
func IsValidEmail(s string) bool {
	return emailPattern.MatchString(strings.TrimSpace(s))
}

// IsValidUsername accepts 3-80 characters of letters, digits, underscore and dash.
func IsValidUsername(s string) bool {
	n := utf8.RuneCountInString(s)
	return n >= 3 && n <= 80 && usernamePattern.MatchString(s)
}

// IsValidPassword accepts 6-128 characters.
func IsValidPassword(s string) bool {
	n := utf8.RuneCountInString(s)
	return n >= 6 && n <= 128
}

// IsValidCategoryName accepts 1-50 characters after trimming.
func IsValidCategoryName(s string) bool {
	n := utf8.RuneCountInString(strings.TrimSpace(s))
	return n >= 1 && n <= 50
}

// IsValidGoalName accepts 2-100 characters after trimming.
func IsValidGoalName(s string) bool {
	n := utf8.RuneCountInString(strings.TrimSpace(s))
	return n >= 2 && n <= 100
}

// ValidateAmount checks a currency amount: positive, at most MaxAmount, two fractional digits.
func ValidateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrAmountNotPositive
	}
	if amount.GreaterThan(MaxAmount) {
		return ErrAmountTooLarge
	}
	if !amount.Equal(amount.Truncate(2)) {
		return ErrAmountPrecision
	}
	return nil
}

// ParseAmount parses and validates a currency amount from user input.
func ParseAmount(s string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, ErrAmountNotPositive
	}
	if err := ValidateAmount(amount); err != nil {
		return decimal.Zero, err
	}
	return amount, nil
}

// ValidateDate checks a calendar date against the supported range. When allowFuture is false
// dates after today are rejected.
func ValidateDate(d, today time.Time, allowFuture bool) error {
	if d.Year() < 1900 {
		return ErrDateTooOld
	}
	if !allowFuture && DateOf(d).After(DateOf(today)) {
		return ErrDateInFuture
	}
	return nil
}

// ValidateYearMonth checks a report period.
func ValidateYearMonth(year, month int) error {
	if year < 1900 || year > 2100 {
		return ErrYearOutOfRange
	}
	if month < 1 || month > 12 {
		return ErrMonthOutOfRange
	}
	return nil
}

// SanitizeText collapses whitespace runs and cuts the text to maxLength runes (0 means no limit).
func SanitizeText(s string, maxLength int) string {
	s = spaces.ReplaceAllString(strings.TrimSpace(s), " ")
	if maxLength > 0 && utf8.RuneCountInString(s) > maxLength {
		s = string([]rune(s)[:maxLength])
	}
	return s
}
