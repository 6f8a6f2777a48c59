package valueobject

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestValidateAmount(t *testing.T) {
	tests := []struct {
		name    string
		amount  string
		wantErr error
	}{
		{"valid", "1000.00", nil},
		{"one cent", "0.01", nil},
		{"maximum", "9999999999.99", nil},
		{"zero", "0", ErrAmountNotPositive},
		{"negative", "-5", ErrAmountNotPositive},
		{"too large", "10000000000", ErrAmountTooLarge},
		{"three decimals", "1.234", ErrAmountPrecision},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAmount(decimal.RequireFromString(tt.amount))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateAmount(%s) = %v, want %v", tt.amount, err, tt.wantErr)
			}
		})
	}

	if _, err := ParseAmount("abc"); err == nil {
		t.Error("expected error for non numeric amount")
	}
}

func TestNameValidators(t *testing.T) {
	if !IsValidUsername("alice_01") || IsValidUsername("ab") || IsValidUsername("bad name") {
		t.Error("unexpected username validation result")
	}
	if !IsValidEmail("user@example.com") || IsValidEmail("user@") {
		t.Error("unexpected email validation result")
	}
	if !IsValidPassword("secret") || IsValidPassword("short") {
		t.Error("unexpected password validation result")
	}
	if IsValidCategoryName("   ") || !IsValidCategoryName("Food") {
		t.Error("unexpected category name validation result")
	}
	if IsValidGoalName("x") || !IsValidGoalName("Trip") {
		t.Error("unexpected goal name validation result")
	}
}

func TestValidateDate(t *testing.T) {
	today := Date(2024, 6, 30)

	if err := ValidateDate(Date(1899, 12, 31), today, true); !errors.Is(err, ErrDateTooOld) {
		t.Errorf("expected ErrDateTooOld, got %v", err)
	}
	if err := ValidateDate(Date(2024, 7, 1), today, false); !errors.Is(err, ErrDateInFuture) {
		t.Errorf("expected ErrDateInFuture, got %v", err)
	}
	if err := ValidateDate(Date(2024, 7, 1), today, true); err != nil {
		t.Errorf("expected future date to be allowed, got %v", err)
	}
}

func TestValidateYearMonth(t *testing.T) {
	if err := ValidateYearMonth(2024, 13); !errors.Is(err, ErrMonthOutOfRange) {
		t.Errorf("expected ErrMonthOutOfRange, got %v", err)
	}
	if err := ValidateYearMonth(1800, 1); !errors.Is(err, ErrYearOutOfRange) {
		t.Errorf("expected ErrYearOutOfRange, got %v", err)
	}
	if err := ValidateYearMonth(2024, 3); err != nil {
		t.Errorf("unexpected error %v", err)
	}
}

func TestSanitizeText(t *testing.T) {
	if got := SanitizeText("  lunch   with\tteam  ", 0); got != "lunch with team" {
		t.Errorf("unexpected sanitized text %q", got)
	}
	if got := SanitizeText("abcdef", 3); got != "abc" {
		t.Errorf("expected truncation to 3 runes, got %q", got)
	}
}
