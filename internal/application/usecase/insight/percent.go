// Package insight derives human-readable observations from ledger statistics.
// Every function in this package is pure: callers gather the data, rules only read it.
package insight

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/HACO8888/Financial-Management-System/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// PercentChange is (new − old) / old × 100. When old is zero it is 0 if new is zero too, else 100.
func PercentChange(old, new decimal.Decimal) decimal.Decimal {
	if old.IsZero() {
		if new.IsZero() {
			return decimal.Zero
		}
		return hundred
	}
	return new.Sub(old).Div(old).Mul(hundred).Round(2)
}

// ComparePercent is (new − old) / |old| × 100. When old is zero it is 100 for a positive new
// value and 0 otherwise.
func ComparePercent(old, new decimal.Decimal) decimal.Decimal {
	if old.IsZero() {
		if new.IsPositive() {
			return hundred
		}
		return decimal.Zero
	}
	return new.Sub(old).Div(old.Abs()).Mul(hundred).Round(2)
}

// SavingsRate is net / income × 100. ok is false when there is no income.
func SavingsRate(s entity.Summary) (rate decimal.Decimal, ok bool) {
	if !s.TotalIncome.IsPositive() {
		return decimal.Zero, false
	}
	return s.NetAmount.Div(s.TotalIncome).Mul(hundred).Round(2), true
}

// Share is part / total × 100, 0 when total is not positive.
func Share(part, total decimal.Decimal) decimal.Decimal {
	if !total.IsPositive() {
		return decimal.Zero
	}
	return part.Div(total).Mul(hundred).Round(2)
}

func pct(d decimal.Decimal) string {
	f, _ := d.Float64()
	return fmt.Sprintf("%.1f%%", f)
}

func money(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}
