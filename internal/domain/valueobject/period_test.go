package valueobject

import (
	"testing"
	"time"
)

func TestDaysInMonth(t *testing.T) {
	tests := []struct {
		year, month, want int
	}{
		{2024, 2, 29},
		{2023, 2, 28},
		{2024, 3, 31},
		{2024, 4, 30},
		{2024, 12, 31},
	}

	for _, tt := range tests {
		if got := DaysInMonth(tt.year, tt.month); got != tt.want {
			t.Errorf("DaysInMonth(%d, %d) = %d, want %d", tt.year, tt.month, got, tt.want)
		}
	}
}

func TestPreviousMonth(t *testing.T) {
	if y, m := PreviousMonth(2024, 1); y != 2023 || m != 12 {
		t.Errorf("expected 2023-12, got %d-%d", y, m)
	}
	if y, m := PreviousMonth(2024, 7); y != 2024 || m != 6 {
		t.Errorf("expected 2024-06, got %d-%d", y, m)
	}
	if y, m := ShiftMonth(2024, 3, -5); y != 2023 || m != 10 {
		t.Errorf("expected 2023-10, got %d-%d", y, m)
	}
}

func TestAddMonthsClamped(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		n    int
		want time.Time
	}{
		{"plain", Date(2024, 3, 15), 1, Date(2024, 4, 15)},
		{"clamps to leap february", Date(2024, 1, 31), 1, Date(2024, 2, 29)},
		{"clamps to short month", Date(2023, 3, 31), 1, Date(2023, 4, 30)},
		{"year boundary", Date(2024, 12, 10), 1, Date(2025, 1, 10)},
		{"twelve months", Date(2024, 2, 29), 12, Date(2025, 2, 28)},
		{"negative", Date(2024, 1, 15), -1, Date(2023, 12, 15)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AddMonthsClamped(tt.in, tt.n); !got.Equal(tt.want) {
				t.Errorf("got %s, want %s", FormatDate(got), FormatDate(tt.want))
			}
		})
	}
}

func TestWeekStart(t *testing.T) {
	// 2024-03-14 is a Thursday.
	if got := WeekStart(Date(2024, 3, 14)); !got.Equal(Date(2024, 3, 11)) {
		t.Errorf("expected Monday 2024-03-11, got %s", FormatDate(got))
	}
	// Sunday belongs to the week that started the previous Monday.
	if got := WeekStart(Date(2024, 3, 17)); !got.Equal(Date(2024, 3, 11)) {
		t.Errorf("expected Monday 2024-03-11, got %s", FormatDate(got))
	}
	if idx := WeekdayIndex(Date(2024, 3, 17)); idx != 6 {
		t.Errorf("expected Sunday index 6, got %d", idx)
	}
}

func TestDateRange(t *testing.T) {
	r := MonthRange(2024, 2)
	if r.Days() != 29 {
		t.Errorf("expected 29 days, got %d", r.Days())
	}
	if !r.Contains(Date(2024, 2, 29)) || r.Contains(Date(2024, 3, 1)) {
		t.Error("unexpected Contains result at month boundary")
	}

	count := 0
	r.EachDay(func(time.Time) { count++ })
	if count != 29 {
		t.Errorf("expected EachDay to visit 29 days, got %d", count)
	}

	if _, err := NewDateRange(Date(2024, 2, 2), Date(2024, 2, 1)); err == nil {
		t.Error("expected error for inverted range")
	}
}
