// Package valueobject contains domain value objects for the Financial Management System.
package valueobject

import (
	"fmt"
	"time"
)

// DateLayout is the calendar date format used at every persistence and API boundary.
const DateLayout = "2006-01-02"

// Date returns the calendar date as midnight UTC.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// DateOf drops the clock part of t, keeping the calendar date in t's own location.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return Date(y, m, d)
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// FormatDate formats a calendar date as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// DaysBetween returns the number of whole days from a to b (negative when b is before a).
func DaysBetween(a, b time.Time) int {
	return int(DateOf(b).Sub(DateOf(a)).Hours() / 24)
}

// WeekdayIndex maps Monday to 0 and Sunday to 6.
func WeekdayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// WeekStart returns the Monday of the week containing t.
func WeekStart(t time.Time) time.Time {
	d := DateOf(t)
	return d.AddDate(0, 0, -WeekdayIndex(d))
}

// AddMonthsClamped adds n months to d, clamping the day to the last day of the target month.
// Jan 31 plus one month is Feb 28 (or 29).
func AddMonthsClamped(d time.Time, n int) time.Time {
	y, m, day := d.Date()
	total := int(m) - 1 + n
	ty := y + total/12
	tm := total % 12
	if tm < 0 {
		tm += 12
		ty--
	}
	last := DaysInMonth(ty, tm+1)
	if day > last {
		day = last
	}
	return Date(ty, time.Month(tm+1), day)
}

// DaysInMonth returns the number of days in the given month.
func DaysInMonth(year, month int) int {
	return Date(year, time.Month(month)+1, 0).Day()
}

// PreviousMonth returns the year and month immediately before the given one.
func PreviousMonth(year, month int) (int, int) {
	return ShiftMonth(year, month, -1)
}

// ShiftMonth moves (year, month) by n months.
func ShiftMonth(year, month, n int) (int, int) {
	d := Date(year, time.Month(month), 1).AddDate(0, n, 0)
	return d.Year(), int(d.Month())
}

// DateRange is a closed calendar date interval [Start, End].
type DateRange struct {
	Start time.Time
	End   time.Time
}

// NewDateRange builds a range from two dates, dropping their clock parts.
func NewDateRange(start, end time.Time) (DateRange, error) {
	r := DateRange{Start: DateOf(start), End: DateOf(end)}
	if r.End.Before(r.Start) {
		return DateRange{}, fmt.Errorf("range end %s is before start %s", FormatDate(r.End), FormatDate(r.Start))
	}
	return r, nil
}

// MonthRange returns the full calendar month.
func MonthRange(year, month int) DateRange {
	return DateRange{
		Start: Date(year, time.Month(month), 1),
		End:   Date(year, time.Month(month), DaysInMonth(year, month)),
	}
}

// YearRange returns the full calendar year.
func YearRange(year int) DateRange {
	return DateRange{Start: Date(year, time.January, 1), End: Date(year, time.December, 31)}
}

// Days returns the inclusive number of days in the range.
func (r DateRange) Days() int {
	return DaysBetween(r.Start, r.End) + 1
}

// Contains reports whether the date falls inside the range.
func (r DateRange) Contains(t time.Time) bool {
	d := DateOf(t)
	return !d.Before(r.Start) && !d.After(r.End)
}

// EachDay calls fn for every date in the range in ascending order.
func (r DateRange) EachDay(fn func(day time.Time)) {
	for d := r.Start; !d.After(r.End); d = d.AddDate(0, 0, 1) {
		fn(d)
	}
}
