// Package period handles calendar dates, inclusive date ranges, calendar
// buckets (months and quarters) and the report period presets.
//
// Dates are time.Time values at midnight UTC; every comparison is date-only.
package period

import (
	"fmt"
	"strings"
	"time"
)

// DateFormat is the ISO-8601 layout used for dates in files and flags.
const DateFormat = "2006-01-02"

// Epoch is the "since inception" sentinel used for point-in-time balances.
var Epoch = Day(1900, time.January, 1)

// Day returns the normalized date for year, month and day.
func Day(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Truncate drops the time of day, keeping the calendar date of t as seen in
// its own location.
func Truncate(t time.Time) time.Time {
	if t.IsZero() {
		return time.Time{}
	}
	return Day(t.Date())
}

// ParseDate parses a YYYY-MM-DD date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateFormat, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing date %q: %w", s, err)
	}
	return t, nil
}

// AddDays moves d by n calendar days.
func AddDays(d time.Time, n int) time.Time {
	return Day(d.Year(), d.Month(), d.Day()+n)
}

// StartOfMonth returns the first day of d's month.
func StartOfMonth(d time.Time) time.Time {
	return Day(d.Year(), d.Month(), 1)
}

// EndOfMonth returns the last day of d's month.
func EndOfMonth(d time.Time) time.Time {
	return Day(d.Year(), d.Month()+1, 0)
}

// Quarter returns the quarter number (1..4) of d.
func Quarter(d time.Time) int {
	return int(d.Month()-1)/3 + 1
}

// StartOfQuarter returns the first day of d's calendar quarter.
func StartOfQuarter(d time.Time) time.Time {
	return Day(d.Year(), time.Month((Quarter(d)-1)*3+1), 1)
}

// EndOfQuarter returns the last day of d's calendar quarter.
func EndOfQuarter(d time.Time) time.Time {
	return Day(d.Year(), time.Month(Quarter(d)*3+1), 0) // day 0 is the last day of the previous month
}
