package period

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Preset names a relative report period.
type Preset string

const (
	ThisMonth           Preset = "thisMonth"
	LastMonth           Preset = "lastMonth"
	Last4Months         Preset = "last4Months"
	Last12Months        Preset = "last12Months"
	ThisQuarter         Preset = "thisQuarter"
	LastQuarter         Preset = "lastQuarter"
	ThisYearToLastMonth Preset = "thisYearToLastMonth"
	ThisYearToToday     Preset = "thisYearToToday"
)

// Presets lists the supported presets.
var Presets = []Preset{
	ThisMonth, LastMonth, Last4Months, Last12Months,
	ThisQuarter, LastQuarter, ThisYearToLastMonth, ThisYearToToday,
}

// ErrInvalidRange is returned by Manual when the bounds are unusable.
var ErrInvalidRange = errors.New("invalid date range")

// ParsePreset matches a preset name case-insensitively.
func ParsePreset(s string) (Preset, error) {
	for _, p := range Presets {
		if strings.EqualFold(string(p), strings.TrimSpace(s)) {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown period preset %q", s)
}

// Resolver turns presets into concrete ranges relative to Today. Year-based
// presets start at the fiscal year's first month.
type Resolver struct {
	Today       time.Time
	FiscalStart time.Month // zero means January
}

// Resolve returns the concrete range for p.
func (rs Resolver) Resolve(p Preset) (Range, error) {
	today := Truncate(rs.Today)
	if today.IsZero() {
		return Range{}, fmt.Errorf("resolving %s: today is unset", p)
	}
	thisMonth := StartOfMonth(today)
	lastMonth := thisMonth.AddDate(0, -1, 0)

	switch p {
	case ThisMonth:
		return Range{Start: thisMonth, End: EndOfMonth(today)}, nil
	case LastMonth:
		return Range{Start: lastMonth, End: EndOfMonth(lastMonth)}, nil
	case Last4Months:
		return Range{Start: thisMonth.AddDate(0, -3, 0), End: EndOfMonth(today)}, nil
	case Last12Months:
		return Range{Start: thisMonth.AddDate(0, -11, 0), End: EndOfMonth(today)}, nil
	case ThisQuarter:
		return Range{Start: StartOfQuarter(today), End: EndOfQuarter(today)}, nil
	case LastQuarter:
		prev := AddDays(StartOfQuarter(today), -1)
		return Range{Start: StartOfQuarter(prev), End: EndOfQuarter(prev)}, nil
	case ThisYearToLastMonth:
		// In the first month of a fiscal year this covers the whole prior year.
		return Range{Start: rs.fiscalYearStart(lastMonth), End: EndOfMonth(lastMonth)}, nil
	case ThisYearToToday:
		return Range{Start: rs.fiscalYearStart(today), End: today}, nil
	default:
		return Range{}, fmt.Errorf("unknown period preset %q", p)
	}
}

// fiscalYearStart returns the first day of the fiscal year containing d.
func (rs Resolver) fiscalYearStart(d time.Time) time.Time {
	m := rs.FiscalStart
	if m == 0 {
		m = time.January
	}
	start := Day(d.Year(), m, 1)
	if start.After(d) {
		start = Day(d.Year()-1, m, 1)
	}
	return start
}

// Manual builds an explicit override range. Both bounds are required and the
// start may not be after the end.
func Manual(from, to time.Time) (Range, error) {
	r := NewRange(from, to)
	if r.IsZero() {
		return Range{}, fmt.Errorf("%w: both bounds are required", ErrInvalidRange)
	}
	if r.Start.After(r.End) {
		return Range{}, fmt.Errorf("%w: %s is after %s", ErrInvalidRange, r.Start.Format(DateFormat), r.End.Format(DateFormat))
	}
	return r, nil
}
