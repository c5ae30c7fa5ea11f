package period

import (
	"fmt"
	"time"
)

// Range is an inclusive [Start, End] span of calendar dates.
type Range struct {
	Start time.Time
	End   time.Time
}

// NewRange returns a range with both bounds truncated to dates. Bounds are
// kept as given: a start after the end is an empty range.
func NewRange(start, end time.Time) Range {
	return Range{Start: Truncate(start), End: Truncate(end)}
}

// AsOf returns the since-inception range (Epoch, date] used for balances.
func AsOf(date time.Time) Range {
	return Range{Start: Epoch, End: Truncate(date)}
}

// Dates returns r with each bound truncated to its calendar date, read in the
// bound's own location.
func (r Range) Dates() Range {
	return NewRange(r.Start, r.End)
}

// IsZero reports whether either bound is unset. Unset ranges carry no data.
func (r Range) IsZero() bool {
	return r.Start.IsZero() || r.End.IsZero()
}

// Empty reports whether the range contains no dates.
func (r Range) Empty() bool {
	r = r.Dates()
	return r.IsZero() || r.Start.After(r.End)
}

// Contains reports whether date falls inside the range, bounds included.
func (r Range) Contains(date time.Time) bool {
	r = r.Dates()
	if r.Empty() {
		return false
	}
	d := Truncate(date)
	return !d.Before(r.Start) && !d.After(r.End)
}

// Days returns the number of dates in the range.
func (r Range) Days() int {
	r = r.Dates()
	if r.Empty() {
		return 0
	}
	return int(r.End.Sub(r.Start).Hours()/24) + 1
}

// Previous returns the fixed-duration window immediately preceding r:
// [start - (end - start), start - 1 day]. It is not calendar aligned.
func (r Range) Previous() Range {
	r = r.Dates()
	if r.Empty() {
		return Range{}
	}
	duration := r.End.Sub(r.Start)
	return Range{
		Start: Truncate(r.Start.Add(-duration)),
		End:   AddDays(r.Start, -1),
	}
}

func (r Range) String() string {
	if r.IsZero() {
		return "(no period)"
	}
	return fmt.Sprintf("%s..%s", r.Start.Format(DateFormat), r.End.Format(DateFormat))
}
