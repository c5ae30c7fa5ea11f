package period

import (
	"fmt"
	"strings"
)

// Granularity selects how a report range is split into columns.
type Granularity int

const (
	Total Granularity = iota
	Monthly
	Quarterly
)

// TotalToken is the column token of the whole-range bucket.
const TotalToken = "total"

func (g Granularity) String() string {
	switch g {
	case Monthly:
		return "month"
	case Quarterly:
		return "quarter"
	default:
		return "total"
	}
}

// ParseGranularity accepts "month", "quarter" or "total" (and plurals).
func ParseGranularity(s string) (Granularity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "month", "months", "monthly":
		return Monthly, nil
	case "quarter", "quarters", "quarterly":
		return Quarterly, nil
	case "total", "":
		return Total, nil
	default:
		return Total, fmt.Errorf("unknown granularity %q", s)
	}
}

// Bucket is a calendar-aligned sub-period used as a report column.
type Bucket struct {
	Token string // "2024-01", "2024-Q1" or "total"
	Range Range
}

// MonthsInRange returns one bucket per calendar month touched by r, in order.
// Each bucket spans its whole month even when r starts or ends mid-month.
func MonthsInRange(r Range) []Bucket {
	if r.Empty() {
		return nil
	}
	var out []Bucket
	for cur := StartOfMonth(r.Start); !cur.After(r.End); cur = AddDays(EndOfMonth(cur), 1) {
		out = append(out, Bucket{
			Token: cur.Format("2006-01"),
			Range: Range{Start: cur, End: EndOfMonth(cur)},
		})
	}
	return out
}

// QuartersInRange returns one bucket per calendar quarter touched by r.
func QuartersInRange(r Range) []Bucket {
	if r.Empty() {
		return nil
	}
	var out []Bucket
	for cur := StartOfQuarter(r.Start); !cur.After(r.End); cur = AddDays(EndOfQuarter(cur), 1) {
		out = append(out, Bucket{
			Token: fmt.Sprintf("%d-Q%d", cur.Year(), Quarter(cur)),
			Range: Range{Start: cur, End: EndOfQuarter(cur)},
		})
	}
	return out
}

// Buckets splits r by granularity. Total yields a single bucket equal to r.
func Buckets(r Range, g Granularity) []Bucket {
	switch g {
	case Monthly:
		return MonthsInRange(r)
	case Quarterly:
		return QuartersInRange(r)
	default:
		if r.Empty() {
			return nil
		}
		return []Bucket{{Token: TotalToken, Range: r}}
	}
}

// Tokens returns the tokens of buckets in order.
func Tokens(buckets []Bucket) []string {
	out := make([]string, len(buckets))
	for i, b := range buckets {
		out[i] = b.Token
	}
	return out
}
