package rollup

import (
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/statements/internal/period"
)

// Series maps bucket tokens to amounts.
type Series map[string]decimal.Decimal

// Sum adds every bucket of the series.
func (s Series) Sum() decimal.Decimal {
	total := decimal.Zero
	for _, v := range s {
		total = total.Add(v)
	}
	return total
}

// Add returns the bucket-wise sum of s and o.
func (s Series) Add(o Series) Series {
	out := make(Series, len(s))
	for k, v := range s {
		out[k] = v
	}
	for k, v := range o {
		out[k] = out[k].Add(v)
	}
	return out
}

// Sub returns the bucket-wise difference s - o.
func (s Series) Sub(o Series) Series {
	return s.Add(o.Neg())
}

// Neg returns the series with every amount negated.
func (s Series) Neg() Series {
	out := make(Series, len(s))
	for k, v := range s {
		out[k] = v.Neg()
	}
	return out
}

// Series returns the rollup of id for each bucket. A line lands in the bucket
// whose calendar bounds contain its date, independent of the report range.
func (a *Aggregator) Series(id int, buckets []period.Bucket) Series {
	out := make(Series, len(buckets))
	for _, b := range buckets {
		out[b.Token] = a.Rollup(id, b.Range)
	}
	return out
}

// DirectSeries returns the direct total of id for each bucket.
func (a *Aggregator) DirectSeries(id int, buckets []period.Bucket) Series {
	out := make(Series, len(buckets))
	for _, b := range buckets {
		out[b.Token] = a.Direct(id, b.Range)
	}
	return out
}

// SeriesOf evaluates fn for each bucket.
func SeriesOf(buckets []period.Bucket, fn func(period.Range) decimal.Decimal) Series {
	out := make(Series, len(buckets))
	for _, b := range buckets {
		out[b.Token] = fn(b.Range)
	}
	return out
}
