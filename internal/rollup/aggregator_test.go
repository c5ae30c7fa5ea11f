package rollup

import (
	"math/rand"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/statements/internal/accounts"
	"github.com/cleared-dev/statements/internal/ledger"
	"github.com/cleared-dev/statements/internal/model"
	"github.com/cleared-dev/statements/internal/period"
)

func day(s string) time.Time {
	d, err := period.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func rng(from, to string) period.Range {
	return period.NewRange(day(from), day(to))
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func build(t *testing.T, accts []model.Account, txns []model.Transaction) *Aggregator {
	t.Helper()
	ai, err := accounts.NewIndex(accts)
	require.NoError(t, err)
	li, err := ledger.NewIndex(ai, txns)
	require.NoError(t, err)
	return New(ai, li)
}

func debit(when string, acct int, amount string) model.Transaction {
	return model.Transaction{ID: when, Date: day(when), AccountID: acct, Debit: dec(amount)}
}

func credit(when string, acct int, amount string) model.Transaction {
	return model.Transaction{ID: when, Date: day(when), AccountID: acct, Credit: dec(amount)}
}

func expenseTree() []model.Account {
	return []model.Account{
		{ID: 1, Name: "Operating", Type: model.AccountTypeExpense},
		{ID: 2, Name: "Office", Type: model.AccountTypeExpense, ParentID: 1},
		{ID: 3, Name: "Supplies", Type: model.AccountTypeExpense, ParentID: 2},
		{ID: 4, Name: "Rent", Type: model.AccountTypeExpense, ParentID: 1},
		{ID: 9, Name: "Sales", Type: model.AccountTypeRevenue},
	}
}

func TestDirectAndRollup(t *testing.T) {
	agg := build(t, expenseTree(), []model.Transaction{
		debit("2024-01-05", 1, "10"),
		debit("2024-01-06", 2, "20"),
		debit("2024-01-07", 3, "30"),
		debit("2024-02-01", 4, "40"),
		credit("2024-01-08", 3, "5"),
	})
	jan := rng("2024-01-01", "2024-01-31")

	assert.True(t, agg.Direct(1, jan).Equal(dec("10")))
	assert.True(t, agg.Rollup(3, jan).Equal(dec("25")))
	assert.True(t, agg.Rollup(2, jan).Equal(dec("45")))
	assert.True(t, agg.Rollup(1, jan).Equal(dec("55")))
	assert.True(t, agg.Rollup(1, rng("2024-01-01", "2024-02-29")).Equal(dec("95")))
	assert.True(t, agg.Rollup(4, jan).IsZero())
}

func TestRollup_EmptyRanges(t *testing.T) {
	agg := build(t, expenseTree(), []model.Transaction{debit("2024-01-05", 3, "10")})

	assert.True(t, agg.Rollup(1, period.Range{}).IsZero())
	assert.True(t, agg.Rollup(1, rng("2024-02-01", "2024-01-01")).IsZero())
	assert.True(t, agg.Rollup(1, rng("2023-01-01", "2023-12-31")).IsZero())
	assert.True(t, agg.Direct(1, period.Range{}).IsZero())
}

func TestRollup_MemoIsConsistent(t *testing.T) {
	agg := build(t, expenseTree(), []model.Transaction{debit("2024-01-05", 3, "10")})
	r := rng("2024-01-01", "2024-12-31")
	first := agg.Rollup(1, r)
	assert.True(t, first.Equal(agg.Rollup(1, r)))
	assert.True(t, agg.Rollup(1, rng("2024-01-06", "2024-12-31")).IsZero(), "different range is a different key")
}

func TestRollup_LiteralRangeUsesDates(t *testing.T) {
	agg := build(t, expenseTree(), []model.Transaction{debit("2024-01-10", 4, "100")})
	end := day("2024-01-31")

	afternoon := period.Range{Start: time.Date(2024, 1, 10, 15, 0, 0, 0, time.UTC), End: end}
	assert.True(t, agg.Direct(4, afternoon).Equal(dec("100")))
	assert.True(t, agg.Rollup(1, afternoon).Equal(dec("100")))
	assert.True(t, agg.Active(1, afternoon))

	est := period.Range{Start: time.Date(2024, 1, 10, 0, 0, 0, 0, time.FixedZone("EST", -5*3600)), End: end}
	assert.True(t, agg.Direct(4, est).Equal(dec("100")))
	assert.True(t, agg.Rollup(1, est).Equal(agg.Rollup(1, rng("2024-01-10", "2024-01-31"))))
}

// randomSnapshot builds a random forest of depth up to 6 with mixed types and
// a few hundred lines spread over two years.
func randomSnapshot(seed int64) ([]model.Account, []model.Transaction) {
	rnd := rand.New(rand.NewSource(seed))
	var accts []model.Account
	for i := 1; i <= 40; i++ {
		parent := 0
		if i > 5 && rnd.Intn(4) > 0 {
			parent = rnd.Intn(i-1) + 1
		}
		accts = append(accts, model.Account{
			ID:       i,
			Name:     "acct",
			Type:     model.AccountTypes[rnd.Intn(len(model.AccountTypes))],
			ParentID: parent,
		})
	}
	var txns []model.Transaction
	start := period.Day(2023, 1, 1)
	for i := 0; i < 600; i++ {
		txns = append(txns, model.Transaction{
			ID:        "r",
			Date:      period.AddDays(start, rnd.Intn(730)),
			AccountID: rnd.Intn(40) + 1,
			Debit:     decimal.New(int64(rnd.Intn(100000)), -2),
			Credit:    decimal.New(int64(rnd.Intn(50000)), -2),
		})
	}
	return accts, txns
}

func TestRollupRecursionLaw(t *testing.T) {
	for seed := int64(1); seed <= 5; seed++ {
		accts, txns := randomSnapshot(seed)
		agg := build(t, accts, txns)

		ranges := []period.Range{
			rng("2023-01-01", "2024-12-31"),
			rng("2023-05-17", "2023-08-02"),
			rng("2024-02-29", "2024-02-29"),
			rng("2025-01-01", "2025-12-31"),
		}
		for _, r := range ranges {
			for _, acct := range accts {
				want := agg.Direct(acct.ID, r)
				for _, child := range agg.Accounts().Children(acct.ID) {
					want = want.Add(agg.Rollup(child, r))
				}
				assert.True(t, agg.Rollup(acct.ID, r).Equal(want), "seed %d account %d range %s", seed, acct.ID, r)
			}
		}
	}
}

func TestBucketPartitionLaw(t *testing.T) {
	accts, txns := randomSnapshot(42)
	agg := build(t, accts, txns)

	ranges := []period.Range{
		rng("2023-01-01", "2024-12-31"),
		rng("2023-04-01", "2023-09-30"),
		rng("2024-01-01", "2024-03-31"),
	}
	for _, r := range ranges {
		for _, g := range []period.Granularity{period.Monthly, period.Quarterly, period.Total} {
			buckets := period.Buckets(r, g)
			for _, acct := range accts {
				got := agg.Series(acct.ID, buckets).Sum()
				assert.True(t, got.Equal(agg.Rollup(acct.ID, r)), "account %d range %s granularity %s", acct.ID, r, g)
			}
		}
	}
}

func TestSeries_BucketsUseCalendarBounds(t *testing.T) {
	agg := build(t, expenseTree(), []model.Transaction{
		debit("2024-01-02", 4, "100"),
		debit("2024-01-20", 4, "50"),
	})
	// The report starts mid-month but the January bucket spans all of January.
	buckets := period.MonthsInRange(rng("2024-01-15", "2024-02-10"))
	s := agg.Series(1, buckets)
	assert.True(t, s["2024-01"].Equal(dec("150")))
	assert.True(t, s["2024-02"].IsZero())

	ds := agg.DirectSeries(1, buckets)
	assert.True(t, ds["2024-01"].IsZero(), "parent has no direct lines")
}

func TestTopLevelAndActive(t *testing.T) {
	accts := append(expenseTree(), model.Account{ID: 5, Name: "Travel", Type: model.AccountTypeExpense})
	agg := build(t, accts, []model.Transaction{
		debit("2024-01-07", 3, "30"),
		credit("2024-01-07", 3, "30"), // nets to zero but still activity
	})
	jan := rng("2024-01-01", "2024-01-31")

	top := agg.TopLevel(model.AccountTypeExpense, jan)
	require.Len(t, top, 1)
	assert.Equal(t, 1, top[0].ID)
	assert.True(t, agg.Active(2, jan))
	assert.False(t, agg.Active(4, jan))
	assert.False(t, agg.Active(5, jan))
	assert.False(t, agg.Active(1, period.Range{}))
	assert.Empty(t, agg.TopLevel(model.AccountTypeRevenue, jan))
}

func TestSumHelpers(t *testing.T) {
	agg := build(t, expenseTree(), []model.Transaction{
		debit("2024-01-05", 1, "1"),
		debit("2024-01-05", 2, "2"),
		debit("2024-01-05", 4, "4"),
	})
	r := rng("2024-01-01", "2024-01-31")
	assert.True(t, agg.SumRollups([]int{2, 4}, r).Equal(dec("6")))
	assert.True(t, agg.SumDirect([]int{1, 2}, r).Equal(dec("3")))
	assert.Equal(t, []int{1, 9}, IDs([]model.Account{{ID: 1}, {ID: 9}}))
}

func TestSeriesArithmetic(t *testing.T) {
	a := Series{"2024-01": dec("10"), "2024-02": dec("5")}
	b := Series{"2024-01": dec("3"), "2024-03": dec("1")}

	sum := a.Add(b)
	assert.True(t, sum["2024-01"].Equal(dec("13")))
	assert.True(t, sum["2024-03"].Equal(dec("1")))

	diff := a.Sub(b)
	assert.True(t, diff["2024-01"].Equal(dec("7")))
	assert.True(t, diff["2024-03"].Equal(dec("-1")))
	assert.True(t, a.Sum().Equal(dec("15")))
	assert.True(t, a.Neg()["2024-02"].Equal(dec("-5")))
}
