package report

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/statements/internal/model"
	"github.com/cleared-dev/statements/internal/period"
)

func TestPointInTimeBalance_IgnoresReportStart(t *testing.T) {
	agg := newAggregator(t, []model.Account{
		{ID: 1, Name: "Checking", Type: model.AccountTypeAsset},
	}, []model.Transaction{debit("a", "2024-01-01", 1, "500")})

	assert.True(t, PointInTimeBalance(agg, 1, day("2024-06-30")).Equal(dec("500")))

	for _, start := range []string{"2024-01-01", "2024-04-01", "2024-06-30"} {
		b, err := BuildBalanceSheet(context.Background(), agg, Options{Range: rng(start, "2024-06-30")})
		require.NoError(t, err)
		require.Len(t, b.Assets.Rows, 1)
		assert.True(t, b.Assets.Rows[0].Total.Equal(dec("500")), "start %s", start)
		assert.True(t, b.Assets.Total.Total.Equal(dec("500")))
	}
}

func TestBalanceSheet_Testdata(t *testing.T) {
	agg := sampleAggregator(t)
	b, err := BuildBalanceSheet(context.Background(), agg, Options{Range: rng("2024-01-01", "2024-02-29")})
	require.NoError(t, err)

	assert.Equal(t, "2024-02-29", b.AsOf)
	assert.Equal(t, []string{period.TotalToken}, b.Columns)
	assert.True(t, b.Assets.Total.Total.Equal(dec("12800")))
	assert.True(t, b.Liabilities.Total.Total.Equal(dec("4")))
	assert.True(t, b.RetainedEarnings.Total.Equal(dec("2796")))
	assert.True(t, b.Equity.Total.Total.Equal(dec("12796")))
	assert.True(t, b.TotalLiabilitiesAndEquity.Total.Equal(dec("12800")))
	assert.True(t, b.Difference.IsZero())

	current := findRow(b.Assets.Rows, 1000)
	require.NotNil(t, current)
	require.Len(t, current.Children, 1, "petty cash has no lines and is hidden")
	assert.Equal(t, 1010, current.Children[0].AccountID)
	assert.True(t, current.Total.Equal(dec("10800")))

	require.Len(t, b.Liabilities.Rows, 1)
	assert.Equal(t, 2010, b.Liabilities.Rows[0].AccountID)

	last := b.Equity.Rows[len(b.Equity.Rows)-1]
	assert.Equal(t, RetainedEarningsLabel, last.Label)
	assert.Zero(t, last.AccountID)
}

func TestBalanceSheet_MonthlyColumnsCappedAtAsOf(t *testing.T) {
	agg := sampleAggregator(t)
	b, err := BuildBalanceSheet(context.Background(), agg, Options{
		Range:       rng("2024-01-01", "2024-02-15"),
		Granularity: period.Monthly,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-01", "2024-02"}, b.Columns)

	checking := findRow(b.Assets.Rows, 1010)
	require.NotNil(t, checking)
	assert.True(t, checking.Amounts["2024-01"].Equal(dec("13500")))
	// The February column stops at the as-of date, before the late February lines.
	assert.True(t, checking.Amounts["2024-02"].Equal(dec("10300")))
	assert.True(t, checking.Total.Equal(dec("10300")))
	assert.True(t, b.RetainedEarnings.Amounts["2024-01"].Equal(dec("3496")))
}

func TestRetainedEarnings(t *testing.T) {
	agg := sampleAggregator(t)
	assert.True(t, RetainedEarnings(agg, day("2023-12-31")).IsZero())
	assert.True(t, RetainedEarnings(agg, day("2024-01-31")).Equal(dec("3496")))
	assert.True(t, RetainedEarnings(agg, day("2024-12-31")).Equal(dec("2796")))
}

func TestBalanceSheet_Compare(t *testing.T) {
	agg := sampleAggregator(t)
	b, err := BuildBalanceSheet(context.Background(), agg, Options{
		Range:   rng("2024-02-01", "2024-02-29"),
		Compare: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "2024-01-31", b.Previous)
	assert.True(t, b.Assets.Total.Previous.Equal(dec("13500")))
	assert.True(t, b.RetainedEarnings.Previous.Equal(dec("3496")))
	assert.True(t, b.TotalLiabilitiesAndEquity.Previous.Equal(dec("13500")))
}

func TestBalanceSheet_NoDate(t *testing.T) {
	b, err := BuildBalanceSheet(context.Background(), sampleAggregator(t), Options{})
	require.NoError(t, err)
	assert.True(t, b.NoData)
}
