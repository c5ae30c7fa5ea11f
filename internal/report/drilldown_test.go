package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/statements/internal/model"
)

func TestBuildDrilldown_Subtree(t *testing.T) {
	agg := sampleAggregator(t)
	r := rng("2024-01-01", "2024-02-29")

	d, err := BuildDrilldown(agg, 4000, r)
	require.NoError(t, err)
	assert.Equal(t, "Revenue", d.Label)
	require.Len(t, d.Lines, 2)
	assert.Equal(t, "2024-01-002b", d.Lines[0].ID)
	assert.Equal(t, "Service Revenue", d.Lines[0].AccountName)
	assert.True(t, d.Lines[0].Balance.Equal(dec("3500")))
	assert.True(t, d.Lines[1].Balance.Equal(dec("4300")))
	assert.True(t, d.Total.Equal(agg.Rollup(4000, r)))
}

func TestBuildDrilldown_RunningBalance(t *testing.T) {
	agg := sampleAggregator(t)
	d, err := BuildDrilldown(agg, 1010, rng("2024-02-01", "2024-02-29"))
	require.NoError(t, err)

	var amounts, balances []string
	for _, l := range d.Lines {
		amounts = append(amounts, l.Amount.String())
		balances = append(balances, l.Balance.String())
	}
	assert.Equal(t, []string{"-1200", "-2000", "-300", "800"}, amounts)
	assert.Equal(t, []string{"-1200", "-3200", "-3500", "-2700"}, balances, "balance restarts at zero")
}

func TestBuildDrilldown_MixedTypesSignedByOwnAccount(t *testing.T) {
	agg := newAggregator(t, []model.Account{
		{ID: 1, Name: "Parent", Type: model.AccountTypeExpense},
		{ID: 2, Name: "Refunds", Type: model.AccountTypeRevenue, ParentID: 1},
	}, []model.Transaction{
		debit("x2", "2024-01-05", 1, "50"),
		credit("x1", "2024-01-05", 2, "20"),
		debit("x3", "2024-01-01", 2, "5"),
	})
	r := rng("2024-01-01", "2024-01-31")
	d, err := BuildDrilldown(agg, 1, r)
	require.NoError(t, err)
	require.Len(t, d.Lines, 3)
	assert.Equal(t, []string{"x3", "x1", "x2"}, []string{d.Lines[0].ID, d.Lines[1].ID, d.Lines[2].ID})
	assert.True(t, d.Lines[0].Amount.Equal(dec("-5")))
	assert.True(t, d.Lines[1].Amount.Equal(dec("20")))
	assert.True(t, d.Total.Equal(agg.Rollup(1, r)))
}

func TestBuildDrilldown_Errors(t *testing.T) {
	agg := sampleAggregator(t)
	_, err := BuildDrilldown(agg, 9999, rng("2024-01-01", "2024-01-31"))
	assert.ErrorIs(t, err, ErrUnknownAccount)

	d, err := BuildDrilldown(agg, 1010, rng("2025-01-01", "2025-01-31"))
	require.NoError(t, err)
	assert.Empty(t, d.Lines)
	assert.True(t, d.Total.IsZero())
}
