package report

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/statements/internal/accounts"
	"github.com/cleared-dev/statements/internal/ledger"
	"github.com/cleared-dev/statements/internal/model"
	"github.com/cleared-dev/statements/internal/period"
	"github.com/cleared-dev/statements/internal/rollup"
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

func debit(id, when string, acct int, amount string) model.Transaction {
	return model.Transaction{ID: id, Date: day(when), AccountID: acct, Debit: dec(amount)}
}

func credit(id, when string, acct int, amount string) model.Transaction {
	return model.Transaction{ID: id, Date: day(when), AccountID: acct, Credit: dec(amount)}
}

func newAggregator(t *testing.T, accts []model.Account, txns []model.Transaction) *rollup.Aggregator {
	t.Helper()
	ai, err := accounts.NewIndex(accts)
	require.NoError(t, err)
	li, err := ledger.NewIndex(ai, txns)
	require.NoError(t, err)
	return rollup.New(ai, li)
}

// sampleAggregator loads the acme chart and journal from testdata.
func sampleAggregator(t *testing.T) *rollup.Aggregator {
	t.Helper()
	root := filepath.Join("..", "..", "testdata")

	f, err := os.Open(filepath.Join(root, "chart-of-accounts.csv"))
	require.NoError(t, err)
	defer f.Close()
	accts, err := accounts.ReadAccounts(f)
	require.NoError(t, err)

	j, err := os.Open(filepath.Join(root, "journal.csv"))
	require.NoError(t, err)
	defer j.Close()
	txns, err := ledger.ReadTransactions(j)
	require.NoError(t, err)

	return newAggregator(t, accts, txns)
}

func findRow(rows []Row, id int) *Row {
	for i := range rows {
		var found *Row
		rows[i].Walk(func(r *Row) {
			if found == nil && r.AccountID == id {
				found = r
			}
		})
		if found != nil {
			return found
		}
	}
	return nil
}
