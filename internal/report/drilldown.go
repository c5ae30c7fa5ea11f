package report

import (
	"errors"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/statements/internal/model"
	"github.com/cleared-dev/statements/internal/period"
	"github.com/cleared-dev/statements/internal/rollup"
)

// ErrUnknownAccount is returned when a drill-down names a missing account.
var ErrUnknownAccount = errors.New("unknown account")

// DrilldownLine is one ledger line behind a statement figure.
type DrilldownLine struct {
	model.Transaction
	AccountName string          `json:"account_name"`
	Amount      decimal.Decimal `json:"amount"`
	Balance     decimal.Decimal `json:"balance"`
}

// Drilldown lists the lines that make up an account's rollup over a range.
type Drilldown struct {
	AccountID int             `json:"account_id"`
	Label     string          `json:"label"`
	Period    string          `json:"period"`
	Lines     []DrilldownLine `json:"lines"`
	Total     decimal.Decimal `json:"total"`
}

// BuildDrilldown collects every line of the account's subtree dated in r,
// sorted by date then line ID. Each amount is signed by its own account's
// type and Balance is the running sum starting from zero, so the last
// balance equals the account's rollup over r.
func BuildDrilldown(agg *rollup.Aggregator, id int, r period.Range) (*Drilldown, error) {
	root, ok := agg.Accounts().Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownAccount, id)
	}
	d := &Drilldown{AccountID: id, Label: root.Name, Period: r.String()}

	for _, sub := range agg.Accounts().Subtree(id) {
		acct, _ := agg.Accounts().Get(sub)
		for _, txn := range agg.Ledger().InRange(sub, r) {
			amt, err := txn.Normalized(acct.Type)
			if err != nil {
				return nil, fmt.Errorf("line %s: %w", txn.ID, err)
			}
			d.Lines = append(d.Lines, DrilldownLine{Transaction: txn, AccountName: acct.Name, Amount: amt})
		}
	}

	sort.SliceStable(d.Lines, func(i, j int) bool {
		a, b := d.Lines[i], d.Lines[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		return a.ID < b.ID
	})

	balance := decimal.Zero
	for i := range d.Lines {
		balance = balance.Add(d.Lines[i].Amount)
		d.Lines[i].Balance = balance
	}
	d.Total = balance
	return d, nil
}
