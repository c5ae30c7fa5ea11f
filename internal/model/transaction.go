package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Source records where a ledger line came from. It never affects totals.
type Source string

const (
	SourceLedger Source = "ledger"
	SourceManual Source = "manual"
)

// Transaction is a single ledger line (one side of a double-entry).
type Transaction struct {
	ID            string          `json:"line_id"`        // "YYYY-MM-NNNx" where x = a,b,c...
	Date          time.Time       `json:"date"`
	Description   string          `json:"description"`
	AccountID     int             `json:"account_id"`
	Debit         decimal.Decimal `json:"debit"`          // zero if credit side
	Credit        decimal.Decimal `json:"credit"`         // zero if debit side
	TransactionID string          `json:"transaction_id"` // groups lines posted together
	Source        Source          `json:"source"`
	CompanyID     string          `json:"company_id,omitempty"`
}

// Normalized returns the line amount signed by the given account type.
func (t Transaction) Normalized(accountType AccountType) (decimal.Decimal, error) {
	return NormalizedAmount(accountType, t.Debit, t.Credit)
}
