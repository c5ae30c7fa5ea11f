package ledger

import (
	"errors"
	"fmt"

	"github.com/cleared-dev/statements/internal/model"
)

var (
	// ErrUnknownAccount marks a line whose account is not in the chart.
	ErrUnknownAccount = errors.New("unknown account")
	// ErrCrossCompany marks a line posted under another company.
	ErrCrossCompany = errors.New("line belongs to another company")
	// ErrNegativeAmount marks a negative debit or credit.
	ErrNegativeAmount = errors.New("negative amount")
)

// IntegrityError describes a single ledger line that cannot be aggregated.
type IntegrityError struct {
	LineID string
	Err    error
	Detail string
}

func (e IntegrityError) Error() string {
	return fmt.Sprintf("line %s: %v: %s", e.LineID, e.Err, e.Detail)
}

func (e IntegrityError) Unwrap() error { return e.Err }

// AccountLookup resolves account IDs against the chart of accounts.
type AccountLookup interface {
	Get(id int) (model.Account, bool)
	Company() string
}

// Validate checks every line against the chart. Problems are collected, not
// short-circuited, so a caller sees the whole damage at once.
func Validate(txns []model.Transaction, accounts AccountLookup) []IntegrityError {
	var errs []IntegrityError
	company := accounts.Company()

	for _, txn := range txns {
		acct, ok := accounts.Get(txn.AccountID)
		if !ok {
			errs = append(errs, IntegrityError{
				LineID: txn.ID,
				Err:    ErrUnknownAccount,
				Detail: fmt.Sprintf("account %d", txn.AccountID),
			})
		} else if txn.CompanyID != company {
			errs = append(errs, IntegrityError{
				LineID: txn.ID,
				Err:    ErrCrossCompany,
				Detail: fmt.Sprintf("line company %q, account %d company %q", txn.CompanyID, acct.ID, company),
			})
		}

		if txn.Debit.IsNegative() {
			errs = append(errs, IntegrityError{
				LineID: txn.ID,
				Err:    ErrNegativeAmount,
				Detail: fmt.Sprintf("debit %s", txn.Debit),
			})
		}
		if txn.Credit.IsNegative() {
			errs = append(errs, IntegrityError{
				LineID: txn.ID,
				Err:    ErrNegativeAmount,
				Detail: fmt.Sprintf("credit %s", txn.Credit),
			})
		}
	}
	return errs
}
