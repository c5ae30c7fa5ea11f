package ledger

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/statements/internal/model"
	"github.com/cleared-dev/statements/internal/period"
)

// ErrIntegrity wraps every ledger integrity failure returned by NewIndex.
var ErrIntegrity = errors.New("ledger integrity check failed")

// Index partitions ledger lines by account. Each account's lines are sorted
// by date once, so range queries are two binary searches and range sums are
// a prefix-sum difference. It is immutable and safe for concurrent reads.
type Index struct {
	byAccount map[int]*accountLines
	total     int
}

type accountLines struct {
	txns   []model.Transaction
	dates  []time.Time
	prefix []decimal.Decimal // prefix[i] = normalized sum of txns[:i]
}

// NewIndex validates txns against the chart and indexes them. Any integrity
// problem fails the whole build; lines are never silently dropped.
func NewIndex(accounts AccountLookup, txns []model.Transaction) (*Index, error) {
	if verrs := Validate(txns, accounts); len(verrs) > 0 {
		errs := make([]error, 0, len(verrs)+1)
		errs = append(errs, ErrIntegrity)
		for _, ve := range verrs {
			errs = append(errs, ve)
		}
		return nil, errors.Join(errs...)
	}

	idx := &Index{byAccount: make(map[int]*accountLines), total: len(txns)}
	for _, txn := range txns {
		txn.Date = period.Truncate(txn.Date)
		al := idx.byAccount[txn.AccountID]
		if al == nil {
			al = &accountLines{}
			idx.byAccount[txn.AccountID] = al
		}
		al.txns = append(al.txns, txn)
	}

	for acctID, al := range idx.byAccount {
		acct, _ := accounts.Get(acctID)
		sort.SliceStable(al.txns, func(i, j int) bool {
			return al.txns[i].Date.Before(al.txns[j].Date)
		})
		al.dates = make([]time.Time, len(al.txns))
		al.prefix = make([]decimal.Decimal, len(al.txns)+1)
		al.prefix[0] = decimal.Zero
		for i, txn := range al.txns {
			amt, err := txn.Normalized(acct.Type)
			if err != nil {
				return nil, fmt.Errorf("line %s: %w", txn.ID, err)
			}
			al.dates[i] = txn.Date
			al.prefix[i+1] = al.prefix[i].Add(amt)
		}
	}
	return idx, nil
}

// Len returns the number of indexed lines.
func (idx *Index) Len() int { return idx.total }

// ByAccount returns every line of the account, sorted by date.
func (idx *Index) ByAccount(accountID int) []model.Transaction {
	al := idx.byAccount[accountID]
	if al == nil {
		return nil
	}
	return al.txns
}

// bounds returns the half-open slice positions of lines dated inside r.
func (al *accountLines) bounds(r period.Range) (lo, hi int) {
	r = r.Dates()
	if r.Empty() {
		return 0, 0
	}
	lo = sort.Search(len(al.dates), func(i int) bool { return !al.dates[i].Before(r.Start) })
	hi = sort.Search(len(al.dates), func(i int) bool { return al.dates[i].After(r.End) })
	if hi < lo {
		hi = lo
	}
	return lo, hi
}

// InRange returns the account's lines dated within r, both bounds included.
func (idx *Index) InRange(accountID int, r period.Range) []model.Transaction {
	al := idx.byAccount[accountID]
	if al == nil {
		return nil
	}
	lo, hi := al.bounds(r)
	if lo == hi {
		return nil
	}
	return al.txns[lo:hi]
}

// Sum returns the normalized total of the account's own lines within r.
func (idx *Index) Sum(accountID int, r period.Range) decimal.Decimal {
	al := idx.byAccount[accountID]
	if al == nil {
		return decimal.Zero
	}
	lo, hi := al.bounds(r)
	return al.prefix[hi].Sub(al.prefix[lo])
}

// Count returns how many of the account's own lines fall within r.
func (idx *Index) Count(accountID int, r period.Range) int {
	al := idx.byAccount[accountID]
	if al == nil {
		return 0
	}
	lo, hi := al.bounds(r)
	return hi - lo
}
