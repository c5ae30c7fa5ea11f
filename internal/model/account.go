package model

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// AccountType classifies accounts in the chart of accounts.
type AccountType string

const (
	AccountTypeAsset       AccountType = "asset"
	AccountTypeLiability   AccountType = "liability"
	AccountTypeEquity      AccountType = "equity"
	AccountTypeRevenue     AccountType = "revenue"
	AccountTypeCOGS        AccountType = "cogs"
	AccountTypeExpense     AccountType = "expense"
	AccountTypeBankAccount AccountType = "bank_account"
	AccountTypeCreditCard  AccountType = "credit_card"
)

// AccountTypes lists every recognised account type in statement order.
var AccountTypes = []AccountType{
	AccountTypeAsset,
	AccountTypeBankAccount,
	AccountTypeLiability,
	AccountTypeCreditCard,
	AccountTypeEquity,
	AccountTypeRevenue,
	AccountTypeCOGS,
	AccountTypeExpense,
}

// ErrUnknownAccountType is returned for account types outside AccountTypes.
var ErrUnknownAccountType = errors.New("unknown account type")

// NormalBalance tells which side of the ledger increases an account.
type NormalBalance int

const (
	DebitNormal NormalBalance = iota + 1
	CreditNormal
)

func (n NormalBalance) String() string {
	switch n {
	case DebitNormal:
		return "debit"
	case CreditNormal:
		return "credit"
	default:
		return "unknown"
	}
}

// Normal returns the normal balance side of the type.
func (t AccountType) Normal() (NormalBalance, error) {
	switch t {
	case AccountTypeAsset, AccountTypeCOGS, AccountTypeExpense, AccountTypeBankAccount:
		return DebitNormal, nil
	case AccountTypeLiability, AccountTypeEquity, AccountTypeRevenue, AccountTypeCreditCard:
		return CreditNormal, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownAccountType, string(t))
	}
}

// Valid reports whether t is a recognised account type.
func (t AccountType) Valid() bool {
	_, err := t.Normal()
	return err == nil
}

// IsProfitAndLoss reports whether the type belongs on the profit & loss statement.
func (t AccountType) IsProfitAndLoss() bool {
	return t == AccountTypeRevenue || t == AccountTypeCOGS || t == AccountTypeExpense
}

// ParseAccountType accepts the canonical names plus the spellings found in
// exported charts ("Bank Account", "Credit Card", "Cost of Goods Sold").
func ParseAccountType(s string) (AccountType, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.NewReplacer(" ", "_", "-", "_").Replace(key)
	switch key {
	case "asset", "assets":
		return AccountTypeAsset, nil
	case "liability", "liabilities":
		return AccountTypeLiability, nil
	case "equity":
		return AccountTypeEquity, nil
	case "revenue", "income":
		return AccountTypeRevenue, nil
	case "cogs", "cost_of_goods_sold":
		return AccountTypeCOGS, nil
	case "expense", "expenses":
		return AccountTypeExpense, nil
	case "bank_account", "bankaccount", "bank":
		return AccountTypeBankAccount, nil
	case "credit_card", "creditcard":
		return AccountTypeCreditCard, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownAccountType, s)
	}
}

// NormalizedAmount signs a debit/credit pair by the account type's normal
// balance: debit minus credit for debit-normal types, credit minus debit
// otherwise.
func NormalizedAmount(t AccountType, debit, credit decimal.Decimal) (decimal.Decimal, error) {
	n, err := t.Normal()
	if err != nil {
		return decimal.Zero, err
	}
	if n == DebitNormal {
		return debit.Sub(credit), nil
	}
	return credit.Sub(debit), nil
}

// Account represents a row in chart-of-accounts.csv.
type Account struct {
	ID          int
	Name        string
	Type        AccountType
	ParentID    int // 0 = top-level
	CompanyID   string
	Description string
}

// IsRoot reports whether the account has no parent.
func (a Account) IsRoot() bool { return a.ParentID == 0 }
