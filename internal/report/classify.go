package report

import (
	"strings"

	"github.com/cleared-dev/statements/internal/accounts"
	"github.com/cleared-dev/statements/internal/model"
)

// Class is the cash flow bucket an account's lines fall into.
type Class int

const (
	ClassBank Class = iota
	ClassInvesting
	ClassLiability
	ClassEquity
	ClassRevenue
	ClassCOGS
	ClassExpense
)

var classNames = map[Class]string{
	ClassBank:      "bank",
	ClassInvesting: "investing",
	ClassLiability: "liability",
	ClassEquity:    "equity",
	ClassRevenue:   "revenue",
	ClassCOGS:      "cogs",
	ClassExpense:   "expense",
}

func (c Class) String() string { return classNames[c] }

var bankNameHints = []string{"cash", "bank", "checking", "savings"}

// IsBankAccount reports whether acct holds cash. Configured IDs and the
// bank_account type always count; plain asset accounts count when their name
// mentions cash, bank, checking or savings.
func IsBankAccount(acct model.Account, explicit map[int]bool) bool {
	if explicit[acct.ID] || acct.Type == model.AccountTypeBankAccount {
		return true
	}
	if acct.Type != model.AccountTypeAsset {
		return false
	}
	name := strings.ToLower(acct.Name)
	for _, hint := range bankNameHints {
		if strings.Contains(name, hint) {
			return true
		}
	}
	return false
}

// Classifier assigns every account of a chart to a cash flow class.
type Classifier struct {
	explicit map[int]bool
	members  map[Class][]int
	class    map[int]Class
}

// NewClassifier classifies every account of idx. bankIDs are always
// treated as bank accounts.
func NewClassifier(idx *accounts.Index, bankIDs []int) *Classifier {
	c := &Classifier{
		explicit: make(map[int]bool, len(bankIDs)),
		members:  make(map[Class][]int),
		class:    make(map[int]Class, idx.Len()),
	}
	for _, id := range bankIDs {
		c.explicit[id] = true
	}
	for _, acct := range idx.All() {
		cl := c.Classify(acct)
		c.class[acct.ID] = cl
		c.members[cl] = append(c.members[cl], acct.ID)
	}
	return c
}

// Classify returns the class of acct.
func (c *Classifier) Classify(acct model.Account) Class {
	if IsBankAccount(acct, c.explicit) {
		return ClassBank
	}
	switch acct.Type {
	case model.AccountTypeAsset:
		return ClassInvesting
	case model.AccountTypeLiability, model.AccountTypeCreditCard:
		return ClassLiability
	case model.AccountTypeEquity:
		return ClassEquity
	case model.AccountTypeRevenue:
		return ClassRevenue
	case model.AccountTypeCOGS:
		return ClassCOGS
	default:
		return ClassExpense
	}
}

// Members returns the IDs of every account in class cl, nested or not.
func (c *Classifier) Members(cl Class) []int {
	return c.members[cl]
}

// ClassOf returns the class assigned to an account ID.
func (c *Classifier) ClassOf(id int) (Class, bool) {
	cl, ok := c.class[id]
	return cl, ok
}
