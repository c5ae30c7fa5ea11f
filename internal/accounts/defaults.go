package accounts

import "github.com/cleared-dev/statements/internal/model"

// DefaultChart returns the default chart of accounts for an entity type.
// Unknown entity types get the single-member chart.
func DefaultChart(entityType string) []model.Account {
	if entityType == "llc_multi_member" {
		return llcMultiMemberChart()
	}
	return llcSingleMemberChart()
}

// llcMultiMemberChart replaces the owner's equity account with a capital
// account per member and a distributions account under members' equity.
func llcMultiMemberChart() []model.Account {
	var chart []model.Account
	for _, acct := range llcSingleMemberChart() {
		if acct.Type == model.AccountTypeEquity {
			continue
		}
		chart = append(chart, acct)
	}
	return append(chart,
		model.Account{ID: 3000, Name: "Members' Equity", Type: model.AccountTypeEquity},
		model.Account{ID: 3010, Name: "Member 1 Capital", Type: model.AccountTypeEquity, ParentID: 3000, Description: "Member 1 contributions"},
		model.Account{ID: 3020, Name: "Member 2 Capital", Type: model.AccountTypeEquity, ParentID: 3000, Description: "Member 2 contributions"},
		model.Account{ID: 3100, Name: "Member Distributions", Type: model.AccountTypeEquity, ParentID: 3000},
	)
}

func llcSingleMemberChart() []model.Account {
	return []model.Account{
		{ID: 1000, Name: "Current Assets", Type: model.AccountTypeAsset},
		{ID: 1010, Name: "Business Checking", Type: model.AccountTypeBankAccount, ParentID: 1000, Description: "Primary checking account"},
		{ID: 1020, Name: "Business Savings", Type: model.AccountTypeBankAccount, ParentID: 1000, Description: "Savings account"},
		{ID: 1100, Name: "Accounts Receivable", Type: model.AccountTypeAsset, ParentID: 1000},
		{ID: 1500, Name: "Equipment", Type: model.AccountTypeAsset, Description: "Computers and furniture"},
		{ID: 2010, Name: "Credit Card", Type: model.AccountTypeCreditCard, Description: "Business credit card"},
		{ID: 2100, Name: "Loans Payable", Type: model.AccountTypeLiability},
		{ID: 3010, Name: "Owner's Equity", Type: model.AccountTypeEquity, Description: "Owner contributions"},
		{ID: 4000, Name: "Revenue", Type: model.AccountTypeRevenue},
		{ID: 4010, Name: "Service Revenue", Type: model.AccountTypeRevenue, ParentID: 4000},
		{ID: 4020, Name: "Product Revenue", Type: model.AccountTypeRevenue, ParentID: 4000},
		{ID: 4500, Name: "Cost of Goods Sold", Type: model.AccountTypeCOGS},
		{ID: 5000, Name: "Operating Expenses", Type: model.AccountTypeExpense},
		{ID: 5010, Name: "Advertising & Marketing", Type: model.AccountTypeExpense, ParentID: 5000, Description: "Advertising costs"},
		{ID: 5020, Name: "Software & SaaS", Type: model.AccountTypeExpense, ParentID: 5000, Description: "Software subscriptions"},
		{ID: 5030, Name: "Office Supplies", Type: model.AccountTypeExpense, ParentID: 5000},
		{ID: 5040, Name: "Professional Services", Type: model.AccountTypeExpense, ParentID: 5000, Description: "Legal, accounting, consulting"},
		{ID: 5050, Name: "Rent", Type: model.AccountTypeExpense, ParentID: 5000},
	}
}
