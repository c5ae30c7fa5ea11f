package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestNormalizedAmount(t *testing.T) {
	tests := []struct {
		typ  AccountType
		want string
	}{
		{AccountTypeAsset, "70"},
		{AccountTypeCOGS, "70"},
		{AccountTypeExpense, "70"},
		{AccountTypeBankAccount, "70"},
		{AccountTypeLiability, "-70"},
		{AccountTypeEquity, "-70"},
		{AccountTypeRevenue, "-70"},
		{AccountTypeCreditCard, "-70"},
	}
	for _, tt := range tests {
		got, err := NormalizedAmount(tt.typ, dec("100"), dec("30"))
		require.NoError(t, err, "type %s", tt.typ)
		assert.True(t, got.Equal(dec(tt.want)), "type %s: got %s", tt.typ, got)
	}
}

func TestNormalizedAmount_UnknownType(t *testing.T) {
	_, err := NormalizedAmount(AccountType("mystery"), dec("1"), decimal.Zero)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownAccountType)
}

func TestNormalizedAmount_Linearity(t *testing.T) {
	pairs := [][4]string{
		{"10", "0", "0", "4"},
		{"0.10", "0.20", "3.33", "1.01"},
		{"1000", "250.50", "0", "0"},
	}
	for _, typ := range AccountTypes {
		for _, p := range pairs {
			d1, c1, d2, c2 := dec(p[0]), dec(p[1]), dec(p[2]), dec(p[3])
			whole, err := NormalizedAmount(typ, d1.Add(d2), c1.Add(c2))
			require.NoError(t, err)
			a, _ := NormalizedAmount(typ, d1, c1)
			b, _ := NormalizedAmount(typ, d2, c2)
			assert.True(t, whole.Equal(a.Add(b)), "type %s pair %v", typ, p)
		}
	}
}

func TestParseAccountType(t *testing.T) {
	tests := []struct {
		input string
		want  AccountType
	}{
		{"asset", AccountTypeAsset},
		{"Bank Account", AccountTypeBankAccount},
		{"credit-card", AccountTypeCreditCard},
		{"COGS", AccountTypeCOGS},
		{"Cost of Goods Sold", AccountTypeCOGS},
		{" Revenue ", AccountTypeRevenue},
		{"expense", AccountTypeExpense},
	}
	for _, tt := range tests {
		got, err := ParseAccountType(tt.input)
		require.NoError(t, err, "input %q", tt.input)
		assert.Equal(t, tt.want, got)
	}

	_, err := ParseAccountType("goodwill-ish")
	assert.ErrorIs(t, err, ErrUnknownAccountType)
}

func TestAccountTypeNormal(t *testing.T) {
	n, err := AccountTypeCreditCard.Normal()
	require.NoError(t, err)
	assert.Equal(t, CreditNormal, n)
	assert.Equal(t, "credit", n.String())

	assert.True(t, AccountTypeBankAccount.Valid())
	assert.False(t, AccountType("").Valid())
	assert.True(t, AccountTypeCOGS.IsProfitAndLoss())
	assert.False(t, AccountTypeAsset.IsProfitAndLoss())
}
