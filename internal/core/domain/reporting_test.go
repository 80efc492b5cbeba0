package domain_test

import (
	"testing"

	"github.com/shokoko2010/Elhamd-sub014/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	balances := []domain.AccountBalance{
		{AccountType: domain.Asset, Balance: 100000},
		{AccountType: domain.Asset, Balance: -20000},
		{AccountType: domain.Liability, Balance: 30000},
		{AccountType: domain.Equity, Balance: 99999},
		{AccountType: domain.Revenue, Balance: 70000},
		{AccountType: domain.Expense, Balance: 20000},
	}

	got := domain.Summarize(balances)

	assert.Equal(t, domain.Money(80000), got.TotalAssets)
	assert.Equal(t, domain.Money(30000), got.TotalLiabilities)
	assert.Equal(t, domain.Money(70000), got.TotalRevenue)
	assert.Equal(t, domain.Money(20000), got.TotalExpenses)
	assert.Equal(t, domain.Money(50000), got.NetIncome)
	assert.Equal(t, domain.Money(50000), got.Equity)
	assert.Equal(t, got.TotalAssets, got.TotalLiabilities+got.Equity)
}

func TestNewTrialBalance(t *testing.T) {
	accounts := []domain.Account{
		{AccountID: "cash", Code: "1000", AccountType: domain.Asset},
		{AccountID: "sales", Code: "4000", AccountType: domain.Revenue},
		{AccountID: "idle", Code: "9999", AccountType: domain.Expense},
	}
	totals := map[string]domain.AccountTotals{
		"cash":  {AccountID: "cash", Debits: 70000, Credits: 20000},
		"sales": {AccountID: "sales", Debits: 20000, Credits: 70000},
	}

	tb := domain.NewTrialBalance(accounts, totals)

	assert.Len(t, tb.Rows, 2)
	assert.Equal(t, domain.Money(50000), tb.Rows[0].Debit)
	assert.Equal(t, domain.Money(50000), tb.Rows[1].Credit)
	assert.True(t, tb.Balanced)
}
