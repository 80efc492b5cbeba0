package domain

// AccountTotals are the posted debit and credit sums for one account.
type AccountTotals struct {
	AccountID string
	Debits    Money
	Credits   Money
}

// AccountBalance is an account's balance on its normal side.
type AccountBalance struct {
	AccountID     string        `json:"accountID"`
	Code          string        `json:"code"`
	Name          string        `json:"name"`
	AccountType   AccountType   `json:"accountType"`
	NormalBalance NormalBalance `json:"normalBalance"`
	Debits        Money         `json:"debits"`
	Credits       Money         `json:"credits"`
	Balance       Money         `json:"balance"`
}

// NewAccountBalance folds posted totals into a balance line for acc.
func NewAccountBalance(acc Account, totals AccountTotals) AccountBalance {
	return AccountBalance{
		AccountID:     acc.AccountID,
		Code:          acc.Code,
		Name:          acc.Name,
		AccountType:   acc.AccountType,
		NormalBalance: acc.NormalBalance,
		Debits:        totals.Debits,
		Credits:       totals.Credits,
		Balance:       acc.SignedBalance(totals.Debits, totals.Credits),
	}
}

// SummaryTotals are the headline figures of a financial summary.
// Equity-type accounts are not part of the four rollups.
type SummaryTotals struct {
	TotalAssets      Money `json:"totalAssets"`
	TotalLiabilities Money `json:"totalLiabilities"`
	TotalRevenue     Money `json:"totalRevenue"`
	TotalExpenses    Money `json:"totalExpenses"`
	NetIncome        Money `json:"netIncome"`
	Equity           Money `json:"equity"`
}

// FinancialSummary is the aggregate view consumed by finance reporting.
type FinancialSummary struct {
	Totals      SummaryTotals       `json:"totals"`
	Accounts    []AccountBalance    `json:"accounts"`
	EntryStatus map[EntryStatus]int `json:"entryStatus"`
}

// Summarize rolls balance lines up by account type.
func Summarize(balances []AccountBalance) SummaryTotals {
	var t SummaryTotals
	for _, b := range balances {
		switch b.AccountType {
		case Asset:
			t.TotalAssets += b.Balance
		case Liability:
			t.TotalLiabilities += b.Balance
		case Revenue:
			t.TotalRevenue += b.Balance
		case Expense:
			t.TotalExpenses += b.Balance
		}
	}
	t.NetIncome = t.TotalRevenue - t.TotalExpenses
	t.Equity = t.TotalAssets - t.TotalLiabilities
	return t
}

// TrialBalanceRow represents a single row in a trial balance report.
type TrialBalanceRow struct {
	AccountID   string      `json:"accountID"`
	Code        string      `json:"code"`
	AccountName string      `json:"accountName"`
	AccountType AccountType `json:"accountType"`
	Debit       Money       `json:"debit"`
	Credit      Money       `json:"credit"`
}

// TrialBalance lists net debit/credit positions per account.
type TrialBalance struct {
	Rows         []TrialBalanceRow `json:"rows"`
	TotalDebits  Money             `json:"totalDebits"`
	TotalCredits Money             `json:"totalCredits"`
	Balanced     bool              `json:"balanced"`
}

// NewTrialBalance nets each account's totals onto one side.
func NewTrialBalance(accounts []Account, totals map[string]AccountTotals) TrialBalance {
	tb := TrialBalance{Rows: make([]TrialBalanceRow, 0, len(accounts))}
	for _, acc := range accounts {
		t, ok := totals[acc.AccountID]
		if !ok {
			continue
		}
		row := TrialBalanceRow{
			AccountID:   acc.AccountID,
			Code:        acc.Code,
			AccountName: acc.Name,
			AccountType: acc.AccountType,
		}
		if net := t.Debits - t.Credits; net >= 0 {
			row.Debit = net
		} else {
			row.Credit = -net
		}
		tb.TotalDebits += row.Debit
		tb.TotalCredits += row.Credit
		tb.Rows = append(tb.Rows, row)
	}
	tb.Balanced = tb.TotalDebits == tb.TotalCredits
	return tb
}
