package dto

import (
	"github.com/shokoko2010/Elhamd-sub014/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SummaryTotalsResponse holds the headline figures of the financial summary.
type SummaryTotalsResponse struct {
	TotalAssets      decimal.Decimal `json:"totalAssets"`
	TotalLiabilities decimal.Decimal `json:"totalLiabilities"`
	TotalRevenue     decimal.Decimal `json:"totalRevenue"`
	TotalExpenses    decimal.Decimal `json:"totalExpenses"`
	NetIncome        decimal.Decimal `json:"netIncome"`
	Equity           decimal.Decimal `json:"equity"`
}

// SummaryResponse represents the financial summary report response
type SummaryResponse struct {
	Totals      SummaryTotalsResponse    `json:"totals"`
	Accounts    []AccountBalanceResponse `json:"accounts"`
	EntryStatus map[string]int           `json:"entryStatus"`
}

// TrialBalanceRowResponse represents a row in the trial balance report response
type TrialBalanceRowResponse struct {
	AccountID   string          `json:"accountID"`
	Code        string          `json:"code"`
	AccountName string          `json:"accountName"`
	AccountType string          `json:"accountType"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// TrialBalanceResponse represents the trial balance report response
type TrialBalanceResponse struct {
	Rows   []TrialBalanceRowResponse `json:"rows"`
	Totals struct {
		Debit  decimal.Decimal `json:"debit"`
		Credit decimal.Decimal `json:"credit"`
	} `json:"totals"`
	Balanced bool `json:"balanced"`
}

// ToSummaryResponse converts a domain summary to a DTO response
func ToSummaryResponse(s *domain.FinancialSummary) SummaryResponse {
	resp := SummaryResponse{
		Totals: SummaryTotalsResponse{
			TotalAssets:      s.Totals.TotalAssets.Decimal(),
			TotalLiabilities: s.Totals.TotalLiabilities.Decimal(),
			TotalRevenue:     s.Totals.TotalRevenue.Decimal(),
			TotalExpenses:    s.Totals.TotalExpenses.Decimal(),
			NetIncome:        s.Totals.NetIncome.Decimal(),
			Equity:           s.Totals.Equity.Decimal(),
		},
		Accounts:    make([]AccountBalanceResponse, len(s.Accounts)),
		EntryStatus: make(map[string]int, len(s.EntryStatus)),
	}
	for i, b := range s.Accounts {
		resp.Accounts[i] = ToAccountBalanceResponse(b)
	}
	for status, n := range s.EntryStatus {
		resp.EntryStatus[string(status)] = n
	}
	return resp
}

// ToTrialBalanceResponse converts a domain trial balance to a DTO response
func ToTrialBalanceResponse(tb *domain.TrialBalance) TrialBalanceResponse {
	response := TrialBalanceResponse{
		Rows:     make([]TrialBalanceRowResponse, len(tb.Rows)),
		Balanced: tb.Balanced,
	}
	for i, row := range tb.Rows {
		response.Rows[i] = TrialBalanceRowResponse{
			AccountID:   row.AccountID,
			Code:        row.Code,
			AccountName: row.AccountName,
			AccountType: string(row.AccountType),
			Debit:       row.Debit.Decimal(),
			Credit:      row.Credit.Decimal(),
		}
	}
	response.Totals.Debit = tb.TotalDebits.Decimal()
	response.Totals.Credit = tb.TotalCredits.Decimal()
	return response
}
