package accounting

import (
	"github.com/shokoko2010/Elhamd-sub014/internal/core/domain"
)

// sideTotals accumulates amounts per account for one side of an entry,
// remembering the order accounts were first seen so output is deterministic.
type sideTotals struct {
	order []string
	sums  map[string]domain.Money
}

func newSideTotals() *sideTotals {
	return &sideTotals{sums: make(map[string]domain.Money)}
}

func (s *sideTotals) add(accountID string, amount domain.Money) {
	if amount.IsZero() {
		return
	}
	if _, ok := s.sums[accountID]; !ok {
		s.order = append(s.order, accountID)
	}
	s.sums[accountID] += amount
}

func (s *sideTotals) total() domain.Money {
	var t domain.Money
	for _, v := range s.sums {
		t += v
	}
	return t
}

func (s *sideTotals) debits(memo string) []domain.PostingLine {
	lines := make([]domain.PostingLine, 0, len(s.order))
	for _, id := range s.order {
		lines = append(lines, domain.PostingLine{AccountID: id, Debit: s.sums[id], Memo: memo})
	}
	return lines
}

func (s *sideTotals) credits(memo string) []domain.PostingLine {
	lines := make([]domain.PostingLine, 0, len(s.order))
	for _, id := range s.order {
		lines = append(lines, domain.PostingLine{AccountID: id, Credit: s.sums[id], Memo: memo})
	}
	return lines
}

// AccrualLines builds the payroll accrual: net pay debited to each expense
// account and credited to each liability account, one line per account per side.
func AccrualLines(records []domain.PayrollRecord) []domain.PostingLine {
	expense, liability := newSideTotals(), newSideTotals()
	for _, r := range records {
		expense.add(r.ExpenseAccountID, r.NetPay)
		liability.add(r.LiabilityAccountID, r.NetPay)
	}
	return append(expense.debits("payroll expense"), liability.credits("payroll payable")...)
}

// PaymentLines settles the accrued liabilities from the disbursing account.
func PaymentLines(records []domain.PayrollRecord, paymentAccountID string) []domain.PostingLine {
	liability := newSideTotals()
	for _, r := range records {
		liability.add(r.LiabilityAccountID, r.NetPay)
	}
	lines := liability.debits("payroll payable settled")
	if total := liability.total(); !total.IsZero() {
		lines = append(lines, domain.PostingLine{AccountID: paymentAccountID, Credit: total, Memo: "payroll disbursement"})
	}
	return lines
}

// NetPayTotal sums net pay across records.
func NetPayTotal(records []domain.PayrollRecord) domain.Money {
	var t domain.Money
	for _, r := range records {
		t += r.NetPay
	}
	return t
}
