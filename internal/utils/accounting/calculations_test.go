package accounting_test

import (
	"testing"

	"github.com/shokoko2010/Elhamd-sub014/internal/core/domain"
	"github.com/shokoko2010/Elhamd-sub014/internal/utils/accounting"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func records() []domain.PayrollRecord {
	return []domain.PayrollRecord{
		{EmployeeID: "e1", NetPay: 100000, ExpenseAccountID: "5000", LiabilityAccountID: "2100"},
		{EmployeeID: "e2", NetPay: 150000, ExpenseAccountID: "5000", LiabilityAccountID: "2100"},
	}
}

func TestAccrualLines_NetsSharedAccounts(t *testing.T) {
	lines := accounting.AccrualLines(records())

	require.Len(t, lines, 2)
	assert.Equal(t, "5000", lines[0].AccountID)
	assert.Equal(t, domain.Money(250000), lines[0].Debit)
	assert.Equal(t, "2100", lines[1].AccountID)
	assert.Equal(t, domain.Money(250000), lines[1].Credit)
	assert.NoError(t, domain.ValidateLines(lines))
}

func TestAccrualLines_SeparateAccounts(t *testing.T) {
	recs := append(records(), domain.PayrollRecord{
		EmployeeID: "e3", NetPay: 5000, ExpenseAccountID: "5100", LiabilityAccountID: "2100",
	}, domain.PayrollRecord{
		EmployeeID: "e4", NetPay: 0, ExpenseAccountID: "5200", LiabilityAccountID: "2200",
	})

	lines := accounting.AccrualLines(recs)

	// zero net pay contributes no line; 5000 and 5100 debits, one 2100 credit
	require.Len(t, lines, 3)
	assert.Equal(t, domain.PostingLine{AccountID: "5000", Debit: 250000, Memo: "payroll expense"}, lines[0])
	assert.Equal(t, domain.PostingLine{AccountID: "5100", Debit: 5000, Memo: "payroll expense"}, lines[1])
	assert.Equal(t, domain.PostingLine{AccountID: "2100", Credit: 255000, Memo: "payroll payable"}, lines[2])
	assert.NoError(t, domain.ValidateLines(lines))
}

func TestPaymentLines(t *testing.T) {
	lines := accounting.PaymentLines(records(), "1010")

	require.Len(t, lines, 2)
	assert.Equal(t, "2100", lines[0].AccountID)
	assert.Equal(t, domain.Money(250000), lines[0].Debit)
	assert.Equal(t, "1010", lines[1].AccountID)
	assert.Equal(t, domain.Money(250000), lines[1].Credit)
	assert.NoError(t, domain.ValidateLines(lines))
}

func TestPaymentLines_NothingToPay(t *testing.T) {
	lines := accounting.PaymentLines([]domain.PayrollRecord{{LiabilityAccountID: "2100"}}, "1010")
	assert.Empty(t, lines)
	assert.ErrorIs(t, domain.ValidateLines(lines), domain.ErrEmptyEntry)
}

func TestNetPayTotal(t *testing.T) {
	assert.Equal(t, domain.Money(250000), accounting.NetPayTotal(records()))
}
