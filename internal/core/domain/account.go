package domain

import (
	"fmt"
	"strings"

	"github.com/shokoko2010/Elhamd-sub014/internal/apperrors"
)

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// AccountTypes lists every account type in reporting order.
var AccountTypes = []AccountType{Asset, Liability, Equity, Revenue, Expense}

// IsValid reports whether t is one of the known account types.
func (t AccountType) IsValid() bool {
	switch t {
	case Asset, Liability, Equity, Revenue, Expense:
		return true
	}
	return false
}

// NormalBalance returns the side on which accounts of this type increase.
func (t AccountType) NormalBalance() NormalBalance {
	switch t {
	case Asset, Expense:
		return NormalDebit
	default:
		return NormalCredit
	}
}

// NormalBalance is the side (debit or credit) an account naturally carries.
type NormalBalance string

const (
	NormalDebit  NormalBalance = "DEBIT"
	NormalCredit NormalBalance = "CREDIT"
)

func (n NormalBalance) IsValid() bool {
	return n == NormalDebit || n == NormalCredit
}

// MaxAccountDepth bounds the ancestor walk when validating a parent link.
const MaxAccountDepth = 64

// Account represents a ledger account in the chart of accounts.
type Account struct {
	AccountID       string        `json:"accountID"`
	Code            string        `json:"code"`
	Name            string        `json:"name"`
	AccountType     AccountType   `json:"accountType"`
	NormalBalance   NormalBalance `json:"normalBalance"`
	ParentAccountID *string       `json:"parentAccountID,omitempty"`
	Description     string        `json:"description"`
	IsActive        bool          `json:"isActive"`
	AuditFields
}

// NormalizeCode trims surrounding whitespace from an account code.
func NormalizeCode(code string) string {
	return strings.TrimSpace(code)
}

// ResolveNormalBalance fills in the normal balance for a new account or
// rejects one that contradicts the type.
func (a *Account) ResolveNormalBalance() error {
	if !a.AccountType.IsValid() {
		return fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, a.AccountType)
	}
	want := a.AccountType.NormalBalance()
	if a.NormalBalance == "" {
		a.NormalBalance = want
		return nil
	}
	if a.NormalBalance != want {
		return fmt.Errorf("%w: %s accounts carry a %s balance, got %s", ErrInvalidNormalBalance, a.AccountType, want, a.NormalBalance)
	}
	return nil
}

// SignedBalance converts posted debit and credit totals into a balance on the
// account's normal side.
func (a Account) SignedBalance(debits, credits Money) Money {
	if a.NormalBalance == NormalDebit {
		return debits - credits
	}
	return credits - debits
}

// AccountFilter narrows account listings.
type AccountFilter struct {
	AccountType *AccountType
	ActiveOnly  bool
	Limit       int
	NextToken   *string
}
