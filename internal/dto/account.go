package dto

import (
	"time"

	"github.com/shokoko2010/Elhamd-sub014/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the data needed to create a new account.
type CreateAccountRequest struct {
	Code            string               `json:"code" binding:"required,account_code"`
	Name            string               `json:"name" binding:"required,max=255"`
	AccountType     domain.AccountType   `json:"accountType" binding:"required,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
	NormalBalance   domain.NormalBalance `json:"normalBalance" binding:"omitempty,oneof=DEBIT CREDIT"` // Derived from the type when empty
	ParentAccountID *string              `json:"parentAccountID"`                                      // Optional; id or code of the parent
	Description     string               `json:"description" binding:"max=1000"`
}

// UpdateAccountRequest defines the data allowed for updating an account.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateAccountRequest struct {
	Name            *string `json:"name" binding:"omitempty,max=255"`
	Description     *string `json:"description" binding:"omitempty,max=1000"`
	ParentAccountID *string `json:"parentAccountID"` // Empty string detaches the account from its parent
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID       string               `json:"accountID"`
	Code            string               `json:"code"`
	Name            string               `json:"name"`
	AccountType     domain.AccountType   `json:"accountType"`
	NormalBalance   domain.NormalBalance `json:"normalBalance"`
	ParentAccountID *string              `json:"parentAccountID,omitempty"`
	Description     string               `json:"description"`
	IsActive        bool                 `json:"isActive"`
	CreatedAt       time.Time            `json:"createdAt"`
	CreatedBy       string               `json:"createdBy"`
	LastUpdatedAt   time.Time            `json:"lastUpdatedAt"`
	LastUpdatedBy   string               `json:"lastUpdatedBy"`
}

// ListAccountsParams defines the query parameters for listing accounts.
type ListAccountsParams struct {
	AccountType *domain.AccountType `form:"type" binding:"omitempty,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
	ActiveOnly  bool                `form:"activeOnly"`
	Limit       int                 `form:"limit,default=50" binding:"min=1,max=200"`
	NextToken   *string             `form:"nextToken"`
}

// ListAccountsResponse wraps a page of accounts.
type ListAccountsResponse struct {
	Accounts  []AccountResponse `json:"accounts"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// AccountBalanceResponse is an account's balance on its normal side.
type AccountBalanceResponse struct {
	AccountID     string               `json:"accountID"`
	Code          string               `json:"code"`
	Name          string               `json:"name"`
	AccountType   domain.AccountType   `json:"accountType"`
	NormalBalance domain.NormalBalance `json:"normalBalance"`
	Debits        decimal.Decimal      `json:"debits"`
	Credits       decimal.Decimal      `json:"credits"`
	Balance       decimal.Decimal      `json:"balance"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:       acc.AccountID,
		Code:            acc.Code,
		Name:            acc.Name,
		AccountType:     acc.AccountType,
		NormalBalance:   acc.NormalBalance,
		ParentAccountID: acc.ParentAccountID,
		Description:     acc.Description,
		IsActive:        acc.IsActive,
		CreatedAt:       acc.CreatedAt,
		CreatedBy:       acc.CreatedBy,
		LastUpdatedAt:   acc.LastUpdatedAt,
		LastUpdatedBy:   acc.LastUpdatedBy,
	}
}

// ToListAccountsResponse converts a page of accounts.
func ToListAccountsResponse(accounts []domain.Account, nextToken *string) ListAccountsResponse {
	resp := ListAccountsResponse{
		Accounts:  make([]AccountResponse, len(accounts)),
		NextToken: nextToken,
	}
	for i := range accounts {
		resp.Accounts[i] = ToAccountResponse(&accounts[i])
	}
	return resp
}

// ToAccountBalanceResponse converts a balance line, rendering cents as decimals.
func ToAccountBalanceResponse(b domain.AccountBalance) AccountBalanceResponse {
	return AccountBalanceResponse{
		AccountID:     b.AccountID,
		Code:          b.Code,
		Name:          b.Name,
		AccountType:   b.AccountType,
		NormalBalance: b.NormalBalance,
		Debits:        b.Debits.Decimal(),
		Credits:       b.Credits.Decimal(),
		Balance:       b.Balance.Decimal(),
	}
}
