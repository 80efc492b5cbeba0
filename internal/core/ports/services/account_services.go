package services

import (
	"context"

	"github.com/shokoko2010/Elhamd-sub014/internal/core/domain"
	"github.com/shokoko2010/Elhamd-sub014/internal/dto"
)

// AccountReaderSvc defines read operations for chart-of-accounts data
type AccountReaderSvc interface {
	// LookupAccount retrieves an account by its ID or, failing that shape, by its code.
	LookupAccount(ctx context.Context, idOrCode string) (*domain.Account, error)

	// ListAccounts retrieves a page of accounts ordered by code.
	ListAccounts(ctx context.Context, params dto.ListAccountsParams) (*dto.ListAccountsResponse, error)
}

// AccountWriterSvc defines write operations for chart-of-accounts data
type AccountWriterSvc interface {
	// CreateAccount persists a new, active account.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, actorID string) (*domain.Account, error)

	// UpdateAccount updates an existing account's name, description or parent.
	UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, actorID string) (*domain.Account, error)

	// DeactivateAccount marks an account as inactive once nothing depends on it.
	DeactivateAccount(ctx context.Context, accountID string, actorID string) (*domain.Account, error)
}

// AccountSvcFacade combines all account-related service interfaces
// This is a facade for clients that need access to all operations
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
