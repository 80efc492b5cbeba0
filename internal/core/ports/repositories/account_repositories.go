package repositories

import (
	"context"
	"time"

	"github.com/shokoko2010/Elhamd-sub014/internal/core/domain"
)

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountByCode retrieves an account by its chart-of-accounts code.
	FindAccountByCode(ctx context.Context, code string) (*domain.Account, error)

	// FindAccountsByIDs retrieves multiple accounts by their IDs. Missing IDs are simply absent from the map.
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts retrieves a page of accounts ordered by code, plus the token for the next page.
	ListAccounts(ctx context.Context, filter domain.AccountFilter) ([]domain.Account, *string, error)

	// ListAllAccounts returns the whole chart ordered by code.
	ListAllAccounts(ctx context.Context) ([]domain.Account, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccount updates an existing account's name, description and parent.
	UpdateAccount(ctx context.Context, account domain.Account) error

	// DeactivateAccount marks an account as inactive.
	DeactivateAccount(ctx context.Context, accountID string, actorID string, now time.Time) error
}

// AccountLocker takes row locks; only meaningful inside a transaction.
type AccountLocker interface {
	// LockAccountsForPosting share-locks the accounts so they cannot be deactivated mid-posting.
	LockAccountsForPosting(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// LockAccountForUpdate exclusively locks one account row.
	LockAccountForUpdate(ctx context.Context, accountID string) (*domain.Account, error)

	// LockHierarchy serializes parent changes across the whole chart until the
	// transaction ends, so concurrent moves cannot form a cycle.
	LockHierarchy(ctx context.Context) error
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountLocker
}
