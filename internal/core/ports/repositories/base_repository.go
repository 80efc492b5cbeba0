package repositories

import (
	"context"
)

// Store is the set of repositories bound to one connection or transaction.
type Store interface {
	Accounts() AccountRepositoryFacade
	Journals() JournalRepositoryFacade
	Payroll() PayrollRepositoryFacade
	Reporting() ReportingRepository
}

// TransactionManager runs units of work against the backing store.
type TransactionManager interface {
	// WithTx runs fn inside one read-write transaction. The transaction commits
	// only if fn returns nil; otherwise nothing fn wrote is kept.
	WithTx(ctx context.Context, fn func(ctx context.Context, store Store) error) error

	// WithSnapshot runs fn inside one read-only transaction that sees a single
	// point-in-time view of the data.
	WithSnapshot(ctx context.Context, fn func(ctx context.Context, store Store) error) error
}
