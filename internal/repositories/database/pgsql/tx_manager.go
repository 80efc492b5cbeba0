package pgsql

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shokoko2010/Elhamd-sub014/internal/apperrors"
	portsrepo "github.com/shokoko2010/Elhamd-sub014/internal/core/ports/repositories"
)

// TxManager opens pgx transactions and hands out repositories bound to them.
type TxManager struct {
	Pool *pgxpool.Pool
}

var _ portsrepo.TransactionManager = (*TxManager)(nil)

// WithTx runs fn in a READ COMMITTED transaction. Posting correctness relies
// on row locks (FOR SHARE on accounts, FOR UPDATE on batches) and on UNIQUE
// constraints rather than on the isolation level.
func (m *TxManager) WithTx(ctx context.Context, fn func(ctx context.Context, store portsrepo.Store) error) error {
	return m.run(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, fn)
}

// WithSnapshot runs fn in a read-only REPEATABLE READ transaction, so every
// query in fn sees the same committed data.
func (m *TxManager) WithSnapshot(ctx context.Context, fn func(ctx context.Context, store portsrepo.Store) error) error {
	return m.run(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly}, fn)
}

func (m *TxManager) run(ctx context.Context, opts pgx.TxOptions, fn func(ctx context.Context, store portsrepo.Store) error) error {
	tx, err := m.Pool.BeginTx(ctx, opts)
	if err != nil {
		return apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	// No-op once committed
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(ctx, newStore(tx)); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return translateError(err, apperrors.ErrInternal, "commit transaction")
	}
	return nil
}

// store binds the repositories to one DBTX.
type store struct {
	db DBTX
}

func newStore(db DBTX) *store {
	return &store{db: db}
}

func (s *store) Accounts() portsrepo.AccountRepositoryFacade { return newPgxAccountRepository(s.db) }
func (s *store) Journals() portsrepo.JournalRepositoryFacade { return newPgxJournalRepository(s.db) }
func (s *store) Payroll() portsrepo.PayrollRepositoryFacade { return newPgxPayrollRepository(s.db) }
func (s *store) Reporting() portsrepo.ReportingRepository { return newPgxReportingRepository(s.db) }
