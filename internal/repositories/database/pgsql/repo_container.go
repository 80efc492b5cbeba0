package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/shokoko2010/Elhamd-sub014/internal/core/ports/repositories"
)

// NewRepositoryProvider wires the Postgres repositories. The repositories run
// on the pool directly; TxManager hands out transaction-bound ones.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo:   newPgxAccountRepository(dbPool),
		JournalRepo:   newPgxJournalRepository(dbPool),
		PayrollRepo:   newPgxPayrollRepository(dbPool),
		ReportingRepo: newPgxReportingRepository(dbPool),
		TxManager:     &TxManager{Pool: dbPool},
	}
}
