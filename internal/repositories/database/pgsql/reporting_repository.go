package pgsql

import (
	"context"

	"github.com/shokoko2010/Elhamd-sub014/internal/core/domain"
	portsrepo "github.com/shokoko2010/Elhamd-sub014/internal/core/ports/repositories"
)

type reportingRepository struct {
	BaseRepository
}

// newPgxReportingRepository creates a new repository for ledger aggregates.
func newPgxReportingRepository(db DBTX) *reportingRepository {
	return &reportingRepository{BaseRepository: BaseRepository{DB: db}}
}

var _ portsrepo.ReportingRepository = (*reportingRepository)(nil)

// SumPostedByAccount returns the debit and credit totals for one account.
// Voided entries stay in the sum; their reversals offset them.
func (r *reportingRepository) SumPostedByAccount(ctx context.Context, accountID string) (domain.AccountTotals, error) {
	totals := domain.AccountTotals{AccountID: accountID}
	if !isUUID(accountID) {
		return totals, nil
	}
	query := `
		SELECT COALESCE(SUM(debit_cents), 0)::bigint, COALESCE(SUM(credit_cents), 0)::bigint
		FROM journal_entry_items
		WHERE account_id = $1;
	`
	var debits, credits int64
	if err := r.DB.QueryRow(ctx, query, accountID).Scan(&debits, &credits); err != nil {
		return totals, translateError(err, domain.ErrAccountNotFound, "sum account items")
	}
	totals.Debits = domain.Money(debits)
	totals.Credits = domain.Money(credits)
	return totals, nil
}

// SumPostedByAllAccounts returns totals keyed by account ID for every account with items.
func (r *reportingRepository) SumPostedByAllAccounts(ctx context.Context) (map[string]domain.AccountTotals, error) {
	query := `
		SELECT account_id, SUM(debit_cents)::bigint, SUM(credit_cents)::bigint
		FROM journal_entry_items
		GROUP BY account_id;
	`
	rows, err := r.DB.Query(ctx, query)
	if err != nil {
		return nil, translateError(err, domain.ErrAccountNotFound, "sum items by account")
	}
	defer rows.Close()

	out := make(map[string]domain.AccountTotals)
	for rows.Next() {
		var (
			accountID       string
			debits, credits int64
		)
		if err := rows.Scan(&accountID, &debits, &credits); err != nil {
			return nil, translateError(err, domain.ErrAccountNotFound, "scan account totals")
		}
		out[accountID] = domain.AccountTotals{
			AccountID: accountID,
			Debits:    domain.Money(debits),
			Credits:   domain.Money(credits),
		}
	}
	if err := rows.Err(); err != nil {
		return nil, translateError(err, domain.ErrAccountNotFound, "iterate account totals")
	}
	return out, nil
}

// CountEntriesByStatus counts journal entries per status.
func (r *reportingRepository) CountEntriesByStatus(ctx context.Context) (map[domain.EntryStatus]int, error) {
	rows, err := r.DB.Query(ctx, `SELECT status, COUNT(*) FROM journal_entries GROUP BY status`)
	if err != nil {
		return nil, translateError(err, domain.ErrEntryNotFound, "count entries by status")
	}
	defer rows.Close()

	out := make(map[domain.EntryStatus]int)
	for rows.Next() {
		var (
			status string
			count  int
		)
		if err := rows.Scan(&status, &count); err != nil {
			return nil, translateError(err, domain.ErrEntryNotFound, "scan entry status count")
		}
		out[domain.EntryStatus(status)] = count
	}
	if err := rows.Err(); err != nil {
		return nil, translateError(err, domain.ErrEntryNotFound, "iterate entry status counts")
	}
	return out, nil
}
