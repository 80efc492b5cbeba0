package pgsql

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shokoko2010/Elhamd-sub014/internal/apperrors"
	"github.com/shokoko2010/Elhamd-sub014/internal/core/domain"
	portsrepo "github.com/shokoko2010/Elhamd-sub014/internal/core/ports/repositories"
	"github.com/shokoko2010/Elhamd-sub014/internal/models"
	"github.com/shokoko2010/Elhamd-sub014/internal/utils/mapping"
	"github.com/shokoko2010/Elhamd-sub014/internal/utils/pagination"
)

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for journal entries and their items.
func newPgxJournalRepository(db DBTX) *PgxJournalRepository {
	return &PgxJournalRepository{BaseRepository: BaseRepository{DB: db}}
}

// Ensure PgxJournalRepository implements portsrepo.JournalRepositoryFacade
var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

const entryColumns = `entry_id, entry_date, description, status, source_reference, idempotency_key, reversal_of_entry_id, reversed_by_entry_id, created_at, created_by, last_updated_at, last_updated_by`

func scanEntry(row pgx.Row) (models.JournalEntry, error) {
	var m models.JournalEntry
	err := row.Scan(
		&m.EntryID,
		&m.EntryDate,
		&m.Description,
		&m.Status,
		&m.SourceReference,
		&m.IdempotencyKey,
		&m.ReversalOfEntryID,
		&m.ReversedByEntryID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveEntry inserts the entry header and queues every item in one pgx.Batch.
// The caller owns the transaction; a failed item insert aborts it.
func (r *PgxJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry) error {
	m := mapping.ToModelJournalEntry(entry)
	entryQuery := `
		INSERT INTO journal_entries (entry_id, entry_date, description, status, source_reference, idempotency_key, reversal_of_entry_id, reversed_by_entry_id, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.DB.Exec(ctx, entryQuery,
		m.EntryID,
		m.EntryDate,
		m.Description,
		m.Status,
		m.SourceReference,
		m.IdempotencyKey,
		m.ReversalOfEntryID,
		m.ReversedByEntryID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return translateError(err, domain.ErrEntryNotFound, "save journal entry "+m.EntryID)
	}

	batch := &pgx.Batch{}
	itemQuery := `
		INSERT INTO journal_entry_items (item_id, entry_id, line_no, account_id, debit_cents, credit_cents, memo)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	for _, it := range entry.Items {
		mi := mapping.ToModelJournalEntryItem(it)
		batch.Queue(itemQuery, mi.ItemID, mi.EntryID, mi.LineNo, mi.AccountID, mi.DebitCents, mi.CreditCents, mi.Memo)
	}

	br := r.DB.SendBatch(ctx, batch)
	// Close surfaces the first failing insert
	if err := br.Close(); err != nil {
		return translateError(err, domain.ErrEntryNotFound, "save items of journal entry "+m.EntryID)
	}
	return nil
}

func (r *PgxJournalRepository) findItems(ctx context.Context, entryID string) ([]models.JournalEntryItem, error) {
	query := `
		SELECT item_id, entry_id, line_no, account_id, debit_cents, credit_cents, memo
		FROM journal_entry_items
		WHERE entry_id = $1
		ORDER BY line_no ASC;
	`
	rows, err := r.DB.Query(ctx, query, entryID)
	if err != nil {
		return nil, translateError(err, domain.ErrEntryNotFound, "query journal entry items")
	}
	defer rows.Close()

	items := []models.JournalEntryItem{}
	for rows.Next() {
		var mi models.JournalEntryItem
		if err := rows.Scan(&mi.ItemID, &mi.EntryID, &mi.LineNo, &mi.AccountID, &mi.DebitCents, &mi.CreditCents, &mi.Memo); err != nil {
			return nil, translateError(err, domain.ErrEntryNotFound, "scan journal entry item")
		}
		items = append(items, mi)
	}
	if err := rows.Err(); err != nil {
		return nil, translateError(err, domain.ErrEntryNotFound, "iterate journal entry items")
	}
	return items, nil
}

func (r *PgxJournalRepository) findEntry(ctx context.Context, where string, key string) (*domain.JournalEntry, error) {
	m, err := scanEntry(r.DB.QueryRow(ctx, `SELECT `+entryColumns+` FROM journal_entries WHERE `+where, key))
	if err != nil {
		return nil, translateError(err, fmt.Errorf("%w: %s", domain.ErrEntryNotFound, key), "find journal entry")
	}
	items, err := r.findItems(ctx, m.EntryID)
	if err != nil {
		return nil, err
	}
	entry := mapping.ToDomainJournalEntry(m, items)
	return &entry, nil
}

// FindEntryByID retrieves an entry with its items.
func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	if !isUUID(entryID) {
		return nil, fmt.Errorf("%w: %s", domain.ErrEntryNotFound, entryID)
	}
	return r.findEntry(ctx, "entry_id = $1", entryID)
}

// FindEntryByIdempotencyKey retrieves the entry written under key, with its items.
func (r *PgxJournalRepository) FindEntryByIdempotencyKey(ctx context.Context, key string) (*domain.JournalEntry, error) {
	return r.findEntry(ctx, "idempotency_key = $1", key)
}

// ListEntries retrieves a page of entries, newest first. Items are not loaded.
func (r *PgxJournalRepository) ListEntries(ctx context.Context, filter domain.EntryFilter) ([]domain.JournalEntry, *string, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries e WHERE 1=1`
	args := []any{}
	next := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if filter.Status != nil {
		query += " AND e.status = " + next(string(*filter.Status))
	}
	if filter.SourceReference != nil {
		query += " AND e.source_reference = " + next(*filter.SourceReference)
	}
	if filter.AccountID != nil {
		if !isUUID(*filter.AccountID) {
			return []domain.JournalEntry{}, nil, nil
		}
		query += " AND EXISTS (SELECT 1 FROM journal_entry_items i WHERE i.entry_id = e.entry_id AND i.account_id = " + next(*filter.AccountID) + ")"
	}
	if filter.From != nil {
		query += " AND e.entry_date >= " + next(*filter.From)
	}
	if filter.To != nil {
		// To is inclusive of the whole day
		query += " AND e.entry_date < " + next(filter.To.AddDate(0, 0, 1))
	}
	if filter.NextToken != nil && *filter.NextToken != "" {
		lastCreatedAt, lastID, err := pagination.DecodeToken(*filter.NextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: invalid nextToken: %v", apperrors.ErrValidation, err)
		}
		if !isUUID(lastID) {
			return nil, nil, fmt.Errorf("%w: invalid nextToken", apperrors.ErrValidation)
		}
		query += " AND (e.created_at, e.entry_id) < (" + next(lastCreatedAt) + ", " + next(lastID) + "::uuid)"
	}
	// One extra row tells whether another page exists
	query += " ORDER BY e.created_at DESC, e.entry_id DESC LIMIT " + next(filter.Limit+1)

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, translateError(err, domain.ErrEntryNotFound, "list journal entries")
	}
	defer rows.Close()

	entries := make([]domain.JournalEntry, 0, filter.Limit+1)
	for rows.Next() {
		m, err := scanEntry(rows)
		if err != nil {
			return nil, nil, translateError(err, domain.ErrEntryNotFound, "scan journal entry")
		}
		entries = append(entries, mapping.ToDomainJournalEntry(m, nil))
	}
	if err := rows.Err(); err != nil {
		return nil, nil, translateError(err, domain.ErrEntryNotFound, "iterate journal entries")
	}

	var nextToken *string
	if len(entries) > filter.Limit {
		entries = entries[:filter.Limit]
		last := entries[len(entries)-1]
		token := pagination.EncodeToken(last.CreatedAt, last.EntryID)
		nextToken = &token
	}
	return entries, nextToken, nil
}

// MarkEntryVoid flips a POSTED entry to VOID. The status guard in the WHERE
// clause makes a concurrent second void update zero rows.
func (r *PgxJournalRepository) MarkEntryVoid(ctx context.Context, entryID string, reversalEntryID string, actorID string, now time.Time) error {
	if !isUUID(entryID) {
		return fmt.Errorf("%w: %s", domain.ErrEntryNotFound, entryID)
	}
	query := `
		UPDATE journal_entries
		SET status = $1, reversed_by_entry_id = $2, last_updated_at = $3, last_updated_by = $4
		WHERE entry_id = $5 AND status = $6;
	`
	cmdTag, err := r.DB.Exec(ctx, query, string(domain.Void), reversalEntryID, now, actorID, entryID, string(domain.Posted))
	if err != nil {
		return translateError(err, domain.ErrEntryNotFound, "void journal entry "+entryID)
	}
	if cmdTag.RowsAffected() == 0 {
		var exists bool
		if err := r.DB.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM journal_entries WHERE entry_id = $1)`, entryID).Scan(&exists); err != nil {
			return translateError(err, domain.ErrEntryNotFound, "check journal entry "+entryID)
		}
		if !exists {
			return fmt.Errorf("%w: %s", domain.ErrEntryNotFound, entryID)
		}
		return fmt.Errorf("%w: %s", domain.ErrAlreadyVoided, entryID)
	}
	return nil
}
