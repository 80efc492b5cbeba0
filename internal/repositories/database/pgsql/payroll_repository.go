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

type PgxPayrollRepository struct {
	BaseRepository
}

// newPgxPayrollRepository creates a new repository for payroll batches, records and events.
func newPgxPayrollRepository(db DBTX) *PgxPayrollRepository {
	return &PgxPayrollRepository{BaseRepository: BaseRepository{DB: db}}
}

// Ensure PgxPayrollRepository implements portsrepo.PayrollRepositoryFacade
var _ portsrepo.PayrollRepositoryFacade = (*PgxPayrollRepository)(nil)

const (
	batchColumns  = `batch_id, period, status, payment_account_id, accrual_entry_id, payment_entry_id, notes, created_at, created_by, last_updated_at, last_updated_by`
	recordColumns = `record_id, batch_id, employee_id, gross_pay_cents, deductions_cents, net_pay_cents, expense_account_id, liability_account_id, status, paid_at, created_at, created_by, last_updated_at, last_updated_by`
)

// terminalStatuses is bound as a text[] parameter.
var terminalStatuses = []string{string(domain.BatchPaid), string(domain.BatchCancelled)}

func scanBatch(row pgx.Row) (models.PayrollBatch, error) {
	var m models.PayrollBatch
	err := row.Scan(
		&m.BatchID,
		&m.Period,
		&m.Status,
		&m.PaymentAccountID,
		&m.AccrualEntryID,
		&m.PaymentEntryID,
		&m.Notes,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func scanRecord(row pgx.Row) (models.PayrollRecord, error) {
	var m models.PayrollRecord
	err := row.Scan(
		&m.RecordID,
		&m.BatchID,
		&m.EmployeeID,
		&m.GrossPayCents,
		&m.DeductionsCents,
		&m.NetPayCents,
		&m.ExpenseAccountID,
		&m.LiabilityAccountID,
		&m.Status,
		&m.PaidAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxPayrollRepository) recordIDs(ctx context.Context, batchID string) ([]string, error) {
	rows, err := r.DB.Query(ctx, `SELECT record_id FROM payroll_records WHERE batch_id = $1 ORDER BY position ASC`, batchID)
	if err != nil {
		return nil, translateError(err, domain.ErrRecordNotFound, "query payroll record ids")
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, translateError(err, domain.ErrRecordNotFound, "collect payroll record ids")
	}
	return ids, nil
}

func (r *PgxPayrollRepository) findBatch(ctx context.Context, batchID string, lockClause string) (*domain.PayrollBatch, error) {
	if !isUUID(batchID) {
		return nil, fmt.Errorf("%w: %s", domain.ErrBatchNotFound, batchID)
	}
	m, err := scanBatch(r.DB.QueryRow(ctx, `SELECT `+batchColumns+` FROM payroll_batches WHERE batch_id = $1`+lockClause, batchID))
	if err != nil {
		return nil, translateError(err, fmt.Errorf("%w: %s", domain.ErrBatchNotFound, batchID), "find payroll batch")
	}
	ids, err := r.recordIDs(ctx, batchID)
	if err != nil {
		return nil, err
	}
	batch := mapping.ToDomainPayrollBatch(m, ids)
	return &batch, nil
}

// FindBatchByID retrieves a batch with its record IDs.
func (r *PgxPayrollRepository) FindBatchByID(ctx context.Context, batchID string) (*domain.PayrollBatch, error) {
	return r.findBatch(ctx, batchID, "")
}

// LockBatch exclusively locks a batch row and returns its current state.
func (r *PgxPayrollRepository) LockBatch(ctx context.Context, batchID string) (*domain.PayrollBatch, error) {
	return r.findBatch(ctx, batchID, " FOR UPDATE")
}

// FindRecordsByBatchID retrieves all records of a batch in creation order.
func (r *PgxPayrollRepository) FindRecordsByBatchID(ctx context.Context, batchID string) ([]domain.PayrollRecord, error) {
	if !isUUID(batchID) {
		return nil, fmt.Errorf("%w: %s", domain.ErrBatchNotFound, batchID)
	}
	var exists bool
	if err := r.DB.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM payroll_batches WHERE batch_id = $1)`, batchID).Scan(&exists); err != nil {
		return nil, translateError(err, domain.ErrBatchNotFound, "check payroll batch")
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", domain.ErrBatchNotFound, batchID)
	}

	rows, err := r.DB.Query(ctx, `SELECT `+recordColumns+` FROM payroll_records WHERE batch_id = $1 ORDER BY position ASC`, batchID)
	if err != nil {
		return nil, translateError(err, domain.ErrRecordNotFound, "query payroll records")
	}
	defer rows.Close()

	records := []domain.PayrollRecord{}
	for rows.Next() {
		m, err := scanRecord(rows)
		if err != nil {
			return nil, translateError(err, domain.ErrRecordNotFound, "scan payroll record")
		}
		records = append(records, mapping.ToDomainPayrollRecord(m))
	}
	if err := rows.Err(); err != nil {
		return nil, translateError(err, domain.ErrRecordNotFound, "iterate payroll records")
	}
	return records, nil
}

// FindRecordByID retrieves a single payroll record.
func (r *PgxPayrollRepository) FindRecordByID(ctx context.Context, recordID string) (*domain.PayrollRecord, error) {
	if !isUUID(recordID) {
		return nil, fmt.Errorf("%w: %s", domain.ErrRecordNotFound, recordID)
	}
	m, err := scanRecord(r.DB.QueryRow(ctx, `SELECT `+recordColumns+` FROM payroll_records WHERE record_id = $1`, recordID))
	if err != nil {
		return nil, translateError(err, fmt.Errorf("%w: %s", domain.ErrRecordNotFound, recordID), "find payroll record")
	}
	rec := mapping.ToDomainPayrollRecord(m)
	return &rec, nil
}

// ListBatches retrieves a page of batches, newest first. Record IDs are loaded per batch.
func (r *PgxPayrollRepository) ListBatches(ctx context.Context, filter domain.BatchFilter) ([]domain.PayrollBatch, *string, error) {
	query := `SELECT ` + batchColumns + ` FROM payroll_batches WHERE 1=1`
	args := []any{}
	next := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if filter.Status != nil {
		query += " AND status = " + next(string(*filter.Status))
	}
	if filter.Period != nil {
		query += " AND period = " + next(*filter.Period)
	}
	if filter.NextToken != nil && *filter.NextToken != "" {
		lastCreatedAt, lastID, err := pagination.DecodeToken(*filter.NextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: invalid nextToken: %v", apperrors.ErrValidation, err)
		}
		if !isUUID(lastID) {
			return nil, nil, fmt.Errorf("%w: invalid nextToken", apperrors.ErrValidation)
		}
		query += " AND (created_at, batch_id) < (" + next(lastCreatedAt) + ", " + next(lastID) + "::uuid)"
	}
	query += " ORDER BY created_at DESC, batch_id DESC LIMIT " + next(filter.Limit+1)

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, translateError(err, domain.ErrBatchNotFound, "list payroll batches")
	}
	// Collected fully before the per-batch record queries reuse the connection
	batchModels, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.PayrollBatch, error) {
		return scanBatch(row)
	})
	if err != nil {
		return nil, nil, translateError(err, domain.ErrBatchNotFound, "scan payroll batches")
	}

	var nextToken *string
	if len(batchModels) > filter.Limit {
		batchModels = batchModels[:filter.Limit]
		last := batchModels[len(batchModels)-1]
		token := pagination.EncodeToken(last.CreatedAt, last.BatchID)
		nextToken = &token
	}

	batches := make([]domain.PayrollBatch, 0, len(batchModels))
	for _, m := range batchModels {
		ids, err := r.recordIDs(ctx, m.BatchID)
		if err != nil {
			return nil, nil, err
		}
		batches = append(batches, mapping.ToDomainPayrollBatch(m, ids))
	}
	return batches, nextToken, nil
}

// ListBatchEvents returns a batch's transition history, oldest first.
func (r *PgxPayrollRepository) ListBatchEvents(ctx context.Context, batchID string) ([]domain.PayrollBatchEvent, error) {
	if !isUUID(batchID) {
		return []domain.PayrollBatchEvent{}, nil
	}
	query := `
		SELECT event_id, batch_id, from_status, to_status, actor_id, notes, occurred_at
		FROM payroll_batch_events
		WHERE batch_id = $1
		ORDER BY occurred_at ASC, seq ASC;
	`
	rows, err := r.DB.Query(ctx, query, batchID)
	if err != nil {
		return nil, translateError(err, domain.ErrBatchNotFound, "query payroll batch events")
	}
	defer rows.Close()

	events := []domain.PayrollBatchEvent{}
	for rows.Next() {
		var m models.PayrollBatchEvent
		if err := rows.Scan(&m.EventID, &m.BatchID, &m.FromStatus, &m.ToStatus, &m.ActorID, &m.Notes, &m.OccurredAt); err != nil {
			return nil, translateError(err, domain.ErrBatchNotFound, "scan payroll batch event")
		}
		events = append(events, mapping.ToDomainPayrollBatchEvent(m))
	}
	if err := rows.Err(); err != nil {
		return nil, translateError(err, domain.ErrBatchNotFound, "iterate payroll batch events")
	}
	return events, nil
}

// CountOpenBatchesUsingAccount counts non-terminal batches referencing accountID
// as payment account or through any of their records.
func (r *PgxPayrollRepository) CountOpenBatchesUsingAccount(ctx context.Context, accountID string) (int, error) {
	if !isUUID(accountID) {
		return 0, nil
	}
	query := `
		SELECT COUNT(*)
		FROM payroll_batches b
		WHERE b.status <> ALL($2::text[])
		  AND (b.payment_account_id = $1
		       OR EXISTS (SELECT 1 FROM payroll_records r
		                  WHERE r.batch_id = b.batch_id
		                    AND (r.expense_account_id = $1 OR r.liability_account_id = $1)));
	`
	var count int
	if err := r.DB.QueryRow(ctx, query, accountID, terminalStatuses).Scan(&count); err != nil {
		return 0, translateError(err, domain.ErrBatchNotFound, "count open payroll batches")
	}
	return count, nil
}

// SaveBatch inserts the batch row and queues its records in one pgx.Batch.
func (r *PgxPayrollRepository) SaveBatch(ctx context.Context, batch domain.PayrollBatch, records []domain.PayrollRecord) error {
	m := mapping.ToModelPayrollBatch(batch)
	batchQuery := `
		INSERT INTO payroll_batches (batch_id, period, status, payment_account_id, accrual_entry_id, payment_entry_id, notes, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.DB.Exec(ctx, batchQuery,
		m.BatchID,
		m.Period,
		m.Status,
		m.PaymentAccountID,
		m.AccrualEntryID,
		m.PaymentEntryID,
		m.Notes,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return translateError(err, domain.ErrBatchNotFound, "save payroll batch "+m.BatchID)
	}

	pgBatch := &pgx.Batch{}
	recordQuery := `
		INSERT INTO payroll_records (record_id, batch_id, position, employee_id, gross_pay_cents, deductions_cents, net_pay_cents, expense_account_id, liability_account_id, status, paid_at, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	for i, rec := range records {
		mr := mapping.ToModelPayrollRecord(rec)
		pgBatch.Queue(recordQuery,
			mr.RecordID,
			m.BatchID,
			i,
			mr.EmployeeID,
			mr.GrossPayCents,
			mr.DeductionsCents,
			mr.NetPayCents,
			mr.ExpenseAccountID,
			mr.LiabilityAccountID,
			mr.Status,
			mr.PaidAt,
			mr.CreatedAt,
			mr.CreatedBy,
			mr.LastUpdatedAt,
			mr.LastUpdatedBy,
		)
	}
	br := r.DB.SendBatch(ctx, pgBatch)
	if err := br.Close(); err != nil {
		return translateError(err, domain.ErrRecordNotFound, "save records of payroll batch "+m.BatchID)
	}
	return nil
}

// UpdateBatch persists status, entry links, notes and audit fields of a batch.
func (r *PgxPayrollRepository) UpdateBatch(ctx context.Context, batch domain.PayrollBatch) error {
	m := mapping.ToModelPayrollBatch(batch)
	query := `
		UPDATE payroll_batches
		SET status = $1, payment_account_id = $2, accrual_entry_id = $3, payment_entry_id = $4, notes = $5, last_updated_at = $6, last_updated_by = $7
		WHERE batch_id = $8;
	`
	cmdTag, err := r.DB.Exec(ctx, query, m.Status, m.PaymentAccountID, m.AccrualEntryID, m.PaymentEntryID, m.Notes, m.LastUpdatedAt, m.LastUpdatedBy, m.BatchID)
	if err != nil {
		return translateError(err, domain.ErrBatchNotFound, "update payroll batch "+m.BatchID)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", domain.ErrBatchNotFound, m.BatchID)
	}
	return nil
}

// UpdateRecordsStatus sets status (and paid_at when given) on the listed records.
func (r *PgxPayrollRepository) UpdateRecordsStatus(ctx context.Context, recordIDs []string, status domain.RecordStatus, paidAt *time.Time, actorID string, now time.Time) error {
	ids := validUUIDs(recordIDs)
	if len(ids) != len(recordIDs) {
		return fmt.Errorf("%w: malformed record id", domain.ErrRecordNotFound)
	}
	if len(ids) == 0 {
		return nil
	}
	query := `
		UPDATE payroll_records
		SET status = $1, paid_at = COALESCE($2, paid_at), last_updated_at = $3, last_updated_by = $4
		WHERE record_id = ANY($5::uuid[]);
	`
	cmdTag, err := r.DB.Exec(ctx, query, string(status), paidAt, now, actorID, ids)
	if err != nil {
		return translateError(err, domain.ErrRecordNotFound, "update payroll records")
	}
	if cmdTag.RowsAffected() != int64(len(ids)) {
		return fmt.Errorf("%w: %d of %d records updated", domain.ErrRecordNotFound, cmdTag.RowsAffected(), len(ids))
	}
	return nil
}

// AppendBatchEvent records one transition in the batch history.
func (r *PgxPayrollRepository) AppendBatchEvent(ctx context.Context, event domain.PayrollBatchEvent) error {
	m := mapping.ToModelPayrollBatchEvent(event)
	query := `
		INSERT INTO payroll_batch_events (event_id, batch_id, from_status, to_status, actor_id, notes, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.DB.Exec(ctx, query, m.EventID, m.BatchID, m.FromStatus, m.ToStatus, m.ActorID, m.Notes, m.OccurredAt)
	return translateError(err, domain.ErrBatchNotFound, "append payroll batch event")
}
