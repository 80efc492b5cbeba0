package repositories

import (
	"context"
	"time"

	"github.com/shokoko2010/Elhamd-sub014/internal/core/domain"
)

// PayrollReader defines read operations for payroll batches and records
type PayrollReader interface {
	// FindBatchByID retrieves a batch with its record IDs.
	FindBatchByID(ctx context.Context, batchID string) (*domain.PayrollBatch, error)

	// FindRecordsByBatchID retrieves all records of a batch in creation order.
	FindRecordsByBatchID(ctx context.Context, batchID string) ([]domain.PayrollRecord, error)

	// FindRecordByID retrieves a single payroll record.
	FindRecordByID(ctx context.Context, recordID string) (*domain.PayrollRecord, error)

	// ListBatches retrieves a page of batches, newest first.
	ListBatches(ctx context.Context, filter domain.BatchFilter) ([]domain.PayrollBatch, *string, error)

	// ListBatchEvents returns a batch's transition history, oldest first.
	ListBatchEvents(ctx context.Context, batchID string) ([]domain.PayrollBatchEvent, error)

	// CountOpenBatchesUsingAccount counts non-terminal batches whose records or
	// payment account reference accountID.
	CountOpenBatchesUsingAccount(ctx context.Context, accountID string) (int, error)
}

// PayrollWriter defines write operations for payroll data
type PayrollWriter interface {
	// SaveBatch persists a new batch together with its records.
	SaveBatch(ctx context.Context, batch domain.PayrollBatch, records []domain.PayrollRecord) error

	// UpdateBatch persists status, entry links, notes and audit fields of a batch.
	UpdateBatch(ctx context.Context, batch domain.PayrollBatch) error

	// UpdateRecordsStatus sets status (and paidAt when given) on the listed records.
	UpdateRecordsStatus(ctx context.Context, recordIDs []string, status domain.RecordStatus, paidAt *time.Time, actorID string, now time.Time) error

	// AppendBatchEvent records one transition in the batch history.
	AppendBatchEvent(ctx context.Context, event domain.PayrollBatchEvent) error
}

// PayrollLocker takes row locks; only meaningful inside a transaction.
type PayrollLocker interface {
	// LockBatch exclusively locks a batch row and returns its current state.
	LockBatch(ctx context.Context, batchID string) (*domain.PayrollBatch, error)
}

// PayrollRepositoryFacade combines all payroll-related repository interfaces
type PayrollRepositoryFacade interface {
	PayrollReader
	PayrollWriter
	PayrollLocker
}
