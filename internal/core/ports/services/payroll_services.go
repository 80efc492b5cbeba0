package services

import (
	"context"

	"github.com/shokoko2010/Elhamd-sub014/internal/core/domain"
	"github.com/shokoko2010/Elhamd-sub014/internal/dto"
)

// PayrollReaderSvc defines read operations for payroll data
type PayrollReaderSvc interface {
	GetBatch(ctx context.Context, batchID string) (*domain.PayrollBatch, error)
	ListBatchRecords(ctx context.Context, batchID string) ([]domain.PayrollRecord, error)
	ListBatchEvents(ctx context.Context, batchID string) ([]domain.PayrollBatchEvent, error)
	ListBatches(ctx context.Context, params dto.ListPayrollBatchesParams) (*dto.ListPayrollBatchesResponse, error)
}

// PayrollWriterSvc defines the payroll lifecycle operations.
type PayrollWriterSvc interface {
	// CreateBatch opens a DRAFT batch with PENDING records.
	CreateBatch(ctx context.Context, req dto.CreatePayrollBatchRequest, actorID string) (*domain.PayrollBatch, error)

	// PostBatchAccrual posts the expense/liability entry of an APPROVED batch.
	// Once the accrual entry exists the call returns the batch unchanged in any
	// later state, PAID included, instead of reporting a conflict.
	PostBatchAccrual(ctx context.Context, batchID string, actorID string) (*domain.PayrollBatch, error)

	// PostBatchPayment posts the liability settlement entry of a POSTED_ACCRUAL batch.
	// Like the accrual it is a no-op once the payment entry exists.
	PostBatchPayment(ctx context.Context, batchID string, actorID string) (*domain.PayrollBatch, error)

	// MarkPayrollRecordPaid settles one record, closing the batch when it was the last one.
	MarkPayrollRecordPaid(ctx context.Context, recordID string, actorID string) (*domain.PayrollRecord, error)

	// UpdateBatchStatus applies a transition that needs no ledger posting.
	UpdateBatchStatus(ctx context.Context, batchID string, status domain.BatchStatus, actorID string, notes *string) (*domain.PayrollBatch, error)
}

// PayrollSvcFacade combines all payroll-related service interfaces
type PayrollSvcFacade interface {
	PayrollReaderSvc
	PayrollWriterSvc
}
