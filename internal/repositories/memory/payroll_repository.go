package memory

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"time"

	"github.com/shokoko2010/Elhamd-sub014/internal/apperrors"
	"github.com/shokoko2010/Elhamd-sub014/internal/core/domain"
	portsrepo "github.com/shokoko2010/Elhamd-sub014/internal/core/ports/repositories"
	"github.com/shokoko2010/Elhamd-sub014/internal/utils/pagination"
)

type payrollRepository struct {
	h *handle
}

var _ portsrepo.PayrollRepositoryFacade = (*payrollRepository)(nil)

func copyBatch(b domain.PayrollBatch) *domain.PayrollBatch {
	b.RecordIDs = slices.Clone(b.RecordIDs)
	return &b
}

func (r *payrollRepository) FindBatchByID(_ context.Context, batchID string) (*domain.PayrollBatch, error) {
	b, ok := r.h.read().batches[batchID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrBatchNotFound, batchID)
	}
	return copyBatch(b), nil
}

func (r *payrollRepository) FindRecordsByBatchID(_ context.Context, batchID string) ([]domain.PayrollRecord, error) {
	st := r.h.read()
	b, ok := st.batches[batchID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrBatchNotFound, batchID)
	}
	out := make([]domain.PayrollRecord, 0, len(b.RecordIDs))
	for _, id := range b.RecordIDs {
		out = append(out, st.records[id])
	}
	return out, nil
}

func (r *payrollRepository) FindRecordByID(_ context.Context, recordID string) (*domain.PayrollRecord, error) {
	rec, ok := r.h.read().records[recordID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrRecordNotFound, recordID)
	}
	return &rec, nil
}

func (r *payrollRepository) ListBatches(_ context.Context, filter domain.BatchFilter) ([]domain.PayrollBatch, *string, error) {
	var (
		afterAt time.Time
		afterID string
	)
	if filter.NextToken != nil && *filter.NextToken != "" {
		at, id, err := pagination.DecodeToken(*filter.NextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		afterAt, afterID = at, id
	}

	st := r.h.read()
	all := make([]domain.PayrollBatch, 0, len(st.batches))
	for _, b := range st.batches {
		all = append(all, b)
	}
	sort.Slice(all, func(i, j int) bool {
		return newestFirst(all[i].CreatedAt, all[i].BatchID, all[j].CreatedAt, all[j].BatchID)
	})

	page := make([]domain.PayrollBatch, 0, filter.Limit)
	var nextToken *string
	for _, b := range all {
		if afterID != "" && !newestFirst(afterAt, afterID, b.CreatedAt, b.BatchID) {
			continue
		}
		if filter.Status != nil && b.Status != *filter.Status {
			continue
		}
		if filter.Period != nil && b.Period != *filter.Period {
			continue
		}
		if filter.Limit > 0 && len(page) == filter.Limit {
			last := page[len(page)-1]
			token := pagination.EncodeToken(last.CreatedAt, last.BatchID)
			nextToken = &token
			break
		}
		page = append(page, *copyBatch(b))
	}
	return page, nextToken, nil
}

func (r *payrollRepository) ListBatchEvents(_ context.Context, batchID string) ([]domain.PayrollBatchEvent, error) {
	return slices.Clone(r.h.read().events[batchID]), nil
}

func (r *payrollRepository) CountOpenBatchesUsingAccount(_ context.Context, accountID string) (int, error) {
	st := r.h.read()
	count := 0
	for _, b := range st.batches {
		if b.Status.IsTerminal() {
			continue
		}
		uses := b.PaymentAccountID != nil && *b.PaymentAccountID == accountID
		for _, id := range b.RecordIDs {
			rec := st.records[id]
			if rec.ExpenseAccountID == accountID || rec.LiabilityAccountID == accountID {
				uses = true
				break
			}
		}
		if uses {
			count++
		}
	}
	return count, nil
}

func (r *payrollRepository) SaveBatch(_ context.Context, batch domain.PayrollBatch, records []domain.PayrollRecord) error {
	return r.h.write(func(st *state) error {
		if _, ok := st.batches[batch.BatchID]; ok {
			return duplicate("payroll batch " + batch.BatchID)
		}
		ids := make([]string, len(records))
		for i, rec := range records {
			if _, ok := st.records[rec.RecordID]; ok {
				return duplicate("payroll record " + rec.RecordID)
			}
			ids[i] = rec.RecordID
		}
		for _, rec := range records {
			st.records[rec.RecordID] = rec
		}
		batch.RecordIDs = ids
		st.batches[batch.BatchID] = batch
		return nil
	})
}

func (r *payrollRepository) UpdateBatch(_ context.Context, batch domain.PayrollBatch) error {
	return r.h.write(func(st *state) error {
		current, ok := st.batches[batch.BatchID]
		if !ok {
			return fmt.Errorf("%w: %s", domain.ErrBatchNotFound, batch.BatchID)
		}
		current.Status = batch.Status
		current.PaymentAccountID = batch.PaymentAccountID
		current.AccrualEntryID = batch.AccrualEntryID
		current.PaymentEntryID = batch.PaymentEntryID
		current.Notes = batch.Notes
		current.LastUpdatedAt = batch.LastUpdatedAt
		current.LastUpdatedBy = batch.LastUpdatedBy
		st.batches[batch.BatchID] = current
		return nil
	})
}

func (r *payrollRepository) UpdateRecordsStatus(_ context.Context, recordIDs []string, status domain.RecordStatus, paidAt *time.Time, actorID string, now time.Time) error {
	return r.h.write(func(st *state) error {
		for _, id := range recordIDs {
			rec, ok := st.records[id]
			if !ok {
				return fmt.Errorf("%w: %s", domain.ErrRecordNotFound, id)
			}
			rec.Status = status
			if paidAt != nil {
				at := *paidAt
				rec.PaidAt = &at
			}
			rec.Touch(actorID, now)
			st.records[id] = rec
		}
		return nil
	})
}

func (r *payrollRepository) AppendBatchEvent(_ context.Context, event domain.PayrollBatchEvent) error {
	return r.h.write(func(st *state) error {
		if _, ok := st.batches[event.BatchID]; !ok {
			return fmt.Errorf("%w: %s", domain.ErrBatchNotFound, event.BatchID)
		}
		events := slices.Clone(st.events[event.BatchID])
		st.events[event.BatchID] = append(events, event)
		return nil
	})
}

func (r *payrollRepository) LockBatch(ctx context.Context, batchID string) (*domain.PayrollBatch, error) {
	return r.FindBatchByID(ctx, batchID)
}
