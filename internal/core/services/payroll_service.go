package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shokoko2010/Elhamd-sub014/internal/apperrors"
	"github.com/shokoko2010/Elhamd-sub014/internal/core/domain"
	portsrepo "github.com/shokoko2010/Elhamd-sub014/internal/core/ports/repositories"
	portssvc "github.com/shokoko2010/Elhamd-sub014/internal/core/ports/services"
	"github.com/shokoko2010/Elhamd-sub014/internal/dto"
	"github.com/shokoko2010/Elhamd-sub014/internal/utils/accounting"
)

// payrollService implements the PayrollSvcFacade interface
type payrollService struct {
	BaseService
	payrollRepo portsrepo.PayrollReader
	accountRepo portsrepo.AccountReader
	journal     portssvc.JournalPosterSvc
	txManager   portsrepo.TransactionManager

	// defaultPaymentAccount is an account ID or code used when a batch names no payment account.
	defaultPaymentAccount string
}

// PayrollServiceOption is a functional option for configuring the payroll service
type PayrollServiceOption func(*payrollService)

// WithDefaultPaymentAccount sets the disbursing account for batches that do not name one.
func WithDefaultPaymentAccount(idOrCode string) PayrollServiceOption {
	return func(s *payrollService) {
		s.defaultPaymentAccount = strings.TrimSpace(idOrCode)
	}
}

// NewPayrollService creates the payroll batch processor.
func NewPayrollService(
	payrollRepo portsrepo.PayrollReader,
	accountRepo portsrepo.AccountReader,
	journal portssvc.JournalPosterSvc,
	txManager portsrepo.TransactionManager,
	options ...PayrollServiceOption,
) portssvc.PayrollSvcFacade {
	svc := &payrollService{
		payrollRepo: payrollRepo,
		accountRepo: accountRepo,
		journal:     journal,
		txManager:   txManager,
	}

	// Apply all options
	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure payrollService implements the PayrollSvcFacade interface
var _ portssvc.PayrollSvcFacade = (*payrollService)(nil)

// accountResolver resolves account references once per request and checks their type.
type accountResolver struct {
	reader portsrepo.AccountReader
	cache  map[string]*domain.Account
}

func (r *accountResolver) resolve(ctx context.Context, ref string, want domain.AccountType) (string, error) {
	acc, ok := r.cache[ref]
	if !ok {
		found, err := lookupAccount(ctx, r.reader, ref)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return "", fmt.Errorf("%w: %s does not exist", domain.ErrInvalidAccount, ref)
			}
			return "", err
		}
		r.cache[ref] = found
		acc = found
	}
	if !acc.IsActive {
		return "", fmt.Errorf("%w: %s is inactive", domain.ErrInvalidAccount, acc.Code)
	}
	if acc.AccountType != want {
		return "", fmt.Errorf("%w: %s is %s, expected %s", apperrors.ErrValidation, acc.Code, acc.AccountType, want)
	}
	return acc.AccountID, nil
}

func (s *payrollService) CreateBatch(ctx context.Context, req dto.CreatePayrollBatchRequest, actorID string) (*domain.PayrollBatch, error) {
	period := strings.TrimSpace(req.Period)
	if _, err := time.Parse(domain.PeriodLayout, period); err != nil {
		return nil, fmt.Errorf("%w: period %q must be YYYY-MM", apperrors.ErrValidation, req.Period)
	}
	if len(req.Records) == 0 {
		return nil, fmt.Errorf("%w: a payroll batch needs at least one record", apperrors.ErrValidation)
	}

	now := s.now()
	resolver := &accountResolver{reader: s.accountRepo, cache: make(map[string]*domain.Account)}
	batch := domain.PayrollBatch{
		BatchID:     uuid.NewString(),
		Period:      period,
		Status:      domain.BatchDraft,
		RecordIDs:   make([]string, 0, len(req.Records)),
		Notes:       req.Notes,
		AuditFields: domain.NewAuditFields(actorID, now),
	}
	if req.PaymentAccountID != nil && strings.TrimSpace(*req.PaymentAccountID) != "" {
		id, err := resolver.resolve(ctx, strings.TrimSpace(*req.PaymentAccountID), domain.Asset)
		if err != nil {
			return nil, err
		}
		batch.PaymentAccountID = &id
	}

	records := make([]domain.PayrollRecord, len(req.Records))
	for i, rr := range req.Records {
		rec, err := s.buildRecord(ctx, resolver, batch.BatchID, rr, actorID, now)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i+1, err)
		}
		records[i] = rec
		batch.RecordIDs = append(batch.RecordIDs, rec.RecordID)
	}

	err := s.txManager.WithTx(ctx, func(ctx context.Context, store portsrepo.Store) error {
		if err := store.Payroll().SaveBatch(ctx, batch, records); err != nil {
			return err
		}
		return store.Payroll().AppendBatchEvent(ctx, s.newEvent(batch.BatchID, "", domain.BatchDraft, actorID, req.Notes, now))
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to save payroll batch", slog.String("period", period))
		return nil, err
	}

	s.LogInfo(ctx, "Payroll batch created",
		slog.String("batch_id", batch.BatchID),
		slog.String("period", period),
		slog.Int("record_count", len(records)))
	return &batch, nil
}

func (s *payrollService) buildRecord(ctx context.Context, resolver *accountResolver, batchID string, rr dto.PayrollRecordRequest, actorID string, now time.Time) (domain.PayrollRecord, error) {
	gross, err := domain.MoneyFromDecimal(rr.GrossPay)
	if err != nil {
		return domain.PayrollRecord{}, err
	}
	deductions, err := domain.MoneyFromDecimal(rr.Deductions)
	if err != nil {
		return domain.PayrollRecord{}, err
	}
	net := gross - deductions
	if rr.NetPay != nil {
		if net, err = domain.MoneyFromDecimal(*rr.NetPay); err != nil {
			return domain.PayrollRecord{}, err
		}
	}

	rec := domain.PayrollRecord{
		RecordID:    uuid.NewString(),
		BatchID:     batchID,
		EmployeeID:  strings.TrimSpace(rr.EmployeeID),
		GrossPay:    gross,
		Deductions:  deductions,
		NetPay:      net,
		Status:      domain.RecordPending,
		AuditFields: domain.NewAuditFields(actorID, now),
	}
	if rec.ExpenseAccountID, err = resolver.resolve(ctx, strings.TrimSpace(rr.ExpenseAccountID), domain.Expense); err != nil {
		return domain.PayrollRecord{}, err
	}
	if rec.LiabilityAccountID, err = resolver.resolve(ctx, strings.TrimSpace(rr.LiabilityAccountID), domain.Liability); err != nil {
		return domain.PayrollRecord{}, err
	}
	if err := rec.Validate(); err != nil {
		return domain.PayrollRecord{}, err
	}
	return rec, nil
}

func (s *payrollService) newEvent(batchID string, from, to domain.BatchStatus, actorID string, notes *string, at time.Time) domain.PayrollBatchEvent {
	return domain.PayrollBatchEvent{
		EventID:    uuid.NewString(),
		BatchID:    batchID,
		FromStatus: from,
		ToStatus:   to,
		ActorID:    actorID,
		Notes:      notes,
		OccurredAt: at,
	}
}

// withLockedBatch runs fn against the batch row locked for update, committing
// fn's writes together. The returned batch is the one fn left behind.
func (s *payrollService) withLockedBatch(ctx context.Context, batchID string, fn func(ctx context.Context, store portsrepo.Store, batch *domain.PayrollBatch) error) (*domain.PayrollBatch, error) {
	var result *domain.PayrollBatch
	err := s.txManager.WithTx(ctx, func(ctx context.Context, store portsrepo.Store) error {
		batch, err := store.Payroll().LockBatch(ctx, batchID)
		if err != nil {
			return err
		}
		if err := fn(ctx, store, batch); err != nil {
			return err
		}
		result = batch
		return nil
	})
	return result, err
}

// transitionAndRecord applies a transition, persists the batch and appends the event.
func (s *payrollService) transitionAndRecord(ctx context.Context, store portsrepo.Store, batch *domain.PayrollBatch, next domain.BatchStatus, actorID string, notes *string, now time.Time) error {
	from := batch.Status
	if err := batch.Transition(next, actorID, now); err != nil {
		return err
	}
	if notes != nil {
		batch.Notes = notes
	}
	if err := store.Payroll().UpdateBatch(ctx, *batch); err != nil {
		return err
	}
	return store.Payroll().AppendBatchEvent(ctx, s.newEvent(batch.BatchID, from, next, actorID, notes, now))
}

// recoverFromDuplicate handles a posting that lost an idempotency race: the
// transaction is gone, so the committed batch state is re-read.
func (s *payrollService) recoverFromDuplicate(ctx context.Context, batchID string, posted func(*domain.PayrollBatch) bool, cause error) (*domain.PayrollBatch, error) {
	batch, err := s.payrollRepo.FindBatchByID(ctx, batchID)
	if err != nil {
		return nil, err
	}
	if posted(batch) {
		return batch, nil
	}
	return nil, cause
}

// PostBatchAccrual answers with the batch as stored once AccrualEntryID is set,
// whatever status the batch has moved on to.
func (s *payrollService) PostBatchAccrual(ctx context.Context, batchID string, actorID string) (*domain.PayrollBatch, error) {
	batch, err := s.withLockedBatch(ctx, batchID, func(ctx context.Context, store portsrepo.Store, batch *domain.PayrollBatch) error {
		if batch.AccrualEntryID != nil {
			return nil
		}
		if batch.Status != domain.BatchApproved {
			return fmt.Errorf("%w: accrual needs %s, batch is %s", domain.ErrInvalidTransition, domain.BatchApproved, batch.Status)
		}

		records, err := store.Payroll().FindRecordsByBatchID(ctx, batch.BatchID)
		if err != nil {
			return err
		}
		lines := accounting.AccrualLines(records)
		if len(lines) == 0 {
			return fmt.Errorf("%w: batch %s has no net pay to accrue", apperrors.ErrValidation, batch.BatchID)
		}

		now := s.now()
		key := batch.AccrualKey()
		source := batch.BatchID
		entry, err := s.journal.PostEntryTx(ctx, store, domain.PostingInput{
			EntryDate:       now,
			Description:     fmt.Sprintf("Payroll accrual %s", batch.Period),
			SourceReference: &source,
			IdempotencyKey:  &key,
			Lines:           lines,
			ActorID:         actorID,
		})
		if err != nil {
			return err
		}

		batch.AccrualEntryID = &entry.EntryID
		if err := s.transitionAndRecord(ctx, store, batch, domain.BatchPostedAccrual, actorID, nil, now); err != nil {
			return err
		}
		return store.Payroll().UpdateRecordsStatus(ctx, batch.RecordIDs, domain.RecordApproved, nil, actorID, now)
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return s.recoverFromDuplicate(ctx, batchID, func(b *domain.PayrollBatch) bool { return b.AccrualEntryID != nil }, err)
		}
		if !errors.Is(err, apperrors.ErrConflict) && !errors.Is(err, apperrors.ErrValidation) && !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to post payroll accrual", slog.String("batch_id", batchID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Payroll accrual posted",
		slog.String("batch_id", batch.BatchID),
		slog.String("entry_id", *batch.AccrualEntryID))
	return batch, nil
}

func (s *payrollService) PostBatchPayment(ctx context.Context, batchID string, actorID string) (*domain.PayrollBatch, error) {
	batch, err := s.withLockedBatch(ctx, batchID, func(ctx context.Context, store portsrepo.Store, batch *domain.PayrollBatch) error {
		if batch.PaymentEntryID != nil {
			return nil
		}
		if batch.Status != domain.BatchPostedAccrual {
			return fmt.Errorf("%w: payment needs %s, batch is %s", domain.ErrInvalidTransition, domain.BatchPostedAccrual, batch.Status)
		}

		paymentAccountID, err := s.paymentAccount(ctx, store, batch)
		if err != nil {
			return err
		}

		records, err := store.Payroll().FindRecordsByBatchID(ctx, batch.BatchID)
		if err != nil {
			return err
		}
		lines := accounting.PaymentLines(records, paymentAccountID)
		if len(lines) == 0 {
			return fmt.Errorf("%w: batch %s has no net pay to disburse", apperrors.ErrValidation, batch.BatchID)
		}

		now := s.now()
		key := batch.PaymentKey()
		source := batch.BatchID
		entry, err := s.journal.PostEntryTx(ctx, store, domain.PostingInput{
			EntryDate:       now,
			Description:     fmt.Sprintf("Payroll payment %s", batch.Period),
			SourceReference: &source,
			IdempotencyKey:  &key,
			Lines:           lines,
			ActorID:         actorID,
		})
		if err != nil {
			return err
		}

		batch.PaymentEntryID = &entry.EntryID
		batch.PaymentAccountID = &paymentAccountID
		return s.transitionAndRecord(ctx, store, batch, domain.BatchPostedPayment, actorID, nil, now)
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return s.recoverFromDuplicate(ctx, batchID, func(b *domain.PayrollBatch) bool { return b.PaymentEntryID != nil }, err)
		}
		if !errors.Is(err, apperrors.ErrConflict) && !errors.Is(err, apperrors.ErrValidation) && !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to post payroll payment", slog.String("batch_id", batchID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Payroll payment posted",
		slog.String("batch_id", batch.BatchID),
		slog.String("entry_id", *batch.PaymentEntryID))
	return batch, nil
}

// paymentAccount picks the batch's own disbursing account, else the configured
// default, which must be an active asset account like any batch-level one.
func (s *payrollService) paymentAccount(ctx context.Context, store portsrepo.Store, batch *domain.PayrollBatch) (string, error) {
	if batch.PaymentAccountID != nil {
		return *batch.PaymentAccountID, nil
	}
	if s.defaultPaymentAccount == "" {
		return "", fmt.Errorf("%w: batch %s has no payment account and no default is configured", apperrors.ErrValidation, batch.BatchID)
	}
	resolver := &accountResolver{reader: store.Accounts(), cache: make(map[string]*domain.Account)}
	accountID, err := resolver.resolve(ctx, s.defaultPaymentAccount, domain.Asset)
	if err != nil {
		return "", fmt.Errorf("default payment account: %w", err)
	}
	return accountID, nil
}

func (s *payrollService) MarkPayrollRecordPaid(ctx context.Context, recordID string, actorID string) (*domain.PayrollRecord, error) {
	record, err := s.payrollRepo.FindRecordByID(ctx, recordID)
	if err != nil {
		return nil, err
	}
	if record.Status == domain.RecordPaid {
		return record, nil
	}

	var result *domain.PayrollRecord
	batch, err := s.withLockedBatch(ctx, record.BatchID, func(ctx context.Context, store portsrepo.Store, batch *domain.PayrollBatch) error {
		rec, err := store.Payroll().FindRecordByID(ctx, recordID)
		if err != nil {
			return err
		}
		if rec.Status == domain.RecordPaid {
			result = rec
			return nil
		}
		if batch.Status != domain.BatchPostedPayment {
			return fmt.Errorf("%w: records are paid once the batch is %s, batch is %s", domain.ErrInvalidTransition, domain.BatchPostedPayment, batch.Status)
		}

		now := s.now()
		if err := store.Payroll().UpdateRecordsStatus(ctx, []string{rec.RecordID}, domain.RecordPaid, &now, actorID, now); err != nil {
			return err
		}
		rec.Status = domain.RecordPaid
		rec.PaidAt = &now
		rec.Touch(actorID, now)
		result = rec

		records, err := store.Payroll().FindRecordsByBatchID(ctx, batch.BatchID)
		if err != nil {
			return err
		}
		for _, r := range records {
			if r.RecordID != rec.RecordID && r.Status != domain.RecordPaid {
				return nil
			}
		}
		note := "all records paid"
		return s.transitionAndRecord(ctx, store, batch, domain.BatchPaid, actorID, &note, now)
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrConflict) && !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to mark payroll record paid", slog.String("record_id", recordID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Payroll record paid",
		slog.String("record_id", result.RecordID),
		slog.String("batch_id", batch.BatchID),
		slog.String("batch_status", string(batch.Status)))
	return result, nil
}

func (s *payrollService) UpdateBatchStatus(ctx context.Context, batchID string, status domain.BatchStatus, actorID string, notes *string) (*domain.PayrollBatch, error) {
	status = domain.BatchStatus(strings.ToUpper(strings.TrimSpace(string(status))))
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: unknown batch status %q", apperrors.ErrValidation, status)
	}

	batch, err := s.withLockedBatch(ctx, batchID, func(ctx context.Context, store portsrepo.Store, batch *domain.PayrollBatch) error {
		if !batch.Status.CanTransitionTo(status) {
			return fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, batch.Status, status)
		}
		if status.RequiresPosting() {
			return fmt.Errorf("%w: %s is reached by posting the batch", domain.ErrInvalidTransition, status)
		}

		now := s.now()
		if status == domain.BatchPaid {
			records, err := store.Payroll().FindRecordsByBatchID(ctx, batch.BatchID)
			if err != nil {
				return err
			}
			outstanding := make([]string, 0, len(records))
			for _, r := range records {
				if r.Status != domain.RecordPaid {
					outstanding = append(outstanding, r.RecordID)
				}
			}
			if len(outstanding) > 0 {
				if err := store.Payroll().UpdateRecordsStatus(ctx, outstanding, domain.RecordPaid, &now, actorID, now); err != nil {
					return err
				}
			}
		}
		return s.transitionAndRecord(ctx, store, batch, status, actorID, notes, now)
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrConflict) && !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to update payroll batch status", slog.String("batch_id", batchID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Payroll batch status updated",
		slog.String("batch_id", batch.BatchID),
		slog.String("status", string(batch.Status)))
	return batch, nil
}

func (s *payrollService) GetBatch(ctx context.Context, batchID string) (*domain.PayrollBatch, error) {
	batch, err := s.payrollRepo.FindBatchByID(ctx, batchID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find payroll batch", slog.String("batch_id", batchID))
		}
		return nil, err
	}
	return batch, nil
}

func (s *payrollService) ListBatchRecords(ctx context.Context, batchID string) ([]domain.PayrollRecord, error) {
	if _, err := s.GetBatch(ctx, batchID); err != nil {
		return nil, err
	}
	records, err := s.payrollRepo.FindRecordsByBatchID(ctx, batchID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list payroll records", slog.String("batch_id", batchID))
		return nil, err
	}
	return records, nil
}

func (s *payrollService) ListBatchEvents(ctx context.Context, batchID string) ([]domain.PayrollBatchEvent, error) {
	if _, err := s.GetBatch(ctx, batchID); err != nil {
		return nil, err
	}
	return s.payrollRepo.ListBatchEvents(ctx, batchID)
}

func (s *payrollService) ListBatches(ctx context.Context, params dto.ListPayrollBatchesParams) (*dto.ListPayrollBatchesResponse, error) {
	filter := domain.BatchFilter{
		Status:    params.Status,
		Period:    params.Period,
		Limit:     pageSize(params.Limit),
		NextToken: params.NextToken,
	}
	batches, nextToken, err := s.payrollRepo.ListBatches(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list payroll batches")
		return nil, fmt.Errorf("failed to list payroll batches: %w", err)
	}

	resp := dto.ToListPayrollBatchesResponse(batches, nextToken)
	return &resp, nil
}
