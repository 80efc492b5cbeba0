package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/shokoko2010/Elhamd-sub014/internal/apperrors"
	"github.com/shokoko2010/Elhamd-sub014/internal/core/domain"
	portsrepo "github.com/shokoko2010/Elhamd-sub014/internal/core/ports/repositories"
	portssvc "github.com/shokoko2010/Elhamd-sub014/internal/core/ports/services"
	"github.com/shokoko2010/Elhamd-sub014/internal/dto"
)

// voidKeyPrefix namespaces the idempotency keys of reversal entries.
const voidKeyPrefix = "void:"

// journalService implements the JournalSvcFacade interface
type journalService struct {
	BaseService
	journalRepo portsrepo.JournalReader
	txManager   portsrepo.TransactionManager
}

// NewJournalService creates the ledger posting engine.
func NewJournalService(journalRepo portsrepo.JournalReader, txManager portsrepo.TransactionManager) portssvc.JournalSvcFacade {
	return &journalService{
		journalRepo: journalRepo,
		txManager:   txManager,
	}
}

// Ensure journalService implements the JournalSvcFacade interface
var _ portssvc.JournalSvcFacade = (*journalService)(nil)

func normalizeKey(key *string) *string {
	if key == nil {
		return nil
	}
	k := strings.TrimSpace(*key)
	if k == "" {
		return nil
	}
	return &k
}

func (s *journalService) PostJournalEntry(ctx context.Context, req dto.PostJournalEntryRequest, actorID string) (*domain.JournalEntry, error) {
	lines := make([]domain.PostingLine, len(req.Lines))
	for i, l := range req.Lines {
		debit, err := domain.MoneyFromDecimal(l.Debit)
		if err != nil {
			return nil, fmt.Errorf("line %d debit: %w", i+1, err)
		}
		credit, err := domain.MoneyFromDecimal(l.Credit)
		if err != nil {
			return nil, fmt.Errorf("line %d credit: %w", i+1, err)
		}
		lines[i] = domain.PostingLine{
			AccountID: strings.TrimSpace(l.AccountID),
			Debit:     debit,
			Credit:    credit,
			Memo:      l.Memo,
		}
	}

	input := domain.PostingInput{
		Description:     strings.TrimSpace(req.Description),
		SourceReference: req.SourceReference,
		IdempotencyKey:  req.IdempotencyKey,
		Lines:           lines,
		ActorID:         actorID,
	}
	if req.EntryDate != nil {
		input.EntryDate = req.EntryDate.UTC()
	}
	return s.PostEntry(ctx, input)
}

// PostEntry validates the lines, short-circuits on a known idempotency key and
// otherwise writes the entry in its own transaction.
func (s *journalService) PostEntry(ctx context.Context, input domain.PostingInput) (*domain.JournalEntry, error) {
	input.IdempotencyKey = normalizeKey(input.IdempotencyKey)
	if err := domain.ValidateLines(input.Lines); err != nil {
		s.LogDebug(ctx, "Rejected journal entry", slog.String("error", err.Error()))
		return nil, err
	}

	if key := input.IdempotencyKey; key != nil {
		existing, err := s.journalRepo.FindEntryByIdempotencyKey(ctx, *key)
		if err == nil {
			s.LogInfo(ctx, "Idempotent replay of journal entry",
				slog.String("entry_id", existing.EntryID),
				slog.String("idempotency_key", *key))
			return existing, nil
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to look up idempotency key", slog.String("idempotency_key", *key))
			return nil, err
		}
	}

	var entry *domain.JournalEntry
	err := s.txManager.WithTx(ctx, func(ctx context.Context, store portsrepo.Store) error {
		var err error
		entry, err = s.writeEntry(ctx, store, input, nil)
		return err
	})
	if err != nil {
		if key := input.IdempotencyKey; key != nil && errors.Is(err, apperrors.ErrDuplicate) {
			// A concurrent post with the same key committed first.
			winner, findErr := s.journalRepo.FindEntryByIdempotencyKey(ctx, *key)
			if findErr != nil {
				s.LogError(ctx, findErr, "Failed to re-read entry after idempotency conflict", slog.String("idempotency_key", *key))
				return nil, findErr
			}
			return winner, nil
		}
		if !errors.Is(err, apperrors.ErrValidation) {
			s.LogError(ctx, err, "Failed to post journal entry")
		}
		return nil, err
	}

	s.LogInfo(ctx, "Journal entry posted",
		slog.String("entry_id", entry.EntryID),
		slog.Int("line_count", len(entry.Items)))
	return entry, nil
}

// PostEntryTx runs the posting algorithm inside the caller's transaction.
// A duplicate idempotency key surfaces as apperrors.ErrDuplicate; the caller
// decides how to recover once its transaction is rolled back.
func (s *journalService) PostEntryTx(ctx context.Context, store portsrepo.Store, input domain.PostingInput) (*domain.JournalEntry, error) {
	input.IdempotencyKey = normalizeKey(input.IdempotencyKey)
	if err := domain.ValidateLines(input.Lines); err != nil {
		return nil, err
	}
	if key := input.IdempotencyKey; key != nil {
		existing, err := store.Journals().FindEntryByIdempotencyKey(ctx, *key)
		if err == nil {
			return existing, nil
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
	}
	return s.writeEntry(ctx, store, input, nil)
}

// writeEntry checks the referenced accounts under a share lock and persists the
// entry with its items. Lines must already be validated.
func (s *journalService) writeEntry(ctx context.Context, store portsrepo.Store, input domain.PostingInput, reversalOf *string) (*domain.JournalEntry, error) {
	entry := domain.JournalEntry{
		EntryID:           uuid.NewString(),
		EntryDate:         input.EntryDate,
		Description:       input.Description,
		Status:            domain.Posted,
		SourceReference:   input.SourceReference,
		IdempotencyKey:    input.IdempotencyKey,
		ReversalOfEntryID: reversalOf,
		Items:             make([]domain.JournalEntryItem, len(input.Lines)),
		AuditFields:       domain.NewAuditFields(input.ActorID, s.now()),
	}
	if entry.EntryDate.IsZero() {
		entry.EntryDate = entry.CreatedAt
	}
	for i, l := range input.Lines {
		entry.Items[i] = domain.JournalEntryItem{
			ItemID:    uuid.NewString(),
			EntryID:   entry.EntryID,
			LineNo:    i + 1,
			AccountID: l.AccountID,
			Debit:     l.Debit,
			Credit:    l.Credit,
			Memo:      l.Memo,
		}
	}

	accountIDs := entry.AccountIDs()
	accounts, err := store.Accounts().LockAccountsForPosting(ctx, accountIDs)
	if err != nil {
		return nil, err
	}
	for _, id := range accountIDs {
		acc, ok := accounts[id]
		if !ok {
			return nil, fmt.Errorf("%w: %s does not exist", domain.ErrInvalidAccount, id)
		}
		if !acc.IsActive {
			return nil, fmt.Errorf("%w: %s is inactive", domain.ErrInvalidAccount, acc.Code)
		}
	}

	if err := store.Journals().SaveEntry(ctx, entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// VoidEntry writes the reversal and flips the original to VOID in one transaction.
func (s *journalService) VoidEntry(ctx context.Context, entryID string, actorID string) (*domain.JournalEntry, error) {
	original, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if original.Status != domain.Posted {
		return nil, fmt.Errorf("%w: %s is %s", domain.ErrAlreadyVoided, entryID, original.Status)
	}

	var reversal *domain.JournalEntry
	err = s.txManager.WithTx(ctx, func(ctx context.Context, store portsrepo.Store) error {
		current, err := store.Journals().FindEntryByID(ctx, entryID)
		if err != nil {
			return err
		}
		if current.Status != domain.Posted {
			return fmt.Errorf("%w: %s is %s", domain.ErrAlreadyVoided, entryID, current.Status)
		}

		key := voidKeyPrefix + current.EntryID
		input := domain.PostingInput{
			Description:     fmt.Sprintf("Reversal of %s", current.Description),
			SourceReference: current.SourceReference,
			IdempotencyKey:  &key,
			Lines:           domain.ReversalLines(current.Items),
			ActorID:         actorID,
		}
		reversal, err = s.writeEntry(ctx, store, input, &current.EntryID)
		if err != nil {
			return err
		}
		return store.Journals().MarkEntryVoid(ctx, current.EntryID, reversal.EntryID, actorID, reversal.CreatedAt)
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			// The reversal key is taken: another void of this entry committed first.
			return nil, fmt.Errorf("%w: %s", domain.ErrAlreadyVoided, entryID)
		}
		if !errors.Is(err, apperrors.ErrConflict) && !errors.Is(err, apperrors.ErrValidation) {
			s.LogError(ctx, err, "Failed to void journal entry", slog.String("entry_id", entryID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Journal entry voided",
		slog.String("entry_id", entryID),
		slog.String("reversal_entry_id", reversal.EntryID))
	return reversal, nil
}

func (s *journalService) GetEntry(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find journal entry", slog.String("entry_id", entryID))
		}
		return nil, err
	}
	return entry, nil
}

func (s *journalService) ListEntries(ctx context.Context, params dto.ListJournalEntriesParams) (*dto.ListJournalEntriesResponse, error) {
	filter := domain.EntryFilter{
		Status:          params.Status,
		SourceReference: params.SourceReference,
		AccountID:       params.AccountID,
		From:            params.From,
		To:              params.To,
		Limit:           pageSize(params.Limit),
		NextToken:       params.NextToken,
	}
	entries, nextToken, err := s.journalRepo.ListEntries(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list journal entries")
		return nil, fmt.Errorf("failed to list journal entries: %w", err)
	}

	resp := dto.ToListJournalEntriesResponse(entries, nextToken)
	return &resp, nil
}
