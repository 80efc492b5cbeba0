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

type journalRepository struct {
	h *handle
}

var _ portsrepo.JournalRepositoryFacade = (*journalRepository)(nil)

func copyEntry(e domain.JournalEntry) *domain.JournalEntry {
	e.Items = slices.Clone(e.Items)
	return &e
}

func (r *journalRepository) FindEntryByID(_ context.Context, entryID string) (*domain.JournalEntry, error) {
	e, ok := r.h.read().entries[entryID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrEntryNotFound, entryID)
	}
	return copyEntry(e), nil
}

func (r *journalRepository) FindEntryByIdempotencyKey(_ context.Context, key string) (*domain.JournalEntry, error) {
	st := r.h.read()
	id, ok := st.entryKeys[key]
	if !ok {
		return nil, fmt.Errorf("%w: idempotency key %s", domain.ErrEntryNotFound, key)
	}
	return copyEntry(st.entries[id]), nil
}

// newestFirst orders by creation time, then ID, both descending.
func newestFirst(aAt time.Time, aID string, bAt time.Time, bID string) bool {
	if !aAt.Equal(bAt) {
		return aAt.After(bAt)
	}
	return aID > bID
}

func (r *journalRepository) ListEntries(_ context.Context, filter domain.EntryFilter) ([]domain.JournalEntry, *string, error) {
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
	all := make([]domain.JournalEntry, 0, len(st.entries))
	for _, e := range st.entries {
		all = append(all, e)
	}
	sort.Slice(all, func(i, j int) bool {
		return newestFirst(all[i].CreatedAt, all[i].EntryID, all[j].CreatedAt, all[j].EntryID)
	})

	page := make([]domain.JournalEntry, 0, filter.Limit)
	var nextToken *string
	for _, e := range all {
		if afterID != "" && !newestFirst(afterAt, afterID, e.CreatedAt, e.EntryID) {
			continue
		}
		if !matchesEntry(e, filter) {
			continue
		}
		if filter.Limit > 0 && len(page) == filter.Limit {
			last := page[len(page)-1]
			token := pagination.EncodeToken(last.CreatedAt, last.EntryID)
			nextToken = &token
			break
		}
		e.Items = nil
		page = append(page, e)
	}
	return page, nextToken, nil
}

func matchesEntry(e domain.JournalEntry, f domain.EntryFilter) bool {
	if f.Status != nil && e.Status != *f.Status {
		return false
	}
	if f.SourceReference != nil && (e.SourceReference == nil || *e.SourceReference != *f.SourceReference) {
		return false
	}
	if f.From != nil && e.EntryDate.Before(*f.From) {
		return false
	}
	if f.To != nil && !e.EntryDate.Before(f.To.AddDate(0, 0, 1)) {
		return false
	}
	if f.AccountID != nil {
		for _, it := range e.Items {
			if it.AccountID == *f.AccountID {
				return true
			}
		}
		return false
	}
	return true
}

func (r *journalRepository) SaveEntry(_ context.Context, entry domain.JournalEntry) error {
	return r.h.write(func(st *state) error {
		if _, ok := st.entries[entry.EntryID]; ok {
			return duplicate("journal entry " + entry.EntryID)
		}
		if entry.IdempotencyKey != nil {
			if _, ok := st.entryKeys[*entry.IdempotencyKey]; ok {
				return duplicate("idempotency key " + *entry.IdempotencyKey)
			}
		}
		for _, it := range entry.Items {
			if _, ok := st.accounts[it.AccountID]; !ok {
				return fmt.Errorf("%w: %s", domain.ErrInvalidAccount, it.AccountID)
			}
		}
		if entry.IdempotencyKey != nil {
			st.entryKeys[*entry.IdempotencyKey] = entry.EntryID
		}
		st.entries[entry.EntryID] = *copyEntry(entry)
		return nil
	})
}

func (r *journalRepository) MarkEntryVoid(_ context.Context, entryID string, reversalEntryID string, actorID string, now time.Time) error {
	return r.h.write(func(st *state) error {
		e, ok := st.entries[entryID]
		if !ok {
			return fmt.Errorf("%w: %s", domain.ErrEntryNotFound, entryID)
		}
		if e.Status != domain.Posted {
			return fmt.Errorf("%w: %s", domain.ErrAlreadyVoided, entryID)
		}
		e.Status = domain.Void
		e.ReversedByEntryID = &reversalEntryID
		e.Touch(actorID, now)
		st.entries[entryID] = e
		return nil
	})
}
