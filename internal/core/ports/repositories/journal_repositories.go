package repositories

import (
	"context"
	"time"

	"github.com/shokoko2010/Elhamd-sub014/internal/core/domain"
)

// JournalReader defines read operations for journal entry data
type JournalReader interface {
	// FindEntryByID retrieves an entry with its items.
	FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// FindEntryByIdempotencyKey retrieves the entry written under key, with its items.
	FindEntryByIdempotencyKey(ctx context.Context, key string) (*domain.JournalEntry, error)

	// ListEntries retrieves a page of entries (without items), newest first.
	ListEntries(ctx context.Context, filter domain.EntryFilter) ([]domain.JournalEntry, *string, error)
}

// JournalWriter defines write operations for journal entry data
type JournalWriter interface {
	// SaveEntry persists an entry and all of its items. It returns apperrors.ErrDuplicate
	// when the idempotency key is already taken.
	SaveEntry(ctx context.Context, entry domain.JournalEntry) error

	// MarkEntryVoid flips a POSTED entry to VOID and links its reversal.
	// It returns domain.ErrAlreadyVoided when the entry is no longer POSTED.
	MarkEntryVoid(ctx context.Context, entryID string, reversalEntryID string, actorID string, now time.Time) error
}

// JournalRepositoryFacade combines all journal-related repository interfaces
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
}
