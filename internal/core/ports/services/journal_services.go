package services

import (
	"context"

	"github.com/shokoko2010/Elhamd-sub014/internal/core/domain"
	portsrepo "github.com/shokoko2010/Elhamd-sub014/internal/core/ports/repositories"
	"github.com/shokoko2010/Elhamd-sub014/internal/dto"
)

// JournalReaderSvc defines read operations for journal data
type JournalReaderSvc interface {
	// GetEntry retrieves a specific entry with its items.
	GetEntry(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// ListEntries retrieves a page of entries, newest first.
	ListEntries(ctx context.Context, params dto.ListJournalEntriesParams) (*dto.ListJournalEntriesResponse, error)
}

// JournalPosterSvc defines the posting engine.
type JournalPosterSvc interface {
	// PostEntry validates and writes a balanced entry. With an idempotency key
	// that has already been used, the existing entry is returned and nothing is written.
	PostEntry(ctx context.Context, input domain.PostingInput) (*domain.JournalEntry, error)

	// PostEntryTx is PostEntry inside a transaction owned by the caller.
	PostEntryTx(ctx context.Context, store portsrepo.Store, input domain.PostingInput) (*domain.JournalEntry, error)

	// PostJournalEntry converts an API request and posts it.
	PostJournalEntry(ctx context.Context, req dto.PostJournalEntryRequest, actorID string) (*domain.JournalEntry, error)
}

// JournalVoiderSvc defines voiding of posted entries.
type JournalVoiderSvc interface {
	// VoidEntry marks a POSTED entry VOID and returns the reversal entry that offsets it.
	VoidEntry(ctx context.Context, entryID string, actorID string) (*domain.JournalEntry, error)
}

// JournalSvcFacade combines all journal-related service interfaces
// This is a facade for clients that need access to all operations
type JournalSvcFacade interface {
	JournalReaderSvc
	JournalPosterSvc
	JournalVoiderSvc
}
