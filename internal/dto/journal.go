package dto

import (
	"time"

	"github.com/shokoko2010/Elhamd-sub014/internal/core/domain"
	"github.com/shopspring/decimal"
)

// JournalLineRequest is one ledger line of a posting request.
// Exactly one of Debit and Credit must be positive.
type JournalLineRequest struct {
	AccountID string          `json:"accountID" binding:"required"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
	Memo      string          `json:"memo" binding:"max=500"`
}

// PostJournalEntryRequest defines the data needed to post a journal entry.
type PostJournalEntryRequest struct {
	EntryDate       *time.Time           `json:"entryDate"` // Defaults to now
	Description     string               `json:"description" binding:"required,max=500"`
	SourceReference *string              `json:"sourceReference" binding:"omitempty,max=200"`
	IdempotencyKey  *string              `json:"idempotencyKey" binding:"omitempty,max=200"` // The Idempotency-Key header takes precedence
	Lines           []JournalLineRequest `json:"lines" binding:"min=2,max=500,dive"`
}

// JournalEntryItemResponse defines the data returned for a journal line.
type JournalEntryItemResponse struct {
	ItemID    string          `json:"itemID"`
	LineNo    int             `json:"lineNo"`
	AccountID string          `json:"accountID"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
	Memo      string          `json:"memo,omitempty"`
}

// JournalEntryResponse defines the data returned for a journal entry.
type JournalEntryResponse struct {
	EntryID           string                     `json:"entryID"`
	EntryDate         time.Time                  `json:"entryDate"`
	Description       string                     `json:"description"`
	Status            domain.EntryStatus         `json:"status"`
	SourceReference   *string                    `json:"sourceReference,omitempty"`
	IdempotencyKey    *string                    `json:"idempotencyKey,omitempty"`
	ReversalOfEntryID *string                    `json:"reversalOfEntryID,omitempty"`
	ReversedByEntryID *string                    `json:"reversedByEntryID,omitempty"`
	TotalDebit        decimal.Decimal            `json:"totalDebit"`
	TotalCredit       decimal.Decimal            `json:"totalCredit"`
	Items             []JournalEntryItemResponse `json:"items,omitempty"`
	CreatedAt         time.Time                  `json:"createdAt"`
	CreatedBy         string                     `json:"createdBy"`
	LastUpdatedAt     time.Time                  `json:"lastUpdatedAt"`
	LastUpdatedBy     string                     `json:"lastUpdatedBy"`
}

// VoidJournalEntryResponse pairs the voided entry with its reversal.
type VoidJournalEntryResponse struct {
	Voided   JournalEntryResponse `json:"voided"`
	Reversal JournalEntryResponse `json:"reversal"`
}

// ListJournalEntriesParams defines the query parameters for listing entries.
type ListJournalEntriesParams struct {
	Status          *domain.EntryStatus `form:"status" binding:"omitempty,oneof=POSTED VOID"`
	SourceReference *string             `form:"sourceReference"`
	AccountID       *string             `form:"accountID"`
	From            *time.Time          `form:"from" time_format:"2006-01-02"`
	To              *time.Time          `form:"to" time_format:"2006-01-02"`
	Limit           int                 `form:"limit,default=50" binding:"min=1,max=200"`
	NextToken       *string             `form:"nextToken"`
}

// ListJournalEntriesResponse wraps a page of entries.
type ListJournalEntriesResponse struct {
	Entries   []JournalEntryResponse `json:"entries"`
	NextToken *string                `json:"nextToken,omitempty"`
}

// ToJournalEntryResponse converts a domain.JournalEntry to its DTO.
func ToJournalEntryResponse(e *domain.JournalEntry) JournalEntryResponse {
	debits, credits := e.Totals()
	resp := JournalEntryResponse{
		EntryID:           e.EntryID,
		EntryDate:         e.EntryDate,
		Description:       e.Description,
		Status:            e.Status,
		SourceReference:   e.SourceReference,
		IdempotencyKey:    e.IdempotencyKey,
		ReversalOfEntryID: e.ReversalOfEntryID,
		ReversedByEntryID: e.ReversedByEntryID,
		TotalDebit:        debits.Decimal(),
		TotalCredit:       credits.Decimal(),
		CreatedAt:         e.CreatedAt,
		CreatedBy:         e.CreatedBy,
		LastUpdatedAt:     e.LastUpdatedAt,
		LastUpdatedBy:     e.LastUpdatedBy,
	}
	if len(e.Items) > 0 {
		resp.Items = make([]JournalEntryItemResponse, len(e.Items))
		for i, it := range e.Items {
			resp.Items[i] = JournalEntryItemResponse{
				ItemID:    it.ItemID,
				LineNo:    it.LineNo,
				AccountID: it.AccountID,
				Debit:     it.Debit.Decimal(),
				Credit:    it.Credit.Decimal(),
				Memo:      it.Memo,
			}
		}
	}
	return resp
}

// ToListJournalEntriesResponse converts a page of entries.
func ToListJournalEntriesResponse(entries []domain.JournalEntry, nextToken *string) ListJournalEntriesResponse {
	resp := ListJournalEntriesResponse{
		Entries:   make([]JournalEntryResponse, len(entries)),
		NextToken: nextToken,
	}
	for i := range entries {
		resp.Entries[i] = ToJournalEntryResponse(&entries[i])
	}
	return resp
}
