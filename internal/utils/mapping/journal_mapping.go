package mapping

import (
	"github.com/shokoko2010/Elhamd-sub014/internal/core/domain"
	"github.com/shokoko2010/Elhamd-sub014/internal/models"
)

// ToModelJournalEntry converts a domain JournalEntry (without items) to a model row.
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		EntryID:           d.EntryID,
		EntryDate:         d.EntryDate,
		Description:       d.Description,
		Status:            string(d.Status),
		SourceReference:   d.SourceReference,
		IdempotencyKey:    d.IdempotencyKey,
		ReversalOfEntryID: d.ReversalOfEntryID,
		ReversedByEntryID: d.ReversedByEntryID,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalEntry converts a model row and its items to a domain JournalEntry.
func ToDomainJournalEntry(m models.JournalEntry, items []models.JournalEntryItem) domain.JournalEntry {
	entry := domain.JournalEntry{
		EntryID:           m.EntryID,
		EntryDate:         m.EntryDate,
		Description:       m.Description,
		Status:            domain.EntryStatus(m.Status),
		SourceReference:   m.SourceReference,
		IdempotencyKey:    m.IdempotencyKey,
		ReversalOfEntryID: m.ReversalOfEntryID,
		ReversedByEntryID: m.ReversedByEntryID,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
	if items != nil {
		entry.Items = make([]domain.JournalEntryItem, len(items))
		for i, it := range items {
			entry.Items[i] = ToDomainJournalEntryItem(it)
		}
	}
	return entry
}

// ToModelJournalEntryItem converts a domain item to a model row.
func ToModelJournalEntryItem(d domain.JournalEntryItem) models.JournalEntryItem {
	return models.JournalEntryItem{
		ItemID:      d.ItemID,
		EntryID:     d.EntryID,
		LineNo:      d.LineNo,
		AccountID:   d.AccountID,
		DebitCents:  int64(d.Debit),
		CreditCents: int64(d.Credit),
		Memo:        stringPtrOrNil(d.Memo),
	}
}

// ToDomainJournalEntryItem converts a model row to a domain item.
func ToDomainJournalEntryItem(m models.JournalEntryItem) domain.JournalEntryItem {
	return domain.JournalEntryItem{
		ItemID:    m.ItemID,
		EntryID:   m.EntryID,
		LineNo:    m.LineNo,
		AccountID: m.AccountID,
		Debit:     domain.Money(m.DebitCents),
		Credit:    domain.Money(m.CreditCents),
		Memo:      stringOrEmpty(m.Memo),
	}
}
