package models

import "time"

// JournalEntry is the journal_entries table row.
type JournalEntry struct {
	EntryID           string    `db:"entry_id"`
	EntryDate         time.Time `db:"entry_date"`
	Description       string    `db:"description"`
	Status            string    `db:"status"`
	SourceReference   *string   `db:"source_reference"`
	IdempotencyKey    *string   `db:"idempotency_key"`
	ReversalOfEntryID *string   `db:"reversal_of_entry_id"`
	ReversedByEntryID *string   `db:"reversed_by_entry_id"`
	AuditFields
}
