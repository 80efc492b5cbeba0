package domain

import (
	"fmt"
	"time"
)

// EntryStatus indicates the state of a journal entry.
type EntryStatus string

const (
	Posted EntryStatus = "POSTED"
	Void   EntryStatus = "VOID"
)

// JournalEntry is an atomic, balanced set of ledger lines recorded for one business event.
// Once posted it is never edited; it can only be voided and linked to its reversal.
type JournalEntry struct {
	EntryID           string             `json:"entryID"`
	EntryDate         time.Time          `json:"entryDate"`
	Description       string             `json:"description"`
	Status            EntryStatus        `json:"status"`
	SourceReference   *string            `json:"sourceReference,omitempty"`
	IdempotencyKey    *string            `json:"idempotencyKey,omitempty"`
	ReversalOfEntryID *string            `json:"reversalOfEntryID,omitempty"` // set on the reversal entry
	ReversedByEntryID *string            `json:"reversedByEntryID,omitempty"` // set on the voided original
	Items             []JournalEntryItem `json:"items"`
	AuditFields
}

// Totals returns the debit and credit sums of the entry's items.
func (e JournalEntry) Totals() (debits, credits Money) {
	return SumItems(e.Items)
}

// AccountIDs returns the distinct accounts touched by the entry, in line order.
func (e JournalEntry) AccountIDs() []string {
	seen := make(map[string]struct{}, len(e.Items))
	ids := make([]string, 0, len(e.Items))
	for _, it := range e.Items {
		if _, ok := seen[it.AccountID]; ok {
			continue
		}
		seen[it.AccountID] = struct{}{}
		ids = append(ids, it.AccountID)
	}
	return ids
}

// PostingLine is a caller-supplied ledger line before it becomes an item.
type PostingLine struct {
	AccountID string
	Debit     Money
	Credit    Money
	Memo      string
}

// PostingInput is everything the posting engine needs to write one entry.
type PostingInput struct {
	EntryDate       time.Time
	Description     string
	SourceReference *string
	IdempotencyKey  *string
	Lines           []PostingLine
	ActorID         string
}

// ValidateLines runs the structural checks that need no store access:
// line count, one-sidedness and balance. Each side's total stays within the
// same bound as a single amount.
func ValidateLines(lines []PostingLine) error {
	if len(lines) < 2 {
		return fmt.Errorf("%w: got %d", ErrEmptyEntry, len(lines))
	}
	var debits, credits Money
	for i, l := range lines {
		if l.AccountID == "" {
			return fmt.Errorf("%w: line %d has no account", ErrMalformedLine, i+1)
		}
		if l.Debit.IsNegative() || l.Credit.IsNegative() {
			return fmt.Errorf("%w: line %d has a negative amount", ErrMalformedLine, i+1)
		}
		if l.Debit.IsZero() == l.Credit.IsZero() {
			return fmt.Errorf("%w: line %d", ErrMalformedLine, i+1)
		}
		if l.Debit > Money(maxMoney)-debits || l.Credit > Money(maxMoney)-credits {
			return fmt.Errorf("%w: totals exceed %s at line %d", ErrUnbalancedEntry, Money(maxMoney), i+1)
		}
		debits += l.Debit
		credits += l.Credit
	}
	if debits != credits {
		return fmt.Errorf("%w: debits %s, credits %s", ErrUnbalancedEntry, debits, credits)
	}
	return nil
}

// ReversalLines swaps debit and credit on every item, keeping line order.
func ReversalLines(items []JournalEntryItem) []PostingLine {
	lines := make([]PostingLine, len(items))
	for i, it := range items {
		lines[i] = PostingLine{
			AccountID: it.AccountID,
			Debit:     it.Credit,
			Credit:    it.Debit,
			Memo:      it.Memo,
		}
	}
	return lines
}

// EntryFilter narrows journal entry listings.
type EntryFilter struct {
	Status          *EntryStatus
	SourceReference *string
	AccountID       *string
	From            *time.Time
	To              *time.Time
	Limit           int
	NextToken       *string
}
