package models

// JournalEntryItem is the journal_entry_items table row. Amounts are in cents.
type JournalEntryItem struct {
	ItemID      string  `db:"item_id"`
	EntryID     string  `db:"entry_id"`
	LineNo      int     `db:"line_no"`
	AccountID   string  `db:"account_id"`
	DebitCents  int64   `db:"debit_cents"`
	CreditCents int64   `db:"credit_cents"`
	Memo        *string `db:"memo"`
}
