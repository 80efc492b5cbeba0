package domain

// TransactionType indicates whether a line is a Debit or a Credit.
type TransactionType string

const (
	Debit  TransactionType = "DEBIT"
	Credit TransactionType = "CREDIT"
)

// JournalEntryItem is a single line of a journal entry, affecting one account.
// Exactly one of Debit and Credit is nonzero.
type JournalEntryItem struct {
	ItemID    string `json:"itemID"`
	EntryID   string `json:"entryID"`
	LineNo    int    `json:"lineNo"`
	AccountID string `json:"accountID"`
	Debit     Money  `json:"debit"`
	Credit    Money  `json:"credit"`
	Memo      string `json:"memo,omitempty"`
}

// Side reports which side of the ledger the line is on.
func (i JournalEntryItem) Side() TransactionType {
	if i.Debit > 0 {
		return Debit
	}
	return Credit
}

// Amount is the line's nonzero side.
func (i JournalEntryItem) Amount() Money {
	if i.Debit > 0 {
		return i.Debit
	}
	return i.Credit
}

// SumItems totals debits and credits across items.
func SumItems(items []JournalEntryItem) (debits, credits Money) {
	for _, it := range items {
		debits += it.Debit
		credits += it.Credit
	}
	return debits, credits
}
