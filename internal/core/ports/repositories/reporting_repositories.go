package repositories

import (
	"context"

	"github.com/shokoko2010/Elhamd-sub014/internal/core/domain"
)

// ReportingRepository aggregates ledger data. Items of VOID entries still count:
// every voided entry has a POSTED reversal that offsets it exactly.
type ReportingRepository interface {
	// SumPostedByAccount returns the debit and credit totals for one account.
	SumPostedByAccount(ctx context.Context, accountID string) (domain.AccountTotals, error)

	// SumPostedByAllAccounts returns totals keyed by account ID for every account with posted items.
	SumPostedByAllAccounts(ctx context.Context) (map[string]domain.AccountTotals, error)

	// CountEntriesByStatus counts journal entries per status.
	CountEntriesByStatus(ctx context.Context) (map[domain.EntryStatus]int, error)
}
