package services

import (
	"context"

	"github.com/shokoko2010/Elhamd-sub014/internal/core/domain"
)

// ReportingService defines operations for generating financial reports
type ReportingService interface {
	// Balance returns one account's balance on its normal side.
	Balance(ctx context.Context, idOrCode string) (*domain.AccountBalance, error)

	// Summary rolls up every account into headline totals from one consistent view.
	Summary(ctx context.Context) (*domain.FinancialSummary, error)

	// TrialBalance lists each account's net debit or credit.
	TrialBalance(ctx context.Context) (*domain.TrialBalance, error)
}
