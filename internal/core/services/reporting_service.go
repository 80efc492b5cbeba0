package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shokoko2010/Elhamd-sub014/internal/core/domain"
	portsrepo "github.com/shokoko2010/Elhamd-sub014/internal/core/ports/repositories"
	portssvc "github.com/shokoko2010/Elhamd-sub014/internal/core/ports/services"
)

// reportingService implements the ReportingService interface
type reportingService struct {
	BaseService
	accountRepo   portsrepo.AccountReader
	reportingRepo portsrepo.ReportingRepository
	txManager     portsrepo.TransactionManager
	snapshot      bool
}

// ReportingServiceOption is a functional option for configuring the reporting service
type ReportingServiceOption func(*reportingService)

// WithSummarySnapshot controls whether Summary reads inside one read-only
// snapshot transaction (the default) or straight from the repositories.
func WithSummarySnapshot(enabled bool) ReportingServiceOption {
	return func(s *reportingService) {
		s.snapshot = enabled
	}
}

// NewReportingService creates a new reporting service with the provided options
func NewReportingService(accountRepo portsrepo.AccountReader, reportingRepo portsrepo.ReportingRepository, txManager portsrepo.TransactionManager, options ...ReportingServiceOption) portssvc.ReportingService {
	svc := &reportingService{
		accountRepo:   accountRepo,
		reportingRepo: reportingRepo,
		txManager:     txManager,
		snapshot:      true,
	}

	// Apply all options
	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure reportingService implements the ReportingService interface
var _ portssvc.ReportingService = (*reportingService)(nil)

func (s *reportingService) Balance(ctx context.Context, idOrCode string) (*domain.AccountBalance, error) {
	account, err := lookupAccount(ctx, s.accountRepo, idOrCode)
	if err != nil {
		return nil, err
	}

	totals, err := s.reportingRepo.SumPostedByAccount(ctx, account.AccountID)
	if err != nil {
		s.LogError(ctx, err, "Failed to sum account postings", slog.String("account_id", account.AccountID))
		return nil, fmt.Errorf("failed to compute balance: %w", err)
	}

	balance := domain.NewAccountBalance(*account, totals)
	return &balance, nil
}

func (s *reportingService) Summary(ctx context.Context) (*domain.FinancialSummary, error) {
	var summary *domain.FinancialSummary
	build := func(ctx context.Context, accounts portsrepo.AccountReader, reporting portsrepo.ReportingRepository) error {
		var err error
		summary, err = buildSummary(ctx, accounts, reporting)
		return err
	}

	var err error
	if s.snapshot && s.txManager != nil {
		err = s.txManager.WithSnapshot(ctx, func(ctx context.Context, store portsrepo.Store) error {
			return build(ctx, store.Accounts(), store.Reporting())
		})
	} else {
		err = build(ctx, s.accountRepo, s.reportingRepo)
	}
	if err != nil {
		s.LogError(ctx, err, "Failed to build financial summary")
		return nil, fmt.Errorf("failed to build financial summary: %w", err)
	}

	s.LogInfo(ctx, "Financial summary generated", slog.Int("account_count", len(summary.Accounts)))
	return summary, nil
}

func buildSummary(ctx context.Context, accounts portsrepo.AccountReader, reporting portsrepo.ReportingRepository) (*domain.FinancialSummary, error) {
	chart, err := accounts.ListAllAccounts(ctx)
	if err != nil {
		return nil, err
	}
	totals, err := reporting.SumPostedByAllAccounts(ctx)
	if err != nil {
		return nil, err
	}
	statusCounts, err := reporting.CountEntriesByStatus(ctx)
	if err != nil {
		return nil, err
	}

	balances := make([]domain.AccountBalance, len(chart))
	for i, acc := range chart {
		balances[i] = domain.NewAccountBalance(acc, totals[acc.AccountID])
	}
	entryStatus := map[domain.EntryStatus]int{domain.Posted: 0, domain.Void: 0}
	for status, n := range statusCounts {
		entryStatus[status] = n
	}

	return &domain.FinancialSummary{
		Totals:      domain.Summarize(balances),
		Accounts:    balances,
		EntryStatus: entryStatus,
	}, nil
}

func (s *reportingService) TrialBalance(ctx context.Context) (*domain.TrialBalance, error) {
	var tb domain.TrialBalance
	err := s.txManager.WithSnapshot(ctx, func(ctx context.Context, store portsrepo.Store) error {
		chart, err := store.Accounts().ListAllAccounts(ctx)
		if err != nil {
			return err
		}
		totals, err := store.Reporting().SumPostedByAllAccounts(ctx)
		if err != nil {
			return err
		}
		tb = domain.NewTrialBalance(chart, totals)
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to build trial balance")
		return nil, fmt.Errorf("failed to retrieve trial balance data: %w", err)
	}

	s.LogInfo(ctx, "Trial balance report generated successfully",
		slog.Int("row_count", len(tb.Rows)),
		slog.Bool("balanced", tb.Balanced))
	return &tb, nil
}
