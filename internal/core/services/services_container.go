package services

import (
	portsrepo "github.com/shokoko2010/Elhamd-sub014/internal/core/ports/repositories"
	portssvc "github.com/shokoko2010/Elhamd-sub014/internal/core/ports/services"
	"github.com/shokoko2010/Elhamd-sub014/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Account = NewAccountService(repos.AccountRepo, repos.TxManager)

	// The payroll processor posts through the journal service inside its own transactions
	journal := NewJournalService(repos.JournalRepo, repos.TxManager)
	container.Journal = journal

	container.Payroll = NewPayrollService(
		repos.PayrollRepo,
		repos.AccountRepo,
		journal,
		repos.TxManager,
		WithDefaultPaymentAccount(cfg.PayrollPaymentAccountCode),
	)

	container.Reporting = NewReportingService(
		repos.AccountRepo,
		repos.ReportingRepo,
		repos.TxManager,
		WithSummarySnapshot(cfg.SummarySnapshot),
	)

	return container
}
