package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
// The repositories here run outside any transaction; TxManager hands out
// transaction-bound ones.
type RepositoryProvider struct {
	AccountRepo   AccountRepositoryFacade
	JournalRepo   JournalRepositoryFacade
	PayrollRepo   PayrollRepositoryFacade
	ReportingRepo ReportingRepository
	TxManager     TransactionManager
}
