package services_test

import (
	"context"

	"github.com/shokoko2010/Elhamd-sub014/internal/core/domain"
	portsrepo "github.com/shokoko2010/Elhamd-sub014/internal/core/ports/repositories"
	portssvc "github.com/shokoko2010/Elhamd-sub014/internal/core/ports/services"
	"github.com/shokoko2010/Elhamd-sub014/internal/core/services"
	"github.com/shokoko2010/Elhamd-sub014/internal/dto"
	"github.com/shokoko2010/Elhamd-sub014/internal/platform/config"
	"github.com/shokoko2010/Elhamd-sub014/internal/repositories/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

const testActor = "user-ledger-test"

// ledgerSuite wires every service over a fresh in-memory store per test.
type ledgerSuite struct {
	suite.Suite
	ctx context.Context
	cfg *config.Config
	svc *portssvc.ServiceContainer

	repos portsrepo.RepositoryProvider
}

func (s *ledgerSuite) SetupTest() {
	s.ctx = context.Background()
	if s.cfg == nil {
		s.cfg = &config.Config{SummarySnapshot: true}
	}
	s.repos = memory.NewStore().Provider()
	s.svc = services.NewServiceContainer(s.cfg, s.repos)
}

// useTxManager rebuilds the services over the same store, routing every
// transaction through tx.
func (s *ledgerSuite) useTxManager(tx portsrepo.TransactionManager) {
	repos := s.repos
	repos.TxManager = tx
	s.svc = services.NewServiceContainer(s.cfg, repos)
}

func amount(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func (s *ledgerSuite) createAccount(code string, accountType domain.AccountType) *domain.Account {
	acc, err := s.svc.Account.CreateAccount(s.ctx, dto.CreateAccountRequest{
		Code:        code,
		Name:        "Account " + code,
		AccountType: accountType,
	}, testActor)
	s.Require().NoError(err)
	return acc
}

func (s *ledgerSuite) post(key string, lines ...dto.JournalLineRequest) (*domain.JournalEntry, error) {
	req := dto.PostJournalEntryRequest{
		Description: "test posting",
		Lines:       lines,
	}
	if key != "" {
		req.IdempotencyKey = &key
	}
	return s.svc.Journal.PostJournalEntry(s.ctx, req, testActor)
}

func debit(accountID, v string) dto.JournalLineRequest {
	return dto.JournalLineRequest{AccountID: accountID, Debit: amount(v)}
}

func credit(accountID, v string) dto.JournalLineRequest {
	return dto.JournalLineRequest{AccountID: accountID, Credit: amount(v)}
}

func (s *ledgerSuite) balance(ref string) decimal.Decimal {
	b, err := s.svc.Reporting.Balance(s.ctx, ref)
	s.Require().NoError(err)
	return b.Balance.Decimal()
}

// assertDecimal compares amounts by value so 500 and 500.00 are equal.
func (s *ledgerSuite) assertDecimal(expected string, actual decimal.Decimal, msgAndArgs ...any) {
	s.Truef(amount(expected).Equal(actual), "expected %s, got %s %v", expected, actual, msgAndArgs)
}
