package services_test

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/shokoko2010/Elhamd-sub014/internal/core/domain"
	portsrepo "github.com/shokoko2010/Elhamd-sub014/internal/core/ports/repositories"
)

var errWriteFailed = errors.New("write failed")

// faultyTxManager wraps a real transaction manager. Payroll writes named in
// failOn return errWriteFailed, and hierarchy locks are counted.
type faultyTxManager struct {
	portsrepo.TransactionManager
	failOn         map[string]bool
	hierarchyLocks atomic.Int32
}

func (m *faultyTxManager) WithTx(ctx context.Context, fn func(ctx context.Context, store portsrepo.Store) error) error {
	return m.TransactionManager.WithTx(ctx, func(ctx context.Context, store portsrepo.Store) error {
		return fn(ctx, &faultyStore{Store: store, m: m})
	})
}

type faultyStore struct {
	portsrepo.Store
	m *faultyTxManager
}

func (s *faultyStore) Accounts() portsrepo.AccountRepositoryFacade {
	return &countingAccounts{AccountRepositoryFacade: s.Store.Accounts(), locks: &s.m.hierarchyLocks}
}

func (s *faultyStore) Payroll() portsrepo.PayrollRepositoryFacade {
	return &faultyPayroll{PayrollRepositoryFacade: s.Store.Payroll(), failOn: s.m.failOn}
}

type countingAccounts struct {
	portsrepo.AccountRepositoryFacade
	locks *atomic.Int32
}

func (a *countingAccounts) LockHierarchy(ctx context.Context) error {
	a.locks.Add(1)
	return a.AccountRepositoryFacade.LockHierarchy(ctx)
}

type faultyPayroll struct {
	portsrepo.PayrollRepositoryFacade
	failOn map[string]bool
}

func (p *faultyPayroll) UpdateBatch(ctx context.Context, batch domain.PayrollBatch) error {
	if p.failOn["UpdateBatch"] {
		return errWriteFailed
	}
	return p.PayrollRepositoryFacade.UpdateBatch(ctx, batch)
}

func (p *faultyPayroll) UpdateRecordsStatus(ctx context.Context, recordIDs []string, status domain.RecordStatus, paidAt *time.Time, actorID string, now time.Time) error {
	if p.failOn["UpdateRecordsStatus"] {
		return errWriteFailed
	}
	return p.PayrollRepositoryFacade.UpdateRecordsStatus(ctx, recordIDs, status, paidAt, actorID, now)
}

func (p *faultyPayroll) AppendBatchEvent(ctx context.Context, event domain.PayrollBatchEvent) error {
	if p.failOn["AppendBatchEvent"] {
		return errWriteFailed
	}
	return p.PayrollRepositoryFacade.AppendBatchEvent(ctx, event)
}
