// Package memory is an in-process implementation of the repository ports.
// Transactions work on a private copy of the data that replaces the committed
// copy only when the unit of work succeeds, so a failed posting leaves no trace.
package memory

import (
	"context"
	"sync"

	"github.com/shokoko2010/Elhamd-sub014/internal/core/domain"
	portsrepo "github.com/shokoko2010/Elhamd-sub014/internal/core/ports/repositories"
)

// state is one version of the whole data set. A committed state is never
// mutated again; writers clone it first.
type state struct {
	accounts  map[string]domain.Account
	entries   map[string]domain.JournalEntry
	entryKeys map[string]string // idempotency key -> entry ID
	batches   map[string]domain.PayrollBatch
	records   map[string]domain.PayrollRecord
	events    map[string][]domain.PayrollBatchEvent
}

func newState() *state {
	return &state{
		accounts:  make(map[string]domain.Account),
		entries:   make(map[string]domain.JournalEntry),
		entryKeys: make(map[string]string),
		batches:   make(map[string]domain.PayrollBatch),
		records:   make(map[string]domain.PayrollRecord),
		events:    make(map[string][]domain.PayrollBatchEvent),
	}
}

// clone copies the maps. Values holding slices are replaced, never edited in
// place, so sharing the slices between versions is safe.
func (s *state) clone() *state {
	c := &state{
		accounts:  make(map[string]domain.Account, len(s.accounts)),
		entries:   make(map[string]domain.JournalEntry, len(s.entries)),
		entryKeys: make(map[string]string, len(s.entryKeys)),
		batches:   make(map[string]domain.PayrollBatch, len(s.batches)),
		records:   make(map[string]domain.PayrollRecord, len(s.records)),
		events:    make(map[string][]domain.PayrollBatchEvent, len(s.events)),
	}
	for k, v := range s.accounts {
		c.accounts[k] = v
	}
	for k, v := range s.entries {
		c.entries[k] = v
	}
	for k, v := range s.entryKeys {
		c.entryKeys[k] = v
	}
	for k, v := range s.batches {
		c.batches[k] = v
	}
	for k, v := range s.records {
		c.records[k] = v
	}
	for k, v := range s.events {
		c.events[k] = v
	}
	return c
}

// Store holds the committed state and hands out repositories over it.
// Writers run one at a time, so it suits tests and local runs rather than
// production concurrency.
type Store struct {
	txMu      sync.Mutex   // serializes writers, standing in for row locks
	mu        sync.RWMutex // guards the committed pointer
	committed *state
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{committed: newState()}
}

var _ portsrepo.TransactionManager = (*Store)(nil)

func (s *Store) current() *state {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.committed
}

// WithTx runs fn on a private copy and publishes it only when fn succeeds.
func (s *Store) WithTx(ctx context.Context, fn func(ctx context.Context, store portsrepo.Store) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.txMu.Lock()
	defer s.txMu.Unlock()

	work := s.current().clone()
	if err := fn(ctx, newTxStore(work)); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	s.committed = work
	s.mu.Unlock()
	return nil
}

// WithSnapshot runs fn against the committed state as of the call.
func (s *Store) WithSnapshot(ctx context.Context, fn func(ctx context.Context, store portsrepo.Store) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(ctx, newSnapshotStore(s.current()))
}

// Provider wires the store into the repository set used by the services.
func (s *Store) Provider() portsrepo.RepositoryProvider {
	h := &handle{
		read:  s.current,
		write: s.autoCommit,
	}
	return portsrepo.RepositoryProvider{
		AccountRepo:   &accountRepository{h},
		JournalRepo:   &journalRepository{h},
		PayrollRepo:   &payrollRepository{h},
		ReportingRepo: &reportingRepository{h},
		TxManager:     s,
	}
}

// autoCommit gives a single write outside any transaction its own one.
func (s *Store) autoCommit(fn func(*state) error) error {
	return s.WithTx(context.Background(), func(_ context.Context, store portsrepo.Store) error {
		return fn(store.(*boundStore).h.read())
	})
}

// handle abstracts where reads come from and how writes are applied.
type handle struct {
	read  func() *state
	write func(func(*state) error) error
}

// boundStore is the Store view handed to transaction callbacks.
type boundStore struct {
	h *handle
}

func newTxStore(work *state) *boundStore {
	return &boundStore{h: &handle{
		read:  func() *state { return work },
		write: func(fn func(*state) error) error { return fn(work) },
	}}
}

func newSnapshotStore(snap *state) *boundStore {
	return &boundStore{h: &handle{
		read:  func() *state { return snap },
		write: func(func(*state) error) error { return errReadOnly },
	}}
}

func (b *boundStore) Accounts() portsrepo.AccountRepositoryFacade { return &accountRepository{b.h} }
func (b *boundStore) Journals() portsrepo.JournalRepositoryFacade { return &journalRepository{b.h} }
func (b *boundStore) Payroll() portsrepo.PayrollRepositoryFacade { return &payrollRepository{b.h} }
func (b *boundStore) Reporting() portsrepo.ReportingRepository { return &reportingRepository{b.h} }
