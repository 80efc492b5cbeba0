package handlers_test

import (
	"context"

	"github.com/shokoko2010/Elhamd-sub014/internal/core/domain"
	portsrepo "github.com/shokoko2010/Elhamd-sub014/internal/core/ports/repositories"
	portssvc "github.com/shokoko2010/Elhamd-sub014/internal/core/ports/services"
	"github.com/shokoko2010/Elhamd-sub014/internal/dto"
	"github.com/stretchr/testify/mock"
)

// --- Mock AccountService ---
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) LookupAccount(ctx context.Context, idOrCode string) (*domain.Account, error) {
	args := m.Called(ctx, idOrCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) ListAccounts(ctx context.Context, params dto.ListAccountsParams) (*dto.ListAccountsResponse, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListAccountsResponse), args.Error(1)
}

func (m *MockAccountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, actorID string) (*domain.Account, error) {
	args := m.Called(ctx, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, actorID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) DeactivateAccount(ctx context.Context, accountID string, actorID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

// --- Mock JournalService ---
type MockJournalService struct {
	mock.Mock
}

func (m *MockJournalService) GetEntry(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalService) ListEntries(ctx context.Context, params dto.ListJournalEntriesParams) (*dto.ListJournalEntriesResponse, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListJournalEntriesResponse), args.Error(1)
}

func (m *MockJournalService) PostEntry(ctx context.Context, input domain.PostingInput) (*domain.JournalEntry, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalService) PostEntryTx(ctx context.Context, store portsrepo.Store, input domain.PostingInput) (*domain.JournalEntry, error) {
	args := m.Called(ctx, store, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalService) PostJournalEntry(ctx context.Context, req dto.PostJournalEntryRequest, actorID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalService) VoidEntry(ctx context.Context, entryID string, actorID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.JournalSvcFacade = (*MockJournalService)(nil)

// --- Mock PayrollService ---
type MockPayrollService struct {
	mock.Mock
}

func (m *MockPayrollService) GetBatch(ctx context.Context, batchID string) (*domain.PayrollBatch, error) {
	args := m.Called(ctx, batchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PayrollBatch), args.Error(1)
}

func (m *MockPayrollService) ListBatchRecords(ctx context.Context, batchID string) ([]domain.PayrollRecord, error) {
	args := m.Called(ctx, batchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PayrollRecord), args.Error(1)
}

func (m *MockPayrollService) ListBatchEvents(ctx context.Context, batchID string) ([]domain.PayrollBatchEvent, error) {
	args := m.Called(ctx, batchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PayrollBatchEvent), args.Error(1)
}

func (m *MockPayrollService) ListBatches(ctx context.Context, params dto.ListPayrollBatchesParams) (*dto.ListPayrollBatchesResponse, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListPayrollBatchesResponse), args.Error(1)
}

func (m *MockPayrollService) CreateBatch(ctx context.Context, req dto.CreatePayrollBatchRequest, actorID string) (*domain.PayrollBatch, error) {
	args := m.Called(ctx, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PayrollBatch), args.Error(1)
}

func (m *MockPayrollService) PostBatchAccrual(ctx context.Context, batchID string, actorID string) (*domain.PayrollBatch, error) {
	args := m.Called(ctx, batchID, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PayrollBatch), args.Error(1)
}

func (m *MockPayrollService) PostBatchPayment(ctx context.Context, batchID string, actorID string) (*domain.PayrollBatch, error) {
	args := m.Called(ctx, batchID, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PayrollBatch), args.Error(1)
}

func (m *MockPayrollService) MarkPayrollRecordPaid(ctx context.Context, recordID string, actorID string) (*domain.PayrollRecord, error) {
	args := m.Called(ctx, recordID, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PayrollRecord), args.Error(1)
}

func (m *MockPayrollService) UpdateBatchStatus(ctx context.Context, batchID string, status domain.BatchStatus, actorID string, notes *string) (*domain.PayrollBatch, error) {
	args := m.Called(ctx, batchID, status, actorID, notes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PayrollBatch), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.PayrollSvcFacade = (*MockPayrollService)(nil)

// --- Mock ReportingService ---
type MockReportingService struct {
	mock.Mock
}

func (m *MockReportingService) Balance(ctx context.Context, idOrCode string) (*domain.AccountBalance, error) {
	args := m.Called(ctx, idOrCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountBalance), args.Error(1)
}

func (m *MockReportingService) Summary(ctx context.Context) (*domain.FinancialSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FinancialSummary), args.Error(1)
}

func (m *MockReportingService) TrialBalance(ctx context.Context) (*domain.TrialBalance, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TrialBalance), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.ReportingService = (*MockReportingService)(nil)
