package handlers_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shokoko2010/Elhamd-sub014/internal/core/domain"
	"github.com/shokoko2010/Elhamd-sub014/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type PayrollHandlerTestSuite struct {
	handlerSuite
	batch   *domain.PayrollBatch
	records []domain.PayrollRecord
}

func TestPayrollHandler(t *testing.T) {
	suite.Run(t, new(PayrollHandlerTestSuite))
}

func (suite *PayrollHandlerTestSuite) SetupTest() {
	suite.handlerSuite.SetupTest()

	now := time.Date(2025, 3, 31, 17, 0, 0, 0, time.UTC)
	batchID := uuid.NewString()
	suite.records = []domain.PayrollRecord{
		{
			RecordID: uuid.NewString(), BatchID: batchID, EmployeeID: "emp-1",
			GrossPay: 150000, NetPay: 150000,
			ExpenseAccountID: "5000", LiabilityAccountID: "2100",
			Status: domain.RecordPending, AuditFields: domain.NewAuditFields(testUserID, now),
		},
		{
			RecordID: uuid.NewString(), BatchID: batchID, EmployeeID: "emp-2",
			GrossPay: 120000, Deductions: 20000, NetPay: 100000,
			ExpenseAccountID: "5000", LiabilityAccountID: "2100",
			Status: domain.RecordPending, AuditFields: domain.NewAuditFields(testUserID, now),
		},
	}
	suite.batch = &domain.PayrollBatch{
		BatchID:     batchID,
		Period:      "2025-03",
		Status:      domain.BatchDraft,
		RecordIDs:   []string{suite.records[0].RecordID, suite.records[1].RecordID},
		AuditFields: domain.NewAuditFields(testUserID, now),
	}
}

// expectBatchRead stubs the read-back every batch mutation ends with.
func (suite *PayrollHandlerTestSuite) expectBatchRead() {
	suite.payrollSvc.On("GetBatch", mock.Anything, suite.batch.BatchID).Return(suite.batch, nil).Once()
	suite.payrollSvc.On("ListBatchRecords", mock.Anything, suite.batch.BatchID).Return(suite.records, nil).Once()
}

func (suite *PayrollHandlerTestSuite) TestCreateBatch_Success() {
	suite.payrollSvc.On("CreateBatch",
		mock.Anything,
		mock.MatchedBy(func(req dto.CreatePayrollBatchRequest) bool {
			return req.Period == "2025-03" && len(req.Records) == 2 && req.Records[1].NetPay == nil
		}),
		testUserID,
	).Return(suite.batch, nil).Once()
	suite.expectBatchRead()

	w := suite.do(http.MethodPost, "/api/v1/payroll/batches", map[string]any{
		"period": "2025-03",
		"records": []map[string]any{
			{"employeeID": "emp-1", "grossPay": "1500", "netPay": "1500", "expenseAccountID": "5000", "liabilityAccountID": "2100"},
			{"employeeID": "emp-2", "grossPay": "1200", "deductions": "200", "expenseAccountID": "5000", "liabilityAccountID": "2100"},
		},
	})

	suite.Equal(http.StatusCreated, w.Code, w.Body.String())
	var resp dto.PayrollBatchResponse
	suite.decode(w, &resp)
	suite.Equal(suite.batch.BatchID, resp.BatchID)
	suite.Len(resp.Records, 2)
	suite.Require().NotNil(resp.NetPayTotal)
	suite.True(decimal.RequireFromString("2500").Equal(*resp.NetPayTotal), resp.NetPayTotal.String())
}

func (suite *PayrollHandlerTestSuite) TestCreateBatch_BindingErrors() {
	record := map[string]any{"employeeID": "emp-1", "grossPay": "10", "expenseAccountID": "5000", "liabilityAccountID": "2100"}
	tests := []struct {
		name string
		body map[string]any
	}{
		{"bad period", map[string]any{"period": "2025-13", "records": []any{record}}},
		{"period with day", map[string]any{"period": "2025-03-01", "records": []any{record}}},
		{"no records", map[string]any{"period": "2025-03", "records": []any{}}},
		{"record without employee", map[string]any{"period": "2025-03", "records": []any{
			map[string]any{"grossPay": "10", "expenseAccountID": "5000", "liabilityAccountID": "2100"},
		}}},
	}
	for _, tt := range tests {
		suite.Run(tt.name, func() {
			w := suite.do(http.MethodPost, "/api/v1/payroll/batches", tt.body)
			suite.Equal(http.StatusBadRequest, w.Code, w.Body.String())
		})
	}
}

func (suite *PayrollHandlerTestSuite) TestGetBatch_NotFound() {
	suite.payrollSvc.On("GetBatch", mock.Anything, "nope").Return(nil, domain.ErrBatchNotFound).Once()

	w := suite.do(http.MethodGet, "/api/v1/payroll/batches/nope", nil)
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *PayrollHandlerTestSuite) TestListBatches() {
	page := dto.ToListPayrollBatchesResponse([]domain.PayrollBatch{*suite.batch}, nil)
	suite.payrollSvc.On("ListBatches", mock.Anything, mock.MatchedBy(func(p dto.ListPayrollBatchesParams) bool {
		return p.Period != nil && *p.Period == "2025-03"
	})).Return(&page, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/payroll/batches?period=2025-03", nil)
	suite.Equal(http.StatusOK, w.Code, w.Body.String())
	var resp dto.ListPayrollBatchesResponse
	suite.decode(w, &resp)
	suite.Len(resp.Batches, 1)
	suite.Empty(resp.Batches[0].Records)

	w = suite.do(http.MethodGet, "/api/v1/payroll/batches?period=March", nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *PayrollHandlerTestSuite) TestListBatchEvents() {
	events := []domain.PayrollBatchEvent{
		{EventID: uuid.NewString(), BatchID: suite.batch.BatchID, ToStatus: domain.BatchDraft, ActorID: testUserID, OccurredAt: time.Now().UTC()},
		{EventID: uuid.NewString(), BatchID: suite.batch.BatchID, FromStatus: domain.BatchDraft, ToStatus: domain.BatchApproved, ActorID: testUserID, OccurredAt: time.Now().UTC()},
	}
	suite.payrollSvc.On("ListBatchEvents", mock.Anything, suite.batch.BatchID).Return(events, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/payroll/batches/"+suite.batch.BatchID+"/events", nil)
	suite.Equal(http.StatusOK, w.Code)
	var resp []dto.PayrollBatchEventResponse
	suite.decode(w, &resp)
	suite.Require().Len(resp, 2)
	suite.Equal(domain.BatchApproved, resp[1].ToStatus)
}

func (suite *PayrollHandlerTestSuite) TestPostAccrual() {
	accrualID := uuid.NewString()
	suite.batch.Status = domain.BatchPostedAccrual
	suite.batch.AccrualEntryID = &accrualID
	suite.payrollSvc.On("PostBatchAccrual", mock.Anything, suite.batch.BatchID, testUserID).Return(suite.batch, nil).Once()
	suite.expectBatchRead()

	w := suite.do(http.MethodPost, "/api/v1/payroll/batches/"+suite.batch.BatchID+"/accrual", nil)
	suite.Equal(http.StatusOK, w.Code, w.Body.String())
	var resp dto.PayrollBatchResponse
	suite.decode(w, &resp)
	suite.Equal(domain.BatchPostedAccrual, resp.Status)
	suite.Require().NotNil(resp.AccrualEntryID)
	suite.Equal(accrualID, *resp.AccrualEntryID)
}

func (suite *PayrollHandlerTestSuite) TestPostAccrual_NotApproved() {
	suite.payrollSvc.On("PostBatchAccrual", mock.Anything, suite.batch.BatchID, testUserID).
		Return(nil, fmt.Errorf("%w: DRAFT -> POSTED_ACCRUAL", domain.ErrInvalidTransition)).Once()

	w := suite.do(http.MethodPost, "/api/v1/payroll/batches/"+suite.batch.BatchID+"/accrual", nil)
	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *PayrollHandlerTestSuite) TestPostPayment() {
	suite.batch.Status = domain.BatchPostedPayment
	suite.payrollSvc.On("PostBatchPayment", mock.Anything, suite.batch.BatchID, testUserID).Return(suite.batch, nil).Once()
	suite.expectBatchRead()

	w := suite.do(http.MethodPost, "/api/v1/payroll/batches/"+suite.batch.BatchID+"/payment", nil)
	suite.Equal(http.StatusOK, w.Code, w.Body.String())
}

func (suite *PayrollHandlerTestSuite) TestUpdateStatus() {
	notes := "approved by finance"
	suite.batch.Status = domain.BatchApproved
	suite.payrollSvc.On("UpdateBatchStatus", mock.Anything, suite.batch.BatchID, domain.BatchApproved, testUserID,
		mock.MatchedBy(func(n *string) bool { return n != nil && *n == notes }),
	).Return(suite.batch, nil).Once()
	suite.expectBatchRead()

	w := suite.do(http.MethodPatch, "/api/v1/payroll/batches/"+suite.batch.BatchID+"/status", map[string]any{
		"status": "APPROVED",
		"notes":  notes,
	})
	suite.Equal(http.StatusOK, w.Code, w.Body.String())
}

func (suite *PayrollHandlerTestSuite) TestUpdateStatus_InvalidTransition() {
	suite.payrollSvc.On("UpdateBatchStatus", mock.Anything, suite.batch.BatchID, domain.BatchDraft, testUserID, (*string)(nil)).
		Return(nil, fmt.Errorf("%w: PAID -> DRAFT", domain.ErrInvalidTransition)).Once()

	w := suite.do(http.MethodPatch, "/api/v1/payroll/batches/"+suite.batch.BatchID+"/status", map[string]any{"status": "DRAFT"})
	suite.Equal(http.StatusConflict, w.Code)
	suite.Contains(w.Body.String(), "invalid payroll batch transition")

	w = suite.do(http.MethodPatch, "/api/v1/payroll/batches/"+suite.batch.BatchID+"/status", map[string]any{})
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *PayrollHandlerTestSuite) TestMarkRecordPaid() {
	paidAt := time.Date(2025, 4, 1, 8, 0, 0, 0, time.UTC)
	record := suite.records[0]
	record.Status = domain.RecordPaid
	record.PaidAt = &paidAt
	suite.payrollSvc.On("MarkPayrollRecordPaid", mock.Anything, record.RecordID, testUserID).Return(&record, nil).Once()
	suite.payrollSvc.On("MarkPayrollRecordPaid", mock.Anything, "r-missing", testUserID).Return(nil, domain.ErrRecordNotFound).Once()

	w := suite.do(http.MethodPost, "/api/v1/payroll/records/"+record.RecordID+"/paid", nil)
	suite.Equal(http.StatusOK, w.Code, w.Body.String())
	var resp dto.PayrollRecordResponse
	suite.decode(w, &resp)
	suite.Equal(domain.RecordPaid, resp.Status)
	suite.Require().NotNil(resp.PaidAt)
	suite.True(paidAt.Equal(*resp.PaidAt))

	w = suite.do(http.MethodPost, "/api/v1/payroll/records/r-missing/paid", nil)
	suite.Equal(http.StatusNotFound, w.Code)
}
