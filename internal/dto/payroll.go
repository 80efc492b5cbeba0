package dto

import (
	"time"

	"github.com/shokoko2010/Elhamd-sub014/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PayrollRecordRequest is one employee line of a new batch.
// Account references accept either the account id or its code.
type PayrollRecordRequest struct {
	EmployeeID         string           `json:"employeeID" binding:"required,max=100"`
	GrossPay           decimal.Decimal  `json:"grossPay"`
	Deductions         decimal.Decimal  `json:"deductions"`
	NetPay             *decimal.Decimal `json:"netPay"` // Computed as gross - deductions when omitted
	ExpenseAccountID   string           `json:"expenseAccountID" binding:"required"`
	LiabilityAccountID string           `json:"liabilityAccountID" binding:"required"`
}

// CreatePayrollBatchRequest defines the data needed to open a payroll batch.
type CreatePayrollBatchRequest struct {
	Period           string                 `json:"period" binding:"required,payroll_period"`
	PaymentAccountID *string                `json:"paymentAccountID"` // Disbursing cash/bank account, id or code
	Notes            *string                `json:"notes" binding:"omitempty,max=1000"`
	Records          []PayrollRecordRequest `json:"records" binding:"required,min=1,dive"`
}

// UpdateBatchStatusRequest defines a guarded status change.
type UpdateBatchStatusRequest struct {
	Status domain.BatchStatus `json:"status" binding:"required"`
	Notes  *string            `json:"notes" binding:"omitempty,max=1000"`
}

// PayrollRecordResponse defines the data returned for a payroll record.
type PayrollRecordResponse struct {
	RecordID           string              `json:"recordID"`
	BatchID            string              `json:"batchID"`
	EmployeeID         string              `json:"employeeID"`
	GrossPay           decimal.Decimal     `json:"grossPay"`
	Deductions         decimal.Decimal     `json:"deductions"`
	NetPay             decimal.Decimal     `json:"netPay"`
	ExpenseAccountID   string              `json:"expenseAccountID"`
	LiabilityAccountID string              `json:"liabilityAccountID"`
	Status             domain.RecordStatus `json:"status"`
	PaidAt             *time.Time          `json:"paidAt,omitempty"`
	LastUpdatedAt      time.Time           `json:"lastUpdatedAt"`
	LastUpdatedBy      string              `json:"lastUpdatedBy"`
}

// PayrollBatchResponse defines the data returned for a payroll batch.
type PayrollBatchResponse struct {
	BatchID          string                  `json:"batchID"`
	Period           string                  `json:"period"`
	Status           domain.BatchStatus      `json:"status"`
	PaymentAccountID *string                 `json:"paymentAccountID,omitempty"`
	RecordIDs        []string                `json:"recordIDs"`
	AccrualEntryID   *string                 `json:"accrualEntryID,omitempty"`
	PaymentEntryID   *string                 `json:"paymentEntryID,omitempty"`
	Notes            *string                 `json:"notes,omitempty"`
	Records          []PayrollRecordResponse `json:"records,omitempty"`
	NetPayTotal      *decimal.Decimal        `json:"netPayTotal,omitempty"`
	CreatedAt        time.Time               `json:"createdAt"`
	CreatedBy        string                  `json:"createdBy"`
	LastUpdatedAt    time.Time               `json:"lastUpdatedAt"`
	LastUpdatedBy    string                  `json:"lastUpdatedBy"`
}

// PayrollBatchEventResponse is one entry of a batch's history.
type PayrollBatchEventResponse struct {
	FromStatus domain.BatchStatus `json:"fromStatus"`
	ToStatus   domain.BatchStatus `json:"toStatus"`
	ActorID    string             `json:"actorID"`
	Notes      *string            `json:"notes,omitempty"`
	OccurredAt time.Time          `json:"occurredAt"`
}

// ListPayrollBatchesParams defines the query parameters for listing batches.
type ListPayrollBatchesParams struct {
	Status    *domain.BatchStatus `form:"status"`
	Period    *string             `form:"period" binding:"omitempty,payroll_period"`
	Limit     int                 `form:"limit,default=50" binding:"min=1,max=200"`
	NextToken *string             `form:"nextToken"`
}

// ListPayrollBatchesResponse wraps a page of batches.
type ListPayrollBatchesResponse struct {
	Batches   []PayrollBatchResponse `json:"batches"`
	NextToken *string                `json:"nextToken,omitempty"`
}

// ToPayrollRecordResponse converts a domain.PayrollRecord to its DTO.
func ToPayrollRecordResponse(r *domain.PayrollRecord) PayrollRecordResponse {
	return PayrollRecordResponse{
		RecordID:           r.RecordID,
		BatchID:            r.BatchID,
		EmployeeID:         r.EmployeeID,
		GrossPay:           r.GrossPay.Decimal(),
		Deductions:         r.Deductions.Decimal(),
		NetPay:             r.NetPay.Decimal(),
		ExpenseAccountID:   r.ExpenseAccountID,
		LiabilityAccountID: r.LiabilityAccountID,
		Status:             r.Status,
		PaidAt:             r.PaidAt,
		LastUpdatedAt:      r.LastUpdatedAt,
		LastUpdatedBy:      r.LastUpdatedBy,
	}
}

// ToPayrollBatchResponse converts a batch and, when given, its records.
func ToPayrollBatchResponse(b *domain.PayrollBatch, records []domain.PayrollRecord) PayrollBatchResponse {
	resp := PayrollBatchResponse{
		BatchID:          b.BatchID,
		Period:           b.Period,
		Status:           b.Status,
		PaymentAccountID: b.PaymentAccountID,
		RecordIDs:        b.RecordIDs,
		AccrualEntryID:   b.AccrualEntryID,
		PaymentEntryID:   b.PaymentEntryID,
		Notes:            b.Notes,
		CreatedAt:        b.CreatedAt,
		CreatedBy:        b.CreatedBy,
		LastUpdatedAt:    b.LastUpdatedAt,
		LastUpdatedBy:    b.LastUpdatedBy,
	}
	if records != nil {
		var total domain.Money
		resp.Records = make([]PayrollRecordResponse, len(records))
		for i := range records {
			resp.Records[i] = ToPayrollRecordResponse(&records[i])
			total += records[i].NetPay
		}
		t := total.Decimal()
		resp.NetPayTotal = &t
	}
	return resp
}

// ToPayrollBatchEventResponses converts a batch history.
func ToPayrollBatchEventResponses(events []domain.PayrollBatchEvent) []PayrollBatchEventResponse {
	out := make([]PayrollBatchEventResponse, len(events))
	for i, e := range events {
		out[i] = PayrollBatchEventResponse{
			FromStatus: e.FromStatus,
			ToStatus:   e.ToStatus,
			ActorID:    e.ActorID,
			Notes:      e.Notes,
			OccurredAt: e.OccurredAt,
		}
	}
	return out
}

// ToListPayrollBatchesResponse converts a page of batches.
func ToListPayrollBatchesResponse(batches []domain.PayrollBatch, nextToken *string) ListPayrollBatchesResponse {
	resp := ListPayrollBatchesResponse{
		Batches:   make([]PayrollBatchResponse, len(batches)),
		NextToken: nextToken,
	}
	for i := range batches {
		resp.Batches[i] = ToPayrollBatchResponse(&batches[i], nil)
	}
	return resp
}
