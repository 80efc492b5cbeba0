package domain

import (
	"fmt"
	"time"

	"github.com/shokoko2010/Elhamd-sub014/internal/apperrors"
)

// BatchStatus is the lifecycle state of a payroll batch.
type BatchStatus string

const (
	BatchDraft         BatchStatus = "DRAFT"
	BatchApproved      BatchStatus = "APPROVED"
	BatchPostedAccrual BatchStatus = "POSTED_ACCRUAL"
	BatchPostedPayment BatchStatus = "POSTED_PAYMENT"
	BatchPaid          BatchStatus = "PAID"
	BatchCancelled     BatchStatus = "CANCELLED"
)

// batchTransitions is the complete payroll state graph. Anything absent is illegal.
var batchTransitions = map[BatchStatus][]BatchStatus{
	BatchDraft:         {BatchApproved, BatchCancelled},
	BatchApproved:      {BatchPostedAccrual, BatchCancelled},
	BatchPostedAccrual: {BatchPostedPayment},
	BatchPostedPayment: {BatchPaid},
	BatchPaid:          nil,
	BatchCancelled:     nil,
}

func (s BatchStatus) IsValid() bool {
	_, ok := batchTransitions[s]
	return ok
}

// CanTransitionTo reports whether next is a legal edge from s.
func (s BatchStatus) CanTransitionTo(next BatchStatus) bool {
	for _, allowed := range batchTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s BatchStatus) IsTerminal() bool {
	return s.IsValid() && len(batchTransitions[s]) == 0
}

// RequiresPosting reports whether entering s must go through a ledger posting.
func (s BatchStatus) RequiresPosting() bool {
	return s == BatchPostedAccrual || s == BatchPostedPayment
}

// RecordStatus is the state of a single employee's payroll record.
type RecordStatus string

const (
	RecordPending  RecordStatus = "PENDING"
	RecordApproved RecordStatus = "APPROVED"
	RecordPaid     RecordStatus = "PAID"
)

// PayrollBatch groups the payroll records of one period.
type PayrollBatch struct {
	BatchID          string      `json:"batchID"`
	Period           string      `json:"period"` // YYYY-MM
	Status           BatchStatus `json:"status"`
	PaymentAccountID *string     `json:"paymentAccountID,omitempty"`
	RecordIDs        []string    `json:"recordIDs"`
	AccrualEntryID   *string     `json:"accrualEntryID,omitempty"`
	PaymentEntryID   *string     `json:"paymentEntryID,omitempty"`
	Notes            *string     `json:"notes,omitempty"`
	AuditFields
}

// Transition moves the batch to next if the edge exists, leaving it untouched otherwise.
func (b *PayrollBatch) Transition(next BatchStatus, actorID string, at time.Time) error {
	if !next.IsValid() {
		return fmt.Errorf("%w: unknown batch status %q", apperrors.ErrValidation, next)
	}
	if !b.Status.CanTransitionTo(next) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, b.Status, next)
	}
	b.Status = next
	b.LastUpdatedAt = at
	b.LastUpdatedBy = actorID
	return nil
}

// AccrualKey is the idempotency key of a batch's accrual entry.
func (b PayrollBatch) AccrualKey() string {
	return fmt.Sprintf("payroll:%s:accrual", b.BatchID)
}

// PaymentKey is the idempotency key of a batch's payment entry.
func (b PayrollBatch) PaymentKey() string {
	return fmt.Sprintf("payroll:%s:payment", b.BatchID)
}

// PayrollRecord is one employee's pay for a batch.
type PayrollRecord struct {
	RecordID           string       `json:"recordID"`
	BatchID            string       `json:"batchID"`
	EmployeeID         string       `json:"employeeID"`
	GrossPay           Money        `json:"grossPay"`
	Deductions         Money        `json:"deductions"`
	NetPay             Money        `json:"netPay"`
	ExpenseAccountID   string       `json:"expenseAccountID"`
	LiabilityAccountID string       `json:"liabilityAccountID"`
	Status             RecordStatus `json:"status"`
	PaidAt             *time.Time   `json:"paidAt,omitempty"`
	AuditFields
}

// Validate checks the record's amounts and account references.
func (r PayrollRecord) Validate() error {
	if r.EmployeeID == "" {
		return fmt.Errorf("%w: employee id is required", apperrors.ErrValidation)
	}
	if r.ExpenseAccountID == "" || r.LiabilityAccountID == "" {
		return fmt.Errorf("%w: employee %s needs expense and liability accounts", apperrors.ErrValidation, r.EmployeeID)
	}
	if r.GrossPay.IsNegative() || r.Deductions.IsNegative() || r.NetPay.IsNegative() {
		return fmt.Errorf("%w: employee %s has a negative amount", apperrors.ErrValidation, r.EmployeeID)
	}
	if r.GrossPay-r.Deductions != r.NetPay {
		return fmt.Errorf("%w: employee %s net pay %s != gross %s - deductions %s",
			apperrors.ErrValidation, r.EmployeeID, r.NetPay, r.GrossPay, r.Deductions)
	}
	return nil
}

// PayrollBatchEvent is one entry in a batch's transition history.
type PayrollBatchEvent struct {
	EventID    string      `json:"eventID"`
	BatchID    string      `json:"batchID"`
	FromStatus BatchStatus `json:"fromStatus"`
	ToStatus   BatchStatus `json:"toStatus"`
	ActorID    string      `json:"actorID"`
	Notes      *string     `json:"notes,omitempty"`
	OccurredAt time.Time   `json:"occurredAt"`
}

// PeriodLayout is the time layout of a payroll period (YYYY-MM).
const PeriodLayout = "2006-01"

// BatchFilter narrows payroll batch listings.
type BatchFilter struct {
	Status    *BatchStatus
	Period    *string
	Limit     int
	NextToken *string
}
