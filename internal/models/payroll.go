package models

import "time"

// PayrollBatch is the payroll_batches table row.
type PayrollBatch struct {
	BatchID          string  `db:"batch_id"`
	Period           string  `db:"period"`
	Status           string  `db:"status"`
	PaymentAccountID *string `db:"payment_account_id"`
	AccrualEntryID   *string `db:"accrual_entry_id"`
	PaymentEntryID   *string `db:"payment_entry_id"`
	Notes            *string `db:"notes"`
	AuditFields
}

// PayrollRecord is the payroll_records table row. Amounts are in cents.
type PayrollRecord struct {
	RecordID           string     `db:"record_id"`
	BatchID            string     `db:"batch_id"`
	EmployeeID         string     `db:"employee_id"`
	GrossPayCents      int64      `db:"gross_pay_cents"`
	DeductionsCents    int64      `db:"deductions_cents"`
	NetPayCents        int64      `db:"net_pay_cents"`
	ExpenseAccountID   string     `db:"expense_account_id"`
	LiabilityAccountID string     `db:"liability_account_id"`
	Status             string     `db:"status"`
	PaidAt             *time.Time `db:"paid_at"`
	AuditFields
}

// PayrollBatchEvent is the payroll_batch_events table row.
type PayrollBatchEvent struct {
	EventID    string    `db:"event_id"`
	BatchID    string    `db:"batch_id"`
	FromStatus string    `db:"from_status"`
	ToStatus   string    `db:"to_status"`
	ActorID    string    `db:"actor_id"`
	Notes      *string   `db:"notes"`
	OccurredAt time.Time `db:"occurred_at"`
}
