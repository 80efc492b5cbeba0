package mapping

import (
	"github.com/shokoko2010/Elhamd-sub014/internal/core/domain"
	"github.com/shokoko2010/Elhamd-sub014/internal/models"
)

// ToModelPayrollBatch converts a domain batch to its row. RecordIDs live on the records.
func ToModelPayrollBatch(d domain.PayrollBatch) models.PayrollBatch {
	return models.PayrollBatch{
		BatchID:          d.BatchID,
		Period:           d.Period,
		Status:           string(d.Status),
		PaymentAccountID: d.PaymentAccountID,
		AccrualEntryID:   d.AccrualEntryID,
		PaymentEntryID:   d.PaymentEntryID,
		Notes:            d.Notes,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPayrollBatch converts a batch row plus its record IDs.
func ToDomainPayrollBatch(m models.PayrollBatch, recordIDs []string) domain.PayrollBatch {
	if recordIDs == nil {
		recordIDs = []string{}
	}
	return domain.PayrollBatch{
		BatchID:          m.BatchID,
		Period:           m.Period,
		Status:           domain.BatchStatus(m.Status),
		PaymentAccountID: m.PaymentAccountID,
		RecordIDs:        recordIDs,
		AccrualEntryID:   m.AccrualEntryID,
		PaymentEntryID:   m.PaymentEntryID,
		Notes:            m.Notes,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelPayrollRecord converts a domain record to its row.
func ToModelPayrollRecord(d domain.PayrollRecord) models.PayrollRecord {
	return models.PayrollRecord{
		RecordID:           d.RecordID,
		BatchID:            d.BatchID,
		EmployeeID:         d.EmployeeID,
		GrossPayCents:      int64(d.GrossPay),
		DeductionsCents:    int64(d.Deductions),
		NetPayCents:        int64(d.NetPay),
		ExpenseAccountID:   d.ExpenseAccountID,
		LiabilityAccountID: d.LiabilityAccountID,
		Status:             string(d.Status),
		PaidAt:             d.PaidAt,
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPayrollRecord converts a record row to the domain.
func ToDomainPayrollRecord(m models.PayrollRecord) domain.PayrollRecord {
	return domain.PayrollRecord{
		RecordID:           m.RecordID,
		BatchID:            m.BatchID,
		EmployeeID:         m.EmployeeID,
		GrossPay:           domain.Money(m.GrossPayCents),
		Deductions:         domain.Money(m.DeductionsCents),
		NetPay:             domain.Money(m.NetPayCents),
		ExpenseAccountID:   m.ExpenseAccountID,
		LiabilityAccountID: m.LiabilityAccountID,
		Status:             domain.RecordStatus(m.Status),
		PaidAt:             m.PaidAt,
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelPayrollBatchEvent converts a domain event to its row.
func ToModelPayrollBatchEvent(d domain.PayrollBatchEvent) models.PayrollBatchEvent {
	return models.PayrollBatchEvent{
		EventID:    d.EventID,
		BatchID:    d.BatchID,
		FromStatus: string(d.FromStatus),
		ToStatus:   string(d.ToStatus),
		ActorID:    d.ActorID,
		Notes:      d.Notes,
		OccurredAt: d.OccurredAt,
	}
}

// ToDomainPayrollBatchEvent converts an event row to the domain.
func ToDomainPayrollBatchEvent(m models.PayrollBatchEvent) domain.PayrollBatchEvent {
	return domain.PayrollBatchEvent{
		EventID:    m.EventID,
		BatchID:    m.BatchID,
		FromStatus: domain.BatchStatus(m.FromStatus),
		ToStatus:   domain.BatchStatus(m.ToStatus),
		ActorID:    m.ActorID,
		Notes:      m.Notes,
		OccurredAt: m.OccurredAt,
	}
}
