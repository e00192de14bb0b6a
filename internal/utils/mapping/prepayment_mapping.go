package mapping

import (
	"github.com/SscSPs/backoffice_ledger/internal/core/domain"
	"github.com/SscSPs/backoffice_ledger/internal/models"
)

// ToModelPrepayment converts a domain CustomerPrepayment to a model CustomerPrepayment
func ToModelPrepayment(d domain.CustomerPrepayment) models.CustomerPrepayment {
	return models.CustomerPrepayment{
		PrepaymentID:   d.PrepaymentID,
		Number:         d.Number,
		CustomerID:     d.CustomerID,
		PrepaymentDate: d.PrepaymentDate,
		Amount:         d.Amount,
		UsedAmount:     d.UsedAmount,
		Status:         string(d.Status),
		Method:         string(d.Method),
		Reference:      d.Reference,
		JournalEntryID: d.JournalEntryID,
		ReconciledAt:   d.ReconciledAt,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPrepayment converts a model CustomerPrepayment to a domain CustomerPrepayment
func ToDomainPrepayment(m models.CustomerPrepayment) domain.CustomerPrepayment {
	return domain.CustomerPrepayment{
		PrepaymentID:   m.PrepaymentID,
		Number:         m.Number,
		CustomerID:     m.CustomerID,
		PrepaymentDate: m.PrepaymentDate,
		Amount:         m.Amount,
		UsedAmount:     m.UsedAmount,
		Status:         domain.PrepaymentStatus(m.Status),
		Method:         domain.PaymentMethod(m.Method),
		Reference:      m.Reference,
		JournalEntryID: m.JournalEntryID,
		ReconciledAt:   m.ReconciledAt,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainPrepaymentSlice converts a slice of model prepayments to domain prepayments
func ToDomainPrepaymentSlice(ms []models.CustomerPrepayment) []domain.CustomerPrepayment {
	ds := make([]domain.CustomerPrepayment, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainPrepayment(m)
	}
	return ds
}

// ToModelApplication converts a domain PrepaymentApplication to a model PrepaymentApplication
func ToModelApplication(d domain.PrepaymentApplication) models.PrepaymentApplication {
	return models.PrepaymentApplication{
		ApplicationID:  d.ApplicationID,
		PrepaymentID:   d.PrepaymentID,
		InvoiceID:      d.InvoiceID,
		AppliedAmount:  d.AppliedAmount,
		AppliedDate:    d.AppliedDate,
		Description:    d.Description,
		ReversalOf:     d.ReversalOf,
		JournalEntryID: d.JournalEntryID,
		CreatedAt:      d.CreatedAt,
		CreatedBy:      d.CreatedBy,
	}
}

// ToDomainApplication converts a model PrepaymentApplication to a domain PrepaymentApplication
func ToDomainApplication(m models.PrepaymentApplication) domain.PrepaymentApplication {
	return domain.PrepaymentApplication{
		ApplicationID:  m.ApplicationID,
		PrepaymentID:   m.PrepaymentID,
		InvoiceID:      m.InvoiceID,
		AppliedAmount:  m.AppliedAmount,
		AppliedDate:    m.AppliedDate,
		Description:    m.Description,
		ReversalOf:     m.ReversalOf,
		JournalEntryID: m.JournalEntryID,
		CreatedAt:      m.CreatedAt,
		CreatedBy:      m.CreatedBy,
	}
}
