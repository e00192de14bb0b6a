package mapping

import (
	"github.com/SscSPs/backoffice_ledger/internal/core/domain"
	"github.com/SscSPs/backoffice_ledger/internal/models"
)

// ToDomainCustomer converts a model Customer to a domain Customer
func ToDomainCustomer(m models.Customer) domain.Customer {
	return domain.Customer{
		CustomerID:         m.CustomerID,
		Name:               m.Name,
		CreditLimit:        m.CreditLimit,
		OutstandingBalance: m.OutstandingBalance,
		Status:             domain.CustomerStatus(m.Status),
		UpdatedAt:          m.UpdatedAt,
	}
}

// ToModelInvoice converts a domain Invoice to a model Invoice
func ToModelInvoice(d domain.Invoice) models.Invoice {
	return models.Invoice{
		InvoiceID:         d.InvoiceID,
		Number:            d.Number,
		CustomerID:        d.CustomerID,
		InvoiceDate:       d.InvoiceDate,
		DueDate:           d.DueDate,
		SubTotal:          d.SubTotal,
		VATAmount:         d.VATAmount,
		TotalAmount:       d.TotalAmount,
		PaidAmount:        d.PaidAmount,
		PrepaymentApplied: d.PrepaymentApplied,
		Status:            string(d.Status),
		JournalEntryID:    d.JournalEntryID,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainInvoice converts a model Invoice to a domain Invoice
func ToDomainInvoice(m models.Invoice) domain.Invoice {
	return domain.Invoice{
		InvoiceID:         m.InvoiceID,
		Number:            m.Number,
		CustomerID:        m.CustomerID,
		InvoiceDate:       m.InvoiceDate,
		DueDate:           m.DueDate,
		SubTotal:          m.SubTotal,
		VATAmount:         m.VATAmount,
		TotalAmount:       m.TotalAmount,
		PaidAmount:        m.PaidAmount,
		PrepaymentApplied: m.PrepaymentApplied,
		Status:            domain.InvoiceStatus(m.Status),
		JournalEntryID:    m.JournalEntryID,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}
