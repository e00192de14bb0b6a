package services

import (
	"context"

	"github.com/SscSPs/backoffice_ledger/internal/core/domain"
	"github.com/SscSPs/backoffice_ledger/internal/dto"
)

// InvoiceSvc is the invoicing flow's entry into the ledger.
type InvoiceSvc interface {
	// CreateInvoice charges the customer and posts the sale. The credit evaluation is advisory.
	CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest, userID string) (*domain.Invoice, *domain.CreditEvaluation, error)
	RecordPayment(ctx context.Context, invoiceID int64, req dto.RecordPaymentRequest, userID string) (*domain.Invoice, error)
	CancelInvoice(ctx context.Context, invoiceID int64, userID string) (*domain.Invoice, error)
	GetInvoice(ctx context.Context, invoiceID int64) (*domain.Invoice, error)
}

// PayrollSvc posts the ledger effect of a payroll run computed elsewhere.
type PayrollSvc interface {
	PostPayrollRun(ctx context.Context, req dto.PayrollRunRequest, userID string) (*domain.JournalEntry, error)
}
