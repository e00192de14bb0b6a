package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus is derived from the settled amount, except for Cancelled.
type InvoiceStatus string

const (
	InvoiceUnpaid    InvoiceStatus = "UNPAID"
	InvoicePartial   InvoiceStatus = "PARTIAL"
	InvoicePaid      InvoiceStatus = "PAID"
	InvoiceOverdue   InvoiceStatus = "OVERDUE"
	InvoiceCancelled InvoiceStatus = "CANCELLED"
)

// Invoice is a customer charge. PaidAmount + PrepaymentApplied never exceeds TotalAmount.
type Invoice struct {
	InvoiceID         int64           `json:"invoiceID"`
	Number            string          `json:"number"`
	CustomerID        int64           `json:"customerID"`
	InvoiceDate       time.Time       `json:"invoiceDate"`
	DueDate           time.Time       `json:"dueDate"`
	SubTotal          decimal.Decimal `json:"subTotal"`
	VATAmount         decimal.Decimal `json:"vatAmount"`
	TotalAmount       decimal.Decimal `json:"totalAmount"`
	PaidAmount        decimal.Decimal `json:"paidAmount"`
	PrepaymentApplied decimal.Decimal `json:"prepaymentApplied"`
	Status            InvoiceStatus   `json:"status"`
	JournalEntryID    *string         `json:"journalEntryID,omitempty"`
	AuditFields
}

// Settled returns paid plus prepayment applied.
func (i Invoice) Settled() decimal.Decimal {
	return i.PaidAmount.Add(i.PrepaymentApplied)
}

// Remaining returns what is still owed on the invoice.
func (i Invoice) Remaining() decimal.Decimal {
	return i.TotalAmount.Sub(i.Settled())
}

// DeriveStatus computes the status from the settlement at the given instant.
// A cancelled invoice stays cancelled.
func (i Invoice) DeriveStatus(now time.Time) InvoiceStatus {
	if i.Status == InvoiceCancelled {
		return InvoiceCancelled
	}
	settled := i.Settled()
	switch {
	case settled.GreaterThanOrEqual(i.TotalAmount):
		return InvoicePaid
	case settled.IsPositive():
		return InvoicePartial
	case !i.DueDate.IsZero() && now.After(i.DueDate):
		return InvoiceOverdue
	default:
		return InvoiceUnpaid
	}
}
