package dto

import (
	"time"

	"github.com/SscSPs/backoffice_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateInvoiceRequest raises a charge against a customer.
type CreateInvoiceRequest struct {
	CustomerID  int64           `json:"customerID" binding:"required,gt=0"`
	InvoiceDate time.Time       `json:"invoiceDate" binding:"required"`
	DueDate     time.Time       `json:"dueDate" binding:"required"`
	SubTotal    decimal.Decimal `json:"subTotal" binding:"decimal_gt0,decimal_scale2" swaggertype:"string"`
	VATAmount   decimal.Decimal `json:"vatAmount" binding:"decimal_gte0,decimal_scale2" swaggertype:"string"`
}

// RecordPaymentRequest records a customer payment against an invoice.
type RecordPaymentRequest struct {
	Amount    decimal.Decimal      `json:"amount" binding:"decimal_gt0,decimal_scale2" swaggertype:"string"`
	Method    domain.PaymentMethod `json:"method" binding:"required,oneof=CASH BANK_TRANSFER CHEQUE POS TRANSFER"`
	Date      time.Time            `json:"date" binding:"required"`
	Reference string               `json:"reference"`
}

// InvoiceResponse defines the data returned for an invoice.
type InvoiceResponse struct {
	InvoiceID         int64                `json:"invoiceID"`
	Number            string               `json:"number"`
	CustomerID        int64                `json:"customerID"`
	InvoiceDate       time.Time            `json:"invoiceDate"`
	DueDate           time.Time            `json:"dueDate"`
	SubTotal          decimal.Decimal      `json:"subTotal" swaggertype:"string"`
	VATAmount         decimal.Decimal      `json:"vatAmount" swaggertype:"string"`
	TotalAmount       decimal.Decimal      `json:"totalAmount" swaggertype:"string"`
	PaidAmount        decimal.Decimal      `json:"paidAmount" swaggertype:"string"`
	PrepaymentApplied decimal.Decimal      `json:"prepaymentApplied" swaggertype:"string"`
	Remaining         decimal.Decimal      `json:"remaining" swaggertype:"string"`
	Status            domain.InvoiceStatus `json:"status"`
	JournalEntryID    *string              `json:"journalEntryID,omitempty"`
}

// CreateInvoiceResponse returns the invoice together with the advisory credit check.
type CreateInvoiceResponse struct {
	Invoice InvoiceResponse           `json:"invoice"`
	Credit  *CreditEvaluationResponse `json:"credit,omitempty"`
}

// ToInvoiceResponse converts a domain.Invoice to its DTO.
func ToInvoiceResponse(i *domain.Invoice) InvoiceResponse {
	return InvoiceResponse{
		InvoiceID:         i.InvoiceID,
		Number:            i.Number,
		CustomerID:        i.CustomerID,
		InvoiceDate:       i.InvoiceDate,
		DueDate:           i.DueDate,
		SubTotal:          i.SubTotal,
		VATAmount:         i.VATAmount,
		TotalAmount:       i.TotalAmount,
		PaidAmount:        i.PaidAmount,
		PrepaymentApplied: i.PrepaymentApplied,
		Remaining:         i.Remaining(),
		Status:            i.Status,
		JournalEntryID:    i.JournalEntryID,
	}
}
