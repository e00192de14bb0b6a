package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer is a row of the customers table.
type Customer struct {
	CustomerID         int64           `db:"customer_id"`
	Name               string          `db:"name"`
	CreditLimit        decimal.Decimal `db:"credit_limit"`
	OutstandingBalance decimal.Decimal `db:"outstanding_balance"`
	Status             string          `db:"status"`
	UpdatedAt          time.Time       `db:"updated_at"`
}

// Invoice is a row of the invoices table.
type Invoice struct {
	InvoiceID         int64           `db:"invoice_id"`
	Number            string          `db:"number"`
	CustomerID        int64           `db:"customer_id"`
	InvoiceDate       time.Time       `db:"invoice_date"`
	DueDate           time.Time       `db:"due_date"`
	SubTotal          decimal.Decimal `db:"sub_total"`
	VATAmount         decimal.Decimal `db:"vat_amount"`
	TotalAmount       decimal.Decimal `db:"total_amount"`
	PaidAmount        decimal.Decimal `db:"paid_amount"`
	PrepaymentApplied decimal.Decimal `db:"prepayment_applied"`
	Status            string          `db:"status"`
	JournalEntryID    *string         `db:"journal_entry_id"`
	AuditFields
}
