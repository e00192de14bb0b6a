package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CustomerPrepayment is a row of the customer_prepayments table.
type CustomerPrepayment struct {
	PrepaymentID   string          `db:"prepayment_id"`
	Number         string          `db:"number"`
	CustomerID     int64           `db:"customer_id"`
	PrepaymentDate time.Time       `db:"prepayment_date"`
	Amount         decimal.Decimal `db:"amount"`
	UsedAmount     decimal.Decimal `db:"used_amount"`
	Status         string          `db:"status"`
	Method         string          `db:"method"`
	Reference      string          `db:"reference"`
	JournalEntryID *string         `db:"journal_entry_id"`
	ReconciledAt   *time.Time      `db:"reconciled_at"`
	AuditFields
}

// PrepaymentApplication is a row of the append-only prepayment_applications table.
type PrepaymentApplication struct {
	ApplicationID  string          `db:"application_id"`
	PrepaymentID   string          `db:"prepayment_id"`
	InvoiceID      int64           `db:"invoice_id"`
	AppliedAmount  decimal.Decimal `db:"applied_amount"`
	AppliedDate    time.Time       `db:"applied_date"`
	Description    string          `db:"description"`
	ReversalOf     *string         `db:"reversal_of"`
	JournalEntryID *string         `db:"journal_entry_id"`
	CreatedAt      time.Time       `db:"created_at"`
	CreatedBy      string          `db:"created_by"`
}
