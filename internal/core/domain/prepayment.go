package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PrepaymentStatus is derived from the remaining balance of a prepayment.
type PrepaymentStatus string

const (
	PrepaymentActive    PrepaymentStatus = "ACTIVE"
	PrepaymentExhausted PrepaymentStatus = "EXHAUSTED"
)

// PaymentMethod selects which system account receives an inbound payment.
type PaymentMethod string

const (
	MethodCash     PaymentMethod = "CASH"
	MethodBank     PaymentMethod = "BANK_TRANSFER"
	MethodCheque   PaymentMethod = "CHEQUE"
	MethodPOS      PaymentMethod = "POS"
	MethodTransfer PaymentMethod = "TRANSFER"
)

// CustomerPrepayment is an advance payment held in a customer's wallet until
// applied to invoices. UsedAmount is a cache of the sum of its applications.
type CustomerPrepayment struct {
	PrepaymentID   string                  `json:"prepaymentID"`
	Number         string                  `json:"number"` // ADV/{YEAR}/{seq}
	CustomerID     int64                   `json:"customerID"`
	PrepaymentDate time.Time               `json:"prepaymentDate"`
	Amount         decimal.Decimal         `json:"amount"`
	UsedAmount     decimal.Decimal         `json:"usedAmount"`
	Status         PrepaymentStatus        `json:"status"`
	Method         PaymentMethod           `json:"method"`
	Reference      string                  `json:"reference"`
	JournalEntryID *string                 `json:"journalEntryID,omitempty"` // nil while the ledger posting is outstanding
	ReconciledAt   *time.Time              `json:"reconciledAt,omitempty"`
	Applications   []PrepaymentApplication `json:"applications,omitempty"`
	AuditFields
}

// Remaining returns the unused part of the prepayment.
func (p CustomerPrepayment) Remaining() decimal.Decimal {
	return p.Amount.Sub(p.UsedAmount)
}

// DeriveStatus returns Exhausted iff amount - used <= 0.
func (p CustomerPrepayment) DeriveStatus() PrepaymentStatus {
	if p.Remaining().LessThanOrEqual(decimal.Zero) {
		return PrepaymentExhausted
	}
	return PrepaymentActive
}

// PrepaymentApplication records part of a prepayment consumed by an invoice.
// Rows are append-only; a reversal is a new row with a negative amount.
type PrepaymentApplication struct {
	ApplicationID  string          `json:"applicationID"`
	PrepaymentID   string          `json:"prepaymentID"`
	InvoiceID      int64           `json:"invoiceID"`
	AppliedAmount  decimal.Decimal `json:"appliedAmount"`
	AppliedDate    time.Time       `json:"appliedDate"`
	Description    string          `json:"description"`
	ReversalOf     *string         `json:"reversalOf,omitempty"`
	JournalEntryID *string         `json:"journalEntryID,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
	CreatedBy      string          `json:"createdBy"`
}

// SumApplied totals the applied amounts, including negative compensating rows.
func SumApplied(apps []PrepaymentApplication) decimal.Decimal {
	total := decimal.Zero
	for _, a := range apps {
		total = total.Add(a.AppliedAmount)
	}
	return total
}

// Wallet is the reconciled view of a customer's prepayments.
type Wallet struct {
	CustomerID  int64                `json:"customerID"`
	Balance     decimal.Decimal      `json:"balance"`
	Prepayments []CustomerPrepayment `json:"prepayments"`
}
