package dto

import (
	"time"

	"github.com/SscSPs/backoffice_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreatePrepaymentRequest records an advance payment from a customer.
type CreatePrepaymentRequest struct {
	CustomerID int64                `json:"customerID" binding:"required,gt=0"`
	Amount     decimal.Decimal      `json:"amount" binding:"decimal_gt0,decimal_scale2" swaggertype:"string"`
	Date       time.Time            `json:"date" binding:"required"`
	Method     domain.PaymentMethod `json:"method" binding:"required,oneof=CASH BANK_TRANSFER CHEQUE POS TRANSFER"`
	Reference  string               `json:"reference"`
}

// ApplyPrepaymentRequest consumes part of a prepayment against an invoice.
type ApplyPrepaymentRequest struct {
	InvoiceID   int64           `json:"invoiceID" binding:"required,gt=0"`
	Amount      decimal.Decimal `json:"amount" binding:"decimal_gt0,decimal_scale2" swaggertype:"string"`
	Date        *time.Time      `json:"date"`
	Description string          `json:"description"`
}

// ReconcilePrepaymentsRequest limits reconciliation to one customer when CustomerID is set.
type ReconcilePrepaymentsRequest struct {
	CustomerID *int64 `json:"customerID" binding:"omitempty,gt=0"`
}

// ReconcilePrepaymentsResponse reports how many prepayments were corrected.
type ReconcilePrepaymentsResponse struct {
	Corrected int `json:"corrected"`
}

// BackfillPostingsResponse reports how many missing ledger postings were written.
type BackfillPostingsResponse struct {
	Posted int `json:"posted"`
	Failed int `json:"failed"`
}

// PrepaymentApplicationResponse defines the data returned for an application.
type PrepaymentApplicationResponse struct {
	ApplicationID  string          `json:"applicationID"`
	PrepaymentID   string          `json:"prepaymentID"`
	InvoiceID      int64           `json:"invoiceID"`
	AppliedAmount  decimal.Decimal `json:"appliedAmount" swaggertype:"string"`
	AppliedDate    time.Time       `json:"appliedDate"`
	Description    string          `json:"description"`
	ReversalOf     *string         `json:"reversalOf,omitempty"`
	JournalEntryID *string         `json:"journalEntryID,omitempty"`
}

// PrepaymentResponse defines the data returned for a prepayment.
type PrepaymentResponse struct {
	PrepaymentID   string                          `json:"prepaymentID"`
	Number         string                          `json:"number"`
	CustomerID     int64                           `json:"customerID"`
	Date           time.Time                       `json:"date"`
	Amount         decimal.Decimal                 `json:"amount" swaggertype:"string"`
	UsedAmount     decimal.Decimal                 `json:"usedAmount" swaggertype:"string"`
	Remaining      decimal.Decimal                 `json:"remaining" swaggertype:"string"`
	Status         domain.PrepaymentStatus         `json:"status"`
	Method         domain.PaymentMethod            `json:"method"`
	JournalEntryID *string                         `json:"journalEntryID,omitempty"`
	ReconciledAt   *time.Time                      `json:"reconciledAt,omitempty"`
	Applications   []PrepaymentApplicationResponse `json:"applications,omitempty"`
}

// WalletResponse is the reconciled wallet of a customer.
type WalletResponse struct {
	CustomerID  int64                `json:"customerID"`
	Balance     decimal.Decimal      `json:"balance" swaggertype:"string"`
	Prepayments []PrepaymentResponse `json:"prepayments"`
}

// ToPrepaymentApplicationResponse converts a domain.PrepaymentApplication to its DTO.
func ToPrepaymentApplicationResponse(a *domain.PrepaymentApplication) PrepaymentApplicationResponse {
	return PrepaymentApplicationResponse{
		ApplicationID:  a.ApplicationID,
		PrepaymentID:   a.PrepaymentID,
		InvoiceID:      a.InvoiceID,
		AppliedAmount:  a.AppliedAmount,
		AppliedDate:    a.AppliedDate,
		Description:    a.Description,
		ReversalOf:     a.ReversalOf,
		JournalEntryID: a.JournalEntryID,
	}
}

// ToPrepaymentResponse converts a domain.CustomerPrepayment to its DTO.
func ToPrepaymentResponse(p *domain.CustomerPrepayment) PrepaymentResponse {
	resp := PrepaymentResponse{
		PrepaymentID:   p.PrepaymentID,
		Number:         p.Number,
		CustomerID:     p.CustomerID,
		Date:           p.PrepaymentDate,
		Amount:         p.Amount,
		UsedAmount:     p.UsedAmount,
		Remaining:      p.Remaining(),
		Status:         p.Status,
		Method:         p.Method,
		JournalEntryID: p.JournalEntryID,
		ReconciledAt:   p.ReconciledAt,
	}
	for i := range p.Applications {
		resp.Applications = append(resp.Applications, ToPrepaymentApplicationResponse(&p.Applications[i]))
	}
	return resp
}

// ToWalletResponse converts a domain.Wallet to its DTO.
func ToWalletResponse(w *domain.Wallet) WalletResponse {
	resp := WalletResponse{CustomerID: w.CustomerID, Balance: w.Balance, Prepayments: make([]PrepaymentResponse, len(w.Prepayments))}
	for i := range w.Prepayments {
		resp.Prepayments[i] = ToPrepaymentResponse(&w.Prepayments[i])
	}
	return resp
}
