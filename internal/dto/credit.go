package dto

import (
	"github.com/SscSPs/backoffice_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// EvaluateCreditParams defines query parameters for a credit check.
type EvaluateCreditParams struct {
	Additional string `form:"additional"`
}

// CreditEvaluationResponse defines the data returned by a credit check.
type CreditEvaluationResponse struct {
	CustomerID           int64           `json:"customerID"`
	CreditLimit          decimal.Decimal `json:"creditLimit" swaggertype:"string"`
	OutstandingBalance   decimal.Decimal `json:"outstandingBalance" swaggertype:"string"`
	PrepaymentBalance    decimal.Decimal `json:"prepaymentBalance" swaggertype:"string"`
	EffectiveOutstanding decimal.Decimal `json:"effectiveOutstanding" swaggertype:"string"`
	ProjectedOutstanding decimal.Decimal `json:"projectedOutstanding" swaggertype:"string"`
	AvailableCredit      decimal.Decimal `json:"availableCredit" swaggertype:"string"`
	ExceedsLimit         bool            `json:"exceedsLimit"`
}

// ToCreditEvaluationResponse converts a domain.CreditEvaluation to its DTO.
func ToCreditEvaluationResponse(e *domain.CreditEvaluation) CreditEvaluationResponse {
	return CreditEvaluationResponse{
		CustomerID:           e.CustomerID,
		CreditLimit:          e.CreditLimit,
		OutstandingBalance:   e.OutstandingBalance,
		PrepaymentBalance:    e.PrepaymentBalance,
		EffectiveOutstanding: e.EffectiveOutstanding,
		ProjectedOutstanding: e.ProjectedOutstanding,
		AvailableCredit:      e.AvailableCredit,
		ExceedsLimit:         e.ExceedsLimit,
	}
}
