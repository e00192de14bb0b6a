package dto

import (
	"github.com/SscSPs/backoffice_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TrialBalanceRowResponse is one line of the trial balance.
type TrialBalanceRowResponse struct {
	AccountID string                 `json:"accountID"`
	Code      string                 `json:"code"`
	Name      string                 `json:"name"`
	Category  domain.AccountCategory `json:"category"`
	Debit     decimal.Decimal        `json:"debit" swaggertype:"string"`
	Credit    decimal.Decimal        `json:"credit" swaggertype:"string"`
}

// TrialBalanceResponse defines the data returned for the trial balance.
type TrialBalanceResponse struct {
	Rows        []TrialBalanceRowResponse `json:"rows"`
	TotalDebit  decimal.Decimal           `json:"totalDebit" swaggertype:"string"`
	TotalCredit decimal.Decimal           `json:"totalCredit" swaggertype:"string"`
	Balanced    bool                      `json:"balanced"`
}

// ToTrialBalanceResponse converts a domain.TrialBalance to its DTO.
func ToTrialBalanceResponse(tb *domain.TrialBalance) TrialBalanceResponse {
	resp := TrialBalanceResponse{
		Rows:        make([]TrialBalanceRowResponse, len(tb.Rows)),
		TotalDebit:  tb.TotalDebit,
		TotalCredit: tb.TotalCredit,
		Balanced:    tb.Balanced,
	}
	for i, r := range tb.Rows {
		resp.Rows[i] = TrialBalanceRowResponse{
			AccountID: r.AccountID,
			Code:      r.Code,
			Name:      r.Name,
			Category:  r.Category,
			Debit:     r.Debit,
			Credit:    r.Credit,
		}
	}
	return resp
}
