package dto

import (
	"time"

	"github.com/SscSPs/backoffice_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the data needed to add an account to the chart.
type CreateAccountRequest struct {
	Code           string                 `json:"code" binding:"required,max=32"`
	Name           string                 `json:"name" binding:"required"`
	Category       domain.AccountCategory `json:"category" binding:"required,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
	Subtype        string                 `json:"subtype"`
	OpeningBalance decimal.Decimal        `json:"openingBalance" swaggertype:"string"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID      string                 `json:"accountID"`
	Code           string                 `json:"code"`
	Name           string                 `json:"name"`
	Category       domain.AccountCategory `json:"category"`
	Subtype        string                 `json:"subtype"`
	OpeningBalance decimal.Decimal        `json:"openingBalance" swaggertype:"string"`
	CurrentBalance decimal.Decimal        `json:"currentBalance" swaggertype:"string"`
	IsActive       bool                   `json:"isActive"`
	CreatedAt      time.Time              `json:"createdAt"`
	CreatedBy      string                 `json:"createdBy"`
	LastUpdatedAt  time.Time              `json:"lastUpdatedAt"`
	LastUpdatedBy  string                 `json:"lastUpdatedBy"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:      acc.AccountID,
		Code:           acc.Code,
		Name:           acc.Name,
		Category:       acc.Category,
		Subtype:        acc.Subtype,
		OpeningBalance: acc.OpeningBalance,
		CurrentBalance: acc.CurrentBalance,
		IsActive:       acc.IsActive,
		CreatedAt:      acc.CreatedAt,
		CreatedBy:      acc.CreatedBy,
		LastUpdatedAt:  acc.LastUpdatedAt,
		LastUpdatedBy:  acc.LastUpdatedBy,
	}
}

// ToListAccountResponse converts a slice of domain.Account to a slice of AccountResponse DTOs
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i, acc := range accounts {
		res[i] = ToAccountResponse(&acc)
	}
	return res
}

// AccountBalanceResponse is returned by a balance recomputation.
type AccountBalanceResponse struct {
	AccountID string          `json:"accountID"`
	Code      string          `json:"code"`
	Balance   decimal.Decimal `json:"balance" swaggertype:"string"`
}

// RecomputeAllResponse reports a full balance backfill.
type RecomputeAllResponse struct {
	Recomputed int `json:"recomputed"`
}

// ListAccountsParams defines query parameters for listing accounts.
type ListAccountsParams struct {
	Limit  int `form:"limit,default=50" binding:"min=1,max=500"`
	Offset int `form:"offset,default=0" binding:"min=0"`
}
