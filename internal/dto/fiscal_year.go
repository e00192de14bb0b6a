package dto

import (
	"time"

	"github.com/SscSPs/backoffice_ledger/internal/core/domain"
)

// CreateFiscalYearRequest defines a new fiscal year. Code defaults to FY{start year}.
type CreateFiscalYearRequest struct {
	Code      string    `json:"code" binding:"omitempty,max=16"`
	StartDate time.Time `json:"startDate" binding:"required"`
	EndDate   time.Time `json:"endDate" binding:"required"`
}

// EditFiscalYearRequest changes the range (and optionally the code) of an open year.
type EditFiscalYearRequest struct {
	Code      string    `json:"code" binding:"omitempty,max=16"`
	StartDate time.Time `json:"startDate" binding:"required"`
	EndDate   time.Time `json:"endDate" binding:"required"`
}

// FiscalYearResponse defines the data returned for a fiscal year.
type FiscalYearResponse struct {
	FiscalYearID string     `json:"fiscalYearID"`
	Code         string     `json:"code"`
	StartDate    time.Time  `json:"startDate"`
	EndDate      time.Time  `json:"endDate"`
	IsCurrent    bool       `json:"isCurrent"`
	IsClosed     bool       `json:"isClosed"`
	ClosedAt     *time.Time `json:"closedAt,omitempty"`
}

// ToFiscalYearResponse converts a domain.FiscalYear to its DTO.
func ToFiscalYearResponse(fy *domain.FiscalYear) FiscalYearResponse {
	return FiscalYearResponse{
		FiscalYearID: fy.FiscalYearID,
		Code:         fy.Code,
		StartDate:    fy.StartDate,
		EndDate:      fy.EndDate,
		IsCurrent:    fy.IsCurrent,
		IsClosed:     fy.IsClosed,
		ClosedAt:     fy.ClosedAt,
	}
}

// ToListFiscalYearResponse converts a slice of domain.FiscalYear to DTOs.
func ToListFiscalYearResponse(years []domain.FiscalYear) []FiscalYearResponse {
	res := make([]FiscalYearResponse, len(years))
	for i := range years {
		res[i] = ToFiscalYearResponse(&years[i])
	}
	return res
}
