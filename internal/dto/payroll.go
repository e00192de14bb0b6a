package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PayrollRunRequest carries the totals of a payroll run computed elsewhere.
// Gross must equal net plus every deduction.
type PayrollRunRequest struct {
	Period          string          `json:"period" binding:"required"` // e.g. "2024-06"
	RunDate         time.Time       `json:"runDate" binding:"required"`
	Gross           decimal.Decimal `json:"gross" binding:"decimal_gt0,decimal_scale2" swaggertype:"string"`
	PAYE            decimal.Decimal `json:"paye" binding:"decimal_gte0,decimal_scale2" swaggertype:"string"`
	Pension         decimal.Decimal `json:"pension" binding:"decimal_gte0,decimal_scale2" swaggertype:"string"`
	NHIS            decimal.Decimal `json:"nhis" binding:"decimal_gte0,decimal_scale2" swaggertype:"string"`
	NHF             decimal.Decimal `json:"nhf" binding:"decimal_gte0,decimal_scale2" swaggertype:"string"`
	OtherDeductions decimal.Decimal `json:"otherDeductions" binding:"decimal_gte0,decimal_scale2" swaggertype:"string"`
	Net             decimal.Decimal `json:"net" binding:"decimal_gt0,decimal_scale2" swaggertype:"string"`
	Reference       string          `json:"reference"`
}

// TotalDeductions sums every statutory and other deduction.
func (r PayrollRunRequest) TotalDeductions() decimal.Decimal {
	return r.PAYE.Add(r.Pension).Add(r.NHIS).Add(r.NHF).Add(r.OtherDeductions)
}
