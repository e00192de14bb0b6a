package domain

import "github.com/shopspring/decimal"

// CreditEvaluation is the result of checking a prospective charge against a
// customer's credit limit, net of unused prepayments. It is advisory only.
type CreditEvaluation struct {
	CustomerID           int64           `json:"customerID"`
	CreditLimit          decimal.Decimal `json:"creditLimit"`
	OutstandingBalance   decimal.Decimal `json:"outstandingBalance"`
	PrepaymentBalance    decimal.Decimal `json:"prepaymentBalance"`
	EffectiveOutstanding decimal.Decimal `json:"effectiveOutstanding"`
	ProjectedOutstanding decimal.Decimal `json:"projectedOutstanding"`
	AvailableCredit      decimal.Decimal `json:"availableCredit"`
	ExceedsLimit         bool            `json:"exceedsLimit"`
}

// PrepaymentBalance sums amount - used over the active prepayments.
func PrepaymentBalance(prepayments []CustomerPrepayment) decimal.Decimal {
	total := decimal.Zero
	for _, p := range prepayments {
		if p.Status != PrepaymentActive {
			continue
		}
		total = total.Add(p.Remaining())
	}
	return total
}

// EvaluateCredit computes the exposure of a customer for an additional charge.
func EvaluateCredit(customer Customer, prepaymentBalance, additional decimal.Decimal) CreditEvaluation {
	effective := decimal.Max(decimal.Zero, customer.OutstandingBalance.Sub(prepaymentBalance))
	projected := effective.Add(additional)
	return CreditEvaluation{
		CustomerID:           customer.CustomerID,
		CreditLimit:          customer.CreditLimit,
		OutstandingBalance:   customer.OutstandingBalance,
		PrepaymentBalance:    prepaymentBalance,
		EffectiveOutstanding: effective,
		ProjectedOutstanding: projected,
		AvailableCredit:      decimal.Max(decimal.Zero, customer.CreditLimit.Sub(effective)),
		ExceedsLimit:         projected.GreaterThan(customer.CreditLimit),
	}
}
