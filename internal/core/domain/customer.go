package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CustomerStatus mirrors the status kept by the customer master data.
type CustomerStatus string

const (
	CustomerActive   CustomerStatus = "ACTIVE"
	CustomerInactive CustomerStatus = "INACTIVE"
)

// Customer is the ledger's view of a customer record owned by the CRM side.
// OutstandingBalance is a running total maintained by every charge and credit.
type Customer struct {
	CustomerID         int64           `json:"customerID"`
	Name               string          `json:"name"`
	CreditLimit        decimal.Decimal `json:"creditLimit"`
	OutstandingBalance decimal.Decimal `json:"outstandingBalance"`
	Status             CustomerStatus  `json:"status"`
	UpdatedAt          time.Time       `json:"updatedAt"`
}

// IsActive reports whether the customer is active.
func (c Customer) IsActive() bool {
	return c.Status == CustomerActive
}

// AvailableCredit returns max(0, credit limit - outstanding balance).
func (c Customer) AvailableCredit() decimal.Decimal {
	return decimal.Max(decimal.Zero, c.CreditLimit.Sub(c.OutstandingBalance))
}
