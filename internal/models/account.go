package models

import (
	"github.com/shopspring/decimal"
)

// Account is a row of the accounts table.
type Account struct {
	AccountID      string          `db:"account_id"`
	Code           string          `db:"code"`
	Name           string          `db:"name"`
	Category       string          `db:"category"`
	Subtype        string          `db:"subtype"`
	OpeningBalance decimal.Decimal `db:"opening_balance"`
	CurrentBalance decimal.Decimal `db:"current_balance"`
	IsActive       bool            `db:"is_active"`
	AuditFields
}
