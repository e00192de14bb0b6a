package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/backoffice_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AccountTotals is an account with the debits and credits posted to it up to a date.
type AccountTotals struct {
	Account     domain.Account
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
}

// ReportingRepository defines operations for retrieving financial report data
type ReportingRepository interface {
	// ListAccountTotalsAsOf totals the lines of every account over entries dated on or before asOf.
	ListAccountTotalsAsOf(ctx context.Context, asOf time.Time) ([]AccountTotals, error)
}
