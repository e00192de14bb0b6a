package services

import (
	"context"

	"github.com/SscSPs/backoffice_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreditSvc answers whether a prospective charge would exceed a customer's limit.
// It never mutates state and never blocks the caller's operation.
type CreditSvc interface {
	Evaluate(ctx context.Context, customerID int64, additional decimal.Decimal) (*domain.CreditEvaluation, error)
}
