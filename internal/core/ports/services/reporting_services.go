package services

import (
	"context"
	"time"

	"github.com/SscSPs/backoffice_ledger/internal/core/domain"
)

// ReportingService defines read-only reports over the ledger
type ReportingService interface {
	// TrialBalance lists current account balances on their natural side.
	TrialBalance(ctx context.Context) (*domain.TrialBalance, error)

	// TrialBalanceAsOf rebuilds balances from opening balances and the lines of entries dated on or before asOf.
	TrialBalanceAsOf(ctx context.Context, asOf time.Time) (*domain.TrialBalance, error)
}
