package services

import (
	"context"

	"github.com/SscSPs/backoffice_ledger/internal/core/domain"
	"github.com/SscSPs/backoffice_ledger/internal/dto"
	"github.com/shopspring/decimal"
)

// PrepaymentWalletSvc manages customer advance payments.
type PrepaymentWalletSvc interface {
	CreatePrepayment(ctx context.Context, req dto.CreatePrepaymentRequest, userID string) (*domain.CustomerPrepayment, error)
	ApplyPrepayment(ctx context.Context, prepaymentID string, req dto.ApplyPrepaymentRequest, userID string) (*domain.PrepaymentApplication, error)

	// ReverseApplication appends a compensating negative application; the original row is never edited.
	ReverseApplication(ctx context.Context, applicationID string, userID string) (*domain.PrepaymentApplication, error)

	// GetPrepayment reconciles the owning customer's wallet, then reads the prepayment.
	GetPrepayment(ctx context.Context, prepaymentID string) (*domain.CustomerPrepayment, error)

	// GetWallet reconciles, then returns every prepayment of the customer with the unused balance.
	GetWallet(ctx context.Context, customerID int64) (*domain.Wallet, error)
}

// PrepaymentReconcilerSvc keeps the cached used amounts honest.
type PrepaymentReconcilerSvc interface {
	// ReconcilePrepayments recomputes used amounts from applications for one customer
	// (or all when customerID is nil) and returns how many were corrected.
	ReconcilePrepayments(ctx context.Context, customerID *int64) (int, error)

	// BackfillPrepaymentPostings posts the ledger entry of every prepayment still missing one.
	BackfillPrepaymentPostings(ctx context.Context) (posted int, failed int, err error)

	// PrepaymentBalance reads the unused balance over active prepayments without reconciling.
	PrepaymentBalance(ctx context.Context, customerID int64) (decimal.Decimal, error)
}

// PrepaymentSvcFacade combines all prepayment-related service interfaces
type PrepaymentSvcFacade interface {
	PrepaymentWalletSvc
	PrepaymentReconcilerSvc
}
