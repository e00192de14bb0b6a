package services

import (
	"context"

	"github.com/SscSPs/backoffice_ledger/internal/core/domain"
	"github.com/SscSPs/backoffice_ledger/internal/dto"
	"github.com/jackc/pgx/v5"
)

// AccountReaderSvc defines read operations for the chart of accounts
type AccountReaderSvc interface {
	// GetAccountByID retrieves a specific account by its unique identifier.
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// GetAccountByCode retrieves an account by its chart code.
	GetAccountByCode(ctx context.Context, code string) (*domain.Account, error)

	// ListAccounts retrieves a page of the chart ordered by code.
	ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error)
}

// AccountWriterSvc defines write operations for the chart of accounts
type AccountWriterSvc interface {
	// CreateAccount adds an account to the chart. Its current balance starts at the opening balance.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID string) (*domain.Account, error)

	// DeactivateAccount marks an account as inactive. Accounts are never deleted.
	DeactivateAccount(ctx context.Context, code string, userID string) error

	// EnsureCustomerPrepaymentAccount returns the per-customer prepayment liability
	// account inside tx, creating it on first use. An existing account only has its
	// name and active flag refreshed.
	EnsureCustomerPrepaymentAccount(ctx context.Context, tx pgx.Tx, customer domain.Customer) (*domain.Account, error)
}

// SystemAccountSvc manages the well-known accounts the ledger posts to on its own.
type SystemAccountSvc interface {
	// SeedSystemAccounts creates any missing system account. Existing accounts are left alone.
	SeedSystemAccounts(ctx context.Context) (int, error)

	// ValidateSystemAccounts fails when a configured system account is missing or inactive.
	ValidateSystemAccounts(ctx context.Context) error
}

// AccountSvcFacade combines all account-related service interfaces
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
	SystemAccountSvc
}
