package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/backoffice_ledger/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// AccountReader defines read operations for the chart of accounts
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountByCode retrieves an account by its chart code.
	FindAccountByCode(ctx context.Context, code string) (*domain.Account, error)

	// FindAccountsByCodes retrieves the accounts that exist among codes, keyed by code.
	FindAccountsByCodes(ctx context.Context, codes []string) (map[string]domain.Account, error)

	// ListAccounts retrieves a page of accounts ordered by code.
	ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error)

	// ListAllAccounts retrieves the whole chart ordered by code.
	ListAllAccounts(ctx context.Context) ([]domain.Account, error)

	// ListAccountIDs returns the id of every account, active or not.
	ListAccountIDs(ctx context.Context) ([]string, error)
}

// AccountWriter defines write operations for the chart of accounts
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// DeactivateAccount marks an account as inactive. Accounts are never deleted.
	DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error
}

// AccountTransactionSupport defines account operations run inside a caller's transaction
type AccountTransactionSupport interface {
	// FindAccountsByCodesForUpdate selects accounts by code and locks them for the rest of tx.
	FindAccountsByCodesForUpdate(ctx context.Context, tx pgx.Tx, codes []string) (map[string]domain.Account, error)

	// FindAccountByIDForUpdate selects one account and locks it for the rest of tx.
	FindAccountByIDForUpdate(ctx context.Context, tx pgx.Tx, accountID string) (*domain.Account, error)

	// FindAccountByCodeInTx reads an account by code through tx without locking it.
	FindAccountByCodeInTx(ctx context.Context, tx pgx.Tx, code string) (*domain.Account, error)

	// SaveAccountInTx persists a new account within tx.
	SaveAccountInTx(ctx context.Context, tx pgx.Tx, account domain.Account) error

	// UpdateAccountProfileInTx refreshes the display name and active flag. The balance is untouched.
	UpdateAccountProfileInTx(ctx context.Context, tx pgx.Tx, accountID string, name string, active bool, userID string, now time.Time) error

	// UpdateCurrentBalanceInTx stores a recomputed balance.
	UpdateCurrentBalanceInTx(ctx context.Context, tx pgx.Tx, accountID string, balance decimal.Decimal, now time.Time) error
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountTransactionSupport
}

// AccountRepositoryWithTx extends AccountRepositoryFacade with transaction capabilities
type AccountRepositoryWithTx interface {
	AccountRepositoryFacade
	TransactionManager
}
