package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/backoffice_ledger/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// PrepaymentUsage pairs the cached used amount of a prepayment with the
// actual total of its applications.
type PrepaymentUsage struct {
	PrepaymentID string
	CustomerID   int64
	Amount       decimal.Decimal
	UsedAmount   decimal.Decimal
	Status       domain.PrepaymentStatus
	AppliedTotal decimal.Decimal
}

// PrepaymentReader defines read operations for customer prepayments
type PrepaymentReader interface {
	// FindPrepaymentByID retrieves a prepayment with its applications.
	FindPrepaymentByID(ctx context.Context, prepaymentID string) (*domain.CustomerPrepayment, error)

	// ListPrepaymentsByCustomer retrieves every prepayment of a customer, oldest first, without applications.
	ListPrepaymentsByCustomer(ctx context.Context, customerID int64) ([]domain.CustomerPrepayment, error)

	// ListUnpostedPrepayments retrieves prepayments whose ledger posting is still missing.
	ListUnpostedPrepayments(ctx context.Context, limit int) ([]domain.CustomerPrepayment, error)
}

// PrepaymentWriter defines write operations, all within a caller's transaction
type PrepaymentWriter interface {
	// SavePrepaymentInTx persists a new prepayment.
	SavePrepaymentInTx(ctx context.Context, tx pgx.Tx, prepayment domain.CustomerPrepayment) error

	// FindPrepaymentByIDForUpdate reads and locks a prepayment.
	FindPrepaymentByIDForUpdate(ctx context.Context, tx pgx.Tx, prepaymentID string) (*domain.CustomerPrepayment, error)

	// UpdatePrepaymentUsageInTx stores the used amount and status.
	UpdatePrepaymentUsageInTx(ctx context.Context, tx pgx.Tx, prepaymentID string, used decimal.Decimal, status domain.PrepaymentStatus, userID string, now time.Time) error

	// MarkPrepaymentReconciledInTx stores a corrected used amount and status and stamps the correction time.
	MarkPrepaymentReconciledInTx(ctx context.Context, tx pgx.Tx, prepaymentID string, used decimal.Decimal, status domain.PrepaymentStatus, reconciledAt time.Time) error

	// SetPrepaymentJournalEntryInTx links the prepayment to its ledger posting.
	SetPrepaymentJournalEntryInTx(ctx context.Context, tx pgx.Tx, prepaymentID string, entryID string) error

	// ListPrepaymentUsageForUpdate locks the prepayments of one customer (or all when
	// customerID is nil) and returns them with the actual total of their applications.
	ListPrepaymentUsageForUpdate(ctx context.Context, tx pgx.Tx, customerID *int64) ([]PrepaymentUsage, error)
}

// PrepaymentApplicationStore is the append-only log of applications.
type PrepaymentApplicationStore interface {
	// SaveApplicationInTx appends an application row.
	SaveApplicationInTx(ctx context.Context, tx pgx.Tx, app domain.PrepaymentApplication) error

	// FindApplicationByIDInTx reads one application.
	FindApplicationByIDInTx(ctx context.Context, tx pgx.Tx, applicationID string) (*domain.PrepaymentApplication, error)

	// SumApplicationsInTx totals the applications of a prepayment, compensating rows included.
	SumApplicationsInTx(ctx context.Context, tx pgx.Tx, prepaymentID string) (decimal.Decimal, error)

	// ListApplications retrieves the applications of a prepayment in the order they were made.
	ListApplications(ctx context.Context, prepaymentID string) ([]domain.PrepaymentApplication, error)
}

// PrepaymentRepositoryFacade combines all prepayment-related repository interfaces
type PrepaymentRepositoryFacade interface {
	PrepaymentReader
	PrepaymentWriter
	PrepaymentApplicationStore
}

// PrepaymentRepositoryWithTx extends PrepaymentRepositoryFacade with transaction capabilities
type PrepaymentRepositoryWithTx interface {
	PrepaymentRepositoryFacade
	TransactionManager
}
