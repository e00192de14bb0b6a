package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/backoffice_ledger/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// FiscalYearReader defines read operations for fiscal years
type FiscalYearReader interface {
	// ListFiscalYears retrieves every fiscal year ordered by start date.
	ListFiscalYears(ctx context.Context) ([]domain.FiscalYear, error)

	// FindFiscalYearByID retrieves one fiscal year.
	FindFiscalYearByID(ctx context.Context, fiscalYearID string) (*domain.FiscalYear, error)

	// FindCurrentFiscalYear retrieves the year flagged current.
	FindCurrentFiscalYear(ctx context.Context) (*domain.FiscalYear, error)

	// FindFiscalYearByDateInTx retrieves the year containing date, or apperrors.ErrNotFound.
	FindFiscalYearByDateInTx(ctx context.Context, tx pgx.Tx, date time.Time) (*domain.FiscalYear, error)
}

// FiscalYearWriter defines the state transitions, all within a caller's transaction
type FiscalYearWriter interface {
	// LockFiscalYearsInTx takes a transaction-scoped advisory lock serializing fiscal year writers.
	LockFiscalYearsInTx(ctx context.Context, tx pgx.Tx) error

	// ListFiscalYearsInTx reads every fiscal year through tx.
	ListFiscalYearsInTx(ctx context.Context, tx pgx.Tx) ([]domain.FiscalYear, error)

	// FindFiscalYearByIDForUpdate reads and locks one fiscal year.
	FindFiscalYearByIDForUpdate(ctx context.Context, tx pgx.Tx, fiscalYearID string) (*domain.FiscalYear, error)

	// SaveFiscalYearInTx persists a new fiscal year. An overlapping range rejected
	// by the storage constraint is reported as apperrors.ErrConflict.
	SaveFiscalYearInTx(ctx context.Context, tx pgx.Tx, fy domain.FiscalYear) error

	// UpdateFiscalYearRangeInTx stores a new code and date range.
	UpdateFiscalYearRangeInTx(ctx context.Context, tx pgx.Tx, fy domain.FiscalYear) error

	// SetCurrentFiscalYearInTx flags fiscalYearID current and every other year not current in one statement.
	SetCurrentFiscalYearInTx(ctx context.Context, tx pgx.Tx, fiscalYearID string, userID string, now time.Time) error

	// CloseFiscalYearInTx marks a year closed and not current.
	CloseFiscalYearInTx(ctx context.Context, tx pgx.Tx, fiscalYearID string, userID string, now time.Time) error
}

// FiscalYearRepositoryFacade combines all fiscal-year repository interfaces
type FiscalYearRepositoryFacade interface {
	FiscalYearReader
	FiscalYearWriter
}

// FiscalYearRepositoryWithTx extends FiscalYearRepositoryFacade with transaction capabilities
type FiscalYearRepositoryWithTx interface {
	FiscalYearRepositoryFacade
	TransactionManager
}
