package services

import (
	"context"
	"time"

	"github.com/SscSPs/backoffice_ledger/internal/core/domain"
	"github.com/SscSPs/backoffice_ledger/internal/dto"
	"github.com/jackc/pgx/v5"
)

// FiscalYearSvc governs accounting periods: Open -> Current -> Closed (terminal).
type FiscalYearSvc interface {
	Create(ctx context.Context, req dto.CreateFiscalYearRequest, userID string) (*domain.FiscalYear, error)
	SetCurrent(ctx context.Context, fiscalYearID string, userID string) (*domain.FiscalYear, error)
	Close(ctx context.Context, fiscalYearID string, userID string) (*domain.FiscalYear, error)
	Edit(ctx context.Context, fiscalYearID string, req dto.EditFiscalYearRequest, userID string) (*domain.FiscalYear, error)
	List(ctx context.Context) ([]domain.FiscalYear, error)
	GetCurrent(ctx context.Context) (*domain.FiscalYear, error)

	// EnsurePostingAllowedInTx rejects a posting date that falls in a closed year.
	EnsurePostingAllowedInTx(ctx context.Context, tx pgx.Tx, date time.Time) error
}
