package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/SscSPs/backoffice_ledger/internal/apperrors"
	"github.com/SscSPs/backoffice_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/backoffice_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/backoffice_ledger/internal/core/ports/services"
	"github.com/SscSPs/backoffice_ledger/internal/dto"
)

// fiscalYearService governs accounting periods. Every transition takes the
// fiscal year advisory lock so the overlap check and the write are atomic.
type fiscalYearService struct {
	BaseService
	txManager portsrepo.TransactionManager
	repo      portsrepo.FiscalYearRepositoryFacade
}

// NewFiscalYearService creates the fiscal year manager. A nil clock means time.Now.
func NewFiscalYearService(txManager portsrepo.TransactionManager, repo portsrepo.FiscalYearRepositoryFacade, clock func() time.Time) portssvc.FiscalYearSvc {
	return &fiscalYearService{
		BaseService: BaseService{Clock: clock},
		txManager:   txManager,
		repo:        repo,
	}
}

var _ portssvc.FiscalYearSvc = (*fiscalYearService)(nil)

// inTx runs fn in a new transaction holding the fiscal year lock.
func (s *fiscalYearService) inTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = s.txManager.Rollback(ctx, tx) }()

	if err := s.repo.LockFiscalYearsInTx(ctx, tx); err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		return err
	}
	return s.txManager.Commit(ctx, tx)
}

func validateRange(start, end time.Time) (time.Time, time.Time, error) {
	start, end = domain.TruncateDate(start), domain.TruncateDate(end)
	if start.IsZero() || end.IsZero() {
		return start, end, fmt.Errorf("%w: fiscal year start and end dates are required", apperrors.ErrValidation)
	}
	if end.Before(start) {
		return start, end, ErrInvalidRange
	}
	return start, end, nil
}

func findOverlap(years []domain.FiscalYear, start, end time.Time, skipID string) *domain.FiscalYear {
	for i := range years {
		if years[i].FiscalYearID == skipID {
			continue
		}
		if years[i].Overlaps(start, end) {
			return &years[i]
		}
	}
	return nil
}

// mapFiscalYearSaveError turns constraint violations raised by storage into the
// fiscal year errors callers expect.
func mapFiscalYearSaveError(err error) error {
	switch {
	case errors.Is(err, apperrors.ErrDuplicate):
		return fmt.Errorf("%w: %s", ErrDuplicateFiscalYearCode, err.Error())
	case errors.Is(err, apperrors.ErrConflict):
		return ErrOverlappingRange
	default:
		return err
	}
}

func (s *fiscalYearService) Create(ctx context.Context, req dto.CreateFiscalYearRequest, userID string) (*domain.FiscalYear, error) {
	start, end, err := validateRange(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	code := strings.TrimSpace(req.Code)
	if code == "" {
		code = domain.DefaultFiscalYearCode(start, end)
	}

	fy := domain.FiscalYear{
		FiscalYearID: uuid.NewString(),
		Code:         code,
		StartDate:    start,
		EndDate:      end,
		AuditFields:  domain.NewAuditFields(userID, s.Now()),
	}

	err = s.inTx(ctx, func(tx pgx.Tx) error {
		years, err := s.repo.ListFiscalYearsInTx(ctx, tx)
		if err != nil {
			return err
		}
		if other := findOverlap(years, start, end, ""); other != nil {
			return fmt.Errorf("%w: %s", ErrOverlappingRange, other.Code)
		}
		// The first year ever created becomes current.
		fy.IsCurrent = len(years) == 0
		if err := s.repo.SaveFiscalYearInTx(ctx, tx, fy); err != nil {
			return mapFiscalYearSaveError(err)
		}
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to create fiscal year", slog.String("code", code))
		return nil, err
	}

	s.LogInfo(ctx, "Fiscal year created", slog.String("code", fy.Code), slog.Bool("is_current", fy.IsCurrent))
	return &fy, nil
}

func (s *fiscalYearService) SetCurrent(ctx context.Context, fiscalYearID string, userID string) (*domain.FiscalYear, error) {
	var fy *domain.FiscalYear
	err := s.inTx(ctx, func(tx pgx.Tx) error {
		var err error
		fy, err = s.repo.FindFiscalYearByIDForUpdate(ctx, tx, fiscalYearID)
		if err != nil {
			return err
		}
		if fy.IsClosed {
			return ErrCannotActivateClosedYear
		}
		if fy.IsCurrent {
			return nil
		}
		return s.repo.SetCurrentFiscalYearInTx(ctx, tx, fiscalYearID, userID, s.Now())
	})
	if err != nil {
		return nil, err
	}

	fy.IsCurrent = true
	s.LogInfo(ctx, "Fiscal year set current", slog.String("code", fy.Code), slog.String("user_id", userID))
	return fy, nil
}

func (s *fiscalYearService) Close(ctx context.Context, fiscalYearID string, userID string) (*domain.FiscalYear, error) {
	now := s.Now()
	var fy *domain.FiscalYear
	err := s.inTx(ctx, func(tx pgx.Tx) error {
		var err error
		fy, err = s.repo.FindFiscalYearByIDForUpdate(ctx, tx, fiscalYearID)
		if err != nil {
			return err
		}
		if fy.IsClosed {
			return ErrAlreadyClosed
		}
		return s.repo.CloseFiscalYearInTx(ctx, tx, fiscalYearID, userID, now)
	})
	if err != nil {
		return nil, err
	}

	fy.IsClosed, fy.IsCurrent, fy.ClosedAt = true, false, &now
	s.LogInfo(ctx, "Fiscal year closed", slog.String("code", fy.Code), slog.String("user_id", userID))
	return fy, nil
}

func (s *fiscalYearService) Edit(ctx context.Context, fiscalYearID string, req dto.EditFiscalYearRequest, userID string) (*domain.FiscalYear, error) {
	start, end, err := validateRange(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	var fy *domain.FiscalYear
	err = s.inTx(ctx, func(tx pgx.Tx) error {
		var err error
		fy, err = s.repo.FindFiscalYearByIDForUpdate(ctx, tx, fiscalYearID)
		if err != nil {
			return err
		}
		if fy.IsClosed {
			return ErrImmutableClosedYear
		}

		years, err := s.repo.ListFiscalYearsInTx(ctx, tx)
		if err != nil {
			return err
		}
		if other := findOverlap(years, start, end, fiscalYearID); other != nil {
			return fmt.Errorf("%w: %s", ErrOverlappingRange, other.Code)
		}

		fy.StartDate, fy.EndDate = start, end
		if code := strings.TrimSpace(req.Code); code != "" {
			fy.Code = code
		}
		fy.LastUpdatedAt, fy.LastUpdatedBy = s.Now(), userID
		if err := s.repo.UpdateFiscalYearRangeInTx(ctx, tx, *fy); err != nil {
			return mapFiscalYearSaveError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return fy, nil
}

func (s *fiscalYearService) List(ctx context.Context) ([]domain.FiscalYear, error) {
	return s.repo.ListFiscalYears(ctx)
}

func (s *fiscalYearService) GetCurrent(ctx context.Context) (*domain.FiscalYear, error) {
	return s.repo.FindCurrentFiscalYear(ctx)
}

func (s *fiscalYearService) EnsurePostingAllowedInTx(ctx context.Context, tx pgx.Tx, date time.Time) error {
	fy, err := s.repo.FindFiscalYearByDateInTx(ctx, tx, domain.TruncateDate(date))
	if err != nil {
		// Dates outside every defined year are not governed by any period.
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil
		}
		return err
	}
	if fy.IsClosed {
		return fmt.Errorf("%w: %s (%s)", ErrPostingPeriodClosed, fy.Code, date.Format(time.DateOnly))
	}
	return nil
}
