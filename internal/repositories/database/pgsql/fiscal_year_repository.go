package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/backoffice_ledger/internal/apperrors"
	"github.com/SscSPs/backoffice_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/backoffice_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/backoffice_ledger/internal/models"
	"github.com/SscSPs/backoffice_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// fiscalYearLockKey is the advisory lock shared by every fiscal year writer.
const fiscalYearLockKey int64 = 0x4c4544474552 // "LEDGER"

const fiscalYearColumns = `fiscal_year_id, code, start_date, end_date, is_current, is_closed, closed_at,
	created_at, created_by, last_updated_at, last_updated_by`

// PgxFiscalYearRepository implements the fiscal year repository
type PgxFiscalYearRepository struct {
	BaseRepository
}

func newPgxFiscalYearRepository(pool *pgxpool.Pool) portsrepo.FiscalYearRepositoryWithTx {
	return &PgxFiscalYearRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.FiscalYearRepositoryWithTx = (*PgxFiscalYearRepository)(nil)

func scanFiscalYear(row pgx.Row) (*domain.FiscalYear, error) {
	var m models.FiscalYear
	err := row.Scan(
		&m.FiscalYearID,
		&m.Code,
		&m.StartDate,
		&m.EndDate,
		&m.IsCurrent,
		&m.IsClosed,
		&m.ClosedAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	fy := mapping.ToDomainFiscalYear(m)
	return &fy, nil
}

func listFiscalYears(ctx context.Context, q querier) ([]domain.FiscalYear, error) {
	rows, err := q.Query(ctx, `SELECT `+fiscalYearColumns+` FROM fiscal_years ORDER BY start_date;`)
	if err != nil {
		return nil, fmt.Errorf("failed to list fiscal years: %w", err)
	}
	defer rows.Close()

	years := []domain.FiscalYear{}
	for rows.Next() {
		fy, err := scanFiscalYear(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan fiscal year row: %w", err)
		}
		years = append(years, *fy)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating fiscal year rows: %w", err)
	}
	return years, nil
}

func (r *PgxFiscalYearRepository) ListFiscalYears(ctx context.Context) ([]domain.FiscalYear, error) {
	return listFiscalYears(ctx, r.Pool)
}

func (r *PgxFiscalYearRepository) ListFiscalYearsInTx(ctx context.Context, tx pgx.Tx) ([]domain.FiscalYear, error) {
	return listFiscalYears(ctx, tx)
}

func (r *PgxFiscalYearRepository) FindFiscalYearByID(ctx context.Context, fiscalYearID string) (*domain.FiscalYear, error) {
	fy, err := scanFiscalYear(r.Pool.QueryRow(ctx, `SELECT `+fiscalYearColumns+` FROM fiscal_years WHERE fiscal_year_id = $1;`, fiscalYearID))
	if err != nil {
		return nil, mapReadError(err, "fiscal year "+fiscalYearID)
	}
	return fy, nil
}

func (r *PgxFiscalYearRepository) FindCurrentFiscalYear(ctx context.Context) (*domain.FiscalYear, error) {
	fy, err := scanFiscalYear(r.Pool.QueryRow(ctx, `SELECT `+fiscalYearColumns+` FROM fiscal_years WHERE is_current;`))
	if err != nil {
		return nil, mapReadError(err, "current fiscal year")
	}
	return fy, nil
}

// FindFiscalYearByDateInTx share-locks the year so a posting and a concurrent
// close of the same year serialize.
func (r *PgxFiscalYearRepository) FindFiscalYearByDateInTx(ctx context.Context, tx pgx.Tx, date time.Time) (*domain.FiscalYear, error) {
	fy, err := scanFiscalYear(tx.QueryRow(ctx, `
		SELECT `+fiscalYearColumns+` FROM fiscal_years
		WHERE $1::DATE BETWEEN start_date AND end_date
		FOR SHARE;
	`, date))
	if err != nil {
		return nil, mapReadError(err, "fiscal year containing "+date.Format(time.DateOnly))
	}
	return fy, nil
}

func (r *PgxFiscalYearRepository) LockFiscalYearsInTx(ctx context.Context, tx pgx.Tx) error {
	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1);`, fiscalYearLockKey); err != nil {
		return fmt.Errorf("failed to lock fiscal years: %w", err)
	}
	return nil
}

func (r *PgxFiscalYearRepository) FindFiscalYearByIDForUpdate(ctx context.Context, tx pgx.Tx, fiscalYearID string) (*domain.FiscalYear, error) {
	fy, err := scanFiscalYear(tx.QueryRow(ctx, `SELECT `+fiscalYearColumns+` FROM fiscal_years WHERE fiscal_year_id = $1 FOR UPDATE;`, fiscalYearID))
	if err != nil {
		return nil, mapReadError(err, "fiscal year "+fiscalYearID)
	}
	return fy, nil
}

func (r *PgxFiscalYearRepository) SaveFiscalYearInTx(ctx context.Context, tx pgx.Tx, fy domain.FiscalYear) error {
	m := mapping.ToModelFiscalYear(fy)
	_, err := tx.Exec(ctx, `
		INSERT INTO fiscal_years (`+fiscalYearColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`,
		m.FiscalYearID,
		m.Code,
		m.StartDate,
		m.EndDate,
		m.IsCurrent,
		m.IsClosed,
		m.ClosedAt,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return mapWriteError(err, "save fiscal year "+m.Code)
	}
	return nil
}

func (r *PgxFiscalYearRepository) UpdateFiscalYearRangeInTx(ctx context.Context, tx pgx.Tx, fy domain.FiscalYear) error {
	m := mapping.ToModelFiscalYear(fy)
	tag, err := tx.Exec(ctx, `
		UPDATE fiscal_years
		SET code = $2, start_date = $3, end_date = $4, last_updated_at = $5, last_updated_by = $6
		WHERE fiscal_year_id = $1;
	`, m.FiscalYearID, m.Code, m.StartDate, m.EndDate, m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		return mapWriteError(err, "update fiscal year "+m.Code)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: fiscal year %s", apperrors.ErrNotFound, m.FiscalYearID)
	}
	return nil
}

// SetCurrentFiscalYearInTx clears the current flag first and then sets it on
// the target. The unique index on is_current is checked row by row, so a single
// statement flipping both rows can fail depending on heap order. Callers hold
// the fiscal year advisory lock.
func (r *PgxFiscalYearRepository) SetCurrentFiscalYearInTx(ctx context.Context, tx pgx.Tx, fiscalYearID string, userID string, now time.Time) error {
	if _, err := tx.Exec(ctx, `
		UPDATE fiscal_years
		SET is_current = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE is_current AND fiscal_year_id <> $1;
	`, fiscalYearID, now, userID); err != nil {
		return mapWriteError(err, "clear current fiscal year")
	}

	tag, err := tx.Exec(ctx, `
		UPDATE fiscal_years
		SET is_current = TRUE, last_updated_at = $2, last_updated_by = $3
		WHERE fiscal_year_id = $1;
	`, fiscalYearID, now, userID)
	if err != nil {
		return mapWriteError(err, "set current fiscal year "+fiscalYearID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: fiscal year %s", apperrors.ErrNotFound, fiscalYearID)
	}
	return nil
}

func (r *PgxFiscalYearRepository) CloseFiscalYearInTx(ctx context.Context, tx pgx.Tx, fiscalYearID string, userID string, now time.Time) error {
	tag, err := tx.Exec(ctx, `
		UPDATE fiscal_years
		SET is_closed = TRUE, is_current = FALSE, closed_at = $2, last_updated_at = $2, last_updated_by = $3
		WHERE fiscal_year_id = $1;
	`, fiscalYearID, now, userID)
	if err != nil {
		return mapWriteError(err, "close fiscal year "+fiscalYearID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: fiscal year %s", apperrors.ErrNotFound, fiscalYearID)
	}
	return nil
}
