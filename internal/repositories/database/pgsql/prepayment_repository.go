package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/backoffice_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/backoffice_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/backoffice_ledger/internal/models"
	"github.com/SscSPs/backoffice_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const prepaymentColumns = `prepayment_id, number, customer_id, prepayment_date, amount, used_amount, status, method,
	reference, journal_entry_id, reconciled_at, created_at, created_by, last_updated_at, last_updated_by`

const applicationColumns = `application_id, prepayment_id, invoice_id, applied_amount, applied_date, description,
	reversal_of, journal_entry_id, created_at, created_by`

// PgxPrepaymentRepository stores customer prepayments and their append-only application log.
type PgxPrepaymentRepository struct {
	BaseRepository
}

func newPgxPrepaymentRepository(pool *pgxpool.Pool) portsrepo.PrepaymentRepositoryWithTx {
	return &PgxPrepaymentRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.PrepaymentRepositoryWithTx = (*PgxPrepaymentRepository)(nil)

func scanPrepayment(row pgx.Row) (domain.CustomerPrepayment, error) {
	var m models.CustomerPrepayment
	err := row.Scan(
		&m.PrepaymentID,
		&m.Number,
		&m.CustomerID,
		&m.PrepaymentDate,
		&m.Amount,
		&m.UsedAmount,
		&m.Status,
		&m.Method,
		&m.Reference,
		&m.JournalEntryID,
		&m.ReconciledAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return domain.CustomerPrepayment{}, err
	}
	return mapping.ToDomainPrepayment(m), nil
}

func collectPrepayments(rows pgx.Rows) ([]domain.CustomerPrepayment, error) {
	defer rows.Close()
	out := []domain.CustomerPrepayment{}
	for rows.Next() {
		p, err := scanPrepayment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan prepayment row: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating prepayment rows: %w", err)
	}
	return out, nil
}

func scanApplication(row pgx.Row) (domain.PrepaymentApplication, error) {
	var m models.PrepaymentApplication
	err := row.Scan(
		&m.ApplicationID,
		&m.PrepaymentID,
		&m.InvoiceID,
		&m.AppliedAmount,
		&m.AppliedDate,
		&m.Description,
		&m.ReversalOf,
		&m.JournalEntryID,
		&m.CreatedAt,
		&m.CreatedBy,
	)
	if err != nil {
		return domain.PrepaymentApplication{}, err
	}
	return mapping.ToDomainApplication(m), nil
}

func (r *PgxPrepaymentRepository) FindPrepaymentByID(ctx context.Context, prepaymentID string) (*domain.CustomerPrepayment, error) {
	p, err := scanPrepayment(r.Pool.QueryRow(ctx, `SELECT `+prepaymentColumns+` FROM customer_prepayments WHERE prepayment_id = $1;`, prepaymentID))
	if err != nil {
		return nil, mapReadError(err, "prepayment "+prepaymentID)
	}
	apps, err := r.ListApplications(ctx, prepaymentID)
	if err != nil {
		return nil, err
	}
	p.Applications = apps
	return &p, nil
}

func (r *PgxPrepaymentRepository) ListPrepaymentsByCustomer(ctx context.Context, customerID int64) ([]domain.CustomerPrepayment, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT `+prepaymentColumns+` FROM customer_prepayments
		WHERE customer_id = $1
		ORDER BY prepayment_date, created_at;
	`, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list prepayments of customer %d: %w", customerID, err)
	}
	return collectPrepayments(rows)
}

func (r *PgxPrepaymentRepository) ListUnpostedPrepayments(ctx context.Context, limit int) ([]domain.CustomerPrepayment, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT `+prepaymentColumns+` FROM customer_prepayments
		WHERE journal_entry_id IS NULL
		ORDER BY created_at
		LIMIT $1;
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list unposted prepayments: %w", err)
	}
	return collectPrepayments(rows)
}

func (r *PgxPrepaymentRepository) SavePrepaymentInTx(ctx context.Context, tx pgx.Tx, prepayment domain.CustomerPrepayment) error {
	m := mapping.ToModelPrepayment(prepayment)
	_, err := tx.Exec(ctx, `
		INSERT INTO customer_prepayments (`+prepaymentColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`,
		m.PrepaymentID,
		m.Number,
		m.CustomerID,
		m.PrepaymentDate,
		m.Amount,
		m.UsedAmount,
		m.Status,
		m.Method,
		m.Reference,
		m.JournalEntryID,
		m.ReconciledAt,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return mapWriteError(err, "save prepayment "+m.Number)
	}
	return nil
}

func (r *PgxPrepaymentRepository) FindPrepaymentByIDForUpdate(ctx context.Context, tx pgx.Tx, prepaymentID string) (*domain.CustomerPrepayment, error) {
	p, err := scanPrepayment(tx.QueryRow(ctx, `SELECT `+prepaymentColumns+` FROM customer_prepayments WHERE prepayment_id = $1 FOR UPDATE;`, prepaymentID))
	if err != nil {
		return nil, mapReadError(err, "prepayment "+prepaymentID)
	}
	return &p, nil
}

func (r *PgxPrepaymentRepository) UpdatePrepaymentUsageInTx(ctx context.Context, tx pgx.Tx, prepaymentID string, used decimal.Decimal, status domain.PrepaymentStatus, userID string, now time.Time) error {
	_, err := tx.Exec(ctx, `
		UPDATE customer_prepayments
		SET used_amount = $2, status = $3, last_updated_at = $4, last_updated_by = $5
		WHERE prepayment_id = $1;
	`, prepaymentID, used, string(status), now, userID)
	if err != nil {
		return mapWriteError(err, "update usage of prepayment "+prepaymentID)
	}
	return nil
}

func (r *PgxPrepaymentRepository) MarkPrepaymentReconciledInTx(ctx context.Context, tx pgx.Tx, prepaymentID string, used decimal.Decimal, status domain.PrepaymentStatus, reconciledAt time.Time) error {
	_, err := tx.Exec(ctx, `
		UPDATE customer_prepayments
		SET used_amount = $2, status = $3, reconciled_at = $4, last_updated_at = $4, last_updated_by = $5
		WHERE prepayment_id = $1;
	`, prepaymentID, used, string(status), reconciledAt, domain.SystemUserID)
	if err != nil {
		return mapWriteError(err, "reconcile prepayment "+prepaymentID)
	}
	return nil
}

func (r *PgxPrepaymentRepository) SetPrepaymentJournalEntryInTx(ctx context.Context, tx pgx.Tx, prepaymentID string, entryID string) error {
	_, err := tx.Exec(ctx, `UPDATE customer_prepayments SET journal_entry_id = $2 WHERE prepayment_id = $1;`, prepaymentID, entryID)
	if err != nil {
		return mapWriteError(err, "link prepayment "+prepaymentID)
	}
	return nil
}

// ListPrepaymentUsageForUpdate locks the prepayment rows first, then totals
// their applications. FOR UPDATE cannot be combined with GROUP BY, hence the
// locking subquery.
func (r *PgxPrepaymentRepository) ListPrepaymentUsageForUpdate(ctx context.Context, tx pgx.Tx, customerID *int64) ([]portsrepo.PrepaymentUsage, error) {
	rows, err := tx.Query(ctx, `
		WITH locked AS (
			SELECT prepayment_id, customer_id, amount, used_amount, status
			FROM customer_prepayments
			WHERE $1::BIGINT IS NULL OR customer_id = $1
			ORDER BY prepayment_id
			FOR UPDATE
		)
		SELECT l.prepayment_id, l.customer_id, l.amount, l.used_amount, l.status,
		       COALESCE((SELECT SUM(a.applied_amount) FROM prepayment_applications a WHERE a.prepayment_id = l.prepayment_id), 0)
		FROM locked l
		ORDER BY l.prepayment_id;
	`, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load prepayment usage: %w", err)
	}
	defer rows.Close()

	usages := []portsrepo.PrepaymentUsage{}
	for rows.Next() {
		var u portsrepo.PrepaymentUsage
		var status string
		if err := rows.Scan(&u.PrepaymentID, &u.CustomerID, &u.Amount, &u.UsedAmount, &status, &u.AppliedTotal); err != nil {
			return nil, fmt.Errorf("failed to scan prepayment usage row: %w", err)
		}
		u.Status = domain.PrepaymentStatus(status)
		usages = append(usages, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating prepayment usage rows: %w", err)
	}
	return usages, nil
}

// SaveApplicationInTx appends an application. Reversing the same application
// twice hits prepayment_applications_reversal_of_key and is reported as apperrors.ErrDuplicate.
func (r *PgxPrepaymentRepository) SaveApplicationInTx(ctx context.Context, tx pgx.Tx, app domain.PrepaymentApplication) error {
	m := mapping.ToModelApplication(app)
	_, err := tx.Exec(ctx, `
		INSERT INTO prepayment_applications (`+applicationColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`,
		m.ApplicationID,
		m.PrepaymentID,
		m.InvoiceID,
		m.AppliedAmount,
		m.AppliedDate,
		m.Description,
		m.ReversalOf,
		m.JournalEntryID,
		m.CreatedAt,
		m.CreatedBy,
	)
	if err != nil {
		return mapWriteError(err, "save application "+m.ApplicationID)
	}
	return nil
}

func (r *PgxPrepaymentRepository) FindApplicationByIDInTx(ctx context.Context, tx pgx.Tx, applicationID string) (*domain.PrepaymentApplication, error) {
	app, err := scanApplication(tx.QueryRow(ctx, `SELECT `+applicationColumns+` FROM prepayment_applications WHERE application_id = $1;`, applicationID))
	if err != nil {
		return nil, mapReadError(err, "application "+applicationID)
	}
	return &app, nil
}

func (r *PgxPrepaymentRepository) SumApplicationsInTx(ctx context.Context, tx pgx.Tx, prepaymentID string) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := tx.QueryRow(ctx, `SELECT COALESCE(SUM(applied_amount), 0) FROM prepayment_applications WHERE prepayment_id = $1;`, prepaymentID).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum applications of prepayment %s: %w", prepaymentID, err)
	}
	return total, nil
}

func (r *PgxPrepaymentRepository) ListApplications(ctx context.Context, prepaymentID string) ([]domain.PrepaymentApplication, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT `+applicationColumns+` FROM prepayment_applications
		WHERE prepayment_id = $1
		ORDER BY created_at, application_id;
	`, prepaymentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications of prepayment %s: %w", prepaymentID, err)
	}
	defer rows.Close()

	apps := []domain.PrepaymentApplication{}
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan application row: %w", err)
		}
		apps = append(apps, app)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating application rows: %w", err)
	}
	return apps, nil
}
