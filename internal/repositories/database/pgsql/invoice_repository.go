package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/backoffice_ledger/internal/apperrors"
	"github.com/SscSPs/backoffice_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/backoffice_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/backoffice_ledger/internal/models"
	"github.com/SscSPs/backoffice_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const invoiceColumns = `invoice_id, number, customer_id, invoice_date, due_date, sub_total, vat_amount, total_amount,
	paid_amount, prepayment_applied, status, journal_entry_id, created_at, created_by, last_updated_at, last_updated_by`

// PgxInvoiceRepository implements the invoice repository
type PgxInvoiceRepository struct {
	BaseRepository
}

func newPgxInvoiceRepository(pool *pgxpool.Pool) portsrepo.InvoiceRepositoryWithTx {
	return &PgxInvoiceRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.InvoiceRepositoryWithTx = (*PgxInvoiceRepository)(nil)

func scanInvoice(row pgx.Row) (*domain.Invoice, error) {
	var m models.Invoice
	err := row.Scan(
		&m.InvoiceID,
		&m.Number,
		&m.CustomerID,
		&m.InvoiceDate,
		&m.DueDate,
		&m.SubTotal,
		&m.VATAmount,
		&m.TotalAmount,
		&m.PaidAmount,
		&m.PrepaymentApplied,
		&m.Status,
		&m.JournalEntryID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	inv := mapping.ToDomainInvoice(m)
	return &inv, nil
}

func (r *PgxInvoiceRepository) SaveInvoiceInTx(ctx context.Context, tx pgx.Tx, invoice domain.Invoice) (int64, error) {
	m := mapping.ToModelInvoice(invoice)
	var id int64
	err := tx.QueryRow(ctx, `
		INSERT INTO invoices (number, customer_id, invoice_date, due_date, sub_total, vat_amount, total_amount,
			paid_amount, prepayment_applied, status, journal_entry_id, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING invoice_id;
	`,
		m.Number,
		m.CustomerID,
		m.InvoiceDate,
		m.DueDate,
		m.SubTotal,
		m.VATAmount,
		m.TotalAmount,
		m.PaidAmount,
		m.PrepaymentApplied,
		m.Status,
		m.JournalEntryID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	).Scan(&id)
	if err != nil {
		return 0, mapWriteError(err, "save invoice "+m.Number)
	}
	return id, nil
}

func (r *PgxInvoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID int64) (*domain.Invoice, error) {
	inv, err := scanInvoice(r.Pool.QueryRow(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE invoice_id = $1;`, invoiceID))
	if err != nil {
		return nil, mapReadError(err, fmt.Sprintf("invoice %d", invoiceID))
	}
	return inv, nil
}

func (r *PgxInvoiceRepository) FindInvoiceByIDForUpdate(ctx context.Context, tx pgx.Tx, invoiceID int64) (*domain.Invoice, error) {
	inv, err := scanInvoice(tx.QueryRow(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE invoice_id = $1 FOR UPDATE;`, invoiceID))
	if err != nil {
		return nil, mapReadError(err, fmt.Sprintf("invoice %d", invoiceID))
	}
	return inv, nil
}

func (r *PgxInvoiceRepository) UpdateInvoiceSettlementInTx(ctx context.Context, tx pgx.Tx, invoice domain.Invoice) error {
	m := mapping.ToModelInvoice(invoice)
	tag, err := tx.Exec(ctx, `
		UPDATE invoices
		SET paid_amount = $2, prepayment_applied = $3, status = $4, journal_entry_id = $5,
			last_updated_at = $6, last_updated_by = $7
		WHERE invoice_id = $1;
	`, m.InvoiceID, m.PaidAmount, m.PrepaymentApplied, m.Status, m.JournalEntryID, m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		return mapWriteError(err, fmt.Sprintf("update invoice %d", m.InvoiceID))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: invoice %d", apperrors.ErrNotFound, m.InvoiceID)
	}
	return nil
}

func (r *PgxInvoiceRepository) ListInvoicesByCustomer(ctx context.Context, customerID int64) ([]domain.Invoice, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT `+invoiceColumns+` FROM invoices
		WHERE customer_id = $1
		ORDER BY invoice_date DESC, invoice_id DESC;
	`, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices of customer %d: %w", customerID, err)
	}
	defer rows.Close()

	invoices := []domain.Invoice{}
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan invoice row: %w", err)
		}
		invoices = append(invoices, *inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating invoice rows: %w", err)
	}
	return invoices, nil
}
