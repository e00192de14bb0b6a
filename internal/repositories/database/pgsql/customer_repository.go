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
	"github.com/shopspring/decimal"
)

const customerColumns = `customer_id, name, credit_limit, outstanding_balance, status, updated_at`

// PgxCustomerRepository reads the customer records the ledger depends on.
type PgxCustomerRepository struct {
	BaseRepository
}

func newPgxCustomerRepository(pool *pgxpool.Pool) portsrepo.CustomerRepository {
	return &PgxCustomerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CustomerRepository = (*PgxCustomerRepository)(nil)

func scanCustomer(row pgx.Row) (*domain.Customer, error) {
	var m models.Customer
	if err := row.Scan(&m.CustomerID, &m.Name, &m.CreditLimit, &m.OutstandingBalance, &m.Status, &m.UpdatedAt); err != nil {
		return nil, err
	}
	c := mapping.ToDomainCustomer(m)
	return &c, nil
}

func (r *PgxCustomerRepository) FindCustomerByID(ctx context.Context, customerID int64) (*domain.Customer, error) {
	c, err := scanCustomer(r.Pool.QueryRow(ctx, `SELECT `+customerColumns+` FROM customers WHERE customer_id = $1;`, customerID))
	if err != nil {
		return nil, mapReadError(err, fmt.Sprintf("customer %d", customerID))
	}
	return c, nil
}

func (r *PgxCustomerRepository) FindCustomerByIDForUpdate(ctx context.Context, tx pgx.Tx, customerID int64) (*domain.Customer, error) {
	c, err := scanCustomer(tx.QueryRow(ctx, `SELECT `+customerColumns+` FROM customers WHERE customer_id = $1 FOR UPDATE;`, customerID))
	if err != nil {
		return nil, mapReadError(err, fmt.Sprintf("customer %d", customerID))
	}
	return c, nil
}

func (r *PgxCustomerRepository) AdjustOutstandingInTx(ctx context.Context, tx pgx.Tx, customerID int64, delta decimal.Decimal, now time.Time) error {
	tag, err := tx.Exec(ctx, `
		UPDATE customers
		SET outstanding_balance = outstanding_balance + $2, updated_at = $3
		WHERE customer_id = $1;
	`, customerID, delta, now)
	if err != nil {
		return mapWriteError(err, fmt.Sprintf("adjust outstanding of customer %d", customerID))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: customer %d", apperrors.ErrNotFound, customerID)
	}
	return nil
}
