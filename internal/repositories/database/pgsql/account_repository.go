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

const accountColumns = `account_id, code, name, category, subtype, opening_balance, current_balance, is_active,
	created_at, created_by, last_updated_at, last_updated_by`

// PgxAccountRepository implements portsrepo.AccountRepositoryWithTx using pgx.
type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for the chart of accounts.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryWithTx {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AccountRepositoryWithTx = (*PgxAccountRepository)(nil)

func scanAccount(row pgx.Row) (domain.Account, error) {
	return scanAccountWith(row)
}

// scanAccountWith scans the account columns followed by any extra selected columns.
func scanAccountWith(row pgx.Row, extra ...any) (domain.Account, error) {
	var m models.Account
	dest := []any{
		&m.AccountID,
		&m.Code,
		&m.Name,
		&m.Category,
		&m.Subtype,
		&m.OpeningBalance,
		&m.CurrentBalance,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return domain.Account{}, err
	}
	return mapping.ToDomainAccount(m), nil
}

func collectAccounts(rows pgx.Rows) ([]domain.Account, error) {
	defer rows.Close()
	accounts := []domain.Account{}
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		accounts = append(accounts, acc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", err)
	}
	return accounts, nil
}

func (r *PgxAccountRepository) findOne(ctx context.Context, q querier, query string, arg any, what string) (*domain.Account, error) {
	acc, err := scanAccount(q.QueryRow(ctx, query, arg))
	if err != nil {
		return nil, mapReadError(err, what)
	}
	return &acc, nil
}

func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	return r.findOne(ctx, r.Pool, `SELECT `+accountColumns+` FROM accounts WHERE account_id = $1;`, accountID, "account "+accountID)
}

func (r *PgxAccountRepository) FindAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	return r.findOne(ctx, r.Pool, `SELECT `+accountColumns+` FROM accounts WHERE code = $1;`, code, "account "+code)
}

func (r *PgxAccountRepository) FindAccountByCodeInTx(ctx context.Context, tx pgx.Tx, code string) (*domain.Account, error) {
	return r.findOne(ctx, tx, `SELECT `+accountColumns+` FROM accounts WHERE code = $1;`, code, "account "+code)
}

func (r *PgxAccountRepository) FindAccountByIDForUpdate(ctx context.Context, tx pgx.Tx, accountID string) (*domain.Account, error) {
	return r.findOne(ctx, tx, `SELECT `+accountColumns+` FROM accounts WHERE account_id = $1 FOR UPDATE;`, accountID, "account "+accountID)
}

func byCode(accounts []domain.Account) map[string]domain.Account {
	out := make(map[string]domain.Account, len(accounts))
	for _, acc := range accounts {
		out[acc.Code] = acc
	}
	return out
}

// FindAccountsByCodes returns only the codes that exist; callers detect missing ones.
func (r *PgxAccountRepository) FindAccountsByCodes(ctx context.Context, codes []string) (map[string]domain.Account, error) {
	if len(codes) == 0 {
		return map[string]domain.Account{}, nil
	}
	rows, err := r.Pool.Query(ctx, `SELECT `+accountColumns+` FROM accounts WHERE code = ANY($1);`, codes)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts by code: %w", err)
	}
	accounts, err := collectAccounts(rows)
	if err != nil {
		return nil, err
	}
	return byCode(accounts), nil
}

// FindAccountsByCodesForUpdate locks the rows in code order so concurrent
// postings touching the same accounts cannot deadlock.
func (r *PgxAccountRepository) FindAccountsByCodesForUpdate(ctx context.Context, tx pgx.Tx, codes []string) (map[string]domain.Account, error) {
	if len(codes) == 0 {
		return map[string]domain.Account{}, nil
	}
	rows, err := tx.Query(ctx, `SELECT `+accountColumns+` FROM accounts WHERE code = ANY($1) ORDER BY code FOR UPDATE;`, codes)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts by code for update: %w", err)
	}
	accounts, err := collectAccounts(rows)
	if err != nil {
		return nil, err
	}
	return byCode(accounts), nil
}

func (r *PgxAccountRepository) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	rows, err := r.Pool.Query(ctx, `SELECT `+accountColumns+` FROM accounts ORDER BY code LIMIT $1 OFFSET $2;`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return collectAccounts(rows)
}

func (r *PgxAccountRepository) ListAllAccounts(ctx context.Context) ([]domain.Account, error) {
	rows, err := r.Pool.Query(ctx, `SELECT `+accountColumns+` FROM accounts ORDER BY code;`)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return collectAccounts(rows)
}

func (r *PgxAccountRepository) ListAccountIDs(ctx context.Context) ([]string, error) {
	rows, err := r.Pool.Query(ctx, `SELECT account_id FROM accounts ORDER BY code;`)
	if err != nil {
		return nil, fmt.Errorf("failed to list account ids: %w", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to scan account ids: %w", err)
	}
	return ids, nil
}

const insertAccountQuery = `
	INSERT INTO accounts (` + accountColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
`

func insertAccount(ctx context.Context, q querier, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	_, err := q.Exec(ctx, insertAccountQuery,
		m.AccountID,
		m.Code,
		m.Name,
		m.Category,
		m.Subtype,
		m.OpeningBalance,
		m.CurrentBalance,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return mapWriteError(err, "save account "+m.Code)
	}
	return nil
}

func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	return insertAccount(ctx, r.Pool, account)
}

func (r *PgxAccountRepository) SaveAccountInTx(ctx context.Context, tx pgx.Tx, account domain.Account) error {
	return insertAccount(ctx, tx, account)
}

func (r *PgxAccountRepository) DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error {
	cmd, err := r.Pool.Exec(ctx, `
		UPDATE accounts SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE account_id = $1;
	`, accountID, now, userID)
	if err != nil {
		return mapWriteError(err, "deactivate account "+accountID)
	}
	if cmd.RowsAffected() == 0 {
		return mapReadError(pgx.ErrNoRows, "account "+accountID)
	}
	return nil
}

func (r *PgxAccountRepository) UpdateAccountProfileInTx(ctx context.Context, tx pgx.Tx, accountID string, name string, active bool, userID string, now time.Time) error {
	cmd, err := tx.Exec(ctx, `
		UPDATE accounts SET name = $2, is_active = $3, last_updated_at = $4, last_updated_by = $5
		WHERE account_id = $1;
	`, accountID, name, active, now, userID)
	if err != nil {
		return mapWriteError(err, "update account "+accountID)
	}
	if cmd.RowsAffected() == 0 {
		return mapReadError(pgx.ErrNoRows, "account "+accountID)
	}
	return nil
}

func (r *PgxAccountRepository) UpdateCurrentBalanceInTx(ctx context.Context, tx pgx.Tx, accountID string, balance decimal.Decimal, now time.Time) error {
	_, err := tx.Exec(ctx, `
		UPDATE accounts SET current_balance = $2, last_updated_at = $3
		WHERE account_id = $1;
	`, accountID, balance, now)
	if err != nil {
		return mapWriteError(err, "update balance of account "+accountID)
	}
	return nil
}
