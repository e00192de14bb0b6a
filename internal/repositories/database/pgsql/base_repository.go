package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/backoffice_ledger/internal/apperrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// querier is satisfied by both the pool and a transaction, so read queries can
// run either standalone or inside a caller's transaction.
type querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	Pool *pgxpool.Pool
}

// Begin starts a new database transaction
func (r *BaseRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	return tx, nil
}

// BeginNested opens a savepoint inside tx.
func (r *BaseRepository) BeginNested(ctx context.Context, tx pgx.Tx) (pgx.Tx, error) {
	sp, err := tx.Begin(ctx)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to open savepoint", err)
	}
	return sp, nil
}

// Commit commits a transaction
func (r *BaseRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Commit(ctx); err != nil {
		return apperrors.NewAppError(500, "failed to commit transaction", err)
	}
	return nil
}

// Rollback rolls back a transaction. Rolling back a finished transaction is a no-op.
func (r *BaseRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return apperrors.NewAppError(500, "failed to rollback transaction", err)
	}
	return nil
}

// Postgres error codes the repositories translate.
const (
	pgUniqueViolation    = "23505"
	pgExclusionViolation = "23P01"
	pgCheckViolation     = "23514"
)

// conflictConstraints are unique constraints whose violation is a business
// conflict rather than a plain duplicate.
var conflictConstraints = map[string]bool{
	"journal_entries_reversal_of_key": true,
}

// mapWriteError translates constraint violations into application errors. A
// unique violation is apperrors.ErrDuplicate unless the constraint is listed in
// conflictConstraints; an exclusion violation is apperrors.ErrConflict.
func mapWriteError(err error, what string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			if conflictConstraints[pgErr.ConstraintName] {
				return fmt.Errorf("%w: %s (%s)", apperrors.ErrConflict, what, pgErr.ConstraintName)
			}
			return fmt.Errorf("%w: %s (%s)", apperrors.ErrDuplicate, what, pgErr.ConstraintName)
		case pgExclusionViolation:
			return fmt.Errorf("%w: %s (%s)", apperrors.ErrConflict, what, pgErr.ConstraintName)
		case pgCheckViolation:
			return fmt.Errorf("%w: %s (%s)", apperrors.ErrIntegrity, what, pgErr.ConstraintName)
		}
	}
	return fmt.Errorf("failed to %s: %w", what, err)
}

// mapReadError turns pgx.ErrNoRows into apperrors.ErrNotFound.
func mapReadError(err error, what string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%w: %s", apperrors.ErrNotFound, what)
	}
	return fmt.Errorf("failed to find %s: %w", what, err)
}
