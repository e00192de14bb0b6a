package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/backoffice_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/backoffice_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// sequenceTables maps each numbering scope to the table holding its numbers.
var sequenceTables = map[domain.SequenceKind]string{
	domain.SequenceJournalEntry: "journal_entries",
	domain.SequenceInvoice:      "invoices",
	domain.SequencePrepayment:   "customer_prepayments",
}

// PgxSequenceRepository hands out document numbers from the document_sequences table.
type PgxSequenceRepository struct {
	BaseRepository
}

func newPgxSequenceRepository(pool *pgxpool.Pool) portsrepo.SequenceRepository {
	return &PgxSequenceRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.SequenceRepository = (*PgxSequenceRepository)(nil)

// highestStored reads the largest sequence already used for the scope, so
// numbers inserted outside the counter are never handed out again.
func highestStored(ctx context.Context, tx pgx.Tx, kind domain.SequenceKind, prefix string, year int) (int, error) {
	table, ok := sequenceTables[kind]
	if !ok {
		return 0, fmt.Errorf("unknown sequence kind %q", kind)
	}
	pattern := fmt.Sprintf("%s/%d/%%", prefix, year)

	var highest int
	err := tx.QueryRow(ctx, `
		SELECT COALESCE(MAX(CAST(split_part(number, '/', 3) AS INT)), 0)
		FROM `+table+`
		WHERE number LIKE $1 AND split_part(number, '/', 3) ~ '^[0-9]+$';
	`, pattern).Scan(&highest)
	if err != nil {
		return 0, fmt.Errorf("failed to read highest %s number for %s/%d: %w", kind, prefix, year, err)
	}
	return highest, nil
}

func (r *PgxSequenceRepository) NextSequenceInTx(ctx context.Context, tx pgx.Tx, kind domain.SequenceKind, prefix string, year int) (int, error) {
	var next int
	err := tx.QueryRow(ctx, `
		UPDATE document_sequences SET last_value = last_value + 1
		WHERE kind = $1 AND prefix = $2 AND year = $3
		RETURNING last_value;
	`, string(kind), prefix, year).Scan(&next)
	if err == nil {
		return next, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("failed to advance sequence %s/%d: %w", prefix, year, err)
	}

	seed, err := highestStored(ctx, tx, kind, prefix, year)
	if err != nil {
		return 0, err
	}
	// A concurrent first caller may have created the row meanwhile; the upsert
	// then degrades into a plain increment.
	err = tx.QueryRow(ctx, `
		INSERT INTO document_sequences (kind, prefix, year, last_value)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (kind, prefix, year) DO UPDATE SET last_value = document_sequences.last_value + 1
		RETURNING last_value;
	`, string(kind), prefix, year, seed+1).Scan(&next)
	if err != nil {
		return 0, fmt.Errorf("failed to seed sequence %s/%d: %w", prefix, year, err)
	}
	return next, nil
}

func (r *PgxSequenceRepository) ResyncSequenceInTx(ctx context.Context, tx pgx.Tx, kind domain.SequenceKind, prefix string, year int) error {
	highest, err := highestStored(ctx, tx, kind, prefix, year)
	if err != nil {
		return err
	}
	_, err = tx.Exec(ctx, `
		INSERT INTO document_sequences (kind, prefix, year, last_value)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (kind, prefix, year) DO UPDATE SET last_value = GREATEST(document_sequences.last_value, EXCLUDED.last_value);
	`, string(kind), prefix, year, highest)
	if err != nil {
		return fmt.Errorf("failed to resync sequence %s/%d: %w", prefix, year, err)
	}
	return nil
}
