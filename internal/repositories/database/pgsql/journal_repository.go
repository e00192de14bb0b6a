package pgsql

import (
	"context"
	"fmt"
	"strconv"

	"github.com/SscSPs/backoffice_ledger/internal/apperrors"
	"github.com/SscSPs/backoffice_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/backoffice_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/backoffice_ledger/internal/models"
	"github.com/SscSPs/backoffice_ledger/internal/utils/mapping"
	"github.com/SscSPs/backoffice_ledger/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const defaultPageSize = 20

const entryColumns = `entry_id, number, entry_date, reference, description, total_debit, total_credit,
	posted_by, auto_generated, reversal_of, created_at`

// PgxJournalRepository stores journal entries and their lines. Entries are
// write-once: there is no update or delete.
type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for journal entries.
func newPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepositoryWithTx {
	return &PgxJournalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxJournalRepository implements portsrepo.JournalRepositoryWithTx
var _ portsrepo.JournalRepositoryWithTx = (*PgxJournalRepository)(nil)

// SaveEntryInTx inserts the header and batch-inserts the lines within tx.
func (r *PgxJournalRepository) SaveEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry) error {
	m := mapping.ToModelJournalEntry(entry)
	_, err := tx.Exec(ctx, `
		INSERT INTO journal_entries (`+entryColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`,
		m.EntryID,
		m.Number,
		m.EntryDate,
		m.Reference,
		m.Description,
		m.TotalDebit,
		m.TotalCredit,
		m.PostedBy,
		m.AutoGenerated,
		m.ReversalOf,
		m.CreatedAt,
	)
	if err != nil {
		return mapWriteError(err, "insert journal entry "+m.Number)
	}

	batch := &pgx.Batch{}
	lineQuery := `
		INSERT INTO journal_entry_lines (line_id, entry_id, account_id, line_no, debit, credit, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	for _, line := range entry.Lines {
		ml := mapping.ToModelJournalEntryLine(line)
		batch.Queue(lineQuery, ml.LineID, m.EntryID, ml.AccountID, ml.LineNo, ml.Debit, ml.Credit, ml.Description)
	}

	// Close reports the first failing statement of the batch.
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return mapWriteError(err, "insert lines of journal entry "+m.Number)
	}
	return nil
}

func scanEntryHeader(row pgx.Row) (models.JournalEntry, error) {
	var m models.JournalEntry
	err := row.Scan(
		&m.EntryID,
		&m.Number,
		&m.EntryDate,
		&m.Reference,
		&m.Description,
		&m.TotalDebit,
		&m.TotalCredit,
		&m.PostedBy,
		&m.AutoGenerated,
		&m.ReversalOf,
		&m.CreatedAt,
	)
	return m, err
}

func (r *PgxJournalRepository) findEntry(ctx context.Context, where string, arg any, what string) (*domain.JournalEntry, error) {
	m, err := scanEntryHeader(r.Pool.QueryRow(ctx, `SELECT `+entryColumns+` FROM journal_entries WHERE `+where+`;`, arg))
	if err != nil {
		return nil, mapReadError(err, what)
	}

	rows, err := r.Pool.Query(ctx, `
		SELECT l.line_id, l.entry_id, l.account_id, a.code, l.line_no, l.debit, l.credit, l.description
		FROM journal_entry_lines l
		JOIN accounts a ON a.account_id = l.account_id
		WHERE l.entry_id = $1
		ORDER BY l.line_no;
	`, m.EntryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lines of journal entry %s: %w", m.Number, err)
	}
	defer rows.Close()

	lines := []models.JournalEntryLine{}
	for rows.Next() {
		var l models.JournalEntryLine
		if err := rows.Scan(&l.LineID, &l.EntryID, &l.AccountID, &l.AccountCode, &l.LineNo, &l.Debit, &l.Credit, &l.Description); err != nil {
			return nil, fmt.Errorf("failed to scan line of journal entry %s: %w", m.Number, err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating lines of journal entry %s: %w", m.Number, err)
	}

	entry := mapping.ToDomainJournalEntry(m)
	entry.Lines = mapping.ToDomainJournalEntryLineSlice(lines)
	return &entry, nil
}

func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	return r.findEntry(ctx, "entry_id = $1", entryID, "journal entry "+entryID)
}

func (r *PgxJournalRepository) FindEntryByNumber(ctx context.Context, number string) (*domain.JournalEntry, error) {
	return r.findEntry(ctx, "number = $1", number, "journal entry "+number)
}

// cursorArgs decodes nextToken and returns the cursor condition for the given
// column triple along with its arguments, numbered from firstArg.
func cursorArgs(nextToken *string, columns string, firstArg int) (string, []any, error) {
	if nextToken == nil || *nextToken == "" {
		return "", nil, nil
	}
	cursor, err := pagination.DecodeToken(*nextToken)
	if err != nil {
		return "", nil, fmt.Errorf("%w: invalid nextToken: %v", apperrors.ErrValidation, err)
	}
	clause := fmt.Sprintf("(%s) < ($%d, $%d, $%d)", columns, firstArg, firstArg+1, firstArg+2)
	return clause, []any{cursor.EntryDate, cursor.CreatedAt, cursor.ID}, nil
}

// ListEntries pages entry headers newest first. Ordering is (entry_date,
// created_at, entry_id) descending so the cursor is stable.
func (r *PgxJournalRepository) ListEntries(ctx context.Context, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	// We fetch one extra item to determine if there's a next page.
	fetchLimit := limit + 1

	clause, args, err := cursorArgs(nextToken, "entry_date, created_at, entry_id", 1)
	if err != nil {
		return nil, nil, err
	}
	query := `SELECT ` + entryColumns + ` FROM journal_entries`
	if clause != "" {
		query += " WHERE " + clause
	}
	args = append(args, fetchLimit)
	query += " ORDER BY entry_date DESC, created_at DESC, entry_id DESC LIMIT $" + strconv.Itoa(len(args)) + ";"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list journal entries: %w", err)
	}
	defer rows.Close()

	headers := make([]models.JournalEntry, 0, fetchLimit)
	for rows.Next() {
		m, err := scanEntryHeader(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan journal entry row: %w", err)
		}
		headers = append(headers, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating journal entry rows: %w", err)
	}

	var nextTokenVal *string
	if len(headers) > limit {
		last := headers[limit-1]
		token := pagination.EncodeToken(pagination.Cursor{EntryDate: last.EntryDate, CreatedAt: last.CreatedAt, ID: last.EntryID})
		nextTokenVal = &token
		headers = headers[:limit]
	}

	entries := make([]domain.JournalEntry, len(headers))
	for i, m := range headers {
		entries[i] = mapping.ToDomainJournalEntry(m)
	}
	return entries, nextTokenVal, nil
}

// ListLinesByAccount pages the lines posted against an account, newest first.
func (r *PgxJournalRepository) ListLinesByAccount(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.JournalEntryLine, *string, error) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	fetchLimit := limit + 1

	clause, cursor, err := cursorArgs(nextToken, "e.entry_date, e.created_at, l.line_id", 2)
	if err != nil {
		return nil, nil, err
	}
	query := `
		SELECT l.line_id, l.entry_id, l.account_id, a.code, l.line_no, l.debit, l.credit, l.description,
		       e.entry_date, e.created_at
		FROM journal_entry_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		JOIN accounts a ON a.account_id = l.account_id
		WHERE l.account_id = $1`
	args := append([]any{accountID}, cursor...)
	if clause != "" {
		query += " AND " + clause
	}
	args = append(args, fetchLimit)
	query += " ORDER BY e.entry_date DESC, e.created_at DESC, l.line_id DESC LIMIT $" + strconv.Itoa(len(args)) + ";"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query lines for account %s: %w", accountID, err)
	}
	defer rows.Close()

	lines := make([]models.JournalEntryLine, 0, fetchLimit)
	for rows.Next() {
		var l models.JournalEntryLine
		err := rows.Scan(
			&l.LineID,
			&l.EntryID,
			&l.AccountID,
			&l.AccountCode,
			&l.LineNo,
			&l.Debit,
			&l.Credit,
			&l.Description,
			&l.EntryDate,
			&l.CreatedAt,
		)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan line row for account %s: %w", accountID, err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating line rows for account %s: %w", accountID, err)
	}

	var nextTokenVal *string
	if len(lines) > limit {
		last := lines[limit-1]
		token := pagination.EncodeToken(pagination.Cursor{EntryDate: last.EntryDate, CreatedAt: last.CreatedAt, ID: last.LineID})
		nextTokenVal = &token
		lines = lines[:limit]
	}
	return mapping.ToDomainJournalEntryLineSlice(lines), nextTokenVal, nil
}

// SumLinesByAccountInTx totals both sides over every line of the account.
func (r *PgxJournalRepository) SumLinesByAccountInTx(ctx context.Context, tx pgx.Tx, accountID string) (decimal.Decimal, decimal.Decimal, error) {
	var debit, credit decimal.Decimal
	err := tx.QueryRow(ctx, `
		SELECT COALESCE(SUM(debit), 0), COALESCE(SUM(credit), 0)
		FROM journal_entry_lines
		WHERE account_id = $1;
	`, accountID).Scan(&debit, &credit)
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("failed to sum lines for account %s: %w", accountID, err)
	}
	return debit, credit, nil
}
