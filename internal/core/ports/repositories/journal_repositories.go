package repositories

import (
	"context"

	"github.com/SscSPs/backoffice_ledger/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// JournalReader defines read operations for journal entries
type JournalReader interface {
	// FindEntryByID retrieves an entry and its lines.
	FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// FindEntryByNumber retrieves an entry and its lines by its document number.
	FindEntryByNumber(ctx context.Context, number string) (*domain.JournalEntry, error)

	// ListEntries retrieves entry headers newest first using token-based pagination.
	// It returns the entries, a token for the next page, and an error.
	ListEntries(ctx context.Context, limit int, nextToken *string) ([]domain.JournalEntry, *string, error)

	// ListLinesByAccount retrieves the lines posted against an account, newest first.
	ListLinesByAccount(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.JournalEntryLine, *string, error)
}

// JournalWriter defines the write path. Entries are immutable: there is no update or delete.
type JournalWriter interface {
	// SaveEntryInTx inserts the entry header and batch-inserts its lines within tx.
	// A taken number is reported as apperrors.ErrDuplicate; a second reversal of
	// the same entry as apperrors.ErrConflict.
	SaveEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry) error
}

// JournalLineAggregator exposes the totals the balance recalculator needs.
type JournalLineAggregator interface {
	// SumLinesByAccountInTx totals every debit and credit ever posted against the account.
	SumLinesByAccountInTx(ctx context.Context, tx pgx.Tx, accountID string) (totalDebit decimal.Decimal, totalCredit decimal.Decimal, err error)
}

// JournalRepositoryFacade combines all journal-related repository interfaces
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
	JournalLineAggregator
}

// JournalRepositoryWithTx extends JournalRepositoryFacade with transaction capabilities
type JournalRepositoryWithTx interface {
	JournalRepositoryFacade
	TransactionManager
}

// SequenceRepository hands out document numbers from an atomic per-scope counter.
type SequenceRepository interface {
	// NextSequenceInTx increments and returns the counter for (kind, prefix, year).
	// The counter row stays locked until tx ends, serializing concurrent callers.
	// A scope used for the first time is seeded from the highest number already stored.
	NextSequenceInTx(ctx context.Context, tx pgx.Tx, kind domain.SequenceKind, prefix string, year int) (int, error)

	// ResyncSequenceInTx raises the counter to the highest number already stored,
	// used after a number written outside the counter caused a collision.
	ResyncSequenceInTx(ctx context.Context, tx pgx.Tx, kind domain.SequenceKind, prefix string, year int) error
}
