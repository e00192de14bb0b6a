package services

import (
	"context"

	"github.com/SscSPs/backoffice_ledger/internal/core/domain"
	"github.com/SscSPs/backoffice_ledger/internal/dto"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// JournalPosterSvc is the single gateway through which balances change.
type JournalPosterSvc interface {
	// PostEntry validates, numbers and stores a balanced entry in its own transaction,
	// then recomputes every account it touched.
	PostEntry(ctx context.Context, draft domain.EntryDraft, userID string) (*domain.JournalEntry, error)

	// PostEntryInTx does the same inside a caller's transaction so the entry
	// commits or rolls back together with the business operation.
	PostEntryInTx(ctx context.Context, tx pgx.Tx, draft domain.EntryDraft, userID string) (*domain.JournalEntry, error)

	// ReverseEntry posts the mirror image of an existing entry. An entry can be reversed once.
	ReverseEntry(ctx context.Context, number string, userID string) (*domain.JournalEntry, error)
}

// JournalReaderSvc defines read operations for journal entries
type JournalReaderSvc interface {
	GetEntryByNumber(ctx context.Context, number string) (*domain.JournalEntry, error)
	ListEntries(ctx context.Context, params dto.ListJournalsParams) (*dto.ListJournalsResponse, error)
	ListLinesByAccount(ctx context.Context, accountCode string, params dto.ListJournalsParams) (*dto.ListLinesResponse, error)
}

// JournalSvcFacade combines all journal-related service interfaces
type JournalSvcFacade interface {
	JournalPosterSvc
	JournalReaderSvc
}

// BalanceSvc recomputes account balances from the full line history.
type BalanceSvc interface {
	// Recompute refreshes one account in its own transaction. A missing account is a no-op.
	Recompute(ctx context.Context, accountID string) (decimal.Decimal, error)

	// RecomputeInTx refreshes one account inside a caller's transaction.
	RecomputeInTx(ctx context.Context, tx pgx.Tx, accountID string) (decimal.Decimal, error)

	// RecomputeByCode resolves the code and recomputes that account.
	RecomputeByCode(ctx context.Context, code string) (*domain.Account, error)

	// RecomputeAll refreshes every account and returns how many were processed.
	RecomputeAll(ctx context.Context) (int, error)
}
