package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/SscSPs/backoffice_ledger/internal/apperrors"
	"github.com/SscSPs/backoffice_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/backoffice_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/backoffice_ledger/internal/core/ports/services"
	"github.com/SscSPs/backoffice_ledger/internal/dto"
	"github.com/SscSPs/backoffice_ledger/internal/utils/accounting"
)

// journalService is the journal engine: it validates, numbers and stores
// entries and keeps the touched balances in step.
type journalService struct {
	BaseService
	txManager   portsrepo.TransactionManager
	journalRepo portsrepo.JournalRepositoryFacade
	accountRepo portsrepo.AccountRepositoryFacade
	numberer    documentNumberer
	balanceSvc  portssvc.BalanceSvc
	periods     portssvc.FiscalYearSvc
}

// JournalServiceOption is a functional option for configuring the journal service
type JournalServiceOption func(*journalService)

// WithPostingPeriods makes the engine reject postings dated in a closed fiscal year.
func WithPostingPeriods(periods portssvc.FiscalYearSvc) JournalServiceOption {
	return func(s *journalService) {
		s.periods = periods
	}
}

// WithJournalClock overrides the clock used for reversal dates and audit stamps.
func WithJournalClock(clock func() time.Time) JournalServiceOption {
	return func(s *journalService) {
		s.Clock = clock
	}
}

// NewJournalService creates a new journal engine.
func NewJournalService(
	txManager portsrepo.TransactionManager,
	journalRepo portsrepo.JournalRepositoryFacade,
	accountRepo portsrepo.AccountRepositoryFacade,
	sequenceRepo portsrepo.SequenceRepository,
	balanceSvc portssvc.BalanceSvc,
	options ...JournalServiceOption,
) portssvc.JournalSvcFacade {
	svc := &journalService{
		txManager:   txManager,
		journalRepo: journalRepo,
		accountRepo: accountRepo,
		numberer:    documentNumberer{txManager: txManager, sequenceRepo: sequenceRepo},
		balanceSvc:  balanceSvc,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// Ensure journalService implements the portssvc.JournalSvcFacade interface
var _ portssvc.JournalSvcFacade = (*journalService)(nil)

func (s *journalService) PostEntry(ctx context.Context, draft domain.EntryDraft, userID string) (*domain.JournalEntry, error) {
	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = s.txManager.Rollback(ctx, tx) }()

	entry, err := s.PostEntryInTx(ctx, tx, draft, userID)
	if err != nil {
		return nil, err
	}

	if err := s.txManager.Commit(ctx, tx); err != nil {
		s.LogError(ctx, err, "Failed to commit journal entry", slog.String("number", entry.Number))
		return nil, err
	}
	return entry, nil
}

func (s *journalService) PostEntryInTx(ctx context.Context, tx pgx.Tx, draft domain.EntryDraft, userID string) (*domain.JournalEntry, error) {
	if err := accounting.ValidateDraft(draft); err != nil {
		s.LogDebug(ctx, "Rejected journal draft", slog.String("error", err.Error()))
		return nil, err
	}
	entryDate := domain.TruncateDate(draft.EntryDate)

	if s.periods != nil {
		if err := s.periods.EnsurePostingAllowedInTx(ctx, tx, entryDate); err != nil {
			return nil, err
		}
	}

	// Locks every touched account row until tx ends; concurrent postings to
	// the same account serialize here.
	codes := accounting.DistinctCodes(draft.Lines)
	accounts, err := s.accountRepo.FindAccountsByCodesForUpdate(ctx, tx, codes)
	if err != nil {
		return nil, err
	}
	for _, code := range codes {
		acc, ok := accounts[code]
		if !ok || !acc.IsActive {
			return nil, fmt.Errorf("%w: %s", ErrUnknownAccount, code)
		}
	}

	now := s.Now()
	entry := domain.JournalEntry{
		EntryID:       uuid.NewString(),
		EntryDate:     entryDate,
		Reference:     draft.Reference,
		Description:   draft.Description,
		PostedBy:      userID,
		AutoGenerated: draft.AutoGenerated,
		ReversalOf:    draft.ReversalOf,
		CreatedAt:     now,
		Lines:         make([]domain.JournalEntryLine, len(draft.Lines)),
	}
	for i, l := range draft.Lines {
		debit, credit := domain.SplitSigned(l.Amount)
		entry.Lines[i] = domain.JournalEntryLine{
			LineID:      uuid.NewString(),
			EntryID:     entry.EntryID,
			AccountID:   accounts[l.AccountCode].AccountID,
			AccountCode: l.AccountCode,
			LineNo:      i + 1,
			Debit:       debit,
			Credit:      credit,
			Description: l.Description,
		}
	}
	entry.TotalDebit, entry.TotalCredit = domain.Totals(entry.Lines)

	number, err := s.numberer.assign(ctx, tx, domain.SequenceJournalEntry, draft.Prefix, entryDate.Year(), func(sp pgx.Tx, number string) error {
		entry.Number = number
		return s.journalRepo.SaveEntryInTx(ctx, sp, entry)
	})
	if err != nil {
		if entry.ReversalOf != nil && errors.Is(err, apperrors.ErrConflict) {
			return nil, fmt.Errorf("%w: %s", ErrAlreadyReversed, *entry.ReversalOf)
		}
		s.LogError(ctx, err, "Failed to store journal entry", slog.String("prefix", draft.Prefix))
		return nil, err
	}
	entry.Number = number

	for _, code := range codes {
		if _, err := s.balanceSvc.RecomputeInTx(ctx, tx, accounts[code].AccountID); err != nil {
			return nil, fmt.Errorf("recompute balance of %s: %w", code, err)
		}
	}

	s.LogInfo(ctx, "Journal entry posted",
		slog.String("number", entry.Number),
		slog.String("entry_id", entry.EntryID),
		slog.String("total", entry.TotalDebit.String()),
		slog.String("user_id", userID))
	return &entry, nil
}

func (s *journalService) ReverseEntry(ctx context.Context, number string, userID string) (*domain.JournalEntry, error) {
	original, err := s.journalRepo.FindEntryByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	if original.ReversalOf != nil {
		return nil, ErrReverseReversal
	}

	draft := domain.EntryDraft{
		Prefix:        domain.PrefixReversal,
		EntryDate:     s.Now(),
		Reference:     original.Number,
		Description:   "Reversal of " + original.Number,
		Lines:         accounting.MirrorLines(original.Lines),
		AutoGenerated: true,
		ReversalOf:    &original.EntryID,
	}
	return s.PostEntry(ctx, draft, userID)
}

func (s *journalService) GetEntryByNumber(ctx context.Context, number string) (*domain.JournalEntry, error) {
	return s.journalRepo.FindEntryByNumber(ctx, number)
}

func (s *journalService) ListEntries(ctx context.Context, params dto.ListJournalsParams) (*dto.ListJournalsResponse, error) {
	var token *string
	if params.NextToken != "" {
		token = &params.NextToken
	}

	entries, next, err := s.journalRepo.ListEntries(ctx, params.Limit, token)
	if err != nil {
		s.LogError(ctx, err, "Failed to list journal entries")
		return nil, err
	}

	resp := &dto.ListJournalsResponse{Entries: make([]dto.JournalEntryResponse, len(entries)), NextToken: next}
	for i := range entries {
		resp.Entries[i] = dto.ToJournalEntryResponse(&entries[i])
	}
	return resp, nil
}

func (s *journalService) ListLinesByAccount(ctx context.Context, accountCode string, params dto.ListJournalsParams) (*dto.ListLinesResponse, error) {
	acc, err := s.accountRepo.FindAccountByCode(ctx, accountCode)
	if err != nil {
		return nil, err
	}

	var token *string
	if params.NextToken != "" {
		token = &params.NextToken
	}

	lines, next, err := s.journalRepo.ListLinesByAccount(ctx, acc.AccountID, params.Limit, token)
	if err != nil {
		s.LogError(ctx, err, "Failed to list account lines", slog.String("account_code", accountCode))
		return nil, err
	}

	resp := &dto.ListLinesResponse{Lines: make([]dto.JournalLineResponse, len(lines)), NextToken: next}
	for i, l := range lines {
		resp.Lines[i] = dto.ToJournalLineResponse(l)
	}
	return resp, nil
}
