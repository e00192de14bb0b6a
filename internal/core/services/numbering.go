package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5"

	"github.com/SscSPs/backoffice_ledger/internal/apperrors"
	"github.com/SscSPs/backoffice_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/backoffice_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/backoffice_ledger/internal/middleware"
)

// maxNumberAttempts bounds how often a colliding document number is retried.
const maxNumberAttempts = 3

// documentNumberer draws "{PREFIX}/{YEAR}/{seq}" numbers from the sequence
// table and stores the document under the drawn number.
type documentNumberer struct {
	txManager    portsrepo.TransactionManager
	sequenceRepo portsrepo.SequenceRepository
}

// assign draws a number and hands it to save. Each attempt runs in its own
// savepoint so a unique violation does not abort tx. When save reports
// apperrors.ErrDuplicate the counter is resynchronized and a fresh number drawn.
func (n documentNumberer) assign(
	ctx context.Context,
	tx pgx.Tx,
	kind domain.SequenceKind,
	prefix string,
	year int,
	save func(sp pgx.Tx, number string) error,
) (string, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	for attempt := 1; attempt <= maxNumberAttempts; attempt++ {
		sp, err := n.txManager.BeginNested(ctx, tx)
		if err != nil {
			return "", err
		}

		seq, err := n.sequenceRepo.NextSequenceInTx(ctx, sp, kind, prefix, year)
		if err != nil {
			_ = n.txManager.Rollback(ctx, sp)
			return "", err
		}
		number := domain.FormatEntryNumber(prefix, year, seq)

		err = save(sp, number)
		if err == nil {
			if err := n.txManager.Commit(ctx, sp); err != nil {
				return "", err
			}
			return number, nil
		}

		_ = n.txManager.Rollback(ctx, sp)
		if !errors.Is(err, apperrors.ErrDuplicate) {
			return "", err
		}

		logger.Warn("Document number collision, resynchronizing sequence",
			slog.String("number", number),
			slog.String("kind", string(kind)),
			slog.Int("attempt", attempt))
		if err := n.sequenceRepo.ResyncSequenceInTx(ctx, tx, kind, prefix, year); err != nil {
			return "", err
		}
	}

	return "", ErrDuplicateNumber
}
