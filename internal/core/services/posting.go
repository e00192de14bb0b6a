package services

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5"

	portsrepo "github.com/SscSPs/backoffice_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/backoffice_ledger/internal/middleware"
	"github.com/SscSPs/backoffice_ledger/internal/platform/config"
)

// ledgerPoster runs the ledger side of a business operation under the
// configured posting policy.
type ledgerPoster struct {
	txManager portsrepo.TransactionManager
	policy    config.PostingPolicy
}

// post runs fn inside tx. Under the strict policy a failure is returned and the
// caller rolls everything back. Under best effort fn runs in a savepoint; a
// failure is logged, the savepoint discarded and posted is false.
func (p ledgerPoster) post(ctx context.Context, tx pgx.Tx, what string, fn func(tx pgx.Tx) error) (posted bool, err error) {
	if p.policy != config.PostingBestEffort {
		if err := fn(tx); err != nil {
			return false, err
		}
		return true, nil
	}

	logger := middleware.GetLoggerFromCtx(ctx)
	sp, err := p.txManager.BeginNested(ctx, tx)
	if err != nil {
		return false, err
	}
	if err := fn(sp); err != nil {
		_ = p.txManager.Rollback(ctx, sp)
		logger.Warn("Ledger posting failed, business record kept without it",
			slog.String("operation", what),
			slog.String("error", err.Error()))
		return false, nil
	}
	if err := p.txManager.Commit(ctx, sp); err != nil {
		return false, err
	}
	return true, nil
}
