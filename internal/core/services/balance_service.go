package services

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/SscSPs/backoffice_ledger/internal/apperrors"
	"github.com/SscSPs/backoffice_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/backoffice_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/backoffice_ledger/internal/core/ports/services"
	"github.com/SscSPs/backoffice_ledger/internal/platform/lock"
)

// balanceService derives current balances from the full line history. It is
// the only writer of Account.CurrentBalance.
type balanceService struct {
	BaseService
	txManager   portsrepo.TransactionManager
	accountRepo portsrepo.AccountRepositoryFacade
	journalRepo portsrepo.JournalRepositoryFacade
	locker      lock.Locker
	workers     int
}

// NewBalanceService creates the balance recalculator. RecomputeAll runs at most workers accounts at a time.
func NewBalanceService(
	txManager portsrepo.TransactionManager,
	accountRepo portsrepo.AccountRepositoryFacade,
	journalRepo portsrepo.JournalRepositoryFacade,
	locker lock.Locker,
	workers int,
) portssvc.BalanceSvc {
	if workers < 1 {
		workers = 1
	}
	return &balanceService{
		txManager:   txManager,
		accountRepo: accountRepo,
		journalRepo: journalRepo,
		locker:      locker,
		workers:     workers,
	}
}

var _ portssvc.BalanceSvc = (*balanceService)(nil)

func (s *balanceService) RecomputeInTx(ctx context.Context, tx pgx.Tx, accountID string) (decimal.Decimal, error) {
	acc, err := s.accountRepo.FindAccountByIDForUpdate(ctx, tx, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.LogDebug(ctx, "Skipping recompute of unknown account", slog.String("account_id", accountID))
			return decimal.Zero, nil
		}
		return decimal.Zero, err
	}

	debit, credit, err := s.journalRepo.SumLinesByAccountInTx(ctx, tx, accountID)
	if err != nil {
		return decimal.Zero, err
	}

	balance, err := acc.Category.Balance(acc.OpeningBalance, debit, credit)
	if err != nil {
		return decimal.Zero, err
	}

	if !balance.Equal(acc.CurrentBalance) {
		if err := s.accountRepo.UpdateCurrentBalanceInTx(ctx, tx, accountID, balance, s.Now()); err != nil {
			return decimal.Zero, err
		}
	}
	return balance, nil
}

func (s *balanceService) Recompute(ctx context.Context, accountID string) (decimal.Decimal, error) {
	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	defer func() { _ = s.txManager.Rollback(ctx, tx) }()

	balance, err := s.RecomputeInTx(ctx, tx, accountID)
	if err != nil {
		return decimal.Zero, err
	}
	if err := s.txManager.Commit(ctx, tx); err != nil {
		return decimal.Zero, err
	}
	return balance, nil
}

func (s *balanceService) RecomputeByCode(ctx context.Context, code string) (*domain.Account, error) {
	acc, err := s.accountRepo.FindAccountByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	balance, err := s.Recompute(ctx, acc.AccountID)
	if err != nil {
		return nil, err
	}
	acc.CurrentBalance = balance
	return acc, nil
}

func (s *balanceService) RecomputeAll(ctx context.Context) (int, error) {
	release, err := s.locker.Acquire(ctx, lock.RecomputeAllKey)
	if err != nil {
		return 0, err
	}
	defer func() { _ = release(context.WithoutCancel(ctx)) }()

	ids, err := s.accountRepo.ListAccountIDs(ctx)
	if err != nil {
		return 0, err
	}

	var done atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for _, id := range ids {
		g.Go(func() error {
			if _, err := s.Recompute(gctx, id); err != nil {
				s.LogError(gctx, err, "Failed to recompute account balance", slog.String("account_id", id))
				return err
			}
			done.Add(1)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return int(done.Load()), err
	}

	s.LogInfo(ctx, "Recomputed all account balances", slog.Int("accounts", len(ids)), slog.Int("workers", s.workers))
	return int(done.Load()), nil
}
