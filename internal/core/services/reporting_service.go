package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/backoffice_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/backoffice_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/backoffice_ledger/internal/core/ports/services"
)

type reportingService struct {
	BaseService
	accountRepo   portsrepo.AccountReader
	reportingRepo portsrepo.ReportingRepository
}

// NewReportingService creates a new reporting service.
func NewReportingService(accountRepo portsrepo.AccountReader, reportingRepo portsrepo.ReportingRepository) portssvc.ReportingService {
	return &reportingService{accountRepo: accountRepo, reportingRepo: reportingRepo}
}

var _ portssvc.ReportingService = (*reportingService)(nil)

func (s *reportingService) TrialBalance(ctx context.Context) (*domain.TrialBalance, error) {
	accounts, err := s.accountRepo.ListAllAccounts(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to load accounts for trial balance")
		return nil, err
	}
	return s.build(ctx, accounts), nil
}

func (s *reportingService) TrialBalanceAsOf(ctx context.Context, asOf time.Time) (*domain.TrialBalance, error) {
	totals, err := s.reportingRepo.ListAccountTotalsAsOf(ctx, asOf)
	if err != nil {
		s.LogError(ctx, err, "Failed to load account totals for trial balance", slog.Time("as_of", asOf))
		return nil, err
	}

	accounts := make([]domain.Account, 0, len(totals))
	for _, t := range totals {
		acc := t.Account
		balance, err := acc.Category.Balance(acc.OpeningBalance, t.TotalDebit, t.TotalCredit)
		if err != nil {
			s.LogError(ctx, err, "Account has an unknown category", slog.String("code", acc.Code))
			return nil, err
		}
		acc.CurrentBalance = balance
		accounts = append(accounts, acc)
	}
	return s.build(ctx, accounts), nil
}

func (s *reportingService) build(ctx context.Context, accounts []domain.Account) *domain.TrialBalance {
	tb := domain.BuildTrialBalance(accounts)
	if !tb.Balanced {
		s.GetLogger(ctx).Warn("Trial balance does not balance",
			slog.String("debit", tb.TotalDebit.String()),
			slog.String("credit", tb.TotalCredit.String()))
	}
	return &tb
}
