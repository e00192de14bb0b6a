package services

import (
	portsrepo "github.com/SscSPs/backoffice_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/backoffice_ledger/internal/core/ports/services"
	"github.com/SscSPs/backoffice_ledger/internal/platform/config"
	"github.com/SscSPs/backoffice_ledger/internal/platform/lock"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, locker lock.Locker) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Account = NewAccountService(repos.AccountRepo, cfg.SystemAccounts)
	container.FiscalYear = NewFiscalYearService(repos.TxManager, repos.FiscalYearRepo, nil)
	container.Balance = NewBalanceService(repos.TxManager, repos.AccountRepo, repos.JournalRepo, locker, cfg.RecomputeWorkers)

	// Every posting goes through the journal engine, which consults the fiscal
	// year manager and hands touched accounts to the balance recalculator.
	container.Journal = NewJournalService(
		repos.TxManager,
		repos.JournalRepo,
		repos.AccountRepo,
		repos.SequenceRepo,
		container.Balance,
		WithPostingPeriods(container.FiscalYear),
	)

	container.Prepayment = NewPrepaymentService(PrepaymentServiceDeps{
		TxManager:      repos.TxManager,
		PrepaymentRepo: repos.PrepaymentRepo,
		CustomerRepo:   repos.CustomerRepo,
		InvoiceRepo:    repos.InvoiceRepo,
		SequenceRepo:   repos.SequenceRepo,
		AccountSvc:     container.Account,
		JournalSvc:     container.Journal,
		Locker:         locker,
		SystemAccounts: cfg.SystemAccounts,
		PostingPolicy:  cfg.PostingPolicy,
	})
	container.Credit = NewCreditService(repos.CustomerRepo, container.Prepayment)

	container.Invoice = NewInvoiceService(InvoiceServiceDeps{
		TxManager:      repos.TxManager,
		InvoiceRepo:    repos.InvoiceRepo,
		CustomerRepo:   repos.CustomerRepo,
		SequenceRepo:   repos.SequenceRepo,
		JournalSvc:     container.Journal,
		CreditSvc:      container.Credit,
		Prepayments:    container.Prepayment,
		SystemAccounts: cfg.SystemAccounts,
	})
	container.Payroll = NewPayrollService(container.Journal, cfg.SystemAccounts)
	container.Reporting = NewReportingService(repos.AccountRepo, repos.ReportingRepo)

	return container
}
