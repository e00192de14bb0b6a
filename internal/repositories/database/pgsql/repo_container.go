package pgsql

import (
	portsrepo "github.com/SscSPs/backoffice_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires every pgx repository onto one pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		TxManager:      &BaseRepository{Pool: dbPool},
		AccountRepo:    newPgxAccountRepository(dbPool),
		JournalRepo:    newPgxJournalRepository(dbPool),
		SequenceRepo:   newPgxSequenceRepository(dbPool),
		PrepaymentRepo: newPgxPrepaymentRepository(dbPool),
		CustomerRepo:   newPgxCustomerRepository(dbPool),
		InvoiceRepo:    newPgxInvoiceRepository(dbPool),
		FiscalYearRepo: newPgxFiscalYearRepository(dbPool),
		ReportingRepo:  newReportingRepository(dbPool),
	}
}
