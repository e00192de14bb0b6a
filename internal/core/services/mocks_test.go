package services_test

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/SscSPs/backoffice_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/backoffice_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/backoffice_ledger/internal/dto"
	"github.com/SscSPs/backoffice_ledger/internal/platform/lock"
)

// fakeTx stands in for a database transaction; services only pass it through.
type fakeTx struct {
	pgx.Tx
	name string
}

// MockTxManager hands out fake transactions and savepoints.
type MockTxManager struct {
	mock.Mock
}

func (m *MockTxManager) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockTxManager) BeginNested(ctx context.Context, tx pgx.Tx) (pgx.Tx, error) {
	args := m.Called(ctx, tx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockTxManager) Commit(ctx context.Context, tx pgx.Tx) error {
	return m.Called(ctx, tx).Error(0)
}

func (m *MockTxManager) Rollback(ctx context.Context, tx pgx.Tx) error {
	return m.Called(ctx, tx).Error(0)
}

// newPermissiveTxManager returns a manager that always succeeds. The root tx
// and savepoint are fixed so tests can match on them.
func newPermissiveTxManager(tx, sp pgx.Tx) *MockTxManager {
	m := new(MockTxManager)
	m.On("Begin", mock.Anything).Return(tx, nil).Maybe()
	m.On("BeginNested", mock.Anything, mock.Anything).Return(sp, nil).Maybe()
	m.On("Commit", mock.Anything, mock.Anything).Return(nil).Maybe()
	m.On("Rollback", mock.Anything, mock.Anything).Return(nil).Maybe()
	return m
}

// MockAccountRepository is a mock type for the AccountRepositoryFacade interface
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByCodes(ctx context.Context, codes []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, codes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAllAccounts(ctx context.Context) ([]domain.Account, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccountIDs(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	return m.Called(ctx, account).Error(0)
}

func (m *MockAccountRepository) DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error {
	return m.Called(ctx, accountID, userID, now).Error(0)
}

func (m *MockAccountRepository) FindAccountsByCodesForUpdate(ctx context.Context, tx pgx.Tx, codes []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, tx, codes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByIDForUpdate(ctx context.Context, tx pgx.Tx, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, tx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByCodeInTx(ctx context.Context, tx pgx.Tx, code string) (*domain.Account, error) {
	args := m.Called(ctx, tx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) SaveAccountInTx(ctx context.Context, tx pgx.Tx, account domain.Account) error {
	return m.Called(ctx, tx, account).Error(0)
}

func (m *MockAccountRepository) UpdateAccountProfileInTx(ctx context.Context, tx pgx.Tx, accountID string, name string, active bool, userID string, now time.Time) error {
	return m.Called(ctx, tx, accountID, name, active, userID, now).Error(0)
}

func (m *MockAccountRepository) UpdateCurrentBalanceInTx(ctx context.Context, tx pgx.Tx, accountID string, balance decimal.Decimal, now time.Time) error {
	return m.Called(ctx, tx, accountID, balance, now).Error(0)
}

// MockJournalRepository is a mock type for the JournalRepositoryFacade interface
type MockJournalRepository struct {
	mock.Mock
}

func (m *MockJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) FindEntryByNumber(ctx context.Context, number string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) ListEntries(ctx context.Context, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	args := m.Called(ctx, limit, nextToken)
	var entries []domain.JournalEntry
	if args.Get(0) != nil {
		entries = args.Get(0).([]domain.JournalEntry)
	}
	var next *string
	if args.Get(1) != nil {
		next = args.Get(1).(*string)
	}
	return entries, next, args.Error(2)
}

func (m *MockJournalRepository) ListLinesByAccount(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.JournalEntryLine, *string, error) {
	args := m.Called(ctx, accountID, limit, nextToken)
	var lines []domain.JournalEntryLine
	if args.Get(0) != nil {
		lines = args.Get(0).([]domain.JournalEntryLine)
	}
	var next *string
	if args.Get(1) != nil {
		next = args.Get(1).(*string)
	}
	return lines, next, args.Error(2)
}

func (m *MockJournalRepository) SaveEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry) error {
	return m.Called(ctx, tx, entry).Error(0)
}

func (m *MockJournalRepository) SumLinesByAccountInTx(ctx context.Context, tx pgx.Tx, accountID string) (decimal.Decimal, decimal.Decimal, error) {
	args := m.Called(ctx, tx, accountID)
	return args.Get(0).(decimal.Decimal), args.Get(1).(decimal.Decimal), args.Error(2)
}

// MockSequenceRepository is a mock type for the SequenceRepository interface
type MockSequenceRepository struct {
	mock.Mock
}

func (m *MockSequenceRepository) NextSequenceInTx(ctx context.Context, tx pgx.Tx, kind domain.SequenceKind, prefix string, year int) (int, error) {
	args := m.Called(ctx, tx, kind, prefix, year)
	return args.Int(0), args.Error(1)
}

func (m *MockSequenceRepository) ResyncSequenceInTx(ctx context.Context, tx pgx.Tx, kind domain.SequenceKind, prefix string, year int) error {
	return m.Called(ctx, tx, kind, prefix, year).Error(0)
}

// MockPrepaymentRepository is a mock type for the PrepaymentRepositoryFacade interface
type MockPrepaymentRepository struct {
	mock.Mock
}

func (m *MockPrepaymentRepository) FindPrepaymentByID(ctx context.Context, prepaymentID string) (*domain.CustomerPrepayment, error) {
	args := m.Called(ctx, prepaymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CustomerPrepayment), args.Error(1)
}

func (m *MockPrepaymentRepository) ListPrepaymentsByCustomer(ctx context.Context, customerID int64) ([]domain.CustomerPrepayment, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CustomerPrepayment), args.Error(1)
}

func (m *MockPrepaymentRepository) ListUnpostedPrepayments(ctx context.Context, limit int) ([]domain.CustomerPrepayment, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CustomerPrepayment), args.Error(1)
}

func (m *MockPrepaymentRepository) SavePrepaymentInTx(ctx context.Context, tx pgx.Tx, prepayment domain.CustomerPrepayment) error {
	return m.Called(ctx, tx, prepayment).Error(0)
}

func (m *MockPrepaymentRepository) FindPrepaymentByIDForUpdate(ctx context.Context, tx pgx.Tx, prepaymentID string) (*domain.CustomerPrepayment, error) {
	args := m.Called(ctx, tx, prepaymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CustomerPrepayment), args.Error(1)
}

func (m *MockPrepaymentRepository) UpdatePrepaymentUsageInTx(ctx context.Context, tx pgx.Tx, prepaymentID string, used decimal.Decimal, status domain.PrepaymentStatus, userID string, now time.Time) error {
	return m.Called(ctx, tx, prepaymentID, used, status, userID, now).Error(0)
}

func (m *MockPrepaymentRepository) MarkPrepaymentReconciledInTx(ctx context.Context, tx pgx.Tx, prepaymentID string, used decimal.Decimal, status domain.PrepaymentStatus, reconciledAt time.Time) error {
	return m.Called(ctx, tx, prepaymentID, used, status, reconciledAt).Error(0)
}

func (m *MockPrepaymentRepository) SetPrepaymentJournalEntryInTx(ctx context.Context, tx pgx.Tx, prepaymentID string, entryID string) error {
	return m.Called(ctx, tx, prepaymentID, entryID).Error(0)
}

func (m *MockPrepaymentRepository) ListPrepaymentUsageForUpdate(ctx context.Context, tx pgx.Tx, customerID *int64) ([]portsrepo.PrepaymentUsage, error) {
	args := m.Called(ctx, tx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]portsrepo.PrepaymentUsage), args.Error(1)
}

func (m *MockPrepaymentRepository) SaveApplicationInTx(ctx context.Context, tx pgx.Tx, app domain.PrepaymentApplication) error {
	return m.Called(ctx, tx, app).Error(0)
}

func (m *MockPrepaymentRepository) FindApplicationByIDInTx(ctx context.Context, tx pgx.Tx, applicationID string) (*domain.PrepaymentApplication, error) {
	args := m.Called(ctx, tx, applicationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PrepaymentApplication), args.Error(1)
}

func (m *MockPrepaymentRepository) SumApplicationsInTx(ctx context.Context, tx pgx.Tx, prepaymentID string) (decimal.Decimal, error) {
	args := m.Called(ctx, tx, prepaymentID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockPrepaymentRepository) ListApplications(ctx context.Context, prepaymentID string) ([]domain.PrepaymentApplication, error) {
	args := m.Called(ctx, prepaymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PrepaymentApplication), args.Error(1)
}

// MockCustomerRepository is a mock type for the CustomerRepository interface
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) FindCustomerByID(ctx context.Context, customerID int64) (*domain.Customer, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindCustomerByIDForUpdate(ctx context.Context, tx pgx.Tx, customerID int64) (*domain.Customer, error) {
	args := m.Called(ctx, tx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *MockCustomerRepository) AdjustOutstandingInTx(ctx context.Context, tx pgx.Tx, customerID int64, delta decimal.Decimal, now time.Time) error {
	return m.Called(ctx, tx, customerID, delta, now).Error(0)
}

// MockInvoiceRepository is a mock type for the InvoiceRepository interface
type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) SaveInvoiceInTx(ctx context.Context, tx pgx.Tx, invoice domain.Invoice) (int64, error) {
	args := m.Called(ctx, tx, invoice)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockInvoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID int64) (*domain.Invoice, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindInvoiceByIDForUpdate(ctx context.Context, tx pgx.Tx, invoiceID int64) (*domain.Invoice, error) {
	args := m.Called(ctx, tx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) UpdateInvoiceSettlementInTx(ctx context.Context, tx pgx.Tx, invoice domain.Invoice) error {
	return m.Called(ctx, tx, invoice).Error(0)
}

func (m *MockInvoiceRepository) ListInvoicesByCustomer(ctx context.Context, customerID int64) ([]domain.Invoice, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Invoice), args.Error(1)
}

// MockFiscalYearRepository is a mock type for the FiscalYearRepositoryFacade interface
type MockFiscalYearRepository struct {
	mock.Mock
}

func (m *MockFiscalYearRepository) ListFiscalYears(ctx context.Context) ([]domain.FiscalYear, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FiscalYear), args.Error(1)
}

func (m *MockFiscalYearRepository) FindFiscalYearByID(ctx context.Context, fiscalYearID string) (*domain.FiscalYear, error) {
	args := m.Called(ctx, fiscalYearID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FiscalYear), args.Error(1)
}

func (m *MockFiscalYearRepository) FindCurrentFiscalYear(ctx context.Context) (*domain.FiscalYear, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FiscalYear), args.Error(1)
}

func (m *MockFiscalYearRepository) FindFiscalYearByDateInTx(ctx context.Context, tx pgx.Tx, date time.Time) (*domain.FiscalYear, error) {
	args := m.Called(ctx, tx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FiscalYear), args.Error(1)
}

func (m *MockFiscalYearRepository) LockFiscalYearsInTx(ctx context.Context, tx pgx.Tx) error {
	return m.Called(ctx, tx).Error(0)
}

func (m *MockFiscalYearRepository) ListFiscalYearsInTx(ctx context.Context, tx pgx.Tx) ([]domain.FiscalYear, error) {
	args := m.Called(ctx, tx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FiscalYear), args.Error(1)
}

func (m *MockFiscalYearRepository) FindFiscalYearByIDForUpdate(ctx context.Context, tx pgx.Tx, fiscalYearID string) (*domain.FiscalYear, error) {
	args := m.Called(ctx, tx, fiscalYearID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FiscalYear), args.Error(1)
}

func (m *MockFiscalYearRepository) SaveFiscalYearInTx(ctx context.Context, tx pgx.Tx, fy domain.FiscalYear) error {
	return m.Called(ctx, tx, fy).Error(0)
}

func (m *MockFiscalYearRepository) UpdateFiscalYearRangeInTx(ctx context.Context, tx pgx.Tx, fy domain.FiscalYear) error {
	return m.Called(ctx, tx, fy).Error(0)
}

func (m *MockFiscalYearRepository) SetCurrentFiscalYearInTx(ctx context.Context, tx pgx.Tx, fiscalYearID string, userID string, now time.Time) error {
	return m.Called(ctx, tx, fiscalYearID, userID, now).Error(0)
}

func (m *MockFiscalYearRepository) CloseFiscalYearInTx(ctx context.Context, tx pgx.Tx, fiscalYearID string, userID string, now time.Time) error {
	return m.Called(ctx, tx, fiscalYearID, userID, now).Error(0)
}

// MockBalanceService is a mock type for the BalanceSvc interface
type MockBalanceService struct {
	mock.Mock
}

func (m *MockBalanceService) Recompute(ctx context.Context, accountID string) (decimal.Decimal, error) {
	args := m.Called(ctx, accountID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockBalanceService) RecomputeInTx(ctx context.Context, tx pgx.Tx, accountID string) (decimal.Decimal, error) {
	args := m.Called(ctx, tx, accountID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockBalanceService) RecomputeByCode(ctx context.Context, code string) (*domain.Account, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockBalanceService) RecomputeAll(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

// MockJournalPoster is a mock type for the JournalPosterSvc interface
type MockJournalPoster struct {
	mock.Mock
}

func (m *MockJournalPoster) PostEntry(ctx context.Context, draft domain.EntryDraft, userID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, draft, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalPoster) PostEntryInTx(ctx context.Context, tx pgx.Tx, draft domain.EntryDraft, userID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, tx, draft, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalPoster) ReverseEntry(ctx context.Context, number string, userID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, number, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

// MockAccountWriter is a mock type for the AccountWriterSvc interface
type MockAccountWriter struct {
	mock.Mock
}

func (m *MockAccountWriter) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountWriter) DeactivateAccount(ctx context.Context, code string, userID string) error {
	return m.Called(ctx, code, userID).Error(0)
}

func (m *MockAccountWriter) EnsureCustomerPrepaymentAccount(ctx context.Context, tx pgx.Tx, customer domain.Customer) (*domain.Account, error) {
	args := m.Called(ctx, tx, customer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

// MockPrepaymentReconciler is a mock type for the PrepaymentReconcilerSvc interface
type MockPrepaymentReconciler struct {
	mock.Mock
}

func (m *MockPrepaymentReconciler) ReconcilePrepayments(ctx context.Context, customerID *int64) (int, error) {
	args := m.Called(ctx, customerID)
	return args.Int(0), args.Error(1)
}

func (m *MockPrepaymentReconciler) BackfillPrepaymentPostings(ctx context.Context) (int, int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Int(1), args.Error(2)
}

func (m *MockPrepaymentReconciler) PrepaymentBalance(ctx context.Context, customerID int64) (decimal.Decimal, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// MockCreditService is a mock type for the CreditSvc interface
type MockCreditService struct {
	mock.Mock
}

func (m *MockCreditService) Evaluate(ctx context.Context, customerID int64, additional decimal.Decimal) (*domain.CreditEvaluation, error) {
	args := m.Called(ctx, customerID, additional)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CreditEvaluation), args.Error(1)
}

// MockFiscalYearService is a mock of the posting guard used by the journal engine.
type MockFiscalYearService struct {
	mock.Mock
}

func (m *MockFiscalYearService) Create(ctx context.Context, req dto.CreateFiscalYearRequest, userID string) (*domain.FiscalYear, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FiscalYear), args.Error(1)
}

func (m *MockFiscalYearService) SetCurrent(ctx context.Context, fiscalYearID string, userID string) (*domain.FiscalYear, error) {
	args := m.Called(ctx, fiscalYearID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FiscalYear), args.Error(1)
}

func (m *MockFiscalYearService) Close(ctx context.Context, fiscalYearID string, userID string) (*domain.FiscalYear, error) {
	args := m.Called(ctx, fiscalYearID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FiscalYear), args.Error(1)
}

func (m *MockFiscalYearService) Edit(ctx context.Context, fiscalYearID string, req dto.EditFiscalYearRequest, userID string) (*domain.FiscalYear, error) {
	args := m.Called(ctx, fiscalYearID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FiscalYear), args.Error(1)
}

func (m *MockFiscalYearService) List(ctx context.Context) ([]domain.FiscalYear, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FiscalYear), args.Error(1)
}

func (m *MockFiscalYearService) GetCurrent(ctx context.Context) (*domain.FiscalYear, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FiscalYear), args.Error(1)
}

func (m *MockFiscalYearService) EnsurePostingAllowedInTx(ctx context.Context, tx pgx.Tx, date time.Time) error {
	return m.Called(ctx, tx, date).Error(0)
}

// --- shared helpers ---

var (
	testTx = &fakeTx{name: "tx"}
	testSP = &fakeTx{name: "savepoint"}
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func fixedClock() time.Time {
	return time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)
}

func newTestLocker() lock.Locker {
	return lock.NewLocalLocker(50 * time.Millisecond)
}

// decEq matches a decimal argument by value.
func decEq(s string) interface{} {
	want := dec(s)
	return mock.MatchedBy(func(d decimal.Decimal) bool { return d.Equal(want) })
}

type MockReportingRepository struct {
	mock.Mock
}

func (m *MockReportingRepository) ListAccountTotalsAsOf(ctx context.Context, asOf time.Time) ([]portsrepo.AccountTotals, error) {
	args := m.Called(ctx, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]portsrepo.AccountTotals), args.Error(1)
}
