package handlers_test

import (
	"context"
	"time"

	"github.com/SscSPs/backoffice_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/backoffice_ledger/internal/core/ports/services"
	"github.com/SscSPs/backoffice_ledger/internal/dto"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock AccountService ---
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) GetAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}
func (m *MockAccountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) DeactivateAccount(ctx context.Context, code string, userID string) error {
	args := m.Called(ctx, code, userID)
	return args.Error(0)
}
func (m *MockAccountService) EnsureCustomerPrepaymentAccount(ctx context.Context, tx pgx.Tx, customer domain.Customer) (*domain.Account, error) {
	args := m.Called(ctx, tx, customer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) SeedSystemAccounts(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}
func (m *MockAccountService) ValidateSystemAccounts(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

// --- Mock JournalService ---
type MockJournalService struct {
	mock.Mock
}

func (m *MockJournalService) PostEntry(ctx context.Context, draft domain.EntryDraft, userID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, draft, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}
func (m *MockJournalService) PostEntryInTx(ctx context.Context, tx pgx.Tx, draft domain.EntryDraft, userID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, tx, draft, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}
func (m *MockJournalService) ReverseEntry(ctx context.Context, number string, userID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, number, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}
func (m *MockJournalService) GetEntryByNumber(ctx context.Context, number string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}
func (m *MockJournalService) ListEntries(ctx context.Context, params dto.ListJournalsParams) (*dto.ListJournalsResponse, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListJournalsResponse), args.Error(1)
}
func (m *MockJournalService) ListLinesByAccount(ctx context.Context, accountCode string, params dto.ListJournalsParams) (*dto.ListLinesResponse, error) {
	args := m.Called(ctx, accountCode, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListLinesResponse), args.Error(1)
}

var _ portssvc.JournalSvcFacade = (*MockJournalService)(nil)

// --- Mock BalanceService ---
type MockBalanceService struct {
	mock.Mock
}

func (m *MockBalanceService) RecomputeInTx(ctx context.Context, tx pgx.Tx, accountID string) (decimal.Decimal, error) {
	args := m.Called(ctx, tx, accountID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}
func (m *MockBalanceService) Recompute(ctx context.Context, accountID string) (decimal.Decimal, error) {
	args := m.Called(ctx, accountID)
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

var _ portssvc.BalanceSvc = (*MockBalanceService)(nil)

// --- Mock PrepaymentService ---
type MockPrepaymentService struct {
	mock.Mock
}

func (m *MockPrepaymentService) CreatePrepayment(ctx context.Context, req dto.CreatePrepaymentRequest, userID string) (*domain.CustomerPrepayment, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CustomerPrepayment), args.Error(1)
}
func (m *MockPrepaymentService) ApplyPrepayment(ctx context.Context, prepaymentID string, req dto.ApplyPrepaymentRequest, userID string) (*domain.PrepaymentApplication, error) {
	args := m.Called(ctx, prepaymentID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PrepaymentApplication), args.Error(1)
}
func (m *MockPrepaymentService) ReverseApplication(ctx context.Context, applicationID string, userID string) (*domain.PrepaymentApplication, error) {
	args := m.Called(ctx, applicationID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PrepaymentApplication), args.Error(1)
}
func (m *MockPrepaymentService) GetPrepayment(ctx context.Context, prepaymentID string) (*domain.CustomerPrepayment, error) {
	args := m.Called(ctx, prepaymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CustomerPrepayment), args.Error(1)
}
func (m *MockPrepaymentService) GetWallet(ctx context.Context, customerID int64) (*domain.Wallet, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}
func (m *MockPrepaymentService) ReconcilePrepayments(ctx context.Context, customerID *int64) (int, error) {
	args := m.Called(ctx, customerID)
	return args.Int(0), args.Error(1)
}
func (m *MockPrepaymentService) BackfillPrepaymentPostings(ctx context.Context) (int, int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Int(1), args.Error(2)
}
func (m *MockPrepaymentService) PrepaymentBalance(ctx context.Context, customerID int64) (decimal.Decimal, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

var _ portssvc.PrepaymentSvcFacade = (*MockPrepaymentService)(nil)

// --- Mock CreditService ---
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

var _ portssvc.CreditSvc = (*MockCreditService)(nil)

// --- Mock FiscalYearService ---
type MockFiscalYearService struct {
	mock.Mock
}

func (m *MockFiscalYearService) fiscalYear(args mock.Arguments) (*domain.FiscalYear, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FiscalYear), args.Error(1)
}
func (m *MockFiscalYearService) Create(ctx context.Context, req dto.CreateFiscalYearRequest, userID string) (*domain.FiscalYear, error) {
	return m.fiscalYear(m.Called(ctx, req, userID))
}
func (m *MockFiscalYearService) SetCurrent(ctx context.Context, fiscalYearID string, userID string) (*domain.FiscalYear, error) {
	return m.fiscalYear(m.Called(ctx, fiscalYearID, userID))
}
func (m *MockFiscalYearService) Close(ctx context.Context, fiscalYearID string, userID string) (*domain.FiscalYear, error) {
	return m.fiscalYear(m.Called(ctx, fiscalYearID, userID))
}
func (m *MockFiscalYearService) Edit(ctx context.Context, fiscalYearID string, req dto.EditFiscalYearRequest, userID string) (*domain.FiscalYear, error) {
	return m.fiscalYear(m.Called(ctx, fiscalYearID, req, userID))
}
func (m *MockFiscalYearService) List(ctx context.Context) ([]domain.FiscalYear, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FiscalYear), args.Error(1)
}
func (m *MockFiscalYearService) GetCurrent(ctx context.Context) (*domain.FiscalYear, error) {
	return m.fiscalYear(m.Called(ctx))
}
func (m *MockFiscalYearService) EnsurePostingAllowedInTx(ctx context.Context, tx pgx.Tx, date time.Time) error {
	args := m.Called(ctx, tx, date)
	return args.Error(0)
}

var _ portssvc.FiscalYearSvc = (*MockFiscalYearService)(nil)

// --- Mock InvoiceService ---
type MockInvoiceService struct {
	mock.Mock
}

func (m *MockInvoiceService) invoice(args mock.Arguments) (*domain.Invoice, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}
func (m *MockInvoiceService) CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest, userID string) (*domain.Invoice, *domain.CreditEvaluation, error) {
	args := m.Called(ctx, req, userID)
	var (
		inv  *domain.Invoice
		eval *domain.CreditEvaluation
	)
	if args.Get(0) != nil {
		inv = args.Get(0).(*domain.Invoice)
	}
	if args.Get(1) != nil {
		eval = args.Get(1).(*domain.CreditEvaluation)
	}
	return inv, eval, args.Error(2)
}
func (m *MockInvoiceService) RecordPayment(ctx context.Context, invoiceID int64, req dto.RecordPaymentRequest, userID string) (*domain.Invoice, error) {
	return m.invoice(m.Called(ctx, invoiceID, req, userID))
}
func (m *MockInvoiceService) CancelInvoice(ctx context.Context, invoiceID int64, userID string) (*domain.Invoice, error) {
	return m.invoice(m.Called(ctx, invoiceID, userID))
}
func (m *MockInvoiceService) GetInvoice(ctx context.Context, invoiceID int64) (*domain.Invoice, error) {
	return m.invoice(m.Called(ctx, invoiceID))
}

var _ portssvc.InvoiceSvc = (*MockInvoiceService)(nil)

// --- Mock PayrollService ---
type MockPayrollService struct {
	mock.Mock
}

func (m *MockPayrollService) PostPayrollRun(ctx context.Context, req dto.PayrollRunRequest, userID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

var _ portssvc.PayrollSvc = (*MockPayrollService)(nil)

// --- Mock ReportingService ---
type MockReportingService struct {
	mock.Mock
}

func (m *MockReportingService) TrialBalance(ctx context.Context) (*domain.TrialBalance, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TrialBalance), args.Error(1)
}
func (m *MockReportingService) TrialBalanceAsOf(ctx context.Context, asOf time.Time) (*domain.TrialBalance, error) {
	args := m.Called(ctx, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TrialBalance), args.Error(1)
}

var _ portssvc.ReportingService = (*MockReportingService)(nil)
