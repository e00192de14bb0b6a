package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/SscSPs/backoffice_ledger/internal/apperrors"
	"github.com/SscSPs/backoffice_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/backoffice_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/backoffice_ledger/internal/core/ports/services"
	"github.com/SscSPs/backoffice_ledger/internal/dto"
	"github.com/SscSPs/backoffice_ledger/internal/platform/config"
)

// accountService implements the AccountSvcFacade interface
type accountService struct {
	BaseService
	accountRepo    portsrepo.AccountRepositoryFacade
	systemAccounts config.SystemAccounts
}

// ServiceOption is a functional option for configuring the account service
type ServiceOption func(*accountService)

// WithAccountClock overrides the clock used for audit stamps.
func WithAccountClock(clock func() time.Time) ServiceOption {
	return func(s *accountService) {
		s.Clock = clock
	}
}

// NewAccountService creates a new account service with the provided options
func NewAccountService(repo portsrepo.AccountRepositoryFacade, systemAccounts config.SystemAccounts, options ...ServiceOption) portssvc.AccountSvcFacade {
	svc := &accountService{
		accountRepo:    repo,
		systemAccounts: systemAccounts,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// Ensure accountService implements the AccountSvcFacade interface
var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	code := strings.TrimSpace(req.Code)
	if code == "" {
		return nil, fmt.Errorf("%w: account code is required", apperrors.ErrValidation)
	}
	if !req.Category.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidCategory, req.Category)
	}

	now := s.Now()
	account := domain.Account{
		AccountID:      uuid.NewString(),
		Code:           code,
		Name:           req.Name,
		Category:       req.Category,
		Subtype:        req.Subtype,
		OpeningBalance: req.OpeningBalance,
		CurrentBalance: req.OpeningBalance,
		IsActive:       true,
		AuditFields:    domain.NewAuditFields(userID, now),
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to save account", slog.String("code", code))
		return nil, err
	}

	s.LogInfo(ctx, "Account created", slog.String("account_id", account.AccountID), slog.String("code", code))
	return &account, nil
}

func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	return s.accountRepo.FindAccountByID(ctx, accountID)
}

func (s *accountService) GetAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	return s.accountRepo.FindAccountByCode(ctx, code)
}

func (s *accountService) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts")
		return nil, err
	}
	return accounts, nil
}

func (s *accountService) DeactivateAccount(ctx context.Context, code string, userID string) error {
	for _, systemCode := range s.systemAccounts.Codes() {
		if systemCode == code {
			return fmt.Errorf("%w: %s", ErrSystemAccount, code)
		}
	}

	acc, err := s.accountRepo.FindAccountByCode(ctx, code)
	if err != nil {
		return err
	}
	if !acc.IsActive {
		return nil
	}

	if err := s.accountRepo.DeactivateAccount(ctx, acc.AccountID, userID, s.Now()); err != nil {
		s.LogError(ctx, err, "Failed to deactivate account", slog.String("code", code))
		return err
	}
	s.LogInfo(ctx, "Account deactivated", slog.String("code", code), slog.String("user_id", userID))
	return nil
}

func (s *accountService) EnsureCustomerPrepaymentAccount(ctx context.Context, tx pgx.Tx, customer domain.Customer) (*domain.Account, error) {
	code := domain.CustomerPrepaymentAccountCode(s.systemAccounts.PrepaymentBase, customer.CustomerID)
	name := fmt.Sprintf("Customer Prepayment - %s", customer.Name)
	active := customer.IsActive()
	now := s.Now()

	acc, err := s.accountRepo.FindAccountByCodeInTx(ctx, tx, code)
	switch {
	case err == nil:
		if acc.Name != name || acc.IsActive != active {
			if err := s.accountRepo.UpdateAccountProfileInTx(ctx, tx, acc.AccountID, name, active, domain.SystemUserID, now); err != nil {
				return nil, err
			}
			acc.Name, acc.IsActive = name, active
		}
		return acc, nil
	case !errors.Is(err, apperrors.ErrNotFound):
		return nil, err
	}

	created := domain.Account{
		AccountID:      uuid.NewString(),
		Code:           code,
		Name:           name,
		Category:       domain.Liability,
		Subtype:        domain.SubtypeCustomerPrepayment,
		OpeningBalance: decimal.Zero,
		CurrentBalance: decimal.Zero,
		IsActive:       active,
		AuditFields:    domain.NewAuditFields(domain.SystemUserID, now),
	}
	if err := s.accountRepo.SaveAccountInTx(ctx, tx, created); err != nil {
		return nil, err
	}
	s.LogInfo(ctx, "Customer prepayment account created", slog.String("code", code), slog.Int64("customer_id", customer.CustomerID))
	return &created, nil
}

// systemAccount describes one well-known account the ledger expects to exist.
type systemAccount struct {
	key      string
	code     string
	name     string
	category domain.AccountCategory
	subtype  string
}

func (s *accountService) systemAccountDefinitions() []systemAccount {
	sa := s.systemAccounts
	return []systemAccount{
		{"LEDGER_ACCOUNT_CASH", sa.Cash, "Cash on Hand", domain.Asset, domain.SubtypeCash},
		{"LEDGER_ACCOUNT_BANK", sa.Bank, "Bank", domain.Asset, domain.SubtypeBank},
		{"LEDGER_ACCOUNT_RECEIVABLES", sa.Receivables, "Accounts Receivable", domain.Asset, domain.SubtypeReceivable},
		{"LEDGER_ACCOUNT_SALES_REVENUE", sa.SalesRevenue, "Sales Revenue", domain.Revenue, domain.SubtypeSales},
		{"LEDGER_ACCOUNT_VAT_OUTPUT", sa.VATOutput, "VAT Output", domain.Liability, domain.SubtypeTaxPayable},
		{"LEDGER_ACCOUNT_SALARIES_EXPENSE", sa.SalariesExpense, "Salaries and Wages", domain.Expense, domain.SubtypePayrollExpense},
		{"LEDGER_ACCOUNT_SALARIES_PAYABLE", sa.SalariesPayable, "Salaries Payable", domain.Liability, domain.SubtypePayrollPayable},
		{"LEDGER_ACCOUNT_PAYE_PAYABLE", sa.PAYEPayable, "PAYE Payable", domain.Liability, domain.SubtypeTaxPayable},
		{"LEDGER_ACCOUNT_PENSION_PAYABLE", sa.PensionPayable, "Pension Payable", domain.Liability, domain.SubtypePayrollPayable},
		{"LEDGER_ACCOUNT_NHIS_PAYABLE", sa.NHISPayable, "NHIS Payable", domain.Liability, domain.SubtypePayrollPayable},
		{"LEDGER_ACCOUNT_NHF_PAYABLE", sa.NHFPayable, "NHF Payable", domain.Liability, domain.SubtypePayrollPayable},
		{"LEDGER_ACCOUNT_OTHER_DEDUCTIONS_PAYABLE", sa.OtherDeductionsPayable, "Other Deductions Payable", domain.Liability, domain.SubtypePayrollPayable},
	}
}

func (s *accountService) SeedSystemAccounts(ctx context.Context) (int, error) {
	created := 0
	now := s.Now()
	for _, def := range s.systemAccountDefinitions() {
		_, err := s.accountRepo.FindAccountByCode(ctx, def.code)
		if err == nil {
			continue
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			return created, err
		}

		acc := domain.Account{
			AccountID:      uuid.NewString(),
			Code:           def.code,
			Name:           def.name,
			Category:       def.category,
			Subtype:        def.subtype,
			OpeningBalance: decimal.Zero,
			CurrentBalance: decimal.Zero,
			IsActive:       true,
			AuditFields:    domain.NewAuditFields(domain.SystemUserID, now),
		}
		if err := s.accountRepo.SaveAccount(ctx, acc); err != nil {
			return created, fmt.Errorf("seed %s (%s): %w", def.key, def.code, err)
		}
		created++
	}

	if created > 0 {
		s.LogInfo(ctx, "Seeded system accounts", slog.Int("created", created))
	}
	return created, nil
}

func (s *accountService) ValidateSystemAccounts(ctx context.Context) error {
	defs := s.systemAccountDefinitions()
	codes := make([]string, len(defs))
	for i, def := range defs {
		codes[i] = def.code
	}

	found, err := s.accountRepo.FindAccountsByCodes(ctx, codes)
	if err != nil {
		return err
	}

	var problems []string
	for _, def := range defs {
		acc, ok := found[def.code]
		switch {
		case !ok:
			problems = append(problems, fmt.Sprintf("%s=%s missing", def.key, def.code))
		case !acc.IsActive:
			problems = append(problems, fmt.Sprintf("%s=%s inactive", def.key, def.code))
		case acc.Category != def.category:
			problems = append(problems, fmt.Sprintf("%s=%s is %s, want %s", def.key, def.code, acc.Category, def.category))
		}
	}
	if len(problems) > 0 {
		sort.Strings(problems)
		return fmt.Errorf("%w: %s", ErrSystemAccountsBroken, strings.Join(problems, "; "))
	}
	return nil
}
