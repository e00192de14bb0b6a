package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/backoffice_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/backoffice_ledger/internal/core/ports/services"
	"github.com/SscSPs/backoffice_ledger/internal/dto"
	"github.com/SscSPs/backoffice_ledger/internal/platform/config"
	"github.com/SscSPs/backoffice_ledger/internal/utils/accounting"
)

type payrollService struct {
	BaseService
	journalSvc     portssvc.JournalPosterSvc
	systemAccounts config.SystemAccounts
}

// NewPayrollService creates the payroll posting service.
func NewPayrollService(journalSvc portssvc.JournalPosterSvc, systemAccounts config.SystemAccounts) portssvc.PayrollSvc {
	return &payrollService{journalSvc: journalSvc, systemAccounts: systemAccounts}
}

var _ portssvc.PayrollSvc = (*payrollService)(nil)

// PostPayrollRun debits salaries expense with the gross and credits each
// deduction payable and net salaries payable.
func (s *payrollService) PostPayrollRun(ctx context.Context, req dto.PayrollRunRequest, userID string) (*domain.JournalEntry, error) {
	if !req.Gross.IsPositive() {
		return nil, ErrInvalidAmount
	}
	if err := accounting.CheckScale(req.Gross, req.PAYE, req.Pension, req.NHIS, req.NHF, req.OtherDeductions, req.Net); err != nil {
		return nil, err
	}
	if !req.Gross.Equal(req.Net.Add(req.TotalDeductions())) {
		return nil, fmt.Errorf("%w: gross %s, net %s, deductions %s", ErrPayrollUnbalanced, req.Gross, req.Net, req.TotalDeductions())
	}

	sa := s.systemAccounts
	lines := []domain.DraftLine{
		{AccountCode: sa.SalariesExpense, Amount: req.Gross, Description: "Gross pay " + req.Period},
	}
	credit := func(code string, amount decimal.Decimal, description string) {
		if amount.IsPositive() {
			lines = append(lines, domain.DraftLine{AccountCode: code, Amount: amount.Neg(), Description: description})
		}
	}
	credit(sa.PAYEPayable, req.PAYE, "PAYE")
	credit(sa.PensionPayable, req.Pension, "Pension")
	credit(sa.NHISPayable, req.NHIS, "NHIS")
	credit(sa.NHFPayable, req.NHF, "NHF")
	credit(sa.OtherDeductionsPayable, req.OtherDeductions, "Other deductions")
	credit(sa.SalariesPayable, req.Net, "Net pay")

	reference := req.Reference
	if reference == "" {
		reference = "PAYROLL-" + req.Period
	}

	entry, err := s.journalSvc.PostEntry(ctx, domain.EntryDraft{
		Prefix:        domain.PrefixPayroll,
		EntryDate:     req.RunDate,
		Reference:     reference,
		Description:   "Payroll run " + req.Period,
		Lines:         lines,
		AutoGenerated: true,
	}, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to post payroll run", slog.String("period", req.Period))
		return nil, err
	}
	return entry, nil
}
