package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/SscSPs/backoffice_ledger/internal/apperrors"
	"github.com/SscSPs/backoffice_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/backoffice_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/backoffice_ledger/internal/core/ports/services"
	"github.com/SscSPs/backoffice_ledger/internal/dto"
	"github.com/SscSPs/backoffice_ledger/internal/platform/config"
	"github.com/SscSPs/backoffice_ledger/internal/utils/accounting"
)

// invoiceService is the part of invoicing that touches the ledger: raising
// the charge, recording payments and cancelling.
type invoiceService struct {
	BaseService
	txManager      portsrepo.TransactionManager
	invoiceRepo    portsrepo.InvoiceRepository
	customerRepo   portsrepo.CustomerRepository
	journalSvc     portssvc.JournalPosterSvc
	creditSvc      portssvc.CreditSvc
	prepayments    portssvc.PrepaymentReconcilerSvc
	numberer       documentNumberer
	systemAccounts config.SystemAccounts
}

// InvoiceServiceDeps groups what the invoice service needs.
type InvoiceServiceDeps struct {
	TxManager      portsrepo.TransactionManager
	InvoiceRepo    portsrepo.InvoiceRepository
	CustomerRepo   portsrepo.CustomerRepository
	SequenceRepo   portsrepo.SequenceRepository
	JournalSvc     portssvc.JournalPosterSvc
	CreditSvc      portssvc.CreditSvc
	Prepayments    portssvc.PrepaymentReconcilerSvc
	SystemAccounts config.SystemAccounts
	Clock          func() time.Time
}

// NewInvoiceService creates the invoice service.
func NewInvoiceService(deps InvoiceServiceDeps) portssvc.InvoiceSvc {
	return &invoiceService{
		BaseService:    BaseService{Clock: deps.Clock},
		txManager:      deps.TxManager,
		invoiceRepo:    deps.InvoiceRepo,
		customerRepo:   deps.CustomerRepo,
		journalSvc:     deps.JournalSvc,
		creditSvc:      deps.CreditSvc,
		prepayments:    deps.Prepayments,
		numberer:       documentNumberer{txManager: deps.TxManager, sequenceRepo: deps.SequenceRepo},
		systemAccounts: deps.SystemAccounts,
	}
}

var _ portssvc.InvoiceSvc = (*invoiceService)(nil)

// evaluateCredit runs the advisory credit check. Failures are logged and never
// block the invoice.
func (s *invoiceService) evaluateCredit(ctx context.Context, customerID int64, amount decimal.Decimal) *domain.CreditEvaluation {
	if _, err := s.prepayments.ReconcilePrepayments(ctx, &customerID); err != nil {
		s.GetLogger(ctx).Warn("Prepayment reconciliation before credit check failed",
			slog.Int64("customer_id", customerID), slog.String("error", err.Error()))
	}
	eval, err := s.creditSvc.Evaluate(ctx, customerID, amount)
	if err != nil {
		s.GetLogger(ctx).Warn("Credit evaluation failed",
			slog.Int64("customer_id", customerID), slog.String("error", err.Error()))
		return nil
	}
	return eval
}

func (s *invoiceService) salesLines(inv domain.Invoice) []domain.DraftLine {
	lines := []domain.DraftLine{
		{AccountCode: s.systemAccounts.Receivables, Amount: inv.TotalAmount},
		{AccountCode: s.systemAccounts.SalesRevenue, Amount: inv.SubTotal.Neg()},
	}
	if inv.VATAmount.IsPositive() {
		lines = append(lines, domain.DraftLine{AccountCode: s.systemAccounts.VATOutput, Amount: inv.VATAmount.Neg()})
	}
	return lines
}

func (s *invoiceService) CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest, userID string) (*domain.Invoice, *domain.CreditEvaluation, error) {
	if !req.SubTotal.IsPositive() || req.VATAmount.IsNegative() {
		return nil, nil, ErrInvalidAmount
	}
	if err := accounting.CheckScale(req.SubTotal, req.VATAmount); err != nil {
		return nil, nil, err
	}
	invoiceDate := domain.TruncateDate(req.InvoiceDate)
	dueDate := domain.TruncateDate(req.DueDate)
	if dueDate.Before(invoiceDate) {
		return nil, nil, ErrInvalidDueDate
	}

	total := req.SubTotal.Add(req.VATAmount)
	eval := s.evaluateCredit(ctx, req.CustomerID, total)

	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer func() { _ = s.txManager.Rollback(ctx, tx) }()

	if _, err := s.customerRepo.FindCustomerByIDForUpdate(ctx, tx, req.CustomerID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil, fmt.Errorf("%w: %d", ErrUnknownCustomer, req.CustomerID)
		}
		return nil, nil, err
	}

	now := s.Now()
	inv := domain.Invoice{
		CustomerID:        req.CustomerID,
		InvoiceDate:       invoiceDate,
		DueDate:           dueDate,
		SubTotal:          req.SubTotal,
		VATAmount:         req.VATAmount,
		TotalAmount:       total,
		PaidAmount:        decimal.Zero,
		PrepaymentApplied: decimal.Zero,
		AuditFields:       domain.NewAuditFields(userID, now),
	}
	inv.Status = inv.DeriveStatus(now)

	inv.Number, err = s.numberer.assign(ctx, tx, domain.SequenceInvoice, domain.PrefixInvoice, invoiceDate.Year(), func(sp pgx.Tx, number string) error {
		inv.Number = number
		id, err := s.invoiceRepo.SaveInvoiceInTx(ctx, sp, inv)
		inv.InvoiceID = id
		return err
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to save invoice", slog.Int64("customer_id", req.CustomerID))
		return nil, nil, err
	}

	// Invoice, receipt and cancellation postings are always strict: none of
	// them is covered by backfill-postings.
	entry, err := s.journalSvc.PostEntryInTx(ctx, tx, domain.EntryDraft{
		Prefix:        domain.PrefixSales,
		EntryDate:     invoiceDate,
		Reference:     inv.Number,
		Description:   "Sales invoice " + inv.Number,
		Lines:         s.salesLines(inv),
		AutoGenerated: true,
	}, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to post invoice", slog.String("number", inv.Number))
		return nil, nil, err
	}
	inv.JournalEntryID = &entry.EntryID
	if err := s.invoiceRepo.UpdateInvoiceSettlementInTx(ctx, tx, inv); err != nil {
		return nil, nil, err
	}

	if err := s.customerRepo.AdjustOutstandingInTx(ctx, tx, req.CustomerID, total, now); err != nil {
		return nil, nil, err
	}

	if err := s.txManager.Commit(ctx, tx); err != nil {
		return nil, nil, err
	}

	s.LogInfo(ctx, "Invoice created",
		slog.String("number", inv.Number),
		slog.Int64("customer_id", inv.CustomerID),
		slog.String("total", total.String()))
	return &inv, eval, nil
}

func (s *invoiceService) lockInvoice(ctx context.Context, tx pgx.Tx, invoiceID int64) (*domain.Invoice, error) {
	inv, err := s.invoiceRepo.FindInvoiceByIDForUpdate(ctx, tx, invoiceID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %d", ErrUnknownInvoice, invoiceID)
		}
		return nil, err
	}
	return inv, nil
}

func (s *invoiceService) RecordPayment(ctx context.Context, invoiceID int64, req dto.RecordPaymentRequest, userID string) (*domain.Invoice, error) {
	if !req.Amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	if err := accounting.CheckScale(req.Amount); err != nil {
		return nil, err
	}

	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = s.txManager.Rollback(ctx, tx) }()

	inv, err := s.lockInvoice(ctx, tx, invoiceID)
	if err != nil {
		return nil, err
	}
	if inv.Status == domain.InvoiceCancelled {
		return nil, ErrInvoiceCancelled
	}
	if !inv.Remaining().IsPositive() {
		return nil, fmt.Errorf("%w: %s", ErrInvoiceAlreadySettled, inv.Number)
	}
	if req.Amount.GreaterThan(inv.Remaining()) {
		return nil, fmt.Errorf("%w: owed %s, paid %s", ErrPaymentExceedsBalance, inv.Remaining(), req.Amount)
	}

	now := s.Now()
	date := domain.TruncateDate(req.Date)
	if _, err := s.journalSvc.PostEntryInTx(ctx, tx, domain.EntryDraft{
		Prefix:      domain.PrefixReceipt,
		EntryDate:   date,
		Reference:   inv.Number,
		Description: fmt.Sprintf("Payment received for %s %s", inv.Number, req.Reference),
		Lines: []domain.DraftLine{
			{AccountCode: receivingAccount(s.systemAccounts, req.Method), Amount: req.Amount},
			{AccountCode: s.systemAccounts.Receivables, Amount: req.Amount.Neg()},
		},
		AutoGenerated: true,
	}, userID); err != nil {
		s.LogError(ctx, err, "Failed to post invoice payment", slog.String("number", inv.Number))
		return nil, err
	}

	inv.PaidAmount = inv.PaidAmount.Add(req.Amount)
	inv.Status = inv.DeriveStatus(now)
	inv.LastUpdatedAt, inv.LastUpdatedBy = now, userID
	if err := s.invoiceRepo.UpdateInvoiceSettlementInTx(ctx, tx, *inv); err != nil {
		return nil, err
	}
	if err := s.customerRepo.AdjustOutstandingInTx(ctx, tx, inv.CustomerID, req.Amount.Neg(), now); err != nil {
		return nil, err
	}

	if err := s.txManager.Commit(ctx, tx); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Invoice payment recorded",
		slog.String("number", inv.Number),
		slog.String("amount", req.Amount.String()),
		slog.String("status", string(inv.Status)))
	return inv, nil
}

func (s *invoiceService) CancelInvoice(ctx context.Context, invoiceID int64, userID string) (*domain.Invoice, error) {
	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = s.txManager.Rollback(ctx, tx) }()

	inv, err := s.lockInvoice(ctx, tx, invoiceID)
	if err != nil {
		return nil, err
	}
	if inv.Status == domain.InvoiceCancelled {
		return nil, ErrInvoiceCancelled
	}
	if !inv.Settled().IsZero() {
		return nil, fmt.Errorf("%w: %s", ErrInvoiceHasSettlements, inv.Number)
	}

	now := s.Now()
	if inv.JournalEntryID != nil {
		lines := s.salesLines(*inv)
		for i := range lines {
			lines[i].Amount = lines[i].Amount.Neg()
		}
		if _, err := s.journalSvc.PostEntryInTx(ctx, tx, domain.EntryDraft{
			Prefix:        domain.PrefixReversal,
			EntryDate:     now,
			Reference:     inv.Number,
			Description:   "Cancellation of invoice " + inv.Number,
			Lines:         lines,
			AutoGenerated: true,
			ReversalOf:    inv.JournalEntryID,
		}, userID); err != nil {
			return nil, err
		}
	}

	inv.Status = domain.InvoiceCancelled
	inv.LastUpdatedAt, inv.LastUpdatedBy = now, userID
	if err := s.invoiceRepo.UpdateInvoiceSettlementInTx(ctx, tx, *inv); err != nil {
		return nil, err
	}
	if err := s.customerRepo.AdjustOutstandingInTx(ctx, tx, inv.CustomerID, inv.TotalAmount.Neg(), now); err != nil {
		return nil, err
	}

	if err := s.txManager.Commit(ctx, tx); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Invoice cancelled", slog.String("number", inv.Number), slog.String("user_id", userID))
	return inv, nil
}

func (s *invoiceService) GetInvoice(ctx context.Context, invoiceID int64) (*domain.Invoice, error) {
	inv, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %d", ErrUnknownInvoice, invoiceID)
		}
		return nil, err
	}
	return inv, nil
}
