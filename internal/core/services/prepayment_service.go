package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
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
	"github.com/SscSPs/backoffice_ledger/internal/platform/lock"
	"github.com/SscSPs/backoffice_ledger/internal/utils/accounting"
)

// backfillBatchSize caps how many unposted prepayments one backfill run picks up.
const backfillBatchSize = 500

// prepaymentService manages customer wallets: advance payments, their
// application to invoices and the reconciliation of cached used amounts.
type prepaymentService struct {
	BaseService
	txManager      portsrepo.TransactionManager
	prepaymentRepo portsrepo.PrepaymentRepositoryFacade
	customerRepo   portsrepo.CustomerRepository
	invoiceRepo    portsrepo.InvoiceRepository
	accountSvc     portssvc.AccountWriterSvc
	journalSvc     portssvc.JournalPosterSvc
	numberer       documentNumberer
	poster         ledgerPoster
	locker         lock.Locker
	systemAccounts config.SystemAccounts
}

// PrepaymentServiceDeps groups what the prepayment service needs.
type PrepaymentServiceDeps struct {
	TxManager      portsrepo.TransactionManager
	PrepaymentRepo portsrepo.PrepaymentRepositoryFacade
	CustomerRepo   portsrepo.CustomerRepository
	InvoiceRepo    portsrepo.InvoiceRepository
	SequenceRepo   portsrepo.SequenceRepository
	AccountSvc     portssvc.AccountWriterSvc
	JournalSvc     portssvc.JournalPosterSvc
	Locker         lock.Locker
	SystemAccounts config.SystemAccounts
	PostingPolicy  config.PostingPolicy
	Clock          func() time.Time
}

// NewPrepaymentService creates the prepayment wallet and reconciler.
func NewPrepaymentService(deps PrepaymentServiceDeps) portssvc.PrepaymentSvcFacade {
	return &prepaymentService{
		BaseService:    BaseService{Clock: deps.Clock},
		txManager:      deps.TxManager,
		prepaymentRepo: deps.PrepaymentRepo,
		customerRepo:   deps.CustomerRepo,
		invoiceRepo:    deps.InvoiceRepo,
		accountSvc:     deps.AccountSvc,
		journalSvc:     deps.JournalSvc,
		numberer:       documentNumberer{txManager: deps.TxManager, sequenceRepo: deps.SequenceRepo},
		poster:         ledgerPoster{txManager: deps.TxManager, policy: deps.PostingPolicy},
		locker:         deps.Locker,
		systemAccounts: deps.SystemAccounts,
	}
}

var _ portssvc.PrepaymentSvcFacade = (*prepaymentService)(nil)

// receivingAccount is the system account an inbound payment lands in.
func receivingAccount(accounts config.SystemAccounts, method domain.PaymentMethod) string {
	if method == domain.MethodCash {
		return accounts.Cash
	}
	return accounts.Bank
}

func (s *prepaymentService) lockCustomer(ctx context.Context, tx pgx.Tx, customerID int64) (*domain.Customer, error) {
	customer, err := s.customerRepo.FindCustomerByIDForUpdate(ctx, tx, customerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %d", ErrUnknownCustomer, customerID)
		}
		return nil, err
	}
	return customer, nil
}

// postReceipt posts Dr cash or bank / Cr the customer's prepayment liability.
func (s *prepaymentService) postReceipt(ctx context.Context, tx pgx.Tx, p *domain.CustomerPrepayment, customer domain.Customer, userID string) error {
	liability, err := s.accountSvc.EnsureCustomerPrepaymentAccount(ctx, tx, customer)
	if err != nil {
		return err
	}

	entry, err := s.journalSvc.PostEntryInTx(ctx, tx, domain.EntryDraft{
		Prefix:      domain.PrefixPrepayment,
		EntryDate:   p.PrepaymentDate,
		Reference:   p.Number,
		Description: fmt.Sprintf("Customer prepayment %s - %s", p.Number, customer.Name),
		Lines: []domain.DraftLine{
			{AccountCode: receivingAccount(s.systemAccounts, p.Method), Amount: p.Amount},
			{AccountCode: liability.Code, Amount: p.Amount.Neg()},
		},
		AutoGenerated: true,
	}, userID)
	if err != nil {
		return err
	}

	if err := s.prepaymentRepo.SetPrepaymentJournalEntryInTx(ctx, tx, p.PrepaymentID, entry.EntryID); err != nil {
		return err
	}
	p.JournalEntryID = &entry.EntryID
	return nil
}

func (s *prepaymentService) CreatePrepayment(ctx context.Context, req dto.CreatePrepaymentRequest, userID string) (*domain.CustomerPrepayment, error) {
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

	customer, err := s.lockCustomer(ctx, tx, req.CustomerID)
	if err != nil {
		return nil, err
	}

	date := domain.TruncateDate(req.Date)
	p := domain.CustomerPrepayment{
		PrepaymentID:   uuid.NewString(),
		CustomerID:     req.CustomerID,
		PrepaymentDate: date,
		Amount:         req.Amount,
		UsedAmount:     decimal.Zero,
		Status:         domain.PrepaymentActive,
		Method:         req.Method,
		Reference:      req.Reference,
		AuditFields:    domain.NewAuditFields(userID, s.Now()),
	}

	p.Number, err = s.numberer.assign(ctx, tx, domain.SequencePrepayment, domain.PrefixAdvance, date.Year(), func(sp pgx.Tx, number string) error {
		p.Number = number
		return s.prepaymentRepo.SavePrepaymentInTx(ctx, sp, p)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to save prepayment", slog.Int64("customer_id", req.CustomerID))
		return nil, err
	}

	if _, err := s.poster.post(ctx, tx, "prepayment "+p.Number, func(tx pgx.Tx) error {
		return s.postReceipt(ctx, tx, &p, *customer, userID)
	}); err != nil {
		s.LogError(ctx, err, "Failed to post prepayment", slog.String("number", p.Number))
		return nil, err
	}

	if err := s.txManager.Commit(ctx, tx); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Prepayment recorded",
		slog.String("number", p.Number),
		slog.Int64("customer_id", p.CustomerID),
		slog.String("amount", p.Amount.String()),
		slog.Bool("posted", p.JournalEntryID != nil))
	return &p, nil
}

// postApplication moves amount between the customer's prepayment liability and
// receivables. A positive amount consumes the prepayment; a negative one gives it back.
func (s *prepaymentService) postApplication(ctx context.Context, tx pgx.Tx, customer domain.Customer, amount decimal.Decimal, date time.Time, reference, description, userID string) (*domain.JournalEntry, error) {
	liability, err := s.accountSvc.EnsureCustomerPrepaymentAccount(ctx, tx, customer)
	if err != nil {
		return nil, err
	}

	prefix := domain.PrefixPrepayment
	if amount.IsNegative() {
		prefix = domain.PrefixReversal
	}
	return s.journalSvc.PostEntryInTx(ctx, tx, domain.EntryDraft{
		Prefix:      prefix,
		EntryDate:   date,
		Reference:   reference,
		Description: description,
		Lines: []domain.DraftLine{
			{AccountCode: liability.Code, Amount: amount},
			{AccountCode: s.systemAccounts.Receivables, Amount: amount.Neg()},
		},
		AutoGenerated: true,
	}, userID)
}

func (s *prepaymentService) ApplyPrepayment(ctx context.Context, prepaymentID string, req dto.ApplyPrepaymentRequest, userID string) (*domain.PrepaymentApplication, error) {
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

	p, err := s.prepaymentRepo.FindPrepaymentByIDForUpdate(ctx, tx, prepaymentID)
	if err != nil {
		return nil, err
	}

	// The application log is authoritative; the cached used amount may have drifted.
	used, err := s.prepaymentRepo.SumApplicationsInTx(ctx, tx, prepaymentID)
	if err != nil {
		return nil, err
	}
	remaining := p.Amount.Sub(used)
	if req.Amount.GreaterThan(remaining) {
		return nil, fmt.Errorf("%w: remaining %s, requested %s", ErrInsufficientPrepaymentBalance, remaining, req.Amount)
	}

	inv, err := s.invoiceRepo.FindInvoiceByIDForUpdate(ctx, tx, req.InvoiceID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %d", ErrUnknownInvoice, req.InvoiceID)
		}
		return nil, err
	}
	if inv.CustomerID != p.CustomerID {
		return nil, ErrCustomerMismatch
	}
	if inv.Status == domain.InvoiceCancelled || !inv.Remaining().IsPositive() {
		return nil, fmt.Errorf("%w: %s", ErrInvoiceAlreadySettled, inv.Number)
	}
	if req.Amount.GreaterThan(inv.Remaining()) {
		return nil, fmt.Errorf("%w: owed %s, requested %s", ErrApplicationExceedsInvoice, inv.Remaining(), req.Amount)
	}

	customer, err := s.lockCustomer(ctx, tx, p.CustomerID)
	if err != nil {
		return nil, err
	}

	now := s.Now()
	date := domain.TruncateDate(now)
	if req.Date != nil {
		date = domain.TruncateDate(*req.Date)
	}
	description := req.Description
	if description == "" {
		description = fmt.Sprintf("Prepayment %s applied to %s", p.Number, inv.Number)
	}

	app := domain.PrepaymentApplication{
		ApplicationID: uuid.NewString(),
		PrepaymentID:  p.PrepaymentID,
		InvoiceID:     inv.InvoiceID,
		AppliedAmount: req.Amount,
		AppliedDate:   date,
		Description:   description,
		CreatedAt:     now,
		CreatedBy:     userID,
	}

	// Only the receipt itself may be left unposted under best effort; an
	// application without its entry would have no backfill path.
	entry, err := s.postApplication(ctx, tx, *customer, req.Amount, date, inv.Number, description, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to post prepayment application", slog.String("number", p.Number))
		return nil, err
	}
	app.JournalEntryID = &entry.EntryID

	if err := s.prepaymentRepo.SaveApplicationInTx(ctx, tx, app); err != nil {
		return nil, err
	}

	p.UsedAmount = used.Add(req.Amount)
	if err := s.prepaymentRepo.UpdatePrepaymentUsageInTx(ctx, tx, p.PrepaymentID, p.UsedAmount, p.DeriveStatus(), userID, now); err != nil {
		return nil, err
	}

	inv.PrepaymentApplied = inv.PrepaymentApplied.Add(req.Amount)
	inv.Status = inv.DeriveStatus(now)
	if err := s.invoiceRepo.UpdateInvoiceSettlementInTx(ctx, tx, *inv); err != nil {
		return nil, err
	}

	if err := s.customerRepo.AdjustOutstandingInTx(ctx, tx, p.CustomerID, req.Amount.Neg(), now); err != nil {
		return nil, err
	}

	if err := s.txManager.Commit(ctx, tx); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Prepayment applied",
		slog.String("prepayment", p.Number),
		slog.String("invoice", inv.Number),
		slog.String("amount", req.Amount.String()))
	return &app, nil
}

func (s *prepaymentService) ReverseApplication(ctx context.Context, applicationID string, userID string) (*domain.PrepaymentApplication, error) {
	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = s.txManager.Rollback(ctx, tx) }()

	original, err := s.prepaymentRepo.FindApplicationByIDInTx(ctx, tx, applicationID)
	if err != nil {
		return nil, err
	}
	if original.ReversalOf != nil || !original.AppliedAmount.IsPositive() {
		return nil, ErrReverseCompensation
	}

	p, err := s.prepaymentRepo.FindPrepaymentByIDForUpdate(ctx, tx, original.PrepaymentID)
	if err != nil {
		return nil, err
	}
	inv, err := s.invoiceRepo.FindInvoiceByIDForUpdate(ctx, tx, original.InvoiceID)
	if err != nil {
		return nil, err
	}
	customer, err := s.lockCustomer(ctx, tx, p.CustomerID)
	if err != nil {
		return nil, err
	}

	now := s.Now()
	compensation := domain.PrepaymentApplication{
		ApplicationID: uuid.NewString(),
		PrepaymentID:  original.PrepaymentID,
		InvoiceID:     original.InvoiceID,
		AppliedAmount: original.AppliedAmount.Neg(),
		AppliedDate:   domain.TruncateDate(now),
		Description:   "Reversal of application " + original.ApplicationID,
		ReversalOf:    &original.ApplicationID,
		CreatedAt:     now,
		CreatedBy:     userID,
	}

	if err := s.prepaymentRepo.SaveApplicationInTx(ctx, tx, compensation); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, ErrApplicationAlreadyReversed
		}
		return nil, err
	}

	if _, err := s.postApplication(ctx, tx, *customer, compensation.AppliedAmount, compensation.AppliedDate, inv.Number, compensation.Description, userID); err != nil {
		return nil, err
	}

	used, err := s.prepaymentRepo.SumApplicationsInTx(ctx, tx, p.PrepaymentID)
	if err != nil {
		return nil, err
	}
	p.UsedAmount = used
	if err := s.prepaymentRepo.UpdatePrepaymentUsageInTx(ctx, tx, p.PrepaymentID, used, p.DeriveStatus(), userID, now); err != nil {
		return nil, err
	}

	inv.PrepaymentApplied = inv.PrepaymentApplied.Sub(original.AppliedAmount)
	inv.Status = inv.DeriveStatus(now)
	if err := s.invoiceRepo.UpdateInvoiceSettlementInTx(ctx, tx, *inv); err != nil {
		return nil, err
	}

	if err := s.customerRepo.AdjustOutstandingInTx(ctx, tx, p.CustomerID, original.AppliedAmount, now); err != nil {
		return nil, err
	}

	if err := s.txManager.Commit(ctx, tx); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Prepayment application reversed",
		slog.String("application_id", original.ApplicationID),
		slog.String("amount", original.AppliedAmount.String()))
	return &compensation, nil
}

func (s *prepaymentService) ReconcilePrepayments(ctx context.Context, customerID *int64) (int, error) {
	release, err := s.locker.Acquire(ctx, lock.PrepaymentReconcileKey(customerID))
	if err != nil {
		return 0, err
	}
	defer func() { _ = release(context.WithoutCancel(ctx)) }()

	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer func() { _ = s.txManager.Rollback(ctx, tx) }()

	usages, err := s.prepaymentRepo.ListPrepaymentUsageForUpdate(ctx, tx, customerID)
	if err != nil {
		return 0, err
	}

	now := s.Now()
	corrected := 0
	for _, u := range usages {
		status := domain.CustomerPrepayment{Amount: u.Amount, UsedAmount: u.AppliedTotal}.DeriveStatus()
		if u.UsedAmount.Equal(u.AppliedTotal) && u.Status == status {
			continue
		}
		if err := s.prepaymentRepo.MarkPrepaymentReconciledInTx(ctx, tx, u.PrepaymentID, u.AppliedTotal, status, now); err != nil {
			return 0, err
		}
		s.LogInfo(ctx, "Prepayment used amount corrected",
			slog.String("prepayment_id", u.PrepaymentID),
			slog.String("cached", u.UsedAmount.String()),
			slog.String("actual", u.AppliedTotal.String()),
			slog.String("status", string(status)))
		corrected++
	}

	if err := s.txManager.Commit(ctx, tx); err != nil {
		return 0, err
	}
	return corrected, nil
}

func (s *prepaymentService) BackfillPrepaymentPostings(ctx context.Context) (int, int, error) {
	release, err := s.locker.Acquire(ctx, lock.BackfillKey)
	if err != nil {
		return 0, 0, err
	}
	defer func() { _ = release(context.WithoutCancel(ctx)) }()

	pending, err := s.prepaymentRepo.ListUnpostedPrepayments(ctx, backfillBatchSize)
	if err != nil {
		return 0, 0, err
	}

	posted, failed := 0, 0
	for _, candidate := range pending {
		if err := s.backfillOne(ctx, candidate.PrepaymentID); err != nil {
			s.LogError(ctx, err, "Failed to backfill prepayment posting", slog.String("number", candidate.Number))
			failed++
			continue
		}
		posted++
	}

	s.LogInfo(ctx, "Prepayment posting backfill finished", slog.Int("posted", posted), slog.Int("failed", failed))
	return posted, failed, nil
}

func (s *prepaymentService) backfillOne(ctx context.Context, prepaymentID string) error {
	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = s.txManager.Rollback(ctx, tx) }()

	p, err := s.prepaymentRepo.FindPrepaymentByIDForUpdate(ctx, tx, prepaymentID)
	if err != nil {
		return err
	}
	if p.JournalEntryID != nil {
		return nil
	}
	customer, err := s.lockCustomer(ctx, tx, p.CustomerID)
	if err != nil {
		return err
	}
	if err := s.postReceipt(ctx, tx, p, *customer, domain.SystemUserID); err != nil {
		return err
	}
	return s.txManager.Commit(ctx, tx)
}

func (s *prepaymentService) PrepaymentBalance(ctx context.Context, customerID int64) (decimal.Decimal, error) {
	prepayments, err := s.prepaymentRepo.ListPrepaymentsByCustomer(ctx, customerID)
	if err != nil {
		return decimal.Zero, err
	}
	return domain.PrepaymentBalance(prepayments), nil
}

func (s *prepaymentService) GetPrepayment(ctx context.Context, prepaymentID string) (*domain.CustomerPrepayment, error) {
	p, err := s.prepaymentRepo.FindPrepaymentByID(ctx, prepaymentID)
	if err != nil {
		return nil, err
	}

	corrected, err := s.ReconcilePrepayments(ctx, &p.CustomerID)
	if err != nil {
		return nil, err
	}
	if corrected == 0 {
		return p, nil
	}
	return s.prepaymentRepo.FindPrepaymentByID(ctx, prepaymentID)
}

func (s *prepaymentService) GetWallet(ctx context.Context, customerID int64) (*domain.Wallet, error) {
	if _, err := s.customerRepo.FindCustomerByID(ctx, customerID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %d", ErrUnknownCustomer, customerID)
		}
		return nil, err
	}

	if _, err := s.ReconcilePrepayments(ctx, &customerID); err != nil {
		return nil, err
	}

	prepayments, err := s.prepaymentRepo.ListPrepaymentsByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	return &domain.Wallet{
		CustomerID:  customerID,
		Balance:     domain.PrepaymentBalance(prepayments),
		Prepayments: prepayments,
	}, nil
}
