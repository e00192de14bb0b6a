package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/backoffice_ledger/internal/apperrors"
	"github.com/SscSPs/backoffice_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/backoffice_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/backoffice_ledger/internal/core/ports/services"
)

type creditService struct {
	BaseService
	customerRepo portsrepo.CustomerRepository
	prepayments  portssvc.PrepaymentReconcilerSvc
}

// NewCreditService creates the credit evaluator.
func NewCreditService(customerRepo portsrepo.CustomerRepository, prepayments portssvc.PrepaymentReconcilerSvc) portssvc.CreditSvc {
	return &creditService{customerRepo: customerRepo, prepayments: prepayments}
}

var _ portssvc.CreditSvc = (*creditService)(nil)

func (s *creditService) Evaluate(ctx context.Context, customerID int64, additional decimal.Decimal) (*domain.CreditEvaluation, error) {
	if additional.IsNegative() {
		return nil, fmt.Errorf("%w: additional amount must not be negative", apperrors.ErrValidation)
	}

	customer, err := s.customerRepo.FindCustomerByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %d", ErrUnknownCustomer, customerID)
		}
		return nil, err
	}

	balance, err := s.prepayments.PrepaymentBalance(ctx, customerID)
	if err != nil {
		return nil, err
	}

	eval := domain.EvaluateCredit(*customer, balance, additional)
	if eval.ExceedsLimit {
		s.LogInfo(ctx, "Charge would exceed credit limit",
			slog.Int64("customer_id", customerID),
			slog.String("projected", eval.ProjectedOutstanding.String()),
			slog.String("limit", eval.CreditLimit.String()))
	}
	return &eval, nil
}
