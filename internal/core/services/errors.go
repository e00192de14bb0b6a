package services

import (
	"fmt"

	"github.com/SscSPs/backoffice_ledger/internal/apperrors"
)

// Chart of accounts
var (
	ErrUnknownAccount       = fmt.Errorf("%w: account does not exist or is inactive", apperrors.ErrNotFound)
	ErrInvalidCategory      = fmt.Errorf("%w: unknown account category", apperrors.ErrValidation)
	ErrSystemAccount        = fmt.Errorf("%w: system accounts cannot be deactivated", apperrors.ErrConflict)
	ErrSystemAccountsBroken = fmt.Errorf("%w: system accounts are not usable", apperrors.ErrIntegrity)
)

// Journal engine
var (
	ErrDuplicateNumber     = fmt.Errorf("%w: could not allocate a unique document number", apperrors.ErrIntegrity)
	ErrAlreadyReversed     = fmt.Errorf("%w: journal entry has already been reversed", apperrors.ErrConflict)
	ErrReverseReversal     = fmt.Errorf("%w: a reversing entry cannot itself be reversed", apperrors.ErrConflict)
	ErrPostingPeriodClosed = fmt.Errorf("%w: posting date falls in a closed fiscal year", apperrors.ErrConflict)
)

// Prepayments, invoices and credit
var (
	ErrInvalidAmount                 = fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	ErrUnknownCustomer               = fmt.Errorf("%w: customer does not exist", apperrors.ErrNotFound)
	ErrUnknownInvoice                = fmt.Errorf("%w: invoice does not exist", apperrors.ErrNotFound)
	ErrCustomerMismatch              = fmt.Errorf("%w: prepayment and invoice belong to different customers", apperrors.ErrValidation)
	ErrInsufficientPrepaymentBalance = fmt.Errorf("%w: prepayment remaining balance is insufficient", apperrors.ErrConflict)
	ErrInvoiceAlreadySettled         = fmt.Errorf("%w: invoice is already settled", apperrors.ErrConflict)
	ErrApplicationExceedsInvoice     = fmt.Errorf("%w: amount exceeds what is still owed on the invoice", apperrors.ErrValidation)
	ErrPaymentExceedsBalance         = fmt.Errorf("%w: payment exceeds what is still owed on the invoice", apperrors.ErrValidation)
	ErrInvoiceHasSettlements         = fmt.Errorf("%w: invoice has payments or prepayment applied", apperrors.ErrConflict)
	ErrInvoiceCancelled              = fmt.Errorf("%w: invoice is cancelled", apperrors.ErrConflict)
	ErrInvalidDueDate                = fmt.Errorf("%w: due date is before the invoice date", apperrors.ErrValidation)
	ErrApplicationAlreadyReversed    = fmt.Errorf("%w: prepayment application has already been reversed", apperrors.ErrConflict)
	ErrReverseCompensation           = fmt.Errorf("%w: a compensating application cannot be reversed", apperrors.ErrConflict)
	ErrPayrollUnbalanced             = fmt.Errorf("%w: gross pay must equal net pay plus deductions", apperrors.ErrValidation)
)

// Fiscal years
var (
	ErrInvalidRange             = fmt.Errorf("%w: fiscal year end date is before its start date", apperrors.ErrValidation)
	ErrOverlappingRange         = fmt.Errorf("%w: fiscal year overlaps an existing year", apperrors.ErrConflict)
	ErrDuplicateFiscalYearCode  = fmt.Errorf("%w: fiscal year code already exists", apperrors.ErrConflict)
	ErrCannotActivateClosedYear = fmt.Errorf("%w: a closed fiscal year cannot become current", apperrors.ErrConflict)
	ErrAlreadyClosed            = fmt.Errorf("%w: fiscal year is already closed", apperrors.ErrConflict)
	ErrImmutableClosedYear      = fmt.Errorf("%w: a closed fiscal year cannot be edited", apperrors.ErrConflict)
)
