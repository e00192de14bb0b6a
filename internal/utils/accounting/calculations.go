package accounting

import (
	"fmt"

	"github.com/SscSPs/backoffice_ledger/internal/apperrors"
	"github.com/SscSPs/backoffice_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

var (
	ErrTooFewLines   = fmt.Errorf("%w: journal entry must have at least two lines", apperrors.ErrValidation)
	ErrZeroLine      = fmt.Errorf("%w: journal line amount must not be zero", apperrors.ErrValidation)
	ErrUnbalanced    = fmt.Errorf("%w: journal debits and credits do not balance", apperrors.ErrValidation)
	ErrMissingDate   = fmt.Errorf("%w: journal entry date is required", apperrors.ErrValidation)
	ErrMissingPrefix = fmt.Errorf("%w: journal entry prefix is required", apperrors.ErrValidation)

	ErrAmountPrecision = fmt.Errorf("%w: amounts carry at most 2 decimal places", apperrors.ErrValidation)
)

// MoneyScale is the number of decimal places every stored amount has.
const MoneyScale = 2

// CheckScale rejects any amount that would change when stored at MoneyScale.
// Trailing zeros are fine: 1.500 is accepted, 1.505 is not.
func CheckScale(amounts ...decimal.Decimal) error {
	for _, a := range amounts {
		if !a.Equal(a.Truncate(MoneyScale)) {
			return fmt.Errorf("%w: got %s", ErrAmountPrecision, a.String())
		}
	}
	return nil
}

// ValidateDraft checks the shape of an entry draft before any account is resolved.
// Debits and credits must match exactly; no tolerance is applied. Lines are
// checked for scale first, so the sums compared here are the sums stored.
func ValidateDraft(draft domain.EntryDraft) error {
	if draft.Prefix == "" {
		return ErrMissingPrefix
	}
	if draft.EntryDate.IsZero() {
		return ErrMissingDate
	}
	if len(draft.Lines) < 2 {
		return ErrTooFewLines
	}

	debits, credits := decimal.Zero, decimal.Zero
	for i, line := range draft.Lines {
		if line.AccountCode == "" {
			return fmt.Errorf("%w: journal line %d has no account code", apperrors.ErrValidation, i+1)
		}
		if line.Amount.IsZero() {
			return fmt.Errorf("%w (line %d, account %s)", ErrZeroLine, i+1, line.AccountCode)
		}
		if err := CheckScale(line.Amount); err != nil {
			return fmt.Errorf("%w (line %d, account %s)", err, i+1, line.AccountCode)
		}
		debit, credit := domain.SplitSigned(line.Amount)
		debits = debits.Add(debit)
		credits = credits.Add(credit)
	}

	if !debits.Equal(credits) {
		return fmt.Errorf("%w: debits sum is %s and credits sum is %s", ErrUnbalanced, debits.String(), credits.String())
	}
	return nil
}

// DistinctCodes returns the account codes of the draft in first-seen order.
func DistinctCodes(lines []domain.DraftLine) []string {
	seen := make(map[string]struct{}, len(lines))
	codes := make([]string, 0, len(lines))
	for _, l := range lines {
		if _, ok := seen[l.AccountCode]; ok {
			continue
		}
		seen[l.AccountCode] = struct{}{}
		codes = append(codes, l.AccountCode)
	}
	return codes
}

// MirrorLines turns stored lines into draft lines with every side swapped,
// which is what a reversing entry posts.
func MirrorLines(lines []domain.JournalEntryLine) []domain.DraftLine {
	out := make([]domain.DraftLine, len(lines))
	for i, l := range lines {
		out[i] = domain.DraftLine{
			AccountCode: l.AccountCode,
			Amount:      l.Signed().Neg(),
			Description: l.Description,
		}
	}
	return out
}
