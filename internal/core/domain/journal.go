package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Journal entry number prefixes. Each business event posts under its own prefix.
const (
	PrefixManual     = "JV"
	PrefixReversal   = "REV"
	PrefixReceipt    = "RCP"
	PrefixSales      = "SAL"
	PrefixPayroll    = "PAY"
	PrefixPrepayment = "PPY"

	// Document prefixes (not journal entries).
	PrefixInvoice = "INV"
	PrefixAdvance = "ADV"
)

// JournalEntry is one balanced, dated financial event composed of two or more lines.
// Entries are immutable once stored; corrections are new entries.
type JournalEntry struct {
	EntryID       string             `json:"entryID"`
	Number        string             `json:"number"` // "{PREFIX}/{YEAR}/{seq:%04d}", unique
	EntryDate     time.Time          `json:"entryDate"`
	Reference     string             `json:"reference"`
	Description   string             `json:"description"`
	Lines         []JournalEntryLine `json:"lines"`
	TotalDebit    decimal.Decimal    `json:"totalDebit"`
	TotalCredit   decimal.Decimal    `json:"totalCredit"`
	PostedBy      string             `json:"postedBy"`
	AutoGenerated bool               `json:"autoGenerated"`
	ReversalOf    *string            `json:"reversalOf,omitempty"`
	CreatedAt     time.Time          `json:"createdAt"`
}

// JournalEntryLine is a single debit or credit against one account.
// Exactly one of Debit and Credit is non-zero.
type JournalEntryLine struct {
	LineID      string          `json:"lineID"`
	EntryID     string          `json:"entryID"`
	AccountID   string          `json:"accountID"`
	AccountCode string          `json:"accountCode"`
	LineNo      int             `json:"lineNo"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description"`
}

// DraftLine names an account by code and carries a signed amount:
// positive debits the account, negative credits it.
type DraftLine struct {
	AccountCode string
	Amount      decimal.Decimal
	Description string
}

// EntryDraft is the input to the journal engine.
type EntryDraft struct {
	Prefix        string
	EntryDate     time.Time
	Reference     string
	Description   string
	Lines         []DraftLine
	AutoGenerated bool
	ReversalOf    *string
}

// SplitSigned turns a signed amount into its debit and credit sides.
func SplitSigned(amount decimal.Decimal) (debit, credit decimal.Decimal) {
	if amount.IsNegative() {
		return decimal.Zero, amount.Neg()
	}
	return amount, decimal.Zero
}

// Signed returns the line as a signed amount (debit positive, credit negative).
func (l JournalEntryLine) Signed() decimal.Decimal {
	return l.Debit.Sub(l.Credit)
}

// Totals sums both sides of the given lines.
func Totals(lines []JournalEntryLine) (debit, credit decimal.Decimal) {
	debit, credit = decimal.Zero, decimal.Zero
	for _, l := range lines {
		debit = debit.Add(l.Debit)
		credit = credit.Add(l.Credit)
	}
	return debit, credit
}

// FormatEntryNumber renders a document number, e.g. ("JV", 2024, 7) -> "JV/2024/0007".
func FormatEntryNumber(prefix string, year, seq int) string {
	return fmt.Sprintf("%s/%d/%04d", prefix, year, seq)
}

// ParseEntryNumber splits a document number into its prefix, year and sequence.
func ParseEntryNumber(number string) (prefix string, year, seq int, err error) {
	parts := strings.Split(number, "/")
	if len(parts) != 3 || parts[0] == "" {
		return "", 0, 0, fmt.Errorf("malformed document number %q", number)
	}
	if year, err = strconv.Atoi(parts[1]); err != nil {
		return "", 0, 0, fmt.Errorf("malformed year in document number %q: %w", number, err)
	}
	if seq, err = strconv.Atoi(parts[2]); err != nil {
		return "", 0, 0, fmt.Errorf("malformed sequence in document number %q: %w", number, err)
	}
	return parts[0], year, seq, nil
}

// SequenceKind scopes document numbering to the table that owns the numbers.
type SequenceKind string

const (
	SequenceJournalEntry SequenceKind = "journal_entry"
	SequenceInvoice      SequenceKind = "invoice"
	SequencePrepayment   SequenceKind = "prepayment"
)
