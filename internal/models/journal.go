package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry is a row of the journal_entries table.
type JournalEntry struct {
	EntryID       string          `db:"entry_id"`
	Number        string          `db:"number"`
	EntryDate     time.Time       `db:"entry_date"`
	Reference     string          `db:"reference"`
	Description   string          `db:"description"`
	TotalDebit    decimal.Decimal `db:"total_debit"`
	TotalCredit   decimal.Decimal `db:"total_credit"`
	PostedBy      string          `db:"posted_by"`
	AutoGenerated bool            `db:"auto_generated"`
	ReversalOf    *string         `db:"reversal_of"` // Nullable
	CreatedAt     time.Time       `db:"created_at"`
}

// JournalEntryLine is a row of the journal_entry_lines table. AccountCode,
// EntryDate and CreatedAt are joined in for reads and never written.
type JournalEntryLine struct {
	LineID      string          `db:"line_id"`
	EntryID     string          `db:"entry_id"`
	AccountID   string          `db:"account_id"`
	AccountCode string          `db:"code"`
	LineNo      int             `db:"line_no"`
	Debit       decimal.Decimal `db:"debit"`
	Credit      decimal.Decimal `db:"credit"`
	Description string          `db:"description"`
	EntryDate   time.Time       `db:"entry_date"`
	CreatedAt   time.Time       `db:"created_at"`
}
