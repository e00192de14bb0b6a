package dto

import (
	"time"

	"github.com/SscSPs/backoffice_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PostJournalLine is one line of an entry draft. A positive amount debits the
// account, a negative amount credits it.
type PostJournalLine struct {
	AccountCode string          `json:"accountCode" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"decimal_nonzero,decimal_scale2" swaggertype:"string"`
	Description string          `json:"description"`
}

// PostJournalRequest is the draft submitted to the journal engine.
type PostJournalRequest struct {
	Prefix      string            `json:"prefix" binding:"omitempty,alphanum,max=8"`
	Date        time.Time         `json:"date" binding:"required"`
	Reference   string            `json:"reference"`
	Description string            `json:"description" binding:"required"`
	Lines       []PostJournalLine `json:"lines" binding:"required,dive"`
}

// ToEntryDraft converts the request into a manual (not auto-generated) draft.
func (r PostJournalRequest) ToEntryDraft() domain.EntryDraft {
	prefix := r.Prefix
	if prefix == "" {
		prefix = domain.PrefixManual
	}
	lines := make([]domain.DraftLine, len(r.Lines))
	for i, l := range r.Lines {
		lines[i] = domain.DraftLine{AccountCode: l.AccountCode, Amount: l.Amount, Description: l.Description}
	}
	return domain.EntryDraft{
		Prefix:      prefix,
		EntryDate:   r.Date,
		Reference:   r.Reference,
		Description: r.Description,
		Lines:       lines,
	}
}

// JournalLineResponse defines the data returned for a journal line.
type JournalLineResponse struct {
	LineID      string          `json:"lineID"`
	EntryID     string          `json:"entryID"`
	AccountID   string          `json:"accountID"`
	AccountCode string          `json:"accountCode"`
	Debit       decimal.Decimal `json:"debit" swaggertype:"string"`
	Credit      decimal.Decimal `json:"credit" swaggertype:"string"`
	Description string          `json:"description"`
}

// JournalEntryResponse defines the data returned for a journal entry.
type JournalEntryResponse struct {
	EntryID       string                `json:"entryID"`
	Number        string                `json:"number"`
	Date          time.Time             `json:"date"`
	Reference     string                `json:"reference"`
	Description   string                `json:"description"`
	TotalDebit    decimal.Decimal       `json:"totalDebit" swaggertype:"string"`
	TotalCredit   decimal.Decimal       `json:"totalCredit" swaggertype:"string"`
	PostedBy      string                `json:"postedBy"`
	AutoGenerated bool                  `json:"autoGenerated"`
	ReversalOf    *string               `json:"reversalOf,omitempty"`
	CreatedAt     time.Time             `json:"createdAt"`
	Lines         []JournalLineResponse `json:"lines,omitempty"`
}

// ToJournalLineResponse converts a domain.JournalEntryLine to its DTO.
func ToJournalLineResponse(l domain.JournalEntryLine) JournalLineResponse {
	return JournalLineResponse{
		LineID:      l.LineID,
		EntryID:     l.EntryID,
		AccountID:   l.AccountID,
		AccountCode: l.AccountCode,
		Debit:       l.Debit,
		Credit:      l.Credit,
		Description: l.Description,
	}
}

// ToJournalEntryResponse converts a domain.JournalEntry to its DTO.
func ToJournalEntryResponse(e *domain.JournalEntry) JournalEntryResponse {
	resp := JournalEntryResponse{
		EntryID:       e.EntryID,
		Number:        e.Number,
		Date:          e.EntryDate,
		Reference:     e.Reference,
		Description:   e.Description,
		TotalDebit:    e.TotalDebit,
		TotalCredit:   e.TotalCredit,
		PostedBy:      e.PostedBy,
		AutoGenerated: e.AutoGenerated,
		ReversalOf:    e.ReversalOf,
		CreatedAt:     e.CreatedAt,
	}
	for _, l := range e.Lines {
		resp.Lines = append(resp.Lines, ToJournalLineResponse(l))
	}
	return resp
}

// ListJournalsParams defines query parameters for listing journal entries or lines.
type ListJournalsParams struct {
	Limit     int    `form:"limit,default=20" binding:"min=1,max=100"`
	NextToken string `form:"nextToken"`
}

// ListJournalsResponse is a page of entry headers.
type ListJournalsResponse struct {
	Entries   []JournalEntryResponse `json:"entries"`
	NextToken *string                `json:"nextToken,omitempty"`
}

// ListLinesResponse is a page of lines posted against one account.
type ListLinesResponse struct {
	Lines     []JournalLineResponse `json:"lines"`
	NextToken *string               `json:"nextToken,omitempty"`
}

// ReverseJournalRequest names the entry to reverse. Entry numbers contain slashes
// so they travel in the body rather than the path.
type ReverseJournalRequest struct {
	Number string `json:"number" binding:"required"`
}
