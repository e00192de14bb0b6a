package mapping

import (
	"github.com/SscSPs/backoffice_ledger/internal/core/domain"
	"github.com/SscSPs/backoffice_ledger/internal/models"
)

// ToModelJournalEntry converts a domain JournalEntry header to a model JournalEntry
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		EntryID:       d.EntryID,
		Number:        d.Number,
		EntryDate:     d.EntryDate,
		Reference:     d.Reference,
		Description:   d.Description,
		TotalDebit:    d.TotalDebit,
		TotalCredit:   d.TotalCredit,
		PostedBy:      d.PostedBy,
		AutoGenerated: d.AutoGenerated,
		ReversalOf:    d.ReversalOf,
		CreatedAt:     d.CreatedAt,
	}
}

// ToDomainJournalEntry converts a model JournalEntry to a domain JournalEntry without lines
func ToDomainJournalEntry(m models.JournalEntry) domain.JournalEntry {
	return domain.JournalEntry{
		EntryID:       m.EntryID,
		Number:        m.Number,
		EntryDate:     m.EntryDate,
		Reference:     m.Reference,
		Description:   m.Description,
		TotalDebit:    m.TotalDebit,
		TotalCredit:   m.TotalCredit,
		PostedBy:      m.PostedBy,
		AutoGenerated: m.AutoGenerated,
		ReversalOf:    m.ReversalOf,
		CreatedAt:     m.CreatedAt,
	}
}

// ToModelJournalEntryLine converts a domain JournalEntryLine to a model JournalEntryLine
func ToModelJournalEntryLine(d domain.JournalEntryLine) models.JournalEntryLine {
	return models.JournalEntryLine{
		LineID:      d.LineID,
		EntryID:     d.EntryID,
		AccountID:   d.AccountID,
		AccountCode: d.AccountCode,
		LineNo:      d.LineNo,
		Debit:       d.Debit,
		Credit:      d.Credit,
		Description: d.Description,
	}
}

// ToDomainJournalEntryLine converts a model JournalEntryLine to a domain JournalEntryLine
func ToDomainJournalEntryLine(m models.JournalEntryLine) domain.JournalEntryLine {
	return domain.JournalEntryLine{
		LineID:      m.LineID,
		EntryID:     m.EntryID,
		AccountID:   m.AccountID,
		AccountCode: m.AccountCode,
		LineNo:      m.LineNo,
		Debit:       m.Debit,
		Credit:      m.Credit,
		Description: m.Description,
	}
}

// ToDomainJournalEntryLineSlice converts a slice of model lines to domain lines
func ToDomainJournalEntryLineSlice(ms []models.JournalEntryLine) []domain.JournalEntryLine {
	ds := make([]domain.JournalEntryLine, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainJournalEntryLine(m)
	}
	return ds
}
