package mapping

import (
	"github.com/SscSPs/backoffice_ledger/internal/core/domain"
	"github.com/SscSPs/backoffice_ledger/internal/models"
)

// The two AuditFields types differ only in struct tags.

func ToModelAuditFields(d domain.AuditFields) models.AuditFields {
	return models.AuditFields(d)
}

func ToDomainAuditFields(m models.AuditFields) domain.AuditFields {
	return domain.AuditFields(m)
}
