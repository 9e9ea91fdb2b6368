package mapping

import (
	"github.com/kipuerp/ledger_core/internal/core/domain"
	"github.com/kipuerp/ledger_core/internal/models"
)

// ToModelEntry converts a domain JournalEntry to a model JournalEntry
func ToModelEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		EntryID:        d.EntryID,
		OrganizationID: d.OrganizationID,
		CompanyID:      d.CompanyID,
		PeriodID:       d.PeriodID,
		Date:           d.Date,
		Description:    d.Description,
		Source:         string(d.Source),
		Status:         models.EntryStatus(d.Status),
		Correlativo:    d.Correlativo,
		AuditCode:      d.AuditCode,
		CurrencyCode:   d.CurrencyCode,
		ExchangeRate:   d.ExchangeRate,
		DebitTotal:     d.DebitTotal,
		CreditTotal:    d.CreditTotal,
		SourceRef:      d.SourceRef,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainEntry converts a model JournalEntry to a domain JournalEntry
func ToDomainEntry(m models.JournalEntry) domain.JournalEntry {
	return domain.JournalEntry{
		EntryID:        m.EntryID,
		OrganizationID: m.OrganizationID,
		CompanyID:      m.CompanyID,
		PeriodID:       m.PeriodID,
		Date:           m.Date,
		Description:    m.Description,
		Source:         domain.EntrySource(m.Source),
		Status:         domain.EntryStatus(m.Status),
		Correlativo:    m.Correlativo,
		AuditCode:      m.AuditCode,
		CurrencyCode:   m.CurrencyCode,
		ExchangeRate:   m.ExchangeRate,
		DebitTotal:     m.DebitTotal,
		CreditTotal:    m.CreditTotal,
		SourceRef:      m.SourceRef,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainEntrySlice converts a slice of model entries to domain entries
func ToDomainEntrySlice(ms []models.JournalEntry) []domain.JournalEntry {
	ds := make([]domain.JournalEntry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainEntry(m)
	}
	return ds
}

// ToModelLine converts a domain EntryLine to a model EntryLine
func ToModelLine(d domain.EntryLine) models.EntryLine {
	return models.EntryLine{
		LineID:      d.LineID,
		EntryID:     d.EntryID,
		AccountID:   d.AccountID,
		Description: d.Description,
		Debit:       d.Debit,
		Credit:      d.Credit,
	}
}

// ToDomainLine converts a model EntryLine to a domain EntryLine
func ToDomainLine(m models.EntryLine) domain.EntryLine {
	return domain.EntryLine{
		LineID:      m.LineID,
		EntryID:     m.EntryID,
		AccountID:   m.AccountID,
		Description: m.Description,
		Debit:       m.Debit,
		Credit:      m.Credit,
	}
}

// ToDomainLineSlice converts a slice of model lines to domain lines
func ToDomainLineSlice(ms []models.EntryLine) []domain.EntryLine {
	ds := make([]domain.EntryLine, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainLine(m)
	}
	return ds
}
