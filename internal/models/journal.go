package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus indicates the state of a journal entry row.
type EntryStatus string

const (
	Draft  EntryStatus = "DRAFT"
	Posted EntryStatus = "POSTED"
	Void   EntryStatus = "VOID"
)

// JournalEntry mirrors the journal_entries table.
type JournalEntry struct {
	EntryID        string           `json:"entryID"`
	OrganizationID string           `json:"organizationID"`
	CompanyID      *string          `json:"companyID"` // Nullable
	PeriodID       string           `json:"periodID"`
	Date           time.Time        `json:"date"`
	Description    string           `json:"description"`
	Source         string           `json:"source"`
	Status         EntryStatus      `json:"status"`
	Correlativo    string           `json:"correlativo"`
	AuditCode      string           `json:"auditCode"`
	CurrencyCode   string           `json:"currencyCode"`
	ExchangeRate   *decimal.Decimal `json:"exchangeRate"` // Nullable
	DebitTotal     decimal.Decimal  `json:"debitTotal"`
	CreditTotal    decimal.Decimal  `json:"creditTotal"`
	SourceRef      *string          `json:"sourceRef"` // Nullable idempotency key
	AuditFields
}

// EntryLine mirrors the journal_entry_lines table.
type EntryLine struct {
	LineID      string          `json:"lineID"`
	EntryID     string          `json:"entryID"`
	AccountID   string          `json:"accountID"`
	Description string          `json:"description"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}
