package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus indicates the lifecycle state of a journal entry.
type EntryStatus string

const (
	StatusDraft  EntryStatus = "DRAFT"
	StatusPosted EntryStatus = "POSTED"
	StatusVoid   EntryStatus = "VOID"
)

// EntrySource identifies the upstream business event an entry originated from.
type EntrySource string

const (
	SourceManual     EntrySource = "MANUAL"
	SourceSale       EntrySource = "SALE"
	SourcePurchase   EntrySource = "PURCHASE"
	SourceAdjustment EntrySource = "ADJUSTMENT"
	SourceCreditNote EntrySource = "CREDIT_NOTE"
	SourceDebitNote  EntrySource = "DEBIT_NOTE"
	SourcePayment    EntrySource = "PAYMENT"
)

// initialStatusBySource maps each entry source to the status an entry is
// created with. Manual entries start as drafts; event-sourced entries record
// already-confirmed business documents and post immediately. Adding a new
// source is a single row here.
var initialStatusBySource = map[EntrySource]EntryStatus{
	SourceManual:     StatusDraft,
	SourceSale:       StatusPosted,
	SourcePurchase:   StatusPosted,
	SourceAdjustment: StatusPosted,
	SourceCreditNote: StatusPosted,
	SourceDebitNote:  StatusPosted,
	SourcePayment:    StatusPosted,
}

// InitialStatusForSource returns the creation status for a source, and false
// for unknown sources.
func InitialStatusForSource(source EntrySource) (EntryStatus, bool) {
	status, ok := initialStatusBySource[source]
	return status, ok
}

// JournalEntry is one complete balanced transaction composed of two or more
// lines. POSTED and VOID entries are immutable except for the status
// transition itself.
type JournalEntry struct {
	EntryID        string          `json:"entryID"`        // Primary Key (UUID)
	OrganizationID string          `json:"organizationID"` // Tenant scope (NON-NULL)
	CompanyID      *string         `json:"companyID"`      // Optional sub-company scope
	PeriodID       string          `json:"periodID"`       // FK -> periods
	Date           time.Time       `json:"date"`           // Date the business event occurred
	Description    string          `json:"description"`
	Source         EntrySource     `json:"source"`
	Status         EntryStatus     `json:"status"`
	Correlativo    string          `json:"correlativo"` // Sequential code, unique per org+period
	AuditCode      string          `json:"auditCode"`   // Opaque unique operation identifier
	CurrencyCode   string          `json:"currencyCode"`
	ExchangeRate   *decimal.Decimal `json:"exchangeRate"` // Nullable, vs. base currency
	DebitTotal     decimal.Decimal `json:"debitTotal"`
	CreditTotal    decimal.Decimal `json:"creditTotal"`
	SourceRef      *string         `json:"sourceRef"` // Upstream document reference (idempotency key)
	Lines          []EntryLine     `json:"lines"`
	AuditFields
}

// EntryLine is a single debit or credit against one posting account.
// Exactly one of Debit/Credit is nonzero.
type EntryLine struct {
	LineID      string          `json:"lineID"`
	EntryID     string          `json:"entryID"`
	AccountID   string          `json:"accountID"`
	AccountCode string          `json:"accountCode"` // Resolved for responses, not persisted
	Description string          `json:"description"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// CanPost reports whether the entry may transition to POSTED.
func (e *JournalEntry) CanPost() bool {
	return e.Status == StatusDraft
}

// CanVoid reports whether the entry may transition to VOID.
func (e *JournalEntry) CanVoid() bool {
	return e.Status == StatusPosted
}

// IsMutable reports whether lines and header fields may still change.
func (e *JournalEntry) IsMutable() bool {
	return e.Status == StatusDraft
}

// FormatCorrelativo renders the sequential document code. The width is a
// minimum, not a cap: past 999 the code simply grows a digit, so sorting
// correlativos must compare by length before comparing lexicographically.
func FormatCorrelativo(n int64) string {
	return fmt.Sprintf("A%03d", n)
}
