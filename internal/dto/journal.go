package dto

import (
	"time"

	"github.com/kipuerp/ledger_core/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LineRequest is one candidate entry line. The account may be referenced by
// id or by chart code; codes are resolved before validation.
type LineRequest struct {
	AccountID   string          `json:"accountID"`
	AccountCode string          `json:"accountCode"`
	Description string          `json:"description"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// CreateEntryRequest defines the data needed to create a journal entry.
type CreateEntryRequest struct {
	Date         time.Time          `json:"date" binding:"required"`
	Description  string             `json:"description"`
	Source       domain.EntrySource `json:"source" binding:"required,oneof=MANUAL SALE PURCHASE ADJUSTMENT CREDIT_NOTE DEBIT_NOTE PAYMENT"`
	CurrencyCode string             `json:"currencyCode"`
	ExchangeRate *decimal.Decimal   `json:"exchangeRate"`
	SourceRef    *string            `json:"sourceRef"` // Upstream document reference, required for non-manual sources
	Lines        []LineRequest      `json:"lines" binding:"required"`
}

// UpdateEntryRequest patches a DRAFT entry. Nil fields are left unchanged;
// when Lines is present the whole line set is replaced and totals recomputed.
type UpdateEntryRequest struct {
	Date        *time.Time    `json:"date"`
	Description *string       `json:"description"`
	Lines       []LineRequest `json:"lines"`
}

// ListEntriesParams are the findAll filters. All results are additionally
// scoped to the requesting tenant regardless of the filters supplied.
type ListEntriesParams struct {
	DateFrom   *time.Time             `form:"dateFrom" time_format:"2006-01-02"`
	DateTo     *time.Time             `form:"dateTo" time_format:"2006-01-02"`
	Sources    []domain.EntrySource   `form:"source"`
	Statuses   []domain.EntryStatus   `form:"status"`
	AccountIDs []string               `form:"accountID"`
	Balanced   *bool                  `form:"balanced"` // Data-integrity audit filter, applied after retrieval
	Page       int                    `form:"page,default=1"`
	Size       int                    `form:"size,default=20"`
}

// EntryLineResponse defines the data returned for one entry line.
type EntryLineResponse struct {
	LineID      string          `json:"lineID"`
	AccountID   string          `json:"accountID"`
	AccountCode string          `json:"accountCode,omitempty"`
	Description string          `json:"description,omitempty"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// EntryResponse defines the data returned for a journal entry.
type EntryResponse struct {
	EntryID        string              `json:"entryID"`
	OrganizationID string              `json:"organizationID"`
	CompanyID      *string             `json:"companyID,omitempty"`
	PeriodID       string              `json:"periodID"`
	Date           time.Time           `json:"date"`
	Description    string              `json:"description"`
	Source         domain.EntrySource  `json:"source"`
	Status         domain.EntryStatus  `json:"status"`
	Correlativo    string              `json:"correlativo"`
	AuditCode      string              `json:"auditCode"`
	CurrencyCode   string              `json:"currencyCode"`
	ExchangeRate   *decimal.Decimal    `json:"exchangeRate,omitempty"`
	DebitTotal     decimal.Decimal     `json:"debitTotal"`
	CreditTotal    decimal.Decimal     `json:"creditTotal"`
	SourceRef      *string             `json:"sourceRef,omitempty"`
	Lines          []EntryLineResponse `json:"lines,omitempty"`
	CreatedAt      time.Time           `json:"createdAt"`
	CreatedBy      string              `json:"createdBy"`
}

// ListEntriesResponse is one page of entries plus the unpaged total.
type ListEntriesResponse struct {
	Entries []EntryResponse `json:"entries"`
	Total   int64           `json:"total"`
	Page    int             `json:"page"`
	Size    int             `json:"size"`
}

// ToEntryLineResponse converts a domain.EntryLine to its response DTO.
func ToEntryLineResponse(line *domain.EntryLine) EntryLineResponse {
	return EntryLineResponse{
		LineID:      line.LineID,
		AccountID:   line.AccountID,
		AccountCode: line.AccountCode,
		Description: line.Description,
		Debit:       line.Debit,
		Credit:      line.Credit,
	}
}

// ToEntryResponse converts a domain.JournalEntry to its response DTO.
func ToEntryResponse(entry *domain.JournalEntry) EntryResponse {
	lines := make([]EntryLineResponse, len(entry.Lines))
	for i := range entry.Lines {
		lines[i] = ToEntryLineResponse(&entry.Lines[i])
	}
	return EntryResponse{
		EntryID:        entry.EntryID,
		OrganizationID: entry.OrganizationID,
		CompanyID:      entry.CompanyID,
		PeriodID:       entry.PeriodID,
		Date:           entry.Date,
		Description:    entry.Description,
		Source:         entry.Source,
		Status:         entry.Status,
		Correlativo:    entry.Correlativo,
		AuditCode:      entry.AuditCode,
		CurrencyCode:   entry.CurrencyCode,
		ExchangeRate:   entry.ExchangeRate,
		DebitTotal:     entry.DebitTotal,
		CreditTotal:    entry.CreditTotal,
		SourceRef:      entry.SourceRef,
		Lines:          lines,
		CreatedAt:      entry.CreatedAt,
		CreatedBy:      entry.CreatedBy,
	}
}

// ToEntryResponses converts a slice of entries to response DTOs.
func ToEntryResponses(entries []domain.JournalEntry) []EntryResponse {
	out := make([]EntryResponse, len(entries))
	for i := range entries {
		out[i] = ToEntryResponse(&entries[i])
	}
	return out
}

// ListLinesParams paginates an account activity listing.
type ListLinesParams struct {
	Page int `form:"page,default=1"`
	Size int `form:"size,default=20"`
}

// ListLinesResponse is one page of lines for a single account.
type ListLinesResponse struct {
	Lines []EntryLineResponse `json:"lines"`
	Total int64               `json:"total"`
	Page  int                 `json:"page"`
	Size  int                 `json:"size"`
}
