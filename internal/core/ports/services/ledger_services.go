package services

import (
	"context"

	"github.com/kipuerp/ledger_core/internal/core/domain"
	"github.com/kipuerp/ledger_core/internal/dto"
)

// LedgerReaderSvc defines the ledger query operations.
type LedgerReaderSvc interface {
	// GetEntryByID retrieves an entry with resolved account details.
	GetEntryByID(ctx context.Context, tenant domain.TenantContext, entryID string) (*domain.JournalEntry, error)

	// ListEntries retrieves one page of entries matching the filters, always
	// scoped to the tenant.
	ListEntries(ctx context.Context, tenant domain.TenantContext, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error)

	// ListLinesByAccount retrieves one page of lines posted to an account.
	ListLinesByAccount(ctx context.Context, tenant domain.TenantContext, accountID string, params dto.ListLinesParams) (*dto.ListLinesResponse, error)
}

// LedgerWriterSvc defines the mutating lifecycle operations.
type LedgerWriterSvc interface {
	// CreateEntry validates and persists a new journal entry atomically.
	CreateEntry(ctx context.Context, tenant domain.TenantContext, req dto.CreateEntryRequest, actor string) (*domain.JournalEntry, error)

	// UpdateEntry patches a DRAFT entry, replacing the line set when supplied.
	UpdateEntry(ctx context.Context, tenant domain.TenantContext, entryID string, req dto.UpdateEntryRequest, actor string) (*domain.JournalEntry, error)

	// PostEntry transitions DRAFT -> POSTED after a balance check.
	PostEntry(ctx context.Context, tenant domain.TenantContext, entryID, actor string) (*domain.JournalEntry, error)

	// VoidEntry transitions POSTED -> VOID. Terminal; no lines are reversed.
	VoidEntry(ctx context.Context, tenant domain.TenantContext, entryID, actor string) (*domain.JournalEntry, error)

	// DeleteEntry hard-deletes a DRAFT entry and its lines.
	DeleteEntry(ctx context.Context, tenant domain.TenantContext, entryID string) error
}

// LedgerSvcFacade combines all ledger service interfaces.
type LedgerSvcFacade interface {
	LedgerReaderSvc
	LedgerWriterSvc
}
