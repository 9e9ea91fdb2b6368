package repositories

import (
	"context"
	"time"

	"github.com/kipuerp/ledger_core/internal/core/domain"
)

// EntryFilters are the storage-level findAll filters. The balanced filter is
// applied by the service after retrieval.
type EntryFilters struct {
	DateFrom   *time.Time
	DateTo     *time.Time
	Sources    []domain.EntrySource
	Statuses   []domain.EntryStatus
	AccountIDs []string
}

// JournalReader defines read operations for journal entry data.
type JournalReader interface {
	// FindEntryByID retrieves an entry with its lines. Entries outside the
	// organization scope surface as apperrors.ErrNotFound.
	FindEntryByID(ctx context.Context, organizationID, entryID string) (*domain.JournalEntry, error)

	// FindEntryBySourceRef retrieves the entry recorded for an upstream
	// document reference, if any.
	FindEntryBySourceRef(ctx context.Context, organizationID string, source domain.EntrySource, sourceRef string) (*domain.JournalEntry, error)

	// ListEntries retrieves one page of entries (with lines) matching the
	// filters, ordered by date descending, plus the unpaged total.
	ListEntries(ctx context.Context, organizationID string, filters EntryFilters, limit, offset int) ([]domain.JournalEntry, int64, error)

	// ListLinesByAccount retrieves one page of lines posted to an account.
	ListLinesByAccount(ctx context.Context, organizationID, accountID string, limit, offset int) ([]domain.EntryLine, int64, error)
}

// JournalWriter defines write operations for journal entry data. Each method
// runs as a single atomic transaction; partial writes are never observable.
type JournalWriter interface {
	// CreateEntry persists an entry and its lines atomically. Inside the same
	// transaction it resolves or creates the calendar-month period for the
	// entry date, rejects locked periods, allocates the next correlativo from
	// the period counter, and relies on storage uniqueness for the
	// (organization, source, sourceRef) idempotency guard, surfacing
	// apperrors.ErrDuplicate on conflict. Returns the stored entry with the
	// assigned correlativo and period.
	CreateEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.EntryLine) (*domain.JournalEntry, error)

	// ReplaceEntryLines atomically replaces a draft entry's line set, header
	// patch fields, and stored totals.
	ReplaceEntryLines(ctx context.Context, entry domain.JournalEntry, lines []domain.EntryLine) error

	// UpdateEntryStatus transitions entry status from -> to, guarded by the
	// current status; a stale status surfaces apperrors.ErrConflict.
	UpdateEntryStatus(ctx context.Context, organizationID, entryID string, from, to domain.EntryStatus, actor string, now time.Time) error

	// DeleteEntry hard-deletes a draft entry and its lines.
	DeleteEntry(ctx context.Context, organizationID, entryID string) error
}

// JournalRepositoryFacade combines all journal repository interfaces.
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
}

// JournalRepositoryWithTx extends JournalRepositoryFacade with transaction capabilities.
type JournalRepositoryWithTx interface {
	JournalRepositoryFacade
	TransactionManager
}
