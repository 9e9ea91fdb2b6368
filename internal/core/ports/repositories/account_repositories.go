package repositories

import (
	"context"

	"github.com/kipuerp/ledger_core/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// AccountReader defines read operations for chart-of-accounts data.
// Every lookup is scoped to one organization; the scope is a query
// predicate, never a post-fetch check.
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, organizationID, accountID string) (*domain.Account, error)

	// FindAccountByCode retrieves an account by chart code.
	FindAccountByCode(ctx context.Context, organizationID, code string) (*domain.Account, error)

	// FindAccountsByIDs retrieves multiple accounts by their IDs.
	FindAccountsByIDs(ctx context.Context, organizationID string, accountIDs []string) (map[string]domain.Account, error)

	// FindAccountsByCodes retrieves multiple accounts keyed by chart code.
	FindAccountsByCodes(ctx context.Context, organizationID string, codes []string) (map[string]domain.Account, error)

	// ListAccounts retrieves a paginated list of accounts for an organization, ordered by code.
	ListAccounts(ctx context.Context, organizationID string, limit, offset int) ([]domain.Account, error)

	// CountAccounts returns total and posting-eligible account counts for an organization.
	CountAccounts(ctx context.Context, organizationID string) (total int64, posting int64, err error)
}

// AccountWriter defines write operations for chart-of-accounts data.
type AccountWriter interface {
	// SaveAccount persists a new account. Codes already present for the
	// organization yield apperrors.ErrDuplicate.
	SaveAccount(ctx context.Context, account domain.Account) error
}

// BookReader defines read operations for ledger book records.
type BookReader interface {
	// FindBookByCode retrieves a journal book by its well-known code.
	FindBookByCode(ctx context.Context, organizationID, code string) (*domain.LedgerBook, error)
}

// BookWriter defines write operations for ledger book records.
type BookWriter interface {
	// SaveBook persists a journal book; existing codes yield apperrors.ErrDuplicate.
	SaveBook(ctx context.Context, book domain.LedgerBook) error
}

// AccountRepositoryFacade combines all chart-of-accounts repository interfaces.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	BookReader
	BookWriter
}

// AccountRepositoryWithTx extends AccountRepositoryFacade with transaction capabilities.
type AccountRepositoryWithTx interface {
	AccountRepositoryFacade
	TransactionManager
}

// AccountTxSupport exposes the lookups the entry-create transaction needs
// against an in-flight pgx transaction.
type AccountTxSupport interface {
	// FindAccountsByIDsInTx retrieves accounts inside an open transaction.
	FindAccountsByIDsInTx(ctx context.Context, tx pgx.Tx, organizationID string, accountIDs []string) (map[string]domain.Account, error)
}
