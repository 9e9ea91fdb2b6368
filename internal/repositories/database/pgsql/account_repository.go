package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kipuerp/ledger_core/internal/apperrors"
	"github.com/kipuerp/ledger_core/internal/core/domain"
	portsrepo "github.com/kipuerp/ledger_core/internal/core/ports/repositories"
	"github.com/kipuerp/ledger_core/internal/models"
	"github.com/kipuerp/ledger_core/internal/utils/mapping"
)

const accountColumns = `account_id, organization_id, code, name, account_type, level, is_posting, parent_account_id, description, is_active, created_at, created_by, last_updated_at, last_updated_by`

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for chart-of-accounts data.
func newPgxAccountRepository(pool *pgxpool.Pool) *PgxAccountRepository {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AccountRepositoryWithTx = (*PgxAccountRepository)(nil)
var _ portsrepo.AccountTxSupport = (*PgxAccountRepository)(nil)

func scanAccount(row pgx.Row) (models.Account, error) {
	var m models.Account
	err := row.Scan(
		&m.AccountID,
		&m.OrganizationID,
		&m.Code,
		&m.Name,
		&m.AccountType,
		&m.Level,
		&m.IsPosting,
		&m.ParentAccountID,
		&m.Description,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveAccount inserts a new account. Duplicate codes for the same
// organization surface as apperrors.ErrDuplicate.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)

	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.AccountID,
		m.OrganizationID,
		m.Code,
		m.Name,
		m.AccountType,
		m.Level,
		m.IsPosting,
		m.ParentAccountID,
		m.Description,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: account code %s", apperrors.ErrDuplicate, m.Code)
		}
		return fmt.Errorf("failed to save account %s: %w", m.AccountID, err)
	}
	return nil
}

// FindAccountByID retrieves an account within an organization.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, organizationID, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE organization_id = $1 AND account_id = $2;`

	m, err := scanAccount(r.Pool.QueryRow(ctx, query, organizationID, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account by id %s: %w", accountID, err)
	}
	d := mapping.ToDomainAccount(m)
	return &d, nil
}

// FindAccountByCode retrieves an account by chart code within an organization.
func (r *PgxAccountRepository) FindAccountByCode(ctx context.Context, organizationID, code string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE organization_id = $1 AND code = $2;`

	m, err := scanAccount(r.Pool.QueryRow(ctx, query, organizationID, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account by code %s: %w", code, err)
	}
	d := mapping.ToDomainAccount(m)
	return &d, nil
}

func collectAccounts(rows pgx.Rows) ([]models.Account, error) {
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Account, error) {
		return scanAccount(row)
	})
}

// FindAccountsByIDs retrieves multiple accounts keyed by id.
func (r *PgxAccountRepository) FindAccountsByIDs(ctx context.Context, organizationID string, accountIDs []string) (map[string]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE organization_id = $1 AND account_id = ANY($2);`

	rows, err := r.Pool.Query(ctx, query, organizationID, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts by ids: %w", err)
	}
	defer rows.Close()

	ms, err := collectAccounts(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to scan accounts by ids: %w", err)
	}
	out := make(map[string]domain.Account, len(ms))
	for _, m := range ms {
		out[m.AccountID] = mapping.ToDomainAccount(m)
	}
	return out, nil
}

// FindAccountsByCodes retrieves multiple accounts keyed by chart code.
func (r *PgxAccountRepository) FindAccountsByCodes(ctx context.Context, organizationID string, codes []string) (map[string]domain.Account, error) {
	if len(codes) == 0 {
		return map[string]domain.Account{}, nil
	}
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE organization_id = $1 AND code = ANY($2);`

	rows, err := r.Pool.Query(ctx, query, organizationID, codes)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts by codes: %w", err)
	}
	defer rows.Close()

	ms, err := collectAccounts(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to scan accounts by codes: %w", err)
	}
	out := make(map[string]domain.Account, len(ms))
	for _, m := range ms {
		out[m.Code] = mapping.ToDomainAccount(m)
	}
	return out, nil
}

// FindAccountsByIDsInTx retrieves accounts inside an open transaction.
func (r *PgxAccountRepository) FindAccountsByIDsInTx(ctx context.Context, tx pgx.Tx, organizationID string, accountIDs []string) (map[string]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE organization_id = $1 AND account_id = ANY($2);`

	rows, err := tx.Query(ctx, query, organizationID, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts in tx: %w", err)
	}
	defer rows.Close()

	ms, err := collectAccounts(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to scan accounts in tx: %w", err)
	}
	out := make(map[string]domain.Account, len(ms))
	for _, m := range ms {
		out[m.AccountID] = mapping.ToDomainAccount(m)
	}
	return out, nil
}

// ListAccounts retrieves a page of an organization's chart, ordered by code.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, organizationID string, limit, offset int) ([]domain.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE organization_id = $1
		ORDER BY code
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, organizationID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer rows.Close()

	ms, err := collectAccounts(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to scan accounts: %w", err)
	}
	return mapping.ToDomainAccountSlice(ms), nil
}

// CountAccounts returns total and posting-eligible account counts.
func (r *PgxAccountRepository) CountAccounts(ctx context.Context, organizationID string) (int64, int64, error) {
	query := `
		SELECT COUNT(*), COUNT(*) FILTER (WHERE is_posting)
		FROM accounts
		WHERE organization_id = $1;
	`
	var total, posting int64
	if err := r.Pool.QueryRow(ctx, query, organizationID).Scan(&total, &posting); err != nil {
		return 0, 0, fmt.Errorf("failed to count accounts: %w", err)
	}
	return total, posting, nil
}

// FindBookByCode retrieves a journal book by its well-known code.
func (r *PgxAccountRepository) FindBookByCode(ctx context.Context, organizationID, code string) (*domain.LedgerBook, error) {
	query := `
		SELECT book_id, organization_id, code, name, created_at, created_by, last_updated_at, last_updated_by
		FROM ledger_books
		WHERE organization_id = $1 AND code = $2;
	`
	var m models.LedgerBook
	err := r.Pool.QueryRow(ctx, query, organizationID, code).Scan(
		&m.BookID,
		&m.OrganizationID,
		&m.Code,
		&m.Name,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find book by code %s: %w", code, err)
	}
	d := mapping.ToDomainBook(m)
	return &d, nil
}

// SaveBook persists a journal book.
func (r *PgxAccountRepository) SaveBook(ctx context.Context, book domain.LedgerBook) error {
	m := mapping.ToModelBook(book)

	query := `
		INSERT INTO ledger_books (book_id, organization_id, code, name, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.BookID,
		m.OrganizationID,
		m.Code,
		m.Name,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: book code %s", apperrors.ErrDuplicate, m.Code)
		}
		return fmt.Errorf("failed to save book %s: %w", m.BookID, err)
	}
	return nil
}
