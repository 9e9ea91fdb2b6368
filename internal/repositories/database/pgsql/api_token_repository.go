package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kipuerp/ledger_core/internal/apperrors"
	"github.com/kipuerp/ledger_core/internal/core/domain"
	portsrepo "github.com/kipuerp/ledger_core/internal/core/ports/repositories"
	"github.com/kipuerp/ledger_core/internal/models"
	"github.com/kipuerp/ledger_core/internal/utils/mapping"
)

const apiTokenColumns = `id, organization_id, company_id, name, token_hash, last_used_at, expires_at, created_at, updated_at, deleted_at`

type PgxAPITokenRepository struct {
	BaseRepository
}

// newPgxAPITokenRepository creates a new repository for API token data.
func newPgxAPITokenRepository(pool *pgxpool.Pool) *PgxAPITokenRepository {
	return &PgxAPITokenRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.APITokenRepository = (*PgxAPITokenRepository)(nil)

func scanAPIToken(row pgx.Row) (models.APIToken, error) {
	var m models.APIToken
	err := row.Scan(
		&m.ID,
		&m.OrganizationID,
		&m.CompanyID,
		&m.Name,
		&m.TokenHash,
		&m.LastUsedAt,
		&m.ExpiresAt,
		&m.CreatedAt,
		&m.UpdatedAt,
		&m.DeletedAt,
	)
	return m, err
}

// Create persists a new API token.
func (r *PgxAPITokenRepository) Create(ctx context.Context, token *domain.APIToken) error {
	m := mapping.ToModelAPIToken(*token)

	query := `
		INSERT INTO api_tokens (` + apiTokenColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.ID,
		m.OrganizationID,
		m.CompanyID,
		m.Name,
		m.TokenHash,
		m.LastUsedAt,
		m.ExpiresAt,
		m.CreatedAt,
		m.UpdatedAt,
		m.DeletedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: api token %s", apperrors.ErrDuplicate, m.ID)
		}
		return fmt.Errorf("failed to create api token %s: %w", m.ID, err)
	}
	return nil
}

// FindByID retrieves a non-deleted API token by its ID.
func (r *PgxAPITokenRepository) FindByID(ctx context.Context, id string) (*domain.APIToken, error) {
	query := `SELECT ` + apiTokenColumns + ` FROM api_tokens WHERE id = $1 AND deleted_at IS NULL;`

	m, err := scanAPIToken(r.Pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find api token by id %s: %w", id, err)
	}
	d := mapping.ToDomainAPIToken(m)
	return &d, nil
}

// FindByOrganizationID retrieves all live tokens issued to an organization.
func (r *PgxAPITokenRepository) FindByOrganizationID(ctx context.Context, organizationID string) ([]domain.APIToken, error) {
	query := `
		SELECT ` + apiTokenColumns + `
		FROM api_tokens
		WHERE organization_id = $1 AND deleted_at IS NULL
		ORDER BY created_at DESC;
	`
	rows, err := r.Pool.Query(ctx, query, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to query api tokens: %w", err)
	}
	defer rows.Close()

	ms, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.APIToken, error) {
		return scanAPIToken(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan api tokens: %w", err)
	}
	return mapping.ToDomainAPITokenSlice(ms), nil
}

// Update updates an existing API token (e.g., the last_used_at stamp).
func (r *PgxAPITokenRepository) Update(ctx context.Context, token *domain.APIToken) error {
	m := mapping.ToModelAPIToken(*token)

	query := `
		UPDATE api_tokens
		SET name = $1, last_used_at = $2, expires_at = $3, updated_at = $4
		WHERE id = $5 AND deleted_at IS NULL;
	`
	tag, err := r.Pool.Exec(ctx, query, m.Name, m.LastUsedAt, m.ExpiresAt, time.Now().UTC(), m.ID)
	if err != nil {
		return fmt.Errorf("failed to update api token %s: %w", m.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// Delete soft-deletes an API token by ID.
func (r *PgxAPITokenRepository) Delete(ctx context.Context, id string) error {
	query := `UPDATE api_tokens SET deleted_at = $1 WHERE id = $2 AND deleted_at IS NULL;`

	tag, err := r.Pool.Exec(ctx, query, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to delete api token %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteExpired soft-deletes all tokens expired before the given time.
func (r *PgxAPITokenRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	query := `
		UPDATE api_tokens
		SET deleted_at = $1
		WHERE expires_at IS NOT NULL AND expires_at < $1 AND deleted_at IS NULL;
	`
	tag, err := r.Pool.Exec(ctx, query, before)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired api tokens: %w", err)
	}
	return tag.RowsAffected(), nil
}
