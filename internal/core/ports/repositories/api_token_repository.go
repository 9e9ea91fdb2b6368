package repositories

import (
	"context"
	"time"

	"github.com/kipuerp/ledger_core/internal/core/domain"
)

// APITokenRepository defines the interface for API token data access operations
type APITokenRepository interface {
	// Create persists a new API token
	Create(ctx context.Context, token *domain.APIToken) error

	// FindByID retrieves an API token by its ID
	FindByID(ctx context.Context, id string) (*domain.APIToken, error)

	// FindByOrganizationID retrieves all API tokens issued to an organization
	FindByOrganizationID(ctx context.Context, organizationID string) ([]domain.APIToken, error)

	// Update updates an existing API token (e.g., to update last_used_at)
	Update(ctx context.Context, token *domain.APIToken) error

	// Delete removes an API token by ID
	Delete(ctx context.Context, id string) error

	// DeleteExpired soft-deletes all tokens expired before the given time
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}
