package services

import (
	"context"
	"time"

	"github.com/kipuerp/ledger_core/internal/core/domain"
)

// APITokenSvcFacade issues and validates organization-scoped API tokens.
type APITokenSvcFacade interface {
	// CreateToken mints a token for the organization. The plaintext token
	// is returned exactly once; only its hash is stored.
	CreateToken(ctx context.Context, tenant domain.TenantContext, name string, expiresAt *time.Time, actor string) (*domain.APIToken, string, error)

	// ValidateToken checks a presented plaintext token and returns the
	// tenant it authenticates, updating the token's last-used timestamp.
	ValidateToken(ctx context.Context, plaintext string) (*domain.APIToken, error)

	ListTokens(ctx context.Context, tenant domain.TenantContext) ([]domain.APIToken, error)
	RevokeToken(ctx context.Context, tenant domain.TenantContext, tokenID string) error

	// CleanupExpired removes tokens whose expiry passed before the given time
	// and returns how many were removed.
	CleanupExpired(ctx context.Context, before time.Time) (int64, error)
}
