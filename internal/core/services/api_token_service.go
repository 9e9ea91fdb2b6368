package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/kipuerp/ledger_core/internal/apperrors"
	"github.com/kipuerp/ledger_core/internal/core/domain"
	portsrepo "github.com/kipuerp/ledger_core/internal/core/ports/repositories"
	portssvc "github.com/kipuerp/ledger_core/internal/core/ports/services"
	"github.com/kipuerp/ledger_core/internal/middleware"
	"github.com/kipuerp/ledger_core/internal/utils"
)

// tokenPrefix marks ledger API tokens so leaked strings are recognizable in
// secret scanners.
const tokenPrefix = "lgr_"

var ErrMalformedToken = errors.New("malformed api token")

// apiTokenService issues and validates the organization-scoped tokens
// upstream modules authenticate with. The plaintext embeds the token id so
// validation can fetch the record by id and bcrypt-compare the secret.
type apiTokenService struct {
	tokenRepo portsrepo.APITokenRepository
}

// NewAPITokenService creates a new API token service.
func NewAPITokenService(tokenRepo portsrepo.APITokenRepository) portssvc.APITokenSvcFacade {
	return &apiTokenService{tokenRepo: tokenRepo}
}

var _ portssvc.APITokenSvcFacade = (*apiTokenService)(nil)

// CreateToken mints a token for the tenant's organization. The returned
// plaintext is shown exactly once; only the bcrypt hash is stored.
func (s *apiTokenService) CreateToken(ctx context.Context, tenant domain.TenantContext, name string, expiresAt *time.Time, actor string) (*domain.APIToken, string, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !tenant.Valid() {
		return nil, "", apperrors.ErrInvalidTenant
	}
	if name == "" {
		return nil, "", fmt.Errorf("%w: token name is required", apperrors.ErrValidation)
	}

	secret, err := utils.GenerateSecureRandomString(32)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token secret: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash token secret: %w", err)
	}

	now := time.Now().UTC()
	token := &domain.APIToken{
		ID:             uuid.NewString(),
		OrganizationID: tenant.OrganizationID,
		CompanyID:      tenant.CompanyID,
		Name:           name,
		TokenHash:      string(hash),
		ExpiresAt:      expiresAt,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.tokenRepo.Create(ctx, token); err != nil {
		logger.Error("Failed to create api token", slog.String("error", err.Error()), slog.String("name", name))
		return nil, "", fmt.Errorf("failed to create api token: %w", err)
	}

	logger.Info("API token created",
		slog.String("token_id", token.ID),
		slog.String("organization_id", tenant.OrganizationID),
		slog.String("created_by", actor))
	plaintext := tokenPrefix + token.ID + "." + secret
	return token, plaintext, nil
}

// ValidateToken authenticates a presented plaintext token. Failures are
// reported uniformly as ErrNotFound so callers cannot probe token ids.
func (s *apiTokenService) ValidateToken(ctx context.Context, plaintext string) (*domain.APIToken, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	rest, found := strings.CutPrefix(plaintext, tokenPrefix)
	if !found {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrNotFound, ErrMalformedToken)
	}
	tokenID, secret, found := strings.Cut(rest, ".")
	if !found || tokenID == "" || secret == "" {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrNotFound, ErrMalformedToken)
	}

	token, err := s.tokenRepo.FindByID(ctx, tokenID)
	if err != nil {
		return nil, err
	}
	if token.IsExpired() {
		return nil, fmt.Errorf("%w: token expired", apperrors.ErrNotFound)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(token.TokenHash), []byte(secret)); err != nil {
		return nil, fmt.Errorf("%w: token mismatch", apperrors.ErrNotFound)
	}

	token.UpdateLastUsed()
	if err := s.tokenRepo.Update(ctx, token); err != nil {
		// Best effort; authentication already succeeded.
		logger.Warn("Failed to update token last used timestamp", slog.String("token_id", token.ID), slog.String("error", err.Error()))
	}
	return token, nil
}

// ListTokens retrieves the organization's tokens, hashes never included in
// responses.
func (s *apiTokenService) ListTokens(ctx context.Context, tenant domain.TenantContext) ([]domain.APIToken, error) {
	if !tenant.Valid() {
		return nil, apperrors.ErrInvalidTenant
	}
	return s.tokenRepo.FindByOrganizationID(ctx, tenant.OrganizationID)
}

// RevokeToken deletes a token belonging to the tenant's organization.
func (s *apiTokenService) RevokeToken(ctx context.Context, tenant domain.TenantContext, tokenID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !tenant.Valid() {
		return apperrors.ErrInvalidTenant
	}
	token, err := s.tokenRepo.FindByID(ctx, tokenID)
	if err != nil {
		return err
	}
	if token.OrganizationID != tenant.OrganizationID {
		// Obscure existence across organizations.
		return apperrors.ErrNotFound
	}
	if err := s.tokenRepo.Delete(ctx, tokenID); err != nil {
		logger.Error("Failed to revoke api token", slog.String("error", err.Error()), slog.String("token_id", tokenID))
		return fmt.Errorf("failed to revoke api token: %w", err)
	}
	logger.Info("API token revoked", slog.String("token_id", tokenID))
	return nil
}

// CleanupExpired removes tokens whose expiry passed before the given time.
func (s *apiTokenService) CleanupExpired(ctx context.Context, before time.Time) (int64, error) {
	removed, err := s.tokenRepo.DeleteExpired(ctx, before)
	if err != nil {
		return 0, fmt.Errorf("failed to clean up expired tokens: %w", err)
	}
	if removed > 0 {
		middleware.GetLoggerFromCtx(ctx).Info("Expired api tokens removed", slog.Int64("count", removed))
	}
	return removed, nil
}
