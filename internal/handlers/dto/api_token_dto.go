package dto

import (
	"time"

	"github.com/kipuerp/ledger_core/internal/core/domain"
)

// APIErrorResponse is the generic error payload for token endpoints.
type APIErrorResponse struct {
	Message string `json:"message"`
}

// APITokenResponse describes one issued token, hash never included.
type APITokenResponse struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	LastUsedAt *time.Time `json:"lastUsedAt,omitempty"`
	ExpiresAt  *time.Time `json:"expiresAt,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
}

// CreateAPITokenRequest creates a new organization-scoped token.
type CreateAPITokenRequest struct {
	Name string `json:"name" binding:"required,min=3,max=100"`
	// ExpiresIn is the token lifetime in seconds; omitted means non-expiring.
	ExpiresIn *int64 `json:"expiresIn,omitempty"`
}

// CreateAPITokenResponse carries the plaintext token, shown once.
type CreateAPITokenResponse struct {
	Token   string           `json:"token"`
	Details APITokenResponse `json:"details"`
}

// ToAPITokenResponse converts a domain APIToken to its response DTO.
func ToAPITokenResponse(t *domain.APIToken) APITokenResponse {
	return APITokenResponse{
		ID:         t.ID,
		Name:       t.Name,
		LastUsedAt: t.LastUsedAt,
		ExpiresAt:  t.ExpiresAt,
		CreatedAt:  t.CreatedAt,
	}
}

// ToAPITokenResponses converts a slice of tokens to response DTOs.
func ToAPITokenResponses(tokens []domain.APIToken) []APITokenResponse {
	out := make([]APITokenResponse, len(tokens))
	for i := range tokens {
		out[i] = ToAPITokenResponse(&tokens[i])
	}
	return out
}
