package domain

import "time"

// APIToken authenticates an upstream business module (sales, purchasing, ...)
// against the ledger. Tokens are scoped to one organization; the plaintext
// secret is only returned at creation time.
type APIToken struct {
	ID             string     `json:"id"`
	OrganizationID string     `json:"organizationID"`
	CompanyID      *string    `json:"companyID,omitempty"`
	Name           string     `json:"name"`
	TokenHash      string     `json:"-"` // Never expose the hash in JSON responses
	LastUsedAt     *time.Time `json:"lastUsedAt,omitempty"`
	ExpiresAt      *time.Time `json:"expiresAt,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
	DeletedAt      *time.Time `json:"-"` // For soft deletes
}

// IsExpired checks if the token has expired
func (t *APIToken) IsExpired() bool {
	if t.ExpiresAt == nil {
		return false
	}
	return t.ExpiresAt.Before(time.Now())
}

// UpdateLastUsed updates the LastUsedAt timestamp to the current time
func (t *APIToken) UpdateLastUsed() {
	now := time.Now()
	t.LastUsedAt = &now
}

// Tenant returns the tenant scope the token authenticates for.
func (t *APIToken) Tenant() TenantContext {
	return TenantContext{OrganizationID: t.OrganizationID, CompanyID: t.CompanyID}
}
