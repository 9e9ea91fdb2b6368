package models

import "time"

// APIToken mirrors the api_tokens table.
type APIToken struct {
	ID             string     `json:"id"`
	OrganizationID string     `json:"organizationID"`
	CompanyID      *string    `json:"companyID"` // Nullable
	Name           string     `json:"name"`
	TokenHash      string     `json:"-"`
	LastUsedAt     *time.Time `json:"lastUsedAt"`
	ExpiresAt      *time.Time `json:"expiresAt"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
	DeletedAt      *time.Time `json:"-"`
}
