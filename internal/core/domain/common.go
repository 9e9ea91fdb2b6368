package domain

import "time"

// AuditFields holds standard audit information for domain entities. The
// actor fields carry whatever subject the caller authenticated with, either
// a user id from a JWT or a "token:<name>" tag for API tokens.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"`
}
