package domain

// TenantContext carries the tenant scope every ledger operation runs under.
// It is supplied by the caller's authentication layer; the ledger treats it
// purely as filter and stamp values. OrganizationID is mandatory.
type TenantContext struct {
	OrganizationID string  `json:"organizationID"`
	CompanyID      *string `json:"companyID"`
}

// Valid reports whether the context carries the mandatory organization scope.
func (t TenantContext) Valid() bool {
	return t.OrganizationID != ""
}
