package domain

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// Account represents one node of an organization's chart of accounts.
// Codes are hierarchical ("10" -> "101" -> "1011"); only leaf accounts
// flagged IsPosting may receive entry lines.
type Account struct {
	AccountID       string      `json:"accountID"`       // Primary Key (UUID)
	OrganizationID  string      `json:"organizationID"`  // Tenant scope (NON-NULL)
	Code            string      `json:"code"`            // Unique per organization
	Name            string      `json:"name"`            // Display name
	AccountType     AccountType `json:"accountType"`     // ASSET, LIABILITY, etc.
	Level           int         `json:"level"`           // Depth in the code hierarchy, 1-based
	IsPosting       bool        `json:"isPosting"`       // Leaf accounts only
	ParentAccountID *string     `json:"parentAccountID"` // Nullable, same organization
	Description     string      `json:"description"`     // Nullable user description
	IsActive        bool        `json:"isActive"`
	AuditFields
}

// LedgerBook is the journal book entries are recorded against. Every
// organization gets a default book ("DIARIO") on bootstrap.
type LedgerBook struct {
	BookID         string `json:"bookID"`
	OrganizationID string `json:"organizationID"`
	Code           string `json:"code"`
	Name           string `json:"name"`
	AuditFields
}

// DefaultBookCode identifies the well-known default journal book.
const DefaultBookCode = "DIARIO"
