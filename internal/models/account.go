package models

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// Account mirrors the accounts table.
type Account struct {
	AccountID       string      `json:"accountID"`
	OrganizationID  string      `json:"organizationID"`
	Code            string      `json:"code"`
	Name            string      `json:"name"`
	AccountType     AccountType `json:"accountType"`
	Level           int         `json:"level"`
	IsPosting       bool        `json:"isPosting"`
	ParentAccountID *string     `json:"parentAccountID"` // Nullable
	Description     string      `json:"description"`
	IsActive        bool        `json:"isActive"`
	AuditFields
}

// LedgerBook mirrors the ledger_books table.
type LedgerBook struct {
	BookID         string `json:"bookID"`
	OrganizationID string `json:"organizationID"`
	Code           string `json:"code"`
	Name           string `json:"name"`
	AuditFields
}
