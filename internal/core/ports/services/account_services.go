package services

import (
	"context"

	"github.com/kipuerp/ledger_core/internal/core/domain"
	"github.com/kipuerp/ledger_core/internal/dto"
)

// ChartReaderSvc defines read operations over the chart of accounts.
type ChartReaderSvc interface {
	// GetAccountByID retrieves one account within the tenant scope.
	GetAccountByID(ctx context.Context, tenant domain.TenantContext, accountID string) (*domain.Account, error)

	// GetAccountsByIDs retrieves multiple accounts keyed by id.
	GetAccountsByIDs(ctx context.Context, tenant domain.TenantContext, accountIDs []string) (map[string]domain.Account, error)

	// ResolveCodes maps chart codes to accounts. A missing code surfaces
	// ErrMissingAccountCode: the chart needs seeding before mapping can work.
	ResolveCodes(ctx context.Context, tenant domain.TenantContext, codes []string) (map[string]domain.Account, error)

	// ListAccounts retrieves a page of the organization's chart, ordered by code.
	ListAccounts(ctx context.Context, tenant domain.TenantContext, params dto.ListAccountsParams) ([]domain.Account, error)
}

// ChartWriterSvc defines chart mutations.
type ChartWriterSvc interface {
	// CreateAccount adds an account under an optional parent code.
	CreateAccount(ctx context.Context, tenant domain.TenantContext, req dto.CreateAccountRequest, actor string) (*domain.Account, error)

	// EnsureDefaults idempotently bootstraps the default journal book and the
	// minimal chart of accounts for the organization.
	EnsureDefaults(ctx context.Context, tenant domain.TenantContext, actor string) error
}

// ChartSvcFacade combines all chart-of-accounts service interfaces.
type ChartSvcFacade interface {
	ChartReaderSvc
	ChartWriterSvc
}
