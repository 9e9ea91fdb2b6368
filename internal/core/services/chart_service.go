package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kipuerp/ledger_core/internal/apperrors"
	"github.com/kipuerp/ledger_core/internal/core/domain"
	portsrepo "github.com/kipuerp/ledger_core/internal/core/ports/repositories"
	portssvc "github.com/kipuerp/ledger_core/internal/core/ports/services"
	"github.com/kipuerp/ledger_core/internal/dto"
	"github.com/kipuerp/ledger_core/internal/middleware"
	"github.com/kipuerp/ledger_core/internal/platform/cache"
)

var (
	ErrMissingAccountCode = errors.New("account code not found in chart")
	ErrParentNotFound     = errors.New("parent account code not found")
	ErrCodeOutsideParent  = errors.New("account code must extend the parent code")
)

// chartSeed is one row of the default chart bootstrap.
type chartSeed struct {
	code        string
	name        string
	accountType domain.AccountType
	posting     bool
	parent      string
}

// defaultChart is the minimal PCGE-flavored chart every organization starts
// with. Ordered parent-first so each row's parent already exists when the
// row is inserted.
var defaultChart = []chartSeed{
	{code: "10", name: "Efectivo y equivalentes de efectivo", accountType: domain.Asset},
	{code: "101", name: "Caja", accountType: domain.Asset, posting: true, parent: "10"},
	{code: "104", name: "Cuentas corrientes en instituciones financieras", accountType: domain.Asset, posting: true, parent: "10"},
	{code: "12", name: "Cuentas por cobrar comerciales", accountType: domain.Asset},
	{code: "121", name: "Facturas, boletas y otros comprobantes por cobrar", accountType: domain.Asset, posting: true, parent: "12"},
	{code: "20", name: "Mercaderías", accountType: domain.Asset},
	{code: "201", name: "Mercaderías manufacturadas", accountType: domain.Asset, posting: true, parent: "20"},
	{code: "40", name: "Tributos por pagar", accountType: domain.Liability},
	{code: "401", name: "Gobierno central", accountType: domain.Liability, parent: "40"},
	{code: "40111", name: "IGV - cuenta propia", accountType: domain.Liability, posting: true, parent: "401"},
	{code: "42", name: "Cuentas por pagar comerciales", accountType: domain.Liability},
	{code: "421", name: "Facturas, boletas y otros comprobantes por pagar", accountType: domain.Liability, posting: true, parent: "42"},
	{code: "50", name: "Capital", accountType: domain.Equity},
	{code: "501", name: "Capital social", accountType: domain.Equity, posting: true, parent: "50"},
	{code: "69", name: "Costo de ventas", accountType: domain.Expense},
	{code: "691", name: "Mercaderías", accountType: domain.Expense, posting: true, parent: "69"},
	{code: "70", name: "Ventas", accountType: domain.Revenue},
	{code: "701", name: "Mercaderías", accountType: domain.Revenue, posting: true, parent: "70"},
}

// postingSeedCount returns how many defaultChart rows accept entry lines.
func postingSeedCount() int64 {
	var n int64
	for _, seed := range defaultChart {
		if seed.posting {
			n++
		}
	}
	return n
}

// chartService implements chart-of-accounts operations and the per-org
// bootstrap.
type chartService struct {
	accountRepo    portsrepo.AccountRepositoryFacade
	bootstrapCache cache.BootstrapCache
}

// NewChartService creates a new chart-of-accounts service. The cache may be
// nil, in which case every EnsureDefaults call hits storage.
func NewChartService(accountRepo portsrepo.AccountRepositoryFacade, bootstrapCache cache.BootstrapCache) portssvc.ChartSvcFacade {
	return &chartService{accountRepo: accountRepo, bootstrapCache: bootstrapCache}
}

var _ portssvc.ChartSvcFacade = (*chartService)(nil)

// GetAccountByID retrieves one account within the tenant scope.
func (s *chartService) GetAccountByID(ctx context.Context, tenant domain.TenantContext, accountID string) (*domain.Account, error) {
	if !tenant.Valid() {
		return nil, apperrors.ErrInvalidTenant
	}
	return s.accountRepo.FindAccountByID(ctx, tenant.OrganizationID, accountID)
}

// GetAccountsByIDs retrieves multiple accounts keyed by id.
func (s *chartService) GetAccountsByIDs(ctx context.Context, tenant domain.TenantContext, accountIDs []string) (map[string]domain.Account, error) {
	if !tenant.Valid() {
		return nil, apperrors.ErrInvalidTenant
	}
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}
	return s.accountRepo.FindAccountsByIDs(ctx, tenant.OrganizationID, accountIDs)
}

// ResolveCodes maps chart codes to accounts, failing on any missing code.
func (s *chartService) ResolveCodes(ctx context.Context, tenant domain.TenantContext, codes []string) (map[string]domain.Account, error) {
	if !tenant.Valid() {
		return nil, apperrors.ErrInvalidTenant
	}
	accounts, err := s.accountRepo.FindAccountsByCodes(ctx, tenant.OrganizationID, codes)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve account codes: %w", err)
	}
	for _, code := range codes {
		if _, found := accounts[code]; !found {
			return nil, fmt.Errorf("%w: %s", ErrMissingAccountCode, code)
		}
	}
	return accounts, nil
}

// ListAccounts retrieves a page of the organization's chart.
func (s *chartService) ListAccounts(ctx context.Context, tenant domain.TenantContext, params dto.ListAccountsParams) ([]domain.Account, error) {
	if !tenant.Valid() {
		return nil, apperrors.ErrInvalidTenant
	}
	if params.Limit <= 0 {
		params.Limit = 50
	}
	if params.Offset < 0 {
		params.Offset = 0
	}
	return s.accountRepo.ListAccounts(ctx, tenant.OrganizationID, params.Limit, params.Offset)
}

// CreateAccount adds an account to the organization's chart. The parent, when
// given, must exist and its code must prefix the new code.
func (s *chartService) CreateAccount(ctx context.Context, tenant domain.TenantContext, req dto.CreateAccountRequest, actor string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !tenant.Valid() {
		return nil, apperrors.ErrInvalidTenant
	}

	level := 1
	var parentID *string
	if req.ParentCode != nil && *req.ParentCode != "" {
		parent, err := s.accountRepo.FindAccountByCode(ctx, tenant.OrganizationID, *req.ParentCode)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: %w: %s", apperrors.ErrValidation, ErrParentNotFound, *req.ParentCode)
			}
			return nil, fmt.Errorf("failed to resolve parent account: %w", err)
		}
		if !strings.HasPrefix(req.Code, parent.Code) || req.Code == parent.Code {
			return nil, fmt.Errorf("%w: %w: %s under %s", apperrors.ErrValidation, ErrCodeOutsideParent, req.Code, parent.Code)
		}
		level = parent.Level + 1
		parentID = &parent.AccountID
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:       uuid.NewString(),
		OrganizationID:  tenant.OrganizationID,
		Code:            req.Code,
		Name:            req.Name,
		AccountType:     req.AccountType,
		Level:           level,
		IsPosting:       req.IsPosting,
		ParentAccountID: parentID,
		Description:     req.Description,
		IsActive:        true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor,
			LastUpdatedAt: now,
			LastUpdatedBy: actor,
		},
	}
	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			logger.Error("Failed to save account", slog.String("error", err.Error()), slog.String("code", req.Code))
		}
		return nil, err
	}

	logger.Info("Account created", slog.String("account_id", account.AccountID), slog.String("code", account.Code))
	return &account, nil
}

// EnsureDefaults idempotently bootstraps the default journal book and the
// minimal chart. Safe under concurrency: duplicate inserts from a racing
// bootstrap are treated as already-done rows, not failures.
func (s *chartService) EnsureDefaults(ctx context.Context, tenant domain.TenantContext, actor string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !tenant.Valid() {
		return apperrors.ErrInvalidTenant
	}
	if s.bootstrapCache != nil && s.bootstrapCache.IsSeeded(ctx, tenant.OrganizationID) {
		return nil
	}

	now := time.Now().UTC()
	audit := domain.AuditFields{CreatedAt: now, CreatedBy: actor, LastUpdatedAt: now, LastUpdatedBy: actor}

	if err := s.ensureDefaultBook(ctx, tenant.OrganizationID, audit); err != nil {
		return err
	}

	total, posting, err := s.accountRepo.CountAccounts(ctx, tenant.OrganizationID)
	if err != nil {
		return fmt.Errorf("failed to count accounts: %w", err)
	}
	// A chart of headers alone cannot take entries; only a tenant that also
	// holds the posting rows counts as bootstrapped.
	if total >= int64(len(defaultChart)) && posting >= postingSeedCount() {
		s.markSeeded(ctx, tenant.OrganizationID)
		return nil
	}

	createdByCode := make(map[string]string, len(defaultChart))
	seeded := 0
	for _, seed := range defaultChart {
		existing, err := s.accountRepo.FindAccountByCode(ctx, tenant.OrganizationID, seed.code)
		if err == nil {
			createdByCode[seed.code] = existing.AccountID
			continue
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("failed to check chart code %s: %w", seed.code, err)
		}

		account := domain.Account{
			AccountID:      uuid.NewString(),
			OrganizationID: tenant.OrganizationID,
			Code:           seed.code,
			Name:           seed.name,
			AccountType:    seed.accountType,
			Level:          1,
			IsPosting:      seed.posting,
			IsActive:       true,
			AuditFields:    audit,
		}
		if seed.parent != "" {
			parentID, ok := createdByCode[seed.parent]
			if !ok {
				// Parent rows precede children in defaultChart.
				return fmt.Errorf("%w: seed parent %s missing", apperrors.ErrInternal, seed.parent)
			}
			account.ParentAccountID = &parentID
		}
		account.Level = levelOf(seed.code)

		if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
			if errors.Is(err, apperrors.ErrDuplicate) {
				// Raced with another bootstrap; re-read the winner.
				winner, ferr := s.accountRepo.FindAccountByCode(ctx, tenant.OrganizationID, seed.code)
				if ferr != nil {
					return fmt.Errorf("failed to re-read seeded account %s: %w", seed.code, ferr)
				}
				createdByCode[seed.code] = winner.AccountID
				continue
			}
			logger.Error("Failed to seed chart account", slog.String("error", err.Error()), slog.String("code", seed.code))
			return fmt.Errorf("failed to seed chart account %s: %w", seed.code, err)
		}
		createdByCode[seed.code] = account.AccountID
		seeded++
	}

	if seeded > 0 {
		logger.Info("Default chart seeded", slog.String("organization_id", tenant.OrganizationID), slog.Int("accounts", seeded))
	}
	s.markSeeded(ctx, tenant.OrganizationID)
	return nil
}

func (s *chartService) ensureDefaultBook(ctx context.Context, organizationID string, audit domain.AuditFields) error {
	_, err := s.accountRepo.FindBookByCode(ctx, organizationID, domain.DefaultBookCode)
	if err == nil {
		return nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return fmt.Errorf("failed to check default book: %w", err)
	}
	book := domain.LedgerBook{
		BookID:         uuid.NewString(),
		OrganizationID: organizationID,
		Code:           domain.DefaultBookCode,
		Name:           "Libro Diario",
		AuditFields:    audit,
	}
	if err := s.accountRepo.SaveBook(ctx, book); err != nil && !errors.Is(err, apperrors.ErrDuplicate) {
		return fmt.Errorf("failed to create default book: %w", err)
	}
	return nil
}

func (s *chartService) markSeeded(ctx context.Context, organizationID string) {
	if s.bootstrapCache != nil {
		s.bootstrapCache.MarkSeeded(ctx, organizationID)
	}
}

// levelOf derives the hierarchy depth of a PCGE code: 2 digits is a class,
// 3 digits a subaccount, anything longer a divisionary.
func levelOf(code string) int {
	switch {
	case len(code) <= 2:
		return 1
	case len(code) <= 3:
		return 2
	default:
		return 3
	}
}
