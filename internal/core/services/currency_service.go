package services

import (
	"context"
	"strings"

	"github.com/kipuerp/ledger_core/internal/core/domain"
	portsrepo "github.com/kipuerp/ledger_core/internal/core/ports/repositories"
	portssvc "github.com/kipuerp/ledger_core/internal/core/ports/services"
)

// currencyService serves the currency registry. Currencies are global
// reference data seeded by migration, not tenant-scoped.
type currencyService struct {
	currencyRepo portsrepo.CurrencyRepositoryFacade
}

// NewCurrencyService creates a new currency service.
func NewCurrencyService(currencyRepo portsrepo.CurrencyRepositoryFacade) portssvc.CurrencySvcFacade {
	return &currencyService{currencyRepo: currencyRepo}
}

var _ portssvc.CurrencySvcFacade = (*currencyService)(nil)

// GetCurrency retrieves a currency by its ISO code, case-insensitively.
func (s *currencyService) GetCurrency(ctx context.Context, code string) (*domain.Currency, error) {
	return s.currencyRepo.FindCurrencyByCode(ctx, strings.ToUpper(code))
}

// ListCurrencies retrieves all registered currencies.
func (s *currencyService) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	return s.currencyRepo.ListCurrencies(ctx)
}
