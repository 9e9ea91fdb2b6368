package services

import (
	portsrepo "github.com/kipuerp/ledger_core/internal/core/ports/repositories"
	portssvc "github.com/kipuerp/ledger_core/internal/core/ports/services"
	"github.com/kipuerp/ledger_core/internal/platform/cache"
)

// NewServiceContainer wires the full service graph from the repository
// provider. baseCurrency is the organization-wide reporting currency entries
// default to.
func NewServiceContainer(repos portsrepo.RepositoryProvider, bootstrapCache cache.BootstrapCache, baseCurrency string) *portssvc.ServiceContainer {
	chartSvc := NewChartService(repos.AccountRepo, bootstrapCache)
	currencySvc := NewCurrencyService(repos.CurrencyRepo)
	rateSvc := NewExchangeRateService(repos.ExchangeRateRepo, repos.CurrencyRepo)
	periodSvc := NewPeriodService(repos.PeriodRepo)
	ledgerSvc := NewLedgerService(repos.JournalRepo, chartSvc, periodSvc, currencySvc, rateSvc, baseCurrency)
	eventSvc := NewEventService(ledgerSvc, chartSvc, repos.JournalRepo)
	tokenSvc := NewAPITokenService(repos.APITokenRepo)

	return &portssvc.ServiceContainer{
		Ledger:       ledgerSvc,
		Chart:        chartSvc,
		Period:       periodSvc,
		Event:        eventSvc,
		Currency:     currencySvc,
		ExchangeRate: rateSvc,
		APIToken:     tokenSvc,
	}
}
