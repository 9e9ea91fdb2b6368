package services

// ServiceContainer bundles every service facade for handler wiring.
type ServiceContainer struct {
	Ledger       LedgerSvcFacade
	Chart        ChartSvcFacade
	Period       PeriodSvcFacade
	Event        EventSvcFacade
	Currency     CurrencySvcFacade
	ExchangeRate ExchangeRateSvcFacade
	APIToken     APITokenSvcFacade
}
