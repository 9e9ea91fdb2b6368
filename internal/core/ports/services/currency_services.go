package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kipuerp/ledger_core/internal/core/domain"
)

// CurrencySvcFacade exposes the currency registry.
type CurrencySvcFacade interface {
	GetCurrency(ctx context.Context, code string) (*domain.Currency, error)
	ListCurrencies(ctx context.Context) ([]domain.Currency, error)
}

// ExchangeRateSvcFacade records and resolves exchange rates for
// stamping foreign-currency entries.
type ExchangeRateSvcFacade interface {
	CreateExchangeRate(ctx context.Context, rate domain.ExchangeRate, actor string) (*domain.ExchangeRate, error)

	// LatestRate returns the most recent rate effective on or before the
	// given date, or apperrors.ErrNotFound when none exists.
	LatestRate(ctx context.Context, fromCode, toCode string, onOrBefore time.Time) (decimal.Decimal, error)
}
