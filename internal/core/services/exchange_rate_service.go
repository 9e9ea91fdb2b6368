package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kipuerp/ledger_core/internal/apperrors"
	"github.com/kipuerp/ledger_core/internal/core/domain"
	portsrepo "github.com/kipuerp/ledger_core/internal/core/ports/repositories"
	portssvc "github.com/kipuerp/ledger_core/internal/core/ports/services"
	"github.com/kipuerp/ledger_core/internal/middleware"
)

var (
	ErrSameCurrencyRate = errors.New("source and target currency must differ")
	ErrNonPositiveRate  = errors.New("exchange rate must be positive")
)

// exchangeRateService records and resolves conversion rates used when
// stamping foreign-currency entries.
type exchangeRateService struct {
	rateRepo     portsrepo.ExchangeRateRepositoryFacade
	currencyRepo portsrepo.CurrencyRepositoryFacade
}

// NewExchangeRateService creates a new exchange rate service.
func NewExchangeRateService(rateRepo portsrepo.ExchangeRateRepositoryFacade, currencyRepo portsrepo.CurrencyRepositoryFacade) portssvc.ExchangeRateSvcFacade {
	return &exchangeRateService{rateRepo: rateRepo, currencyRepo: currencyRepo}
}

var _ portssvc.ExchangeRateSvcFacade = (*exchangeRateService)(nil)

// CreateExchangeRate validates and persists a dated conversion rate.
func (s *exchangeRateService) CreateExchangeRate(ctx context.Context, rate domain.ExchangeRate, actor string) (*domain.ExchangeRate, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	rate.FromCurrencyCode = strings.ToUpper(rate.FromCurrencyCode)
	rate.ToCurrencyCode = strings.ToUpper(rate.ToCurrencyCode)
	if rate.FromCurrencyCode == rate.ToCurrencyCode {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrSameCurrencyRate)
	}
	if !rate.Rate.IsPositive() {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrNonPositiveRate)
	}
	for _, code := range []string{rate.FromCurrencyCode, rate.ToCurrencyCode} {
		if _, err := s.currencyRepo.FindCurrencyByCode(ctx, code); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: unknown currency %s", apperrors.ErrValidation, code)
			}
			return nil, fmt.Errorf("failed to check currency %s: %w", code, err)
		}
	}

	now := time.Now().UTC()
	rate.ExchangeRateID = uuid.NewString()
	rate.AuditFields = domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     actor,
		LastUpdatedAt: now,
		LastUpdatedBy: actor,
	}
	if err := s.rateRepo.SaveExchangeRate(ctx, rate); err != nil {
		logger.Error("Failed to save exchange rate", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save exchange rate: %w", err)
	}

	logger.Info("Exchange rate created",
		slog.String("from", rate.FromCurrencyCode),
		slog.String("to", rate.ToCurrencyCode),
		slog.String("rate", rate.Rate.String()))
	return &rate, nil
}

// LatestRate returns the most recent rate effective on or before the given
// date. Identical currencies convert at 1.
func (s *exchangeRateService) LatestRate(ctx context.Context, fromCode, toCode string, onOrBefore time.Time) (decimal.Decimal, error) {
	fromCode = strings.ToUpper(fromCode)
	toCode = strings.ToUpper(toCode)
	if fromCode == toCode {
		return decimal.NewFromInt(1), nil
	}
	rate, err := s.rateRepo.FindLatestRate(ctx, fromCode, toCode, onOrBefore)
	if err != nil {
		return decimal.Zero, err
	}
	return rate.Rate, nil
}
