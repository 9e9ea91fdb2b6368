package services

import (
	"context"
	"time"

	"github.com/kipuerp/ledger_core/internal/core/domain"
)

// PeriodSvcFacade manages calendar-month accounting periods.
type PeriodSvcFacade interface {
	// ResolvePeriod finds or creates (OPEN) the period covering date.
	ResolvePeriod(ctx context.Context, tenant domain.TenantContext, date time.Time, actor string) (*domain.Period, error)

	// GetPeriodByID retrieves one period within the tenant scope.
	GetPeriodByID(ctx context.Context, tenant domain.TenantContext, periodID string) (*domain.Period, error)

	// AssertOpen fails with apperrors.ErrPeriodLocked unless the period is OPEN.
	AssertOpen(ctx context.Context, tenant domain.TenantContext, periodID string) error

	// ListPeriods retrieves the organization's periods, newest first.
	ListPeriods(ctx context.Context, tenant domain.TenantContext) ([]domain.Period, error)

	// LockPeriod is the one-way administrative lock action.
	LockPeriod(ctx context.Context, tenant domain.TenantContext, periodID, actor string) error
}
