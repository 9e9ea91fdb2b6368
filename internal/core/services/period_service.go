package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/kipuerp/ledger_core/internal/apperrors"
	"github.com/kipuerp/ledger_core/internal/core/domain"
	portsrepo "github.com/kipuerp/ledger_core/internal/core/ports/repositories"
	portssvc "github.com/kipuerp/ledger_core/internal/core/ports/services"
	"github.com/kipuerp/ledger_core/internal/middleware"
)

// periodService implements calendar-month period management. The entry-create
// transaction resolves periods on its own inside the repository; this service
// serves the administrative surface.
type periodService struct {
	periodRepo portsrepo.PeriodRepositoryFacade
}

// NewPeriodService creates a new period service.
func NewPeriodService(periodRepo portsrepo.PeriodRepositoryFacade) portssvc.PeriodSvcFacade {
	return &periodService{periodRepo: periodRepo}
}

var _ portssvc.PeriodSvcFacade = (*periodService)(nil)

// ResolvePeriod finds or creates the OPEN period covering date.
func (s *periodService) ResolvePeriod(ctx context.Context, tenant domain.TenantContext, date time.Time, actor string) (*domain.Period, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !tenant.Valid() {
		return nil, apperrors.ErrInvalidTenant
	}
	start, end := domain.MonthBounds(date)

	period, err := s.periodRepo.FindPeriodByRange(ctx, tenant.OrganizationID, start, end)
	if err == nil {
		return period, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up period: %w", err)
	}

	now := time.Now().UTC()
	fresh := domain.Period{
		PeriodID:       uuid.NewString(),
		OrganizationID: tenant.OrganizationID,
		StartDate:      start,
		EndDate:        end,
		Status:         domain.PeriodOpen,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor,
			LastUpdatedAt: now,
			LastUpdatedBy: actor,
		},
	}
	if err := s.periodRepo.SavePeriod(ctx, fresh); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			// Raced with a concurrent resolve; the stored row wins.
			return s.periodRepo.FindPeriodByRange(ctx, tenant.OrganizationID, start, end)
		}
		logger.Error("Failed to create period", slog.String("error", err.Error()), slog.Time("start", start))
		return nil, fmt.Errorf("failed to create period: %w", err)
	}

	logger.Info("Period created", slog.String("period_id", fresh.PeriodID), slog.Time("start", start))
	return &fresh, nil
}

// GetPeriodByID retrieves one period within the tenant scope.
func (s *periodService) GetPeriodByID(ctx context.Context, tenant domain.TenantContext, periodID string) (*domain.Period, error) {
	if !tenant.Valid() {
		return nil, apperrors.ErrInvalidTenant
	}
	return s.periodRepo.FindPeriodByID(ctx, tenant.OrganizationID, periodID)
}

// AssertOpen fails with ErrPeriodLocked unless the period accepts changes.
func (s *periodService) AssertOpen(ctx context.Context, tenant domain.TenantContext, periodID string) error {
	period, err := s.GetPeriodByID(ctx, tenant, periodID)
	if err != nil {
		return err
	}
	if period.Status != domain.PeriodOpen {
		return fmt.Errorf("%w: period %s", apperrors.ErrPeriodLocked, periodID)
	}
	return nil
}

// ListPeriods retrieves all of the organization's periods, newest first.
func (s *periodService) ListPeriods(ctx context.Context, tenant domain.TenantContext) ([]domain.Period, error) {
	if !tenant.Valid() {
		return nil, apperrors.ErrInvalidTenant
	}
	return s.periodRepo.ListPeriods(ctx, tenant.OrganizationID)
}

// LockPeriod transitions an OPEN period to LOCKED. One-way; there is no
// unlock operation.
func (s *periodService) LockPeriod(ctx context.Context, tenant domain.TenantContext, periodID, actor string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !tenant.Valid() {
		return apperrors.ErrInvalidTenant
	}
	if err := s.periodRepo.LockPeriod(ctx, tenant.OrganizationID, periodID, actor, time.Now().UTC()); err != nil {
		if !errors.Is(err, apperrors.ErrPeriodLocked) && !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to lock period", slog.String("error", err.Error()), slog.String("period_id", periodID))
		}
		return err
	}
	logger.Info("Period locked", slog.String("period_id", periodID))
	return nil
}
