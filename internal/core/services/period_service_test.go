package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/kipuerp/ledger_core/internal/apperrors"
	"github.com/kipuerp/ledger_core/internal/core/domain"
	portssvc "github.com/kipuerp/ledger_core/internal/core/ports/services"
	"github.com/kipuerp/ledger_core/internal/core/services"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock PeriodRepository ---
type MockPeriodRepository struct {
	mock.Mock
}

func (m *MockPeriodRepository) FindPeriodByID(ctx context.Context, organizationID, periodID string) (*domain.Period, error) {
	args := m.Called(ctx, organizationID, periodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Period), args.Error(1)
}

func (m *MockPeriodRepository) FindPeriodByRange(ctx context.Context, organizationID string, start, end time.Time) (*domain.Period, error) {
	args := m.Called(ctx, organizationID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Period), args.Error(1)
}

func (m *MockPeriodRepository) ListPeriods(ctx context.Context, organizationID string) ([]domain.Period, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Period), args.Error(1)
}

func (m *MockPeriodRepository) SavePeriod(ctx context.Context, period domain.Period) error {
	args := m.Called(ctx, period)
	return args.Error(0)
}

func (m *MockPeriodRepository) LockPeriod(ctx context.Context, organizationID, periodID, actor string, now time.Time) error {
	args := m.Called(ctx, organizationID, periodID, actor, now)
	return args.Error(0)
}

func (m *MockPeriodRepository) EnsurePeriodForUpdateInTx(ctx context.Context, tx pgx.Tx, organizationID string, start, end time.Time, actor string, now time.Time) (*domain.Period, error) {
	args := m.Called(ctx, tx, organizationID, start, end, actor, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Period), args.Error(1)
}

func (m *MockPeriodRepository) NextCorrelativoInTx(ctx context.Context, tx pgx.Tx, periodID string) (int64, error) {
	args := m.Called(ctx, tx, periodID)
	return args.Get(0).(int64), args.Error(1)
}

// --- Test Suite ---
type PeriodServiceTestSuite struct {
	suite.Suite
	mockRepo *MockPeriodRepository
	service  portssvc.PeriodSvcFacade
	tenant   domain.TenantContext
}

func (suite *PeriodServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockPeriodRepository)
	suite.service = services.NewPeriodService(suite.mockRepo)
	suite.tenant = domain.TenantContext{OrganizationID: uuid.NewString()}
}

// --- Test Cases ---

func (suite *PeriodServiceTestSuite) TestResolvePeriod_Existing() {
	ctx := context.Background()
	date := time.Date(2025, time.June, 12, 0, 0, 0, 0, time.UTC)
	start, end := domain.MonthBounds(date)
	existing := &domain.Period{PeriodID: uuid.NewString(), OrganizationID: suite.tenant.OrganizationID, StartDate: start, EndDate: end, Status: domain.PeriodOpen}

	suite.mockRepo.On("FindPeriodByRange", ctx, suite.tenant.OrganizationID, start, end).Return(existing, nil).Once()

	period, err := suite.service.ResolvePeriod(ctx, suite.tenant, date, "user-1")

	suite.Require().NoError(err)
	suite.Equal(existing, period)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PeriodServiceTestSuite) TestResolvePeriod_CreatesWhenAbsent() {
	ctx := context.Background()
	date := time.Date(2025, time.June, 12, 0, 0, 0, 0, time.UTC)
	start, end := domain.MonthBounds(date)
	actor := "user-1"

	suite.mockRepo.On("FindPeriodByRange", ctx, suite.tenant.OrganizationID, start, end).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("SavePeriod", ctx, mock.MatchedBy(func(p domain.Period) bool {
		return p.OrganizationID == suite.tenant.OrganizationID &&
			p.StartDate.Equal(start) && p.EndDate.Equal(end) &&
			p.Status == domain.PeriodOpen && p.CreatedBy == actor
	})).Return(nil).Once()

	period, err := suite.service.ResolvePeriod(ctx, suite.tenant, date, actor)

	suite.Require().NoError(err)
	suite.Require().NotNil(period)
	suite.Equal(domain.PeriodOpen, period.Status)
	suite.NotEmpty(period.PeriodID)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PeriodServiceTestSuite) TestResolvePeriod_DuplicateRaceFetchesWinner() {
	ctx := context.Background()
	date := time.Date(2025, time.June, 12, 0, 0, 0, 0, time.UTC)
	start, end := domain.MonthBounds(date)
	winner := &domain.Period{PeriodID: uuid.NewString(), Status: domain.PeriodOpen}

	suite.mockRepo.On("FindPeriodByRange", ctx, suite.tenant.OrganizationID, start, end).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("SavePeriod", ctx, mock.AnythingOfType("domain.Period")).Return(apperrors.ErrDuplicate).Once()
	suite.mockRepo.On("FindPeriodByRange", ctx, suite.tenant.OrganizationID, start, end).Return(winner, nil).Once()

	period, err := suite.service.ResolvePeriod(ctx, suite.tenant, date, "user-1")

	suite.Require().NoError(err)
	suite.Equal(winner, period)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PeriodServiceTestSuite) TestResolvePeriod_InvalidTenant() {
	_, err := suite.service.ResolvePeriod(context.Background(), domain.TenantContext{}, time.Now(), "user-1")
	suite.ErrorIs(err, apperrors.ErrInvalidTenant)
}

func (suite *PeriodServiceTestSuite) TestAssertOpen_Open() {
	ctx := context.Background()
	periodID := uuid.NewString()
	suite.mockRepo.On("FindPeriodByID", ctx, suite.tenant.OrganizationID, periodID).
		Return(&domain.Period{PeriodID: periodID, Status: domain.PeriodOpen}, nil).Once()

	suite.NoError(suite.service.AssertOpen(ctx, suite.tenant, periodID))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PeriodServiceTestSuite) TestAssertOpen_Locked() {
	ctx := context.Background()
	periodID := uuid.NewString()
	suite.mockRepo.On("FindPeriodByID", ctx, suite.tenant.OrganizationID, periodID).
		Return(&domain.Period{PeriodID: periodID, Status: domain.PeriodLocked}, nil).Once()

	err := suite.service.AssertOpen(ctx, suite.tenant, periodID)
	suite.ErrorIs(err, apperrors.ErrPeriodLocked)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PeriodServiceTestSuite) TestLockPeriod_Success() {
	ctx := context.Background()
	periodID := uuid.NewString()
	suite.mockRepo.On("LockPeriod", ctx, suite.tenant.OrganizationID, periodID, "admin", mock.AnythingOfType("time.Time")).Return(nil).Once()

	suite.NoError(suite.service.LockPeriod(ctx, suite.tenant, periodID, "admin"))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PeriodServiceTestSuite) TestLockPeriod_AlreadyLocked() {
	ctx := context.Background()
	periodID := uuid.NewString()
	suite.mockRepo.On("LockPeriod", ctx, suite.tenant.OrganizationID, periodID, "admin", mock.AnythingOfType("time.Time")).Return(apperrors.ErrPeriodLocked).Once()

	err := suite.service.LockPeriod(ctx, suite.tenant, periodID, "admin")
	suite.ErrorIs(err, apperrors.ErrPeriodLocked)
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestPeriodServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PeriodServiceTestSuite))
}
