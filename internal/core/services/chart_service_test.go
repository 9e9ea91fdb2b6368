package services_test

import (
	"context"
	"testing"

	"github.com/kipuerp/ledger_core/internal/apperrors"
	"github.com/kipuerp/ledger_core/internal/core/domain"
	portssvc "github.com/kipuerp/ledger_core/internal/core/ports/services"
	"github.com/kipuerp/ledger_core/internal/core/services"
	"github.com/kipuerp/ledger_core/internal/dto"
	"github.com/kipuerp/ledger_core/internal/platform/cache"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock AccountRepository ---
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, organizationID, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, organizationID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByCode(ctx context.Context, organizationID, code string) (*domain.Account, error) {
	args := m.Called(ctx, organizationID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, organizationID string, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, organizationID, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByCodes(ctx context.Context, organizationID string, codes []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, organizationID, codes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, organizationID string, limit, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, organizationID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) CountAccounts(ctx context.Context, organizationID string) (int64, int64, error) {
	args := m.Called(ctx, organizationID)
	return args.Get(0).(int64), args.Get(1).(int64), args.Error(2)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) FindBookByCode(ctx context.Context, organizationID, code string) (*domain.LedgerBook, error) {
	args := m.Called(ctx, organizationID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerBook), args.Error(1)
}

func (m *MockAccountRepository) SaveBook(ctx context.Context, book domain.LedgerBook) error {
	args := m.Called(ctx, book)
	return args.Error(0)
}

// --- Test Suite ---
type ChartServiceTestSuite struct {
	suite.Suite
	mockRepo *MockAccountRepository
	service  portssvc.ChartSvcFacade
	tenant   domain.TenantContext
}

func (suite *ChartServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockAccountRepository)
	suite.service = services.NewChartService(suite.mockRepo, cache.NewMemoryBootstrapCache())
	suite.tenant = domain.TenantContext{OrganizationID: uuid.NewString()}
}

// --- Test Cases ---

func (suite *ChartServiceTestSuite) TestCreateAccount_TopLevel() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{Code: "33", Name: "Inmuebles, maquinaria y equipo", AccountType: domain.Asset}

	suite.mockRepo.On("SaveAccount", ctx, mock.MatchedBy(func(a domain.Account) bool {
		return a.Code == "33" && a.Level == 1 && a.ParentAccountID == nil && a.IsActive
	})).Return(nil).Once()

	account, err := suite.service.CreateAccount(ctx, suite.tenant, req, "user-1")

	suite.Require().NoError(err)
	suite.Equal("33", account.Code)
	suite.Equal(1, account.Level)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ChartServiceTestSuite) TestCreateAccount_UnderParent() {
	ctx := context.Background()
	parentCode := "10"
	parent := &domain.Account{AccountID: uuid.NewString(), Code: "10", Level: 1}
	req := dto.CreateAccountRequest{Code: "106", Name: "Depósitos en garantía", AccountType: domain.Asset, IsPosting: true, ParentCode: &parentCode}

	suite.mockRepo.On("FindAccountByCode", ctx, suite.tenant.OrganizationID, "10").Return(parent, nil).Once()
	suite.mockRepo.On("SaveAccount", ctx, mock.MatchedBy(func(a domain.Account) bool {
		return a.Level == 2 && a.ParentAccountID != nil && *a.ParentAccountID == parent.AccountID
	})).Return(nil).Once()

	account, err := suite.service.CreateAccount(ctx, suite.tenant, req, "user-1")

	suite.Require().NoError(err)
	suite.Equal(2, account.Level)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ChartServiceTestSuite) TestCreateAccount_CodeOutsideParentRejected() {
	ctx := context.Background()
	parentCode := "10"
	parent := &domain.Account{AccountID: uuid.NewString(), Code: "10", Level: 1}
	req := dto.CreateAccountRequest{Code: "421", Name: "Facturas por pagar", AccountType: domain.Liability, ParentCode: &parentCode}

	suite.mockRepo.On("FindAccountByCode", ctx, suite.tenant.OrganizationID, "10").Return(parent, nil).Once()

	_, err := suite.service.CreateAccount(ctx, suite.tenant, req, "user-1")

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.ErrorIs(err, services.ErrCodeOutsideParent)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveAccount")
}

func (suite *ChartServiceTestSuite) TestCreateAccount_ParentMissing() {
	ctx := context.Background()
	parentCode := "99"
	req := dto.CreateAccountRequest{Code: "991", Name: "Algo", AccountType: domain.Expense, ParentCode: &parentCode}

	suite.mockRepo.On("FindAccountByCode", ctx, suite.tenant.OrganizationID, "99").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.CreateAccount(ctx, suite.tenant, req, "user-1")

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.ErrorIs(err, services.ErrParentNotFound)
}

func (suite *ChartServiceTestSuite) TestResolveCodes_MissingCode() {
	ctx := context.Background()
	suite.mockRepo.On("FindAccountsByCodes", ctx, suite.tenant.OrganizationID, []string{"101", "40111"}).
		Return(map[string]domain.Account{"101": {Code: "101"}}, nil).Once()

	_, err := suite.service.ResolveCodes(ctx, suite.tenant, []string{"101", "40111"})

	suite.ErrorIs(err, services.ErrMissingAccountCode)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ChartServiceTestSuite) TestEnsureDefaults_SeedsEmptyChart() {
	ctx := context.Background()
	org := suite.tenant.OrganizationID

	suite.mockRepo.On("FindBookByCode", ctx, org, "DIARIO").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("SaveBook", ctx, mock.MatchedBy(func(b domain.LedgerBook) bool {
		return b.Code == "DIARIO" && b.OrganizationID == org
	})).Return(nil).Once()
	suite.mockRepo.On("CountAccounts", ctx, org).Return(int64(0), int64(0), nil).Once()
	suite.mockRepo.On("FindAccountByCode", ctx, org, mock.AnythingOfType("string")).Return(nil, apperrors.ErrNotFound)
	suite.mockRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(nil)

	err := suite.service.EnsureDefaults(ctx, suite.tenant, "system")

	suite.Require().NoError(err)
	suite.mockRepo.AssertNumberOfCalls(suite.T(), "SaveAccount", 18)
}

func (suite *ChartServiceTestSuite) TestEnsureDefaults_HeaderOnlyChartStillSeeds() {
	ctx := context.Background()
	org := suite.tenant.OrganizationID

	// Plenty of accounts, but none of them accept entry lines. The tenant
	// is not bootstrapped until the posting rows exist too.
	suite.mockRepo.On("FindBookByCode", ctx, org, "DIARIO").Return(&domain.LedgerBook{Code: "DIARIO"}, nil).Once()
	suite.mockRepo.On("CountAccounts", ctx, org).Return(int64(20), int64(0), nil).Once()
	suite.mockRepo.On("FindAccountByCode", ctx, org, mock.AnythingOfType("string")).Return(nil, apperrors.ErrNotFound)
	suite.mockRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(nil)

	err := suite.service.EnsureDefaults(ctx, suite.tenant, "system")

	suite.Require().NoError(err)
	suite.mockRepo.AssertNumberOfCalls(suite.T(), "SaveAccount", 18)
}

func (suite *ChartServiceTestSuite) TestEnsureDefaults_SkipsSeededChart() {
	ctx := context.Background()
	org := suite.tenant.OrganizationID

	suite.mockRepo.On("FindBookByCode", ctx, org, "DIARIO").Return(&domain.LedgerBook{Code: "DIARIO"}, nil).Once()
	suite.mockRepo.On("CountAccounts", ctx, org).Return(int64(18), int64(9), nil).Once()

	err := suite.service.EnsureDefaults(ctx, suite.tenant, "system")

	suite.Require().NoError(err)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveAccount")
}

func (suite *ChartServiceTestSuite) TestEnsureDefaults_SecondCallUsesCache() {
	ctx := context.Background()
	org := suite.tenant.OrganizationID

	suite.mockRepo.On("FindBookByCode", ctx, org, "DIARIO").Return(&domain.LedgerBook{Code: "DIARIO"}, nil).Once()
	suite.mockRepo.On("CountAccounts", ctx, org).Return(int64(18), int64(9), nil).Once()

	suite.Require().NoError(suite.service.EnsureDefaults(ctx, suite.tenant, "system"))
	suite.Require().NoError(suite.service.EnsureDefaults(ctx, suite.tenant, "system"))

	// The second call is answered by the bootstrap cache.
	suite.mockRepo.AssertNumberOfCalls(suite.T(), "CountAccounts", 1)
}

func TestChartServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ChartServiceTestSuite))
}
