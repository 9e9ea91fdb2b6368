package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/kipuerp/ledger_core/internal/apperrors"
	"github.com/kipuerp/ledger_core/internal/core/domain"
	portsrepo "github.com/kipuerp/ledger_core/internal/core/ports/repositories"
	portssvc "github.com/kipuerp/ledger_core/internal/core/ports/services"
	"github.com/kipuerp/ledger_core/internal/core/services"
	"github.com/kipuerp/ledger_core/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock JournalRepository ---
type MockJournalRepository struct {
	mock.Mock
}

func (m *MockJournalRepository) FindEntryByID(ctx context.Context, organizationID, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, organizationID, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) FindEntryBySourceRef(ctx context.Context, organizationID string, source domain.EntrySource, sourceRef string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, organizationID, source, sourceRef)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) ListEntries(ctx context.Context, organizationID string, filters portsrepo.EntryFilters, limit, offset int) ([]domain.JournalEntry, int64, error) {
	args := m.Called(ctx, organizationID, filters, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.JournalEntry), args.Get(1).(int64), args.Error(2)
}

func (m *MockJournalRepository) ListLinesByAccount(ctx context.Context, organizationID, accountID string, limit, offset int) ([]domain.EntryLine, int64, error) {
	args := m.Called(ctx, organizationID, accountID, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.EntryLine), args.Get(1).(int64), args.Error(2)
}

func (m *MockJournalRepository) CreateEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.EntryLine) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entry, lines)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) ReplaceEntryLines(ctx context.Context, entry domain.JournalEntry, lines []domain.EntryLine) error {
	args := m.Called(ctx, entry, lines)
	return args.Error(0)
}

func (m *MockJournalRepository) UpdateEntryStatus(ctx context.Context, organizationID, entryID string, from, to domain.EntryStatus, actor string, now time.Time) error {
	args := m.Called(ctx, organizationID, entryID, from, to, actor, now)
	return args.Error(0)
}

func (m *MockJournalRepository) DeleteEntry(ctx context.Context, organizationID, entryID string) error {
	args := m.Called(ctx, organizationID, entryID)
	return args.Error(0)
}

// --- Mock ChartService ---
type MockChartService struct {
	mock.Mock
}

func (m *MockChartService) GetAccountByID(ctx context.Context, tenant domain.TenantContext, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, tenant, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockChartService) GetAccountsByIDs(ctx context.Context, tenant domain.TenantContext, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, tenant, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockChartService) ResolveCodes(ctx context.Context, tenant domain.TenantContext, codes []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, tenant, codes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockChartService) ListAccounts(ctx context.Context, tenant domain.TenantContext, params dto.ListAccountsParams) ([]domain.Account, error) {
	args := m.Called(ctx, tenant, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockChartService) CreateAccount(ctx context.Context, tenant domain.TenantContext, req dto.CreateAccountRequest, actor string) (*domain.Account, error) {
	args := m.Called(ctx, tenant, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockChartService) EnsureDefaults(ctx context.Context, tenant domain.TenantContext, actor string) error {
	args := m.Called(ctx, tenant, actor)
	return args.Error(0)
}

// --- Mock PeriodService ---
type MockPeriodService struct {
	mock.Mock
}

func (m *MockPeriodService) ResolvePeriod(ctx context.Context, tenant domain.TenantContext, date time.Time, actor string) (*domain.Period, error) {
	args := m.Called(ctx, tenant, date, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Period), args.Error(1)
}

func (m *MockPeriodService) GetPeriodByID(ctx context.Context, tenant domain.TenantContext, periodID string) (*domain.Period, error) {
	args := m.Called(ctx, tenant, periodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Period), args.Error(1)
}

func (m *MockPeriodService) AssertOpen(ctx context.Context, tenant domain.TenantContext, periodID string) error {
	args := m.Called(ctx, tenant, periodID)
	return args.Error(0)
}

func (m *MockPeriodService) ListPeriods(ctx context.Context, tenant domain.TenantContext) ([]domain.Period, error) {
	args := m.Called(ctx, tenant)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Period), args.Error(1)
}

func (m *MockPeriodService) LockPeriod(ctx context.Context, tenant domain.TenantContext, periodID, actor string) error {
	args := m.Called(ctx, tenant, periodID, actor)
	return args.Error(0)
}

// --- Mock CurrencyService ---
type MockCurrencyService struct {
	mock.Mock
}

func (m *MockCurrencyService) GetCurrency(ctx context.Context, code string) (*domain.Currency, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyService) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Currency), args.Error(1)
}

// --- Mock ExchangeRateService ---
type MockExchangeRateService struct {
	mock.Mock
}

func (m *MockExchangeRateService) CreateExchangeRate(ctx context.Context, rate domain.ExchangeRate, actor string) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, rate, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateService) LatestRate(ctx context.Context, fromCode, toCode string, onOrBefore time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, fromCode, toCode, onOrBefore)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// --- Test Suite ---
type LedgerServiceTestSuite struct {
	suite.Suite
	mockJournal  *MockJournalRepository
	mockChart    *MockChartService
	mockPeriods  *MockPeriodService
	mockCurrency *MockCurrencyService
	mockRates    *MockExchangeRateService
	service      portssvc.LedgerSvcFacade
	tenant       domain.TenantContext

	cashID    string
	revenueID string
	taxID     string
	accounts  map[string]domain.Account
}

func (suite *LedgerServiceTestSuite) SetupTest() {
	suite.mockJournal = new(MockJournalRepository)
	suite.mockChart = new(MockChartService)
	suite.mockPeriods = new(MockPeriodService)
	suite.mockCurrency = new(MockCurrencyService)
	suite.mockRates = new(MockExchangeRateService)
	suite.service = services.NewLedgerService(suite.mockJournal, suite.mockChart, suite.mockPeriods, suite.mockCurrency, suite.mockRates, "PEN")
	suite.tenant = domain.TenantContext{OrganizationID: uuid.NewString()}

	suite.cashID = uuid.NewString()
	suite.revenueID = uuid.NewString()
	suite.taxID = uuid.NewString()
	suite.accounts = map[string]domain.Account{
		suite.cashID:    {AccountID: suite.cashID, Code: "101", AccountType: domain.Asset, IsPosting: true, IsActive: true},
		suite.revenueID: {AccountID: suite.revenueID, Code: "701", AccountType: domain.Revenue, IsPosting: true, IsActive: true},
		suite.taxID:     {AccountID: suite.taxID, Code: "40111", AccountType: domain.Liability, IsPosting: true, IsActive: true},
	}
}

func (suite *LedgerServiceTestSuite) balancedRequest() dto.CreateEntryRequest {
	return dto.CreateEntryRequest{
		Date:        time.Date(2025, time.April, 10, 0, 0, 0, 0, time.UTC),
		Description: "Venta al contado",
		Source:      domain.SourceManual,
		Lines: []dto.LineRequest{
			{AccountID: suite.cashID, Debit: decimal.NewFromFloat(118)},
			{AccountID: suite.revenueID, Credit: decimal.NewFromFloat(100)},
			{AccountID: suite.taxID, Credit: decimal.NewFromFloat(18)},
		},
	}
}

func (suite *LedgerServiceTestSuite) expectAccountLookup() {
	suite.mockChart.On("GetAccountsByIDs", mock.Anything, suite.tenant, mock.AnythingOfType("[]string")).Return(suite.accounts, nil)
}

func (suite *LedgerServiceTestSuite) expectBaseCurrency() {
	suite.mockCurrency.On("GetCurrency", mock.Anything, "PEN").Return(&domain.Currency{CurrencyCode: "PEN"}, nil)
}

func (suite *LedgerServiceTestSuite) expectOpenPeriod() {
	suite.mockPeriods.On("AssertOpen", mock.Anything, suite.tenant, mock.AnythingOfType("string")).Return(nil)
}

func (suite *LedgerServiceTestSuite) expectLockedPeriod(periodID string) {
	suite.mockPeriods.On("AssertOpen", mock.Anything, suite.tenant, periodID).
		Return(fmt.Errorf("%w: period %s", apperrors.ErrPeriodLocked, periodID)).Once()
}

// --- Test Cases ---

func (suite *LedgerServiceTestSuite) TestCreateEntry_ManualStartsAsDraft() {
	ctx := context.Background()
	req := suite.balancedRequest()
	suite.expectAccountLookup()
	suite.expectBaseCurrency()

	suite.mockJournal.On("CreateEntry", ctx, mock.MatchedBy(func(e domain.JournalEntry) bool {
		return e.OrganizationID == suite.tenant.OrganizationID &&
			e.Status == domain.StatusDraft &&
			e.CurrencyCode == "PEN" &&
			e.DebitTotal.Equal(decimal.NewFromFloat(118)) &&
			e.CreditTotal.Equal(decimal.NewFromFloat(118))
	}), mock.AnythingOfType("[]domain.EntryLine")).Return(&domain.JournalEntry{
		EntryID:     uuid.NewString(),
		Status:      domain.StatusDraft,
		Correlativo: "A001",
	}, nil).Once()

	entry, err := suite.service.CreateEntry(ctx, suite.tenant, req, "user-1")

	suite.Require().NoError(err)
	suite.Equal(domain.StatusDraft, entry.Status)
	suite.Equal("A001", entry.Correlativo)
	suite.Len(entry.Lines, 3)
	suite.mockJournal.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestCreateEntry_EventSourcePostsImmediately() {
	ctx := context.Background()
	req := suite.balancedRequest()
	req.Source = domain.SourceSale
	ref := "F001-000123"
	req.SourceRef = &ref
	suite.expectAccountLookup()
	suite.expectBaseCurrency()

	suite.mockJournal.On("CreateEntry", ctx, mock.MatchedBy(func(e domain.JournalEntry) bool {
		return e.Status == domain.StatusPosted && e.SourceRef != nil && *e.SourceRef == ref
	}), mock.AnythingOfType("[]domain.EntryLine")).Return(&domain.JournalEntry{Status: domain.StatusPosted}, nil).Once()

	entry, err := suite.service.CreateEntry(ctx, suite.tenant, req, "user-1")

	suite.Require().NoError(err)
	suite.Equal(domain.StatusPosted, entry.Status)
	suite.mockJournal.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestCreateEntry_EventSourceRequiresRef() {
	req := suite.balancedRequest()
	req.Source = domain.SourceSale

	_, err := suite.service.CreateEntry(context.Background(), suite.tenant, req, "user-1")

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.ErrorIs(err, services.ErrSourceRefRequired)
	suite.mockJournal.AssertNotCalled(suite.T(), "CreateEntry")
}

func (suite *LedgerServiceTestSuite) TestCreateEntry_UnbalancedRejected() {
	req := suite.balancedRequest()
	req.Lines[0].Debit = decimal.NewFromFloat(120)

	_, err := suite.service.CreateEntry(context.Background(), suite.tenant, req, "user-1")

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockJournal.AssertNotCalled(suite.T(), "CreateEntry")
}

func (suite *LedgerServiceTestSuite) TestCreateEntry_SingleLineRejected() {
	req := suite.balancedRequest()
	req.Lines = req.Lines[:1]

	_, err := suite.service.CreateEntry(context.Background(), suite.tenant, req, "user-1")

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *LedgerServiceTestSuite) TestCreateEntry_InactiveAccountRejected() {
	ctx := context.Background()
	req := suite.balancedRequest()
	inactive := suite.accounts[suite.cashID]
	inactive.IsActive = false
	suite.accounts[suite.cashID] = inactive
	suite.expectAccountLookup()

	_, err := suite.service.CreateEntry(ctx, suite.tenant, req, "user-1")

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.ErrorIs(err, services.ErrInactiveAccount)
}

func (suite *LedgerServiceTestSuite) TestCreateEntry_ResolvesChartCodes() {
	ctx := context.Background()
	req := suite.balancedRequest()
	req.Lines[0].AccountID = ""
	req.Lines[0].AccountCode = "101"

	suite.mockChart.On("ResolveCodes", mock.Anything, suite.tenant, []string{"101"}).
		Return(map[string]domain.Account{"101": suite.accounts[suite.cashID]}, nil).Once()
	suite.expectAccountLookup()
	suite.expectBaseCurrency()
	suite.mockJournal.On("CreateEntry", ctx, mock.AnythingOfType("domain.JournalEntry"), mock.MatchedBy(func(lines []domain.EntryLine) bool {
		return lines[0].AccountID == suite.cashID
	})).Return(&domain.JournalEntry{}, nil).Once()

	_, err := suite.service.CreateEntry(ctx, suite.tenant, req, "user-1")

	suite.Require().NoError(err)
	suite.mockChart.AssertExpectations(suite.T())
	suite.mockJournal.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestCreateEntry_ForeignCurrencyStampsLatestRate() {
	ctx := context.Background()
	req := suite.balancedRequest()
	req.CurrencyCode = "USD"
	rate := decimal.NewFromFloat(3.75)

	suite.expectAccountLookup()
	suite.mockCurrency.On("GetCurrency", mock.Anything, "USD").Return(&domain.Currency{CurrencyCode: "USD"}, nil).Once()
	suite.mockRates.On("LatestRate", mock.Anything, "USD", "PEN", req.Date).Return(rate, nil).Once()
	suite.mockJournal.On("CreateEntry", ctx, mock.MatchedBy(func(e domain.JournalEntry) bool {
		return e.CurrencyCode == "USD" && e.ExchangeRate != nil && e.ExchangeRate.Equal(rate)
	}), mock.AnythingOfType("[]domain.EntryLine")).Return(&domain.JournalEntry{}, nil).Once()

	_, err := suite.service.CreateEntry(ctx, suite.tenant, req, "user-1")

	suite.Require().NoError(err)
	suite.mockRates.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestCreateEntry_PeriodLockedSurfaces() {
	ctx := context.Background()
	req := suite.balancedRequest()
	suite.expectAccountLookup()
	suite.expectBaseCurrency()
	suite.mockJournal.On("CreateEntry", ctx, mock.AnythingOfType("domain.JournalEntry"), mock.AnythingOfType("[]domain.EntryLine")).
		Return(nil, apperrors.ErrPeriodLocked).Once()

	_, err := suite.service.CreateEntry(ctx, suite.tenant, req, "user-1")

	suite.ErrorIs(err, apperrors.ErrPeriodLocked)
}

func (suite *LedgerServiceTestSuite) TestCreateEntry_InvalidTenant() {
	_, err := suite.service.CreateEntry(context.Background(), domain.TenantContext{}, suite.balancedRequest(), "user-1")
	suite.ErrorIs(err, apperrors.ErrInvalidTenant)
}

func (suite *LedgerServiceTestSuite) TestPostEntry_Success() {
	ctx := context.Background()
	entryID := uuid.NewString()
	draft := &domain.JournalEntry{
		EntryID:     entryID,
		Status:      domain.StatusDraft,
		DebitTotal:  decimal.NewFromFloat(118),
		CreditTotal: decimal.NewFromFloat(118),
	}
	suite.mockJournal.On("FindEntryByID", ctx, suite.tenant.OrganizationID, entryID).Return(draft, nil).Once()
	suite.expectOpenPeriod()
	suite.mockJournal.On("UpdateEntryStatus", ctx, suite.tenant.OrganizationID, entryID, domain.StatusDraft, domain.StatusPosted, "user-1", mock.AnythingOfType("time.Time")).Return(nil).Once()

	entry, err := suite.service.PostEntry(ctx, suite.tenant, entryID, "user-1")

	suite.Require().NoError(err)
	suite.Equal(domain.StatusPosted, entry.Status)
	suite.mockJournal.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestPostEntry_AlreadyPosted() {
	ctx := context.Background()
	entryID := uuid.NewString()
	suite.mockJournal.On("FindEntryByID", ctx, suite.tenant.OrganizationID, entryID).
		Return(&domain.JournalEntry{EntryID: entryID, Status: domain.StatusPosted}, nil).Once()
	suite.expectOpenPeriod()

	_, err := suite.service.PostEntry(ctx, suite.tenant, entryID, "user-1")

	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockJournal.AssertNotCalled(suite.T(), "UpdateEntryStatus")
}

func (suite *LedgerServiceTestSuite) TestPostEntry_UnbalancedTotalsRejected() {
	ctx := context.Background()
	entryID := uuid.NewString()
	suite.mockJournal.On("FindEntryByID", ctx, suite.tenant.OrganizationID, entryID).
		Return(&domain.JournalEntry{
			EntryID:     entryID,
			Status:      domain.StatusDraft,
			DebitTotal:  decimal.NewFromFloat(118),
			CreditTotal: decimal.NewFromFloat(100),
		}, nil).Once()
	suite.expectOpenPeriod()

	_, err := suite.service.PostEntry(ctx, suite.tenant, entryID, "user-1")

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *LedgerServiceTestSuite) TestVoidEntry_Success() {
	ctx := context.Background()
	entryID := uuid.NewString()
	suite.mockJournal.On("FindEntryByID", ctx, suite.tenant.OrganizationID, entryID).
		Return(&domain.JournalEntry{EntryID: entryID, Status: domain.StatusPosted}, nil).Once()
	suite.expectOpenPeriod()
	suite.mockJournal.On("UpdateEntryStatus", ctx, suite.tenant.OrganizationID, entryID, domain.StatusPosted, domain.StatusVoid, "user-1", mock.AnythingOfType("time.Time")).Return(nil).Once()

	entry, err := suite.service.VoidEntry(ctx, suite.tenant, entryID, "user-1")

	suite.Require().NoError(err)
	suite.Equal(domain.StatusVoid, entry.Status)
	suite.mockJournal.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestVoidEntry_DraftRejected() {
	ctx := context.Background()
	entryID := uuid.NewString()
	suite.mockJournal.On("FindEntryByID", ctx, suite.tenant.OrganizationID, entryID).
		Return(&domain.JournalEntry{EntryID: entryID, Status: domain.StatusDraft}, nil).Once()
	suite.expectOpenPeriod()

	_, err := suite.service.VoidEntry(ctx, suite.tenant, entryID, "user-1")

	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockJournal.AssertNotCalled(suite.T(), "UpdateEntryStatus")
}

func (suite *LedgerServiceTestSuite) TestUpdateEntry_PostedRejected() {
	ctx := context.Background()
	entryID := uuid.NewString()
	suite.mockJournal.On("FindEntryByID", ctx, suite.tenant.OrganizationID, entryID).
		Return(&domain.JournalEntry{EntryID: entryID, Status: domain.StatusPosted}, nil).Once()
	suite.expectOpenPeriod()

	desc := "updated"
	_, err := suite.service.UpdateEntry(ctx, suite.tenant, entryID, dto.UpdateEntryRequest{Description: &desc}, "user-1")

	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockJournal.AssertNotCalled(suite.T(), "ReplaceEntryLines")
}

func (suite *LedgerServiceTestSuite) TestDeleteEntry_PostedRejected() {
	ctx := context.Background()
	entryID := uuid.NewString()
	suite.mockJournal.On("FindEntryByID", ctx, suite.tenant.OrganizationID, entryID).
		Return(&domain.JournalEntry{EntryID: entryID, Status: domain.StatusPosted}, nil).Once()
	suite.expectOpenPeriod()

	err := suite.service.DeleteEntry(ctx, suite.tenant, entryID)

	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockJournal.AssertNotCalled(suite.T(), "DeleteEntry")
}

func (suite *LedgerServiceTestSuite) TestPostEntry_LockedPeriodRejected() {
	ctx := context.Background()
	entryID := uuid.NewString()
	periodID := uuid.NewString()
	suite.mockJournal.On("FindEntryByID", ctx, suite.tenant.OrganizationID, entryID).
		Return(&domain.JournalEntry{
			EntryID:     entryID,
			PeriodID:    periodID,
			Status:      domain.StatusDraft,
			DebitTotal:  decimal.NewFromFloat(118),
			CreditTotal: decimal.NewFromFloat(118),
		}, nil).Once()
	suite.expectLockedPeriod(periodID)

	_, err := suite.service.PostEntry(ctx, suite.tenant, entryID, "user-1")

	suite.ErrorIs(err, apperrors.ErrPeriodLocked)
	suite.mockJournal.AssertNotCalled(suite.T(), "UpdateEntryStatus")
	suite.mockPeriods.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestVoidEntry_LockedPeriodRejected() {
	ctx := context.Background()
	entryID := uuid.NewString()
	periodID := uuid.NewString()
	suite.mockJournal.On("FindEntryByID", ctx, suite.tenant.OrganizationID, entryID).
		Return(&domain.JournalEntry{EntryID: entryID, PeriodID: periodID, Status: domain.StatusPosted}, nil).Once()
	suite.expectLockedPeriod(periodID)

	_, err := suite.service.VoidEntry(ctx, suite.tenant, entryID, "user-1")

	suite.ErrorIs(err, apperrors.ErrPeriodLocked)
	suite.mockJournal.AssertNotCalled(suite.T(), "UpdateEntryStatus")
}

func (suite *LedgerServiceTestSuite) TestUpdateEntry_LockedPeriodRejected() {
	ctx := context.Background()
	entryID := uuid.NewString()
	periodID := uuid.NewString()
	suite.mockJournal.On("FindEntryByID", ctx, suite.tenant.OrganizationID, entryID).
		Return(&domain.JournalEntry{EntryID: entryID, PeriodID: periodID, Status: domain.StatusDraft}, nil).Once()
	suite.expectLockedPeriod(periodID)

	desc := "late correction"
	_, err := suite.service.UpdateEntry(ctx, suite.tenant, entryID, dto.UpdateEntryRequest{Description: &desc}, "user-1")

	suite.ErrorIs(err, apperrors.ErrPeriodLocked)
	suite.mockJournal.AssertNotCalled(suite.T(), "ReplaceEntryLines")
}

func (suite *LedgerServiceTestSuite) TestDeleteEntry_LockedPeriodRejected() {
	ctx := context.Background()
	entryID := uuid.NewString()
	periodID := uuid.NewString()
	suite.mockJournal.On("FindEntryByID", ctx, suite.tenant.OrganizationID, entryID).
		Return(&domain.JournalEntry{EntryID: entryID, PeriodID: periodID, Status: domain.StatusDraft}, nil).Once()
	suite.expectLockedPeriod(periodID)

	err := suite.service.DeleteEntry(ctx, suite.tenant, entryID)

	suite.ErrorIs(err, apperrors.ErrPeriodLocked)
	suite.mockJournal.AssertNotCalled(suite.T(), "DeleteEntry")
}

func (suite *LedgerServiceTestSuite) TestListEntries_BalancedFilter() {
	ctx := context.Background()
	balanced := domain.JournalEntry{EntryID: uuid.NewString(), DebitTotal: decimal.NewFromFloat(100), CreditTotal: decimal.NewFromFloat(100)}
	skewed := domain.JournalEntry{EntryID: uuid.NewString(), DebitTotal: decimal.NewFromFloat(100), CreditTotal: decimal.NewFromFloat(90)}

	suite.mockJournal.On("ListEntries", ctx, suite.tenant.OrganizationID, mock.AnythingOfType("repositories.EntryFilters"), 20, 0).
		Return([]domain.JournalEntry{balanced, skewed}, int64(2), nil).Once()

	wantBalanced := true
	resp, err := suite.service.ListEntries(ctx, suite.tenant, dto.ListEntriesParams{Balanced: &wantBalanced})

	suite.Require().NoError(err)
	suite.Len(resp.Entries, 1)
	suite.Equal(balanced.EntryID, resp.Entries[0].EntryID)
	suite.Equal(int64(2), resp.Total)
	suite.mockJournal.AssertExpectations(suite.T())
}

func TestLedgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}
