package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"rentledger/internal/models"
	"rentledger/internal/repositories"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type MonthlyTrackingTestSuite struct {
	suite.Suite
	tenantRepo   *MockTenantRepository
	trackingRepo *MockTrackingRepository
	service      *MonthlyTrackingService
	now          time.Time
	rentMonth    time.Time
	prevMonth    time.Time
}

func (suite *MonthlyTrackingTestSuite) SetupTest() {
	suite.tenantRepo = &MockTenantRepository{}
	suite.trackingRepo = &MockTrackingRepository{}
	suite.service = NewMonthlyTrackingService(suite.tenantRepo, suite.trackingRepo)

	suite.now = time.Date(2025, time.August, 1, 0, 0, 17, 0, time.UTC)
	suite.rentMonth = time.Date(2025, time.August, 1, 0, 0, 0, 0, time.UTC)
	suite.prevMonth = time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC)
}

func (suite *MonthlyTrackingTestSuite) TearDownTest() {
	suite.tenantRepo.AssertExpectations(suite.T())
	suite.trackingRepo.AssertExpectations(suite.T())
}

func TestMonthlyTrackingTestSuite(t *testing.T) {
	suite.Run(t, new(MonthlyTrackingTestSuite))
}

func (suite *MonthlyTrackingTestSuite) TestRun_NoActiveTenants() {
	ctx := context.Background()
	suite.tenantRepo.On("ListActiveWithFactors", ctx).Return([]repositories.ActiveTenantFactors{}, nil)

	result := suite.service.Run(ctx, suite.now)
	assert.Zero(suite.T(), result.ProcessedCount)
	assert.Equal(suite.T(), []string{"No active tenants found"}, result.Errors)
}

func (suite *MonthlyTrackingTestSuite) TestRun_InsertsWithCarriedOutstanding() {
	ctx := context.Background()
	tenantID := uuid.New()
	tenants := []repositories.ActiveTenantFactors{
		{TenantID: tenantID, TenantName: "Sharma", BasicRent: 3000, PropertyTax: 1000, RepairCess: 600, Misc: 400},
	}
	prevEntry := &models.RentTracking{
		TenantID:           tenantID,
		RentMonth:          suite.prevMonth,
		OutstandingPending: 1500,
	}

	suite.tenantRepo.On("ListActiveWithFactors", ctx).Return(tenants, nil)
	suite.trackingRepo.On("GetByTenantAndMonth", ctx, tenantID, suite.rentMonth).Return(nil, nil)
	suite.trackingRepo.On("GetByTenantAndMonth", ctx, tenantID, suite.prevMonth).Return(prevEntry, nil)
	suite.trackingRepo.On("Create", ctx, mock.AnythingOfType("*models.RentTracking")).Return(nil).Run(func(args mock.Arguments) {
		entry := args.Get(1).(*models.RentTracking)
		assert.Equal(suite.T(), suite.rentMonth, entry.RentMonth)
		assert.Equal(suite.T(), int64(5000), entry.RentPending)
		assert.Equal(suite.T(), int64(1500), entry.OutstandingAmount)
		assert.Equal(suite.T(), int64(1500), entry.OutstandingPending)
		assert.Equal(suite.T(), int64(0), entry.RentCollected)
		assert.Equal(suite.T(), int64(0), entry.PenaltyAmount)
		assert.Equal(suite.T(), "2025-2026", entry.FinancialYear)
		assert.Equal(suite.T(), "Q2", entry.Quarter)
	})

	result := suite.service.Run(ctx, suite.now)
	assert.Equal(suite.T(), 1, result.ProcessedCount)
	assert.Empty(suite.T(), result.Errors)
	assert.Equal(suite.T(), "inserted", result.Processed[0].Action)
	assert.Equal(suite.T(), int64(5000), result.Processed[0].RentPending)
	assert.Equal(suite.T(), int64(1500), result.Processed[0].Outstanding)
}

func (suite *MonthlyTrackingTestSuite) TestRun_SkipsExistingMonth() {
	ctx := context.Background()
	tenantID := uuid.New()
	tenants := []repositories.ActiveTenantFactors{
		{TenantID: tenantID, TenantName: "Sharma", BasicRent: 3000},
	}
	existing := &models.RentTracking{TenantID: tenantID, RentMonth: suite.rentMonth}

	suite.tenantRepo.On("ListActiveWithFactors", ctx).Return(tenants, nil)
	suite.trackingRepo.On("GetByTenantAndMonth", ctx, tenantID, suite.rentMonth).Return(existing, nil)

	result := suite.service.Run(ctx, suite.now)
	assert.Equal(suite.T(), 1, result.ProcessedCount)
	assert.Equal(suite.T(), "skipped", result.Processed[0].Action)
	assert.Equal(suite.T(), "Already exists", result.Processed[0].Reason)
	suite.trackingRepo.AssertNotCalled(suite.T(), "Create", mock.Anything, mock.Anything)
}

func (suite *MonthlyTrackingTestSuite) TestRun_TenantFailureDoesNotAbortRun() {
	ctx := context.Background()
	failingID := uuid.New()
	okID := uuid.New()
	tenants := []repositories.ActiveTenantFactors{
		{TenantID: failingID, TenantName: "Failing", BasicRent: 3000},
		{TenantID: okID, TenantName: "Sharma", BasicRent: 2000},
	}

	suite.tenantRepo.On("ListActiveWithFactors", ctx).Return(tenants, nil)
	suite.trackingRepo.On("GetByTenantAndMonth", ctx, failingID, suite.rentMonth).Return(nil, errors.New("connection reset"))
	suite.trackingRepo.On("GetByTenantAndMonth", ctx, okID, suite.rentMonth).Return(nil, nil)
	suite.trackingRepo.On("GetByTenantAndMonth", ctx, okID, suite.prevMonth).Return(nil, nil)
	suite.trackingRepo.On("Create", ctx, mock.AnythingOfType("*models.RentTracking")).Return(nil)

	result := suite.service.Run(ctx, suite.now)
	assert.Equal(suite.T(), 1, result.ProcessedCount)
	assert.Len(suite.T(), result.Errors, 1)
	assert.Contains(suite.T(), result.Errors[0], "Failing")
	assert.Equal(suite.T(), "inserted", result.Processed[0].Action)
}

func (suite *MonthlyTrackingTestSuite) TestRun_FirstMonthHasZeroOutstanding() {
	ctx := context.Background()
	tenantID := uuid.New()
	tenants := []repositories.ActiveTenantFactors{
		{TenantID: tenantID, TenantName: "Sharma", BasicRent: 3000, PropertyTax: 1000},
	}

	suite.tenantRepo.On("ListActiveWithFactors", ctx).Return(tenants, nil)
	suite.trackingRepo.On("GetByTenantAndMonth", ctx, tenantID, suite.rentMonth).Return(nil, nil)
	suite.trackingRepo.On("GetByTenantAndMonth", ctx, tenantID, suite.prevMonth).Return(nil, nil)
	suite.trackingRepo.On("Create", ctx, mock.AnythingOfType("*models.RentTracking")).Return(nil).Run(func(args mock.Arguments) {
		entry := args.Get(1).(*models.RentTracking)
		assert.Equal(suite.T(), int64(0), entry.OutstandingPending)
	})

	result := suite.service.Run(ctx, suite.now)
	assert.Equal(suite.T(), 1, result.ProcessedCount)
	assert.Equal(suite.T(), int64(0), result.Processed[0].Outstanding)
}
