package jobs

import (
	"context"
	"testing"
	"time"

	"rentledger/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type PenaltyProcessorTestSuite struct {
	suite.Suite
	trackingRepo *MockTrackingRepository
	rateRepo     *MockPenaltyRateRepository
	service      *PenaltyProcessorService
	now          time.Time
	windowStart  time.Time
	windowEnd    time.Time
}

func (suite *PenaltyProcessorTestSuite) SetupTest() {
	suite.trackingRepo = &MockTrackingRepository{}
	suite.rateRepo = &MockPenaltyRateRepository{}
	suite.service = NewPenaltyProcessorService(suite.trackingRepo, suite.rateRepo)

	// Run on July 1st: the previous calendar quarter is April through June.
	suite.now = time.Date(2025, time.July, 1, 0, 0, 12, 0, time.UTC)
	suite.windowStart = time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)
	suite.windowEnd = time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC)
}

func (suite *PenaltyProcessorTestSuite) TearDownTest() {
	suite.trackingRepo.AssertExpectations(suite.T())
	suite.rateRepo.AssertExpectations(suite.T())
}

func TestPenaltyProcessorTestSuite(t *testing.T) {
	suite.Run(t, new(PenaltyProcessorTestSuite))
}

func (suite *PenaltyProcessorTestSuite) TestRun_NoUnpaidRecords() {
	ctx := context.Background()
	suite.rateRepo.On("GetCurrent", ctx).Return(nil, nil)
	suite.trackingRepo.On("ListUnpaidInRange", ctx, suite.windowStart, suite.windowEnd).Return([]*models.UnpaidRentRecord{}, nil)

	result := suite.service.Run(ctx, suite.now)
	assert.Zero(suite.T(), result.ProcessedCount)
	assert.Empty(suite.T(), result.Errors)
	assert.Equal(suite.T(), "5%", result.Summary.PenaltyRate) // default fallback
	assert.Zero(suite.T(), result.Summary.TotalRecordsFound)
}

func (suite *PenaltyProcessorTestSuite) TestRun_AppliesFlooredPenalty() {
	ctx := context.Background()
	trackingID := uuid.New()
	records := []*models.UnpaidRentRecord{
		{
			TrackingID:  trackingID,
			TenantID:    uuid.New(),
			TenantName:  "Sharma",
			RentMonth:   time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC),
			RentPending: 4999,
		},
	}
	rate := &models.PenaltyRate{InterestRate: 7}

	suite.rateRepo.On("GetCurrent", ctx).Return(rate, nil)
	suite.trackingRepo.On("ListUnpaidInRange", ctx, suite.windowStart, suite.windowEnd).Return(records, nil)
	// floor(4999 * 7 / 100) = 349
	suite.trackingRepo.On("ApplyPenalty", ctx, trackingID, int64(349)).Return(nil)

	result := suite.service.Run(ctx, suite.now)
	assert.Equal(suite.T(), 1, result.ProcessedCount)
	assert.Equal(suite.T(), 1, result.Summary.RecordsUpdated)
	assert.Equal(suite.T(), int64(349), result.Summary.TotalPenaltyAmount)
	assert.Equal(suite.T(), "7%", result.Summary.PenaltyRate)
	assert.Equal(suite.T(), "updated", result.Details[0].Action)
	assert.Equal(suite.T(), int64(4999), result.Details[0].PenaltyBaseAmount)
}

func (suite *PenaltyProcessorTestSuite) TestRun_SkipsWhenExistingPenaltyIsHigher() {
	ctx := context.Background()
	records := []*models.UnpaidRentRecord{
		{
			TrackingID:     uuid.New(),
			TenantID:       uuid.New(),
			TenantName:     "Sharma",
			RentMonth:      time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC),
			RentPending:    5000,
			CurrentPenalty: 300, // computed penalty would be 250
		},
	}

	suite.rateRepo.On("GetCurrent", ctx).Return(nil, nil)
	suite.trackingRepo.On("ListUnpaidInRange", ctx, suite.windowStart, suite.windowEnd).Return(records, nil)

	result := suite.service.Run(ctx, suite.now)
	assert.Zero(suite.T(), result.ProcessedCount)
	assert.Equal(suite.T(), 1, result.Summary.RecordsSkipped)
	assert.Equal(suite.T(), "skipped", result.Details[0].Action)
	suite.trackingRepo.AssertNotCalled(suite.T(), "ApplyPenalty", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PenaltyProcessorTestSuite) TestRun_EqualPenaltyIsNotReapplied() {
	ctx := context.Background()
	records := []*models.UnpaidRentRecord{
		{
			TrackingID:     uuid.New(),
			TenantID:       uuid.New(),
			TenantName:     "Sharma",
			RentMonth:      time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC),
			RentPending:    5000,
			CurrentPenalty: 250,
		},
	}

	suite.rateRepo.On("GetCurrent", ctx).Return(nil, nil)
	suite.trackingRepo.On("ListUnpaidInRange", ctx, suite.windowStart, suite.windowEnd).Return(records, nil)

	result := suite.service.Run(ctx, suite.now)
	assert.Zero(suite.T(), result.Summary.RecordsUpdated)
	suite.trackingRepo.AssertNotCalled(suite.T(), "ApplyPenalty", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PenaltyProcessorTestSuite) TestRun_RecordFailureDoesNotAbortRun() {
	ctx := context.Background()
	failingID := uuid.New()
	okID := uuid.New()
	records := []*models.UnpaidRentRecord{
		{TrackingID: failingID, TenantID: uuid.New(), TenantName: "Failing", RentMonth: suite.windowStart, RentPending: 1000},
		{TrackingID: okID, TenantID: uuid.New(), TenantName: "Sharma", RentMonth: suite.windowStart, RentPending: 2000},
	}

	suite.rateRepo.On("GetCurrent", ctx).Return(nil, nil)
	suite.trackingRepo.On("ListUnpaidInRange", ctx, suite.windowStart, suite.windowEnd).Return(records, nil)
	suite.trackingRepo.On("ApplyPenalty", ctx, failingID, int64(50)).Return(assert.AnError)
	suite.trackingRepo.On("ApplyPenalty", ctx, okID, int64(100)).Return(nil)

	result := suite.service.Run(ctx, suite.now)
	assert.Equal(suite.T(), 1, result.ProcessedCount)
	assert.Len(suite.T(), result.Errors, 1)
	assert.Contains(suite.T(), result.Errors[0], "Failing")
	assert.Equal(suite.T(), int64(100), result.Summary.TotalPenaltyAmount)
}

func (suite *PenaltyProcessorTestSuite) TestRun_JanuaryWrapsToPreviousYearQ4() {
	ctx := context.Background()
	january := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	expectedStart := time.Date(2025, time.October, 1, 0, 0, 0, 0, time.UTC)
	expectedEnd := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)

	suite.rateRepo.On("GetCurrent", ctx).Return(nil, nil)
	suite.trackingRepo.On("ListUnpaidInRange", ctx, expectedStart, expectedEnd).Return([]*models.UnpaidRentRecord{}, nil)

	result := suite.service.Run(ctx, january)
	assert.Empty(suite.T(), result.Errors)
}
