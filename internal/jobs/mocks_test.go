package jobs

import (
	"context"
	"time"

	"rentledger/internal/models"
	"rentledger/internal/repositories"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockTenantRepository struct {
	mock.Mock
}

func (m *MockTenantRepository) Create(ctx context.Context, tenant *models.Tenant) error {
	args := m.Called(ctx, tenant)
	return args.Error(0)
}

func (m *MockTenantRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Tenant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Tenant), args.Error(1)
}

func (m *MockTenantRepository) Update(ctx context.Context, tenant *models.Tenant) error {
	args := m.Called(ctx, tenant)
	return args.Error(0)
}

func (m *MockTenantRepository) List(ctx context.Context, filter repositories.TenantListFilter) ([]*models.Tenant, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*models.Tenant), args.Int(1), args.Error(2)
}

func (m *MockTenantRepository) ListActiveWithFactors(ctx context.Context) ([]repositories.ActiveTenantFactors, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repositories.ActiveTenantFactors), args.Error(1)
}

type MockTrackingRepository struct {
	mock.Mock
}

func (m *MockTrackingRepository) Create(ctx context.Context, entry *models.RentTracking) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockTrackingRepository) GetByTenantAndMonth(ctx context.Context, tenantID uuid.UUID, rentMonth time.Time) (*models.RentTracking, error) {
	args := m.Called(ctx, tenantID, rentMonth)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RentTracking), args.Error(1)
}

func (m *MockTrackingRepository) GetLatestByTenant(ctx context.Context, tenantID uuid.UUID) (*models.RentTracking, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RentTracking), args.Error(1)
}

func (m *MockTrackingRepository) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*models.RentTracking, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.RentTracking), args.Error(1)
}

func (m *MockTrackingRepository) ListUnpaidInRange(ctx context.Context, start, end time.Time) ([]*models.UnpaidRentRecord, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.UnpaidRentRecord), args.Error(1)
}

func (m *MockTrackingRepository) ApplyPenalty(ctx context.Context, trackingID uuid.UUID, penalty int64) error {
	args := m.Called(ctx, trackingID, penalty)
	return args.Error(0)
}

func (m *MockTrackingRepository) UnpaidBalances(ctx context.Context) ([]*models.UnpaidBalance, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.UnpaidBalance), args.Error(1)
}

type MockPenaltyRateRepository struct {
	mock.Mock
}

func (m *MockPenaltyRateRepository) GetCurrent(ctx context.Context) (*models.PenaltyRate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PenaltyRate), args.Error(1)
}

func (m *MockPenaltyRateRepository) Update(ctx context.Context, rate *models.PenaltyRate) error {
	args := m.Called(ctx, rate)
	return args.Error(0)
}

func (m *MockPenaltyRateRepository) History(ctx context.Context) ([]*models.PenaltyRateHistory, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.PenaltyRateHistory), args.Error(1)
}
