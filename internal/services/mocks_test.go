package services

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/stwalsh4118/propfix/api/internal/models"
	"github.com/stwalsh4118/propfix/api/internal/repository"
)

// MockPropertyRepository is a mock implementation of PropertyRepository for testing
type MockPropertyRepository struct {
	mock.Mock
}

func (m *MockPropertyRepository) Insert(ctx context.Context, property *models.Property) error {
	args := m.Called(ctx, property)
	return args.Error(0)
}

func (m *MockPropertyRepository) FindByID(ctx context.Context, id string) (*models.Property, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Property), args.Error(1)
}

func (m *MockPropertyRepository) ListForUser(ctx context.Context, userID string) ([]models.Property, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Property), args.Error(1)
}

// MockTenantRepository is a mock implementation of TenantRepository for testing
type MockTenantRepository struct {
	mock.Mock
}

func (m *MockTenantRepository) Insert(ctx context.Context, tenant *models.Tenant) error {
	args := m.Called(ctx, tenant)
	return args.Error(0)
}

func (m *MockTenantRepository) FindByID(ctx context.Context, id string) (*models.Tenant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Tenant), args.Error(1)
}

func (m *MockTenantRepository) ListByProperty(ctx context.Context, propertyID string) ([]models.Tenant, error) {
	args := m.Called(ctx, propertyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Tenant), args.Error(1)
}

// MockContractorRepository is a mock implementation of ContractorRepository for testing
type MockContractorRepository struct {
	mock.Mock
}

func (m *MockContractorRepository) Insert(ctx context.Context, contractor *models.Contractor) error {
	args := m.Called(ctx, contractor)
	return args.Error(0)
}

func (m *MockContractorRepository) FindByID(ctx context.Context, id string) (*models.Contractor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Contractor), args.Error(1)
}

func (m *MockContractorRepository) List(ctx context.Context, isActive *bool) ([]models.Contractor, error) {
	args := m.Called(ctx, isActive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Contractor), args.Error(1)
}

func (m *MockContractorRepository) Patch(ctx context.Context, id string, patch models.ContractorPatch) (bool, error) {
	args := m.Called(ctx, id, patch)
	return args.Bool(0), args.Error(1)
}

// MockRepairRepository is a mock implementation of RepairRepository for testing
type MockRepairRepository struct {
	mock.Mock
}

func (m *MockRepairRepository) CreateWithLog(ctx context.Context, repair *models.RepairRequest, entry *models.RepairUpdate) error {
	args := m.Called(ctx, repair, entry)
	return args.Error(0)
}

func (m *MockRepairRepository) FindByID(ctx context.Context, id string) (*models.RepairRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RepairRequest), args.Error(1)
}

func (m *MockRepairRepository) UpdateStatusWithLog(ctx context.Context, id string, status models.RepairStatus, completedDate *int64, entry *models.RepairUpdate, check repository.StatusCheck) (bool, error) {
	args := m.Called(ctx, id, status, completedDate, entry, check)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepairRepository) AssignWithLog(ctx context.Context, id, contractorID, assignedBy string, scheduledDate *int64, estimatedCost *float64, entry *models.RepairUpdate, check repository.StatusCheck) (bool, error) {
	args := m.Called(ctx, id, contractorID, assignedBy, scheduledDate, estimatedCost, entry, check)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepairRepository) List(ctx context.Context, filter repository.RepairFilter) ([]models.RepairRequest, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.RepairRequest), args.Error(1)
}

func (m *MockRepairRepository) ListByContractor(ctx context.Context, contractorID string) ([]models.RepairRequest, error) {
	args := m.Called(ctx, contractorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.RepairRequest), args.Error(1)
}

func (m *MockRepairRepository) ListByProperty(ctx context.Context, propertyID string) ([]models.RepairRequest, error) {
	args := m.Called(ctx, propertyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.RepairRequest), args.Error(1)
}

func (m *MockRepairRepository) ListUpdates(ctx context.Context, repairID string) ([]models.RepairUpdate, error) {
	args := m.Called(ctx, repairID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.RepairUpdate), args.Error(1)
}

// MockUserProfileRepository is a mock implementation of UserProfileRepository for testing
type MockUserProfileRepository struct {
	mock.Mock
}

func (m *MockUserProfileRepository) Upsert(ctx context.Context, profile *models.UserProfile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockUserProfileRepository) FindByUserID(ctx context.Context, userID string) (*models.UserProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserProfile), args.Error(1)
}
