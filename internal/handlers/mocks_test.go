package handlers

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/stwalsh4118/propfix/api/internal/models"
	"github.com/stwalsh4118/propfix/api/internal/repository"
	"github.com/stwalsh4118/propfix/api/internal/services"
)

// MockRepairService is a mock implementation of RepairService for testing
type MockRepairService struct {
	mock.Mock
}

func (m *MockRepairService) Create(ctx context.Context, userID string, input services.CreateRepairInput) (string, error) {
	args := m.Called(ctx, userID, input)
	return args.String(0), args.Error(1)
}

func (m *MockRepairService) UpdateStatus(ctx context.Context, userID, repairID string, status models.RepairStatus, notes *string) (string, error) {
	args := m.Called(ctx, userID, repairID, status, notes)
	return args.String(0), args.Error(1)
}

func (m *MockRepairService) AssignContractor(ctx context.Context, userID, repairID, contractorID string, scheduledDate *int64, estimatedCost *float64, notes *string) (string, error) {
	args := m.Called(ctx, userID, repairID, contractorID, scheduledDate, estimatedCost, notes)
	return args.String(0), args.Error(1)
}

func (m *MockRepairService) GetDetails(ctx context.Context, userID, repairID string) (*models.RepairDetails, error) {
	args := m.Called(ctx, userID, repairID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RepairDetails), args.Error(1)
}

func (m *MockRepairService) List(ctx context.Context, userID string, filter repository.RepairFilter) ([]models.RepairWithRelations, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.RepairWithRelations), args.Error(1)
}

// MockPropertyService is a mock implementation of PropertyService for testing
type MockPropertyService struct {
	mock.Mock
}

func (m *MockPropertyService) List(ctx context.Context, userID string) ([]models.PropertyWithStats, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.PropertyWithStats), args.Error(1)
}

func (m *MockPropertyService) Create(ctx context.Context, userID string, input services.CreatePropertyInput) (string, error) {
	args := m.Called(ctx, userID, input)
	return args.String(0), args.Error(1)
}

func (m *MockPropertyService) Get(ctx context.Context, userID, propertyID string) (*models.PropertyWithTenants, error) {
	args := m.Called(ctx, userID, propertyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PropertyWithTenants), args.Error(1)
}

// MockContractorService is a mock implementation of ContractorService for testing
type MockContractorService struct {
	mock.Mock
}

func (m *MockContractorService) List(ctx context.Context, userID string, specialty *string, isActive *bool) ([]models.ContractorWithStats, error) {
	args := m.Called(ctx, userID, specialty, isActive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ContractorWithStats), args.Error(1)
}

func (m *MockContractorService) Create(ctx context.Context, userID string, input services.CreateContractorInput) (string, error) {
	args := m.Called(ctx, userID, input)
	return args.String(0), args.Error(1)
}

func (m *MockContractorService) Update(ctx context.Context, userID, contractorID string, patch models.ContractorPatch) (string, error) {
	args := m.Called(ctx, userID, contractorID, patch)
	return args.String(0), args.Error(1)
}

// MockTenantService is a mock implementation of TenantService for testing
type MockTenantService struct {
	mock.Mock
}

func (m *MockTenantService) Create(ctx context.Context, userID string, input services.CreateTenantInput) (string, error) {
	args := m.Called(ctx, userID, input)
	return args.String(0), args.Error(1)
}
