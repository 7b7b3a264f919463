package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/stwalsh4118/propfix/api/internal/apperrors"
	"github.com/stwalsh4118/propfix/api/internal/logger"
	"github.com/stwalsh4118/propfix/api/internal/models"
	"github.com/stwalsh4118/propfix/api/internal/repository"
)

// CreateTenantInput holds the caller-supplied fields for a new tenant.
// Lease dates are epoch milliseconds.
type CreateTenantInput struct {
	Name       string
	Email      string
	Phone      string
	PropertyID string
	Unit       *string
	LeaseStart int64
	LeaseEnd   int64
}

// TenantService manages tenant records.
type TenantService interface {
	// Create inserts a tenant and returns the new id. Fails with NotFound
	// if the property does not resolve.
	Create(ctx context.Context, userID string, input CreateTenantInput) (string, error)
}

// tenantService is the concrete implementation of TenantService.
type tenantService struct {
	tenants    repository.TenantRepository
	properties repository.PropertyRepository
	log        *logger.Logger
}

// NewTenantService creates a new instance of TenantService.
func NewTenantService(
	tenants repository.TenantRepository,
	properties repository.PropertyRepository,
	log *logger.Logger,
) TenantService {
	return &tenantService{
		tenants:    tenants,
		properties: properties,
		log:        log,
	}
}

func (s *tenantService) Create(ctx context.Context, userID string, input CreateTenantInput) (string, error) {
	if userID == "" {
		return "", apperrors.Unauthenticated("")
	}

	property, err := s.properties.FindByID(ctx, input.PropertyID)
	if err != nil {
		return "", fmt.Errorf("failed to resolve property: %w", err)
	}
	if property == nil {
		return "", apperrors.NotFound("property", input.PropertyID)
	}

	tenant := &models.Tenant{
		ID:         uuid.New().String(),
		Name:       input.Name,
		Email:      input.Email,
		Phone:      input.Phone,
		PropertyID: input.PropertyID,
		Unit:       input.Unit,
		LeaseStart: input.LeaseStart,
		LeaseEnd:   input.LeaseEnd,
		CreatedAt:  time.Now(),
	}

	if err := s.tenants.Insert(ctx, tenant); err != nil {
		s.log.Error("Failed to create tenant", err, map[string]interface{}{
			"property_id": input.PropertyID,
			"user_id":     userID,
		})
		return "", fmt.Errorf("failed to create tenant: %w", err)
	}

	s.log.Info("Tenant created", map[string]interface{}{
		"tenant_id":   tenant.ID,
		"property_id": tenant.PropertyID,
		"user_id":     userID,
	})
	return tenant.ID, nil
}
