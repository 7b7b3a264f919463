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
	"golang.org/x/sync/errgroup"
)

// CreatePropertyInput holds the caller-supplied fields for a new property.
// The caller becomes the landlord.
type CreatePropertyInput struct {
	Address string
	Type    models.PropertyType
	Units   *int
	AgentID *string
}

// PropertyService manages properties and their dashboard aggregates.
type PropertyService interface {
	// List returns the caller's properties (as landlord or agent, duplicates
	// preserved when both), each annotated with repair counts recomputed
	// from that property's repairs.
	List(ctx context.Context, userID string) ([]models.PropertyWithStats, error)

	// Create inserts a property owned by the caller and returns the new id.
	Create(ctx context.Context, userID string, input CreatePropertyInput) (string, error)

	// Get returns a property joined with its tenants.
	// Returns nil, nil if the property does not resolve (not an error).
	Get(ctx context.Context, userID, propertyID string) (*models.PropertyWithTenants, error)
}

// propertyService is the concrete implementation of PropertyService.
type propertyService struct {
	properties repository.PropertyRepository
	tenants    repository.TenantRepository
	repairs    repository.RepairRepository
	log        *logger.Logger
}

// NewPropertyService creates a new instance of PropertyService.
func NewPropertyService(
	properties repository.PropertyRepository,
	tenants repository.TenantRepository,
	repairs repository.RepairRepository,
	log *logger.Logger,
) PropertyService {
	return &propertyService{
		properties: properties,
		tenants:    tenants,
		repairs:    repairs,
		log:        log,
	}
}

func (s *propertyService) List(ctx context.Context, userID string) ([]models.PropertyWithStats, error) {
	if userID == "" {
		return nil, apperrors.Unauthenticated("")
	}

	properties, err := s.properties.ListForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query properties: %w", err)
	}

	// Recompute repair counts per property; output order matches input order.
	results := make([]models.PropertyWithStats, len(properties))
	g, gctx := errgroup.WithContext(ctx)
	for i, property := range properties {
		g.Go(func() error {
			repairs, err := s.repairs.ListByProperty(gctx, property.ID)
			if err != nil {
				return err
			}

			stats := models.PropertyWithStats{Property: property}
			for _, repair := range repairs {
				stats.TotalRepairs++
				switch repair.Status {
				case models.StatusPending:
					stats.PendingRepairs++
				case models.StatusAssigned, models.StatusInProgress:
					stats.ActiveRepairs++
				}
			}

			results[i] = stats
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to compute property repair counts: %w", err)
	}

	s.log.Debug("Listed properties", map[string]interface{}{
		"count":   len(results),
		"user_id": userID,
	})
	return results, nil
}

func (s *propertyService) Create(ctx context.Context, userID string, input CreatePropertyInput) (string, error) {
	if userID == "" {
		return "", apperrors.Unauthenticated("")
	}
	if !input.Type.Valid() {
		return "", apperrors.Validation("invalid property type", map[string]interface{}{"type": string(input.Type)})
	}

	property := &models.Property{
		ID:         uuid.New().String(),
		Address:    input.Address,
		Type:       input.Type,
		Units:      input.Units,
		LandlordID: userID,
		AgentID:    input.AgentID,
		CreatedAt:  time.Now(),
	}

	if err := s.properties.Insert(ctx, property); err != nil {
		s.log.Error("Failed to create property", err, map[string]interface{}{
			"user_id": userID,
		})
		return "", fmt.Errorf("failed to create property: %w", err)
	}

	s.log.Info("Property created", map[string]interface{}{
		"property_id": property.ID,
		"type":        string(property.Type),
		"user_id":     userID,
	})
	return property.ID, nil
}

func (s *propertyService) Get(ctx context.Context, userID, propertyID string) (*models.PropertyWithTenants, error) {
	if userID == "" {
		return nil, apperrors.Unauthenticated("")
	}

	property, err := s.properties.FindByID(ctx, propertyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query property: %w", err)
	}
	if property == nil {
		s.log.Debug("Property not found", map[string]interface{}{"property_id": propertyID})
		return nil, nil
	}

	tenants, err := s.tenants.ListByProperty(ctx, propertyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query tenants: %w", err)
	}

	return &models.PropertyWithTenants{
		Property: *property,
		Tenants:  tenants,
	}, nil
}
