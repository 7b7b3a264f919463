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

// CreateContractorInput holds the caller-supplied fields for a new
// contractor. New contractors start active with no rating.
type CreateContractorInput struct {
	Name        string
	Email       string
	Phone       string
	Specialties []string
	HourlyRate  *float64
}

// ContractorService manages contractors and their workload aggregates.
type ContractorService interface {
	// List returns contractors, optionally filtered by active flag (exact
	// match, pushed to the store) and specialty (containment check applied
	// afterward), each annotated with repair counts recomputed from that
	// contractor's repairs.
	List(ctx context.Context, userID string, specialty *string, isActive *bool) ([]models.ContractorWithStats, error)

	// Create inserts a contractor and returns the new id.
	Create(ctx context.Context, userID string, input CreateContractorInput) (string, error)

	// Update applies a partial update to a contractor's mutable fields.
	// Fails with NotFound if the contractor does not resolve.
	Update(ctx context.Context, userID, contractorID string, patch models.ContractorPatch) (string, error)
}

// contractorService is the concrete implementation of ContractorService.
type contractorService struct {
	contractors repository.ContractorRepository
	repairs     repository.RepairRepository
	log         *logger.Logger
}

// NewContractorService creates a new instance of ContractorService.
func NewContractorService(
	contractors repository.ContractorRepository,
	repairs repository.RepairRepository,
	log *logger.Logger,
) ContractorService {
	return &contractorService{
		contractors: contractors,
		repairs:     repairs,
		log:         log,
	}
}

func (s *contractorService) List(ctx context.Context, userID string, specialty *string, isActive *bool) ([]models.ContractorWithStats, error) {
	if userID == "" {
		return nil, apperrors.Unauthenticated("")
	}

	contractors, err := s.contractors.List(ctx, isActive)
	if err != nil {
		return nil, fmt.Errorf("failed to query contractors: %w", err)
	}

	// Specialty is a containment check against the specialty set, applied
	// after the store-level active filter.
	if specialty != nil && *specialty != "" {
		filtered := contractors[:0]
		for _, c := range contractors {
			if c.HasSpecialty(*specialty) {
				filtered = append(filtered, c)
			}
		}
		contractors = filtered
	}

	results := make([]models.ContractorWithStats, len(contractors))
	g, gctx := errgroup.WithContext(ctx)
	for i, contractor := range contractors {
		g.Go(func() error {
			repairs, err := s.repairs.ListByContractor(gctx, contractor.ID)
			if err != nil {
				return err
			}

			stats := models.ContractorWithStats{Contractor: contractor}
			for _, repair := range repairs {
				stats.TotalRepairs++
				switch repair.Status {
				case models.StatusAssigned, models.StatusInProgress:
					stats.ActiveRepairs++
				case models.StatusCompleted:
					stats.CompletedRepairs++
				}
			}

			results[i] = stats
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to compute contractor repair counts: %w", err)
	}

	s.log.Debug("Listed contractors", map[string]interface{}{
		"count":   len(results),
		"user_id": userID,
	})
	return results, nil
}

func (s *contractorService) Create(ctx context.Context, userID string, input CreateContractorInput) (string, error) {
	if userID == "" {
		return "", apperrors.Unauthenticated("")
	}
	if len(input.Specialties) == 0 {
		return "", apperrors.Validation("at least one specialty is required", nil)
	}

	contractor := &models.Contractor{
		ID:          uuid.New().String(),
		Name:        input.Name,
		Email:       input.Email,
		Phone:       input.Phone,
		Specialties: input.Specialties,
		HourlyRate:  input.HourlyRate,
		IsActive:    true,
		CreatedAt:   time.Now(),
	}

	if err := s.contractors.Insert(ctx, contractor); err != nil {
		s.log.Error("Failed to create contractor", err, map[string]interface{}{
			"user_id": userID,
		})
		return "", fmt.Errorf("failed to create contractor: %w", err)
	}

	s.log.Info("Contractor created", map[string]interface{}{
		"contractor_id": contractor.ID,
		"specialties":   contractor.Specialties,
		"user_id":       userID,
	})
	return contractor.ID, nil
}

func (s *contractorService) Update(ctx context.Context, userID, contractorID string, patch models.ContractorPatch) (string, error) {
	if userID == "" {
		return "", apperrors.Unauthenticated("")
	}
	if patch.Specialties != nil && len(patch.Specialties) == 0 {
		return "", apperrors.Validation("at least one specialty is required", nil)
	}

	found, err := s.contractors.Patch(ctx, contractorID, patch)
	if err != nil {
		s.log.Error("Failed to update contractor", err, map[string]interface{}{
			"contractor_id": contractorID,
			"user_id":       userID,
		})
		return "", fmt.Errorf("failed to update contractor: %w", err)
	}
	if !found {
		return "", apperrors.NotFound("contractor", contractorID)
	}

	s.log.Info("Contractor updated", map[string]interface{}{
		"contractor_id": contractorID,
		"user_id":       userID,
	})
	return contractorID, nil
}
