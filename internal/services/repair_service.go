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

// creationNote is the audit note recorded when a repair request is created.
const creationNote = "Repair request created"

// defaultAssignmentNote is the audit note recorded on assignment when the
// caller supplies none.
const defaultAssignmentNote = "Contractor assigned"

// allowedTransitions is the repair status state machine, consulted only when
// strict transition validation is enabled. pending also moves to assigned
// through AssignContractor.
var allowedTransitions = map[models.RepairStatus][]models.RepairStatus{
	models.StatusPending:    {models.StatusAssigned, models.StatusInProgress, models.StatusCancelled},
	models.StatusAssigned:   {models.StatusInProgress, models.StatusCancelled},
	models.StatusInProgress: {models.StatusCompleted, models.StatusCancelled},
}

// transitionAllowed reports whether the state machine permits moving from
// one status to another.
func transitionAllowed(from, to models.RepairStatus) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// CreateRepairInput holds the caller-supplied fields for a new repair
// request. All other fields start unset; status is always pending.
type CreateRepairInput struct {
	PropertyID  string
	TenantID    *string
	Title       string
	Description string
	Category    models.RepairCategory
	Priority    models.RepairPriority
	ReportedBy  models.Reporter
}

// RepairService manages the repair request lifecycle and its audit trail,
// and serves the denormalized repair views. Every operation takes the
// caller's user id explicitly; an empty id fails with an Unauthenticated
// error before any store access.
type RepairService interface {
	// Create inserts a repair request in pending status along with its
	// creation audit entry, and returns the new id. Fails with NotFound if
	// the property does not resolve.
	Create(ctx context.Context, userID string, input CreateRepairInput) (string, error)

	// UpdateStatus patches a repair's status and appends the audit entry.
	// Completing a repair stamps its completion date. Fails with NotFound if
	// the repair does not resolve, and (in strict mode only) with
	// InvalidTransition for moves outside the state machine.
	UpdateStatus(ctx context.Context, userID, repairID string, status models.RepairStatus, notes *string) (string, error)

	// AssignContractor sets the contractor on a repair and forces its status
	// to assigned, recording who assigned it and the optional schedule and
	// estimate. Fails with NotFound if the repair does not resolve. In
	// strict mode, assignment to a completed or cancelled repair fails with
	// InvalidTransition; otherwise the assignment is applied regardless of
	// the current status.
	AssignContractor(ctx context.Context, userID, repairID, contractorID string, scheduledDate *int64, estimatedCost *float64, notes *string) (string, error)

	// GetDetails returns the full denormalized view of a repair: property,
	// contractor, tenant, assigning user, and the audit trail in insertion
	// order, each entry joined with its author's profile.
	// Returns nil, nil if the repair does not resolve (not an error).
	GetDetails(ctx context.Context, userID, repairID string) (*models.RepairDetails, error)

	// List returns repair requests matching at most one filter dimension
	// (property first, else status, else priority), each denormalized with
	// its property, contractor, and tenant.
	List(ctx context.Context, userID string, filter repository.RepairFilter) ([]models.RepairWithRelations, error)
}

// repairService is the concrete implementation of RepairService.
type repairService struct {
	repairs     repository.RepairRepository
	properties  repository.PropertyRepository
	tenants     repository.TenantRepository
	contractors repository.ContractorRepository
	profiles    repository.UserProfileRepository
	strict      bool
	log         *logger.Logger
}

// NewRepairService creates a new instance of RepairService. When strict is
// true, status transitions are validated server-side; otherwise any
// caller-supplied status is recorded, preserving the historically
// permissive behavior.
func NewRepairService(
	repairs repository.RepairRepository,
	properties repository.PropertyRepository,
	tenants repository.TenantRepository,
	contractors repository.ContractorRepository,
	profiles repository.UserProfileRepository,
	strict bool,
	log *logger.Logger,
) RepairService {
	return &repairService{
		repairs:     repairs,
		properties:  properties,
		tenants:     tenants,
		contractors: contractors,
		profiles:    profiles,
		strict:      strict,
		log:         log,
	}
}

func (s *repairService) Create(ctx context.Context, userID string, input CreateRepairInput) (string, error) {
	if userID == "" {
		return "", apperrors.Unauthenticated("")
	}

	if !input.Category.Valid() {
		return "", apperrors.Validation("invalid repair category", map[string]interface{}{"category": string(input.Category)})
	}
	if !input.Priority.Valid() {
		return "", apperrors.Validation("invalid repair priority", map[string]interface{}{"priority": string(input.Priority)})
	}
	if !input.ReportedBy.Valid() {
		return "", apperrors.Validation("invalid reporter", map[string]interface{}{"reportedBy": string(input.ReportedBy)})
	}

	property, err := s.properties.FindByID(ctx, input.PropertyID)
	if err != nil {
		return "", fmt.Errorf("failed to resolve property: %w", err)
	}
	if property == nil {
		return "", apperrors.NotFound("property", input.PropertyID)
	}

	now := time.Now()
	repair := &models.RepairRequest{
		ID:          uuid.New().String(),
		PropertyID:  input.PropertyID,
		TenantID:    input.TenantID,
		Title:       input.Title,
		Description: input.Description,
		Category:    input.Category,
		Priority:    input.Priority,
		Status:      models.StatusPending,
		ReportedBy:  input.ReportedBy,
		CreatedAt:   now,
	}

	newValue := string(models.StatusPending)
	notes := creationNote
	entry := &models.RepairUpdate{
		ID:              uuid.New().String(),
		RepairRequestID: repair.ID,
		UpdatedBy:       userID,
		UpdateType:      models.UpdateStatusChange,
		NewValue:        &newValue,
		Notes:           &notes,
		CreatedAt:       now,
	}

	if err := s.repairs.CreateWithLog(ctx, repair, entry); err != nil {
		s.log.Error("Failed to create repair request", err, map[string]interface{}{
			"property_id": input.PropertyID,
			"user_id":     userID,
		})
		return "", fmt.Errorf("failed to create repair request: %w", err)
	}

	s.log.Info("Repair request created", map[string]interface{}{
		"repair_id":   repair.ID,
		"property_id": repair.PropertyID,
		"priority":    string(repair.Priority),
		"user_id":     userID,
	})
	return repair.ID, nil
}

func (s *repairService) UpdateStatus(ctx context.Context, userID, repairID string, status models.RepairStatus, notes *string) (string, error) {
	if userID == "" {
		return "", apperrors.Unauthenticated("")
	}
	if !status.Valid() {
		return "", apperrors.Validation("invalid repair status", map[string]interface{}{"status": string(status)})
	}

	var completedDate *int64
	if status == models.StatusCompleted {
		millis := time.Now().UnixMilli()
		completedDate = &millis
	}

	newValue := string(status)
	entry := &models.RepairUpdate{
		ID:              uuid.New().String(),
		RepairRequestID: repairID,
		UpdatedBy:       userID,
		UpdateType:      models.UpdateStatusChange,
		NewValue:        &newValue,
		Notes:           notes,
		CreatedAt:       time.Now(),
	}

	var check repository.StatusCheck
	if s.strict {
		check = func(current models.RepairStatus) error {
			if !transitionAllowed(current, status) {
				return apperrors.InvalidTransition(repairID, string(current), string(status))
			}
			return nil
		}
	}

	found, err := s.repairs.UpdateStatusWithLog(ctx, repairID, status, completedDate, entry, check)
	if err != nil {
		if apperrors.IsKind(err, apperrors.KindInvalidTransition) {
			return "", err
		}
		s.log.Error("Failed to update repair status", err, map[string]interface{}{
			"repair_id": repairID,
			"status":    string(status),
			"user_id":   userID,
		})
		return "", fmt.Errorf("failed to update repair status: %w", err)
	}
	if !found {
		return "", apperrors.NotFound("repair request", repairID)
	}

	s.log.Info("Repair status updated", map[string]interface{}{
		"repair_id": repairID,
		"status":    string(status),
		"user_id":   userID,
	})
	return repairID, nil
}

func (s *repairService) AssignContractor(ctx context.Context, userID, repairID, contractorID string, scheduledDate *int64, estimatedCost *float64, notes *string) (string, error) {
	if userID == "" {
		return "", apperrors.Unauthenticated("")
	}

	assignmentNotes := defaultAssignmentNote
	if notes != nil && *notes != "" {
		assignmentNotes = *notes
	}

	entry := &models.RepairUpdate{
		ID:              uuid.New().String(),
		RepairRequestID: repairID,
		UpdatedBy:       userID,
		UpdateType:      models.UpdateAssignment,
		NewValue:        &contractorID,
		Notes:           &assignmentNotes,
		CreatedAt:       time.Now(),
	}

	var check repository.StatusCheck
	if s.strict {
		check = func(current models.RepairStatus) error {
			if current.Terminal() {
				return apperrors.InvalidTransition(repairID, string(current), string(models.StatusAssigned))
			}
			return nil
		}
	}

	found, err := s.repairs.AssignWithLog(ctx, repairID, contractorID, userID, scheduledDate, estimatedCost, entry, check)
	if err != nil {
		if apperrors.IsKind(err, apperrors.KindInvalidTransition) {
			return "", err
		}
		s.log.Error("Failed to assign contractor", err, map[string]interface{}{
			"repair_id":     repairID,
			"contractor_id": contractorID,
			"user_id":       userID,
		})
		return "", fmt.Errorf("failed to assign contractor: %w", err)
	}
	if !found {
		return "", apperrors.NotFound("repair request", repairID)
	}

	s.log.Info("Contractor assigned", map[string]interface{}{
		"repair_id":     repairID,
		"contractor_id": contractorID,
		"user_id":       userID,
	})
	return repairID, nil
}

func (s *repairService) GetDetails(ctx context.Context, userID, repairID string) (*models.RepairDetails, error) {
	if userID == "" {
		return nil, apperrors.Unauthenticated("")
	}

	repair, err := s.repairs.FindByID(ctx, repairID)
	if err != nil {
		return nil, fmt.Errorf("failed to query repair request: %w", err)
	}
	if repair == nil {
		s.log.Debug("Repair request not found", map[string]interface{}{"repair_id": repairID})
		return nil, nil
	}

	details := &models.RepairDetails{RepairRequest: *repair}

	// Resolve the relations concurrently. Each lookup may observe a slightly
	// different snapshot, which is acceptable for display data.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		property, err := s.properties.FindByID(gctx, repair.PropertyID)
		if err != nil {
			return err
		}
		details.Property = property
		return nil
	})
	if repair.ContractorID != nil {
		g.Go(func() error {
			contractor, err := s.contractors.FindByID(gctx, *repair.ContractorID)
			if err != nil {
				return err
			}
			details.Contractor = contractor
			return nil
		})
	}
	if repair.TenantID != nil {
		g.Go(func() error {
			tenant, err := s.tenants.FindByID(gctx, *repair.TenantID)
			if err != nil {
				return err
			}
			details.Tenant = tenant
			return nil
		})
	}
	if repair.AssignedBy != nil {
		g.Go(func() error {
			profile, err := s.profiles.FindByUserID(gctx, *repair.AssignedBy)
			if err != nil {
				return err
			}
			details.AssignedByUser = profile
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to resolve repair relations: %w", err)
	}

	updates, err := s.repairs.ListUpdates(ctx, repairID)
	if err != nil {
		return nil, fmt.Errorf("failed to query repair updates: %w", err)
	}

	details.Updates = make([]models.RepairUpdateWithUser, len(updates))
	ug, ugctx := errgroup.WithContext(ctx)
	for i, update := range updates {
		ug.Go(func() error {
			user, err := s.profiles.FindByUserID(ugctx, update.UpdatedBy)
			if err != nil {
				return err
			}
			details.Updates[i] = models.RepairUpdateWithUser{RepairUpdate: update, User: user}
			return nil
		})
	}
	if err := ug.Wait(); err != nil {
		return nil, fmt.Errorf("failed to resolve repair update authors: %w", err)
	}

	return details, nil
}

func (s *repairService) List(ctx context.Context, userID string, filter repository.RepairFilter) ([]models.RepairWithRelations, error) {
	if userID == "" {
		return nil, apperrors.Unauthenticated("")
	}

	if filter.Status != "" && !filter.Status.Valid() {
		return nil, apperrors.Validation("invalid repair status", map[string]interface{}{"status": string(filter.Status)})
	}
	if filter.Priority != "" && !filter.Priority.Valid() {
		return nil, apperrors.Validation("invalid repair priority", map[string]interface{}{"priority": string(filter.Priority)})
	}

	repairs, err := s.repairs.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query repair requests: %w", err)
	}

	// Denormalize each repair concurrently; output order matches input order.
	results := make([]models.RepairWithRelations, len(repairs))
	g, gctx := errgroup.WithContext(ctx)
	for i, repair := range repairs {
		g.Go(func() error {
			row := models.RepairWithRelations{RepairRequest: repair}

			property, err := s.properties.FindByID(gctx, repair.PropertyID)
			if err != nil {
				return err
			}
			row.Property = property

			if repair.ContractorID != nil {
				contractor, err := s.contractors.FindByID(gctx, *repair.ContractorID)
				if err != nil {
					return err
				}
				row.Contractor = contractor
			}
			if repair.TenantID != nil {
				tenant, err := s.tenants.FindByID(gctx, *repair.TenantID)
				if err != nil {
					return err
				}
				row.Tenant = tenant
			}

			results[i] = row
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to resolve repair relations: %w", err)
	}

	s.log.Debug("Listed repair requests", map[string]interface{}{
		"count":   len(results),
		"user_id": userID,
	})
	return results, nil
}
