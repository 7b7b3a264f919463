package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/stwalsh4118/propfix/api/internal/apperrors"
	"github.com/stwalsh4118/propfix/api/internal/middleware"
	"github.com/stwalsh4118/propfix/api/internal/models"
	"github.com/stwalsh4118/propfix/api/internal/repository"
	"github.com/stwalsh4118/propfix/api/internal/services"
)

// RepairHandler handles repair request HTTP endpoints.
type RepairHandler struct {
	service services.RepairService
}

// NewRepairHandler creates a new RepairHandler instance.
func NewRepairHandler(service services.RepairService) *RepairHandler {
	return &RepairHandler{service: service}
}

// ListRepairsRequest represents the query parameters for the repair list
// endpoint. At most one filter dimension is honored, by fixed precedence:
// propertyId, then status, then priority.
type ListRepairsRequest struct {
	PropertyID string `form:"propertyId"`
	Status     string `form:"status" binding:"omitempty,oneof=pending assigned in_progress completed cancelled"`
	Priority   string `form:"priority" binding:"omitempty,oneof=low medium high emergency"`
}

// CreateRepairRequest represents the body for creating a repair request.
type CreateRepairRequest struct {
	PropertyID  string  `json:"propertyId" binding:"required"`
	TenantID    *string `json:"tenantId"`
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description" binding:"required"`
	Category    string  `json:"category" binding:"required,oneof=plumbing electrical hvac appliance structural other"`
	Priority    string  `json:"priority" binding:"required,oneof=low medium high emergency"`
	ReportedBy  string  `json:"reportedBy" binding:"required,oneof=tenant landlord agent inspection"`
}

// UpdateStatusRequest represents the body for a status change.
type UpdateStatusRequest struct {
	Status string  `json:"status" binding:"required,oneof=pending assigned in_progress completed cancelled"`
	Notes  *string `json:"notes"`
}

// AssignContractorRequest represents the body for a contractor assignment.
type AssignContractorRequest struct {
	ContractorID  string   `json:"contractorId" binding:"required"`
	ScheduledDate *int64   `json:"scheduledDate"`
	EstimatedCost *float64 `json:"estimatedCost"`
	Notes         *string  `json:"notes"`
}

// IDResponse carries the id of a created or mutated record.
type IDResponse struct {
	ID string `json:"id"`
}

// List handles GET /api/v1/repairs.
func (h *RepairHandler) List(c *gin.Context) {
	var req ListRepairsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			apperrors.ValidationError(c, validationErrors)
			return
		}
		apperrors.BadRequest(c, "Invalid query parameters")
		return
	}

	filter := repository.RepairFilter{
		PropertyID: req.PropertyID,
		Status:     models.RepairStatus(req.Status),
		Priority:   models.RepairPriority(req.Priority),
	}

	repairs, err := h.service.List(c.Request.Context(), middleware.GetUserID(c), filter)
	if err != nil {
		apperrors.Render(c, err)
		return
	}

	c.JSON(http.StatusOK, repairs)
}

// Create handles POST /api/v1/repairs.
func (h *RepairHandler) Create(c *gin.Context) {
	var req CreateRepairRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			apperrors.ValidationError(c, validationErrors)
			return
		}
		apperrors.BadRequest(c, "Invalid request body")
		return
	}

	input := services.CreateRepairInput{
		PropertyID:  req.PropertyID,
		TenantID:    req.TenantID,
		Title:       req.Title,
		Description: req.Description,
		Category:    models.RepairCategory(req.Category),
		Priority:    models.RepairPriority(req.Priority),
		ReportedBy:  models.Reporter(req.ReportedBy),
	}

	id, err := h.service.Create(c.Request.Context(), middleware.GetUserID(c), input)
	if err != nil {
		apperrors.Render(c, err)
		return
	}

	c.JSON(http.StatusCreated, IDResponse{ID: id})
}

// UpdateStatus handles PATCH /api/v1/repairs/:id/status.
func (h *RepairHandler) UpdateStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			apperrors.ValidationError(c, validationErrors)
			return
		}
		apperrors.BadRequest(c, "Invalid request body")
		return
	}

	id, err := h.service.UpdateStatus(
		c.Request.Context(),
		middleware.GetUserID(c),
		c.Param("id"),
		models.RepairStatus(req.Status),
		req.Notes,
	)
	if err != nil {
		apperrors.Render(c, err)
		return
	}

	c.JSON(http.StatusOK, IDResponse{ID: id})
}

// Assign handles POST /api/v1/repairs/:id/assign.
func (h *RepairHandler) Assign(c *gin.Context) {
	var req AssignContractorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			apperrors.ValidationError(c, validationErrors)
			return
		}
		apperrors.BadRequest(c, "Invalid request body")
		return
	}

	id, err := h.service.AssignContractor(
		c.Request.Context(),
		middleware.GetUserID(c),
		c.Param("id"),
		req.ContractorID,
		req.ScheduledDate,
		req.EstimatedCost,
		req.Notes,
	)
	if err != nil {
		apperrors.Render(c, err)
		return
	}

	c.JSON(http.StatusOK, IDResponse{ID: id})
}

// Get handles GET /api/v1/repairs/:id.
// An unknown id yields a 200 response with a null body, not an error.
func (h *RepairHandler) Get(c *gin.Context) {
	details, err := h.service.GetDetails(c.Request.Context(), middleware.GetUserID(c), c.Param("id"))
	if err != nil {
		apperrors.Render(c, err)
		return
	}

	c.JSON(http.StatusOK, details)
}
