package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/stwalsh4118/propfix/api/internal/apperrors"
	"github.com/stwalsh4118/propfix/api/internal/middleware"
	"github.com/stwalsh4118/propfix/api/internal/services"
)

// TenantHandler handles tenant HTTP endpoints.
type TenantHandler struct {
	service services.TenantService
}

// NewTenantHandler creates a new TenantHandler instance.
func NewTenantHandler(service services.TenantService) *TenantHandler {
	return &TenantHandler{service: service}
}

// CreateTenantRequest represents the body for creating a tenant.
// Lease dates are epoch milliseconds.
type CreateTenantRequest struct {
	Name       string  `json:"name" binding:"required"`
	Email      string  `json:"email" binding:"required,email"`
	Phone      string  `json:"phone" binding:"required"`
	PropertyID string  `json:"propertyId" binding:"required"`
	Unit       *string `json:"unit"`
	LeaseStart int64   `json:"leaseStart" binding:"required"`
	LeaseEnd   int64   `json:"leaseEnd" binding:"required,gtfield=LeaseStart"`
}

// Create handles POST /api/v1/tenants.
func (h *TenantHandler) Create(c *gin.Context) {
	var req CreateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			apperrors.ValidationError(c, validationErrors)
			return
		}
		apperrors.BadRequest(c, "Invalid request body")
		return
	}

	input := services.CreateTenantInput{
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		PropertyID: req.PropertyID,
		Unit:       req.Unit,
		LeaseStart: req.LeaseStart,
		LeaseEnd:   req.LeaseEnd,
	}

	id, err := h.service.Create(c.Request.Context(), middleware.GetUserID(c), input)
	if err != nil {
		apperrors.Render(c, err)
		return
	}

	c.JSON(http.StatusCreated, IDResponse{ID: id})
}
