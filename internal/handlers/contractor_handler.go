package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/stwalsh4118/propfix/api/internal/apperrors"
	"github.com/stwalsh4118/propfix/api/internal/middleware"
	"github.com/stwalsh4118/propfix/api/internal/models"
	"github.com/stwalsh4118/propfix/api/internal/services"
)

// ContractorHandler handles contractor HTTP endpoints.
type ContractorHandler struct {
	service services.ContractorService
}

// NewContractorHandler creates a new ContractorHandler instance.
func NewContractorHandler(service services.ContractorService) *ContractorHandler {
	return &ContractorHandler{service: service}
}

// ListContractorsRequest represents the query parameters for the contractor
// list endpoint.
type ListContractorsRequest struct {
	Specialty *string `form:"specialty"`
	IsActive  *bool   `form:"isActive"`
}

// CreateContractorRequest represents the body for creating a contractor.
type CreateContractorRequest struct {
	Name        string   `json:"name" binding:"required"`
	Email       string   `json:"email" binding:"required,email"`
	Phone       string   `json:"phone" binding:"required"`
	Specialties []string `json:"specialties" binding:"required,min=1"`
	HourlyRate  *float64 `json:"hourlyRate" binding:"omitempty,gt=0"`
}

// UpdateContractorRequest represents the body for a partial contractor
// update. Absent fields are left unchanged.
type UpdateContractorRequest struct {
	Name        *string  `json:"name"`
	Email       *string  `json:"email" binding:"omitempty,email"`
	Phone       *string  `json:"phone"`
	Specialties []string `json:"specialties" binding:"omitempty,min=1"`
	HourlyRate  *float64 `json:"hourlyRate" binding:"omitempty,gt=0"`
	IsActive    *bool    `json:"isActive"`
}

// List handles GET /api/v1/contractors.
func (h *ContractorHandler) List(c *gin.Context) {
	var req ListContractorsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		apperrors.BadRequest(c, "Invalid query parameters")
		return
	}

	contractors, err := h.service.List(c.Request.Context(), middleware.GetUserID(c), req.Specialty, req.IsActive)
	if err != nil {
		apperrors.Render(c, err)
		return
	}

	c.JSON(http.StatusOK, contractors)
}

// Create handles POST /api/v1/contractors.
func (h *ContractorHandler) Create(c *gin.Context) {
	var req CreateContractorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			apperrors.ValidationError(c, validationErrors)
			return
		}
		apperrors.BadRequest(c, "Invalid request body")
		return
	}

	input := services.CreateContractorInput{
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		Specialties: req.Specialties,
		HourlyRate:  req.HourlyRate,
	}

	id, err := h.service.Create(c.Request.Context(), middleware.GetUserID(c), input)
	if err != nil {
		apperrors.Render(c, err)
		return
	}

	c.JSON(http.StatusCreated, IDResponse{ID: id})
}

// Update handles PATCH /api/v1/contractors/:id.
func (h *ContractorHandler) Update(c *gin.Context) {
	var req UpdateContractorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			apperrors.ValidationError(c, validationErrors)
			return
		}
		apperrors.BadRequest(c, "Invalid request body")
		return
	}

	patch := models.ContractorPatch{
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		Specialties: req.Specialties,
		HourlyRate:  req.HourlyRate,
		IsActive:    req.IsActive,
	}

	id, err := h.service.Update(c.Request.Context(), middleware.GetUserID(c), c.Param("id"), patch)
	if err != nil {
		apperrors.Render(c, err)
		return
	}

	c.JSON(http.StatusOK, IDResponse{ID: id})
}
