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

// PropertyHandler handles property HTTP endpoints.
type PropertyHandler struct {
	service services.PropertyService
}

// NewPropertyHandler creates a new PropertyHandler instance.
func NewPropertyHandler(service services.PropertyService) *PropertyHandler {
	return &PropertyHandler{service: service}
}

// CreatePropertyRequest represents the body for creating a property.
type CreatePropertyRequest struct {
	Address string  `json:"address" binding:"required"`
	Type    string  `json:"type" binding:"required,oneof=apartment house commercial condo"`
	Units   *int    `json:"units" binding:"omitempty,gt=0"`
	AgentID *string `json:"agentId"`
}

// List handles GET /api/v1/properties.
func (h *PropertyHandler) List(c *gin.Context) {
	properties, err := h.service.List(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		apperrors.Render(c, err)
		return
	}

	c.JSON(http.StatusOK, properties)
}

// Create handles POST /api/v1/properties.
func (h *PropertyHandler) Create(c *gin.Context) {
	var req CreatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			apperrors.ValidationError(c, validationErrors)
			return
		}
		apperrors.BadRequest(c, "Invalid request body")
		return
	}

	input := services.CreatePropertyInput{
		Address: req.Address,
		Type:    models.PropertyType(req.Type),
		Units:   req.Units,
		AgentID: req.AgentID,
	}

	id, err := h.service.Create(c.Request.Context(), middleware.GetUserID(c), input)
	if err != nil {
		apperrors.Render(c, err)
		return
	}

	c.JSON(http.StatusCreated, IDResponse{ID: id})
}

// Get handles GET /api/v1/properties/:id.
// An unknown id yields a 200 response with a null body, not an error.
func (h *PropertyHandler) Get(c *gin.Context) {
	property, err := h.service.Get(c.Request.Context(), middleware.GetUserID(c), c.Param("id"))
	if err != nil {
		apperrors.Render(c, err)
		return
	}

	c.JSON(http.StatusOK, property)
}
