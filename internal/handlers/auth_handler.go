package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stwalsh4118/propfix/api/internal/apperrors"
	"github.com/stwalsh4118/propfix/api/internal/auth"
	"github.com/stwalsh4118/propfix/api/internal/models"
	"github.com/stwalsh4118/propfix/api/internal/repository"
)

// AuthHandler exchanges a user identity for a signed bearer token and keeps
// the user's application profile current. It stands in for the external
// identity provider in deployments that do not front the API with one.
type AuthHandler struct {
	auth     *auth.Service
	profiles repository.UserProfileRepository
}

// NewAuthHandler creates a new AuthHandler instance.
func NewAuthHandler(authService *auth.Service, profiles repository.UserProfileRepository) *AuthHandler {
	return &AuthHandler{
		auth:     authService,
		profiles: profiles,
	}
}

// TokenRequest represents the body for the token endpoint.
type TokenRequest struct {
	UserID      string  `json:"userId" binding:"required"`
	Role        string  `json:"role" binding:"required,oneof=landlord agent admin"`
	CompanyName *string `json:"companyName"`
	Phone       *string `json:"phone"`
}

// TokenResponse carries a signed bearer token.
type TokenResponse struct {
	Token  string `json:"token"`
	UserID string `json:"userId"`
	Role   string `json:"role"`
}

// Token handles POST /api/v1/auth/token.
// It upserts the caller's profile and returns a signed token for the user id.
func (h *AuthHandler) Token(c *gin.Context) {
	var req TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			apperrors.ValidationError(c, validationErrors)
			return
		}
		apperrors.BadRequest(c, "Invalid request body")
		return
	}

	profile := &models.UserProfile{
		ID:          uuid.New().String(),
		UserID:      req.UserID,
		Role:        models.Role(req.Role),
		CompanyName: req.CompanyName,
		Phone:       req.Phone,
		CreatedAt:   time.Now(),
	}
	if err := h.profiles.Upsert(c.Request.Context(), profile); err != nil {
		apperrors.Render(c, err)
		return
	}

	token, err := h.auth.IssueToken(req.UserID, models.Role(req.Role))
	if err != nil {
		apperrors.Render(c, apperrors.Internal("Failed to issue token", err))
		return
	}

	c.JSON(http.StatusOK, TokenResponse{
		Token:  token,
		UserID: req.UserID,
		Role:   req.Role,
	})
}
