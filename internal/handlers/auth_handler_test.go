package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stwalsh4118/propfix/api/internal/apperrors"
	"github.com/stwalsh4118/propfix/api/internal/auth"
	"github.com/stwalsh4118/propfix/api/internal/config"
	"github.com/stwalsh4118/propfix/api/internal/logger"
	"github.com/stwalsh4118/propfix/api/internal/middleware"
	"github.com/stwalsh4118/propfix/api/internal/models"
)

// MockUserProfileRepository is a mock implementation of UserProfileRepository for testing
type MockUserProfileRepository struct {
	mock.Mock
}

func (m *MockUserProfileRepository) Upsert(ctx context.Context, profile *models.UserProfile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockUserProfileRepository) FindByUserID(ctx context.Context, userID string) (*models.UserProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserProfile), args.Error(1)
}

func newAuthService() *auth.Service {
	return auth.NewService(config.AuthConfig{
		JWTSecret: "test-secret",
		TokenTTL:  time.Hour,
	})
}

// setupAuthTestRouter creates a test router with middleware and the token endpoint.
func setupAuthTestRouter(handler *AuthHandler, log *logger.Logger) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(log))

	router.POST("/api/v1/auth/token", handler.Token)

	return router
}

func TestToken_IssuesVerifiableToken(t *testing.T) {
	authService := newAuthService()
	profiles := new(MockUserProfileRepository)
	handler := NewAuthHandler(authService, profiles)
	router := setupAuthTestRouter(handler, logger.New("test"))

	profiles.On("Upsert", mock.Anything, mock.MatchedBy(func(p *models.UserProfile) bool {
		return p.UserID == "user-1" && p.Role == models.RoleLandlord
	})).Return(nil)

	body := jsonBody(t, gin.H{"userId": "user-1", "role": "landlord"})
	req, err := http.NewRequest(http.MethodPost, "/api/v1/auth/token", body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response TokenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "user-1", response.UserID)
	assert.Equal(t, "landlord", response.Role)

	claims, err := authService.VerifyToken(response.Token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	profiles.AssertExpectations(t)
}

func TestToken_RejectsUnknownRole(t *testing.T) {
	profiles := new(MockUserProfileRepository)
	handler := NewAuthHandler(newAuthService(), profiles)
	router := setupAuthTestRouter(handler, logger.New("test"))

	body := jsonBody(t, gin.H{"userId": "user-1", "role": "superuser"})
	req, err := http.NewRequest(http.MethodPost, "/api/v1/auth/token", body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response apperrors.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, string(apperrors.KindValidation), response.Error.Code)
	profiles.AssertNotCalled(t, "Upsert")
}

func TestToken_MissingUserID(t *testing.T) {
	profiles := new(MockUserProfileRepository)
	handler := NewAuthHandler(newAuthService(), profiles)
	router := setupAuthTestRouter(handler, logger.New("test"))

	body := jsonBody(t, gin.H{"role": "landlord"})
	req, err := http.NewRequest(http.MethodPost, "/api/v1/auth/token", body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	profiles.AssertNotCalled(t, "Upsert")
}
