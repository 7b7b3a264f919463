package apperrors

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/stwalsh4118/propfix/api/internal/middleware"
)

// ErrorResponse is the top-level error response structure.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains the error information.
type ErrorDetail struct {
	Code      string                 `json:"code"`
	Message   string                 `json:"message"`
	Details   map[string]interface{} `json:"details,omitempty"`
	RequestID string                 `json:"request_id,omitempty"`
}

// statusForKind maps error kinds to HTTP status codes.
func statusForKind(kind Kind) int {
	switch kind {
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	case KindInvalidTransition:
		return http.StatusConflict
	case KindValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Render writes an error as a JSON response, logging it with the request
// logger. Application errors map to their kind's status code; anything else
// is treated as internal and its details are not exposed to the client.
func Render(c *gin.Context, err error) {
	log := middleware.GetLogger(c)
	requestID := middleware.GetRequestID(c)

	var appErr *Error
	if !errors.As(err, &appErr) {
		appErr = Internal("An unexpected error occurred", err)
	}

	status := statusForKind(appErr.Kind)

	logFields := map[string]interface{}{
		"kind":       string(appErr.Kind),
		"request_id": requestID,
		"path":       c.Request.URL.Path,
		"method":     c.Request.Method,
	}
	for k, v := range appErr.Fields {
		logFields[k] = v
	}

	if log != nil {
		if status >= http.StatusInternalServerError {
			log.Error(appErr.Message, appErr.Err, logFields)
		} else {
			log.Warn(appErr.Message, logFields)
		}
	}

	message := appErr.Message
	if status == http.StatusInternalServerError {
		// Do not leak internals to the client
		message = "An unexpected error occurred"
	}

	c.JSON(status, ErrorResponse{
		Error: ErrorDetail{
			Code:      string(appErr.Kind),
			Message:   message,
			Details:   appErr.Fields,
			RequestID: requestID,
		},
	})
}

// BadRequest writes a 400 response for malformed requests that never reached
// field validation.
func BadRequest(c *gin.Context, message string) {
	Render(c, Validation(message, nil))
}

// ValidationError writes a 400 response with field-specific messages parsed
// from the validator library.
func ValidationError(c *gin.Context, validationErrors validator.ValidationErrors) {
	details := make(map[string]interface{})
	for _, err := range validationErrors {
		details[err.Field()] = formatValidationError(err)
	}
	Render(c, Validation("Validation failed for one or more fields", details))
}

// formatValidationError converts a validator.FieldError to a human-readable message.
func formatValidationError(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Must be a valid email address"
	case "min":
		return "Value is too short or small (minimum: " + err.Param() + ")"
	case "max":
		return "Value is too long or large (maximum: " + err.Param() + ")"
	case "gt":
		return "Must be greater than " + err.Param()
	case "gte":
		return "Must be greater than or equal to " + err.Param()
	case "oneof":
		return "Must be one of: " + err.Param()
	case "uuid":
		return "Must be a valid UUID"
	default:
		return "Validation failed for tag: " + err.Tag()
	}
}
