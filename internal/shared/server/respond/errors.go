package respond

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hireup-backend/internal/shared/apperr"
	"hireup-backend/internal/shared/telemetry"
)

// ErrorBody defines the standardized error object.
type ErrorBody struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// ErrorResponse wraps the error body.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// Error sends a standardized error response.
func Error(c *gin.Context, status int, code, message string, details interface{}) {
	fields := map[string]any{
		"status":     status,
		"code":       code,
		"message":    message,
		"path":       c.Request.URL.Path,
		"method":     c.Request.Method,
		"request_id": c.GetString("requestId"),
	}
	if email := c.GetString("accountEmail"); email != "" {
		fields["account_email"] = email
	}
	if role := c.GetString("accountRole"); role != "" {
		fields["account_role"] = role
	}
	telemetry.Error("http.error", fields)

	c.AbortWithStatusJSON(status, ErrorResponse{
		Error: ErrorBody{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// AppError maps a coded domain error onto the transport. Uncoded errors
// surface as 500 without leaking internals.
func AppError(c *gin.Context, err error) {
	if coded := apperr.From(err); coded != nil {
		Error(c, coded.Status(), coded.Code, coded.Message, nil)
		return
	}
	Error(c, http.StatusInternalServerError, "internal_error", "internal server error", nil)
}
