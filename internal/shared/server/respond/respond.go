// Package respond owns the two wire shapes the landing page parses: a
// success payload and a flat error envelope. Handlers never call gin's
// rendering directly, so the shapes stay in one place.
package respond

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"recruitment-backend/internal/shared/telemetry"
)

// ErrorResponse is a user-facing error plus an optional detail string.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// JSON writes payload with the given status.
func JSON(c *gin.Context, status int, payload any) {
	c.JSON(status, payload)
}

// OK writes payload with 200.
func OK(c *gin.Context, payload any) {
	JSON(c, http.StatusOK, payload)
}

// Error sends a standardized error response and logs the server-side detail.
func Error(c *gin.Context, status int, message, details string) {
	fields := map[string]any{
		"status":     status,
		"message":    message,
		"path":       c.Request.URL.Path,
		"method":     c.Request.Method,
		"request_id": c.GetString("requestId"),
	}
	if details != "" {
		fields["details"] = details
	}
	telemetry.Error("http.error", fields)

	c.AbortWithStatusJSON(status, ErrorResponse{
		Error:   message,
		Details: details,
	})
}
