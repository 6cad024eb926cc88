package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/relokit/vault/internal/service/export"
	"github.com/relokit/vault/internal/service/reminder"
	"github.com/relokit/vault/internal/store"
	"github.com/relokit/vault/pkg/logger"
)

// ErrorResponse is the uniform error body. Internal error text never leaks
// into it; the detail goes to the log instead.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError maps the service error taxonomy onto status codes. Unknown
// errors become a generic 500.
func respondError(c *gin.Context, log logger.Logger, err error) {
	var status int
	var message string

	switch {
	case errors.Is(err, store.ErrNotFound):
		status, message = http.StatusNotFound, "not found"
	case errors.Is(err, export.ErrNoDocumentsFound):
		status, message = http.StatusNotFound, "no documents found"
	case errors.Is(err, reminder.ErrInvalidSnooze):
		status, message = http.StatusBadRequest, "days must be between 1 and 30"
	case errors.Is(err, reminder.ErrNotActive):
		status, message = http.StatusBadRequest, "reminder is not active"
	default:
		status, message = http.StatusInternalServerError, "internal error"
	}

	if status >= http.StatusInternalServerError {
		log.Error("Request failed",
			logger.String("path", c.Request.URL.Path),
			logger.Error(err),
		)
	}
	c.JSON(status, ErrorResponse{Error: message})
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: message})
}
