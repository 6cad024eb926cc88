package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/relokit/vault/api/middleware"
	"github.com/relokit/vault/internal/service/reminder"
	"github.com/relokit/vault/pkg/logger"
)

type ReminderHandler struct {
	actions *reminder.Actions
	logger  logger.Logger
}

func NewReminderHandler(actions *reminder.Actions, log logger.Logger) *ReminderHandler {
	return &ReminderHandler{
		actions: actions,
		logger:  log,
	}
}

// List returns the caller's reminders ordered by trigger date.
func (h *ReminderHandler) List(c *gin.Context) {
	reminders, err := h.actions.List(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reminders": reminders})
}

// ActionRequest is the snooze/complete payload. Days only applies to
// snooze and must fall in [1,30].
type ActionRequest struct {
	Action string `json:"action" binding:"required,oneof=snooze complete"`
	Days   int    `json:"days"`
}

// Action applies a user action to one reminder and returns the updated row.
func (h *ReminderHandler) Action(c *gin.Context) {
	var req ActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "action must be snooze or complete")
		return
	}

	userID := middleware.UserID(c)
	id := c.Param("id")

	switch req.Action {
	case "snooze":
		updated, err := h.actions.Snooze(c.Request.Context(), userID, id, req.Days)
		if err != nil {
			respondError(c, h.logger, err)
			return
		}
		c.JSON(http.StatusOK, updated)
	case "complete":
		updated, err := h.actions.Complete(c.Request.Context(), userID, id)
		if err != nil {
			respondError(c, h.logger, err)
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}
