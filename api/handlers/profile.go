package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/relokit/vault/api/middleware"
	"github.com/relokit/vault/internal/models"
	"github.com/relokit/vault/internal/store"
	"github.com/relokit/vault/pkg/logger"
)

type ProfileHandler struct {
	profiles store.ProfileStore
	logger   logger.Logger
}

func NewProfileHandler(profiles store.ProfileStore, log logger.Logger) *ProfileHandler {
	return &ProfileHandler{
		profiles: profiles,
		logger:   log,
	}
}

// Get returns the caller's settings.
func (h *ProfileHandler) Get(c *gin.Context) {
	profile, err := h.profiles.ProfileByUserID(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// UpdateProfileRequest is the settings payload.
type UpdateProfileRequest struct {
	Email             string `json:"email" binding:"required,email"`
	FullName          string `json:"fullName"`
	Locale            string `json:"locale"`
	RemindersDisabled bool   `json:"remindersDisabled"`
}

// Update upserts the caller's settings.
func (h *ProfileHandler) Update(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "a valid email is required")
		return
	}

	profile := &models.Profile{
		UserID:            middleware.UserID(c),
		Email:             req.Email,
		FullName:          req.FullName,
		Locale:            req.Locale,
		RemindersDisabled: req.RemindersDisabled,
	}
	if err := h.profiles.UpsertProfile(c.Request.Context(), profile); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}
