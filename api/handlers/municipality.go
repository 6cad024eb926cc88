package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/relokit/vault/internal/service/municipality"
	"github.com/relokit/vault/pkg/logger"
)

type MunicipalityHandler struct {
	service *municipality.Service
	logger  logger.Logger
}

func NewMunicipalityHandler(service *municipality.Service, log logger.Logger) *MunicipalityHandler {
	return &MunicipalityHandler{
		service: service,
		logger:  log,
	}
}

// Get resolves one municipality by its official code.
func (h *MunicipalityHandler) Get(c *gin.Context) {
	m, err := h.service.ByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, m)
}
