package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/relokit/vault/api/middleware"
	"github.com/relokit/vault/internal/service/export"
	"github.com/relokit/vault/pkg/logger"
)

type ExportHandler struct {
	service *export.Service
	logger  logger.Logger
}

func NewExportHandler(service *export.Service, log logger.Logger) *ExportHandler {
	return &ExportHandler{
		service: service,
		logger:  log,
	}
}

// ExportRequest names the documents to bundle, in the order they should
// appear in the archive.
type ExportRequest struct {
	DocumentIDs []string `json:"documentIds" binding:"required,min=1"`
}

// Export streams a zip of the requested documents. Errors can only be
// reported as JSON before the first body byte; once streaming has begun the
// only recourse for a structural failure is aborting the connection, which
// leaves the client with a truncated archive it cannot open.
func (h *ExportHandler) Export(c *gin.Context) {
	var req ExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "documentIds is required")
		return
	}

	userID := middleware.UserID(c)
	job, err := h.service.Prepare(c.Request.Context(), userID, req.DocumentIDs)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	archiveName := h.service.Filename()
	c.Header("Content-Type", "application/zip")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", archiveName))
	c.Status(http.StatusOK)

	if err := job.Stream(c.Request.Context(), c.Writer); err != nil {
		h.logger.Error("Export stream aborted",
			logger.String("userId", userID),
			logger.Int("documents", job.Count()),
			logger.Error(err),
		)
		c.Abort()
		return
	}

	h.logger.Info("Export completed",
		logger.String("userId", userID),
		logger.String("archive", archiveName),
		logger.Int("documents", job.Count()),
	)
}
