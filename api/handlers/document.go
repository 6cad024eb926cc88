package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/relokit/vault/api/middleware"
	"github.com/relokit/vault/internal/models"
	"github.com/relokit/vault/internal/service/document"
	"github.com/relokit/vault/internal/service/reminder"
	"github.com/relokit/vault/pkg/logger"
)

type DocumentHandler struct {
	service   document.Service
	scheduler *reminder.Scheduler
	logger    logger.Logger
}

func NewDocumentHandler(service document.Service, scheduler *reminder.Scheduler, log logger.Logger) *DocumentHandler {
	return &DocumentHandler{
		service:   service,
		scheduler: scheduler,
		logger:    log,
	}
}

// List returns the caller's non-deleted documents.
func (h *DocumentHandler) List(c *gin.Context) {
	docs, err := h.service.List(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"documents": docs})
}

// Upload stores a multipart file and creates its vault row.
func (h *DocumentHandler) Upload(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		badRequest(c, "invalid file upload")
		return
	}
	defer file.Close()

	doc, err := h.service.Upload(c.Request.Context(), middleware.UserID(c), file, header)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, doc)
}

// Download streams one document's bytes back to the caller.
func (h *DocumentHandler) Download(c *gin.Context) {
	doc, rc, err := h.service.Download(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	defer rc.Close()

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.FileName))
	c.DataFromReader(http.StatusOK, doc.SizeBytes, doc.MimeType, rc, nil)
}

// Delete soft-deletes a document.
func (h *DocumentHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), middleware.UserID(c), c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "document deleted"})
}

// ClassifyRequest carries the upstream extraction result for one document.
// Field values may be null; only non-empty strings feed the deadline
// resolver.
type ClassifyRequest struct {
	DocumentType models.DocumentType `json:"documentType" binding:"required"`
	Fields       map[string]*string  `json:"fields"`
}

// ClassifyResponse reports what the scheduler did with the classification.
type ClassifyResponse struct {
	Document *models.Document   `json:"document"`
	Result   reminder.Result    `json:"result"`
	Deadline *reminder.Deadline `json:"deadline,omitempty"`
}

// Classify persists the document type and extracted fields, then schedules
// the reminder ladder for the resolved deadline.
func (h *DocumentHandler) Classify(c *gin.Context) {
	var req ClassifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid classification payload")
		return
	}

	stored := make(map[string]interface{}, len(req.Fields))
	fields := make(map[string]string, len(req.Fields))
	for name, value := range req.Fields {
		if value == nil {
			stored[name] = nil
			continue
		}
		stored[name] = *value
		fields[name] = *value
	}

	userID := middleware.UserID(c)
	doc, err := h.service.Classify(c.Request.Context(), userID, c.Param("id"), req.DocumentType, stored)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	result, deadline := h.scheduler.Schedule(c.Request.Context(), doc, req.DocumentType, fields)
	c.JSON(http.StatusOK, ClassifyResponse{
		Document: doc,
		Result:   result,
		Deadline: deadline,
	})
}
