package document

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/relokit/vault/internal/models"
	"github.com/relokit/vault/internal/store"
	"github.com/relokit/vault/pkg/logger"
	"github.com/relokit/vault/pkg/storage"
)

// Service is the vault document surface consumed by the HTTP handlers.
type Service interface {
	Upload(ctx context.Context, userID string, file multipart.File, header *multipart.FileHeader) (*models.Document, error)
	List(ctx context.Context, userID string) ([]models.Document, error)
	Get(ctx context.Context, userID, id string) (*models.Document, error)
	Download(ctx context.Context, userID, id string) (*models.Document, io.ReadCloser, error)
	Delete(ctx context.Context, userID, id string) error
	Classify(ctx context.Context, userID, id string, docType models.DocumentType, fields map[string]interface{}) (*models.Document, error)
}

// Config bounds what the vault accepts.
type Config struct {
	MaxFileSize  int64
	AllowedTypes []string
}

type service struct {
	store   store.DocumentStore
	objects storage.ObjectStore
	logger  logger.Logger
	config  *Config
}

func NewService(st store.DocumentStore, objects storage.ObjectStore, log logger.Logger, cfg *Config) Service {
	if cfg == nil {
		cfg = &Config{
			MaxFileSize:  25 * 1024 * 1024, // 25MB
			AllowedTypes: []string{".pdf", ".doc", ".docx", ".jpg", ".jpeg", ".png"},
		}
	}
	return &service{
		store:   st,
		objects: objects,
		logger:  log,
		config:  cfg,
	}
}

func (s *service) Upload(ctx context.Context, userID string, file multipart.File, header *multipart.FileHeader) (*models.Document, error) {
	if err := s.validateFile(header); err != nil {
		return nil, err
	}

	id := uuid.New().String()
	ext := strings.ToLower(filepath.Ext(header.Filename))
	storagePath := fmt.Sprintf("%s/%s%s", userID, id, ext)
	contentType := header.Header.Get("Content-Type")

	if _, err := s.objects.Store(ctx, file, storagePath, header.Size, contentType); err != nil {
		return nil, fmt.Errorf("store document bytes: %w", err)
	}

	doc := &models.Document{
		ID:          id,
		UserID:      userID,
		FileName:    header.Filename,
		StoragePath: storagePath,
		MimeType:    contentType,
		SizeBytes:   header.Size,
	}
	if err := s.store.CreateDocument(ctx, doc); err != nil {
		// Roll the object back so the bucket doesn't collect orphans.
		if delErr := s.objects.Delete(ctx, storagePath); delErr != nil {
			s.logger.Warn("Failed to remove orphaned object",
				logger.String("storagePath", storagePath),
				logger.Error(delErr),
			)
		}
		return nil, err
	}

	s.logger.Info("Document uploaded",
		logger.String("documentId", id),
		logger.String("filename", header.Filename),
		logger.Int64("size", header.Size),
	)
	return doc, nil
}

func (s *service) List(ctx context.Context, userID string) ([]models.Document, error) {
	return s.store.ListDocuments(ctx, userID)
}

func (s *service) Get(ctx context.Context, userID, id string) (*models.Document, error) {
	return s.store.DocumentByID(ctx, userID, id)
}

func (s *service) Download(ctx context.Context, userID, id string) (*models.Document, io.ReadCloser, error) {
	doc, err := s.store.DocumentByID(ctx, userID, id)
	if err != nil {
		return nil, nil, err
	}
	rc, err := s.objects.Get(ctx, doc.StoragePath)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch document bytes: %w", err)
	}
	return doc, rc, nil
}

// Delete soft-deletes the row. Bytes stay in the bucket until the cleanup
// worker purges documents past the retention window.
func (s *service) Delete(ctx context.Context, userID, id string) error {
	return s.store.SoftDeleteDocument(ctx, userID, id)
}

// Classify persists the document type and extracted fields produced by the
// upstream extraction step. Reminder scheduling happens in the caller.
func (s *service) Classify(ctx context.Context, userID, id string, docType models.DocumentType, fields map[string]interface{}) (*models.Document, error) {
	return s.store.UpdateClassification(ctx, userID, id, docType, fields)
}

func (s *service) validateFile(header *multipart.FileHeader) error {
	if header.Size > s.config.MaxFileSize {
		return fmt.Errorf("file too large: %d bytes (limit %d)", header.Size, s.config.MaxFileSize)
	}
	ext := strings.ToLower(filepath.Ext(header.Filename))
	for _, allowed := range s.config.AllowedTypes {
		if ext == allowed {
			return nil
		}
	}
	return fmt.Errorf("unsupported file type: %s", ext)
}
