// Package export produces the bulk document archive: one compressed zip
// stream over the current content of every requested, owned, non-deleted
// document, assembled without holding the full archive in memory.
package export

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/klauspost/compress/flate"

	"github.com/relokit/vault/internal/models"
	"github.com/relokit/vault/internal/utils/filename"
	"github.com/relokit/vault/pkg/logger"
)

// ErrNoDocumentsFound means none of the requested ids resolved to a
// document the caller owns. Raised before any response bytes are written.
var ErrNoDocumentsFound = errors.New("no documents found")

// DocumentStore is the lookup slice the exporter needs.
type DocumentStore interface {
	DocumentsByIDs(ctx context.Context, userID string, ids []string) ([]models.Document, error)
}

// ObjectStore is the byte-fetch slice the exporter needs.
type ObjectStore interface {
	Get(ctx context.Context, key string) (io.ReadCloser, error)
}

// Service assembles bulk export archives.
type Service struct {
	store   DocumentStore
	objects ObjectStore
	logger  logger.Logger
	now     func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the wall clock used for the archive file name.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(store DocumentStore, objects ObjectStore, log logger.Logger, opts ...Option) *Service {
	s := &Service{
		store:   store,
		objects: objects,
		logger:  log,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Job is one prepared export: the resolved document list in request order.
// It is bound to a single request lifetime and never persisted.
type Job struct {
	docs []models.Document
	svc  *Service
}

// Prepare resolves the requested ids against the store, keeping only
// documents the caller owns (soft-deleted rows never come back from the
// store). Duplicated ids stay duplicated; unknown and foreign ids drop out
// silently. An empty surviving set fails here, before any stream is opened.
func (s *Service) Prepare(ctx context.Context, userID string, ids []string) (*Job, error) {
	rows, err := s.store.DocumentsByIDs(ctx, userID, ids)
	if err != nil {
		return nil, fmt.Errorf("resolve documents: %w", err)
	}
	byID := make(map[string]models.Document, len(rows))
	for _, row := range rows {
		byID[row.ID] = row
	}

	docs := make([]models.Document, 0, len(ids))
	for _, id := range ids {
		if doc, ok := byID[id]; ok {
			docs = append(docs, doc)
		}
	}
	if len(docs) == 0 {
		return nil, ErrNoDocumentsFound
	}
	return &Job{docs: docs, svc: s}, nil
}

// Filename returns the date-stamped archive name, e.g. documents-2025-12-01.zip.
func (s *Service) Filename() string {
	return fmt.Sprintf("documents-%s.zip", s.now().Format("2006-01-02"))
}

// Count returns the number of archive entries the job will attempt.
func (j *Job) Count() int {
	return len(j.docs)
}

// Stream writes the archive to w. Documents are fetched one at a time, in
// input order, so peak memory stays at one document plus the encoder buffer.
// A failed fetch skips that document with a warning and the archive stays
// valid; a zip-level write failure is structural and aborts the stream,
// since a half-written archive cannot be patched up once bytes are out.
func (j *Job) Stream(ctx context.Context, w io.Writer) error {
	zw := zip.NewWriter(w)
	zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, flate.BestCompression)
	})

	log := j.svc.logger
	for _, doc := range j.docs {
		// The consumer may be gone; stop fetching and writing.
		if err := ctx.Err(); err != nil {
			return err
		}

		data, err := j.fetch(ctx, doc)
		if err != nil {
			log.Warn("Skipping document in export",
				logger.String("documentId", doc.ID),
				logger.String("storagePath", doc.StoragePath),
				logger.Error(err),
			)
			continue
		}

		header := &zip.FileHeader{
			Name:     filename.Sanitize(doc.FileName),
			Method:   zip.Deflate,
			Modified: doc.UpdatedAt,
		}
		entry, err := zw.CreateHeader(header)
		if err != nil {
			return fmt.Errorf("create archive entry: %w", err)
		}
		if _, err := entry.Write(data); err != nil {
			return fmt.Errorf("write archive entry: %w", err)
		}
		// Push the finished entry to the consumer before the next fetch.
		if err := zw.Flush(); err != nil {
			return fmt.Errorf("flush archive: %w", err)
		}
		if f, ok := w.(http.Flusher); ok {
			f.Flush()
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("finalize archive: %w", err)
	}
	return nil
}

func (j *Job) fetch(ctx context.Context, doc models.Document) ([]byte, error) {
	rc, err := j.svc.objects.Get(ctx, doc.StoragePath)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read object: %w", err)
	}
	return data, nil
}
