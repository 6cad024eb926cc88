package handlers

import (
	"archive/zip"
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relokit/vault/internal/models"
	"github.com/relokit/vault/internal/service/export"
	"github.com/relokit/vault/pkg/logger"
)

type stubDocumentStore struct {
	docs map[string]models.Document
}

func (s *stubDocumentStore) DocumentsByIDs(ctx context.Context, userID string, ids []string) ([]models.Document, error) {
	var out []models.Document
	for _, id := range ids {
		if doc, ok := s.docs[id]; ok && doc.UserID == userID {
			out = append(out, doc)
		}
	}
	return out, nil
}

type stubObjectStore struct {
	objects map[string]string
}

func (s *stubObjectStore) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	data, ok := s.objects[key]
	if !ok {
		return nil, io.ErrUnexpectedEOF
	}
	return io.NopCloser(strings.NewReader(data)), nil
}

func newExportRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	docs := &stubDocumentStore{docs: map[string]models.Document{
		"doc-1": {
			ID:          "doc-1",
			UserID:      testUserID,
			FileName:    "passport.pdf",
			StoragePath: "user-1/doc-1.pdf",
			UpdatedAt:   time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
		},
	}}
	objects := &stubObjectStore{objects: map[string]string{
		"user-1/doc-1.pdf": "%PDF-1.4 passport",
	}}
	svc := export.NewService(docs, objects, logger.NewTestLogger(),
		export.WithClock(func() time.Time {
			return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		}))
	h := NewExportHandler(svc, logger.NewTestLogger())

	r := gin.New()
	r.Use(fakeAuth)
	r.POST("/export", h.Export)
	return r
}

func TestExportMissingDocumentIDs(t *testing.T) {
	r := newExportRouter()

	w := doJSON(t, r, http.MethodPost, "/export", map[string]interface{}{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPost, "/export",
		map[string]interface{}{"documentIds": []string{}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExportNoDocumentsFound(t *testing.T) {
	r := newExportRouter()
	w := doJSON(t, r, http.MethodPost, "/export",
		map[string]interface{}{"documentIds": []string{"unknown"}})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "no documents found")
}

func TestExportStreamsZip(t *testing.T) {
	r := newExportRouter()
	w := doJSON(t, r, http.MethodPost, "/export",
		map[string]interface{}{"documentIds": []string{"doc-1"}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/zip", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="documents-2025-06-01.zip"`,
		w.Header().Get("Content-Disposition"))

	zr, err := zip.NewReader(bytes.NewReader(w.Body.Bytes()), int64(w.Body.Len()))
	require.NoError(t, err)
	require.Len(t, zr.File, 1)
	assert.Equal(t, "passport.pdf", zr.File[0].Name)

	rc, err := zr.File[0].Open()
	require.NoError(t, err)
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 passport", string(data))
}
