package worker

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relokit/vault/internal/models"
	"github.com/relokit/vault/pkg/logger"
	"github.com/relokit/vault/pkg/queue"
)

type fakeWorkerStore struct {
	due         []models.Reminder
	statuses    map[string]models.ReminderStatus
	profiles    map[string]*models.Profile
	docs        map[string]*models.Document
	purge       []models.Document
	hardDeleted []string
	inUse       map[string]bool
}

func (f *fakeWorkerStore) WakeSnoozed(ctx context.Context, now time.Time) (int64, error) {
	return 0, nil
}

func (f *fakeWorkerStore) DueReminders(ctx context.Context, now time.Time, limit int) ([]models.Reminder, error) {
	return f.due, nil
}

func (f *fakeWorkerStore) MarkReminderStatus(ctx context.Context, id string, status models.ReminderStatus) error {
	f.statuses[id] = status
	return nil
}

func (f *fakeWorkerStore) ProfileByUserID(ctx context.Context, userID string) (*models.Profile, error) {
	profile, ok := f.profiles[userID]
	if !ok {
		return nil, errors.New("profile not found")
	}
	return profile, nil
}

func (f *fakeWorkerStore) DocumentByID(ctx context.Context, userID, id string) (*models.Document, error) {
	doc, ok := f.docs[id]
	if !ok {
		return nil, errors.New("document not found")
	}
	return doc, nil
}

func (f *fakeWorkerStore) PurgeCandidates(ctx context.Context, threshold time.Time) ([]models.Document, error) {
	return f.purge, nil
}

func (f *fakeWorkerStore) HardDeleteDocument(ctx context.Context, id string) error {
	f.hardDeleted = append(f.hardDeleted, id)
	return nil
}

func (f *fakeWorkerStore) StoragePathInUse(ctx context.Context, key string) (bool, error) {
	return f.inUse[key], nil
}

type fakeWorkerObjects struct {
	modified map[string]time.Time
	deleted  []string
}

func (f *fakeWorkerObjects) Store(ctx context.Context, reader io.Reader, key string, size int64, contentType string) (string, error) {
	return key, nil
}

func (f *fakeWorkerObjects) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeWorkerObjects) Delete(ctx context.Context, key string) error {
	f.deleted = append(f.deleted, key)
	delete(f.modified, key)
	return nil
}

func (f *fakeWorkerObjects) CleanupBefore(ctx context.Context, threshold time.Time, referenced func(key string) bool) error {
	for key, mod := range f.modified {
		if !mod.Before(threshold) || referenced(key) {
			continue
		}
		f.Delete(ctx, key)
	}
	return nil
}

type fakeWorkerMailer struct {
	sentTo  []string
	failFor map[string]bool
}

func (f *fakeWorkerMailer) Send(ctx context.Context, to, subject, body string) error {
	if f.failFor[to] {
		return errors.New("smtp unavailable")
	}
	f.sentTo = append(f.sentTo, to)
	return nil
}

var workerNow = time.Date(2025, 12, 1, 8, 0, 0, 0, time.UTC)

func newTestWorker(st *fakeWorkerStore, objects *fakeWorkerObjects, m *fakeWorkerMailer) *ReminderWorker {
	return &ReminderWorker{
		BaseWorker: BaseWorker{
			mux:    asynq.NewServeMux(),
			logger: logger.NewTestLogger(),
		},
		store:     st,
		objects:   objects,
		mailer:    m,
		now:       func() time.Time { return workerNow },
		retention: 30 * 24 * time.Hour,
		batchMax:  100,
	}
}

func dispatchStore() *fakeWorkerStore {
	return &fakeWorkerStore{
		due: []models.Reminder{
			{ID: "rem-1", DocumentID: "doc-1", UserID: "user-1", ReminderType: models.Reminder7Days, Status: models.ReminderPending},
			{ID: "rem-2", DocumentID: "doc-2", UserID: "user-2", ReminderType: models.Reminder7Days, Status: models.ReminderPending},
		},
		statuses: map[string]models.ReminderStatus{},
		profiles: map[string]*models.Profile{
			"user-1": {UserID: "user-1", Email: "anna@example.com"},
			"user-2": {UserID: "user-2", Email: "ben@example.com", RemindersDisabled: true},
		},
		docs: map[string]*models.Document{
			"doc-1": {ID: "doc-1", UserID: "user-1", FileName: "passport.pdf"},
			"doc-2": {ID: "doc-2", UserID: "user-2", FileName: "permit.pdf"},
		},
		inUse: map[string]bool{},
	}
}

func TestDispatchOptedOutIsCancelledNotSent(t *testing.T) {
	st := dispatchStore()
	m := &fakeWorkerMailer{}
	w := newTestWorker(st, &fakeWorkerObjects{modified: map[string]time.Time{}}, m)

	task := asynq.NewTask(queue.TaskTypeReminderDispatch, nil)
	require.NoError(t, w.handleReminderDispatch(context.Background(), task))

	assert.Equal(t, []string{"anna@example.com"}, m.sentTo)
	assert.Equal(t, models.ReminderSent, st.statuses["rem-1"])
	assert.Equal(t, models.ReminderCancelled, st.statuses["rem-2"])
}

func TestDispatchDeliveryFailureLeavesPending(t *testing.T) {
	st := dispatchStore()
	m := &fakeWorkerMailer{failFor: map[string]bool{"anna@example.com": true}}
	w := newTestWorker(st, &fakeWorkerObjects{modified: map[string]time.Time{}}, m)

	task := asynq.NewTask(queue.TaskTypeReminderDispatch, nil)
	require.NoError(t, w.handleReminderDispatch(context.Background(), task))

	_, marked := st.statuses["rem-1"]
	assert.False(t, marked, "failed delivery should stay pending for the next tick")
}

func TestCleanupPurgesRowsAndSweepsOrphans(t *testing.T) {
	old := workerNow.Add(-60 * 24 * time.Hour)
	st := &fakeWorkerStore{
		statuses: map[string]models.ReminderStatus{},
		purge: []models.Document{
			{ID: "doc-gone", UserID: "user-1", StoragePath: "user-1/gone.pdf"},
		},
		inUse: map[string]bool{
			"user-1/live.pdf": true,
		},
	}
	objects := &fakeWorkerObjects{modified: map[string]time.Time{
		"user-1/gone.pdf":   old,
		"user-1/orphan.pdf": old,
		"user-1/live.pdf":   old,
		"user-1/fresh.pdf":  workerNow.Add(-time.Hour),
	}}
	w := newTestWorker(st, objects, &fakeWorkerMailer{})

	task := asynq.NewTask(queue.TaskTypeStorageCleanup, nil)
	require.NoError(t, w.handleStorageCleanup(context.Background(), task))

	assert.Equal(t, []string{"doc-gone"}, st.hardDeleted)
	assert.ElementsMatch(t, []string{"user-1/gone.pdf", "user-1/orphan.pdf"}, objects.deleted)
	assert.Contains(t, objects.modified, "user-1/live.pdf")
	assert.Contains(t, objects.modified, "user-1/fresh.pdf")
}
