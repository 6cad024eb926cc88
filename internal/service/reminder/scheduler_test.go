package reminder

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relokit/vault/internal/models"
	"github.com/relokit/vault/pkg/logger"
)

type fakeReminderStore struct {
	created [][]models.Reminder
	err     error
}

func (f *fakeReminderStore) CreateReminders(ctx context.Context, reminders []models.Reminder) error {
	if f.err != nil {
		return f.err
	}
	f.created = append(f.created, reminders)
	return nil
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func testDocument() *models.Document {
	return &models.Document{
		ID:     "doc-1",
		UserID: "user-1",
	}
}

func TestScheduleFullLadder(t *testing.T) {
	now := time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)
	store := &fakeReminderStore{}
	s := NewScheduler(store, logger.NewTestLogger(), WithClock(fixedClock(now)))

	res, deadline := s.Schedule(context.Background(), testDocument(),
		models.DocTypePassport, map[string]string{"expiry_date": "2026-01-01"})

	assert.Equal(t, Result{Created: 4}, res)
	require.NotNil(t, deadline)
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), deadline.Date)

	require.Len(t, store.created, 1)
	batch := store.created[0]
	require.Len(t, batch, 4)

	wantDates := map[models.ReminderType]time.Time{
		models.Reminder30Days: time.Date(2025, 12, 2, 0, 0, 0, 0, time.UTC),
		models.Reminder14Days: time.Date(2025, 12, 18, 0, 0, 0, 0, time.UTC),
		models.Reminder7Days:  time.Date(2025, 12, 25, 0, 0, 0, 0, time.UTC),
		models.Reminder1Day:   time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
	}
	for _, r := range batch {
		assert.Equal(t, wantDates[r.ReminderType], r.ReminderDate, "type %s", r.ReminderType)
		assert.Equal(t, models.ReminderPending, r.Status)
		assert.Equal(t, "doc-1", r.DocumentID)
		assert.Equal(t, "user-1", r.UserID)
		assert.Equal(t, deadline.Date, r.DeadlineDate)
		assert.NotEmpty(t, r.ID)
	}
}

func TestSchedulePastRungsDropped(t *testing.T) {
	// Deadline five days out: only the 1_day rung is still in the future.
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store := &fakeReminderStore{}
	s := NewScheduler(store, logger.NewTestLogger(), WithClock(fixedClock(now)))

	deadlineRaw := now.AddDate(0, 0, 5).Format("2006-01-02")
	res, _ := s.Schedule(context.Background(), testDocument(),
		models.DocTypePassport, map[string]string{"expiry_date": deadlineRaw})

	assert.Equal(t, Result{Created: 1}, res)
	require.Len(t, store.created, 1)
	require.Len(t, store.created[0], 1)
	assert.Equal(t, models.Reminder1Day, store.created[0][0].ReminderType)
}

func TestSchedulePastDeadline(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	store := &fakeReminderStore{}
	s := NewScheduler(store, logger.NewTestLogger(), WithClock(fixedClock(now)))

	res, deadline := s.Schedule(context.Background(), testDocument(),
		models.DocTypePassport, map[string]string{"expiry_date": "2024-01-01"})

	assert.Equal(t, Result{Created: 0, Errors: 0}, res)
	require.NotNil(t, deadline)
	assert.Empty(t, store.created)
}

func TestScheduleDeadlineExactlyNow(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	store := &fakeReminderStore{}
	s := NewScheduler(store, logger.NewTestLogger(), WithClock(fixedClock(now)))

	res, _ := s.Schedule(context.Background(), testDocument(),
		models.DocTypePassport, map[string]string{"expiry_date": "2025-06-01"})

	assert.Equal(t, Result{}, res)
	assert.Empty(t, store.created)
}

func TestScheduleNoDeadline(t *testing.T) {
	store := &fakeReminderStore{}
	s := NewScheduler(store, logger.NewTestLogger())

	res, deadline := s.Schedule(context.Background(), testDocument(),
		models.DocTypeOther, map[string]string{"expiry_date": "2030-01-01"})

	assert.Equal(t, Result{}, res)
	assert.Nil(t, deadline)
	assert.Empty(t, store.created)
}

func TestSchedulePersistenceFailure(t *testing.T) {
	now := time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)
	store := &fakeReminderStore{err: errors.New("connection refused")}
	s := NewScheduler(store, logger.NewTestLogger(), WithClock(fixedClock(now)))

	res, _ := s.Schedule(context.Background(), testDocument(),
		models.DocTypePassport, map[string]string{"expiry_date": "2026-01-01"})

	// The whole batch fails as one unit and nothing counts as created.
	assert.Equal(t, Result{Created: 0, Errors: 4}, res)
}
