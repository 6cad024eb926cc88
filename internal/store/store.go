package store

import (
	"context"
	"errors"
	"time"

	"github.com/relokit/vault/internal/models"
)

// ErrNotFound is returned when a row is absent or not owned by the caller.
var ErrNotFound = errors.New("record not found")

// DocumentStore covers the vault document rows.
type DocumentStore interface {
	CreateDocument(ctx context.Context, doc *models.Document) error
	DocumentByID(ctx context.Context, userID, id string) (*models.Document, error)
	// DocumentsByIDs resolves ids to documents owned by userID and not
	// soft-deleted. Unknown or foreign ids are silently absent from the result.
	DocumentsByIDs(ctx context.Context, userID string, ids []string) ([]models.Document, error)
	ListDocuments(ctx context.Context, userID string) ([]models.Document, error)
	UpdateClassification(ctx context.Context, userID, id string, docType models.DocumentType, fields map[string]interface{}) (*models.Document, error)
	SoftDeleteDocument(ctx context.Context, userID, id string) error
	// PurgeCandidates returns soft-deleted documents older than threshold.
	PurgeCandidates(ctx context.Context, threshold time.Time) ([]models.Document, error)
	HardDeleteDocument(ctx context.Context, id string) error
	// StoragePathInUse reports whether any row, soft-deleted included,
	// still references the object key.
	StoragePathInUse(ctx context.Context, key string) (bool, error)
}

// ReminderStore covers reminder rows and their lifecycle transitions.
type ReminderStore interface {
	// CreateReminders inserts the batch in one transaction, all-or-nothing.
	CreateReminders(ctx context.Context, reminders []models.Reminder) error
	ListReminders(ctx context.Context, userID string) ([]models.Reminder, error)
	ReminderByID(ctx context.Context, userID, id string) (*models.Reminder, error)
	SnoozeReminder(ctx context.Context, userID, id string, until time.Time) (*models.Reminder, error)
	CompleteReminder(ctx context.Context, userID, id string) (*models.Reminder, error)
	// DueReminders returns pending reminders whose reminder date has passed.
	DueReminders(ctx context.Context, now time.Time, limit int) ([]models.Reminder, error)
	// WakeSnoozed flips snoozed reminders back to pending once their
	// snoozed_until has passed. Returns the number woken.
	WakeSnoozed(ctx context.Context, now time.Time) (int64, error)
	// MarkReminderStatus records the dispatch outcome for one reminder.
	MarkReminderStatus(ctx context.Context, id string, status models.ReminderStatus) error
}

// ProfileStore covers user settings and municipality reference data.
type ProfileStore interface {
	ProfileByUserID(ctx context.Context, userID string) (*models.Profile, error)
	UpsertProfile(ctx context.Context, profile *models.Profile) error
	MunicipalityByCode(ctx context.Context, code string) (*models.Municipality, error)
}

// Store is the full persistence surface.
type Store interface {
	DocumentStore
	ReminderStore
	ProfileStore
}
