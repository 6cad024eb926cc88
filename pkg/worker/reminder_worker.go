package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"github.com/relokit/vault/internal/models"
	"github.com/relokit/vault/pkg/logger"
	"github.com/relokit/vault/pkg/mailer"
	"github.com/relokit/vault/pkg/queue"
	"github.com/relokit/vault/pkg/storage"
)

// Store is the persistence slice the worker needs.
type Store interface {
	WakeSnoozed(ctx context.Context, now time.Time) (int64, error)
	DueReminders(ctx context.Context, now time.Time, limit int) ([]models.Reminder, error)
	MarkReminderStatus(ctx context.Context, id string, status models.ReminderStatus) error
	ProfileByUserID(ctx context.Context, userID string) (*models.Profile, error)
	DocumentByID(ctx context.Context, userID, id string) (*models.Document, error)
	PurgeCandidates(ctx context.Context, threshold time.Time) ([]models.Document, error)
	HardDeleteDocument(ctx context.Context, id string) error
	StoragePathInUse(ctx context.Context, key string) (bool, error)
}

// ReminderWorker delivers due reminders by mail and purges soft-deleted
// documents past the retention window.
type ReminderWorker struct {
	BaseWorker
	store     Store
	objects   storage.ObjectStore
	mailer    mailer.Mailer
	now       func() time.Time
	retention time.Duration
	batchMax  int
}

func NewReminderWorker(cfg *Config, st Store, objects storage.ObjectStore, m mailer.Mailer, log logger.Logger, retention time.Duration, batchMax int) (*ReminderWorker, error) {
	server := asynq.NewServer(
		queue.RedisConnOpt(),
		asynq.Config{
			Concurrency: cfg.Concurrency,
			Queues:      cfg.Queues,
			RetryDelayFunc: func(n int, err error, task *asynq.Task) time.Duration {
				return time.Duration(n) * time.Minute
			},
		},
	)

	w := &ReminderWorker{
		BaseWorker: BaseWorker{
			server: server,
			mux:    asynq.NewServeMux(),
			logger: log,
		},
		store:     st,
		objects:   objects,
		mailer:    m,
		now:       time.Now,
		retention: retention,
		batchMax:  batchMax,
	}
	w.registerHandlers()
	return w, nil
}

func (w *ReminderWorker) registerHandlers() {
	w.mux.HandleFunc(queue.TaskTypeReminderDispatch, w.handleReminderDispatch)
	w.mux.HandleFunc(queue.TaskTypeStorageCleanup, w.handleStorageCleanup)
}

// handleReminderDispatch wakes expired snoozes, then mails every pending
// reminder whose trigger time has passed. Per-reminder failures are logged
// and left pending so the next tick retries them.
func (w *ReminderWorker) handleReminderDispatch(ctx context.Context, t *asynq.Task) error {
	now := w.now()

	woken, err := w.store.WakeSnoozed(ctx, now)
	if err != nil {
		return fmt.Errorf("wake snoozed reminders: %w", err)
	}
	if woken > 0 {
		w.logger.Info("Woke snoozed reminders", logger.Int64("count", woken))
	}

	due, err := w.store.DueReminders(ctx, now, w.batchMax)
	if err != nil {
		return fmt.Errorf("load due reminders: %w", err)
	}

	sent, cancelled := 0, 0
	for _, reminder := range due {
		delivered, err := w.deliver(ctx, reminder)
		if err != nil {
			// Stays pending; the next tick retries.
			w.logger.Error("Failed to deliver reminder",
				logger.String("reminderId", reminder.ID),
				logger.String("userId", reminder.UserID),
				logger.Error(err),
			)
			continue
		}

		status := models.ReminderSent
		if !delivered {
			status = models.ReminderCancelled
		}
		if err := w.store.MarkReminderStatus(ctx, reminder.ID, status); err != nil {
			w.logger.Error("Failed to record reminder status",
				logger.String("reminderId", reminder.ID),
				logger.String("status", string(status)),
				logger.Error(err),
			)
			continue
		}
		if delivered {
			sent++
		} else {
			cancelled++
		}
	}

	w.logger.Info("Reminder dispatch finished",
		logger.Int("due", len(due)),
		logger.Int("sent", sent),
		logger.Int("cancelled", cancelled),
	)
	return nil
}

// deliver mails one reminder. Opted-out profiles report delivered=false so
// the caller can cancel the reminder instead of marking it sent.
func (w *ReminderWorker) deliver(ctx context.Context, reminder models.Reminder) (bool, error) {
	profile, err := w.store.ProfileByUserID(ctx, reminder.UserID)
	if err != nil {
		return false, fmt.Errorf("load profile: %w", err)
	}
	if profile.RemindersDisabled {
		w.logger.Debug("Reminder mail disabled for user",
			logger.String("userId", reminder.UserID),
		)
		return false, nil
	}

	docName := "one of your documents"
	if doc, err := w.store.DocumentByID(ctx, reminder.UserID, reminder.DocumentID); err == nil {
		docName = doc.FileName
	}

	subject, body := reminderMail(reminder, docName)
	if err := w.mailer.Send(ctx, profile.Email, subject, body); err != nil {
		return false, err
	}
	return true, nil
}

func reminderMail(reminder models.Reminder, docName string) (subject, body string) {
	deadline := reminder.DeadlineDate.Format("2 January 2006")
	switch reminder.ReminderType {
	case models.Reminder1Day:
		subject = fmt.Sprintf("Tomorrow: deadline for %s", docName)
	case models.Reminder7Days:
		subject = fmt.Sprintf("One week left: deadline for %s", docName)
	default:
		subject = fmt.Sprintf("Upcoming deadline for %s", docName)
	}
	body = fmt.Sprintf(
		"Hi,\n\nThe deadline for %q is on %s.\n\nOpen your vault to review the document or snooze this reminder.\n\n— Relokit",
		docName, deadline,
	)
	return subject, body
}

// handleStorageCleanup removes bytes and rows for documents soft-deleted
// longer ago than the retention window.
func (w *ReminderWorker) handleStorageCleanup(ctx context.Context, t *asynq.Task) error {
	threshold := w.now().Add(-w.retention)
	docs, err := w.store.PurgeCandidates(ctx, threshold)
	if err != nil {
		return fmt.Errorf("load purge candidates: %w", err)
	}

	purged := 0
	for _, doc := range docs {
		if err := w.objects.Delete(ctx, doc.StoragePath); err != nil {
			w.logger.Warn("Failed to delete object for purged document",
				logger.String("documentId", doc.ID),
				logger.String("storagePath", doc.StoragePath),
				logger.Error(err),
			)
			continue
		}
		if err := w.store.HardDeleteDocument(ctx, doc.ID); err != nil {
			w.logger.Error("Failed to hard-delete document row",
				logger.String("documentId", doc.ID),
				logger.Error(err),
			)
			continue
		}
		purged++
	}

	// Safety net for objects no row references anymore: interrupted upload
	// rollbacks and purge passes whose object delete failed.
	err = w.objects.CleanupBefore(ctx, threshold, func(key string) bool {
		inUse, err := w.store.StoragePathInUse(ctx, key)
		if err != nil {
			w.logger.Warn("Failed to check object reference",
				logger.String("key", key),
				logger.Error(err),
			)
			return true
		}
		return inUse
	})
	if err != nil {
		w.logger.Warn("Orphan object sweep failed", logger.Error(err))
	}

	if len(docs) > 0 {
		w.logger.Info("Storage cleanup finished",
			logger.Int("candidates", len(docs)),
			logger.Int("purged", purged),
		)
	}
	return nil
}

func (w *ReminderWorker) Start(ctx context.Context) error {
	go func() {
		if err := w.server.Run(w.mux); err != nil {
			w.logger.Error("Worker server stopped", logger.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		w.Stop()
	}()

	return nil
}
