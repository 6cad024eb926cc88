package reminder

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/relokit/vault/internal/models"
	"github.com/relokit/vault/pkg/logger"
)

// ReminderStore is the persistence slice the scheduler needs.
type ReminderStore interface {
	CreateReminders(ctx context.Context, reminders []models.Reminder) error
}

// ladder is the fixed set of offsets derived from one deadline, in days
// before it.
var ladder = []struct {
	Type models.ReminderType
	Days int
}{
	{models.Reminder30Days, 30},
	{models.Reminder14Days, 14},
	{models.Reminder7Days, 7},
	{models.Reminder1Day, 1},
}

// Result counts the outcome of one scheduling run. The scheduler never
// returns an error to its caller; every failure degrades to these counts.
type Result struct {
	Created int `json:"created"`
	Errors  int `json:"errors"`
}

// Scheduler materializes the reminder ladder for resolved deadlines.
type Scheduler struct {
	store  ReminderStore
	logger logger.Logger
	now    func() time.Time
}

// SchedulerOption configures a Scheduler.
type SchedulerOption func(*Scheduler)

// WithClock overrides the wall clock. Tests use this to pin "now".
func WithClock(now func() time.Time) SchedulerOption {
	return func(s *Scheduler) { s.now = now }
}

func NewScheduler(store ReminderStore, log logger.Logger, opts ...SchedulerOption) *Scheduler {
	s := &Scheduler{
		store:  store,
		logger: log,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Schedule resolves the deadline for the classified document and persists
// the surviving ladder entries in one batch. Entries whose trigger time has
// already passed are dropped, not retro-fired; a deadline that is not
// strictly in the future skips the whole ladder.
func (s *Scheduler) Schedule(ctx context.Context, doc *models.Document, docType models.DocumentType, fields map[string]string) (Result, *Deadline) {
	deadline, ok := ResolveDeadline(docType, fields)
	if !ok {
		s.logger.Info("No deadline found for document",
			logger.String("documentId", doc.ID),
			logger.String("documentType", string(docType)),
		)
		return Result{}, nil
	}

	now := s.now()
	if !deadline.Date.After(now) {
		s.logger.Info("Deadline already passed, skipping reminders",
			logger.String("documentId", doc.ID),
			logger.Time("deadline", deadline.Date),
		)
		return Result{}, &deadline
	}

	reminders := make([]models.Reminder, 0, len(ladder))
	for _, rung := range ladder {
		reminderDate := deadline.Date.AddDate(0, 0, -rung.Days)
		if !reminderDate.After(now) {
			continue
		}
		reminders = append(reminders, models.Reminder{
			ID:           uuid.New().String(),
			DocumentID:   doc.ID,
			UserID:       doc.UserID,
			ReminderType: rung.Type,
			ReminderDate: reminderDate,
			DeadlineDate: deadline.Date,
			Status:       models.ReminderPending,
		})
	}
	if len(reminders) == 0 {
		return Result{}, &deadline
	}

	if err := s.store.CreateReminders(ctx, reminders); err != nil {
		s.logger.Error("Failed to persist reminder batch",
			logger.String("documentId", doc.ID),
			logger.Int("batchSize", len(reminders)),
			logger.Error(err),
		)
		return Result{Errors: len(reminders)}, &deadline
	}

	s.logger.Info("Scheduled reminders",
		logger.String("documentId", doc.ID),
		logger.String("sourceField", deadline.SourceField),
		logger.Int("created", len(reminders)),
	)
	return Result{Created: len(reminders)}, &deadline
}
