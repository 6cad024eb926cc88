package reminder

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/relokit/vault/internal/models"
)

const (
	minSnoozeDays = 1
	maxSnoozeDays = 30
)

var (
	// ErrInvalidSnooze rejects snooze durations outside [1,30] days.
	ErrInvalidSnooze = errors.New("snooze days must be between 1 and 30")
	// ErrNotActive rejects actions on reminders that already left the
	// pending/snoozed part of the lifecycle.
	ErrNotActive = errors.New("reminder is not active")
)

// ActionStore is the persistence slice for user-initiated reminder actions.
type ActionStore interface {
	ListReminders(ctx context.Context, userID string) ([]models.Reminder, error)
	ReminderByID(ctx context.Context, userID, id string) (*models.Reminder, error)
	SnoozeReminder(ctx context.Context, userID, id string, until time.Time) (*models.Reminder, error)
	CompleteReminder(ctx context.Context, userID, id string) (*models.Reminder, error)
}

// Actions handles the snooze/complete surface.
type Actions struct {
	store ActionStore
	now   func() time.Time
}

// ActionsOption configures Actions.
type ActionsOption func(*Actions)

// WithActionsClock overrides the wall clock for tests.
func WithActionsClock(now func() time.Time) ActionsOption {
	return func(a *Actions) { a.now = now }
}

func NewActions(store ActionStore, opts ...ActionsOption) *Actions {
	a := &Actions{store: store, now: time.Now}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// List returns the user's reminders ordered by reminder date.
func (a *Actions) List(ctx context.Context, userID string) ([]models.Reminder, error) {
	return a.store.ListReminders(ctx, userID)
}

// Snooze sets status=snoozed and snoozed_until = now + days. Re-snoozing an
// already snoozed reminder extends the window.
func (a *Actions) Snooze(ctx context.Context, userID, id string, days int) (*models.Reminder, error) {
	if days < minSnoozeDays || days > maxSnoozeDays {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidSnooze, days)
	}
	reminder, err := a.store.ReminderByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if !reminder.Active() {
		return nil, fmt.Errorf("%w: status %s", ErrNotActive, reminder.Status)
	}
	until := a.now().AddDate(0, 0, days)
	return a.store.SnoozeReminder(ctx, userID, id, until)
}

// Complete marks the reminder done.
func (a *Actions) Complete(ctx context.Context, userID, id string) (*models.Reminder, error) {
	reminder, err := a.store.ReminderByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if !reminder.Active() {
		return nil, fmt.Errorf("%w: status %s", ErrNotActive, reminder.Status)
	}
	return a.store.CompleteReminder(ctx, userID, id)
}
