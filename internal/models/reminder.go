package models

import "time"

// ReminderType names one rung of the ladder derived from a deadline.
type ReminderType string

const (
	Reminder30Days ReminderType = "30_days"
	Reminder14Days ReminderType = "14_days"
	Reminder7Days  ReminderType = "7_days"
	Reminder1Day   ReminderType = "1_day"
)

// ReminderStatus lifecycle: pending -> sent|cancelled|completed, or
// pending -> snoozed -> pending (re-snooze extends SnoozedUntil).
type ReminderStatus string

const (
	ReminderPending   ReminderStatus = "pending"
	ReminderSnoozed   ReminderStatus = "snoozed"
	ReminderCompleted ReminderStatus = "completed"
	ReminderSent      ReminderStatus = "sent"
	ReminderCancelled ReminderStatus = "cancelled"
)

// Reminder is one future-dated notification for a document deadline.
// The unique index on (document_id, reminder_type) makes scheduling
// idempotent across re-classification runs.
type Reminder struct {
	ID           string         `gorm:"primaryKey" json:"id"`
	DocumentID   string         `gorm:"not null;uniqueIndex:idx_reminders_document_type" json:"documentId"`
	ReminderType ReminderType   `gorm:"not null;uniqueIndex:idx_reminders_document_type" json:"reminderType"`
	UserID       string         `gorm:"not null;index" json:"userId"`
	ReminderDate time.Time      `gorm:"not null;index" json:"reminderDate"`
	DeadlineDate time.Time      `gorm:"not null" json:"deadlineDate"`
	Status       ReminderStatus `gorm:"not null;default:pending" json:"status"`
	SnoozedUntil *time.Time     `json:"snoozedUntil,omitempty"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
}

// Active reports whether the reminder can still be acted on by the user.
func (r *Reminder) Active() bool {
	return r.Status == ReminderPending || r.Status == ReminderSnoozed
}
