package domain

import (
	"context"
	"time"
)

// ReminderDateLayout is the day-level date format reminders are matched on.
// An event's reminder fires on exactly one calendar day.
const ReminderDateLayout = "02/01/2006"

// Reminder schedules one reminder email to one recipient on a given day.
// This table is the single source of truth for both the event's and the
// attendee's reminder lists.
// swagger:model Reminder
type Reminder struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	RemindOn  string    `json:"remind_on"`
	Sent      bool      `json:"sent"`
	CreatedAt time.Time `json:"created_at"`
}

// DueReminder pairs a due reminder with a snapshot of its event, taken at
// scan time, for the dispatch task payload.
type DueReminder struct {
	Reminder *Reminder `json:"reminder"`
	Event    *Event    `json:"event"`
}

// ReminderRepository defines storage operations for reminders.
type ReminderRepository interface {
	Create(ctx context.Context, reminder *Reminder) error
	// ListDue returns reminders matching the given DD/MM/YYYY date with
	// sent=false, each joined with its event.
	ListDue(ctx context.Context, remindOn string) ([]*DueReminder, error)
	// ClaimSent flips sent false->true and reports whether this caller won
	// the transition. A reminder is enqueued for dispatch only by the winner,
	// so a second pass on the same day enqueues nothing.
	ClaimSent(ctx context.Context, reminderID string) (claimed bool, err error)
}

// ReminderService drives the daily due-reminder pass.
type ReminderService interface {
	// RunDuePass scans for reminders due on the given day, claims each, and
	// enqueues one dispatch task per claimed reminder. Returns the number of
	// tasks enqueued.
	RunDuePass(ctx context.Context, now time.Time) (int, error)
}
