package domain

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors for event applications.
var (
	ErrAlreadyApplied = errors.New("already applied")
	ErrOwnEvent       = errors.New("cannot apply for your own event")
)

// Attendee is the role profile created for users who register as attendees.
// swagger:model Attendee
type Attendee struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// NewAttendee returns a new Attendee. ID is typically set by the repository on create.
func NewAttendee(userID string, createdAt time.Time) *Attendee {
	return &Attendee{
		UserID:    userID,
		CreatedAt: createdAt,
	}
}

// AttendeeRepository defines the interface for attendee profile storage.
type AttendeeRepository interface {
	Create(ctx context.Context, attendee *Attendee) error
	GetByUserID(ctx context.Context, userID string) (*Attendee, error)
}

// EventApplication records an attendee applying to an event, with a snapshot
// of the applicant's identity for the organizer's applicant list.
// swagger:model EventApplication
type EventApplication struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// ApplicationRepository defines storage operations for event applications.
type ApplicationRepository interface {
	// Create inserts the application. A duplicate (event_id, user_id) pair
	// returns ErrAlreadyApplied.
	Create(ctx context.Context, app *EventApplication) error
	ListByEventID(ctx context.Context, eventID string) ([]*EventApplication, error)
	// ListEventsByUserID returns the events the user has applied to.
	ListEventsByUserID(ctx context.Context, userID string) ([]*Event, error)
	// CountByOwner counts applicants across all events owned by the user.
	CountByOwner(ctx context.Context, ownerUserID string) (int, error)
	CountByEventID(ctx context.Context, eventID string) (int, error)
}

// AttendeeService defines attendee-facing operations.
type AttendeeService interface {
	// ApplyToEvent records the user's application. Re-applying to the same
	// event returns ErrAlreadyApplied; applying to one's own event ErrOwnEvent.
	ApplyToEvent(ctx context.Context, eventID, userID string) error
	ListAppliedEvents(ctx context.Context, userID string) ([]*Event, error)
	// SetReminder schedules a reminder email for the user on the given
	// DD/MM/YYYY date.
	SetReminder(ctx context.Context, eventID, userID, remindOn string) (*Reminder, error)
}
