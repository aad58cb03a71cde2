package domain

import (
	"context"
	"time"
)

// Event represents a published event
// swagger:model Event
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Location    string    `json:"location"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	Time        string    `json:"time"`
	Price       float64   `json:"price"`
	Capacity    int       `json:"capacity"`
	TicketsSold int       `json:"tickets_sold"`
	Backdrop    string    `json:"backdrop"`
	// Organizer fields are denormalized onto the event row so public listings
	// don't need a join.
	OrganizerID      string    `json:"organizer_id"`
	OrganizationName string    `json:"organization_name"`
	OrganizerEmail   string    `json:"organizer_email"`
	CreatedAt        time.Time `json:"created_at"`
}

// EventRepository defines the interface for event storage
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	// GetByIDAndOwner loads the event only when the given user owns it (via
	// the organizer profile). A mismatch is indistinguishable from a missing
	// event: both return ErrNotFound.
	GetByIDAndOwner(ctx context.Context, eventID, ownerUserID string) (*Event, error)
	List(ctx context.Context, params PaginationParams) ([]*Event, int, error)
	Search(ctx context.Context, query string) ([]*Event, error)
	ListByOwner(ctx context.Context, ownerUserID string) ([]*Event, error)
	DeleteByIDAndOwner(ctx context.Context, eventID, ownerUserID string) error
	// SumTicketsSoldByOwner totals tickets_sold across all events owned by the user.
	SumTicketsSoldByOwner(ctx context.Context, ownerUserID string) (int, error)
}

// CreateEventInput is the validated input for publishing a new event.
type CreateEventInput struct {
	Title       string
	Location    string
	Category    string
	Description string
	Date        time.Time
	Time        string
	Price       float64
	Capacity    int
	// ReminderTime seeds one reminder (to the organizer) in DD/MM/YYYY form.
	ReminderTime string
	// Backdrop image bytes; uploaded to the blob store before the event is saved.
	Backdrop            []byte
	BackdropFilename    string
	BackdropContentType string
}

// EventService defines the business logic for event publishing and browsing.
type EventService interface {
	CreateEvent(ctx context.Context, ownerUserID string, input *CreateEventInput) (*Event, error)
	GetEvent(ctx context.Context, eventID string) (*Event, error)
	ListEvents(ctx context.Context, params PaginationParams) ([]*Event, int, error)
	SearchEvents(ctx context.Context, query string) ([]*Event, error)
	ListMyEvents(ctx context.Context, ownerUserID string) ([]*Event, error)
	DeleteEvent(ctx context.Context, eventID, ownerUserID string) error
	ListApplicants(ctx context.Context, eventID, ownerUserID string) ([]*EventApplication, error)
}
