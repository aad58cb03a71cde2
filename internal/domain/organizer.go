package domain

import (
	"context"
	"time"
)

// Organizer is the role profile created for users who register as organizers.
// swagger:model Organizer
type Organizer struct {
	ID               string    `json:"id"`
	UserID           string    `json:"user_id"`
	OrganizationName string    `json:"organization_name"`
	CreatedAt        time.Time `json:"created_at"`
}

// NewOrganizer returns a new Organizer. ID is typically set by the repository on create.
func NewOrganizer(userID, organizationName string, createdAt time.Time) *Organizer {
	return &Organizer{
		UserID:           userID,
		OrganizationName: organizationName,
		CreatedAt:        createdAt,
	}
}

// OrganizerRepository defines the interface for organizer profile storage.
type OrganizerRepository interface {
	Create(ctx context.Context, organizer *Organizer) error
	GetByUserID(ctx context.Context, userID string) (*Organizer, error)
}
