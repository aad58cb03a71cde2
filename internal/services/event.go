package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"eventful/internal/domain"
)

type eventService struct {
	eventRepo       domain.EventRepository
	organizerRepo   domain.OrganizerRepository
	userRepo        domain.UserRepository
	applicationRepo domain.ApplicationRepository
	reminderRepo    domain.ReminderRepository
	blobStore       domain.BlobStore
}

// NewEventService creates an EventService with the given repositories and blob store.
func NewEventService(eventRepo domain.EventRepository, organizerRepo domain.OrganizerRepository, userRepo domain.UserRepository, applicationRepo domain.ApplicationRepository, reminderRepo domain.ReminderRepository, blobStore domain.BlobStore) domain.EventService {
	return &eventService{
		eventRepo:       eventRepo,
		organizerRepo:   organizerRepo,
		userRepo:        userRepo,
		applicationRepo: applicationRepo,
		reminderRepo:    reminderRepo,
		blobStore:       blobStore,
	}
}

func (s *eventService) CreateEvent(ctx context.Context, ownerUserID string, input *domain.CreateEventInput) (*domain.Event, error) {
	if err := validateCreateEventInput(input); err != nil {
		return nil, err
	}
	user, err := s.userRepo.GetByID(ctx, ownerUserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrForbidden
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	organizer, err := s.organizerRepo.GetByUserID(ctx, ownerUserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrForbidden
		}
		return nil, fmt.Errorf("failed to get organizer profile: %w", err)
	}

	backdropURL, err := s.blobStore.Upload(ctx, input.BackdropFilename, input.BackdropContentType, input.Backdrop)
	if err != nil {
		return nil, fmt.Errorf("failed to upload backdrop: %w", err)
	}

	now := time.Now()
	event := &domain.Event{
		Title:            strings.TrimSpace(input.Title),
		Location:         strings.TrimSpace(input.Location),
		Category:         strings.TrimSpace(input.Category),
		Description:      strings.TrimSpace(input.Description),
		Date:             input.Date,
		Time:             strings.TrimSpace(input.Time),
		Price:            input.Price,
		Capacity:         input.Capacity,
		Backdrop:         backdropURL,
		OrganizerID:      organizer.ID,
		OrganizationName: organizer.OrganizationName,
		OrganizerEmail:   user.Email,
		CreatedAt:        now,
	}
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	// The creation form carries one reminder date for the organizer's own
	// inbox. Attendees add theirs separately.
	if input.ReminderTime != "" {
		reminder := &domain.Reminder{
			ID:        uuid.NewString(),
			EventID:   event.ID,
			UserID:    user.ID,
			Email:     user.Email,
			RemindOn:  input.ReminderTime,
			CreatedAt: now,
		}
		if err := s.reminderRepo.Create(ctx, reminder); err != nil {
			return nil, fmt.Errorf("failed to create reminder: %w", err)
		}
	}
	return event, nil
}

func validateCreateEventInput(input *domain.CreateEventInput) error {
	if input == nil {
		return fmt.Errorf("%w: event input is nil", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(input.Title) == "" || strings.TrimSpace(input.Location) == "" || strings.TrimSpace(input.Category) == "" {
		return fmt.Errorf("%w: title, location and category are required", domain.ErrInvalidInput)
	}
	if input.Date.IsZero() {
		return fmt.Errorf("%w: event date is required", domain.ErrInvalidInput)
	}
	if input.Capacity < 1 {
		return fmt.Errorf("%w: capacity must be at least 1", domain.ErrInvalidInput)
	}
	if input.Price < 0 {
		return fmt.Errorf("%w: price cannot be negative", domain.ErrInvalidInput)
	}
	if len(input.Backdrop) == 0 {
		return fmt.Errorf("%w: backdrop image is required", domain.ErrInvalidInput)
	}
	if input.ReminderTime != "" {
		if _, err := time.Parse(domain.ReminderDateLayout, input.ReminderTime); err != nil {
			return fmt.Errorf("%w: reminder date must be in DD/MM/YYYY format", domain.ErrInvalidInput)
		}
	}
	return nil
}

func (s *eventService) GetEvent(ctx context.Context, eventID string) (*domain.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	return event, nil
}

func (s *eventService) ListEvents(ctx context.Context, params domain.PaginationParams) ([]*domain.Event, int, error) {
	events, total, err := s.eventRepo.List(ctx, params)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list events: %w", err)
	}
	return events, total, nil
}

func (s *eventService) SearchEvents(ctx context.Context, query string) ([]*domain.Event, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: search query is required", domain.ErrInvalidInput)
	}
	events, err := s.eventRepo.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to search events: %w", err)
	}
	return events, nil
}

func (s *eventService) ListMyEvents(ctx context.Context, ownerUserID string) ([]*domain.Event, error) {
	events, err := s.eventRepo.ListByOwner(ctx, ownerUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return events, nil
}

func (s *eventService) DeleteEvent(ctx context.Context, eventID, ownerUserID string) error {
	if err := s.eventRepo.DeleteByIDAndOwner(ctx, eventID, ownerUserID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete event: %w", err)
	}
	return nil
}

func (s *eventService) ListApplicants(ctx context.Context, eventID, ownerUserID string) ([]*domain.EventApplication, error) {
	if _, err := s.eventRepo.GetByIDAndOwner(ctx, eventID, ownerUserID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	apps, err := s.applicationRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to list applicants: %w", err)
	}
	return apps, nil
}
