package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"eventful/internal/domain"
)

type attendeeService struct {
	eventRepo       domain.EventRepository
	attendeeRepo    domain.AttendeeRepository
	organizerRepo   domain.OrganizerRepository
	userRepo        domain.UserRepository
	applicationRepo domain.ApplicationRepository
	reminderRepo    domain.ReminderRepository
	analytics       domain.AnalyticsService
}

// NewAttendeeService creates an AttendeeService with the given repositories.
func NewAttendeeService(eventRepo domain.EventRepository, attendeeRepo domain.AttendeeRepository, organizerRepo domain.OrganizerRepository, userRepo domain.UserRepository, applicationRepo domain.ApplicationRepository, reminderRepo domain.ReminderRepository, analytics domain.AnalyticsService) domain.AttendeeService {
	return &attendeeService{
		eventRepo:       eventRepo,
		attendeeRepo:    attendeeRepo,
		organizerRepo:   organizerRepo,
		userRepo:        userRepo,
		applicationRepo: applicationRepo,
		reminderRepo:    reminderRepo,
		analytics:       analytics,
	}
}

func (s *attendeeService) ApplyToEvent(ctx context.Context, eventID, userID string) error {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to get event: %w", err)
	}
	if _, err := s.attendeeRepo.GetByUserID(ctx, userID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to get attendee profile: %w", err)
	}
	// A user holding both profiles must not apply to an event they publish.
	organizer, err := s.organizerRepo.GetByUserID(ctx, userID)
	if err == nil && organizer.ID == event.OrganizerID {
		return domain.ErrOwnEvent
	}
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("failed to get organizer profile: %w", err)
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return err
		}
		return fmt.Errorf("failed to get user: %w", err)
	}

	app := &domain.EventApplication{
		ID:        uuid.NewString(),
		EventID:   event.ID,
		UserID:    user.ID,
		Name:      user.Name,
		Username:  user.Username,
		Email:     user.Email,
		CreatedAt: time.Now(),
	}
	if err := s.applicationRepo.Create(ctx, app); err != nil {
		if errors.Is(err, domain.ErrAlreadyApplied) {
			return err
		}
		return fmt.Errorf("failed to create application: %w", err)
	}

	if s.analytics != nil {
		s.analytics.InvalidateOrganizer(event.OrganizerID)
		s.analytics.InvalidateEvent(event.ID)
	}
	return nil
}

func (s *attendeeService) ListAppliedEvents(ctx context.Context, userID string) ([]*domain.Event, error) {
	if _, err := s.attendeeRepo.GetByUserID(ctx, userID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get attendee profile: %w", err)
	}
	events, err := s.applicationRepo.ListEventsByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list applied events: %w", err)
	}
	return events, nil
}

func (s *attendeeService) SetReminder(ctx context.Context, eventID, userID, remindOn string) (*domain.Reminder, error) {
	if _, err := time.Parse(domain.ReminderDateLayout, remindOn); err != nil {
		return nil, fmt.Errorf("%w: reminder date must be in DD/MM/YYYY format", domain.ErrInvalidInput)
	}
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	if _, err := s.attendeeRepo.GetByUserID(ctx, userID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get attendee profile: %w", err)
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	reminder := &domain.Reminder{
		ID:        uuid.NewString(),
		EventID:   event.ID,
		UserID:    user.ID,
		Email:     user.Email,
		RemindOn:  remindOn,
		CreatedAt: time.Now(),
	}
	if err := s.reminderRepo.Create(ctx, reminder); err != nil {
		return nil, fmt.Errorf("failed to create reminder: %w", err)
	}
	return reminder, nil
}
