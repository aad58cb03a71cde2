package services

import (
	"context"
	"errors"
	"fmt"

	"eventful/internal/domain"
)

type analyticsService struct {
	eventRepo       domain.EventRepository
	ticketRepo      domain.TicketRepository
	applicationRepo domain.ApplicationRepository
	organizerRepo   domain.OrganizerRepository
	cache           domain.AnalyticsCache
}

// NewAnalyticsService creates an AnalyticsService backed by the given
// repositories and TTL cache.
func NewAnalyticsService(eventRepo domain.EventRepository, ticketRepo domain.TicketRepository, applicationRepo domain.ApplicationRepository, organizerRepo domain.OrganizerRepository, cache domain.AnalyticsCache) domain.AnalyticsService {
	return &analyticsService{
		eventRepo:       eventRepo,
		ticketRepo:      ticketRepo,
		applicationRepo: applicationRepo,
		organizerRepo:   organizerRepo,
		cache:           cache,
	}
}

func (s *analyticsService) Overall(ctx context.Context, ownerUserID string) (*domain.EventAnalytics, error) {
	organizer, err := s.organizerRepo.GetByUserID(ctx, ownerUserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrForbidden
		}
		return nil, fmt.Errorf("failed to get organizer profile: %w", err)
	}
	if cached, ok := s.cache.Get(domain.AnalyticsKindOverall, organizer.ID); ok {
		return cached, nil
	}

	applicants, err := s.applicationRepo.CountByOwner(ctx, ownerUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to count applicants: %w", err)
	}
	sold, err := s.eventRepo.SumTicketsSoldByOwner(ctx, ownerUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to sum tickets sold: %w", err)
	}
	scanned, err := s.ticketRepo.CountScannedByOwner(ctx, ownerUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to count scanned tickets: %w", err)
	}

	data := &domain.EventAnalytics{
		Applicants:     applicants,
		TicketsSold:    sold,
		ScannedTickets: scanned,
	}
	s.cache.Set(domain.AnalyticsKindOverall, organizer.ID, data)
	return data, nil
}

func (s *analyticsService) ForEvent(ctx context.Context, eventID, ownerUserID string) (*domain.EventAnalytics, error) {
	// Ownership is checked before the cache so a cached entry never leaks
	// to a non-owner.
	event, err := s.eventRepo.GetByIDAndOwner(ctx, eventID, ownerUserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	if cached, ok := s.cache.Get(domain.AnalyticsKindEvent, event.ID); ok {
		return cached, nil
	}

	applicants, err := s.applicationRepo.CountByEventID(ctx, event.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count applicants: %w", err)
	}
	scanned, err := s.ticketRepo.CountScannedByEvent(ctx, event.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count scanned tickets: %w", err)
	}

	data := &domain.EventAnalytics{
		Applicants:     applicants,
		TicketsSold:    event.TicketsSold,
		ScannedTickets: scanned,
	}
	s.cache.Set(domain.AnalyticsKindEvent, event.ID, data)
	return data, nil
}

func (s *analyticsService) InvalidateOrganizer(organizerID string) {
	s.cache.Invalidate(domain.AnalyticsKindOverall, organizerID)
}

func (s *analyticsService) InvalidateEvent(eventID string) {
	s.cache.Invalidate(domain.AnalyticsKindEvent, eventID)
}
