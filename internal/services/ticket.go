package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"eventful/internal/domain"
)

// ticketTokenGrace keeps a ticket token verifiable through the day after the
// event, so late scans at a venue that runs past midnight still pass.
const ticketTokenGrace = 24 * time.Hour

type ticketService struct {
	eventRepo    domain.EventRepository
	attendeeRepo domain.AttendeeRepository
	ticketRepo   domain.TicketRepository
	signer       domain.TicketTokenSigner
	encoder      domain.QREncoder
	analytics    domain.AnalyticsService
}

// NewTicketService creates a TicketService with the given repositories,
// token signer, and QR encoder.
func NewTicketService(eventRepo domain.EventRepository, attendeeRepo domain.AttendeeRepository, ticketRepo domain.TicketRepository, signer domain.TicketTokenSigner, encoder domain.QREncoder, analytics domain.AnalyticsService) domain.TicketService {
	return &ticketService{
		eventRepo:    eventRepo,
		attendeeRepo: attendeeRepo,
		ticketRepo:   ticketRepo,
		signer:       signer,
		encoder:      encoder,
		analytics:    analytics,
	}
}

func (s *ticketService) IssueTicket(ctx context.Context, eventID, userID string) (*domain.Ticket, error) {
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
	// Early capacity gate. The repository repeats the check inside the
	// insert transaction, so a race between two issuers cannot oversell.
	if event.TicketsSold >= event.Capacity {
		return nil, domain.ErrSoldOut
	}

	expiresAt := endOfDay(event.Date).Add(ticketTokenGrace)
	token, err := s.signer.Sign(&domain.TicketClaims{EventID: event.ID, UserID: userID}, expiresAt)
	if err != nil {
		return nil, fmt.Errorf("failed to sign ticket token: %w", err)
	}
	qrCode, err := s.encoder.Encode(token)
	if err != nil {
		if errors.Is(err, domain.ErrQREncodeFailed) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to encode qr code: %w", err)
	}

	ticket := &domain.Ticket{
		ID:           uuid.NewString(),
		EventID:      event.ID,
		UserID:       userID,
		QRCode:       qrCode,
		Token:        token,
		Price:        event.Price,
		PurchaseDate: time.Now(),
	}
	if err := s.ticketRepo.Issue(ctx, ticket); err != nil {
		if errors.Is(err, domain.ErrSoldOut) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to issue ticket: %w", err)
	}

	if s.analytics != nil {
		s.analytics.InvalidateOrganizer(event.OrganizerID)
		s.analytics.InvalidateEvent(event.ID)
	}
	return ticket, nil
}

func (s *ticketService) ScanTicket(ctx context.Context, qrCode, scannerUserID, scannerRole string) error {
	if scannerRole != domain.RoleOrganizer {
		return domain.ErrForbidden
	}
	ticket, err := s.ticketRepo.GetByQRCode(ctx, qrCode)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to get ticket: %w", err)
	}
	claims, err := s.signer.Verify(ticket.Token)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidTicketToken) {
			return err
		}
		return fmt.Errorf("failed to verify ticket token: %w", err)
	}
	// The scanner must own the event named in the token. A foreign or
	// unknown event is reported identically, as not found.
	event, err := s.eventRepo.GetByIDAndOwner(ctx, claims.EventID, scannerUserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to get event: %w", err)
	}
	if ticket.Scanned {
		return domain.ErrAlreadyScanned
	}
	if err := s.ticketRepo.MarkScanned(ctx, ticket.ID); err != nil {
		if errors.Is(err, domain.ErrAlreadyScanned) {
			return err
		}
		return fmt.Errorf("failed to mark ticket scanned: %w", err)
	}

	if s.analytics != nil {
		s.analytics.InvalidateOrganizer(event.OrganizerID)
		s.analytics.InvalidateEvent(event.ID)
	}
	return nil
}

func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, 0, t.Location())
}
