package postgres

import (
	"context"
	"database/sql"
	"errors"

	"eventful/internal/domain"
)

const eventColumns = `id, title, location, category, description, date, event_time, price, capacity, tickets_sold, backdrop, organizer_id, organization_name, organizer_email, created_at`

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

func scanEvent(row interface{ Scan(...any) error }) (*domain.Event, error) {
	e := &domain.Event{}
	var descNull, backdropNull sql.NullString
	err := row.Scan(
		&e.ID, &e.Title, &e.Location, &e.Category, &descNull, &e.Date, &e.Time,
		&e.Price, &e.Capacity, &e.TicketsSold, &backdropNull,
		&e.OrganizerID, &e.OrganizationName, &e.OrganizerEmail, &e.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if descNull.Valid {
		e.Description = descNull.String
	}
	if backdropNull.Valid {
		e.Backdrop = backdropNull.String
	}
	return e, nil
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO events (title, location, category, description, date, event_time, price, capacity, tickets_sold, backdrop, organizer_id, organization_name, organizer_email, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 0, $9, $10, $11, $12, $13)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		e.Title, e.Location, e.Category, e.Description, e.Date, e.Time,
		e.Price, e.Capacity, e.Backdrop, e.OrganizerID, e.OrganizationName, e.OrganizerEmail, e.CreatedAt,
	).Scan(&e.ID)
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE id = $1
	`
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

// GetByIDAndOwner enforces "event exists" and "caller owns this event" in a
// single lookup; a mismatch returns ErrNotFound, same as a missing event.
func (r *eventRepository) GetByIDAndOwner(ctx context.Context, eventID, ownerUserID string) (*domain.Event, error) {
	query := `
		SELECT e.id, e.title, e.location, e.category, e.description, e.date, e.event_time, e.price, e.capacity, e.tickets_sold, e.backdrop, e.organizer_id, e.organization_name, e.organizer_email, e.created_at
		FROM events e
		JOIN organizers o ON o.id = e.organizer_id
		WHERE e.id = $1 AND o.user_id = $2
	`
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, eventID, ownerUserID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) List(ctx context.Context, params domain.PaginationParams) ([]*domain.Event, int, error) {
	var total int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM events`).Scan(&total); err != nil {
		return nil, 0, err
	}
	query := `
		SELECT ` + eventColumns + `
		FROM events
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.DB.QueryContext(ctx, query, params.PageSize, params.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	events := make([]*domain.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, 0, err
		}
		events = append(events, e)
	}
	return events, total, rows.Err()
}

func (r *eventRepository) Search(ctx context.Context, q string) ([]*domain.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE title ILIKE $1 OR location ILIKE $1 OR category ILIKE $1 OR organization_name ILIKE $1
		ORDER BY created_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query, "%"+q+"%")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	events := make([]*domain.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *eventRepository) ListByOwner(ctx context.Context, ownerUserID string) ([]*domain.Event, error) {
	query := `
		SELECT e.id, e.title, e.location, e.category, e.description, e.date, e.event_time, e.price, e.capacity, e.tickets_sold, e.backdrop, e.organizer_id, e.organization_name, e.organizer_email, e.created_at
		FROM events e
		JOIN organizers o ON o.id = e.organizer_id
		WHERE o.user_id = $1
		ORDER BY e.created_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query, ownerUserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	events := make([]*domain.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *eventRepository) DeleteByIDAndOwner(ctx context.Context, eventID, ownerUserID string) error {
	query := `
		DELETE FROM events e
		USING organizers o
		WHERE o.id = e.organizer_id AND e.id = $1 AND o.user_id = $2
	`
	result, err := r.DB.ExecContext(ctx, query, eventID, ownerUserID)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *eventRepository) SumTicketsSoldByOwner(ctx context.Context, ownerUserID string) (int, error) {
	query := `
		SELECT COALESCE(SUM(e.tickets_sold), 0)
		FROM events e
		JOIN organizers o ON o.id = e.organizer_id
		WHERE o.user_id = $1
	`
	var total int
	if err := r.DB.QueryRowContext(ctx, query, ownerUserID).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}
