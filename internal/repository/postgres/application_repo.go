package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"eventful/internal/domain"
)

type applicationRepository struct {
	DB *sql.DB
}

func NewApplicationRepository(db *sql.DB) domain.ApplicationRepository {
	return &applicationRepository{
		DB: db,
	}
}

func (r *applicationRepository) Create(ctx context.Context, a *domain.EventApplication) error {
	query := `
		INSERT INTO event_applications (id, event_id, user_id, name, username, email, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.DB.ExecContext(ctx, query, a.ID, a.EventID, a.UserID, a.Name, a.Username, a.Email, a.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			return domain.ErrAlreadyApplied
		}
		return err
	}
	return nil
}

func (r *applicationRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.EventApplication, error) {
	query := `
		SELECT id, event_id, user_id, name, username, email, created_at
		FROM event_applications
		WHERE event_id = $1
		ORDER BY created_at
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	apps := make([]*domain.EventApplication, 0)
	for rows.Next() {
		a := &domain.EventApplication{}
		if err := rows.Scan(&a.ID, &a.EventID, &a.UserID, &a.Name, &a.Username, &a.Email, &a.CreatedAt); err != nil {
			return nil, err
		}
		apps = append(apps, a)
	}
	return apps, rows.Err()
}

func (r *applicationRepository) ListEventsByUserID(ctx context.Context, userID string) ([]*domain.Event, error) {
	query := `
		SELECT e.id, e.title, e.location, e.category, e.description, e.date, e.event_time, e.price, e.capacity, e.tickets_sold, e.backdrop, e.organizer_id, e.organization_name, e.organizer_email, e.created_at
		FROM events e
		JOIN event_applications a ON a.event_id = e.id
		WHERE a.user_id = $1
		ORDER BY a.created_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query, userID)
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

func (r *applicationRepository) CountByOwner(ctx context.Context, ownerUserID string) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM event_applications a
		JOIN events e ON e.id = a.event_id
		JOIN organizers o ON o.id = e.organizer_id
		WHERE o.user_id = $1
	`
	var count int
	if err := r.DB.QueryRowContext(ctx, query, ownerUserID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *applicationRepository) CountByEventID(ctx context.Context, eventID string) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM event_applications
		WHERE event_id = $1
	`
	var count int
	if err := r.DB.QueryRowContext(ctx, query, eventID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
