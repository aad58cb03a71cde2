package postgres

import (
	"context"
	"database/sql"
	"errors"

	"eventful/internal/domain"
)

type attendeeRepository struct {
	DB *sql.DB
}

func NewAttendeeRepository(db *sql.DB) domain.AttendeeRepository {
	return &attendeeRepository{
		DB: db,
	}
}

func (r *attendeeRepository) Create(ctx context.Context, a *domain.Attendee) error {
	query := `
		INSERT INTO attendees (user_id, created_at)
		VALUES ($1, $2)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query, a.UserID, a.CreatedAt).Scan(&a.ID)
}

func (r *attendeeRepository) GetByUserID(ctx context.Context, userID string) (*domain.Attendee, error) {
	query := `
		SELECT id, user_id, created_at
		FROM attendees
		WHERE user_id = $1
	`
	a := &domain.Attendee{}
	err := r.DB.QueryRowContext(ctx, query, userID).Scan(&a.ID, &a.UserID, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return a, nil
}
