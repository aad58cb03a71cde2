package postgres

import (
	"context"
	"database/sql"
	"errors"

	"eventful/internal/domain"
)

type organizerRepository struct {
	DB *sql.DB
}

func NewOrganizerRepository(db *sql.DB) domain.OrganizerRepository {
	return &organizerRepository{
		DB: db,
	}
}

func (r *organizerRepository) Create(ctx context.Context, o *domain.Organizer) error {
	query := `
		INSERT INTO organizers (user_id, organization_name, created_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query, o.UserID, o.OrganizationName, o.CreatedAt).Scan(&o.ID)
}

func (r *organizerRepository) GetByUserID(ctx context.Context, userID string) (*domain.Organizer, error) {
	query := `
		SELECT id, user_id, organization_name, created_at
		FROM organizers
		WHERE user_id = $1
	`
	o := &domain.Organizer{}
	err := r.DB.QueryRowContext(ctx, query, userID).Scan(&o.ID, &o.UserID, &o.OrganizationName, &o.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return o, nil
}
