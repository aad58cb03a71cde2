package postgres

import (
	"context"
	"database/sql"

	"eventful/internal/domain"
)

type reminderRepository struct {
	DB *sql.DB
}

func NewReminderRepository(db *sql.DB) domain.ReminderRepository {
	return &reminderRepository{
		DB: db,
	}
}

func (r *reminderRepository) Create(ctx context.Context, rem *domain.Reminder) error {
	query := `
		INSERT INTO reminders (id, event_id, user_id, email, remind_on, sent, created_at)
		VALUES ($1, $2, $3, $4, $5, FALSE, $6)
	`
	_, err := r.DB.ExecContext(ctx, query, rem.ID, rem.EventID, rem.UserID, rem.Email, rem.RemindOn, rem.CreatedAt)
	return err
}

func (r *reminderRepository) ListDue(ctx context.Context, remindOn string) ([]*domain.DueReminder, error) {
	query := `
		SELECT r.id, r.event_id, r.user_id, r.email, r.remind_on, r.sent, r.created_at,
		       e.id, e.title, e.location, e.category, e.description, e.date, e.event_time, e.price, e.capacity, e.tickets_sold, e.backdrop, e.organizer_id, e.organization_name, e.organizer_email, e.created_at
		FROM reminders r
		JOIN events e ON e.id = r.event_id
		WHERE r.remind_on = $1 AND r.sent = FALSE
		ORDER BY r.created_at
	`
	rows, err := r.DB.QueryContext(ctx, query, remindOn)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	due := make([]*domain.DueReminder, 0)
	for rows.Next() {
		rem := &domain.Reminder{}
		e := &domain.Event{}
		var descNull, backdropNull sql.NullString
		err := rows.Scan(
			&rem.ID, &rem.EventID, &rem.UserID, &rem.Email, &rem.RemindOn, &rem.Sent, &rem.CreatedAt,
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
		due = append(due, &domain.DueReminder{Reminder: rem, Event: e})
	}
	return due, rows.Err()
}

// ClaimSent is the scheduler's idempotency gate: sent flips false->true at
// most once, and only the caller that wins the flip may enqueue the dispatch
// task. Marking happens before any send is attempted, so delivery is
// at-most-once and a failed send never reverts the flag.
func (r *reminderRepository) ClaimSent(ctx context.Context, reminderID string) (bool, error) {
	result, err := r.DB.ExecContext(ctx, `
		UPDATE reminders
		SET sent = TRUE
		WHERE id = $1 AND sent = FALSE
	`, reminderID)
	if err != nil {
		return false, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows == 1, nil
}
