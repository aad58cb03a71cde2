package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"eventful/internal/domain"
)

type ticketRepository struct {
	DB *sql.DB
}

func NewTicketRepository(db *sql.DB) domain.TicketRepository {
	return &ticketRepository{
		DB: db,
	}
}

// Issue inserts the ticket and increments the event's tickets_sold in one
// transaction. The increment is conditional on tickets_sold < capacity, so
// two concurrent issuances against the last seat cannot both succeed: the
// loser sees zero rows updated and the whole transaction rolls back.
func (r *ticketRepository) Issue(ctx context.Context, t *domain.Ticket) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin issue tx: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
		UPDATE events
		SET tickets_sold = tickets_sold + 1
		WHERE id = $1 AND tickets_sold < capacity
	`, t.EventID)
	if err != nil {
		return fmt.Errorf("increment tickets_sold: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrSoldOut
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO tickets (id, event_id, user_id, qr_code, token, price, scanned, purchase_date)
		VALUES ($1, $2, $3, $4, $5, $6, FALSE, $7)
	`, t.ID, t.EventID, t.UserID, t.QRCode, t.Token, t.Price, t.PurchaseDate)
	if err != nil {
		return fmt.Errorf("insert ticket: %w", err)
	}

	return tx.Commit()
}

func (r *ticketRepository) GetByQRCode(ctx context.Context, qrCode string) (*domain.Ticket, error) {
	query := `
		SELECT id, event_id, user_id, qr_code, token, price, scanned, purchase_date
		FROM tickets
		WHERE qr_code = $1
	`
	t := &domain.Ticket{}
	err := r.DB.QueryRowContext(ctx, query, qrCode).Scan(
		&t.ID, &t.EventID, &t.UserID, &t.QRCode, &t.Token, &t.Price, &t.Scanned, &t.PurchaseDate,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

// MarkScanned performs the one-way scanned transition. The WHERE clause makes
// it a compare-and-swap: a ticket already scanned (including by a concurrent
// scan that won the race) yields zero rows and ErrAlreadyScanned.
func (r *ticketRepository) MarkScanned(ctx context.Context, ticketID string) error {
	result, err := r.DB.ExecContext(ctx, `
		UPDATE tickets
		SET scanned = TRUE
		WHERE id = $1 AND scanned = FALSE
	`, ticketID)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrAlreadyScanned
	}
	return nil
}

func (r *ticketRepository) CountScannedByOwner(ctx context.Context, ownerUserID string) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM tickets t
		JOIN events e ON e.id = t.event_id
		JOIN organizers o ON o.id = e.organizer_id
		WHERE o.user_id = $1 AND t.scanned
	`
	var count int
	if err := r.DB.QueryRowContext(ctx, query, ownerUserID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *ticketRepository) CountScannedByEvent(ctx context.Context, eventID string) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM tickets
		WHERE event_id = $1 AND scanned
	`
	var count int
	if err := r.DB.QueryRowContext(ctx, query, eventID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
