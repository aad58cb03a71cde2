package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"eventful/internal/domain"

	"github.com/stretchr/testify/require"
)

func TestTicketRepository_Issue(t *testing.T) {
	ctx := context.Background()

	ticket := &domain.Ticket{
		ID:           "ticket-uuid-1",
		EventID:      "event-uuid-1",
		UserID:       "user-uuid-1",
		QRCode:       "data:image/png;base64,abc",
		Token:        "signed-token",
		Price:        25.0,
		PurchaseDate: time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC),
	}

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		wantErr bool
		errIs   error
	}{
		{
			name: "success",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(`UPDATE events`).
					WithArgs("event-uuid-1").
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec(`INSERT INTO tickets`).
					WithArgs("ticket-uuid-1", "event-uuid-1", "user-uuid-1", "data:image/png;base64,abc", "signed-token", 25.0, ticket.PurchaseDate).
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectCommit()
			},
		},
		{
			name: "sold out rolls back",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(`UPDATE events`).
					WithArgs("event-uuid-1").
					WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectRollback()
			},
			wantErr: true,
			errIs:   domain.ErrSoldOut,
		},
		{
			name: "insert failure rolls back",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(`UPDATE events`).
					WithArgs("event-uuid-1").
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec(`INSERT INTO tickets`).
					WillReturnError(sql.ErrConnDone)
				mock.ExpectRollback()
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewTicketRepository(db)
			err = repo.Issue(ctx, ticket)
			if tt.wantErr {
				require.Error(t, err)
				if tt.errIs != nil {
					require.ErrorIs(t, err, tt.errIs)
				}
			} else {
				require.NoError(t, err)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestTicketRepository_MarkScanned(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		wantErr bool
		errIs   error
	}{
		{
			name: "success",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE tickets`).
					WithArgs("ticket-uuid-1").
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "already scanned zero rows affected",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE tickets`).
					WithArgs("ticket-uuid-1").
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			wantErr: true,
			errIs:   domain.ErrAlreadyScanned,
		},
		{
			name: "db error",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE tickets`).
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewTicketRepository(db)
			err = repo.MarkScanned(ctx, "ticket-uuid-1")
			if tt.wantErr {
				require.Error(t, err)
				if tt.errIs != nil {
					require.ErrorIs(t, err, tt.errIs)
				}
			} else {
				require.NoError(t, err)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestTicketRepository_GetByQRCode(t *testing.T) {
	ctx := context.Background()
	purchased := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)

	t.Run("found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		rows := sqlmock.NewRows([]string{"id", "event_id", "user_id", "qr_code", "token", "price", "scanned", "purchase_date"}).
			AddRow("ticket-uuid-1", "event-uuid-1", "user-uuid-1", "qr", "tok", 25.0, false, purchased)
		mock.ExpectQuery(`SELECT (.+) FROM tickets`).
			WithArgs("qr").
			WillReturnRows(rows)

		repo := NewTicketRepository(db)
		ticket, err := repo.GetByQRCode(ctx, "qr")
		require.NoError(t, err)
		require.Equal(t, "ticket-uuid-1", ticket.ID)
		require.False(t, ticket.Scanned)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT (.+) FROM tickets`).
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		repo := NewTicketRepository(db)
		_, err = repo.GetByQRCode(ctx, "missing")
		require.ErrorIs(t, err, domain.ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
