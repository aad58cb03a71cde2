package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventful/internal/delivery/http/helpers"
	"eventful/internal/delivery/http/middleware"
	"eventful/internal/domain"
)

func testControllerLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

// fakeTicketService implements domain.TicketService for handler tests.
type fakeTicketService struct {
	issueTicket *domain.Ticket
	issueErr    error
	scanErr     error
	lastQRCode  string
	lastRole    string
}

func (f *fakeTicketService) IssueTicket(ctx context.Context, eventID, userID string) (*domain.Ticket, error) {
	if f.issueErr != nil {
		return nil, f.issueErr
	}
	return f.issueTicket, nil
}

func (f *fakeTicketService) ScanTicket(ctx context.Context, qrCode, scannerUserID, scannerRole string) error {
	f.lastQRCode = qrCode
	f.lastRole = scannerRole
	return f.scanErr
}

func withClaims(req *http.Request, role string) *http.Request {
	claims := &domain.AuthClaims{UserID: "u1", Email: "u1@example.com", Role: role}
	return req.WithContext(middleware.SetClaims(req.Context(), claims))
}

func TestTicketController_GenerateTicket(t *testing.T) {
	tests := []struct {
		name         string
		authed       bool
		fakeTicket   *domain.Ticket
		fakeErr      error
		wantStatus   int
		wantBodyCode string
	}{
		{
			name:       "success",
			authed:     true,
			fakeTicket: &domain.Ticket{ID: "t1", EventID: "e1", UserID: "u1", QRCode: "data:image/png;base64,abc"},
			wantStatus: http.StatusCreated,
		},
		{
			name:         "no claims in context",
			wantStatus:   http.StatusUnauthorized,
			wantBodyCode: helpers.ErrCodeUnauthorized,
		},
		{
			name:         "event not found",
			authed:       true,
			fakeErr:      domain.ErrNotFound,
			wantStatus:   http.StatusNotFound,
			wantBodyCode: helpers.ErrCodeNotFound,
		},
		{
			name:         "sold out",
			authed:       true,
			fakeErr:      domain.ErrSoldOut,
			wantStatus:   http.StatusGone,
			wantBodyCode: helpers.ErrCodeSoldOut,
		},
		{
			name:         "service error",
			authed:       true,
			fakeErr:      assert.AnError,
			wantStatus:   http.StatusInternalServerError,
			wantBodyCode: helpers.ErrCodeInternalError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeTicketService{issueTicket: tt.fakeTicket, issueErr: tt.fakeErr}
			ctrl := NewTicketController(testControllerLogger(), fake)

			req := httptest.NewRequest(http.MethodPost, "http://test/tickets/e1/generate-ticket", nil)
			req.SetPathValue("eventID", "e1")
			if tt.authed {
				req = withClaims(req, domain.RoleAttendee)
			}
			rr := httptest.NewRecorder()

			ctrl.GenerateTicket(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			var envelope helpers.APIResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
			if tt.wantStatus == http.StatusCreated {
				require.Nil(t, envelope.Error)
				dataBytes, err := json.Marshal(envelope.Data)
				require.NoError(t, err)
				var ticket domain.Ticket
				require.NoError(t, json.Unmarshal(dataBytes, &ticket))
				assert.Equal(t, "t1", ticket.ID)
				assert.NotEmpty(t, ticket.QRCode)
			}
			if tt.wantBodyCode != "" {
				require.NotNil(t, envelope.Error)
				assert.Equal(t, tt.wantBodyCode, envelope.Error.Code)
			}
		})
	}
}

func TestTicketController_ScanTicket(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		role         string
		fakeErr      error
		wantStatus   int
		wantBodyCode string
	}{
		{
			name:       "success",
			body:       `{"qr_code":"data:image/png;base64,abc"}`,
			role:       domain.RoleOrganizer,
			wantStatus: http.StatusOK,
		},
		{
			name:         "missing qr_code",
			body:         `{}`,
			role:         domain.RoleOrganizer,
			wantStatus:   http.StatusBadRequest,
			wantBodyCode: helpers.ErrCodeBadRequest,
		},
		{
			name:         "attendee role",
			body:         `{"qr_code":"abc"}`,
			role:         domain.RoleAttendee,
			fakeErr:      domain.ErrForbidden,
			wantStatus:   http.StatusForbidden,
			wantBodyCode: helpers.ErrCodeForbidden,
		},
		{
			name:         "unknown ticket",
			body:         `{"qr_code":"abc"}`,
			role:         domain.RoleOrganizer,
			fakeErr:      domain.ErrNotFound,
			wantStatus:   http.StatusNotFound,
			wantBodyCode: helpers.ErrCodeNotFound,
		},
		{
			name:         "invalid token",
			body:         `{"qr_code":"abc"}`,
			role:         domain.RoleOrganizer,
			fakeErr:      domain.ErrInvalidTicketToken,
			wantStatus:   http.StatusBadRequest,
			wantBodyCode: helpers.ErrCodeBadRequest,
		},
		{
			name:         "already scanned",
			body:         `{"qr_code":"abc"}`,
			role:         domain.RoleOrganizer,
			fakeErr:      domain.ErrAlreadyScanned,
			wantStatus:   http.StatusBadRequest,
			wantBodyCode: helpers.ErrCodeBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeTicketService{scanErr: tt.fakeErr}
			ctrl := NewTicketController(testControllerLogger(), fake)

			req := httptest.NewRequest(http.MethodPost, "http://test/tickets/scan-ticket", bytes.NewBufferString(tt.body))
			req = withClaims(req, tt.role)
			rr := httptest.NewRecorder()

			ctrl.ScanTicket(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			var envelope helpers.APIResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
			if tt.wantBodyCode != "" {
				require.NotNil(t, envelope.Error)
				assert.Equal(t, tt.wantBodyCode, envelope.Error.Code)
			} else {
				assert.Equal(t, tt.role, fake.lastRole)
			}
		})
	}
}
