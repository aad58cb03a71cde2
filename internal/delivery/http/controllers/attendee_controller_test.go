package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventful/internal/delivery/http/helpers"
	"eventful/internal/domain"
)

// fakeAttendeeService implements domain.AttendeeService for handler tests.
type fakeAttendeeService struct {
	applyErr     error
	appliedList  []*domain.Event
	listErr      error
	reminder     *domain.Reminder
	reminderErr  error
	lastRemindOn string
}

func (f *fakeAttendeeService) ApplyToEvent(ctx context.Context, eventID, userID string) error {
	return f.applyErr
}

func (f *fakeAttendeeService) ListAppliedEvents(ctx context.Context, userID string) ([]*domain.Event, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.appliedList, nil
}

func (f *fakeAttendeeService) SetReminder(ctx context.Context, eventID, userID, remindOn string) (*domain.Reminder, error) {
	f.lastRemindOn = remindOn
	if f.reminderErr != nil {
		return nil, f.reminderErr
	}
	return f.reminder, nil
}

func TestAttendeeController_Apply(t *testing.T) {
	tests := []struct {
		name         string
		fakeErr      error
		wantStatus   int
		wantBodyCode string
	}{
		{name: "success", wantStatus: http.StatusCreated},
		{name: "event not found", fakeErr: domain.ErrNotFound, wantStatus: http.StatusNotFound, wantBodyCode: helpers.ErrCodeNotFound},
		{name: "own event", fakeErr: domain.ErrOwnEvent, wantStatus: http.StatusMethodNotAllowed, wantBodyCode: helpers.ErrCodeOwnEvent},
		{name: "already applied", fakeErr: domain.ErrAlreadyApplied, wantStatus: http.StatusConflict, wantBodyCode: helpers.ErrCodeConflict},
		{name: "service error", fakeErr: assert.AnError, wantStatus: http.StatusInternalServerError, wantBodyCode: helpers.ErrCodeInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeAttendeeService{applyErr: tt.fakeErr}
			ctrl := NewAttendeeController(testControllerLogger(), fake)

			req := httptest.NewRequest(http.MethodPost, "http://test/attendees/e1/apply", nil)
			req.SetPathValue("eventID", "e1")
			req = withClaims(req, domain.RoleAttendee)
			rr := httptest.NewRecorder()

			ctrl.Apply(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			var envelope helpers.APIResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
			if tt.wantBodyCode != "" {
				require.NotNil(t, envelope.Error)
				assert.Equal(t, tt.wantBodyCode, envelope.Error.Code)
			} else {
				require.Nil(t, envelope.Error)
			}
		})
	}
}

func TestAttendeeController_SetReminder(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		fakeReminder *domain.Reminder
		fakeErr      error
		wantStatus   int
		wantBodyCode string
	}{
		{
			name:         "success",
			body:         `{"reminder_time":"15/06/2026"}`,
			fakeReminder: &domain.Reminder{ID: "r1", EventID: "e1", RemindOn: "15/06/2026"},
			wantStatus:   http.StatusCreated,
		},
		{
			name:         "missing reminder_time",
			body:         `{}`,
			wantStatus:   http.StatusBadRequest,
			wantBodyCode: helpers.ErrCodeBadRequest,
		},
		{
			name:         "bad date format",
			body:         `{"reminder_time":"2026-06-15"}`,
			fakeErr:      domain.ErrInvalidInput,
			wantStatus:   http.StatusBadRequest,
			wantBodyCode: helpers.ErrCodeBadRequest,
		},
		{
			name:         "unknown event",
			body:         `{"reminder_time":"15/06/2026"}`,
			fakeErr:      domain.ErrNotFound,
			wantStatus:   http.StatusNotFound,
			wantBodyCode: helpers.ErrCodeNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeAttendeeService{reminder: tt.fakeReminder, reminderErr: tt.fakeErr}
			ctrl := NewAttendeeController(testControllerLogger(), fake)

			req := httptest.NewRequest(http.MethodPost, "http://test/attendees/e1/reminder", bytes.NewBufferString(tt.body))
			req.SetPathValue("eventID", "e1")
			req = withClaims(req, domain.RoleAttendee)
			rr := httptest.NewRecorder()

			ctrl.SetReminder(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			var envelope helpers.APIResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
			if tt.wantBodyCode != "" {
				require.NotNil(t, envelope.Error)
				assert.Equal(t, tt.wantBodyCode, envelope.Error.Code)
			} else {
				require.Nil(t, envelope.Error)
				assert.Equal(t, "15/06/2026", fake.lastRemindOn)
			}
		})
	}
}

func TestAttendeeController_ListAppliedEvents(t *testing.T) {
	fake := &fakeAttendeeService{appliedList: []*domain.Event{{ID: "e1"}, {ID: "e2"}}}
	ctrl := NewAttendeeController(testControllerLogger(), fake)

	req := httptest.NewRequest(http.MethodGet, "http://test/attendees/applied-events", nil)
	req = withClaims(req, domain.RoleAttendee)
	rr := httptest.NewRecorder()

	ctrl.ListAppliedEvents(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var envelope helpers.APIResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
	require.Nil(t, envelope.Error)
	dataBytes, err := json.Marshal(envelope.Data)
	require.NoError(t, err)
	var events []*domain.Event
	require.NoError(t, json.Unmarshal(dataBytes, &events))
	assert.Len(t, events, 2)
}
