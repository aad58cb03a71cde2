package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"eventful/internal/delivery/http/helpers"
	"eventful/internal/delivery/http/middleware"
	"eventful/internal/domain"
)

type AttendeeController struct {
	Logger  *slog.Logger
	Service domain.AttendeeService
}

func NewAttendeeController(logger *slog.Logger, svc domain.AttendeeService) *AttendeeController {
	return &AttendeeController{
		Logger:  logger,
		Service: svc,
	}
}

// ApplyResponse is the data payload for POST /attendees/{eventID}/apply (201).
type ApplyResponse struct {
	Status string `json:"status"`
}

// ApplySuccessResponse is the success response envelope for POST /attendees/{eventID}/apply (201).
type ApplySuccessResponse struct {
	Data  ApplyResponse     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// Apply godoc
// @Summary Apply to an event
// @Description Records the authenticated attendee's application to the event. Applying twice returns 409; applying to one's own event returns 405.
// @Tags attendees
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 201 {object} controllers.ApplySuccessResponse "data contains status"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 405 {object} helpers.APIResponse "error.code: own_event"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (already applied)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /attendees/{eventID}/apply [post]
func (c *AttendeeController) Apply(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	if err := c.Service.ApplyToEvent(r.Context(), eventID, claims.UserID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event or attendee profile not found")
			return
		}
		if errors.Is(err, domain.ErrOwnEvent) {
			helpers.WriteJSONError(w, http.StatusMethodNotAllowed, helpers.ErrCodeOwnEvent, "cannot apply for your own event")
			return
		}
		if errors.Is(err, domain.ErrAlreadyApplied) {
			helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, "already applied to this event")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, ApplyResponse{Status: "applied"})
}

// ListAppliedEventsSuccessResponse is the success response envelope for GET /attendees/applied-events (200).
type ListAppliedEventsSuccessResponse struct {
	Data  []*domain.Event   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ListAppliedEvents godoc
// @Summary List events the attendee has applied to
// @Tags attendees
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.ListAppliedEventsSuccessResponse "data is an array of events"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found (no attendee profile)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /attendees/applied-events [get]
func (c *AttendeeController) ListAppliedEvents(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	events, err := c.Service.ListAppliedEvents(r.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "attendee profile not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	if events == nil {
		events = []*domain.Event{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, events)
}

// SetReminderRequest is the request body for POST /attendees/{eventID}/reminder.
type SetReminderRequest struct {
	ReminderTime string `json:"reminder_time"`
}

// Validate implements Validator.
func (s SetReminderRequest) Validate() []string {
	if strings.TrimSpace(s.ReminderTime) == "" {
		return []string{"reminder_time is required"}
	}
	return nil
}

// SetReminderSuccessResponse is the success response envelope for POST /attendees/{eventID}/reminder (201).
type SetReminderSuccessResponse struct {
	Data  *domain.Reminder  `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// SetReminder godoc
// @Summary Schedule a reminder email for an event
// @Description Schedules a reminder to the attendee's email on the given DD/MM/YYYY date. The reminder fires on that day's dispatch pass.
// @Tags attendees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param body body SetReminderRequest true "Reminder date (DD/MM/YYYY)"
// @Success 201 {object} controllers.SetReminderSuccessResponse "data contains the reminder"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /attendees/{eventID}/reminder [post]
func (c *AttendeeController) SetReminder(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	var req SetReminderRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	reminder, err := c.Service.SetReminder(r.Context(), eventID, claims.UserID, strings.TrimSpace(req.ReminderTime))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
			return
		}
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event or attendee profile not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, reminder)
}
