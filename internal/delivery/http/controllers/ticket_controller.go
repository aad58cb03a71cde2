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

type TicketController struct {
	Logger  *slog.Logger
	Service domain.TicketService
}

func NewTicketController(logger *slog.Logger, svc domain.TicketService) *TicketController {
	return &TicketController{
		Logger:  logger,
		Service: svc,
	}
}

// GenerateTicketSuccessResponse is the success response envelope for POST /tickets/{eventID}/generate-ticket (201).
type GenerateTicketSuccessResponse struct {
	Data  *domain.Ticket    `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// GenerateTicket godoc
// @Summary Issue a ticket for an event
// @Description Issues one ticket for the authenticated attendee: signs a ticket token, renders it as a QR code data URL, and increments the event's sold count atomically against capacity.
// @Tags tickets
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 201 {object} controllers.GenerateTicketSuccessResponse "data contains the ticket with its qr_code"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found (event or attendee profile)"
// @Failure 410 {object} helpers.APIResponse "error.code: sold_out"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /tickets/{eventID}/generate-ticket [post]
func (c *TicketController) GenerateTicket(w http.ResponseWriter, r *http.Request) {
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
	ticket, err := c.Service.IssueTicket(r.Context(), eventID, claims.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event or attendee profile not found")
			return
		}
		if errors.Is(err, domain.ErrSoldOut) {
			helpers.WriteJSONError(w, http.StatusGone, helpers.ErrCodeSoldOut, "event is sold out")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, ticket)
}

// ScanTicketRequest is the request body for POST /tickets/scan-ticket.
type ScanTicketRequest struct {
	QRCode string `json:"qr_code"`
}

// Validate implements Validator.
func (s ScanTicketRequest) Validate() []string {
	if strings.TrimSpace(s.QRCode) == "" {
		return []string{"qr_code is required"}
	}
	return nil
}

// ScanTicketResponse is the data payload for POST /tickets/scan-ticket (200).
type ScanTicketResponse struct {
	Status string `json:"status"`
}

// ScanTicketSuccessResponse is the success response envelope for POST /tickets/scan-ticket (200).
type ScanTicketSuccessResponse struct {
	Data  ScanTicketResponse `json:"data"`
	Error *helpers.APIError  `json:"error"`
}

// ScanTicket godoc
// @Summary Scan a ticket at the venue
// @Description Resolves the QR code to its ticket, verifies the embedded token, checks that the scanner owns the event, and marks the ticket scanned. Repeats are rejected with 400.
// @Tags tickets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body ScanTicketRequest true "Scanned QR code value"
// @Success 200 {object} controllers.ScanTicketSuccessResponse "data contains status"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request (invalid token or already scanned)"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not an organizer)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found (ticket or event)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /tickets/scan-ticket [post]
func (c *TicketController) ScanTicket(w http.ResponseWriter, r *http.Request) {
	var req ScanTicketRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	if err := c.Service.ScanTicket(r.Context(), strings.TrimSpace(req.QRCode), claims.UserID, claims.Role); err != nil {
		if errors.Is(err, domain.ErrForbidden) {
			helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, "organizer role required")
			return
		}
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "ticket or event not found")
			return
		}
		if errors.Is(err, domain.ErrInvalidTicketToken) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid or expired ticket token")
			return
		}
		if errors.Is(err, domain.ErrAlreadyScanned) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "ticket has already been scanned")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, ScanTicketResponse{Status: "scanned"})
}
