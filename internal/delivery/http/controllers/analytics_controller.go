package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"eventful/internal/delivery/http/helpers"
	"eventful/internal/delivery/http/middleware"
	"eventful/internal/domain"
)

type AnalyticsController struct {
	Logger  *slog.Logger
	Service domain.AnalyticsService
}

func NewAnalyticsController(logger *slog.Logger, svc domain.AnalyticsService) *AnalyticsController {
	return &AnalyticsController{
		Logger:  logger,
		Service: svc,
	}
}

// AnalyticsSuccessResponse is the success response envelope for the analytics endpoints (200).
type AnalyticsSuccessResponse struct {
	Data  *domain.EventAnalytics `json:"data"`
	Error *helpers.APIError      `json:"error"`
}

// Overall godoc
// @Summary Get aggregate analytics across all owned events
// @Description Returns applicant, sold, and scanned counts over every event the organizer owns. Cached; write paths invalidate.
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.AnalyticsSuccessResponse "data contains the aggregate counts"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not an organizer)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /analytics/overall [get]
func (c *AnalyticsController) Overall(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	data, err := c.Service.Overall(r.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrForbidden) {
			helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, "organizer role required")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, data)
}

// ForEvent godoc
// @Summary Get analytics for one event
// @Description Returns applicant, sold, and scanned counts for a single event. Only the event owner can read.
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} controllers.AnalyticsSuccessResponse "data contains the event counts"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /analytics/event/{eventID} [get]
func (c *AnalyticsController) ForEvent(w http.ResponseWriter, r *http.Request) {
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
	data, err := c.Service.ForEvent(r.Context(), eventID, claims.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, data)
}
