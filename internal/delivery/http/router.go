package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"eventful/internal/delivery/http/controllers"
	"eventful/internal/delivery/http/middleware"
	"eventful/internal/domain"
)

// NewRouter initializes the HTTP router with all application routes.
func NewRouter(
	userController *controllers.UserController,
	eventController *controllers.EventController,
	attendeeController *controllers.AttendeeController,
	ticketController *controllers.TicketController,
	analyticsController *controllers.AnalyticsController,
	verifier domain.TokenVerifier,
) *http.ServeMux {
	mux := http.NewServeMux()
	auth := middleware.RequireAuth(verifier)

	// Users
	mux.HandleFunc("POST /users/register", userController.Register)
	mux.HandleFunc("POST /users/login", userController.Login)
	mux.HandleFunc("GET /users/profile", auth(userController.GetProfile))

	// Events. Listing, search, and detail are public; the rest is owner-scoped.
	mux.HandleFunc("GET /events", eventController.ListEvents)
	mux.HandleFunc("GET /events/search", eventController.SearchEvents)
	mux.HandleFunc("GET /events/me", auth(eventController.ListMyEvents))
	mux.HandleFunc("GET /events/{eventID}", eventController.GetEvent)
	mux.HandleFunc("POST /events", auth(eventController.CreateEvent))
	mux.HandleFunc("DELETE /events/{eventID}", auth(eventController.DeleteEvent))
	mux.HandleFunc("GET /events/{eventID}/applicants", auth(eventController.ListApplicants))

	// Attendees
	mux.HandleFunc("POST /attendees/{eventID}/apply", auth(attendeeController.Apply))
	mux.HandleFunc("GET /attendees/applied-events", auth(attendeeController.ListAppliedEvents))
	mux.HandleFunc("POST /attendees/{eventID}/reminder", auth(attendeeController.SetReminder))

	// Tickets
	mux.HandleFunc("POST /tickets/{eventID}/generate-ticket", auth(ticketController.GenerateTicket))
	mux.HandleFunc("POST /tickets/scan-ticket", auth(ticketController.ScanTicket))

	// Analytics
	mux.HandleFunc("GET /analytics/overall", auth(analyticsController.Overall))
	mux.HandleFunc("GET /analytics/event/{eventID}", auth(analyticsController.ForEvent))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
