package domain

import "context"

// Cache kinds for analytics entries.
const (
	AnalyticsKindOverall = "overall"
	AnalyticsKindEvent   = "event"
)

// EventAnalytics aggregates applicant and ticket counts, either for a single
// event or across all of an organizer's events.
// swagger:model EventAnalytics
type EventAnalytics struct {
	Applicants     int `json:"applicants"`
	TicketsSold    int `json:"tickets_sold"`
	ScannedTickets int `json:"scanned_tickets"`
}

// AnalyticsCache caches analytics keyed by (kind, id) with TTL eviction.
// Write paths that change the underlying counts (issuance, scan, application)
// must invalidate the affected entries rather than waiting out the TTL.
type AnalyticsCache interface {
	Get(kind, id string) (*EventAnalytics, bool)
	Set(kind, id string, data *EventAnalytics)
	Invalidate(kind, id string)
}

// AnalyticsService computes organizer analytics.
type AnalyticsService interface {
	// Overall aggregates across all events owned by the organizer.
	Overall(ctx context.Context, ownerUserID string) (*EventAnalytics, error)
	// ForEvent aggregates a single event, owner-checked.
	ForEvent(ctx context.Context, eventID, ownerUserID string) (*EventAnalytics, error)
	// InvalidateOrganizer drops the organizer's cached overall entry after a
	// write that changes its counts (issuance, scan, application).
	InvalidateOrganizer(organizerID string)
	// InvalidateEvent drops a single event's cached entry after a write.
	InvalidateEvent(eventID string)
}
