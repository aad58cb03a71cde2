package services

import (
	"context"
	"fmt"
	"time"

	"eventful/internal/domain"
)

// Map-backed repository mocks shared by the service tests.

type mockUserRepo struct {
	users     map[string]*domain.User
	createErr error
	created   []*domain.User
}

func (m *mockUserRepo) Create(ctx context.Context, user *domain.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	if user.ID == "" {
		user.ID = fmt.Sprintf("u%d", len(m.created)+1)
	}
	m.created = append(m.created, user)
	if m.users == nil {
		m.users = map[string]*domain.User{}
	}
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

type mockOrganizerRepo struct {
	byUserID map[string]*domain.Organizer
	created  []*domain.Organizer
}

func (m *mockOrganizerRepo) Create(ctx context.Context, organizer *domain.Organizer) error {
	if organizer.ID == "" {
		organizer.ID = fmt.Sprintf("org%d", len(m.created)+1)
	}
	m.created = append(m.created, organizer)
	return nil
}

func (m *mockOrganizerRepo) GetByUserID(ctx context.Context, userID string) (*domain.Organizer, error) {
	o, ok := m.byUserID[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return o, nil
}

type mockAttendeeRepo struct {
	byUserID map[string]*domain.Attendee
	created  []*domain.Attendee
}

func (m *mockAttendeeRepo) Create(ctx context.Context, attendee *domain.Attendee) error {
	if attendee.ID == "" {
		attendee.ID = fmt.Sprintf("att%d", len(m.created)+1)
	}
	m.created = append(m.created, attendee)
	return nil
}

func (m *mockAttendeeRepo) GetByUserID(ctx context.Context, userID string) (*domain.Attendee, error) {
	a, ok := m.byUserID[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return a, nil
}

type mockEventRepo struct {
	events map[string]*domain.Event
	// ownerOf maps event ID to the owning user's ID for owner-scoped lookups.
	ownerOf map[string]string
	created []*domain.Event
	err     error
}

func (m *mockEventRepo) Create(ctx context.Context, event *domain.Event) error {
	if m.err != nil {
		return m.err
	}
	if event.ID == "" {
		event.ID = fmt.Sprintf("e%d", len(m.created)+1)
	}
	m.created = append(m.created, event)
	if m.events == nil {
		m.events = map[string]*domain.Event{}
	}
	m.events[event.ID] = event
	return nil
}

func (m *mockEventRepo) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	if m.err != nil {
		return nil, m.err
	}
	ev, ok := m.events[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return ev, nil
}

func (m *mockEventRepo) GetByIDAndOwner(ctx context.Context, eventID, ownerUserID string) (*domain.Event, error) {
	if m.err != nil {
		return nil, m.err
	}
	ev, ok := m.events[eventID]
	if !ok || m.ownerOf[eventID] != ownerUserID {
		return nil, domain.ErrNotFound
	}
	return ev, nil
}

func (m *mockEventRepo) List(ctx context.Context, params domain.PaginationParams) ([]*domain.Event, int, error) {
	if m.err != nil {
		return nil, 0, m.err
	}
	out := make([]*domain.Event, 0, len(m.events))
	for _, ev := range m.events {
		out = append(out, ev)
	}
	return out, len(out), nil
}

func (m *mockEventRepo) Search(ctx context.Context, query string) ([]*domain.Event, error) {
	return nil, m.err
}

func (m *mockEventRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]*domain.Event, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []*domain.Event
	for id, owner := range m.ownerOf {
		if owner == ownerUserID {
			out = append(out, m.events[id])
		}
	}
	return out, nil
}

func (m *mockEventRepo) DeleteByIDAndOwner(ctx context.Context, eventID, ownerUserID string) error {
	if _, ok := m.events[eventID]; !ok || m.ownerOf[eventID] != ownerUserID {
		return domain.ErrNotFound
	}
	delete(m.events, eventID)
	return nil
}

func (m *mockEventRepo) SumTicketsSoldByOwner(ctx context.Context, ownerUserID string) (int, error) {
	sum := 0
	for id, owner := range m.ownerOf {
		if owner == ownerUserID {
			sum += m.events[id].TicketsSold
		}
	}
	return sum, nil
}

type mockTicketRepo struct {
	byQRCode       map[string]*domain.Ticket
	issued         []*domain.Ticket
	issueErr       error
	scanned        map[string]bool
	scannedByOwner int
	scannedByEvent int
	countCalls     int
}

func (m *mockTicketRepo) Issue(ctx context.Context, ticket *domain.Ticket) error {
	if m.issueErr != nil {
		return m.issueErr
	}
	m.issued = append(m.issued, ticket)
	return nil
}

func (m *mockTicketRepo) GetByQRCode(ctx context.Context, qrCode string) (*domain.Ticket, error) {
	t, ok := m.byQRCode[qrCode]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return t, nil
}

func (m *mockTicketRepo) MarkScanned(ctx context.Context, ticketID string) error {
	if m.scanned == nil {
		m.scanned = map[string]bool{}
	}
	if m.scanned[ticketID] {
		return domain.ErrAlreadyScanned
	}
	m.scanned[ticketID] = true
	return nil
}

func (m *mockTicketRepo) CountScannedByOwner(ctx context.Context, ownerUserID string) (int, error) {
	m.countCalls++
	return m.scannedByOwner, nil
}

func (m *mockTicketRepo) CountScannedByEvent(ctx context.Context, eventID string) (int, error) {
	m.countCalls++
	return m.scannedByEvent, nil
}

type mockApplicationRepo struct {
	// applied is keyed by "eventID:userID".
	applied      map[string]bool
	created      []*domain.EventApplication
	byEventID    map[string][]*domain.EventApplication
	eventsByUser map[string][]*domain.Event
	countOwner   int
	countEvent   int
	countCalls   int
}

func (m *mockApplicationRepo) Create(ctx context.Context, app *domain.EventApplication) error {
	key := app.EventID + ":" + app.UserID
	if m.applied[key] {
		return domain.ErrAlreadyApplied
	}
	if m.applied == nil {
		m.applied = map[string]bool{}
	}
	m.applied[key] = true
	m.created = append(m.created, app)
	return nil
}

func (m *mockApplicationRepo) ListByEventID(ctx context.Context, eventID string) ([]*domain.EventApplication, error) {
	return m.byEventID[eventID], nil
}

func (m *mockApplicationRepo) ListEventsByUserID(ctx context.Context, userID string) ([]*domain.Event, error) {
	return m.eventsByUser[userID], nil
}

func (m *mockApplicationRepo) CountByOwner(ctx context.Context, ownerUserID string) (int, error) {
	m.countCalls++
	return m.countOwner, nil
}

func (m *mockApplicationRepo) CountByEventID(ctx context.Context, eventID string) (int, error) {
	m.countCalls++
	return m.countEvent, nil
}

type mockReminderRepo struct {
	due      map[string][]*domain.DueReminder
	created  []*domain.Reminder
	sent     map[string]bool
	claimErr error
	listErr  error
}

func (m *mockReminderRepo) Create(ctx context.Context, reminder *domain.Reminder) error {
	m.created = append(m.created, reminder)
	return nil
}

func (m *mockReminderRepo) ListDue(ctx context.Context, remindOn string) ([]*domain.DueReminder, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var out []*domain.DueReminder
	for _, d := range m.due[remindOn] {
		if !m.sent[d.Reminder.ID] {
			out = append(out, d)
		}
	}
	return out, nil
}

func (m *mockReminderRepo) ClaimSent(ctx context.Context, reminderID string) (bool, error) {
	if m.claimErr != nil {
		return false, m.claimErr
	}
	if m.sent == nil {
		m.sent = map[string]bool{}
	}
	if m.sent[reminderID] {
		return false, nil
	}
	m.sent[reminderID] = true
	return true, nil
}

// Port fakes.

type fakeTicketSigner struct {
	tokens        map[string]*domain.TicketClaims
	signErr       error
	verifyErr     error
	lastExpiresAt time.Time
}

func (f *fakeTicketSigner) Sign(claims *domain.TicketClaims, expiresAt time.Time) (string, error) {
	if f.signErr != nil {
		return "", f.signErr
	}
	f.lastExpiresAt = expiresAt
	token := "tok:" + claims.EventID + ":" + claims.UserID
	if f.tokens == nil {
		f.tokens = map[string]*domain.TicketClaims{}
	}
	f.tokens[token] = claims
	return token, nil
}

func (f *fakeTicketSigner) Verify(token string) (*domain.TicketClaims, error) {
	if f.verifyErr != nil {
		return nil, f.verifyErr
	}
	claims, ok := f.tokens[token]
	if !ok {
		return nil, domain.ErrInvalidTicketToken
	}
	return claims, nil
}

type fakeQREncoder struct {
	err error
}

func (f *fakeQREncoder) Encode(data string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "data:image/png;base64,qr(" + data + ")", nil
}

type fakeTaskQueue struct {
	enqueued []*domain.DueReminder
	err      error
}

func (f *fakeTaskQueue) EnqueueReminderSend(ctx context.Context, task *domain.DueReminder) error {
	if f.err != nil {
		return f.err
	}
	f.enqueued = append(f.enqueued, task)
	return nil
}

type fakeAnalytics struct {
	invalidatedOrganizers []string
	invalidatedEvents     []string
}

func (f *fakeAnalytics) Overall(ctx context.Context, ownerUserID string) (*domain.EventAnalytics, error) {
	return nil, nil
}

func (f *fakeAnalytics) ForEvent(ctx context.Context, eventID, ownerUserID string) (*domain.EventAnalytics, error) {
	return nil, nil
}

func (f *fakeAnalytics) InvalidateOrganizer(organizerID string) {
	f.invalidatedOrganizers = append(f.invalidatedOrganizers, organizerID)
}

func (f *fakeAnalytics) InvalidateEvent(eventID string) {
	f.invalidatedEvents = append(f.invalidatedEvents, eventID)
}

type fakeAnalyticsCache struct {
	entries map[string]*domain.EventAnalytics
}

func (f *fakeAnalyticsCache) cacheKey(kind, id string) string { return kind + "-" + id }

func (f *fakeAnalyticsCache) Get(kind, id string) (*domain.EventAnalytics, bool) {
	data, ok := f.entries[f.cacheKey(kind, id)]
	return data, ok
}

func (f *fakeAnalyticsCache) Set(kind, id string, data *domain.EventAnalytics) {
	if f.entries == nil {
		f.entries = map[string]*domain.EventAnalytics{}
	}
	f.entries[f.cacheKey(kind, id)] = data
}

func (f *fakeAnalyticsCache) Invalidate(kind, id string) {
	delete(f.entries, f.cacheKey(kind, id))
}

type fakeBlobStore struct {
	uploads int
	err     error
}

func (f *fakeBlobStore) Upload(ctx context.Context, filename, contentType string, data []byte) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.uploads++
	return "https://cdn.example.com/backdrops/" + filename, nil
}

type fakeHasher struct{}

func (fakeHasher) GenerateSalt() (string, error) { return "salt", nil }

func (fakeHasher) Hash(salt, password string) (string, error) { return salt + ":" + password, nil }

func (fakeHasher) Compare(hash, salt, password string) error {
	if hash != salt+":"+password {
		return fmt.Errorf("hash mismatch")
	}
	return nil
}

type fakeTokenIssuer struct {
	lastRole string
}

func (f *fakeTokenIssuer) Issue(userID, email, role string, expiry time.Duration) (string, error) {
	f.lastRole = role
	return "login-token:" + userID, nil
}

type fakeEmailService struct {
	reminders []*domain.ReminderEmailData
	welcomes  []*domain.WelcomeEmailData
	err       error
}

func (f *fakeEmailService) SendReminder(ctx context.Context, data *domain.ReminderEmailData) error {
	if f.err != nil {
		return f.err
	}
	f.reminders = append(f.reminders, data)
	return nil
}

func (f *fakeEmailService) SendWelcome(ctx context.Context, data *domain.WelcomeEmailData) error {
	if f.err != nil {
		return f.err
	}
	f.welcomes = append(f.welcomes, data)
	return nil
}
