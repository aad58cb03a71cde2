package domain

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors for ticket issuance and scanning.
var (
	// ErrSoldOut is returned when the event's capacity is exhausted.
	ErrSoldOut = errors.New("event is sold out")
	// ErrAlreadyScanned is returned when scanning a ticket whose scanned flag
	// is already set. Scanning is a one-way transition; repeats are rejected,
	// not treated as success.
	ErrAlreadyScanned = errors.New("ticket has already been scanned")
	// ErrInvalidTicketToken is returned when the ticket's signed token fails
	// verification (bad signature or expired).
	ErrInvalidTicketToken = errors.New("invalid or expired ticket token")
	// ErrQREncodeFailed is returned when QR rendering fails. Issuance aborts
	// before any record is written so the caller can simply retry.
	ErrQREncodeFailed = errors.New("failed to encode qr code")
)

// Ticket is the canonical ticket record. The QR code value doubles as the
// lookup key at scan time; the signed token is re-verified then.
// swagger:model Ticket
type Ticket struct {
	ID           string    `json:"id"`
	EventID      string    `json:"event_id"`
	UserID       string    `json:"user_id"`
	QRCode       string    `json:"qr_code"`
	Token        string    `json:"-"`
	Price        float64   `json:"price"`
	Scanned      bool      `json:"scanned"`
	PurchaseDate time.Time `json:"purchase_date"`
}

// TicketClaims is the payload bound into a signed ticket token.
type TicketClaims struct {
	EventID string
	UserID  string
}

// TicketTokenSigner signs and verifies ticket tokens. The token is the
// ticket's canonical identity; expiry is scoped to the event date, not the
// login-token TTL.
type TicketTokenSigner interface {
	Sign(claims *TicketClaims, expiresAt time.Time) (string, error)
	Verify(token string) (*TicketClaims, error)
}

// QREncoder renders a token into a scannable image encoding.
type QREncoder interface {
	// Encode returns the rendered code as a PNG data URL.
	Encode(data string) (string, error)
}

// TicketRepository defines the interface for ticket storage.
type TicketRepository interface {
	// Issue persists the ticket and increments the event's tickets_sold in a
	// single transaction. The increment is conditional on tickets_sold <
	// capacity; losing that race returns ErrSoldOut and nothing is written.
	Issue(ctx context.Context, ticket *Ticket) error
	GetByQRCode(ctx context.Context, qrCode string) (*Ticket, error)
	// MarkScanned flips scanned false->true. Returns ErrAlreadyScanned when
	// the flag was already set.
	MarkScanned(ctx context.Context, ticketID string) error
	// CountScannedByOwner counts scanned tickets across all events owned by the user.
	CountScannedByOwner(ctx context.Context, ownerUserID string) (int, error)
	CountScannedByEvent(ctx context.Context, eventID string) (int, error)
}

// TicketService defines ticket issuance and validation.
type TicketService interface {
	// IssueTicket admits the user against the event's capacity, signs a
	// ticket token, renders it as a QR code, and persists the ticket.
	IssueTicket(ctx context.Context, eventID, userID string) (*Ticket, error)
	// ScanTicket resolves the QR code to its ticket, verifies the embedded
	// token, checks that the scanner owns the event, and performs the
	// idempotent scan transition.
	ScanTicket(ctx context.Context, qrCode, scannerUserID, scannerRole string) error
}
