package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"eventful/internal/domain"
)

type ticketClaims struct {
	jwt.RegisteredClaims
	EventID string `json:"event_id"`
	UserID  string `json:"user_id"`
}

type ticketTokenSigner struct {
	secret []byte
}

// NewTicketTokenSigner returns a TicketTokenSigner backed by HS256 JWTs.
// Ticket tokens carry their own expiry (scoped to the event date) rather
// than the login-token TTL, so a ticket issued weeks ahead of the event is
// still scannable at the door.
func NewTicketTokenSigner(secret string) domain.TicketTokenSigner {
	return &ticketTokenSigner{secret: []byte(secret)}
}

func (s *ticketTokenSigner) Sign(c *domain.TicketClaims, expiresAt time.Time) (string, error) {
	now := time.Now()
	claims := ticketClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		EventID: c.EventID,
		UserID:  c.UserID,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign ticket token: %w", err)
	}
	return tokenString, nil
}

func (s *ticketTokenSigner) Verify(token string) (*domain.TicketClaims, error) {
	parsed, err := jwt.ParseWithClaims(token, &ticketClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, domain.ErrInvalidTicketToken
	}
	claims, ok := parsed.Claims.(*ticketClaims)
	if !ok || !parsed.Valid {
		return nil, domain.ErrInvalidTicketToken
	}
	return &domain.TicketClaims{
		EventID: claims.EventID,
		UserID:  claims.UserID,
	}, nil
}
