package domain

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors for user operations.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrDuplicateEmail     = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// Application roles. Every user has exactly one.
const (
	RoleOrganizer = "organizer"
	RoleAttendee  = "attendee"
)

// User represents a registered user
// swagger:model User
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Salt         string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewUser returns a new User with the given fields. ID is typically set by the repository on create.
func NewUser(name, username, email, role string, createdAt time.Time) *User {
	return &User{
		Name:      name,
		Username:  username,
		Email:     email,
		Role:      role,
		CreatedAt: createdAt,
	}
}

// PasswordHasher handles salt generation, hashing, and verification.
// Implementations may use bcrypt, argon2, etc.
type PasswordHasher interface {
	GenerateSalt() (string, error)
	Hash(salt, password string) (hash string, err error)
	Compare(hash, salt, password string) error
}

// AuthClaims is the verified identity carried by a login token.
type AuthClaims struct {
	UserID string
	Email  string
	Role   string
}

// TokenIssuer issues login tokens (e.g. JWT) for an authenticated user.
type TokenIssuer interface {
	Issue(userID, email, role string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a login token and returns the authenticated claims.
type TokenVerifier interface {
	Verify(token string) (*AuthClaims, error)
}

// UserRepository defines the interface for user storage
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
}

// UserService defines the business logic for registration and authentication.
type UserService interface {
	// Register creates the user plus the role profile (organizer or attendee).
	// Organizers must provide an organization name.
	Register(ctx context.Context, name, username, email, password, role, organizationName string) (*User, error)
	Login(ctx context.Context, email, password string) (token string, err error)
	GetProfile(ctx context.Context, userID string) (*User, error)
}
