package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"eventful/internal/domain"
)

const minPasswordLength = 8

var emailRegexp = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

type userService struct {
	userRepo      domain.UserRepository
	organizerRepo domain.OrganizerRepository
	attendeeRepo  domain.AttendeeRepository
	hasher        domain.PasswordHasher
	tokenIssuer   domain.TokenIssuer
	tokenExpiry   time.Duration
	emailService  domain.EmailService
}

// NewUserService creates a UserService with the given repositories and auth ports.
func NewUserService(userRepo domain.UserRepository, organizerRepo domain.OrganizerRepository, attendeeRepo domain.AttendeeRepository, hasher domain.PasswordHasher, tokenIssuer domain.TokenIssuer, tokenExpiry time.Duration, emailService domain.EmailService) domain.UserService {
	return &userService{
		userRepo:      userRepo,
		organizerRepo: organizerRepo,
		attendeeRepo:  attendeeRepo,
		hasher:        hasher,
		tokenIssuer:   tokenIssuer,
		tokenExpiry:   tokenExpiry,
		emailService:  emailService,
	}
}

func (s *userService) Register(ctx context.Context, name, username, email, password, role, organizationName string) (*domain.User, error) {
	name = strings.TrimSpace(name)
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(strings.ToLower(email))
	organizationName = strings.TrimSpace(organizationName)

	if name == "" || username == "" {
		return nil, fmt.Errorf("%w: name and username are required", domain.ErrInvalidInput)
	}
	if !emailRegexp.MatchString(email) {
		return nil, fmt.Errorf("%w: invalid email format", domain.ErrInvalidInput)
	}
	if len(password) < minPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", domain.ErrInvalidInput, minPasswordLength)
	}
	switch role {
	case domain.RoleOrganizer:
		if organizationName == "" {
			return nil, fmt.Errorf("%w: organization name is required for organizers", domain.ErrInvalidInput)
		}
	case domain.RoleAttendee:
	default:
		return nil, fmt.Errorf("%w: unknown role %q", domain.ErrInvalidInput, role)
	}

	salt, err := s.hasher.GenerateSalt()
	if err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}
	hash, err := s.hasher.Hash(salt, password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := domain.NewUser(name, username, email, role, now)
	user.Salt = salt
	user.PasswordHash = hash
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	switch role {
	case domain.RoleOrganizer:
		if err := s.organizerRepo.Create(ctx, domain.NewOrganizer(user.ID, organizationName, now)); err != nil {
			return nil, fmt.Errorf("failed to create organizer profile: %w", err)
		}
	case domain.RoleAttendee:
		if err := s.attendeeRepo.Create(ctx, domain.NewAttendee(user.ID, now)); err != nil {
			return nil, fmt.Errorf("failed to create attendee profile: %w", err)
		}
	}

	// Registration succeeds even when the welcome email does not.
	if s.emailService != nil {
		data := &domain.WelcomeEmailData{Email: user.Email, Name: user.Name, Year: now.Year()}
		if err := s.emailService.SendWelcome(ctx, data); err != nil {
			log.Printf("[USER] Failed to send welcome email to %s: %v", user.Email, err)
		}
	}
	return user, nil
}

func (s *userService) Login(ctx context.Context, email, password string) (string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", domain.ErrInvalidCredentials
		}
		return "", fmt.Errorf("failed to get user: %w", err)
	}
	if err := s.hasher.Compare(user.PasswordHash, user.Salt, password); err != nil {
		return "", domain.ErrInvalidCredentials
	}
	token, err := s.tokenIssuer.Issue(user.ID, user.Email, user.Role, s.tokenExpiry)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return token, nil
}

func (s *userService) GetProfile(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}
