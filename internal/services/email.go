package services

import (
	"context"
	"fmt"
	"log"

	"eventful/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
}

// NewEmailService returns an EmailService that uses the given Mailer and template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer) domain.EmailService {
	return &emailService{mailer: mailer, renderer: renderer}
}

// SendReminder sends an event reminder email using the "reminder" template.
func (s *emailService) SendReminder(ctx context.Context, data *domain.ReminderEmailData) error {
	if data == nil {
		return fmt.Errorf("reminder email data is nil")
	}
	subject, htmlBody, textBody, err := s.renderer.Render("reminder", data)
	if err != nil {
		return fmt.Errorf("failed to render reminder template: %w", err)
	}
	if err := s.mailer.Send(data.Email, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send reminder email: %w", err)
	}
	log.Printf("[EMAIL] Reminder for %q sent to %s", data.EventTitle, data.Email)
	return nil
}

// SendWelcome sends a registration welcome email using the "welcome" template.
func (s *emailService) SendWelcome(ctx context.Context, data *domain.WelcomeEmailData) error {
	if data == nil {
		return fmt.Errorf("welcome email data is nil")
	}
	subject, htmlBody, textBody, err := s.renderer.Render("welcome", data)
	if err != nil {
		return fmt.Errorf("failed to render welcome template: %w", err)
	}
	if err := s.mailer.Send(data.Email, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send welcome email: %w", err)
	}
	log.Printf("[EMAIL] Welcome email sent to %s", data.Email)
	return nil
}
