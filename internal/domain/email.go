package domain

import "context"

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// ReminderEmailData holds data for the event reminder email.
type ReminderEmailData struct {
	Email         string
	EventTitle    string
	EventDate     string // formatted, e.g. "Monday June 15, 2026"
	EventLocation string
	Year          int
}

// WelcomeEmailData holds data for the registration welcome email.
type WelcomeEmailData struct {
	Email string
	Name  string
	Year  int
}

// EmailService defines the contract for sending domain-level emails.
type EmailService interface {
	SendReminder(ctx context.Context, data *ReminderEmailData) error
	SendWelcome(ctx context.Context, data *WelcomeEmailData) error
}
