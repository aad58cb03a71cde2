package email

import (
	"bytes"
	"fmt"
	"html/template"

	"eventful/internal/domain"
)

const baseStyle = `
  body { font-family: Arial, sans-serif; background-color: #f4f4f4; margin: 0; padding: 20px; }
  .email-container { background-color: #ffffff; padding: 20px; margin: 0 auto; border-radius: 10px; max-width: 600px; box-shadow: 0 2px 3px rgba(0, 0, 0, 0.1); }
  .header { text-align: center; background-color: #d9534f; padding: 10px; color: white; border-radius: 10px 10px 0 0; }
  .content { padding: 20px; text-align: justify; }
  .footer { margin-top: 20px; text-align: center; color: #777777; font-size: 12px; }
`

const reminderHTML = `<html>
  <head><style>` + baseStyle + `</style></head>
  <body>
    <div class="email-container">
      <div class="header"><h1>Eventful</h1></div>
      <div class="content">
        <h2>Hello!</h2>
        <p>We are excited to inform you about your upcoming event!</p>
        <p><strong>Event:</strong> {{.EventTitle}}</p>
        <p><strong>Date:</strong> {{.EventDate}}</p>
        <p><strong>Location:</strong> {{.EventLocation}}</p>
        <br/>
        <p>We look forward to seeing you there!</p>
      </div>
      <div class="footer"><p>&copy; {{.Year}} Eventful. All rights reserved.</p></div>
    </div>
  </body>
</html>`

const welcomeHTML = `<html>
  <head><style>` + baseStyle + `</style></head>
  <body>
    <div class="email-container">
      <div class="header"><h1>Eventful</h1></div>
      <div class="content">
        <h2>Hello {{.Name}}!</h2>
        <p>Welcome to Eventful. Your account is ready: browse events, apply,
        and generate your tickets whenever you are.</p>
      </div>
      <div class="footer"><p>&copy; {{.Year}} Eventful. All rights reserved.</p></div>
    </div>
  </body>
</html>`

type templateRenderer struct {
	templates map[string]*template.Template
}

// NewTemplateRenderer returns an EmailTemplateRenderer with the built-in
// "reminder" and "welcome" templates.
func NewTemplateRenderer() (domain.EmailTemplateRenderer, error) {
	templates := make(map[string]*template.Template)
	for name, body := range map[string]string{
		"reminder": reminderHTML,
		"welcome":  welcomeHTML,
	} {
		t, err := template.New(name).Parse(body)
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", name, err)
		}
		templates[name] = t
	}
	return &templateRenderer{templates: templates}, nil
}

func (r *templateRenderer) Render(templateName string, data any) (subject, htmlBody, textBody string, err error) {
	t, ok := r.templates[templateName]
	if !ok {
		return "", "", "", fmt.Errorf("unknown email template %q", templateName)
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", "", "", fmt.Errorf("execute %s template: %w", templateName, err)
	}
	htmlBody = buf.String()

	switch templateName {
	case "reminder":
		d, ok := data.(*domain.ReminderEmailData)
		if !ok {
			return "", "", "", fmt.Errorf("reminder template expects *domain.ReminderEmailData")
		}
		subject = fmt.Sprintf("Reminder: %s is coming up!", d.EventTitle)
		textBody = fmt.Sprintf("Reminder: %s on %s at %s.", d.EventTitle, d.EventDate, d.EventLocation)
	case "welcome":
		d, ok := data.(*domain.WelcomeEmailData)
		if !ok {
			return "", "", "", fmt.Errorf("welcome template expects *domain.WelcomeEmailData")
		}
		subject = "Welcome to Eventful!"
		textBody = fmt.Sprintf("Hello %s, welcome to Eventful!", d.Name)
	}
	return subject, htmlBody, textBody, nil
}
