package notification

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"

	"sokoni/models"
)

// SMTPConfig carries the injected mailer credentials.
type SMTPConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

// emailTemplates maps template names to their HTML bodies. Context keys are
// interpolated with html/template.
var emailTemplates = map[string]string{
	models.EmailTemplateRequestReceived: `<p>Hello {{.name}},</p>
<p>We received your seller application for <b>{{.shopName}}</b>. Our team will review it shortly and you will hear from us by email.</p>`,

	models.EmailTemplateRequestApproved: `<p>Hello {{.name}},</p>
<p>Congratulations! Your seller application has been approved and your shop <b>{{.shopName}}</b> is now live.</p>`,

	models.EmailTemplateRequestRejected: `<p>Hello {{.name}},</p>
<p>Unfortunately your seller application was not approved.</p>
<p>Reason: {{.reason}}</p>
<p>You may submit a new application after addressing the issue above.</p>`,

	models.EmailTemplateSubscriptionActive: `<p>Hello {{.name}},</p>
<p>Your payment was confirmed and your seller subscription is now active until {{.expiresAt}}.</p>`,

	models.EmailTemplateWithdrawalStatus: `<p>Hello {{.name}},</p>
<p>Your withdrawal of {{.amount}} {{.currency}} is now <b>{{.status}}</b>.</p>`,
}

// SMTPMailer sends templated HTML email over SMTP.
type SMTPMailer struct {
	cfg       SMTPConfig
	templates map[string]*template.Template
}

// NewSMTPMailer parses all known templates up front so a malformed template
// fails at startup, not mid-request.
func NewSMTPMailer(cfg SMTPConfig) (*SMTPMailer, error) {
	parsed := make(map[string]*template.Template, len(emailTemplates))
	for name, body := range emailTemplates {
		tmpl, err := template.New(name).Parse(body)
		if err != nil {
			return nil, fmt.Errorf("mailer: failed to parse template %s: %w", name, err)
		}
		parsed[name] = tmpl
	}
	return &SMTPMailer{cfg: cfg, templates: parsed}, nil
}

// Render produces the HTML body for the given message.
func (m *SMTPMailer) Render(msg models.EmailMessage) (string, error) {
	tmpl, ok := m.templates[msg.Template]
	if !ok {
		return "", fmt.Errorf("mailer: unknown template %q", msg.Template)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, msg.Context); err != nil {
		return "", fmt.Errorf("mailer: failed to render template %s: %w", msg.Template, err)
	}
	return buf.String(), nil
}

// Send renders and delivers the message.
func (m *SMTPMailer) Send(msg models.EmailMessage) error {
	body, err := m.Render(msg)
	if err != nil {
		return err
	}

	var raw bytes.Buffer
	fmt.Fprintf(&raw, "From: %s\r\n", m.cfg.From)
	fmt.Fprintf(&raw, "To: %s\r\n", msg.To)
	fmt.Fprintf(&raw, "Subject: %s\r\n", msg.Subject)
	raw.WriteString("MIME-Version: 1.0\r\n")
	raw.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	raw.WriteString("\r\n")
	raw.WriteString(body)

	addr := m.cfg.Host + ":" + m.cfg.Port
	auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	if err := smtp.SendMail(addr, auth, m.cfg.From, []string{msg.To}, raw.Bytes()); err != nil {
		return fmt.Errorf("mailer: failed to send email to %s: %w", msg.To, err)
	}
	return nil
}
