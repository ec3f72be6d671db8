package notification

import (
	"testing"

	"sokoni/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMailer(t *testing.T) *SMTPMailer {
	t.Helper()
	mailer, err := NewSMTPMailer(SMTPConfig{
		Host: "localhost",
		Port: "1025",
		From: "noreply@sokoni.example.com",
	})
	require.NoError(t, err)
	return mailer
}

func TestRenderAllTemplates(t *testing.T) {
	mailer := newTestMailer(t)

	ctx := map[string]string{
		"name":      "Awa Diop",
		"shopName":  "Awa Crafts",
		"reason":    "documents illegible",
		"expiresAt": "30 September 2026",
		"amount":    "120.00",
		"currency":  "usd",
		"status":    "processing",
	}

	for name := range emailTemplates {
		body, err := mailer.Render(models.EmailMessage{Template: name, Context: ctx})
		require.NoError(t, err, "template %s", name)
		assert.Contains(t, body, "Awa", "template %s", name)
	}
}

func TestRenderEscapesHTML(t *testing.T) {
	mailer := newTestMailer(t)

	body, err := mailer.Render(models.EmailMessage{
		Template: models.EmailTemplateRequestRejected,
		Context: map[string]string{
			"name":   "<script>alert(1)</script>",
			"reason": "bad",
		},
	})
	require.NoError(t, err)
	assert.NotContains(t, body, "<script>")
}

func TestRenderUnknownTemplate(t *testing.T) {
	mailer := newTestMailer(t)

	_, err := mailer.Render(models.EmailMessage{Template: "nonexistent"})
	assert.Error(t, err)
}
