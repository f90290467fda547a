// Package email provides an email sending client.
//
// It uses Resend as the provider and renders HTML bodies from template
// files under templates/emails. With no API key configured, sends are
// logged and skipped so local development works without credentials.
package email

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/pkg/errors"
	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"

	"github.com/wellnest-hq/wellness-api/internal/config"
)

// Client wraps the Resend client and a logger.
type Client struct {
	client   *resend.Client
	logger   *zerolog.Logger
	from     string
	disabled bool
}

// NewClient creates an email Client from config. An empty API key yields
// a disabled client.
func NewClient(cfg *config.Config, logger *zerolog.Logger) *Client {
	fromName := cfg.Email.FromName
	if fromName == "" {
		fromName = "Wellnest"
	}
	fromAddress := cfg.Email.FromAddress
	if fromAddress == "" {
		fromAddress = "notifications@wellnest.dev"
	}

	return &Client{
		client:   resend.NewClient(cfg.Email.ResendAPIKey),
		logger:   logger,
		from:     fmt.Sprintf("%s <%s>", fromName, fromAddress),
		disabled: cfg.Email.ResendAPIKey == "",
	}
}

// SendEmail renders templateName with data and sends it to the recipient.
func (c *Client) SendEmail(to, subject string, templateName Template, data map[string]string) error {
	tmplPath := fmt.Sprintf("%s/%s.html", "templates/emails", templateName)

	tmpl, err := template.ParseFiles(tmplPath)
	if err != nil {
		return errors.Wrapf(err, "failed to parse email template %s", templateName)
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return errors.Wrapf(err, "failed to execute email template %s", templateName)
	}

	if c.disabled {
		c.logger.Info().
			Str("to", to).
			Str("subject", subject).
			Str("template", string(templateName)).
			Msg("email sending disabled, skipping send")
		return nil
	}

	params := &resend.SendEmailRequest{
		From:    c.from,
		To:      []string{to},
		Subject: subject,
		Html:    body.String(),
	}

	if _, err := c.client.Emails.Send(params); err != nil {
		return errors.Wrapf(err, "failed to send email to %s", to)
	}

	c.logger.Info().
		Str("to", to).
		Str("template", string(templateName)).
		Msg("email sent")

	return nil
}
