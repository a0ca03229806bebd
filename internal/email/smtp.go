// Package email delivers outbound notification email over the tenant's SMTP
// server via go-mail.
package email

import (
	"context"
	"fmt"
	"time"

	"conectaleads_backend/platform/config"

	gomail "github.com/wneessen/go-mail"
)

// SMTPSender delivers HTML email over a direct SMTP connection.
type SMTPSender struct {
	host      string
	port      int
	username  string
	password  string
	fromName  string
	fromEmail string
	enabled   bool
}

// NewSMTPSender builds a sender from the email configuration. A disabled
// sender accepts sends and drops them, so callers need no enabled checks.
func NewSMTPSender(cfg config.EmailConfig) *SMTPSender {
	return &SMTPSender{
		host:      cfg.GetSMTPHost(),
		port:      cfg.GetSMTPPort(),
		username:  cfg.GetSMTPUsername(),
		password:  cfg.GetSMTPPassword(),
		fromName:  cfg.GetEmailFromName(),
		fromEmail: cfg.GetEmailFromAddress(),
		enabled:   cfg.GetEmailEnabled(),
	}
}

// Send delivers one HTML message.
func (s *SMTPSender) Send(ctx context.Context, toEmail, subject, htmlContent string) error {
	if !s.enabled {
		return nil
	}

	msg := gomail.NewMsg()
	if err := msg.FromFormat(s.fromName, s.fromEmail); err != nil {
		return fmt.Errorf("smtp from: %w", err)
	}
	if err := msg.To(toEmail); err != nil {
		return fmt.Errorf("smtp to: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextHTML, htmlContent)

	client, err := gomail.NewClient(s.host,
		gomail.WithPort(s.port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(s.username),
		gomail.WithPassword(s.password),
		gomail.WithTLSPortPolicy(gomail.TLSOpportunistic),
		gomail.WithTimeout(15*time.Second),
	)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

// SendNotification renders the standard notification layout and delivers it.
func (s *SMTPSender) SendNotification(ctx context.Context, toEmail, subject, heading, body string) error {
	content, err := renderNotification(notificationData{
		Title:   subject,
		Heading: heading,
		Body:    body,
	})
	if err != nil {
		return err
	}
	return s.Send(ctx, toEmail, subject, content)
}
