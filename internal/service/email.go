package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/resend/resend-go/v2"
)

type EmailService struct {
	client    *resend.Client
	fromEmail string
	logOnly   bool
	appURL    string
}

// NewEmailService returns a sender backed by Resend. With logOnly set, or
// without an API key, emails are written to the log instead.
func NewEmailService(apiKey, fromEmail, appURL string, logOnly bool) *EmailService {
	var client *resend.Client
	if apiKey != "" && !logOnly {
		client = resend.NewClient(apiKey)
	}

	return &EmailService{
		client:    client,
		fromEmail: fromEmail,
		logOnly:   logOnly,
		appURL:    appURL,
	}
}

func (s *EmailService) SendVerificationCode(ctx context.Context, email, username, code string) error {
	verifyURL := fmt.Sprintf("%s/verify", s.appURL)
	subject, html, text := verificationEmailTemplate(code, username, verifyURL)

	if s.logOnly {
		slog.Info("email sent (log mode)", "type", "verification", "to", email, "subject", subject, "code", code)
		return nil
	}

	if s.client == nil {
		return fmt.Errorf("email service not configured (missing RESEND_API_KEY)")
	}

	params := &resend.SendEmailRequest{
		From:    s.fromEmail,
		To:      []string{email},
		Subject: subject,
		Html:    html,
		Text:    text,
	}

	_, err := s.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return fmt.Errorf("resend: %w", err)
	}

	slog.Info("email sent", "type", "verification", "to", email)
	return nil
}
