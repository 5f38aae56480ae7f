package wizard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/oklog/ulid/v2"

	"github.com/setuprelay/setuprelay/internal/mailer"
)

// Service errors.
var (
	ErrMissingFields = errors.New("missing required fields")
)

// ServiceConfig holds the addressing and behavior settings for submissions.
type ServiceConfig struct {
	// From is the sender identity on outgoing mail.
	From string
	// To is the internal notification recipient.
	To string
	// SalesEmail is CC'd on per-user submissions when set.
	SalesEmail string
	// SendConfirmation enables the customer thank-you email.
	SendConfirmation bool
}

// Service handles wizard submissions: validate, render, send, log.
type Service struct {
	sender mailer.Sender
	cfg    ServiceConfig
	logger *slog.Logger
}

// NewService creates a submission Service.
func NewService(sender mailer.Sender, cfg ServiceConfig, logger *slog.Logger) *Service {
	return &Service{
		sender: sender,
		cfg:    cfg,
		logger: logger,
	}
}

// Submit processes one submission. It validates the required fields, sends
// the notification email, and conditionally sends the confirmation email.
// The two sends are sequential and blocking; there is no retry.
//
// Returns ErrMissingFields for invalid payloads; any other error is a
// transport or rendering failure.
func (s *Service) Submit(ctx context.Context, sub Submission) error {
	if !sub.Valid() {
		return ErrMissingFields
	}

	notification, err := RenderNotification(sub)
	if err != nil {
		return err
	}

	email := &mailer.Email{
		From:    s.cfg.From,
		To:      []string{s.cfg.To},
		ReplyTo: sub.Email,
		Subject: s.subject(sub),
		HTML:    notification.HTML,
		Text:    notification.Text,
	}
	if sub.SalesFollowUp() && s.cfg.SalesEmail != "" {
		email.CC = []string{s.cfg.SalesEmail}
	}

	if err := s.sender.Send(ctx, email); err != nil {
		return fmt.Errorf("send notification: %w", err)
	}

	// Confirmation is only attempted once the notification went out.
	if s.cfg.SendConfirmation {
		confirmation, err := RenderConfirmation(sub)
		if err != nil {
			return err
		}

		if err := s.sender.Send(ctx, &mailer.Email{
			From:    s.cfg.From,
			To:      []string{mailer.Recipient(sub.YourName, sub.Email)},
			Subject: "Enterprise Setup - Next Steps",
			HTML:    confirmation.HTML,
			Text:    confirmation.Text,
		}); err != nil {
			return fmt.Errorf("send confirmation: %w", err)
		}
	}

	s.logger.Info("wizard_submission",
		slog.String("submission_id", ulid.Make().String()),
		slog.String("company_name", sub.CompanyName),
		slog.String("email", sub.Email),
		slog.Bool("sales_follow_up", sub.SalesFollowUp()),
	)

	return nil
}

// subject encodes the company name and whether sales follow-up is required.
func (s *Service) subject(sub Submission) string {
	tag := "API Setup"
	if sub.SalesFollowUp() {
		tag = "SALES REQUIRED"
	}
	return fmt.Sprintf("[Enterprise Setup] %s - %s", sub.CompanyName, tag)
}
