// Package mailer provides the outbound email transport layer.
// Transports implement the Sender interface so the submission service can be
// tested against a fake without touching a real mail provider.
package mailer

import (
	"context"
	"fmt"
)

// Email represents a fully-prepared email message ready for sending.
type Email struct {
	From    string   // Sender identity ("Name <addr>" or bare address)
	To      []string // Recipients (at least one required)
	CC      []string // Carbon copy recipients
	ReplyTo string   // Reply-to address
	Subject string   // Email subject
	HTML    string   // HTML body
	Text    string   // Plain text alternative
}

// Sender is the minimal interface a mail transport must implement.
// It accepts a fully-prepared Email and handles the actual delivery.
type Sender interface {
	Send(ctx context.Context, email *Email) error
}

// Recipient formats a name and email into RFC 5322 address format.
// Returns "Name <email>" if name is provided, otherwise just email.
func Recipient(name, email string) string {
	if name == "" {
		return email
	}
	return fmt.Sprintf("%s <%s>", name, email)
}

// Config holds transport configuration.
// Service selects the transport: "resend" (API), "gmail" (SMTP preset),
// or empty for raw SMTP.
type Config struct {
	Service     string
	User        string
	AppPassword string

	SMTPHost   string
	SMTPPort   int
	SMTPSecure bool
	SMTPUser   string
	SMTPPass   string

	From string
}

// gmailHost is the provider-managed SMTP preset for EMAIL_SERVICE=gmail.
const (
	gmailHost = "smtp.gmail.com"
	gmailPort = 587
)

// New builds a Sender from configuration. When no transport settings are
// present it returns an Unconfigured sender: the process keeps serving and
// every send fails with ErrNotConfigured.
func New(cfg Config) Sender {
	switch cfg.Service {
	case "resend":
		if cfg.AppPassword == "" {
			return Unconfigured{}
		}
		return NewResendSender(cfg.AppPassword, cfg.From)
	case "gmail":
		if cfg.User == "" || cfg.AppPassword == "" {
			return Unconfigured{}
		}
		return NewSMTPSender(SMTPConfig{
			Host:     gmailHost,
			Port:     gmailPort,
			Username: cfg.User,
			Password: cfg.AppPassword,
			From:     cfg.From,
		})
	default:
		if cfg.SMTPHost == "" {
			return Unconfigured{}
		}
		return NewSMTPSender(SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Secure:   cfg.SMTPSecure,
			Username: cfg.SMTPUser,
			Password: cfg.SMTPPass,
			From:     cfg.From,
		})
	}
}
