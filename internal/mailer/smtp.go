package mailer

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"mime/multipart"
	"net/smtp"
	"net/textproto"
	"strings"
)

// SMTPConfig holds the configuration for SMTP connections.
type SMTPConfig struct {
	Host     string
	Port     int
	Secure   bool // implicit TLS (port 465); otherwise opportunistic STARTTLS
	Username string
	Password string
	From     string
}

// SMTPSender delivers email over SMTP.
type SMTPSender struct {
	cfg SMTPConfig
}

// NewSMTPSender creates an SMTP-backed Sender.
func NewSMTPSender(cfg SMTPConfig) *SMTPSender {
	return &SMTPSender{cfg: cfg}
}

// Send implements Sender. The context is accepted for interface symmetry;
// net/smtp does not support cancellation mid-transaction.
func (s *SMTPSender) Send(_ context.Context, email *Email) error {
	if len(email.To) == 0 {
		return ErrNoRecipient
	}

	from := email.From
	if from == "" {
		from = s.cfg.From
	}

	msg, err := buildMessage(from, email)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSendFailed, err)
	}

	var auth smtp.Auth
	if s.cfg.Username != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	recipients := envelopeRecipients(email)
	envelopeFrom := bareAddress(from)

	if s.cfg.Secure {
		if err := s.sendTLS(addr, auth, envelopeFrom, recipients, msg); err != nil {
			return fmt.Errorf("%w: %v", ErrSendFailed, err)
		}
		return nil
	}

	if err := smtp.SendMail(addr, auth, envelopeFrom, recipients, msg); err != nil {
		return fmt.Errorf("%w: %v", ErrSendFailed, err)
	}
	return nil
}

// sendTLS performs the SMTP transaction over an implicit TLS connection.
func (s *SMTPSender) sendTLS(addr string, auth smtp.Auth, from string, to []string, msg []byte) error {
	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: s.cfg.Host})
	if err != nil {
		return err
	}

	client, err := smtp.NewClient(conn, s.cfg.Host)
	if err != nil {
		conn.Close()
		return err
	}
	defer client.Close()

	if auth != nil {
		if err := client.Auth(auth); err != nil {
			return err
		}
	}
	if err := client.Mail(from); err != nil {
		return err
	}
	for _, rcpt := range to {
		if err := client.Rcpt(rcpt); err != nil {
			return err
		}
	}

	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}

	return client.Quit()
}

// buildMessage assembles an RFC 5322 message with a multipart/alternative
// body carrying the text and HTML representations.
func buildMessage(from string, email *Email) ([]byte, error) {
	var buf bytes.Buffer
	alt := multipart.NewWriter(&buf)

	fmt.Fprintf(&buf, "From: %s\r\n", sanitizeHeader(from))
	fmt.Fprintf(&buf, "To: %s\r\n", sanitizeHeader(strings.Join(email.To, ", ")))
	if len(email.CC) > 0 {
		fmt.Fprintf(&buf, "Cc: %s\r\n", sanitizeHeader(strings.Join(email.CC, ", ")))
	}
	if email.ReplyTo != "" {
		fmt.Fprintf(&buf, "Reply-To: %s\r\n", sanitizeHeader(email.ReplyTo))
	}
	fmt.Fprintf(&buf, "Subject: %s\r\n", sanitizeHeader(email.Subject))
	buf.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&buf, "Content-Type: multipart/alternative; boundary=%q\r\n", alt.Boundary())
	buf.WriteString("\r\n")

	// Plain text first, HTML last: clients prefer the final part.
	if err := writePart(alt, "text/plain; charset=UTF-8", email.Text); err != nil {
		return nil, err
	}
	if err := writePart(alt, "text/html; charset=UTF-8", email.HTML); err != nil {
		return nil, err
	}
	if err := alt.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func writePart(w *multipart.Writer, contentType, body string) error {
	header := textproto.MIMEHeader{}
	header.Set("Content-Type", contentType)
	part, err := w.CreatePart(header)
	if err != nil {
		return err
	}
	_, err = part.Write([]byte(body))
	return err
}

// envelopeRecipients flattens To and CC into bare addresses for RCPT.
// Display names belong in the message headers, not the envelope.
func envelopeRecipients(email *Email) []string {
	recipients := make([]string, 0, len(email.To)+len(email.CC))
	for _, rcpt := range email.To {
		recipients = append(recipients, bareAddress(rcpt))
	}
	for _, rcpt := range email.CC {
		recipients = append(recipients, bareAddress(rcpt))
	}
	return recipients
}

// sanitizeHeader strips CR and LF from a header value. Subject and Reply-To
// carry submitter-controlled text, and a bare newline there would terminate
// the header and smuggle in additional ones.
func sanitizeHeader(s string) string {
	if !strings.ContainsAny(s, "\r\n") {
		return s
	}
	return strings.NewReplacer("\r", "", "\n", "").Replace(s)
}

// bareAddress extracts the address from "Name <addr>" for the SMTP envelope.
func bareAddress(s string) string {
	if start := strings.LastIndex(s, "<"); start != -1 {
		if end := strings.LastIndex(s, ">"); end > start {
			return s[start+1 : end]
		}
	}
	return s
}
