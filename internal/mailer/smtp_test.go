package mailer

import (
	"strings"
	"testing"
)

func TestBuildMessage(t *testing.T) {
	email := &Email{
		To:      []string{"enterprise-setup@example.com"},
		CC:      []string{"sales@example.com"},
		ReplyTo: "customer@acme.test",
		Subject: "[Enterprise Setup] Acme Corp - SALES REQUIRED",
		HTML:    "<h2>New Enterprise Setup Request</h2>",
		Text:    "New Enterprise Setup Request",
	}

	raw, err := buildMessage("Enterprise Setup Wizard <noreply@example.com>", email)
	if err != nil {
		t.Fatalf("buildMessage: %v", err)
	}
	msg := string(raw)

	wantHeaders := []string{
		"From: Enterprise Setup Wizard <noreply@example.com>\r\n",
		"To: enterprise-setup@example.com\r\n",
		"Cc: sales@example.com\r\n",
		"Reply-To: customer@acme.test\r\n",
		"Subject: [Enterprise Setup] Acme Corp - SALES REQUIRED\r\n",
		"MIME-Version: 1.0\r\n",
		"Content-Type: multipart/alternative;",
	}
	for _, h := range wantHeaders {
		if !strings.Contains(msg, h) {
			t.Errorf("message missing header %q", h)
		}
	}

	if !strings.Contains(msg, "Content-Type: text/plain; charset=UTF-8") {
		t.Error("message missing text part")
	}
	if !strings.Contains(msg, "Content-Type: text/html; charset=UTF-8") {
		t.Error("message missing html part")
	}

	// Clients prefer the last alternative, so HTML must follow text.
	textIdx := strings.Index(msg, "New Enterprise Setup Request")
	htmlIdx := strings.Index(msg, "<h2>New Enterprise Setup Request</h2>")
	if textIdx == -1 || htmlIdx == -1 || htmlIdx < textIdx {
		t.Errorf("text part must precede html part (text=%d, html=%d)", textIdx, htmlIdx)
	}
}

func TestBuildMessage_OptionalHeaders(t *testing.T) {
	email := &Email{
		To:      []string{"enterprise-setup@example.com"},
		Subject: "[Enterprise Setup] Acme Corp - API Setup",
		HTML:    "<p>body</p>",
		Text:    "body",
	}

	raw, err := buildMessage("noreply@example.com", email)
	if err != nil {
		t.Fatalf("buildMessage: %v", err)
	}
	msg := string(raw)

	if strings.Contains(msg, "Cc:") {
		t.Error("Cc header present without CC recipients")
	}
	if strings.Contains(msg, "Reply-To:") {
		t.Error("Reply-To header present without reply address")
	}
}

func TestBuildMessage_StripsHeaderNewlines(t *testing.T) {
	email := &Email{
		To:      []string{"enterprise-setup@example.com"},
		ReplyTo: "a@b.com\r\nBcc: attacker@evil.example",
		Subject: "[Enterprise Setup] Acme\r\nX-Injected: yes - API Setup",
		HTML:    "<p>body</p>",
		Text:    "body",
	}

	raw, err := buildMessage("noreply@example.com", email)
	if err != nil {
		t.Fatalf("buildMessage: %v", err)
	}
	msg := string(raw)

	if strings.Contains(msg, "\nBcc:") {
		t.Error("submitter newline produced a Bcc header line")
	}
	if strings.Contains(msg, "\nX-Injected:") {
		t.Error("submitter newline produced an injected header line")
	}
	if !strings.Contains(msg, "Reply-To: a@b.comBcc: attacker@evil.example\r\n") {
		t.Error("Reply-To value not flattened onto a single header line")
	}
	if !strings.Contains(msg, "Subject: [Enterprise Setup] AcmeX-Injected: yes - API Setup\r\n") {
		t.Error("Subject value not flattened onto a single header line")
	}
}

func TestEnvelopeRecipients(t *testing.T) {
	email := &Email{
		To: []string{"Jane Doe <jane@acme.test>"},
		CC: []string{"sales@example.com"},
	}

	got := envelopeRecipients(email)
	want := []string{"jane@acme.test", "sales@example.com"}

	if len(got) != len(want) {
		t.Fatalf("envelopeRecipients() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("recipient[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestBareAddress(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Enterprise Setup Wizard <noreply@example.com>", "noreply@example.com"},
		{"noreply@example.com", "noreply@example.com"},
		{"<noreply@example.com>", "noreply@example.com"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := bareAddress(tt.in); got != tt.want {
			t.Errorf("bareAddress(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
