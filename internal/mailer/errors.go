package mailer

import "errors"

// Transport errors.
var (
	// ErrNoRecipient indicates no recipient was specified.
	ErrNoRecipient = errors.New("email must have at least one recipient")

	// ErrSendFailed indicates the transport rejected or failed the send.
	ErrSendFailed = errors.New("failed to send email")

	// ErrNotConfigured indicates no mail transport settings are present.
	ErrNotConfigured = errors.New("mail transport not configured")
)
