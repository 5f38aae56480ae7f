package mailer

import "context"

// Unconfigured is the Sender used when no transport settings are present.
// The process keeps serving health and submit endpoints; every send fails
// so the handler reports the transport error to the caller.
type Unconfigured struct{}

// Send implements Sender.
func (Unconfigured) Send(_ context.Context, _ *Email) error {
	return ErrNotConfigured
}
