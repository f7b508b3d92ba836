package ports

import "context"

// Notifier delivers transactional email (verification codes, reset OTPs).
// Callers treat delivery as fire-and-forget: a send failure degrades the
// flow, it never fails the request that triggered it.
type Notifier interface {
	Send(ctx context.Context, to, subject, body string) error
}
