// Package email provides the outbound notification sender consumed by the
// approval notifier. Delivery is best-effort: callers log failures and never
// propagate them.
package email

import "context"

// Message is a single outbound notification email.
type Message struct {
	To      string
	Subject string
	HTML    string
}

// Sender delivers a single message to an external email provider.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}
