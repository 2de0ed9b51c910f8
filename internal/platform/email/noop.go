package email

import (
	"context"
	"log/slog"
)

// NoopSender discards messages. Used when no email provider is configured so
// local development does not require a Resend account.
type NoopSender struct {
	logger *slog.Logger
}

var _ Sender = (*NoopSender)(nil)

// NewNoopSender creates a sender that logs and drops every message.
func NewNoopSender(logger *slog.Logger) *NoopSender {
	return &NoopSender{logger: logger.With("component", "noop_sender")}
}

// Send logs the message instead of delivering it.
func (s *NoopSender) Send(ctx context.Context, msg Message) error {
	s.logger.Info("email sending disabled, dropping message",
		"to", msg.To,
		"subject", msg.Subject)
	return nil
}
