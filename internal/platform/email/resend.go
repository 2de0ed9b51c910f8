package email

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/resend/resend-go/v2"
)

// ResendSender implements Sender using the Resend API.
type ResendSender struct {
	client *resend.Client
	from   string
	logger *slog.Logger
}

var _ Sender = (*ResendSender)(nil)

// NewResendSender creates a sender that delivers through Resend using the
// given API key and default from address.
func NewResendSender(apiKey, from string, logger *slog.Logger) *ResendSender {
	return &ResendSender{
		client: resend.NewClient(apiKey),
		from:   from,
		logger: logger.With("component", "resend_sender"),
	}
}

// Send delivers one message via Resend.
func (s *ResendSender) Send(ctx context.Context, msg Message) error {
	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{msg.To},
		Subject: msg.Subject,
		Html:    msg.HTML,
	}

	sent, err := s.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return fmt.Errorf("resend send failed: %w", err)
	}

	s.logger.Debug("notification email sent",
		"message_id", sent.Id,
		"to", msg.To,
		"subject", msg.Subject)
	return nil
}
