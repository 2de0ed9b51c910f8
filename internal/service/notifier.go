package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/tuitionnetwork/tuition-api/internal/domain"
	"github.com/tuitionnetwork/tuition-api/internal/platform/email"
	"github.com/tuitionnetwork/tuition-api/internal/store"
)

// EmailApprovalNotifier emails premium tutors in a request's city and
// location when the request is approved.
type EmailApprovalNotifier struct {
	tutors store.UserStore
	sender email.Sender
	logger *slog.Logger
}

// NewEmailApprovalNotifier creates an EmailApprovalNotifier.
func NewEmailApprovalNotifier(tutors store.UserStore, sender email.Sender, logger *slog.Logger) *EmailApprovalNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &EmailApprovalNotifier{
		tutors: tutors,
		sender: sender,
		logger: logger.With(slog.String("component", "approval_notifier")),
	}
}

// NotifyApproval sends one email per matching premium tutor. Each send is
// independent: a failure is logged and the remaining recipients are still
// attempted.
func (n *EmailApprovalNotifier) NotifyApproval(ctx context.Context, req *domain.TutorRequest) {
	recipients, err := n.tutors.PremiumTutors(ctx, req.City, req.Location)
	if err != nil {
		n.logger.WarnContext(ctx, "approval notification skipped: tutor lookup failed",
			slog.String("tuition_id", req.TuitionID),
			slog.String("error", err.Error()))
		return
	}
	if len(recipients) == 0 {
		return
	}

	subject := fmt.Sprintf("New tuition opportunity in %s", req.City)
	html := approvalBody(req)

	sent := 0
	for _, tutor := range recipients {
		msg := email.Message{
			To:      tutor.Email,
			Subject: subject,
			HTML:    html,
		}
		if err := n.sender.Send(ctx, msg); err != nil {
			n.logger.WarnContext(ctx, "approval notification send failed",
				slog.String("tuition_id", req.TuitionID),
				slog.String("recipient", tutor.Email),
				slog.String("error", err.Error()))
			continue
		}
		sent++
	}

	n.logger.InfoContext(ctx, "approval notifications sent",
		slog.String("tuition_id", req.TuitionID),
		slog.Int("recipients", len(recipients)),
		slog.Int("sent", sent))
}

func approvalBody(req *domain.TutorRequest) string {
	return fmt.Sprintf(
		`<div>
  <h2>A new tuition job was just approved</h2>
  <p><strong>Job ID:</strong> %s</p>
  <p><strong>Class:</strong> %s</p>
  <p><strong>Subjects:</strong> %s</p>
  <p><strong>Area:</strong> %s, %s</p>
  <p>Log in to your dashboard to apply before the position is filled.</p>
</div>`,
		req.TuitionID, req.ClassCourse, strings.Join(req.Subjects, ", "), req.Location, req.City)
}
