package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/tuitionnetwork/tuition-api/internal/domain"
	"github.com/tuitionnetwork/tuition-api/internal/store"
)

// StatusApproved is the request status that triggers tutor notification.
const StatusApproved = "approved"

// UpdateRequest carries the fields of an update body. Pointer fields
// distinguish "absent" from "present but empty": a nil pointer means the
// key was not in the body at all.
type UpdateRequest struct {
	TutorStatus         *string
	Email               string
	Name                string
	TutorID             string
	Status              *string
	ConfirmedTutorEmail string
	CancelConfirmation  bool
}

// UpdateAction names the single intent an update request resolves to.
type UpdateAction int

const (
	// ActionNone means no recognized intent was present.
	ActionNone UpdateAction = iota
	// ActionSetTutorStatus sets the tutor-facing status to a non-empty
	// value.
	ActionSetTutorStatus
	// ActionApply records a new tutor application.
	ActionApply
	// ActionChangeStatus sets or clears the request-level status.
	ActionChangeStatus
	// ActionClearTutorStatus removes the tutor-facing status field. Only
	// reachable when tutorStatus is present but empty, since a non-empty
	// value resolves to ActionSetTutorStatus first.
	ActionClearTutorStatus
	// ActionConfirmTutor marks one applicant confirmed and clears every
	// other applicant's confirmation.
	ActionConfirmTutor
	// ActionCancelConfirmation clears all confirmations on the request.
	ActionCancelConfirmation
)

// ResolveUpdateAction classifies an update body into exactly one action.
// Intents are mutually exclusive and checked in fixed priority order; a body
// carrying several recognized fields acts on the highest-priority one and
// ignores the rest.
func ResolveUpdateAction(req UpdateRequest) UpdateAction {
	switch {
	case req.TutorStatus != nil && *req.TutorStatus != "":
		return ActionSetTutorStatus
	case req.Email != "":
		return ActionApply
	case req.Status != nil:
		return ActionChangeStatus
	case req.TutorStatus != nil:
		return ActionClearTutorStatus
	case req.ConfirmedTutorEmail != "":
		return ActionConfirmTutor
	case req.CancelConfirmation:
		return ActionCancelConfirmation
	default:
		return ActionNone
	}
}

// Update messages returned to callers on success.
const (
	MsgTutorStatusUpdated   = "Tutor status updated successfully."
	MsgApplied              = "Applied successfully."
	MsgStatusUpdated        = "Status updated successfully."
	MsgTutorConfirmed       = "Tutor confirmed successfully."
	MsgConfirmationCanceled = "Tutor confirmation cancelled successfully."
)

// Update applies an update body to the tutor request identified by id and
// returns the success message for the action taken.
func (s *TutorRequestService) Update(ctx context.Context, id string, req UpdateRequest) (string, error) {
	switch ResolveUpdateAction(req) {
	case ActionSetTutorStatus:
		return s.setTutorStatus(ctx, id, req)
	case ActionApply:
		return s.apply(ctx, id, req)
	case ActionChangeStatus:
		return s.changeStatus(ctx, id, *req.Status)
	case ActionClearTutorStatus:
		return s.clearTutorStatus(ctx, id)
	case ActionConfirmTutor:
		return s.confirmTutor(ctx, id, req.ConfirmedTutorEmail)
	case ActionCancelConfirmation:
		return s.cancelConfirmation(ctx, id)
	default:
		return "", ErrNothingToUpdate
	}
}

func (s *TutorRequestService) setTutorStatus(ctx context.Context, id string, req UpdateRequest) (string, error) {
	err := s.requests.SetTutorStatus(ctx, id, *req.TutorStatus)
	if errors.Is(err, store.ErrNotModified) {
		return "", ErrRequestNotModified
	}
	if err != nil {
		return "", err
	}
	return MsgTutorStatusUpdated, nil
}

func (s *TutorRequestService) apply(ctx context.Context, id string, req UpdateRequest) (string, error) {
	tutor := domain.AppliedTutor{
		Email:     req.Email,
		Name:      req.Name,
		TutorID:   req.TutorID,
		AppliedAt: s.timeFunc().UTC(),
	}
	err := s.requests.AddApplication(ctx, id, tutor)
	if errors.Is(err, store.ErrNotModified) {
		return "", ErrAlreadyApplied
	}
	if err != nil {
		return "", err
	}
	return MsgApplied, nil
}

func (s *TutorRequestService) changeStatus(ctx context.Context, id, status string) (string, error) {
	var err error
	if status == "" {
		err = s.requests.UnsetStatus(ctx, id)
	} else {
		err = s.requests.SetStatus(ctx, id, status)
	}
	if errors.Is(err, store.ErrNotModified) {
		return "", ErrRequestNotModified
	}
	if err != nil {
		return "", err
	}

	if status == StatusApproved {
		s.announceApproval(ctx, id)
	}
	return MsgStatusUpdated, nil
}

func (s *TutorRequestService) clearTutorStatus(ctx context.Context, id string) (string, error) {
	err := s.requests.UnsetTutorStatus(ctx, id)
	if errors.Is(err, store.ErrNotModified) {
		return "", ErrRequestNotModified
	}
	if err != nil {
		return "", err
	}
	return MsgTutorStatusUpdated, nil
}

func (s *TutorRequestService) confirmTutor(ctx context.Context, id, email string) (string, error) {
	req, err := s.requests.GetByID(ctx, id)
	if err != nil {
		return "", err
	}

	updated := domain.ConfirmApplication(req.AppliedTutors, email)
	err = s.requests.ReplaceAppliedTutors(ctx, id, updated)
	if errors.Is(err, store.ErrNotModified) {
		return "", ErrConfirmFailed
	}
	if err != nil {
		return "", err
	}
	return MsgTutorConfirmed, nil
}

func (s *TutorRequestService) cancelConfirmation(ctx context.Context, id string) (string, error) {
	req, err := s.requests.GetByID(ctx, id)
	if err != nil {
		return "", err
	}

	updated := domain.ClearConfirmations(req.AppliedTutors)
	err = s.requests.ReplaceAppliedTutors(ctx, id, updated)
	if errors.Is(err, store.ErrNotModified) {
		return "", ErrCancelConfirmationFailed
	}
	if err != nil {
		return "", err
	}
	return MsgConfirmationCanceled, nil
}

// announceApproval notifies interested tutors that a request was approved.
// Failures are logged and never affect the status update itself.
func (s *TutorRequestService) announceApproval(ctx context.Context, id string) {
	if s.notifier == nil {
		return
	}
	req, err := s.requests.GetByID(ctx, id)
	if err != nil {
		s.logger.WarnContext(ctx, "approval notification skipped: fetch failed",
			slog.String("id", id), slog.String("error", err.Error()))
		return
	}

	notifyCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 30*time.Second)
	defer cancel()
	s.notifier.NotifyApproval(notifyCtx, req)
}
