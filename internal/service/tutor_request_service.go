package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/tuitionnetwork/tuition-api/internal/domain"
	"github.com/tuitionnetwork/tuition-api/internal/idgen"
	"github.com/tuitionnetwork/tuition-api/internal/store"
	"github.com/tuitionnetwork/tuition-api/internal/validation"
)

// ApprovalNotifier announces a tutor request reaching the approved status.
// Implementations are best effort: delivery failures are logged internally
// and never surfaced to the caller.
type ApprovalNotifier interface {
	NotifyApproval(ctx context.Context, req *domain.TutorRequest)
}

// SingleSubmission is the outcome of accepting one tutor request.
type SingleSubmission struct {
	InsertedID string
	TuitionID  string
}

// BatchSubmission is the outcome of a bulk submission. InsertedIDs follows
// insertion order of the valid subset. Rejected lists the elements that
// failed validation, indexed against the original input array.
type BatchSubmission struct {
	InsertedCount int
	InsertedIDs   []string
	Rejected      []RejectedItem
}

// TutorRequestService owns the tutor request lifecycle: intake validation,
// sequential ID assignment, persistence, and the post-submission update
// state machine.
type TutorRequestService struct {
	requests store.TutorRequestStore
	notifier ApprovalNotifier
	logger   *slog.Logger
	timeFunc func() time.Time
}

// NewTutorRequestService creates a TutorRequestService. notifier may be nil,
// in which case approval events are not announced.
func NewTutorRequestService(requests store.TutorRequestStore, notifier ApprovalNotifier, logger *slog.Logger) *TutorRequestService {
	if logger == nil {
		logger = slog.Default()
	}
	return &TutorRequestService{
		requests: requests,
		notifier: notifier,
		logger:   logger.With(slog.String("component", "tutor_request_service")),
		timeFunc: time.Now,
	}
}

// SubmitOne validates and persists a single tutor request payload. A payload
// that fails validation returns *ValidationError carrying every failure.
func (s *TutorRequestService) SubmitOne(ctx context.Context, payload interface{}) (*SingleSubmission, error) {
	result := validation.ValidateTutorRequest(payload)
	if !result.IsValid {
		return nil, &ValidationError{Errors: result.Errors}
	}

	tuitionID, err := idgen.NextTuitionID(ctx, s.requests)
	if err != nil {
		return nil, err
	}

	doc := result.Sanitized
	doc["tuitionId"] = tuitionID
	doc["createdAt"] = s.timeFunc().UTC()

	insertedID, err := s.requests.Insert(ctx, doc)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "tutor request submitted",
		slog.String("tuition_id", tuitionID),
		slog.String("inserted_id", insertedID))

	return &SingleSubmission{InsertedID: insertedID, TuitionID: tuitionID}, nil
}

// SubmitBatch validates every element of a bulk submission, persists the
// valid subset, and reports rejected elements by original index. An empty
// array returns ErrEmptyBatch; an array with no valid element returns
// *BatchValidationError.
func (s *TutorRequestService) SubmitBatch(ctx context.Context, payloads []interface{}) (*BatchSubmission, error) {
	if len(payloads) == 0 {
		return nil, ErrEmptyBatch
	}

	var (
		valid    []map[string]interface{}
		rejected []RejectedItem
	)
	for i, payload := range payloads {
		result := validation.ValidateTutorRequest(payload)
		if !result.IsValid {
			rejected = append(rejected, RejectedItem{Index: i, Errors: result.Errors})
			continue
		}
		valid = append(valid, result.Sanitized)
	}

	if len(valid) == 0 {
		return nil, &BatchValidationError{Rejected: rejected}
	}

	tuitionIDs, err := idgen.NextTuitionIDBatch(ctx, s.requests, len(valid))
	if err != nil {
		return nil, err
	}

	now := s.timeFunc().UTC()
	for i, doc := range valid {
		doc["tuitionId"] = tuitionIDs[i]
		doc["createdAt"] = now
	}

	insertedIDs, err := s.requests.InsertMany(ctx, valid)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "tutor request batch submitted",
		slog.Int("inserted", len(insertedIDs)),
		slog.Int("rejected", len(rejected)))

	return &BatchSubmission{
		InsertedCount: len(insertedIDs),
		InsertedIDs:   insertedIDs,
		Rejected:      rejected,
	}, nil
}

// Get returns a single tutor request by its document ID.
func (s *TutorRequestService) Get(ctx context.Context, id string) (*domain.TutorRequest, error) {
	return s.requests.GetByID(ctx, id)
}

// List returns all tutor requests, newest first.
func (s *TutorRequestService) List(ctx context.Context) ([]*domain.TutorRequest, error) {
	return s.requests.List(ctx)
}

// ListByAppliedTutor returns every tutor request carrying an application
// from the given email.
func (s *TutorRequestService) ListByAppliedTutor(ctx context.Context, email string) ([]*domain.TutorRequest, error) {
	all, err := s.requests.List(ctx)
	if err != nil {
		return nil, err
	}
	out := []*domain.TutorRequest{}
	for _, req := range all {
		if domain.HasApplication(req.AppliedTutors, email) {
			out = append(out, req)
		}
	}
	return out, nil
}

// ListByConfirmedTutor returns every tutor request on which the given email
// holds a confirmed application.
func (s *TutorRequestService) ListByConfirmedTutor(ctx context.Context, email string) ([]*domain.TutorRequest, error) {
	return s.requests.FindByConfirmedTutor(ctx, email)
}

// Delete removes a tutor request by document ID.
func (s *TutorRequestService) Delete(ctx context.Context, id string) error {
	return s.requests.Delete(ctx, id)
}
