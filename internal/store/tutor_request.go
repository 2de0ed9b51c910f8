package store

import (
	"context"

	"github.com/tuitionnetwork/tuition-api/internal/domain"
)

// TutorRequestStore defines the interface for tutor-request persistence.
//
// All mutation methods that take a conditional filter return ErrNotModified
// when the underlying modify affected zero documents; see the error's doc
// comment for why "not found" and "guard failed" are conflated.
type TutorRequestStore interface {
	// Insert saves a single document and returns the assigned opaque ID as
	// a string. The document map is stored as-is; the caller is responsible
	// for having attached server-owned fields (tuitionId, createdAt).
	Insert(ctx context.Context, doc map[string]interface{}) (string, error)

	// InsertMany saves documents in one batch operation and returns the
	// assigned opaque IDs in insertion order.
	InsertMany(ctx context.Context, docs []map[string]interface{}) ([]string, error)

	// GetByID retrieves a tutor request by its opaque ID.
	// Returns ErrTutorRequestNotFound if it does not exist and ErrInvalidID
	// if the ID is malformed.
	GetByID(ctx context.Context, id string) (*domain.TutorRequest, error)

	// List returns every stored tutor request.
	List(ctx context.Context) ([]*domain.TutorRequest, error)

	// FindByIDs returns the tutor requests matching any of the given opaque
	// IDs. Malformed IDs are skipped rather than failing the whole query.
	FindByIDs(ctx context.Context, ids []string) ([]*domain.TutorRequest, error)

	// FindByConfirmedTutor returns the tutor requests with a confirmed
	// application entry whose email matches case-insensitively.
	FindByConfirmedTutor(ctx context.Context, email string) ([]*domain.TutorRequest, error)

	// LastTuitionID returns the tuitionId of the most recently created
	// record (creation timestamp descending, limit 1), or an empty string
	// when the collection is empty. Implements idgen.TuitionIDSource.
	LastTuitionID(ctx context.Context) (string, error)

	// SetStatus sets the status field; UnsetStatus removes it entirely.
	SetStatus(ctx context.Context, id, status string) error
	UnsetStatus(ctx context.Context, id string) error

	// SetTutorStatus sets the tutorStatus field; UnsetTutorStatus removes
	// it entirely.
	SetTutorStatus(ctx context.Context, id, status string) error
	UnsetTutorStatus(ctx context.Context, id string) error

	// AddApplication appends an applied-tutor entry, guarded atomically by
	// the precondition that no existing entry carries the same email.
	// Returns ErrNotModified when the guard fails or the record is absent.
	AddApplication(ctx context.Context, id string, application domain.AppliedTutor) error

	// ReplaceAppliedTutors overwrites the full appliedTutors list. Used by
	// the confirm/cancel branches after the caller has recomputed the list.
	// The read-modify-write is deliberately non-atomic; see ErrNotModified.
	ReplaceAppliedTutors(ctx context.Context, id string, tutors []domain.AppliedTutor) error

	// Delete removes a tutor request by its opaque ID.
	Delete(ctx context.Context, id string) error
}
