package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ConfirmationConfirmed is the only value ever stored in an applied tutor's
// confirmationStatus field. The field is absent entirely for unconfirmed
// applications.
const ConfirmationConfirmed = "confirmed"

// AppliedTutor records a single tutor's application to a tutor request.
// Entries are unique by email within a request.
type AppliedTutor struct {
	Email              string    `bson:"email" json:"email"`
	Name               string    `bson:"name,omitempty" json:"name,omitempty"`
	TutorID            string    `bson:"tutorId,omitempty" json:"tutorId,omitempty"`
	AppliedAt          time.Time `bson:"appliedAt" json:"appliedAt"`
	ConfirmationStatus string    `bson:"confirmationStatus,omitempty" json:"confirmationStatus,omitempty"`
}

// TutorRequest represents a posted tuition need awaiting tutor applications.
//
// TuitionID is a human-readable sequential identifier assigned at creation.
// It is best-effort monotonic and MUST NOT be relied on for uniqueness;
// lookups always use the persistence layer's opaque ID.
type TutorRequest struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	TuitionID      string             `bson:"tuitionId,omitempty" json:"tuitionId,omitempty"`
	StudentEmail   string             `bson:"studentEmail" json:"studentEmail"`
	StudentName    string             `bson:"studentName" json:"studentName"`
	Phone          string             `bson:"phone" json:"phone"`
	City           string             `bson:"city" json:"city"`
	Location       string             `bson:"location" json:"location"`
	ClassCourse    string             `bson:"classCourse" json:"classCourse"`
	Subjects       []string           `bson:"subjects,omitempty" json:"subjects,omitempty"`
	Salary         float64            `bson:"salary,omitempty" json:"salary,omitempty"`
	DaysPerWeek    *float64           `bson:"daysPerWeek,omitempty" json:"daysPerWeek,omitempty"`
	WeeklyDuration *float64           `bson:"weeklyDuration,omitempty" json:"weeklyDuration,omitempty"`
	Description    string             `bson:"description" json:"description"`
	Status         string             `bson:"status,omitempty" json:"status,omitempty"`
	TutorStatus    string             `bson:"tutorStatus,omitempty" json:"tutorStatus,omitempty"`
	CreatedAt      time.Time          `bson:"createdAt,omitempty" json:"createdAt,omitempty"`

	AppliedTutors []AppliedTutor `bson:"appliedTutors,omitempty" json:"appliedTutors,omitempty"`

	// Extra carries client-supplied fields outside the canonical schema.
	// The store is schemaless and the original clients send a handful of
	// ad-hoc keys (gender preference, student photo, etc.) that must survive
	// a round trip.
	Extra map[string]interface{} `bson:",inline" json:"-"`
}

// MarshalJSON merges Extra back into the document so ad-hoc fields survive
// reads as well as writes.
func (r TutorRequest) MarshalJSON() ([]byte, error) {
	type plain TutorRequest
	return marshalWithExtra(plain(r), r.Extra)
}

// ConfirmApplication returns a copy of tutors with confirmationStatus set to
// "confirmed" on the entry matching email and removed from every other entry,
// preserving the at-most-one-confirmed invariant. Matching is exact; order is
// preserved.
func ConfirmApplication(tutors []AppliedTutor, email string) []AppliedTutor {
	updated := make([]AppliedTutor, len(tutors))
	for i, tutor := range tutors {
		if tutor.Email == email {
			tutor.ConfirmationStatus = ConfirmationConfirmed
		} else {
			tutor.ConfirmationStatus = ""
		}
		updated[i] = tutor
	}
	return updated
}

// ClearConfirmations returns a copy of tutors with confirmationStatus removed
// from every entry.
func ClearConfirmations(tutors []AppliedTutor) []AppliedTutor {
	updated := make([]AppliedTutor, len(tutors))
	for i, tutor := range tutors {
		tutor.ConfirmationStatus = ""
		updated[i] = tutor
	}
	return updated
}

// HasApplication reports whether an entry with the given email already exists.
func HasApplication(tutors []AppliedTutor, email string) bool {
	for _, tutor := range tutors {
		if tutor.Email == email {
			return true
		}
	}
	return false
}
