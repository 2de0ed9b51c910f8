package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User roles recognized by the platform. Role strings arrive from the
// frontend registration flow and gate admin/student-only routes.
const (
	RoleAdmin   = "admin"
	RoleStudent = "student"
	RoleTutor   = "tutor"
)

// User represents a registered user of the platform. Tutors registered
// through the dedicated tutor flow live in their own collection but share
// this shape.
//
// CustomID is a human-readable role-scoped identifier ("SID7" for students,
// "TID12" for tutors) assigned at registration. Like TuitionID it is
// best-effort sequential and never used for lookups.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	CustomID  string             `bson:"customId,omitempty" json:"customId,omitempty"`
	Email     string             `bson:"email" json:"email"`
	Name      string             `bson:"name,omitempty" json:"name,omitempty"`
	Phone     string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Role      string             `bson:"role,omitempty" json:"role,omitempty"`
	City      string             `bson:"city,omitempty" json:"city,omitempty"`
	Location  string             `bson:"location,omitempty" json:"location,omitempty"`
	Premium   bool               `bson:"premium,omitempty" json:"premium,omitempty"`
	CreatedAt time.Time          `bson:"createdAt,omitempty" json:"createdAt,omitempty"`

	// Extra carries client-supplied profile fields outside the canonical
	// schema (photo URL, qualifications, etc.).
	Extra map[string]interface{} `bson:",inline" json:"-"`
}

// MarshalJSON merges Extra back into the document so ad-hoc profile fields
// survive reads as well as writes.
func (u User) MarshalJSON() ([]byte, error) {
	type plain User
	return marshalWithExtra(plain(u), u.Extra)
}
