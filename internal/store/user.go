package store

import (
	"context"

	"github.com/tuitionnetwork/tuition-api/internal/domain"
)

// UserStore defines the interface for user data persistence. The same
// interface backs both the users collection and the dedicated tutors
// collection, which share a document shape.
type UserStore interface {
	// Insert saves a new user and returns the assigned opaque ID.
	Insert(ctx context.Context, user *domain.User) (string, error)

	// GetByEmail retrieves a user by exact email match.
	// Returns ErrUserNotFound if the user does not exist.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// ExistsByEmailOrPhone reports whether any user matches the email or
	// the phone number. Registration uses this as its duplicate guard.
	ExistsByEmailOrPhone(ctx context.Context, email, phone string) (bool, error)

	// List returns every stored user.
	List(ctx context.Context) ([]*domain.User, error)

	// Search returns non-admin users whose name or email matches the term
	// case-insensitively.
	Search(ctx context.Context, term string) ([]*domain.User, error)

	// Upsert sets the given fields on the user with the email, creating the
	// document when absent.
	Upsert(ctx context.Context, email string, fields map[string]interface{}) error

	// Delete removes a user by email. Returns ErrUserNotFound when no
	// document matched.
	Delete(ctx context.Context, email string) error

	// MaxCustomIDNumber returns the highest numeric suffix among custom IDs
	// carrying the prefix, or zero. Implements idgen.CustomIDSource.
	MaxCustomIDNumber(ctx context.Context, prefix string) (int, error)

	// PremiumTutors returns premium-tier tutor records whose city and
	// location both match. Used to pick approval-notification recipients.
	PremiumTutors(ctx context.Context, city, location string) ([]*domain.User, error)
}
