package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/tuitionnetwork/tuition-api/internal/domain"
	"github.com/tuitionnetwork/tuition-api/internal/idgen"
	"github.com/tuitionnetwork/tuition-api/internal/store"
)

// Registration is the outcome of a successful user or tutor registration.
type Registration struct {
	InsertedID string
	CustomID   string
}

// UserService owns user and tutor account records. Users and tutors live in
// separate collections with the same document shape; tutor profiles are
// additionally mirrored into the users collection so a single login lookup
// covers both.
type UserService struct {
	users    store.UserStore
	tutors   store.UserStore
	logger   *slog.Logger
	timeFunc func() time.Time
}

// NewUserService creates a UserService backed by the given stores.
func NewUserService(users, tutors store.UserStore, logger *slog.Logger) *UserService {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserService{
		users:    users,
		tutors:   tutors,
		logger:   logger.With(slog.String("component", "user_service")),
		timeFunc: time.Now,
	}
}

// Register creates a user account. A duplicate email or phone returns
// ErrUserExists. The custom ID prefix follows the role: SID for students,
// TID for everyone else.
func (s *UserService) Register(ctx context.Context, user *domain.User) (*Registration, error) {
	exists, err := s.users.ExistsByEmailOrPhone(ctx, user.Email, user.Phone)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrUserExists
	}

	customID, err := idgen.NextCustomID(ctx, s.users, user.Role)
	if err != nil {
		return nil, err
	}
	user.CustomID = customID
	user.CreatedAt = s.timeFunc().UTC()

	insertedID, err := s.users.Insert(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "user registered",
		slog.String("custom_id", customID),
		slog.String("role", user.Role))

	return &Registration{InsertedID: insertedID, CustomID: customID}, nil
}

// RegisterTutor creates a tutor profile. Only the tutor role is accepted;
// anything else returns domain.ErrInvalidRole. The profile is also upserted
// into the users collection keyed by email.
func (s *UserService) RegisterTutor(ctx context.Context, tutor *domain.User) (*Registration, error) {
	if tutor.Role != domain.RoleTutor {
		return nil, domain.ErrInvalidRole
	}

	if _, err := s.tutors.GetByEmail(ctx, tutor.Email); err == nil {
		return nil, ErrUserExists
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	customID, err := idgen.NextCustomID(ctx, s.tutors, tutor.Role)
	if err != nil {
		return nil, err
	}
	tutor.CustomID = customID
	tutor.CreatedAt = s.timeFunc().UTC()

	insertedID, err := s.tutors.Insert(ctx, tutor)
	if err != nil {
		return nil, err
	}

	mirror := map[string]interface{}{
		"customId":  tutor.CustomID,
		"name":      tutor.Name,
		"phone":     tutor.Phone,
		"role":      domain.RoleTutor,
		"city":      tutor.City,
		"location":  tutor.Location,
		"createdAt": tutor.CreatedAt,
	}
	if err := s.users.Upsert(ctx, tutor.Email, mirror); err != nil {
		s.logger.WarnContext(ctx, "tutor mirror upsert failed",
			slog.String("email", tutor.Email),
			slog.String("error", err.Error()))
	}

	s.logger.InfoContext(ctx, "tutor registered", slog.String("custom_id", customID))
	return &Registration{InsertedID: insertedID, CustomID: customID}, nil
}

// GetByEmail returns the user with the given email.
func (s *UserService) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.users.GetByEmail(ctx, email)
}

// List returns every user.
func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	return s.users.List(ctx)
}

// Upsert sets the given fields on the user with the email, creating the
// document when absent.
func (s *UserService) Upsert(ctx context.Context, email string, fields map[string]interface{}) error {
	return s.users.Upsert(ctx, email, fields)
}

// Search returns non-admin users matching the term by name or email.
func (s *UserService) Search(ctx context.Context, term string) ([]*domain.User, error) {
	return s.users.Search(ctx, term)
}

// Delete removes the user with the given email.
func (s *UserService) Delete(ctx context.Context, email string) error {
	return s.users.Delete(ctx, email)
}
