package mongodb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tuitionnetwork/tuition-api/internal/domain"
	"github.com/tuitionnetwork/tuition-api/internal/store"
)

// UserStore implements store.UserStore against a MongoDB collection. The
// same implementation serves the users and tutors collections.
type UserStore struct {
	coll   *mongo.Collection
	logger *slog.Logger
}

var _ store.UserStore = (*UserStore)(nil)

// NewUserStore creates a new UserStore backed by the named collection of the
// given database (CollectionUsers or CollectionTutors).
func NewUserStore(db *mongo.Database, collection string, logger *slog.Logger) *UserStore {
	return &UserStore{
		coll:   db.Collection(collection),
		logger: logger.With("component", "user_store", "collection", collection),
	}
}

// Insert saves a new user and returns the assigned opaque ID.
func (s *UserStore) Insert(ctx context.Context, user *domain.User) (string, error) {
	result, err := s.coll.InsertOne(ctx, user)
	if err != nil {
		return "", fmt.Errorf("failed to insert user: %w", err)
	}
	return insertedIDString(result.InsertedID), nil
}

// GetByEmail retrieves a user by exact email match.
func (s *UserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	err := s.coll.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, store.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// ExistsByEmailOrPhone reports whether any user matches the email or phone.
func (s *UserStore) ExistsByEmailOrPhone(ctx context.Context, email, phone string) (bool, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"email": email},
		bson.M{"phone": phone},
	}}
	count, err := s.coll.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to check for existing user: %w", err)
	}
	return count > 0, nil
}

// List returns every stored user.
func (s *UserStore) List(ctx context.Context) ([]*domain.User, error) {
	cursor, err := s.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return decodeUsers(ctx, cursor)
}

// Search returns non-admin users whose name or email matches the term
// case-insensitively.
func (s *UserStore) Search(ctx context.Context, term string) ([]*domain.User, error) {
	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(term), Options: "i"}
	filter := bson.M{
		"role": bson.M{"$ne": domain.RoleAdmin},
		"$or": bson.A{
			bson.M{"name": pattern},
			bson.M{"email": pattern},
		},
	}

	cursor, err := s.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to search users: %w", err)
	}
	return decodeUsers(ctx, cursor)
}

// Upsert sets the given fields on the user with the email, creating the
// document when absent.
func (s *UserStore) Upsert(ctx context.Context, email string, fields map[string]interface{}) error {
	_, err := s.coll.UpdateOne(
		ctx,
		bson.M{"email": email},
		bson.M{"$set": bson.M(fields)},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert user: %w", err)
	}
	return nil
}

// Delete removes a user by email.
func (s *UserStore) Delete(ctx context.Context, email string) error {
	result, err := s.coll.DeleteOne(ctx, bson.M{"email": email})
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if result.DeletedCount == 0 {
		return store.ErrUserNotFound
	}
	return nil
}

// MaxCustomIDNumber returns the highest numeric suffix among custom IDs
// carrying the prefix, or zero when none exist.
func (s *UserStore) MaxCustomIDNumber(ctx context.Context, prefix string) (int, error) {
	filter := bson.M{"customId": primitive.Regex{
		Pattern: "^" + regexp.QuoteMeta(prefix) + "[0-9]+$",
	}}
	opts := options.Find().SetProjection(bson.M{"customId": 1})

	cursor, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		return 0, fmt.Errorf("failed to scan custom IDs: %w", err)
	}
	defer func() { _ = cursor.Close(ctx) }()

	max := 0
	for cursor.Next(ctx) {
		var doc struct {
			CustomID string `bson:"customId"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return 0, fmt.Errorf("failed to decode custom ID: %w", err)
		}
		n, err := strconv.Atoi(doc.CustomID[len(prefix):])
		if err != nil {
			continue
		}
		if n > max {
			max = n
		}
	}
	if err := cursor.Err(); err != nil {
		return 0, fmt.Errorf("custom ID cursor failed: %w", err)
	}
	return max, nil
}

// PremiumTutors returns premium-tier tutor records matching both city and
// location.
func (s *UserStore) PremiumTutors(ctx context.Context, city, location string) ([]*domain.User, error) {
	filter := bson.M{
		"role":     domain.RoleTutor,
		"premium":  true,
		"city":     city,
		"location": location,
	}

	cursor, err := s.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to find premium tutors: %w", err)
	}
	return decodeUsers(ctx, cursor)
}

func decodeUsers(ctx context.Context, cursor *mongo.Cursor) ([]*domain.User, error) {
	defer func() { _ = cursor.Close(ctx) }()

	var users []*domain.User
	for cursor.Next(ctx) {
		var user domain.User
		if err := cursor.Decode(&user); err != nil {
			return nil, fmt.Errorf("failed to decode user: %w", err)
		}
		users = append(users, &user)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("user cursor failed: %w", err)
	}
	return users, nil
}
