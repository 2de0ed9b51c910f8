package mongodb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tuitionnetwork/tuition-api/internal/domain"
	"github.com/tuitionnetwork/tuition-api/internal/store"
)

// TutorRequestStore implements store.TutorRequestStore against a MongoDB
// collection.
type TutorRequestStore struct {
	coll   *mongo.Collection
	logger *slog.Logger
}

// Ensure TutorRequestStore implements the interface.
var _ store.TutorRequestStore = (*TutorRequestStore)(nil)

// NewTutorRequestStore creates a new TutorRequestStore backed by the given
// database's tutorRequests collection.
func NewTutorRequestStore(db *mongo.Database, logger *slog.Logger) *TutorRequestStore {
	return &TutorRequestStore{
		coll:   db.Collection(CollectionTutorRequests),
		logger: logger.With("component", "tutor_request_store"),
	}
}

// Insert saves a single document and returns the assigned ObjectID as hex.
func (s *TutorRequestStore) Insert(ctx context.Context, doc map[string]interface{}) (string, error) {
	result, err := s.coll.InsertOne(ctx, bson.M(doc))
	if err != nil {
		return "", fmt.Errorf("failed to insert tutor request: %w", err)
	}
	return insertedIDString(result.InsertedID), nil
}

// InsertMany saves documents in one batch and returns the assigned IDs in
// insertion order.
func (s *TutorRequestStore) InsertMany(ctx context.Context, docs []map[string]interface{}) ([]string, error) {
	batch := make([]interface{}, len(docs))
	for i, doc := range docs {
		batch[i] = bson.M(doc)
	}

	result, err := s.coll.InsertMany(ctx, batch)
	if err != nil {
		return nil, fmt.Errorf("failed to insert tutor requests: %w", err)
	}

	ids := make([]string, len(result.InsertedIDs))
	for i, id := range result.InsertedIDs {
		ids[i] = insertedIDString(id)
	}
	return ids, nil
}

// GetByID retrieves a tutor request by its opaque ID.
func (s *TutorRequestStore) GetByID(ctx context.Context, id string) (*domain.TutorRequest, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", store.ErrInvalidID, id)
	}

	var request domain.TutorRequest
	err = s.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&request)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, store.ErrTutorRequestNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get tutor request: %w", err)
	}
	return &request, nil
}

// List returns every stored tutor request.
func (s *TutorRequestStore) List(ctx context.Context) ([]*domain.TutorRequest, error) {
	cursor, err := s.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list tutor requests: %w", err)
	}
	return decodeTutorRequests(ctx, cursor)
}

// FindByIDs returns the tutor requests matching any of the given opaque IDs.
func (s *TutorRequestStore) FindByIDs(ctx context.Context, ids []string) ([]*domain.TutorRequest, error) {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			// Stored jobIds can reference deleted or legacy records; a
			// malformed one should not fail the whole query.
			s.logger.Warn("skipping malformed tutor request ID", "id", id)
			continue
		}
		oids = append(oids, oid)
	}

	cursor, err := s.coll.Find(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return nil, fmt.Errorf("failed to find tutor requests by IDs: %w", err)
	}
	return decodeTutorRequests(ctx, cursor)
}

// FindByConfirmedTutor returns the tutor requests with a confirmed
// application entry for the email, matched case-insensitively.
func (s *TutorRequestStore) FindByConfirmedTutor(ctx context.Context, email string) ([]*domain.TutorRequest, error) {
	filter := bson.M{
		"appliedTutors": bson.M{
			"$elemMatch": bson.M{
				"email": primitive.Regex{
					Pattern: "^" + regexp.QuoteMeta(email) + "$",
					Options: "i",
				},
				"confirmationStatus": domain.ConfirmationConfirmed,
			},
		},
	}

	cursor, err := s.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to find confirmed tutor requests: %w", err)
	}
	return decodeTutorRequests(ctx, cursor)
}

// LastTuitionID returns the tuitionId of the most recently created record,
// or an empty string when the collection is empty.
func (s *TutorRequestStore) LastTuitionID(ctx context.Context) (string, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	var last struct {
		TuitionID string `bson:"tuitionId"`
	}
	err := s.coll.FindOne(ctx, bson.M{}, opts).Decode(&last)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read last tuition ID: %w", err)
	}
	return last.TuitionID, nil
}

// SetStatus sets the status field on the record.
func (s *TutorRequestStore) SetStatus(ctx context.Context, id, status string) error {
	return s.updateByID(ctx, id, bson.M{"$set": bson.M{"status": status}})
}

// UnsetStatus removes the status field from the record.
func (s *TutorRequestStore) UnsetStatus(ctx context.Context, id string) error {
	return s.updateByID(ctx, id, bson.M{"$unset": bson.M{"status": ""}})
}

// SetTutorStatus sets the tutorStatus field on the record.
func (s *TutorRequestStore) SetTutorStatus(ctx context.Context, id, status string) error {
	return s.updateByID(ctx, id, bson.M{"$set": bson.M{"tutorStatus": status}})
}

// UnsetTutorStatus removes the tutorStatus field from the record.
func (s *TutorRequestStore) UnsetTutorStatus(ctx context.Context, id string) error {
	return s.updateByID(ctx, id, bson.M{"$unset": bson.M{"tutorStatus": ""}})
}

// AddApplication appends an applied-tutor entry, guarded by the "not already
// applied" precondition in the same round trip. The filter plus $push is
// atomic at the document level, which is what makes the apply guard safe
// under concurrent requests.
func (s *TutorRequestStore) AddApplication(ctx context.Context, id string, application domain.AppliedTutor) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", store.ErrInvalidID, id)
	}

	filter := bson.M{
		"_id":                 oid,
		"appliedTutors.email": bson.M{"$ne": application.Email},
	}
	result, err := s.coll.UpdateOne(ctx, filter, bson.M{"$push": bson.M{"appliedTutors": application}})
	if err != nil {
		return fmt.Errorf("failed to add application: %w", err)
	}
	if result.ModifiedCount == 0 {
		return store.ErrNotModified
	}
	return nil
}

// ReplaceAppliedTutors overwrites the full appliedTutors list.
func (s *TutorRequestStore) ReplaceAppliedTutors(ctx context.Context, id string, tutors []domain.AppliedTutor) error {
	return s.updateByID(ctx, id, bson.M{"$set": bson.M{"appliedTutors": tutors}})
}

// Delete removes a tutor request by its opaque ID.
func (s *TutorRequestStore) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", store.ErrInvalidID, id)
	}

	result, err := s.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("failed to delete tutor request: %w", err)
	}
	if result.DeletedCount == 0 {
		return store.ErrTutorRequestNotFound
	}
	return nil
}

// updateByID applies an update document to the record with the given ID,
// reporting ErrNotModified when zero documents were modified.
func (s *TutorRequestStore) updateByID(ctx context.Context, id string, update bson.M) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", store.ErrInvalidID, id)
	}

	result, err := s.coll.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return fmt.Errorf("failed to update tutor request: %w", err)
	}
	if result.ModifiedCount == 0 {
		return store.ErrNotModified
	}
	return nil
}

// decodeTutorRequests drains a cursor into domain records.
func decodeTutorRequests(ctx context.Context, cursor *mongo.Cursor) ([]*domain.TutorRequest, error) {
	defer func() { _ = cursor.Close(ctx) }()

	var requests []*domain.TutorRequest
	for cursor.Next(ctx) {
		var request domain.TutorRequest
		if err := cursor.Decode(&request); err != nil {
			return nil, fmt.Errorf("failed to decode tutor request: %w", err)
		}
		requests = append(requests, &request)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("tutor request cursor failed: %w", err)
	}
	return requests, nil
}

// insertedIDString renders a driver-assigned ID as a string. ObjectIDs
// become their hex form; anything else falls back to fmt.
func insertedIDString(id interface{}) string {
	if oid, ok := id.(primitive.ObjectID); ok {
		return oid.Hex()
	}
	return fmt.Sprintf("%v", id)
}
