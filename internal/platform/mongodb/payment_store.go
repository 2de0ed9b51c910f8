package mongodb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/tuitionnetwork/tuition-api/internal/domain"
	"github.com/tuitionnetwork/tuition-api/internal/store"
)

// PaymentStore implements store.PaymentStore against a MongoDB collection.
type PaymentStore struct {
	coll   *mongo.Collection
	logger *slog.Logger
}

var _ store.PaymentStore = (*PaymentStore)(nil)

// NewPaymentStore creates a new PaymentStore backed by the given database's
// payments collection.
func NewPaymentStore(db *mongo.Database, logger *slog.Logger) *PaymentStore {
	return &PaymentStore{
		coll:   db.Collection(CollectionPayments),
		logger: logger.With("component", "payment_store"),
	}
}

// Insert saves a new payment record.
func (s *PaymentStore) Insert(ctx context.Context, payment *domain.Payment) error {
	if _, err := s.coll.InsertOne(ctx, payment); err != nil {
		return fmt.Errorf("failed to insert payment: %w", err)
	}
	return nil
}

// GetByTransactionID retrieves a payment by its gateway transaction ID.
func (s *PaymentStore) GetByTransactionID(ctx context.Context, tranID string) (*domain.Payment, error) {
	var payment domain.Payment
	err := s.coll.FindOne(ctx, bson.M{"transactionId": tranID}).Decode(&payment)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, store.ErrPaymentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}
	return &payment, nil
}

// MarkPaid flips paidStatus to true for the transaction.
func (s *PaymentStore) MarkPaid(ctx context.Context, tranID string) error {
	result, err := s.coll.UpdateOne(
		ctx,
		bson.M{"transactionId": tranID},
		bson.M{"$set": bson.M{"paidStatus": true}},
	)
	if err != nil {
		return fmt.Errorf("failed to mark payment paid: %w", err)
	}
	if result.ModifiedCount == 0 {
		return store.ErrNotModified
	}
	return nil
}

// DeleteByTransactionID removes the payment record for a failed transaction.
func (s *PaymentStore) DeleteByTransactionID(ctx context.Context, tranID string) error {
	result, err := s.coll.DeleteOne(ctx, bson.M{"transactionId": tranID})
	if err != nil {
		return fmt.Errorf("failed to delete payment: %w", err)
	}
	if result.DeletedCount == 0 {
		return store.ErrPaymentNotFound
	}
	return nil
}

// ListPaidByJob returns completed payments for a tutor request.
func (s *PaymentStore) ListPaidByJob(ctx context.Context, jobID string) ([]*domain.Payment, error) {
	return s.listPaid(ctx, bson.M{"jobId": jobID, "paidStatus": true})
}

// ListPaidByEmail returns completed payments made by a user.
func (s *PaymentStore) ListPaidByEmail(ctx context.Context, email string) ([]*domain.Payment, error) {
	return s.listPaid(ctx, bson.M{"email": email, "paidStatus": true})
}

func (s *PaymentStore) listPaid(ctx context.Context, filter bson.M) ([]*domain.Payment, error) {
	cursor, err := s.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	defer func() { _ = cursor.Close(ctx) }()

	var payments []*domain.Payment
	for cursor.Next(ctx) {
		var payment domain.Payment
		if err := cursor.Decode(&payment); err != nil {
			return nil, fmt.Errorf("failed to decode payment: %w", err)
		}
		payments = append(payments, &payment)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("payment cursor failed: %w", err)
	}
	return payments, nil
}
