package store

import (
	"context"

	"github.com/tuitionnetwork/tuition-api/internal/domain"
)

// PaymentStore defines the interface for payment record persistence.
type PaymentStore interface {
	// Insert saves a new payment record.
	Insert(ctx context.Context, payment *domain.Payment) error

	// GetByTransactionID retrieves a payment by its gateway transaction ID.
	// Returns ErrPaymentNotFound if it does not exist.
	GetByTransactionID(ctx context.Context, tranID string) (*domain.Payment, error)

	// MarkPaid flips paidStatus to true for the transaction.
	// Returns ErrNotModified when no document matched.
	MarkPaid(ctx context.Context, tranID string) error

	// DeleteByTransactionID removes the payment record for a failed
	// transaction.
	DeleteByTransactionID(ctx context.Context, tranID string) error

	// ListPaidByJob returns completed payments for a tutor request.
	ListPaidByJob(ctx context.Context, jobID string) ([]*domain.Payment, error)

	// ListPaidByEmail returns completed payments made by a user.
	ListPaidByEmail(ctx context.Context, email string) ([]*domain.Payment, error)
}
