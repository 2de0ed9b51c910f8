package service

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tuitionnetwork/tuition-api/internal/config"
	"github.com/tuitionnetwork/tuition-api/internal/domain"
	"github.com/tuitionnetwork/tuition-api/internal/platform/sslcommerz"
	"github.com/tuitionnetwork/tuition-api/internal/store"
)

// mockPaymentStore implements store.PaymentStore with overridable function
// fields.
type mockPaymentStore struct {
	insertFn                func(ctx context.Context, payment *domain.Payment) error
	getByTransactionIDFn    func(ctx context.Context, tranID string) (*domain.Payment, error)
	markPaidFn              func(ctx context.Context, tranID string) error
	deleteByTransactionIDFn func(ctx context.Context, tranID string) error
	listPaidByJobFn         func(ctx context.Context, jobID string) ([]*domain.Payment, error)
	listPaidByEmailFn       func(ctx context.Context, email string) ([]*domain.Payment, error)
}

func (m *mockPaymentStore) Insert(ctx context.Context, payment *domain.Payment) error {
	return m.insertFn(ctx, payment)
}

func (m *mockPaymentStore) GetByTransactionID(ctx context.Context, tranID string) (*domain.Payment, error) {
	return m.getByTransactionIDFn(ctx, tranID)
}

func (m *mockPaymentStore) MarkPaid(ctx context.Context, tranID string) error {
	return m.markPaidFn(ctx, tranID)
}

func (m *mockPaymentStore) DeleteByTransactionID(ctx context.Context, tranID string) error {
	return m.deleteByTransactionIDFn(ctx, tranID)
}

func (m *mockPaymentStore) ListPaidByJob(ctx context.Context, jobID string) ([]*domain.Payment, error) {
	return m.listPaidByJobFn(ctx, jobID)
}

func (m *mockPaymentStore) ListPaidByEmail(ctx context.Context, email string) ([]*domain.Payment, error) {
	return m.listPaidByEmailFn(ctx, email)
}

// mockGateway implements PaymentGateway.
type mockGateway struct {
	createSessionFn func(ctx context.Context, req sslcommerz.SessionRequest) (string, error)
}

func (m *mockGateway) CreateSession(ctx context.Context, req sslcommerz.SessionRequest) (string, error) {
	return m.createSessionFn(ctx, req)
}

var testPaymentConfig = config.PaymentConfig{
	ClientBaseURL: "https://app.example.com",
	ServerBaseURL: "https://api.example.com",
}

func newTestPaymentService(payments *mockPaymentStore, requests *mockTutorRequestStore, gateway *mockGateway) *PaymentService {
	svc := NewPaymentService(payments, requests, gateway, testPaymentConfig, slog.Default())
	svc.timeFunc = func() time.Time { return time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC) }
	svc.tranID = func() string { return "tran-123" }
	return svc
}

func TestInitiate(t *testing.T) {
	t.Parallel()

	t.Run("opens a session and records the pending payment", func(t *testing.T) {
		t.Parallel()

		var sessionReq sslcommerz.SessionRequest
		gateway := &mockGateway{
			createSessionFn: func(ctx context.Context, req sslcommerz.SessionRequest) (string, error) {
				sessionReq = req
				return "https://gateway.example.com/pay", nil
			},
		}
		var recorded *domain.Payment
		payments := &mockPaymentStore{
			insertFn: func(ctx context.Context, payment *domain.Payment) error {
				recorded = payment
				return nil
			},
		}
		svc := newTestPaymentService(payments, &mockTutorRequestStore{}, gateway)

		url, err := svc.Initiate(context.Background(), InitiatePaymentInput{
			JobID:  "65f000000000000000000001",
			Amount: 500,
			Email:  "t@example.com",
			Name:   "Karim",
			Source: domain.PaymentSourceMyApplications,
		})
		require.NoError(t, err)

		assert.Equal(t, "https://gateway.example.com/pay", url)
		assert.Equal(t, "tran-123", sessionReq.TransactionID)
		assert.Equal(t, "https://api.example.com/payments/success/tran-123", sessionReq.SuccessURL)
		assert.Equal(t, "https://api.example.com/payments/fail/tran-123", sessionReq.FailURL)

		require.NotNil(t, recorded)
		assert.Equal(t, "tran-123", recorded.TransactionID)
		assert.False(t, recorded.PaidStatus)
		assert.Equal(t, domain.PaymentSourceMyApplications, recorded.Source)
	})

	t.Run("gateway rejection stops the flow before any record", func(t *testing.T) {
		t.Parallel()

		gateway := &mockGateway{
			createSessionFn: func(ctx context.Context, req sslcommerz.SessionRequest) (string, error) {
				return "", assert.AnError
			},
		}
		payments := &mockPaymentStore{
			insertFn: func(ctx context.Context, payment *domain.Payment) error {
				t.Fatal("insert must not be called when the gateway rejects")
				return nil
			},
		}
		svc := newTestPaymentService(payments, &mockTutorRequestStore{}, gateway)

		_, err := svc.Initiate(context.Background(), InitiatePaymentInput{Amount: 500})
		assert.Error(t, err)
	})
}

func TestCompleteSuccess(t *testing.T) {
	t.Parallel()

	t.Run("marks paid and redirects by source", func(t *testing.T) {
		t.Parallel()

		marked := false
		payments := &mockPaymentStore{
			getByTransactionIDFn: func(ctx context.Context, tranID string) (*domain.Payment, error) {
				return &domain.Payment{TransactionID: tranID, Source: domain.PaymentSourceAppliedTutors}, nil
			},
			markPaidFn: func(ctx context.Context, tranID string) error {
				marked = true
				return nil
			},
		}
		svc := newTestPaymentService(payments, &mockTutorRequestStore{}, &mockGateway{})

		redirect, err := svc.CompleteSuccess(context.Background(), "tran-123")
		require.NoError(t, err)
		assert.True(t, marked)
		assert.Equal(t, "https://app.example.com/student/payment/success/tran-123", redirect)
	})

	t.Run("unknown transaction surfaces not found", func(t *testing.T) {
		t.Parallel()

		payments := &mockPaymentStore{
			getByTransactionIDFn: func(ctx context.Context, tranID string) (*domain.Payment, error) {
				return nil, store.ErrPaymentNotFound
			},
		}
		svc := newTestPaymentService(payments, &mockTutorRequestStore{}, &mockGateway{})

		_, err := svc.CompleteSuccess(context.Background(), "tran-missing")
		assert.ErrorIs(t, err, store.ErrPaymentNotFound)
	})
}

func TestCompleteFailure(t *testing.T) {
	t.Parallel()

	deleted := false
	payments := &mockPaymentStore{
		getByTransactionIDFn: func(ctx context.Context, tranID string) (*domain.Payment, error) {
			return &domain.Payment{TransactionID: tranID, Source: domain.PaymentSourceMyApplications}, nil
		},
		deleteByTransactionIDFn: func(ctx context.Context, tranID string) error {
			deleted = true
			return nil
		},
	}
	svc := newTestPaymentService(payments, &mockTutorRequestStore{}, &mockGateway{})

	redirect, err := svc.CompleteFailure(context.Background(), "tran-123")
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.Equal(t, "https://app.example.com/tutor/myApplications", redirect)
}

func TestPaidJobs(t *testing.T) {
	t.Parallel()

	jobID := primitive.NewObjectID()

	payments := &mockPaymentStore{
		listPaidByEmailFn: func(ctx context.Context, email string) ([]*domain.Payment, error) {
			return []*domain.Payment{
				{TransactionID: "tran-1", JobID: jobID.Hex()},
				{TransactionID: "tran-2", JobID: "65f0000000000000000000ff"},
			}, nil
		},
	}
	requests := &mockTutorRequestStore{
		findByIDsFn: func(ctx context.Context, ids []string) ([]*domain.TutorRequest, error) {
			assert.ElementsMatch(t, []string{jobID.Hex(), "65f0000000000000000000ff"}, ids)
			return []*domain.TutorRequest{{ID: jobID, TuitionID: "42"}}, nil
		},
	}
	svc := newTestPaymentService(payments, requests, &mockGateway{})

	jobs, err := svc.PaidJobs(context.Background(), "t@example.com")
	require.NoError(t, err)

	require.Len(t, jobs, 2)
	require.NotNil(t, jobs[0].JobDetails)
	assert.Equal(t, "42", jobs[0].JobDetails.TuitionID)
	assert.Nil(t, jobs[1].JobDetails, "deleted job still returns the payment")
}
