package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/tuitionnetwork/tuition-api/internal/config"
	"github.com/tuitionnetwork/tuition-api/internal/domain"
	"github.com/tuitionnetwork/tuition-api/internal/platform/sslcommerz"
	"github.com/tuitionnetwork/tuition-api/internal/store"
)

// PaymentGateway opens hosted payment sessions. Satisfied by
// sslcommerz.Client.
type PaymentGateway interface {
	CreateSession(ctx context.Context, req sslcommerz.SessionRequest) (string, error)
}

// InitiatePaymentInput carries the details of a new payment attempt.
type InitiatePaymentInput struct {
	JobID       string
	Amount      float64
	Email       string
	Name        string
	Source      string
	ProductName string
}

// PaymentService drives the gateway payment flow: session creation, the
// success and failure callbacks, and paid-job queries.
type PaymentService struct {
	payments store.PaymentStore
	requests store.TutorRequestStore
	gateway  PaymentGateway
	cfg      config.PaymentConfig
	logger   *slog.Logger
	timeFunc func() time.Time
	tranID   func() string
}

// NewPaymentService creates a PaymentService.
func NewPaymentService(payments store.PaymentStore, requests store.TutorRequestStore, gateway PaymentGateway, cfg config.PaymentConfig, logger *slog.Logger) *PaymentService {
	if logger == nil {
		logger = slog.Default()
	}
	return &PaymentService{
		payments: payments,
		requests: requests,
		gateway:  gateway,
		cfg:      cfg,
		logger:   logger.With(slog.String("component", "payment_service")),
		timeFunc: time.Now,
		tranID:   uuid.NewString,
	}
}

// Initiate opens a gateway session for the given job and records the pending
// payment. Returns the gateway page URL for the client redirect.
func (s *PaymentService) Initiate(ctx context.Context, in InitiatePaymentInput) (string, error) {
	tranID := s.tranID()

	productName := in.ProductName
	if productName == "" {
		productName = "Tuition fee"
	}

	gatewayURL, err := s.gateway.CreateSession(ctx, sslcommerz.SessionRequest{
		TransactionID: tranID,
		Amount:        in.Amount,
		ProductName:   productName,
		CustomerName:  in.Name,
		CustomerEmail: in.Email,
		SuccessURL:    fmt.Sprintf("%s/payments/success/%s", s.cfg.ServerBaseURL, tranID),
		FailURL:       fmt.Sprintf("%s/payments/fail/%s", s.cfg.ServerBaseURL, tranID),
		CancelURL:     fmt.Sprintf("%s/payments/fail/%s", s.cfg.ServerBaseURL, tranID),
	})
	if err != nil {
		return "", err
	}

	payment := &domain.Payment{
		JobID:         in.JobID,
		TransactionID: tranID,
		Amount:        in.Amount,
		Email:         in.Email,
		Name:          in.Name,
		Source:        in.Source,
		PaidStatus:    false,
		PaymentTime:   s.timeFunc().UTC(),
	}
	if err := s.payments.Insert(ctx, payment); err != nil {
		return "", err
	}

	s.logger.InfoContext(ctx, "payment session opened",
		slog.String("transaction_id", tranID),
		slog.String("job_id", in.JobID))

	return gatewayURL, nil
}

// CompleteSuccess marks the transaction paid and returns the client page to
// redirect to, chosen by the payment's source flow.
func (s *PaymentService) CompleteSuccess(ctx context.Context, tranID string) (string, error) {
	payment, err := s.payments.GetByTransactionID(ctx, tranID)
	if err != nil {
		return "", err
	}

	if err := s.payments.MarkPaid(ctx, tranID); err != nil {
		return "", err
	}

	s.logger.InfoContext(ctx, "payment completed",
		slog.String("transaction_id", tranID),
		slog.String("job_id", payment.JobID))

	switch payment.Source {
	case domain.PaymentSourceMyApplications:
		return fmt.Sprintf("%s/tutor/payment/success/%s", s.cfg.ClientBaseURL, tranID), nil
	case domain.PaymentSourceAppliedTutors:
		return fmt.Sprintf("%s/student/payment/success/%s", s.cfg.ClientBaseURL, tranID), nil
	default:
		return s.cfg.ClientBaseURL, nil
	}
}

// CompleteFailure discards the pending payment record and returns the client
// page to redirect to.
func (s *PaymentService) CompleteFailure(ctx context.Context, tranID string) (string, error) {
	payment, err := s.payments.GetByTransactionID(ctx, tranID)
	if err != nil {
		return "", err
	}

	if err := s.payments.DeleteByTransactionID(ctx, tranID); err != nil {
		return "", err
	}

	s.logger.InfoContext(ctx, "payment failed",
		slog.String("transaction_id", tranID),
		slog.String("job_id", payment.JobID))

	switch payment.Source {
	case domain.PaymentSourceMyApplications:
		return fmt.Sprintf("%s/tutor/myApplications", s.cfg.ClientBaseURL), nil
	case domain.PaymentSourceAppliedTutors:
		return fmt.Sprintf("%s/student/posted-jobs/applied-tutors", s.cfg.ClientBaseURL), nil
	default:
		return s.cfg.ClientBaseURL, nil
	}
}

// Get returns the payment record for a transaction ID.
func (s *PaymentService) Get(ctx context.Context, tranID string) (*domain.Payment, error) {
	return s.payments.GetByTransactionID(ctx, tranID)
}

// ListPaidForJob returns completed payments against a tutor request.
func (s *PaymentService) ListPaidForJob(ctx context.Context, jobID string) ([]*domain.Payment, error) {
	return s.payments.ListPaidByJob(ctx, jobID)
}

// PaidJobs returns each completed payment made by the user joined with the
// tutor request it paid for. JobDetails is nil for since-deleted requests.
func (s *PaymentService) PaidJobs(ctx context.Context, email string) ([]domain.PaidJob, error) {
	payments, err := s.payments.ListPaidByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if len(payments) == 0 {
		return []domain.PaidJob{}, nil
	}

	jobIDs := make([]string, 0, len(payments))
	for _, p := range payments {
		jobIDs = append(jobIDs, p.JobID)
	}

	jobs, err := s.requests.FindByIDs(ctx, jobIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*domain.TutorRequest, len(jobs))
	for _, job := range jobs {
		byID[job.ID.Hex()] = job
	}

	out := make([]domain.PaidJob, 0, len(payments))
	for _, p := range payments {
		out = append(out, domain.PaidJob{
			Payment:    *p,
			JobDetails: byID[p.JobID],
		})
	}
	return out, nil
}
