package api

import (
	"github.com/tuitionnetwork/tuition-api/internal/service"
)

// SubmitSingleResponse is the body for an accepted single submission.
type SubmitSingleResponse struct {
	Message    string `json:"message"`
	InsertedID string `json:"insertedId"`
	TuitionID  string `json:"tuitionId"`
}

// SubmitBatchResponse is the body for an accepted bulk submission. Rejected
// is always present, empty when every element validated.
type SubmitBatchResponse struct {
	Message       string                 `json:"message"`
	InsertedCount int                    `json:"insertedCount"`
	InsertedIDs   []string               `json:"insertedIds"`
	Rejected      []service.RejectedItem `json:"rejected"`
}

// ValidationFailedResponse is the body for a single submission that failed
// validation.
type ValidationFailedResponse struct {
	Message string   `json:"message"`
	Errors  []string `json:"errors"`
}

// BatchValidationFailedResponse is the body for a bulk submission in which
// every element failed validation.
type BatchValidationFailedResponse struct {
	Message string                 `json:"message"`
	Errors  []service.RejectedItem `json:"errors"`
}

// UpdateTutorRequestRequest is the body for PUT /tutorRequests/{id}. Pointer
// fields distinguish absent keys from empty values; the service resolves the
// body into a single action.
type UpdateTutorRequestRequest struct {
	TutorStatus         *string `json:"tutorStatus"`
	Email               string  `json:"email"`
	Name                string  `json:"name"`
	TutorID             string  `json:"tutorId"`
	Status              *string `json:"status"`
	ConfirmedTutorEmail string  `json:"confirmedTutorEmail"`
	CancelConfirmation  bool    `json:"cancelConfirmation"`
}

// TokenRequest is the body for POST /jwt.
type TokenRequest struct {
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role"`
}

// TokenResponse carries an issued access token.
type TokenResponse struct {
	Token string `json:"token"`
}

// RegisterUserRequest is the body for POST /users and POST /tutors.
type RegisterUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required"`
	Phone    string `json:"phone"`
	Role     string `json:"role" validate:"required"`
	City     string `json:"city"`
	Location string `json:"location"`
	Premium  bool   `json:"premium"`
}

// RegisterUserResponse is the body for a registration outcome. InsertedID is
// null for duplicates, mirroring the message-only shape clients key off.
type RegisterUserResponse struct {
	Message    string  `json:"message,omitempty"`
	InsertedID *string `json:"insertedId"`
	CustomID   string  `json:"customId,omitempty"`
}

// InitiatePaymentRequest is the body for POST /payments/initiate.
type InitiatePaymentRequest struct {
	JobID       string  `json:"jobId" validate:"required"`
	Name        string  `json:"name"`
	Email       string  `json:"email" validate:"required,email"`
	Amount      float64 `json:"amount" validate:"required,gt=0"`
	Source      string  `json:"source"`
	ProductName string  `json:"productName"`
}

// InitiatePaymentResponse carries the gateway page the client redirects to.
type InitiatePaymentResponse struct {
	URL string `json:"url"`
}

// DeleteResponse reports how many documents a delete removed.
type DeleteResponse struct {
	DeletedCount int `json:"deletedCount"`
}
