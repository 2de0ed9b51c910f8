package api

import (
	"errors"
	"net/http"

	"github.com/tuitionnetwork/tuition-api/internal/service"
	"github.com/tuitionnetwork/tuition-api/internal/service/auth"
	"github.com/tuitionnetwork/tuition-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes without
// leaking internal error types to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid):
		return http.StatusUnauthorized

	case errors.Is(err, service.ErrRequestNotModified),
		errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	case errors.Is(err, service.ErrEmptyBatch),
		errors.Is(err, service.ErrNothingToUpdate),
		errors.Is(err, service.ErrAlreadyApplied),
		errors.Is(err, service.ErrConfirmFailed),
		errors.Is(err, service.ErrCancelConfirmationFailed),
		errors.Is(err, store.ErrInvalidID):
		return http.StatusBadRequest

	default:
		var vErr *service.ValidationError
		var batchErr *service.BatchValidationError
		if errors.As(err, &vErr) || errors.As(err, &batchErr) {
			return http.StatusUnprocessableEntity
		}
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns the client-facing message for an error.
// Unknown errors get the generic fallback so internal details never leak.
func GetSafeErrorMessage(err error, fallback string) string {
	if err == nil {
		return fallback
	}

	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return "Token expired"
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrTokenNotYetValid):
		return "Invalid token"

	case errors.Is(err, service.ErrNothingToUpdate):
		return "Nothing to update. Provide valid fields."
	case errors.Is(err, service.ErrRequestNotModified):
		return "Request not found or not modified."
	case errors.Is(err, service.ErrAlreadyApplied):
		return "Already applied or request not found."
	case errors.Is(err, service.ErrConfirmFailed):
		return "Failed to confirm tutor."
	case errors.Is(err, service.ErrCancelConfirmationFailed):
		return "Failed to cancel confirmation."
	case errors.Is(err, service.ErrEmptyBatch):
		return "Payload array must contain at least one request"

	case errors.Is(err, store.ErrTutorRequestNotFound):
		return "Tutor request not found."
	case errors.Is(err, store.ErrUserNotFound):
		return "User not found."
	case errors.Is(err, store.ErrPaymentNotFound):
		return "Payment not found."
	case errors.Is(err, store.ErrInvalidID):
		return "Invalid ID."

	default:
		return fallback
	}
}
