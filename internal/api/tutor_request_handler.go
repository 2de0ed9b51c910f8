package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tuitionnetwork/tuition-api/internal/api/shared"
	"github.com/tuitionnetwork/tuition-api/internal/domain"
	"github.com/tuitionnetwork/tuition-api/internal/service"
)

// Submission response messages.
const (
	msgSubmitted        = "Tutor request submitted successfully"
	msgBatchSubmitted   = "Tutor requests submitted successfully"
	msgBatchPartial     = "Tutor requests processed with some validation failures"
	msgValidationFailed = "Validation failed"
	msgBatchAllInvalid  = "All tutor requests failed validation"
	msgEmptyBatch       = "Payload array must contain at least one request"
	msgSubmitError      = "Error submitting tutor request"
	msgUpdateError      = "Server error. Please try again later."
)

// TutorRequestHandler handles tutor request HTTP endpoints.
type TutorRequestHandler struct {
	service *service.TutorRequestService
}

// NewTutorRequestHandler creates a TutorRequestHandler.
func NewTutorRequestHandler(svc *service.TutorRequestService) *TutorRequestHandler {
	return &TutorRequestHandler{service: svc}
}

// Submit handles POST /tutorRequests. The body is either a single request
// object or a non-empty array of them; the array path inserts the valid
// subset and reports per-element failures.
func (h *TutorRequestHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var payload interface{}
	if err := shared.DecodeJSON(r, &payload); err != nil {
		shared.RespondWithJSON(w, r, http.StatusBadRequest,
			shared.MessageResponse{Message: "Invalid JSON payload"})
		return
	}

	if batch, ok := payload.([]interface{}); ok {
		h.submitBatch(w, r, batch)
		return
	}
	h.submitOne(w, r, payload)
}

func (h *TutorRequestHandler) submitOne(w http.ResponseWriter, r *http.Request, payload interface{}) {
	result, err := h.service.SubmitOne(r.Context(), payload)
	if err != nil {
		var vErr *service.ValidationError
		if errors.As(err, &vErr) {
			shared.RespondWithJSON(w, r, http.StatusUnprocessableEntity, ValidationFailedResponse{
				Message: msgValidationFailed,
				Errors:  vErr.Errors,
			})
			return
		}
		shared.RespondWithMessageAndLog(w, r, http.StatusInternalServerError, msgSubmitError, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, SubmitSingleResponse{
		Message:    msgSubmitted,
		InsertedID: result.InsertedID,
		TuitionID:  result.TuitionID,
	})
}

func (h *TutorRequestHandler) submitBatch(w http.ResponseWriter, r *http.Request, payloads []interface{}) {
	result, err := h.service.SubmitBatch(r.Context(), payloads)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyBatch):
			shared.RespondWithJSON(w, r, http.StatusBadRequest,
				shared.MessageResponse{Message: msgEmptyBatch})
		default:
			var batchErr *service.BatchValidationError
			if errors.As(err, &batchErr) {
				shared.RespondWithJSON(w, r, http.StatusUnprocessableEntity, BatchValidationFailedResponse{
					Message: msgBatchAllInvalid,
					Errors:  batchErr.Rejected,
				})
				return
			}
			shared.RespondWithMessageAndLog(w, r, http.StatusInternalServerError, msgSubmitError, err)
		}
		return
	}

	status := http.StatusCreated
	message := msgBatchSubmitted
	if len(result.Rejected) > 0 {
		status = http.StatusMultiStatus
		message = msgBatchPartial
	}

	rejected := result.Rejected
	if rejected == nil {
		rejected = []service.RejectedItem{}
	}
	shared.RespondWithJSON(w, r, status, SubmitBatchResponse{
		Message:       message,
		InsertedCount: result.InsertedCount,
		InsertedIDs:   result.InsertedIDs,
		Rejected:      rejected,
	})
}

// Update handles PUT /tutorRequests/{id}. The body carries exactly one
// recognized intent; several at once act on the highest-priority one.
func (h *TutorRequestHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req UpdateTutorRequestRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithJSON(w, r, http.StatusBadRequest,
			shared.MessageResponse{Message: "Invalid JSON payload"})
		return
	}

	message, err := h.service.Update(r.Context(), id, service.UpdateRequest{
		TutorStatus:         req.TutorStatus,
		Email:               req.Email,
		Name:                req.Name,
		TutorID:             req.TutorID,
		Status:              req.Status,
		ConfirmedTutorEmail: req.ConfirmedTutorEmail,
		CancelConfirmation:  req.CancelConfirmation,
	})
	if err != nil {
		status := MapErrorToStatusCode(err)
		shared.RespondWithMessageAndLog(w, r, status, GetSafeErrorMessage(err, msgUpdateError), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, shared.MessageResponse{Message: message})
}

// List handles GET /tutorRequests.
func (h *TutorRequestHandler) List(w http.ResponseWriter, r *http.Request) {
	requests, err := h.service.List(r.Context())
	if err != nil {
		shared.RespondWithMessageAndLog(w, r, http.StatusInternalServerError, "Internal server error", err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, requests)
}

// Get handles GET /tutorRequests/{id}.
func (h *TutorRequestHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	request, err := h.service.Get(r.Context(), id)
	if err != nil {
		status := MapErrorToStatusCode(err)
		shared.RespondWithMessageAndLog(w, r, status, GetSafeErrorMessage(err, "Internal server error"), err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, request)
}

// Delete handles DELETE /tutorRequests/{id}.
func (h *TutorRequestHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.service.Delete(r.Context(), id); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to delete job", err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, DeleteResponse{DeletedCount: 1})
}

// ListByConfirmedTutor handles GET /confirmedTutors/{email}, returning every
// request the tutor holds a confirmed application on.
func (h *TutorRequestHandler) ListByConfirmedTutor(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	requests, err := h.service.ListByConfirmedTutor(r.Context(), email)
	if err != nil {
		shared.RespondWithMessageAndLog(w, r, http.StatusInternalServerError, "Internal server error", err)
		return
	}
	if requests == nil {
		requests = []*domain.TutorRequest{}
	}
	shared.RespondWithJSON(w, r, http.StatusOK, requests)
}
