package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/tuitionnetwork/tuition-api/internal/api/shared"
	"github.com/tuitionnetwork/tuition-api/internal/domain"
	"github.com/tuitionnetwork/tuition-api/internal/service"
	"github.com/tuitionnetwork/tuition-api/internal/store"
)

// PaymentHandler handles payment-gateway endpoints. The success and fail
// callbacks are invoked by the gateway, not the client, and answer with
// redirects back into the frontend.
type PaymentHandler struct {
	service   *service.PaymentService
	validator *validator.Validate
}

// NewPaymentHandler creates a PaymentHandler.
func NewPaymentHandler(svc *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		service:   svc,
		validator: validator.New(),
	}
}

// Initiate handles POST /payments/initiate.
func (h *PaymentHandler) Initiate(w http.ResponseWriter, r *http.Request) {
	var req InitiatePaymentRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithJSON(w, r, http.StatusBadRequest,
			shared.MessageResponse{Message: "Invalid JSON payload"})
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithJSON(w, r, http.StatusBadRequest,
			shared.MessageResponse{Message: "Validation error: " + err.Error()})
		return
	}

	url, err := h.service.Initiate(r.Context(), service.InitiatePaymentInput{
		JobID:       req.JobID,
		Amount:      req.Amount,
		Email:       req.Email,
		Name:        req.Name,
		Source:      req.Source,
		ProductName: req.ProductName,
	})
	if err != nil {
		shared.RespondWithMessageAndLog(w, r, http.StatusInternalServerError, "Failed to initiate payment", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, InitiatePaymentResponse{URL: url})
}

// SuccessCallback handles POST /payments/success/{tranId} from the gateway.
func (h *PaymentHandler) SuccessCallback(w http.ResponseWriter, r *http.Request) {
	tranID := chi.URLParam(r, "tranId")

	redirect, err := h.service.CompleteSuccess(r.Context(), tranID)
	if err != nil {
		h.respondCallbackError(w, r, err)
		return
	}
	http.Redirect(w, r, redirect, http.StatusFound)
}

// FailCallback handles POST /payments/fail/{tranId} from the gateway.
func (h *PaymentHandler) FailCallback(w http.ResponseWriter, r *http.Request) {
	tranID := chi.URLParam(r, "tranId")

	redirect, err := h.service.CompleteFailure(r.Context(), tranID)
	if err != nil {
		h.respondCallbackError(w, r, err)
		return
	}
	http.Redirect(w, r, redirect, http.StatusFound)
}

func (h *PaymentHandler) respondCallbackError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, store.ErrPaymentNotFound) {
		shared.RespondWithJSON(w, r, http.StatusNotFound,
			shared.MessageResponse{Message: "Payment not found"})
		return
	}
	shared.RespondWithMessageAndLog(w, r, http.StatusInternalServerError, "Internal server error", err)
}

// Get handles GET /payments/success/{tranId}, returning the payment record
// the success page renders.
func (h *PaymentHandler) Get(w http.ResponseWriter, r *http.Request) {
	tranID := chi.URLParam(r, "tranId")

	payment, err := h.service.Get(r.Context(), tranID)
	if err != nil {
		if errors.Is(err, store.ErrPaymentNotFound) {
			shared.RespondWithJSON(w, r, http.StatusNotFound,
				shared.MessageResponse{Message: "Payment not found"})
			return
		}
		shared.RespondWithMessageAndLog(w, r, http.StatusInternalServerError, "Internal server error", err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, payment)
}

// ListForJob handles GET /payments/job/{jobId}.
func (h *PaymentHandler) ListForJob(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobId")

	payments, err := h.service.ListPaidForJob(r.Context(), jobID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to fetch payment data", err)
		return
	}
	if payments == nil {
		payments = []*domain.Payment{}
	}
	shared.RespondWithJSON(w, r, http.StatusOK, payments)
}

// PaidJobs handles GET /users/{email}/paidJobs, joining each completed
// payment with the tutor request it paid for.
func (h *PaymentHandler) PaidJobs(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	jobs, err := h.service.PaidJobs(r.Context(), email)
	if err != nil {
		shared.RespondWithMessageAndLog(w, r, http.StatusInternalServerError, "Internal server error", err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, jobs)
}
