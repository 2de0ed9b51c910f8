package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/tuitionnetwork/tuition-api/internal/api/shared"
	"github.com/tuitionnetwork/tuition-api/internal/domain"
	"github.com/tuitionnetwork/tuition-api/internal/service"
	"github.com/tuitionnetwork/tuition-api/internal/store"
)

// UserHandler handles user and tutor account endpoints.
type UserHandler struct {
	service   *service.UserService
	validator *validator.Validate
}

// NewUserHandler creates a UserHandler.
func NewUserHandler(svc *service.UserService) *UserHandler {
	return &UserHandler{
		service:   svc,
		validator: validator.New(),
	}
}

// Register handles POST /users. A duplicate email or phone answers 200 with
// a null insertedId rather than an error, which is what clients key off.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterUserRequest
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

	reg, err := h.service.Register(r.Context(), requestToUser(req))
	if err != nil {
		if errors.Is(err, service.ErrUserExists) {
			shared.RespondWithJSON(w, r, http.StatusOK, RegisterUserResponse{
				Message:    "user already exists",
				InsertedID: nil,
			})
			return
		}
		shared.RespondWithMessageAndLog(w, r, http.StatusInternalServerError, "Internal server error", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, RegisterUserResponse{
		InsertedID: &reg.InsertedID,
		CustomID:   reg.CustomID,
	})
}

// RegisterTutor handles POST /tutors. Only the tutor role is accepted.
func (h *UserHandler) RegisterTutor(w http.ResponseWriter, r *http.Request) {
	var req RegisterUserRequest
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

	reg, err := h.service.RegisterTutor(r.Context(), requestToUser(req))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidRole):
			shared.RespondWithJSON(w, r, http.StatusBadRequest,
				shared.MessageResponse{Message: "Role must be tutor"})
		case errors.Is(err, service.ErrUserExists):
			shared.RespondWithJSON(w, r, http.StatusOK, RegisterUserResponse{
				Message:    "user already exists",
				InsertedID: nil,
			})
		default:
			shared.RespondWithMessageAndLog(w, r, http.StatusInternalServerError, "Internal server error", err)
		}
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, RegisterUserResponse{
		InsertedID: &reg.InsertedID,
		CustomID:   reg.CustomID,
	})
}

// List handles GET /users.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.List(r.Context())
	if err != nil {
		shared.RespondWithMessageAndLog(w, r, http.StatusInternalServerError, "Internal server error", err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, users)
}

// Get handles GET /users/{email}.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	user, err := h.service.GetByEmail(r.Context(), email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			shared.RespondWithJSON(w, r, http.StatusNotFound,
				shared.MessageResponse{Message: "User not found"})
			return
		}
		shared.RespondWithMessageAndLog(w, r, http.StatusInternalServerError, "Internal server error", err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, user)
}

// GetTutorProfile handles GET /appliedTutors/{email}, looking the tutor up by
// lowercased email.
func (h *UserHandler) GetTutorProfile(w http.ResponseWriter, r *http.Request) {
	email := strings.ToLower(chi.URLParam(r, "email"))

	tutor, err := h.service.GetByEmail(r.Context(), email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			shared.RespondWithJSON(w, r, http.StatusNotFound,
				shared.MessageResponse{Message: "Tutor not found"})
			return
		}
		shared.RespondWithMessageAndLog(w, r, http.StatusInternalServerError, "Internal server error", err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, tutor)
}

// Upsert handles PUT /users/{email}, setting the provided fields on the user
// and creating the document when absent.
func (h *UserHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	var fields map[string]interface{}
	if err := shared.DecodeJSON(r, &fields); err != nil {
		shared.RespondWithJSON(w, r, http.StatusBadRequest,
			shared.MessageResponse{Message: "Invalid JSON payload"})
		return
	}

	if err := h.service.Upsert(r.Context(), email, fields); err != nil {
		shared.RespondWithMessageAndLog(w, r, http.StatusInternalServerError, "Internal server error", err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK,
		shared.MessageResponse{Message: "User updated successfully"})
}

// Delete handles DELETE /users/{email}. Admin only.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	if err := h.service.Delete(r.Context(), email); err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			shared.RespondWithJSON(w, r, http.StatusNotFound,
				shared.MessageResponse{Message: "User not found"})
			return
		}
		shared.RespondWithMessageAndLog(w, r, http.StatusInternalServerError, "Internal server error", err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, DeleteResponse{DeletedCount: 1})
}

// Search handles GET /searchUsers?q=, matching non-admin users by name or
// email case-insensitively.
func (h *UserHandler) Search(w http.ResponseWriter, r *http.Request) {
	term := strings.ToLower(r.URL.Query().Get("q"))

	users, err := h.service.Search(r.Context(), term)
	if err != nil {
		shared.RespondWithMessageAndLog(w, r, http.StatusInternalServerError, "Internal server error", err)
		return
	}
	if users == nil {
		users = []*domain.User{}
	}
	shared.RespondWithJSON(w, r, http.StatusOK, users)
}

func requestToUser(req RegisterUserRequest) *domain.User {
	return &domain.User{
		Email:    req.Email,
		Name:     req.Name,
		Phone:    req.Phone,
		Role:     req.Role,
		City:     req.City,
		Location: req.Location,
		Premium:  req.Premium,
	}
}
