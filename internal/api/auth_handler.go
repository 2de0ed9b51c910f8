package api

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/tuitionnetwork/tuition-api/internal/api/shared"
	"github.com/tuitionnetwork/tuition-api/internal/service/auth"
)

// AuthHandler handles token issuance.
type AuthHandler struct {
	jwtService auth.JWTService
	validator  *validator.Validate
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(jwtService auth.JWTService) *AuthHandler {
	return &AuthHandler{
		jwtService: jwtService,
		validator:  validator.New(),
	}
}

// IssueToken handles POST /jwt, signing an access token for the posted user
// identity. The frontend authenticates users itself and exchanges the
// identity for an API token here.
func (h *AuthHandler) IssueToken(w http.ResponseWriter, r *http.Request) {
	var req TokenRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	token, err := h.jwtService.GenerateToken(r.Context(), req.Email, req.Role)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to generate token", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, TokenResponse{Token: token})
}
