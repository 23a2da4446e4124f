package handler

import (
	"encoding/json"
	"net/http"

	"github.com/betstack/betstack/internal/api/middleware"
	"github.com/betstack/betstack/internal/api/request"
	"github.com/betstack/betstack/internal/api/response"
	"github.com/betstack/betstack/internal/services/auth"
)

// UserHandler handles user profile endpoints
type UserHandler struct {
	authService *auth.Service
}

// NewUserHandler creates a new user handler
func NewUserHandler(authService *auth.Service) *UserHandler {
	return &UserHandler{
		authService: authService,
	}
}

// GetMe handles GET /api/v1/users/me. The snapshot is read fresh from
// storage, not echoed back from the session.
func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	user := middleware.MustGetUser(r.Context())
	response.JSON(w, http.StatusOK, response.UserFromModel(user))
}

// UpdateEmail handles PATCH /api/v1/users/me
func (h *UserHandler) UpdateEmail(w http.ResponseWriter, r *http.Request) {
	user := middleware.MustGetUser(r.Context())

	var req request.UpdateEmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.Email == "" {
		WriteError(w, NewInvalidRequestError("email is required"))
		return
	}

	updated, err := h.authService.UpdateEmail(r.Context(), user.ID, req.Email)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.UserFromModel(updated))
}
