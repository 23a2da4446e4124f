package handler

import (
	"encoding/json"
	"net/http"

	"github.com/betstack/betstack/internal/api/middleware"
	"github.com/betstack/betstack/internal/api/request"
	"github.com/betstack/betstack/internal/api/response"
	"github.com/betstack/betstack/internal/services/auth"
)

// AuthHandler handles account and session endpoints
type AuthHandler struct {
	authService *auth.Service
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *auth.Service) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Register handles POST /api/v1/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Username == "" {
		WriteError(w, NewInvalidRequestError("username is required"))
		return
	}
	if req.Email == "" {
		WriteError(w, NewInvalidRequestError("email is required"))
		return
	}
	if len(req.Password) < 8 {
		WriteError(w, NewInvalidRequestError("password must be at least 8 characters"))
		return
	}

	sess, err := h.authService.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.AuthResponseFromSession(sess))
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Username == "" {
		WriteError(w, NewInvalidRequestError("username is required"))
		return
	}
	if req.Password == "" {
		WriteError(w, NewInvalidRequestError("password is required"))
		return
	}

	sess, err := h.authService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.AuthResponseFromSession(sess))
}

// Logout handles POST /api/v1/auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	sess := middleware.GetSession(r.Context())

	if err := h.authService.InvalidateSession(r.Context(), sess.Token); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}
