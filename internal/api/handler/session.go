package handler

import (
	"encoding/json"
	"net/http"

	"github.com/betstack/betstack/internal/api/middleware"
	"github.com/betstack/betstack/internal/api/request"
	"github.com/betstack/betstack/internal/api/response"
	"github.com/betstack/betstack/internal/model"
	"github.com/betstack/betstack/internal/services/auth"
	"github.com/betstack/betstack/internal/web/session"
)

// SessionHandler exposes the current session for client bootstrap
type SessionHandler struct {
	authService *auth.Service
	store       *session.Store
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(authService *auth.Service, store *session.Store) *SessionHandler {
	return &SessionHandler{
		authService: authService,
		store:       store,
	}
}

// Get handles GET /api/v1/session. The read always succeeds: with no
// usable session the response carries nulls, never an error, so a
// client can always resolve its initial state.
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	token := middleware.ExtractToken(r)
	if token == "" {
		response.JSON(w, http.StatusOK, response.SessionResponse{})
		return
	}

	sess, err := h.authService.ValidateSession(r.Context(), token)
	if err != nil {
		// A stale or forged token reads the same as no token
		response.JSON(w, http.StatusOK, response.SessionResponse{})
		return
	}

	user := response.UserFromModel(&sess.User)
	response.JSON(w, http.StatusOK, response.SessionResponse{
		Authenticated: true,
		Token:         &sess.Token,
		User:          &user,
	})
}

// Put handles PUT /api/v1/session. It writes the token and user
// snapshot as the two browser cookies, so a client that obtained
// credentials through the JSON surface can hand them to the web
// surface.
func (h *SessionHandler) Put(w http.ResponseWriter, r *http.Request) {
	var req request.WriteSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Token == "" {
		WriteError(w, NewInvalidRequestError("token is required"))
		return
	}

	var user *model.User
	if req.User != nil {
		user = &model.User{
			ID:       model.UserID(req.User.ID),
			Username: req.User.Username,
			Email:    req.User.Email,
			Wallet:   model.Wallet{Balance: req.User.Wallet.Balance},
		}
	}

	if err := h.store.Set(w, req.Token, user); err != nil {
		// Serialization failure is the one way this write fails
		response.JSON(w, http.StatusInternalServerError, response.SessionWriteResponse{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	response.JSON(w, http.StatusOK, response.SessionWriteResponse{Success: true})
}

// Delete handles DELETE /api/v1/session. Invalidating an absent or
// already-invalid session is a success, and the browser cookies are
// cleared either way.
func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	token := middleware.ExtractToken(r)

	if err := h.authService.InvalidateSession(r.Context(), token); err != nil {
		WriteError(w, err)
		return
	}

	h.store.Clear(w)
	response.NoContent(w)
}
