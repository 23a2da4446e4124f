package handler

import (
	"encoding/json"
	"net/http"

	"github.com/betstack/betstack/internal/api/middleware"
	"github.com/betstack/betstack/internal/api/request"
	"github.com/betstack/betstack/internal/api/response"
	"github.com/betstack/betstack/internal/services/topup"
)

// TopupHandler handles wallet top-up endpoints
type TopupHandler struct {
	topupService *topup.Service
}

// NewTopupHandler creates a new top-up handler
func NewTopupHandler(topupService *topup.Service) *TopupHandler {
	return &TopupHandler{
		topupService: topupService,
	}
}

// Verify handles POST /api/v1/topups/verify. Verification is
// idempotent per reference; replays return the stored receipt.
func (h *TopupHandler) Verify(w http.ResponseWriter, r *http.Request) {
	user := middleware.MustGetUser(r.Context())

	var req request.VerifyTopupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.Reference == "" {
		WriteError(w, NewInvalidRequestError("reference is required"))
		return
	}

	receipt, err := h.topupService.Verify(r.Context(), user.ID, req.Reference)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.TopupResponseFromReceipt(receipt))
}
