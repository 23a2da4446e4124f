package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/betstack/betstack/internal/coordinator"
	"github.com/betstack/betstack/internal/model"
	"github.com/betstack/betstack/internal/services/auth"
	"github.com/betstack/betstack/internal/services/topup"
	"github.com/betstack/betstack/internal/web/middleware"
	"github.com/betstack/betstack/internal/web/session"
	"github.com/betstack/betstack/internal/web/view"
)

// TopupHandler handles the payment gateway callback page
type TopupHandler struct {
	authService  *auth.Service
	topupService *topup.Service
	store        *session.Store
	logger       *slog.Logger
}

// NewTopupHandler creates a new TopupHandler
func NewTopupHandler(authService *auth.Service, topupService *topup.Service, store *session.Store, logger *slog.Logger) *TopupHandler {
	return &TopupHandler{
		authService:  authService,
		topupService: topupService,
		store:        store,
		logger:       logger,
	}
}

// Callback reconciles a gateway redirect with the platform. The whole
// sequence runs per request: revisiting the URL re-verifies the
// reference, and the wallet layer guarantees the credit lands at most
// once.
func (h *TopupHandler) Callback(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	reference := r.URL.Query().Get("reference")

	coord := coordinator.New(coordinator.Config{
		Credentials: &requestCredentials{store: h.store, w: w, r: r},
		Profile:     &serviceProfile{authService: h.authService},
		Logger:      h.logger,
	})
	defer coord.Dispose()

	if err := coord.Bootstrap(r.Context()); err != nil {
		view.RenderError(w)
		return
	}

	flow := coordinator.NewPaymentFlow(coord, &serviceVerifier{
		topupService: h.topupService,
		userID:       user.ID,
	})

	result, err := flow.Run(r.Context(), reference)
	if errors.Is(err, coordinator.ErrNoReference) {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	if err != nil {
		// Verification errors render as a failed outcome; the receipt
		// stays pending server-side so a revisit can still resolve it.
		h.logger.Warn("top-up verification errored",
			slog.String("reference", reference),
			slog.String("error", err.Error()))
	}

	display := user
	if result.State == coordinator.FlowSuccess {
		// The refetched snapshot carries the credited balance; push it
		// back into the cookie so later pages render it too.
		if fresh := coord.User(); fresh != nil {
			display = fresh
			if err := h.store.Set(w, coord.Token(), fresh); err != nil {
				h.logger.Warn("failed to refresh session cookie after top-up",
					slog.String("error", err.Error()))
			}
		}
	}

	message := result.Message
	if message == "" {
		if result.State == coordinator.FlowSuccess {
			message = "Your top-up has been credited"
		} else {
			message = "We could not confirm this payment"
		}
	}

	data := view.TopupResultData{
		PageData: view.PageData{
			Title: "Top-up",
			User:  display,
		},
		Reference: reference,
		Succeeded: result.State == coordinator.FlowSuccess,
		Message:   message,
	}

	if err := view.Render(w, "topup-result", data); err != nil {
		view.RenderError(w)
	}
}

// requestCredentials adapts the cookie store to the coordinator's
// credential interface for the lifetime of one request
type requestCredentials struct {
	store *session.Store
	w     http.ResponseWriter
	r     *http.Request
}

func (c *requestCredentials) Load(ctx context.Context) (coordinator.Credentials, error) {
	creds := c.store.Get(c.r)
	return coordinator.Credentials{Token: creds.Token, User: creds.User}, nil
}

func (c *requestCredentials) Store(ctx context.Context, creds coordinator.Credentials) error {
	return c.store.Set(c.w, creds.Token, creds.User)
}

func (c *requestCredentials) Clear(ctx context.Context) error {
	c.store.Clear(c.w)
	return nil
}

// serviceProfile adapts the auth service to the coordinator's profile
// fetcher
type serviceProfile struct {
	authService *auth.Service
}

func (p *serviceProfile) FetchProfile(ctx context.Context, token string) (*model.User, error) {
	return p.authService.GetUser(ctx, token)
}

// serviceVerifier adapts the top-up service to the payment flow's
// verifier, bound to the requesting user
type serviceVerifier struct {
	topupService *topup.Service
	userID       model.UserID
}

func (v *serviceVerifier) VerifyTopup(ctx context.Context, reference string) (string, bool, error) {
	receipt, err := v.topupService.Verify(ctx, v.userID, reference)
	if err != nil {
		return "", false, err
	}
	return receipt.Message, receipt.Status == model.TopupSuccess, nil
}
