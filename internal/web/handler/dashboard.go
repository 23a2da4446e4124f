package handler

import (
	"net/http"
	"strings"

	"github.com/betstack/betstack/internal/services/auth"
	"github.com/betstack/betstack/internal/web/middleware"
	"github.com/betstack/betstack/internal/web/session"
	"github.com/betstack/betstack/internal/web/view"
)

// DashboardHandler handles the authenticated account pages
type DashboardHandler struct {
	authService *auth.Service
	store       *session.Store
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(authService *auth.Service, store *session.Store) *DashboardHandler {
	return &DashboardHandler{
		authService: authService,
		store:       store,
	}
}

// Dashboard renders the account dashboard
func (h *DashboardHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	data := view.DashboardData{
		PageData: view.PageData{
			Title: "Dashboard",
			Flash: middleware.GetFlash(r.Context()),
			User:  middleware.GetUser(r.Context()),
		},
	}

	if err := view.Render(w, "dashboard", data); err != nil {
		view.RenderError(w)
	}
}

// SettingsPage renders the account settings page
func (h *DashboardHandler) SettingsPage(w http.ResponseWriter, r *http.Request) {
	data := view.SettingsData{
		PageData: view.PageData{
			Title: "Settings",
			Flash: middleware.GetFlash(r.Context()),
			User:  middleware.GetUser(r.Context()),
		},
	}

	if err := view.Render(w, "settings", data); err != nil {
		view.RenderError(w)
	}
}

// UpdateSettings handles the settings form submission. After a change
// the user cookie snapshot is rewritten so later page loads render the
// updated profile.
func (h *DashboardHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())

	if err := r.ParseForm(); err != nil {
		h.renderSettingsError(w, r, "Invalid form data")
		return
	}

	email := strings.TrimSpace(r.FormValue("email"))
	if email == "" {
		h.renderSettingsError(w, r, "Email is required")
		return
	}

	updated, err := h.authService.UpdateEmail(r.Context(), user.ID, email)
	if err != nil {
		h.renderSettingsError(w, r, "Could not save settings, please try again")
		return
	}

	creds := h.store.Get(r)
	if err := h.store.Set(w, creds.Token, updated); err != nil {
		h.renderSettingsError(w, r, "Could not save settings, please try again")
		return
	}

	middleware.SetFlash(w, "success", "Settings saved")
	http.Redirect(w, r, "/dashboard/settings", http.StatusSeeOther)
}

func (h *DashboardHandler) renderSettingsError(w http.ResponseWriter, r *http.Request, message string) {
	data := view.SettingsData{
		PageData: view.PageData{
			Title: "Settings",
			User:  middleware.GetUser(r.Context()),
		},
		Error: message,
	}

	w.WriteHeader(http.StatusUnprocessableEntity)
	if err := view.Render(w, "settings", data); err != nil {
		view.RenderError(w)
	}
}
