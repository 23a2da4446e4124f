package handler

import (
	"net/http"

	"github.com/betstack/betstack/internal/web/middleware"
	"github.com/betstack/betstack/internal/web/view"
)

// HomeHandler handles the public pages
type HomeHandler struct{}

// NewHomeHandler creates a new HomeHandler
func NewHomeHandler() *HomeHandler {
	return &HomeHandler{}
}

// Home renders the landing page
func (h *HomeHandler) Home(w http.ResponseWriter, r *http.Request) {
	data := view.PageData{
		Title: "Home",
		Flash: middleware.GetFlash(r.Context()),
		User:  middleware.GetUser(r.Context()),
	}

	if err := view.Render(w, "home", data); err != nil {
		view.RenderError(w)
	}
}

// Promotions renders the promotions page
func (h *HomeHandler) Promotions(w http.ResponseWriter, r *http.Request) {
	h.info(w, r, "Promotions", "Current offers and promotions.")
}

// Support renders the support page
func (h *HomeHandler) Support(w http.ResponseWriter, r *http.Request) {
	h.info(w, r, "Support", "Contact support at support@betstack.example.")
}

// Terms renders the terms of service page
func (h *HomeHandler) Terms(w http.ResponseWriter, r *http.Request) {
	h.info(w, r, "Terms", "Terms of service.")
}

func (h *HomeHandler) info(w http.ResponseWriter, r *http.Request, title, body string) {
	data := view.InfoData{
		PageData: view.PageData{
			Title: title,
			Flash: middleware.GetFlash(r.Context()),
			User:  middleware.GetUser(r.Context()),
		},
		Body: body,
	}

	if err := view.Render(w, "info", data); err != nil {
		view.RenderError(w)
	}
}
