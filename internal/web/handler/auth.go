package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/betstack/betstack/internal/services/auth"
	"github.com/betstack/betstack/internal/web/middleware"
	"github.com/betstack/betstack/internal/web/session"
	"github.com/betstack/betstack/internal/web/view"
)

// AuthHandler handles authentication pages and actions
type AuthHandler struct {
	authService *auth.Service
	store       *session.Store
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *auth.Service, store *session.Store) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		store:       store,
	}
}

// LoginPage renders the login page
func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	data := view.LoginData{
		PageData: view.PageData{
			Title: "Login",
			Flash: middleware.GetFlash(r.Context()),
		},
		Next: r.URL.Query().Get("next"),
	}

	if err := view.Render(w, "login", data); err != nil {
		view.RenderError(w)
	}
}

// Login handles the login form submission. On success it writes the
// session cookies and redirects; where the user lands afterwards is
// decided here, not by the session layer.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderLoginError(w, r, "", "Invalid form data")
		return
	}

	username := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password")
	next := r.FormValue("next")

	if username == "" || password == "" {
		h.renderLoginError(w, r, username, "Username and password are required")
		return
	}

	sess, err := h.authService.Login(r.Context(), username, password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			h.renderLoginError(w, r, username, "Invalid username or password")
		} else {
			h.renderLoginError(w, r, username, "Login failed, please try again")
		}
		return
	}

	if err := h.store.Set(w, sess.Token, &sess.User); err != nil {
		h.renderLoginError(w, r, username, "Login failed, please try again")
		return
	}

	middleware.SetFlash(w, "success", "Welcome back, "+sess.User.Username+"!")

	// Only follow same-site redirect targets
	if strings.HasPrefix(next, "/") && !strings.HasPrefix(next, "//") {
		http.Redirect(w, r, next, http.StatusSeeOther)
	} else {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
	}
}

// RegisterPage renders the registration page
func (h *AuthHandler) RegisterPage(w http.ResponseWriter, r *http.Request) {
	data := view.RegisterData{
		PageData: view.PageData{
			Title: "Register",
			Flash: middleware.GetFlash(r.Context()),
		},
		FieldErrors: make(map[string]string),
	}

	if err := view.Render(w, "register", data); err != nil {
		view.RenderError(w)
	}
}

// Register handles the registration form submission
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderRegisterError(w, r, "", "", "Invalid form data", nil)
		return
	}

	username := strings.TrimSpace(r.FormValue("username"))
	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")
	confirm := r.FormValue("password_confirm")

	fieldErrors := make(map[string]string)
	if username == "" {
		fieldErrors["username"] = "Username is required"
	}
	if email == "" {
		fieldErrors["email"] = "Email is required"
	}
	if len(password) < 8 {
		fieldErrors["password"] = "Password must be at least 8 characters"
	}
	if password != confirm {
		fieldErrors["password_confirm"] = "Passwords do not match"
	}
	if len(fieldErrors) > 0 {
		h.renderRegisterError(w, r, username, email, "", fieldErrors)
		return
	}

	sess, err := h.authService.Register(r.Context(), username, email, password)
	if err != nil {
		if errors.Is(err, auth.ErrUsernameExists) {
			h.renderRegisterError(w, r, username, email, "", map[string]string{
				"username": "That username is already taken",
			})
		} else {
			h.renderRegisterError(w, r, username, email, "Registration failed, please try again", nil)
		}
		return
	}

	if err := h.store.Set(w, sess.Token, &sess.User); err != nil {
		h.renderRegisterError(w, r, username, email, "Registration failed, please try again", nil)
		return
	}

	middleware.SetFlash(w, "success", "Welcome, "+sess.User.Username+"!")
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// ForgotPasswordPage renders the forgot-password page
func (h *AuthHandler) ForgotPasswordPage(w http.ResponseWriter, r *http.Request) {
	data := view.ForgotPasswordData{
		PageData: view.PageData{
			Title: "Reset password",
			Flash: middleware.GetFlash(r.Context()),
		},
	}

	if err := view.Render(w, "forgot-password", data); err != nil {
		view.RenderError(w)
	}
}

// ForgotPassword handles the forgot-password form submission. The
// response is identical whether or not the email is known.
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/forgot-password", http.StatusSeeOther)
		return
	}

	middleware.SetFlash(w, "info", "If that email is registered, a reset link is on its way")
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// Logout invalidates the session and clears the cookies. Safe to call
// without a session.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	creds := h.store.Get(r)
	if creds.Token != "" {
		if err := h.authService.InvalidateSession(r.Context(), creds.Token); err != nil {
			// The cookies are cleared regardless; the stored session
			// will age out on its own.
			middleware.SetFlash(w, "error", "Logout did not complete cleanly")
		}
	}

	h.store.Clear(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *AuthHandler) renderLoginError(w http.ResponseWriter, r *http.Request, username, message string) {
	data := view.LoginData{
		PageData: view.PageData{Title: "Login"},
		Username: username,
		Error:    message,
		Next:     r.FormValue("next"),
	}

	w.WriteHeader(http.StatusUnprocessableEntity)
	if err := view.Render(w, "login", data); err != nil {
		view.RenderError(w)
	}
}

func (h *AuthHandler) renderRegisterError(w http.ResponseWriter, r *http.Request, username, email, message string, fieldErrors map[string]string) {
	if fieldErrors == nil {
		fieldErrors = make(map[string]string)
	}
	data := view.RegisterData{
		PageData:    view.PageData{Title: "Register"},
		Username:    username,
		Email:       email,
		Error:       message,
		FieldErrors: fieldErrors,
	}

	w.WriteHeader(http.StatusUnprocessableEntity)
	if err := view.Render(w, "register", data); err != nil {
		view.RenderError(w)
	}
}
