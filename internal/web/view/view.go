// Package view renders the HTML pages. The pages are deliberately
// plain: they only display state owned elsewhere and post back into
// the handlers.
package view

import (
	"html/template"
	"net/http"

	"github.com/betstack/betstack/internal/model"
)

// FlashMessage is a one-shot notice shown on the next page load
type FlashMessage struct {
	Type    string // "success", "error", "info"
	Message string
}

// PageData is the data every page receives
type PageData struct {
	Title string
	Flash *FlashMessage
	User  *model.User
}

// LoginData is the data for the login page
type LoginData struct {
	PageData
	Username string
	Error    string
	Next     string
}

// RegisterData is the data for the registration page
type RegisterData struct {
	PageData
	Username    string
	Email       string
	Error       string
	FieldErrors map[string]string
}

// ForgotPasswordData is the data for the forgot-password page
type ForgotPasswordData struct {
	PageData
	Email string
}

// InfoData is the data for the static informational pages
type InfoData struct {
	PageData
	Body string
}

// DashboardData is the data for the dashboard page
type DashboardData struct {
	PageData
}

// SettingsData is the data for the settings page
type SettingsData struct {
	PageData
	Error string
}

// TopupResultData is the terminal state of a top-up verification
type TopupResultData struct {
	PageData
	Reference string
	Succeeded bool
	Message   string
}

var pages = template.Must(template.New("").Parse(layoutTemplate + pageTemplates))

// Render writes the named page with the given data
func Render(w http.ResponseWriter, name string, data any) error {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return pages.ExecuteTemplate(w, name, data)
}

// RenderError writes a plain 500 page when rendering itself failed
func RenderError(w http.ResponseWriter) {
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}

const layoutTemplate = `
{{define "header"}}<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}} - Betstack</title>
<link rel="stylesheet" href="/static/style.css">
</head>
<body>
<nav>
<a href="/" class="brand">Betstack</a>
{{if .User}}
<span class="nav-user">{{.User.Username}}</span>
<span class="nav-balance">{{.User.Wallet.Balance}}</span>
<form method="post" action="/auth/logout" class="nav-logout"><button type="submit">Log out</button></form>
{{else}}
<a href="/login">Log in</a>
<a href="/register">Sign up</a>
{{end}}
</nav>
{{if .Flash}}<div class="flash flash-{{.Flash.Type}}">{{.Flash.Message}}</div>{{end}}
<main>{{end}}

{{define "footer"}}</main>
</body>
</html>{{end}}
`

const pageTemplates = `
{{define "home"}}{{template "header" .}}
<h1>Welcome to Betstack</h1>
{{if .User}}
<p><a href="/dashboard">Go to your dashboard</a></p>
{{else}}
<p><a href="/login">Log in</a> or <a href="/register">create an account</a> to get started.</p>
{{end}}
{{template "footer" .}}{{end}}

{{define "info"}}{{template "header" .PageData}}
<h1>{{.Title}}</h1>
<p>{{.Body}}</p>
{{template "footer" .PageData}}{{end}}

{{define "login"}}{{template "header" .PageData}}
<h1>Log in</h1>
{{if .Error}}<div class="error">{{.Error}}</div>{{end}}
<form method="post" action="/auth/login">
<input type="hidden" name="next" value="{{.Next}}">
<label>Username <input type="text" name="username" value="{{.Username}}" required></label>
<label>Password <input type="password" name="password" required></label>
<button type="submit">Log in</button>
</form>
<p><a href="/forgot-password">Forgot your password?</a></p>
{{template "footer" .PageData}}{{end}}

{{define "register"}}{{template "header" .PageData}}
<h1>Create account</h1>
{{if .Error}}<div class="error">{{.Error}}</div>{{end}}
<form method="post" action="/auth/register">
<label>Username <input type="text" name="username" value="{{.Username}}" required>
{{with index .FieldErrors "username"}}<span class="field-error">{{.}}</span>{{end}}</label>
<label>Email <input type="email" name="email" value="{{.Email}}" required>
{{with index .FieldErrors "email"}}<span class="field-error">{{.}}</span>{{end}}</label>
<label>Password <input type="password" name="password" required>
{{with index .FieldErrors "password"}}<span class="field-error">{{.}}</span>{{end}}</label>
<label>Confirm password <input type="password" name="password_confirm" required>
{{with index .FieldErrors "password_confirm"}}<span class="field-error">{{.}}</span>{{end}}</label>
<button type="submit">Sign up</button>
</form>
{{template "footer" .PageData}}{{end}}

{{define "forgot-password"}}{{template "header" .PageData}}
<h1>Reset password</h1>
<form method="post" action="/auth/forgot-password">
<label>Email <input type="email" name="email" value="{{.Email}}" required></label>
<button type="submit">Send reset link</button>
</form>
{{template "footer" .PageData}}{{end}}

{{define "dashboard"}}{{template "header" .PageData}}
<h1>Dashboard</h1>
<section class="wallet">
<h2>Wallet</h2>
<p class="balance">{{.User.Wallet.Balance}}</p>
</section>
<p><a href="/dashboard/settings">Settings</a></p>
{{template "footer" .PageData}}{{end}}

{{define "settings"}}{{template "header" .PageData}}
<h1>Settings</h1>
{{if .Error}}<div class="error">{{.Error}}</div>{{end}}
<form method="post" action="/dashboard/settings">
<label>Email <input type="email" name="email" value="{{.User.Email}}" required></label>
<button type="submit">Save</button>
</form>
{{template "footer" .PageData}}{{end}}

{{define "topup-result"}}{{template "header" .PageData}}
{{if .Succeeded}}
<h1>Top-up complete</h1>
<div class="topup-success">{{.Message}}</div>
<p>Your new balance: <span class="balance">{{.User.Wallet.Balance}}</span></p>
{{else}}
<h1>Top-up failed</h1>
<div class="topup-failed">{{.Message}}</div>
{{end}}
<p><a href="/dashboard">Back to dashboard</a></p>
{{template "footer" .PageData}}{{end}}
`
