package web_test

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	ts := newWebTestServer(t)

	form := url.Values{
		"username":         {"alice"},
		"email":            {"alice@example.com"},
		"password":         {"secret123"},
		"password_confirm": {"secret123"},
	}
	rr := ts.post("/auth/register", form)

	// Should redirect to the dashboard
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/dashboard", rr.Header().Get("Location"))

	// Token cookie should be set
	assert.True(t, ts.cookies.hasToken())

	// Follow redirect and verify logged in
	rr = ts.followRedirect(rr)
	doc := parseHTML(rr.Body)
	assertContainsText(t, doc, "nav", "alice")
}

func TestRegisterPasswordMismatch(t *testing.T) {
	ts := newWebTestServer(t)

	form := url.Values{
		"username":         {"alice"},
		"email":            {"alice@example.com"},
		"password":         {"secret123"},
		"password_confirm": {"different"},
	}
	rr := ts.post("/auth/register", form)

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.False(t, ts.cookies.hasToken())

	doc := parseHTML(rr.Body)
	assertContainsText(t, doc, ".field-error", "Passwords do not match")
	// The submitted values survive the round trip
	assertContainsElement(t, doc, "input[name='username'][value='alice']")
}

func TestRegisterDuplicateUsername(t *testing.T) {
	ts := newWebTestServer(t)
	ts.registerUser("alice", "alice@example.com", "secret123")
	ts.logout()

	form := url.Values{
		"username":         {"alice"},
		"email":            {"other@example.com"},
		"password":         {"secret123"},
		"password_confirm": {"secret123"},
	}
	rr := ts.post("/auth/register", form)

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	doc := parseHTML(rr.Body)
	assertContainsText(t, doc, ".field-error", "already taken")
}

func TestLogin(t *testing.T) {
	ts := newWebTestServer(t)
	ts.registerUser("alice", "alice@example.com", "secret123")
	ts.logout()
	require.False(t, ts.cookies.hasToken())

	rr := ts.login("alice", "secret123")

	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/dashboard", rr.Header().Get("Location"))
	assert.True(t, ts.cookies.hasToken())

	rr = ts.followRedirect(rr)
	assert.Equal(t, http.StatusOK, rr.Code)
	doc := parseHTML(rr.Body)
	assertContainsText(t, doc, "nav", "alice")
	assertContainsElement(t, doc, ".balance")
}

func TestLoginWrongPassword(t *testing.T) {
	ts := newWebTestServer(t)
	ts.registerUser("alice", "alice@example.com", "secret123")
	ts.logout()

	rr := ts.login("alice", "wrong")

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.False(t, ts.cookies.hasToken())

	doc := parseHTML(rr.Body)
	assertContainsText(t, doc, ".error", "Invalid username or password")
}

func TestLoginFollowsNext(t *testing.T) {
	ts := newWebTestServer(t)
	ts.registerUser("alice", "alice@example.com", "secret123")
	ts.logout()

	form := url.Values{
		"username": {"alice"},
		"password": {"secret123"},
		"next":     {"/dashboard/settings"},
	}
	rr := ts.post("/auth/login", form)

	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/dashboard/settings", rr.Header().Get("Location"))
}

func TestLoginIgnoresOffsiteNext(t *testing.T) {
	ts := newWebTestServer(t)
	ts.registerUser("alice", "alice@example.com", "secret123")
	ts.logout()

	form := url.Values{
		"username": {"alice"},
		"password": {"secret123"},
		"next":     {"https://evil.example"},
	}
	rr := ts.post("/auth/login", form)

	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/dashboard", rr.Header().Get("Location"))
}

func TestLogout(t *testing.T) {
	ts := newWebTestServer(t)
	ts.registerUser("alice", "alice@example.com", "secret123")

	rr := ts.post("/auth/logout", nil)

	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/", rr.Header().Get("Location"))
	assert.False(t, ts.cookies.hasToken())

	// The session is gone server-side too: the dashboard bounces
	rr = ts.get("/dashboard")
	assert.Equal(t, http.StatusSeeOther, rr.Code)
}

func TestLogoutWithoutSession(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.post("/auth/logout", nil)
	assert.Equal(t, http.StatusSeeOther, rr.Code)
}

func TestReloginRefreshesSession(t *testing.T) {
	ts := newWebTestServer(t)
	ts.registerUser("alice", "alice@example.com", "secret123")
	first := ts.cookies.cookies["token"].Value

	// Logging in again replaces the token rather than erroring
	rr := ts.post("/auth/logout", nil)
	require.Equal(t, http.StatusSeeOther, rr.Code)
	rr = ts.login("alice", "secret123")
	require.Equal(t, http.StatusSeeOther, rr.Code)

	assert.NotEqual(t, first, ts.cookies.cookies["token"].Value)
}

func TestSettingsUpdateEmail(t *testing.T) {
	ts := newWebTestServer(t)
	ts.registerUser("alice", "alice@example.com", "secret123")

	form := url.Values{"email": {"new@example.com"}}
	rr := ts.post("/dashboard/settings", form)

	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/dashboard/settings", rr.Header().Get("Location"))

	rr = ts.followRedirect(rr)
	doc := parseHTML(rr.Body)
	assertContainsElement(t, doc, "input[name='email'][value='new@example.com']")
	assertContainsText(t, doc, ".flash-success", "Settings saved")
}
