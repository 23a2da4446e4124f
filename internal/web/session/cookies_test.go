package session

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/betstack/betstack/internal/model"
)

func requestWithCookies(t *testing.T, rr *httptest.ResponseRecorder) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, cookie := range rr.Result().Cookies() {
		if cookie.MaxAge >= 0 {
			req.AddCookie(cookie)
		}
	}
	return req
}

func TestSetGetRoundTrip(t *testing.T) {
	store := NewStore(Config{})
	user := &model.User{
		ID:       "user-1",
		Username: "alice",
		Email:    "alice@example.com",
		Wallet:   model.Wallet{Balance: 5000},
	}

	rr := httptest.NewRecorder()
	err := store.Set(rr, "sess_abc", user)
	require.NoError(t, err)

	creds := store.Get(requestWithCookies(t, rr))
	assert.True(t, creds.Authenticated())
	assert.Equal(t, "sess_abc", creds.Token)
	require.NotNil(t, creds.User)
	assert.Equal(t, "alice", creds.User.Username)
	assert.Equal(t, int64(5000), creds.User.Wallet.Balance)
}

func TestSetWritesBothCookiesWithAttributes(t *testing.T) {
	store := NewStore(Config{Secure: true})

	rr := httptest.NewRecorder()
	err := store.Set(rr, "sess_abc", &model.User{ID: "user-1"})
	require.NoError(t, err)

	cookies := rr.Result().Cookies()
	require.Len(t, cookies, 2)
	for _, c := range cookies {
		assert.True(t, c.HttpOnly, "%s must be HttpOnly", c.Name)
		assert.True(t, c.Secure, "%s must be Secure", c.Name)
		assert.Equal(t, http.SameSiteLaxMode, c.SameSite, "%s must be SameSite Lax", c.Name)
		assert.Equal(t, "/", c.Path)
		assert.Equal(t, int(TTL.Seconds()), c.MaxAge)
	}
}

func TestGetMissingCookiesIsNotAnError(t *testing.T) {
	store := NewStore(Config{})

	creds := store.Get(httptest.NewRequest(http.MethodGet, "/", nil))
	assert.False(t, creds.Authenticated())
	assert.Empty(t, creds.Token)
	assert.Nil(t, creds.User)
}

func TestStaleUserSnapshotIgnoredWithoutToken(t *testing.T) {
	store := NewStore(Config{})

	// A user cookie left behind after the token expired
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: UserCookieName, Value: "eyJpZCI6InVzZXItMSJ9"})

	creds := store.Get(req)
	assert.False(t, creds.Authenticated())
	assert.Nil(t, creds.User)
}

func TestMalformedUserCookieReadsAsAbsent(t *testing.T) {
	store := NewStore(Config{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: TokenCookieName, Value: "sess_abc"})
	req.AddCookie(&http.Cookie{Name: UserCookieName, Value: "%%%not-base64%%%"})

	creds := store.Get(req)
	// Token survives; only the snapshot is dropped
	assert.Equal(t, "sess_abc", creds.Token)
	assert.Nil(t, creds.User)
}

func TestTokenWithoutUserSnapshot(t *testing.T) {
	store := NewStore(Config{})

	rr := httptest.NewRecorder()
	err := store.Set(rr, "sess_abc", nil)
	require.NoError(t, err)

	creds := store.Get(requestWithCookies(t, rr))
	assert.True(t, creds.Authenticated())
	assert.Nil(t, creds.User)
}

func TestClearRemovesBothCookies(t *testing.T) {
	store := NewStore(Config{})

	rr := httptest.NewRecorder()
	store.Clear(rr)

	cookies := rr.Result().Cookies()
	require.Len(t, cookies, 2)
	for _, c := range cookies {
		assert.Empty(t, c.Value)
		assert.Negative(t, c.MaxAge)
	}
}

func TestClearIsIdempotent(t *testing.T) {
	store := NewStore(Config{})

	// Clearing twice in a row must not panic or error
	rr := httptest.NewRecorder()
	store.Clear(rr)
	store.Clear(rr)
}
