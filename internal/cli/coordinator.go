package cli

import (
	"context"
	"net/http"

	"github.com/betstack/betstack/internal/coordinator"
	"github.com/betstack/betstack/internal/model"
)

// newCoordinator builds a session coordinator over the credentials
// file and the JSON API. Commands bootstrap it, act, and dispose it.
func newCoordinator() *coordinator.Coordinator {
	return coordinator.New(coordinator.Config{
		Credentials:   &fileCredentials{cfg: cfg},
		Authenticator: &apiAuthenticator{client: client},
		Profile:       &apiProfile{client: client},
	})
}

// fileCredentials stores session credentials in the CLI's credentials
// file
type fileCredentials struct {
	cfg *Config
}

func (f *fileCredentials) Load(ctx context.Context) (coordinator.Credentials, error) {
	creds, err := f.cfg.readCredentials()
	if err != nil || creds == nil {
		return coordinator.Credentials{}, err
	}
	return coordinator.Credentials{Token: creds.Token, User: creds.User}, nil
}

func (f *fileCredentials) Store(ctx context.Context, creds coordinator.Credentials) error {
	return f.cfg.writeCredentials(&storedCredentials{Token: creds.Token, User: creds.User})
}

func (f *fileCredentials) Clear(ctx context.Context) error {
	return f.cfg.clearCredentials()
}

// apiAuthenticator logs in against the auth endpoint
type apiAuthenticator struct {
	client *Client
}

func (a *apiAuthenticator) Authenticate(ctx context.Context, username, password string) (coordinator.Credentials, error) {
	req := map[string]string{"username": username, "password": password}
	var result AuthResult
	if err := a.client.Post("/api/v1/auth/login", req, &result); err != nil {
		return coordinator.Credentials{}, err
	}

	// Later requests in this process carry the fresh token
	a.client.SetToken(result.Token)

	user := result.User.toModel()
	return coordinator.Credentials{Token: result.Token, User: &user}, nil
}

// apiProfile fetches the authoritative user snapshot
type apiProfile struct {
	client *Client
}

func (p *apiProfile) FetchProfile(ctx context.Context, token string) (*model.User, error) {
	var result User
	if err := p.client.Do(http.MethodGet, "/api/v1/users/me", nil, &result); err != nil {
		return nil, err
	}
	user := result.toModel()
	return &user, nil
}

// apiVerifier resolves a payment reference through the top-up endpoint
type apiVerifier struct {
	client *Client
}

func (v *apiVerifier) VerifyTopup(ctx context.Context, reference string) (string, bool, error) {
	req := map[string]string{"reference": reference}
	var result TopupResult
	if err := v.client.Post("/api/v1/topups/verify", req, &result); err != nil {
		return "", false, err
	}
	return result.Message, result.Status == "success", nil
}
