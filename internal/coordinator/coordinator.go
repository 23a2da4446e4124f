// Package coordinator holds the live authentication view for one
// client: the tri-state status, the current user snapshot, and the
// mutations that keep them in sync with the credential store. A
// Coordinator is explicitly constructed, bootstrapped once, and
// disposed; it is never a package-level singleton, so tests and
// embedders run isolated instances.
package coordinator

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"maps"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/betstack/betstack/internal/model"
)

// Status is the tri-state authentication view. StatusUnknown exists
// only during the bootstrap window and always resolves to one of the
// other two.
type Status int

const (
	StatusUnknown Status = iota
	StatusAuthenticated
	StatusUnauthenticated
)

func (s Status) String() string {
	switch s {
	case StatusAuthenticated:
		return "authenticated"
	case StatusUnauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}

// ErrDisposed is returned by mutations on a disposed Coordinator
var ErrDisposed = errors.New("coordinator is disposed")

// Credentials pairs a session token with its user snapshot
type Credentials struct {
	Token string
	User  *model.User
}

// CredentialStore is the durable credential storage collaborator
// (cookies for a browser client, a credentials file for the CLI)
type CredentialStore interface {
	Load(ctx context.Context) (Credentials, error)
	Store(ctx context.Context, creds Credentials) error
	Clear(ctx context.Context) error
}

// Authenticator exchanges username/password for credentials
type Authenticator interface {
	Authenticate(ctx context.Context, username, password string) (Credentials, error)
}

// ProfileFetcher retrieves the authoritative user record for a token
type ProfileFetcher interface {
	FetchProfile(ctx context.Context, token string) (*model.User, error)
}

// Config holds the Coordinator's collaborators
type Config struct {
	Credentials   CredentialStore
	Authenticator Authenticator
	Profile       ProfileFetcher
	// Logger is optional; a nil logger discards output
	Logger *slog.Logger
}

// Coordinator is the single source of truth for one client's live
// authentication state
type Coordinator struct {
	creds   CredentialStore
	authn   Authenticator
	profile ProfileFetcher
	logger  *slog.Logger

	mu           sync.RWMutex
	status       Status
	user         *model.User
	token        string
	subState     map[string]map[string]any
	listeners    map[int]func()
	nextListener int
	disposed     bool

	flight       singleflight.Group
	bootstrapped bool
}

// New creates a Coordinator in the unknown state
func New(cfg Config) *Coordinator {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Coordinator{
		creds:     cfg.Credentials,
		authn:     cfg.Authenticator,
		profile:   cfg.Profile,
		logger:    logger,
		status:    StatusUnknown,
		subState:  make(map[string]map[string]any),
		listeners: make(map[int]func()),
	}
}

// Status returns the current authentication status
func (c *Coordinator) Status() Status {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.status
}

// User returns the live user snapshot, or nil when unauthenticated
func (c *Coordinator) User() *model.User {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.user
}

// Token returns the current session token, or empty when absent
func (c *Coordinator) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// Bootstrap resolves the unknown state from the credential store.
// It runs the underlying read at most once per lifecycle: concurrent
// calls coalesce into one read, and later calls are no-ops.
func (c *Coordinator) Bootstrap(ctx context.Context) error {
	c.mu.RLock()
	done := c.bootstrapped || c.disposed
	c.mu.RUnlock()
	if done {
		return nil
	}

	_, err, _ := c.flight.Do("bootstrap", func() (any, error) {
		creds, err := c.creds.Load(ctx)
		if err != nil {
			// Unreadable storage reads as unauthenticated; it must
			// never block the client.
			c.logger.Warn("credential load failed", slog.String("error", err.Error()))
			creds = Credentials{}
		}

		c.mu.Lock()
		defer c.mu.Unlock()
		if c.disposed {
			return nil, nil
		}
		// A mutation that ran while the read was in flight (e.g.
		// logout) wins over the bootstrap result.
		if c.bootstrapped {
			return nil, nil
		}
		c.bootstrapped = true
		if creds.Token != "" {
			c.status = StatusAuthenticated
			c.token = creds.Token
			c.user = creds.User
		} else {
			c.status = StatusUnauthenticated
			c.token = ""
			c.user = nil
		}
		return nil, nil
	})
	if err != nil {
		return err
	}

	c.notify()
	return nil
}

// Login authenticates and persists the resulting credentials. On
// failure the state is left unchanged and the error surfaces to the
// caller. Login never navigates; that is the caller's decision.
func (c *Coordinator) Login(ctx context.Context, username, password string) error {
	if c.isDisposed() {
		return ErrDisposed
	}

	creds, err := c.authn.Authenticate(ctx, username, password)
	if err != nil {
		return err
	}

	if err := c.creds.Store(ctx, creds); err != nil {
		return err
	}

	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return nil
	}
	c.bootstrapped = true
	c.status = StatusAuthenticated
	c.token = creds.Token
	c.user = creds.User
	c.mu.Unlock()

	c.notify()
	return nil
}

// Logout clears the credential store and resets the live state. Safe
// to call when already unauthenticated.
func (c *Coordinator) Logout(ctx context.Context) error {
	if c.isDisposed() {
		return ErrDisposed
	}

	if err := c.creds.Clear(ctx); err != nil {
		c.logger.Warn("credential clear failed", slog.String("error", err.Error()))
	}

	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return nil
	}
	// Marking bootstrapped prevents a late-resolving bootstrap from
	// resurrecting the session.
	c.bootstrapped = true
	c.status = StatusUnauthenticated
	c.token = ""
	c.user = nil
	c.mu.Unlock()

	c.notify()
	return nil
}

// RefetchUser replaces the live snapshot with the authoritative
// profile. Used after state-changing side effects (wallet top-up) so
// the client never trusts locally computed balances. Fetch failures
// are logged and swallowed: a stale snapshot beats erroring the UI.
func (c *Coordinator) RefetchUser(ctx context.Context) {
	c.mu.RLock()
	token := c.token
	disposed := c.disposed
	c.mu.RUnlock()

	if disposed || token == "" {
		return
	}

	user, err := c.profile.FetchProfile(ctx, token)
	if err != nil {
		c.logger.Warn("profile refetch failed", slog.String("error", err.Error()))
		return
	}

	c.mu.Lock()
	if c.disposed || c.token != token {
		// Logged out (or re-logged-in) while the fetch was in flight;
		// discard the result.
		c.mu.Unlock()
		return
	}
	c.user = user
	c.mu.Unlock()

	c.notify()
}

// SetState merges a partial update into the named sub-state namespace.
// Namespaces keep unrelated cross-cutting concerns (e.g. the "ui"
// loading overlay) from colliding.
func (c *Coordinator) SetState(namespace string, partial map[string]any) {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return
	}
	ns, ok := c.subState[namespace]
	if !ok {
		ns = make(map[string]any)
		c.subState[namespace] = ns
	}
	maps.Copy(ns, partial)
	c.mu.Unlock()

	c.notify()
}

// State returns a copy of the named sub-state namespace
func (c *Coordinator) State(namespace string) map[string]any {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ns, ok := c.subState[namespace]
	if !ok {
		return map[string]any{}
	}
	return maps.Clone(ns)
}

// Subscribe registers a listener invoked after every state change.
// The returned function removes the listener; calling it more than
// once is harmless.
func (c *Coordinator) Subscribe(fn func()) (unsubscribe func()) {
	c.mu.Lock()
	id := c.nextListener
	c.nextListener++
	c.listeners[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.listeners, id)
		c.mu.Unlock()
	}
}

// Dispose detaches the Coordinator: in-flight operations discard their
// results and later mutations are no-ops. Dispose is idempotent.
func (c *Coordinator) Dispose() {
	c.mu.Lock()
	c.disposed = true
	c.listeners = make(map[int]func())
	c.mu.Unlock()
}

func (c *Coordinator) isDisposed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.disposed
}

func (c *Coordinator) notify() {
	c.mu.RLock()
	fns := make([]func(), 0, len(c.listeners))
	for _, fn := range c.listeners {
		fns = append(fns, fn)
	}
	c.mu.RUnlock()

	for _, fn := range fns {
		fn()
	}
}
