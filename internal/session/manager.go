// Package session resolves and maintains the authenticated admin
// session. It owns the lifecycle between the persisted credential and
// the backend: startup revalidation, login, and logout.
package session

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/nomanion/nomadmin/internal/api"
	"github.com/nomanion/nomadmin/internal/models"
	"github.com/nomanion/nomadmin/internal/tokenstore"
)

// Sentinel errors
var (
	// ErrNoToken is returned when a credential exchange succeeds at the
	// HTTP level but the response carries no token.
	ErrNoToken = errors.New("login failed: no token received")

	// ErrNotAdmin is returned by admin-gated managers when the
	// authenticated user lacks an admin role.
	ErrNotAdmin = errors.New("access denied: admin role required")
)

// Status is the resolution state of the session.
type Status int

const (
	// StatusUnresolved means startup revalidation has not completed.
	StatusUnresolved Status = iota
	// StatusAuthenticated means a token and profile are held.
	StatusAuthenticated
	// StatusUnauthenticated means no usable credential exists.
	StatusUnauthenticated
)

func (s Status) String() string {
	switch s {
	case StatusAuthenticated:
		return "authenticated"
	case StatusUnauthenticated:
		return "unauthenticated"
	default:
		return "unresolved"
	}
}

// State is a point-in-time snapshot of the session.
type State struct {
	Status Status
	User   *models.User
	Token  string

	// Confirmed reports whether the backend has validated the token
	// during this run. A hydrated state served from the cached profile
	// is authenticated but not yet confirmed.
	Confirmed bool
}

// IsAuthenticated reports whether the session holds both a token and a
// profile. Either alone is not enough.
func (s State) IsAuthenticated() bool {
	return s.Token != "" && s.User != nil
}

// IsAdmin reports whether the session's user carries an admin role.
func (s State) IsAdmin() bool {
	return s.User.IsAdmin()
}

// Backend is the subset of the API client the manager depends on.
type Backend interface {
	RequestOTP(ctx context.Context, email string) error
	VerifyOTP(ctx context.Context, email, otp string) (*api.LoginResponse, error)
	LoginWithPassword(ctx context.Context, email, password string) (*api.LoginResponse, error)
	Me(ctx context.Context) (*models.User, error)
}

// Manager resolves the session against the token store and the backend.
// Safe for concurrent use.
type Manager struct {
	mu           sync.Mutex
	store        *tokenstore.Store
	backend      Backend
	requireAdmin bool
	state        State
}

// Option configures a Manager.
type Option func(*Manager)

// WithRequireAdmin makes the manager reject non-admin sessions outright:
// logins by non-admin users fail without persisting, and revalidation
// of a non-admin credential clears it.
func WithRequireAdmin() Option {
	return func(m *Manager) { m.requireAdmin = true }
}

// NewManager creates a session manager. The session starts unresolved.
func NewManager(store *tokenstore.Store, backend Backend, opts ...Option) *Manager {
	m := &Manager{
		store:   store,
		backend: backend,
		state:   State{Status: StatusUnresolved},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// State returns the current session snapshot.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Hydrate serves the session from the persisted credential without
// touching the network. With both a token and a cached profile it
// reports authenticated-but-unconfirmed, letting callers render
// immediately while CheckAuth revalidates. Without a token it settles
// unauthenticated; a token with no cached profile stays unresolved
// because only the backend can say who it belongs to.
func (m *Manager) Hydrate() State {
	m.mu.Lock()
	defer m.mu.Unlock()

	token, ok := m.store.Token()
	if !ok {
		m.state = State{Status: StatusUnauthenticated}
		return m.state
	}

	profile, cached := m.store.Profile()
	if !cached {
		m.state = State{Status: StatusUnresolved, Token: token}
		return m.state
	}

	log.Debug().Str("email", profile.Email).Msg("session hydrated from cached profile")
	m.state = State{Status: StatusAuthenticated, User: profile, Token: token}
	return m.state
}

// CheckAuth fully resolves the session. It revalidates a stored token
// against the backend and refreshes the cached profile on success. An
// auth rejection clears the credential. Any other backend failure keeps
// the stored token and falls back to the cached profile when one
// exists, so a network blip does not log the operator out.
func (m *Manager) CheckAuth(ctx context.Context) State {
	m.mu.Lock()
	defer m.mu.Unlock()

	token, ok := m.store.Token()
	if !ok {
		m.state = State{Status: StatusUnauthenticated}
		return m.state
	}

	cached, hasCached := m.store.Profile()

	user, err := m.backend.Me(ctx)
	switch {
	case err == nil:
		if m.requireAdmin && !user.IsAdmin() {
			log.Warn().Str("role", user.Role).Msg("stored credential is not an admin, clearing")
			m.clearLocked()
			return m.state
		}
		if saveErr := m.store.SaveProfile(user); saveErr != nil {
			log.Warn().Err(saveErr).Msg("failed to refresh cached profile")
		}
		m.state = State{Status: StatusAuthenticated, User: user, Token: token, Confirmed: true}

	case api.IsAuthError(err):
		log.Info().Err(err).Msg("stored token rejected, clearing session")
		m.clearLocked()

	case hasCached:
		log.Warn().Err(err).Msg("revalidation failed, serving cached profile")
		m.state = State{Status: StatusAuthenticated, User: cached, Token: token}

	default:
		// The token stays on disk so a later run can retry, but with
		// no profile there is nothing to authenticate as.
		log.Warn().Err(err).Msg("revalidation failed with no cached profile")
		m.state = State{Status: StatusUnauthenticated}
	}

	return m.state
}

// RequestOTP asks the backend to email a one-time password.
func (m *Manager) RequestOTP(ctx context.Context, email string) error {
	return m.backend.RequestOTP(ctx, email)
}

// Login exchanges an emailed one-time password for a session and
// persists it.
func (m *Manager) Login(ctx context.Context, email, otp string) (State, error) {
	resp, err := m.backend.VerifyOTP(ctx, email, otp)
	if err != nil {
		return m.State(), err
	}
	return m.establish(resp)
}

// LoginWithPassword exchanges an email/password pair for a session and
// persists it.
func (m *Manager) LoginWithPassword(ctx context.Context, email, password string) (State, error) {
	resp, err := m.backend.LoginWithPassword(ctx, email, password)
	if err != nil {
		return m.State(), err
	}
	return m.establish(resp)
}

// establish persists a credential exchange result and transitions to
// authenticated. A response with no token, or one that cannot be
// persisted, is a failed login and leaves no credential behind.
func (m *Manager) establish(resp *api.LoginResponse) (State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if resp.Token == "" {
		return m.state, ErrNoToken
	}
	if m.requireAdmin && !resp.User.IsAdmin() {
		return m.state, ErrNotAdmin
	}

	if err := m.store.Save(resp.Token, resp.User); err != nil {
		m.state = State{Status: StatusUnauthenticated}
		return m.state, err
	}

	email, role := "", ""
	if resp.User != nil {
		email, role = resp.User.Email, resp.User.Role
	}
	log.Info().Str("email", email).Str("role", role).Msg("logged in")
	m.state = State{Status: StatusAuthenticated, User: resp.User, Token: resp.Token, Confirmed: true}
	return m.state, nil
}

// Logout clears the persisted credential and settles unauthenticated.
// Idempotent.
func (m *Manager) Logout() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.clearLocked()
}

func (m *Manager) clearLocked() error {
	err := m.store.Clear()
	if err != nil {
		log.Warn().Err(err).Msg("failed to clear token store")
	}
	m.state = State{Status: StatusUnauthenticated}
	return err
}
