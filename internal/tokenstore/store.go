// Package tokenstore persists the admin session credential on the local
// filesystem: the bearer token, its client-computed expiry, and a cached
// snapshot of the authenticated user's profile. The three entries are
// independent files but are always written and cleared together.
package tokenstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"

	"github.com/nomanion/nomadmin/internal/models"
)

// Sentinel errors
var (
	// ErrPersistFailed is returned when the token set could not be
	// written. Callers must treat it as a failed login.
	ErrPersistFailed = errors.New("failed to persist token")
)

// Persisted entry names inside the store directory.
const (
	tokenFile   = "token"
	expiryFile  = "token_expiry"
	profileFile = "user_data.json"
)

// DefaultTTL is the client-computed token lifetime. The backend does not
// report an expiry, so the client enforces a fixed horizon from issuance.
const DefaultTTL = 30 * 24 * time.Hour

// Store manages the persisted session credential.
type Store struct {
	fs  afero.Fs
	dir string
	ttl time.Duration
	now func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithTTL overrides the token lifetime. A zero TTL disables expiry
// tracking entirely: tokens are trusted until the backend rejects them.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) { s.ttl = ttl }
}

// WithClock overrides the time source. Used by tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// NewStore creates a token store rooted at dir. If dir is empty,
// ~/.nomadmin is used. The directory is created with 0700 permissions.
func NewStore(fs afero.Fs, dir string, opts ...Option) (*Store, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		dir = filepath.Join(home, ".nomadmin")
	}

	if err := fs.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create token store directory: %w", err)
	}

	s := &Store{
		fs:  fs,
		dir: dir,
		ttl: DefaultTTL,
		now: time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	log.Debug().Str("dir", dir).Dur("ttl", s.ttl).Msg("token store initialized")

	return s, nil
}

// Save persists the token, its computed expiry, and the profile snapshot.
// The token is written last so a partial failure never leaves a readable
// token without its companion entries; on any failure the partial set is
// purged and the error wraps ErrPersistFailed.
func (s *Store) Save(token string, profile *models.User) error {
	if err := s.write(token, profile); err != nil {
		if clearErr := s.Clear(); clearErr != nil {
			log.Warn().Err(clearErr).Msg("failed to purge partial token set")
		}
		return fmt.Errorf("%w: %v", ErrPersistFailed, err)
	}

	if s.ttl > 0 {
		log.Debug().Time("expires", s.now().Add(s.ttl)).Msg("token saved")
	} else {
		log.Debug().Msg("token saved without expiry tracking")
	}

	return nil
}

func (s *Store) write(token string, profile *models.User) error {
	if profile != nil {
		data, err := json.Marshal(profile)
		if err != nil {
			return fmt.Errorf("marshal profile: %w", err)
		}
		if err := afero.WriteFile(s.fs, s.path(profileFile), data, 0600); err != nil {
			return fmt.Errorf("write profile: %w", err)
		}
	}

	if s.ttl > 0 {
		expiry := s.now().Add(s.ttl).Format(time.RFC3339)
		if err := afero.WriteFile(s.fs, s.path(expiryFile), []byte(expiry), 0600); err != nil {
			return fmt.Errorf("write expiry: %w", err)
		}
	}

	if err := afero.WriteFile(s.fs, s.path(tokenFile), []byte(token), 0600); err != nil {
		return fmt.Errorf("write token: %w", err)
	}

	return nil
}

// SaveProfile refreshes only the cached profile snapshot. Used after a
// successful revalidation so the next startup hydrates from fresh data.
func (s *Store) SaveProfile(profile *models.User) error {
	data, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}
	if err := afero.WriteFile(s.fs, s.path(profileFile), data, 0600); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistFailed, err)
	}
	return nil
}

// Token returns the stored token if one exists and has not passed its
// expiry. A token past its expiry purges all three persisted entries as a
// side effect and reports absent.
func (s *Store) Token() (string, bool) {
	data, err := afero.ReadFile(s.fs, s.path(tokenFile))
	if err != nil {
		return "", false
	}
	token := string(data)
	if token == "" {
		return "", false
	}

	if s.ttl == 0 {
		return token, true
	}

	expiryData, err := afero.ReadFile(s.fs, s.path(expiryFile))
	if err != nil {
		return "", false
	}
	expiry, err := time.Parse(time.RFC3339, string(expiryData))
	if err != nil {
		return "", false
	}

	if s.now().After(expiry) {
		log.Warn().Time("expired", expiry).Msg("token has expired, clearing")
		if err := s.Clear(); err != nil {
			log.Warn().Err(err).Msg("failed to clear expired token")
		}
		return "", false
	}

	return token, true
}

// Profile returns the cached profile snapshot, if present and parseable.
func (s *Store) Profile() (*models.User, bool) {
	data, err := afero.ReadFile(s.fs, s.path(profileFile))
	if err != nil {
		return nil, false
	}

	var user models.User
	if err := json.Unmarshal(data, &user); err != nil {
		log.Warn().Err(err).Msg("failed to parse cached profile")
		return nil, false
	}

	return &user, true
}

// Clear unconditionally removes all three persisted entries. Idempotent.
func (s *Store) Clear() error {
	for _, name := range []string{tokenFile, expiryFile, profileFile} {
		if err := s.fs.Remove(s.path(name)); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove %s: %w", name, err)
		}
	}
	return nil
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name)
}
