// Package tokenstore persists the access token, refresh token and cached user
// profile for the device. Reads never fail: an unreadable or malformed value
// is reported as absent, which the session core treats as logged out.
package tokenstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/jrsteele09/go-legal-client/token"
	"github.com/jrsteele09/go-legal-client/users"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Persisted keys.
const (
	KeyAccessToken  = "auth.access_token"
	KeyRefreshToken = "auth.refresh_token"
	KeyUser         = "auth.user"
)

// AllKeys lists every key ClearAuth removes.
var AllKeys = []string{KeyAccessToken, KeyRefreshToken, KeyUser}

// Backend is a durable string key-value store. SetMany must apply all
// values or none.
type Backend interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	SetMany(ctx context.Context, values map[string]string) error
	Delete(ctx context.Context, keys ...string) error
}

// Store is the Token Store. Mutations are serialized and readers never
// observe an access token paired with a stale refresh token.
type Store struct {
	backend Backend
	logger  zerolog.Logger
	lock    sync.RWMutex
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithLogger sets the logger used for swallowed read failures.
func WithLogger(logger zerolog.Logger) StoreOption {
	return func(s *Store) {
		s.logger = logger
	}
}

// New wraps backend in a Store.
func New(backend Backend, options ...StoreOption) (*Store, error) {
	if backend == nil {
		return nil, errors.New("[tokenstore New] backend is required")
	}
	s := &Store{
		backend: backend,
		logger:  log.Logger,
	}
	for _, opt := range options {
		opt(s)
	}
	s.logger = s.logger.With().Str("component", "tokenstore").Logger()
	return s, nil
}

// AccessToken returns the stored access token.
func (s *Store) AccessToken(ctx context.Context) (string, bool) {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.getString(ctx, KeyAccessToken)
}

// RefreshToken returns the stored refresh token.
func (s *Store) RefreshToken(ctx context.Context) (string, bool) {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.getString(ctx, KeyRefreshToken)
}

// Tokens returns both tokens read under one lock. ok is false when no
// access token is stored.
func (s *Store) Tokens(ctx context.Context) (pair token.TokenPair, ok bool) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	access, ok := s.getString(ctx, KeyAccessToken)
	if !ok {
		return token.TokenPair{}, false
	}
	refresh, _ := s.getString(ctx, KeyRefreshToken)
	return token.TokenPair{AccessToken: access, RefreshToken: refresh}, true
}

// UserData returns the cached user. Missing or malformed records are absent.
func (s *Store) UserData(ctx context.Context) (*users.User, bool) {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.getUser(ctx)
}

// SetTokens overwrites both tokens in a single backend write.
func (s *Store) SetTokens(ctx context.Context, access, refresh string) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if err := s.backend.SetMany(ctx, map[string]string{
		KeyAccessToken:  access,
		KeyRefreshToken: refresh,
	}); err != nil {
		return fmt.Errorf("[tokenstore SetTokens] %w", err)
	}
	return nil
}

// SetUserData overwrites the cached user.
func (s *Store) SetUserData(ctx context.Context, user *users.User) error {
	blob, err := encodeUser(user)
	if err != nil {
		return err
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	if err := s.backend.SetMany(ctx, map[string]string{KeyUser: blob}); err != nil {
		return fmt.Errorf("[tokenstore SetUserData] %w", err)
	}
	return nil
}

// SetSession writes the token pair and the user together.
func (s *Store) SetSession(ctx context.Context, pair token.TokenPair, user *users.User) error {
	blob, err := encodeUser(user)
	if err != nil {
		return err
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	if err := s.backend.SetMany(ctx, map[string]string{
		KeyAccessToken:  pair.AccessToken,
		KeyRefreshToken: pair.RefreshToken,
		KeyUser:         blob,
	}); err != nil {
		return fmt.Errorf("[tokenstore SetSession] %w", err)
	}
	return nil
}

// ClearAuth removes the tokens and the user. Clearing an empty store is a no-op.
func (s *Store) ClearAuth(ctx context.Context) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if err := s.backend.Delete(ctx, AllKeys...); err != nil {
		return fmt.Errorf("[tokenstore ClearAuth] %w", err)
	}
	return nil
}

func (s *Store) getString(ctx context.Context, key string) (string, bool) {
	v, ok, err := s.backend.Get(ctx, key)
	if err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("read failed, treating as absent")
		return "", false
	}
	if !ok || strings.TrimSpace(v) == "" {
		return "", false
	}
	return v, true
}

func (s *Store) getUser(ctx context.Context) (*users.User, bool) {
	blob, ok := s.getString(ctx, KeyUser)
	if !ok {
		return nil, false
	}
	var u users.User
	if err := json.Unmarshal([]byte(blob), &u); err != nil {
		s.logger.Warn().Err(err).Msg("malformed user record, treating as absent")
		return nil, false
	}
	return &u, true
}

func encodeUser(user *users.User) (string, error) {
	if user == nil {
		return "", errors.New("[tokenstore] user is required")
	}
	blob, err := json.Marshal(user)
	if err != nil {
		return "", fmt.Errorf("[tokenstore] encode user: %w", err)
	}
	return string(blob), nil
}
