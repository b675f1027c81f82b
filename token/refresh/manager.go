package refresh

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/jrsteele09/go-legal-client/internal/config"
	"github.com/jrsteele09/go-legal-client/internal/errors"
)

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

// Manager handles refresh token creation, validation, and rotation
type Manager struct {
	repo   Repo
	config config.SecurityConfig
}

// NewManager creates a new refresh token manager
func NewManager(repo Repo, cfg config.SecurityConfig) *Manager {
	return &Manager{
		repo:   repo,
		config: cfg,
	}
}

// Create generates a new refresh token and stores it
func (m *Manager) Create(userID string) (string, error) {
	// Single refresh token per user
	if err := m.repo.DeleteByUserID(userID); err != nil {
		return "", fmt.Errorf("failed to delete existing refresh token: %w", err)
	}

	tokenBytes := make([]byte, m.config.GetRefreshTokenLength())
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	tokenStr := hex.EncodeToString(tokenBytes)
	if err := m.repo.Upsert(&StoredRefreshToken{
		Token:  tokenStr,
		UserID: userID,
		Iat:    NowTimeFunc(),
	}); err != nil {
		return "", fmt.Errorf("failed to store refresh token: %w", err)
	}

	return tokenStr, nil
}

// Rotate validates token, revokes it and issues a replacement for the same user.
func (m *Manager) Rotate(token string) (userID, newToken string, err error) {
	rt, err := m.repo.Get(token)
	if err != nil {
		return "", "", errors.ErrInvalidRefreshToken
	}
	if m.IsExpired(rt) {
		_ = m.repo.Delete(token)
		return "", "", errors.ErrRefreshTokenExpired
	}
	newToken, err = m.Create(rt.UserID)
	if err != nil {
		return "", "", err
	}
	return rt.UserID, newToken, nil
}

// Revoke removes every refresh token issued to userID.
func (m *Manager) Revoke(userID string) error {
	return m.repo.DeleteByUserID(userID)
}

// IsExpired checks if a refresh token has outlived the configured expiry
func (m *Manager) IsExpired(rt *StoredRefreshToken) bool {
	return NowTimeFunc().Sub(rt.Iat) > m.config.GetRefreshTokenExpiry()
}
