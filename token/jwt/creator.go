package jwt

import (
	"errors"
	"fmt"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jrsteele09/go-legal-client/internal/config"
	"github.com/jrsteele09/go-legal-client/users"
)

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

// Claims are the claims the mock backend embeds in access tokens.
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role,omitempty"`
	jwtlib.RegisteredClaims
}

// Creator signs and validates HS256 access tokens for the mock backend
type Creator struct {
	config config.SecurityConfig
	issuer string
}

// NewCreator creates a new JWT creator
func NewCreator(cfg config.SecurityConfig, issuer string) (*Creator, error) {
	if cfg == nil {
		return nil, errors.New("[NewCreator] config is required")
	}
	if cfg.GetJWTSecret() == "" {
		return nil, errors.New("[NewCreator] JWT secret is required")
	}
	return &Creator{config: cfg, issuer: issuer}, nil
}

// ExpiresIn is the access token lifetime in whole seconds.
func (c *Creator) ExpiresIn() int {
	return int(c.config.GetAccessTokenExpiry() / time.Second)
}

// CreateAccessToken creates an access token for account
func (c *Creator) CreateAccessToken(account *users.Account) (string, error) {
	now := NowTimeFunc()
	claims := Claims{
		Email: account.Email,
		Role:  string(account.Role),
		RegisteredClaims: jwtlib.RegisteredClaims{
			Issuer:    c.issuer,
			Subject:   account.ID,
			IssuedAt:  jwtlib.NewNumericDate(now),
			ExpiresAt: jwtlib.NewNumericDate(now.Add(c.config.GetAccessTokenExpiry())),
			ID:        uuid.New().String(), // Unique token ID
		},
	}

	signed, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString([]byte(c.config.GetJWTSecret()))
	if err != nil {
		return "", fmt.Errorf("failed to sign JWT token: %w", err)
	}
	return signed, nil
}

// ParseAccessToken validates signature, issuer and expiry and returns the claims.
func (c *Creator) ParseAccessToken(raw string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwtlib.ParseWithClaims(raw, claims, func(t *jwtlib.Token) (any, error) {
		return []byte(c.config.GetJWTSecret()), nil
	},
		jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}),
		jwtlib.WithIssuer(c.issuer),
		jwtlib.WithTimeFunc(NowTimeFunc),
	)
	if err != nil {
		return nil, fmt.Errorf("[ParseAccessToken] %w", err)
	}
	return claims, nil
}
