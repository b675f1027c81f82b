package token

import (
	"strings"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/jrsteele09/go-legal-client/api"
)

// DefaultTokenType is assumed when the backend omits token_type.
const DefaultTokenType = "Bearer"

// TokenPair is the credential set issued by the login and refresh endpoints.
// The Token Store owns it: written on login, cleared on logout, read on every
// authenticated request and on startup.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in,omitempty"`
	TokenType    string `json:"token_type,omitempty"`
}

// FromTokenData copies the token fields of a login/refresh response.
func FromTokenData(d *api.TokenData) TokenPair {
	return TokenPair{
		AccessToken:  d.AccessToken,
		RefreshToken: d.RefreshToken,
		ExpiresIn:    d.ExpiresIn,
		TokenType:    d.TokenType,
	}
}

// HasAccessToken reports whether the pair carries a usable access token.
func (p TokenPair) HasAccessToken() bool {
	return strings.TrimSpace(p.AccessToken) != ""
}

// Type returns TokenType, defaulting to Bearer.
func (p TokenPair) Type() string {
	if p.TokenType == "" {
		return DefaultTokenType
	}
	return p.TokenType
}

// Expiry reads the exp claim of a JWT access token without verifying its
// signature; the client only needs it to decide when to refresh. Opaque
// tokens or tokens without exp report ok=false.
func Expiry(accessToken string) (time.Time, bool) {
	if strings.Count(accessToken, ".") != 2 {
		return time.Time{}, false
	}
	claims := jwtlib.MapClaims{}
	if _, _, err := jwtlib.NewParser().ParseUnverified(accessToken, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
