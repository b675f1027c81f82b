package token_test

import (
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/jrsteele09/go-legal-client/api"
	"github.com/jrsteele09/go-legal-client/token"
	"github.com/stretchr/testify/require"
)

func signed(t *testing.T, claims jwtlib.MapClaims) string {
	t.Helper()
	s, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString([]byte("k"))
	require.NoError(t, err)
	return s
}

func TestExpiry(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)

	t.Run("jwt with exp", func(t *testing.T) {
		got, ok := token.Expiry(signed(t, jwtlib.MapClaims{"sub": "u", "exp": exp.Unix()}))
		require.True(t, ok)
		require.True(t, exp.Equal(got))
	})

	t.Run("already expired jwt still reports exp", func(t *testing.T) {
		past := time.Now().Add(-time.Hour).Truncate(time.Second)
		got, ok := token.Expiry(signed(t, jwtlib.MapClaims{"exp": past.Unix()}))
		require.True(t, ok)
		require.True(t, past.Equal(got))
	})

	t.Run("jwt without exp", func(t *testing.T) {
		_, ok := token.Expiry(signed(t, jwtlib.MapClaims{"sub": "u"}))
		require.False(t, ok)
	})

	t.Run("opaque token", func(t *testing.T) {
		_, ok := token.Expiry("tok123")
		require.False(t, ok)
	})

	t.Run("garbage with dots", func(t *testing.T) {
		_, ok := token.Expiry("a.b.c")
		require.False(t, ok)
	})
}

func TestTokenPair(t *testing.T) {
	p := token.FromTokenData(&api.TokenData{AccessToken: "a", RefreshToken: "r", ExpiresIn: 60})
	require.True(t, p.HasAccessToken())
	require.Equal(t, "Bearer", p.Type())
	require.Equal(t, 60, p.ExpiresIn)

	require.False(t, token.TokenPair{AccessToken: "  "}.HasAccessToken())
	require.Equal(t, "MAC", token.TokenPair{TokenType: "MAC"}.Type())
}
