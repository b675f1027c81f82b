package jwt_test

import (
	"testing"
	"time"

	"github.com/jrsteele09/go-legal-client/internal/config"
	"github.com/jrsteele09/go-legal-client/token"
	"github.com/jrsteele09/go-legal-client/token/jwt"
	"github.com/jrsteele09/go-legal-client/users"
	"github.com/stretchr/testify/require"
)

func newCreator(t *testing.T) *jwt.Creator {
	t.Helper()
	c, err := jwt.NewCreator(config.Security{JWTSecret: "s3cret", AccessTokenExpiry: 10 * time.Minute}, "legal-mock")
	require.NoError(t, err)
	return c
}

func TestNewCreator_RequiresSecret(t *testing.T) {
	_, err := jwt.NewCreator(config.Security{}, "x")
	require.Error(t, err)
	_, err = jwt.NewCreator(nil, "x")
	require.Error(t, err)
}

func TestCreator_RoundTrip(t *testing.T) {
	c := newCreator(t)
	require.Equal(t, 600, c.ExpiresIn())

	raw, err := c.CreateAccessToken(&users.Account{ID: "u-1", Email: "a@b.c", Role: users.RoleClient})
	require.NoError(t, err)

	claims, err := c.ParseAccessToken(raw)
	require.NoError(t, err)
	require.Equal(t, "u-1", claims.Subject)
	require.Equal(t, "a@b.c", claims.Email)
	require.NotEmpty(t, claims.ID)

	exp, ok := token.Expiry(raw)
	require.True(t, ok)
	require.WithinDuration(t, time.Now().Add(10*time.Minute), exp, 5*time.Second)
}

func TestCreator_RejectsExpiredAndForeignTokens(t *testing.T) {
	c := newCreator(t)

	defer func() { jwt.NowTimeFunc = time.Now }()
	jwt.NowTimeFunc = func() time.Time { return time.Now().Add(-time.Hour) }
	raw, err := c.CreateAccessToken(&users.Account{ID: "u-1"})
	require.NoError(t, err)
	jwt.NowTimeFunc = time.Now

	_, err = c.ParseAccessToken(raw)
	require.Error(t, err)

	other, err := jwt.NewCreator(config.Security{JWTSecret: "other", AccessTokenExpiry: time.Minute}, "legal-mock")
	require.NoError(t, err)
	foreign, err := other.CreateAccessToken(&users.Account{ID: "u-1"})
	require.NoError(t, err)
	_, err = c.ParseAccessToken(foreign)
	require.Error(t, err)
}
