// Package servertest runs the mock backend on an httptest server for tests
// of the client packages.
package servertest

import (
	"net/http/httptest"
	"testing"

	"github.com/jrsteele09/go-legal-client/internal/config"
	"github.com/jrsteele09/go-legal-client/server"
	refreshrepofake "github.com/jrsteele09/go-legal-client/token/refresh/repofake"
	"github.com/jrsteele09/go-legal-client/users"
	fakeuserrepo "github.com/jrsteele09/go-legal-client/users/repofake"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// Backend is a running mock backend with the demo account seeded.
type Backend struct {
	*httptest.Server
	Mock  *server.Server
	Users users.UserRepo
	Demo  *users.Account
}

// AuthURL is the auth base URL clients should be configured with.
func (b *Backend) AuthURL() string {
	return b.URL + server.RouteAuthBase
}

// New starts a backend. Extra environment variables override the defaults.
func New(t *testing.T, vars map[string]string) *Backend {
	t.Helper()

	env := map[string]string{
		"ENV":        "TEST",
		"JWT_SECRET": "servertest-secret",
	}
	for k, v := range vars {
		env[k] = v
	}
	cfg, err := config.NewFromEnvironment(env)
	require.NoError(t, err)

	userRepo := fakeuserrepo.NewFakeUserRepo()
	mock, err := server.New(cfg, server.Repos{
		Users:         userRepo,
		RefreshTokens: refreshrepofake.NewFakeRefreshTokenRepo(),
	}, server.WithLogger(zerolog.Nop()))
	require.NoError(t, err)

	demo, err := mock.SeedDemoAccount()
	require.NoError(t, err)

	ts := httptest.NewServer(mock)
	t.Cleanup(ts.Close)

	return &Backend{Server: ts, Mock: mock, Users: userRepo, Demo: demo}
}
