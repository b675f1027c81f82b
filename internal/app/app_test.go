package app_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/jrsteele09/go-legal-client/auth"
	"github.com/jrsteele09/go-legal-client/internal/app"
	"github.com/jrsteele09/go-legal-client/internal/config"
	"github.com/jrsteele09/go-legal-client/internal/errors"
	"github.com/jrsteele09/go-legal-client/server"
	"github.com/jrsteele09/go-legal-client/server/servertest"
	"github.com/jrsteele09/go-legal-client/session"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func clientConfig(t *testing.T, b *servertest.Backend, store, path string) config.Config {
	t.Helper()
	cfg, err := config.NewFromEnvironment(map[string]string{
		"AUTH_BASE_URL":    b.AuthURL(),
		"API_BASE_URL":     b.URL,
		"TOKEN_STORE":      store,
		"TOKEN_STORE_PATH": path,
	})
	require.NoError(t, err)
	return cfg
}

func TestApp_EndToEnd(t *testing.T) {
	ctx := context.Background()
	b := servertest.New(t, nil)
	nav := session.NavigatorFunc(func(session.Route) {})

	a, err := app.New(ctx, clientConfig(t, b, config.TokenStoreMemory, ""), nav, zerolog.Nop())
	require.NoError(t, err)
	defer a.Close()

	route, err := a.Guard.Resolve(ctx)
	require.NoError(t, err)
	require.Equal(t, session.RouteSignIn, route)

	require.NoError(t, a.Session.SignIn(ctx, auth.Credentials{Email: server.DemoUserEmail, Password: server.DemoUserPassword}))
	require.NoError(t, a.Session.RefreshProfile(ctx))
	require.Equal(t, server.DemoUserCityID, *a.Session.User().CityID)

	states, err := a.Locations.AllStates(ctx, 2)
	require.NoError(t, err)
	require.Len(t, states, 5)

	sent, err := a.Chat.Send(ctx, server.SupportConversationID, "Hello from the app")
	require.NoError(t, err)
	msgs, err := a.Chat.Messages(ctx, server.SupportConversationID, 1, 50)
	require.NoError(t, err)
	require.Equal(t, sent.ID, msgs.Messages[len(msgs.Messages)-1].ID)

	a.Session.Logout(ctx)
	require.False(t, a.Session.IsAuthenticated())

	_, err = a.Locations.States(ctx, 1, 2)
	require.True(t, errors.Is(err, errors.ErrNoAccessToken))
	_, err = a.Chat.Messages(ctx, server.SupportConversationID, 1, 50)
	require.True(t, errors.Is(err, errors.ErrNoAccessToken))
}

func TestApp_SQLiteSessionSurvivesRestart(t *testing.T) {
	ctx := context.Background()
	b := servertest.New(t, nil)
	path := filepath.Join(t.TempDir(), "session.db")
	cfg := clientConfig(t, b, config.TokenStoreSQLite, path)

	var routes []session.Route
	nav := session.NavigatorFunc(func(r session.Route) { routes = append(routes, r) })

	first, err := app.New(ctx, cfg, nav, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, first.Session.SignIn(ctx, auth.Credentials{Email: server.DemoUserEmail, Password: server.DemoUserPassword}))
	require.NoError(t, first.Close())

	second, err := app.New(ctx, cfg, nav, zerolog.Nop())
	require.NoError(t, err)
	defer second.Close()

	require.True(t, second.Session.IsAuthenticated())
	require.Equal(t, server.DemoUserFirstName, second.Session.User().FirstName)
	route, err := second.Guard.Resolve(ctx)
	require.NoError(t, err)
	require.Equal(t, session.RouteHome, route)
	require.Equal(t, []session.Route{session.RouteHome}, routes)
}

func TestOpenBackend_BadRedisURL(t *testing.T) {
	cfg, err := config.NewFromEnvironment(map[string]string{
		"TOKEN_STORE": config.TokenStoreRedis,
		"REDIS_URL":   "not-a-url",
	})
	require.NoError(t, err)

	_, _, err = app.OpenBackend(context.Background(), cfg)
	require.Error(t, err)
}
