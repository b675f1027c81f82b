package guard_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jrsteele09/go-legal-client/guard"
	"github.com/jrsteele09/go-legal-client/session"
	"github.com/jrsteele09/go-legal-client/token"
	"github.com/jrsteele09/go-legal-client/tokenstore"
	"github.com/jrsteele09/go-legal-client/users"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type recordingNavigator struct {
	mu     sync.Mutex
	routes []session.Route
}

func (n *recordingNavigator) Navigate(route session.Route) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.routes = append(n.routes, route)
}

func (n *recordingNavigator) Routes() []session.Route {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]session.Route(nil), n.routes...)
}

func newController(t *testing.T, seed func(s *tokenstore.Store)) *session.Controller {
	t.Helper()
	store, err := tokenstore.New(tokenstore.NewInMemoryBackend(), tokenstore.WithLogger(zerolog.Nop()))
	require.NoError(t, err)
	if seed != nil {
		seed(store)
	}
	ctrl, err := session.NewController(store, session.WithLogger(zerolog.Nop()))
	require.NoError(t, err)
	return ctrl
}

func TestNew_RequiresDependencies(t *testing.T) {
	_, err := guard.New(nil, &recordingNavigator{})
	require.Error(t, err)
	_, err = guard.New(newController(t, nil), nil)
	require.Error(t, err)
}

func TestResolve_EmptyStoreGoesToSignIn(t *testing.T) {
	ctrl := newController(t, nil)
	nav := &recordingNavigator{}
	g, err := guard.New(ctrl, nav, guard.WithLogger(zerolog.Nop()))
	require.NoError(t, err)

	ctrl.Init(context.Background())
	route, err := g.Resolve(context.Background())
	require.NoError(t, err)
	require.Equal(t, session.RouteSignIn, route)
	require.Equal(t, []session.Route{session.RouteSignIn}, nav.Routes())
}

func TestResolve_StoredTokenGoesHome(t *testing.T) {
	ctrl := newController(t, func(s *tokenstore.Store) {
		require.NoError(t, s.SetTokens(context.Background(), "abc", ""))
	})
	nav := &recordingNavigator{}
	g, err := guard.New(ctrl, nav, guard.WithLogger(zerolog.Nop()))
	require.NoError(t, err)

	ctrl.Init(context.Background())
	route, err := g.Resolve(context.Background())
	require.NoError(t, err)
	require.Equal(t, session.RouteHome, route)
	require.Equal(t, []session.Route{session.RouteHome}, nav.Routes())
}

func TestResolve_WaitsForBootstrap(t *testing.T) {
	ctrl := newController(t, nil)
	nav := &recordingNavigator{}
	g, err := guard.New(ctrl, nav, guard.WithLogger(zerolog.Nop()))
	require.NoError(t, err)

	done := make(chan session.Route)
	go func() {
		route, _ := g.Resolve(context.Background())
		done <- route
	}()

	select {
	case <-done:
		t.Fatal("resolved before bootstrap")
	case <-time.After(50 * time.Millisecond):
	}
	require.Empty(t, nav.Routes())

	ctrl.Init(context.Background())
	require.Equal(t, session.RouteSignIn, <-done)
}

func TestResolve_ContextCancelled(t *testing.T) {
	ctrl := newController(t, nil)
	nav := &recordingNavigator{}
	g, err := guard.New(ctrl, nav, guard.WithLogger(zerolog.Nop()))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = g.Resolve(ctx)
	require.ErrorIs(t, err, context.Canceled)
	require.Empty(t, nav.Routes())
}

func TestResolve_DecidesOnce(t *testing.T) {
	ctx := context.Background()
	ctrl := newController(t, nil)
	nav := &recordingNavigator{}
	g, err := guard.New(ctrl, nav, guard.WithLogger(zerolog.Nop()))
	require.NoError(t, err)

	ctrl.Init(ctx)
	first, err := g.Resolve(ctx)
	require.NoError(t, err)

	require.NoError(t, ctrl.Login(ctx, session.LoginPayload{
		Tokens: token.TokenPair{AccessToken: "A"},
		User:   &users.User{ID: "u-1", Email: "a@b.co"},
	}))

	second, err := g.Resolve(ctx)
	require.NoError(t, err)
	require.Equal(t, first, second)
	require.Equal(t, []session.Route{session.RouteSignIn}, nav.Routes())
}
