// Package guard decides, once per cold start, which top-level area to show.
package guard

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/jrsteele09/go-legal-client/session"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// SessionState is the part of the session controller the guard reads.
type SessionState interface {
	Ready() <-chan struct{}
	State() session.Snapshot
}

var _ SessionState = (*session.Controller)(nil)

// Guard redirects to the home area when a session exists and to sign-in
// otherwise. Later state changes are not its concern.
type Guard struct {
	session   SessionState
	navigator session.Navigator
	logger    zerolog.Logger

	once  sync.Once
	route session.Route
}

// Option defines a function type to modify the Guard instance.
type Option func(*Guard)

func WithLogger(logger zerolog.Logger) Option {
	return func(g *Guard) {
		g.logger = logger
	}
}

func New(state SessionState, navigator session.Navigator, options ...Option) (*Guard, error) {
	if state == nil {
		return nil, errors.New("[guard New] session is required")
	}
	if navigator == nil {
		return nil, errors.New("[guard New] navigator is required")
	}
	g := &Guard{
		session:   state,
		navigator: navigator,
		logger:    log.Logger,
	}
	for _, opt := range options {
		opt(g)
	}
	g.logger = g.logger.With().Str("component", "guard").Logger()
	return g, nil
}

// Resolve waits for the session bootstrap, then navigates. Only the first
// successful call navigates; later calls return the same route.
func (g *Guard) Resolve(ctx context.Context) (session.Route, error) {
	select {
	case <-g.session.Ready():
	case <-ctx.Done():
		return "", fmt.Errorf("[guard Resolve] waiting for session: %w", ctx.Err())
	}

	g.once.Do(func() {
		g.route = session.RouteSignIn
		if g.session.State().IsAuthenticated {
			g.route = session.RouteHome
		}
		g.logger.Debug().Str("route", string(g.route)).Msg("initial route")
		g.navigator.Navigate(g.route)
	})
	return g.route, nil
}
