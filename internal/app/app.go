// Package app wires the session core together from configuration.
package app

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/jrsteele09/go-legal-client/auth"
	"github.com/jrsteele09/go-legal-client/chat"
	"github.com/jrsteele09/go-legal-client/guard"
	"github.com/jrsteele09/go-legal-client/internal/config"
	"github.com/jrsteele09/go-legal-client/locations"
	"github.com/jrsteele09/go-legal-client/session"
	"github.com/jrsteele09/go-legal-client/tokenstore"
	"github.com/jrsteele09/go-legal-client/tokenstore/redisstore"
	"github.com/jrsteele09/go-legal-client/tokenstore/sqlitestore"
	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
)

const redisKeyPrefix = "legal-client"

// App is the client side of the system: one Token Store, one Auth Service
// and the Session Controller built on them.
type App struct {
	Store     *tokenstore.Store
	Auth      *auth.Service
	Session   *session.Controller
	Guard     *guard.Guard
	Locations *locations.Client
	Chat      *chat.Client

	closer io.Closer
}

// New opens the configured Token Store backend and builds the session core.
// The controller is bootstrapped before New returns.
func New(ctx context.Context, cfg config.ClientConfig, navigator session.Navigator, logger zerolog.Logger) (*App, error) {
	backend, closer, err := OpenBackend(ctx, cfg)
	if err != nil {
		return nil, err
	}

	a, err := build(ctx, cfg, backend, navigator, logger)
	if err != nil {
		if closer != nil {
			_ = closer.Close()
		}
		return nil, err
	}
	a.closer = closer
	return a, nil
}

func build(ctx context.Context, cfg config.ClientConfig, backend tokenstore.Backend, navigator session.Navigator, logger zerolog.Logger) (*App, error) {
	store, err := tokenstore.New(backend, tokenstore.WithLogger(logger))
	if err != nil {
		return nil, err
	}

	svc, err := auth.NewService(cfg.GetAuthBaseURL(),
		auth.WithHTTPClient(&http.Client{Timeout: cfg.GetRequestTimeout()}),
		auth.WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}

	ctrl, err := session.NewController(store,
		session.WithAuthService(svc),
		session.WithNavigator(navigator),
		session.WithLogger(logger),
		session.WithSignOutTimeout(cfg.GetSignOutTimeout()),
		session.WithRefreshLeeway(cfg.GetRefreshLeeway()),
	)
	if err != nil {
		return nil, err
	}

	g, err := guard.New(ctrl, navigator, guard.WithLogger(logger))
	if err != nil {
		return nil, err
	}

	// the location client sends whatever token is stored at request time
	apiCtx := context.WithValue(context.WithoutCancel(ctx), oauth2.HTTPClient, &http.Client{Timeout: cfg.GetRequestTimeout()})
	loc, err := locations.NewClient(cfg.GetAPIBaseURL(), ctrl.HTTPClient(apiCtx), locations.WithLogger(logger))
	if err != nil {
		return nil, err
	}

	// chat streams stay open, so its deadline is per request instead
	streamCtx := context.WithValue(context.WithoutCancel(ctx), oauth2.HTTPClient, &http.Client{})
	chats, err := chat.NewClient(cfg.GetAPIBaseURL(), ctrl.HTTPClient(streamCtx),
		chat.WithRequestTimeout(cfg.GetRequestTimeout()),
		chat.WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}

	ctrl.Init(ctx)

	return &App{
		Store:     store,
		Auth:      svc,
		Session:   ctrl,
		Guard:     g,
		Locations: loc,
		Chat:      chats,
	}, nil
}

// Close releases the Token Store backend.
func (a *App) Close() error {
	if a.closer == nil {
		return nil
	}
	return a.closer.Close()
}

// OpenBackend opens the Token Store backend named by cfg.GetTokenStore. The
// closer is nil for the in-memory backend.
func OpenBackend(ctx context.Context, cfg config.ClientConfig) (tokenstore.Backend, io.Closer, error) {
	switch cfg.GetTokenStore() {
	case config.TokenStoreMemory:
		return tokenstore.NewInMemoryBackend(), nil, nil
	case config.TokenStoreRedis:
		s, err := redisstore.Open(ctx, cfg.GetRedisURL(), redisKeyPrefix)
		if err != nil {
			return nil, nil, fmt.Errorf("[app OpenBackend] redis: %w", err)
		}
		return s, s, nil
	default:
		s, err := sqlitestore.Open(cfg.GetTokenStorePath())
		if err != nil {
			return nil, nil, fmt.Errorf("[app OpenBackend] sqlite: %w", err)
		}
		return s, s, nil
	}
}
