// Package session holds the process-wide authentication state. A Controller
// is built once at start up, bootstrapped from the Token Store with Init and
// passed explicitly to everything that needs to read or change the session.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jrsteele09/go-legal-client/auth"
	apperrors "github.com/jrsteele09/go-legal-client/internal/errors"
	"github.com/jrsteele09/go-legal-client/token"
	"github.com/jrsteele09/go-legal-client/tokenstore"
	"github.com/jrsteele09/go-legal-client/users"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	defaultSignOutTimeout = 5 * time.Second
	defaultRefreshLeeway  = 30 * time.Second
)

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

// Authenticator is the part of the Auth Service the controller uses.
type Authenticator interface {
	SignIn(ctx context.Context, credentials auth.Credentials) (*auth.SignInResult, error)
	SignOut(ctx context.Context, accessToken string) error
	RefreshToken(ctx context.Context, refreshToken string) (*token.TokenPair, error)
	FetchProfile(ctx context.Context, accessToken string) (*users.User, error)
}

var _ Authenticator = (*auth.Service)(nil)

// Controller owns the in-memory session state.
type Controller struct {
	store          *tokenstore.Store
	auth           Authenticator
	navigator      Navigator
	logger         zerolog.Logger
	signOutTimeout time.Duration
	refreshLeeway  time.Duration

	lock      sync.Mutex // serializes transitions
	refreshMu sync.Mutex // one token refresh at a time

	stateLock sync.RWMutex
	state     Snapshot

	initOnce sync.Once
	ready    chan struct{}

	subsLock sync.Mutex
	subs     map[int]chan Snapshot
	nextSub  int
}

// Option defines a function type to modify the Controller instance.
type Option func(*Controller)

// WithAuthService sets the service used by SignIn, Logout, RefreshProfile
// and the token source.
func WithAuthService(a Authenticator) Option {
	return func(c *Controller) {
		c.auth = a
	}
}

// WithNavigator sets where Logout sends the user.
func WithNavigator(n Navigator) Option {
	return func(c *Controller) {
		c.navigator = n
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

// WithSignOutTimeout bounds the server notification made after a local logout.
func WithSignOutTimeout(d time.Duration) Option {
	return func(c *Controller) {
		c.signOutTimeout = d
	}
}

// WithRefreshLeeway sets how close to expiry an access token is refreshed.
func WithRefreshLeeway(d time.Duration) Option {
	return func(c *Controller) {
		c.refreshLeeway = d
	}
}

// NewController creates a Controller in the Unknown phase.
func NewController(store *tokenstore.Store, options ...Option) (*Controller, error) {
	if store == nil {
		return nil, errors.New("[NewController] token store is required")
	}
	c := &Controller{
		store:          store,
		navigator:      noopNavigator{},
		logger:         log.Logger,
		signOutTimeout: defaultSignOutTimeout,
		refreshLeeway:  defaultRefreshLeeway,
		ready:          make(chan struct{}),
		subs:           make(map[int]chan Snapshot),
	}
	for _, opt := range options {
		opt(c)
	}
	if c.navigator == nil {
		c.navigator = noopNavigator{}
	}
	c.logger = c.logger.With().Str("component", "session").Logger()
	return c, nil
}

// Init bootstraps the state from the Token Store. Only the first call does
// anything; it never touches the network.
func (c *Controller) Init(ctx context.Context) {
	c.initOnce.Do(func() {
		defer close(c.ready)

		c.lock.Lock()
		defer c.lock.Unlock()

		if _, ok := c.store.AccessToken(ctx); !ok {
			c.publish(unauthenticated())
			c.logger.Debug().Msg("bootstrapped without a session")
			return
		}

		user, ok := c.store.UserData(ctx)
		if !ok {
			c.logger.Warn().Msg("access token stored without a user record")
		}
		c.publish(authenticated(user))
		c.logger.Debug().Bool("has_user", ok).Msg("bootstrapped session from store")
	})
}

// Ready is closed once Init has finished.
func (c *Controller) Ready() <-chan struct{} {
	return c.ready
}

// State returns a copy of the current session state.
func (c *Controller) State() Snapshot {
	c.stateLock.RLock()
	defer c.stateLock.RUnlock()
	return c.state.clone()
}

// IsAuthenticated reports whether a session is active.
func (c *Controller) IsAuthenticated() bool {
	return c.State().IsAuthenticated
}

// User returns a copy of the signed-in user, nil when signed out.
func (c *Controller) User() *users.User {
	return c.State().User
}

// Login persists the payload and then publishes the Authenticated state.
// On a persistence failure the state is unchanged.
func (c *Controller) Login(ctx context.Context, payload LoginPayload) error {
	if !payload.Tokens.HasAccessToken() {
		return fmt.Errorf("[session Login] %w", apperrors.ErrNoAccessToken)
	}
	if payload.User == nil {
		return errors.New("[session Login] user is required")
	}

	c.lock.Lock()
	defer c.lock.Unlock()

	if err := c.store.SetSession(ctx, payload.Tokens, payload.User); err != nil {
		c.logger.Error().Err(err).Msg("failed to persist session")
		return fmt.Errorf("[session Login] %w", err)
	}
	c.publish(authenticated(payload.User.Clone()))
	c.logger.Info().Str("user_id", payload.User.ID).Msg("logged in")
	return nil
}

// SignIn validates credentials, exchanges them with the Auth Service and logs
// in with the result. Validation and exchange failures are *auth.AuthError
// and leave the state unchanged.
func (c *Controller) SignIn(ctx context.Context, credentials auth.Credentials) error {
	if c.auth == nil {
		return errors.New("[session SignIn] auth service is required")
	}
	if err := credentials.Validate(); err != nil {
		return err
	}
	res, err := c.auth.SignIn(ctx, credentials)
	if err != nil {
		return err
	}
	return c.Login(ctx, PayloadFromSignIn(res))
}

// Logout clears the local session, publishes the Unauthenticated state and
// navigates to sign-in, then tells the server. It always succeeds locally.
func (c *Controller) Logout(ctx context.Context) {
	c.lock.Lock()
	accessToken, _ := c.store.AccessToken(ctx)
	c.clearStore(ctx)
	c.publish(unauthenticated())
	c.lock.Unlock()

	c.logger.Info().Msg("logged out")
	c.navigator.Navigate(RouteSignIn)

	if c.auth == nil || accessToken == "" {
		return
	}
	signOutCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.signOutTimeout)
	defer cancel()
	if err := c.auth.SignOut(signOutCtx, accessToken); err != nil {
		c.logger.Warn().Err(err).Msg("server sign out failed, ignoring")
	}
}

// clearStore removes the session from the Token Store. When deleting keeps
// failing the tokens are blanked, which the next Init reads as signed out.
func (c *Controller) clearStore(ctx context.Context) {
	err := c.store.ClearAuth(ctx)
	if err == nil {
		return
	}
	c.logger.Warn().Err(err).Msg("failed to clear token store, retrying")
	if err = c.store.ClearAuth(ctx); err == nil {
		return
	}
	if blankErr := c.store.SetTokens(ctx, "", ""); blankErr != nil {
		c.logger.Error().Err(errors.Join(err, blankErr)).Msg("token store still holds the session")
		return
	}
	c.logger.Error().Err(err).Msg("token store keys not deleted, tokens blanked")
}

// RefreshProfile replaces the cached user with the server's full profile.
func (c *Controller) RefreshProfile(ctx context.Context) error {
	if c.auth == nil {
		return errors.New("[session RefreshProfile] auth service is required")
	}
	accessToken, ok := c.store.AccessToken(ctx)
	if !ok {
		return fmt.Errorf("[session RefreshProfile] %w", apperrors.ErrNotAuthenticated)
	}

	user, err := c.auth.FetchProfile(ctx, accessToken)
	if err != nil {
		return err
	}

	c.lock.Lock()
	defer c.lock.Unlock()

	// a logout or another login may have happened during the fetch
	if current, ok := c.store.AccessToken(ctx); !ok || current != accessToken {
		return fmt.Errorf("[session RefreshProfile] %w", apperrors.ErrNotAuthenticated)
	}
	if err := c.store.SetUserData(ctx, user); err != nil {
		return fmt.Errorf("[session RefreshProfile] %w", err)
	}
	c.publish(authenticated(user.Clone()))
	return nil
}

// Subscribe returns a channel carrying state changes, starting with the
// current state. A slow reader only sees the latest state. Call the returned
// function to unsubscribe.
func (c *Controller) Subscribe() (<-chan Snapshot, func()) {
	c.subsLock.Lock()
	defer c.subsLock.Unlock()

	ch := make(chan Snapshot, 1)
	id := c.nextSub
	c.nextSub++
	c.subs[id] = ch
	ch <- c.State()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			c.subsLock.Lock()
			defer c.subsLock.Unlock()
			delete(c.subs, id)
			close(ch)
		})
	}
}

// publish must be called with c.lock held.
func (c *Controller) publish(s Snapshot) {
	c.stateLock.Lock()
	c.state = s
	c.stateLock.Unlock()

	c.subsLock.Lock()
	defer c.subsLock.Unlock()
	for _, ch := range c.subs {
		select {
		case <-ch:
		default:
		}
		ch <- s.clone()
	}
}
