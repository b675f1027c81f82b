package session

import (
	"context"
	"fmt"
	"net/http"

	apperrors "github.com/jrsteele09/go-legal-client/internal/errors"
	"github.com/jrsteele09/go-legal-client/token"
	"golang.org/x/oauth2"
)

// TokenSource returns an oauth2.TokenSource backed by the Token Store. Each
// call reads the store, so a logout is seen by the next request. Access
// tokens whose JWT exp falls inside the refresh leeway are refreshed first.
func (c *Controller) TokenSource(ctx context.Context) oauth2.TokenSource {
	return &storeTokenSource{ctx: ctx, c: c}
}

// HTTPClient returns a client that authorizes requests with the stored
// access token. A base client can be supplied with the oauth2.HTTPClient
// context key. Tokens are not cached between requests.
func (c *Controller) HTTPClient(ctx context.Context) *http.Client {
	client := &http.Client{}
	if base, ok := ctx.Value(oauth2.HTTPClient).(*http.Client); ok && base != nil {
		*client = *base
	}
	client.Transport = &oauth2.Transport{
		Source: c.TokenSource(ctx),
		Base:   client.Transport,
	}
	return client
}

type storeTokenSource struct {
	ctx context.Context
	c   *Controller
}

func (ts *storeTokenSource) Token() (*oauth2.Token, error) {
	pair, ok := ts.c.store.Tokens(ts.ctx)
	if !ok {
		return nil, fmt.Errorf("[session TokenSource] %w", apperrors.ErrNoAccessToken)
	}

	if ts.c.needsRefresh(pair) {
		refreshed, err := ts.c.refresh(ts.ctx, pair)
		if err != nil {
			return nil, err
		}
		pair = *refreshed
	}

	t := &oauth2.Token{
		AccessToken:  pair.AccessToken,
		TokenType:    pair.Type(),
		RefreshToken: pair.RefreshToken,
	}
	if exp, ok := token.Expiry(pair.AccessToken); ok {
		t.Expiry = exp
	}
	return t, nil
}

func (c *Controller) needsRefresh(pair token.TokenPair) bool {
	if c.auth == nil || pair.RefreshToken == "" {
		return false
	}
	exp, ok := token.Expiry(pair.AccessToken)
	if !ok {
		return false
	}
	return !NowTimeFunc().Add(c.refreshLeeway).Before(exp)
}

// refresh exchanges the refresh token and persists the new pair. A failure
// is returned to the caller; the session stays as it is.
func (c *Controller) refresh(ctx context.Context, stale token.TokenPair) (*token.TokenPair, error) {
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	// another request may already have refreshed
	if current, ok := c.store.Tokens(ctx); ok && current.AccessToken != stale.AccessToken {
		return &current, nil
	}

	pair, err := c.auth.RefreshToken(ctx, stale.RefreshToken)
	if err != nil {
		c.logger.Warn().Err(err).Msg("token refresh failed")
		return nil, fmt.Errorf("[session refresh] %w", err)
	}

	c.lock.Lock()
	defer c.lock.Unlock()

	current, ok := c.store.Tokens(ctx)
	if !ok || current.AccessToken != stale.AccessToken {
		return nil, fmt.Errorf("[session refresh] %w", apperrors.ErrNotAuthenticated)
	}
	if err := c.store.SetTokens(ctx, pair.AccessToken, pair.RefreshToken); err != nil {
		return nil, fmt.Errorf("[session refresh] %w", err)
	}
	c.logger.Debug().Msg("access token refreshed")
	return pair, nil
}
