package tokenstore_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/jrsteele09/go-legal-client/internal/utils"
	"github.com/jrsteele09/go-legal-client/token"
	"github.com/jrsteele09/go-legal-client/tokenstore"
	"github.com/jrsteele09/go-legal-client/users"
	"github.com/stretchr/testify/require"
)

// failingBackend fails every call.
type failingBackend struct{}

func (failingBackend) Get(context.Context, string) (string, bool, error) {
	return "", false, errors.New("disk on fire")
}
func (failingBackend) SetMany(context.Context, map[string]string) error {
	return errors.New("disk on fire")
}
func (failingBackend) Delete(context.Context, ...string) error { return errors.New("disk on fire") }

func newStore(t *testing.T) (*tokenstore.Store, *tokenstore.InMemoryBackend) {
	t.Helper()
	backend := tokenstore.NewInMemoryBackend()
	store, err := tokenstore.New(backend)
	require.NoError(t, err)
	return store, backend
}

func testUser() *users.User {
	return &users.User{
		ID:                "u-1",
		Email:             "jane@example.com",
		FirstName:         "Jane",
		LastName:          "Doe",
		ProfilePictureURL: utils.Ptr("https://cdn.example.com/jane.png"),
	}
}

func TestNewRequiresBackend(t *testing.T) {
	_, err := tokenstore.New(nil)
	require.Error(t, err)
}

func TestEmptyStore(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()

	_, ok := store.AccessToken(ctx)
	require.False(t, ok)
	_, ok = store.RefreshToken(ctx)
	require.False(t, ok)
	u, ok := store.UserData(ctx)
	require.False(t, ok)
	require.Nil(t, u)
}

func TestSetTokensRoundTrip(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()

	require.NoError(t, store.SetTokens(ctx, "a", "r"))
	access, ok := store.AccessToken(ctx)
	require.True(t, ok)
	require.Equal(t, "a", access)
	refresh, ok := store.RefreshToken(ctx)
	require.True(t, ok)
	require.Equal(t, "r", refresh)

	pair, ok := store.Tokens(ctx)
	require.True(t, ok)
	require.Equal(t, token.TokenPair{AccessToken: "a", RefreshToken: "r"}, pair)
}

func TestSetUserDataRoundTrip(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()

	u := testUser()
	require.NoError(t, store.SetUserData(ctx, u))
	got, ok := store.UserData(ctx)
	require.True(t, ok)
	require.Equal(t, u, got)
	require.Error(t, store.SetUserData(ctx, nil))
}

func TestSetSessionWritesEverything(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()

	require.NoError(t, store.SetSession(ctx, token.TokenPair{AccessToken: "a", RefreshToken: "r"}, testUser()))
	access, _ := store.AccessToken(ctx)
	require.Equal(t, "a", access)
	u, ok := store.UserData(ctx)
	require.True(t, ok)
	require.Equal(t, "u-1", u.ID)
}

func TestMalformedUserIsAbsent(t *testing.T) {
	store, backend := newStore(t)
	ctx := context.Background()

	require.NoError(t, backend.SetMany(ctx, map[string]string{tokenstore.KeyUser: "{not json"}))
	u, ok := store.UserData(ctx)
	require.False(t, ok)
	require.Nil(t, u)
}

func TestBlankAccessTokenIsAbsent(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()

	require.NoError(t, store.SetTokens(ctx, "", "r"))
	_, ok := store.AccessToken(ctx)
	require.False(t, ok)
	_, ok = store.Tokens(ctx)
	require.False(t, ok)
}

func TestClearAuthIdempotent(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()

	require.NoError(t, store.SetSession(ctx, token.TokenPair{AccessToken: "a", RefreshToken: "r"}, testUser()))

	require.NoError(t, store.ClearAuth(ctx))
	require.NoError(t, store.ClearAuth(ctx))

	_, ok := store.AccessToken(ctx)
	require.False(t, ok)
	_, ok = store.RefreshToken(ctx)
	require.False(t, ok)
	_, ok = store.UserData(ctx)
	require.False(t, ok)
}

func TestBackendFailuresReadAsAbsent(t *testing.T) {
	store, err := tokenstore.New(failingBackend{})
	require.NoError(t, err)
	ctx := context.Background()

	_, ok := store.AccessToken(ctx)
	require.False(t, ok)
	_, ok = store.UserData(ctx)
	require.False(t, ok)

	require.Error(t, store.SetTokens(ctx, "a", "r"))
	require.Error(t, store.ClearAuth(ctx))
}

func TestReadersNeverSeeMixedPairs(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()
	require.NoError(t, store.SetTokens(ctx, "a0", "r0"))

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			if i%2 == 0 {
				_ = store.SetTokens(ctx, "a1", "r1")
			} else {
				_ = store.SetTokens(ctx, "a0", "r0")
			}
		}
	}()

	for i := 0; i < 500; i++ {
		pair, ok := store.Tokens(ctx)
		require.True(t, ok)
		require.Equal(t, pair.AccessToken[1:], pair.RefreshToken[1:])
	}
	wg.Wait()
}
