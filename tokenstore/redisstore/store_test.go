package redisstore_test

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/jrsteele09/go-legal-client/tokenstore"
	"github.com/jrsteele09/go-legal-client/tokenstore/redisstore"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func TestNewRequiresClient(t *testing.T) {
	_, err := redisstore.New(nil, "x")
	require.Error(t, err)
}

func TestOpenRejectsBadURL(t *testing.T) {
	_, err := redisstore.Open(context.Background(), "not a url", "x")
	require.Error(t, err)
}

func TestUnreachableServerReadsAsAbsent(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1})
	defer client.Close()

	backend, err := redisstore.New(client, "test")
	require.NoError(t, err)
	store, err := tokenstore.New(backend)
	require.NoError(t, err)

	_, ok := store.AccessToken(context.Background())
	require.False(t, ok)
	require.Error(t, store.SetTokens(context.Background(), "a", "r"))
}

func TestAgainstLiveRedis(t *testing.T) {
	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("REDIS_URL not set")
	}
	ctx := context.Background()

	backend, err := redisstore.Open(ctx, url, "test-"+uuid.NewString())
	require.NoError(t, err)
	defer backend.Close()

	store, err := tokenstore.New(backend)
	require.NoError(t, err)

	require.NoError(t, store.SetTokens(ctx, "tok123", "ref456"))
	access, ok := store.AccessToken(ctx)
	require.True(t, ok)
	require.Equal(t, "tok123", access)

	require.NoError(t, store.ClearAuth(ctx))
	require.NoError(t, store.ClearAuth(ctx))
	_, ok = store.AccessToken(ctx)
	require.False(t, ok)
}
