package config_test

import (
	"testing"
	"time"

	"github.com/jrsteele09/go-legal-client/internal/config"
	"github.com/stretchr/testify/require"
)

func TestNewFromEnvironment_Defaults(t *testing.T) {
	c, err := config.NewFromEnvironment(map[string]string{})
	require.NoError(t, err)

	require.Equal(t, ":8080", c.GetPort())
	require.Equal(t, "DEV", c.GetEnv())
	require.True(t, c.IsDev())
	require.Equal(t, config.TokenStoreSQLite, c.GetTokenStore())
	require.Equal(t, 15*time.Second, c.GetRequestTimeout())
	require.Equal(t, time.Hour, c.GetAccessTokenExpiry())
	require.True(t, c.GetAllowedOrigins().IsAllowedOrigin("*"))
}

func TestNewFromEnvironment_Overrides(t *testing.T) {
	c, err := config.NewFromEnvironment(map[string]string{
		"PORT":            ":9090",
		"ENV":             "PROD",
		"TOKEN_STORE":     "redis",
		"REFRESH_LEEWAY":  "1m",
		"ALLOWED_ORIGINS": "https://a.example, https://b.example",
	})
	require.NoError(t, err)

	require.Equal(t, ":9090", c.GetPort())
	require.False(t, c.IsDev())
	require.Equal(t, config.TokenStoreRedis, c.GetTokenStore())
	require.Equal(t, time.Minute, c.GetRefreshLeeway())
	require.True(t, c.GetAllowedOrigins().IsAllowedOrigin("https://b.example"))
	require.False(t, c.GetAllowedOrigins().IsAllowedOrigin("*"))
}

func TestNewFromEnvironment_UnknownStoreFallsBackToSQLite(t *testing.T) {
	c, err := config.NewFromEnvironment(map[string]string{"TOKEN_STORE": "etcd"})
	require.NoError(t, err)
	require.Equal(t, config.TokenStoreSQLite, c.GetTokenStore())
}

func TestNewFromEnvironment_BadDuration(t *testing.T) {
	_, err := config.NewFromEnvironment(map[string]string{"REQUEST_TIMEOUT": "soon"})
	require.Error(t, err)
}
