package config

import "time"

// Token store backends understood by ClientConfig.GetTokenStore.
const (
	TokenStoreMemory = "memory"
	TokenStoreSQLite = "sqlite"
	TokenStoreRedis  = "redis"
)

type ClientConfig interface {
	GetAuthBaseURL() string
	GetAPIBaseURL() string
	GetTokenStore() string
	GetTokenStorePath() string
	GetRedisURL() string
	GetRequestTimeout() time.Duration
	GetSignOutTimeout() time.Duration
	GetRefreshLeeway() time.Duration
}

// Client configures the session core running on the device.
type Client struct {
	AuthBaseURL    string        `env:"AUTH_BASE_URL" envDefault:"http://localhost:8080/auth"`
	APIBaseURL     string        `env:"API_BASE_URL" envDefault:"http://localhost:8080"`
	TokenStore     string        `env:"TOKEN_STORE" envDefault:"sqlite"`
	TokenStorePath string        `env:"TOKEN_STORE_PATH" envDefault:"./data/session.db"`
	RedisURL       string        `env:"REDIS_URL" envDefault:"redis://localhost:6379/0"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"15s"`
	SignOutTimeout time.Duration `env:"SIGN_OUT_TIMEOUT" envDefault:"5s"`
	RefreshLeeway  time.Duration `env:"REFRESH_LEEWAY" envDefault:"30s"`
}

var _ ClientConfig = Client{}

func (c Client) GetAuthBaseURL() string {
	return c.AuthBaseURL
}

func (c Client) GetAPIBaseURL() string {
	return c.APIBaseURL
}

func (c Client) GetTokenStore() string {
	switch c.TokenStore {
	case TokenStoreMemory, TokenStoreRedis:
		return c.TokenStore
	default:
		return TokenStoreSQLite
	}
}

func (c Client) GetTokenStorePath() string {
	return c.TokenStorePath
}

func (c Client) GetRedisURL() string {
	return c.RedisURL
}

func (c Client) GetRequestTimeout() time.Duration {
	return c.RequestTimeout
}

func (c Client) GetSignOutTimeout() time.Duration {
	return c.SignOutTimeout
}

// GetRefreshLeeway is how long before expiry an access token is refreshed.
func (c Client) GetRefreshLeeway() time.Duration {
	return c.RefreshLeeway
}
