package config

import "time"

// SecurityConfig covers the mock backend's token issuing and throttling.
type SecurityConfig interface {
	GetJWTSecret() string
	GetAccessTokenExpiry() time.Duration
	GetRefreshTokenExpiry() time.Duration
	GetRefreshTokenLength() int
	GetEnableRateLimiting() bool
	GetLoginRatePerMinute() int
}

type Security struct {
	JWTSecret          string        `env:"JWT_SECRET" envDefault:"dev-secret-change-me"`
	AccessTokenExpiry  time.Duration `env:"ACCESS_TOKEN_EXPIRY" envDefault:"1h"`
	RefreshTokenExpiry time.Duration `env:"REFRESH_TOKEN_EXPIRY" envDefault:"168h"`
	RateLimitEnabled   bool          `env:"RATE_LIMIT_ENABLED" envDefault:"false"`
	LoginRatePerMinute int           `env:"LOGIN_RATE_PER_MINUTE" envDefault:"10"`
}

var _ SecurityConfig = Security{}

func (s Security) GetJWTSecret() string {
	return s.JWTSecret
}

func (s Security) GetAccessTokenExpiry() time.Duration {
	return s.AccessTokenExpiry
}

func (s Security) GetRefreshTokenExpiry() time.Duration {
	return s.RefreshTokenExpiry
}

func (Security) GetRefreshTokenLength() int {
	return 32 // 32 bytes = 256 bits
}

func (s Security) GetEnableRateLimiting() bool {
	return s.RateLimitEnabled
}

func (s Security) GetLoginRatePerMinute() int {
	if s.LoginRatePerMinute <= 0 {
		return 10
	}
	return s.LoginRatePerMinute
}
