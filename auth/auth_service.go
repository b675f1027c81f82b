package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jrsteele09/go-legal-client/api"
	"github.com/jrsteele09/go-legal-client/token"
	"github.com/jrsteele09/go-legal-client/users"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Endpoint paths relative to the auth base URL.
const (
	PathLogin   = "/login"
	PathLogout  = "/logout"
	PathRefresh = "/refresh"
	PathProfile = "/profile"
)

const (
	headerRequestID    = "X-Request-ID"
	maxResponseBytes   = 1 << 20
	defaultHTTPTimeout = 15 * time.Second
)

// Service exchanges credentials for tokens against the remote identity
// endpoint. Every error it returns is an *AuthError.
type Service struct {
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
	requestID  func() string
}

// ServiceOption defines a function type to modify the Service instance.
type ServiceOption func(*Service)

// WithHTTPClient sets the transport used for every call.
func WithHTTPClient(client *http.Client) ServiceOption {
	return func(s *Service) {
		s.httpClient = client
	}
}

// WithLogger sets the service logger.
func WithLogger(logger zerolog.Logger) ServiceOption {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithRequestIDFunc sets the X-Request-ID generator (primarily for testing)
func WithRequestIDFunc(fn func() string) ServiceOption {
	return func(s *Service) {
		s.requestID = fn
	}
}

// NewService creates a Service for the auth API rooted at baseURL
// (e.g. "https://api.example.com/auth").
func NewService(baseURL string, options ...ServiceOption) (*Service, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("[NewService] base URL is required")
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, errors.New("[NewService] base URL is invalid: " + err.Error())
	}

	s := &Service{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
		logger:     log.Logger,
		requestID:  func() string { return uuid.New().String() },
	}
	for _, opt := range options {
		opt(s)
	}
	if s.httpClient == nil {
		return nil, errors.New("[NewService] http client is required")
	}
	s.logger = s.logger.With().Str("component", "auth").Logger()
	return s, nil
}

// SignIn sends credentials to the login endpoint and returns the issued
// tokens with the normalized user.
func (s *Service) SignIn(ctx context.Context, credentials Credentials) (*SignInResult, error) {
	creds := credentials.Normalized()
	env, status, aerr := s.call(ctx, http.MethodPost, PathLogin, "", api.LoginRequest{
		Email:    creds.Email,
		Password: creds.Password,
	}, false)
	if aerr != nil {
		s.logger.Info().Str("email", creds.Email).Int("status", aerr.StatusCode).Msg("sign in failed")
		return nil, aerr
	}

	var data api.TokenData
	if err := env.DecodeData(&data); err != nil || data.User == nil || data.AccessToken == "" {
		s.logger.Error().Err(err).Int("status", status).Msg("sign in response missing tokens or user")
		return nil, unexpectedError(status)
	}

	return &SignInResult{
		Tokens: token.FromTokenData(&data),
		User:   users.FromServer(data.User),
	}, nil
}

// SignOut tells the server the session ended. Callers doing a local logout
// should log and ignore the error.
func (s *Service) SignOut(ctx context.Context, accessToken string) error {
	if _, _, aerr := s.call(ctx, http.MethodPost, PathLogout, accessToken, nil, true); aerr != nil {
		s.logger.Warn().Err(aerr).Msg("server sign out failed")
		return aerr
	}
	return nil
}

// RefreshToken exchanges a refresh token for a new pair.
func (s *Service) RefreshToken(ctx context.Context, refreshToken string) (*token.TokenPair, error) {
	env, status, aerr := s.call(ctx, http.MethodPost, PathRefresh, "", api.RefreshRequest{RefreshToken: refreshToken}, false)
	if aerr != nil {
		return nil, aerr
	}

	var data api.TokenData
	if err := env.DecodeData(&data); err != nil || data.AccessToken == "" {
		s.logger.Error().Err(err).Int("status", status).Msg("refresh response missing tokens")
		return nil, unexpectedError(status)
	}
	pair := token.FromTokenData(&data)
	if pair.RefreshToken == "" {
		// Servers that do not rotate keep the old refresh token valid.
		pair.RefreshToken = refreshToken
	}
	return &pair, nil
}

// FetchProfile returns the full profile of the token's owner, including the
// fields the login endpoint leaves out.
func (s *Service) FetchProfile(ctx context.Context, accessToken string) (*users.User, error) {
	env, status, aerr := s.call(ctx, http.MethodGet, PathProfile, accessToken, nil, false)
	if aerr != nil {
		return nil, aerr
	}

	var data api.ProfileData
	if err := env.DecodeData(&data); err != nil || data.User.ID == "" {
		s.logger.Error().Err(err).Int("status", status).Msg("profile response missing user")
		return nil, unexpectedError(status)
	}
	return users.FromServer(&data.User), nil
}

// call performs one request and normalizes every failure into an AuthError.
// With ignoreBody set any 2xx status is success.
func (s *Service) call(ctx context.Context, method, path, bearer string, body any, ignoreBody bool) (*api.Envelope, int, *AuthError) {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, 0, unexpectedError(0)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, reader)
	if err != nil {
		return nil, 0, unexpectedError(0)
	}
	requestID := s.requestID()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(headerRequestID, requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", token.DefaultTokenType+" "+bearer)
	}

	logger := s.logger.With().Str("request_id", requestID).Str("method", method).Str("path", path).Logger()
	logger.Debug().Msg("auth request")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		// No response: DNS, dial, TLS, timeout or cancelled context.
		logger.Warn().Err(err).Msg("auth request got no response")
		return nil, 0, networkError(err)
	}
	defer resp.Body.Close()

	var env api.Envelope
	raw, decodeErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if decodeErr == nil {
		decodeErr = json.Unmarshal(raw, &env)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if decodeErr != nil {
			return nil, resp.StatusCode, responseError(resp.StatusCode, "", nil)
		}
		return nil, resp.StatusCode, responseError(resp.StatusCode, env.Message, env.Errors)
	}

	if ignoreBody {
		return &api.Envelope{Success: true}, resp.StatusCode, nil
	}
	if decodeErr != nil {
		logger.Error().Err(decodeErr).Int("status", resp.StatusCode).Msg("auth response is not an envelope")
		return nil, resp.StatusCode, unexpectedError(resp.StatusCode)
	}
	if !env.Success {
		return nil, resp.StatusCode, responseError(resp.StatusCode, env.Message, env.Errors)
	}
	return &env, resp.StatusCode, nil
}
