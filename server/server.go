package server

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/jrsteele09/go-legal-client/internal/config"
	"github.com/jrsteele09/go-legal-client/token/jwt"
	"github.com/jrsteele09/go-legal-client/token/refresh"
	"github.com/jrsteele09/go-legal-client/users"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

// TokenIssuer is the issuer claim of access tokens minted by the mock backend.
const TokenIssuer = "legal-mock-backend"

// Repos holds all repository dependencies for the Server
type Repos struct {
	Users         users.UserRepo // Accounts that can sign in
	RefreshTokens refresh.Repo   // Issued refresh tokens
	Locations     *LocationCatalog
	Chats         *ChatHub
}

// Server is the mock legal-services backend. It implements the endpoints the
// session core and the location client consume.
type Server struct {
	env          string // Environment (e.g., "DEV", "PROD")
	mux          *http.ServeMux
	routes       []string
	config       config.Config
	logger       zerolog.Logger
	repos        Repos
	tokens       *jwt.Creator
	refresh      *refresh.Manager
	loginLimiter *rate.Limiter
}

// Option defines a function type to modify the Server instance.
type Option func(*Server)

// WithLogger sets the server logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

func New(cfg config.Config, repos Repos, options ...Option) (*Server, error) {
	if cfg == nil {
		return nil, errors.New("[Server New] config is required")
	}
	if repos.Users == nil {
		return nil, errors.New("[Server New] Users repo is required")
	}
	if repos.RefreshTokens == nil {
		return nil, errors.New("[Server New] RefreshTokens repo is required")
	}
	if repos.Locations == nil {
		repos.Locations = DefaultLocationCatalog()
	}
	if repos.Chats == nil {
		repos.Chats = DefaultChatHub()
	}

	creator, err := jwt.NewCreator(cfg, TokenIssuer)
	if err != nil {
		return nil, fmt.Errorf("[Server New] failed to create token creator: %w", err)
	}

	s := &Server{
		env:     cfg.GetEnv(),
		mux:     http.NewServeMux(),
		config:  cfg,
		logger:  log.Logger,
		repos:   repos,
		tokens:  creator,
		refresh: refresh.NewManager(repos.RefreshTokens, cfg),
	}
	for _, opt := range options {
		opt(s)
	}
	s.logger = s.logger.With().Str("component", "mock-backend").Logger()

	if cfg.GetEnableRateLimiting() {
		perMinute := cfg.GetLoginRatePerMinute()
		s.loginLimiter = rate.NewLimiter(rate.Limit(float64(perMinute)/60.0), perMinute)
	}

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// Chats is the hub behind the chat endpoints.
func (s *Server) Chats() *ChatHub {
	return s.repos.Chats
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) logRoutes() {
	if !strings.EqualFold(s.env, "DEV") {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)
		if len(parts) > 1 {
			s.logger.Debug().Str("method", parts[0]).Str("path", parts[1]).Msg("route")
		} else {
			s.logger.Debug().Str("path", parts[0]).Msg("route")
		}
	}
}
