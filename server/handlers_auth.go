package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/jrsteele09/go-legal-client/api"
	"github.com/jrsteele09/go-legal-client/internal/errors"
	"github.com/jrsteele09/go-legal-client/token"
	"github.com/jrsteele09/go-legal-client/users"
)

const maxBodyBytes = 64 << 10

// Failure messages returned by the auth endpoints.
const (
	MsgInvalidCredentials  = "Invalid credentials"
	MsgAccountBlocked      = "Account is blocked"
	MsgInvalidBody         = "Invalid request body"
	MsgValidationFailed    = "Validation failed"
	MsgInvalidRefreshToken = "Invalid refresh token"
	MsgRefreshTokenExpired = "Refresh token expired"
)

// LoginHandler exchanges email/password for a token pair (POST /auth/login)
func (s *Server) LoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req api.LoginRequest
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
			writeFailure(w, http.StatusBadRequest, MsgInvalidBody)
			return
		}

		var fieldErrors []api.FieldError
		if strings.TrimSpace(req.Email) == "" {
			fieldErrors = append(fieldErrors, api.FieldError{Field: "email", Message: "The email field is required."})
		}
		if req.Password == "" {
			fieldErrors = append(fieldErrors, api.FieldError{Field: "password", Message: "The password field is required."})
		}
		if len(fieldErrors) > 0 {
			writeFailure(w, http.StatusUnprocessableEntity, MsgValidationFailed, fieldErrors...)
			return
		}

		account, err := s.repos.Users.GetByEmail(req.Email)
		if err != nil || !account.CheckPassword(req.Password) {
			writeFailure(w, http.StatusUnauthorized, MsgInvalidCredentials)
			return
		}
		if account.Blocked {
			writeFailure(w, http.StatusForbidden, MsgAccountBlocked)
			return
		}

		data, err := s.issueTokens(account)
		if err != nil {
			s.logger.Error().Err(err).Str("user_id", account.ID).Msg("failed to issue tokens")
			writeFailure(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		data.User = account.ServerUser()

		writeSuccess(w, http.StatusOK, "Login successful", data)
	}
}

// LogoutHandler revokes the caller's refresh token (POST /auth/logout)
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := userIDFromContext(r.Context())
		if err := s.refresh.Revoke(userID); err != nil {
			s.logger.Error().Err(err).Str("user_id", userID).Msg("failed to revoke refresh token")
		}
		writeSuccess(w, http.StatusOK, "Logged out", struct{}{})
	}
}

// RefreshHandler rotates a refresh token (POST /auth/refresh)
func (s *Server) RefreshHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req api.RefreshRequest
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
			writeFailure(w, http.StatusBadRequest, MsgInvalidBody)
			return
		}
		if req.RefreshToken == "" {
			writeFailure(w, http.StatusUnprocessableEntity, MsgValidationFailed,
				api.FieldError{Field: "refresh_token", Message: "The refresh token field is required."})
			return
		}

		userID, rotated, err := s.refresh.Rotate(req.RefreshToken)
		if err != nil {
			msg := MsgInvalidRefreshToken
			if errors.Is(err, errors.ErrRefreshTokenExpired) {
				msg = MsgRefreshTokenExpired
			}
			writeFailure(w, http.StatusUnauthorized, msg)
			return
		}

		account, err := s.repos.Users.GetByID(userID)
		if err != nil {
			_ = s.refresh.Revoke(userID)
			writeFailure(w, http.StatusUnauthorized, MsgInvalidRefreshToken)
			return
		}

		access, err := s.tokens.CreateAccessToken(account)
		if err != nil {
			s.logger.Error().Err(err).Str("user_id", userID).Msg("failed to sign access token")
			writeFailure(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		writeSuccess(w, http.StatusOK, "Token refreshed", api.TokenData{
			AccessToken:  access,
			RefreshToken: rotated,
			ExpiresIn:    s.tokens.ExpiresIn(),
			TokenType:    token.DefaultTokenType,
		})
	}
}

// ProfileHandler returns the caller's full profile (GET /auth/profile)
func (s *Server) ProfileHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		account, err := s.repos.Users.GetByID(userIDFromContext(r.Context()))
		if err != nil {
			writeFailure(w, http.StatusNotFound, "User not found")
			return
		}
		writeSuccess(w, http.StatusOK, "Profile", api.ProfileData{User: *account.ProfileUser()})
	}
}

func (s *Server) issueTokens(account *users.Account) (*api.TokenData, error) {
	access, err := s.tokens.CreateAccessToken(account)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.refresh.Create(account.ID)
	if err != nil {
		return nil, err
	}
	return &api.TokenData{
		AccessToken:  access,
		RefreshToken: refreshToken,
		ExpiresIn:    s.tokens.ExpiresIn(),
		TokenType:    token.DefaultTokenType,
	}, nil
}
