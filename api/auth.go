package api

import "errors"

var ErrNoData = errors.New("envelope has no data")

// LoginRequest is the body of POST <auth-base>/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RefreshRequest is the body of POST <auth-base>/refresh.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// ServerUser is the user record as the backend spells it.
type ServerUser struct {
	ID                string  `json:"id"`
	Email             string  `json:"email"`
	FirstName         string  `json:"firstname"`
	LastName          string  `json:"lastname"`
	Role              string  `json:"role,omitempty"`
	ProfilePictureURL *string `json:"profile_picture_url,omitempty"`
	CityID            *string `json:"city_id,omitempty"`
}

// TokenData is the Data of a successful login or refresh.
type TokenData struct {
	// User is only present on login.
	User *ServerUser `json:"user,omitempty"`

	// AccessToken is the JWT sent as "Authorization: Bearer <access_token>".
	AccessToken string `json:"access_token"`

	// RefreshToken is an opaque string exchanged at /refresh for a new pair.
	RefreshToken string `json:"refresh_token"`

	// ExpiresIn is the access token lifetime in seconds.
	ExpiresIn int `json:"expires_in,omitempty"`

	// TokenType is "Bearer".
	TokenType string `json:"token_type,omitempty"`
}

// ProfileData is the Data of GET <auth-base>/profile.
type ProfileData struct {
	User ServerUser `json:"user"`
}
