package users

import (
	"strings"

	"github.com/jrsteele09/go-legal-client/api"
	"github.com/jrsteele09/go-legal-client/internal/utils"
	"golang.org/x/crypto/bcrypt"
)

// RoleType is the account role reported by the backend
type RoleType string

const (
	RoleClient RoleType = "client" // Individual or business seeking legal services
	RoleLawyer RoleType = "lawyer" // Marketplace lawyer
	RoleAdmin  RoleType = "admin"
)

// User is the normalized profile the session core caches and hands to the
// presentation layer. Consumers must treat it as read-only.
type User struct {
	ID                string  `json:"id"`
	Email             string  `json:"email"`
	FirstName         string  `json:"first_name"`
	LastName          string  `json:"last_name"`
	ProfilePictureURL *string `json:"profile_picture_url"`
	CityID            *string `json:"city_id"`
}

// FromServer maps the backend's user record onto User. Optional fields the
// login endpoint does not send stay nil.
func FromServer(su *api.ServerUser) *User {
	if su == nil {
		return nil
	}
	return &User{
		ID:                su.ID,
		Email:             su.Email,
		FirstName:         su.FirstName,
		LastName:          su.LastName,
		ProfilePictureURL: utils.ClonePtr(su.ProfilePictureURL),
		CityID:            utils.ClonePtr(su.CityID),
	}
}

// Clone returns a deep copy of u.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	c.ProfilePictureURL = utils.ClonePtr(u.ProfilePictureURL)
	c.CityID = utils.ClonePtr(u.CityID)
	return &c
}

// FullName joins first and last name, skipping blanks.
func (u *User) FullName() string {
	if u == nil {
		return ""
	}
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// Valid reports whether u carries the identity fields a cached record needs.
func (u *User) Valid() bool {
	return u != nil && u.ID != "" && u.Email != ""
}

// Account is the backend-side record the mock server authenticates against.
type Account struct {
	ID                string   `json:"id,omitempty"`
	Email             string   `json:"email,omitempty"`
	PasswordHash      string   `json:"-"` // never serialize
	FirstName         string   `json:"first_name,omitempty"`
	LastName          string   `json:"last_name,omitempty"`
	Role              RoleType `json:"role,omitempty"`
	ProfilePictureURL *string  `json:"profile_picture_url,omitempty"`
	CityID            *string  `json:"city_id,omitempty"`
	Blocked           bool     `json:"blocked,omitempty"`
}

// ServerUser renders the account the way the login endpoint does: no
// profile picture or city.
func (a *Account) ServerUser() *api.ServerUser {
	return &api.ServerUser{
		ID:        a.ID,
		Email:     a.Email,
		FirstName: a.FirstName,
		LastName:  a.LastName,
		Role:      string(a.Role),
	}
}

// ProfileUser renders the full profile, optional fields included.
func (a *Account) ProfileUser() *api.ServerUser {
	su := a.ServerUser()
	su.ProfilePictureURL = utils.ClonePtr(a.ProfilePictureURL)
	su.CityID = utils.ClonePtr(a.CityID)
	return su
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// CheckPassword checks password against the account's hash
func (a *Account) CheckPassword(password string) bool {
	return CheckPasswordHash(password, a.PasswordHash)
}
