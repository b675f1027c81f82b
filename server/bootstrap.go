package server

import (
	"fmt"

	"github.com/jrsteele09/go-legal-client/internal/utils"
	"github.com/jrsteele09/go-legal-client/users"
)

// Demo account seeded on start
const (
	DemoUserEmail     = "demo@legal.example"
	DemoUserPassword  = "Passw0rd!"
	DemoUserFirstName = "Ada"
	DemoUserLastName  = "Obi"
	DemoUserCityID    = "ct-ikeja"
)

// SeedAccount creates the account if no account uses its email yet and
// returns the stored account.
func (s *Server) SeedAccount(account users.Account, password string) (*users.Account, error) {
	if existing, err := s.repos.Users.GetByEmail(account.Email); err == nil {
		return existing, nil
	}

	hash, err := users.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("[SeedAccount] hash password: %w", err)
	}
	account.PasswordHash = hash
	if account.Role == "" {
		account.Role = users.RoleClient
	}
	if err := s.repos.Users.Upsert(&account); err != nil {
		return nil, fmt.Errorf("[SeedAccount] upsert: %w", err)
	}
	s.logger.Info().Str("email", account.Email).Str("user_id", account.ID).Msg("seeded account")
	return &account, nil
}

// SeedDemoAccount seeds the demo client account.
func (s *Server) SeedDemoAccount() (*users.Account, error) {
	return s.SeedAccount(users.Account{
		Email:     DemoUserEmail,
		FirstName: DemoUserFirstName,
		LastName:  DemoUserLastName,
		CityID:    utils.Ptr(DemoUserCityID),
	}, DemoUserPassword)
}
