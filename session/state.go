package session

import (
	"github.com/jrsteele09/go-legal-client/auth"
	"github.com/jrsteele09/go-legal-client/token"
	"github.com/jrsteele09/go-legal-client/users"
)

// Phase is the controller's position in the session lifecycle.
type Phase int

const (
	PhaseUnknown Phase = iota // before bootstrap completes
	PhaseUnauthenticated
	PhaseAuthenticated
)

func (p Phase) String() string {
	switch p {
	case PhaseUnauthenticated:
		return "unauthenticated"
	case PhaseAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// Snapshot is the session state handed to consumers. User is a private copy.
type Snapshot struct {
	Phase           Phase
	IsAuthenticated bool
	User            *users.User
}

func authenticated(user *users.User) Snapshot {
	return Snapshot{Phase: PhaseAuthenticated, IsAuthenticated: true, User: user}
}

func unauthenticated() Snapshot {
	return Snapshot{Phase: PhaseUnauthenticated}
}

func (s Snapshot) clone() Snapshot {
	s.User = s.User.Clone()
	return s
}

// LoginPayload is what Login persists and publishes.
type LoginPayload struct {
	Tokens token.TokenPair
	User   *users.User
}

// PayloadFromSignIn converts an Auth Service result into a LoginPayload.
func PayloadFromSignIn(res *auth.SignInResult) LoginPayload {
	return LoginPayload{Tokens: res.Tokens, User: res.User}
}
