// Package auth declares session issuing and credential checks.
package auth

import (
	"context"
	"time"

	"github.com/rpsg-tech/clm-sub005/internal/domain/identity"
	"github.com/rpsg-tech/clm-sub005/internal/domain/users"
	"github.com/rpsg-tech/clm-sub005/internal/pkg/validators"
)

// Credentials identify a user inside one organization
type Credentials struct {
	Organization string `validate:"required,slug"`
	Email        string `validate:"required,email,max=320"`
	Password     string `validate:"required,max=72"`
}

// Validate for validating Credentials struct
func (c *Credentials) Validate() error {
	return validators.ValidateStruct(c)
}

// Session is the result of a successful login
type Session struct {
	Token     string
	ExpiresAt time.Time
	User      *users.User
}

// TokenIssuer signs and verifies session tokens
type TokenIssuer interface {
	Issue(user *users.User) (string, time.Time, error)
	// Parse verifies token and returns the actor it was issued for
	Parse(token string) (*identity.Actor, error)
}

// AuthService authenticates users
type AuthService interface {
	// Login checks credentials of an active user and issues a session token.
	// Every failure is reported as clmerr.ErrUnauthorized.
	Login(ctx context.Context, creds *Credentials, ipAddress string) (*Session, error)
	// Me returns the user behind actor.
	Me(ctx context.Context, actor identity.Actor) (*users.User, error)
	// Resolve re-reads the user behind a parsed session token. Deactivated or
	// deleted users fail with clmerr.ErrUnauthorized, and the returned actor
	// carries the role currently stored for the user.
	Resolve(ctx context.Context, actor identity.Actor) (identity.Actor, error)
}
