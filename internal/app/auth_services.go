package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rpsg-tech/clm-sub005/internal/domain/audit"
	"github.com/rpsg-tech/clm-sub005/internal/domain/auth"
	"github.com/rpsg-tech/clm-sub005/internal/domain/clmerr"
	"github.com/rpsg-tech/clm-sub005/internal/domain/identity"
	"github.com/rpsg-tech/clm-sub005/internal/domain/store"
	"github.com/rpsg-tech/clm-sub005/internal/domain/users"
	"github.com/rpsg-tech/clm-sub005/internal/pkg/logger"
)

var errInvalidCredentials = fmt.Errorf("%w: invalid credentials", clmerr.ErrUnauthorized)

// authService implements the AuthService interface
type authService struct {
	uow    store.UnitOfWork
	hasher users.PasswordHasher
	issuer auth.TokenIssuer
	// dummyHash is compared when the user does not exist so that unknown
	// emails take as long as wrong passwords
	dummyHash string
	logger    logger.Logger
}

// NewAuthService creates a new instance of AuthService
func NewAuthService(uow store.UnitOfWork, hasher users.PasswordHasher, issuer auth.TokenIssuer, logger logger.Logger) (auth.AuthService, error) {
	if uow == nil || hasher == nil || issuer == nil {
		return nil, fmt.Errorf("unit of work, password hasher and token issuer are required")
	}
	dummy, err := hasher.Hash("clm-placeholder-password")
	if err != nil {
		return nil, fmt.Errorf("failed to prepare password hasher: %w", err)
	}
	return &authService{
		uow:       uow,
		hasher:    hasher,
		issuer:    issuer,
		dummyHash: dummy,
		logger:    logger,
	}, nil
}

// Login checks the credentials of an active user and issues a session token
func (s *authService) Login(ctx context.Context, creds *auth.Credentials, ipAddress string) (*auth.Session, error) {
	if creds == nil {
		return nil, errInvalidCredentials
	}
	creds.Organization = strings.ToLower(strings.TrimSpace(creds.Organization))
	creds.Email = strings.ToLower(strings.TrimSpace(creds.Email))
	if err := creds.Validate(); err != nil {
		return nil, errInvalidCredentials
	}

	stores := s.uow.Stores()
	user, err := s.lookup(ctx, stores, creds)
	if err != nil {
		if !errors.Is(err, clmerr.ErrNotFound) {
			return nil, fmt.Errorf("failed to look up user: %w", err)
		}
		_ = s.hasher.Compare(s.dummyHash, creds.Password)
		s.logger.Warn("login failed", "org", creds.Organization, "reason", "unknown user", "ip", ipAddress)
		return nil, errInvalidCredentials
	}

	if err := s.hasher.Compare(user.PasswordHash, creds.Password); err != nil {
		s.logger.Warn("login failed", "org", creds.Organization, "user", user.ID, "reason", "password", "ip", ipAddress)
		return nil, errInvalidCredentials
	}
	if !user.Active {
		s.logger.Warn("login failed", "org", creds.Organization, "user", user.ID, "reason", "inactive", "ip", ipAddress)
		return nil, errInvalidCredentials
	}

	token, expiresAt, err := s.issuer.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("failed to issue session: %w", err)
	}

	actor := identity.Actor{UserID: user.ID, OrganizationID: user.OrganizationID, Role: user.Role, IPAddress: ipAddress}
	if err := stores.Audit.Create(ctx, audit.NewEntry(actor, audit.ActionLogin, audit.ResourceUser, user.ID, nil)); err != nil {
		return nil, fmt.Errorf("failed to record login: %w", err)
	}

	s.logger.Info("user logged in", "org", user.OrganizationID, "user", user.ID)
	return &auth.Session{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

func (s *authService) lookup(ctx context.Context, stores store.Stores, creds *auth.Credentials) (*users.User, error) {
	org, err := stores.Organizations.GetBySlug(ctx, creds.Organization)
	if err != nil {
		return nil, err
	}
	return stores.Users.GetByEmail(ctx, org.ID, creds.Email)
}

// Me returns the user behind actor. A user deactivated after login is rejected.
func (s *authService) Me(ctx context.Context, actor identity.Actor) (*users.User, error) {
	if err := requireMember(actor); err != nil {
		return nil, err
	}
	user, err := s.uow.Stores().Users.GetByID(ctx, actor.OrganizationID, actor.UserID)
	if err != nil {
		if errors.Is(err, clmerr.ErrNotFound) {
			return nil, fmt.Errorf("%w: session user no longer exists", clmerr.ErrUnauthorized)
		}
		return nil, err
	}
	if !user.Active {
		return nil, fmt.Errorf("%w: user is deactivated", clmerr.ErrUnauthorized)
	}
	return user, nil
}

// Resolve checks the session actor against the stored user on every request
func (s *authService) Resolve(ctx context.Context, actor identity.Actor) (identity.Actor, error) {
	user, err := s.Me(ctx, actor)
	if err != nil {
		return identity.Actor{}, err
	}
	if user.Role != actor.Role {
		s.logger.Debug("session role differs from stored role", "user", user.ID, "token_role", actor.Role, "role", user.Role)
	}
	actor.Role = user.Role
	return actor, nil
}
