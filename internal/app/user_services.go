package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rpsg-tech/clm-sub005/internal/domain/audit"
	"github.com/rpsg-tech/clm-sub005/internal/domain/clmerr"
	"github.com/rpsg-tech/clm-sub005/internal/domain/identity"
	"github.com/rpsg-tech/clm-sub005/internal/domain/store"
	"github.com/rpsg-tech/clm-sub005/internal/domain/users"
	"github.com/rpsg-tech/clm-sub005/internal/pkg/logger"
)

// userService implements the UserService interface. Every operation is admin only.
type userService struct {
	uow    store.UnitOfWork
	hasher users.PasswordHasher
	logger logger.Logger
}

// NewUserService creates a new instance of UserService
func NewUserService(uow store.UnitOfWork, hasher users.PasswordHasher, logger logger.Logger) (users.UserService, error) {
	if uow == nil || hasher == nil {
		return nil, fmt.Errorf("unit of work and password hasher are required")
	}
	return &userService{
		uow:    uow,
		hasher: hasher,
		logger: logger,
	}, nil
}

// Create adds an active user to the actor's organization. The password is only kept as a bcrypt hash.
func (s *userService) Create(ctx context.Context, actor identity.Actor, input *users.UserInput) (*users.User, error) {
	if err := requireRole(actor, users.RoleAdmin); err != nil {
		return nil, err
	}
	if err := input.Validate(); err != nil {
		return nil, fmt.Errorf("invalid user: %w", err)
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &users.User{
		ID:              uuid.NewString(),
		OrganizationID:  actor.OrganizationID,
		Email:           strings.ToLower(strings.TrimSpace(input.Email)),
		DisplayName:     strings.TrimSpace(input.DisplayName),
		Role:            input.Role,
		PasswordHash:    hash,
		Active:          true,
		DateTimeCreated: time.Now().UTC(),
	}

	err = s.uow.WithinTx(ctx, func(tx store.Stores) error {
		if err := tx.Users.Create(ctx, user); err != nil {
			return err
		}
		return tx.Audit.Create(ctx, audit.NewEntry(actor, audit.ActionUserCreate, audit.ResourceUser, user.ID,
			map[string]interface{}{"email": user.Email, "role": user.Role}))
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("user created", "org", user.OrganizationID, "user", user.ID, "role", user.Role)
	return user, nil
}

func (s *userService) List(ctx context.Context, actor identity.Actor, query *users.UserQuery) ([]*users.User, error) {
	if err := requireRole(actor, users.RoleAdmin); err != nil {
		return nil, err
	}
	if query == nil {
		query = users.NewUserQuery()
	}
	return s.uow.Stores().Users.List(ctx, actor.OrganizationID, query)
}

func (s *userService) GetByID(ctx context.Context, actor identity.Actor, userID string) (*users.User, error) {
	if err := requireRole(actor, users.RoleAdmin); err != nil {
		return nil, err
	}
	return s.uow.Stores().Users.GetByID(ctx, actor.OrganizationID, userID)
}

// UpdateRole changes a user's role. An admin cannot demote their own account.
func (s *userService) UpdateRole(ctx context.Context, actor identity.Actor, userID, role string) (*users.User, error) {
	if err := requireRole(actor, users.RoleAdmin); err != nil {
		return nil, err
	}
	if userID == actor.UserID && role != users.RoleAdmin {
		return nil, fmt.Errorf("%w: administrators cannot demote themselves", clmerr.ErrConflict)
	}

	var updated *users.User
	err := s.uow.WithinTx(ctx, func(tx store.Stores) error {
		user, err := tx.Users.GetByID(ctx, actor.OrganizationID, userID)
		if err != nil {
			return err
		}
		previous := user.Role
		user.Role = role
		if err := tx.Users.UpdateByID(ctx, user); err != nil {
			return err
		}
		updated = user
		return tx.Audit.Create(ctx, audit.NewEntry(actor, audit.ActionUserRole, audit.ResourceUser, user.ID,
			map[string]interface{}{"from": previous, "to": role}))
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update role: %w", err)
	}

	s.logger.Info("user role changed", "org", actor.OrganizationID, "user", userID, "role", role)
	return updated, nil
}

// Deactivate disables login for a user. An admin cannot deactivate their own account.
func (s *userService) Deactivate(ctx context.Context, actor identity.Actor, userID string) error {
	if err := requireRole(actor, users.RoleAdmin); err != nil {
		return err
	}
	if userID == actor.UserID {
		return fmt.Errorf("%w: administrators cannot deactivate themselves", clmerr.ErrConflict)
	}

	err := s.uow.WithinTx(ctx, func(tx store.Stores) error {
		user, err := tx.Users.GetByID(ctx, actor.OrganizationID, userID)
		if err != nil {
			return err
		}
		if !user.Active {
			return nil
		}
		user.Active = false
		if err := tx.Users.UpdateByID(ctx, user); err != nil {
			return err
		}
		return tx.Audit.Create(ctx, audit.NewEntry(actor, audit.ActionUserDeactivate, audit.ResourceUser, user.ID, nil))
	})
	if err != nil {
		return fmt.Errorf("failed to deactivate user: %w", err)
	}

	s.logger.Info("user deactivated", "org", actor.OrganizationID, "user", userID)
	return nil
}
