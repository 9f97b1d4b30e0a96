package users

import (
	"context"

	"github.com/rpsg-tech/clm-sub005/internal/domain/identity"
)

// UserRepository defines the interface for User-related operations
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	List(ctx context.Context, orgID string, query *UserQuery) ([]*User, error)
	GetByID(ctx context.Context, orgID, userID string) (*User, error)
	GetByEmail(ctx context.Context, orgID, email string) (*User, error)
	UpdateByID(ctx context.Context, user *User) error
}

// PasswordHasher hashes and checks user passwords
type PasswordHasher interface {
	Hash(password string) (string, error)
	// Compare returns nil when password matches hash
	Compare(hash, password string) error
}

// UserService defines user administration for the admin app
type UserService interface {
	// Create adds a user to the actor's organization.
	Create(ctx context.Context, actor identity.Actor, input *UserInput) (*User, error)
	List(ctx context.Context, actor identity.Actor, query *UserQuery) ([]*User, error)
	GetByID(ctx context.Context, actor identity.Actor, userID string) (*User, error)
	// UpdateRole changes a user's role. Admins cannot demote themselves.
	UpdateRole(ctx context.Context, actor identity.Actor, userID, role string) (*User, error)
	// Deactivate disables login for a user. Admins cannot deactivate themselves.
	Deactivate(ctx context.Context, actor identity.Actor, userID string) error
}
