package contracts

import (
	"context"

	"github.com/rpsg-tech/clm-sub005/internal/domain/identity"
)

// ContractRepository defines the interface for Contract-related operations
type ContractRepository interface {
	Create(ctx context.Context, contract *Contract) error
	List(ctx context.Context, orgID string, query *ContractQuery) ([]*Contract, error)
	GetByID(ctx context.Context, orgID, contractID string) (*Contract, error)
	// GetByIDWithDeleted also returns soft-deleted contracts
	GetByIDWithDeleted(ctx context.Context, orgID, contractID string) (*Contract, error)
	UpdateByID(ctx context.Context, contract *Contract) error
	// DeleteByID soft deletes a contract; its versions, approvals and audit rows remain.
	DeleteByID(ctx context.Context, orgID, contractID string) error
}

// ContractCache is a read-through cache in front of ContractRepository.GetByID.
// Implementations never fail the caller; misses and errors both report ok=false.
type ContractCache interface {
	Get(ctx context.Context, orgID, contractID string) (*Contract, bool)
	Set(ctx context.Context, contract *Contract)
	Delete(ctx context.Context, orgID, contractID string)
}

// ContractService defines drafting and lifecycle operations on contracts
type ContractService interface {
	// Create drafts a contract and stores its body as version 1.
	Create(ctx context.Context, actor identity.Actor, input *ContractInput) (*Contract, error)
	List(ctx context.Context, actor identity.Actor, query *ContractQuery) ([]*Contract, error)
	GetByID(ctx context.Context, actor identity.Actor, contractID string) (*Contract, error)
	// Update changes an editable contract; a changed snapshot appends a version.
	Update(ctx context.Context, actor identity.Actor, contractID string, update *ContractUpdate) (*Contract, error)
	// Transition applies a manual status change allowed by the lifecycle.
	Transition(ctx context.Context, actor identity.Actor, contractID, status string) (*Contract, error)
	DeleteByID(ctx context.Context, actor identity.Actor, contractID string) error
}
