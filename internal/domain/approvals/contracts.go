package approvals

import (
	"context"

	"github.com/rpsg-tech/clm-sub005/internal/domain/identity"
)

// ApprovalRepository defines the interface for Approval-related operations
type ApprovalRepository interface {
	Create(ctx context.Context, approval *Approval) error
	GetByID(ctx context.Context, orgID, approvalID string) (*Approval, error)
	// ListByContract returns approvals ordered by round then step
	ListByContract(ctx context.Context, orgID, contractID string) ([]*Approval, error)
	ListPendingForApprover(ctx context.Context, orgID, approverID string) ([]*Approval, error)
	UpdateByID(ctx context.Context, approval *Approval) error
}

// ApprovalService defines the sequential approval workflow
type ApprovalService interface {
	// Submit opens a new round for a draft contract and moves it to in_review.
	Submit(ctx context.Context, actor identity.Actor, contractID string, input *SubmitInput) ([]*Approval, error)
	// Decide records the actor's decision on their pending step.
	Decide(ctx context.Context, actor identity.Actor, approvalID string, input *DecisionInput) (*Approval, error)
	ListForContract(ctx context.Context, actor identity.Actor, contractID string) ([]*Approval, error)
	ListPending(ctx context.Context, actor identity.Actor) ([]*Approval, error)
}
