package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rpsg-tech/clm-sub005/internal/domain/approvals"
	"github.com/rpsg-tech/clm-sub005/internal/domain/audit"
	"github.com/rpsg-tech/clm-sub005/internal/domain/clmerr"
	"github.com/rpsg-tech/clm-sub005/internal/domain/contracts"
	"github.com/rpsg-tech/clm-sub005/internal/domain/identity"
	"github.com/rpsg-tech/clm-sub005/internal/domain/store"
	"github.com/rpsg-tech/clm-sub005/internal/domain/users"
	"github.com/rpsg-tech/clm-sub005/internal/pkg/logger"
)

// approvalService implements the ApprovalService interface
type approvalService struct {
	uow    store.UnitOfWork
	cache  contracts.ContractCache
	logger logger.Logger
}

// NewApprovalService creates a new instance of ApprovalService
func NewApprovalService(uow store.UnitOfWork, cache contracts.ContractCache, logger logger.Logger) (approvals.ApprovalService, error) {
	if uow == nil || cache == nil {
		return nil, fmt.Errorf("unit of work and cache are required")
	}
	return &approvalService{
		uow:    uow,
		cache:  cache,
		logger: logger,
	}, nil
}

// Submit opens a new approval round for a draft contract. Steps follow the
// order of input.ApproverIDs and the contract moves to in_review.
func (s *approvalService) Submit(ctx context.Context, actor identity.Actor, contractID string, input *approvals.SubmitInput) ([]*approvals.Approval, error) {
	if err := requireRole(actor, users.EditorRoles...); err != nil {
		return nil, err
	}
	if err := input.Validate(); err != nil {
		return nil, fmt.Errorf("invalid submission: %w", err)
	}

	var created []*approvals.Approval
	err := s.uow.WithinTx(ctx, func(tx store.Stores) error {
		contract, err := tx.Contracts.GetByID(ctx, actor.OrganizationID, contractID)
		if err != nil {
			return err
		}
		if contract.Status != contracts.StatusDraft {
			return fmt.Errorf("%w: only draft contracts can be submitted, status is %s", clmerr.ErrInvalidTransition, contract.Status)
		}

		for _, approverID := range input.ApproverIDs {
			approver, err := tx.Users.GetByID(ctx, actor.OrganizationID, approverID)
			if errors.Is(err, clmerr.ErrNotFound) {
				return fmt.Errorf("%w: approver %s is not a member of this organization", clmerr.ErrValidation, approverID)
			}
			if err != nil {
				return err
			}
			if !approver.CanApprove() {
				return fmt.Errorf("%w: user %s is inactive or cannot approve", clmerr.ErrValidation, approverID)
			}
		}

		existing, err := tx.Approvals.ListByContract(ctx, actor.OrganizationID, contractID)
		if err != nil {
			return err
		}
		round := approvals.LatestRound(existing) + 1
		now := time.Now().UTC()
		for i, approverID := range input.ApproverIDs {
			approval := &approvals.Approval{
				ID:              uuid.NewString(),
				ContractID:      contractID,
				OrganizationID:  actor.OrganizationID,
				ApproverID:      approverID,
				Round:           round,
				Step:            i + 1,
				Decision:        approvals.DecisionPending,
				DateTimeCreated: now,
			}
			if err := tx.Approvals.Create(ctx, approval); err != nil {
				return err
			}
			created = append(created, approval)
		}

		if err := setStatus(contract, contracts.StatusInReview); err != nil {
			return err
		}
		if err := tx.Contracts.UpdateByID(ctx, contract); err != nil {
			return err
		}
		return tx.Audit.Create(ctx, audit.NewEntry(actor, audit.ActionApprovalSubmit, audit.ResourceContract, contractID,
			map[string]interface{}{"round": round, "approvers": input.ApproverIDs}))
	})
	if err != nil {
		return nil, fmt.Errorf("failed to submit contract for approval: %w", err)
	}

	s.cache.Delete(ctx, actor.OrganizationID, contractID)
	s.logger.Info("contract submitted for approval", "org", actor.OrganizationID, "contract", contractID, "steps", len(created))
	return created, nil
}

// Decide records the actor's decision on their step. A rejection closes the
// round and rejects the contract; approving the last step approves it.
func (s *approvalService) Decide(ctx context.Context, actor identity.Actor, approvalID string, input *approvals.DecisionInput) (*approvals.Approval, error) {
	if err := requireRole(actor, users.ApproverRoles...); err != nil {
		return nil, err
	}
	if err := input.Validate(); err != nil {
		return nil, fmt.Errorf("invalid decision: %w", err)
	}

	var decided *approvals.Approval
	var contractID, contractStatus string
	err := s.uow.WithinTx(ctx, func(tx store.Stores) error {
		approval, err := tx.Approvals.GetByID(ctx, actor.OrganizationID, approvalID)
		if err != nil {
			return err
		}
		if approval.ApproverID != actor.UserID {
			return fmt.Errorf("%w: approval is assigned to another user", clmerr.ErrForbidden)
		}
		if !approval.IsPending() {
			return fmt.Errorf("%w: approval was already decided", clmerr.ErrConflict)
		}

		contract, err := tx.Contracts.GetByID(ctx, actor.OrganizationID, approval.ContractID)
		if err != nil {
			return err
		}
		if contract.Status != contracts.StatusInReview {
			return fmt.Errorf("%w: contract is %s, not in review", clmerr.ErrConflict, contract.Status)
		}

		all, err := tx.Approvals.ListByContract(ctx, actor.OrganizationID, approval.ContractID)
		if err != nil {
			return err
		}
		if approval.Round != approvals.LatestRound(all) {
			return fmt.Errorf("%w: approval belongs to a closed round", clmerr.ErrConflict)
		}
		if err := approvals.CheckTurn(all, approval); err != nil {
			return err
		}

		now := time.Now().UTC()
		approval.Decision = input.Decision
		approval.Comment = input.Comment
		approval.DecidedAt = &now
		if err := tx.Approvals.UpdateByID(ctx, approval); err != nil {
			return err
		}

		previous := contract.Status
		switch {
		case input.Decision == approvals.DecisionRejected:
			if err := supersede(ctx, tx, all, approval, now); err != nil {
				return err
			}
			if err := setStatus(contract, contracts.StatusRejected); err != nil {
				return err
			}
		case approvals.IsLastStep(all, approval):
			if err := setStatus(contract, contracts.StatusApproved); err != nil {
				return err
			}
		}
		if contract.Status != previous {
			if err := tx.Contracts.UpdateByID(ctx, contract); err != nil {
				return err
			}
		}

		decided = approval
		contractID, contractStatus = contract.ID, contract.Status
		return tx.Audit.Create(ctx, audit.NewEntry(actor, audit.ActionApprovalDecide, audit.ResourceApproval, approval.ID,
			map[string]interface{}{
				"contract_id":     contract.ID,
				"round":           approval.Round,
				"step":            approval.Step,
				"decision":        approval.Decision,
				"contract_status": contract.Status,
			}))
	})
	if err != nil {
		return nil, fmt.Errorf("failed to record decision: %w", err)
	}

	s.cache.Delete(ctx, actor.OrganizationID, contractID)
	s.logger.Info("approval decided", "org", actor.OrganizationID, "approval", approvalID,
		"decision", decided.Decision, "contract_status", contractStatus)
	return decided, nil
}

// supersede closes the other pending steps of decided's round
func supersede(ctx context.Context, tx store.Stores, all []*approvals.Approval, decided *approvals.Approval, now time.Time) error {
	for _, a := range all {
		if a.ID == decided.ID || a.Round != decided.Round || !a.IsPending() {
			continue
		}
		a.Decision = approvals.DecisionRejected
		a.Comment = approvals.SupersededComment
		a.DecidedAt = &now
		if err := tx.Approvals.UpdateByID(ctx, a); err != nil {
			return err
		}
	}
	return nil
}

func (s *approvalService) ListForContract(ctx context.Context, actor identity.Actor, contractID string) ([]*approvals.Approval, error) {
	if err := requireMember(actor); err != nil {
		return nil, err
	}
	stores := s.uow.Stores()
	if _, err := stores.Contracts.GetByID(ctx, actor.OrganizationID, contractID); err != nil {
		return nil, err
	}
	return stores.Approvals.ListByContract(ctx, actor.OrganizationID, contractID)
}

// ListPending returns the actor's undecided steps, including ones whose turn has not come yet
func (s *approvalService) ListPending(ctx context.Context, actor identity.Actor) ([]*approvals.Approval, error) {
	if err := requireMember(actor); err != nil {
		return nil, err
	}
	return s.uow.Stores().Approvals.ListPendingForApprover(ctx, actor.OrganizationID, actor.UserID)
}
