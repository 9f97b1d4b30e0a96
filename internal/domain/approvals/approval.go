package approvals

import (
	"fmt"
	"time"

	"github.com/rpsg-tech/clm-sub005/internal/domain/clmerr"
	"github.com/rpsg-tech/clm-sub005/internal/pkg/validators"
)

// Approval decisions
const (
	DecisionPending  = "pending"
	DecisionApproved = "approved"
	DecisionRejected = "rejected"
)

// SupersededComment is set on pending steps closed by an earlier rejection
const SupersededComment = "superseded"

// Approval entity. Round groups the steps of one submission; a contract
// sent back to draft and resubmitted starts a new round.
type Approval struct {
	ID              string `validate:"required,uuid4"`
	ContractID      string `validate:"required,uuid4"`
	OrganizationID  string `validate:"required,uuid4"`
	ApproverID      string `validate:"required,uuid4"`
	Round           int    `validate:"required,min=1"`
	Step            int    `validate:"required,min=1"`
	Decision        string `validate:"required,oneof=pending approved rejected"`
	Comment         string `validate:"max=1000"`
	DecidedAt       *time.Time
	DateTimeCreated time.Time `validate:"required"`
}

// Validate for validating Approval struct
func (a *Approval) Validate() error {
	return validators.ValidateStruct(a)
}

// IsPending reports whether the step still awaits a decision
func (a *Approval) IsPending() bool {
	return a.Decision == DecisionPending
}

// DecisionInput carries an approver's decision
type DecisionInput struct {
	Decision string `validate:"required,oneof=approved rejected"`
	Comment  string `validate:"max=1000"`
}

// Validate for validating DecisionInput struct
func (d *DecisionInput) Validate() error {
	return validators.ValidateStruct(d)
}

// SubmitInput lists the approvers of a new round in step order
type SubmitInput struct {
	ApproverIDs []string `validate:"required,min=1,max=20,unique,dive,uuid4"`
}

// Validate for validating SubmitInput struct
func (s *SubmitInput) Validate() error {
	return validators.ValidateStruct(s)
}

// CheckTurn verifies that every lower step of target's round is approved.
// round holds all approvals of the same round, in any order.
func CheckTurn(round []*Approval, target *Approval) error {
	for _, a := range round {
		if a.Round != target.Round || a.Step >= target.Step {
			continue
		}
		if a.Decision != DecisionApproved {
			return fmt.Errorf("%w: step %d must be approved before step %d", clmerr.ErrConflict, a.Step, target.Step)
		}
	}
	return nil
}

// IsLastStep reports whether target has the highest step of its round
func IsLastStep(round []*Approval, target *Approval) bool {
	for _, a := range round {
		if a.Round == target.Round && a.Step > target.Step {
			return false
		}
	}
	return true
}

// LatestRound returns the highest round number, or 0 when there are none
func LatestRound(all []*Approval) int {
	latest := 0
	for _, a := range all {
		if a.Round > latest {
			latest = a.Round
		}
	}
	return latest
}
