package contracts

import (
	"fmt"
	"time"

	"github.com/rpsg-tech/clm-sub005/internal/domain/clmerr"
	"github.com/rpsg-tech/clm-sub005/internal/pkg/validators"
)

// Contract statuses
const (
	StatusDraft      = "draft"
	StatusInReview   = "in_review"
	StatusApproved   = "approved"
	StatusRejected   = "rejected"
	StatusExecuted   = "executed"
	StatusExpired    = "expired"
	StatusTerminated = "terminated"
	StatusArchived   = "archived"
)

// transitions lists the statuses reachable from each status
var transitions = map[string][]string{
	StatusDraft:    {StatusInReview, StatusArchived},
	StatusInReview: {StatusApproved, StatusRejected},
	StatusRejected: {StatusDraft, StatusArchived},
	StatusApproved: {StatusExecuted},
	StatusExecuted: {StatusExpired, StatusTerminated},
}

// workflowStatuses are only entered through the approval workflow
var workflowStatuses = map[string]struct{}{
	StatusInReview: {},
	StatusApproved: {},
	StatusRejected: {},
}

// CanTransition reports whether the lifecycle allows moving from one status to another
func CanTransition(from, to string) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// IsWorkflowStatus reports whether status is set by approvals rather than by hand
func IsWorkflowStatus(status string) bool {
	_, ok := workflowStatuses[status]
	return ok
}

// Contract entity
type Contract struct {
	ID              string  `validate:"required,uuid4"`
	OrganizationID  string  `validate:"required,uuid4"`
	Title           string  `validate:"required,min=1,max=255"`
	Counterparty    string  `validate:"required,min=1,max=255"`
	Status          string  `validate:"required,contractStatus"`
	TemplateID      *string `validate:"omitempty,uuid4"`
	OwnerID         string  `validate:"required,uuid4"`
	CurrentVersion  int     `validate:"required,min=1"`
	Value           int64   `validate:"min=0"`
	Currency        string  `validate:"required,currency"`
	EffectiveDate   *time.Time
	ExpiryDate      *time.Time
	DateTimeCreated time.Time `validate:"required"`
	DateTimeUpdated time.Time `validate:"required"`
}

// Validate for validating Contract struct
func (c *Contract) Validate() error {
	if err := validators.ValidateStruct(c); err != nil {
		return err
	}
	return validateTerm(c.EffectiveDate, c.ExpiryDate)
}

// IsEditable reports whether metadata and body may still change
func (c *Contract) IsEditable() bool {
	return c.Status == StatusDraft || c.Status == StatusRejected
}

func validateTerm(effective, expiry *time.Time) error {
	if effective != nil && expiry != nil && expiry.Before(*effective) {
		return fmt.Errorf("%w: expiry date %s is before effective date %s",
			clmerr.ErrValidation, expiry.Format(time.DateOnly), effective.Format(time.DateOnly))
	}
	return nil
}

// ContractQuery represents filtering and paging parameters for listing contracts
type ContractQuery struct {
	Status       string `validate:"omitempty,contractStatus"`
	Counterparty string `validate:"omitempty,max=255"`
	Title        string `validate:"omitempty,max=255"`
	OwnerID      string `validate:"omitempty,uuid4"`
	CreatedAfter time.Time
	Limit        int    `validate:"omitempty,gt=0,lte=500"`
	Offset       int    `validate:"omitempty,gte=0"`
	SortBy       string `validate:"omitempty,oneof=title status counterparty date_time_created date_time_updated"`
	SortOrder    string `validate:"omitempty,oneof=asc desc"`
}

// NewContractQuery creates a ContractQuery with default values
func NewContractQuery() *ContractQuery {
	return &ContractQuery{}
}

// Validate for validating ContractQuery struct
func (q *ContractQuery) Validate() error {
	return validators.ValidateStruct(q)
}

// ContractInput carries the fields of a new contract. Either Body or
// TemplateID must be set; with a template the body is rendered from Values.
type ContractInput struct {
	Title         string  `validate:"required,min=1,max=255"`
	Counterparty  string  `validate:"required,min=1,max=255"`
	TemplateID    *string `validate:"omitempty,uuid4"`
	Body          string  `validate:"required_without=TemplateID"`
	Values        map[string]string
	Value         int64  `validate:"min=0"`
	Currency      string `validate:"required,currency"`
	EffectiveDate *time.Time
	ExpiryDate    *time.Time
}

// Validate for validating ContractInput struct
func (i *ContractInput) Validate() error {
	if err := validators.ValidateStruct(i); err != nil {
		return err
	}
	return validateTerm(i.EffectiveDate, i.ExpiryDate)
}

// ContractUpdate carries a partial update. Nil fields are left unchanged.
type ContractUpdate struct {
	Title         *string `validate:"omitempty,min=1,max=255"`
	Counterparty  *string `validate:"omitempty,min=1,max=255"`
	Body          *string `validate:"omitempty,min=1"`
	Value         *int64  `validate:"omitempty,min=0"`
	Currency      *string `validate:"omitempty,currency"`
	EffectiveDate *time.Time
	ExpiryDate    *time.Time
	Comment       string `validate:"max=500"`
}

// Validate for validating ContractUpdate struct
func (u *ContractUpdate) Validate() error {
	return validators.ValidateStruct(u)
}

// IsEmpty reports whether the update changes nothing
func (u *ContractUpdate) IsEmpty() bool {
	return u.Title == nil && u.Counterparty == nil && u.Body == nil && u.Value == nil &&
		u.Currency == nil && u.EffectiveDate == nil && u.ExpiryDate == nil
}
