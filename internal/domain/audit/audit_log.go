package audit

import (
	"time"

	"github.com/google/uuid"
	"github.com/rpsg-tech/clm-sub005/internal/domain/identity"
	"github.com/rpsg-tech/clm-sub005/internal/pkg/validators"
)

// Audited actions
const (
	ActionOrganizationCreate = "organization.create"
	ActionUserCreate         = "user.create"
	ActionUserRole           = "user.role"
	ActionUserDeactivate     = "user.deactivate"
	ActionLogin              = "auth.login"
	ActionTemplateCreate     = "template.create"
	ActionTemplateUpdate     = "template.update"
	ActionTemplateDelete     = "template.delete"
	ActionContractCreate     = "contract.create"
	ActionContractUpdate     = "contract.update"
	ActionContractStatus     = "contract.status"
	ActionContractDelete     = "contract.delete"
	ActionVersionRestore     = "version.restore"
	ActionVersionRepair      = "version.repair"
	ActionApprovalSubmit     = "approval.submit"
	ActionApprovalDecide     = "approval.decide"
)

// Resource types
const (
	ResourceOrganization = "organization"
	ResourceUser         = "user"
	ResourceTemplate     = "template"
	ResourceContract     = "contract"
	ResourceVersion      = "contract_version"
	ResourceApproval     = "approval"
)

// AuditLog entity. Rows are never updated or deleted.
type AuditLog struct {
	ID              string  `validate:"required,uuid4"`
	OrganizationID  string  `validate:"required,uuid4"`
	ActorID         *string `validate:"omitempty,uuid4"`
	Action          string  `validate:"required,max=64"`
	ResourceType    string  `validate:"required,max=64"`
	ResourceID      string  `validate:"required,max=64"`
	Metadata        map[string]interface{}
	IPAddress       string    `validate:"omitempty,ip"`
	DateTimeCreated time.Time `validate:"required"`
}

// Validate for validating AuditLog struct
func (l *AuditLog) Validate() error {
	return validators.ValidateStruct(l)
}

// NewEntry builds an audit row for an action taken by actor. System actors
// are recorded without an actor id.
func NewEntry(actor identity.Actor, action, resourceType, resourceID string, metadata map[string]interface{}) *AuditLog {
	entry := &AuditLog{
		ID:              uuid.NewString(),
		OrganizationID:  actor.OrganizationID,
		Action:          action,
		ResourceType:    resourceType,
		ResourceID:      resourceID,
		Metadata:        metadata,
		IPAddress:       actor.IPAddress,
		DateTimeCreated: time.Now().UTC(),
	}
	if !actor.IsSystem() {
		id := actor.UserID
		entry.ActorID = &id
	}
	if entry.Metadata == nil {
		entry.Metadata = map[string]interface{}{}
	}
	return entry
}

// AuditLogQuery represents filtering and paging parameters for listing audit logs
type AuditLogQuery struct {
	Action       string `validate:"omitempty,max=64"`
	ResourceType string `validate:"omitempty,max=64"`
	ResourceID   string `validate:"omitempty,max=64"`
	ActorID      string `validate:"omitempty,uuid4"`
	From         time.Time
	To           time.Time
	Limit        int    `validate:"omitempty,gt=0,lte=10000"`
	Offset       int    `validate:"omitempty,gte=0"`
	SortOrder    string `validate:"omitempty,oneof=asc desc"`
}

// NewAuditLogQuery creates an AuditLogQuery with default values
func NewAuditLogQuery() *AuditLogQuery {
	return &AuditLogQuery{}
}

// Validate for validating AuditLogQuery struct
func (q *AuditLogQuery) Validate() error {
	if err := validators.ValidateStruct(q); err != nil {
		return err
	}
	if !q.From.IsZero() && !q.To.IsZero() && q.To.Before(q.From) {
		return validationError("to is before from")
	}
	return nil
}
