package v1

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/rpsg-tech/clm-sub005/internal/domain/approvals"
	"github.com/rpsg-tech/clm-sub005/internal/domain/audit"
	"github.com/rpsg-tech/clm-sub005/internal/domain/contracts"
	"github.com/rpsg-tech/clm-sub005/internal/domain/templates"
	"github.com/rpsg-tech/clm-sub005/internal/domain/users"
	"github.com/rpsg-tech/clm-sub005/internal/domain/versions"
	"github.com/rpsg-tech/clm-sub005/internal/pkg/validators"
)

// dateLayout is the wire format of contract dates
const dateLayout = time.DateOnly

// LoginRequest is the body of POST /auth/login
type LoginRequest struct {
	Organization string `json:"organization" validate:"required"`
	Email        string `json:"email" validate:"required"`
	Password     string `json:"password" validate:"required"`
}

// Validate for validating LoginRequest struct
func (r *LoginRequest) Validate() error {
	return validators.ValidateStruct(r)
}

// CSRFResponse carries the token to echo in the X-CSRF-Token header
type CSRFResponse struct {
	Token string `json:"csrf_token"`
}

// SessionResponse is returned by a successful login
type SessionResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      UserResponse `json:"user"`
}

// UserResponse represents a user without credentials
type UserResponse struct {
	ID              string    `json:"id"`
	OrganizationID  string    `json:"organization_id"`
	Email           string    `json:"email"`
	DisplayName     string    `json:"display_name"`
	Role            string    `json:"role"`
	Active          bool      `json:"active"`
	DateTimeCreated time.Time `json:"date_time_created"`
}

func newUserResponse(u *users.User) UserResponse {
	return UserResponse{
		ID:              u.ID,
		OrganizationID:  u.OrganizationID,
		Email:           u.Email,
		DisplayName:     u.DisplayName,
		Role:            u.Role,
		Active:          u.Active,
		DateTimeCreated: u.DateTimeCreated,
	}
}

// CreateUserRequest is the body of POST /users
type CreateUserRequest struct {
	Email       string `json:"email" validate:"required,email,max=320"`
	DisplayName string `json:"display_name" validate:"required,min=1,max=255"`
	Role        string `json:"role" validate:"required,userRole"`
	Password    string `json:"password" validate:"required,min=12,max=72"`
}

// Validate for validating CreateUserRequest struct
func (r *CreateUserRequest) Validate() error {
	return validators.ValidateStruct(r)
}

// UpdateRoleRequest is the body of PUT /users/:id/role
type UpdateRoleRequest struct {
	Role string `json:"role" validate:"required,userRole"`
}

// Validate for validating UpdateRoleRequest struct
func (r *UpdateRoleRequest) Validate() error {
	return validators.ValidateStruct(r)
}

// TemplateRequest is the body of template writes. Active defaults to true.
type TemplateRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=255"`
	Category string `json:"category" validate:"max=100"`
	Body     string `json:"body" validate:"required"`
	Active   *bool  `json:"active"`
}

// Validate for validating TemplateRequest struct
func (r *TemplateRequest) Validate() error {
	return validators.ValidateStruct(r)
}

func (r *TemplateRequest) toInput() *templates.TemplateInput {
	active := true
	if r.Active != nil {
		active = *r.Active
	}
	return &templates.TemplateInput{Name: r.Name, Category: r.Category, Body: r.Body, Active: active}
}

// TemplateResponse represents a template
type TemplateResponse struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Category        string    `json:"category"`
	Body            string    `json:"body"`
	Variables       []string  `json:"variables"`
	Active          bool      `json:"active"`
	CreatedBy       string    `json:"created_by"`
	DateTimeCreated time.Time `json:"date_time_created"`
	DateTimeUpdated time.Time `json:"date_time_updated"`
}

func newTemplateResponse(t *templates.Template) TemplateResponse {
	vars := t.Variables
	if vars == nil {
		vars = []string{}
	}
	return TemplateResponse{
		ID:              t.ID,
		Name:            t.Name,
		Category:        t.Category,
		Body:            t.Body,
		Variables:       vars,
		Active:          t.Active,
		CreatedBy:       t.CreatedBy,
		DateTimeCreated: t.DateTimeCreated,
		DateTimeUpdated: t.DateTimeUpdated,
	}
}

// CreateContractRequest is the body of POST /contracts. Either body or
// template_id is required.
type CreateContractRequest struct {
	Title         string            `json:"title" validate:"required,min=1,max=255"`
	Counterparty  string            `json:"counterparty" validate:"required,min=1,max=255"`
	TemplateID    *string           `json:"template_id" validate:"omitempty,uuid4"`
	Body          string            `json:"body" validate:"required_without=TemplateID"`
	Values        map[string]string `json:"values"`
	Value         int64             `json:"value" validate:"min=0"`
	Currency      string            `json:"currency" validate:"required,currency"`
	EffectiveDate *string           `json:"effective_date" validate:"omitempty,datetime=2006-01-02"`
	ExpiryDate    *string           `json:"expiry_date" validate:"omitempty,datetime=2006-01-02"`
}

// Validate for validating CreateContractRequest struct
func (r *CreateContractRequest) Validate() error {
	return validators.ValidateStruct(r)
}

func (r *CreateContractRequest) toInput() (*contracts.ContractInput, error) {
	effective, err := parseDate(r.EffectiveDate)
	if err != nil {
		return nil, err
	}
	expiry, err := parseDate(r.ExpiryDate)
	if err != nil {
		return nil, err
	}
	return &contracts.ContractInput{
		Title:         r.Title,
		Counterparty:  r.Counterparty,
		TemplateID:    r.TemplateID,
		Body:          r.Body,
		Values:        r.Values,
		Value:         r.Value,
		Currency:      r.Currency,
		EffectiveDate: effective,
		ExpiryDate:    expiry,
	}, nil
}

// UpdateContractRequest is the body of PUT /contracts/:id. Omitted fields are unchanged.
type UpdateContractRequest struct {
	Title         *string `json:"title" validate:"omitempty,min=1,max=255"`
	Counterparty  *string `json:"counterparty" validate:"omitempty,min=1,max=255"`
	Body          *string `json:"body" validate:"omitempty,min=1"`
	Value         *int64  `json:"value" validate:"omitempty,min=0"`
	Currency      *string `json:"currency" validate:"omitempty,currency"`
	EffectiveDate *string `json:"effective_date" validate:"omitempty,datetime=2006-01-02"`
	ExpiryDate    *string `json:"expiry_date" validate:"omitempty,datetime=2006-01-02"`
	Comment       string  `json:"comment" validate:"max=500"`
}

// Validate for validating UpdateContractRequest struct
func (r *UpdateContractRequest) Validate() error {
	return validators.ValidateStruct(r)
}

func (r *UpdateContractRequest) toUpdate() (*contracts.ContractUpdate, error) {
	effective, err := parseDate(r.EffectiveDate)
	if err != nil {
		return nil, err
	}
	expiry, err := parseDate(r.ExpiryDate)
	if err != nil {
		return nil, err
	}
	return &contracts.ContractUpdate{
		Title:         r.Title,
		Counterparty:  r.Counterparty,
		Body:          r.Body,
		Value:         r.Value,
		Currency:      r.Currency,
		EffectiveDate: effective,
		ExpiryDate:    expiry,
		Comment:       r.Comment,
	}, nil
}

// TransitionRequest is the body of POST /contracts/:id/status
type TransitionRequest struct {
	Status string `json:"status" validate:"required,contractStatus"`
}

// Validate for validating TransitionRequest struct
func (r *TransitionRequest) Validate() error {
	return validators.ValidateStruct(r)
}

// ContractResponse represents a contract
type ContractResponse struct {
	ID              string    `json:"id"`
	OrganizationID  string    `json:"organization_id"`
	Title           string    `json:"title"`
	Counterparty    string    `json:"counterparty"`
	Status          string    `json:"status"`
	TemplateID      *string   `json:"template_id"`
	OwnerID         string    `json:"owner_id"`
	CurrentVersion  int       `json:"current_version"`
	Value           int64     `json:"value"`
	Currency        string    `json:"currency"`
	EffectiveDate   *string   `json:"effective_date"`
	ExpiryDate      *string   `json:"expiry_date"`
	DateTimeCreated time.Time `json:"date_time_created"`
	DateTimeUpdated time.Time `json:"date_time_updated"`
}

func newContractResponse(c *contracts.Contract) ContractResponse {
	return ContractResponse{
		ID:              c.ID,
		OrganizationID:  c.OrganizationID,
		Title:           c.Title,
		Counterparty:    c.Counterparty,
		Status:          c.Status,
		TemplateID:      c.TemplateID,
		OwnerID:         c.OwnerID,
		CurrentVersion:  c.CurrentVersion,
		Value:           c.Value,
		Currency:        c.Currency,
		EffectiveDate:   formatDate(c.EffectiveDate),
		ExpiryDate:      formatDate(c.ExpiryDate),
		DateTimeCreated: c.DateTimeCreated,
		DateTimeUpdated: c.DateTimeUpdated,
	}
}

// VersionResponse represents one contract version. A snapshot that is not
// valid JSON is returned as a string.
type VersionResponse struct {
	ID              string          `json:"id"`
	ContractID      string          `json:"contract_id"`
	Number          int             `json:"number"`
	Snapshot        json.RawMessage `json:"snapshot"`
	ContentHash     string          `json:"content_hash"`
	AuthorID        string          `json:"author_id"`
	Comment         string          `json:"comment"`
	DateTimeCreated time.Time       `json:"date_time_created"`
}

func newVersionResponse(v *versions.ContractVersion) VersionResponse {
	snapshot := json.RawMessage(v.Snapshot)
	if !json.Valid(snapshot) {
		quoted, _ := json.Marshal(string(v.Snapshot))
		snapshot = quoted
	}
	return VersionResponse{
		ID:              v.ID,
		ContractID:      v.ContractID,
		Number:          v.Number,
		Snapshot:        snapshot,
		ContentHash:     v.ContentHash,
		AuthorID:        v.AuthorID,
		Comment:         v.Comment,
		DateTimeCreated: v.DateTimeCreated,
	}
}

// DiffResponse lists the fields that differ between two versions
type DiffResponse struct {
	From    int                    `json:"from"`
	To      int                    `json:"to"`
	Changes []versions.FieldChange `json:"changes"`
}

// SubmitApprovalRequest is the body of POST /contracts/:id/approvals
type SubmitApprovalRequest struct {
	ApproverIDs []string `json:"approver_ids" validate:"required,min=1,max=20,unique,dive,uuid4"`
}

// Validate for validating SubmitApprovalRequest struct
func (r *SubmitApprovalRequest) Validate() error {
	return validators.ValidateStruct(r)
}

// DecisionRequest is the body of POST /approvals/:id/decision
type DecisionRequest struct {
	Decision string `json:"decision" validate:"required,oneof=approved rejected"`
	Comment  string `json:"comment" validate:"max=1000"`
}

// Validate for validating DecisionRequest struct
func (r *DecisionRequest) Validate() error {
	return validators.ValidateStruct(r)
}

// ApprovalResponse represents one approval step
type ApprovalResponse struct {
	ID              string     `json:"id"`
	ContractID      string     `json:"contract_id"`
	ApproverID      string     `json:"approver_id"`
	Round           int        `json:"round"`
	Step            int        `json:"step"`
	Decision        string     `json:"decision"`
	Comment         string     `json:"comment"`
	DecidedAt       *time.Time `json:"decided_at"`
	DateTimeCreated time.Time  `json:"date_time_created"`
}

func newApprovalResponse(a *approvals.Approval) ApprovalResponse {
	return ApprovalResponse{
		ID:              a.ID,
		ContractID:      a.ContractID,
		ApproverID:      a.ApproverID,
		Round:           a.Round,
		Step:            a.Step,
		Decision:        a.Decision,
		Comment:         a.Comment,
		DecidedAt:       a.DecidedAt,
		DateTimeCreated: a.DateTimeCreated,
	}
}

func newApprovalResponses(list []*approvals.Approval) []ApprovalResponse {
	out := make([]ApprovalResponse, len(list))
	for i, a := range list {
		out[i] = newApprovalResponse(a)
	}
	return out
}

// AuditLogResponse represents one audit row
type AuditLogResponse struct {
	ID              string                 `json:"id"`
	ActorID         *string                `json:"actor_id"`
	Action          string                 `json:"action"`
	ResourceType    string                 `json:"resource_type"`
	ResourceID      string                 `json:"resource_id"`
	Metadata        map[string]interface{} `json:"metadata"`
	IPAddress       string                 `json:"ip_address"`
	DateTimeCreated time.Time              `json:"date_time_created"`
}

func newAuditLogResponse(l *audit.AuditLog) AuditLogResponse {
	return AuditLogResponse{
		ID:              l.ID,
		ActorID:         l.ActorID,
		Action:          l.Action,
		ResourceType:    l.ResourceType,
		ResourceID:      l.ResourceID,
		Metadata:        l.Metadata,
		IPAddress:       l.IPAddress,
		DateTimeCreated: l.DateTimeCreated,
	}
}

func parseDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, *s)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", *s, err)
	}
	return &t, nil
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(dateLayout)
	return &s
}
