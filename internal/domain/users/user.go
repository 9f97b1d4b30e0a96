package users

import (
	"time"

	"github.com/rpsg-tech/clm-sub005/internal/pkg/validators"
)

// User roles
const (
	RoleAdmin    = "admin"
	RoleLegal    = "legal"
	RoleApprover = "approver"
	RoleViewer   = "viewer"
)

// EditorRoles may draft and change contracts and templates.
var EditorRoles = []string{RoleAdmin, RoleLegal}

// ApproverRoles may be assigned to an approval step.
var ApproverRoles = []string{RoleAdmin, RoleLegal, RoleApprover}

// User entity
type User struct {
	ID              string `validate:"required,uuid4"`
	OrganizationID  string `validate:"required,uuid4"`
	Email           string `validate:"required,email,max=320"`
	DisplayName     string `validate:"required,min=1,max=255"`
	Role            string `validate:"required,userRole"`
	PasswordHash    string `validate:"required"`
	Active          bool
	DateTimeCreated time.Time `validate:"required"`
}

// Validate for validating User struct
func (u *User) Validate() error {
	return validators.ValidateStruct(u)
}

// CanApprove reports whether the user may hold an approval step
func (u *User) CanApprove() bool {
	if !u.Active {
		return false
	}
	for _, r := range ApproverRoles {
		if u.Role == r {
			return true
		}
	}
	return false
}

// UserQuery represents filtering and paging parameters for listing users
type UserQuery struct {
	Role      string `validate:"omitempty,userRole"`
	Active    *bool
	Email     string `validate:"omitempty,max=320"`
	Limit     int    `validate:"omitempty,gt=0,lte=500"`
	Offset    int    `validate:"omitempty,gte=0"`
	SortBy    string `validate:"omitempty,oneof=email display_name role date_time_created"`
	SortOrder string `validate:"omitempty,oneof=asc desc"`
}

// NewUserQuery creates a UserQuery with default values
func NewUserQuery() *UserQuery {
	return &UserQuery{}
}

// Validate for validating UserQuery struct
func (q *UserQuery) Validate() error {
	return validators.ValidateStruct(q)
}

// UserInput carries the fields needed to create a user
type UserInput struct {
	Email       string `validate:"required,email,max=320"`
	DisplayName string `validate:"required,min=1,max=255"`
	Role        string `validate:"required,userRole"`
	Password    string `validate:"required,min=12,max=72"`
}

// Validate for validating UserInput struct
func (i *UserInput) Validate() error {
	return validators.ValidateStruct(i)
}
