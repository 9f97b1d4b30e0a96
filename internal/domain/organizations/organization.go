package organizations

import (
	"context"
	"time"

	"github.com/rpsg-tech/clm-sub005/internal/pkg/validators"
)

// Organization is a tenant. Every contract, template, user and audit row belongs to one.
type Organization struct {
	ID              string    `validate:"required,uuid4"`
	Name            string    `validate:"required,min=1,max=255"`
	Slug            string    `validate:"required,slug"`
	DateTimeCreated time.Time `validate:"required"`
}

// Validate for validating Organization struct
func (o *Organization) Validate() error {
	return validators.ValidateStruct(o)
}

// OrganizationRepository defines persistence of organizations
type OrganizationRepository interface {
	Create(ctx context.Context, org *Organization) error
	GetByID(ctx context.Context, orgID string) (*Organization, error)
	GetBySlug(ctx context.Context, slug string) (*Organization, error)
	List(ctx context.Context) ([]*Organization, error)
}

// OrganizationService defines tenant management used by the admin app and clmctl
type OrganizationService interface {
	// Create registers a new tenant. The slug must be unique.
	Create(ctx context.Context, name, slug string) (*Organization, error)
	GetByID(ctx context.Context, orgID string) (*Organization, error)
	GetBySlug(ctx context.Context, slug string) (*Organization, error)
	List(ctx context.Context) ([]*Organization, error)
}
