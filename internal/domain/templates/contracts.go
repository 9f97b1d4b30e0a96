package templates

import (
	"context"

	"github.com/rpsg-tech/clm-sub005/internal/domain/identity"
)

// TemplateRepository defines the interface for Template-related operations
type TemplateRepository interface {
	Create(ctx context.Context, template *Template) error
	List(ctx context.Context, orgID string, query *TemplateQuery) ([]*Template, error)
	GetByID(ctx context.Context, orgID, templateID string) (*Template, error)
	UpdateByID(ctx context.Context, template *Template) error
	DeleteByID(ctx context.Context, orgID, templateID string) error
}

// TemplateService defines template management. Bodies are sanitized on every write.
type TemplateService interface {
	Create(ctx context.Context, actor identity.Actor, input *TemplateInput) (*Template, error)
	List(ctx context.Context, actor identity.Actor, query *TemplateQuery) ([]*Template, error)
	GetByID(ctx context.Context, actor identity.Actor, templateID string) (*Template, error)
	Update(ctx context.Context, actor identity.Actor, templateID string, input *TemplateInput) (*Template, error)
	// DeleteByID removes a template. Contracts created from it are left untouched.
	DeleteByID(ctx context.Context, actor identity.Actor, templateID string) error
}
