package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rpsg-tech/clm-sub005/internal/domain/audit"
	"github.com/rpsg-tech/clm-sub005/internal/domain/identity"
	"github.com/rpsg-tech/clm-sub005/internal/domain/markup"
	"github.com/rpsg-tech/clm-sub005/internal/domain/store"
	"github.com/rpsg-tech/clm-sub005/internal/domain/templates"
	"github.com/rpsg-tech/clm-sub005/internal/domain/users"
	"github.com/rpsg-tech/clm-sub005/internal/pkg/logger"
)

// templateService implements the TemplateService interface
type templateService struct {
	uow       store.UnitOfWork
	sanitizer markup.Sanitizer
	logger    logger.Logger
}

// NewTemplateService creates a new instance of TemplateService
func NewTemplateService(uow store.UnitOfWork, sanitizer markup.Sanitizer, logger logger.Logger) (templates.TemplateService, error) {
	if uow == nil || sanitizer == nil {
		return nil, fmt.Errorf("unit of work and sanitizer are required")
	}
	return &templateService{
		uow:       uow,
		sanitizer: sanitizer,
		logger:    logger,
	}, nil
}

// Create stores a sanitized template and records its placeholder names
func (s *templateService) Create(ctx context.Context, actor identity.Actor, input *templates.TemplateInput) (*templates.Template, error) {
	if err := requireRole(actor, users.EditorRoles...); err != nil {
		return nil, err
	}
	if err := input.Validate(); err != nil {
		return nil, fmt.Errorf("invalid template: %w", err)
	}

	now := time.Now().UTC()
	template := &templates.Template{
		ID:              uuid.NewString(),
		OrganizationID:  actor.OrganizationID,
		CreatedBy:       actor.UserID,
		DateTimeCreated: now,
	}
	s.apply(template, input, now)

	err := s.uow.WithinTx(ctx, func(tx store.Stores) error {
		if err := tx.Templates.Create(ctx, template); err != nil {
			return err
		}
		return tx.Audit.Create(ctx, audit.NewEntry(actor, audit.ActionTemplateCreate, audit.ResourceTemplate, template.ID,
			map[string]interface{}{"name": template.Name, "variables": template.Variables}))
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create template: %w", err)
	}

	s.logger.Info("template created", "org", actor.OrganizationID, "template", template.ID)
	return template, nil
}

func (s *templateService) List(ctx context.Context, actor identity.Actor, query *templates.TemplateQuery) ([]*templates.Template, error) {
	if err := requireMember(actor); err != nil {
		return nil, err
	}
	if query == nil {
		query = templates.NewTemplateQuery()
	}
	return s.uow.Stores().Templates.List(ctx, actor.OrganizationID, query)
}

func (s *templateService) GetByID(ctx context.Context, actor identity.Actor, templateID string) (*templates.Template, error) {
	if err := requireMember(actor); err != nil {
		return nil, err
	}
	return s.uow.Stores().Templates.GetByID(ctx, actor.OrganizationID, templateID)
}

// Update replaces the writable fields of a template
func (s *templateService) Update(ctx context.Context, actor identity.Actor, templateID string, input *templates.TemplateInput) (*templates.Template, error) {
	if err := requireRole(actor, users.EditorRoles...); err != nil {
		return nil, err
	}
	if err := input.Validate(); err != nil {
		return nil, fmt.Errorf("invalid template: %w", err)
	}

	var updated *templates.Template
	err := s.uow.WithinTx(ctx, func(tx store.Stores) error {
		template, err := tx.Templates.GetByID(ctx, actor.OrganizationID, templateID)
		if err != nil {
			return err
		}
		s.apply(template, input, time.Now().UTC())
		if err := tx.Templates.UpdateByID(ctx, template); err != nil {
			return err
		}
		updated = template
		return tx.Audit.Create(ctx, audit.NewEntry(actor, audit.ActionTemplateUpdate, audit.ResourceTemplate, template.ID,
			map[string]interface{}{"name": template.Name, "active": template.Active}))
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update template: %w", err)
	}

	s.logger.Info("template updated", "org", actor.OrganizationID, "template", templateID)
	return updated, nil
}

// DeleteByID removes a template. Contracts keep their dangling TemplateID.
func (s *templateService) DeleteByID(ctx context.Context, actor identity.Actor, templateID string) error {
	if err := requireRole(actor, users.EditorRoles...); err != nil {
		return err
	}

	err := s.uow.WithinTx(ctx, func(tx store.Stores) error {
		template, err := tx.Templates.GetByID(ctx, actor.OrganizationID, templateID)
		if err != nil {
			return err
		}
		if err := tx.Templates.DeleteByID(ctx, actor.OrganizationID, templateID); err != nil {
			return err
		}
		return tx.Audit.Create(ctx, audit.NewEntry(actor, audit.ActionTemplateDelete, audit.ResourceTemplate, templateID,
			map[string]interface{}{"name": template.Name}))
	})
	if err != nil {
		return fmt.Errorf("failed to delete template: %w", err)
	}

	s.logger.Info("template deleted", "org", actor.OrganizationID, "template", templateID)
	return nil
}

func (s *templateService) apply(t *templates.Template, input *templates.TemplateInput, now time.Time) {
	t.Name = strings.TrimSpace(input.Name)
	t.Category = strings.TrimSpace(input.Category)
	t.Body = s.sanitizer.Sanitize(input.Body)
	t.Variables = templates.ExtractVariables(t.Body)
	t.Active = input.Active
	t.DateTimeUpdated = now
}
