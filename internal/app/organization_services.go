package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rpsg-tech/clm-sub005/internal/domain/audit"
	"github.com/rpsg-tech/clm-sub005/internal/domain/identity"
	"github.com/rpsg-tech/clm-sub005/internal/domain/organizations"
	"github.com/rpsg-tech/clm-sub005/internal/domain/store"
	"github.com/rpsg-tech/clm-sub005/internal/pkg/logger"
)

// organizationService implements the OrganizationService interface
type organizationService struct {
	uow    store.UnitOfWork
	logger logger.Logger
}

// NewOrganizationService creates a new instance of OrganizationService
func NewOrganizationService(uow store.UnitOfWork, logger logger.Logger) (organizations.OrganizationService, error) {
	if uow == nil {
		return nil, fmt.Errorf("unit of work is required")
	}
	return &organizationService{
		uow:    uow,
		logger: logger,
	}, nil
}

// Create registers a tenant and records the event in the tenant's own audit log
func (s *organizationService) Create(ctx context.Context, name, slug string) (*organizations.Organization, error) {
	org := &organizations.Organization{
		ID:              uuid.NewString(),
		Name:            strings.TrimSpace(name),
		Slug:            strings.ToLower(strings.TrimSpace(slug)),
		DateTimeCreated: time.Now().UTC(),
	}

	err := s.uow.WithinTx(ctx, func(tx store.Stores) error {
		if err := tx.Organizations.Create(ctx, org); err != nil {
			return err
		}
		entry := audit.NewEntry(identity.System(org.ID), audit.ActionOrganizationCreate,
			audit.ResourceOrganization, org.ID, map[string]interface{}{"name": org.Name, "slug": org.Slug})
		return tx.Audit.Create(ctx, entry)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create organization: %w", err)
	}

	s.logger.Info("organization created", "org", org.ID, "slug", org.Slug)
	return org, nil
}

func (s *organizationService) GetByID(ctx context.Context, orgID string) (*organizations.Organization, error) {
	return s.uow.Stores().Organizations.GetByID(ctx, orgID)
}

func (s *organizationService) GetBySlug(ctx context.Context, slug string) (*organizations.Organization, error) {
	return s.uow.Stores().Organizations.GetBySlug(ctx, strings.ToLower(slug))
}

func (s *organizationService) List(ctx context.Context) ([]*organizations.Organization, error) {
	return s.uow.Stores().Organizations.List(ctx)
}
