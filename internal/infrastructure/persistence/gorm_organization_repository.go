package persistence

import (
	"context"
	"fmt"

	"github.com/rpsg-tech/clm-sub005/internal/domain/organizations"
	"github.com/rpsg-tech/clm-sub005/internal/infrastructure/persistence/models"
	"github.com/rpsg-tech/clm-sub005/internal/pkg/logger"

	"gorm.io/gorm"
)

type gormOrganizationRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormOrganizationRepository creates a new GORM-based OrganizationRepository implementation
func NewGormOrganizationRepository(db *gorm.DB, logger logger.Logger) (organizations.OrganizationRepository, error) {
	return &gormOrganizationRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormOrganizationRepository) Create(ctx context.Context, org *organizations.Organization) error {
	if err := org.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.OrganizationModel{}
	model.FromDomain(org)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return translateError(err, "create", "organization", org.Slug)
	}

	r.logger.Info("Created organization", "id", org.ID, "slug", org.Slug)
	return nil
}

func (r *gormOrganizationRepository) GetByID(ctx context.Context, orgID string) (*organizations.Organization, error) {
	var model models.OrganizationModel
	if err := r.db.WithContext(ctx).Where("id = ?", orgID).First(&model).Error; err != nil {
		return nil, translateError(err, "fetch", "organization", orgID)
	}
	return model.ToDomain(), nil
}

func (r *gormOrganizationRepository) GetBySlug(ctx context.Context, slug string) (*organizations.Organization, error) {
	var model models.OrganizationModel
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&model).Error; err != nil {
		return nil, translateError(err, "fetch", "organization", slug)
	}
	return model.ToDomain(), nil
}

func (r *gormOrganizationRepository) List(ctx context.Context) ([]*organizations.Organization, error) {
	var modelList []*models.OrganizationModel
	if err := r.db.WithContext(ctx).Order("name asc").Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch organizations: %w", err)
	}

	domainList := make([]*organizations.Organization, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}
	return domainList, nil
}
