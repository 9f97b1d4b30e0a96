package persistence

import (
	"context"
	"fmt"

	"github.com/rpsg-tech/clm-sub005/internal/domain/templates"
	"github.com/rpsg-tech/clm-sub005/internal/infrastructure/persistence/models"
	"github.com/rpsg-tech/clm-sub005/internal/pkg/logger"

	"gorm.io/gorm"
)

type gormTemplateRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormTemplateRepository creates a new GORM-based TemplateRepository implementation
func NewGormTemplateRepository(db *gorm.DB, logger logger.Logger) (templates.TemplateRepository, error) {
	return &gormTemplateRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormTemplateRepository) Create(ctx context.Context, template *templates.Template) error {
	if err := template.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.TemplateModel{}
	model.FromDomain(template)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return translateError(err, "create", "template", template.ID)
	}

	r.logger.Info("Created template", "id", template.ID, "org", template.OrganizationID)
	return nil
}

func (r *gormTemplateRepository) List(ctx context.Context, orgID string, query *templates.TemplateQuery) ([]*templates.Template, error) {
	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("invalid query parameters: %w", err)
	}

	var modelList []*models.TemplateModel
	dbQuery := r.db.WithContext(ctx).Model(&models.TemplateModel{}).Where("organization_id = ?", orgID)

	if query.Name != "" {
		dbQuery = dbQuery.Where("name LIKE ?", "%"+query.Name+"%")
	}
	if query.Category != "" {
		dbQuery = dbQuery.Where("category = ?", query.Category)
	}
	if query.Active != nil {
		dbQuery = dbQuery.Where("active = ?", *query.Active)
	}
	sortBy := query.SortBy
	if sortBy == "" {
		sortBy = "name"
	}
	dbQuery = applyPaging(dbQuery, sortBy, query.SortOrder, query.Limit, query.Offset)

	if err := dbQuery.Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch templates: %w", err)
	}

	domainList := make([]*templates.Template, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}
	return domainList, nil
}

func (r *gormTemplateRepository) GetByID(ctx context.Context, orgID, templateID string) (*templates.Template, error) {
	var model models.TemplateModel
	err := r.db.WithContext(ctx).
		Where("organization_id = ? AND id = ?", orgID, templateID).
		First(&model).Error
	if err != nil {
		return nil, translateError(err, "fetch", "template", templateID)
	}
	return model.ToDomain(), nil
}

func (r *gormTemplateRepository) UpdateByID(ctx context.Context, template *templates.Template) error {
	if err := template.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.TemplateModel{}
	model.FromDomain(template)

	result := r.db.WithContext(ctx).
		Model(&models.TemplateModel{}).
		Where("organization_id = ? AND id = ?", template.OrganizationID, template.ID).
		Select("name", "category", "body", "variables", "active", "date_time_updated").
		Updates(model)
	if result.Error != nil {
		return translateError(result.Error, "update", "template", template.ID)
	}
	if result.RowsAffected == 0 {
		return translateError(gorm.ErrRecordNotFound, "update", "template", template.ID)
	}

	r.logger.Info("Updated template", "id", template.ID)
	return nil
}

func (r *gormTemplateRepository) DeleteByID(ctx context.Context, orgID, templateID string) error {
	result := r.db.WithContext(ctx).
		Where("organization_id = ? AND id = ?", orgID, templateID).
		Delete(&models.TemplateModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete template: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return translateError(gorm.ErrRecordNotFound, "delete", "template", templateID)
	}

	r.logger.Info("Deleted template", "id", templateID)
	return nil
}
