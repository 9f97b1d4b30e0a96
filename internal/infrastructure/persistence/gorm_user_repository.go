package persistence

import (
	"context"
	"fmt"
	"strings"

	"github.com/rpsg-tech/clm-sub005/internal/domain/users"
	"github.com/rpsg-tech/clm-sub005/internal/infrastructure/persistence/models"
	"github.com/rpsg-tech/clm-sub005/internal/pkg/logger"

	"gorm.io/gorm"
)

type gormUserRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormUserRepository creates a new GORM-based UserRepository implementation
func NewGormUserRepository(db *gorm.DB, logger logger.Logger) (users.UserRepository, error) {
	return &gormUserRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormUserRepository) Create(ctx context.Context, user *users.User) error {
	if err := user.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.UserModel{}
	model.FromDomain(user)
	model.Email = strings.ToLower(model.Email)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return translateError(err, "create", "user", user.Email)
	}

	r.logger.Info("Created user", "id", user.ID, "org", user.OrganizationID)
	return nil
}

func (r *gormUserRepository) List(ctx context.Context, orgID string, query *users.UserQuery) ([]*users.User, error) {
	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("invalid query parameters: %w", err)
	}

	var modelList []*models.UserModel
	dbQuery := r.db.WithContext(ctx).Model(&models.UserModel{}).Where("organization_id = ?", orgID)

	if query.Role != "" {
		dbQuery = dbQuery.Where("role = ?", query.Role)
	}
	if query.Active != nil {
		dbQuery = dbQuery.Where("active = ?", *query.Active)
	}
	if query.Email != "" {
		dbQuery = dbQuery.Where("email LIKE ?", "%"+strings.ToLower(query.Email)+"%")
	}
	sortBy := query.SortBy
	if sortBy == "" {
		sortBy = "email"
	}
	dbQuery = applyPaging(dbQuery, sortBy, query.SortOrder, query.Limit, query.Offset)

	if err := dbQuery.Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch users: %w", err)
	}

	domainList := make([]*users.User, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}
	return domainList, nil
}

func (r *gormUserRepository) GetByID(ctx context.Context, orgID, userID string) (*users.User, error) {
	var model models.UserModel
	err := r.db.WithContext(ctx).
		Where("organization_id = ? AND id = ?", orgID, userID).
		First(&model).Error
	if err != nil {
		return nil, translateError(err, "fetch", "user", userID)
	}
	return model.ToDomain(), nil
}

func (r *gormUserRepository) GetByEmail(ctx context.Context, orgID, email string) (*users.User, error) {
	var model models.UserModel
	err := r.db.WithContext(ctx).
		Where("organization_id = ? AND email = ?", orgID, strings.ToLower(email)).
		First(&model).Error
	if err != nil {
		return nil, translateError(err, "fetch", "user", email)
	}
	return model.ToDomain(), nil
}

func (r *gormUserRepository) UpdateByID(ctx context.Context, user *users.User) error {
	if err := user.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.UserModel{}
	model.FromDomain(user)

	result := r.db.WithContext(ctx).
		Model(&models.UserModel{}).
		Where("organization_id = ? AND id = ?", user.OrganizationID, user.ID).
		Select("display_name", "role", "password_hash", "active").
		Updates(model)
	if result.Error != nil {
		return translateError(result.Error, "update", "user", user.ID)
	}
	if result.RowsAffected == 0 {
		return translateError(gorm.ErrRecordNotFound, "update", "user", user.ID)
	}

	r.logger.Info("Updated user", "id", user.ID)
	return nil
}
