package persistence

import (
	"context"
	"fmt"

	"github.com/rpsg-tech/clm-sub005/internal/domain/contracts"
	"github.com/rpsg-tech/clm-sub005/internal/infrastructure/persistence/models"
	"github.com/rpsg-tech/clm-sub005/internal/pkg/logger"

	"gorm.io/gorm"
)

type gormContractRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormContractRepository creates a new GORM-based ContractRepository implementation
func NewGormContractRepository(db *gorm.DB, logger logger.Logger) (contracts.ContractRepository, error) {
	return &gormContractRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormContractRepository) Create(ctx context.Context, contract *contracts.Contract) error {
	if err := contract.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.ContractModel{}
	model.FromDomain(contract)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return translateError(err, "create", "contract", contract.ID)
	}

	r.logger.Info("Created contract", "id", contract.ID, "org", contract.OrganizationID)
	return nil
}

func (r *gormContractRepository) List(ctx context.Context, orgID string, query *contracts.ContractQuery) ([]*contracts.Contract, error) {
	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("invalid query parameters: %w", err)
	}

	var modelList []*models.ContractModel
	dbQuery := r.db.WithContext(ctx).Model(&models.ContractModel{}).Where("organization_id = ?", orgID)

	if query.Status != "" {
		dbQuery = dbQuery.Where("status = ?", query.Status)
	}
	if query.Counterparty != "" {
		dbQuery = dbQuery.Where("counterparty LIKE ?", "%"+query.Counterparty+"%")
	}
	if query.Title != "" {
		dbQuery = dbQuery.Where("title LIKE ?", "%"+query.Title+"%")
	}
	if query.OwnerID != "" {
		dbQuery = dbQuery.Where("owner_id = ?", query.OwnerID)
	}
	if !query.CreatedAfter.IsZero() {
		dbQuery = dbQuery.Where("date_time_created >= ?", query.CreatedAfter.UTC())
	}
	sortBy := query.SortBy
	sortOrder := query.SortOrder
	if sortBy == "" {
		sortBy, sortOrder = "date_time_updated", "desc"
	}
	dbQuery = applyPaging(dbQuery, sortBy, sortOrder, query.Limit, query.Offset)

	if err := dbQuery.Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch contracts: %w", err)
	}

	domainList := make([]*contracts.Contract, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}
	return domainList, nil
}

func (r *gormContractRepository) GetByID(ctx context.Context, orgID, contractID string) (*contracts.Contract, error) {
	var model models.ContractModel
	err := r.db.WithContext(ctx).
		Where("organization_id = ? AND id = ?", orgID, contractID).
		First(&model).Error
	if err != nil {
		return nil, translateError(err, "fetch", "contract", contractID)
	}
	return model.ToDomain(), nil
}

func (r *gormContractRepository) GetByIDWithDeleted(ctx context.Context, orgID, contractID string) (*contracts.Contract, error) {
	var model models.ContractModel
	err := r.db.WithContext(ctx).Unscoped().
		Where("organization_id = ? AND id = ?", orgID, contractID).
		First(&model).Error
	if err != nil {
		return nil, translateError(err, "fetch", "contract", contractID)
	}
	return model.ToDomain(), nil
}

func (r *gormContractRepository) UpdateByID(ctx context.Context, contract *contracts.Contract) error {
	if err := contract.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.ContractModel{}
	model.FromDomain(contract)

	result := r.db.WithContext(ctx).
		Model(&models.ContractModel{}).
		Where("organization_id = ? AND id = ?", contract.OrganizationID, contract.ID).
		Select("title", "counterparty", "status", "current_version", "value", "currency",
			"effective_date", "expiry_date", "date_time_updated").
		Updates(model)
	if result.Error != nil {
		return translateError(result.Error, "update", "contract", contract.ID)
	}
	if result.RowsAffected == 0 {
		return translateError(gorm.ErrRecordNotFound, "update", "contract", contract.ID)
	}

	r.logger.Info("Updated contract", "id", contract.ID, "status", contract.Status, "version", contract.CurrentVersion)
	return nil
}

func (r *gormContractRepository) DeleteByID(ctx context.Context, orgID, contractID string) error {
	result := r.db.WithContext(ctx).
		Where("organization_id = ? AND id = ?", orgID, contractID).
		Delete(&models.ContractModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete contract: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return translateError(gorm.ErrRecordNotFound, "delete", "contract", contractID)
	}

	r.logger.Info("Deleted contract", "id", contractID)
	return nil
}
