package persistence

import (
	"context"
	"fmt"

	"github.com/rpsg-tech/clm-sub005/internal/domain/versions"
	"github.com/rpsg-tech/clm-sub005/internal/infrastructure/persistence/models"
	"github.com/rpsg-tech/clm-sub005/internal/pkg/logger"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type gormVersionRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormVersionRepository creates a new GORM-based VersionRepository implementation
func NewGormVersionRepository(db *gorm.DB, logger logger.Logger) (versions.VersionRepository, error) {
	return &gormVersionRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormVersionRepository) Create(ctx context.Context, version *versions.ContractVersion) error {
	if err := version.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.ContractVersionModel{}
	model.FromDomain(version)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return translateError(err, "create", "contract version", fmt.Sprintf("%s#%d", version.ContractID, version.Number))
	}

	r.logger.Info("Created contract version", "contract", version.ContractID, "number", version.Number)
	return nil
}

func (r *gormVersionRepository) ListByContract(ctx context.Context, orgID, contractID string) ([]*versions.ContractVersion, error) {
	var modelList []*models.ContractVersionModel
	err := r.db.WithContext(ctx).
		Where("organization_id = ? AND contract_id = ?", orgID, contractID).
		Order("number asc").
		Find(&modelList).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch contract versions: %w", err)
	}

	domainList := make([]*versions.ContractVersion, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}
	return domainList, nil
}

func (r *gormVersionRepository) GetByNumber(ctx context.Context, orgID, contractID string, number int) (*versions.ContractVersion, error) {
	var model models.ContractVersionModel
	err := r.db.WithContext(ctx).
		Where("organization_id = ? AND contract_id = ? AND number = ?", orgID, contractID, number).
		First(&model).Error
	if err != nil {
		return nil, translateError(err, "fetch", "contract version", fmt.Sprintf("%s#%d", contractID, number))
	}
	return model.ToDomain(), nil
}

func (r *gormVersionRepository) UpdateSnapshot(ctx context.Context, version *versions.ContractVersion) error {
	result := r.db.WithContext(ctx).
		Model(&models.ContractVersionModel{}).
		Where("organization_id = ? AND id = ?", version.OrganizationID, version.ID).
		Updates(map[string]interface{}{
			"snapshot":     datatypes.JSON(version.Snapshot),
			"content_hash": version.ContentHash,
		})
	if result.Error != nil {
		return translateError(result.Error, "update", "contract version", version.ID)
	}
	if result.RowsAffected == 0 {
		return translateError(gorm.ErrRecordNotFound, "update", "contract version", version.ID)
	}

	r.logger.Info("Rewrote contract version snapshot", "id", version.ID, "hash", version.ContentHash)
	return nil
}

func (r *gormVersionRepository) Scan(ctx context.Context, orgID string, batchSize int, fn func(batch []*versions.ContractVersion) error) error {
	if batchSize <= 0 {
		batchSize = 200
	}

	dbQuery := r.db.WithContext(ctx).Model(&models.ContractVersionModel{})
	if orgID != "" {
		dbQuery = dbQuery.Where("organization_id = ?", orgID)
	}

	var batch []*models.ContractVersionModel
	result := dbQuery.FindInBatches(&batch, batchSize, func(tx *gorm.DB, _ int) error {
		domainList := make([]*versions.ContractVersion, len(batch))
		for i, model := range batch {
			domainList[i] = model.ToDomain()
		}
		return fn(domainList)
	})
	if result.Error != nil {
		return fmt.Errorf("failed to scan contract versions: %w", result.Error)
	}
	return nil
}
