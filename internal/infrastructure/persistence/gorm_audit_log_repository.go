package persistence

import (
	"context"
	"fmt"

	"github.com/rpsg-tech/clm-sub005/internal/domain/audit"
	"github.com/rpsg-tech/clm-sub005/internal/infrastructure/persistence/models"
	"github.com/rpsg-tech/clm-sub005/internal/pkg/logger"

	"gorm.io/gorm"
)

type gormAuditLogRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormAuditLogRepository creates a new GORM-based AuditLogRepository implementation.
// It only appends and reads.
func NewGormAuditLogRepository(db *gorm.DB, logger logger.Logger) (audit.AuditLogRepository, error) {
	return &gormAuditLogRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormAuditLogRepository) Create(ctx context.Context, entry *audit.AuditLog) error {
	if err := entry.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.AuditLogModel{}
	if err := model.FromDomain(entry); err != nil {
		return fmt.Errorf("failed to encode audit metadata: %w", err)
	}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return translateError(err, "create", "audit log", entry.ID)
	}

	r.logger.Debug("Recorded audit entry", "action", entry.Action, "resource", entry.ResourceID)
	return nil
}

func (r *gormAuditLogRepository) List(ctx context.Context, orgID string, query *audit.AuditLogQuery) ([]*audit.AuditLog, error) {
	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("invalid query parameters: %w", err)
	}

	var modelList []*models.AuditLogModel
	dbQuery := r.db.WithContext(ctx).Model(&models.AuditLogModel{}).Where("organization_id = ?", orgID)

	if query.Action != "" {
		dbQuery = dbQuery.Where("action = ?", query.Action)
	}
	if query.ResourceType != "" {
		dbQuery = dbQuery.Where("resource_type = ?", query.ResourceType)
	}
	if query.ResourceID != "" {
		dbQuery = dbQuery.Where("resource_id = ?", query.ResourceID)
	}
	if query.ActorID != "" {
		dbQuery = dbQuery.Where("actor_id = ?", query.ActorID)
	}
	if !query.From.IsZero() {
		dbQuery = dbQuery.Where("date_time_created >= ?", query.From.UTC())
	}
	if !query.To.IsZero() {
		dbQuery = dbQuery.Where("date_time_created < ?", query.To.UTC())
	}
	sortOrder := query.SortOrder
	if sortOrder == "" {
		sortOrder = "desc"
	}
	dbQuery = applyPaging(dbQuery, "date_time_created", sortOrder, query.Limit, query.Offset)

	if err := dbQuery.Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch audit logs: %w", err)
	}

	domainList := make([]*audit.AuditLog, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}
	return domainList, nil
}
