package persistence

import (
	"context"
	"fmt"

	"github.com/rpsg-tech/clm-sub005/internal/domain/approvals"
	"github.com/rpsg-tech/clm-sub005/internal/infrastructure/persistence/models"
	"github.com/rpsg-tech/clm-sub005/internal/pkg/logger"

	"gorm.io/gorm"
)

type gormApprovalRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormApprovalRepository creates a new GORM-based ApprovalRepository implementation
func NewGormApprovalRepository(db *gorm.DB, logger logger.Logger) (approvals.ApprovalRepository, error) {
	return &gormApprovalRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormApprovalRepository) Create(ctx context.Context, approval *approvals.Approval) error {
	if err := approval.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.ApprovalModel{}
	model.FromDomain(approval)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return translateError(err, "create", "approval", approval.ID)
	}

	r.logger.Info("Created approval step", "id", approval.ID, "contract", approval.ContractID, "step", approval.Step)
	return nil
}

func (r *gormApprovalRepository) GetByID(ctx context.Context, orgID, approvalID string) (*approvals.Approval, error) {
	var model models.ApprovalModel
	err := r.db.WithContext(ctx).
		Where("organization_id = ? AND id = ?", orgID, approvalID).
		First(&model).Error
	if err != nil {
		return nil, translateError(err, "fetch", "approval", approvalID)
	}
	return model.ToDomain(), nil
}

func (r *gormApprovalRepository) ListByContract(ctx context.Context, orgID, contractID string) ([]*approvals.Approval, error) {
	var modelList []*models.ApprovalModel
	err := r.db.WithContext(ctx).
		Where("organization_id = ? AND contract_id = ?", orgID, contractID).
		Order("approval_round asc").Order("step asc").
		Find(&modelList).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch approvals: %w", err)
	}
	return toApprovals(modelList), nil
}

func (r *gormApprovalRepository) ListPendingForApprover(ctx context.Context, orgID, approverID string) ([]*approvals.Approval, error) {
	var modelList []*models.ApprovalModel
	err := r.db.WithContext(ctx).
		Where("organization_id = ? AND approver_id = ? AND decision = ?", orgID, approverID, approvals.DecisionPending).
		Order("date_time_created asc").
		Find(&modelList).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch pending approvals: %w", err)
	}
	return toApprovals(modelList), nil
}

func (r *gormApprovalRepository) UpdateByID(ctx context.Context, approval *approvals.Approval) error {
	if err := approval.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.ApprovalModel{}
	model.FromDomain(approval)

	result := r.db.WithContext(ctx).
		Model(&models.ApprovalModel{}).
		Where("organization_id = ? AND id = ?", approval.OrganizationID, approval.ID).
		Select("decision", "comment", "decided_at").
		Updates(model)
	if result.Error != nil {
		return translateError(result.Error, "update", "approval", approval.ID)
	}
	if result.RowsAffected == 0 {
		return translateError(gorm.ErrRecordNotFound, "update", "approval", approval.ID)
	}

	r.logger.Info("Updated approval step", "id", approval.ID, "decision", approval.Decision)
	return nil
}

func toApprovals(modelList []*models.ApprovalModel) []*approvals.Approval {
	domainList := make([]*approvals.Approval, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}
	return domainList
}
