package app

import (
	"context"
	"fmt"
	"io"

	"github.com/rpsg-tech/clm-sub005/internal/domain/audit"
	"github.com/rpsg-tech/clm-sub005/internal/domain/identity"
	"github.com/rpsg-tech/clm-sub005/internal/domain/store"
	"github.com/rpsg-tech/clm-sub005/internal/domain/users"
	"github.com/rpsg-tech/clm-sub005/internal/pkg/logger"
)

// exportPageSize is the number of rows read per query while exporting
const exportPageSize = 1000

// auditService implements the AuditService interface
type auditService struct {
	uow      store.UnitOfWork
	exporter audit.Exporter
	logger   logger.Logger
}

// NewAuditService creates a new instance of AuditService
func NewAuditService(uow store.UnitOfWork, exporter audit.Exporter, logger logger.Logger) (audit.AuditService, error) {
	if uow == nil || exporter == nil {
		return nil, fmt.Errorf("unit of work and exporter are required")
	}
	return &auditService{
		uow:      uow,
		exporter: exporter,
		logger:   logger,
	}, nil
}

func (s *auditService) List(ctx context.Context, actor identity.Actor, query *audit.AuditLogQuery) ([]*audit.AuditLog, error) {
	if err := requireRole(actor, users.RoleAdmin); err != nil {
		return nil, err
	}
	if query == nil {
		query = audit.NewAuditLogQuery()
	}
	return s.uow.Stores().Audit.List(ctx, actor.OrganizationID, query)
}

// Export writes the rows matching query to w as a workbook. Without a limit
// every matching row is exported.
func (s *auditService) Export(ctx context.Context, actor identity.Actor, query *audit.AuditLogQuery, w io.Writer) error {
	if err := requireRole(actor, users.RoleAdmin); err != nil {
		return err
	}
	if query == nil {
		query = audit.NewAuditLogQuery()
	}

	logs, err := s.collect(ctx, actor.OrganizationID, *query)
	if err != nil {
		return err
	}
	if err := s.exporter.Export(w, logs); err != nil {
		return fmt.Errorf("failed to export audit logs: %w", err)
	}

	s.logger.Info("audit logs exported", "org", actor.OrganizationID, "rows", len(logs))
	return nil
}

func (s *auditService) collect(ctx context.Context, orgID string, query audit.AuditLogQuery) ([]*audit.AuditLog, error) {
	repo := s.uow.Stores().Audit
	if query.Limit > 0 {
		return repo.List(ctx, orgID, &query)
	}

	var all []*audit.AuditLog
	query.Limit = exportPageSize
	for {
		page, err := repo.List(ctx, orgID, &query)
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		if len(page) < exportPageSize {
			return all, nil
		}
		query.Offset += exportPageSize
	}
}
