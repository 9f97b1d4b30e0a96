package audit

import (
	"context"
	"io"

	"github.com/rpsg-tech/clm-sub005/internal/domain/identity"
)

// AuditLogRepository is append-only
type AuditLogRepository interface {
	Create(ctx context.Context, entry *AuditLog) error
	List(ctx context.Context, orgID string, query *AuditLogQuery) ([]*AuditLog, error)
}

// Exporter writes audit rows as a spreadsheet
type Exporter interface {
	Export(w io.Writer, logs []*AuditLog) error
}

// AuditService defines audit reads for administrators
type AuditService interface {
	List(ctx context.Context, actor identity.Actor, query *AuditLogQuery) ([]*AuditLog, error)
	// Export writes every row matching query to w
	Export(ctx context.Context, actor identity.Actor, query *AuditLogQuery, w io.Writer) error
}
