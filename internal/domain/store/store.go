// Package store groups the repositories that take part in one transaction.
package store

import (
	"context"

	"github.com/rpsg-tech/clm-sub005/internal/domain/approvals"
	"github.com/rpsg-tech/clm-sub005/internal/domain/audit"
	"github.com/rpsg-tech/clm-sub005/internal/domain/contracts"
	"github.com/rpsg-tech/clm-sub005/internal/domain/organizations"
	"github.com/rpsg-tech/clm-sub005/internal/domain/templates"
	"github.com/rpsg-tech/clm-sub005/internal/domain/users"
	"github.com/rpsg-tech/clm-sub005/internal/domain/versions"
)

// Stores holds repositories bound to the same database handle
type Stores struct {
	Organizations organizations.OrganizationRepository
	Users         users.UserRepository
	Templates     templates.TemplateRepository
	Contracts     contracts.ContractRepository
	Versions      versions.VersionRepository
	Approvals     approvals.ApprovalRepository
	Audit         audit.AuditLogRepository
}

// UnitOfWork runs work inside a database transaction
type UnitOfWork interface {
	// Stores returns repositories outside of any transaction
	Stores() Stores
	// WithinTx commits when fn returns nil and rolls back otherwise
	WithinTx(ctx context.Context, fn func(tx Stores) error) error
}
