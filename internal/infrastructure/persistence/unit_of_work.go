package persistence

import (
	"context"
	"fmt"

	"github.com/rpsg-tech/clm-sub005/internal/domain/store"
	"github.com/rpsg-tech/clm-sub005/internal/pkg/logger"

	"gorm.io/gorm"
)

type gormUnitOfWork struct {
	db     *gorm.DB
	logger logger.Logger
	stores store.Stores
}

// NewUnitOfWork creates a UnitOfWork over db
func NewUnitOfWork(db *gorm.DB, logger logger.Logger) (store.UnitOfWork, error) {
	stores, err := NewStores(db, logger)
	if err != nil {
		return nil, err
	}
	return &gormUnitOfWork{db: db, logger: logger, stores: stores}, nil
}

// NewStores builds every repository on the same handle
func NewStores(db *gorm.DB, logger logger.Logger) (store.Stores, error) {
	var s store.Stores
	var err error

	if s.Organizations, err = NewGormOrganizationRepository(db, logger); err != nil {
		return s, err
	}
	if s.Users, err = NewGormUserRepository(db, logger); err != nil {
		return s, err
	}
	if s.Templates, err = NewGormTemplateRepository(db, logger); err != nil {
		return s, err
	}
	if s.Contracts, err = NewGormContractRepository(db, logger); err != nil {
		return s, err
	}
	if s.Versions, err = NewGormVersionRepository(db, logger); err != nil {
		return s, err
	}
	if s.Approvals, err = NewGormApprovalRepository(db, logger); err != nil {
		return s, err
	}
	if s.Audit, err = NewGormAuditLogRepository(db, logger); err != nil {
		return s, err
	}
	return s, nil
}

func (u *gormUnitOfWork) Stores() store.Stores {
	return u.stores
}

func (u *gormUnitOfWork) WithinTx(ctx context.Context, fn func(tx store.Stores) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		stores, err := NewStores(tx, u.logger)
		if err != nil {
			return fmt.Errorf("failed to bind repositories to transaction: %w", err)
		}
		return fn(stores)
	})
}
