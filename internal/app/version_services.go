package app

import (
	"context"
	"fmt"
	"time"

	"github.com/rpsg-tech/clm-sub005/internal/domain/audit"
	"github.com/rpsg-tech/clm-sub005/internal/domain/clmerr"
	"github.com/rpsg-tech/clm-sub005/internal/domain/contracts"
	"github.com/rpsg-tech/clm-sub005/internal/domain/identity"
	"github.com/rpsg-tech/clm-sub005/internal/domain/store"
	"github.com/rpsg-tech/clm-sub005/internal/domain/users"
	"github.com/rpsg-tech/clm-sub005/internal/domain/versions"
	"github.com/rpsg-tech/clm-sub005/internal/pkg/logger"
)

// versionService implements the VersionService interface
type versionService struct {
	uow    store.UnitOfWork
	cache  contracts.ContractCache
	logger logger.Logger
}

// NewVersionService creates a new instance of VersionService
func NewVersionService(uow store.UnitOfWork, cache contracts.ContractCache, logger logger.Logger) (versions.VersionService, error) {
	if uow == nil || cache == nil {
		return nil, fmt.Errorf("unit of work and cache are required")
	}
	return &versionService{
		uow:    uow,
		cache:  cache,
		logger: logger,
	}, nil
}

// List returns the history of a contract, oldest first
func (s *versionService) List(ctx context.Context, actor identity.Actor, contractID string) ([]*versions.ContractVersion, error) {
	if err := requireMember(actor); err != nil {
		return nil, err
	}
	stores := s.uow.Stores()
	if _, err := stores.Contracts.GetByID(ctx, actor.OrganizationID, contractID); err != nil {
		return nil, err
	}
	return stores.Versions.ListByContract(ctx, actor.OrganizationID, contractID)
}

func (s *versionService) Get(ctx context.Context, actor identity.Actor, contractID string, number int) (*versions.ContractVersion, error) {
	if err := requireMember(actor); err != nil {
		return nil, err
	}
	return s.uow.Stores().Versions.GetByNumber(ctx, actor.OrganizationID, contractID, number)
}

// Restore appends a new version carrying the snapshot of an older one and
// copies its metadata back onto the contract. History is never rewritten.
func (s *versionService) Restore(ctx context.Context, actor identity.Actor, contractID string, number int) (*versions.ContractVersion, error) {
	if err := requireRole(actor, users.EditorRoles...); err != nil {
		return nil, err
	}

	var restored *versions.ContractVersion
	err := s.uow.WithinTx(ctx, func(tx store.Stores) error {
		contract, err := tx.Contracts.GetByID(ctx, actor.OrganizationID, contractID)
		if err != nil {
			return err
		}
		if !contract.IsEditable() {
			return fmt.Errorf("%w: contract in status %s cannot be restored", clmerr.ErrConflict, contract.Status)
		}

		source, err := tx.Versions.GetByNumber(ctx, actor.OrganizationID, contractID, number)
		if err != nil {
			return err
		}
		snapshot, err := source.Decode()
		if err != nil {
			return fmt.Errorf("%w: version %d is unreadable: %v", clmerr.ErrConflict, number, err)
		}
		if err := snapshot.ApplyTo(contract); err != nil {
			return fmt.Errorf("%w: version %d: %v", clmerr.ErrConflict, number, err)
		}

		contract.CurrentVersion++
		contract.DateTimeUpdated = time.Now().UTC()
		if err := tx.Contracts.UpdateByID(ctx, contract); err != nil {
			return err
		}
		version, err := newVersion(contract, snapshot, actor.UserID, fmt.Sprintf("Restored from version %d", number))
		if err != nil {
			return err
		}
		if err := tx.Versions.Create(ctx, version); err != nil {
			return err
		}
		restored = version
		return tx.Audit.Create(ctx, audit.NewEntry(actor, audit.ActionVersionRestore, audit.ResourceVersion, version.ID,
			map[string]interface{}{"contract_id": contractID, "from_version": number, "version": version.Number}))
	})
	if err != nil {
		return nil, fmt.Errorf("failed to restore version: %w", err)
	}

	s.cache.Delete(ctx, actor.OrganizationID, contractID)
	s.logger.Info("version restored", "org", actor.OrganizationID, "contract", contractID, "from", number, "version", restored.Number)
	return restored, nil
}

// Diff lists the snapshot fields that differ between two versions
func (s *versionService) Diff(ctx context.Context, actor identity.Actor, contractID string, from, to int) ([]versions.FieldChange, error) {
	if err := requireMember(actor); err != nil {
		return nil, err
	}
	stores := s.uow.Stores()

	snapshots := make([]*versions.Snapshot, 0, 2)
	for _, number := range []int{from, to} {
		version, err := stores.Versions.GetByNumber(ctx, actor.OrganizationID, contractID, number)
		if err != nil {
			return nil, err
		}
		snapshot, err := version.Decode()
		if err != nil {
			return nil, fmt.Errorf("%w: version %d is unreadable: %v", clmerr.ErrConflict, number, err)
		}
		snapshots = append(snapshots, snapshot)
	}
	return versions.Diff(snapshots[0], snapshots[1]), nil
}
