package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rpsg-tech/clm-sub005/internal/domain/audit"
	"github.com/rpsg-tech/clm-sub005/internal/domain/clmerr"
	"github.com/rpsg-tech/clm-sub005/internal/domain/contracts"
	"github.com/rpsg-tech/clm-sub005/internal/domain/identity"
	"github.com/rpsg-tech/clm-sub005/internal/domain/markup"
	"github.com/rpsg-tech/clm-sub005/internal/domain/store"
	"github.com/rpsg-tech/clm-sub005/internal/domain/users"
	"github.com/rpsg-tech/clm-sub005/internal/domain/versions"
	"github.com/rpsg-tech/clm-sub005/internal/pkg/logger"
)

// contractService implements the ContractService interface
type contractService struct {
	uow       store.UnitOfWork
	cache     contracts.ContractCache
	sanitizer markup.Sanitizer
	logger    logger.Logger
}

// NewContractService creates a new instance of ContractService
func NewContractService(uow store.UnitOfWork, cache contracts.ContractCache, sanitizer markup.Sanitizer, logger logger.Logger) (contracts.ContractService, error) {
	if uow == nil || cache == nil || sanitizer == nil {
		return nil, fmt.Errorf("unit of work, cache and sanitizer are required")
	}
	return &contractService{
		uow:       uow,
		cache:     cache,
		sanitizer: sanitizer,
		logger:    logger,
	}, nil
}

// Create drafts a contract. The body comes from the input or is rendered from
// an active template, is sanitized, and is stored as version 1.
func (s *contractService) Create(ctx context.Context, actor identity.Actor, input *contracts.ContractInput) (*contracts.Contract, error) {
	if err := requireRole(actor, users.EditorRoles...); err != nil {
		return nil, err
	}
	if err := input.Validate(); err != nil {
		return nil, fmt.Errorf("invalid contract: %w", err)
	}

	now := time.Now().UTC()
	contract := &contracts.Contract{
		ID:              uuid.NewString(),
		OrganizationID:  actor.OrganizationID,
		Title:           strings.TrimSpace(input.Title),
		Counterparty:    strings.TrimSpace(input.Counterparty),
		Status:          contracts.StatusDraft,
		TemplateID:      input.TemplateID,
		OwnerID:         actor.UserID,
		CurrentVersion:  1,
		Value:           input.Value,
		Currency:        input.Currency,
		EffectiveDate:   truncateDate(input.EffectiveDate),
		ExpiryDate:      truncateDate(input.ExpiryDate),
		DateTimeCreated: now,
		DateTimeUpdated: now,
	}

	err := s.uow.WithinTx(ctx, func(tx store.Stores) error {
		body := input.Body
		if input.TemplateID != nil {
			template, err := tx.Templates.GetByID(ctx, actor.OrganizationID, *input.TemplateID)
			if err != nil {
				return fmt.Errorf("failed to load template: %w", err)
			}
			if !template.Active {
				return fmt.Errorf("%w: template %s is inactive", clmerr.ErrConflict, template.ID)
			}
			body = template.Render(input.Values)
		}
		body = s.sanitizer.Sanitize(body)
		if strings.TrimSpace(body) == "" {
			return fmt.Errorf("%w: body is empty after sanitizing", clmerr.ErrValidation)
		}

		if err := tx.Contracts.Create(ctx, contract); err != nil {
			return err
		}
		version, err := newVersion(contract, versions.NewSnapshot(contract, body), actor.UserID, "")
		if err != nil {
			return err
		}
		if err := tx.Versions.Create(ctx, version); err != nil {
			return err
		}
		metadata := map[string]interface{}{"title": contract.Title, "version": 1}
		if contract.TemplateID != nil {
			metadata["template_id"] = *contract.TemplateID
		}
		return tx.Audit.Create(ctx, audit.NewEntry(actor, audit.ActionContractCreate, audit.ResourceContract, contract.ID, metadata))
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create contract: %w", err)
	}

	s.logger.Info("contract created", "org", actor.OrganizationID, "contract", contract.ID)
	return contract, nil
}

func (s *contractService) List(ctx context.Context, actor identity.Actor, query *contracts.ContractQuery) ([]*contracts.Contract, error) {
	if err := requireMember(actor); err != nil {
		return nil, err
	}
	if query == nil {
		query = contracts.NewContractQuery()
	}
	return s.uow.Stores().Contracts.List(ctx, actor.OrganizationID, query)
}

// GetByID reads through the contract cache
func (s *contractService) GetByID(ctx context.Context, actor identity.Actor, contractID string) (*contracts.Contract, error) {
	if err := requireMember(actor); err != nil {
		return nil, err
	}
	if cached, ok := s.cache.Get(ctx, actor.OrganizationID, contractID); ok {
		return cached, nil
	}
	contract, err := s.uow.Stores().Contracts.GetByID(ctx, actor.OrganizationID, contractID)
	if err != nil {
		return nil, err
	}
	s.cache.Set(ctx, contract)
	return contract, nil
}

// Update applies a partial change to an editable contract. When the resulting
// snapshot differs from the current version a new version is appended.
func (s *contractService) Update(ctx context.Context, actor identity.Actor, contractID string, update *contracts.ContractUpdate) (*contracts.Contract, error) {
	if err := requireRole(actor, users.EditorRoles...); err != nil {
		return nil, err
	}
	if err := update.Validate(); err != nil {
		return nil, fmt.Errorf("invalid update: %w", err)
	}
	if update.IsEmpty() {
		return nil, fmt.Errorf("%w: update changes nothing", clmerr.ErrValidation)
	}

	var updated *contracts.Contract
	err := s.uow.WithinTx(ctx, func(tx store.Stores) error {
		contract, err := tx.Contracts.GetByID(ctx, actor.OrganizationID, contractID)
		if err != nil {
			return err
		}
		if !contract.IsEditable() {
			return fmt.Errorf("%w: contract in status %s cannot be edited", clmerr.ErrConflict, contract.Status)
		}
		previous, err := currentSnapshot(ctx, tx, contract)
		if err != nil {
			return err
		}

		body := previous.Body
		if update.Body != nil {
			body = s.sanitizer.Sanitize(*update.Body)
		}
		applyUpdate(contract, update)
		next := versions.NewSnapshot(contract, body)
		changes := versions.Diff(previous, next)
		if len(changes) == 0 {
			updated = contract
			return nil
		}

		contract.CurrentVersion++
		contract.DateTimeUpdated = time.Now().UTC()
		if err := tx.Contracts.UpdateByID(ctx, contract); err != nil {
			return err
		}
		version, err := newVersion(contract, next, actor.UserID, update.Comment)
		if err != nil {
			return err
		}
		if err := tx.Versions.Create(ctx, version); err != nil {
			return err
		}
		updated = contract
		return tx.Audit.Create(ctx, audit.NewEntry(actor, audit.ActionContractUpdate, audit.ResourceContract, contract.ID,
			map[string]interface{}{"version": contract.CurrentVersion, "fields": changedFields(changes)}))
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update contract: %w", err)
	}

	s.cache.Delete(ctx, actor.OrganizationID, contractID)
	s.logger.Info("contract updated", "org", actor.OrganizationID, "contract", contractID, "version", updated.CurrentVersion)
	return updated, nil
}

// Transition applies a manual status change. Statuses owned by the approval
// workflow cannot be entered this way.
func (s *contractService) Transition(ctx context.Context, actor identity.Actor, contractID, status string) (*contracts.Contract, error) {
	if err := requireRole(actor, users.EditorRoles...); err != nil {
		return nil, err
	}
	if contracts.IsWorkflowStatus(status) {
		return nil, fmt.Errorf("%w: %s is set by the approval workflow", clmerr.ErrInvalidTransition, status)
	}

	var updated *contracts.Contract
	err := s.uow.WithinTx(ctx, func(tx store.Stores) error {
		contract, err := tx.Contracts.GetByID(ctx, actor.OrganizationID, contractID)
		if err != nil {
			return err
		}
		previous := contract.Status
		if err := setStatus(contract, status); err != nil {
			return err
		}
		if err := tx.Contracts.UpdateByID(ctx, contract); err != nil {
			return err
		}
		updated = contract
		return tx.Audit.Create(ctx, audit.NewEntry(actor, audit.ActionContractStatus, audit.ResourceContract, contract.ID,
			map[string]interface{}{"from": previous, "to": status}))
	})
	if err != nil {
		return nil, fmt.Errorf("failed to change contract status: %w", err)
	}

	s.cache.Delete(ctx, actor.OrganizationID, contractID)
	s.logger.Info("contract status changed", "org", actor.OrganizationID, "contract", contractID, "status", status)
	return updated, nil
}

// DeleteByID soft deletes a contract. Versions, approvals and audit rows stay.
func (s *contractService) DeleteByID(ctx context.Context, actor identity.Actor, contractID string) error {
	if err := requireRole(actor, users.EditorRoles...); err != nil {
		return err
	}

	err := s.uow.WithinTx(ctx, func(tx store.Stores) error {
		contract, err := tx.Contracts.GetByID(ctx, actor.OrganizationID, contractID)
		if err != nil {
			return err
		}
		if err := tx.Contracts.DeleteByID(ctx, actor.OrganizationID, contractID); err != nil {
			return err
		}
		return tx.Audit.Create(ctx, audit.NewEntry(actor, audit.ActionContractDelete, audit.ResourceContract, contractID,
			map[string]interface{}{"title": contract.Title, "status": contract.Status}))
	})
	if err != nil {
		return fmt.Errorf("failed to delete contract: %w", err)
	}

	s.cache.Delete(ctx, actor.OrganizationID, contractID)
	s.logger.Info("contract deleted", "org", actor.OrganizationID, "contract", contractID)
	return nil
}

func applyUpdate(c *contracts.Contract, u *contracts.ContractUpdate) {
	if u.Title != nil {
		c.Title = strings.TrimSpace(*u.Title)
	}
	if u.Counterparty != nil {
		c.Counterparty = strings.TrimSpace(*u.Counterparty)
	}
	if u.Value != nil {
		c.Value = *u.Value
	}
	if u.Currency != nil {
		c.Currency = *u.Currency
	}
	if u.EffectiveDate != nil {
		c.EffectiveDate = truncateDate(u.EffectiveDate)
	}
	if u.ExpiryDate != nil {
		c.ExpiryDate = truncateDate(u.ExpiryDate)
	}
}

// setStatus moves c to status when the lifecycle allows it
func setStatus(c *contracts.Contract, status string) error {
	if !contracts.CanTransition(c.Status, status) {
		return fmt.Errorf("%w: %s to %s", clmerr.ErrInvalidTransition, c.Status, status)
	}
	c.Status = status
	c.DateTimeUpdated = time.Now().UTC()
	return nil
}

// currentSnapshot decodes the snapshot of the contract's current version
func currentSnapshot(ctx context.Context, tx store.Stores, c *contracts.Contract) (*versions.Snapshot, error) {
	version, err := tx.Versions.GetByNumber(ctx, c.OrganizationID, c.ID, c.CurrentVersion)
	if err != nil {
		return nil, fmt.Errorf("failed to load current version: %w", err)
	}
	snapshot, err := version.Decode()
	if err != nil {
		return nil, fmt.Errorf("%w: current version is unreadable, run snapshot repair: %v", clmerr.ErrConflict, err)
	}
	return snapshot, nil
}

// newVersion builds version c.CurrentVersion of c from snapshot
func newVersion(c *contracts.Contract, snapshot *versions.Snapshot, authorID, comment string) (*versions.ContractVersion, error) {
	version := &versions.ContractVersion{
		ID:              uuid.NewString(),
		ContractID:      c.ID,
		OrganizationID:  c.OrganizationID,
		Number:          c.CurrentVersion,
		AuthorID:        authorID,
		Comment:         comment,
		DateTimeCreated: time.Now().UTC(),
	}
	if err := version.SetSnapshot(snapshot); err != nil {
		return nil, err
	}
	return version, nil
}

func changedFields(changes []versions.FieldChange) []string {
	fields := make([]string, len(changes))
	for i, c := range changes {
		fields[i] = c.Field
	}
	return fields
}

// truncateDate drops the time of day; contract terms are calendar dates
func truncateDate(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return &d
}
