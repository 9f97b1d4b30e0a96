package app

import (
	"context"
	"fmt"

	"github.com/rpsg-tech/clm-sub005/internal/domain/audit"
	"github.com/rpsg-tech/clm-sub005/internal/domain/identity"
	"github.com/rpsg-tech/clm-sub005/internal/domain/store"
	"github.com/rpsg-tech/clm-sub005/internal/domain/versions"
	"github.com/rpsg-tech/clm-sub005/internal/pkg/logger"
)

// scanBatchSize is the number of versions loaded per query while scanning
const scanBatchSize = 200

// snapshotMaintenance implements the SnapshotMaintenance interface
type snapshotMaintenance struct {
	uow    store.UnitOfWork
	logger logger.Logger
}

// NewSnapshotMaintenance creates a new instance of SnapshotMaintenance
func NewSnapshotMaintenance(uow store.UnitOfWork, logger logger.Logger) (versions.SnapshotMaintenance, error) {
	if uow == nil {
		return nil, fmt.Errorf("unit of work is required")
	}
	return &snapshotMaintenance{
		uow:    uow,
		logger: logger,
	}, nil
}

// Check scans every version of orgID, or of all organizations when orgID is
// empty, and returns the corrupt ones with the number of versions scanned.
func (s *snapshotMaintenance) Check(ctx context.Context, orgID string) ([]versions.Finding, int, error) {
	findings := []versions.Finding{}
	scanned := 0

	err := s.uow.Stores().Versions.Scan(ctx, orgID, scanBatchSize, func(batch []*versions.ContractVersion) error {
		for _, v := range batch {
			scanned++
			inspection := versions.Inspect(v.Snapshot, v.ContentHash)
			if !inspection.Corrupt() {
				continue
			}
			findings = append(findings, versions.Finding{
				VersionID:      v.ID,
				ContractID:     v.ContractID,
				OrganizationID: v.OrganizationID,
				Number:         v.Number,
				Issues:         inspection.Issues,
			})
		}
		return nil
	})
	if err != nil {
		return nil, scanned, fmt.Errorf("failed to scan snapshots: %w", err)
	}

	s.logger.Info("snapshot check finished", "org", orgID, "scanned", scanned, "corrupt", len(findings))
	return findings, scanned, nil
}

// Repair fixes every repairable finding, each in its own transaction. In a dry
// run Repaired reports what would be fixed and nothing is written.
func (s *snapshotMaintenance) Repair(ctx context.Context, orgID string, dryRun bool) (*versions.RepairReport, error) {
	findings, scanned, err := s.Check(ctx, orgID)
	if err != nil {
		return nil, err
	}

	report := &versions.RepairReport{
		Scanned: scanned,
		DryRun:  dryRun,
		Results: make([]versions.RepairResult, 0, len(findings)),
	}
	for _, finding := range findings {
		result := versions.RepairResult{Finding: finding}
		if err := s.repairOne(ctx, finding, dryRun); err != nil {
			result.Error = err.Error()
			s.logger.Warn("snapshot not repaired", "version", finding.VersionID, "contract", finding.ContractID, "error", err)
		} else {
			result.Repaired = true
		}
		report.Results = append(report.Results, result)
	}

	s.logger.Info("snapshot repair finished", "org", orgID, "scanned", scanned, "findings", len(findings), "dry_run", dryRun)
	return report, nil
}

func (s *snapshotMaintenance) repairOne(ctx context.Context, finding versions.Finding, dryRun bool) error {
	fix := func(tx store.Stores) error {
		version, err := tx.Versions.GetByNumber(ctx, finding.OrganizationID, finding.ContractID, finding.Number)
		if err != nil {
			return err
		}
		inspection := versions.Inspect(version.Snapshot, version.ContentHash)
		if !inspection.Corrupt() {
			return nil
		}

		// the contract row is only consulted for missing keys; deleted
		// contracts keep their history, so they are repairable too
		fallback := &versions.Snapshot{}
		if len(inspection.MissingKeys) > 0 {
			contract, err := tx.Contracts.GetByIDWithDeleted(ctx, finding.OrganizationID, finding.ContractID)
			if err != nil {
				return fmt.Errorf("failed to load contract for missing fields: %w", err)
			}
			fallback = versions.NewSnapshot(contract, "")
		}
		repaired, err := versions.Repair(inspection, fallback)
		if err != nil {
			return err
		}
		if dryRun {
			return nil
		}

		previousHash := version.ContentHash
		if err := version.SetSnapshot(repaired); err != nil {
			return err
		}
		if err := tx.Versions.UpdateSnapshot(ctx, version); err != nil {
			return err
		}
		return tx.Audit.Create(ctx, audit.NewEntry(identity.System(finding.OrganizationID), audit.ActionVersionRepair,
			audit.ResourceVersion, version.ID, map[string]interface{}{
				"contract_id":   finding.ContractID,
				"number":        finding.Number,
				"issues":        issueKinds(inspection.Issues),
				"previous_hash": previousHash,
				"content_hash":  version.ContentHash,
			}))
	}

	if dryRun {
		return fix(s.uow.Stores())
	}
	return s.uow.WithinTx(ctx, fix)
}

func issueKinds(issues []versions.Issue) []string {
	kinds := make([]string, len(issues))
	for i, issue := range issues {
		kinds[i] = issue.Kind
	}
	return kinds
}
