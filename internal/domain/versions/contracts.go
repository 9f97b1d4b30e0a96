package versions

import (
	"context"

	"github.com/rpsg-tech/clm-sub005/internal/domain/identity"
)

// VersionRepository defines the interface for ContractVersion-related operations
type VersionRepository interface {
	Create(ctx context.Context, version *ContractVersion) error
	// ListByContract returns versions ordered by number ascending
	ListByContract(ctx context.Context, orgID, contractID string) ([]*ContractVersion, error)
	GetByNumber(ctx context.Context, orgID, contractID string, number int) (*ContractVersion, error)
	// UpdateSnapshot rewrites the snapshot and hash of a version. Only maintenance uses it.
	UpdateSnapshot(ctx context.Context, version *ContractVersion) error
	// Scan walks every version in batches. An empty orgID scans all organizations.
	Scan(ctx context.Context, orgID string, batchSize int, fn func(batch []*ContractVersion) error) error
}

// VersionService defines read, restore and compare operations on contract history
type VersionService interface {
	List(ctx context.Context, actor identity.Actor, contractID string) ([]*ContractVersion, error)
	Get(ctx context.Context, actor identity.Actor, contractID string, number int) (*ContractVersion, error)
	// Restore appends a new version carrying the snapshot of number.
	Restore(ctx context.Context, actor identity.Actor, contractID string, number int) (*ContractVersion, error)
	Diff(ctx context.Context, actor identity.Actor, contractID string, from, to int) ([]FieldChange, error)
}

// Finding describes a version whose stored snapshot is corrupt
type Finding struct {
	VersionID      string  `json:"version_id"`
	ContractID     string  `json:"contract_id"`
	OrganizationID string  `json:"organization_id"`
	Number         int     `json:"number"`
	Issues         []Issue `json:"issues"`
}

// RepairResult is the outcome of repairing one Finding
type RepairResult struct {
	Finding
	Repaired bool   `json:"repaired"`
	Error    string `json:"error,omitempty"`
}

// RepairReport summarizes a repair run
type RepairReport struct {
	Scanned int            `json:"scanned"`
	DryRun  bool           `json:"dry_run"`
	Results []RepairResult `json:"results"`
}

// SnapshotMaintenance finds and fixes corrupt snapshots
type SnapshotMaintenance interface {
	// Check reports corrupt snapshots without changing anything
	Check(ctx context.Context, orgID string) ([]Finding, int, error)
	// Repair fixes what it can. With dryRun nothing is written.
	Repair(ctx context.Context, orgID string, dryRun bool) (*RepairReport, error)
}
