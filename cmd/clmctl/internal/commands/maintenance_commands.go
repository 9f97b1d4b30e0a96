package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rpsg-tech/clm-sub005/internal/app"
	"github.com/rpsg-tech/clm-sub005/internal/domain/audit"
	"github.com/rpsg-tech/clm-sub005/internal/domain/identity"
	"github.com/rpsg-tech/clm-sub005/internal/domain/versions"
	"github.com/rpsg-tech/clm-sub005/internal/infrastructure/export"

	"github.com/spf13/cobra"
)

// CheckReport is printed by snapshots check
type CheckReport struct {
	Scanned  int                `json:"scanned"`
	Corrupt  int                `json:"corrupt"`
	Findings []versions.Finding `json:"findings"`
}

// orgFilter resolves an optional --org slug to an organization id
func (h *CommandHandler) orgFilter(cmd *cobra.Command) (string, error) {
	slug, _ := cmd.Flags().GetString("org")
	if slug == "" {
		return "", nil
	}
	org, err := h.organizationBySlug(cmd.Context(), strings.ToLower(slug))
	if err != nil {
		return "", err
	}
	return org.ID, nil
}

// CheckSnapshotsCmd reports corrupt version snapshots without changing them
func (h *CommandHandler) CheckSnapshotsCmd(cmd *cobra.Command, _ []string) error {
	orgID, err := h.orgFilter(cmd)
	if err != nil {
		return err
	}
	maintenance, err := app.NewSnapshotMaintenance(h.uow, h.logger)
	if err != nil {
		return err
	}

	findings, scanned, err := maintenance.Check(cmd.Context(), orgID)
	if err != nil {
		return err
	}
	if findings == nil {
		findings = []versions.Finding{}
	}
	return printJSON(cmd.OutOrStdout(), CheckReport{Scanned: scanned, Corrupt: len(findings), Findings: findings})
}

// RepairSnapshotsCmd repairs corrupt version snapshots through the ORM
func (h *CommandHandler) RepairSnapshotsCmd(cmd *cobra.Command, _ []string) error {
	orgID, err := h.orgFilter(cmd)
	if err != nil {
		return err
	}
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	maintenance, err := app.NewSnapshotMaintenance(h.uow, h.logger)
	if err != nil {
		return err
	}
	report, err := maintenance.Repair(cmd.Context(), orgID, dryRun)
	if err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), report)
}

// ExportAuditCmd writes the audit trail of an organization to an xlsx file
func (h *CommandHandler) ExportAuditCmd(cmd *cobra.Command, _ []string) error {
	orgSlug, _ := cmd.Flags().GetString("org")
	out, _ := cmd.Flags().GetString("out")
	if filepath.Ext(out) != ".xlsx" {
		return fmt.Errorf("output file %q must end in .xlsx", out)
	}

	org, err := h.organizationBySlug(cmd.Context(), strings.ToLower(orgSlug))
	if err != nil {
		return err
	}
	service, err := app.NewAuditService(h.uow, export.NewExcelAuditExporter(), h.logger)
	if err != nil {
		return err
	}

	file, err := os.OpenFile(out, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", out, err)
	}
	if err := service.Export(cmd.Context(), identity.System(org.ID), audit.NewAuditLogQuery(), file); err != nil {
		_ = file.Close()
		_ = os.Remove(out)
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", out, err)
	}

	_, err = fmt.Fprintf(cmd.OutOrStdout(), "audit trail of %s written to %s\n", org.Slug, out)
	return err
}

// InitSnapshotCommands registers the snapshots command group
func InitSnapshotCommands(rootCmd *cobra.Command, handler *CommandHandler) error {
	snapshotsCmd := &cobra.Command{
		Use:   "snapshots",
		Short: "Inspect and repair stored contract version snapshots",
	}
	snapshotsCmd.PersistentFlags().String("org", "", "Limit to one organization slug")

	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "Report corrupt snapshots",
		Long: `A snapshot is corrupt when it is not valid JSON, when it is a JSON string
holding encoded JSON, when a required key is missing or when its content hash
does not match.`,
		Args: cobra.NoArgs,
		RunE: handler.CheckSnapshotsCmd,
	}

	repairCmd := &cobra.Command{
		Use:   "repair",
		Short: "Repair corrupt snapshots",
		Long: `Decodes double-encoded snapshots, fills missing keys from the contract row and
recomputes content hashes. Every repair is audited. Snapshots that cannot be
parsed are reported and left unchanged.`,
		Args: cobra.NoArgs,
		RunE: handler.RepairSnapshotsCmd,
	}
	repairCmd.Flags().Bool("dry-run", false, "Report what would be repaired without writing")

	snapshotsCmd.AddCommand(checkCmd, repairCmd)
	rootCmd.AddCommand(snapshotsCmd)
	return nil
}

// InitAuditCommands registers the audit command group
func InitAuditCommands(rootCmd *cobra.Command, handler *CommandHandler) error {
	auditCmd := &cobra.Command{
		Use:   "audit",
		Short: "Work with the audit trail",
	}

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Export an organization's audit trail as xlsx",
		Args:  cobra.NoArgs,
		RunE:  handler.ExportAuditCmd,
	}
	exportCmd.Flags().String("org", "", "Organization slug")
	exportCmd.Flags().String("out", "", "Output .xlsx file")
	for _, flag := range []string{"org", "out"} {
		if err := exportCmd.MarkFlagRequired(flag); err != nil {
			return err
		}
	}

	auditCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(auditCmd)
	return nil
}
