package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewRootCommand builds clmctl with every sub-command registered
func NewRootCommand(configPath string) (*cobra.Command, error) {
	handler := NewCommandHandler(configPath)

	rootCmd := &cobra.Command{
		Use:   "clmctl",
		Short: "Maintenance tool for the contract lifecycle platform",
		Long: `clmctl runs schema migrations, bootstraps organizations and their first
admin, checks and repairs stored contract version snapshots and exports the
audit trail. It reads the same configuration file as clm-api.`,
		SilenceUsage:       true,
		PersistentPreRunE:  handler.Connect,
		PersistentPostRunE: handler.Close,
	}
	rootCmd.PersistentFlags().StringVar(&handler.configPath, "config", configPath, "Path to the configuration file")

	inits := []struct {
		name string
		fn   func(*cobra.Command, *CommandHandler) error
	}{
		{"migrate", InitMigrateCommands},
		{"org", InitOrganizationCommands},
		{"user", InitUserCommands},
		{"snapshots", InitSnapshotCommands},
		{"audit", InitAuditCommands},
	}
	for _, group := range inits {
		if err := group.fn(rootCmd, handler); err != nil {
			return nil, fmt.Errorf("failed to initialize %s commands: %w", group.name, err)
		}
	}
	return rootCmd, nil
}
