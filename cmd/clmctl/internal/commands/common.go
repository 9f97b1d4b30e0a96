// Package commands holds the clmctl sub-commands.
package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/rpsg-tech/clm-sub005/internal/domain/organizations"
	"github.com/rpsg-tech/clm-sub005/internal/domain/store"
	"github.com/rpsg-tech/clm-sub005/internal/infrastructure/persistence"
	"github.com/rpsg-tech/clm-sub005/internal/pkg/config"
	"github.com/rpsg-tech/clm-sub005/internal/pkg/logger"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

// DefaultConfigPath is used when neither --config nor CONFIG_PATH is set
const DefaultConfigPath = "../../configs/rest-app.yaml"

// CommandHandler holds the connections shared by every sub-command. They are
// opened in the root command's pre-run so that --help needs no database.
type CommandHandler struct {
	configPath string
	logger     logger.Logger
	db         *gorm.DB
	uow        store.UnitOfWork
}

// NewCommandHandler creates a CommandHandler that reads its configuration from configPath
func NewCommandHandler(configPath string) *CommandHandler {
	return &CommandHandler{configPath: configPath}
}

// Connect loads the configuration, sets up the logger and opens the database
func (h *CommandHandler) Connect(_ *cobra.Command, _ []string) error {
	if h.db != nil {
		return nil
	}
	cfg, err := config.InitializeCliConfig(h.configPath)
	if err != nil {
		return err
	}

	// stdout carries command output
	cfg.Logger.Output = config.LogOutputStderr
	if err := logger.InitLogger(&cfg.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	h.logger, err = logger.GetLogger()
	if err != nil {
		return fmt.Errorf("failed to get logger instance: %w", err)
	}

	h.db, err = persistence.NewDBConnection(cfg.Database)
	if err != nil {
		return err
	}
	h.uow, err = persistence.NewUnitOfWork(h.db, h.logger)
	if err != nil {
		return fmt.Errorf("failed to create unit of work: %w", err)
	}
	return nil
}

// Close releases the database connection
func (h *CommandHandler) Close(_ *cobra.Command, _ []string) error {
	if h.db == nil {
		return nil
	}
	err := persistence.CloseDB(h.db)
	h.db = nil
	return err
}

// organizationBySlug resolves the --org flag
func (h *CommandHandler) organizationBySlug(ctx context.Context, slug string) (*organizations.Organization, error) {
	org, err := h.uow.Stores().Organizations.GetBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("organization %q: %w", slug, err)
	}
	return org, nil
}

// printJSON writes v indented to out
func printJSON(out io.Writer, v interface{}) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// ConfigPathFromEnv returns CONFIG_PATH or DefaultConfigPath
func ConfigPathFromEnv() string {
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		return path
	}
	return DefaultConfigPath
}
