package commands

import (
	"fmt"
	"strings"

	"github.com/rpsg-tech/clm-sub005/internal/app"
	"github.com/rpsg-tech/clm-sub005/internal/domain/identity"
	"github.com/rpsg-tech/clm-sub005/internal/domain/users"
	"github.com/rpsg-tech/clm-sub005/internal/infrastructure/authn"
	"github.com/rpsg-tech/clm-sub005/internal/infrastructure/persistence"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

// MigrateCmd creates or updates every table
func (h *CommandHandler) MigrateCmd(cmd *cobra.Command, _ []string) error {
	if err := persistence.Migrate(h.db); err != nil {
		return err
	}
	h.logger.Info("Database migrations completed successfully")
	_, err := fmt.Fprintln(cmd.OutOrStdout(), "schema up to date")
	return err
}

// CreateOrganizationCmd creates a tenant
func (h *CommandHandler) CreateOrganizationCmd(cmd *cobra.Command, _ []string) error {
	name, _ := cmd.Flags().GetString("name")
	slug, _ := cmd.Flags().GetString("slug")

	service, err := app.NewOrganizationService(h.uow, h.logger)
	if err != nil {
		return err
	}
	org, err := service.Create(cmd.Context(), name, slug)
	if err != nil {
		return fmt.Errorf("failed to create organization: %w", err)
	}
	return printJSON(cmd.OutOrStdout(), map[string]string{
		"id":   org.ID,
		"name": org.Name,
		"slug": org.Slug,
	})
}

// CreateAdminCmd creates the first admin of an organization. It runs as the
// system actor since no user can log in yet.
func (h *CommandHandler) CreateAdminCmd(cmd *cobra.Command, _ []string) error {
	orgSlug, _ := cmd.Flags().GetString("org")
	email, _ := cmd.Flags().GetString("email")
	password, _ := cmd.Flags().GetString("password")
	name, _ := cmd.Flags().GetString("name")

	org, err := h.organizationBySlug(cmd.Context(), strings.ToLower(orgSlug))
	if err != nil {
		return err
	}

	hasher, err := authn.NewBcryptHasher(bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	service, err := app.NewUserService(h.uow, hasher, h.logger)
	if err != nil {
		return err
	}

	user, err := service.Create(cmd.Context(), identity.System(org.ID), &users.UserInput{
		Email:       email,
		DisplayName: name,
		Role:        users.RoleAdmin,
		Password:    password,
	})
	if err != nil {
		return fmt.Errorf("failed to create admin: %w", err)
	}
	return printJSON(cmd.OutOrStdout(), map[string]string{
		"id":           user.ID,
		"organization": org.Slug,
		"email":        user.Email,
		"role":         user.Role,
	})
}

// InitMigrateCommands registers the migrate command
func InitMigrateCommands(rootCmd *cobra.Command, handler *CommandHandler) error {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		Args:  cobra.NoArgs,
		RunE:  handler.MigrateCmd,
	})
	return nil
}

// InitOrganizationCommands registers the org command group
func InitOrganizationCommands(rootCmd *cobra.Command, handler *CommandHandler) error {
	orgCmd := &cobra.Command{
		Use:   "org",
		Short: "Manage organizations",
	}

	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create an organization",
		Args:  cobra.NoArgs,
		RunE:  handler.CreateOrganizationCmd,
	}
	createCmd.Flags().String("name", "", "Display name of the organization")
	createCmd.Flags().String("slug", "", "Login slug, lower-case kebab")
	for _, flag := range []string{"name", "slug"} {
		if err := createCmd.MarkFlagRequired(flag); err != nil {
			return err
		}
	}

	orgCmd.AddCommand(createCmd)
	rootCmd.AddCommand(orgCmd)
	return nil
}

// InitUserCommands registers the user command group
func InitUserCommands(rootCmd *cobra.Command, handler *CommandHandler) error {
	userCmd := &cobra.Command{
		Use:   "user",
		Short: "Manage users",
	}

	createAdminCmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an admin user in an organization",
		Args:  cobra.NoArgs,
		RunE:  handler.CreateAdminCmd,
	}
	createAdminCmd.Flags().String("org", "", "Organization slug")
	createAdminCmd.Flags().String("email", "", "Login email")
	createAdminCmd.Flags().String("password", "", "Initial password, at least 12 characters")
	createAdminCmd.Flags().String("name", "", "Display name")
	for _, flag := range []string{"org", "email", "password", "name"} {
		if err := createAdminCmd.MarkFlagRequired(flag); err != nil {
			return err
		}
	}

	userCmd.AddCommand(createAdminCmd)
	rootCmd.AddCommand(userCmd)
	return nil
}
