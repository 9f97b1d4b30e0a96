//go:build integration
// +build integration

package app

import (
	"testing"
	"time"

	"github.com/rpsg-tech/clm-sub005/internal/domain/approvals"
	"github.com/rpsg-tech/clm-sub005/internal/domain/audit"
	"github.com/rpsg-tech/clm-sub005/internal/domain/auth"
	"github.com/rpsg-tech/clm-sub005/internal/domain/contracts"
	"github.com/rpsg-tech/clm-sub005/internal/domain/identity"
	"github.com/rpsg-tech/clm-sub005/internal/domain/organizations"
	"github.com/rpsg-tech/clm-sub005/internal/domain/templates"
	"github.com/rpsg-tech/clm-sub005/internal/domain/users"
	"github.com/rpsg-tech/clm-sub005/internal/domain/versions"
	"github.com/rpsg-tech/clm-sub005/internal/infrastructure/authn"
	"github.com/rpsg-tech/clm-sub005/internal/infrastructure/cache"
	"github.com/rpsg-tech/clm-sub005/internal/infrastructure/export"
	"github.com/rpsg-tech/clm-sub005/internal/infrastructure/persistence"
	"github.com/rpsg-tech/clm-sub005/internal/infrastructure/sanitizer"
	"github.com/rpsg-tech/clm-sub005/internal/pkg/testutil"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// TestJWTSecret signs sessions issued in service tests
const TestJWTSecret = "test-secret-with-at-least-32-characters"

// TestServices holds all application services and dependencies for testing
type TestServices struct {
	OrganizationService organizations.OrganizationService
	UserService         users.UserService
	AuthService         auth.AuthService
	TemplateService     templates.TemplateService
	ContractService     contracts.ContractService
	VersionService      versions.VersionService
	ApprovalService     approvals.ApprovalService
	AuditService        audit.AuditService
	SnapshotMaintenance versions.SnapshotMaintenance

	Hasher users.PasswordHasher

	// Infrastructure
	DBContext *persistence.TestContext
}

// SetupTestServices initializes all application services for integration tests
func SetupTestServices(t *testing.T, dbType string) *TestServices {
	t.Helper()

	logger := testutil.SetupTestLogger(t)
	dbContext := persistence.SetupTestDB(t, dbType)
	uow := dbContext.UoW

	contractCache := cache.NewNoopContractCache()
	ugc := sanitizer.NewUGCSanitizer()

	hasher, err := authn.NewBcryptHasher(bcrypt.MinCost)
	require.NoError(t, err, "Failed to create password hasher")

	issuer, err := authn.NewJWTIssuer(TestJWTSecret, time.Hour)
	require.NoError(t, err, "Failed to create token issuer")

	organizationService, err := NewOrganizationService(uow, logger)
	require.NoError(t, err, "Failed to create OrganizationService")

	userService, err := NewUserService(uow, hasher, logger)
	require.NoError(t, err, "Failed to create UserService")

	authService, err := NewAuthService(uow, hasher, issuer, logger)
	require.NoError(t, err, "Failed to create AuthService")

	templateService, err := NewTemplateService(uow, ugc, logger)
	require.NoError(t, err, "Failed to create TemplateService")

	contractService, err := NewContractService(uow, contractCache, ugc, logger)
	require.NoError(t, err, "Failed to create ContractService")

	versionService, err := NewVersionService(uow, contractCache, logger)
	require.NoError(t, err, "Failed to create VersionService")

	approvalService, err := NewApprovalService(uow, contractCache, logger)
	require.NoError(t, err, "Failed to create ApprovalService")

	auditService, err := NewAuditService(uow, export.NewExcelAuditExporter(), logger)
	require.NoError(t, err, "Failed to create AuditService")

	maintenance, err := NewSnapshotMaintenance(uow, logger)
	require.NoError(t, err, "Failed to create SnapshotMaintenance")

	return &TestServices{
		OrganizationService: organizationService,
		UserService:         userService,
		AuthService:         authService,
		TemplateService:     templateService,
		ContractService:     contractService,
		VersionService:      versionService,
		ApprovalService:     approvalService,
		AuditService:        auditService,
		SnapshotMaintenance: maintenance,
		Hasher:              hasher,
		DBContext:           dbContext,
	}
}

// TestTenant is an organization with one user per role
type TestTenant struct {
	Organization *organizations.Organization
	Admin        identity.Actor
	Legal        identity.Actor
	Approver     identity.Actor
	Viewer       identity.Actor
}

// SetupTestTenant creates an organization and one user per role
func SetupTestTenant(t *testing.T, services *TestServices) *TestTenant {
	t.Helper()

	org := persistence.CreateTestOrganization(t, services.DBContext)
	actor := func(role string) identity.Actor {
		user := persistence.CreateTestUser(t, services.DBContext, org.ID, role)
		return identity.Actor{UserID: user.ID, OrganizationID: org.ID, Role: role, IPAddress: "127.0.0.1"}
	}
	return &TestTenant{
		Organization: org,
		Admin:        actor(users.RoleAdmin),
		Legal:        actor(users.RoleLegal),
		Approver:     actor(users.RoleApprover),
		Viewer:       actor(users.RoleViewer),
	}
}

// NewTestContractInput returns a valid contract input with an inline body
func NewTestContractInput() *contracts.ContractInput {
	return &contracts.ContractInput{
		Title:        "Master Services Agreement",
		Counterparty: "Globex",
		Body:         "<p>The parties agree.</p>",
		Value:        250000,
		Currency:     "EUR",
	}
}
