//go:build integration
// +build integration

package persistence

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rpsg-tech/clm-sub005/internal/domain/contracts"
	"github.com/rpsg-tech/clm-sub005/internal/domain/organizations"
	"github.com/rpsg-tech/clm-sub005/internal/domain/store"
	"github.com/rpsg-tech/clm-sub005/internal/domain/users"
	"github.com/rpsg-tech/clm-sub005/internal/domain/versions"
	"github.com/rpsg-tech/clm-sub005/internal/pkg/config"
	"github.com/rpsg-tech/clm-sub005/internal/pkg/testutil"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// TestContext holds test database and repositories
type TestContext struct {
	DB  *gorm.DB
	UoW store.UnitOfWork
	store.Stores
}

// SetupTestDB initializes test database with automatic cleanup
func SetupTestDB(t *testing.T, dbType string) *TestContext {
	t.Helper()

	var settings config.DatabaseSettings
	cleanupFunc := func() {}

	switch dbType {
	case config.SqliteDbType:
		settings = config.DatabaseSettings{
			Type: config.SqliteDbType,
			DSN:  ":memory:",
		}

	case config.PostgresDbType:
		uniqueDBName := "test_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
		settings = config.DatabaseSettings{
			Type: config.PostgresDbType,
			DSN:  "user=postgres password=postgres host=localhost port=5432 sslmode=disable",
			Name: uniqueDBName,
		}
		cleanupFunc = func() {
			adminDSN := "user=postgres password=postgres host=localhost port=5432 dbname=postgres sslmode=disable"
			_ = DropDatabase(adminDSN, uniqueDBName)
		}

	default:
		t.Fatalf("Unsupported database type: %s", dbType)
	}

	db, err := NewDBConnection(settings)
	require.NoError(t, err, "Failed to create database connection")

	t.Cleanup(func() {
		_ = CloseDB(db)
		cleanupFunc()
	})

	require.NoError(t, Migrate(db), "Failed to migrate schema")

	logger := testutil.SetupTestLogger(t)
	uow, err := NewUnitOfWork(db, logger)
	require.NoError(t, err, "Failed to create unit of work")

	return &TestContext{
		DB:     db,
		UoW:    uow,
		Stores: uow.Stores(),
	}
}

// CreateTestOrganization persists an organization with a unique slug
func CreateTestOrganization(t *testing.T, tc *TestContext) *organizations.Organization {
	t.Helper()

	org := &organizations.Organization{
		ID:              uuid.NewString(),
		Name:            "Acme Legal",
		Slug:            "acme-" + strings.ReplaceAll(uuid.NewString(), "-", "")[:8],
		DateTimeCreated: time.Now().UTC(),
	}
	require.NoError(t, tc.Organizations.Create(context.Background(), org))
	return org
}

// CreateTestUser persists an active user with role in orgID
func CreateTestUser(t *testing.T, tc *TestContext, orgID, role string) *users.User {
	t.Helper()

	id := uuid.NewString()
	user := &users.User{
		ID:              id,
		OrganizationID:  orgID,
		Email:           id[:8] + "@example.com",
		DisplayName:     "Test " + role,
		Role:            role,
		PasswordHash:    "$2a$10$placeholderplaceholderplaceholderplaceholderplaceho",
		Active:          true,
		DateTimeCreated: time.Now().UTC(),
	}
	require.NoError(t, tc.Users.Create(context.Background(), user))
	return user
}

// NewTestContract returns a draft contract that has not been persisted
func NewTestContract(orgID, ownerID string) *contracts.Contract {
	now := time.Now().UTC()
	return &contracts.Contract{
		ID:              uuid.NewString(),
		OrganizationID:  orgID,
		Title:           "Master Services Agreement",
		Counterparty:    "Globex",
		Status:          contracts.StatusDraft,
		OwnerID:         ownerID,
		CurrentVersion:  1,
		Value:           100000,
		Currency:        "USD",
		DateTimeCreated: now,
		DateTimeUpdated: now,
	}
}

// CreateTestContract persists a draft contract with its first version
func CreateTestContract(t *testing.T, tc *TestContext, orgID, ownerID string) (*contracts.Contract, *versions.ContractVersion) {
	t.Helper()

	contract := NewTestContract(orgID, ownerID)
	require.NoError(t, tc.Contracts.Create(context.Background(), contract))

	version := &versions.ContractVersion{
		ID:              uuid.NewString(),
		ContractID:      contract.ID,
		OrganizationID:  orgID,
		Number:          1,
		AuthorID:        ownerID,
		DateTimeCreated: time.Now().UTC(),
	}
	require.NoError(t, version.SetSnapshot(versions.NewSnapshot(contract, "<p>Initial terms</p>")))
	require.NoError(t, tc.Versions.Create(context.Background(), version))
	return contract, version
}
