//go:build integration
// +build integration

package app

import (
	"context"
	"testing"

	"github.com/rpsg-tech/clm-sub005/internal/domain/audit"
	"github.com/rpsg-tech/clm-sub005/internal/domain/clmerr"
	"github.com/rpsg-tech/clm-sub005/internal/domain/contracts"
	"github.com/rpsg-tech/clm-sub005/internal/domain/templates"
	"github.com/rpsg-tech/clm-sub005/internal/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContractService_Create_InlineBody_Success(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)
	tenant := SetupTestTenant(t, services)
	ctx := context.Background()

	input := NewTestContractInput()
	input.Body = `<p onclick="steal()">Terms</p><script>alert(1)</script>`

	contract, err := services.ContractService.Create(ctx, tenant.Legal, input)
	require.NoError(t, err)
	assert.Equal(t, contracts.StatusDraft, contract.Status)
	assert.Equal(t, 1, contract.CurrentVersion)
	assert.Equal(t, tenant.Legal.UserID, contract.OwnerID)

	version, err := services.VersionService.Get(ctx, tenant.Viewer, contract.ID, 1)
	require.NoError(t, err)
	snapshot, err := version.Decode()
	require.NoError(t, err)
	assert.Equal(t, "<p>Terms</p>", snapshot.Body)
	assert.Equal(t, "Master Services Agreement", snapshot.Title)

	logs, err := services.DBContext.Audit.List(ctx, tenant.Organization.ID, &audit.AuditLogQuery{ResourceID: contract.ID})
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, audit.ActionContractCreate, logs[0].Action)
	require.NotNil(t, logs[0].ActorID)
	assert.Equal(t, tenant.Legal.UserID, *logs[0].ActorID)
}

func TestContractService_Create_FromTemplate_Success(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)
	tenant := SetupTestTenant(t, services)
	ctx := context.Background()

	template, err := services.TemplateService.Create(ctx, tenant.Legal, &templates.TemplateInput{
		Name:   "NDA",
		Body:   "<p>Between {{party}} and {{ counterparty }} for {{term}}</p>",
		Active: true,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"party", "counterparty", "term"}, template.Variables)

	input := NewTestContractInput()
	input.Body = ""
	input.TemplateID = &template.ID
	input.Values = map[string]string{"party": "Acme", "counterparty": "Globex & Sons"}

	contract, err := services.ContractService.Create(ctx, tenant.Legal, input)
	require.NoError(t, err)
	require.NotNil(t, contract.TemplateID)

	version, err := services.VersionService.Get(ctx, tenant.Legal, contract.ID, 1)
	require.NoError(t, err)
	snapshot, err := version.Decode()
	require.NoError(t, err)
	assert.Equal(t, "<p>Between Acme and Globex &amp; Sons for {{term}}</p>", snapshot.Body)

	// deleting the template leaves the contract and its reference alone
	require.NoError(t, services.TemplateService.DeleteByID(ctx, tenant.Legal, template.ID))
	kept, err := services.ContractService.GetByID(ctx, tenant.Legal, contract.ID)
	require.NoError(t, err)
	assert.Equal(t, template.ID, *kept.TemplateID)
}

func TestContractService_Create_InactiveTemplate_Conflict(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)
	tenant := SetupTestTenant(t, services)
	ctx := context.Background()

	template, err := services.TemplateService.Create(ctx, tenant.Legal, &templates.TemplateInput{Name: "Old", Body: "<p>x</p>"})
	require.NoError(t, err)

	input := NewTestContractInput()
	input.TemplateID = &template.ID
	_, err = services.ContractService.Create(ctx, tenant.Legal, input)
	assert.ErrorIs(t, err, clmerr.ErrConflict)
}

func TestContractService_Create_ViewerForbidden(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)
	tenant := SetupTestTenant(t, services)

	_, err := services.ContractService.Create(context.Background(), tenant.Viewer, NewTestContractInput())
	assert.ErrorIs(t, err, clmerr.ErrForbidden)
}

func TestContractService_Update_AppendsVersion(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)
	tenant := SetupTestTenant(t, services)
	ctx := context.Background()

	contract, err := services.ContractService.Create(ctx, tenant.Legal, NewTestContractInput())
	require.NoError(t, err)

	title := "Amended Agreement"
	body := "<p>New terms</p>"
	updated, err := services.ContractService.Update(ctx, tenant.Legal, contract.ID, &contracts.ContractUpdate{
		Title:   &title,
		Body:    &body,
		Comment: "second draft",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, updated.CurrentVersion)
	assert.Equal(t, title, updated.Title)

	history, err := services.VersionService.List(ctx, tenant.Viewer, contract.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "second draft", history[1].Comment)

	changes, err := services.VersionService.Diff(ctx, tenant.Viewer, contract.ID, 1, 2)
	require.NoError(t, err)
	fields := changedFields(changes)
	assert.ElementsMatch(t, []string{"title", "body"}, fields)

	// identical content does not create a version
	same, err := services.ContractService.Update(ctx, tenant.Legal, contract.ID, &contracts.ContractUpdate{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, 2, same.CurrentVersion)
}

func TestContractService_Update_Errors(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)
	tenant := SetupTestTenant(t, services)
	ctx := context.Background()

	contract, err := services.ContractService.Create(ctx, tenant.Legal, NewTestContractInput())
	require.NoError(t, err)

	_, err = services.ContractService.Update(ctx, tenant.Legal, contract.ID, &contracts.ContractUpdate{})
	assert.ErrorIs(t, err, clmerr.ErrValidation)

	currency := "eur"
	_, err = services.ContractService.Update(ctx, tenant.Legal, contract.ID, &contracts.ContractUpdate{Currency: &currency})
	assert.ErrorIs(t, err, clmerr.ErrValidation)

	_, err = services.ContractService.Transition(ctx, tenant.Legal, contract.ID, contracts.StatusArchived)
	require.NoError(t, err)

	title := "Too late"
	_, err = services.ContractService.Update(ctx, tenant.Legal, contract.ID, &contracts.ContractUpdate{Title: &title})
	assert.ErrorIs(t, err, clmerr.ErrConflict)
}

func TestContractService_Transition(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)
	tenant := SetupTestTenant(t, services)
	ctx := context.Background()

	contract, err := services.ContractService.Create(ctx, tenant.Legal, NewTestContractInput())
	require.NoError(t, err)

	_, err = services.ContractService.Transition(ctx, tenant.Legal, contract.ID, contracts.StatusInReview)
	assert.ErrorIs(t, err, clmerr.ErrInvalidTransition, "in_review is entered by submitting for approval")

	_, err = services.ContractService.Transition(ctx, tenant.Legal, contract.ID, contracts.StatusExecuted)
	assert.ErrorIs(t, err, clmerr.ErrInvalidTransition)

	archived, err := services.ContractService.Transition(ctx, tenant.Legal, contract.ID, contracts.StatusArchived)
	require.NoError(t, err)
	assert.Equal(t, contracts.StatusArchived, archived.Status)

	_, err = services.ContractService.Transition(ctx, tenant.Legal, contract.ID, contracts.StatusDraft)
	assert.ErrorIs(t, err, clmerr.ErrInvalidTransition)

	logs, err := services.DBContext.Audit.List(ctx, tenant.Organization.ID, &audit.AuditLogQuery{Action: audit.ActionContractStatus})
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "archived", logs[0].Metadata["to"])
}

func TestContractService_DeleteByID_SoftDeletes(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)
	tenant := SetupTestTenant(t, services)
	ctx := context.Background()

	contract, err := services.ContractService.Create(ctx, tenant.Legal, NewTestContractInput())
	require.NoError(t, err)

	require.NoError(t, services.ContractService.DeleteByID(ctx, tenant.Legal, contract.ID))

	_, err = services.ContractService.GetByID(ctx, tenant.Legal, contract.ID)
	assert.ErrorIs(t, err, clmerr.ErrNotFound)

	history, err := services.DBContext.Versions.ListByContract(ctx, tenant.Organization.ID, contract.ID)
	require.NoError(t, err)
	assert.Len(t, history, 1)

	err = services.ContractService.DeleteByID(ctx, tenant.Legal, contract.ID)
	assert.ErrorIs(t, err, clmerr.ErrNotFound)
}

func TestContractService_TenantIsolation(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)
	first := SetupTestTenant(t, services)
	second := SetupTestTenant(t, services)
	ctx := context.Background()

	contract, err := services.ContractService.Create(ctx, first.Legal, NewTestContractInput())
	require.NoError(t, err)

	_, err = services.ContractService.GetByID(ctx, second.Admin, contract.ID)
	assert.ErrorIs(t, err, clmerr.ErrNotFound)

	_, err = services.VersionService.List(ctx, second.Admin, contract.ID)
	assert.ErrorIs(t, err, clmerr.ErrNotFound)

	list, err := services.ContractService.List(ctx, second.Admin, nil)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestContractService_List_Filters(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)
	tenant := SetupTestTenant(t, services)
	ctx := context.Background()

	for _, counterparty := range []string{"Globex", "Initech", "Globex Europe"} {
		input := NewTestContractInput()
		input.Counterparty = counterparty
		_, err := services.ContractService.Create(ctx, tenant.Legal, input)
		require.NoError(t, err)
	}

	list, err := services.ContractService.List(ctx, tenant.Viewer, &contracts.ContractQuery{Counterparty: "Globex", SortBy: "counterparty", SortOrder: "asc"})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Globex", list[0].Counterparty)

	_, err = services.ContractService.List(ctx, tenant.Viewer, &contracts.ContractQuery{SortBy: "owner"})
	assert.ErrorIs(t, err, clmerr.ErrValidation)
}
