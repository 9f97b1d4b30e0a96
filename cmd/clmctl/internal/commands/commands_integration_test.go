//go:build integration
// +build integration

package commands

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTestConfig points clmctl at a sqlite file that survives between invocations
func writeTestConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	content := fmt.Sprintf(`database:
  type: sqlite
  dsn: %q
logger:
  log_level: error
  log_type: console
`, filepath.Join(dir, "clm.db"))

	path := filepath.Join(dir, "clmctl.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func run(t *testing.T, configPath string, args ...string) (string, error) {
	t.Helper()
	rootCmd, err := NewRootCommand(configPath)
	require.NoError(t, err)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err = rootCmd.Execute()
	return out.String(), err
}

func bootstrap(t *testing.T) string {
	t.Helper()
	configPath := writeTestConfig(t)

	_, err := run(t, configPath, "migrate")
	require.NoError(t, err)
	_, err = run(t, configPath, "org", "create", "--name", "Acme Corp", "--slug", "acme")
	require.NoError(t, err)
	return configPath
}

func TestMigrateCmd(t *testing.T) {
	out, err := run(t, writeTestConfig(t), "migrate")
	require.NoError(t, err)
	assert.Contains(t, out, "schema up to date")
}

func TestOrganizationAndAdminBootstrap(t *testing.T) {
	configPath := bootstrap(t)

	out, err := run(t, configPath, "user", "create-admin",
		"--org", "acme", "--email", "admin@acme.test", "--password", "correct-horse-battery", "--name", "Ada Admin")
	require.NoError(t, err)

	var created map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &created))
	assert.Equal(t, "admin", created["role"])
	assert.Equal(t, "acme", created["organization"])
	assert.NotEmpty(t, created["id"])

	_, err = run(t, configPath, "user", "create-admin",
		"--org", "acme", "--email", "admin@acme.test", "--password", "correct-horse-battery", "--name", "Ada Again")
	assert.Error(t, err)
}

func TestOrganizationCreate_DuplicateSlug(t *testing.T) {
	configPath := bootstrap(t)

	_, err := run(t, configPath, "org", "create", "--name", "Other", "--slug", "acme")
	assert.Error(t, err)
}

func TestCreateAdmin_UnknownOrganization(t *testing.T) {
	configPath := bootstrap(t)

	_, err := run(t, configPath, "user", "create-admin",
		"--org", "globex", "--email", "a@globex.test", "--password", "correct-horse-battery", "--name", "A")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `organization "globex"`)
}

func TestSnapshotsCheckAndRepair_EmptyDatabase(t *testing.T) {
	configPath := bootstrap(t)

	out, err := run(t, configPath, "snapshots", "check")
	require.NoError(t, err)
	var report CheckReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, 0, report.Scanned)
	assert.Equal(t, 0, report.Corrupt)

	out, err = run(t, configPath, "snapshots", "repair", "--dry-run", "--org", "acme")
	require.NoError(t, err)
	assert.Contains(t, out, `"dry_run": true`)
}

func TestAuditExport(t *testing.T) {
	configPath := bootstrap(t)
	target := filepath.Join(t.TempDir(), "audit.xlsx")

	out, err := run(t, configPath, "audit", "export", "--org", "acme", "--out", target)
	require.NoError(t, err)
	assert.Contains(t, out, "written to")

	info, err := os.Stat(target)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestAuditExport_RequiresXlsxExtension(t *testing.T) {
	configPath := bootstrap(t)

	_, err := run(t, configPath, "audit", "export", "--org", "acme", "--out", filepath.Join(t.TempDir(), "audit.csv"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), ".xlsx")
}

func TestRequiredFlags(t *testing.T) {
	_, err := run(t, writeTestConfig(t), "org", "create", "--name", "Acme")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "slug")
}
