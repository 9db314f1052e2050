package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupCmd_Use(t *testing.T) {
	assert.Equal(t, "group", groupCmd.Use)
}

func TestGroupAddCmd_RequiresExactlyOneArg(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"group", "add"})

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestGroupAddCmd_CreatesGroup(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"group", "add", "acme"})

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), `Created group "acme"`)
}

func TestGroupAddCmd_ReportsConflict(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	require.NoError(t, seedGroup("acme", 0))

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"group", "add", "acme"})

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), `already exists`)
}

func TestGroupListCmd_Empty(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"group", "list"})

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "No groups yet")
}

func TestGroupListCmd_ShowsFileCounts(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	require.NoError(t, seedGroup("acme", 2))
	require.NoError(t, seedGroup("globex", 1))

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"group", "list"})

	err := rootCmd.Execute()

	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "acme")
	assert.Contains(t, out, "globex")
	assert.Contains(t, out, "2 files")
	assert.Contains(t, out, "Total: 2 groups")
}

func TestGroupRenameCmd_Renames(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	require.NoError(t, seedGroup("acme", 1))

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"group", "rename", "acme", "acme-corp"})

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), `Renamed group "acme" to "acme-corp"`)
}

func TestGroupRenameCmd_ReportsMissingOld(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"group", "rename", "ghost", "acme"})

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Cannot rename")
}

func TestGroupRemoveCmd_ReportsCounts(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	require.NoError(t, seedGroup("acme", 3))

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"group", "remove", "acme"})

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), `Removed group "acme" (3 artifacts`)
}
