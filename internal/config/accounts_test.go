// Package config provides tests for admin-account list loading.
package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cerrors "github.com/ethz-iam/iamctl/internal/errors"
)

func writeAccountFile(t *testing.T, dir, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, DefaultAccountFile), []byte(content), 0600); err != nil {
		t.Fatalf("write account file: %v", err)
	}
}

func TestLoadAdminAccountsSinglePath(t *testing.T) {
	dir := t.TempDir()
	writeAccountFile(t, dir, `
admin_accounts:
  - username: ad-alice
    password: hunter2
  - username: ad-bob
`)

	accounts, err := LoadAdminAccounts([]string{dir}, DefaultAccountFile)
	require.NoError(t, err)

	require.Len(t, accounts, 2)
	assert.Equal(t, "ad-alice", accounts[0].Username)
	assert.Equal(t, "hunter2", accounts[0].Extra["password"])
	assert.Equal(t, "ad-bob", accounts[1].Username)
}

func TestLoadAdminAccountsMergesPathsInOrder(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()
	writeAccountFile(t, first, "admin_accounts:\n  - username: a\n  - username: b\n")
	writeAccountFile(t, second, "admin_accounts:\n  - username: c\n")

	accounts, err := LoadAdminAccounts([]string{first, second}, DefaultAccountFile)
	require.NoError(t, err)

	var usernames []string
	for _, a := range accounts {
		usernames = append(usernames, a.Username)
	}
	assert.Equal(t, []string{"a", "b", "c"}, usernames)
}

func TestLoadAdminAccountsPreservesDuplicates(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()
	writeAccountFile(t, first, "admin_accounts:\n  - username: a\n")
	writeAccountFile(t, second, "admin_accounts:\n  - username: a\n")

	accounts, err := LoadAdminAccounts([]string{first, second}, DefaultAccountFile)
	require.NoError(t, err)

	assert.Len(t, accounts, 2)
}

func TestLoadAdminAccountsMissingFilesAreSkipped(t *testing.T) {
	accounts, err := LoadAdminAccounts([]string{t.TempDir(), t.TempDir()}, DefaultAccountFile)
	require.NoError(t, err)

	assert.Empty(t, accounts)
}

func TestLoadAdminAccountsParseErrorFailsClosed(t *testing.T) {
	good := t.TempDir()
	bad := t.TempDir()
	writeAccountFile(t, good, "admin_accounts:\n  - username: a\n")
	writeAccountFile(t, bad, "admin_accounts: [not: valid: yaml\n")

	accounts, err := LoadAdminAccounts([]string{good, bad}, DefaultAccountFile)

	// The good file's accounts must not leak out of a failed load.
	assert.Nil(t, accounts)
	require.Error(t, err)
	var cliErr *cerrors.CLIError
	require.ErrorAs(t, err, &cliErr)
	assert.Equal(t, cerrors.ErrCodeConfigParse, cliErr.Code)
}
