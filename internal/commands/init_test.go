package commands_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/statements/internal/accounts"
)

var binaryPath string

func TestMain(m *testing.M) {
	// Build the binary once for all tests.
	tmpDir, err := os.MkdirTemp("", "statements-test-*")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(tmpDir)

	binaryPath = filepath.Join(tmpDir, "statements")
	cmd := exec.Command("go", "build", "-o", binaryPath, "../../cmd/statements")
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		panic("failed to build binary: " + err.Error())
	}

	os.Exit(m.Run())
}

func runStatements(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := exec.Command(binaryPath, args...)
	out, err := cmd.CombinedOutput()
	return string(out), err
}

func TestInit_CreatesStructure(t *testing.T) {
	dir := t.TempDir()
	_, err := runStatements(t, "init", dir, "--name", "Test Biz", "--no-git")
	require.NoError(t, err)

	for _, d := range []string{"accounts", "logs"} {
		info, err := os.Stat(filepath.Join(dir, d))
		require.NoError(t, err, "directory %s should exist", d)
		assert.True(t, info.IsDir(), "%s should be a directory", d)
	}
	_, err = os.Stat(filepath.Join(dir, ".git"))
	assert.True(t, os.IsNotExist(err), "--no-git skips the repository")
}

func TestInit_Config(t *testing.T) {
	dir := t.TempDir()
	_, err := runStatements(t, "init", dir, "--name", "My Company", "--no-git")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "statements.yaml"))
	require.NoError(t, err)
	contents := string(data)

	assert.Contains(t, contents, "name: My Company")
	assert.Contains(t, contents, "company_id: my-company")
	assert.Contains(t, contents, "entity_type: llc_single_member")
}

func TestInit_Accounts(t *testing.T) {
	dir := t.TempDir()
	_, err := runStatements(t, "init", dir, "--name", "Test Biz", "--no-git")
	require.NoError(t, err)

	accts, err := accounts.Load(dir)
	require.NoError(t, err)
	assert.Len(t, accts, 18, "default LLC single member chart has 18 accounts")
	for _, a := range accts {
		assert.Equal(t, "test-biz", a.CompanyID)
	}

	idx, err := accounts.NewIndex(accts)
	require.NoError(t, err, "default chart must index cleanly")
	assert.Equal(t, []int{4010, 4020}, idx.Children(4000))
}

func TestInit_GitRepo(t *testing.T) {
	dir := t.TempDir()
	out, err := runStatements(t, "init", dir, "--name", "Test Biz")
	require.NoError(t, err, out)

	_, err = os.Stat(filepath.Join(dir, ".git"))
	require.NoError(t, err, ".git should exist")

	log := exec.Command("git", "log", "--format=%s|%an <%ae>", "-1")
	log.Dir = dir
	got, err := log.Output()
	require.NoError(t, err)
	assert.Contains(t, string(got), "init: Initialize Test Biz|Statements <statements@cleared.dev>")
}

func TestInit_RequiresName(t *testing.T) {
	_, err := runStatements(t, "init", t.TempDir())
	require.Error(t, err, "init without --name should fail")
}

func TestVersion(t *testing.T) {
	out, err := runStatements(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "statements version dev")
}
