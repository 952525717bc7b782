package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Web-Star-Studio/daton-esg-insight-sub026/internal/config"
)

func TestEnsureGitignore_CreatesNewFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	created, err := config.EnsureGitignore(dir)
	require.NoError(t, err)
	assert.True(t, created, "should report file was created")

	gitignorePath := filepath.Join(dir, ".gitignore")
	_, statErr := os.Stat(gitignorePath)
	require.NoError(t, statErr, ".gitignore file should exist")
}

func TestEnsureGitignore_DoesNotOverwriteExisting(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	gitignorePath := filepath.Join(dir, ".gitignore")

	customContent := "# my custom gitignore\nnode_modules/\n"
	require.NoError(t, os.WriteFile(gitignorePath, []byte(customContent), 0o644))

	created, err := config.EnsureGitignore(dir)
	require.NoError(t, err)
	assert.False(t, created, "should report file was NOT created")

	data, readErr := os.ReadFile(gitignorePath)
	require.NoError(t, readErr)
	assert.Equal(t, customContent, string(data), "existing content must be preserved")
}

func TestEnsureGitignore_CreatesParentDirectory(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	nestedDir := filepath.Join(base, "sub", "deep", ".esgcalc")

	created, err := config.EnsureGitignore(nestedDir)
	require.NoError(t, err)
	assert.True(t, created, "should report file was created")

	gitignorePath := filepath.Join(nestedDir, ".gitignore")
	data, readErr := os.ReadFile(gitignorePath)
	require.NoError(t, readErr)
	assert.Equal(t, config.GitignoreContent(), string(data), "content should match expected gitignore")
}

func TestEnsureGitignore_ContentVerification(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	created, err := config.EnsureGitignore(dir)
	require.NoError(t, err)
	require.True(t, created)

	gitignorePath := filepath.Join(dir, ".gitignore")
	data, readErr := os.ReadFile(gitignorePath)
	require.NoError(t, readErr)

	content := string(data)
	assert.Contains(t, content, "*.log")
	assert.Contains(t, content, "*.prom")
	assert.Contains(t, content, "logs/")
	assert.Contains(t, content, "# esgcalc project-local data (auto-generated)")
}

func TestEnsureGitignore_ReturnValues(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	// First call: should create.
	created, err := config.EnsureGitignore(dir)
	require.NoError(t, err)
	assert.True(t, created, "first call should return true")

	// Second call: should not create.
	created, err = config.EnsureGitignore(dir)
	require.NoError(t, err)
	assert.False(t, created, "second call should return false")
}
