package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "orders.db", cfg.DBPath)
	assert.Equal(t, "backups", cfg.BackupDir)
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "orderdesk.yaml")
	require.NoError(t, os.WriteFile(path, []byte("db_path: /data/shop.db\nbackup_dir: /data/backups\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/data/shop.db", cfg.DBPath)
	assert.Equal(t, "/data/backups", cfg.BackupDir)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "orderdesk.yaml")
	require.NoError(t, os.WriteFile(path, []byte("db_path: /data/shop.db\n"), 0o644))

	t.Setenv("ORDERDESK_DB", "/env/shop.db")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/env/shop.db", cfg.DBPath)
	assert.Equal(t, "backups", cfg.BackupDir, "unset keys keep defaults")
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orderdesk.yaml")
	require.NoError(t, os.WriteFile(path, []byte(":\n\t-"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}
