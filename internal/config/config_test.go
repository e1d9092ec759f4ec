package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsWhenNoFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("ORGDIR_CONFIG_DIR", dir)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "store"), cfg.Store.Dir)
	assert.Equal(t, BackendFile, cfg.Store.Backend)
	assert.Equal(t, 100*time.Millisecond, cfg.Store.Debounce)
	assert.Equal(t, filepath.Join(dir, "mail.jsonl"), cfg.Corpus.Path)
	assert.Equal(t, "self", cfg.Directory.Self)
	assert.Equal(t, 150*time.Millisecond, cfg.UI.Grace)
	assert.Equal(t, 50*time.Millisecond, cfg.UI.Settle)
}

func TestLoad_FileThenEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("ORGDIR_CONFIG_DIR", dir)
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
store:
  backend: sqlite
  debounce: 250ms
directory:
  self: Me
ui:
  grace: 300ms
log:
  level: debug
`), 0o600))
	t.Setenv("ORGDIR_DIRECTORY_SELF", "owner@example.com")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, BackendSQLite, cfg.Store.Backend)
	assert.Equal(t, 250*time.Millisecond, cfg.Store.Debounce)
	assert.Equal(t, 300*time.Millisecond, cfg.UI.Grace)
	assert.Equal(t, "owner@example.com", cfg.Directory.Self)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_RejectsUnknownBackend(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("ORGDIR_CONFIG_DIR", dir)
	t.Setenv("ORGDIR_STORE_BACKEND", "postgres")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "store.backend")
}

func TestValidate_WatchNeedsFileBackend(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg, t.TempDir())
	cfg.Store.Backend = BackendMemory
	cfg.Store.Watch = true
	require.Error(t, cfg.Validate())
}
