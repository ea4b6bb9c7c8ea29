package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_FileEnvAndFlags(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "powerpages.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
sync_directory: /srv/site
database: /var/lib/powerpages/pages.db
log:
  level: debug
  file: /var/log/powerpages.log
`), 0644))

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "/srv/site", cfg.SyncDirectory)
	assert.Equal(t, "/var/lib/powerpages/pages.db", cfg.Database)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 10, cfg.Log.MaxSizeMB)
	assert.Equal(t, "/var/lib/powerpages/pages.db.lock", cfg.LockPath())

	t.Setenv("POWERPAGES_SYNC_DIRECTORY", "/env/site")
	t.Setenv("POWERPAGES_LOG_LEVEL", "info")
	cfg, err = Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "/env/site", cfg.SyncDirectory)
	assert.Equal(t, "info", cfg.Log.Level)

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("sync-dir", "", "")
	flags.Bool("no-color", false, "")
	require.NoError(t, flags.Parse([]string{"--sync-dir", "/flag/site", "--no-color"}))
	cfg, err = Load(path, flags)
	require.NoError(t, err)
	assert.Equal(t, "/flag/site", cfg.SyncDirectory)
	assert.True(t, cfg.NoColor)
}

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", "/data")

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Empty(t, cfg.SyncDirectory)
	assert.Equal(t, "/data/powerpages/pages.db", cfg.Database)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.ErrorIs(t, cfg.RequireSyncDirectory(), ErrSyncDirectoryNotSet)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	assert.Error(t, err)
}

func TestExpandPath(t *testing.T) {
	t.Setenv("HOME", "/home/editor")

	got, err := expandPath("~/site")
	require.NoError(t, err)
	assert.Equal(t, "/home/editor/site", got)

	got, err = expandPath("")
	require.NoError(t, err)
	assert.Empty(t, got)
}
