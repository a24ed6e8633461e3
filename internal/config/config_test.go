package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"planner/internal/view"
)

func TestLoadOrCreateWritesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", DefaultConfigFileName)

	cfg, err := LoadOrCreate(path)
	require.NoError(t, err)
	assert.FileExists(t, path)

	assert.Equal(t, BackendSQLite, cfg.Backend)
	assert.Equal(t, filepath.Join(dir, "nested", DefaultDBName), cfg.DBPath)
	assert.Equal(t, filepath.Join(dir, "nested", DefaultDataFileName), cfg.DataFile)
	assert.Equal(t, view.FieldDueDate, cfg.Field())
	assert.Equal(t, "q", cfg.Keys.Quit)

	again, err := LoadOrCreate(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, again)
}

func TestLoadOrCreateReadsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultConfigFileName)
	content := `
backend = "yaml"
data_file = "/var/lib/planner/tasks.yaml"
date_field = "created"
log_path = "logs/planner.log"

[keys]
quit = "x"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadOrCreate(path)
	require.NoError(t, err)
	assert.Equal(t, BackendYAML, cfg.Backend)
	assert.Equal(t, "/var/lib/planner/tasks.yaml", cfg.DataFile)
	assert.Equal(t, filepath.Join(dir, DefaultDBName), cfg.DBPath)
	assert.Equal(t, filepath.Join(dir, "logs", "planner.log"), cfg.LogPath)
	assert.Equal(t, view.FieldCreatedAt, cfg.Field())
	assert.Equal(t, "x", cfg.Keys.Quit)
	assert.Equal(t, "a", cfg.Keys.Add, "unset keys keep defaults")
}

func TestLoadOrCreateValidation(t *testing.T) {
	tests := map[string]string{
		"backend":    `backend = "postgres"`,
		"date field": `date_field = "updated"`,
		"syntax":     `backend = `,
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), DefaultConfigFileName)
			require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
			_, err := LoadOrCreate(path)
			assert.Error(t, err)
		})
	}
}

func TestResolveConfigPathFromEnv(t *testing.T) {
	t.Setenv(envConfigPath, "/etc/planner.toml")
	assert.Equal(t, "/etc/planner.toml", ResolveConfigPath())
}
