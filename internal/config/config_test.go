package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"AOC_INPUTS_DIR", "AOC_LOG_LEVEL", "AOC_RESULTS_BACKEND",
		"AOC_SQLITE_PATH", "AOC_BQ_PROJECT", "PORT", "LOCAL_ONLY",
	} {
		t.Setenv(key, "")
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "inputs", cfg.InputsDir)
	assert.Equal(t, "none", cfg.Results.Backend)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_MissingFile(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestConfig_SaveLoad(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "nested", "aoc.yaml")

	cfg := Default()
	cfg.Workers = 4
	cfg.Results.Backend = "sqlite"
	cfg.Results.SQLite.Path = "/tmp/answers.db"
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "aoc.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logging:\n  level: debug\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, "inputs", cfg.InputsDir)
}

func TestLoad_BadYAML(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "aoc.yaml")
	require.NoError(t, os.WriteFile(path, []byte("workers: [1, 2"), 0o644))

	_, err := Load(path)
	assert.ErrorContains(t, err, "failed to parse config")
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("AOC_INPUTS_DIR", "/srv/inputs")
	t.Setenv("AOC_LOG_LEVEL", "warn")
	t.Setenv("AOC_RESULTS_BACKEND", "bigquery")
	t.Setenv("AOC_BQ_PROJECT", "my-project")
	t.Setenv("AOC_SQLITE_PATH", "/srv/answers.db")
	t.Setenv("PORT", "9090")
	t.Setenv("LOCAL_ONLY", "true")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "/srv/inputs", cfg.InputsDir)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "bigquery", cfg.Results.Backend)
	assert.Equal(t, "my-project", cfg.Results.BigQuery.Project)
	assert.Equal(t, "/srv/answers.db", cfg.Results.SQLite.Path)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.True(t, cfg.Server.LocalOnly)
	assert.NoError(t, cfg.Validate())

	t.Setenv("LOCAL_ONLY", "sometimes")
	_, err = Load("")
	assert.ErrorContains(t, err, "LOCAL_ONLY")
}

func TestValidate_CollectsEveryProblem(t *testing.T) {
	cfg := Default()
	cfg.Workers = -1
	cfg.Logging.Level = "loud"
	cfg.Logging.Format = "xml"
	cfg.Results.Backend = "bigquery"
	cfg.Results.BigQuery.Table = ""

	err := cfg.Validate()
	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 5)
	assert.ErrorContains(t, err, "workers")
	assert.ErrorContains(t, err, "AOC_BQ_PROJECT")
}

func TestValidate_Backends(t *testing.T) {
	cfg := Default()
	cfg.Results.Backend = "sqlite"
	cfg.Results.SQLite.Path = ""
	assert.ErrorContains(t, cfg.Validate(), "sqlite.path")

	cfg.Results.Backend = "postgres"
	assert.ErrorContains(t, cfg.Validate(), "invalid results backend")
}
