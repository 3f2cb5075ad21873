package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"colsweep/pkg/models"
)

func isolateConfig(t *testing.T) string {
	t.Helper()
	configFile := filepath.Join(t.TempDir(), "config.yaml")
	t.Setenv("COLSWEEP_CONFIG", configFile)
	t.Setenv("DB_HOST", "")
	t.Setenv("DB_DATABASE", "")
	return configFile
}

func TestGetConfigFileHonorsEnv(t *testing.T) {
	configFile := isolateConfig(t)

	assert.Equal(t, configFile, GetConfigFile())
	assert.Equal(t, filepath.Dir(configFile), GetConfigPath())
}

func TestLoadMissingFileYieldsEmptyConfig(t *testing.T) {
	isolateConfig(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Empty(t, cfg.Connections)
	assert.False(t, Exists())
}

func TestSaveAndLoadRoundtrip(t *testing.T) {
	configFile := isolateConfig(t)

	original := &models.Config{
		Connections: []models.Connection{
			{
				Name:     "prod",
				Driver:   "sqlserver",
				Host:     "db.internal",
				Port:     1433,
				Database: "app",
				Schema:   "dbo",
				Username: "svc",
				Timeout:  45 * time.Second,
			},
			{
				Name:      "warehouse",
				Driver:    "snowflake",
				Account:   "xy12345",
				Database:  "ANALYTICS",
				Username:  "loader",
				Warehouse: "LOAD_WH",
				Role:      "LOADER",
			},
		},
		Analysis: models.AnalysisConfig{
			SampleLimit:          10000,
			Strict:               true,
			NullThresholdPercent: 85,
		},
		Report: models.ReportConfig{Format: "markdown", OutputDir: "/tmp/reports"},
	}

	require.NoError(t, Save(original))
	assert.True(t, Exists())

	info, err := os.Stat(configFile)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, original.Connections, loaded.Connections)
	assert.Equal(t, original.Analysis, loaded.Analysis)
	assert.Equal(t, original.Report, loaded.Report)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	configFile := isolateConfig(t)
	require.NoError(t, os.WriteFile(configFile, []byte("connections: [not: closed"), 0600))

	_, err := Load()
	assert.Error(t, err)
}

func TestEnvOverridesAppendConnection(t *testing.T) {
	isolateConfig(t)
	t.Setenv("DB_HOST", "envhost")
	t.Setenv("DB_DATABASE", "envdb")
	t.Setenv("DB_USER", "envuser")
	t.Setenv("DB_PASSWORD", "envpass")
	t.Setenv("DB_SCHEMA", "sales")

	cfg, err := Load()
	require.NoError(t, err)

	conn := cfg.FindConnection("env")
	require.NotNil(t, conn)
	assert.Equal(t, "sqlserver", conn.Driver)
	assert.Equal(t, "envhost", conn.Host)
	assert.Equal(t, "envdb", conn.Database)
	assert.Equal(t, "sales", conn.Schema)
	assert.Equal(t, "envuser", conn.Username)
	assert.Equal(t, "envpass", conn.Password)
}

func TestEnvOverridesRespectDriver(t *testing.T) {
	isolateConfig(t)
	t.Setenv("DB_HOST", "envhost")
	t.Setenv("DB_DATABASE", "envdb")
	t.Setenv("DB_DRIVER", "postgres")

	cfg, err := Load()
	require.NoError(t, err)

	conn := cfg.FindConnection("env")
	require.NotNil(t, conn)
	assert.Equal(t, "postgres", conn.Driver)
}

func TestEnvOverridesDoNotDuplicate(t *testing.T) {
	isolateConfig(t)
	t.Setenv("DB_HOST", "envhost")
	t.Setenv("DB_DATABASE", "envdb")

	require.NoError(t, Save(&models.Config{
		Connections: []models.Connection{
			{Name: "env", Driver: "mysql", Host: "configured", Database: "db", Username: "u"},
		},
	}))

	cfg, err := Load()
	require.NoError(t, err)
	require.Len(t, cfg.Connections, 1)
	assert.Equal(t, "configured", cfg.Connections[0].Host)
}

func TestEnvOverridesNeedHostAndDatabase(t *testing.T) {
	isolateConfig(t)
	t.Setenv("DB_HOST", "envhost")
	// DB_DATABASE stays empty.

	cfg, err := Load()
	require.NoError(t, err)
	assert.Nil(t, cfg.FindConnection("env"))
}
