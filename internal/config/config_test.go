package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "[metrics]\nenabled = true\n"))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, DriverMemory, cfg.Store.Driver)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, "0 0 * * * *", cfg.Jobs.OverdueSchedule)
	assert.True(t, cfg.Metrics.Enabled)
}

func TestLoad_PostgresAndRetry(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
[store]
driver = "postgres"

[database]
host = "localhost"
port = 5432
user = "rental"
password = "secret"
dbname = "rental"

[retry]
max_attempts = 5
initial_interval_ms = 50
max_interval_ms = 1000
`))
	require.NoError(t, err)

	assert.Equal(t, "host=localhost port=5432 user=rental password=secret dbname=rental sslmode=disable", cfg.Database.DSN())
	assert.Equal(t, uint(5), cfg.Retry.MaxAttempts)
	assert.Equal(t, int64(50), cfg.Retry.InitialInterval().Milliseconds())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("STORE_DRIVER", "firestore")
	t.Setenv("FIRESTORE_PROJECT_ID", "rental-prod")
	t.Setenv("HTTP_PORT", "9090")

	cfg, err := Load(writeConfig(t, "[store]\ndriver = \"memory\"\n"))
	require.NoError(t, err)

	assert.Equal(t, DriverFirestore, cfg.Store.Driver)
	assert.Equal(t, "rental-prod", cfg.Store.ProjectID)
	assert.Equal(t, 9090, cfg.Server.HTTPPort)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
		env  map[string]string
	}{
		{name: "unknown driver", body: "[store]\ndriver = \"mongo\"\n"},
		{name: "firestore without project", body: "[store]\ndriver = \"firestore\"\n"},
		{name: "postgres without host", body: "[store]\ndriver = \"postgres\"\n"},
		{name: "negative advance window", body: "[booking]\nmax_advance_days = -1\n"},
		{name: "port is not a number", body: "", env: map[string]string{"HTTP_PORT": "http"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load(writeConfig(t, tt.body))
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.ErrorIs(t, err, ErrLoadConfig)
}
