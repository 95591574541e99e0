package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("EO_POSTGREST_URL", "https://project.supabase.co/rest/v1")
	t.Setenv("EO_SERVICE_KEY", "secret")
	t.Setenv("EO_PORT", "9000")

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err, "explicit config file must exist")

	cfg, err := loadWithoutFile(t)
	require.NoError(t, err)
	assert.Equal(t, BackendPostgREST, cfg.StoreBackend)
	assert.Equal(t, "https://project.supabase.co/rest/v1", cfg.PostgRESTURL)
	assert.Equal(t, "secret", cfg.ServiceKey)
	assert.Equal(t, "0.0.0.0:9000", cfg.Addr())
	assert.Equal(t, "release", cfg.Mode)
	assert.Equal(t, "contracts", cfg.ContractDir)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "eo-api.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
store_backend: postgres
postgres_dsn: postgres://localhost/eo?sslmode=disable
port: 8080
mode: debug
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, BackendPostgres, cfg.StoreBackend)
	assert.Equal(t, "postgres://localhost/eo?sslmode=disable", cfg.PostgresDSN)
	assert.Equal(t, "0.0.0.0:8080", cfg.Addr())
	assert.Equal(t, "debug", cfg.Mode)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		ok   bool
	}{
		{"postgrest with url", Config{StoreBackend: BackendPostgREST, PostgRESTURL: "http://x"}, true},
		{"postgrest without url", Config{StoreBackend: BackendPostgREST}, false},
		{"postgres with dsn", Config{StoreBackend: BackendPostgres, PostgresDSN: "postgres://x"}, true},
		{"postgres without dsn", Config{StoreBackend: BackendPostgres}, false},
		{"unknown backend", Config{StoreBackend: "sqlite"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

// loadWithoutFile runs Load from a directory with no eo-api.yaml so only
// defaults and environment apply.
func loadWithoutFile(t *testing.T) (*Config, error) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { os.Chdir(wd) })
	return Load("")
}
