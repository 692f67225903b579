package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/knadh/koanf/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	// Environment variable keys reused across tests
	testDatabaseType     = "SQLFRAG_DATABASE_TYPE"
	testDatabaseHost     = "SQLFRAG_DATABASE_HOST"
	testDatabasePort     = "SQLFRAG_DATABASE_PORT"
	testDatabaseDatabase = "SQLFRAG_DATABASE_DATABASE"
	testDatabaseUsername = "SQLFRAG_DATABASE_USERNAME"
	testDatabaseMaxConns = "SQLFRAG_DATABASE_POOL_MAX_CONNECTIONS"
	testLogLevel         = "SQLFRAG_LOG_LEVEL"
	testLocalhost        = "localhost"
)

func TestLoadWithDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.False(t, IsDatabaseConfigured(&cfg.Database))
	assert.Equal(t, "", cfg.Database.Type)
	assert.Equal(t, int32(0), cfg.Database.Pool.Max.Connections)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.Log.Pretty)

	assert.Equal(t, "AND", cfg.Builder.Joiner)
	assert.Empty(t, cfg.Builder.Columns)
	assert.Equal(t, MySQL, cfg.BuilderVendor())
}

func TestLoadWithEnvironmentVariables(t *testing.T) {
	t.Setenv(testDatabaseType, PostgreSQL)
	t.Setenv(testDatabaseHost, testLocalhost)
	t.Setenv(testDatabasePort, "5432")
	t.Setenv(testDatabaseDatabase, "orders")
	t.Setenv(testDatabaseUsername, "app")
	t.Setenv(testDatabaseMaxConns, "10")
	t.Setenv(testLogLevel, "debug")
	t.Setenv("SQLFRAG_BUILDER_COLUMNS_SEARCH", "name")
	t.Setenv("DATABASE_HOST", "ignored-without-prefix")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, IsDatabaseConfigured(&cfg.Database))
	assert.Equal(t, PostgreSQL, cfg.Database.Type)
	assert.Equal(t, testLocalhost, cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "orders", cfg.Database.Database)
	assert.Equal(t, "app", cfg.Database.Username)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, map[string]string{"search": "name"}, cfg.Builder.Columns)
	assert.Equal(t, PostgreSQL, cfg.BuilderVendor())

	// Pool defaults fill unset values only
	assert.Equal(t, int32(10), cfg.Database.Pool.Max.Connections)
	assert.Equal(t, int32(defaultMaxIdleConns), cfg.Database.Pool.Idle.Connections)
	assert.Equal(t, defaultConnMaxIdleTime, cfg.Database.Pool.Idle.Time)
	assert.Equal(t, defaultConnMaxLifetime, cfg.Database.Pool.Lifetime.Max)
}

func TestLoadInvalidEnvironmentVariables(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{
			name:    "invalid_database_port",
			env:     map[string]string{testDatabasePort: "not-a-number"},
			wantErr: "port",
		},
		{
			name:    "invalid_log_level",
			env:     map[string]string{testLogLevel: "super-loud"},
			wantErr: "log.level",
		},
		{
			name:    "invalid_joiner",
			env:     map[string]string{"SQLFRAG_BUILDER_JOINER": "XOR"},
			wantErr: "builder.joiner",
		},
		{
			name:    "invalid_column_mapping",
			env:     map[string]string{"SQLFRAG_BUILDER_COLUMNS_SEARCH": "title;drop"},
			wantErr: "sqlident",
		},
		{
			name:    "unsupported_vendor",
			env:     map[string]string{"SQLFRAG_BUILDER_VENDOR": "sqlite"},
			wantErr: "builder.vendor",
		},
		{
			name:    "missing_database_host",
			env:     map[string]string{testDatabaseType: MySQL},
			wantErr: "database.host required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for key, val := range tt.env {
				t.Setenv(key, val)
			}

			cfg, err := Load()
			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadFromBytes(t *testing.T) {
	data := []byte(`
log:
  level: warn
database:
  type: oracle
  host: db.internal
  port: 1521
  username: scott
  servicename: ORCLPDB1
  pool:
    idle:
      time: 1m
builder:
  joiner: OR
  columns:
    search: description
    date_from: p.created_at
`)

	cfg, err := LoadFromBytes(data)
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, Oracle, cfg.Database.Type)
	assert.Equal(t, "ORCLPDB1", cfg.Database.ServiceName)
	assert.Equal(t, time.Minute, cfg.Database.Pool.Idle.Time)
	assert.Equal(t, "OR", cfg.Builder.Joiner)
	assert.Equal(t, map[string]string{"search": "description", "date_from": "p.created_at"}, cfg.Builder.Columns)
	assert.Equal(t, Oracle, cfg.BuilderVendor())
	assert.Equal(t, "db.internal", cfg.GetString("database.host"))
	assert.Equal(t, "fallback", cfg.GetString("database.missing", "fallback"))
	assert.True(t, cfg.Exists("builder.columns.search"))
}

func TestLoadFromBytesEnvironmentWins(t *testing.T) {
	t.Setenv(testLogLevel, "error")

	cfg, err := LoadFromBytes([]byte("log:\n  level: warn\n"))
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.Log.Level)
}

func TestLoadFromBytesInvalidYAML(t *testing.T) {
	cfg, err := LoadFromBytes([]byte("log: [unterminated"))
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse yaml config")
}

func TestLoadReadsConfigFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultFile), []byte("builder:\n  vendor: postgresql\n"), 0o600))
	t.Chdir(dir)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, PostgreSQL, cfg.Builder.Vendor)
}

func TestLoadDefaultsInternalFunction(t *testing.T) {
	k := koanf.New(".")

	require.NoError(t, loadDefaults(k))

	assert.Equal(t, "info", k.String("log.level"))
	assert.False(t, k.Bool("log.pretty"))
	assert.Equal(t, "AND", k.String("builder.joiner"))
	assert.False(t, k.Exists("database.type"))
}

func TestEnvKey(t *testing.T) {
	key, value := envKey("SQLFRAG_DATABASE_POOL_MAX_CONNECTIONS", "5")
	assert.Equal(t, "database.pool.max.connections", key)
	assert.Equal(t, "5", value)
	assert.Equal(t, "SQLFRAG_DATABASE_HOST", EnvVar("database.host"))
}

func TestNilConfigGetters(t *testing.T) {
	var cfg *Config
	assert.False(t, cfg.Exists("log.level"))
	assert.Equal(t, "x", cfg.GetString("log.level", "x"))
}
