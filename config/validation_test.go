package config

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Log:     LogConfig{Level: "info"},
		Builder: BuilderConfig{Joiner: "AND"},
	}
}

func TestValidateDatabase(t *testing.T) {
	tests := []struct {
		name    string
		db      DatabaseConfig
		wantErr string
	}{
		{
			name: "not_configured",
			db:   DatabaseConfig{},
		},
		{
			name: "mysql_full",
			db:   DatabaseConfig{Type: MySQL, Host: testLocalhost, Port: 3306, Database: "shop", Username: "root"},
		},
		{
			name: "connection_string_only_needs_type",
			db:   DatabaseConfig{Type: PostgreSQL, ConnectionString: "postgres://u:p@h/db"},
		},
		{
			name: "oracle_service_name_without_database",
			db:   DatabaseConfig{Type: Oracle, Host: testLocalhost, Port: 1521, ServiceName: "XE", Username: "scott"},
		},
		{
			name:    "oracle_without_database_or_service",
			db:      DatabaseConfig{Type: Oracle, Host: testLocalhost, Port: 1521, Username: "scott"},
			wantErr: "database.database",
		},
		{
			name:    "missing_type",
			db:      DatabaseConfig{Host: testLocalhost},
			wantErr: "config_missing: database.type required",
		},
		{
			name:    "unsupported_type",
			db:      DatabaseConfig{Type: "mongodb", Host: testLocalhost},
			wantErr: "must be one of: mysql, postgresql, oracle",
		},
		{
			name:    "invalid_port",
			db:      DatabaseConfig{Type: MySQL, Host: testLocalhost, Port: 70000},
			wantErr: "database.port",
		},
		{
			name:    "missing_username",
			db:      DatabaseConfig{Type: MySQL, Host: testLocalhost, Port: 3306, Database: "shop"},
			wantErr: "SQLFRAG_DATABASE_USERNAME",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			cfg.Database = tt.db

			err := Validate(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)

			var configErr *ConfigError
			assert.True(t, errors.As(err, &configErr))
		})
	}
}

func TestValidateAppliesPoolDefaults(t *testing.T) {
	cfg := validConfig()
	cfg.Database = DatabaseConfig{Type: PostgreSQL, ConnectionString: "postgres://h/db"}
	cfg.Database.Pool.Idle.Time = time.Second

	require.NoError(t, Validate(cfg))
	assert.Equal(t, int32(defaultMaxConns), cfg.Database.Pool.Max.Connections)
	assert.Equal(t, time.Second, cfg.Database.Pool.Idle.Time)
	assert.Equal(t, defaultConnMaxLifetime, cfg.Database.Pool.Lifetime.Max)
}

func TestValidateStructTags(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "log_level",
			mutate:  func(c *Config) { c.Log.Level = "chatty" },
			wantErr: "log.level",
		},
		{
			name:    "negative_pool",
			mutate:  func(c *Config) { c.Database.Pool.Max.Connections = -1 },
			wantErr: "database.pool.max.connections",
		},
		{
			name:    "empty_mapped_column",
			mutate:  func(c *Config) { c.Builder.Columns = map[string]string{"search": ""} },
			wantErr: "builder.columns",
		},
		{
			name:    "dotted_column_ok",
			mutate:  func(c *Config) { c.Builder.Columns = map[string]string{"search": "p.title"} },
			wantErr: "",
		},
		{
			name:    "lowercase_joiner_ok",
			mutate:  func(c *Config) { c.Builder.Joiner = "or" },
			wantErr: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := Validate(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestBuilderVendor(t *testing.T) {
	cfg := validConfig()
	assert.Equal(t, MySQL, cfg.BuilderVendor())

	cfg.Database.Type = Oracle
	assert.Equal(t, Oracle, cfg.BuilderVendor())

	cfg.Builder.Vendor = PostgreSQL
	assert.Equal(t, PostgreSQL, cfg.BuilderVendor())
}
