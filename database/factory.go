package database

import (
	"fmt"
	"slices"

	"github.com/gaborage/go-sqlfrag/config"
	"github.com/gaborage/go-sqlfrag/database/mysql"
	"github.com/gaborage/go-sqlfrag/database/oracle"
	"github.com/gaborage/go-sqlfrag/database/postgresql"
	"github.com/gaborage/go-sqlfrag/database/types"
	"github.com/gaborage/go-sqlfrag/logger"
)

// connectors open a connection for each supported vendor. Tests replace entries.
var connectors = map[string]func(*config.DatabaseConfig, logger.Logger) (Interface, error){
	MySQL:      mysql.NewConnection,
	PostgreSQL: postgresql.NewConnection,
	Oracle:     oracle.NewConnection,
}

// NewConnection creates a database connection according to cfg. The concrete driver is
// selected by cfg.Type (supported: "mysql", "postgresql", "oracle"). If cfg.Type is
// unsupported an error wrapping types.ErrUnsupportedVendor is returned; if the chosen
// driver fails to initialize, that underlying error is returned.
func NewConnection(cfg *config.DatabaseConfig, log logger.Logger) (Interface, error) {
	if err := ValidateDatabaseType(cfg.Type); err != nil {
		return nil, err
	}
	return connectors[cfg.Type](cfg, log)
}

// NewExecutorFromConfig connects to the configured database and returns an Executor on it.
// It returns config.ErrNotConfigured when cfg has no database section.
func NewExecutorFromConfig(cfg *config.Config, log logger.Logger, opts ...ExecutorOption) (*Executor, Interface, error) {
	if !config.IsDatabaseConfigured(&cfg.Database) {
		return nil, nil, fmt.Errorf("database: %w", config.ErrNotConfigured)
	}
	if log == nil {
		log = logger.Nop()
	}

	conn, err := NewConnection(&cfg.Database, log)
	if err != nil {
		return nil, nil, err
	}

	exec, err := NewExecutor(conn, log, opts...)
	if err != nil {
		if closeErr := conn.Close(); closeErr != nil {
			log.Error().Err(closeErr).Msg("Failed to close database connection after executor setup failure")
		}
		return nil, nil, err
	}
	return exec, conn, nil
}

// ValidateDatabaseType returns nil if dbType is one of the supported database types.
// If dbType is not supported, it returns an error describing the invalid value and listing the supported types.
func ValidateDatabaseType(dbType string) error {
	if !slices.Contains(GetSupportedDatabaseTypes(), dbType) {
		return fmt.Errorf("%w: %s (supported: %v)", types.ErrUnsupportedVendor, dbType, GetSupportedDatabaseTypes())
	}
	return nil
}

// GetSupportedDatabaseTypes returns a list of supported database types
func GetSupportedDatabaseTypes() []string {
	return []string{MySQL, PostgreSQL, Oracle}
}
