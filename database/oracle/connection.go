// Package oracle opens Oracle connections through the pure Go go-ora driver.
package oracle

import (
	"database/sql"
	"fmt"

	go_ora "github.com/sijms/go-ora/v2"

	"github.com/gaborage/go-sqlfrag/config"
	"github.com/gaborage/go-sqlfrag/database/internal/sqldb"
	"github.com/gaborage/go-sqlfrag/database/types"
	"github.com/gaborage/go-sqlfrag/logger"
)

const defaultPort = 1521

var (
	openOracleDB = func(dsn string) (*sql.DB, error) {
		return sql.Open("oracle", dsn)
	}
	pingOracleDB sqldb.PingFunc = sqldb.Ping
)

// DSN returns the go-ora URL for cfg. ConnectionString is used verbatim when set;
// otherwise ServiceName, then SID, then Database addresses the instance.
func DSN(cfg *config.DatabaseConfig) string {
	if cfg.ConnectionString != "" {
		return cfg.ConnectionString
	}

	port := cfg.Port
	if port == 0 {
		port = defaultPort
	}

	service, opts := target(cfg)
	return go_ora.BuildUrl(cfg.Host, port, service, cfg.Username, cfg.Password, opts)
}

func target(cfg *config.DatabaseConfig) (service string, opts map[string]string) {
	switch {
	case cfg.ServiceName != "":
		return cfg.ServiceName, nil
	case cfg.SID != "":
		return "", map[string]string{"SID": cfg.SID}
	default:
		return cfg.Database, nil
	}
}

// NewConnection opens and pings an Oracle pool.
func NewConnection(cfg *config.DatabaseConfig, log logger.Logger) (types.Interface, error) {
	if log == nil {
		log = logger.Nop()
	}

	db, err := openOracleDB(DSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to open Oracle connection: %w", err)
	}

	conn, err := sqldb.Connect(db, types.Oracle, cfg.Pool, pingOracleDB, log)
	if err != nil {
		return nil, err
	}

	ev := log.Info().
		Str("host", cfg.Host).
		Int("port", cfg.Port)
	switch {
	case cfg.ServiceName != "":
		ev = ev.Str("service_name", cfg.ServiceName)
	case cfg.SID != "":
		ev = ev.Str("sid", cfg.SID)
	default:
		ev = ev.Str("database", cfg.Database)
	}
	ev.Msg("Connected to Oracle database")
	return conn, nil
}
