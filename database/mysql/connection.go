// Package mysql opens MySQL connections through go-sql-driver/mysql.
package mysql

import (
	"database/sql"
	"fmt"
	"net"
	"strconv"

	driver "github.com/go-sql-driver/mysql"

	"github.com/gaborage/go-sqlfrag/config"
	"github.com/gaborage/go-sqlfrag/database/internal/sqldb"
	"github.com/gaborage/go-sqlfrag/database/types"
	"github.com/gaborage/go-sqlfrag/logger"
)

const defaultPort = 3306

var (
	openMySQLDB = func(dsn string) (*sql.DB, error) {
		return sql.Open("mysql", dsn)
	}
	pingMySQLDB sqldb.PingFunc = sqldb.Ping
)

// DSN returns the driver DSN for cfg. ConnectionString is used verbatim when set.
func DSN(cfg *config.DatabaseConfig) string {
	if cfg.ConnectionString != "" {
		return cfg.ConnectionString
	}

	dc := driver.NewConfig()
	dc.Net = "tcp"
	dc.Addr = net.JoinHostPort(cfg.Host, strconv.Itoa(resolvePort(cfg)))
	dc.User = cfg.Username
	dc.Passwd = cfg.Password
	dc.DBName = cfg.Database
	dc.ParseTime = true
	return dc.FormatDSN()
}

func resolvePort(cfg *config.DatabaseConfig) int {
	if cfg.Port == 0 {
		return defaultPort
	}
	return cfg.Port
}

// NewConnection opens and pings a MySQL pool.
func NewConnection(cfg *config.DatabaseConfig, log logger.Logger) (types.Interface, error) {
	if log == nil {
		log = logger.Nop()
	}

	db, err := openMySQLDB(DSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to open MySQL connection: %w", err)
	}

	conn, err := sqldb.Connect(db, types.MySQL, cfg.Pool, pingMySQLDB, log)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("host", cfg.Host).
		Int("port", resolvePort(cfg)).
		Str("database", cfg.Database).
		Msg("Connected to MySQL database")
	return conn, nil
}
