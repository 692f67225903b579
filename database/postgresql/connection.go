// Package postgresql opens PostgreSQL connections through the pgx stdlib driver.
package postgresql

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/gaborage/go-sqlfrag/config"
	"github.com/gaborage/go-sqlfrag/database/internal/sqldb"
	"github.com/gaborage/go-sqlfrag/database/types"
	"github.com/gaborage/go-sqlfrag/logger"
)

const defaultPort = 5432

var (
	openPostgresDB = func(cfg *pgx.ConnConfig) *sql.DB {
		return stdlib.OpenDB(*cfg)
	}
	pingPostgresDB sqldb.PingFunc = sqldb.Ping
)

// quoteDSN renders a keyword/value DSN value using libpq quoting: empty values become a quoted pair,
// and values with characters outside [A-Za-z0-9._-] are single-quoted with \ and ' escaped.
func quoteDSN(value string) string {
	if value == "" {
		return "''"
	}
	plain := strings.IndexFunc(value, func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '.' || r == '_' || r == '-')
	}) < 0
	if plain {
		return value
	}
	return "'" + dsnEscaper.Replace(value) + "'"
}

var dsnEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`)

// DSN returns the keyword/value DSN for cfg. ConnectionString is used verbatim when set.
func DSN(cfg *config.DatabaseConfig) string {
	if cfg.ConnectionString != "" {
		return cfg.ConnectionString
	}

	port := cfg.Port
	if port == 0 {
		port = defaultPort
	}

	parts := []string{
		"host=" + quoteDSN(cfg.Host),
		fmt.Sprintf("port=%d", port),
		"user=" + quoteDSN(cfg.Username),
		"password=" + quoteDSN(cfg.Password),
		"dbname=" + quoteDSN(cfg.Database),
	}
	if cfg.SSLMode != "" {
		parts = append(parts, "sslmode="+quoteDSN(cfg.SSLMode))
	}
	return strings.Join(parts, " ")
}

// NewConnection parses the DSN with pgx, opens a pool and pings it.
func NewConnection(cfg *config.DatabaseConfig, log logger.Logger) (types.Interface, error) {
	if log == nil {
		log = logger.Nop()
	}

	pgxConfig, err := pgx.ParseConfig(DSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to parse PostgreSQL config: %w", err)
	}

	conn, err := sqldb.Connect(openPostgresDB(pgxConfig), types.PostgreSQL, cfg.Pool, pingPostgresDB, log)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("host", pgxConfig.Host).
		Int("port", int(pgxConfig.Port)).
		Str("database", pgxConfig.Database).
		Msg("Connected to PostgreSQL database")
	return conn, nil
}
