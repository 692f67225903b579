package mysql

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaborage/go-sqlfrag/config"
	"github.com/gaborage/go-sqlfrag/database/types"
	"github.com/gaborage/go-sqlfrag/logger"
)

func stubDriver(t *testing.T, open func(string) (*sql.DB, error), ping func(context.Context, *sql.DB) error) {
	t.Helper()
	origOpen, origPing := openMySQLDB, pingMySQLDB
	openMySQLDB, pingMySQLDB = open, ping
	t.Cleanup(func() {
		openMySQLDB, pingMySQLDB = origOpen, origPing
	})
}

func TestDSN(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.DatabaseConfig
		want string
	}{
		{
			name: "fields",
			cfg:  config.DatabaseConfig{Host: "db.local", Port: 3307, Database: "shop", Username: "app", Password: "s3cret"},
			want: "app:s3cret@tcp(db.local:3307)/shop?parseTime=true",
		},
		{
			name: "default port",
			cfg:  config.DatabaseConfig{Host: "db.local", Database: "shop", Username: "app"},
			want: "app@tcp(db.local:3306)/shop?parseTime=true",
		},
		{
			name: "connection string wins",
			cfg:  config.DatabaseConfig{Host: "ignored", ConnectionString: "root@unix(/tmp/mysql.sock)/shop"},
			want: "root@unix(/tmp/mysql.sock)/shop",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DSN(&tt.cfg))
		})
	}
}

func TestNewConnection(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	var gotDSN string
	stubDriver(t,
		func(dsn string) (*sql.DB, error) {
			gotDSN = dsn
			return db, nil
		},
		func(context.Context, *sql.DB) error { return nil },
	)

	cfg := &config.DatabaseConfig{Type: types.MySQL, Host: "localhost", Port: 3306, Database: "shop", Username: "app"}
	conn, err := NewConnection(cfg, logger.Nop())
	require.NoError(t, err)
	assert.Equal(t, types.MySQL, conn.DatabaseType())
	assert.Equal(t, "app@tcp(localhost:3306)/shop?parseTime=true", gotDSN)

	mock.ExpectClose()
	require.NoError(t, conn.Close())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNewConnectionLogsResolvedPort(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	stubDriver(t,
		func(string) (*sql.DB, error) { return db, nil },
		func(context.Context, *sql.DB) error { return nil },
	)

	var buf bytes.Buffer
	cfg := &config.DatabaseConfig{Type: types.MySQL, Host: "localhost", Database: "shop", Username: "app"}
	conn, err := NewConnection(cfg, logger.NewWithWriter(&buf, "info", false, nil))
	require.NoError(t, err)

	assert.Contains(t, buf.String(), `"port":3306`)
	assert.Contains(t, buf.String(), "Connected to MySQL database")

	mock.ExpectClose()
	require.NoError(t, conn.Close())
}

func TestNewConnectionErrors(t *testing.T) {
	t.Run("open failure", func(t *testing.T) {
		boom := errors.New("bad dsn")
		stubDriver(t,
			func(string) (*sql.DB, error) { return nil, boom },
			func(context.Context, *sql.DB) error { return nil },
		)

		conn, err := NewConnection(&config.DatabaseConfig{Host: "localhost"}, nil)
		assert.Nil(t, conn)
		assert.ErrorIs(t, err, boom)
	})

	t.Run("ping failure", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		mock.ExpectClose()

		boom := errors.New("access denied")
		stubDriver(t,
			func(string) (*sql.DB, error) { return db, nil },
			func(context.Context, *sql.DB) error { return boom },
		)

		conn, err := NewConnection(&config.DatabaseConfig{Host: "localhost"}, nil)
		assert.Nil(t, conn)
		assert.ErrorIs(t, err, boom)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
