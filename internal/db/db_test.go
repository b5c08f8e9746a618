package db

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"path/filepath"
	"testing"

	"souq-be/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDatabase_InvalidDriver(t *testing.T) {
	// "invalid_driver_name" is not registered, so sql.Open returns an error
	db, err := newDatabaseWithDriver(context.Background(), "invalid_driver_name", "")

	assert.Error(t, err)
	assert.Nil(t, db)
	assert.Contains(t, err.Error(), "failed to connect to DB")
}

func TestNewDatabase_PingFailure(t *testing.T) {
	db, err := newDatabaseWithDriver(context.Background(), "mock_driver_failure", "")

	assert.Error(t, err)
	assert.Nil(t, db)
	assert.Contains(t, err.Error(), "failed to ping DB")
}

func TestNewDatabase_Success(t *testing.T) {
	db, err := newDatabaseWithDriver(context.Background(), "mock_driver_success", "")
	require.NoError(t, err)
	assert.NotNil(t, db)
	_ = db.Close()
}

func TestNewDatabase_SQLite(t *testing.T) {
	cfg := &config.Config{
		StorageDriver: config.DriverSQLite,
		SQLitePath:    filepath.Join(t.TempDir(), "nested", "souq.db"),
	}

	db, dialect, err := NewDatabase(context.Background(), cfg)
	require.NoError(t, err)
	defer db.Close()

	assert.Equal(t, config.DriverSQLite, dialect)
	assert.NoError(t, db.Ping())
}

func TestNewDatabase_Memory(t *testing.T) {
	_, _, err := NewDatabase(context.Background(), &config.Config{StorageDriver: config.DriverMemory})
	assert.Error(t, err)
}

// --- Mock drivers ---
// These allow testing sql.Open and Ping without a running database.

type mockDriver struct {
	openErr error
}

func (m *mockDriver) Open(name string) (driver.Conn, error) {
	if m.openErr != nil {
		return nil, m.openErr
	}
	return &mockConn{}, nil
}

type mockConn struct{}

func (c *mockConn) Prepare(query string) (driver.Stmt, error) { return &mockStmt{}, nil }
func (c *mockConn) Close() error                              { return nil }
func (c *mockConn) Begin() (driver.Tx, error)                 { return nil, nil }

type mockStmt struct{}

func (s *mockStmt) Close() error                                    { return nil }
func (s *mockStmt) NumInput() int                                   { return 0 }
func (s *mockStmt) Exec(args []driver.Value) (driver.Result, error) { return nil, nil }
func (s *mockStmt) Query(args []driver.Value) (driver.Rows, error)  { return nil, nil }

func init() {
	sql.Register("mock_driver_success", &mockDriver{})
	sql.Register("mock_driver_failure", &mockDriver{openErr: errors.New("connection refused")})
}
