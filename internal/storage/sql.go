package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"souq-be/internal/logger"

	"go.uber.org/zap"
)

const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite"
)

// SQL stores every key as one row of the kv_state table, payload as text.
type SQL struct {
	db      *sql.DB
	dialect string
}

// NewSQL wraps an open database and ensures the kv_state table exists.
func NewSQL(ctx context.Context, db *sql.DB, dialect string) (*SQL, error) {
	if dialect != DialectPostgres && dialect != DialectSQLite {
		return nil, fmt.Errorf("unsupported sql dialect: %q", dialect)
	}

	s := &SQL{db: db, dialect: dialect}

	ddl := `CREATE TABLE IF NOT EXISTS kv_state (
		bucket TEXT PRIMARY KEY,
		payload TEXT NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`
	if _, err := db.ExecContext(ctx, ddl); err != nil {
		return nil, fmt.Errorf("ensure kv_state table: %w", err)
	}

	return s, nil
}

// rebind rewrites $n placeholders for sqlite.
func (s *SQL) rebind(query string) string {
	if s.dialect != DialectSQLite {
		return query
	}
	for i := 3; i >= 1; i-- {
		query = strings.ReplaceAll(query, fmt.Sprintf("$%d", i), "?")
	}
	return query
}

func (s *SQL) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var payload string
	err := s.db.QueryRowContext(ctx,
		s.rebind(`SELECT payload FROM kv_state WHERE bucket = $1`), key,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		logger.FromCtx(ctx).Error("kv get failed", zap.String("key", key), zap.Error(err))
		return nil, false, fmt.Errorf("get %s: %w", key, err)
	}
	return []byte(payload), true, nil
}

func (s *SQL) Set(ctx context.Context, key string, value []byte) error {
	query := `
		INSERT INTO kv_state (bucket, payload, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (bucket) DO UPDATE
		SET payload = excluded.payload, updated_at = excluded.updated_at
	`
	if _, err := s.db.ExecContext(ctx, s.rebind(query), key, string(value), time.Now().UTC()); err != nil {
		logger.FromCtx(ctx).Error("kv set failed", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("upsert %s: %w", key, err)
	}
	return nil
}

func (s *SQL) Remove(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, s.rebind(`DELETE FROM kv_state WHERE bucket = $1`), key); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

func (s *SQL) Keys(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT bucket FROM kv_state ORDER BY bucket`)
	if err != nil {
		return nil, fmt.Errorf("select keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("scan key: %w", err)
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

func (s *SQL) Close() error {
	return s.db.Close()
}
