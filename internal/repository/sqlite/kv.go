package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/kintai-assist/kintai-backend-go/internal/domain/store"
)

type kvRepositoryImpl struct {
	db *sql.DB
}

// NewKVRepository returns a SQLite-backed key-value store and prepares its
// table.
func NewKVRepository(ctx context.Context, db *sql.DB) (store.KVStore, error) {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS app_kv (
			key        TEXT PRIMARY KEY,
			value      BLOB NOT NULL,
			updated_at TEXT NOT NULL DEFAULT (datetime('now'))
		)
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to create app_kv table: %w", err)
	}
	return &kvRepositoryImpl{db: db}, nil
}

// Get implements store.KVStore.
func (r *kvRepositoryImpl) Get(ctx context.Context, keys ...string) (map[string][]byte, error) {
	if len(keys) == 0 {
		return map[string][]byte{}, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(keys)), ",")
	args := make([]interface{}, len(keys))
	for i, k := range keys {
		args[i] = k
	}

	rows, err := r.db.QueryContext(ctx,
		fmt.Sprintf(`SELECT key, value FROM app_kv WHERE key IN (%s)`, placeholders), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get keys: %w", err)
	}
	defer rows.Close()

	result := make(map[string][]byte, len(keys))
	for rows.Next() {
		var key string
		var value []byte
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan kv row: %w", err)
		}
		result[key] = value
	}
	return result, rows.Err()
}

// Set implements store.KVStore.
func (r *kvRepositoryImpl) Set(ctx context.Context, entries map[string][]byte) error {
	for key, value := range entries {
		_, err := r.db.ExecContext(ctx, `
			INSERT INTO app_kv (key, value, updated_at)
			VALUES (?, ?, datetime('now'))
			ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = datetime('now')
		`, key, value)
		if err != nil {
			return fmt.Errorf("failed to set key %s: %w", key, err)
		}
	}
	return nil
}

// Remove implements store.KVStore.
func (r *kvRepositoryImpl) Remove(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(keys)), ",")
	args := make([]interface{}, len(keys))
	for i, k := range keys {
		args[i] = k
	}

	_, err := r.db.ExecContext(ctx,
		fmt.Sprintf(`DELETE FROM app_kv WHERE key IN (%s)`, placeholders), args...)
	if err != nil {
		return fmt.Errorf("failed to remove keys: %w", err)
	}
	return nil
}
