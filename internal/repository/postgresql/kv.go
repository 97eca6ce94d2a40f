package postgresql

import (
	"context"
	"fmt"

	"github.com/kintai-assist/kintai-backend-go/internal/domain/store"
	"github.com/kintai-assist/kintai-backend-go/internal/pkg/database"
)

type kvRepositoryImpl struct {
	db database.Querier
}

// NewKVRepository returns a Postgres-backed key-value store and prepares its
// table.
func NewKVRepository(ctx context.Context, db *database.DB) (store.KVStore, error) {
	_, err := db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS app_kv (
			key        TEXT PRIMARY KEY,
			value      BYTEA NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
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

	rows, err := r.db.Query(ctx, `SELECT key, value FROM app_kv WHERE key = ANY($1)`, keys)
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
		_, err := r.db.Exec(ctx, `
			INSERT INTO app_kv (key, value, updated_at)
			VALUES ($1, $2, NOW())
			ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
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
	_, err := r.db.Exec(ctx, `DELETE FROM app_kv WHERE key = ANY($1)`, keys)
	if err != nil {
		return fmt.Errorf("failed to remove keys: %w", err)
	}
	return nil
}
