package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"themeclash/internal/database"
)

// SQLStore persists key-value pairs in the kv table, using the database
// dialect layer for placeholder and upsert differences.
type SQLStore struct {
	db *database.DB
}

// NewSQLStore constructs a Store backed by the given database.
func NewSQLStore(db *database.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value string
	err := s.db.QueryRow("SELECT v FROM kv WHERE k = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", key, err)
	}
	return []byte(value), nil
}

func (s *SQLStore) Put(ctx context.Context, key string, value []byte) error {
	if _, err := s.db.Exec(s.db.Dialect.UpsertKVQuery(), key, string(value)); err != nil {
		return fmt.Errorf("failed to put %s: %w", key, err)
	}
	return nil
}

func (s *SQLStore) CreateIfAbsent(ctx context.Context, key string, value []byte) ([]byte, bool, error) {
	res, err := s.db.Exec(s.db.Dialect.InsertIgnoreKVQuery(), key, string(value))
	if err != nil {
		return nil, false, fmt.Errorf("failed to create %s: %w", key, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, false, fmt.Errorf("failed to check create of %s: %w", key, err)
	}
	if affected > 0 {
		return value, true, nil
	}
	existing, err := s.Get(ctx, key)
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

// Entry is one exported key-value row.
type Entry struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Dump reads every row of the kv table, for backups.
func (s *SQLStore) Dump(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.Query("SELECT k, v, updated_at FROM kv ORDER BY k")
	if err != nil {
		return nil, fmt.Errorf("failed to dump kv table: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Key, &e.Value, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan kv row: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Restore writes entries back into the kv table, replacing existing keys.
func (s *SQLStore) Restore(ctx context.Context, entries []Entry) error {
	for _, e := range entries {
		if err := s.Put(ctx, e.Key, []byte(e.Value)); err != nil {
			return err
		}
	}
	return nil
}
