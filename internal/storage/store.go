package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"tenders-ai/pkg/config"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

const schema = `
CREATE TABLE IF NOT EXISTS kv_entries (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);`

// Store is a process-local key-value store over a SQLite file. Each logical
// entity owns exactly one key holding one JSON document; writes replace the
// whole document so every entity update is all-or-nothing.
type Store struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func Open(ctx context.Context, cfg *config.StorageConfig, logger *zap.Logger) (*Store, error) {
	if dir := filepath.Dir(cfg.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create storage directory: %w", err)
		}
	}

	db, err := sqlx.ConnectContext(ctx, "sqlite3", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize store schema: %w", err)
	}

	logger.Info("Key-value store opened", zap.String("path", cfg.Path))

	return &Store{db: db, logger: logger}, nil
}

// Get reads the value under key into dest. When the key is absent the
// seed value is persisted first, so defaults survive restarts like any
// other write.
func (s *Store) Get(ctx context.Context, key string, dest any, seed any) error {
	query := squirrel.Select("value").
		From("kv_entries").
		Where(squirrel.Eq{"key": key})

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	var raw string
	err = s.db.QueryRowxContext(ctx, sqlStr, args...).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		if err := s.Set(ctx, key, seed); err != nil {
			return fmt.Errorf("failed to seed default for %q: %w", key, err)
		}
		seeded, err := json.Marshal(seed)
		if err != nil {
			return err
		}
		return json.Unmarshal(seeded, dest)
	}
	if err != nil {
		return fmt.Errorf("failed to read %q: %w", key, err)
	}

	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		return fmt.Errorf("failed to decode %q: %w", key, err)
	}
	return nil
}

// Set replaces the value under key.
func (s *Store) Set(ctx context.Context, key string, value any) error {
	return s.SetAll(ctx, map[string]any{key: value})
}

// SetAll replaces every given key in a single transaction. Used where two
// entities must change together, such as the bookmark/dismissal pair.
func (s *Store) SetAll(ctx context.Context, entries map[string]any) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin write: %w", err)
	}
	defer tx.Rollback()

	for key, value := range entries {
		raw, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("failed to encode %q: %w", key, err)
		}

		query := squirrel.Insert("kv_entries").
			Columns("key", "value").
			Values(key, string(raw)).
			Suffix("ON CONFLICT(key) DO UPDATE SET value = excluded.value")

		sqlStr, args, err := query.ToSql()
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, sqlStr, args...); err != nil {
			return fmt.Errorf("failed to write %q: %w", key, err)
		}
	}

	return tx.Commit()
}

func (s *Store) Close() error {
	return s.db.Close()
}
