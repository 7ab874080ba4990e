// Package sqlite provides the SQLite snapshot cache.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"time"

	_ "modernc.org/sqlite"

	"github.com/collabhub/coordinator/internal/platform/storage/sqlitemigrate"
	"github.com/collabhub/coordinator/internal/services/coordinator/storage"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Store is a SQLite-backed snapshot cache.
type Store struct {
	db *sql.DB
}

var _ storage.Store = (*Store)(nil)

// Open opens or creates the cache database at path and applies migrations.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// Single writer; the cache is written from one poll loop at a time.
	db.SetMaxOpenConns(1)

	migrations, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sub migrations fs: %w", err)
	}
	if err := sqlitemigrate.ApplyMigrations(db, migrations); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply migrations: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveSnapshot upserts the snapshot for its kind and key.
func (s *Store) SaveSnapshot(ctx context.Context, snapshot storage.Snapshot) error {
	if snapshot.Kind == "" || snapshot.Key == "" {
		return fmt.Errorf("snapshot kind and key are required")
	}
	storedAt := snapshot.StoredAt
	if storedAt.IsZero() {
		storedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, `
INSERT INTO snapshots (kind, key, payload, stored_at)
VALUES (?, ?, ?, ?)
ON CONFLICT (kind, key) DO UPDATE SET
    payload = excluded.payload,
    stored_at = excluded.stored_at
`, snapshot.Kind, snapshot.Key, snapshot.Payload, storedAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("save snapshot %s/%s: %w", snapshot.Kind, snapshot.Key, err)
	}
	return nil
}

// Snapshot returns the cached snapshot for kind and key, or
// storage.ErrNotFound when nothing is cached.
func (s *Store) Snapshot(ctx context.Context, kind, key string) (storage.Snapshot, error) {
	row := s.db.QueryRowContext(ctx, `
SELECT payload, stored_at FROM snapshots WHERE kind = ? AND key = ?
`, kind, key)

	var payload []byte
	var storedAt int64
	if err := row.Scan(&payload, &storedAt); err != nil {
		if err == sql.ErrNoRows {
			return storage.Snapshot{}, storage.ErrNotFound
		}
		return storage.Snapshot{}, fmt.Errorf("load snapshot %s/%s: %w", kind, key, err)
	}
	return storage.Snapshot{
		Kind:     kind,
		Key:      key,
		Payload:  payload,
		StoredAt: time.UnixMilli(storedAt).UTC(),
	}, nil
}

// DeleteSnapshot removes the cached snapshot for kind and key. Deleting a
// missing snapshot is a no-op.
func (s *Store) DeleteSnapshot(ctx context.Context, kind, key string) error {
	if _, err := s.db.ExecContext(ctx, `
DELETE FROM snapshots WHERE kind = ? AND key = ?
`, kind, key); err != nil {
		return fmt.Errorf("delete snapshot %s/%s: %w", kind, key, err)
	}
	return nil
}
