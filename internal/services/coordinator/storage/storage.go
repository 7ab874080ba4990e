// Package storage defines the offline snapshot cache contract. The cache
// keeps the last successfully fetched remote state so reads can degrade to
// recent data when the backend is unreachable. It is never authoritative:
// writes always go to the backend first.
package storage

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound indicates no snapshot is cached for the requested kind and key.
var ErrNotFound = errors.New("snapshot not found")

// Snapshot kinds. The key is the lookup argument used on the remote read:
// an email for per-user listings, a project or organization id otherwise.
const (
	KindUser          = "user"
	KindProjects      = "projects"
	KindInvites       = "invites"
	KindOrganizations = "organizations"
	KindChat          = "chat"
)

// Snapshot is one cached remote read, stored as its JSON payload.
type Snapshot struct {
	Kind     string
	Key      string
	Payload  []byte
	StoredAt time.Time
}

// Store persists snapshots.
type Store interface {
	SaveSnapshot(ctx context.Context, snapshot Snapshot) error
	Snapshot(ctx context.Context, kind, key string) (Snapshot, error)
	DeleteSnapshot(ctx context.Context, kind, key string) error
}
