package coordfakes

import (
	"context"
	"sync"

	"github.com/collabhub/coordinator/internal/services/coordinator/storage"
)

// Store is an in-memory snapshot cache.
type Store struct {
	mu        sync.Mutex
	snapshots map[[2]string]storage.Snapshot

	// SaveErr, when set, fails every SaveSnapshot call.
	SaveErr error
}

var _ storage.Store = (*Store)(nil)

// NewStore creates an empty snapshot cache.
func NewStore() *Store {
	return &Store{snapshots: make(map[[2]string]storage.Snapshot)}
}

func (s *Store) SaveSnapshot(ctx context.Context, snapshot storage.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.SaveErr != nil {
		return s.SaveErr
	}
	s.snapshots[[2]string{snapshot.Kind, snapshot.Key}] = snapshot
	return nil
}

func (s *Store) Snapshot(ctx context.Context, kind, key string) (storage.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot, ok := s.snapshots[[2]string{kind, key}]
	if !ok {
		return storage.Snapshot{}, storage.ErrNotFound
	}
	return snapshot, nil
}

func (s *Store) DeleteSnapshot(ctx context.Context, kind, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.snapshots, [2]string{kind, key})
	return nil
}
