package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/theworldofobi/whot/game"
)

var ErrSnapshotNotFound = errors.New("snapshot not found")

// SnapshotStore persists full game snapshots so a game can be resumed
// after a restart. Save replaces any snapshot already held for the
// same game.
type SnapshotStore interface {
	Save(ctx context.Context, snap *game.Snapshot) error
	Load(ctx context.Context, gameID string) (*game.Snapshot, error)
	List(ctx context.Context) ([]string, error)
	Delete(ctx context.Context, gameID string) error
}

// InMemorySnapshotStore holds snapshots for the lifetime of the
// process. Used in tests and when the server runs without a database.
type InMemorySnapshotStore struct {
	mu        sync.RWMutex
	snapshots map[string]*game.Snapshot
	savedAt   map[string]time.Time
	now       func() time.Time
}

func NewInMemorySnapshotStore() *InMemorySnapshotStore {
	return &InMemorySnapshotStore{
		snapshots: map[string]*game.Snapshot{},
		savedAt:   map[string]time.Time{},
		now:       time.Now,
	}
}

func (s *InMemorySnapshotStore) Save(ctx context.Context, snap *game.Snapshot) error {
	if err := snap.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshots[snap.ID] = snap
	s.savedAt[snap.ID] = s.now()
	return nil
}

func (s *InMemorySnapshotStore) Load(ctx context.Context, gameID string) (*game.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap, ok := s.snapshots[gameID]
	if !ok {
		return nil, ErrSnapshotNotFound
	}
	return snap, nil
}

func (s *InMemorySnapshotStore) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := []string{}
	for id := range s.snapshots {
		ids = append(ids, id)
	}
	return ids, nil
}

func (s *InMemorySnapshotStore) Delete(ctx context.Context, gameID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.snapshots, gameID)
	delete(s.savedAt, gameID)
	return nil
}
