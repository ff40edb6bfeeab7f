package memory

import (
	"context"
	"sync"

	"github.com/dimashiii/EzySubs-App/internal/domain/history"
	"github.com/dimashiii/EzySubs-App/internal/domain/rotation"
)

// SnapshotRepository holds the ongoing-game and live-preview records.
type SnapshotRepository struct {
	mu      sync.RWMutex
	ongoing *rotation.Snapshot
	live    *history.ArchivedGame
}

func NewSnapshotRepository() *SnapshotRepository {
	return &SnapshotRepository{}
}

func (r *SnapshotRepository) GetOngoing(_ context.Context) (rotation.Snapshot, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.ongoing == nil {
		return rotation.Snapshot{}, false, nil
	}
	return r.ongoing.Clone(), true, nil
}

func (r *SnapshotRepository) SaveOngoing(_ context.Context, snap rotation.Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cp := snap.Clone()
	r.ongoing = &cp
	return nil
}

func (r *SnapshotRepository) DeleteOngoing(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.ongoing = nil
	return nil
}

func (r *SnapshotRepository) GetLive(_ context.Context) (history.ArchivedGame, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.live == nil {
		return history.ArchivedGame{}, false, nil
	}
	return history.Clone(*r.live), true, nil
}

func (r *SnapshotRepository) SaveLive(_ context.Context, game history.ArchivedGame) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cp := history.Clone(game)
	r.live = &cp
	return nil
}

func (r *SnapshotRepository) DeleteLive(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.live = nil
	return nil
}
