package memory

import (
	"context"
	"sync"

	"github.com/dimashiii/EzySubs-App/internal/domain/lineup"
)

type LineupRepository struct {
	mu     sync.RWMutex
	item   lineup.Lineup
	exists bool
}

func NewLineupRepository() *LineupRepository {
	return &LineupRepository{}
}

func (r *LineupRepository) Get(_ context.Context) (lineup.Lineup, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if !r.exists {
		return lineup.Lineup{}, false, nil
	}
	return cloneLineup(r.item), true, nil
}

func (r *LineupRepository) Save(_ context.Context, item lineup.Lineup) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.item = cloneLineup(item)
	r.exists = true
	return nil
}

func cloneLineup(item lineup.Lineup) lineup.Lineup {
	copied := item
	copied.StarterIDs = append([]string(nil), item.StarterIDs...)
	copied.BenchIDs = append([]string(nil), item.BenchIDs...)
	return copied
}
