package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/dimashiii/EzySubs-App/internal/domain/player"
)

type PlayerRepository struct {
	mu       sync.RWMutex
	players  []player.Player
	index    map[string]player.Player
	selected []string
}

// NewPlayerRepository keeps players in the given order. With no selection every
// player is selected.
func NewPlayerRepository(players []player.Player, selected []string) *PlayerRepository {
	r := &PlayerRepository{index: make(map[string]player.Player, len(players))}
	for _, p := range players {
		if _, dup := r.index[p.ID]; dup {
			continue
		}
		r.players = append(r.players, p)
		r.index[p.ID] = p
	}
	if len(selected) == 0 {
		selected = player.IDs(r.players)
	}
	r.selected = cleanIDs(selected)
	return r
}

func (r *PlayerRepository) List(_ context.Context) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]player.Player(nil), r.players...), nil
}

func (r *PlayerRepository) ListSelected(_ context.Context) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Player, 0, len(r.selected))
	for _, id := range r.selected {
		p, ok := r.index[id]
		if !ok {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

// Select replaces today's selection. Unknown ids are kept and skipped on read.
func (r *PlayerRepository) Select(_ context.Context, ids []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.selected = cleanIDs(ids)
	return nil
}

func cleanIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
