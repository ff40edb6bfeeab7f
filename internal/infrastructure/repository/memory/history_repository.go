package memory

import (
	"context"
	"sync"

	"github.com/dimashiii/EzySubs-App/internal/domain/history"
)

// HistoryRepository keeps archived games newest first.
type HistoryRepository struct {
	mu    sync.RWMutex
	games []history.ArchivedGame
}

func NewHistoryRepository() *HistoryRepository {
	return &HistoryRepository{}
}

func (r *HistoryRepository) Prepend(_ context.Context, game history.ArchivedGame) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.games = append([]history.ArchivedGame{history.Clone(game)}, r.games...)
	return nil
}

func (r *HistoryRepository) List(_ context.Context, limit int) ([]history.ArchivedGame, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := len(r.games)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]history.ArchivedGame, 0, n)
	for _, g := range r.games[:n] {
		out = append(out, history.Clone(g))
	}
	return out, nil
}
