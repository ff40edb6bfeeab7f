package memory

import (
	"context"
	"sync"

	"github.com/dimashiii/EzySubs-App/internal/domain/settings"
)

type SettingsRepository struct {
	mu     sync.RWMutex
	item   settings.Settings
	exists bool
}

func NewSettingsRepository() *SettingsRepository {
	return &SettingsRepository{}
}

// Get returns the saved settings normalized, so legacy minute values are
// converted on read.
func (r *SettingsRepository) Get(_ context.Context) (settings.Settings, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if !r.exists {
		return settings.Settings{}, false, nil
	}
	return settings.Normalize(r.item), true, nil
}

func (r *SettingsRepository) Save(_ context.Context, s settings.Settings) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.item = s
	r.exists = true
	return nil
}
