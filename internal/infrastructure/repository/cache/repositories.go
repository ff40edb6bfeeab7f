package cache

import (
	"context"

	"github.com/dimashiii/EzySubs-App/internal/domain/lineup"
	"github.com/dimashiii/EzySubs-App/internal/domain/player"
	"github.com/dimashiii/EzySubs-App/internal/domain/settings"
	basecache "github.com/dimashiii/EzySubs-App/internal/platform/cache"
)

const (
	keyPlayerList     = "player:list"
	keyPlayerSelected = "player:selected"
	keyLineup         = "lineup:current"
	keySettings       = "settings:current"
)

type PlayerRepository struct {
	next  player.Repository
	cache *basecache.Store
}

func NewPlayerRepository(next player.Repository, cache *basecache.Store) *PlayerRepository {
	return &PlayerRepository{next: next, cache: cache}
}

func (r *PlayerRepository) List(ctx context.Context) ([]player.Player, error) {
	items, err := basecache.Load(ctx, r.cache, keyPlayerList, func(ctx context.Context) ([]player.Player, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]player.Player(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}
	return append([]player.Player(nil), items...), nil
}

func (r *PlayerRepository) ListSelected(ctx context.Context) ([]player.Player, error) {
	items, err := basecache.Load(ctx, r.cache, keyPlayerSelected, func(ctx context.Context) ([]player.Player, error) {
		items, err := r.next.ListSelected(ctx)
		if err != nil {
			return nil, err
		}
		return append([]player.Player(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}
	return append([]player.Player(nil), items...), nil
}

// Invalidate drops the cached roster, for use after the selection changes.
func (r *PlayerRepository) Invalidate(ctx context.Context) {
	r.cache.DeletePrefix(ctx, "player:")
}

type LineupRepository struct {
	next  lineup.Repository
	cache *basecache.Store
}

func NewLineupRepository(next lineup.Repository, cache *basecache.Store) *LineupRepository {
	return &LineupRepository{next: next, cache: cache}
}

func (r *LineupRepository) Get(ctx context.Context) (lineup.Lineup, bool, error) {
	cached, err := basecache.Load(ctx, r.cache, keyLineup, func(ctx context.Context) (cachedLineup, error) {
		item, exists, err := r.next.Get(ctx)
		if err != nil {
			return cachedLineup{}, err
		}
		return cachedLineup{value: item, exists: exists}, nil
	})
	if err != nil {
		return lineup.Lineup{}, false, err
	}

	item := cached.value
	item.StarterIDs = append([]string(nil), item.StarterIDs...)
	item.BenchIDs = append([]string(nil), item.BenchIDs...)
	return item, cached.exists, nil
}

func (r *LineupRepository) Save(ctx context.Context, item lineup.Lineup) error {
	if err := r.next.Save(ctx, item); err != nil {
		return err
	}
	r.cache.Delete(ctx, keyLineup)
	return nil
}

type cachedLineup struct {
	value  lineup.Lineup
	exists bool
}

type SettingsRepository struct {
	next  settings.Repository
	cache *basecache.Store
}

func NewSettingsRepository(next settings.Repository, cache *basecache.Store) *SettingsRepository {
	return &SettingsRepository{next: next, cache: cache}
}

func (r *SettingsRepository) Get(ctx context.Context) (settings.Settings, bool, error) {
	cached, err := basecache.Load(ctx, r.cache, keySettings, func(ctx context.Context) (cachedSettings, error) {
		item, exists, err := r.next.Get(ctx)
		if err != nil {
			return cachedSettings{}, err
		}
		return cachedSettings{value: item, exists: exists}, nil
	})
	if err != nil {
		return settings.Settings{}, false, err
	}
	return cached.value, cached.exists, nil
}

func (r *SettingsRepository) Save(ctx context.Context, s settings.Settings) error {
	if err := r.next.Save(ctx, s); err != nil {
		return err
	}
	r.cache.Delete(ctx, keySettings)
	return nil
}

type cachedSettings struct {
	value  settings.Settings
	exists bool
}
